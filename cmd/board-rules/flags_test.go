package main

import (
	"testing"

	"github.com/lgbarn/board-rules-go/internal/chess"
	"github.com/lgbarn/board-rules-go/internal/config"
	"github.com/lgbarn/board-rules-go/internal/errors"
	"github.com/lgbarn/board-rules-go/internal/testutil"
)

// saveRestoreBool saves a bool flag value, sets a new value, and returns a restore function.
func saveRestoreBool(ptr *bool, val bool) func() {
	old := *ptr
	*ptr = val
	return func() { *ptr = old }
}

func saveRestoreInt(ptr *int, val int) func() {
	old := *ptr
	*ptr = val
	return func() { *ptr = old }
}

func saveRestoreString(ptr *string, val string) func() {
	old := *ptr
	*ptr = val
	return func() { *ptr = old }
}

func TestApplyInputFlags(t *testing.T) {
	tests := []struct {
		name    string
		variant string
		want    chess.Variant
		wantErr bool
	}{
		{"western", "western", chess.Western, false},
		{"xiangqi mixed case", " Xiangqi ", chess.Xiangqi, false},
		{"unknown", "shogi", chess.Western, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer saveRestoreString(variantName, tt.variant)()
			defer saveRestoreString(charset, "latin1")()

			cfg := config.NewConfig()
			err := applyInputFlags(cfg)
			if tt.wantErr {
				testutil.AssertErrorIs(t, err, errors.ErrInvalidConfig)
				return
			}
			testutil.AssertNoError(t, err)
			testutil.AssertEqual(t, cfg.Variant, tt.want)
			testutil.AssertEqual(t, cfg.Charset, "latin1")
		})
	}
}

func TestApplyOutputFlags(t *testing.T) {
	defer saveRestoreBool(jsonOutput, true)()
	defer saveRestoreBool(noTurns, true)()
	defer saveRestoreBool(noLayout, false)()
	defer saveRestoreString(parquetFile, "plies.parquet")()

	cfg := config.NewConfig()
	applyOutputFlags(cfg)

	testutil.AssertEqual(t, cfg.Output.Format, config.JSONFormat)
	testutil.AssertFalse(t, cfg.Output.ShowTurns)
	testutil.AssertTrue(t, cfg.Output.ShowLayout)
	testutil.AssertEqual(t, cfg.Output.ParquetFile, "plies.parquet")
}

func TestApplyReplayFlags(t *testing.T) {
	defer saveRestoreBool(keepGoing, true)()
	defer saveRestoreInt(plyLimit, 12)()
	defer saveRestoreBool(strict, true)()
	defer saveRestoreInt(workers, 3)()

	cfg := config.NewConfig()
	applyReplayFlags(cfg)

	testutil.AssertTrue(t, cfg.Replay.KeepGoing)
	testutil.AssertEqual(t, cfg.Replay.PlyLimit, 12)
	testutil.AssertTrue(t, cfg.Replay.Strict)
	testutil.AssertEqual(t, cfg.Workers, 3)
}

func TestApplyFlags(t *testing.T) {
	t.Run("quiet overrides verbosity", func(t *testing.T) {
		defer saveRestoreInt(verbosity, 2)()
		defer saveRestoreBool(quiet, true)()

		cfg := config.NewConfig()
		testutil.AssertNoError(t, applyFlags(cfg))
		testutil.AssertEqual(t, cfg.Verbosity, 0)
	})

	t.Run("verbosity", func(t *testing.T) {
		defer saveRestoreInt(verbosity, 2)()

		cfg := config.NewConfig()
		testutil.AssertNoError(t, applyFlags(cfg))
		testutil.AssertEqual(t, cfg.Verbosity, 2)
	})

	tests := []struct {
		name string
		set  func() func()
	}{
		{"bad charset", func() func() { return saveRestoreString(charset, "ebcdic") }},
		{"bad parquet name", func() func() { return saveRestoreString(parquetFile, "plies.csv") }},
		{"negative ply limit", func() func() { return saveRestoreInt(plyLimit, -1) }},
		{"negative workers", func() func() { return saveRestoreInt(workers, -2) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer tt.set()()
			testutil.AssertErrorIs(t, applyFlags(config.NewConfig()), errors.ErrInvalidConfig)
		})
	}
}
