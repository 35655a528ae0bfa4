package testutil

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/lgbarn/board-rules-go/internal/chess"
)

func TestAssertEqual_Success(t *testing.T) {
	AssertEqual(t, []int{1, 2, 3}, []int{1, 2, 3})
	AssertEqual(t, chess.Coord{X: 1, Y: 2}, chess.Coord{X: 1, Y: 2}, "coord %d", 1)
	AssertEqual(t, []int{}, []int(nil), cmpopts.EquateEmpty(), "empty slices")
}

func TestAssertErrorIs_Success(t *testing.T) {
	base := errors.New("base")
	AssertErrorIs(t, fmt.Errorf("wrapped: %w", base), base)
	AssertNoError(t, nil)
}

func TestAssertBool_Success(t *testing.T) {
	AssertTrue(t, true)
	AssertFalse(t, false, "negated")
}

func TestFormatMessage(t *testing.T) {
	tests := []struct {
		name string
		args []interface{}
		want string
	}{
		{"no args", nil, ""},
		{"single string", []interface{}{"hello"}, "hello"},
		{"format", []interface{}{"ply %d", 4}, "ply 4"},
		{"non-string", []interface{}{42}, "42"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatMessage(tt.args...); got != tt.want {
				t.Errorf("formatMessage(%v) = %q; want %q", tt.args, got, tt.want)
			}
		})
	}
}

func TestBoardFixtures(t *testing.T) {
	b := MustBoard(t, chess.Western, chess.InitialWesternLayout)
	king := PieceOn(t, b, "e1")
	AssertEqual(t, b.TypeOf(king), chess.King)
	AssertEqual(t, Sq(t, chess.Xiangqi, "i10"), chess.Coord{X: 9, Y: 10})
}
