package worker

import (
	"bytes"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"

	"github.com/lgbarn/board-rules-go/internal/chess"
	"github.com/lgbarn/board-rules-go/internal/config"
	"github.com/lgbarn/board-rules-go/internal/errors"
	"github.com/lgbarn/board-rules-go/internal/game"
	"github.com/lgbarn/board-rules-go/internal/parser"
	"github.com/lgbarn/board-rules-go/internal/testutil"
)

func testConfig(workers int) *config.Config {
	return config.NewConfigBuilder().WithWorkers(workers).WithLog(&bytes.Buffer{}).Build()
}

// scriptItems parses a script into work items, keeping parse errors in place.
func scriptItems(t *testing.T, script string) []WorkItem {
	t.Helper()
	p := parser.NewParser(strings.NewReader(script), testConfig(1))
	var items []WorkItem
	for i := 0; ; i++ {
		rec, err := p.ParseGame()
		if err == nil && rec == nil {
			return items
		}
		items = append(items, WorkItem{Game: rec, Err: err, Index: i})
		if i > 100 {
			t.Fatal("parser did not reach end of input")
		}
	}
}

// countingProcessFunc returns a process function that increments a counter.
func countingProcessFunc(counter *int32) ProcessFunc {
	return func(item WorkItem) ProcessResult {
		atomic.AddInt32(counter, 1)
		return ProcessResult{Index: item.Index}
	}
}

// collectResults drains the result channel and returns the count.
func collectResults(pool *Pool) int {
	count := 0
	for range pool.Results() {
		count++
	}
	return count
}

func TestPoolProcessesEveryItem(t *testing.T) {
	var processed int32
	pool := NewPool(countingProcessFunc(&processed), WithWorkers(8), WithBufferSize(4))
	pool.Start()

	const numItems = 100
	go func() {
		for i := 0; i < numItems; i++ {
			pool.Submit(WorkItem{Game: chess.NewGameRecord(chess.Western), Index: i})
		}
		pool.Close()
	}()

	if got := collectResults(pool); got != numItems {
		t.Errorf("results = %d; want %d", got, numItems)
	}
	if got := atomic.LoadInt32(&processed); got != numItems {
		t.Errorf("processed = %d; want %d", got, numItems)
	}
}

// TestPoolStop verifies items queued after Stop are drained unprocessed.
func TestPoolStop(t *testing.T) {
	started := make(chan struct{}, 5)
	release := make(chan struct{})
	var processed int32
	pool := NewPool(func(item WorkItem) ProcessResult {
		started <- struct{}{}
		<-release
		atomic.AddInt32(&processed, 1)
		return ProcessResult{Index: item.Index}
	}, WithBufferSize(10))
	pool.Start()

	for i := 0; i < 5; i++ {
		pool.Submit(WorkItem{Index: i})
	}
	// The single worker is now inside the first item.
	<-started
	pool.Stop()
	close(release)

	go pool.Close()
	got := collectResults(pool)

	if !pool.IsStopped() {
		t.Error("pool should be stopped after Stop()")
	}
	if got != 1 || atomic.LoadInt32(&processed) != 1 {
		t.Errorf("results = %d, processed = %d; want 1 each", got, atomic.LoadInt32(&processed))
	}
}

func TestPoolOptions(t *testing.T) {
	noop := func(item WorkItem) ProcessResult { return ProcessResult{Index: item.Index} }

	tests := []struct {
		name    string
		opts    []PoolOption
		workers int
		buffer  int
	}{
		{"defaults", nil, 1, 10},
		{"with workers", []PoolOption{WithWorkers(4)}, 4, 10},
		{"with buffer size", []PoolOption{WithBufferSize(50)}, 1, 50},
		{"invalid values ignored", []PoolOption{WithWorkers(0), WithBufferSize(-5)}, 1, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool := NewPool(noop, tt.opts...)
			testutil.AssertEqual(t, pool.NumWorkers(), tt.workers)
			testutil.AssertEqual(t, pool.bufferSize, tt.buffer)
			testutil.AssertEqual(t, cap(pool.workChan), tt.buffer)
		})
	}
}

func TestReplayFunc(t *testing.T) {
	m := game.NewManager()
	fn := ReplayFunc(m, testConfig(1))
	items := scriptItems(t, "e2-e4 e7-e5\n*\ne2-e9\n")

	if len(items) != 2 {
		t.Fatalf("items = %d; want 2", len(items))
	}

	res := fn(items[0])
	testutil.AssertNoError(t, res.Error)
	testutil.AssertTrue(t, res.Replay.Valid, res.Replay.ErrorMsg)
	testutil.AssertEqual(t, res.Replay.Played(), 2)
	_, err := uuid.Parse(res.Replay.SessionID)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, m.Len(), 0, "finished sessions are removed")

	res = fn(items[1])
	testutil.AssertErrorIs(t, res.Error, errors.ErrInvalidSquare)
	testutil.AssertTrue(t, res.Replay == nil)
	testutil.AssertEqual(t, res.Index, 1)
}

// ReplayAll returns results in input order whatever order workers finish in.
func TestReplayAllOrdered(t *testing.T) {
	var script strings.Builder
	for i := 0; i < 40; i++ {
		if i%2 == 0 {
			script.WriteString("[Variant \"xiangqi\"]\nh3-e3 h10-g8 b1-c3 *\n")
		} else {
			script.WriteString("[Variant \"western\"]\ne2-e4 *\n")
		}
	}
	items := scriptItems(t, script.String())

	for _, workers := range []int{1, 4, 0} {
		results := ReplayAll(items, testConfig(workers))
		if len(results) != len(items) {
			t.Fatalf("workers %d: results = %d; want %d", workers, len(results), len(items))
		}
		sessions := make(map[string]bool)
		for i, res := range results {
			testutil.AssertEqual(t, res.Index, i)
			testutil.AssertNoError(t, res.Error)
			testutil.AssertFalse(t, sessions[res.Replay.SessionID], "session %q reused", res.Replay.SessionID)
			sessions[res.Replay.SessionID] = true
			want := 1
			if i%2 == 0 {
				want = 3
			}
			testutil.AssertEqual(t, res.Replay.Played(), want, "game %d", i)
		}
	}
}

func TestReplayAllKeepsParseErrors(t *testing.T) {
	items := scriptItems(t, "e2-e4 *\n[Variant \"go\"]\nd4 *\ne2-e4 e7-e5 *\n")
	testutil.AssertEqual(t, len(items), 3)

	results := ReplayAll(items, testConfig(2))

	testutil.AssertEqual(t, len(results), 3)
	testutil.AssertNoError(t, results[0].Error)
	testutil.AssertErrorIs(t, results[1].Error, errors.ErrParseFailure)
	testutil.AssertNoError(t, results[2].Error)
	testutil.AssertEqual(t, results[2].Replay.Played(), 2)
}

func TestReplayAllNilConfig(t *testing.T) {
	rec := chess.NewGameRecord(chess.Western)
	rec.Moves = append(rec.Moves, chess.NewMoveRecord("e2-e4",
		chess.MustSquare(chess.Western, "e2"), chess.MustSquare(chess.Western, "e4")))

	results := ReplayAll([]WorkItem{{Game: rec}}, nil)

	testutil.AssertEqual(t, len(results), 1)
	testutil.AssertTrue(t, results[0].Replay.Valid)
}
