// Package worker replays scripted games on a pool of goroutines.
package worker

import (
	"runtime"
	"sync"
	"sync/atomic"

	"golang.org/x/exp/slices"

	"github.com/lgbarn/board-rules-go/internal/chess"
	"github.com/lgbarn/board-rules-go/internal/config"
	"github.com/lgbarn/board-rules-go/internal/game"
	"github.com/lgbarn/board-rules-go/internal/processing"
)

// WorkItem is one parsed game, or the error that kept it from parsing.
type WorkItem struct {
	Game  *chess.GameRecord
	Err   error
	Index int // Position in the input, for ordering results
}

// ProcessResult is the outcome of one work item.
type ProcessResult struct {
	Index  int
	Replay *processing.ReplayResult // nil when Error is set
	Error  error
}

// ProcessFunc is the function signature for processing a work item.
type ProcessFunc func(item WorkItem) ProcessResult

// ReplayFunc returns a ProcessFunc that replays each game under cfg as a
// session of m. Items carrying a parse error pass it through.
func ReplayFunc(m *game.Manager, cfg *config.Config) ProcessFunc {
	return func(item WorkItem) ProcessResult {
		if item.Err != nil {
			return ProcessResult{Index: item.Index, Error: item.Err}
		}
		return ProcessResult{Index: item.Index, Replay: processing.ReplayWith(m, item.Game, cfg)}
	}
}

// Pool manages a pool of workers. Every game gets its own engine, so
// workers share nothing but the channels.
type Pool struct {
	numWorkers  int
	bufferSize  int
	workChan    chan WorkItem
	resultChan  chan ProcessResult
	processFunc ProcessFunc
	wg          sync.WaitGroup
	stopFlag    int32 // Atomic flag for early termination
}

// PoolOption configures a Pool.
type PoolOption func(*Pool)

// WithWorkers sets the number of worker goroutines.
func WithWorkers(n int) PoolOption {
	return func(p *Pool) {
		if n >= 1 {
			p.numWorkers = n
		}
	}
}

// WithBufferSize sets the channel buffer size.
func WithBufferSize(size int) PoolOption {
	return func(p *Pool) {
		if size >= 1 {
			p.bufferSize = size
		}
	}
}

// NewPool creates a pool running processFunc.
// Default: 1 worker, buffer size of 10.
func NewPool(processFunc ProcessFunc, opts ...PoolOption) *Pool {
	p := &Pool{
		numWorkers:  1,
		bufferSize:  10,
		processFunc: processFunc,
	}
	for _, opt := range opts {
		opt(p)
	}
	// Create channels after options are applied
	p.workChan = make(chan WorkItem, p.bufferSize)
	p.resultChan = make(chan ProcessResult, p.bufferSize)
	return p
}

// Start starts the worker goroutines.
func (p *Pool) Start() {
	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

// worker processes items from the work channel until it is closed.
func (p *Pool) worker() {
	defer p.wg.Done()

	for item := range p.workChan {
		if p.IsStopped() {
			continue // Drain channel without processing
		}
		p.resultChan <- p.processFunc(item)
	}
}

// Submit submits a work item for processing.
// This may block if the work channel buffer is full.
func (p *Pool) Submit(item WorkItem) {
	p.workChan <- item
}

// Stop signals workers to stop processing new items.
// Items already in the channel will be drained but not processed.
func (p *Pool) Stop() {
	atomic.StoreInt32(&p.stopFlag, 1)
}

// IsStopped returns true if the pool has been stopped.
func (p *Pool) IsStopped() bool {
	return atomic.LoadInt32(&p.stopFlag) != 0
}

// Close closes the work channel and waits for all workers to finish.
// After calling Close, the result channel will be closed when all workers are done.
func (p *Pool) Close() {
	close(p.workChan)
	p.wg.Wait()
	close(p.resultChan)
}

// Results returns the result channel for reading processed results.
func (p *Pool) Results() <-chan ProcessResult {
	return p.resultChan
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}

// ReplayAll replays items on cfg.Workers goroutines (one per CPU when
// zero), each game a session of one shared manager, and returns the
// results in input order. With cfg.Replay.Strict
// set, the first parse error stops the pool; items not yet started are
// dropped from the results.
func ReplayAll(items []WorkItem, cfg *config.Config) []ProcessResult {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	workers := cfg.Workers
	if workers == 0 {
		workers = runtime.NumCPU()
	}

	pool := NewPool(ReplayFunc(game.NewManager(), cfg), WithWorkers(workers), WithBufferSize(2*workers))
	pool.Start()
	go func() {
		for _, item := range items {
			pool.Submit(item)
		}
		pool.Close()
	}()

	results := make([]ProcessResult, 0, len(items))
	for res := range pool.Results() {
		if res.Error != nil && cfg.Replay.Strict {
			pool.Stop()
		}
		results = append(results, res)
	}
	slices.SortFunc(results, func(a, b ProcessResult) bool { return a.Index < b.Index })
	return results
}
