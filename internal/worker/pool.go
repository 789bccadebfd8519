// Package worker replays games in parallel for the replay runner.
package worker

import (
	"sync"
	"sync/atomic"

	"github.com/lgbarn/chesscore-go/internal/engine"
	"github.com/lgbarn/chesscore-go/internal/processing"
)

// Job is one game queued for replay.
type Job struct {
	Number int      // 1-based game number in the input
	Source string   // input name
	Line   int      // source line of the game
	FEN    string   // starting position, empty for the standard one
	Moves  []string // coordinate-notation moves
	Index  int      // position in the submission order
}

// Result is the outcome of replaying one Job.
type Result struct {
	Number   int
	Index    int
	State    *engine.GameState // state reached before any error, may be nil
	Analysis *processing.GameAnalysis
	Error    error
	Skipped  bool // replayed cleanly but rejected by the game filter
}

// ReplayFunc replays a single job. It runs on a pool goroutine and must not
// touch state shared with other jobs.
type ReplayFunc func(job Job) Result

const (
	defaultWorkers = 1
	defaultBuffer  = 10
)

// Pool fans jobs out to a fixed set of goroutines. Results come back in
// completion order; Job.Index lets the reader restore submission order.
type Pool struct {
	workers int
	buffer  int
	replay  ReplayFunc
	jobs    chan Job
	results chan Result
	wg      sync.WaitGroup
	stopped atomic.Bool
}

// Option configures a Pool.
type Option func(*Pool)

// WithWorkers sets the number of replay goroutines. Values below 1 are ignored.
func WithWorkers(n int) Option {
	return func(p *Pool) {
		if n >= 1 {
			p.workers = n
		}
	}
}

// WithBufferSize sets the capacity of the job and result queues. Values
// below 1 are ignored.
func WithBufferSize(n int) Option {
	return func(p *Pool) {
		if n >= 1 {
			p.buffer = n
		}
	}
}

// NewPool creates a pool running replay. Without options it has one worker
// and queues of ten.
func NewPool(replay ReplayFunc, opts ...Option) *Pool {
	p := &Pool{
		workers: defaultWorkers,
		buffer:  defaultBuffer,
		replay:  replay,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.jobs = make(chan Job, p.buffer)
	p.results = make(chan Result, p.buffer)
	return p
}

// Start launches the workers.
func (p *Pool) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.run()
	}
}

func (p *Pool) run() {
	defer p.wg.Done()
	for job := range p.jobs {
		if p.stopped.Load() {
			continue
		}
		p.results <- p.replay(job)
	}
}

// Submit queues a job, blocking while the queue is full.
func (p *Pool) Submit(job Job) {
	p.jobs <- job
}

// Stop makes the workers skip every job they have not started. Queued jobs
// are drained without producing a result.
func (p *Pool) Stop() {
	p.stopped.Store(true)
}

// IsStopped reports whether Stop has been called.
func (p *Pool) IsStopped() bool {
	return p.stopped.Load()
}

// Close ends submission and waits for the workers. The result channel is
// closed once the last worker returns.
func (p *Pool) Close() {
	close(p.jobs)
	p.wg.Wait()
	close(p.results)
}

// Results returns the channel the workers send results on.
func (p *Pool) Results() <-chan Result {
	return p.results
}

// Workers returns the number of replay goroutines.
func (p *Pool) Workers() int {
	return p.workers
}
