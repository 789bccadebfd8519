package worker

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/lgbarn/chesscore-go/internal/engine"
)

// replayJob replays the job's moves on a fresh game, stopping at the first
// rejected move.
func replayJob(job Job) Result {
	gs := engine.NewGame()
	for _, mv := range job.Moves {
		if _, err := gs.Play(mv); err != nil {
			return Result{Number: job.Number, Index: job.Index, State: gs, Error: err}
		}
	}
	return Result{Number: job.Number, Index: job.Index, State: gs}
}

// countingReplay returns a replay function that increments a counter.
func countingReplay(counter *int32) ReplayFunc {
	return func(job Job) Result {
		atomic.AddInt32(counter, 1)
		return replayJob(job)
	}
}

// collectResults drains the result channel and returns the results by index.
func collectResults(pool *Pool) map[int]Result {
	out := make(map[int]Result)
	for r := range pool.Results() {
		out[r.Index] = r
	}
	return out
}

func job(i int, moves ...string) Job {
	return Job{Number: i + 1, Index: i, Moves: moves}
}

func TestPoolBasic(t *testing.T) {
	var processed int32
	pool := NewPool(countingReplay(&processed), WithWorkers(4), WithBufferSize(10))
	pool.Start()

	const numJobs = 10
	for i := 0; i < numJobs; i++ {
		pool.Submit(job(i, "e2e4", "e7e5"))
	}

	go pool.Close()

	results := collectResults(pool)
	if len(results) != numJobs {
		t.Errorf("results = %d; want %d", len(results), numJobs)
	}
	if got := atomic.LoadInt32(&processed); got != numJobs {
		t.Errorf("processed = %d; want %d", got, numJobs)
	}
	for i, r := range results {
		if r.Error != nil || r.State.Ply() != 2 {
			t.Errorf("result %d: ply %d, error %v; want ply 2, no error", i, r.State.Ply(), r.Error)
		}
	}
}

// TestPoolIndependentGames checks that concurrent replays do not share state.
func TestPoolIndependentGames(t *testing.T) {
	lines := [][]string{
		{"e2e4"},
		{"d2d4", "d7d5"},
		{"g1f3", "g8f6", "b1c3"},
		{"e2e5"}, // rejected
	}

	pool := NewPool(replayJob, WithWorkers(4), WithBufferSize(len(lines)))
	pool.Start()
	for i, moves := range lines {
		pool.Submit(job(i, moves...))
	}
	go pool.Close()

	results := collectResults(pool)
	for i, moves := range lines[:3] {
		if got := results[i].State.Ply(); got != len(moves) {
			t.Errorf("game %d: ply = %d; want %d", i+1, got, len(moves))
		}
	}
	if results[3].Error == nil {
		t.Error("game 4: expected an error for e2e5")
	}
	if results[3].Number != 4 {
		t.Errorf("game 4: Number = %d", results[3].Number)
	}
}

func TestPoolDefaults(t *testing.T) {
	pool := NewPool(replayJob)
	pool.Start()

	const numJobs = 5
	for i := 0; i < numJobs; i++ {
		pool.Submit(job(i))
	}

	go pool.Close()

	if got := len(collectResults(pool)); got != numJobs {
		t.Errorf("results = %d; want %d", got, numJobs)
	}
}

func TestPoolStop(t *testing.T) {
	var processed int32
	slow := func(j Job) Result {
		time.Sleep(10 * time.Millisecond)
		atomic.AddInt32(&processed, 1)
		return replayJob(j)
	}

	pool := NewPool(slow, WithWorkers(2), WithBufferSize(100))
	pool.Start()
	if pool.IsStopped() {
		t.Error("pool should not be stopped initially")
	}

	const numJobs = 50
	for i := 0; i < numJobs; i++ {
		pool.Submit(job(i, "e2e4"))
	}

	time.Sleep(30 * time.Millisecond)
	pool.Stop()
	if !pool.IsStopped() {
		t.Error("pool should be stopped after Stop()")
	}

	go pool.Close()
	results := collectResults(pool)

	// Each worker finishes at most the job it was on when Stop was called.
	if got := int(atomic.LoadInt32(&processed)); got >= numJobs || len(results) != got {
		t.Errorf("processed = %d, results = %d; want fewer than %d and equal", got, len(results), numJobs)
	}
}

func TestPoolOptions(t *testing.T) {
	tests := []struct {
		name        string
		opts        []Option
		wantWorkers int
		wantBuffer  int
	}{
		{"defaults", nil, 1, 10},
		{"with workers", []Option{WithWorkers(4)}, 4, 10},
		{"with buffer size", []Option{WithBufferSize(50)}, 1, 50},
		{"with both", []Option{WithWorkers(8), WithBufferSize(100)}, 8, 100},
		{"zero workers ignored", []Option{WithWorkers(0)}, 1, 10},
		{"negative workers ignored", []Option{WithWorkers(-1)}, 1, 10},
		{"negative buffer ignored", []Option{WithBufferSize(-5)}, 1, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool := NewPool(replayJob, tt.opts...)
			if pool.Workers() != tt.wantWorkers {
				t.Errorf("Workers() = %d; want %d", pool.Workers(), tt.wantWorkers)
			}
			if cap(pool.jobs) != tt.wantBuffer || cap(pool.results) != tt.wantBuffer {
				t.Errorf("queue capacity = %d/%d; want %d", cap(pool.jobs), cap(pool.results), tt.wantBuffer)
			}
		})
	}
}

// TestPoolNoRace is designed to be run with -race flag.
func TestPoolNoRace(t *testing.T) {
	var counter int32
	pool := NewPool(countingReplay(&counter), WithWorkers(8), WithBufferSize(50))
	pool.Start()

	const numJobs = 100
	go func() {
		for i := 0; i < numJobs; i++ {
			pool.Submit(job(i, "b1c3", "b8c6", "c3b1", "c6b8"))
		}
		pool.Close()
	}()

	results := collectResults(pool)

	if got := atomic.LoadInt32(&counter); got != numJobs {
		t.Errorf("processed = %d; want %d", got, numJobs)
	}
	if len(results) != numJobs {
		t.Errorf("results = %d; want %d", len(results), numJobs)
	}
}
