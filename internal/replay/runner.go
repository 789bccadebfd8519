package replay

import (
	"github.com/lgbarn/chesscore-go/internal/config"
	"github.com/lgbarn/chesscore-go/internal/hashing"
	"github.com/lgbarn/chesscore-go/internal/matching"
	"github.com/lgbarn/chesscore-go/internal/output"
	"github.com/lgbarn/chesscore-go/internal/processing"
	"github.com/lgbarn/chesscore-go/internal/worker"
)

// Stats summarises a replay run.
type Stats struct {
	Games      int // games written
	Failed     int // games stopped by an error
	Finished   int // games that ended with a king captured
	Duplicates int // games dropped for repeating an earlier final position
	Filtered   int // games dropped by the game filter
}

// Option configures a Run.
type Option func(*runOptions)

type runOptions struct {
	filter matching.GameMatcher
}

// WithFilter drops games that replay without error but do not match m.
// Failed games are always written.
func WithFilter(m matching.GameMatcher) Option {
	return func(o *runOptions) {
		o.filter = m
	}
}

// Run replays games on a worker pool and writes one record per game to w,
// in input order. With cfg.Replay.StopOnError set, nothing after the first
// failing game is written. With cfg.Replay.SuppressDuplicates set, a game
// whose final position matches an earlier written game is dropped.
//
// Concurrency model: workers replay games in parallel, each on its own
// GameState, while this goroutine alone reorders results and writes them.
func Run(games []Game, cfg *config.Config, w output.GameWriter, opts ...Option) (Stats, error) {
	var o runOptions
	for _, opt := range opts {
		opt(&o)
	}

	var stats Stats
	if len(games) == 0 {
		return stats, w.Close()
	}

	bufferSize := cfg.Replay.BufferSize
	if bufferSize > len(games) {
		bufferSize = len(games)
	}
	pool := worker.NewPool(processGame(cfg.Replay.Analyze, o.filter),
		worker.WithWorkers(cfg.Replay.WorkerCount()),
		worker.WithBufferSize(bufferSize))
	pool.Start()
	cfg.Logf(config.Verbose, "replaying %d games on %d workers", len(games), pool.Workers())

	go func() {
		for i, g := range games {
			if pool.IsStopped() {
				break
			}
			pool.Submit(worker.Job{
				Number: g.Number,
				Source: g.Source,
				Line:   g.Line,
				FEN:    g.FEN,
				Moves:  g.Moves,
				Index:  i,
			})
		}
		pool.Close()
	}()

	// Results arrive in completion order; hold them until their turn.
	pending := make(map[int]worker.Result)
	next := 0
	var writeErr error

	var detector *hashing.DuplicateDetector
	if cfg.Replay.SuppressDuplicates {
		detector = hashing.NewDuplicateDetector(false, cfg.Replay.DuplicateCapacity)
	}

	for result := range pool.Results() {
		pending[result.Index] = result
		for {
			r, ok := pending[next]
			if !ok || pool.IsStopped() || writeErr != nil {
				break
			}
			delete(pending, next)
			next++

			if r.Skipped {
				stats.Filtered++
				continue
			}
			if detector != nil && r.Error == nil && detector.CheckAndAdd(r.State) {
				stats.Duplicates++
				cfg.Logf(config.Verbose, "game %d: duplicate final position", r.Number)
				continue
			}

			writeErr = w.WriteRecord(&output.Record{
				Number:   r.Number,
				State:    r.State,
				Analysis: r.Analysis,
				Err:      r.Error,
			})
			stats.Games++
			if r.State != nil && r.State.IsGameOver() {
				stats.Finished++
			}
			if r.Error != nil {
				stats.Failed++
				cfg.Logf(config.Verbose, "%v", r.Error)
				if cfg.Replay.StopOnError {
					pool.Stop()
				}
			}
		}
		if writeErr != nil {
			pool.Stop()
		}
	}

	if err := w.Close(); writeErr == nil {
		writeErr = err
	}
	cfg.Logf(config.Summary, "%d games replayed, %d failed, %d finished", stats.Games, stats.Failed, stats.Finished)
	if detector != nil {
		cfg.Logf(config.Summary, "%d duplicates dropped", stats.Duplicates)
	}
	if o.filter != nil {
		cfg.Logf(config.Summary, "%d games did not match %s", stats.Filtered, o.filter.Name())
	}
	return stats, writeErr
}

// processGame returns the worker function: it replays one job on its
// own GameState, applies the filter and, with analyze set, analyses the
// state reached.
func processGame(analyze bool, filter matching.GameMatcher) worker.ReplayFunc {
	return func(job worker.Job) worker.Result {
		gs, err := ReplayGame(Game{
			Number: job.Number,
			Source: job.Source,
			Line:   job.Line,
			FEN:    job.FEN,
			Moves:  job.Moves,
		})
		result := worker.Result{
			Number: job.Number,
			Index:  job.Index,
			State:  gs,
			Error:  err,
		}
		if filter != nil && err == nil && !filter.Match(gs) {
			result.Skipped = true
			return result
		}
		if analyze && gs != nil {
			result.Analysis = processing.AnalyzeGame(gs)
		}
		return result
	}
}
