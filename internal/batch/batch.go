// Package batch generates many words at once, optionally in parallel.
//
// Each worker owns a generator with its own random stream derived from the
// batch seed, so a batch with a fixed seed and worker count is reproducible
// and workers never share mutable state. The structure itself is read-only
// and shared.
package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/leapstack-labs/incantata/pkg/core"
	"github.com/leapstack-labs/incantata/pkg/generator"
	"github.com/leapstack-labs/incantata/pkg/random"
	"golang.org/x/sync/errgroup"
)

// DefaultMaxRejections is the rejection budget when Config.MaxRejections is zero.
const DefaultMaxRejections = 1000

// ErrTooManyRejections is returned when the filter rejects more words than
// the batch allows.
var ErrTooManyRejections = errors.New("too many words rejected by filter")

// Filter decides whether a generated word is kept.
// A Filter is used by a single worker goroutine.
type Filter interface {
	Accept(word string) (bool, error)
}

// FilterFunc adapts a plain function to a Filter.
type FilterFunc func(word string) (bool, error)

// Accept implements Filter.
func (f FilterFunc) Accept(word string) (bool, error) { return f(word) }

// Config configures a batch run.
type Config struct {
	Structure *core.Structure
	Count     int
	// Workers is the number of goroutines; values below 1 mean 1. It is
	// capped at Count.
	Workers int
	// Seed fixes the random streams. Zero picks a fresh seed, reported in
	// Result.Seed so the batch can be replayed.
	Seed uint64
	// NewFilter, when set, is called once per worker.
	NewFilter     func() (Filter, error)
	MaxRejections int
	Logger        *slog.Logger
}

// Result is the outcome of a batch run.
type Result struct {
	ID       string             `json:"id"`
	Seed     uint64             `json:"seed"`
	Workers  int                `json:"workers"`
	Words    []generator.Result `json:"words"`
	Rejected int                `json:"rejected"`
	Duration time.Duration      `json:"duration"`
}

// Texts returns the words as plain strings.
func (r *Result) Texts() []string {
	out := make([]string, len(r.Words))
	for i, w := range r.Words {
		out[i] = w.Text
	}
	return out
}

// Run generates cfg.Count words. It stops early, returning ctx.Err(), when
// ctx is cancelled. No partial result is returned on error.
func Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := core.Validate(cfg.Structure); err != nil {
		return nil, err
	}
	if cfg.Count < 0 {
		return nil, fmt.Errorf("count must not be negative, got %d", cfg.Count)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	if cfg.Count > 0 && workers > cfg.Count {
		workers = cfg.Count
	}

	maxRejections := cfg.MaxRejections
	if maxRejections <= 0 {
		maxRejections = DefaultMaxRejections
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = random.New().Seed()
	}
	parent := random.NewSeeded(seed)

	res := &Result{
		ID:      uuid.NewString(),
		Seed:    seed,
		Workers: workers,
		Words:   make([]generator.Result, cfg.Count),
	}
	logger.Debug("batch started", "batch_id", res.ID, "count", cfg.Count, "workers", workers, "seed", seed)

	type worker struct {
		gen    *generator.Generator
		filter Filter
	}
	pool := make([]worker, workers)
	for w := range pool {
		gen, err := generator.New(cfg.Structure, parent.Derive(w))
		if err != nil {
			return nil, err
		}
		pool[w].gen = gen
		if cfg.NewFilter != nil {
			if pool[w].filter, err = cfg.NewFilter(); err != nil {
				return nil, fmt.Errorf("failed to create filter: %w", err)
			}
		}
	}

	start := time.Now()
	var rejected atomic.Int64

	eg, egctx := errgroup.WithContext(ctx)
	for w, wk := range pool {
		eg.Go(func() error {
			// Worker w fills slots w, w+workers, w+2*workers, ...
			for i := w; i < cfg.Count; i += workers {
				for {
					if err := egctx.Err(); err != nil {
						return err
					}

					word, err := wk.gen.Next()
					if err != nil {
						return err
					}

					if wk.filter != nil {
						ok, err := wk.filter.Accept(word.Text)
						if err != nil {
							return fmt.Errorf("filter failed on %q: %w", word.Text, err)
						}
						if !ok {
							if n := rejected.Add(1); n > int64(maxRejections) {
								return fmt.Errorf("%w (limit %d)", ErrTooManyRejections, maxRejections)
							}
							logger.Debug("word rejected", "batch_id", res.ID, "word", word.Text)
							continue
						}
					}

					res.Words[i] = word
					break
				}
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		logger.Debug("batch failed", "batch_id", res.ID, "error", err)
		return nil, err
	}

	res.Rejected = int(rejected.Load())
	res.Duration = time.Since(start)
	logger.Debug("batch finished", "batch_id", res.ID, "rejected", res.Rejected, "duration", res.Duration)
	return res, nil
}
