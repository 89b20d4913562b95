// Package automatic solves batches of maps in parallel and logs one CSV line
// per map.
package automatic

import (
	"context"
	"errors"
	"expvar"
	"io"
	"sync/atomic"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/domino14/lambdaminer/config"
)

var (
	MapsSolved *expvar.Int
	IsSolving  *expvar.Int
)

func init() {
	MapsSolved = expvar.NewInt("mapsSolved")
	IsSolving = expvar.NewInt("isSolving")
}

var ErrBatchRunning = errors.New("a batch is already running, please wait till complete")

// Set for the whole of a SolveBatch call.
var batchRunning atomic.Bool

type job struct {
	idx   int
	entry MapEntry
}

// SolveBatch solves every map of m with the given number of parallel
// runners, writing the CSV log to out. Results come back in manifest order.
// The first error stops the batch; maps already solved are still logged.
func SolveBatch(ctx context.Context, cfg *config.Config, m *Manifest,
	threads int, out io.Writer) ([]Result, error) {

	if !batchRunning.CompareAndSwap(false, true) {
		return nil, ErrBatchRunning
	}
	defer batchRunning.Store(false)
	if threads < 1 {
		threads = 1
	}
	log.Debug().Int("maps", len(m.Maps)).Int("threads", threads).Msg("starting-batch")

	MapsSolved.Set(0)
	results := make([]Result, len(m.Maps))
	jobs := make(chan job)
	logChan := make(chan string, 100)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(jobs)
		for i, e := range m.Maps {
			select {
			case jobs <- job{idx: i, entry: e}:
			case <-gctx.Done():
				log.Info().Msg("got stop signal, exiting soon...")
				return nil
			}
		}
		return nil
	})

	for i := 0; i < threads; i++ {
		g.Go(func() error {
			r := NewMapRunner(logChan, cfg)
			IsSolving.Add(1)
			defer IsSolving.Add(-1)
			for j := range jobs {
				res, err := r.Solve(gctx, j.entry)
				if res.Solution != nil {
					results[j.idx] = res
					MapsSolved.Add(1)
				}
				if err != nil {
					return err
				}
			}
			return nil
		})
	}

	var werr error
	logDone := make(chan struct{})
	go func() {
		defer close(logDone)
		if _, err := io.WriteString(out, LogHeader); err != nil {
			werr = err
		}
		for msg := range logChan {
			if werr != nil {
				continue
			}
			_, werr = io.WriteString(out, msg)
		}
	}()

	err := g.Wait()
	close(logChan)
	<-logDone
	log.Info().Int64("solved", MapsSolved.Value()).Msg("batch-finished")
	if err != nil {
		return results, err
	}
	return results, werr
}
