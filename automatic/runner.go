package automatic

import (
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/domino14/lambdaminer/cache"
	"github.com/domino14/lambdaminer/config"
	"github.com/domino14/lambdaminer/game"
	"github.com/domino14/lambdaminer/solver"
)

const LogHeader = "name,moves,score,outcome,visited,elapsed-ms\n"

// Result is the outcome of solving one map.
type Result struct {
	Name     string
	Solution *solver.Solution
}

// CSV formats r as a line of the batch log. Names are quoted as needed.
func (r Result) CSV() string {
	s := r.Solution
	var sb strings.Builder
	w := csv.NewWriter(&sb)
	// Writes to a strings.Builder cannot fail.
	_ = w.Write([]string{
		r.Name, s.Moves(), strconv.Itoa(s.Score()), s.Game.State().String(),
		strconv.Itoa(s.Visited), strconv.FormatInt(s.Elapsed.Milliseconds(), 10),
	})
	w.Flush()
	return sb.String()
}

// MapRunner solves maps one after another. Each runner owns its solver, so
// runners on different goroutines share no search state.
type MapRunner struct {
	config  *config.Config
	logchan chan string
	solver  solver.Solver
}

func NewMapRunner(logchan chan string, cfg *config.Config) *MapRunner {
	return &MapRunner{logchan: logchan, config: cfg}
}

// Solve loads and solves one map.
func (r *MapRunner) Solve(ctx context.Context, e MapEntry) (Result, error) {
	b, err := cache.LoadMap(r.config, e.Path)
	if err != nil {
		return Result{}, err
	}
	g, err := game.NewGame(b)
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", e.Path, err)
	}
	if err := r.solver.Init(g, r.config); err != nil {
		return Result{}, err
	}
	log.Debug().Str("name", e.Name).Int("width", b.Width()).Int("height", b.Height()).
		Msg("solving-map")
	sol, err := r.solver.Solve(ctx)
	if sol == nil {
		return Result{}, err
	}
	res := Result{Name: e.Name, Solution: sol}
	if r.logchan != nil {
		r.logchan <- res.CSV()
	}
	return res, err
}
