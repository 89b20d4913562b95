package solver

import (
	"context"
	"testing"

	"github.com/matryer/is"
	"github.com/pbnjay/memory"

	"github.com/domino14/lambdaminer/board"
	"github.com/domino14/lambdaminer/config"
	"github.com/domino14/lambdaminer/game"
	"github.com/domino14/lambdaminer/testhelpers"
)

// The lambda can be collected but the lift is walled off.
const walledLift = `#####
#R\#L
#####
`

func newSolver(t *testing.T, m string, dedup string) *Solver {
	t.Helper()
	g := testhelpers.NewGame(t, m)
	s := &Solver{}
	if err := s.Init(g, testhelpers.DefaultConfig); err != nil {
		t.Fatal(err)
	}
	if err := s.SetDedup(dedup); err != nil {
		t.Fatal(err)
	}
	return s
}

func TestCorridor(t *testing.T) {
	is := is.New(t)
	s := newSolver(t, board.Corridor, config.DedupSnapshot)
	sol, err := s.Solve(context.Background())
	is.NoErr(err)
	is.Equal(sol.Moves(), "RRRR")
	is.True(sol.Game.Won())
	is.Equal(sol.Score(), 75-4)
	is.True(sol.Complete)
}

func TestContest1Wins(t *testing.T) {
	is := is.New(t)
	s := newSolver(t, board.Contest1, config.DedupSnapshot)
	sol, err := s.Solve(context.Background())
	is.NoErr(err)
	is.True(sol.Game.Won())
	// Breadth first finds a shortest win; LDRDDUULLLDDL wins in 13.
	is.True(sol.Score() >= 75*3-13)

	// Replaying the moves from scratch gives the same game.
	g, err := game.NewGame(board.MustParse(board.Contest1))
	is.NoErr(err)
	g, err = g.Play(sol.Commands)
	is.NoErr(err)
	is.True(g.Won())
	is.Equal(g.Score(), sol.Score())
	is.True(g.Board().Equal(sol.Game.Board()))
}

func TestDeterministic(t *testing.T) {
	is := is.New(t)
	first, err := newSolver(t, board.Contest1, config.DedupSnapshot).Solve(context.Background())
	is.NoErr(err)
	second, err := newSolver(t, board.Contest1, config.DedupSnapshot).Solve(context.Background())
	is.NoErr(err)
	is.Equal(first.Moves(), second.Moves())
	is.Equal(first.Visited, second.Visited)
	is.Equal(first.Expanded, second.Expanded)
}

func TestZobristDedupAgrees(t *testing.T) {
	is := is.New(t)
	for _, m := range []string{board.Corridor, board.Contest1, board.Avalanche, walledLift} {
		snap, err := newSolver(t, m, config.DedupSnapshot).Solve(context.Background())
		is.NoErr(err)
		zs := newSolver(t, m, config.DedupZobrist)
		zob, err := zs.Solve(context.Background())
		is.NoErr(err)
		is.Equal(snap.Moves(), zob.Moves())
		is.Equal(snap.Visited, zob.Visited)
		is.True(zs.Cache() == nil)
	}
}

func TestAbortsWhenLiftUnreachable(t *testing.T) {
	is := is.New(t)
	s := newSolver(t, walledLift, config.DedupSnapshot)
	sol, err := s.Solve(context.Background())
	is.NoErr(err)
	is.Equal(sol.Moves(), "RA")
	is.True(sol.Game.Aborted())
	is.Equal(sol.Score(), 50-1)
}

func TestNothingToDo(t *testing.T) {
	is := is.New(t)
	// The robot cannot move and there is nothing to collect.
	s := newSolver(t, board.RockBlocked, config.DedupSnapshot)
	sol, err := s.Solve(context.Background())
	is.NoErr(err)
	is.Equal(sol.Moves(), "A")
	is.Equal(sol.Score(), 0)
	// The start, and the board after the lift opens.
	is.Equal(sol.Visited, 2)
}

func TestVisitedIgnoresMoveCount(t *testing.T) {
	is := is.New(t)
	s := newSolver(t, board.Corridor, config.DedupSnapshot)
	sol, err := s.Solve(context.Background())
	is.NoErr(err)
	// Boards differ only in the robot column and the lift: columns 1-2
	// before the lambda is taken, 1-5 after.
	is.Equal(sol.Visited, 7)
	is.Equal(s.Cache().Original().Read(5, 1), board.LiftClosed)
}

func TestCancelled(t *testing.T) {
	is := is.New(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := newSolver(t, board.Contest1, config.DedupSnapshot)
	sol, err := s.Solve(ctx)
	is.Equal(err, context.Canceled)
	is.True(sol != nil)
	is.True(!sol.Complete)
	is.Equal(sol.Moves(), "A")
}

func TestMemoryBudget(t *testing.T) {
	is := is.New(t)
	total := memory.TotalMemory()
	if total == 0 {
		t.Skip("total memory unknown")
	}
	s := newSolver(t, board.Contest1, config.DedupSnapshot)
	s.SetMemoryFraction(2 / float64(total))
	sol, err := s.Solve(context.Background())
	is.NoErr(err)
	is.True(!sol.Complete)
	is.Equal(sol.Moves(), "A")
}

func TestScoresRecorded(t *testing.T) {
	is := is.New(t)
	s := newSolver(t, board.Corridor, config.DedupSnapshot)
	sol, err := s.Solve(context.Background())
	is.NoErr(err)
	is.Equal(s.Scores().Count(), sol.Expanded)
	is.Equal(s.Scores().Max(), float64(75-4))
}

func TestBadDedup(t *testing.T) {
	is := is.New(t)
	s := &Solver{}
	is.True(s.SetDedup("md5") != nil)
}

func BenchmarkSolveContest1(b *testing.B) {
	g := testhelpers.NewGame(b, board.Contest1)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s := &Solver{}
		if err := s.Init(g, nil); err != nil {
			b.Fatal(err)
		}
		if _, err := s.Solve(context.Background()); err != nil {
			b.Fatal(err)
		}
	}
}
