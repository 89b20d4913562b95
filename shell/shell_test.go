package shell

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/lambdaminer/board"
	"github.com/domino14/lambdaminer/config"
	"github.com/domino14/lambdaminer/game"
)

func TestExtractFields(t *testing.T) {
	is := is.New(t)
	type testdata struct {
		line   string
		expCmd *shellcmd
		expErr error
	}
	cases := []testdata{
		{"", nil, errNoData},
		{"   ", nil, errNoData},
		{"load -sample contest1",
			&shellcmd{"load", nil, CmdOptions{"sample": {"contest1"}}},
			nil},
		{"move LDR",
			&shellcmd{"move", []string{"LDR"}, CmdOptions{}},
			nil},
		{`load "my maps/flood 1.map"`,
			&shellcmd{"load", []string{"my maps/flood 1.map"}, CmdOptions{}},
			nil},
		{"solve -dedup zobrist -timeout 1s extra ",
			&shellcmd{"solve", []string{"extra"},
				CmdOptions{"dedup": {"zobrist"}, "timeout": {"1s"}}},
			nil,
		},
		{"solve -dedup",
			nil, errWrongOptionSyntax},
	}
	for _, tc := range cases {
		cmd, err := extractFields(tc.line)
		is.Equal(cmd, tc.expCmd)
		is.Equal(err, tc.expErr)
	}
}

func newController() *ShellController {
	return &ShellController{config: config.DefaultConfig()}
}

func run(t *testing.T, sc *ShellController, line string) (string, error) {
	t.Helper()
	cmd, err := extractFields(line)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := sc.dispatch(cmd)
	if resp == nil {
		return "", err
	}
	return resp.message, err
}

func TestNeedsMap(t *testing.T) {
	is := is.New(t)
	sc := newController()
	for _, line := range []string{"show", "m R", "u", "reset", "score", "solve"} {
		_, err := run(t, sc, line)
		is.Equal(err, errNoMap)
	}
	for _, line := range []string{"stats", "info"} {
		_, err := run(t, sc, line)
		is.Equal(err, errNoSolution)
	}
}

func TestMoveUndoReset(t *testing.T) {
	is := is.New(t)
	sc := newController()
	out, err := run(t, sc, "load -sample corridor")
	is.NoErr(err)
	is.True(strings.Contains(out, "Moves:   0"))

	_, err = run(t, sc, "m rr")
	is.NoErr(err)
	out, err = run(t, sc, "score")
	is.NoErr(err)
	is.True(strings.Contains(out, "Played:  RR\n"))
	is.True(strings.Contains(out, "Score:   23 (ongoing)"))

	_, err = run(t, sc, "u")
	is.NoErr(err)
	is.Equal(game.CommandsString(sc.played), "R")
	is.Equal(sc.current().Robot(), board.Position{X: 2, Y: 1})

	_, err = run(t, sc, "undo -n 5")
	is.Equal(err, errNothingToUndo)

	_, err = run(t, sc, "m R R")
	is.NoErr(err)
	is.Equal(game.CommandsString(sc.played), "RRR")

	_, err = run(t, sc, "reset")
	is.NoErr(err)
	is.Equal(len(sc.history), 1)
	is.Equal(len(sc.played), 0)

	_, err = run(t, sc, "m RX")
	is.True(errors.Is(err, game.ErrIllegalCommand))
	is.Equal(len(sc.history), 1)
}

func TestMovePastEnd(t *testing.T) {
	is := is.New(t)
	sc := newController()
	_, err := run(t, sc, "load -sample corridor")
	is.NoErr(err)
	_, err = run(t, sc, "m RRRRR")
	is.True(errors.Is(err, game.ErrGameOver))
	// The winning moves were kept.
	is.True(sc.current().Won())
	is.Equal(game.CommandsString(sc.played), "RRRR")
}

func TestLoadFile(t *testing.T) {
	is := is.New(t)
	sc := newController()
	path := filepath.Join(t.TempDir(), "contest1.map")
	is.NoErr(os.WriteFile(path, []byte(board.Contest1), 0o644))
	out, err := run(t, sc, "load "+path)
	is.NoErr(err)
	is.True(strings.Contains(out, "Lambdas: 0 (3 left)"))
	is.Equal(sc.mapName, path)

	_, err = run(t, sc, "load -sample nope")
	is.True(err != nil)
	_, err = run(t, sc, "load")
	is.True(err != nil)
}

func TestSolve(t *testing.T) {
	is := is.New(t)
	sc := newController()
	_, err := run(t, sc, "load -sample corridor")
	is.NoErr(err)
	out, err := run(t, sc, "solve")
	is.NoErr(err)
	is.True(strings.Contains(out, "Solution: RRRR\n"))
	is.True(strings.Contains(out, "Score:    71 (won)\n"))
	is.True(sc.current().Ongoing())

	out, err = run(t, sc, "show -solution true")
	is.NoErr(err)
	is.True(strings.HasPrefix(out, "Solution: RRRR\n"))
	is.True(strings.Contains(out, "State:   won"))

	out, err = run(t, sc, "info")
	is.NoErr(err)
	is.True(strings.Contains(out, "extent = 8"))

	out, err = run(t, sc, "stats -bins 4")
	is.NoErr(err)
	is.True(strings.HasPrefix(out, "n=7 "))

	out, err = run(t, sc, "solve -play true")
	is.NoErr(err)
	is.True(sc.current().Won())
	is.True(strings.Contains(out, "State:   won"))

	_, err = run(t, sc, "solve")
	is.Equal(err, game.ErrGameOver)
}

func TestShowSolutionNeedsSolve(t *testing.T) {
	is := is.New(t)
	sc := newController()
	_, err := run(t, sc, "load -sample corridor")
	is.NoErr(err)
	_, err = run(t, sc, "show -solution true")
	is.Equal(err, errNoSolution)

	_, err = run(t, sc, "solve")
	is.NoErr(err)
	_, err = run(t, sc, "load -sample corridor")
	is.NoErr(err)
	_, err = run(t, sc, "show -solution true")
	is.Equal(err, errNoSolution)
}

func TestSolveZobrist(t *testing.T) {
	is := is.New(t)
	sc := newController()
	_, err := run(t, sc, "load -sample rockblocked")
	is.NoErr(err)
	out, err := run(t, sc, "solve -dedup zobrist")
	is.NoErr(err)
	is.True(strings.Contains(out, "Solution: A\n"))
	out, err = run(t, sc, "info")
	is.NoErr(err)
	is.True(strings.Contains(out, "no grid cache"))

	_, err = run(t, sc, "solve -dedup md5")
	is.True(err != nil)
	_, err = run(t, sc, "solve -timeout soon")
	is.True(err != nil)
}

func TestHelpAndExit(t *testing.T) {
	is := is.New(t)
	sc := newController()
	out, err := run(t, sc, "help")
	is.NoErr(err)
	is.True(strings.HasPrefix(out, "Commands:"))
	out, err = run(t, sc, "help solve")
	is.NoErr(err)
	is.True(strings.Contains(out, "-dedup"))
	out, err = run(t, sc, "help nope")
	is.NoErr(err)
	is.Equal(out, "There is no help text for the topic nope")

	_, err = run(t, sc, "exit")
	is.Equal(err, errQuit)
	_, err = run(t, sc, "frobnicate")
	is.True(err != nil)
}

func TestComplete(t *testing.T) {
	is := is.New(t)
	c := NewShellCompleter(newController())
	complete := func(line string) []string {
		matches, _ := c.Do([]rune(line), len(line))
		var out []string
		for _, m := range matches {
			out = append(out, string(m))
		}
		return out
	}
	is.Equal(complete("sol"), []string{"ve"})
	is.Equal(complete("solve -d"), []string{"edup"})
	is.Equal(complete("solve -dedup z"), []string{"obrist"})
	is.Equal(complete("load -sample co"), []string{"ntest1", "rridor"})
	is.Equal(complete("help s"), []string{"olve", "tats"})
	is.Equal(complete("show -solution t"), []string{"rue"})
}
