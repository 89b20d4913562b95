package testhelpers

import (
	"testing"

	"github.com/domino14/lambdaminer/board"
	"github.com/domino14/lambdaminer/config"
	"github.com/domino14/lambdaminer/game"
)

var DefaultConfig = config.DefaultConfig()

// NewGame starts a game on the map text m, failing the test if it does not
// parse.
func NewGame(tb testing.TB, m string) *game.Game {
	tb.Helper()
	b, err := board.ParseString(m)
	if err != nil {
		tb.Fatal(err)
	}
	g, err := game.NewGame(b)
	if err != nil {
		tb.Fatal(err)
	}
	return g
}
