// Package game encapsulates the rules of the mine: moving the robot,
// letting rocks fall, opening the lift and keeping score. A Game is
// immutable; Step returns the game after one more command.
package game

import (
	"errors"
	"fmt"
	"strings"

	"github.com/domino14/lambdaminer/board"
)

var ErrGameOver = errors.New("game is over")

// Game is one state of a mining game.
type Game struct {
	board *board.Board
	robot board.Position

	moves            int
	lambdasLeft      int
	lambdasCollected int
	state            State

	// changes are the cell assignments made by the Step that produced this
	// game, in order.
	changes []board.Change
}

// NewGame starts a game on b. The board must hold exactly one robot.
func NewGame(b *board.Board) (*Game, error) {
	robots := b.Find(board.Robot)
	switch {
	case len(robots) == 0:
		return nil, board.ErrNoRobot
	case len(robots) > 1:
		return nil, fmt.Errorf("%w: found %d", board.ErrMultipleRobots, len(robots))
	}
	return &Game{
		board:       b,
		robot:       robots[0],
		lambdasLeft: b.Count(board.Lambda),
	}, nil
}

func (g *Game) Board() *board.Board {
	return g.board
}

func (g *Game) Robot() board.Position {
	return g.robot
}

func (g *Game) Moves() int {
	return g.moves
}

func (g *Game) LambdasLeft() int {
	return g.lambdasLeft
}

func (g *Game) LambdasCollected() int {
	return g.lambdasCollected
}

func (g *Game) State() State {
	return g.state
}

func (g *Game) Ongoing() bool {
	return g.state == Ongoing
}

func (g *Game) Won() bool {
	return g.state == Won
}

func (g *Game) Lost() bool {
	return g.state == Lost
}

func (g *Game) Aborted() bool {
	return g.state == Aborted
}

// Terminal reports whether the game has ended, and how.
func (g *Game) Terminal() (bool, State) {
	return g.state.Terminal(), g.state
}

// Changes lists the cells that the last Step assigned, in order. Replaying
// them on the previous board yields this game's board.
func (g *Game) Changes() []board.Change {
	return g.changes
}

// Score is the score of the game as it stands.
func (g *Game) Score() int {
	return g.state.multiplier()*g.lambdasCollected - g.moves
}

// Step applies one command and lets the mine update. It returns
// ErrGameOver, together with g itself, if the game has already ended.
func (g *Game) Step(c Command) (*Game, error) {
	if !c.Valid() {
		return g, fmt.Errorf("%w: %q", ErrIllegalCommand, byte(c))
	}
	if g.state.Terminal() {
		return g, ErrGameOver
	}
	next := g.moveRobot(c)
	if next.state != Aborted {
		next = next.updateMine()
	}
	return next, nil
}

// Play applies cmds in order until the game ends. Commands after the end
// are ignored.
func (g *Game) Play(cmds []Command) (*Game, error) {
	cur := g
	for _, c := range cmds {
		if !cur.Ongoing() {
			break
		}
		next, err := cur.Step(c)
		if err != nil {
			return cur, err
		}
		cur = next
	}
	return cur, nil
}

// ToDisplayText shows the board followed by the counters.
func (g *Game) ToDisplayText() string {
	var sb strings.Builder
	sb.WriteString(g.board.ToDisplayText())
	fmt.Fprintf(&sb, "Moves:   %d\n", g.moves)
	fmt.Fprintf(&sb, "Lambdas: %d (%d left)\n", g.lambdasCollected, g.lambdasLeft)
	fmt.Fprintf(&sb, "Score:   %d\n", g.Score())
	fmt.Fprintf(&sb, "State:   %s\n", g.state)
	return sb.String()
}
