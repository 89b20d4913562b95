package game

import (
	"slices"

	"github.com/domino14/lambdaminer/board"
)

// moveRobot performs the robot part of a step. A move that is blocked still
// counts as a move.
func (g *Game) moveRobot(c Command) *Game {
	next := *g
	next.changes = nil
	if c == Abort {
		next.state = Aborted
		return &next
	}
	next.moves++

	b := g.board
	dx, dy := c.delta()
	xo, yo := g.robot.X, g.robot.Y
	xn, yn := xo+dx, yo+dy
	target := b.At(xn, yn)

	bld := board.NewBuilder(b)
	switch {
	case target.Passable():
	case target == board.Rock && dy == 0 && dx != 0 && b.At(xn+dx, yn) == board.Empty:
		bld.Set(xn+dx, yn, board.Rock)
	default:
		return &next
	}

	switch target {
	case board.Lambda:
		next.lambdasCollected++
		next.lambdasLeft--
	case board.LiftOpen:
		next.state = Won
	}
	bld.Set(xn, yn, board.Robot)
	bld.Set(xo, yo, board.Empty)
	next.robot = board.Position{X: xn, Y: yn}
	next.changes = bld.Changes()
	next.board = bld.Board()
	return &next
}

// updateMine moves the rocks and opens the lift. Every rule reads the board
// as it was before the update; results go to a fresh board, scanned bottom
// row first and left to right within a row.
func (g *Game) updateMine() *Game {
	next := *g
	cur := g.board
	bld := board.NewBuilder(cur)
	fall := func(xo, yo, xn, yn int) {
		bld.Set(xo, yo, board.Empty)
		bld.Set(xn, yn, board.Rock)
		if bld.At(xn, yn-1) == board.Robot {
			next.state = Lost
		}
	}
	empty := func(x, y int) bool {
		return cur.At(x, y) == board.Empty
	}

	for y := 0; y < cur.Height(); y++ {
		for x := 0; x < cur.Width(); x++ {
			switch cur.At(x, y) {
			case board.Rock:
				switch cur.At(x, y-1) {
				case board.Empty:
					fall(x, y, x, y-1)
				case board.Rock:
					if empty(x+1, y) && empty(x+1, y-1) {
						fall(x, y, x+1, y-1)
					} else if empty(x-1, y) && empty(x-1, y-1) {
						fall(x, y, x-1, y-1)
					}
				case board.Lambda:
					if empty(x+1, y) && empty(x+1, y-1) {
						fall(x, y, x+1, y-1)
					}
				}
			case board.LiftClosed:
				if g.lambdasLeft == 0 {
					bld.Set(x, y, board.LiftOpen)
				}
			}
		}
	}

	if mine := bld.Changes(); len(mine) > 0 {
		next.changes = append(slices.Clip(g.changes), mine...)
	}
	next.board = bld.Board()
	return &next
}
