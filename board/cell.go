package board

import "fmt"

// A Cell is the content of a single square of the mine.
type Cell uint8

const (
	Robot Cell = iota
	Wall
	Rock
	Lambda
	LiftClosed
	LiftOpen
	Earth
	Empty
)

// NumCellTypes is the number of distinct Cell values.
const NumCellTypes = 8

var cellRunes = [NumCellTypes]rune{
	Robot:      'R',
	Wall:       '#',
	Rock:       '*',
	Lambda:     '\\',
	LiftClosed: 'L',
	LiftOpen:   'O',
	Earth:      '.',
	Empty:      ' ',
}

// CellFromRune maps a map-file character to a Cell.
func CellFromRune(r rune) (Cell, bool) {
	switch r {
	case 'R':
		return Robot, true
	case '#':
		return Wall, true
	case '*':
		return Rock, true
	case '\\':
		return Lambda, true
	case 'L':
		return LiftClosed, true
	case 'O':
		return LiftOpen, true
	case '.':
		return Earth, true
	case ' ':
		return Empty, true
	}
	return Empty, false
}

// Rune is the map-file character for c.
func (c Cell) Rune() rune {
	if int(c) >= len(cellRunes) {
		return '?'
	}
	return cellRunes[c]
}

func (c Cell) String() string {
	switch c {
	case Robot:
		return "robot"
	case Wall:
		return "wall"
	case Rock:
		return "rock"
	case Lambda:
		return "lambda"
	case LiftClosed:
		return "closed-lift"
	case LiftOpen:
		return "open-lift"
	case Earth:
		return "earth"
	case Empty:
		return "empty"
	}
	return fmt.Sprintf("cell(%d)", uint8(c))
}

// Passable reports whether the robot may step onto c without pushing
// anything.
func (c Cell) Passable() bool {
	switch c {
	case Empty, Earth, Lambda, LiftOpen:
		return true
	}
	return false
}
