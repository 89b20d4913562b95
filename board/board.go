// Package board holds the mine: a rectangular grid of cells addressed with
// y increasing upward. A Board is never modified once it has been built;
// every modification produces a new Board.
package board

import (
	"strings"
)

// Position is a coordinate on the board. Y = 0 is the bottom row.
type Position struct {
	X, Y int
}

// A Change records a single cell assignment made while building a board.
type Change struct {
	X, Y     int
	Old, New Cell
}

// Board is an immutable grid snapshot. Rows may be shorter than the board's
// width; the missing cells are Empty. Everything outside the rectangle
// [0, width) x [0, height) is Wall.
type Board struct {
	// rows[y] is the row at height y.
	rows   [][]Cell
	width  int
	height int
}

// New creates a board from rows ordered bottom to top. The rows are copied.
func New(rows [][]Cell) *Board {
	b := &Board{rows: make([][]Cell, len(rows)), height: len(rows)}
	for y, row := range rows {
		b.rows[y] = append([]Cell(nil), row...)
		if len(row) > b.width {
			b.width = len(row)
		}
	}
	return b
}

// Width is the length of the longest row.
func (b *Board) Width() int {
	return b.width
}

// Height is the number of rows.
func (b *Board) Height() int {
	return b.height
}

// OnBoard reports whether (x, y) lies within the board's rectangle.
func (b *Board) OnBoard(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// At returns the cell at (x, y).
func (b *Board) At(x, y int) Cell {
	if !b.OnBoard(x, y) {
		return Wall
	}
	row := b.rows[y]
	if x >= len(row) {
		return Empty
	}
	return row[x]
}

// Count returns how many cells hold c.
func (b *Board) Count(c Cell) int {
	n := 0
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			if b.At(x, y) == c {
				n++
			}
		}
	}
	return n
}

// Find returns the positions of all cells holding c, in row-major order
// starting from the bottom row.
func (b *Board) Find(c Cell) []Position {
	var ps []Position
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			if b.At(x, y) == c {
				ps = append(ps, Position{x, y})
			}
		}
	}
	return ps
}

// Set returns a copy of the board with (x, y) set to c. It panics if (x, y)
// is off the board.
func (b *Board) Set(x, y int, c Cell) *Board {
	bld := NewBuilder(b)
	bld.Set(x, y, c)
	return bld.Board()
}

// Equal reports whether both boards have the same dimensions and the same
// cell at every position.
func (b *Board) Equal(o *Board) bool {
	if b.width != o.width || b.height != o.height {
		return false
	}
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			if b.At(x, y) != o.At(x, y) {
				return false
			}
		}
	}
	return true
}

// String renders the board in map-file format, top row first.
func (b *Board) String() string {
	var sb strings.Builder
	sb.Grow((b.width + 1) * b.height)
	for y := b.height - 1; y >= 0; y-- {
		for x := 0; x < b.width; x++ {
			sb.WriteRune(b.At(x, y).Rune())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Builder assembles a new Board from an existing one. Rows are copied the
// first time they are written, so the source board is never touched.
type Builder struct {
	board   *Board
	owned   []bool
	changes []Change
}

// NewBuilder starts a new board with the contents of b.
func NewBuilder(b *Board) *Builder {
	nb := &Board{
		rows:   append([][]Cell(nil), b.rows...),
		width:  b.width,
		height: b.height,
	}
	return &Builder{board: nb, owned: make([]bool, b.height)}
}

// At returns the cell at (x, y) as currently built.
func (bld *Builder) At(x, y int) Cell {
	return bld.board.At(x, y)
}

// Set assigns c to (x, y). Writing beyond the end of a short row pads the
// row with Empty cells. It panics if (x, y) is off the board.
func (bld *Builder) Set(x, y int, c Cell) {
	b := bld.board
	if !b.OnBoard(x, y) {
		panic("board: set outside of the board")
	}
	old := b.At(x, y)
	if !bld.owned[y] {
		row := make([]Cell, max(len(b.rows[y]), x+1))
		copy(row, b.rows[y])
		for i := len(b.rows[y]); i < len(row); i++ {
			row[i] = Empty
		}
		b.rows[y] = row
		bld.owned[y] = true
	}
	for len(b.rows[y]) <= x {
		b.rows[y] = append(b.rows[y], Empty)
	}
	b.rows[y][x] = c
	bld.changes = append(bld.changes, Change{X: x, Y: y, Old: old, New: c})
}

// Changes lists every Set call so far, in order.
func (bld *Builder) Changes() []Change {
	return bld.changes
}

// Board finishes the build. The builder must not be used afterwards.
func (bld *Builder) Board() *Board {
	b := bld.board
	bld.board = nil
	return b
}
