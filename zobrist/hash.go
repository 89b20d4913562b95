package zobrist

import (
	"lukechampine.com/frand"

	"github.com/domino14/lambdaminer/board"
)

const bignum = 1<<63 - 2

// generate a zobrist hash for a mine.
// https://en.wikipedia.org/wiki/Zobrist_hashing
type Zobrist struct {
	posTable [][board.NumCellTypes]uint64

	width  int
	height int
}

func (z *Zobrist) Initialize(width, height int) {
	z.width = width
	z.height = height
	z.posTable = make([][board.NumCellTypes]uint64, width*height)
	for i := range z.posTable {
		for j := 0; j < board.NumCellTypes; j++ {
			z.posTable[i][j] = frand.Uint64n(bignum) + 1
		}
	}
}

func (z *Zobrist) Width() int {
	return z.width
}

func (z *Zobrist) Height() int {
	return z.height
}

// Hash hashes every cell of b. b must have the dimensions the table was
// initialized with.
func (z *Zobrist) Hash(b *board.Board) uint64 {
	key := uint64(0)
	for y := 0; y < z.height; y++ {
		for x := 0; x < z.width; x++ {
			key ^= z.posTable[y*z.width+x][b.At(x, y)]
		}
	}
	return key
}

// AddChanges updates key for a list of cell assignments, such as the ones
// made by a single game step.
func (z *Zobrist) AddChanges(key uint64, changes []board.Change) uint64 {
	for _, c := range changes {
		if c.Old == c.New {
			continue
		}
		pos := z.posTable[c.Y*z.width+c.X]
		key ^= pos[c.Old]
		key ^= pos[c.New]
	}
	return key
}
