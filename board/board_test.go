package board

import (
	"errors"
	"strings"
	"testing"

	"github.com/matryer/is"
)

func TestParseContest1(t *testing.T) {
	is := is.New(t)
	b, err := ParseString(Contest1)
	is.NoErr(err)
	is.Equal(b.Width(), 6)
	is.Equal(b.Height(), 6)
	// bottom-left corner is the bottom wall row, the lift is on row 1.
	is.Equal(b.At(0, 0), Wall)
	is.Equal(b.At(0, 1), LiftClosed)
	is.Equal(b.At(4, 4), Robot)
	is.Equal(b.At(3, 4), Rock)
	is.Equal(b.Count(Lambda), 3)
	is.Equal(b.Find(Robot), []Position{{4, 4}})
}

func TestParseRoundTrip(t *testing.T) {
	is := is.New(t)
	for _, m := range []string{Contest1, Corridor, RockPush, Avalanche} {
		b := MustParse(m)
		is.Equal(b.String(), m)
	}
}

func TestParseErrors(t *testing.T) {
	is := is.New(t)
	_, err := ParseString("#R#x\n")
	is.True(errors.Is(err, ErrIllegalCharacter))
	_, err = ParseString("###\n# #\n")
	is.True(errors.Is(err, ErrNoRobot))
	_, err = ParseString("#RR#\n")
	is.True(errors.Is(err, ErrMultipleRobots))
	_, err = ParseString("")
	is.True(errors.Is(err, ErrEmptyMap))
}

func TestParseStopsAtBlankLine(t *testing.T) {
	is := is.New(t)
	b, err := ParseString("#R#\n###\n\nWater 3\n")
	is.NoErr(err)
	is.Equal(b.Height(), 2)
}

func TestParseLongLine(t *testing.T) {
	is := is.New(t)
	wide := "#R" + strings.Repeat(" ", 100000) + "L"
	b, err := ParseString(wide + "\n" + strings.Repeat("#", len(wide)))
	is.NoErr(err)
	is.Equal(b.Width(), len(wide))
	is.Equal(b.Height(), 2)
	is.Equal(b.At(len(wide)-1, 1), LiftClosed)
}

func TestRaggedRowsAndBoundary(t *testing.T) {
	is := is.New(t)
	b := MustParse(Ragged)
	is.Equal(b.Width(), 5)
	// "#R\" is shorter than the board; the rest of the row is empty.
	is.Equal(b.At(2, 2), Lambda)
	is.Equal(b.At(3, 2), Empty)
	is.Equal(b.At(4, 2), Empty)
	// outside the rectangle is wall.
	is.Equal(b.At(-1, 0), Wall)
	is.Equal(b.At(5, 2), Wall)
	is.Equal(b.At(0, 4), Wall)
	is.Equal(b.At(2, -1), Wall)
}

func TestSetIsCopyOnWrite(t *testing.T) {
	is := is.New(t)
	b := MustParse(Ragged)
	b2 := b.Set(4, 2, Rock)
	is.Equal(b.At(4, 2), Empty)
	is.Equal(b2.At(4, 2), Rock)
	is.True(!b.Equal(b2))
	is.True(b.Equal(b2.Set(4, 2, Empty)))
}

func TestBuilderChanges(t *testing.T) {
	is := is.New(t)
	b := MustParse(Corridor)
	bld := NewBuilder(b)
	bld.Set(2, 1, Robot)
	bld.Set(1, 1, Empty)
	is.Equal(bld.At(2, 1), Robot)
	is.Equal(bld.Changes(), []Change{
		{X: 2, Y: 1, Old: Empty, New: Robot},
		{X: 1, Y: 1, Old: Robot, New: Empty},
	})
	nb := bld.Board()
	is.Equal(b.At(1, 1), Robot)
	is.Equal(nb.At(1, 1), Empty)
}

func TestBuilderPanicsOffBoard(t *testing.T) {
	is := is.New(t)
	defer func() {
		is.True(recover() != nil)
	}()
	NewBuilder(MustParse(Corridor)).Set(7, 0, Rock)
}

func TestCellRunes(t *testing.T) {
	is := is.New(t)
	for c := Cell(0); c < NumCellTypes; c++ {
		got, ok := CellFromRune(c.Rune())
		is.True(ok)
		is.Equal(got, c)
	}
	is.True(Lambda.Passable())
	is.True(!LiftClosed.Passable())
	is.True(!Rock.Passable())
}
