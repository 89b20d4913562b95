package board

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/samber/lo"
)

var (
	ErrIllegalCharacter = errors.New("illegal map character")
	ErrNoRobot          = errors.New("map has no robot")
	ErrMultipleRobots   = errors.New("map has more than one robot")
	ErrEmptyMap         = errors.New("map is empty")
)

// Parse reads a map in the contest text format. The first line is the top
// row. Reading stops at end of input or at the first empty line, after
// which metadata may follow.
func Parse(r io.Reader) (*Board, error) {
	var rows [][]Cell
	br := bufio.NewReader(r)
	lineno := 0
	for {
		line, err := br.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, err
		}
		if line == "" && err == io.EOF {
			break
		}
		lineno++
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			break
		}
		row := make([]Cell, 0, len(line))
		for col, ch := range line {
			c, ok := CellFromRune(ch)
			if !ok {
				return nil, fmt.Errorf("%w: %q at line %d column %d",
					ErrIllegalCharacter, ch, lineno, col+1)
			}
			row = append(row, c)
		}
		rows = append(rows, row)
		if err == io.EOF {
			break
		}
	}
	if len(rows) == 0 {
		return nil, ErrEmptyMap
	}
	robots := lo.SumBy(rows, func(row []Cell) int {
		return lo.Count(row, Robot)
	})
	switch {
	case robots == 0:
		return nil, ErrNoRobot
	case robots > 1:
		return nil, fmt.Errorf("%w: found %d", ErrMultipleRobots, robots)
	}
	// The file lists the top row first.
	slices.Reverse(rows)
	return New(rows), nil
}

// ParseString is Parse for an in-memory map.
func ParseString(s string) (*Board, error) {
	return Parse(strings.NewReader(s))
}

// MustParse is ParseString that panics on error. Meant for tests and the
// sample maps.
func MustParse(s string) *Board {
	b, err := ParseString(s)
	if err != nil {
		panic(err)
	}
	return b
}
