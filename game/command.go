package game

import (
	"errors"
	"fmt"
	"strings"
)

// A Command is one robot instruction.
type Command byte

const (
	Left  Command = 'L'
	Right Command = 'R'
	Up    Command = 'U'
	Down  Command = 'D'
	Wait  Command = 'W'
	Abort Command = 'A'
)

// SearchCommands are the commands explored by the solver, in the order they
// are tried. Abort is never explored.
var SearchCommands = []Command{Left, Down, Right, Up, Wait}

var ErrIllegalCommand = errors.New("illegal robot command")

// Valid reports whether c is one of the six commands.
func (c Command) Valid() bool {
	switch c {
	case Left, Right, Up, Down, Wait, Abort:
		return true
	}
	return false
}

// delta is the robot's displacement for c.
func (c Command) delta() (dx, dy int) {
	switch c {
	case Left:
		return -1, 0
	case Right:
		return 1, 0
	case Up:
		return 0, 1
	case Down:
		return 0, -1
	}
	return 0, 0
}

func (c Command) String() string {
	return string(c)
}

// ParseCommands parses a move string such as "LDRRUA".
func ParseCommands(s string) ([]Command, error) {
	cmds := make([]Command, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := Command(s[i])
		if !c.Valid() {
			return nil, fmt.Errorf("%w: %q at position %d", ErrIllegalCommand, s[i], i)
		}
		cmds = append(cmds, c)
	}
	return cmds, nil
}

// CommandsString joins commands back into a move string.
func CommandsString(cmds []Command) string {
	var sb strings.Builder
	sb.Grow(len(cmds))
	for _, c := range cmds {
		sb.WriteByte(byte(c))
	}
	return sb.String()
}
