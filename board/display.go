package board

import (
	"fmt"
	"strings"
)

// ToDisplayText renders the board with a y-axis legend on the left, for
// the shell and the simulator.
func (b *Board) ToDisplayText() string {
	var sb strings.Builder
	for y := b.height - 1; y >= 0; y-- {
		sb.WriteString(fmt.Sprintf("%3d|", y))
		for x := 0; x < b.width; x++ {
			sb.WriteRune(b.At(x, y).Rune())
		}
		sb.WriteString("|\n")
	}
	sb.WriteString("   +" + strings.Repeat("-", b.width) + "+\n")
	return sb.String()
}
