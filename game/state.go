package game

// State is the lifecycle state of a game. Every state but Ongoing is
// terminal.
type State uint8

const (
	Ongoing State = iota
	Won
	Lost
	Aborted
)

func (s State) String() string {
	switch s {
	case Ongoing:
		return "ongoing"
	case Won:
		return "won"
	case Lost:
		return "lost"
	case Aborted:
		return "aborted"
	}
	return "unknown"
}

// Terminal reports whether no further commands can be issued.
func (s State) Terminal() bool {
	return s != Ongoing
}

// multiplier is the per-lambda score in state s.
func (s State) multiplier() int {
	switch s {
	case Aborted:
		return 50
	case Won:
		return 75
	}
	return 25
}
