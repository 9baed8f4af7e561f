package engine

// Phase is where the game stands, derived from the selection and the piles.
// It is never stored.
type Phase int

const (
	PhaseSelecting      Phase = iota // 0-2 cards selected
	PhaseResolvePending              // 3 selected, verdict available
	PhaseGameOver                    // deck empty, no Set on the tableau
)

func (p Phase) String() string {
	switch p {
	case PhaseSelecting:
		return "selecting"
	case PhaseResolvePending:
		return "resolve_pending"
	case PhaseGameOver:
		return "game_over"
	}
	return "unknown"
}

func (p Phase) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// Phase reports the current phase.
func (g *Game) Phase() Phase {
	switch {
	case g.IsOver():
		return PhaseGameOver
	case len(g.selected) == 3:
		return PhaseResolvePending
	}
	return PhaseSelecting
}
