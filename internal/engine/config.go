package engine

// GameConfig holds the rules for a new game.
type GameConfig struct {
	TableauSize     int    // cards dealt face up at the start (default 12)
	DealSize        int    // cards added by DealMore (default 3)
	MatchReward     int    // points for a resolved Set
	MismatchPenalty int    // points lost for a resolved non-Set
	DeselectPenalty int    // points lost for toggling a card off
	Seed            uint64 // 0 picks a random seed
}

func DefaultConfig() GameConfig {
	return GameConfig{
		TableauSize:     12,
		DealSize:        3,
		MatchReward:     3,
		MismatchPenalty: 5,
		DeselectPenalty: 1,
	}
}
