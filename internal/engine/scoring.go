package engine

// ScoreSheet breaks the score down by how it was earned.
type ScoreSheet struct {
	Sets      int `json:"sets"`
	Misses    int `json:"misses"`
	Deselects int `json:"deselects"`
	Total     int `json:"total"`
}

// ScoreSheet returns the running breakdown for the current game.
func (g *Game) ScoreSheet() ScoreSheet {
	s := g.sheet
	s.Total = g.score
	return s
}
