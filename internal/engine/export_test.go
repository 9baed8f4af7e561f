package engine

import "slices"

// Arrange replaces the game's piles with the given cards, in order, and
// clears selection and score.
func (g *Game) Arrange(tableau, deck, matched []Card) {
	g.tableau = slices.Clone(tableau)
	g.deck = NewDeck(deck)
	g.matched = slices.Clone(matched)
	g.selected = nil
	g.score = 0
	g.sheet = ScoreSheet{}
	g.over = false
}
