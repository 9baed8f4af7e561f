package engine

import "slices"

// CardView is one tableau slot as the presentation layer sees it.
type CardView struct {
	Index    int  `json:"index"`
	Card     Card `json:"card"`
	Selected bool `json:"selected"`
}

// ViewData is a read-only snapshot of the game for display.
type ViewData struct {
	Tableau       []CardView  `json:"tableau"`
	Selected      []int       `json:"selected"`
	MatchStatus   MatchStatus `json:"match_status"`
	Phase         Phase       `json:"phase"`
	Score         int         `json:"score"`
	Sheet         ScoreSheet  `json:"sheet"`
	DeckSize      int         `json:"deck_size"`
	MatchedCount  int         `json:"matched_count"`
	CanDealMore   bool        `json:"can_deal_more"`
	SetsOnTableau int         `json:"sets_on_tableau"`
	GameOver      bool        `json:"game_over"`
}

func (g *Game) View() ViewData {
	v := ViewData{
		Tableau:       make([]CardView, len(g.tableau)),
		Selected:      g.SelectedIndices(),
		MatchStatus:   g.MatchStatus(),
		Phase:         g.Phase(),
		Score:         g.score,
		Sheet:         g.ScoreSheet(),
		DeckSize:      g.deck.Len(),
		MatchedCount:  len(g.matched),
		CanDealMore:   g.deck.Len() > 0,
		SetsOnTableau: len(FindSets(g.tableau)),
		GameOver:      g.over,
	}
	for i, c := range g.tableau {
		v.Tableau[i] = CardView{Index: i, Card: c, Selected: g.IsSelected(c)}
	}
	return v
}

// SelectedIndices returns the tableau slots of the selected cards, in the
// order they were chosen.
func (g *Game) SelectedIndices() []int {
	out := make([]int, 0, len(g.selected))
	for _, c := range g.selected {
		if i := slices.Index(g.tableau, c); i >= 0 {
			out = append(out, i)
		}
	}
	return out
}
