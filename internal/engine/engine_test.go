package engine_test

import (
	"encoding/json"
	"errors"
	"math/rand/v2"
	"reflect"
	"strings"
	"testing"

	"setgame/internal/engine"
)

// newArrangedGame returns a game whose tableau is the first 12 cards of the
// canonical order and whose deck holds the remaining 69, unshuffled.
func newArrangedGame(t *testing.T) (*engine.Game, []engine.Card) {
	t.Helper()
	all := engine.BuildCards()
	g := engine.NewGame(engine.GameConfig{Seed: 1})
	g.Arrange(all[:12], all[12:], nil)
	return g, all
}

func choose(t *testing.T, g *engine.Game, indices ...int) {
	t.Helper()
	for _, i := range indices {
		if _, err := g.ChooseCard(i); err != nil {
			t.Fatalf("ChooseCard(%d): %v", i, err)
		}
	}
}

func checkPartition(t *testing.T, g *engine.Game) {
	t.Helper()
	seen := map[engine.Card]string{}
	add := func(pile string, cards []engine.Card) {
		for _, c := range cards {
			if prev, ok := seen[c]; ok {
				t.Fatalf("card %s in both %s and %s", c, prev, pile)
			}
			seen[c] = pile
		}
	}
	add("deck", g.Deck())
	add("tableau", g.Tableau())
	add("matched", g.Matched())
	if len(seen) != 81 {
		t.Fatalf("piles hold %d cards, want 81", len(seen))
	}

	sel := g.Selected()
	if len(sel) > 3 {
		t.Fatalf("%d cards selected", len(sel))
	}
	for _, c := range sel {
		if seen[c] != "tableau" {
			t.Fatalf("selected card %s is in %q, not tableau", c, seen[c])
		}
	}
}

func TestNewGame(t *testing.T) {
	g := engine.NewGame(engine.DefaultConfig())
	if n := len(g.Tableau()); n != 12 {
		t.Fatalf("tableau: got %d cards, want 12", n)
	}
	if g.DeckLen() != 69 {
		t.Fatalf("deck: got %d cards, want 69", g.DeckLen())
	}
	if g.Score() != 0 || len(g.Matched()) != 0 || len(g.Selected()) != 0 {
		t.Fatalf("fresh game not empty: score=%d matched=%d selected=%d",
			g.Score(), len(g.Matched()), len(g.Selected()))
	}
	if g.MatchStatus() != engine.MatchUnknown {
		t.Fatalf("status: got %s, want unknown", g.MatchStatus())
	}
	checkPartition(t, g)
}

func TestSeedIsReproducible(t *testing.T) {
	a := engine.NewGame(engine.GameConfig{Seed: 7})
	b := engine.NewGame(engine.GameConfig{Seed: 7})
	if !reflect.DeepEqual(a.Tableau(), b.Tableau()) || !reflect.DeepEqual(a.Deck(), b.Deck()) {
		t.Fatal("same seed produced different deals")
	}
}

func TestChooseAndToggle(t *testing.T) {
	g, all := newArrangedGame(t)

	choose(t, g, 0, 3)
	if got := g.Selected(); !reflect.DeepEqual(got, []engine.Card{all[0], all[3]}) {
		t.Fatalf("selected: got %v", got)
	}
	if g.Score() != 0 {
		t.Fatalf("selecting changed score to %d", g.Score())
	}

	events, err := g.ChooseCard(0)
	if err != nil {
		t.Fatal(err)
	}
	if got := g.Selected(); !reflect.DeepEqual(got, []engine.Card{all[3]}) {
		t.Fatalf("selected after toggle: got %v", got)
	}
	if g.Score() != -1 {
		t.Errorf("score after deselect: got %d, want -1", g.Score())
	}
	if len(events) != 1 || events[0].Type != engine.EventCardDeselected {
		t.Errorf("events: got %+v", events)
	}
}

func TestResolveMatchOnFourthChoice(t *testing.T) {
	g, all := newArrangedGame(t)

	choose(t, g, 0, 1, 2)
	if g.MatchStatus() != engine.MatchFound {
		t.Fatalf("status: got %s, want match", g.MatchStatus())
	}

	events, err := g.ChooseCard(5)
	if err != nil {
		t.Fatal(err)
	}
	if g.Score() != 3 {
		t.Errorf("score: got %d, want 3", g.Score())
	}
	if len(events) != 2 || events[0].Type != engine.EventSetMatched || events[1].Type != engine.EventCardSelected {
		t.Errorf("events: got %+v", events)
	}

	tab := g.Tableau()
	for slot, want := range []engine.Card{all[12], all[13], all[14]} {
		if tab[slot] != want {
			t.Errorf("slot %d: got %s, want refill %s", slot, tab[slot], want)
		}
	}
	if got := g.Matched(); !reflect.DeepEqual(got, all[:3]) {
		t.Errorf("matched: got %v", got)
	}
	if got := g.Selected(); !reflect.DeepEqual(got, []engine.Card{all[5]}) {
		t.Errorf("selected: got %v", got)
	}
	if g.DeckLen() != 66 {
		t.Errorf("deck: got %d, want 66", g.DeckLen())
	}
	checkPartition(t, g)
}

func TestChoosingResolvedSlotSelectsReplacement(t *testing.T) {
	g, all := newArrangedGame(t)

	choose(t, g, 0, 1, 2, 1)
	if got := g.Selected(); !reflect.DeepEqual(got, []engine.Card{all[13]}) {
		t.Fatalf("selected: got %v, want replacement %s", got, all[13])
	}
	if g.Score() != 3 {
		t.Errorf("score: got %d, want 3", g.Score())
	}
}

func TestResolveMismatch(t *testing.T) {
	g, all := newArrangedGame(t)

	choose(t, g, 0, 1, 3)
	if g.MatchStatus() != engine.MatchFailed {
		t.Fatalf("status: got %s, want no_match", g.MatchStatus())
	}
	choose(t, g, 4)

	if g.Score() != -5 {
		t.Errorf("score: got %d, want -5", g.Score())
	}
	if got := g.Selected(); !reflect.DeepEqual(got, []engine.Card{all[4]}) {
		t.Errorf("selected: got %v", got)
	}
	if got := g.Tableau(); !reflect.DeepEqual(got, all[:12]) {
		t.Errorf("mismatch changed tableau: %v", got)
	}
	if len(g.Matched()) != 0 {
		t.Errorf("matched: got %d cards, want 0", len(g.Matched()))
	}
}

func TestRechooseAfterMismatchSelects(t *testing.T) {
	g, all := newArrangedGame(t)

	choose(t, g, 0, 1, 3, 0)
	if g.Score() != -5 {
		t.Errorf("score: got %d, want -5 with no deselect penalty", g.Score())
	}
	if got := g.Selected(); !reflect.DeepEqual(got, []engine.Card{all[0]}) {
		t.Errorf("selected: got %v", got)
	}
}

func TestChooseOutOfRange(t *testing.T) {
	g, _ := newArrangedGame(t)
	choose(t, g, 0, 1, 2)
	before := g.View()

	for _, idx := range []int{-1, 12, 100} {
		_, err := g.ChooseCard(idx)
		if !errors.Is(err, engine.ErrIndexOutOfRange) {
			t.Errorf("ChooseCard(%d): got %v, want ErrIndexOutOfRange", idx, err)
		}
	}
	if after := g.View(); !reflect.DeepEqual(before, after) {
		t.Errorf("rejected choice mutated state:\nbefore %+v\nafter  %+v", before, after)
	}
}

func TestMatchWithEmptyDeckContractsTableau(t *testing.T) {
	all := engine.BuildCards()

	tests := []struct {
		name         string
		deck         []engine.Card
		fourth       int
		wantTableau  []engine.Card
		wantSelected []engine.Card
	}{
		{
			name:         "no refill, slot shifts",
			fourth:       3,
			wantTableau:  all[3:12],
			wantSelected: []engine.Card{all[6]},
		},
		{
			name:        "no refill, slot gone",
			fourth:      11,
			wantTableau: all[3:12],
		},
		{
			name:         "one refill",
			deck:         all[12:13],
			fourth:       0,
			wantTableau:  append([]engine.Card{all[12]}, all[3:12]...),
			wantSelected: []engine.Card{all[12]},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := engine.NewGame(engine.GameConfig{Seed: 1})
			matched := append([]engine.Card{}, all[12+len(tt.deck):]...)
			g.Arrange(all[:12], tt.deck, matched)

			choose(t, g, 0, 1, 2, tt.fourth)
			if got := g.Tableau(); !reflect.DeepEqual(got, tt.wantTableau) {
				t.Errorf("tableau: got %v, want %v", got, tt.wantTableau)
			}
			if got := g.Selected(); len(got) != len(tt.wantSelected) ||
				(len(got) > 0 && !reflect.DeepEqual(got, tt.wantSelected)) {
				t.Errorf("selected: got %v, want %v", got, tt.wantSelected)
			}
			if g.Score() != 3 {
				t.Errorf("score: got %d, want 3", g.Score())
			}
			checkPartition(t, g)
		})
	}
}

func TestDealMore(t *testing.T) {
	g, all := newArrangedGame(t)

	events := g.DealMore()
	if got := g.Tableau(); len(got) != 15 || got[12] != all[12] || got[14] != all[14] {
		t.Fatalf("tableau after deal: %v", got)
	}
	if g.DeckLen() != 66 || g.Score() != 0 {
		t.Errorf("deck=%d score=%d, want 66 and 0", g.DeckLen(), g.Score())
	}
	if len(events) != 1 || events[0].Type != engine.EventCardsDealt {
		t.Errorf("events: got %+v", events)
	}
}

func TestDealMoreShortDeck(t *testing.T) {
	all := engine.BuildCards()
	for _, left := range []int{0, 1, 2} {
		g := engine.NewGame(engine.GameConfig{Seed: 1})
		g.Arrange(all[:12], all[12:12+left], all[12+left:])

		g.DealMore()
		if n := len(g.Tableau()); n != 12+left {
			t.Errorf("deck of %d: tableau got %d cards, want %d", left, n, 12+left)
		}
		if g.DeckLen() != 0 {
			t.Errorf("deck of %d: %d cards left", left, g.DeckLen())
		}
		checkPartition(t, g)
	}
}

func TestDealMoreResolvesSelectedSet(t *testing.T) {
	g, all := newArrangedGame(t)
	choose(t, g, 0, 1, 2)

	events := g.DealMore()
	if n := len(g.Tableau()); n != 12 {
		t.Errorf("tableau: got %d cards, want 12", n)
	}
	if g.Tableau()[0] != all[12] {
		t.Errorf("slot 0: got %s, want refill %s", g.Tableau()[0], all[12])
	}
	if g.Score() != 3 || len(g.Selected()) != 0 || g.DeckLen() != 66 {
		t.Errorf("score=%d selected=%d deck=%d", g.Score(), len(g.Selected()), g.DeckLen())
	}
	if len(events) != 1 || events[0].Type != engine.EventSetMatched {
		t.Errorf("events: got %+v", events)
	}
}

func TestDealMoreKeepsMismatchedSelection(t *testing.T) {
	g, _ := newArrangedGame(t)
	choose(t, g, 0, 1, 3)

	g.DealMore()
	if n := len(g.Tableau()); n != 15 {
		t.Errorf("tableau: got %d cards, want 15", n)
	}
	if g.MatchStatus() != engine.MatchFailed || g.Score() != 0 {
		t.Errorf("status=%s score=%d", g.MatchStatus(), g.Score())
	}
}

func TestGameOverEmittedOnce(t *testing.T) {
	all := engine.BuildCards()
	g := engine.NewGame(engine.GameConfig{Seed: 1})
	tableau := []engine.Card{all[0], all[1], all[3], all[4]}
	var matched []engine.Card
	for _, c := range all {
		if c != all[0] && c != all[1] && c != all[3] && c != all[4] {
			matched = append(matched, c)
		}
	}
	g.Arrange(tableau, nil, matched)

	if !g.IsOver() {
		t.Fatal("expected game over with empty deck and no sets")
	}
	countOver := func(events []engine.Event) int {
		n := 0
		for _, ev := range events {
			if ev.Type == engine.EventGameOver {
				n++
			}
		}
		return n
	}
	first, _ := g.ChooseCard(0)
	second, _ := g.ChooseCard(1)
	if countOver(first) != 1 || countOver(second) != 0 {
		t.Errorf("game_over events: first=%d second=%d", countOver(first), countOver(second))
	}
	if !g.View().GameOver {
		t.Error("view should report game over")
	}
}

func TestReset(t *testing.T) {
	g := engine.NewGame(engine.GameConfig{Seed: 3})
	choose(t, g, 0, 1, 2, 3)
	g.DealMore()

	events := g.Reset()
	if len(events) == 0 || events[0].Type != engine.EventGameStarted {
		t.Fatalf("events: got %+v", events)
	}
	if len(g.Tableau()) != 12 || g.DeckLen() != 69 || len(g.Matched()) != 0 ||
		len(g.Selected()) != 0 || g.Score() != 0 {
		t.Fatalf("reset state: tableau=%d deck=%d matched=%d selected=%d score=%d",
			len(g.Tableau()), g.DeckLen(), len(g.Matched()), len(g.Selected()), g.Score())
	}
	checkPartition(t, g)
}

func TestApply(t *testing.T) {
	g, _ := newArrangedGame(t)

	if _, err := g.Apply(engine.Action{Type: engine.ActionChooseCard, Index: 2}); err != nil {
		t.Fatal(err)
	}
	if len(g.Selected()) != 1 {
		t.Errorf("selected: got %d, want 1", len(g.Selected()))
	}
	if _, err := g.Apply(engine.Action{Type: engine.ActionDealMore}); err != nil {
		t.Fatal(err)
	}
	if len(g.Tableau()) != 15 {
		t.Errorf("tableau: got %d, want 15", len(g.Tableau()))
	}
	if _, err := g.Apply(engine.Action{Type: engine.ActionNewGame}); err != nil {
		t.Fatal(err)
	}
	if len(g.Tableau()) != 12 || len(g.Selected()) != 0 {
		t.Errorf("new_game did not reset")
	}
	if _, err := g.Apply(engine.Action{Type: "shout"}); !errors.Is(err, engine.ErrInvalidAction) {
		t.Errorf("unknown action: got %v", err)
	}
}

func TestView(t *testing.T) {
	g, _ := newArrangedGame(t)
	choose(t, g, 2, 0)

	v := g.View()
	if !reflect.DeepEqual(v.Selected, []int{2, 0}) {
		t.Errorf("selected: got %v", v.Selected)
	}
	if !v.Tableau[0].Selected || v.Tableau[1].Selected || !v.Tableau[2].Selected {
		t.Errorf("per-card selection flags wrong: %+v", v.Tableau[:3])
	}
	if !v.CanDealMore || v.DeckSize != 69 || v.GameOver {
		t.Errorf("view: %+v", v)
	}
	if v.SetsOnTableau == 0 {
		t.Error("canonical opening tableau has sets")
	}

	data, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`"match_status":"unknown"`, `"color":"red"`, `"count":1`, `"shading":"solid"`} {
		if !strings.Contains(string(data), want) {
			t.Errorf("json %s missing %s", data, want)
		}
	}
}

func TestPartitionHoldsUnderRandomPlay(t *testing.T) {
	rng := rand.New(rand.NewPCG(11, 29))
	g := engine.NewGame(engine.GameConfig{Seed: 5})

	for step := 0; step < 3000; step++ {
		switch r := rng.IntN(20); {
		case r == 0:
			g.Reset()
		case r < 3:
			g.DealMore()
		default:
			n := len(g.Tableau())
			idx := rng.IntN(n + 2)
			_, err := g.ChooseCard(idx)
			if (idx >= n) != (err != nil) {
				t.Fatalf("step %d: ChooseCard(%d) on %d slots returned %v", step, idx, n, err)
			}
		}
		checkPartition(t, g)
	}
}

func TestPhaseAndScoreSheet(t *testing.T) {
	g, _ := newArrangedGame(t)
	if g.Phase() != engine.PhaseSelecting {
		t.Fatalf("phase: got %s, want selecting", g.Phase())
	}

	choose(t, g, 0, 1, 2)
	if g.Phase() != engine.PhaseResolvePending {
		t.Fatalf("phase: got %s, want resolve_pending", g.Phase())
	}
	choose(t, g, 3, 4, 3) // set scored, then 3 toggled on and off
	choose(t, g, 0, 1)    // refills in slots 0 and 1 complete a non-Set
	choose(t, g, 5)

	want := engine.ScoreSheet{Sets: 1, Misses: 1, Deselects: 1, Total: 3 - 5 - 1}
	if got := g.ScoreSheet(); got != want {
		t.Errorf("sheet: got %+v, want %+v", got, want)
	}
	if g.Score() != want.Total {
		t.Errorf("score %d disagrees with sheet total %d", g.Score(), want.Total)
	}
	if v := g.View(); v.Sheet != want || v.Phase != engine.PhaseSelecting {
		t.Errorf("view sheet=%+v phase=%s", v.Sheet, v.Phase)
	}
}
