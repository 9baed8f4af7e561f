package engine

import (
	crand "crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"time"
)

var (
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrInvalidAction   = errors.New("invalid action")
)

// Game holds the state of one Set session. It is not safe for concurrent
// use; callers confine it to one goroutine or guard it with a mutex.
type Game struct {
	Config GameConfig

	rng      *rand.Rand
	deck     *Deck
	tableau  []Card
	matched  []Card
	selected []Card
	score    int
	sheet    ScoreSheet
	over     bool
}

// NewGame creates a game and deals the opening tableau. Zero-valued config
// fields take their DefaultConfig values.
func NewGame(config GameConfig) *Game {
	g := &Game{
		Config: config.withDefaults(),
		rng:    newRNG(config.Seed),
	}
	g.Reset()
	return g
}

func (c GameConfig) withDefaults() GameConfig {
	def := DefaultConfig()
	if c.TableauSize <= 0 {
		c.TableauSize = def.TableauSize
	}
	if c.DealSize <= 0 {
		c.DealSize = def.DealSize
	}
	if c.MatchReward == 0 {
		c.MatchReward = def.MatchReward
	}
	if c.MismatchPenalty == 0 {
		c.MismatchPenalty = def.MismatchPenalty
	}
	if c.DeselectPenalty == 0 {
		c.DeselectPenalty = def.DeselectPenalty
	}
	return c
}

func newRNG(seed uint64) *rand.Rand {
	if seed == 0 {
		var b [8]byte
		if _, err := crand.Read(b[:]); err == nil {
			seed = binary.LittleEndian.Uint64(b[:])
		} else {
			seed = uint64(time.Now().UnixNano())
		}
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Reset discards the current state and starts over with a freshly
// shuffled deck and a new tableau.
func (g *Game) Reset() []Event {
	g.deck = NewDeck(BuildCards())
	g.deck.Shuffle(g.rng)
	g.tableau = g.deck.Draw(g.Config.TableauSize)
	g.matched = nil
	g.selected = nil
	g.score = 0
	g.sheet = ScoreSheet{}
	g.over = false

	return g.checkOver([]Event{
		{Type: EventGameStarted, Data: map[string]interface{}{
			"tableau_size": len(g.tableau),
			"deck_size":    g.deck.Len(),
		}},
	})
}

// ChooseCard handles a tap on the tableau slot at index. A pending triple
// is resolved first; the slot is then re-read, since resolution may have
// refilled or removed it, and the card found there is toggled.
func (g *Game) ChooseCard(index int) ([]Event, error) {
	if index < 0 || index >= len(g.tableau) {
		return nil, fmt.Errorf("choose card %d of %d: %w", index, len(g.tableau), ErrIndexOutOfRange)
	}

	var events []Event
	if len(g.selected) == 3 {
		events = append(events, g.resolve()...)
	}

	if index < len(g.tableau) {
		chosen := g.tableau[index]
		// The tableau never holds matched cards; skip if it somehow does.
		if !slices.Contains(g.matched, chosen) {
			events = append(events, g.toggle(index, chosen))
		}
	}

	return g.checkOver(events), nil
}

func (g *Game) toggle(index int, card Card) Event {
	if i := slices.Index(g.selected, card); i >= 0 {
		g.selected = slices.Delete(g.selected, i, i+1)
		g.score -= g.Config.DeselectPenalty
		g.sheet.Deselects++
		return Event{Type: EventCardDeselected, Data: map[string]interface{}{
			"index": index, "card": card, "score": g.score,
		}}
	}
	g.selected = append(g.selected, card)
	return Event{Type: EventCardSelected, Data: map[string]interface{}{
		"index": index, "card": card,
	}}
}

// DealMore resolves a selected Set if there is one; otherwise it adds up to
// DealSize cards from the deck to the end of the tableau.
func (g *Game) DealMore() []Event {
	if g.MatchStatus() == MatchFound {
		return g.checkOver(g.resolve())
	}

	drawn := g.deck.Draw(g.Config.DealSize)
	if len(drawn) == 0 {
		return nil
	}
	g.tableau = append(g.tableau, drawn...)
	return g.checkOver([]Event{
		{Type: EventCardsDealt, Data: map[string]interface{}{
			"cards":     drawn,
			"deck_size": g.deck.Len(),
		}},
	})
}

// resolve scores the three selected cards and clears the selection.
func (g *Game) resolve() []Event {
	triple := g.selected
	g.selected = nil

	if !IsSet(triple[0], triple[1], triple[2]) {
		g.score -= g.Config.MismatchPenalty
		g.sheet.Misses++
		return []Event{{Type: EventSetRejected, Data: map[string]interface{}{
			"cards": triple, "score": g.score,
		}}}
	}

	refilled := g.replaceMatched(triple)
	g.score += g.Config.MatchReward
	g.sheet.Sets++
	return []Event{{Type: EventSetMatched, Data: map[string]interface{}{
		"cards": triple, "refilled": refilled, "score": g.score,
	}}}
}

// replaceMatched moves cards to the matched pile. Each vacated slot takes
// the top card of the deck, or is removed when the deck is empty.
func (g *Game) replaceMatched(cards []Card) int {
	refilled := 0
	for _, c := range cards {
		idx := slices.Index(g.tableau, c)
		if idx < 0 {
			continue
		}
		g.matched = append(g.matched, c)
		if drawn := g.deck.Draw(1); len(drawn) == 1 {
			g.tableau[idx] = drawn[0]
			refilled++
		} else {
			g.tableau = slices.Delete(g.tableau, idx, idx+1)
		}
	}
	return refilled
}

func (g *Game) checkOver(events []Event) []Event {
	if g.over || !g.IsOver() {
		return events
	}
	g.over = true
	return append(events, Event{Type: EventGameOver, Data: map[string]interface{}{
		"score": g.score, "matched": len(g.matched),
	}})
}

// MatchStatus reports the verdict on the current selection. It is computed
// on every call.
func (g *Game) MatchStatus() MatchStatus {
	if len(g.selected) != 3 {
		return MatchUnknown
	}
	if IsSet(g.selected[0], g.selected[1], g.selected[2]) {
		return MatchFound
	}
	return MatchFailed
}

// IsOver reports whether the deck is empty and no Set is left on the tableau.
func (g *Game) IsOver() bool {
	return g.deck.Len() == 0 && len(FindSets(g.tableau)) == 0
}

// Tableau returns the face-up cards in slot order.
func (g *Game) Tableau() []Card { return slices.Clone(g.tableau) }

// Selected returns the selected cards in the order they were chosen.
func (g *Game) Selected() []Card { return slices.Clone(g.selected) }

// Matched returns the cards removed from play by resolved Sets.
func (g *Game) Matched() []Card { return slices.Clone(g.matched) }

// Deck returns the undealt cards, top first.
func (g *Game) Deck() []Card { return g.deck.Cards() }

func (g *Game) DeckLen() int { return g.deck.Len() }

func (g *Game) Score() int { return g.score }

// IsSelected reports whether card is currently selected.
func (g *Game) IsSelected(card Card) bool {
	return slices.Contains(g.selected, card)
}
