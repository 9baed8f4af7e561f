package engine

import "math/rand/v2"

// BuildCards returns the full 81-card universe in canonical order
// (color, then symbol, then count, then shading).
func BuildCards() []Card {
	cards := make([]Card, 0, len(AllColors)*len(AllSymbols)*len(AllCounts)*len(AllShadings))
	for _, color := range AllColors {
		for _, symbol := range AllSymbols {
			for _, count := range AllCounts {
				for _, shading := range AllShadings {
					cards = append(cards, Card{Color: color, Symbol: symbol, Count: count, Shading: shading})
				}
			}
		}
	}
	return cards
}

// Deck is the stack of undealt cards. It only ever shrinks.
type Deck struct {
	cards []Card
}

// NewDeck creates a deck holding a copy of cards, in the given order.
func NewDeck(cards []Card) *Deck {
	d := &Deck{cards: make([]Card, len(cards))}
	copy(d.cards, cards)
	return d
}

// Shuffle permutes the deck uniformly using rng.
func (d *Deck) Shuffle(rng *rand.Rand) {
	rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Draw removes and returns the top n cards. Returns fewer if deck is short.
func (d *Deck) Draw(n int) []Card {
	if n < 0 {
		n = 0
	}
	if n > len(d.cards) {
		n = len(d.cards)
	}
	drawn := make([]Card, n)
	copy(drawn, d.cards[:n])
	d.cards = d.cards[n:]
	return drawn
}

// Len returns the number of cards remaining.
func (d *Deck) Len() int {
	return len(d.cards)
}

// Cards returns the remaining cards, top first.
func (d *Deck) Cards() []Card {
	out := make([]Card, len(d.cards))
	copy(out, d.cards)
	return out
}
