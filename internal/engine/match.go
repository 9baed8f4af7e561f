package engine

// MatchStatus is the verdict on the current selection.
type MatchStatus int

const (
	MatchUnknown MatchStatus = iota // fewer than three cards selected
	MatchFound                      // the three selected cards form a Set
	MatchFailed                     // the three selected cards do not
)

func (m MatchStatus) String() string {
	switch m {
	case MatchUnknown:
		return "unknown"
	case MatchFound:
		return "match"
	case MatchFailed:
		return "no_match"
	}
	return "invalid"
}

func (m MatchStatus) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// IsSet reports whether a, b and c form a Set: on every feature the three
// values are either all equal or all different.
func IsSet(a, b, c Card) bool {
	return distinct(a.Color, b.Color, c.Color) != 2 &&
		distinct(a.Symbol, b.Symbol, c.Symbol) != 2 &&
		distinct(a.Count, b.Count, c.Count) != 2 &&
		distinct(a.Shading, b.Shading, c.Shading) != 2
}

func distinct[T comparable](a, b, c T) int {
	switch {
	case a == b && b == c:
		return 1
	case a != b && b != c && a != c:
		return 3
	}
	return 2
}

// FindSets returns the index triples of every Set among cards, in
// ascending index order.
func FindSets(cards []Card) [][3]int {
	var sets [][3]int
	for i := 0; i < len(cards); i++ {
		for j := i + 1; j < len(cards); j++ {
			for k := j + 1; k < len(cards); k++ {
				if IsSet(cards[i], cards[j], cards[k]) {
					sets = append(sets, [3]int{i, j, k})
				}
			}
		}
	}
	return sets
}
