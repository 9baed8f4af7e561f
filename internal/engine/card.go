package engine

import "fmt"

// Color is the ink color of the symbols on a card.
type Color int

const (
	ColorRed Color = iota
	ColorGreen
	ColorBlue
)

// Symbol is the shape printed on a card.
type Symbol int

const (
	SymbolOval Symbol = iota
	SymbolSquiggle
	SymbolDiamond
)

// Count is how many symbols a card shows. It marshals as its number.
type Count int

const (
	CountOne Count = iota + 1
	CountTwo
	CountThree
)

// Shading is the fill pattern of the symbols.
type Shading int

const (
	ShadingSolid Shading = iota
	ShadingOpen
	ShadingStriped
)

// Feature values in canonical order.
var (
	AllColors   = [3]Color{ColorRed, ColorGreen, ColorBlue}
	AllSymbols  = [3]Symbol{SymbolOval, SymbolSquiggle, SymbolDiamond}
	AllCounts   = [3]Count{CountOne, CountTwo, CountThree}
	AllShadings = [3]Shading{ShadingSolid, ShadingOpen, ShadingStriped}
)

func (c Color) String() string {
	switch c {
	case ColorRed:
		return "red"
	case ColorGreen:
		return "green"
	case ColorBlue:
		return "blue"
	}
	return "unknown"
}

func (s Symbol) String() string {
	switch s {
	case SymbolOval:
		return "oval"
	case SymbolSquiggle:
		return "squiggle"
	case SymbolDiamond:
		return "diamond"
	}
	return "unknown"
}

func (n Count) String() string {
	switch n {
	case CountOne:
		return "one"
	case CountTwo:
		return "two"
	case CountThree:
		return "three"
	}
	return "unknown"
}

func (s Shading) String() string {
	switch s {
	case ShadingSolid:
		return "solid"
	case ShadingOpen:
		return "open"
	case ShadingStriped:
		return "striped"
	}
	return "unknown"
}

func (c Color) MarshalText() ([]byte, error)   { return []byte(c.String()), nil }
func (s Symbol) MarshalText() ([]byte, error)  { return []byte(s.String()), nil }
func (s Shading) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Card is one of the 81 Set cards. Cards are comparable values.
type Card struct {
	Color   Color   `json:"color"`
	Symbol  Symbol  `json:"symbol"`
	Count   Count   `json:"count"`
	Shading Shading `json:"shading"`
}

// Valid reports whether every feature holds one of its three values.
func (c Card) Valid() bool {
	return c.Color >= ColorRed && c.Color <= ColorBlue &&
		c.Symbol >= SymbolOval && c.Symbol <= SymbolDiamond &&
		c.Count >= CountOne && c.Count <= CountThree &&
		c.Shading >= ShadingSolid && c.Shading <= ShadingStriped
}

func (c Card) String() string {
	return fmt.Sprintf("%s/%s/%d/%s", c.Color, c.Symbol, int(c.Count), c.Shading)
}
