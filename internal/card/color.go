package card

import (
	"fmt"
	"strings"
)

// Color is the color identity of a card as a set of the five color flags.
// The zero value is colorless.
type Color uint8

const (
	White Color = 1 << iota
	Blue
	Black
	Red
	Green
)

// Colorless is a card with none of the five colors.
const Colorless Color = 0

// allColors lists the colors in WUBRG order
var allColors = []Color{White, Blue, Black, Red, Green}

// IsColorless reports whether the color has no components
func (c Color) IsColorless() bool {
	return c&(White|Blue|Black|Red|Green) == 0
}

// Has reports whether every component of other is part of c
func (c Color) Has(other Color) bool {
	return c&other == other
}

// IsMulticolored reports whether the color has two or more components
func (c Color) IsMulticolored() bool {
	return len(c.Components()) > 1
}

// Components returns the single colors that make up c, in WUBRG order
func (c Color) Components() []Color {
	var out []Color
	for _, single := range allColors {
		if c&single != 0 {
			out = append(out, single)
		}
	}
	return out
}

// Symbol returns the mana symbol of a single color. Composite and
// colorless values have no symbol.
func (c Color) Symbol() (ColorSymbol, bool) {
	switch c {
	case White:
		return SymbolWhite, true
	case Blue:
		return SymbolBlue, true
	case Black:
		return SymbolBlack, true
	case Red:
		return SymbolRed, true
	case Green:
		return SymbolGreen, true
	}
	return "", false
}

// String renders the color as its symbols in WUBRG order, or "C" when colorless
func (c Color) String() string {
	if c.IsColorless() {
		return "C"
	}
	var b strings.Builder
	for _, single := range c.Components() {
		sym, _ := single.Symbol()
		b.WriteString(string(sym))
	}
	return b.String()
}

// ParseColor parses a color string such as "WU", "g" or "C".
// An empty string is colorless.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "C") {
		return Colorless, nil
	}
	var c Color
	for _, r := range s {
		sym, err := ParseColorSymbol(string(r))
		if err != nil {
			return Colorless, fmt.Errorf("invalid color %q: %w", s, err)
		}
		c |= sym.Color()
	}
	return c, nil
}

// ColorSymbol is one of the five colored mana symbols
type ColorSymbol string

const (
	SymbolWhite ColorSymbol = "W"
	SymbolBlue  ColorSymbol = "U"
	SymbolBlack ColorSymbol = "B"
	SymbolRed   ColorSymbol = "R"
	SymbolGreen ColorSymbol = "G"
)

// Color returns the single color the symbol stands for
func (s ColorSymbol) Color() Color {
	switch s {
	case SymbolWhite:
		return White
	case SymbolBlue:
		return Blue
	case SymbolBlack:
		return Black
	case SymbolRed:
		return Red
	case SymbolGreen:
		return Green
	}
	return Colorless
}

// ParseColorSymbol parses a single symbol, case-insensitively
func ParseColorSymbol(s string) (ColorSymbol, error) {
	sym := ColorSymbol(strings.ToUpper(strings.TrimSpace(s)))
	if sym.Color() == Colorless {
		return "", fmt.Errorf("unknown color symbol: %q", s)
	}
	return sym, nil
}

// ParseColorSymbols parses a comma separated list ("W,U") or a run of
// symbols ("WU"). Duplicates are kept once.
func ParseColorSymbols(s string) ([]ColorSymbol, error) {
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, " ", "")

	symbols := []ColorSymbol{}
	var seen Color
	for _, r := range s {
		sym, err := ParseColorSymbol(string(r))
		if err != nil {
			return nil, err
		}
		if seen.Has(sym.Color()) {
			continue
		}
		seen |= sym.Color()
		symbols = append(symbols, sym)
	}
	return symbols, nil
}
