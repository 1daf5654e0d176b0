package pool

import (
	"github.com/arcanaland/cardpool/internal/card"
)

// ColorFilter keeps the cards whose colors all fall within an allowed set.
// A nil *ColorFilter keeps every card.
type ColorFilter struct {
	allowed card.Color
}

// AllowColors builds a filter over the given symbols. With no symbols only
// colorless cards pass.
func AllowColors(symbols ...card.ColorSymbol) *ColorFilter {
	f := &ColorFilter{}
	for _, sym := range symbols {
		f.allowed |= sym.Color()
	}
	return f
}

// Allows reports whether info passes the filter. Colorless cards pass only
// when no colors are allowed; colored cards pass only when each of their
// colors is allowed.
func (f *ColorFilter) Allows(info card.Info) bool {
	if f == nil {
		return true
	}
	if info.Color.IsColorless() {
		return f.allowed.IsColorless()
	}
	return f.allowed.Has(info.Color)
}

// String renders the allowed colors, "any" for a nil filter
func (f *ColorFilter) String() string {
	if f == nil {
		return "any"
	}
	return f.allowed.String()
}

// IsNonBasicLand reports whether info is a land without the basic supertype
func IsNonBasicLand(info card.Info) bool {
	return info.IsLand() && !info.HasSupertype(card.SuperBasic)
}

// Filter returns the candidates that survive the land and color rules of
// req, in their original order. The input slice is not modified.
func Filter(candidates []card.Info, req Request) []card.Info {
	out := make([]card.Info, 0, len(candidates))
	for _, info := range candidates {
		if req.OnlyBasicLands && IsNonBasicLand(info) {
			continue
		}
		if !req.Colors.Allows(info) {
			continue
		}
		out = append(out, info)
	}
	return out
}
