// Package repository defines the card lookup used to fetch candidate cards,
// with an in-memory implementation. The SQLite-backed store lives in the
// sqlite subpackage.
package repository

import (
	"context"
	"strings"
	"sync"

	"github.com/arcanaland/cardpool/internal/card"
)

// Criteria restricts a card search. The zero value matches every card.
type Criteria struct {
	// SetCodes limits the search to printings from these sets. Empty
	// means all sets.
	SetCodes []string
}

// WithSetCodes returns a copy of c restricted to the given set codes,
// added to any codes already present
func (c Criteria) WithSetCodes(codes ...string) Criteria {
	out := Criteria{SetCodes: append([]string(nil), c.SetCodes...)}
	for _, code := range codes {
		code = strings.TrimSpace(code)
		if code != "" {
			out.SetCodes = append(out.SetCodes, code)
		}
	}
	return out
}

// MatchesSet reports whether a printing from setCode passes the criteria
func (c Criteria) MatchesSet(setCode string) bool {
	if len(c.SetCodes) == 0 {
		return true
	}
	for _, code := range c.SetCodes {
		if strings.EqualFold(code, setCode) {
			return true
		}
	}
	return false
}

// Lookup finds the cards matching a criteria. Result order carries no
// meaning and the result may be empty.
type Lookup interface {
	FindCards(ctx context.Context, criteria Criteria) ([]card.Info, error)
}

// LookupFunc adapts a function to the Lookup interface
type LookupFunc func(ctx context.Context, criteria Criteria) ([]card.Info, error)

// FindCards calls f(ctx, criteria)
func (f LookupFunc) FindCards(ctx context.Context, criteria Criteria) ([]card.Info, error) {
	return f(ctx, criteria)
}

// Memory is a Lookup over a fixed slice of cards
type Memory struct {
	mu    sync.RWMutex
	cards []card.Info
}

var _ Lookup = (*Memory)(nil)

// NewMemory creates an in-memory lookup holding cards
func NewMemory(cards ...card.Info) *Memory {
	return &Memory{cards: append([]card.Info(nil), cards...)}
}

// Add appends cards to the lookup
func (m *Memory) Add(cards ...card.Info) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cards = append(m.cards, cards...)
}

// FindCards returns a fresh slice of the cards matching criteria
func (m *Memory) FindCards(ctx context.Context, criteria Criteria) ([]card.Info, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]card.Info, 0, len(m.cards))
	for _, c := range m.cards {
		if criteria.MatchesSet(c.SetCode) {
			out = append(out, c)
		}
	}
	return out, nil
}
