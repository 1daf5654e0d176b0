// Package pool assembles random card pools.
//
// A pool is drawn from the cards a lookup returns for the requested sets,
// after two optional filters:
//
//   - OnlyBasicLands drops every land that is not basic.
//   - Colors keeps only cards whose colors are all allowed. An empty
//     allowed set keeps only colorless cards; a nil filter keeps everything.
//
// Cards are then drawn uniformly at random with replacement, so a pool may
// hold the same printing several times, and each draw is turned into its
// own card object. Either the whole pool is returned or an error is.
package pool

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/arcanaland/cardpool/internal/card"
	"github.com/arcanaland/cardpool/internal/repository"
)

var (
	// ErrEmptyCandidatePool is returned when filtering leaves no cards to
	// draw from but a non-empty pool was requested
	ErrEmptyCandidatePool = errors.New("no candidate cards left after filtering")
	// ErrNegativeSize is returned for a negative pool size
	ErrNegativeSize = errors.New("pool size must not be negative")
)

// Request describes the pool to generate
type Request struct {
	Size           int          // Number of cards to draw
	Colors         *ColorFilter // nil disables color filtering
	OnlyBasicLands bool         // Drop non-basic lands
	SetCodes       []string     // Restrict the search to these sets, empty for all
}

// Generator draws card pools from a card lookup. It keeps no state between
// calls apart from an injected random source.
type Generator struct {
	lookup  repository.Lookup
	factory card.Factory
	seed    *uint64
	rng     *rand.Rand
}

// Option configures a Generator
type Option func(*Generator)

// WithFactory sets the factory that turns drawn cards into card objects
func WithFactory(f card.Factory) Option {
	return func(g *Generator) {
		g.factory = f
	}
}

// WithSeed makes every Generate call draw from a fresh source seeded with
// seed, so equal requests against equal candidates give equal pools
func WithSeed(seed uint64) Option {
	return func(g *Generator) {
		g.seed = &seed
	}
}

// WithRand draws from r. A *rand.Rand is not safe for concurrent use, so
// the caller must not call Generate concurrently on such a generator.
func WithRand(r *rand.Rand) Option {
	return func(g *Generator) {
		g.rng = r
	}
}

// New creates a generator over lookup
func New(lookup repository.Lookup, opts ...Option) *Generator {
	g := &Generator{
		lookup:  lookup,
		factory: card.DefaultFactory,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Generator) intN() func(int) int {
	switch {
	case g.rng != nil:
		return g.rng.IntN
	case g.seed != nil:
		return rand.New(rand.NewPCG(*g.seed, *g.seed)).IntN
	default:
		return rand.IntN
	}
}

// Generate fetches the candidates for req, filters them and draws
// req.Size cards with replacement
func (g *Generator) Generate(ctx context.Context, req Request) ([]*card.Card, error) {
	if req.Size < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeSize, req.Size)
	}
	if g.lookup == nil {
		return nil, fmt.Errorf("card lookup is required")
	}

	criteria := repository.Criteria{}.WithSetCodes(req.SetCodes...)
	candidates, err := g.lookup.FindCards(ctx, criteria)
	if err != nil {
		return nil, fmt.Errorf("find candidate cards: %w", err)
	}

	fetched := len(candidates)
	candidates = Filter(candidates, req)

	slog.Debug("Filtered pool candidates",
		"fetched", fetched,
		"kept", len(candidates),
		"colors", req.Colors.String(),
		"onlyBasicLands", req.OnlyBasicLands,
		"sets", req.SetCodes)

	pool := make([]*card.Card, 0, req.Size)
	if req.Size == 0 {
		return pool, nil
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: %d cards fetched, colors %s, only basic lands %t",
			ErrEmptyCandidatePool, fetched, req.Colors, req.OnlyBasicLands)
	}

	intN := g.intN()
	for len(pool) < req.Size {
		info := candidates[intN(len(candidates))]
		c, err := g.factory.NewCard(info)
		if err != nil {
			var fe *card.FactoryError
			if errors.As(err, &fe) {
				return nil, err
			}
			return nil, card.NewFactoryError(info, err)
		}
		pool = append(pool, c)
	}
	return pool, nil
}

// GenerateRandomCardPool draws size cards from lookup with a default
// generator
func GenerateRandomCardPool(
	ctx context.Context,
	lookup repository.Lookup,
	size int,
	colors *ColorFilter,
	onlyBasicLands bool,
	setCodes []string,
) ([]*card.Card, error) {
	return New(lookup).Generate(ctx, Request{
		Size:           size,
		Colors:         colors,
		OnlyBasicLands: onlyBasicLands,
		SetCodes:       setCodes,
	})
}
