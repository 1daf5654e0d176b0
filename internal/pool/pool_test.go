package pool

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcanaland/cardpool/internal/card"
	"github.com/arcanaland/cardpool/internal/repository"
)

func creature(name string, color card.Color) card.Info {
	return card.Info{Name: name, SetCode: "M10", Color: color, Types: []card.CardType{card.TypeCreature}}
}

func basicLand(name string) card.Info {
	return card.Info{
		Name:       name,
		SetCode:    "ZEN",
		Types:      []card.CardType{card.TypeLand},
		Supertypes: []card.SuperType{card.SuperBasic},
	}
}

func nonBasicLand(name string) card.Info {
	return card.Info{Name: name, SetCode: "ZEN", Types: []card.CardType{card.TypeLand}}
}

// mixedUniverse holds every color class the filters care about
func mixedUniverse() []card.Info {
	return []card.Info{
		creature("Serra Angel", card.White),
		creature("Air Elemental", card.Blue),
		creature("Sengir Vampire", card.Black),
		creature("Shivan Dragon", card.Red),
		creature("Craw Wurm", card.Green),
		creature("Azorius Guildmage", card.White|card.Blue),
		creature("Esper Stormblade", card.White|card.Blue|card.Black),
		creature("Ornithopter", card.Colorless),
		basicLand("Plains"),
		nonBasicLand("Misty Rainforest"),
	}
}

func names(cards []*card.Card) map[string]int {
	out := make(map[string]int)
	for _, c := range cards {
		out[c.Name]++
	}
	return out
}

// recordingLookup remembers the last criteria it was asked for
type recordingLookup struct {
	mu       sync.Mutex
	cards    []card.Info
	criteria repository.Criteria
	calls    int
}

func (l *recordingLookup) FindCards(_ context.Context, criteria repository.Criteria) ([]card.Info, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.criteria = criteria
	l.calls++
	return append([]card.Info(nil), l.cards...), nil
}

func TestGenerate_SizeInvariant(t *testing.T) {
	t.Parallel()

	g := New(repository.NewMemory(mixedUniverse()...))
	for _, size := range []int{0, 1, 7, 40, 250} {
		pool, err := g.Generate(context.Background(), Request{Size: size})
		require.NoError(t, err)
		assert.Len(t, pool, size)
	}
}

func TestGenerate_ZeroSizeStillFetches(t *testing.T) {
	t.Parallel()

	lookup := &recordingLookup{}
	pool, err := New(lookup).Generate(context.Background(), Request{Size: 0, Colors: AllowColors(card.SymbolWhite)})
	require.NoError(t, err)
	assert.NotNil(t, pool)
	assert.Empty(t, pool)
	assert.Equal(t, 1, lookup.calls)
}

func TestGenerate_NegativeSize(t *testing.T) {
	t.Parallel()

	_, err := New(repository.NewMemory()).Generate(context.Background(), Request{Size: -1})
	assert.ErrorIs(t, err, ErrNegativeSize)
}

func TestGenerate_ColorFilter(t *testing.T) {
	t.Parallel()

	g := New(repository.NewMemory(mixedUniverse()...), WithSeed(7))
	pool, err := g.Generate(context.Background(), Request{
		Size:   500,
		Colors: AllowColors(card.SymbolWhite, card.SymbolBlue),
	})
	require.NoError(t, err)
	require.Len(t, pool, 500)

	allowed := card.White | card.Blue
	for _, c := range pool {
		assert.False(t, c.Color.IsColorless(), "%s is colorless", c.Name)
		assert.True(t, allowed.Has(c.Color), "%s has color %s", c.Name, c.Color)
	}

	got := names(pool)
	assert.NotContains(t, got, "Esper Stormblade", "a card with any disallowed color is dropped")
	assert.NotContains(t, got, "Plains")
	assert.Contains(t, got, "Azorius Guildmage")
}

func TestGenerate_EmptyColorFilterKeepsColorless(t *testing.T) {
	t.Parallel()

	g := New(repository.NewMemory(mixedUniverse()...), WithSeed(1))
	pool, err := g.Generate(context.Background(), Request{Size: 200, Colors: AllowColors()})
	require.NoError(t, err)

	for _, c := range pool {
		assert.True(t, c.Color.IsColorless(), "%s should be colorless", c.Name)
	}
	got := names(pool)
	assert.Contains(t, got, "Ornithopter")
	assert.Contains(t, got, "Plains")
	assert.Contains(t, got, "Misty Rainforest")
}

func TestGenerate_NoColorFilterKeepsEverything(t *testing.T) {
	t.Parallel()

	universe := mixedUniverse()
	g := New(repository.NewMemory(universe...), WithSeed(3))
	pool, err := g.Generate(context.Background(), Request{Size: 2000})
	require.NoError(t, err)

	got := names(pool)
	for _, info := range universe {
		assert.Contains(t, got, info.Name, "with 2000 draws over %d cards every card should appear", len(universe))
	}
}

func TestGenerate_OnlyBasicLands(t *testing.T) {
	t.Parallel()

	g := New(repository.NewMemory(mixedUniverse()...), WithSeed(11))
	pool, err := g.Generate(context.Background(), Request{Size: 1000, OnlyBasicLands: true})
	require.NoError(t, err)

	got := names(pool)
	assert.NotContains(t, got, "Misty Rainforest")
	assert.Contains(t, got, "Plains")
	assert.Contains(t, got, "Craw Wurm", "non-land cards are unaffected")
}

func TestGenerate_SamplingWithReplacement(t *testing.T) {
	t.Parallel()

	g := New(repository.NewMemory(creature("Grizzly Bears", card.Green)))
	pool, err := g.Generate(context.Background(), Request{Size: 1000})
	require.NoError(t, err)
	require.Len(t, pool, 1000)

	ids := make(map[string]struct{})
	for _, c := range pool {
		assert.Equal(t, "Grizzly Bears", c.Name)
		ids[c.ID.String()] = struct{}{}
	}
	assert.Len(t, ids, 1000, "every draw is its own card object")
}

func TestGenerate_EmptyCandidatePool(t *testing.T) {
	t.Parallel()

	g := New(repository.NewMemory(
		creature("Sengir Vampire", card.Black),
		creature("Craw Wurm", card.Green),
		creature("Golgari Guildmage", card.Black|card.Green),
	))

	pool, err := g.Generate(context.Background(), Request{Size: 1, Colors: AllowColors(card.SymbolWhite)})
	require.ErrorIs(t, err, ErrEmptyCandidatePool)
	assert.Nil(t, pool)

	_, err = New(repository.NewMemory()).Generate(context.Background(), Request{Size: 3})
	assert.ErrorIs(t, err, ErrEmptyCandidatePool)
}

func TestGenerate_PassesSetCodes(t *testing.T) {
	t.Parallel()

	lookup := &recordingLookup{cards: mixedUniverse()}
	g := New(lookup)

	_, err := g.Generate(context.Background(), Request{Size: 1, SetCodes: []string{"M10", "ZEN"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"M10", "ZEN"}, lookup.criteria.SetCodes)

	_, err = g.Generate(context.Background(), Request{Size: 1})
	require.NoError(t, err)
	assert.Empty(t, lookup.criteria.SetCodes, "no set codes means an unrestricted search")
}

func TestGenerate_LookupError(t *testing.T) {
	t.Parallel()

	boom := errors.New("database offline")
	lookup := repository.LookupFunc(func(context.Context, repository.Criteria) ([]card.Info, error) {
		return nil, boom
	})

	_, err := New(lookup).Generate(context.Background(), Request{Size: 1})
	assert.ErrorIs(t, err, boom)
}

func TestGenerate_FactoryError(t *testing.T) {
	t.Parallel()

	boom := errors.New("no card implementation")
	calls := 0
	factory := card.FactoryFunc(func(info card.Info) (*card.Card, error) {
		calls++
		if calls == 3 {
			return nil, boom
		}
		return card.DefaultFactory.NewCard(info)
	})

	g := New(repository.NewMemory(mixedUniverse()...), WithFactory(factory))
	pool, err := g.Generate(context.Background(), Request{Size: 10})
	require.Error(t, err)
	assert.Nil(t, pool, "no partial pool on failure")

	var fe *card.FactoryError
	require.ErrorAs(t, err, &fe)
	assert.ErrorIs(t, err, boom)

	typed := card.NewFactoryError(card.Info{Name: "Typed"}, boom)
	g = New(repository.NewMemory(mixedUniverse()...), WithFactory(card.FactoryFunc(func(card.Info) (*card.Card, error) {
		return nil, typed
	})))
	_, err = g.Generate(context.Background(), Request{Size: 1})
	assert.Same(t, typed, err, "factory errors pass through unchanged")
}

func TestGenerate_SeedIsReproducible(t *testing.T) {
	t.Parallel()

	lookup := repository.NewMemory(mixedUniverse()...)
	req := Request{Size: 30}

	first, err := New(lookup, WithSeed(42)).Generate(context.Background(), req)
	require.NoError(t, err)
	second, err := New(lookup, WithSeed(42)).Generate(context.Background(), req)
	require.NoError(t, err)

	for i := range first {
		assert.Equal(t, first[i].Name, second[i].Name, "draw %d", i)
	}
}

func TestGenerate_WithRand(t *testing.T) {
	t.Parallel()

	lookup := repository.NewMemory(mixedUniverse()...)
	a, err := New(lookup, WithRand(rand.New(rand.NewPCG(5, 9)))).Generate(context.Background(), Request{Size: 20})
	require.NoError(t, err)
	b, err := New(lookup, WithRand(rand.New(rand.NewPCG(5, 9)))).Generate(context.Background(), Request{Size: 20})
	require.NoError(t, err)

	for i := range a {
		assert.Equal(t, a[i].Name, b[i].Name)
	}
}

func TestGenerate_Concurrent(t *testing.T) {
	t.Parallel()

	g := New(repository.NewMemory(mixedUniverse()...))
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			pool, err := g.Generate(context.Background(), Request{Size: 60, OnlyBasicLands: true})
			assert.NoError(t, err)
			assert.Len(t, pool, 60)
		}()
	}
	wg.Wait()
}

func TestGenerateRandomCardPool(t *testing.T) {
	t.Parallel()

	lookup := repository.NewMemory(mixedUniverse()...)
	pool, err := GenerateRandomCardPool(context.Background(), lookup, 15, AllowColors(card.SymbolRed), false, nil)
	require.NoError(t, err)
	require.Len(t, pool, 15)
	for _, c := range pool {
		assert.Equal(t, "Shivan Dragon", c.Name)
	}
}

func TestNewSeed(t *testing.T) {
	t.Parallel()

	a, err := NewSeed()
	require.NoError(t, err)
	b, err := NewSeed()
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}
