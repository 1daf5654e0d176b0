package pool

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arcanaland/cardpool/internal/card"
)

func TestColorFilter_Allows(t *testing.T) {
	t.Parallel()

	wu := AllowColors(card.SymbolWhite, card.SymbolBlue)
	none := AllowColors()
	var unfiltered *ColorFilter

	tests := []struct {
		name   string
		filter *ColorFilter
		color  card.Color
		want   bool
	}{
		{"subset single", wu, card.White, true},
		{"exact pair", wu, card.White | card.Blue, true},
		{"one disallowed component", wu, card.White | card.Black, false},
		{"disallowed single", wu, card.Red, false},
		{"colorless with colors required", wu, card.Colorless, false},
		{"colorless with empty allowed", none, card.Colorless, true},
		{"colored with empty allowed", none, card.Green, false},
		{"nil filter colorless", unfiltered, card.Colorless, true},
		{"nil filter five color", unfiltered, card.White | card.Blue | card.Black | card.Red | card.Green, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.filter.Allows(card.Info{Color: tt.color}))
		})
	}
}

func TestColorFilter_String(t *testing.T) {
	t.Parallel()

	var nilFilter *ColorFilter
	assert.Equal(t, "any", nilFilter.String())
	assert.Equal(t, "C", AllowColors().String())
	assert.Equal(t, "WG", AllowColors(card.SymbolGreen, card.SymbolWhite).String())
}

func TestIsNonBasicLand(t *testing.T) {
	t.Parallel()

	assert.True(t, IsNonBasicLand(nonBasicLand("Misty Rainforest")))
	assert.False(t, IsNonBasicLand(basicLand("Forest")))
	assert.False(t, IsNonBasicLand(creature("Dryad Arbor", card.Green)))
}

func TestFilter(t *testing.T) {
	t.Parallel()

	universe := mixedUniverse()
	before := append([]card.Info(nil), universe...)

	kept := Filter(universe, Request{OnlyBasicLands: true, Colors: AllowColors()})

	var got []string
	for _, info := range kept {
		got = append(got, info.Name)
	}
	assert.Equal(t, []string{"Ornithopter", "Plains"}, got)
	assert.Equal(t, before, universe, "input must not be modified")

	assert.Len(t, Filter(universe, Request{}), len(universe))
}
