package card

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    Color
		wantErr bool
	}{
		{name: "empty is colorless", input: "", want: Colorless},
		{name: "explicit colorless", input: "C", want: Colorless},
		{name: "single", input: "g", want: Green},
		{name: "pair", input: "WU", want: White | Blue},
		{name: "all five", input: "WUBRG", want: White | Blue | Black | Red | Green},
		{name: "unknown symbol", input: "WX", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseColor(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestColor_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "C", Colorless.String())
	assert.Equal(t, "WG", (Green | White).String())
	assert.Equal(t, "UBR", (Red | Black | Blue).String())
}

func TestColor_Components(t *testing.T) {
	t.Parallel()

	assert.Empty(t, Colorless.Components())
	assert.Equal(t, []Color{Blue, Green}, (Green | Blue).Components())
	assert.True(t, (Green | Blue).IsMulticolored())
	assert.False(t, Red.IsMulticolored())
	assert.True(t, (White | Black).Has(Black))
	assert.False(t, White.Has(White|Black))
}

func TestParseColorSymbols(t *testing.T) {
	t.Parallel()

	got, err := ParseColorSymbols("w, U,u")
	require.NoError(t, err)
	assert.Equal(t, []ColorSymbol{SymbolWhite, SymbolBlue}, got)

	got, err = ParseColorSymbols("")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	_, err = ParseColorSymbols("WC")
	assert.Error(t, err)
}

func TestInfo_Types(t *testing.T) {
	t.Parallel()

	forest := Info{Name: "Forest", Types: []CardType{TypeLand}, Supertypes: []SuperType{SuperBasic}}
	dunes := Info{Name: "Desert of the Mindful", Types: []CardType{TypeLand}}
	bears := Info{Name: "Grizzly Bears", Types: []CardType{TypeCreature}, Color: Green}

	assert.True(t, forest.IsBasicLand())
	assert.Equal(t, "Basic Land", forest.TypeLine())
	assert.True(t, dunes.IsLand())
	assert.False(t, dunes.IsBasicLand())
	assert.False(t, bears.IsLand())
}

func TestDefaultFactory(t *testing.T) {
	t.Parallel()

	info := Info{Name: "Llanowar Elves", SetCode: "M19", Color: Green}
	a, err := DefaultFactory.NewCard(info)
	require.NoError(t, err)
	b, err := DefaultFactory.NewCard(info)
	require.NoError(t, err)

	assert.Equal(t, info, a.Info)
	assert.NotEqual(t, a.ID, b.ID, "each card object gets its own ID")
}

func TestFactoryError(t *testing.T) {
	t.Parallel()

	cause := errors.New("no implementation")
	err := error(NewFactoryError(Info{Name: "Mox Lotus", SetCode: "UNH"}, cause))

	var fe *FactoryError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "Mox Lotus", fe.Name)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "Mox Lotus (UNH)")
}
