package cmd

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcanaland/cardpool/internal/card"
)

func TestWrapText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		text  string
		width int
		want  []string
	}{
		{name: "empty", text: "  ", width: 20, want: []string{""}},
		{name: "fits", text: "Serra Angel", width: 20, want: []string{"Serra Angel"}},
		{
			name:  "wraps",
			text:  "Baneslayer Angel, Lotus Cobra, Goblin Guide",
			width: 20,
			want:  []string{"Baneslayer Angel,", "Lotus Cobra, Goblin", "Guide"},
		},
		{
			name:  "narrow width falls back",
			text:  "one two three",
			width: 3,
			want:  []string{"one two three"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, wrapText(tt.text, tt.width))
		})
	}
}

func TestStripAnsi(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "plain", stripAnsi("plain"))
	assert.Equal(t, "▀", stripAnsi("\x1b[38;2;1;2;3m\x1b[48;2;4;5;6m▀\x1b[0m"))
}

func TestBlendColor(t *testing.T) {
	t.Parallel()

	assert.Equal(t, mustHex(manaColors[card.Red]), blendColor(card.Red))
	assert.Equal(t, mustHex(manaColors[card.Colorless]), blendColor(card.Colorless))

	white := mustHex(manaColors[card.White])
	blue := mustHex(manaColors[card.Blue])
	azorius := blendColor(card.White | card.Blue)
	assert.InDelta(t, (white.R+blue.R)/2, azorius.R, 1e-9)
	assert.InDelta(t, (white.G+blue.G)/2, azorius.G, 1e-9)
	assert.InDelta(t, (white.B+blue.B)/2, azorius.B, 1e-9)
}

func TestColorDistribution(t *testing.T) {
	t.Parallel()

	cards := []card.Info{
		{Name: "Serra Angel", Color: card.White},
		{Name: "Pacifism", Color: card.White},
		{Name: "Lightning Bolt", Color: card.Red},
		{Name: "Sphinx of Uthuun", Color: card.Blue},
		{Name: "Sprouting Thrinax", Color: card.Black | card.Red | card.Green},
		{Name: "Ornithopter"},
	}

	shares := colorDistribution(cards)
	var labels []string
	counts := make(map[string]int)
	for _, s := range shares {
		labels = append(labels, s.Label)
		counts[s.Label] = s.Count
	}
	assert.Equal(t, []string{"W", "U", "R", "M", "C"}, labels)
	assert.Equal(t, map[string]int{"W": 2, "U": 1, "R": 1, "M": 1, "C": 1}, counts)

	assert.Empty(t, colorDistribution(nil))
}

func TestRenderChart_Plain(t *testing.T) {
	t.Parallel()

	cards := []card.Info{
		{Name: "Forest"},
		{Name: "Llanowar Elves", Color: card.Green},
		{Name: "Giant Growth", Color: card.Green},
	}

	lines := renderChart(cards, false)
	require.Len(t, lines, 5)
	assert.Equal(t, strings.Repeat("▀", barWidth+2), lines[0])
	assert.Equal(t, "", lines[2])
	assert.Equal(t, "G "+strings.Repeat("▀", barWidth), lines[3])
	assert.Equal(t, "C "+strings.Repeat("▀", barWidth/2), lines[4])
}

func TestRenderChart_Colored(t *testing.T) {
	t.Parallel()

	lines := renderChart([]card.Info{{Name: "Shock", Color: card.Red}}, true)
	require.Len(t, lines, 4)
	assert.Contains(t, lines[3], "\x1b[38;2;211;32;42m")
	assert.Equal(t, "R "+strings.Repeat("▀", barWidth), stripAnsi(lines[3]))
}

func TestNotableCards(t *testing.T) {
	t.Parallel()

	cards := []card.Info{
		{Name: "Baneslayer Angel", Rarity: "mythic"},
		{Name: "Serra Angel", Rarity: "uncommon"},
		{Name: "Baneslayer Angel", Rarity: "mythic"},
		{Name: "Lotus Cobra", Rarity: "rare"},
	}
	assert.Equal(t, []string{"Baneslayer Angel", "Lotus Cobra"}, notableCards(cards))
}
