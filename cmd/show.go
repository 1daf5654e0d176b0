package cmd

import (
	"fmt"
	"image/color" // This is the standard library color package
	"os"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/term"

	"github.com/arcanaland/cardpool/internal/card"
	"github.com/arcanaland/cardpool/internal/config"
	"github.com/arcanaland/cardpool/internal/repository"
	"github.com/arcanaland/cardpool/internal/set"

	colorize "github.com/fatih/color" // Rename this import to avoid the conflict
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show [set_code]",
	Short: "Display information about a set with its color distribution",
	Long: `Show displays a card set together with a chart of the colors of its cards
in the card database.

Examples:
  cardpool show ZEN
  cardpool show m10`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		code := strings.ToUpper(strings.TrimSpace(args[0]))

		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}
		reg, err := loadSets(cfg)
		if err != nil {
			return err
		}

		d, ok := reg.Lookup(code)
		if !ok {
			return fmt.Errorf("set not found: %s", code)
		}

		store, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer store.Close()

		cards, err := store.FindCards(cmd.Context(), repository.Criteria{}.WithSetCodes(d.Code))
		if err != nil {
			return fmt.Errorf("error loading cards: %v", err)
		}

		displaySet(d, cards, term.IsTerminal(int(os.Stdout.Fd())))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(showCmd)
}

const barWidth = 24

// manaColors holds the display color of each single color
var manaColors = map[card.Color]string{
	card.White:     "#F8F6D8",
	card.Blue:      "#0E68AB",
	card.Black:     "#150B00",
	card.Red:       "#D3202A",
	card.Green:     "#00733E",
	card.Colorless: "#A6A6A6",
}

// goldHex is the conventional color of multicolored cards
const goldHex = "#CBA135"

// colorShare is one bucket of the color chart
type colorShare struct {
	Label string
	Color colorful.Color
	Count int
}

// blendColor returns the display color of a card color, averaging its components
func blendColor(c card.Color) colorful.Color {
	if c.IsColorless() {
		return mustHex(manaColors[card.Colorless])
	}
	var parts []colorful.Color
	for _, single := range c.Components() {
		parts = append(parts, mustHex(manaColors[single]))
	}
	return averageColor(parts...)
}

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// colorDistribution counts cards per single color, with multicolored and
// colorless cards in their own buckets. Empty buckets are dropped.
func colorDistribution(cards []card.Info) []colorShare {
	shares := []colorShare{
		{Label: "W", Color: mustHex(manaColors[card.White])},
		{Label: "U", Color: mustHex(manaColors[card.Blue])},
		{Label: "B", Color: mustHex(manaColors[card.Black])},
		{Label: "R", Color: mustHex(manaColors[card.Red])},
		{Label: "G", Color: mustHex(manaColors[card.Green])},
		{Label: "M", Color: mustHex(goldHex)},
		{Label: "C", Color: mustHex(manaColors[card.Colorless])},
	}
	index := map[card.Color]int{card.White: 0, card.Blue: 1, card.Black: 2, card.Red: 3, card.Green: 4}

	for _, info := range cards {
		switch {
		case info.Color.IsColorless():
			shares[6].Count++
		case info.Color.IsMulticolored():
			shares[5].Count++
		default:
			shares[index[info.Color]].Count++
		}
	}

	var out []colorShare
	for _, s := range shares {
		if s.Count > 0 {
			out = append(out, s)
		}
	}
	return out
}

// setSwatch blends the colors of every card into one color
func setSwatch(cards []card.Info) colorful.Color {
	if len(cards) == 0 {
		return mustHex(manaColors[card.Colorless])
	}
	colors := make([]colorful.Color, 0, len(cards))
	for _, info := range cards {
		colors = append(colors, blendColor(info.Color))
	}
	return averageColor(colors...)
}

// renderChart draws the swatch and one bar per bucket
func renderChart(cards []card.Info, useColors bool) []string {
	swatch := colorfulToColor(setSwatch(cards))
	swatchLine := strings.Repeat(ansiColorString('▀', swatch, swatch, useColors), barWidth+2)
	lines := []string{swatchLine, swatchLine, ""}

	shares := colorDistribution(cards)
	most := 0
	for _, s := range shares {
		most = max(most, s.Count)
	}
	for _, s := range shares {
		n := s.Count * barWidth / most
		if n == 0 {
			n = 1
		}
		c := colorfulToColor(s.Color)
		bar := strings.Repeat(ansiColorString('▀', c, c, useColors), n)
		lines = append(lines, s.Label+" "+bar)
	}
	return lines
}

// averageColor calculates the average of multiple colors
func averageColor(colors ...colorful.Color) colorful.Color {
	var r, g, b float64
	for _, c := range colors {
		r += c.R
		g += c.G
		b += c.B
	}
	count := float64(len(colors))
	return colorful.Color{R: r / count, G: g / count, B: b / count}
}

// colorfulToColor converts a colorful.Color to a standard color.Color
func colorfulToColor(c colorful.Color) color.Color {
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// ansiColorString formats a character with ANSI color codes
func ansiColorString(char rune, fg, bg color.Color, useColors bool) string {
	if !useColors {
		return string(char)
	}

	// RGBA() returns values in range 0-65535
	r1, g1, b1, _ := fg.RGBA()
	r2, g2, b2, _ := bg.RGBA()
	r1, g1, b1 = r1>>8, g1>>8, b1>>8
	r2, g2, b2 = r2>>8, g2>>8, b2>>8

	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dm%c\x1b[0m",
		r1, g1, b1, r2, g2, b2, char)
}

// wrapText wraps text to a specified width
func wrapText(text string, width int) []string {
	if width < 10 {
		width = 40
	}

	var result []string
	var currentLine string
	words := strings.Fields(text)

	if len(words) == 0 {
		return []string{""}
	}

	for _, word := range words {
		if len(currentLine) == 0 {
			currentLine = word
		} else if len(currentLine)+1+len(word) <= width {
			currentLine += " " + word
		} else {
			result = append(result, currentLine)
			currentLine = word
		}
	}

	if currentLine != "" {
		result = append(result, currentLine)
	}

	return result
}

// notableCards returns the names of rare and mythic cards, without duplicates
func notableCards(cards []card.Info) []string {
	seen := make(map[string]bool)
	var names []string
	for _, info := range cards {
		if info.Rarity != "rare" && info.Rarity != "mythic" {
			continue
		}
		if seen[info.Name] {
			continue
		}
		seen[info.Name] = true
		names = append(names, info.Name)
	}
	return names
}

// setInfoLines builds the text shown next to the chart
func setInfoLines(d set.Descriptor, cards []card.Info, infoWidth int) []string {
	var infoLines []string

	infoLines = append(infoLines, colorize.CyanString("Set:   ")+colorize.HiWhiteString("%s", d.Name))
	infoLines = append(infoLines, colorize.CyanString("Code:  ")+colorize.HiWhiteString("%s", d.Code))

	typeLine := colorize.CyanString("Type:  ") + colorize.HiWhiteString("%s", d.Type)
	if d.IsCustom() {
		typeLine += colorize.MagentaString(" [CUSTOM]")
	}
	infoLines = append(infoLines, typeLine)

	if !d.ReleaseDate.IsZero() {
		infoLines = append(infoLines, colorize.CyanString("Date:  ")+
			colorize.HiWhiteString("%s", d.ReleaseDate.Format(set.ReleaseDateLayout)))
	}
	if d.BlockName != "" {
		infoLines = append(infoLines, colorize.CyanString("Block: ")+colorize.HiWhiteString("%s", d.BlockName))
	}
	infoLines = append(infoLines, colorize.CyanString("Cards: ")+colorize.HiWhiteString("%d", len(cards)))

	shares := colorDistribution(cards)
	if len(shares) > 0 {
		infoLines = append(infoLines, "")
		infoLines = append(infoLines, colorize.CyanString("Colors:"))
		for _, s := range shares {
			infoLines = append(infoLines, fmt.Sprintf("%s %4d  %3d%%", s.Label, s.Count, s.Count*100/len(cards)))
		}
	}

	if names := notableCards(cards); len(names) > 0 {
		infoLines = append(infoLines, "")
		infoLines = append(infoLines, colorize.CyanString("Rares:"))
		infoLines = append(infoLines, wrapText(strings.Join(names, ", "), infoWidth)...)
	}

	return infoLines
}

// displaySet displays the set information next to its color chart
func displaySet(d set.Descriptor, cards []card.Info, useColors bool) {
	chartLines := renderChart(cards, useColors)
	maxChartWidth := 0
	for _, line := range chartLines {
		maxChartWidth = max(maxChartWidth, len([]rune(stripAnsi(line))))
	}

	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		width = 80
	}

	// Chart on the left, info on the right
	spacing := 4
	infoStartCol := maxChartWidth + spacing

	infoWidth := width - infoStartCol - 2
	if infoWidth < 20 {
		infoWidth = 20
	}

	infoLines := setInfoLines(d, cards, infoWidth)

	fmt.Println()

	maxLines := max(len(chartLines), len(infoLines))
	for i := 0; i < maxLines; i++ {
		fmt.Print("  ")
		if i < len(chartLines) {
			fmt.Print(chartLines[i])
			visibleWidth := len([]rune(stripAnsi(chartLines[i])))
			fmt.Print(strings.Repeat(" ", infoStartCol-visibleWidth))
		} else {
			fmt.Print(strings.Repeat(" ", infoStartCol))
		}

		if i < len(infoLines) {
			fmt.Print(infoLines[i])
		}

		fmt.Println()
	}

	fmt.Println()
}

// stripAnsi removes ANSI escape sequences from a string
func stripAnsi(s string) string {
	var result strings.Builder
	inEscape := false
	for _, c := range s {
		if inEscape {
			if c == 'm' {
				inEscape = false
			}
		} else if c == '\033' {
			inEscape = true
		} else {
			result.WriteRune(c)
		}
	}
	return result.String()
}
