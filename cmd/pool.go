package cmd

import (
	"errors"
	"fmt"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arcanaland/cardpool/internal/card"
	"github.com/arcanaland/cardpool/internal/config"
	"github.com/arcanaland/cardpool/internal/deck"
	"github.com/arcanaland/cardpool/internal/pool"
)

var poolCmd = &cobra.Command{
	Use:   "pool",
	Short: "Draw a random card pool",
	Long: `Pool draws random cards from the card database. Cards are drawn with
replacement, so the same card can appear more than once.

A card passes the --colors filter only if all of its colors are allowed.
Passing an empty --colors "" allows only colorless cards, and leaving the
flag out allows every color.

Examples:
  cardpool pool --size 40 --colors WU
  cardpool pool --sets ZEN,M10 --basic-lands --seed 42
  cardpool pool --colors "" --save artifacts`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}
		reg, err := loadSets(cfg)
		if err != nil {
			return err
		}

		req := pool.Request{Size: cfg.PoolSize}
		if cmd.Flags().Changed("size") {
			req.Size, _ = cmd.Flags().GetInt("size")
		}
		req.OnlyBasicLands, _ = cmd.Flags().GetBool("basic-lands")

		if cmd.Flags().Changed("colors") {
			raw, _ := cmd.Flags().GetString("colors")
			symbols, err := card.ParseColorSymbols(raw)
			if err != nil {
				return fmt.Errorf("invalid colors: %v", err)
			}
			req.Colors = pool.AllowColors(symbols...)
		}

		setCodes := cfg.DefaultSets
		if cmd.Flags().Changed("sets") {
			setCodes, _ = cmd.Flags().GetStringSlice("sets")
		}
		if req.SetCodes, err = resolveSetCodes(reg, setCodes); err != nil {
			return err
		}

		seed, _ := cmd.Flags().GetUint64("seed")
		if seed == 0 {
			if seed, err = pool.NewSeed(); err != nil {
				return err
			}
		}

		store, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer store.Close()

		cards, err := pool.New(store, pool.WithSeed(seed)).Generate(cmd.Context(), req)
		if errors.Is(err, pool.ErrEmptyCandidatePool) {
			return fmt.Errorf("no cards match colors %s in sets %s; import cards or widen the filters",
				req.Colors, describeSets(req.SetCodes))
		}
		if err != nil {
			return err
		}

		name, _ := cmd.Flags().GetString("save")
		if name == "" {
			name = fmt.Sprintf("pool-%d", seed)
		}
		entry := deck.FromPool(name, cards)
		entry.Seed = seed

		printPool(entry, cards)

		if cmd.Flags().Changed("save") {
			if err := deck.AppendDecks(cfg.DecksFile, entry); err != nil {
				return fmt.Errorf("error saving pool: %v", err)
			}
			fmt.Printf("Saved pool %q to %s\n", entry.Name, cfg.DecksFile)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(poolCmd)

	poolCmd.Flags().IntP("size", "n", config.DefaultPoolSize, "Number of cards to draw (defaults to pool_size from the config)")
	poolCmd.Flags().StringP("colors", "c", "", "Allowed colors as symbols, e.g. WU")
	poolCmd.Flags().Bool("basic-lands", false, "Exclude lands that are not basic")
	poolCmd.Flags().StringSliceP("sets", "s", nil, "Set codes to draw from (defaults to default_sets from the config)")
	poolCmd.Flags().Uint64("seed", 0, "Seed for a reproducible pool, 0 picks one at random")
	poolCmd.Flags().String("save", "", "Save the pool under this name to the decks file")
}

func describeSets(codes []string) string {
	if len(codes) == 0 {
		return "any set"
	}
	return fmt.Sprint(codes)
}

// printPool lists the pool grouped by card, each name tinted by its color
func printPool(entry deck.DeckEntry, cards []*card.Card) {
	colors := make(map[string]card.Color)
	for _, c := range cards {
		colors[c.SetCode+"\x00"+c.Name] = c.Color
	}

	fmt.Printf("%s %s\n", colorize.CyanString("Pool:"), colorize.HiWhiteString("%s", entry.Name))
	fmt.Printf("%s %d\n", colorize.CyanString("Seed:"), entry.Seed)
	fmt.Printf("%s %d cards, %d distinct\n\n", colorize.CyanString("Size:"), entry.Size(), len(entry.Cards))

	for _, c := range entry.Cards {
		name := nameColor(colors[c.Set+"\x00"+c.Name]).Sprint(c.Name)
		fmt.Printf("%3dx %s %s\n", c.Count, name, colorize.HiBlackString("(%s)", c.Set))
	}
}

// nameColor picks the terminal color used to print a card name
func nameColor(c card.Color) *colorize.Color {
	switch {
	case c.IsColorless():
		return colorize.New(colorize.FgHiBlack)
	case c.IsMulticolored():
		return colorize.New(colorize.FgYellow)
	case c == card.White:
		return colorize.New(colorize.FgHiWhite)
	case c == card.Blue:
		return colorize.New(colorize.FgBlue)
	case c == card.Black:
		return colorize.New(colorize.FgMagenta)
	case c == card.Red:
		return colorize.New(colorize.FgRed)
	default:
		return colorize.New(colorize.FgGreen)
	}
}
