package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arcanaland/cardpool/internal/config"
	"github.com/arcanaland/cardpool/internal/repository"
)

// cardsCmd represents the cards command group
var cardsCmd = &cobra.Command{
	Use:   "cards",
	Short: "Manage the card database",
}

var cardsImportCmd = &cobra.Command{
	Use:   "import [file...]",
	Short: "Import cards from YAML card files",
	Long: `Import reads YAML card files and adds their cards to the card database.
Each file is imported in one transaction, so a file with an invalid card
adds nothing. Cards must belong to a registered set.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}
		reg, err := loadSets(cfg)
		if err != nil {
			return err
		}

		store, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer store.Close()

		for _, path := range args {
			cards, err := repository.ParseCardFile(path)
			if err != nil {
				return err
			}
			for _, c := range cards {
				if _, ok := reg.Lookup(c.SetCode); !ok {
					return fmt.Errorf("%s: card %q belongs to unknown set %s", path, c.Name, c.SetCode)
				}
			}
			if err := store.AddCards(cmd.Context(), cards...); err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			fmt.Printf("Imported %d cards from %s\n", len(cards), path)
		}
		return nil
	},
}

var cardsCountCmd = &cobra.Command{
	Use:   "count",
	Short: "Show how many cards the database holds per set",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}

		store, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer store.Close()

		total, err := store.Count(cmd.Context())
		if err != nil {
			return err
		}
		counts, err := store.CountBySet(cmd.Context())
		if err != nil {
			return err
		}

		for _, c := range counts {
			fmt.Printf("%-4s %6d\n", c.Code, c.Count)
		}
		fmt.Printf("Total %5d\n", total)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(cardsCmd)
	cardsCmd.AddCommand(cardsImportCmd)
	cardsCmd.AddCommand(cardsCountCmd)
}
