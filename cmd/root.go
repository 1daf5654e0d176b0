package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/arcanaland/cardpool/internal/config"
	"github.com/arcanaland/cardpool/internal/repository/sqlite"
	"github.com/arcanaland/cardpool/internal/set"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "cardpool",
	Short: "Tool for browsing card sets and drawing random card pools",
	Long: `Cardpool keeps a registry of card sets and draws random card pools from a card database.
Pools can be limited to a set of colors, to basic lands, and to chosen sets.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if debug, _ := cmd.Flags().GetBool("debug"); debug {
			handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
			slog.SetDefault(slog.New(handler))
		}
	},
}

func init() {
	RootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	RootCmd.AddCommand(validateCmd)
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return RootCmd.Execute()
}

// loadSets returns the set registry: the built-in catalog plus the custom
// sets defined in the configured sets directory
func loadSets(cfg *config.Config) (*set.SetRegistry, error) {
	err := set.AddDiscoverer(set.TOMLSource{Dir: cfg.SetsDir})
	if err != nil && !errors.Is(err, set.ErrAlreadyInitialized) {
		return nil, err
	}
	return set.Default()
}

// openStore opens the card database, creating its directory if needed
func openStore(cfg *config.Config) (*sqlite.Store, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.Database), 0755); err != nil {
		return nil, fmt.Errorf("error creating data directory: %v", err)
	}
	store, err := sqlite.Open(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("error opening card database: %w", err)
	}
	return store, nil
}
