package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/arcanaland/cardpool/internal/config"
	"github.com/arcanaland/cardpool/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve pool generation and set lookups over MCP on stdio",
	Args:  cobra.NoArgs,
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

		s, err := mcp.New(&mcp.Tools{Sets: reg, Lookup: store})
		if err != nil {
			return err
		}

		slog.Info("Serving MCP on stdio", "sets", reg.Len(), "database", cfg.Database)
		return s.Serve()
	},
}

func init() {
	RootCmd.AddCommand(mcpCmd)
}
