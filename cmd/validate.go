package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arcanaland/cardpool/internal/config"
	"github.com/arcanaland/cardpool/internal/set"
	"github.com/arcanaland/cardpool/internal/validator"
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Validate a directory of custom set definitions",
	Long: `Validate checks every set definition file in a directory before it is loaded.
It verifies required keys, set types and release dates, and that no set code
collides with a built-in set or with another file in the directory.

Without a path the configured sets directory is checked.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		setsPath := ""
		if len(args) == 1 {
			setsPath = args[0]
		} else {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			setsPath = cfg.SetsDir
		}

		// Check if path exists
		if _, err := os.Stat(setsPath); os.IsNotExist(err) {
			return fmt.Errorf("set directory not found: %s", setsPath)
		}

		builtin, err := set.Init(set.Builtin...)
		if err != nil {
			return fmt.Errorf("error loading built-in sets: %v", err)
		}

		v := validator.NewValidator(setsPath)
		v.Reserve(builtin)
		results, err := v.Validate()
		if err != nil {
			return fmt.Errorf("validation error: %v", err)
		}

		fmt.Println("Validation Results:")
		fmt.Println("-------------------")

		if len(results.Errors) == 0 {
			fmt.Printf("✅ Set directory '%s' is valid.\n", setsPath)
		} else {
			fmt.Printf("❌ Set directory '%s' has %d validation errors:\n", setsPath, len(results.Errors))
			for i, err := range results.Errors {
				fmt.Printf("%d. %s\n", i+1, err)
			}
		}

		if len(results.Warnings) > 0 {
			fmt.Println("\nWarnings:")
			for i, warn := range results.Warnings {
				fmt.Printf("%d. %s\n", i+1, warn)
			}
		}

		if len(results.Errors) > 0 {
			return fmt.Errorf("validation failed")
		}
		return nil
	},
}
