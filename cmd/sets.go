package cmd

import (
	"fmt"
	"os"
	"strings"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arcanaland/cardpool/internal/config"
	"github.com/arcanaland/cardpool/internal/set"
)

// setsCmd represents the sets command group
var setsCmd = &cobra.Command{
	Use:   "sets",
	Short: "Browse the registered card sets",
	Long:  `Commands for listing card sets and choosing the sets pools are drawn from.`,
}

// setsListCmd represents the sets ls command
var setsListCmd = &cobra.Command{
	Use:   "ls",
	Short: "List registered sets ordered by release date",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}
		reg, err := loadSets(cfg)
		if err != nil {
			return err
		}

		customOnly, _ := cmd.Flags().GetBool("custom")
		defaults := make(map[string]bool)
		for _, code := range cfg.DefaultSets {
			defaults[strings.ToUpper(code)] = true
		}

		sets := listedSets(reg, customOnly)
		if len(sets) == 0 {
			if customOnly {
				fmt.Println("No custom sets found.")
				fmt.Println("You can add sets by writing definition files to:", cfg.SetsDir)
			} else {
				fmt.Println("No sets registered.")
			}
			return nil
		}

		for _, d := range sets {
			fmt.Println(formatSetLine(d, defaults[d.Code]))
		}
		return nil
	},
}

// listedSets returns the sets to list ordered by release date, only the
// custom ones when customOnly is set
func listedSets(reg *set.SetRegistry, customOnly bool) []set.Descriptor {
	if !customOnly {
		return reg.Descriptors()
	}
	if len(reg.CustomCodes()) == 0 {
		return nil
	}

	var out []set.Descriptor
	for _, d := range reg.Descriptors() {
		if reg.IsCustom(d.Code) {
			out = append(out, d)
		}
	}
	return out
}

// formatSetLine renders one row of the set listing
func formatSetLine(d set.Descriptor, isDefault bool) string {
	marker := "  "
	if isDefault {
		marker = "* "
	}

	released := "          "
	if !d.ReleaseDate.IsZero() {
		released = d.ReleaseDate.Format(set.ReleaseDateLayout)
	}

	line := fmt.Sprintf("%s%s  %s  %s (%s)",
		marker,
		colorize.HiWhiteString("%-4s", d.Code),
		released,
		d.Name,
		d.Type)

	if d.IsCustom() {
		line += colorize.MagentaString(" [CUSTOM]")
	}
	if isDefault {
		line += colorize.CyanString(" [DEFAULT]")
	}
	return line
}

// setsSetDefaultCmd represents the sets set-default command
var setsSetDefaultCmd = &cobra.Command{
	Use:   "set-default [set_code...]",
	Short: "Set the sets pools are drawn from by default",
	Long: `Set the sets pools are drawn from when no --sets flag is given.
Call without arguments to draw from every set.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}
		reg, err := loadSets(cfg)
		if err != nil {
			return err
		}

		codes, err := resolveSetCodes(reg, args)
		if err != nil {
			return err
		}

		if err := config.SetDefaultSets(codes); err != nil {
			return fmt.Errorf("error setting default sets: %v", err)
		}

		if len(codes) == 0 {
			fmt.Println("Pools will be drawn from every set.")
		} else {
			fmt.Printf("Default sets set to: %s\n", strings.Join(codes, ", "))
		}
		return nil
	},
}

// setsInitCmd represents the sets init command
var setsInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the config, set directory and card database",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("error initializing config: %v", err)
		}
		fmt.Println("Config file initialized at:", config.GetConfigFilePath())

		if err := os.MkdirAll(cfg.SetsDir, 0755); err != nil {
			return fmt.Errorf("error creating set directory: %v", err)
		}
		fmt.Println("Set directory initialized at:", cfg.SetsDir)
		fmt.Println("You can now add custom sets by writing definition files to this directory.")

		store, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer store.Close()
		fmt.Println("Card database initialized at:", cfg.Database)

		return nil
	},
}

// resolveSetCodes upper-cases codes and checks that each one is registered
func resolveSetCodes(reg set.Registry, codes []string) ([]string, error) {
	var out []string
	for _, arg := range codes {
		for _, code := range strings.Split(arg, ",") {
			code = strings.ToUpper(strings.TrimSpace(code))
			if code == "" {
				continue
			}
			if _, ok := reg.Lookup(code); !ok {
				return nil, fmt.Errorf("set not found: %s", code)
			}
			out = append(out, code)
		}
	}
	return out, nil
}

func init() {
	RootCmd.AddCommand(setsCmd)
	setsCmd.AddCommand(setsListCmd)
	setsCmd.AddCommand(setsSetDefaultCmd)
	setsCmd.AddCommand(setsInitCmd)

	setsListCmd.Flags().Bool("custom", false, "Only list custom sets")
}
