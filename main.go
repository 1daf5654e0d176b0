package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/arcanaland/cardpool/cmd"
)

// getLogLevel reads CARDPOOL_LOG_LEVEL. Defaults to warn so command
// output stays clean.
func getLogLevel() slog.Level {
	v := viper.New()
	v.SetEnvPrefix("CARDPOOL")
	v.AutomaticEnv()

	switch levelStr := strings.ToLower(v.GetString("LOG_LEVEL")); levelStr {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning", "":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		slog.Warn("Invalid CARDPOOL_LOG_LEVEL, using WARN", "value", levelStr)
		return slog.LevelWarn
	}
}

func main() {
	// Log to stderr to keep stdout for command output
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: getLogLevel()})
	slog.SetDefault(slog.New(handler))

	if err := cmd.RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
