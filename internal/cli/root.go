package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"lexy/config"
)

var (
	dataDir string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "lexy",
	Short: "Lexy - multi-tier local document search",
	Long: `Lexy indexes documents from a data directory and answers free-text
queries with exact, ranked (BM25+), and fuzzy retrieval tiers, entirely
offline.

Example usage:
  lexy index --data ./data
  lexy search "how to install" --data ./data
  lexy info --data ./data`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		abs, err := filepath.Abs(dataDir)
		if err != nil {
			return fmt.Errorf("invalid data directory: %w", err)
		}
		dataDir = abs

		info, err := os.Stat(dataDir)
		if err != nil {
			return fmt.Errorf("data directory not found: %s", dataDir)
		}
		if !info.IsDir() {
			return fmt.Errorf("not a directory: %s", dataDir)
		}

		cfg, err = config.LoadFromDir(dataDir)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		setupLogging(cfg.Logging.Level)
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "./data", "path to the data directory")
}

func setupLogging(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
}
