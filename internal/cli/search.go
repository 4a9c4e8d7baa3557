package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"lexy/internal/domain"
	"lexy/internal/usecase"
)

var (
	searchTopK      int
	searchMode      string
	searchThreshold int
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the indexed documents",
	Long: `Search the data directory. The index is resolved from cache and
rebuilt automatically when source files changed.

Modes: all (tiered, default), exact, ranked, fuzzy.

Examples:
  lexy search "installer" --data ./data
  lexy search "john smith" --data ./data --mode fuzzy --fuzzy-threshold 70`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().IntVar(&searchTopK, "top", 0, "number of results (default from config)")
	searchCmd.Flags().StringVar(&searchMode, "mode", "all", "search mode: all|exact|ranked|fuzzy")
	searchCmd.Flags().IntVar(&searchThreshold, "fuzzy-threshold", 0, "fuzzy match score threshold, 0-100 (default from config)")
}

func runSearch(cmd *cobra.Command, args []string) error {
	mode, err := domain.ParseMode(searchMode)
	if err != nil {
		return fmt.Errorf("%w: %q (want all|exact|ranked|fuzzy)", err, searchMode)
	}

	resolver := usecase.NewResolver(cfg, slog.Default())
	st, _, err := resolver.Resolve(dataDir, false)
	if err != nil {
		return fmt.Errorf("failed to resolve index: %w", err)
	}
	defer st.Close()

	output, err := usecase.Search(st, cfg, args[0], mode, searchTopK, searchThreshold)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
