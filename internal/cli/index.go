package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"lexy/internal/usecase"
)

var indexForce bool

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Build or refresh the search index",
	Long: `Build the search index for the data directory. The index is cached
under .lexy/ inside the data directory and reused until a source file
changes.

Examples:
  lexy index --data ./data
  lexy index --data ./data --reindex`,
	RunE: runIndex,
}

func init() {
	rootCmd.AddCommand(indexCmd)
	indexCmd.Flags().BoolVar(&indexForce, "reindex", false, "force a full rebuild")
}

func runIndex(cmd *cobra.Command, args []string) error {
	resolver := usecase.NewResolver(cfg, slog.Default())
	resolver.Progress = newProgressCallback()

	st, rebuilt, err := resolver.Resolve(dataDir, indexForce)
	if err != nil {
		return fmt.Errorf("indexing failed: %w", err)
	}
	defer st.Close()

	stats, err := st.Stats()
	if err != nil {
		return err
	}

	output := map[string]any{
		"action": "index",
		"stats":  stats,
		"cached": !rebuilt,
	}
	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

// newProgressCallback returns a callback that lazily creates a progress
// bar once the document total is known.
func newProgressCallback() func(processed, total int, currentFile string) {
	var bar *progressbar.ProgressBar
	var mu sync.Mutex

	return func(processed, total int, currentFile string) {
		mu.Lock()
		defer mu.Unlock()

		if bar == nil {
			bar = progressbar.NewOptions(total,
				progressbar.OptionEnableColorCodes(true),
				progressbar.OptionShowBytes(false),
				progressbar.OptionSetWidth(40),
				progressbar.OptionShowCount(),
				progressbar.OptionSetDescription("[cyan]Indexing[reset]"),
				progressbar.OptionOnCompletion(func() {
					fmt.Println()
				}),
			)
		}
		bar.Set(processed)
	}
}
