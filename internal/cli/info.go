package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"lexy/config"
	"lexy/internal/adapter/fs"
	"lexy/internal/adapter/store"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show data directory and index status",
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	walker := fs.NewWalker(cfg.Index.Includes, cfg.Index.Excludes)
	docs, err := walker.Walk(dataDir)
	if err != nil {
		return fmt.Errorf("failed to scan data dir: %w", err)
	}

	extCounts := make(map[string]int)
	for _, doc := range docs {
		extCounts[strings.ToLower(filepath.Ext(doc.Path))]++
	}

	output := map[string]any{
		"data_dir":             dataDir,
		"total_files":          len(docs),
		"file_types":           extCounts,
		"supported_extensions": supportedExtensions(),
		"has_cached_index":     false,
	}

	dbPath := config.IndexDBPath(dataDir)
	if _, err := os.Stat(dbPath); err == nil {
		output["has_cached_index"] = true
		if st, err := store.NewBoltStore(dbPath); err == nil {
			if stats, err := st.Stats(); err == nil {
				output["index_stats"] = stats
			}
			st.Close()
		}
	}

	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func supportedExtensions() []string {
	exts := []string{".md", ".markdown", ".txt", ".yaml", ".yml", ".json", ".csv"}
	sort.Strings(exts)
	return exts
}
