package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/aitorfernandez/puid"
)

var generateCmd = &cobra.Command{
	Use:   "generate [flags] [prefix]",
	Short: "Print new IDs",
	Long: `Print one or more IDs for a prefix, one per line.

The prefix must be 1-8 ASCII letters or digits. When omitted, the prefix
from the [generate] section of .puid.toml is used.

Examples:
  # One ID with 12 random characters
  puid generate foo

  # Five IDs with 24 random characters, as a JSON array
  puid generate bar --length 24 --count 5 --json

  # Only the deterministic parts
  puid generate req -n 0`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGenerate,
}

var (
	generateLength int
	generateCount  int
	generateJSON   bool
)

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().IntVarP(&generateLength, "length", "n", puid.DefaultLength, "Number of random characters (default from config)")
	generateCmd.Flags().IntVarP(&generateCount, "count", "c", 1, "Number of IDs to print")
	generateCmd.Flags().BoolVar(&generateJSON, "json", false, "Print a JSON array instead of one ID per line")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	var argPrefix string
	if len(args) > 0 {
		argPrefix = args[0]
	}
	prefix := firstNonEmpty(argPrefix, projectConfig.Generate.Prefix)
	if err := requireValue("prefix", prefix); err != nil {
		return err
	}

	length := generateLength
	if !cmd.Flags().Changed("length") && projectConfig.Generate.Length != nil {
		length = *projectConfig.Generate.Length
	}

	ids, err := generateIDs(puid.Default(), prefix, length, generateCount)
	if err != nil {
		return err
	}
	logger.Debug("generated ids", "prefix", prefix, "count", len(ids))

	return writeIDs(cmd.OutOrStdout(), ids, generateJSON)
}

func generateIDs(gen *puid.Generator, prefix string, length, count int) ([]string, error) {
	if count < 1 {
		return nil, fmt.Errorf("count must be at least 1, got %d", count)
	}

	ids := make([]string, 0, count)
	for range count {
		id, err := gen.GenerateN(prefix, length)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func writeIDs(w io.Writer, ids []string, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(ids)
	}

	for _, id := range ids {
		if _, err := fmt.Fprintln(w, id); err != nil {
			return err
		}
	}
	return nil
}
