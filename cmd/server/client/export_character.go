package client

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	exportCharacterID int64
	exportOutputPath  string
)

var exportCharacterCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a character to JSON",
	Long:  `Download a character as portable JSON, stripped of server identifiers.`,
	RunE:  runExportCharacter,
}

func init() {
	exportCharacterCmd.Flags().Int64Var(&exportCharacterID, "id", 0, "Character ID (required)")
	exportCharacterCmd.Flags().StringVar(&exportOutputPath, "out", "", "Output file (default stdout)")
	_ = exportCharacterCmd.MarkFlagRequired("id") // nolint:errcheck // safe to ignore in init
}

func runExportCharacter(_ *cobra.Command, _ []string) error {
	c, err := createClient()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	data, err := c.ExportCharacter(ctx, exportCharacterID)
	if err != nil {
		return fmt.Errorf("failed to export character: %w", err)
	}

	if exportOutputPath == "" {
		fmt.Println(string(data))
		return nil
	}

	if err := os.WriteFile(exportOutputPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", exportOutputPath, err)
	}
	fmt.Printf("✅ Exported to %s\n", exportOutputPath)
	return nil
}
