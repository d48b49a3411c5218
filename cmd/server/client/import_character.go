package client

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	importInputPath string
	importNewName   string
)

var importCharacterCmd = &cobra.Command{
	Use:   "import",
	Short: "Import a character from JSON",
	Long:  `Upload an exported character file. The copy is owned by the authenticated user.`,
	RunE:  runImportCharacter,
}

func init() {
	importCharacterCmd.Flags().StringVar(&importInputPath, "file", "", "Exported character file (required)")
	importCharacterCmd.Flags().StringVar(&importNewName, "name", "", "Rename the character on import (optional)")
	_ = importCharacterCmd.MarkFlagRequired("file") // nolint:errcheck // safe to ignore in init
}

func runImportCharacter(_ *cobra.Command, _ []string) error {
	data, err := os.ReadFile(importInputPath)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", importInputPath, err)
	}

	c, err := createClient()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	ch, err := c.ImportCharacter(ctx, data, importNewName)
	if err != nil {
		return fmt.Errorf("failed to import character: %w", err)
	}

	fmt.Printf("✅ Imported %q as character %d\n", ch.Name, ch.ID)
	return nil
}
