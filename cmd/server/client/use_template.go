package client

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	useTemplateID int64
)

var useTemplateCmd = &cobra.Command{
	Use:   "use-template",
	Short: "Remember a template as this device's active one",
	Long:  `Verify a template exists and store it as the active template in the local preference file. Pass 0 to clear.`,
	RunE:  runUseTemplate,
}

func init() {
	useTemplateCmd.Flags().Int64Var(&useTemplateID, "id", 0, "Template ID, 0 clears the preference")
}

func runUseTemplate(_ *cobra.Command, _ []string) error {
	store, err := prefsStore()
	if err != nil {
		return err
	}

	if useTemplateID == 0 {
		if err := store.SetActiveTemplate(0); err != nil {
			return err
		}
		fmt.Println("✅ Active template cleared")
		return nil
	}

	c, err := createClient()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	tmpl, err := c.GetTemplate(ctx, useTemplateID)
	if err != nil {
		return fmt.Errorf("failed to fetch template: %w", err)
	}

	if err := store.SetActiveTemplate(tmpl.ID); err != nil {
		return err
	}
	fmt.Printf("✅ Active template set to %q (ID %d)\n", tmpl.Name, tmpl.ID)
	return nil
}
