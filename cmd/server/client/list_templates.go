package client

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var listTemplatesCmd = &cobra.Command{
	Use:   "list-templates",
	Short: "List your sheet templates",
	RunE:  runListTemplates,
}

func runListTemplates(_ *cobra.Command, _ []string) error {
	c, err := createClient()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	templates, err := c.ListTemplates(ctx)
	if err != nil {
		return fmt.Errorf("failed to list templates: %w", err)
	}

	store, err := prefsStore()
	if err != nil {
		return err
	}
	p, err := store.Load()
	if err != nil {
		return err
	}

	fmt.Printf("Found %d templates:\n\n", len(templates))
	for _, tmpl := range templates {
		marker := " "
		if tmpl.ID == p.ActiveTemplateID {
			marker = "*"
		}
		fmt.Printf("%s 📋 %s (ID: %d)\n", marker, tmpl.Name, tmpl.ID)
		if len(tmpl.Config.Tabs) > 0 {
			fmt.Printf("    Tabs:")
			for _, tab := range tmpl.Config.Tabs {
				fmt.Printf(" %s", tab)
			}
			fmt.Println()
		}
		for _, section := range tmpl.Config.Sections {
			fmt.Printf("    Section %q: %d fields\n", section.Title, len(section.Fields))
		}
	}

	return nil
}
