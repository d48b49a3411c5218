package client

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"
)

var (
	characterName string
	templateID    int64
)

var createCharacterCmd = &cobra.Command{
	Use:   "create-character",
	Short: "Create a new character",
	Long:  `Create a new character, optionally bound to a sheet template.`,
	RunE:  runCreateCharacter,
}

func init() {
	createCharacterCmd.Flags().StringVar(&characterName, "name", "", "Character name (required)")
	createCharacterCmd.Flags().Int64Var(&templateID, "template-id", 0, "Sheet template ID (optional)")
	_ = createCharacterCmd.MarkFlagRequired("name") // nolint:errcheck // safe to ignore in init
}

func runCreateCharacter(_ *cobra.Command, _ []string) error {
	c, err := createClient()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	log.Printf("Creating character %q...", characterName)

	ch, err := c.CreateCharacter(ctx, characterName, templateID)
	if err != nil {
		return fmt.Errorf("failed to create character: %w", err)
	}

	fmt.Printf("✅ Character created!\n\n")
	fmt.Printf("ID: %d\n", ch.ID)
	fmt.Printf("Name: %s\n", ch.Name)
	fmt.Printf("Level: %d\n", ch.Level)
	fmt.Printf("HP %d/%d  Mana %d/%d  Energy %d/%d\n",
		ch.HP, ch.HPMax, ch.Mana, ch.ManaMax, ch.Energy, ch.EnergyMax)
	return nil
}
