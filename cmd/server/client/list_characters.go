package client

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	listAll bool
)

var listCharactersCmd = &cobra.Command{
	Use:   "list-characters",
	Short: "List your characters",
	Long:  `List every character the authenticated user owns. Dungeon masters can list everyone's with --all.`,
	RunE:  runListCharacters,
}

func init() {
	listCharactersCmd.Flags().BoolVar(&listAll, "all", false, "List every character (dungeon masters only)")
}

func runListCharacters(_ *cobra.Command, _ []string) error {
	c, err := createClient()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	characters, err := c.ListCharacters(ctx, listAll)
	if err != nil {
		return fmt.Errorf("failed to list characters: %w", err)
	}

	fmt.Printf("Found %d characters:\n\n", len(characters))
	for _, ch := range characters {
		fmt.Printf("🧙 %s (ID: %d)\n", ch.Name, ch.ID)
		fmt.Printf("   Level %d", ch.Level)
		if ch.Klass != "" {
			fmt.Printf(" %s", ch.Klass)
		}
		if ch.Race != "" {
			fmt.Printf(" (%s)", ch.Race)
		}
		fmt.Println()
		fmt.Printf("   HP %d/%d  Mana %d/%d  Energy %d/%d\n",
			ch.HP, ch.HPMax, ch.Mana, ch.ManaMax, ch.Energy, ch.EnergyMax)
		if listAll {
			fmt.Printf("   Owner: %d\n", ch.OwnerID)
		}
		fmt.Println()
	}

	return nil
}
