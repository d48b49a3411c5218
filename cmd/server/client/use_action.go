package client

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	sheetsvc "github.com/dmtable/sheet-api/internal/services/sheet"
)

var (
	useCharacterID int64
	useKind        string
	useChildID     int64
)

var useActionCmd = &cobra.Command{
	Use:   "use",
	Short: "Use a spell or ability",
	Long:  `Use a spell or ability, paying its cost from the character's resources.`,
	RunE:  runUseAction,
}

func init() {
	useActionCmd.Flags().Int64Var(&useCharacterID, "id", 0, "Character ID (required)")
	useActionCmd.Flags().StringVar(&useKind, "kind", "spell", "Action kind: spell or ability")
	useActionCmd.Flags().Int64Var(&useChildID, "action-id", 0, "Spell or ability ID (required)")
	_ = useActionCmd.MarkFlagRequired("id")        // nolint:errcheck // safe to ignore in init
	_ = useActionCmd.MarkFlagRequired("action-id") // nolint:errcheck // safe to ignore in init
}

func runUseAction(_ *cobra.Command, _ []string) error {
	c, err := createClient()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	log.Printf("Using %s %d on character %d...", useKind, useChildID, useCharacterID)

	result, err := c.UseAction(ctx, useCharacterID, sheetsvc.ActionKind(useKind), useChildID)
	if err != nil {
		return fmt.Errorf("failed to use action: %w", err)
	}

	fmt.Printf("✅ Action used!\n\n")
	fmt.Printf("Spent: hp %d, mana %d, energy %d\n",
		result.Spent.HP, result.Spent.Mana, result.Spent.Energy)
	ch := result.Character
	fmt.Printf("Now: HP %d/%d  Mana %d/%d  Energy %d/%d\n",
		ch.HP, ch.HPMax, ch.Mana, ch.ManaMax, ch.Energy, ch.EnergyMax)
	return nil
}
