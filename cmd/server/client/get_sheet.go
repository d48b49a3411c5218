package client

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmtable/sheet-api/internal/view"
)

var (
	sheetCharacterID int64
)

var getSheetCmd = &cobra.Command{
	Use:   "sheet",
	Short: "Show a character sheet",
	Long:  `Fetch a character's full sheet: resolved tabs, armor total, summon stats and custom sections.`,
	RunE:  runGetSheet,
}

func init() {
	getSheetCmd.Flags().Int64Var(&sheetCharacterID, "id", 0, "Character ID (required)")
	_ = getSheetCmd.MarkFlagRequired("id") // nolint:errcheck // safe to ignore in init
}

func runGetSheet(_ *cobra.Command, _ []string) error {
	c, err := createClient()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	sheet, err := c.GetSheet(ctx, sheetCharacterID)
	if err != nil {
		return fmt.Errorf("failed to fetch sheet: %w", err)
	}

	state := view.New()
	state.SetSheet(sheet)

	ch := sheet.Character
	fmt.Printf("🧙 %s (ID: %d)\n", ch.Name, ch.ID)
	fmt.Printf("Level %d  XP %d\n", ch.Level, ch.XP)
	fmt.Printf("HP %d/%d  Mana %d/%d  Energy %d/%d\n",
		ch.HP, ch.HPMax, ch.Mana, ch.ManaMax, ch.Energy, ch.EnergyMax)
	fmt.Printf("Armor: %d (perm %d, temp %d)\n\n",
		sheet.TotalArmorBonus, ch.PermArmor, ch.TempArmor)

	fmt.Printf("Tabs:")
	for _, tab := range state.Tabs() {
		fmt.Printf(" %s", tab)
	}
	fmt.Println()

	if sheet.Template != nil {
		fmt.Printf("Template: %s (ID %d)\n", sheet.Template.Name, sheet.Template.ID)
	}
	if len(sheet.Spells) > 0 {
		fmt.Printf("\nSpells:\n")
		for _, sp := range sheet.Spells {
			fmt.Printf("  - %s (ID %d) cost %q\n", sp.Name, sp.ID, sp.Cost)
		}
	}
	if len(sheet.Abilities) > 0 {
		fmt.Printf("\nAbilities:\n")
		for _, ab := range sheet.Abilities {
			fmt.Printf("  - %s (ID %d) cost %q\n", ab.Name, ab.ID, ab.Cost)
		}
	}
	if len(sheet.Summons) > 0 {
		fmt.Printf("\nSummons:\n")
		for _, sv := range sheet.Summons {
			fmt.Printf("  - %s x%d: hp %d, attack %d, defense %d\n",
				sv.Summon.Name, sv.Stats.Count, sv.Stats.HP, sv.Stats.Attack, sv.Stats.Defense)
		}
	}
	for _, section := range sheet.CustomSections {
		fmt.Printf("\n%s:\n", section.Title)
		for _, field := range section.Fields {
			fmt.Printf("  %s: %v\n", field.Label, field.Value)
		}
	}

	return nil
}
