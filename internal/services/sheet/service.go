// Package sheet defines the service interface for character sheet
// operations. Handlers depend on this interface; the orchestrator package
// implements it.
package sheet

//go:generate mockgen -destination=mock/mock_service.go -package=sheetmock github.com/dmtable/sheet-api/internal/services/sheet Service

import (
	"context"

	"github.com/dmtable/sheet-api/internal/entities"
	"github.com/dmtable/sheet-api/internal/rules"
)

// Service handles character sheet operations. Every operation takes the
// acting user and enforces owner-or-DM authorization before touching a
// character.
type Service interface {
	// ListCharacters returns the actor's characters, or every character
	// when a dungeon master asks for all
	ListCharacters(ctx context.Context, input *ListCharactersInput) (*ListCharactersOutput, error)

	// CreateCharacter creates a character with starting resources,
	// optionally bound to a template
	CreateCharacter(ctx context.Context, input *CreateCharacterInput) (*CreateCharacterOutput, error)

	// GetSheet loads a character along with everything derived from it
	GetSheet(ctx context.Context, input *GetSheetInput) (*GetSheetOutput, error)

	// UpdateCharacter applies a partial update with clamping
	UpdateCharacter(ctx context.Context, input *UpdateCharacterInput) (*UpdateCharacterOutput, error)

	// DeleteCharacter removes a character permanently
	DeleteCharacter(ctx context.Context, input *DeleteCharacterInput) (*DeleteCharacterOutput, error)

	// UpsertItem adds an inventory item, or replaces it when the ID is set
	UpsertItem(ctx context.Context, input *UpsertItemInput) (*UpsertItemOutput, error)

	// RemoveItem deletes an inventory item
	RemoveItem(ctx context.Context, input *RemoveChildInput) (*RemoveChildOutput, error)

	// UpsertSpell adds or replaces a spell
	UpsertSpell(ctx context.Context, input *UpsertSpellInput) (*UpsertSpellOutput, error)

	// RemoveSpell deletes a spell
	RemoveSpell(ctx context.Context, input *RemoveChildInput) (*RemoveChildOutput, error)

	// UpsertAbility adds or replaces an ability
	UpsertAbility(ctx context.Context, input *UpsertAbilityInput) (*UpsertAbilityOutput, error)

	// RemoveAbility deletes an ability
	RemoveAbility(ctx context.Context, input *RemoveChildInput) (*RemoveChildOutput, error)

	// UpsertState adds or replaces a state
	UpsertState(ctx context.Context, input *UpsertStateInput) (*UpsertStateOutput, error)

	// RemoveState deletes a state
	RemoveState(ctx context.Context, input *RemoveChildInput) (*RemoveChildOutput, error)

	// ToggleState flips a state on or off, charging its HP cost on
	// activation
	ToggleState(ctx context.Context, input *ToggleStateInput) (*ToggleStateOutput, error)

	// UpsertSummon adds or replaces a summon, filling default ratios
	UpsertSummon(ctx context.Context, input *UpsertSummonInput) (*UpsertSummonOutput, error)

	// RemoveSummon deletes a summon
	RemoveSummon(ctx context.Context, input *RemoveChildInput) (*RemoveChildOutput, error)

	// UseAction spends an ability's or spell's cost from the character's
	// pools
	UseAction(ctx context.Context, input *UseActionInput) (*UseActionOutput, error)

	// UpdateEquipment overwrites the given equipment slots
	UpdateEquipment(ctx context.Context, input *UpdateEquipmentInput) (*UpdateEquipmentOutput, error)

	// UpdateCustomValues stores template field values after schema coercion
	UpdateCustomValues(ctx context.Context, input *UpdateCustomValuesInput) (*UpdateCustomValuesOutput, error)

	// ApplyTemplate binds a character to a template, or clears the binding
	// when the template ID is zero
	ApplyTemplate(ctx context.Context, input *ApplyTemplateInput) (*ApplyTemplateOutput, error)

	// ExportCharacter serializes a character for transfer
	ExportCharacter(ctx context.Context, input *ExportCharacterInput) (*ExportCharacterOutput, error)

	// ImportCharacter creates a new character from exported data, owned by
	// the actor
	ImportCharacter(ctx context.Context, input *ImportCharacterInput) (*ImportCharacterOutput, error)

	// ListTemplates returns the actor's sheet templates
	ListTemplates(ctx context.Context, input *ListTemplatesInput) (*ListTemplatesOutput, error)

	// CreateTemplate creates a sheet template
	CreateTemplate(ctx context.Context, input *CreateTemplateInput) (*CreateTemplateOutput, error)

	// GetTemplate loads a sheet template
	GetTemplate(ctx context.Context, input *GetTemplateInput) (*GetTemplateOutput, error)

	// UpdateTemplate overwrites a sheet template's name and config
	UpdateTemplate(ctx context.Context, input *UpdateTemplateInput) (*UpdateTemplateOutput, error)

	// DeleteTemplate removes a sheet template; characters bound to it fall
	// back to the default layout on their next sheet load
	DeleteTemplate(ctx context.Context, input *DeleteTemplateInput) (*DeleteTemplateOutput, error)
}

// CharacterPatch carries a partial character update. Nil fields are left
// untouched.
type CharacterPatch struct {
	Name   *string `json:"name,omitempty"`
	Race   *string `json:"race,omitempty"`
	Klass  *string `json:"klass,omitempty"`
	Gender *string `json:"gender,omitempty"`
	Level  *int    `json:"level,omitempty"`
	XP     *int    `json:"xp,omitempty"`

	Gold   *int `json:"gold,omitempty"`
	Silver *int `json:"silver,omitempty"`
	Copper *int `json:"copper,omitempty"`

	Aggression     *int `json:"aggression,omitempty"`
	Kindness       *int `json:"kindness,omitempty"`
	Intellect      *int `json:"intellect,omitempty"`
	Fearlessness   *int `json:"fearlessness,omitempty"`
	Confidence     *int `json:"confidence,omitempty"`
	Humor          *int `json:"humor,omitempty"`
	Emotionality   *int `json:"emotionality,omitempty"`
	Sociability    *int `json:"sociability,omitempty"`
	Responsibility *int `json:"responsibility,omitempty"`
	Intimidation   *int `json:"intimidation,omitempty"`
	Attentiveness  *int `json:"attentiveness,omitempty"`
	Learnability   *int `json:"learnability,omitempty"`
	Luck           *int `json:"luck,omitempty"`
	Stealth        *int `json:"stealth,omitempty"`

	Initiative    *int `json:"initiative,omitempty"`
	Attack        *int `json:"attack,omitempty"`
	Counterattack *int `json:"counterattack,omitempty"`
	Steps         *int `json:"steps,omitempty"`
	Defense       *int `json:"defense,omitempty"`
	PermArmor     *int `json:"perm_armor,omitempty"`
	TempArmor     *int `json:"temp_armor,omitempty"`
	ActionPoints  *int `json:"action_points,omitempty"`
	Dodges        *int `json:"dodges,omitempty"`

	HP     *int `json:"hp,omitempty"`
	Mana   *int `json:"mana,omitempty"`
	Energy *int `json:"energy,omitempty"`

	HPMax     *int `json:"hp_max,omitempty"`
	ManaMax   *int `json:"mana_max,omitempty"`
	EnergyMax *int `json:"energy_max,omitempty"`

	HPPerLevel     *int `json:"hp_per_level,omitempty"`
	ManaPerLevel   *int `json:"mana_per_level,omitempty"`
	EnergyPerLevel *int `json:"energy_per_level,omitempty"`

	LevelUpRules *string `json:"level_up_rules,omitempty"`
}

// SummonView pairs a summon with its derived stat block.
type SummonView struct {
	Summon *entities.Summon  `json:"summon"`
	Stats  rules.SummonStats `json:"stats"`
}

// CustomFieldView is one custom field with its resolved display value.
type CustomFieldView struct {
	Key   string             `json:"key"`
	Label string             `json:"label"`
	Type  entities.FieldType `json:"type"`
	Value interface{}        `json:"value"`
}

// CustomSectionView is a template section with resolved field values.
type CustomSectionView struct {
	Title  string            `json:"title"`
	Fields []CustomFieldView `json:"fields"`
}

// SheetView is a character plus everything the client renders that is
// derived rather than stored. Child collections and the bound template are
// lifted to the top level so the client never digs into the character
// document for them.
type SheetView struct {
	Character    *entities.Character     `json:"character"`
	Template     *entities.SheetTemplate `json:"template"`
	Equipment    entities.Equipment      `json:"equipment"`
	CustomValues map[string]interface{}  `json:"custom_values"`

	Items     []*entities.Item    `json:"items"`
	Spells    []*entities.Spell   `json:"spells"`
	Abilities []*entities.Ability `json:"abilities"`
	States    []*entities.State   `json:"states"`
	Summons   []SummonView        `json:"summons"`

	Tabs            []entities.Tab      `json:"tabs"`
	TotalArmorBonus int                 `json:"total_armor_bonus"`
	CustomSections  []CustomSectionView `json:"custom_sections"`
}

// ListCharactersInput asks for the actor's characters, or all of them
type ListCharactersInput struct {
	Actor *entities.User
	All   bool
}

// ListCharactersOutput returns characters sorted by ID
type ListCharactersOutput struct {
	Characters []*entities.Character
}

// CreateCharacterInput creates a character for the actor
type CreateCharacterInput struct {
	Actor      *entities.User
	Name       string
	TemplateID int64
}

// CreateCharacterOutput returns the created character
type CreateCharacterOutput struct {
	Character *entities.Character
}

// GetSheetInput loads one character's sheet
type GetSheetInput struct {
	Actor       *entities.User
	CharacterID int64
}

// GetSheetOutput returns the sheet view
type GetSheetOutput struct {
	Sheet *SheetView
}

// UpdateCharacterInput applies a partial update
type UpdateCharacterInput struct {
	Actor       *entities.User
	CharacterID int64
	Patch       *CharacterPatch
}

// UpdateCharacterOutput returns the updated character
type UpdateCharacterOutput struct {
	Character *entities.Character
}

// DeleteCharacterInput deletes one character
type DeleteCharacterInput struct {
	Actor       *entities.User
	CharacterID int64
}

// DeleteCharacterOutput is empty
type DeleteCharacterOutput struct{}

// UpsertItemInput adds or replaces an inventory item
type UpsertItemInput struct {
	Actor       *entities.User
	CharacterID int64
	Item        *entities.Item
}

// UpsertItemOutput returns the stored item
type UpsertItemOutput struct {
	Item *entities.Item
}

// UpsertSpellInput adds or replaces a spell
type UpsertSpellInput struct {
	Actor       *entities.User
	CharacterID int64
	Spell       *entities.Spell
}

// UpsertSpellOutput returns the stored spell
type UpsertSpellOutput struct {
	Spell *entities.Spell
}

// UpsertAbilityInput adds or replaces an ability
type UpsertAbilityInput struct {
	Actor       *entities.User
	CharacterID int64
	Ability     *entities.Ability
}

// UpsertAbilityOutput returns the stored ability
type UpsertAbilityOutput struct {
	Ability *entities.Ability
}

// UpsertStateInput adds or replaces a state
type UpsertStateInput struct {
	Actor       *entities.User
	CharacterID int64
	State       *entities.State
}

// UpsertStateOutput returns the stored state
type UpsertStateOutput struct {
	State *entities.State
}

// ToggleStateInput flips one state
type ToggleStateInput struct {
	Actor       *entities.User
	CharacterID int64
	StateID     int64
}

// ToggleStateOutput returns the toggled state and the character it changed
type ToggleStateOutput struct {
	State     *entities.State
	Character *entities.Character
}

// UpsertSummonInput adds or replaces a summon
type UpsertSummonInput struct {
	Actor       *entities.User
	CharacterID int64
	Summon      *entities.Summon
}

// UpsertSummonOutput returns the stored summon with derived stats
type UpsertSummonOutput struct {
	Summon *entities.Summon
	Stats  rules.SummonStats
}

// RemoveChildInput deletes one child record of any kind
type RemoveChildInput struct {
	Actor       *entities.User
	CharacterID int64
	ChildID     int64
}

// RemoveChildOutput is empty
type RemoveChildOutput struct{}

// ActionKind selects what UseAction spends from.
type ActionKind string

// Action kinds.
const (
	ActionSpell   ActionKind = "spell"
	ActionAbility ActionKind = "ability"
)

// UseActionInput spends a spell or ability cost
type UseActionInput struct {
	Actor       *entities.User
	CharacterID int64
	Kind        ActionKind
	ChildID     int64
}

// UseActionOutput returns what was spent and the resulting pools
type UseActionOutput struct {
	Delta     rules.CostDelta
	Character *entities.Character
}

// UpdateEquipmentInput overwrites the given slots with encoded values
type UpdateEquipmentInput struct {
	Actor       *entities.User
	CharacterID int64
	Slots       map[entities.SlotName]string
}

// UpdateEquipmentOutput returns the full equipment map and the new armor sum
type UpdateEquipmentOutput struct {
	Equipment       entities.Equipment
	TotalArmorBonus int
}

// UpdateCustomValuesInput stores custom field values
type UpdateCustomValuesInput struct {
	Actor       *entities.User
	CharacterID int64
	Values      map[string]interface{}
}

// UpdateCustomValuesOutput returns the coerced values as stored
type UpdateCustomValuesOutput struct {
	Values map[string]interface{}
}

// ApplyTemplateInput binds or clears a character's template
type ApplyTemplateInput struct {
	Actor       *entities.User
	CharacterID int64
	TemplateID  int64
}

// ApplyTemplateOutput returns the updated character
type ApplyTemplateOutput struct {
	Character *entities.Character
}

// ExportCharacterInput exports one character
type ExportCharacterInput struct {
	Actor       *entities.User
	CharacterID int64
}

// ExportCharacterOutput carries the serialized character
type ExportCharacterOutput struct {
	Data []byte
}

// ImportCharacterInput creates a character from exported data. NewName,
// when set, replaces the name inside the document.
type ImportCharacterInput struct {
	Actor   *entities.User
	Data    []byte
	NewName string
}

// ImportCharacterOutput returns the created character
type ImportCharacterOutput struct {
	Character *entities.Character
}

// ListTemplatesInput lists the actor's templates
type ListTemplatesInput struct {
	Actor *entities.User
}

// ListTemplatesOutput returns templates sorted by ID
type ListTemplatesOutput struct {
	Templates []*entities.SheetTemplate
}

// CreateTemplateInput creates a template for the actor
type CreateTemplateInput struct {
	Actor  *entities.User
	Name   string
	Config entities.TemplateConfig
}

// CreateTemplateOutput returns the created template
type CreateTemplateOutput struct {
	Template *entities.SheetTemplate
}

// GetTemplateInput loads one template
type GetTemplateInput struct {
	Actor      *entities.User
	TemplateID int64
}

// GetTemplateOutput returns the template
type GetTemplateOutput struct {
	Template *entities.SheetTemplate
}

// UpdateTemplateInput overwrites a template's name and config
type UpdateTemplateInput struct {
	Actor      *entities.User
	TemplateID int64
	Name       string
	Config     entities.TemplateConfig
}

// UpdateTemplateOutput returns the updated template
type UpdateTemplateOutput struct {
	Template *entities.SheetTemplate
}

// DeleteTemplateInput deletes one template
type DeleteTemplateInput struct {
	Actor      *entities.User
	TemplateID int64
}

// DeleteTemplateOutput is empty
type DeleteTemplateOutput struct{}
