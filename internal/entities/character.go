// Package entities holds the data-only types for the character sheet domain.
// All derived values (summon stats, cost deltas, armor totals) are computed by
// internal/rules, not here.
package entities

import "encoding/json"

// Character is one player character. Resource currents are clamped to
// [0, max] by the editing path only; the stored values are trusted as-is on
// load because the backend is the source of truth (max may legitimately be 0,
// in which case no clamping applies anywhere).
type Character struct {
	ID      int64 `json:"id"`
	OwnerID int64 `json:"owner_user_id"`

	Name   string `json:"name"`
	Race   string `json:"race"`
	Klass  string `json:"klass"`
	Gender string `json:"gender"`
	Level  int    `json:"level"`
	XP     int    `json:"xp"`

	// Coin purse. Each denomination is stored as entered; conversion to a
	// copper-equivalent total is display-only.
	Gold   int `json:"gold"`
	Silver int `json:"silver"`
	Copper int `json:"copper"`

	// Personality traits
	Aggression     int `json:"aggression"`
	Kindness       int `json:"kindness"`
	Intellect      int `json:"intellect"`
	Fearlessness   int `json:"fearlessness"`
	Confidence     int `json:"confidence"`
	Humor          int `json:"humor"`
	Emotionality   int `json:"emotionality"`
	Sociability    int `json:"sociability"`
	Responsibility int `json:"responsibility"`
	Intimidation   int `json:"intimidation"`
	Attentiveness  int `json:"attentiveness"`
	Learnability   int `json:"learnability"`
	Luck           int `json:"luck"`
	Stealth        int `json:"stealth"`

	// Combat stats
	Initiative    int `json:"initiative"`
	Attack        int `json:"attack"`
	Counterattack int `json:"counterattack"`
	Steps         int `json:"steps"`
	Defense       int `json:"defense"`
	PermArmor     int `json:"perm_armor"`
	TempArmor     int `json:"temp_armor"`
	ActionPoints  int `json:"action_points"`
	Dodges        int `json:"dodges"`

	// Resources: current value
	HP     int `json:"hp"`
	Mana   int `json:"mana"`
	Energy int `json:"energy"`

	// Resources: maximum
	HPMax     int `json:"hp_max"`
	ManaMax   int `json:"mana_max"`
	EnergyMax int `json:"energy_max"`

	// Per-level gain
	HPPerLevel     int `json:"hp_per_level"`
	ManaPerLevel   int `json:"mana_per_level"`
	EnergyPerLevel int `json:"energy_per_level"`

	// Free text; may embed structured data, see LevelUpRulesData.
	LevelUpRules string `json:"level_up_rules"`

	TemplateID   int64                  `json:"template_id,omitempty"`
	CustomValues map[string]interface{} `json:"custom_values,omitempty"`

	Equipment Equipment `json:"equipment,omitempty"`

	Items     []*Item    `json:"items,omitempty"`
	Spells    []*Spell   `json:"spells,omitempty"`
	Abilities []*Ability `json:"abilities,omitempty"`
	States    []*State   `json:"states,omitempty"`
	Summons   []*Summon  `json:"summons,omitempty"`

	// Version increments on every persisted write; repositories reject a
	// write whose expected version no longer matches, so a slow earlier
	// write can never overwrite a later one.
	Version int64 `json:"version"`

	CreatedAt int64 `json:"created_at"`
	UpdatedAt int64 `json:"updated_at"`
}

// ResourceMax returns the maximum for one of hp/mana/energy, 0 for anything else.
func (c *Character) ResourceMax(resource string) int {
	switch resource {
	case "hp":
		return c.HPMax
	case "mana":
		return c.ManaMax
	case "energy":
		return c.EnergyMax
	}
	return 0
}

// ResourceCurrent returns the current value for one of hp/mana/energy.
func (c *Character) ResourceCurrent(resource string) int {
	switch resource {
	case "hp":
		return c.HP
	case "mana":
		return c.Mana
	case "energy":
		return c.Energy
	}
	return 0
}

// SetResourceCurrent sets the current value for one of hp/mana/energy.
func (c *Character) SetResourceCurrent(resource string, value int) {
	switch resource {
	case "hp":
		c.HP = value
	case "mana":
		c.Mana = value
	case "energy":
		c.Energy = value
	}
}

// CopperEquivalent returns the purse value in copper pieces
// (1 gold = 100, 1 silver = 10). Display-only; the purse itself is never
// renormalized.
func (c *Character) CopperEquivalent() int {
	return c.Gold*100 + c.Silver*10 + c.Copper
}

// LevelUpRulesData attempts to read structured data embedded in the free-text
// level-up rules field. Returns nil when the field holds no valid JSON object.
func (c *Character) LevelUpRulesData() map[string]interface{} {
	var data map[string]interface{}
	if err := json.Unmarshal([]byte(c.LevelUpRules), &data); err != nil {
		return nil
	}
	return data
}
