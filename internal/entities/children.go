package entities

// Item is an inventory entry.
type Item struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Stats       string `json:"stats"`
	Qty         int    `json:"qty"`
}

// Spell has a cost string that is stored verbatim and re-evaluated against
// the character's current level and resource maximums every time it is used.
type Spell struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Range       string `json:"range"`
	Duration    string `json:"duration"`
	Cost        string `json:"cost"`
}

// Ability mirrors Spell; abilities whose cost text contains "passive" render
// in the passive tab.
type Ability struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Range       string `json:"range"`
	Duration    string `json:"duration"`
	Cost        string `json:"cost"`
}

// State is a toggleable condition on the character.
type State struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	HPCost   int    `json:"hp_cost"`
	Duration string `json:"duration"`
	IsActive bool   `json:"is_active"`
}

// Summon scales from the owning character's stats. Each ratio is free text in
// one of the forms "50%", "1/3", or "0.25"; empty or unparseable ratios
// evaluate to 0.
type Summon struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Duration    string `json:"duration"`

	HPRatio          string `json:"hp_ratio"`
	AttackRatio      string `json:"attack_ratio"`
	DefenseRatio     string `json:"defense_ratio"`
	ManaRatio        string `json:"mana_ratio"`
	EnergyRatio      string `json:"energy_ratio"`
	InitiativeRatio  string `json:"initiative_ratio"`
	LuckRatio        string `json:"luck_ratio"`
	StepsRatio       string `json:"steps_ratio"`
	AttackRangeRatio string `json:"attack_range_ratio"`

	Count int `json:"count"`
}
