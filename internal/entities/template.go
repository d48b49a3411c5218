package entities

// Tab identifies one section of the sheet UI.
type Tab string

// The built-in tabs, in display order.
const (
	TabMain             Tab = "main"
	TabStats            Tab = "stats"
	TabInventory        Tab = "inv"
	TabSpells           Tab = "spells"
	TabAbilities        Tab = "abilities"
	TabPassiveAbilities Tab = "passive-abilities"
	TabStates           Tab = "states"
	TabSummons          Tab = "summons"
	TabEquipment        Tab = "equip"
	TabCustom           Tab = "custom"
)

// DefaultTabs returns the full built-in tab list in display order.
func DefaultTabs() []Tab {
	return []Tab{
		TabMain, TabStats, TabInventory, TabSpells, TabAbilities,
		TabPassiveAbilities, TabStates, TabSummons, TabEquipment, TabCustom,
	}
}

// MustHaveTabs lists tabs that templates cannot remove. A template hiding one
// of these gets it appended back during tab resolution.
func MustHaveTabs() []Tab {
	return []Tab{TabPassiveAbilities, TabAbilities, TabSummons}
}

// FieldType enumerates custom field input kinds. Anything unrecognized is
// treated as FieldText.
type FieldType string

const (
	FieldText     FieldType = "text"
	FieldTextarea FieldType = "textarea"
	FieldNumber   FieldType = "number"
	FieldCheckbox FieldType = "checkbox"
)

// FieldDef declares one custom field in a template section. Key is the
// storage key inside Character.CustomValues.
type FieldDef struct {
	Key     string      `json:"key"`
	Label   string      `json:"label"`
	Type    FieldType   `json:"type"`
	Default interface{} `json:"default,omitempty"`
}

// CustomSection groups custom fields under a titled block on the custom tab.
type CustomSection struct {
	Title  string     `json:"title"`
	Fields []FieldDef `json:"fields"`
}

// TemplateConfigVersion is the current schema version written into new
// template documents.
const TemplateConfigVersion = 1

// TemplateConfig is the editable body of a sheet template.
type TemplateConfig struct {
	// Tabs selects and orders the visible built-in tabs. Empty means the
	// full default list.
	Tabs []Tab `json:"tabs,omitempty"`

	// Version marks the config schema so stored documents can be migrated.
	Version int `json:"version,omitempty"`

	Sections []CustomSection `json:"custom_sections,omitempty"`
}

// SheetTemplate is a named, owned template document.
type SheetTemplate struct {
	ID      int64  `json:"id"`
	OwnerID int64  `json:"owner_user_id"`
	Name    string `json:"name"`

	Config TemplateConfig `json:"config"`

	CreatedAt int64 `json:"created_at"`
	UpdatedAt int64 `json:"updated_at"`
}
