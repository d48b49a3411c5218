package rules

import (
	"math"
	"strconv"
	"strings"

	"github.com/dmtable/sheet-api/internal/entities"
)

// EffectiveTabs resolves a template's tab selection into the list the sheet
// actually shows. A nil config or empty selection yields the full default
// list. Unknown tab names are dropped, duplicates collapse to their first
// position, and the must-have tabs are appended if the template tried to
// hide them.
func EffectiveTabs(cfg *entities.TemplateConfig) []entities.Tab {
	if cfg == nil || len(cfg.Tabs) == 0 {
		return entities.DefaultTabs()
	}

	known := make(map[entities.Tab]bool, len(entities.DefaultTabs()))
	for _, t := range entities.DefaultTabs() {
		known[t] = true
	}

	seen := make(map[entities.Tab]bool)
	tabs := make([]entities.Tab, 0, len(cfg.Tabs))
	for _, t := range cfg.Tabs {
		if !known[t] || seen[t] {
			continue
		}
		seen[t] = true
		tabs = append(tabs, t)
	}

	for _, t := range entities.MustHaveTabs() {
		if !seen[t] {
			seen[t] = true
			tabs = append(tabs, t)
		}
	}
	return tabs
}

// NormalizeFieldType maps unknown field types to text so a template edited by
// hand still renders every field.
func NormalizeFieldType(t entities.FieldType) entities.FieldType {
	switch t {
	case entities.FieldText, entities.FieldTextarea, entities.FieldNumber, entities.FieldCheckbox:
		return t
	}
	return entities.FieldText
}

// FieldValue resolves what a custom field displays: the stored value if one
// exists, otherwise the field's declared default, otherwise the type's zero
// value.
func FieldValue(def entities.FieldDef, stored map[string]interface{}) interface{} {
	if v, ok := stored[def.Key]; ok {
		return v
	}
	if def.Default != nil {
		return def.Default
	}
	switch NormalizeFieldType(def.Type) {
	case entities.FieldNumber:
		return 0
	case entities.FieldCheckbox:
		return false
	}
	return ""
}

// CoerceFieldValue forces a submitted value into the field's storage type:
// checkboxes store bool, numbers store int (0 when unparseable), everything
// else stores a string.
func CoerceFieldValue(def entities.FieldDef, v interface{}) interface{} {
	switch NormalizeFieldType(def.Type) {
	case entities.FieldCheckbox:
		return coerceBool(v)
	case entities.FieldNumber:
		return coerceFieldInt(v)
	}
	return coerceString(v)
}

// CoerceCustomValues filters a submitted value map down to the fields the
// template declares, coercing each to its storage type. Keys outside the
// schema are discarded.
func CoerceCustomValues(cfg *entities.TemplateConfig, values map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{})
	if cfg == nil {
		return out
	}
	for _, section := range cfg.Sections {
		for _, def := range section.Fields {
			if def.Key == "" {
				continue
			}
			if v, ok := values[def.Key]; ok {
				out[def.Key] = CoerceFieldValue(def, v)
			}
		}
	}
	return out
}

func coerceBool(v interface{}) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		s := strings.ToLower(strings.TrimSpace(t))
		return s == "true" || s == "1" || s == "on"
	case float64:
		return t != 0
	}
	return false
}

// coerceFieldInt differs from the slot coercion only in that bools count as
// unparseable, matching what a number input can actually submit.
func coerceFieldInt(v interface{}) int {
	switch t := v.(type) {
	case float64:
		return int(math.Round(t))
	case string:
		f, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(t), ",", "."), 64)
		if err != nil {
			return 0
		}
		return int(math.Round(f))
	}
	return 0
}
