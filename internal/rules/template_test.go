package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmtable/sheet-api/internal/entities"
	"github.com/dmtable/sheet-api/internal/rules"
)

func TestEffectiveTabs(t *testing.T) {
	t.Run("nil config uses defaults", func(t *testing.T) {
		assert.Equal(t, entities.DefaultTabs(), rules.EffectiveTabs(nil))
	})

	t.Run("empty selection uses defaults", func(t *testing.T) {
		assert.Equal(t, entities.DefaultTabs(), rules.EffectiveTabs(&entities.TemplateConfig{}))
	})

	t.Run("selection keeps order and appends must haves", func(t *testing.T) {
		cfg := &entities.TemplateConfig{
			Tabs: []entities.Tab{entities.TabStats, entities.TabMain},
		}
		assert.Equal(t, []entities.Tab{
			entities.TabStats,
			entities.TabMain,
			entities.TabPassiveAbilities,
			entities.TabAbilities,
			entities.TabSummons,
		}, rules.EffectiveTabs(cfg))
	})

	t.Run("must haves already present are not duplicated", func(t *testing.T) {
		cfg := &entities.TemplateConfig{
			Tabs: []entities.Tab{entities.TabSummons, entities.TabMain},
		}
		assert.Equal(t, []entities.Tab{
			entities.TabSummons,
			entities.TabMain,
			entities.TabPassiveAbilities,
			entities.TabAbilities,
		}, rules.EffectiveTabs(cfg))
	})

	t.Run("unknown and duplicate tabs dropped", func(t *testing.T) {
		cfg := &entities.TemplateConfig{
			Tabs: []entities.Tab{"bogus", entities.TabMain, entities.TabMain},
		}
		got := rules.EffectiveTabs(cfg)
		assert.Equal(t, []entities.Tab{
			entities.TabMain,
			entities.TabPassiveAbilities,
			entities.TabAbilities,
			entities.TabSummons,
		}, got)
	})
}

func TestNormalizeFieldType(t *testing.T) {
	assert.Equal(t, entities.FieldNumber, rules.NormalizeFieldType(entities.FieldNumber))
	assert.Equal(t, entities.FieldText, rules.NormalizeFieldType("dropdown"))
	assert.Equal(t, entities.FieldText, rules.NormalizeFieldType(""))
}

func TestFieldValue(t *testing.T) {
	stored := map[string]interface{}{"honor": float64(7)}

	t.Run("stored value wins", func(t *testing.T) {
		def := entities.FieldDef{Key: "honor", Type: entities.FieldNumber, Default: 3}
		assert.Equal(t, float64(7), rules.FieldValue(def, stored))
	})

	t.Run("default when nothing stored", func(t *testing.T) {
		def := entities.FieldDef{Key: "faith", Type: entities.FieldNumber, Default: 3}
		assert.Equal(t, 3, rules.FieldValue(def, stored))
	})

	t.Run("type zero when no default", func(t *testing.T) {
		assert.Equal(t, 0, rules.FieldValue(entities.FieldDef{Key: "a", Type: entities.FieldNumber}, stored))
		assert.Equal(t, false, rules.FieldValue(entities.FieldDef{Key: "b", Type: entities.FieldCheckbox}, stored))
		assert.Equal(t, "", rules.FieldValue(entities.FieldDef{Key: "c", Type: entities.FieldText}, stored))
		assert.Equal(t, "", rules.FieldValue(entities.FieldDef{Key: "d", Type: "bogus"}, stored))
	})
}

func TestCoerceFieldValue(t *testing.T) {
	number := entities.FieldDef{Key: "n", Type: entities.FieldNumber}
	checkbox := entities.FieldDef{Key: "c", Type: entities.FieldCheckbox}
	text := entities.FieldDef{Key: "t", Type: entities.FieldText}

	assert.Equal(t, 7, rules.CoerceFieldValue(number, float64(7)))
	assert.Equal(t, 7, rules.CoerceFieldValue(number, "7"))
	assert.Equal(t, 0, rules.CoerceFieldValue(number, "seven"))
	assert.Equal(t, 0, rules.CoerceFieldValue(number, true))

	assert.Equal(t, true, rules.CoerceFieldValue(checkbox, true))
	assert.Equal(t, true, rules.CoerceFieldValue(checkbox, "true"))
	assert.Equal(t, true, rules.CoerceFieldValue(checkbox, float64(1)))
	assert.Equal(t, false, rules.CoerceFieldValue(checkbox, "no"))

	assert.Equal(t, "hi", rules.CoerceFieldValue(text, "hi"))
	assert.Equal(t, "5", rules.CoerceFieldValue(text, float64(5)))
	assert.Equal(t, "true", rules.CoerceFieldValue(text, true))
	assert.Equal(t, "", rules.CoerceFieldValue(text, nil))
}

func TestCoerceCustomValues(t *testing.T) {
	cfg := &entities.TemplateConfig{
		Sections: []entities.CustomSection{
			{
				Title: "Traits",
				Fields: []entities.FieldDef{
					{Key: "honor", Type: entities.FieldNumber},
					{Key: "sworn", Type: entities.FieldCheckbox},
					{Key: "motto", Type: entities.FieldText},
				},
			},
		},
	}

	got := rules.CoerceCustomValues(cfg, map[string]interface{}{
		"honor":   "12",
		"sworn":   "true",
		"motto":   "strength",
		"unknown": "dropped",
	})

	assert.Equal(t, map[string]interface{}{
		"honor": 12,
		"sworn": true,
		"motto": "strength",
	}, got)

	t.Run("nil config yields empty map", func(t *testing.T) {
		assert.Empty(t, rules.CoerceCustomValues(nil, map[string]interface{}{"x": 1}))
	})

	t.Run("absent keys stay absent", func(t *testing.T) {
		got := rules.CoerceCustomValues(cfg, map[string]interface{}{"honor": float64(2)})
		assert.Equal(t, map[string]interface{}{"honor": 2}, got)
	})

	t.Run("fields without a key are ignored", func(t *testing.T) {
		keyless := &entities.TemplateConfig{
			Sections: []entities.CustomSection{
				{Fields: []entities.FieldDef{{Key: "", Type: entities.FieldText}}},
			},
		}
		assert.Empty(t, rules.CoerceCustomValues(keyless, map[string]interface{}{"": "x"}))
	})
}
