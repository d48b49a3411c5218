package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmtable/sheet-api/internal/entities"
	"github.com/dmtable/sheet-api/internal/rules"
)

func TestDecodeSlot(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want rules.Slot
	}{
		{name: "empty", raw: "", want: rules.Slot{}},
		{name: "whitespace only", raw: "   ", want: rules.Slot{}},
		{name: "bare name", raw: "Iron Helm", want: rules.Slot{Name: "Iron Helm"}},
		{name: "bare name trimmed", raw: "  Iron Helm  ", want: rules.Slot{Name: "Iron Helm"}},
		{
			name: "full record",
			raw:  `{"name":"Iron Helm","ac_bonus":2,"stats":"+1 int","info":"dented"}`,
			want: rules.Slot{Name: "Iron Helm", ACBonus: 2, Stats: "+1 int", Info: "dented"},
		},
		{
			name: "missing fields default",
			raw:  `{"name":"Cloak"}`,
			want: rules.Slot{Name: "Cloak"},
		},
		{
			name: "ac bonus as string",
			raw:  `{"name":"Shield","ac_bonus":"3"}`,
			want: rules.Slot{Name: "Shield", ACBonus: 3},
		},
		{
			name: "fractional ac bonus rounds",
			raw:  `{"name":"Buckler","ac_bonus":1.6}`,
			want: rules.Slot{Name: "Buckler", ACBonus: 2},
		},
		{
			name: "numeric name stringified",
			raw:  `{"name":42,"ac_bonus":1}`,
			want: rules.Slot{Name: "42", ACBonus: 1},
		},
		{
			name: "broken json becomes the name",
			raw:  `{"name":"Iron Helm`,
			want: rules.Slot{Name: `{"name":"Iron Helm`},
		},
		{
			name: "brace bounded but invalid becomes the name",
			raw:  `{not json}`,
			want: rules.Slot{Name: `{not json}`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rules.DecodeSlot(tt.raw))
		})
	}
}

func TestEncodeSlot(t *testing.T) {
	t.Run("empty slot encodes empty", func(t *testing.T) {
		assert.Equal(t, "", rules.EncodeSlot(rules.Slot{}))
	})

	t.Run("name only stays bare", func(t *testing.T) {
		assert.Equal(t, "Iron Helm", rules.EncodeSlot(rules.Slot{Name: "Iron Helm"}))
	})

	t.Run("name is trimmed", func(t *testing.T) {
		assert.Equal(t, "Sword", rules.EncodeSlot(rules.Slot{Name: "  Sword  "}))
	})

	t.Run("whitespace only fields collapse to the bare name", func(t *testing.T) {
		assert.Equal(t, "Sword", rules.EncodeSlot(rules.Slot{Name: "Sword", Stats: "  ", Info: "\t"}))
	})

	t.Run("whitespace everywhere encodes empty", func(t *testing.T) {
		assert.Equal(t, "", rules.EncodeSlot(rules.Slot{Name: " ", Stats: " ", Info: " "}))
	})

	t.Run("detailed slot encodes json", func(t *testing.T) {
		s := rules.Slot{Name: "Iron Helm", ACBonus: 2, Stats: "+1 int", Info: "dented"}
		assert.Equal(t,
			`{"name":"Iron Helm","ac_bonus":2,"stats":"+1 int","info":"dented"}`,
			rules.EncodeSlot(s))
	})

	t.Run("round trip", func(t *testing.T) {
		for _, s := range []rules.Slot{
			{},
			{Name: "Iron Helm"},
			{Name: "Iron Helm", ACBonus: 2},
			{Name: "Ring", Stats: "+2 luck"},
			{ACBonus: 1},
			{Name: "Full", ACBonus: 3, Stats: "+1 str", Info: "heavy"},
		} {
			assert.Equal(t, s, rules.DecodeSlot(rules.EncodeSlot(s)))
		}
	})
}

func TestTotalArmorBonus(t *testing.T) {
	eq := entities.Equipment{
		entities.SlotHead:    `{"name":"Iron Helm","ac_bonus":2}`,
		entities.SlotArmor:   `{"name":"Chainmail","ac_bonus":5,"stats":"-1 steps"}`,
		entities.SlotWeapon1: "Sword",
		entities.SlotRing1:   "",
	}
	assert.Equal(t, 7, rules.TotalArmorBonus(eq))

	assert.Equal(t, 0, rules.TotalArmorBonus(entities.Equipment{}))
	assert.Equal(t, 0, rules.TotalArmorBonus(nil))
}
