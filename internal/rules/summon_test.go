package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmtable/sheet-api/internal/entities"
	"github.com/dmtable/sheet-api/internal/rules"
)

func TestComputeSummonStats(t *testing.T) {
	owner := &entities.Character{
		HPMax:      120,
		Attack:     40,
		Defense:    24,
		ManaMax:    60,
		EnergyMax:  30,
		Initiative: 12,
		Luck:       9,
		Steps:      6,
	}

	t.Run("scales each stat from its owner base", func(t *testing.T) {
		s := &entities.Summon{
			HPRatio:          "25%",
			AttackRatio:      "1/2",
			DefenseRatio:     "1/4",
			ManaRatio:        "0.5",
			EnergyRatio:      "0",
			InitiativeRatio:  "1/3",
			LuckRatio:        "1",
			StepsRatio:       "1/2",
			AttackRangeRatio: "1/3",
			Count:            2,
		}

		got := rules.ComputeSummonStats(s, owner)
		assert.Equal(t, rules.SummonStats{
			HP:          30,
			Attack:      20,
			Defense:     6,
			Mana:        30,
			Energy:      0,
			Initiative:  4,
			Luck:        9,
			Steps:       3,
			AttackRange: 2,
			Count:       2,
		}, got)
	})

	t.Run("attack range scales from steps", func(t *testing.T) {
		s := &entities.Summon{AttackRangeRatio: "1/2", Count: 1}
		got := rules.ComputeSummonStats(s, owner)
		assert.Equal(t, 3, got.AttackRange)
	})

	t.Run("empty ratios are zero", func(t *testing.T) {
		s := &entities.Summon{Count: 1}
		got := rules.ComputeSummonStats(s, owner)
		assert.Equal(t, rules.SummonStats{Count: 1}, got)
	})

	t.Run("count floors at one", func(t *testing.T) {
		s := &entities.Summon{Count: 0}
		got := rules.ComputeSummonStats(s, owner)
		assert.Equal(t, 1, got.Count)
	})
}

func TestDefaultSummonRatios(t *testing.T) {
	s := &entities.Summon{Name: "wolf"}
	rules.DefaultSummonRatios(s)

	assert.Equal(t, "1/3", s.HPRatio)
	assert.Equal(t, "1/2", s.AttackRatio)
	assert.Equal(t, "1/4", s.DefenseRatio)
	assert.Equal(t, "0", s.ManaRatio)
	assert.Equal(t, "0", s.EnergyRatio)
	assert.Equal(t, "0", s.InitiativeRatio)
	assert.Equal(t, "0", s.LuckRatio)
	assert.Equal(t, "0", s.StepsRatio)
	assert.Equal(t, "0", s.AttackRangeRatio)
	assert.Equal(t, 1, s.Count)

	// Explicit values survive.
	s2 := &entities.Summon{HPRatio: "50%", Count: 3}
	rules.DefaultSummonRatios(s2)
	assert.Equal(t, "50%", s2.HPRatio)
	assert.Equal(t, 3, s2.Count)
}
