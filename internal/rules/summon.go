package rules

import (
	"math"

	"github.com/dmtable/sheet-api/internal/entities"
)

// SummonStats is the fully derived stat block of a summon instance.
type SummonStats struct {
	HP          int `json:"hp"`
	Attack      int `json:"attack"`
	Defense     int `json:"defense"`
	Mana        int `json:"mana"`
	Energy      int `json:"energy"`
	Initiative  int `json:"initiative"`
	Luck        int `json:"luck"`
	Steps       int `json:"steps"`
	AttackRange int `json:"attack_range"`
	Count       int `json:"count"`
}

// ComputeSummonStats derives a summon's stat block from its owner. Each stat
// is the owner's base scaled by the summon's ratio string, rounded to the
// nearest integer. Attack range scales from the owner's steps. Count is never
// below 1.
func ComputeSummonStats(s *entities.Summon, owner *entities.Character) SummonStats {
	stats := SummonStats{
		HP:          scale(s.HPRatio, owner.HPMax),
		Attack:      scale(s.AttackRatio, owner.Attack),
		Defense:     scale(s.DefenseRatio, owner.Defense),
		Mana:        scale(s.ManaRatio, owner.ManaMax),
		Energy:      scale(s.EnergyRatio, owner.EnergyMax),
		Initiative:  scale(s.InitiativeRatio, owner.Initiative),
		Luck:        scale(s.LuckRatio, owner.Luck),
		Steps:       scale(s.StepsRatio, owner.Steps),
		AttackRange: scale(s.AttackRangeRatio, owner.Steps),
		Count:       s.Count,
	}
	if stats.Count < 1 {
		stats.Count = 1
	}
	return stats
}

// DefaultSummonRatios fills empty ratio fields with the standard scaling for
// a fresh summon: a third of HP, half of attack, a quarter of defense,
// nothing else.
func DefaultSummonRatios(s *entities.Summon) {
	if s.HPRatio == "" {
		s.HPRatio = "1/3"
	}
	if s.AttackRatio == "" {
		s.AttackRatio = "1/2"
	}
	if s.DefenseRatio == "" {
		s.DefenseRatio = "1/4"
	}
	for _, r := range []*string{
		&s.ManaRatio, &s.EnergyRatio, &s.InitiativeRatio,
		&s.LuckRatio, &s.StepsRatio, &s.AttackRangeRatio,
	} {
		if *r == "" {
			*r = "0"
		}
	}
	if s.Count < 1 {
		s.Count = 1
	}
}

func scale(ratio string, base int) int {
	return int(math.Round(ParseRatio(ratio) * float64(base)))
}
