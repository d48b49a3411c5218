package rules

import (
	"regexp"
	"strings"

	"github.com/dmtable/sheet-api/internal/entities"
)

// Russian resource names accepted in cost strings. Replacement order
// matters: "энергия" must rewrite before its prefix "энер".
var costSynonyms = []struct{ from, to string }{
	{"мана", "mana"},
	{"хп", "hp"},
	{"здоровье", "hp"},
	{"энергия", "energy"},
	{"энер", "energy"},
}

var (
	costSplitPattern = regexp.MustCompile(`[,;\n]+`)
	costPartPattern  = regexp.MustCompile(`^(hp|mana|energy)\s*[:=]?\s*(.+)$`)
)

// CostDelta is the amount each resource pool loses when an ability or spell
// is used.
type CostDelta struct {
	HP     int
	Mana   int
	Energy int
}

// IsZero reports whether applying the delta would change nothing.
func (d CostDelta) IsZero() bool {
	return d.HP == 0 && d.Mana == 0 && d.Energy == 0
}

// ParseCost evaluates a cost string like "hp: 10%, mana: 5" against a
// character. Each part names a resource and an expression; the expression's
// base is that resource's maximum and the level is the character's level.
// Parts that name no resource are ignored, so flavor text costs nothing.
func ParseCost(cost string, ch *entities.Character) CostDelta {
	s := strings.ToLower(cost)
	for _, syn := range costSynonyms {
		s = strings.ReplaceAll(s, syn.from, syn.to)
	}

	var delta CostDelta
	for _, part := range costSplitPattern.Split(s, -1) {
		part = strings.TrimSpace(part)
		m := costPartPattern.FindStringSubmatch(part)
		if m == nil {
			continue
		}
		resource, expr := m[1], m[2]
		amount := Evaluate(expr, ch.ResourceMax(resource), ch.Level)
		switch resource {
		case "hp":
			delta.HP += amount
		case "mana":
			delta.Mana += amount
		case "energy":
			delta.Energy += amount
		}
	}
	return delta
}

// ApplyCost subtracts the delta from the character's current pools, flooring
// each at 0. A negative delta heals and is not capped at the maximum.
func ApplyCost(ch *entities.Character, delta CostDelta) {
	apply := func(resource string, amount int) {
		if amount == 0 {
			return
		}
		next := ch.ResourceCurrent(resource) - amount
		if next < 0 {
			next = 0
		}
		ch.SetResourceCurrent(resource, next)
	}
	apply("hp", delta.HP)
	apply("mana", delta.Mana)
	apply("energy", delta.Energy)
}

// IsPassive reports whether an ability's cost text marks it as passive, in
// which case it renders on the passive tab and cannot be used actively.
func IsPassive(cost string) bool {
	s := strings.ToLower(cost)
	return strings.Contains(s, "passive") || strings.Contains(s, "пассив")
}
