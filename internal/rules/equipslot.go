package rules

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/dmtable/sheet-api/internal/entities"
)

// Slot is the decoded form of one equipment slot value.
type Slot struct {
	Name    string `json:"name"`
	ACBonus int    `json:"ac_bonus"`
	Stats   string `json:"stats"`
	Info    string `json:"info"`
}

// IsEmpty reports whether the slot carries nothing at all.
func (s Slot) IsEmpty() bool {
	return s.Name == "" && s.ACBonus == 0 && s.Stats == "" && s.Info == ""
}

// DecodeSlot reads a persisted slot value. A brace-bounded value is parsed
// as JSON with lenient field coercion; anything else, including JSON that
// fails to parse, becomes a name-only slot so legacy plain-text values and
// hand-mangled records still display.
func DecodeSlot(raw string) Slot {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Slot{}
	}

	if strings.HasPrefix(trimmed, "{") && strings.HasSuffix(trimmed, "}") {
		var fields map[string]interface{}
		if err := json.Unmarshal([]byte(trimmed), &fields); err == nil {
			return Slot{
				Name:    coerceString(fields["name"]),
				ACBonus: coerceInt(fields["ac_bonus"]),
				Stats:   coerceString(fields["stats"]),
				Info:    coerceString(fields["info"]),
			}
		}
	}

	return Slot{Name: trimmed}
}

// EncodeSlot writes a slot back to its persisted form: empty slots become "",
// name-only slots stay a bare name, anything richer becomes JSON. Decoding
// the result always reproduces the slot.
func EncodeSlot(s Slot) string {
	s.Name = strings.TrimSpace(s.Name)
	s.Stats = strings.TrimSpace(s.Stats)
	s.Info = strings.TrimSpace(s.Info)

	if s.ACBonus == 0 && s.Stats == "" && s.Info == "" {
		return s.Name
	}
	b, err := json.Marshal(s)
	if err != nil {
		return s.Name
	}
	return string(b)
}

// TotalArmorBonus sums the armor bonus over every equipped slot.
func TotalArmorBonus(eq entities.Equipment) int {
	total := 0
	for _, raw := range eq {
		total += DecodeSlot(raw).ACBonus
	}
	return total
}

func coerceString(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	}
	return ""
}

func coerceInt(v interface{}) int {
	switch t := v.(type) {
	case float64:
		return int(math.Round(t))
	case string:
		f, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(t), ",", "."), 64)
		if err != nil {
			return 0
		}
		return int(math.Round(f))
	case bool:
		if t {
			return 1
		}
	}
	return 0
}
