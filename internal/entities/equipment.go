package entities

// SlotName identifies one equipment slot.
type SlotName string

// The fixed equipment slot enumeration.
const (
	SlotHead    SlotName = "head"
	SlotArmor   SlotName = "armor"
	SlotBack    SlotName = "back"
	SlotHands   SlotName = "hands"
	SlotLegs    SlotName = "legs"
	SlotFeet    SlotName = "feet"
	SlotWeapon1 SlotName = "weapon1"
	SlotWeapon2 SlotName = "weapon2"
	SlotBelt    SlotName = "belt"
	SlotRing1   SlotName = "ring1"
	SlotRing2   SlotName = "ring2"
	SlotRing3   SlotName = "ring3"
	SlotRing4   SlotName = "ring4"
	SlotJewelry SlotName = "jewelry"
)

// SlotNames lists every slot in display order.
func SlotNames() []SlotName {
	return []SlotName{
		SlotHead, SlotArmor, SlotBack, SlotHands, SlotLegs, SlotFeet,
		SlotWeapon1, SlotWeapon2, SlotBelt,
		SlotRing1, SlotRing2, SlotRing3, SlotRing4,
		SlotJewelry,
	}
}

// ValidSlot reports whether name is a member of the slot enumeration.
func ValidSlot(name SlotName) bool {
	for _, s := range SlotNames() {
		if s == name {
			return true
		}
	}
	return false
}

// Equipment maps a slot to its persisted value: an empty string, a bare
// display name, or a JSON-encoded detailed record. internal/rules owns the
// encoding and decoding of the per-slot value.
type Equipment map[SlotName]string

// Clone returns a copy so callers can stage edits without touching the
// original.
func (e Equipment) Clone() Equipment {
	out := make(Equipment, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}
