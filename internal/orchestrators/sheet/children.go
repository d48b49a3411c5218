package sheet

import (
	"context"

	"github.com/dmtable/sheet-api/internal/entities"
	"github.com/dmtable/sheet-api/internal/errors"
	"github.com/dmtable/sheet-api/internal/rules"
	sheetsvc "github.com/dmtable/sheet-api/internal/services/sheet"
)

// nextChildID allocates a child ID unique within the character. Children
// live inside the character aggregate, so a per-character counter derived
// from the existing records is enough.
func nextChildID(ch *entities.Character) int64 {
	var max int64
	for _, it := range ch.Items {
		if it.ID > max {
			max = it.ID
		}
	}
	for _, sp := range ch.Spells {
		if sp.ID > max {
			max = sp.ID
		}
	}
	for _, ab := range ch.Abilities {
		if ab.ID > max {
			max = ab.ID
		}
	}
	for _, st := range ch.States {
		if st.ID > max {
			max = st.ID
		}
	}
	for _, su := range ch.Summons {
		if su.ID > max {
			max = su.ID
		}
	}
	return max + 1
}

func (o *Orchestrator) UpsertItem(ctx context.Context, input *sheetsvc.UpsertItemInput) (*sheetsvc.UpsertItemOutput, error) {
	if input == nil || input.Actor == nil {
		return nil, errors.Unauthenticated("acting user is required")
	}
	if input.Item == nil || input.Item.Name == "" {
		return nil, errors.InvalidArgument("item name is required")
	}

	item := *input.Item
	if item.Qty < 1 {
		item.Qty = 1
	}

	isNew := item.ID == 0
	_, err := o.mutateCharacter(ctx, input.Actor, input.CharacterID, func(ch *entities.Character) error {
		if isNew {
			item.ID = nextChildID(ch)
			ch.Items = append(ch.Items, &item)
			return nil
		}
		for i, existing := range ch.Items {
			if existing.ID == item.ID {
				ch.Items[i] = &item
				return nil
			}
		}
		return errors.NotFoundf("item %d not found", item.ID)
	})
	if err != nil {
		return nil, err
	}
	return &sheetsvc.UpsertItemOutput{Item: &item}, nil
}

func (o *Orchestrator) RemoveItem(ctx context.Context, input *sheetsvc.RemoveChildInput) (*sheetsvc.RemoveChildOutput, error) {
	if input == nil || input.Actor == nil {
		return nil, errors.Unauthenticated("acting user is required")
	}

	_, err := o.mutateCharacter(ctx, input.Actor, input.CharacterID, func(ch *entities.Character) error {
		for i, it := range ch.Items {
			if it.ID == input.ChildID {
				ch.Items = append(ch.Items[:i], ch.Items[i+1:]...)
				return nil
			}
		}
		return errors.NotFoundf("item %d not found", input.ChildID)
	})
	if err != nil {
		return nil, err
	}
	return &sheetsvc.RemoveChildOutput{}, nil
}

func (o *Orchestrator) UpsertSpell(ctx context.Context, input *sheetsvc.UpsertSpellInput) (*sheetsvc.UpsertSpellOutput, error) {
	if input == nil || input.Actor == nil {
		return nil, errors.Unauthenticated("acting user is required")
	}
	if input.Spell == nil || input.Spell.Name == "" {
		return nil, errors.InvalidArgument("spell name is required")
	}

	spell := *input.Spell
	isNew := spell.ID == 0
	_, err := o.mutateCharacter(ctx, input.Actor, input.CharacterID, func(ch *entities.Character) error {
		if isNew {
			spell.ID = nextChildID(ch)
			ch.Spells = append(ch.Spells, &spell)
			return nil
		}
		for i, existing := range ch.Spells {
			if existing.ID == spell.ID {
				ch.Spells[i] = &spell
				return nil
			}
		}
		return errors.NotFoundf("spell %d not found", spell.ID)
	})
	if err != nil {
		return nil, err
	}
	return &sheetsvc.UpsertSpellOutput{Spell: &spell}, nil
}

func (o *Orchestrator) RemoveSpell(ctx context.Context, input *sheetsvc.RemoveChildInput) (*sheetsvc.RemoveChildOutput, error) {
	if input == nil || input.Actor == nil {
		return nil, errors.Unauthenticated("acting user is required")
	}

	_, err := o.mutateCharacter(ctx, input.Actor, input.CharacterID, func(ch *entities.Character) error {
		for i, sp := range ch.Spells {
			if sp.ID == input.ChildID {
				ch.Spells = append(ch.Spells[:i], ch.Spells[i+1:]...)
				return nil
			}
		}
		return errors.NotFoundf("spell %d not found", input.ChildID)
	})
	if err != nil {
		return nil, err
	}
	return &sheetsvc.RemoveChildOutput{}, nil
}

func (o *Orchestrator) UpsertAbility(ctx context.Context, input *sheetsvc.UpsertAbilityInput) (*sheetsvc.UpsertAbilityOutput, error) {
	if input == nil || input.Actor == nil {
		return nil, errors.Unauthenticated("acting user is required")
	}
	if input.Ability == nil || input.Ability.Name == "" {
		return nil, errors.InvalidArgument("ability name is required")
	}

	ability := *input.Ability
	isNew := ability.ID == 0
	_, err := o.mutateCharacter(ctx, input.Actor, input.CharacterID, func(ch *entities.Character) error {
		if isNew {
			ability.ID = nextChildID(ch)
			ch.Abilities = append(ch.Abilities, &ability)
			return nil
		}
		for i, existing := range ch.Abilities {
			if existing.ID == ability.ID {
				ch.Abilities[i] = &ability
				return nil
			}
		}
		return errors.NotFoundf("ability %d not found", ability.ID)
	})
	if err != nil {
		return nil, err
	}
	return &sheetsvc.UpsertAbilityOutput{Ability: &ability}, nil
}

func (o *Orchestrator) RemoveAbility(ctx context.Context, input *sheetsvc.RemoveChildInput) (*sheetsvc.RemoveChildOutput, error) {
	if input == nil || input.Actor == nil {
		return nil, errors.Unauthenticated("acting user is required")
	}

	_, err := o.mutateCharacter(ctx, input.Actor, input.CharacterID, func(ch *entities.Character) error {
		for i, ab := range ch.Abilities {
			if ab.ID == input.ChildID {
				ch.Abilities = append(ch.Abilities[:i], ch.Abilities[i+1:]...)
				return nil
			}
		}
		return errors.NotFoundf("ability %d not found", input.ChildID)
	})
	if err != nil {
		return nil, err
	}
	return &sheetsvc.RemoveChildOutput{}, nil
}

func (o *Orchestrator) UpsertState(ctx context.Context, input *sheetsvc.UpsertStateInput) (*sheetsvc.UpsertStateOutput, error) {
	if input == nil || input.Actor == nil {
		return nil, errors.Unauthenticated("acting user is required")
	}
	if input.State == nil || input.State.Name == "" {
		return nil, errors.InvalidArgument("state name is required")
	}

	state := *input.State
	isNew := state.ID == 0
	_, err := o.mutateCharacter(ctx, input.Actor, input.CharacterID, func(ch *entities.Character) error {
		if isNew {
			state.ID = nextChildID(ch)
			ch.States = append(ch.States, &state)
			return nil
		}
		for i, existing := range ch.States {
			if existing.ID == state.ID {
				ch.States[i] = &state
				return nil
			}
		}
		return errors.NotFoundf("state %d not found", state.ID)
	})
	if err != nil {
		return nil, err
	}
	return &sheetsvc.UpsertStateOutput{State: &state}, nil
}

func (o *Orchestrator) RemoveState(ctx context.Context, input *sheetsvc.RemoveChildInput) (*sheetsvc.RemoveChildOutput, error) {
	if input == nil || input.Actor == nil {
		return nil, errors.Unauthenticated("acting user is required")
	}

	_, err := o.mutateCharacter(ctx, input.Actor, input.CharacterID, func(ch *entities.Character) error {
		for i, st := range ch.States {
			if st.ID == input.ChildID {
				ch.States = append(ch.States[:i], ch.States[i+1:]...)
				return nil
			}
		}
		return errors.NotFoundf("state %d not found", input.ChildID)
	})
	if err != nil {
		return nil, err
	}
	return &sheetsvc.RemoveChildOutput{}, nil
}

// ToggleState flips a state. Activation charges the state's HP cost against
// the current pool, floored at zero; deactivation refunds nothing.
func (o *Orchestrator) ToggleState(ctx context.Context, input *sheetsvc.ToggleStateInput) (*sheetsvc.ToggleStateOutput, error) {
	if input == nil || input.Actor == nil {
		return nil, errors.Unauthenticated("acting user is required")
	}

	var toggled entities.State
	updated, err := o.mutateCharacter(ctx, input.Actor, input.CharacterID, func(ch *entities.Character) error {
		for _, st := range ch.States {
			if st.ID != input.StateID {
				continue
			}
			if !st.IsActive && st.HPCost > 0 {
				rules.ApplyCost(ch, rules.CostDelta{HP: st.HPCost})
			}
			st.IsActive = !st.IsActive
			toggled = *st
			return nil
		}
		return errors.NotFoundf("state %d not found", input.StateID)
	})
	if err != nil {
		return nil, err
	}
	return &sheetsvc.ToggleStateOutput{State: &toggled, Character: updated}, nil
}

func (o *Orchestrator) UpsertSummon(ctx context.Context, input *sheetsvc.UpsertSummonInput) (*sheetsvc.UpsertSummonOutput, error) {
	if input == nil || input.Actor == nil {
		return nil, errors.Unauthenticated("acting user is required")
	}
	if input.Summon == nil || input.Summon.Name == "" {
		return nil, errors.InvalidArgument("summon name is required")
	}

	summon := *input.Summon
	rules.DefaultSummonRatios(&summon)

	isNew := summon.ID == 0
	updated, err := o.mutateCharacter(ctx, input.Actor, input.CharacterID, func(ch *entities.Character) error {
		if isNew {
			summon.ID = nextChildID(ch)
			ch.Summons = append(ch.Summons, &summon)
			return nil
		}
		for i, existing := range ch.Summons {
			if existing.ID == summon.ID {
				ch.Summons[i] = &summon
				return nil
			}
		}
		return errors.NotFoundf("summon %d not found", summon.ID)
	})
	if err != nil {
		return nil, err
	}
	return &sheetsvc.UpsertSummonOutput{
		Summon: &summon,
		Stats:  rules.ComputeSummonStats(&summon, updated),
	}, nil
}

func (o *Orchestrator) RemoveSummon(ctx context.Context, input *sheetsvc.RemoveChildInput) (*sheetsvc.RemoveChildOutput, error) {
	if input == nil || input.Actor == nil {
		return nil, errors.Unauthenticated("acting user is required")
	}

	_, err := o.mutateCharacter(ctx, input.Actor, input.CharacterID, func(ch *entities.Character) error {
		for i, su := range ch.Summons {
			if su.ID == input.ChildID {
				ch.Summons = append(ch.Summons[:i], ch.Summons[i+1:]...)
				return nil
			}
		}
		return errors.NotFoundf("summon %d not found", input.ChildID)
	})
	if err != nil {
		return nil, err
	}
	return &sheetsvc.RemoveChildOutput{}, nil
}

// UseAction re-evaluates the action's cost against the character's current
// maximums and level, then drains the pools.
func (o *Orchestrator) UseAction(ctx context.Context, input *sheetsvc.UseActionInput) (*sheetsvc.UseActionOutput, error) {
	if input == nil || input.Actor == nil {
		return nil, errors.Unauthenticated("acting user is required")
	}

	var delta rules.CostDelta
	updated, err := o.mutateCharacter(ctx, input.Actor, input.CharacterID, func(ch *entities.Character) error {
		var cost string
		switch input.Kind {
		case sheetsvc.ActionSpell:
			found := false
			for _, sp := range ch.Spells {
				if sp.ID == input.ChildID {
					cost = sp.Cost
					found = true
					break
				}
			}
			if !found {
				return errors.NotFoundf("spell %d not found", input.ChildID)
			}
		case sheetsvc.ActionAbility:
			found := false
			for _, ab := range ch.Abilities {
				if ab.ID == input.ChildID {
					cost = ab.Cost
					found = true
					break
				}
			}
			if !found {
				return errors.NotFoundf("ability %d not found", input.ChildID)
			}
			if rules.IsPassive(cost) {
				return errors.FailedPrecondition("passive ability cannot be used")
			}
		default:
			return errors.InvalidArgumentf("unknown action kind %q", input.Kind)
		}

		delta = rules.ParseCost(cost, ch)
		rules.ApplyCost(ch, delta)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &sheetsvc.UseActionOutput{Delta: delta, Character: updated}, nil
}
