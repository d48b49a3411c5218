// Package sheet implements the sheet service: authorization, clamping and
// derived-value assembly on top of the repositories.
package sheet

import (
	"context"
	"log/slog"
	"sort"

	"github.com/dmtable/sheet-api/internal/auth"
	"github.com/dmtable/sheet-api/internal/entities"
	"github.com/dmtable/sheet-api/internal/errors"
	"github.com/dmtable/sheet-api/internal/repositories/character"
	"github.com/dmtable/sheet-api/internal/repositories/template"
	"github.com/dmtable/sheet-api/internal/repositories/user"
	"github.com/dmtable/sheet-api/internal/rules"
	sheetsvc "github.com/dmtable/sheet-api/internal/services/sheet"
)

// Starting resources for a fresh character.
const (
	defaultHP     = 10
	defaultMana   = 5
	defaultEnergy = 3
)

// updateRetries bounds how often a write is replayed after losing a version
// race.
const updateRetries = 3

// Orchestrator implements sheetsvc.Service and auth.UserResolver.
type Orchestrator struct {
	characterRepo character.Repository
	templateRepo  template.Repository
	userRepo      user.Repository
	dmUserIDs     map[int64]bool
}

// Config contains the orchestrator's dependencies.
type Config struct {
	CharacterRepo character.Repository
	TemplateRepo  template.Repository
	UserRepo      user.Repository

	// DMUserIDs are granted dungeon master access when they first log in.
	DMUserIDs []int64
}

// Validate validates the Config.
func (cfg *Config) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.CharacterRepo == nil {
		return errors.InvalidArgument("character repository cannot be nil")
	}
	if cfg.TemplateRepo == nil {
		return errors.InvalidArgument("template repository cannot be nil")
	}
	if cfg.UserRepo == nil {
		return errors.InvalidArgument("user repository cannot be nil")
	}
	return nil
}

// New creates a new sheet orchestrator
func New(cfg *Config) (*Orchestrator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	dms := make(map[int64]bool, len(cfg.DMUserIDs))
	for _, id := range cfg.DMUserIDs {
		dms[id] = true
	}

	return &Orchestrator{
		characterRepo: cfg.CharacterRepo,
		templateRepo:  cfg.TemplateRepo,
		userRepo:      cfg.UserRepo,
		dmUserIDs:     dms,
	}, nil
}

var _ sheetsvc.Service = (*Orchestrator)(nil)
var _ auth.UserResolver = (*Orchestrator)(nil)

// ResolveUser upserts the Telegram identity into the user store. DM status
// is granted from configuration and never revoked by a login.
func (o *Orchestrator) ResolveUser(ctx context.Context, tg *auth.TelegramUser) (*entities.User, error) {
	if tg == nil || tg.ID == 0 {
		return nil, errors.Unauthenticated("telegram user is required")
	}

	existing, err := o.userRepo.Get(ctx, user.GetInput{ID: tg.ID})
	if err != nil && !errors.IsNotFound(err) {
		return nil, err
	}

	u := &entities.User{
		ID:        tg.ID,
		Username:  tg.Username,
		FirstName: tg.FirstName,
		LastName:  tg.LastName,
		IsDM:      o.dmUserIDs[tg.ID],
	}

	if existing != nil && existing.User != nil {
		u.CreatedAt = existing.User.CreatedAt
		u.IsDM = u.IsDM || existing.User.IsDM
		if existing.User.Username == u.Username &&
			existing.User.FirstName == u.FirstName &&
			existing.User.LastName == u.LastName &&
			existing.User.IsDM == u.IsDM {
			return existing.User, nil
		}
	} else {
		slog.InfoContext(ctx, "registering new user",
			"user_id", tg.ID,
			"username", tg.Username,
			"is_dm", u.IsDM)
	}

	saved, err := o.userRepo.Save(ctx, user.SaveInput{User: u})
	if err != nil {
		return nil, err
	}
	return saved.User, nil
}

// authorize checks owner-or-DM access to a character.
func authorize(actor *entities.User, ch *entities.Character) error {
	if actor == nil {
		return errors.Unauthenticated("acting user is required")
	}
	if actor.IsDM || ch.OwnerID == actor.ID {
		return nil
	}
	return errors.PermissionDenied("character belongs to another player")
}

// getAuthorized loads a character and checks access in one step.
func (o *Orchestrator) getAuthorized(ctx context.Context, actor *entities.User, characterID int64) (*entities.Character, error) {
	out, err := o.characterRepo.Get(ctx, character.GetInput{ID: characterID})
	if err != nil {
		return nil, err
	}
	if err := authorize(actor, out.Character); err != nil {
		return nil, err
	}
	return out.Character, nil
}

// mutateCharacter loads, authorizes, applies mutate and saves. A write that
// loses the version race is replayed against the fresh state, so concurrent
// edits interleave without overwriting each other wholesale.
func (o *Orchestrator) mutateCharacter(
	ctx context.Context,
	actor *entities.User,
	characterID int64,
	mutate func(ch *entities.Character) error,
) (*entities.Character, error) {
	var lastErr error
	for attempt := 0; attempt < updateRetries; attempt++ {
		ch, err := o.getAuthorized(ctx, actor, characterID)
		if err != nil {
			return nil, err
		}

		if err := mutate(ch); err != nil {
			return nil, err
		}

		out, err := o.characterRepo.Update(ctx, character.UpdateInput{Character: ch})
		if err == nil {
			return out.Character, nil
		}
		if !errors.IsFailedPrecondition(err) {
			return nil, err
		}
		lastErr = err
		slog.DebugContext(ctx, "retrying character write after version race",
			"character_id", characterID,
			"attempt", attempt+1)
	}
	return nil, lastErr
}

func (o *Orchestrator) ListCharacters(ctx context.Context, input *sheetsvc.ListCharactersInput) (*sheetsvc.ListCharactersOutput, error) {
	if input == nil || input.Actor == nil {
		return nil, errors.Unauthenticated("acting user is required")
	}

	var (
		characters []*entities.Character
		err        error
	)
	if input.All && input.Actor.IsDM {
		var out *character.ListAllOutput
		out, err = o.characterRepo.ListAll(ctx, character.ListAllInput{})
		if out != nil {
			characters = out.Characters
		}
	} else {
		var out *character.ListByOwnerIDOutput
		out, err = o.characterRepo.ListByOwnerID(ctx, character.ListByOwnerIDInput{OwnerID: input.Actor.ID})
		if out != nil {
			characters = out.Characters
		}
	}
	if err != nil {
		return nil, err
	}

	sort.Slice(characters, func(i, j int) bool { return characters[i].ID < characters[j].ID })
	return &sheetsvc.ListCharactersOutput{Characters: characters}, nil
}

func (o *Orchestrator) CreateCharacter(ctx context.Context, input *sheetsvc.CreateCharacterInput) (*sheetsvc.CreateCharacterOutput, error) {
	if input == nil || input.Actor == nil {
		return nil, errors.Unauthenticated("acting user is required")
	}

	name := input.Name
	if name == "" {
		name = "New Character"
	}

	ch := &entities.Character{
		OwnerID:   input.Actor.ID,
		Name:      name,
		Level:     1,
		HP:        defaultHP,
		HPMax:     defaultHP,
		Mana:      defaultMana,
		ManaMax:   defaultMana,
		Energy:    defaultEnergy,
		EnergyMax: defaultEnergy,
	}

	if input.TemplateID != 0 {
		tmpl, err := o.getTemplateAuthorized(ctx, input.Actor, input.TemplateID)
		if err != nil {
			return nil, err
		}
		ch.TemplateID = tmpl.ID
	}

	out, err := o.characterRepo.Create(ctx, character.CreateInput{Character: ch})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "created character",
		"character_id", out.Character.ID,
		"owner_id", input.Actor.ID)
	return &sheetsvc.CreateCharacterOutput{Character: out.Character}, nil
}

func (o *Orchestrator) GetSheet(ctx context.Context, input *sheetsvc.GetSheetInput) (*sheetsvc.GetSheetOutput, error) {
	if input == nil || input.Actor == nil {
		return nil, errors.Unauthenticated("acting user is required")
	}

	ch, err := o.getAuthorized(ctx, input.Actor, input.CharacterID)
	if err != nil {
		return nil, err
	}

	tmpl := o.boundTemplate(ctx, ch)
	return &sheetsvc.GetSheetOutput{Sheet: buildSheetView(ch, tmpl)}, nil
}

// boundTemplate loads the character's template. A dangling template binding
// degrades to the default layout instead of failing the sheet.
func (o *Orchestrator) boundTemplate(ctx context.Context, ch *entities.Character) *entities.SheetTemplate {
	if ch.TemplateID == 0 {
		return nil
	}
	out, err := o.templateRepo.Get(ctx, template.GetInput{ID: ch.TemplateID})
	if err != nil {
		if !errors.IsNotFound(err) {
			slog.ErrorContext(ctx, "failed to load template for sheet",
				"character_id", ch.ID,
				"template_id", ch.TemplateID,
				"error", err.Error())
		}
		return nil
	}
	return out.Template
}

// templateConfig is boundTemplate reduced to the config body.
func (o *Orchestrator) templateConfig(ctx context.Context, ch *entities.Character) *entities.TemplateConfig {
	tmpl := o.boundTemplate(ctx, ch)
	if tmpl == nil {
		return nil
	}
	return &tmpl.Config
}

func buildSheetView(ch *entities.Character, tmpl *entities.SheetTemplate) *sheetsvc.SheetView {
	var cfg *entities.TemplateConfig
	if tmpl != nil {
		cfg = &tmpl.Config
	}

	view := &sheetsvc.SheetView{
		Character:       ch,
		Template:        tmpl,
		Equipment:       ch.Equipment,
		CustomValues:    ch.CustomValues,
		Items:           ch.Items,
		Spells:          ch.Spells,
		Abilities:       ch.Abilities,
		States:          ch.States,
		Tabs:            rules.EffectiveTabs(cfg),
		TotalArmorBonus: rules.TotalArmorBonus(ch.Equipment),
		Summons:         make([]sheetsvc.SummonView, 0, len(ch.Summons)),
	}

	for _, s := range ch.Summons {
		view.Summons = append(view.Summons, sheetsvc.SummonView{
			Summon: s,
			Stats:  rules.ComputeSummonStats(s, ch),
		})
	}

	if cfg != nil {
		for _, section := range cfg.Sections {
			sectionView := sheetsvc.CustomSectionView{
				Title:  section.Title,
				Fields: make([]sheetsvc.CustomFieldView, 0, len(section.Fields)),
			}
			for _, def := range section.Fields {
				if def.Key == "" {
					continue
				}
				sectionView.Fields = append(sectionView.Fields, sheetsvc.CustomFieldView{
					Key:   def.Key,
					Label: def.Label,
					Type:  rules.NormalizeFieldType(def.Type),
					Value: rules.FieldValue(def, ch.CustomValues),
				})
			}
			view.CustomSections = append(view.CustomSections, sectionView)
		}
	}

	return view
}

func (o *Orchestrator) UpdateCharacter(ctx context.Context, input *sheetsvc.UpdateCharacterInput) (*sheetsvc.UpdateCharacterOutput, error) {
	if input == nil || input.Actor == nil {
		return nil, errors.Unauthenticated("acting user is required")
	}
	if input.Patch == nil {
		return nil, errors.InvalidArgument("patch cannot be nil")
	}

	updated, err := o.mutateCharacter(ctx, input.Actor, input.CharacterID, func(ch *entities.Character) error {
		applyPatch(ch, input.Patch)
		clampResources(ch)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &sheetsvc.UpdateCharacterOutput{Character: updated}, nil
}

func (o *Orchestrator) DeleteCharacter(ctx context.Context, input *sheetsvc.DeleteCharacterInput) (*sheetsvc.DeleteCharacterOutput, error) {
	if input == nil || input.Actor == nil {
		return nil, errors.Unauthenticated("acting user is required")
	}

	if _, err := o.getAuthorized(ctx, input.Actor, input.CharacterID); err != nil {
		return nil, err
	}
	if _, err := o.characterRepo.Delete(ctx, character.DeleteInput{ID: input.CharacterID}); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "deleted character",
		"character_id", input.CharacterID,
		"actor_id", input.Actor.ID)
	return &sheetsvc.DeleteCharacterOutput{}, nil
}

func (o *Orchestrator) UpdateEquipment(ctx context.Context, input *sheetsvc.UpdateEquipmentInput) (*sheetsvc.UpdateEquipmentOutput, error) {
	if input == nil || input.Actor == nil {
		return nil, errors.Unauthenticated("acting user is required")
	}

	for slot := range input.Slots {
		if !entities.ValidSlot(slot) {
			return nil, errors.InvalidArgumentf("unknown equipment slot %q", slot)
		}
	}

	updated, err := o.mutateCharacter(ctx, input.Actor, input.CharacterID, func(ch *entities.Character) error {
		if ch.Equipment == nil {
			ch.Equipment = entities.Equipment{}
		}
		for slot, raw := range input.Slots {
			// Canonicalize through the codec so a detailed record
			// submitted as loose JSON is stored in encoded form.
			ch.Equipment[slot] = rules.EncodeSlot(rules.DecodeSlot(raw))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &sheetsvc.UpdateEquipmentOutput{
		Equipment:       updated.Equipment,
		TotalArmorBonus: rules.TotalArmorBonus(updated.Equipment),
	}, nil
}

func (o *Orchestrator) UpdateCustomValues(ctx context.Context, input *sheetsvc.UpdateCustomValuesInput) (*sheetsvc.UpdateCustomValuesOutput, error) {
	if input == nil || input.Actor == nil {
		return nil, errors.Unauthenticated("acting user is required")
	}

	var stored map[string]interface{}
	_, err := o.mutateCharacter(ctx, input.Actor, input.CharacterID, func(ch *entities.Character) error {
		cfg := o.templateConfig(ctx, ch)
		coerced := rules.CoerceCustomValues(cfg, input.Values)
		if ch.CustomValues == nil {
			ch.CustomValues = make(map[string]interface{}, len(coerced))
		}
		for k, v := range coerced {
			ch.CustomValues[k] = v
		}
		stored = coerced
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &sheetsvc.UpdateCustomValuesOutput{Values: stored}, nil
}

// applyPatch copies the set fields of a patch onto the character, clamping
// level and experience as it goes.
func applyPatch(ch *entities.Character, p *sheetsvc.CharacterPatch) {
	setString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	setInt := func(dst *int, src *int) {
		if src != nil {
			*dst = *src
		}
	}
	setMin := func(dst *int, src *int, floor int) {
		if src != nil {
			v := *src
			if v < floor {
				v = floor
			}
			*dst = v
		}
	}

	setString(&ch.Name, p.Name)
	setString(&ch.Race, p.Race)
	setString(&ch.Klass, p.Klass)
	setString(&ch.Gender, p.Gender)
	setMin(&ch.Level, p.Level, 1)
	setMin(&ch.XP, p.XP, 0)

	setInt(&ch.Gold, p.Gold)
	setInt(&ch.Silver, p.Silver)
	setInt(&ch.Copper, p.Copper)

	setInt(&ch.Aggression, p.Aggression)
	setInt(&ch.Kindness, p.Kindness)
	setInt(&ch.Intellect, p.Intellect)
	setInt(&ch.Fearlessness, p.Fearlessness)
	setInt(&ch.Confidence, p.Confidence)
	setInt(&ch.Humor, p.Humor)
	setInt(&ch.Emotionality, p.Emotionality)
	setInt(&ch.Sociability, p.Sociability)
	setInt(&ch.Responsibility, p.Responsibility)
	setInt(&ch.Intimidation, p.Intimidation)
	setInt(&ch.Attentiveness, p.Attentiveness)
	setInt(&ch.Learnability, p.Learnability)
	setInt(&ch.Luck, p.Luck)
	setInt(&ch.Stealth, p.Stealth)

	setInt(&ch.Initiative, p.Initiative)
	setInt(&ch.Attack, p.Attack)
	setInt(&ch.Counterattack, p.Counterattack)
	setInt(&ch.Steps, p.Steps)
	setInt(&ch.Defense, p.Defense)
	setInt(&ch.PermArmor, p.PermArmor)
	setInt(&ch.TempArmor, p.TempArmor)
	setInt(&ch.ActionPoints, p.ActionPoints)
	setInt(&ch.Dodges, p.Dodges)

	setInt(&ch.HP, p.HP)
	setInt(&ch.Mana, p.Mana)
	setInt(&ch.Energy, p.Energy)

	setMin(&ch.HPMax, p.HPMax, 0)
	setMin(&ch.ManaMax, p.ManaMax, 0)
	setMin(&ch.EnergyMax, p.EnergyMax, 0)

	setMin(&ch.HPPerLevel, p.HPPerLevel, 0)
	setMin(&ch.ManaPerLevel, p.ManaPerLevel, 0)
	setMin(&ch.EnergyPerLevel, p.EnergyPerLevel, 0)

	setString(&ch.LevelUpRules, p.LevelUpRules)
}

// clampResources bounds each current pool to [0, max]. A zero max means the
// pool is unused and the current value passes through untouched.
func clampResources(ch *entities.Character) {
	clamp := func(current *int, max int) {
		if max <= 0 {
			return
		}
		if *current < 0 {
			*current = 0
		}
		if *current > max {
			*current = max
		}
	}
	clamp(&ch.HP, ch.HPMax)
	clamp(&ch.Mana, ch.ManaMax)
	clamp(&ch.Energy, ch.EnergyMax)
}
