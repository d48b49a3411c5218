package sheet

import (
	"context"
	"encoding/json"
	"log/slog"
	"sort"

	"github.com/dmtable/sheet-api/internal/entities"
	"github.com/dmtable/sheet-api/internal/errors"
	"github.com/dmtable/sheet-api/internal/repositories/character"
	"github.com/dmtable/sheet-api/internal/repositories/template"
	sheetsvc "github.com/dmtable/sheet-api/internal/services/sheet"
)

// getTemplateAuthorized loads a template and checks owner-or-DM access.
func (o *Orchestrator) getTemplateAuthorized(ctx context.Context, actor *entities.User, templateID int64) (*entities.SheetTemplate, error) {
	if actor == nil {
		return nil, errors.Unauthenticated("acting user is required")
	}
	out, err := o.templateRepo.Get(ctx, template.GetInput{ID: templateID})
	if err != nil {
		return nil, err
	}
	if !actor.IsDM && out.Template.OwnerID != actor.ID {
		return nil, errors.PermissionDenied("template belongs to another player")
	}
	return out.Template, nil
}

func (o *Orchestrator) ListTemplates(ctx context.Context, input *sheetsvc.ListTemplatesInput) (*sheetsvc.ListTemplatesOutput, error) {
	if input == nil || input.Actor == nil {
		return nil, errors.Unauthenticated("acting user is required")
	}

	out, err := o.templateRepo.ListByOwnerID(ctx, template.ListByOwnerIDInput{OwnerID: input.Actor.ID})
	if err != nil {
		return nil, err
	}

	templates := out.Templates
	sort.Slice(templates, func(i, j int) bool { return templates[i].ID < templates[j].ID })
	return &sheetsvc.ListTemplatesOutput{Templates: templates}, nil
}

func (o *Orchestrator) CreateTemplate(ctx context.Context, input *sheetsvc.CreateTemplateInput) (*sheetsvc.CreateTemplateOutput, error) {
	if input == nil || input.Actor == nil {
		return nil, errors.Unauthenticated("acting user is required")
	}
	if input.Name == "" {
		return nil, errors.InvalidArgument("template name is required")
	}

	cfg := input.Config
	if cfg.Version == 0 {
		cfg.Version = entities.TemplateConfigVersion
	}

	out, err := o.templateRepo.Create(ctx, template.CreateInput{
		Template: &entities.SheetTemplate{
			OwnerID: input.Actor.ID,
			Name:    input.Name,
			Config:  cfg,
		},
	})
	if err != nil {
		return nil, err
	}
	return &sheetsvc.CreateTemplateOutput{Template: out.Template}, nil
}

func (o *Orchestrator) GetTemplate(ctx context.Context, input *sheetsvc.GetTemplateInput) (*sheetsvc.GetTemplateOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input cannot be nil")
	}
	tmpl, err := o.getTemplateAuthorized(ctx, input.Actor, input.TemplateID)
	if err != nil {
		return nil, err
	}
	return &sheetsvc.GetTemplateOutput{Template: tmpl}, nil
}

func (o *Orchestrator) UpdateTemplate(ctx context.Context, input *sheetsvc.UpdateTemplateInput) (*sheetsvc.UpdateTemplateOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input cannot be nil")
	}
	if input.Name == "" {
		return nil, errors.InvalidArgument("template name is required")
	}

	tmpl, err := o.getTemplateAuthorized(ctx, input.Actor, input.TemplateID)
	if err != nil {
		return nil, err
	}

	tmpl.Name = input.Name
	tmpl.Config = input.Config
	if tmpl.Config.Version == 0 {
		tmpl.Config.Version = entities.TemplateConfigVersion
	}
	out, err := o.templateRepo.Update(ctx, template.UpdateInput{Template: tmpl})
	if err != nil {
		return nil, err
	}
	return &sheetsvc.UpdateTemplateOutput{Template: out.Template}, nil
}

func (o *Orchestrator) DeleteTemplate(ctx context.Context, input *sheetsvc.DeleteTemplateInput) (*sheetsvc.DeleteTemplateOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input cannot be nil")
	}
	if _, err := o.getTemplateAuthorized(ctx, input.Actor, input.TemplateID); err != nil {
		return nil, err
	}
	if _, err := o.templateRepo.Delete(ctx, template.DeleteInput{ID: input.TemplateID}); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "deleted template",
		"template_id", input.TemplateID,
		"actor_id", input.Actor.ID)
	return &sheetsvc.DeleteTemplateOutput{}, nil
}

func (o *Orchestrator) ApplyTemplate(ctx context.Context, input *sheetsvc.ApplyTemplateInput) (*sheetsvc.ApplyTemplateOutput, error) {
	if input == nil || input.Actor == nil {
		return nil, errors.Unauthenticated("acting user is required")
	}

	if input.TemplateID != 0 {
		if _, err := o.getTemplateAuthorized(ctx, input.Actor, input.TemplateID); err != nil {
			return nil, err
		}
	}

	updated, err := o.mutateCharacter(ctx, input.Actor, input.CharacterID, func(ch *entities.Character) error {
		ch.TemplateID = input.TemplateID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &sheetsvc.ApplyTemplateOutput{Character: updated}, nil
}

// exportedCharacter is a character stripped of identity and bookkeeping so
// the document can be imported into any account.
func exportedCharacter(ch *entities.Character) *entities.Character {
	out := *ch
	out.ID = 0
	out.OwnerID = 0
	out.TemplateID = 0
	out.Version = 0
	out.CreatedAt = 0
	out.UpdatedAt = 0
	return &out
}

func (o *Orchestrator) ExportCharacter(ctx context.Context, input *sheetsvc.ExportCharacterInput) (*sheetsvc.ExportCharacterOutput, error) {
	if input == nil || input.Actor == nil {
		return nil, errors.Unauthenticated("acting user is required")
	}

	ch, err := o.getAuthorized(ctx, input.Actor, input.CharacterID)
	if err != nil {
		return nil, err
	}

	data, err := json.MarshalIndent(exportedCharacter(ch), "", "  ")
	if err != nil {
		return nil, errors.Wrapf(err, "failed to serialize character")
	}
	return &sheetsvc.ExportCharacterOutput{Data: data}, nil
}

func (o *Orchestrator) ImportCharacter(ctx context.Context, input *sheetsvc.ImportCharacterInput) (*sheetsvc.ImportCharacterOutput, error) {
	if input == nil || input.Actor == nil {
		return nil, errors.Unauthenticated("acting user is required")
	}
	if len(input.Data) == 0 {
		return nil, errors.InvalidArgument("import data is empty")
	}

	var ch entities.Character
	if err := json.Unmarshal(input.Data, &ch); err != nil {
		return nil, errors.InvalidArgument("import data is not a valid character document")
	}
	if input.NewName != "" {
		ch.Name = input.NewName
	}
	if ch.Name == "" {
		return nil, errors.InvalidArgument("import data has no character name")
	}

	imported := exportedCharacter(&ch)
	imported.OwnerID = input.Actor.ID
	if imported.Level < 1 {
		imported.Level = 1
	}
	clampResources(imported)

	out, err := o.characterRepo.Create(ctx, character.CreateInput{Character: imported})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "imported character",
		"character_id", out.Character.ID,
		"owner_id", input.Actor.ID)
	return &sheetsvc.ImportCharacterOutput{Character: out.Character}, nil
}
