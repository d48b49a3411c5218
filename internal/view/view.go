// Package view holds client-side screen state. Every mutation goes through
// a named operation so callers never patch fields directly.
package view

import (
	"github.com/dmtable/sheet-api/internal/entities"
	"github.com/dmtable/sheet-api/internal/errors"
	sheetsvc "github.com/dmtable/sheet-api/internal/services/sheet"
)

// State is the single source of truth for what the client currently shows.
type State struct {
	Me         *entities.User
	Characters []*entities.Character
	SelectedID int64
	Sheet      *sheetsvc.SheetView
	Templates  []*entities.SheetTemplate
	ActiveTab  entities.Tab
	ActiveTmpl int64
}

// New returns an empty state.
func New() *State {
	return &State{ActiveTab: entities.TabMain}
}

// SetMe records the authenticated user.
func (s *State) SetMe(u *entities.User) {
	s.Me = u
}

// SetCharacters replaces the character list. A selection that no longer
// exists is cleared together with its sheet.
func (s *State) SetCharacters(characters []*entities.Character) {
	s.Characters = characters
	if s.SelectedID == 0 {
		return
	}
	for _, ch := range characters {
		if ch.ID == s.SelectedID {
			return
		}
	}
	s.SelectedID = 0
	s.Sheet = nil
}

// Select marks a character as current. The sheet is loaded separately.
func (s *State) Select(characterID int64) {
	if characterID != s.SelectedID {
		s.Sheet = nil
	}
	s.SelectedID = characterID
}

// SetSheet installs a loaded sheet and re-resolves the active tab against
// the sheet's tab list.
func (s *State) SetSheet(sheet *sheetsvc.SheetView) {
	s.Sheet = sheet
	if sheet != nil {
		s.SelectedID = sheet.Character.ID
	}
	s.ActiveTab = s.resolveTab(s.ActiveTab)
}

// SetTemplates replaces the template list. An active template that no
// longer exists is cleared.
func (s *State) SetTemplates(templates []*entities.SheetTemplate) {
	s.Templates = templates
	if s.ActiveTmpl == 0 {
		return
	}
	for _, tmpl := range templates {
		if tmpl.ID == s.ActiveTmpl {
			return
		}
	}
	s.ActiveTmpl = 0
}

// SetActiveTemplate records which template the device last worked with.
func (s *State) SetActiveTemplate(templateID int64) {
	s.ActiveTmpl = templateID
}

// SwitchTab activates a tab. Switching to a tab the current sheet hides
// is rejected so the caller can keep its UI in sync.
func (s *State) SwitchTab(tab entities.Tab) error {
	if resolved := s.resolveTab(tab); resolved != tab {
		return errors.InvalidArgumentf("tab %q is not available", tab)
	}
	s.ActiveTab = tab
	return nil
}

// resolveTab returns tab when the current sheet shows it and the main tab
// otherwise. Without a sheet every standard tab is available.
func (s *State) resolveTab(tab entities.Tab) entities.Tab {
	tabs := entities.DefaultTabs()
	if s.Sheet != nil {
		tabs = s.Sheet.Tabs
	}
	for _, t := range tabs {
		if t == tab {
			return tab
		}
	}
	return entities.TabMain
}

// Tabs returns the tab list the client should render.
func (s *State) Tabs() []entities.Tab {
	if s.Sheet != nil {
		return s.Sheet.Tabs
	}
	return entities.DefaultTabs()
}

// EditResource builds the patch for a current-resource edit. The entered
// value is clamped here, at edit time, so a max lowered on the server does
// not silently rewrite values the player never touched.
func (s *State) EditResource(resource string, value int) (*sheetsvc.CharacterPatch, error) {
	if s.Sheet == nil || s.Sheet.Character == nil {
		return nil, errors.FailedPrecondition("no sheet loaded")
	}

	ch := s.Sheet.Character
	max := ch.ResourceMax(resource)
	if value < 0 {
		value = 0
	}
	if max > 0 && value > max {
		value = max
	}

	patch := &sheetsvc.CharacterPatch{}
	switch resource {
	case "hp":
		patch.HP = &value
	case "mana":
		patch.Mana = &value
	case "energy":
		patch.Energy = &value
	default:
		return nil, errors.InvalidArgumentf("unknown resource %q", resource)
	}
	return patch, nil
}
