// Package prefs persists small per-device preferences as a JSON file.
package prefs

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/dmtable/sheet-api/internal/errors"
)

// Prefs is everything the client remembers between runs.
type Prefs struct {
	ActiveTemplateID int64 `json:"active_template_id,omitempty"`
}

// Store reads and writes a Prefs file.
type Store struct {
	path string
}

// Config contains the store's settings.
type Config struct {
	// Path is the preferences file location. Parent directories are
	// created on first save.
	Path string
}

// Validate validates the Config.
func (cfg *Config) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Path == "" {
		return errors.InvalidArgument("path cannot be empty")
	}
	return nil
}

// NewStore creates a new preference store
func NewStore(cfg *Config) (*Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Store{path: cfg.Path}, nil
}

// Load reads the preferences. A missing file yields empty preferences.
func (s *Store) Load() (*Prefs, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return &Prefs{}, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read preferences from %s", s.path)
	}

	var p Prefs
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, errors.Wrapf(err, "preferences file %s is corrupt", s.path)
	}
	return &p, nil
}

// Save writes the preferences atomically via a temp file rename.
func (s *Store) Save(p *Prefs) error {
	if p == nil {
		return errors.InvalidArgument("prefs cannot be nil")
	}

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to encode preferences")
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "failed to create %s", dir)
	}

	tmp, err := os.CreateTemp(dir, ".prefs-*")
	if err != nil {
		return errors.Wrap(err, "failed to create temp file")
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return errors.Wrap(err, "failed to write preferences")
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return errors.Wrap(err, "failed to close temp file")
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return errors.Wrapf(err, "failed to replace %s", s.path)
	}
	return nil
}

// SetActiveTemplate stores the template the device last worked with.
// Zero clears it.
func (s *Store) SetActiveTemplate(templateID int64) error {
	p, err := s.Load()
	if err != nil {
		return err
	}
	p.ActiveTemplateID = templateID
	return s.Save(p)
}
