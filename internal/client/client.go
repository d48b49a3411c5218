// Package client is a typed HTTP client for the sheet API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dmtable/sheet-api/internal/entities"
	"github.com/dmtable/sheet-api/internal/errors"
	"github.com/dmtable/sheet-api/internal/rules"
	sheetsvc "github.com/dmtable/sheet-api/internal/services/sheet"
)

// Config contains the client's connection settings.
type Config struct {
	// BaseURL is the server root, e.g. "http://localhost:8080".
	BaseURL string

	// InitData is the raw Telegram init data sent on every request.
	InitData string

	// HTTPClient is optional. A default with a 30 second timeout is used
	// when nil.
	HTTPClient *http.Client
}

// Validate validates the Config.
func (cfg *Config) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.BaseURL == "" {
		return errors.InvalidArgument("base URL cannot be empty")
	}
	if cfg.InitData == "" {
		return errors.InvalidArgument("init data cannot be empty")
	}
	return nil
}

// Client talks to the sheet API over REST.
type Client struct {
	baseURL  string
	initData string
	http     *http.Client
}

// New creates a new API client
func New(cfg *Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	return &Client{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		initData: cfg.InitData,
		http:     httpClient,
	}, nil
}

// initDataHeader mirrors the server side header name.
const initDataHeader = "X-TG-INIT-DATA"

// errorBody is the shape every non-2xx response carries.
type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "failed to encode request body")
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return errors.Wrap(err, "failed to build request")
	}
	req.Header.Set(initDataHeader, c.initData)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrapf(err, "request to %s failed", path)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "failed to read response body")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp.StatusCode, data)
	}

	if out == nil {
		return nil
	}
	if raw, ok := out.(*[]byte); ok {
		*raw = data
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return errors.Wrapf(err, "failed to decode response from %s", path)
	}
	return nil
}

// decodeError turns the server's {error, code} body back into a typed error.
// A body that does not parse falls back to the status code mapping.
func decodeError(status int, data []byte) error {
	var body errorBody
	if err := json.Unmarshal(data, &body); err == nil && body.Error != "" {
		return errors.New(errors.CodeFromString(body.Code), body.Error)
	}
	return errors.New(errors.CodeFromHTTPStatus(status), http.StatusText(status))
}

// Me returns the authenticated user.
func (c *Client) Me(ctx context.Context) (*entities.User, error) {
	var u entities.User
	if err := c.do(ctx, http.MethodGet, "/api/me", nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// ListCharacters lists the caller's characters. With all set a DM sees
// every character.
func (c *Client) ListCharacters(ctx context.Context, all bool) ([]*entities.Character, error) {
	path := "/api/characters"
	if all {
		path += "?all=true"
	}

	var out struct {
		Characters []*entities.Character `json:"characters"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Characters, nil
}

// CreateCharacter creates a character, optionally bound to a template.
func (c *Client) CreateCharacter(ctx context.Context, name string, templateID int64) (*entities.Character, error) {
	var ch entities.Character
	body := map[string]interface{}{"name": name, "template_id": templateID}
	if err := c.do(ctx, http.MethodPost, "/api/characters", body, &ch); err != nil {
		return nil, err
	}
	return &ch, nil
}

// GetSheet fetches the full sheet view for a character.
func (c *Client) GetSheet(ctx context.Context, characterID int64) (*sheetsvc.SheetView, error) {
	var sheet sheetsvc.SheetView
	path := fmt.Sprintf("/api/characters/%d/sheet", characterID)
	if err := c.do(ctx, http.MethodGet, path, nil, &sheet); err != nil {
		return nil, err
	}
	return &sheet, nil
}

// UpdateCharacter applies a partial update.
func (c *Client) UpdateCharacter(ctx context.Context, characterID int64, patch *sheetsvc.CharacterPatch) (*entities.Character, error) {
	var ch entities.Character
	path := fmt.Sprintf("/api/characters/%d", characterID)
	if err := c.do(ctx, http.MethodPatch, path, patch, &ch); err != nil {
		return nil, err
	}
	return &ch, nil
}

// DeleteCharacter removes a character.
func (c *Client) DeleteCharacter(ctx context.Context, characterID int64) error {
	path := fmt.Sprintf("/api/characters/%d", characterID)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// UseActionResult reports what an action cost and the character after
// payment.
type UseActionResult struct {
	Spent     rules.CostDelta     `json:"spent"`
	Character *entities.Character `json:"character"`
}

// UseAction spends a spell or ability cost.
func (c *Client) UseAction(ctx context.Context, characterID int64, kind sheetsvc.ActionKind, childID int64) (*UseActionResult, error) {
	var result UseActionResult
	path := fmt.Sprintf("/api/characters/%d/use", characterID)
	body := map[string]interface{}{"kind": kind, "id": childID}
	if err := c.do(ctx, http.MethodPost, path, body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// UpdateEquipment writes equipment slots and returns the new armor total.
func (c *Client) UpdateEquipment(ctx context.Context, characterID int64, slots map[entities.SlotName]string) (entities.Equipment, int, error) {
	var out struct {
		Equipment       entities.Equipment `json:"equipment"`
		TotalArmorBonus int                `json:"total_armor_bonus"`
	}
	path := fmt.Sprintf("/api/characters/%d/equipment", characterID)
	if err := c.do(ctx, http.MethodPatch, path, slots, &out); err != nil {
		return nil, 0, err
	}
	return out.Equipment, out.TotalArmorBonus, nil
}

// UpdateCustomValues writes template-defined field values.
func (c *Client) UpdateCustomValues(ctx context.Context, characterID int64, values map[string]interface{}) (map[string]interface{}, error) {
	var out struct {
		Values map[string]interface{} `json:"values"`
	}
	path := fmt.Sprintf("/api/characters/%d/custom", characterID)
	body := map[string]interface{}{"values": values}
	if err := c.do(ctx, http.MethodPatch, path, body, &out); err != nil {
		return nil, err
	}
	return out.Values, nil
}

// ApplyTemplate binds a template to a character. Zero clears the binding.
func (c *Client) ApplyTemplate(ctx context.Context, characterID, templateID int64) (*entities.Character, error) {
	var ch entities.Character
	path := fmt.Sprintf("/api/characters/%d/apply-template", characterID)
	body := map[string]interface{}{"template_id": templateID}
	if err := c.do(ctx, http.MethodPost, path, body, &ch); err != nil {
		return nil, err
	}
	return &ch, nil
}

// ExportCharacter downloads a character as portable JSON.
func (c *Client) ExportCharacter(ctx context.Context, characterID int64) ([]byte, error) {
	var data []byte
	path := fmt.Sprintf("/api/characters/%d/export", characterID)
	if err := c.do(ctx, http.MethodGet, path, nil, &data); err != nil {
		return nil, err
	}
	return data, nil
}

// ImportCharacter uploads an exported sheet as a new character owned by
// the caller. A non-empty newName replaces the document's name.
func (c *Client) ImportCharacter(ctx context.Context, data []byte, newName string) (*entities.Character, error) {
	if newName != "" {
		var doc map[string]interface{}
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, errors.InvalidArgument("import data is not a valid character document")
		}
		doc["new_name"] = newName
		renamed, err := json.Marshal(doc)
		if err != nil {
			return nil, errors.Wrap(err, "failed to encode import document")
		}
		data = renamed
	}

	var ch entities.Character
	if err := c.do(ctx, http.MethodPost, "/api/characters/import", json.RawMessage(data), &ch); err != nil {
		return nil, err
	}
	return &ch, nil
}

// CreateCharacterFromTemplate creates a character already bound to a
// template.
func (c *Client) CreateCharacterFromTemplate(ctx context.Context, templateID int64, name string) (*entities.Character, error) {
	var ch entities.Character
	path := fmt.Sprintf("/api/templates/%d/create-character", templateID)
	if err := c.do(ctx, http.MethodPost, path, map[string]interface{}{"name": name}, &ch); err != nil {
		return nil, err
	}
	return &ch, nil
}

// ListTemplates lists the caller's sheet templates.
func (c *Client) ListTemplates(ctx context.Context) ([]*entities.SheetTemplate, error) {
	var out struct {
		Templates []*entities.SheetTemplate `json:"templates"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/templates", nil, &out); err != nil {
		return nil, err
	}
	return out.Templates, nil
}

// CreateTemplate creates a sheet template.
func (c *Client) CreateTemplate(ctx context.Context, name string, config entities.TemplateConfig) (*entities.SheetTemplate, error) {
	var tmpl entities.SheetTemplate
	body := map[string]interface{}{"name": name, "config": config}
	if err := c.do(ctx, http.MethodPost, "/api/templates", body, &tmpl); err != nil {
		return nil, err
	}
	return &tmpl, nil
}

// GetTemplate fetches a template by ID.
func (c *Client) GetTemplate(ctx context.Context, templateID int64) (*entities.SheetTemplate, error) {
	var tmpl entities.SheetTemplate
	path := fmt.Sprintf("/api/templates/%d", templateID)
	if err := c.do(ctx, http.MethodGet, path, nil, &tmpl); err != nil {
		return nil, err
	}
	return &tmpl, nil
}

// DeleteTemplate removes a template. Characters bound to it fall back to
// the default layout.
func (c *Client) DeleteTemplate(ctx context.Context, templateID int64) error {
	path := fmt.Sprintf("/api/templates/%d", templateID)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}
