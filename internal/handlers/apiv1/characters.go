package apiv1

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dmtable/sheet-api/internal/entities"
	"github.com/dmtable/sheet-api/internal/errors"
	sheetsvc "github.com/dmtable/sheet-api/internal/services/sheet"
)

// importBodyLimit bounds an import upload. Exported sheets are a few
// kilobytes; anything near this limit is not one.
const importBodyLimit = 1 << 20

type createCharacterRequest struct {
	Name       string `json:"name"`
	TemplateID int64  `json:"template_id"`
}

func (h *Handler) listCharacters(c *gin.Context) {
	u, ok := actor(c)
	if !ok {
		return
	}

	out, err := h.service.ListCharacters(c.Request.Context(), &sheetsvc.ListCharactersInput{
		Actor: u,
		All:   c.Query("all") == "true",
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"characters": out.Characters})
}

func (h *Handler) createCharacter(c *gin.Context) {
	u, ok := actor(c)
	if !ok {
		return
	}

	var req createCharacterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, errors.InvalidArgument("invalid request body"))
		return
	}

	out, err := h.service.CreateCharacter(c.Request.Context(), &sheetsvc.CreateCharacterInput{
		Actor:      u,
		Name:       req.Name,
		TemplateID: req.TemplateID,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, out.Character)
}

func (h *Handler) getSheet(c *gin.Context) {
	u, ok := actor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	out, err := h.service.GetSheet(c.Request.Context(), &sheetsvc.GetSheetInput{
		Actor:       u,
		CharacterID: id,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out.Sheet)
}

func (h *Handler) updateCharacter(c *gin.Context) {
	u, ok := actor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var patch sheetsvc.CharacterPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		writeError(c, errors.InvalidArgument("invalid request body"))
		return
	}

	out, err := h.service.UpdateCharacter(c.Request.Context(), &sheetsvc.UpdateCharacterInput{
		Actor:       u,
		CharacterID: id,
		Patch:       &patch,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out.Character)
}

func (h *Handler) deleteCharacter(c *gin.Context) {
	u, ok := actor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if _, err := h.service.DeleteCharacter(c.Request.Context(), &sheetsvc.DeleteCharacterInput{
		Actor:       u,
		CharacterID: id,
	}); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) updateEquipment(c *gin.Context) {
	u, ok := actor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var slots map[entities.SlotName]string
	if err := c.ShouldBindJSON(&slots); err != nil {
		writeError(c, errors.InvalidArgument("invalid request body"))
		return
	}

	out, err := h.service.UpdateEquipment(c.Request.Context(), &sheetsvc.UpdateEquipmentInput{
		Actor:       u,
		CharacterID: id,
		Slots:       slots,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"equipment":         out.Equipment,
		"total_armor_bonus": out.TotalArmorBonus,
	})
}

func (h *Handler) updateCustomValues(c *gin.Context) {
	u, ok := actor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req struct {
		Values map[string]interface{} `json:"values"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, errors.InvalidArgument("invalid request body"))
		return
	}

	out, err := h.service.UpdateCustomValues(c.Request.Context(), &sheetsvc.UpdateCustomValuesInput{
		Actor:       u,
		CharacterID: id,
		Values:      req.Values,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"values": out.Values})
}

type applyTemplateRequest struct {
	TemplateID int64 `json:"template_id"`
}

func (h *Handler) applyTemplate(c *gin.Context) {
	u, ok := actor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req applyTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, errors.InvalidArgument("invalid request body"))
		return
	}

	out, err := h.service.ApplyTemplate(c.Request.Context(), &sheetsvc.ApplyTemplateInput{
		Actor:       u,
		CharacterID: id,
		TemplateID:  req.TemplateID,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out.Character)
}

type useActionRequest struct {
	Kind string `json:"kind"`
	ID   int64  `json:"id"`
}

func (h *Handler) useAction(c *gin.Context) {
	u, ok := actor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req useActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, errors.InvalidArgument("invalid request body"))
		return
	}

	out, err := h.service.UseAction(c.Request.Context(), &sheetsvc.UseActionInput{
		Actor:       u,
		CharacterID: id,
		Kind:        sheetsvc.ActionKind(req.Kind),
		ChildID:     req.ID,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"spent": gin.H{
			"hp":     out.Delta.HP,
			"mana":   out.Delta.Mana,
			"energy": out.Delta.Energy,
		},
		"character": out.Character,
	})
}

func (h *Handler) exportCharacter(c *gin.Context) {
	u, ok := actor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	out, err := h.service.ExportCharacter(c.Request.Context(), &sheetsvc.ExportCharacterInput{
		Actor:       u,
		CharacterID: id,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=character.json")
	c.Data(http.StatusOK, "application/json", out.Data)
}

func (h *Handler) importCharacter(c *gin.Context) {
	u, ok := actor(c)
	if !ok {
		return
	}

	data, err := io.ReadAll(io.LimitReader(c.Request.Body, importBodyLimit))
	if err != nil {
		writeError(c, errors.InvalidArgument("failed to read request body"))
		return
	}

	// The body is the exported document itself; an optional new_name key
	// inside it renames the character on import.
	var override struct {
		NewName string `json:"new_name"`
	}
	_ = json.Unmarshal(data, &override)

	out, err := h.service.ImportCharacter(c.Request.Context(), &sheetsvc.ImportCharacterInput{
		Actor:   u,
		Data:    data,
		NewName: override.NewName,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, out.Character)
}
