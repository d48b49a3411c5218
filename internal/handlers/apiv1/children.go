package apiv1

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dmtable/sheet-api/internal/entities"
	"github.com/dmtable/sheet-api/internal/errors"
	sheetsvc "github.com/dmtable/sheet-api/internal/services/sheet"
)

// childIDs reads the character ID and, for PUT/DELETE routes, the child ID.
// POST routes have no child parameter and leave it zero.
func childIDs(c *gin.Context) (characterID, childID int64, ok bool) {
	characterID, ok = pathID(c, "id")
	if !ok {
		return 0, 0, false
	}
	if c.Param("childId") != "" {
		childID, ok = pathID(c, "childId")
		if !ok {
			return 0, 0, false
		}
	}
	return characterID, childID, true
}

func (h *Handler) upsertItem(c *gin.Context) {
	u, ok := actor(c)
	if !ok {
		return
	}
	characterID, childID, ok := childIDs(c)
	if !ok {
		return
	}

	var item entities.Item
	if err := c.ShouldBindJSON(&item); err != nil {
		writeError(c, errors.InvalidArgument("invalid request body"))
		return
	}
	item.ID = childID

	out, err := h.service.UpsertItem(c.Request.Context(), &sheetsvc.UpsertItemInput{
		Actor:       u,
		CharacterID: characterID,
		Item:        &item,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(statusForUpsert(childID), out.Item)
}

func (h *Handler) removeItem(c *gin.Context) {
	h.removeChild(c, h.service.RemoveItem)
}

func (h *Handler) upsertSpell(c *gin.Context) {
	u, ok := actor(c)
	if !ok {
		return
	}
	characterID, childID, ok := childIDs(c)
	if !ok {
		return
	}

	var spell entities.Spell
	if err := c.ShouldBindJSON(&spell); err != nil {
		writeError(c, errors.InvalidArgument("invalid request body"))
		return
	}
	spell.ID = childID

	out, err := h.service.UpsertSpell(c.Request.Context(), &sheetsvc.UpsertSpellInput{
		Actor:       u,
		CharacterID: characterID,
		Spell:       &spell,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(statusForUpsert(childID), out.Spell)
}

func (h *Handler) removeSpell(c *gin.Context) {
	h.removeChild(c, h.service.RemoveSpell)
}

func (h *Handler) upsertAbility(c *gin.Context) {
	u, ok := actor(c)
	if !ok {
		return
	}
	characterID, childID, ok := childIDs(c)
	if !ok {
		return
	}

	var ability entities.Ability
	if err := c.ShouldBindJSON(&ability); err != nil {
		writeError(c, errors.InvalidArgument("invalid request body"))
		return
	}
	ability.ID = childID

	out, err := h.service.UpsertAbility(c.Request.Context(), &sheetsvc.UpsertAbilityInput{
		Actor:       u,
		CharacterID: characterID,
		Ability:     &ability,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(statusForUpsert(childID), out.Ability)
}

func (h *Handler) removeAbility(c *gin.Context) {
	h.removeChild(c, h.service.RemoveAbility)
}

func (h *Handler) upsertState(c *gin.Context) {
	u, ok := actor(c)
	if !ok {
		return
	}
	characterID, childID, ok := childIDs(c)
	if !ok {
		return
	}

	var state entities.State
	if err := c.ShouldBindJSON(&state); err != nil {
		writeError(c, errors.InvalidArgument("invalid request body"))
		return
	}
	state.ID = childID

	out, err := h.service.UpsertState(c.Request.Context(), &sheetsvc.UpsertStateInput{
		Actor:       u,
		CharacterID: characterID,
		State:       &state,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(statusForUpsert(childID), out.State)
}

func (h *Handler) removeState(c *gin.Context) {
	h.removeChild(c, h.service.RemoveState)
}

func (h *Handler) toggleState(c *gin.Context) {
	u, ok := actor(c)
	if !ok {
		return
	}
	characterID, childID, ok := childIDs(c)
	if !ok {
		return
	}

	out, err := h.service.ToggleState(c.Request.Context(), &sheetsvc.ToggleStateInput{
		Actor:       u,
		CharacterID: characterID,
		StateID:     childID,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"state":     out.State,
		"character": out.Character,
	})
}

func (h *Handler) upsertSummon(c *gin.Context) {
	u, ok := actor(c)
	if !ok {
		return
	}
	characterID, childID, ok := childIDs(c)
	if !ok {
		return
	}

	var summon entities.Summon
	if err := c.ShouldBindJSON(&summon); err != nil {
		writeError(c, errors.InvalidArgument("invalid request body"))
		return
	}
	summon.ID = childID

	out, err := h.service.UpsertSummon(c.Request.Context(), &sheetsvc.UpsertSummonInput{
		Actor:       u,
		CharacterID: characterID,
		Summon:      &summon,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(statusForUpsert(childID), gin.H{
		"summon": out.Summon,
		"stats":  out.Stats,
	})
}

func (h *Handler) removeSummon(c *gin.Context) {
	h.removeChild(c, h.service.RemoveSummon)
}

type removeFunc func(ctx context.Context, input *sheetsvc.RemoveChildInput) (*sheetsvc.RemoveChildOutput, error)

func (h *Handler) removeChild(c *gin.Context, remove removeFunc) {
	u, ok := actor(c)
	if !ok {
		return
	}
	characterID, childID, ok := childIDs(c)
	if !ok {
		return
	}

	if _, err := remove(c.Request.Context(), &sheetsvc.RemoveChildInput{
		Actor:       u,
		CharacterID: characterID,
		ChildID:     childID,
	}); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// statusForUpsert distinguishes create from replace.
func statusForUpsert(childID int64) int {
	if childID == 0 {
		return http.StatusCreated
	}
	return http.StatusOK
}
