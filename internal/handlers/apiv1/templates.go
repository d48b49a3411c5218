package apiv1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dmtable/sheet-api/internal/entities"
	"github.com/dmtable/sheet-api/internal/errors"
	sheetsvc "github.com/dmtable/sheet-api/internal/services/sheet"
)

type templateRequest struct {
	Name   string                  `json:"name"`
	Config entities.TemplateConfig `json:"config"`
}

func (h *Handler) listTemplates(c *gin.Context) {
	u, ok := actor(c)
	if !ok {
		return
	}

	out, err := h.service.ListTemplates(c.Request.Context(), &sheetsvc.ListTemplatesInput{Actor: u})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"templates": out.Templates})
}

func (h *Handler) createTemplate(c *gin.Context) {
	u, ok := actor(c)
	if !ok {
		return
	}

	var req templateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, errors.InvalidArgument("invalid request body"))
		return
	}

	out, err := h.service.CreateTemplate(c.Request.Context(), &sheetsvc.CreateTemplateInput{
		Actor:  u,
		Name:   req.Name,
		Config: req.Config,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, out.Template)
}

func (h *Handler) getTemplate(c *gin.Context) {
	u, ok := actor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	out, err := h.service.GetTemplate(c.Request.Context(), &sheetsvc.GetTemplateInput{
		Actor:      u,
		TemplateID: id,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out.Template)
}

func (h *Handler) updateTemplate(c *gin.Context) {
	u, ok := actor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req templateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, errors.InvalidArgument("invalid request body"))
		return
	}

	out, err := h.service.UpdateTemplate(c.Request.Context(), &sheetsvc.UpdateTemplateInput{
		Actor:      u,
		TemplateID: id,
		Name:       req.Name,
		Config:     req.Config,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out.Template)
}

// createCharacterFromTemplate creates a character already bound to the
// template in the path.
func (h *Handler) createCharacterFromTemplate(c *gin.Context) {
	u, ok := actor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
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
		TemplateID: id,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, out.Character)
}

func (h *Handler) deleteTemplate(c *gin.Context) {
	u, ok := actor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if _, err := h.service.DeleteTemplate(c.Request.Context(), &sheetsvc.DeleteTemplateInput{
		Actor:      u,
		TemplateID: id,
	}); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
