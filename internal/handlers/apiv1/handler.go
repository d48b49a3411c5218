// Package apiv1 exposes the sheet service over REST under /api.
package apiv1

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dmtable/sheet-api/internal/auth"
	"github.com/dmtable/sheet-api/internal/entities"
	"github.com/dmtable/sheet-api/internal/errors"
	sheetsvc "github.com/dmtable/sheet-api/internal/services/sheet"
)

// Handler routes sheet API requests to the service.
type Handler struct {
	service sheetsvc.Service
}

// Config contains the handler's dependencies.
type Config struct {
	Service sheetsvc.Service
}

// Validate validates the Config.
func (cfg *Config) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Service == nil {
		return errors.InvalidArgument("service cannot be nil")
	}
	return nil
}

// New creates a new API handler
func New(cfg *Config) (*Handler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Handler{service: cfg.Service}, nil
}

// Register mounts every route on the given group. The group is expected to
// carry the auth middleware already.
func (h *Handler) Register(api *gin.RouterGroup) {
	api.GET("/me", h.getMe)

	api.GET("/characters", h.listCharacters)
	api.POST("/characters", h.createCharacter)
	api.POST("/characters/import", h.importCharacter)
	api.GET("/characters/:id", h.getSheet)
	api.GET("/characters/:id/sheet", h.getSheet)
	api.PATCH("/characters/:id", h.updateCharacter)
	api.DELETE("/characters/:id", h.deleteCharacter)
	api.GET("/characters/:id/export", h.exportCharacter)
	api.PATCH("/characters/:id/equipment", h.updateEquipment)
	api.PATCH("/characters/:id/custom", h.updateCustomValues)
	api.POST("/characters/:id/apply-template", h.applyTemplate)
	api.POST("/characters/:id/use", h.useAction)

	api.POST("/characters/:id/items", h.upsertItem)
	api.PATCH("/characters/:id/items/:childId", h.upsertItem)
	api.DELETE("/characters/:id/items/:childId", h.removeItem)

	api.POST("/characters/:id/spells", h.upsertSpell)
	api.PATCH("/characters/:id/spells/:childId", h.upsertSpell)
	api.DELETE("/characters/:id/spells/:childId", h.removeSpell)

	api.POST("/characters/:id/abilities", h.upsertAbility)
	api.PATCH("/characters/:id/abilities/:childId", h.upsertAbility)
	api.DELETE("/characters/:id/abilities/:childId", h.removeAbility)

	api.POST("/characters/:id/states", h.upsertState)
	api.PATCH("/characters/:id/states/:childId", h.upsertState)
	api.DELETE("/characters/:id/states/:childId", h.removeState)
	api.POST("/characters/:id/states/:childId/toggle", h.toggleState)

	api.POST("/characters/:id/summons", h.upsertSummon)
	api.PATCH("/characters/:id/summons/:childId", h.upsertSummon)
	api.DELETE("/characters/:id/summons/:childId", h.removeSummon)

	api.GET("/templates", h.listTemplates)
	api.POST("/templates", h.createTemplate)
	api.GET("/templates/:id", h.getTemplate)
	api.PUT("/templates/:id", h.updateTemplate)
	api.DELETE("/templates/:id", h.deleteTemplate)
	api.POST("/templates/:id/create-character", h.createCharacterFromTemplate)
}

// actor pulls the authenticated user set by the auth middleware.
func actor(c *gin.Context) (*entities.User, bool) {
	u, ok := auth.UserFrom(c)
	if !ok {
		writeError(c, errors.Unauthenticated("no authenticated user"))
		return nil, false
	}
	return u, true
}

// pathID reads an int64 path parameter.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		writeError(c, errors.InvalidArgumentf("invalid %s", name))
		return 0, false
	}
	return id, true
}

// writeError renders a service error as JSON with its mapped status.
func writeError(c *gin.Context, err error) {
	code := errors.GetCode(err)
	status := code.HTTPStatus()
	if status >= http.StatusInternalServerError {
		slog.ErrorContext(c.Request.Context(), "request failed",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"error", err.Error())
	}
	c.AbortWithStatusJSON(status, gin.H{
		"error": errors.GetMessage(err),
		"code":  code.String(),
	})
}

func (h *Handler) getMe(c *gin.Context) {
	u, ok := actor(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, u)
}
