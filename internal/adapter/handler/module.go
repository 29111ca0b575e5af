package handler

import (
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	moduleDTO "github.com/momsgrove/grove-api/internal/adapter/dto/module"
	"github.com/momsgrove/grove-api/internal/adapter/presenter"
	"github.com/momsgrove/grove-api/internal/domain/entities"
	"github.com/momsgrove/grove-api/internal/usecase/entitlement"
)

// Module handles Grove module catalog and entitlement requests
type Module struct {
	service *entitlement.Service
	logger  *zap.Logger
}

// NewModuleHandler creates a new module handler
func NewModuleHandler(service *entitlement.Service, logger *zap.Logger) *Module {
	return &Module{service: service, logger: logger}
}

// Catalog handles GET /v1/modules
// @Summary      Module catalog
// @Tags         Modules
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  common.SuccessResponse{data=[]moduleDTO.ModuleResponse}
// @Router       /modules [get]
func (h *Module) Catalog(c echo.Context) error {
	modules, err := h.service.Catalog(c.Request().Context())
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToModuleList(modules))
}

// Unlocked handles GET /v1/modules/unlocked. Parents have no school and
// get an empty list.
// @Summary      Modules unlocked by the caller's school
// @Tags         Modules
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  common.SuccessResponse{data=[]moduleDTO.ModuleResponse}
// @Router       /modules/unlocked [get]
func (h *Module) Unlocked(c echo.Context) error {
	principal, err := principalOf(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	schoolID, err := principal.School()
	if err != nil {
		return HandleSuccess(h.logger, c, []moduleDTO.ModuleResponse{})
	}

	modules, err := h.service.Unlocked(c.Request().Context(), schoolID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToModuleList(modules))
}

// Activate handles POST /v1/modules/:id/activate
// @Summary      Unlock a module for the school
// @Description  Idempotent
// @Tags         Modules
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Module ID"
// @Success      200  {object}  common.SuccessResponse{data=moduleDTO.ActivateResponse}
// @Failure      404  {object}  common.ErrorResponse  "Module not found"
// @Router       /modules/{id}/activate [post]
func (h *Module) Activate(c echo.Context) error {
	schoolID, err := schoolOf(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	moduleID := strings.TrimSpace(c.Param("id"))
	if moduleID == "" {
		return HandleError(h.logger, c, entities.ErrModuleNotFound)
	}

	if err := h.service.Activate(c.Request().Context(), schoolID, moduleID); err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, moduleDTO.ActivateResponse{ModuleID: moduleID, Unlocked: true})
}
