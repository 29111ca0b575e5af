package handler

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	copilotDTO "github.com/momsgrove/grove-api/internal/adapter/dto/copilot"
	"github.com/momsgrove/grove-api/internal/adapter/presenter"
	"github.com/momsgrove/grove-api/internal/domain/entities"
	"github.com/momsgrove/grove-api/internal/usecase/copilot"
)

// CoPilot handles the AI Co-Pilot alert feed
type CoPilot struct {
	service *copilot.Service
	logger  *zap.Logger
}

// NewCoPilotHandler creates a new Co-Pilot handler
func NewCoPilotHandler(service *copilot.Service, logger *zap.Logger) *CoPilot {
	return &CoPilot{service: service, logger: logger}
}

// Feed handles GET /v1/copilot/alerts
// @Summary      Co-Pilot alert feed
// @Description  Alerts that have not been dismissed, newest first
// @Tags         CoPilot
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  common.SuccessResponse{data=[]copilotDTO.AlertResponse}
// @Failure      403  {object}  common.ErrorResponse  "Module locked"
// @Router       /copilot/alerts [get]
func (h *CoPilot) Feed(c echo.Context) error {
	schoolID, err := schoolOf(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	alerts, err := h.service.Feed(c.Request().Context(), schoolID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToAlertList(alerts))
}

// UpdateStatus handles PATCH /v1/copilot/alerts/:id
// @Summary      Mark an alert viewed or dismissed
// @Tags         CoPilot
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                         true  "Alert ID (UUID)"
// @Param        request  body      copilotDTO.UpdateAlertRequest  true  "New status"
// @Success      200      {object}  common.SuccessResponse{data=copilotDTO.AlertResponse}
// @Failure      400      {object}  common.ErrorResponse  "Invalid status"
// @Failure      404      {object}  common.ErrorResponse  "Alert not found"
// @Router       /copilot/alerts/{id} [patch]
func (h *CoPilot) UpdateStatus(c echo.Context) error {
	schoolID, err := schoolOf(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req copilotDTO.UpdateAlertRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	alert, err := h.service.SetStatus(c.Request().Context(), schoolID, id, entities.AlertStatus(req.Status))
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToAlertResponse(alert))
}
