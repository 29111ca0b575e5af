package handler

import (
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/momsgrove/grove-api/errors"
	calendarDTO "github.com/momsgrove/grove-api/internal/adapter/dto/calendar"
	"github.com/momsgrove/grove-api/internal/adapter/presenter"
	"github.com/momsgrove/grove-api/internal/usecase/calendar"
)

// Calendar handles school calendar requests
type Calendar struct {
	service *calendar.Service
	logger  *zap.Logger
}

// NewCalendarHandler creates a new calendar handler
func NewCalendarHandler(service *calendar.Service, logger *zap.Logger) *Calendar {
	return &Calendar{service: service, logger: logger}
}

// List handles GET /v1/calendar
// @Summary      Events in a window
// @Description  Events visible to the caller's role in [start, end). Defaults to the current month.
// @Tags         Calendar
// @Produce      json
// @Security     BearerAuth
// @Param        start  query     string  false  "Window start (RFC 3339 or YYYY-MM-DD)"
// @Param        end    query     string  false  "Window end (RFC 3339 or YYYY-MM-DD)"
// @Success      200    {object}  common.SuccessResponse{data=[]calendarDTO.EventResponse}
// @Failure      400    {object}  common.ErrorResponse
// @Router       /calendar [get]
func (h *Calendar) List(c echo.Context) error {
	principal, err := principalOf(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req calendarDTO.ListEventsRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload(err))
	}

	start, err := parseWindowBound("start", req.Start)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	end, err := parseWindowBound("end", req.End)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	events, err := h.service.List(c.Request().Context(), principal, start, end)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToEventList(events))
}

// Upcoming handles GET /v1/calendar/upcoming
// @Summary      Upcoming events
// @Tags         Calendar
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  common.SuccessResponse{data=[]calendarDTO.EventResponse}
// @Router       /calendar/upcoming [get]
func (h *Calendar) Upcoming(c echo.Context) error {
	principal, err := principalOf(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	events, err := h.service.Upcoming(c.Request().Context(), principal)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToEventList(events))
}

// Create handles POST /v1/calendar
// @Summary      Create an event
// @Tags         Calendar
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      calendarDTO.CreateEventRequest  true  "Event"
// @Success      201      {object}  common.SuccessResponse{data=calendarDTO.EventResponse}
// @Failure      400      {object}  common.ErrorResponse
// @Router       /calendar [post]
func (h *Calendar) Create(c echo.Context) error {
	schoolID, err := schoolOf(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req calendarDTO.CreateEventRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	event, err := h.service.Create(c.Request().Context(), schoolID, calendar.CreateInput{
		Title:       req.Title,
		Description: req.Description,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Audience:    req.Audience,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleCreated(h.logger, c, presenter.ToEventResponse(event))
}

// parseWindowBound accepts an RFC 3339 timestamp or a date. Empty means unset.
func parseWindowBound(name, raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.DateOnly, raw); err == nil {
		return t, nil
	}
	return time.Time{}, errors.ErrInvalidArgument(name + " must be RFC 3339 or YYYY-MM-DD")
}
