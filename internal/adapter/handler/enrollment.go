package handler

import (
	stdErrors "errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/momsgrove/grove-api/errors"
	enrollmentDTO "github.com/momsgrove/grove-api/internal/adapter/dto/enrollment"
	"github.com/momsgrove/grove-api/internal/adapter/presenter"
	"github.com/momsgrove/grove-api/internal/domain/entities"
	"github.com/momsgrove/grove-api/internal/usecase/enrollment"
)

// Enrollment handles student intake requests
type Enrollment struct {
	service enrollment.Service
	logger  *zap.Logger
}

// NewEnrollmentHandler creates a new enrollment handler
func NewEnrollmentHandler(service enrollment.Service, logger *zap.Logger) *Enrollment {
	return &Enrollment{
		service: service,
		logger:  logger,
	}
}

// Enroll handles POST /v1/enrollments
// @Summary      Enroll a student
// @Description  Creates the student and a pending intake assessment
// @Tags         Enrollments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      enrollmentDTO.EnrollRequest  true  "Enrollment form"
// @Success      201      {object}  common.SuccessResponse{data=enrollmentDTO.EnrollResponse}
// @Failure      400      {object}  common.ErrorResponse  "Invalid request"
// @Failure      403      {object}  common.ErrorResponse  "Admins only"
// @Failure      500      {object}  common.ErrorResponse  "Failed to store enrollment"
// @Router       /enrollments [post]
func (h *Enrollment) Enroll(c echo.Context) error {
	schoolID, err := schoolOf(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req enrollmentDTO.EnrollRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	input := enrollment.EnrollInput{
		FacilitatorName: strings.TrimSpace(req.FacilitatorName),
		ChildName:       req.ChildName,
		Gender:          req.Gender,
		Class:           req.Class,
		AssessmentData:  req.AssessmentData,
	}
	if req.DateOfBirth != "" {
		dob, err := time.Parse(time.DateOnly, req.DateOfBirth)
		if err != nil {
			return HandleError(h.logger, c, errors.ErrInvalidArgument("date_of_birth must be YYYY-MM-DD"))
		}
		input.DateOfBirth = &dob
	}
	if req.ParentID != "" {
		parentID, err := uuid.Parse(req.ParentID)
		if err != nil {
			return HandleError(h.logger, c, errors.ErrInvalidArgument("parent_id must be a valid UUID"))
		}
		input.ParentID = &parentID
	}

	result, err := h.service.Enroll(c.Request().Context(), schoolID, input)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleCreated(h.logger, c, presenter.ToEnrollResponse(result))
}

// Get handles GET /v1/enrollments/:id
// @Summary      Get an assessment
// @Description  Returns the assessment with its ai_status and ai_summary
// @Tags         Enrollments
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Assessment ID (UUID)"
// @Success      200  {object}  common.SuccessResponse{data=enrollmentDTO.AssessmentResponse}
// @Failure      400  {object}  common.ErrorResponse  "Invalid assessment ID"
// @Failure      404  {object}  common.ErrorResponse  "Assessment not found"
// @Router       /enrollments/{id} [get]
func (h *Enrollment) Get(c echo.Context) error {
	schoolID, err := schoolOf(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	assessment, err := h.service.Get(c.Request().Context(), schoolID, id)
	if err != nil {
		return HandleError(h.logger, c, notFoundDetail(err, id))
	}

	return HandleSuccess(h.logger, c, presenter.ToAssessmentResponse(assessment))
}

// Process handles POST /v1/enrollments/process. The body is returned
// unwrapped so the dashboard can read summary and recommendedPathways
// directly.
// @Summary      Summarize an assessment and assign pathways
// @Tags         Enrollments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      enrollmentDTO.ProcessRequest  true  "Assessment to process"
// @Success      200      {object}  enrollmentDTO.ProcessResponse
// @Failure      400      {object}  common.ErrorResponse  "Assessment ID is required"
// @Failure      404      {object}  common.ErrorResponse  "Assessment not found"
// @Failure      500      {object}  common.ErrorResponse  "Failed to store summary"
// @Router       /enrollments/process [post]
func (h *Enrollment) Process(c echo.Context) error {
	schoolID, err := schoolOf(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req enrollmentDTO.ProcessRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload(err))
	}

	raw := strings.TrimSpace(req.AssessmentID)
	if raw == "" {
		return HandleError(h.logger, c, errors.ErrAssessmentIDRequired())
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("assessment_id must be a valid UUID"))
	}

	result, err := h.service.Process(c.Request().Context(), schoolID, id)
	if err != nil {
		return HandleError(h.logger, c, notFoundDetail(err, id))
	}

	if h.logger != nil {
		h.logger.Info("http.response.success",
			zap.String("request_id", getRequestID(c)),
			zap.String("path", c.Path()),
		)
	}
	return c.JSON(http.StatusOK, presenter.ToProcessResponse(result))
}

// notFoundDetail attaches the assessment id to a not-found error
func notFoundDetail(err error, id uuid.UUID) error {
	if stdErrors.Is(err, entities.ErrAssessmentNotFound) &&
		!stdErrors.Is(err, entities.ErrPersistFailed) {
		return errors.ErrAssessmentNotFound(id.String())
	}
	return err
}
