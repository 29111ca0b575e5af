package handler

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/momsgrove/grove-api/errors"
	curriculumDTO "github.com/momsgrove/grove-api/internal/adapter/dto/curriculum"
	"github.com/momsgrove/grove-api/internal/adapter/presenter"
	"github.com/momsgrove/grove-api/internal/domain/entities"
	"github.com/momsgrove/grove-api/internal/usecase/curriculum"
)

// Curriculum handles the teacher's planner
type Curriculum struct {
	service *curriculum.Service
	logger  *zap.Logger
}

// NewCurriculumHandler creates a new curriculum handler
func NewCurriculumHandler(service *curriculum.Service, logger *zap.Logger) *Curriculum {
	return &Curriculum{service: service, logger: logger}
}

// PriorityActions handles GET /v1/curriculum/priority-actions
// @Summary      Planner priority list
// @Description  Open pathway assignments of the school's active students, ordered by pathway, step and child name
// @Tags         Curriculum
// @Produce      json
// @Security     BearerAuth
// @Param        class  query     string  false  "Class filter"
// @Success      200    {object}  common.SuccessResponse{data=[]curriculumDTO.PriorityActionResponse}
// @Failure      403    {object}  common.ErrorResponse  "Teachers and admins only"
// @Router       /curriculum/priority-actions [get]
func (h *Curriculum) PriorityActions(c echo.Context) error {
	schoolID, err := schoolOf(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req curriculumDTO.PriorityActionsRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	items, err := h.service.PriorityActions(c.Request().Context(), schoolID, req.Class)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToPriorityActionList(items))
}

// UpdateProgress handles POST /v1/curriculum/progress
// @Summary      Record activity outcomes
// @Description  Mastered moves a child to the next step and completes the pathway after the last one. All updates apply or none do.
// @Tags         Curriculum
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      curriculumDTO.UpdateProgressRequest  true  "Outcomes"
// @Success      200      {object}  common.SuccessResponse{data=[]curriculumDTO.ProgressResponse}
// @Failure      400      {object}  common.ErrorResponse  "Invalid outcome or duplicate update"
// @Failure      404      {object}  common.ErrorResponse  "Student or assignment not found"
// @Router       /curriculum/progress [post]
func (h *Curriculum) UpdateProgress(c echo.Context) error {
	schoolID, err := schoolOf(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req curriculumDTO.UpdateProgressRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	updates := make([]entities.ProgressUpdate, len(req.Updates))
	for i, u := range req.Updates {
		studentID, err := uuid.Parse(u.StudentID)
		if err != nil {
			return HandleError(h.logger, c, errors.ErrInvalidArgument("student_id must be a valid UUID"))
		}
		pathwayID, err := uuid.Parse(u.PathwayID)
		if err != nil {
			return HandleError(h.logger, c, errors.ErrInvalidArgument("pathway_id must be a valid UUID"))
		}
		updates[i] = entities.ProgressUpdate{
			StudentID: studentID,
			PathwayID: pathwayID,
			Outcome:   entities.ProgressOutcome(u.Outcome),
		}
	}

	updated, err := h.service.RecordOutcomes(c.Request().Context(), schoolID, updates)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToProgressList(updated))
}
