package handler

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	studentDTO "github.com/momsgrove/grove-api/internal/adapter/dto/student"
	"github.com/momsgrove/grove-api/internal/adapter/presenter"
	"github.com/momsgrove/grove-api/internal/usecase/student"
)

// Student handles student, teacher and pathway catalog requests
type Student struct {
	service *student.Service
	logger  *zap.Logger
}

// NewStudentHandler creates a new student handler
func NewStudentHandler(service *student.Service, logger *zap.Logger) *Student {
	return &Student{service: service, logger: logger}
}

// List handles GET /v1/students
// @Summary      List students
// @Description  Active students of the caller's school ordered by name. Parents see their own children.
// @Tags         Students
// @Produce      json
// @Security     BearerAuth
// @Param        class  query     string  false  "Class filter"
// @Success      200    {object}  common.SuccessResponse{data=[]studentDTO.StudentResponse}
// @Failure      401    {object}  common.ErrorResponse
// @Router       /students [get]
func (h *Student) List(c echo.Context) error {
	principal, err := principalOf(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req studentDTO.ListStudentsRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	students, err := h.service.List(c.Request().Context(), principal, req.Class)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToStudentList(students))
}

// Get handles GET /v1/students/:id
// @Summary      Get a student
// @Description  The student with their assigned pathways
// @Tags         Students
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Student ID (UUID)"
// @Success      200  {object}  common.SuccessResponse{data=studentDTO.StudentDetailResponse}
// @Failure      404  {object}  common.ErrorResponse  "Student not found"
// @Router       /students/{id} [get]
func (h *Student) Get(c echo.Context) error {
	principal, err := principalOf(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	detail, err := h.service.Get(c.Request().Context(), principal, id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToStudentDetailResponse(detail))
}

// Teachers handles GET /v1/teachers
// @Summary      List teachers
// @Tags         Students
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  common.SuccessResponse{data=[]studentDTO.TeacherResponse}
// @Router       /teachers [get]
func (h *Student) Teachers(c echo.Context) error {
	schoolID, err := schoolOf(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	teachers, err := h.service.Teachers(c.Request().Context(), schoolID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToTeacherList(teachers))
}

// Pathways handles GET /v1/pathways
// @Summary      Skill pathway catalog
// @Tags         Students
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  common.SuccessResponse{data=[]studentDTO.PathwayResponse}
// @Router       /pathways [get]
func (h *Student) Pathways(c echo.Context) error {
	pathways, err := h.service.Pathways(c.Request().Context())
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToPathwayList(pathways))
}
