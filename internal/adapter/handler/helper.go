package handler

import (
	stdErrors "errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/momsgrove/grove-api/errors"
	"github.com/momsgrove/grove-api/internal/domain/entities"
	"github.com/momsgrove/grove-api/internal/infrastructure/http/middleware"
	"github.com/momsgrove/grove-api/pkg/validator"
)

// Response shapes
type success struct {
	Code    interface{} `json:"code,omitempty"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type errs struct {
	Code    interface{}       `json:"code,omitempty"`
	Error   string            `json:"error,omitempty"`
	Info    string            `json:"info,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

// sentinel maps a domain error onto the AppError returned to clients
type sentinel struct {
	target error
	toApp  func(err error) errors.AppError
}

// sentinels is checked in order; the first errors.Is match wins.
// Upstream failures come first so a wrapped not-found inside a failed
// write is still reported as a write failure.
var sentinels = []sentinel{
	{entities.ErrPersistFailed, errors.ErrEnrollmentPersistFailed},
	{entities.ErrEnrollmentNotCreated, errors.ErrEnrollmentPersistFailed},
	{entities.ErrSummaryGeneration, errors.ErrAISummaryFailed},
	{entities.ErrPathwayLookupFailed, func(err error) errors.AppError {
		return errors.ErrDBQueryFailed("skill_pathways", err)
	}},
	{entities.ErrDocumentUpload, func(err error) errors.AppError {
		return errors.ErrStorageFailed("upload", err)
	}},

	{entities.ErrMissingAssessmentID, func(error) errors.AppError { return errors.ErrAssessmentIDRequired() }},
	{entities.ErrAssessmentNotFound, func(error) errors.AppError { return errors.ErrAssessmentNotFound("") }},
	{entities.ErrInvalidCredentials, func(error) errors.AppError { return errors.ErrInvalidCredentials() }},
	{entities.ErrUserInactive, func(error) errors.AppError { return errors.ErrUserInactive() }},
	{entities.ErrInvalidToken, func(error) errors.AppError { return errors.ErrInvalidToken() }},
	{entities.ErrNoSchool, func(error) errors.AppError { return errors.ErrForbidden("user is not attached to a school") }},
	{entities.ErrForbidden, func(error) errors.AppError { return errors.ErrForbidden("forbidden") }},
	{entities.ErrUnauthorized, func(error) errors.AppError { return errors.ErrUnauthenticated() }},
	{entities.ErrModuleLocked, func(error) errors.AppError { return errors.ErrForbidden("module is locked") }},

	{entities.ErrUserNotFound, func(error) errors.AppError { return errors.ErrNotFound("user") }},
	{entities.ErrSchoolNotFound, func(error) errors.AppError { return errors.ErrNotFound("school") }},
	{entities.ErrStudentNotFound, func(error) errors.AppError { return errors.ErrNotFound("student") }},
	{entities.ErrModuleNotFound, func(error) errors.AppError { return errors.ErrNotFound("module") }},
	{entities.ErrAlertNotFound, func(error) errors.AppError { return errors.ErrNotFound("alert") }},
	{entities.ErrAssignmentNotFound, func(error) errors.AppError { return errors.ErrNotFound("pathway assignment") }},
	{entities.ErrUserAlreadyExists, func(error) errors.AppError { return errors.ErrAlreadyExists("user") }},

	{entities.ErrInvalidEnrollment, invalidArgument},
	{entities.ErrInvalidAlertStatus, invalidArgument},
	{entities.ErrInvalidEventWindow, invalidArgument},
	{entities.ErrInvalidOutcome, invalidArgument},
	{entities.ErrInvalidAudience, invalidArgument},
	{entities.ErrInvalidComplianceStatus, invalidArgument},
	{entities.ErrInvalidEmail, invalidArgument},
	{entities.ErrInvalidName, invalidArgument},
	{entities.ErrInvalidRole, invalidArgument},
	{entities.ErrInvalidPassword, invalidArgument},
	{entities.ErrInvalidRequest, invalidArgument},
}

func invalidArgument(err error) errors.AppError {
	return errors.ErrInvalidArgument(err.Error())
}

// toAppError resolves err into the AppError that is sent to the client
func toAppError(err error) errors.AppError {
	var appErr errors.AppError
	if stdErrors.As(err, &appErr) {
		return appErr
	}

	var httpErr *echo.HTTPError
	if stdErrors.As(err, &httpErr) {
		return fromHTTPError(httpErr)
	}

	for _, s := range sentinels {
		if stdErrors.Is(err, s.target) {
			return s.toApp(err)
		}
	}
	return errors.ErrInternal(err)
}

// fromHTTPError converts errors raised by echo itself (unknown route,
// wrong method, oversized body) into the project error shape
func fromHTTPError(he *echo.HTTPError) errors.AppError {
	msg := http.StatusText(he.Code)
	if m, ok := he.Message.(string); ok && m != "" {
		msg = m
	}

	code := errors.ErrorCode_INTERNAL
	switch {
	case he.Code == http.StatusNotFound:
		code = errors.ErrorCode_NOT_FOUND
	case he.Code == http.StatusUnauthorized:
		code = errors.ErrorCode_UNAUTHENTICATED
	case he.Code == http.StatusForbidden:
		code = errors.ErrorCode_FORBIDDEN
	case he.Code >= 400 && he.Code < 500:
		code = errors.ErrorCode_INVALID_ARGUMENT
	}

	return errors.AppError{
		Raw:      he.Internal,
		HTTPCode: he.Code,
		Code:     code,
		Message:  msg,
	}
}

// getRequestID tries to read X-Request-ID from the request, falling back
// to the id generated by the request-id middleware
func getRequestID(c echo.Context) string {
	if c == nil || c.Request() == nil {
		return ""
	}
	if id := c.Request().Header.Get(echo.HeaderXRequestID); id != "" {
		return id
	}
	return c.Response().Header().Get(echo.HeaderXRequestID)
}

// HandleSuccess writes a standardized success response using provided logger
func HandleSuccess(logger *zap.Logger, c echo.Context, data interface{}) error {
	return handleSuccessStatus(logger, c, http.StatusOK, data)
}

// HandleCreated is HandleSuccess with a 201 status
func HandleCreated(logger *zap.Logger, c echo.Context, data interface{}) error {
	return handleSuccessStatus(logger, c, http.StatusCreated, data)
}

func handleSuccessStatus(logger *zap.Logger, c echo.Context, status int, data interface{}) error {
	resp := success{
		Code:    errors.ErrorCode_HTTP_OK,
		Message: "success",
		Data:    data,
	}

	if logger != nil {
		logger.Info("http.response.success",
			zap.String("request_id", getRequestID(c)),
			zap.String("path", c.Path()),
		)
	}

	return c.JSON(status, resp)
}

// HandleError centralizes error handling and logging using provided logger
func HandleError(logger *zap.Logger, c echo.Context, err error) error {
	appErr := toAppError(err)

	if logger != nil {
		fields := []zap.Field{
			zap.String("request_id", getRequestID(c)),
			zap.String("path", c.Path()),
			zap.Any("app_code", appErr.Code),
			zap.Error(err),
		}
		if appErr.HTTPCode >= http.StatusInternalServerError {
			logger.Error("http.response.error", fields...)
		} else {
			logger.Warn("http.response.error", fields...)
		}
	}

	info := ""
	if appErr.Raw != nil {
		info = appErr.Raw.Error()
	}

	body := errs{
		Code:    appErr.Code,
		Error:   appErr.Message,
		Info:    info,
		Details: appErr.Details,
	}

	return c.JSON(appErr.HTTPCode, body)
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that renders
// middleware and routing errors the same way handlers do
func NewHTTPErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(toAppError(err).HTTPCode)
			return
		}
		if herr := HandleError(logger, c, err); herr != nil && logger != nil {
			logger.Error("http.error_handler.write_failed", zap.Error(herr))
		}
	}
}

// bindAndValidate binds the request into req and runs the echo validator
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return errors.ErrInvalidPayload(err)
	}
	if err := c.Validate(req); err != nil {
		appErr := errors.ErrInvalidArgument("validation failed")
		for field, msg := range validator.Messages(err) {
			appErr = appErr.WithDetail(field, msg)
		}
		return appErr
	}
	return nil
}

// principalOf returns the principal resolved by the auth middleware
func principalOf(c echo.Context) (*entities.Principal, error) {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		return nil, errors.ErrUnauthenticated()
	}
	return p, nil
}

// schoolOf returns the caller's school id
func schoolOf(c echo.Context) (uuid.UUID, error) {
	p, err := principalOf(c)
	if err != nil {
		return uuid.Nil, err
	}
	return p.School()
}

// parseIDParam reads a UUID path parameter
func parseIDParam(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(c.Param(name)))
	if err != nil {
		return uuid.Nil, errors.ErrInvalidArgument(name + " must be a valid UUID")
	}
	return id, nil
}
