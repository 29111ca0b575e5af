package entities

import "errors"

// Domain errors
var (
	// Enrollment pipeline errors
	ErrMissingAssessmentID  = errors.New("assessment id is required")
	ErrAssessmentNotFound   = errors.New("assessment not found")
	ErrPersistFailed        = errors.New("failed to persist summary and pathway assignments")
	ErrPathwayLookupFailed  = errors.New("failed to look up skill pathways")
	ErrSummaryGeneration    = errors.New("failed to generate summary")
	ErrInvalidEnrollment    = errors.New("invalid enrollment")
	ErrEnrollmentNotCreated = errors.New("failed to create enrollment")

	// User errors
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrUserInactive       = errors.New("user is not active")
	ErrInvalidEmail       = errors.New("invalid email")
	ErrInvalidName        = errors.New("invalid name")
	ErrInvalidRole        = errors.New("invalid role")
	ErrInvalidPassword    = errors.New("invalid password")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNoSchool           = errors.New("user is not attached to a school")

	// School errors
	ErrSchoolNotFound = errors.New("school not found")

	// Student errors
	ErrStudentNotFound = errors.New("student not found")

	// Curriculum errors
	ErrAssignmentNotFound = errors.New("pathway assignment not found")
	ErrInvalidOutcome     = errors.New("invalid activity outcome")

	// Module errors
	ErrModuleNotFound = errors.New("module not found")
	ErrModuleLocked   = errors.New("module is locked")

	// Co-Pilot errors
	ErrAlertNotFound      = errors.New("alert not found")
	ErrInvalidAlertStatus = errors.New("invalid alert status")

	// Calendar errors
	ErrInvalidEventWindow = errors.New("event end time precedes start time")
	ErrInvalidAudience    = errors.New("invalid event audience")

	// Compliance errors
	ErrInvalidComplianceStatus = errors.New("invalid compliance status")
	ErrDocumentUpload          = errors.New("failed to upload compliance document")

	// Token errors
	ErrInvalidToken = errors.New("invalid token")

	// Generic errors
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrInvalidRequest = errors.New("invalid request")
)
