package errors

// ErrorCode is the machine-readable code returned to API clients
type ErrorCode string

const (
	ErrorCode_HTTP_OK           ErrorCode = "OK"
	ErrorCode_INTERNAL          ErrorCode = "INTERNAL"
	ErrorCode_INVALID_ARGUMENT  ErrorCode = "INVALID_ARGUMENT"
	ErrorCode_INVALID_PAYLOAD   ErrorCode = "INVALID_PAYLOAD"
	ErrorCode_NOT_FOUND         ErrorCode = "NOT_FOUND"
	ErrorCode_ALREADY_EXISTS    ErrorCode = "ALREADY_EXISTS"
	ErrorCode_PERMISSION_DENIED ErrorCode = "PERMISSION_DENIED"
	ErrorCode_UNAUTHENTICATED   ErrorCode = "UNAUTHENTICATED"
	ErrorCode_FORBIDDEN         ErrorCode = "FORBIDDEN"

	// Auth
	ErrorCode_AUTH_INVALID_TOKEN       ErrorCode = "AUTH_INVALID_TOKEN"
	ErrorCode_AUTH_INVALID_CREDENTIALS ErrorCode = "AUTH_INVALID_CREDENTIALS"
	ErrorCode_AUTH_USER_INACTIVE       ErrorCode = "AUTH_USER_INACTIVE"
	ErrorCode_MODULE_LOCKED            ErrorCode = "MODULE_LOCKED"

	// Enrollment
	ErrorCode_ASSESSMENT_ID_REQUIRED ErrorCode = "ASSESSMENT_ID_REQUIRED"
	ErrorCode_ASSESSMENT_NOT_FOUND   ErrorCode = "ASSESSMENT_NOT_FOUND"
	ErrorCode_ENROLLMENT_PERSIST     ErrorCode = "ENROLLMENT_PERSIST_FAILED"
	ErrorCode_AI_SUMMARY_FAILED      ErrorCode = "AI_SUMMARY_FAILED"

	// Integrations
	ErrorCode_INTEGRATION_STORAGE_FAILED ErrorCode = "INTEGRATION_STORAGE_FAILED"
	ErrorCode_DB_QUERY_FAILED            ErrorCode = "DB_QUERY_FAILED"
)

func (c ErrorCode) String() string {
	return string(c)
}
