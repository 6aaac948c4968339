package errors

import (
	"fmt"
	"net/http"
	"time"
)

// ErrorCode identifies an application error category.
type ErrorCode int

const (
	ErrorCode_HTTP_OK ErrorCode = 0

	// General
	ErrorCode_INTERNAL         ErrorCode = 1000
	ErrorCode_INVALID_ARGUMENT ErrorCode = 1001
	ErrorCode_NOT_FOUND        ErrorCode = 1002
	ErrorCode_INVALID_PAYLOAD  ErrorCode = 1003
	ErrorCode_UNAUTHENTICATED  ErrorCode = 1004
	ErrorCode_FORBIDDEN        ErrorCode = 1005

	// Templates
	ErrorCode_TEMPLATE_NOT_FOUND ErrorCode = 2000
	ErrorCode_VERSION_NOT_FOUND  ErrorCode = 2001
	ErrorCode_TEMPLATE_INVALID   ErrorCode = 2002

	// Analysis
	ErrorCode_ANALYSIS_FAILED    ErrorCode = 3000
	ErrorCode_MODEL_CALL_FAILED  ErrorCode = 3001
	ErrorCode_MEETING_INVALID    ErrorCode = 3002
	ErrorCode_MEETING_NOT_FOUND  ErrorCode = 3003
	ErrorCode_NO_MEETINGS        ErrorCode = 3004
	ErrorCode_TRANSCRIPT_MISSING ErrorCode = 3005

	// Reports
	ErrorCode_REPORT_EXPORT_FAILED ErrorCode = 4000
	ErrorCode_STORAGE_FAILED       ErrorCode = 4001

	// Database
	ErrorCode_DB_QUERY_FAILED ErrorCode = 5000
)

var errorCodeNames = map[ErrorCode]string{
	ErrorCode_HTTP_OK:              "OK",
	ErrorCode_INTERNAL:             "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:     "INVALID_ARGUMENT",
	ErrorCode_NOT_FOUND:            "NOT_FOUND",
	ErrorCode_INVALID_PAYLOAD:      "INVALID_PAYLOAD",
	ErrorCode_UNAUTHENTICATED:      "UNAUTHENTICATED",
	ErrorCode_FORBIDDEN:            "FORBIDDEN",
	ErrorCode_TEMPLATE_NOT_FOUND:   "TEMPLATE_NOT_FOUND",
	ErrorCode_VERSION_NOT_FOUND:    "VERSION_NOT_FOUND",
	ErrorCode_TEMPLATE_INVALID:     "TEMPLATE_INVALID",
	ErrorCode_ANALYSIS_FAILED:      "ANALYSIS_FAILED",
	ErrorCode_MODEL_CALL_FAILED:    "MODEL_CALL_FAILED",
	ErrorCode_MEETING_INVALID:      "MEETING_INVALID",
	ErrorCode_MEETING_NOT_FOUND:    "MEETING_NOT_FOUND",
	ErrorCode_NO_MEETINGS:          "NO_MEETINGS",
	ErrorCode_TRANSCRIPT_MISSING:   "TRANSCRIPT_MISSING",
	ErrorCode_REPORT_EXPORT_FAILED: "REPORT_EXPORT_FAILED",
	ErrorCode_STORAGE_FAILED:       "STORAGE_FAILED",
	ErrorCode_DB_QUERY_FAILED:      "DB_QUERY_FAILED",
}

// String returns the symbolic name of the error code.
func (c ErrorCode) String() string {
	if name, ok := errorCodeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN(%d)", int(c))
}

// AppError is the application error type carried across handler boundaries.
type AppError struct {
	Raw       error
	HTTPCode  int
	Code      ErrorCode
	Message   string
	Details   map[string]string
	Timestamp time.Time
}

// Error implements error interface
func (e AppError) Error() string {
	if e.Raw != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code.String(), e.Message, e.Raw)
	}
	return fmt.Sprintf("[%s] %s", e.Code.String(), e.Message)
}

// Unwrap exposes the wrapped cause to errors.Is/As.
func (e AppError) Unwrap() error {
	return e.Raw
}

// WithDetail adds a detail to the error
func (e AppError) WithDetail(key, value string) AppError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// General Errors
func ErrInternal(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_INTERNAL,
		Message:  "Internal server error",
	}
}

func ErrInvalidArgument(message string) AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_INVALID_ARGUMENT,
		Message:  message,
	}
}

func ErrNotFound(resource string) AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_NOT_FOUND,
		Message:  fmt.Sprintf("%s not found", resource),
	}
}

func ErrInvalidPayload() AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_INVALID_PAYLOAD,
		Message:  "Invalid payload",
	}
}

func ErrUnauthenticated() AppError {
	return AppError{
		HTTPCode: http.StatusUnauthorized,
		Code:     ErrorCode_UNAUTHENTICATED,
		Message:  "Authentication required",
	}
}

func ErrForbidden(message string) AppError {
	return AppError{
		HTTPCode: http.StatusForbidden,
		Code:     ErrorCode_FORBIDDEN,
		Message:  message,
	}
}

// Template Errors
func ErrTemplateNotFound(name string) AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_TEMPLATE_NOT_FOUND,
		Message:  "Template not found",
	}.WithDetail("template", name)
}

func ErrTemplateVersionNotFound(name, version string) AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_VERSION_NOT_FOUND,
		Message:  "Template version not found",
	}.WithDetail("template", name).WithDetail("version", version)
}

func ErrTemplateInvalid(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_TEMPLATE_INVALID,
		Message:  "Template registry is invalid",
	}
}

// Analysis Errors
func ErrAnalysisFailed(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_ANALYSIS_FAILED,
		Message:  "Analysis failed",
	}
}

func ErrModelCallFailed(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusBadGateway,
		Code:     ErrorCode_MODEL_CALL_FAILED,
		Message:  "Model call failed",
	}
}

func ErrMeetingInvalid(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_MEETING_INVALID,
		Message:  "Meeting document could not be decoded",
	}
}

func ErrMeetingNotFound(meetingID string) AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_MEETING_NOT_FOUND,
		Message:  "Meeting not found",
	}.WithDetail("meeting_id", meetingID)
}

func ErrNoMeetings() AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_NO_MEETINGS,
		Message:  "No meetings provided",
	}
}

// Report Errors
func ErrReportExportFailed(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_REPORT_EXPORT_FAILED,
		Message:  "Report export failed",
	}
}

func ErrStorageFailed(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_STORAGE_FAILED,
		Message:  "Report storage failed",
	}
}

// Database Errors
func ErrDBQueryFailed(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_DB_QUERY_FAILED,
		Message:  "Database query failed",
	}
}
