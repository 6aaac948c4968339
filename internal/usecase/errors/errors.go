package errors

import "errors"

// Common errors
var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrNotFound      = errors.New("resource not found")
	ErrInternalError = errors.New("internal server error")
)

// Template errors
var (
	ErrTemplateNotFound = errors.New("template not found")
	ErrVersionNotFound  = errors.New("template version not found")
	ErrNoLatestVersion  = errors.New("template has no version marked latest")
	ErrDuplicateLatest  = errors.New("template has more than one version marked latest")
	ErrEmptyTemplate    = errors.New("template has no versions")
)

// Analysis errors
var (
	ErrModelCall          = errors.New("model call failed")
	ErrEmptyModelResponse = errors.New("empty response from model")
	ErrNoMeetings         = errors.New("no meetings to analyze")
	ErrInvalidMeetingDoc  = errors.New("meeting document does not match any known schema")
)

// Report errors
var (
	ErrUnsupportedFormat = errors.New("unsupported report format")
	ErrEmptyReport       = errors.New("report has no rows")
)
