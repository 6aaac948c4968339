package handler

import (
	stdErrors "errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-insights/errors"
	usecaseerrors "github.com/johnquangdev/meeting-insights/internal/usecase/errors"
)

// Response shapes
type success struct {
	Code    interface{} `json:"code,omitempty"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type errs struct {
	Code    interface{}       `json:"code,omitempty"`
	Message string            `json:"message,omitempty"`
	Info    string            `json:"info,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

// getRequestID tries to read X-Request-ID from the request
func getRequestID(c echo.Context) string {
	if c == nil || c.Request() == nil {
		return ""
	}
	return c.Request().Header.Get("X-Request-ID")
}

// HandleSuccess writes a standardized success response
func HandleSuccess(logger *zap.Logger, c echo.Context, data interface{}) error {
	resp := success{
		Code:    int(errors.ErrorCode_HTTP_OK),
		Message: "success",
		Data:    data,
	}

	if logger != nil {
		logger.Info("http.response.success",
			zap.String("request_id", getRequestID(c)),
			zap.String("path", c.Path()),
		)
	}

	return c.JSON(http.StatusOK, resp)
}

// HandleError centralizes error handling and logging. Usecase sentinel
// errors are mapped to AppError first so every handler reports the same
// status codes for the same failures.
func HandleError(logger *zap.Logger, c echo.Context, err error) error {
	err = mapUsecaseError(err)

	reqID := getRequestID(c)

	var appErr errors.AppError
	if stdErrors.As(err, &appErr) {
		if logger != nil {
			logger.Error("http.response.error",
				zap.String("request_id", reqID),
				zap.String("path", c.Path()),
				zap.Any("app_code", appErr.Code),
				zap.Error(err),
			)
		}

		info := ""
		if appErr.Raw != nil {
			info = appErr.Raw.Error()
		}

		body := errs{
			Code:    appErr.Code,
			Message: appErr.Message,
			Info:    info,
			Details: appErr.Details,
		}

		return c.JSON(appErr.HTTPCode, body)
	}

	if logger != nil {
		logger.Error("http.response.error",
			zap.String("request_id", reqID),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
	}

	body := errs{
		Code:    errors.ErrorCode_INTERNAL,
		Message: "Internal server error",
		Info:    err.Error(),
	}

	return c.JSON(http.StatusInternalServerError, body)
}

// mapUsecaseError translates pipeline sentinel errors into AppErrors.
// Unrecognized errors pass through untouched.
func mapUsecaseError(err error) error {
	switch {
	case stdErrors.Is(err, usecaseerrors.ErrTemplateNotFound):
		return errors.AppError{
			Raw:      err,
			HTTPCode: http.StatusNotFound,
			Code:     errors.ErrorCode_TEMPLATE_NOT_FOUND,
			Message:  "Template not found",
		}
	case stdErrors.Is(err, usecaseerrors.ErrVersionNotFound):
		return errors.AppError{
			Raw:      err,
			HTTPCode: http.StatusNotFound,
			Code:     errors.ErrorCode_VERSION_NOT_FOUND,
			Message:  "Template version not found",
		}
	case stdErrors.Is(err, usecaseerrors.ErrNoMeetings):
		return errors.ErrNoMeetings()
	case stdErrors.Is(err, usecaseerrors.ErrInvalidMeetingDoc):
		return errors.ErrMeetingInvalid(err)
	case stdErrors.Is(err, usecaseerrors.ErrModelCall):
		return errors.ErrModelCallFailed(err)
	case stdErrors.Is(err, usecaseerrors.ErrUnsupportedFormat):
		return errors.ErrInvalidArgument("unsupported report format")
	case stdErrors.Is(err, usecaseerrors.ErrEmptyReport):
		return errors.ErrInvalidArgument("report has no rows")
	}
	return err
}
