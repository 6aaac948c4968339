package validator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// Version labels are either the "latest" alias or a dotted number like 1.0.
var versionPattern = regexp.MustCompile(`^\d+(\.\d+)*$`)

// CustomValidator implements echo.Validator using go-playground/validator
type CustomValidator struct {
	v *validator.Validate
}

// New creates a new CustomValidator instance
func New() *CustomValidator {
	v := validator.New()
	v.RegisterValidation("templateversion", validateTemplateVersion)
	v.RegisterValidation("reportformat", validateReportFormat)
	return &CustomValidator{v: v}
}

// Validate performs struct validation
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.v.Struct(i)
}

func validateTemplateVersion(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" || value == "latest" {
		return true
	}
	return versionPattern.MatchString(value)
}

func validateReportFormat(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "xlsx", "csv", "txt":
		return true
	}
	return false
}
