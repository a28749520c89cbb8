// internal/validation/validator.go

// Package validation checks request parameters with go-playground/validator
// and reports the first failure as a custom_errors.ValidationError, before
// any upstream or database call is made.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	custom_errors "github.com/jahphetB/github-activity-analytics/internal/errors"
	"github.com/jahphetB/github-activity-analytics/internal/model"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// GetValidator returns the shared validator instance. It is safe for concurrent use.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		// Report fields by their wire name.
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			for _, tag := range []string{"json", "query"} {
				name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
				if name == "-" {
					return ""
				}
				if name != "" {
					return name
				}
			}
			return fld.Name
		})

		_ = validate.RegisterValidation("fullname", validateFullName)
	})
	return validate
}

// validateFullName accepts 'owner/name' strings made of GitHub name characters.
func validateFullName(fl validator.FieldLevel) bool {
	_, err := model.ParseFullName(fl.Field().String())
	return err == nil
}

// Struct validates s and returns a *custom_errors.ValidationError for the
// first field that fails.
func Struct(s any) error {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &custom_errors.ValidationError{Message: err.Error()}
	}
	fe := fieldErrs[0]
	return &custom_errors.ValidationError{Field: fe.Field(), Message: translateError(fe)}
}

var errorMessageTemplates = map[string]string{
	"required": "is required",
	"fullname": "must be in 'owner/name' format",
}

var errorMessageWithParam = map[string]string{
	"oneof": "must be one of: %s",
	"gte":   "must be greater than or equal to %s",
	"lte":   "must be less than or equal to %s",
	"min":   "must be at least %s",
	"max":   "must be at most %s",
}

func translateError(fe validator.FieldError) string {
	if msg, ok := errorMessageTemplates[fe.Tag()]; ok {
		return msg
	}
	if tmpl, ok := errorMessageWithParam[fe.Tag()]; ok {
		return fmt.Sprintf(tmpl, fe.Param())
	}
	return fmt.Sprintf("failed %s validation", fe.Tag())
}
