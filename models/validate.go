// ABOUTME: Structural validation for create drafts
// ABOUTME: Wraps go-playground/validator with friendly error messages
package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the struct tags on a draft record before it is sent anywhere.
// Returns a single error naming every failed field.
func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	var parts []string
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			parts = append(parts, fmt.Sprintf("%s is required", strings.ToLower(fe.Field())))
		case "email":
			parts = append(parts, fmt.Sprintf("%s is not a valid email", strings.ToLower(fe.Field())))
		default:
			parts = append(parts, fmt.Sprintf("%s is invalid (%s=%s)", strings.ToLower(fe.Field()), fe.Tag(), fe.Param()))
		}
	}
	return errors.New(strings.Join(parts, "; "))
}
