// Package validation runs struct-tag validation on request inputs.
// It wraps go-playground/validator and registers the blood_group rule.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"blood-connect/internal/apperrors"
)

var validate = validator.New()

// BloodGroups lists the accepted ABO/Rh values.
var BloodGroups = []string{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"}

func init() {
	// Report json names so messages match what the client sent.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	err := validate.RegisterValidation("blood_group", func(fl validator.FieldLevel) bool {
		if fl.Field().String() == "" {
			return true
		}
		return IsBloodGroup(fl.Field().String())
	})
	if err != nil {
		panic(fmt.Sprintf("failed to register custom validation: %v", err))
	}
}

func IsBloodGroup(s string) bool {
	for _, g := range BloodGroups {
		if g == s {
			return true
		}
	}
	return false
}

// ValidationError holds one message per failing field.
type ValidationError struct {
	Errors []string
}

func (v *ValidationError) Error() string {
	return strings.Join(v.Errors, ", ")
}

func (v *ValidationError) Is(target error) bool { return target == apperrors.ErrValidation }

// ValidateStruct checks s against its validate tags.
func ValidateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	messages := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		var message string

		switch fe.Tag() {
		case "required":
			message = fmt.Sprintf("field '%s' is required", fe.Field())
		case "blood_group":
			message = fmt.Sprintf("field '%s' must be one of %s", fe.Field(), strings.Join(BloodGroups, ", "))
		case "oneof":
			message = fmt.Sprintf("field '%s' must be one of [%s]", fe.Field(), fe.Param())
		case "min", "gte":
			message = fmt.Sprintf("field '%s' must be at least %s", fe.Field(), fe.Param())
		case "max", "lte":
			message = fmt.Sprintf("field '%s' must be at most %s", fe.Field(), fe.Param())
		case "email":
			message = fmt.Sprintf("field '%s' must be a valid email", fe.Field())
		default:
			message = fmt.Sprintf("field '%s' failed on the '%s' tag", fe.Field(), fe.Tag())
		}
		messages = append(messages, message)
	}

	return &ValidationError{Errors: messages}
}
