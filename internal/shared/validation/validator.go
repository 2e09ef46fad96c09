// Package validation wraps go-playground/validator with the field naming and message lookup
// used by the usecases. Validation runs before any persistence call.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"blog_backend/internal/shared/apperr"
)

// Messages maps "field.tag" (field by its json name) to the user-visible message.
type Messages map[string]string

// Validator validates input structs and converts the first failure into an *apperr.ValidationError.
type Validator struct {
	engine *validator.Validate
}

// New creates a Validator that reports fields by their json tag names.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{engine: v}
}

// Struct validates s. Unknown failures fall back to a generic "<field> is invalid" message.
func (v *Validator) Struct(s any, messages Messages) error {
	err := v.engine.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("validate input: %w", err)
	}

	fe := verrs[0]
	field := fe.Field()
	if msg, ok := messages[field+"."+fe.Tag()]; ok {
		return apperr.NewValidationError(field, msg)
	}
	return apperr.NewValidationError(field, defaultMessage(fe))
}

func defaultMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	default:
		return fe.Field() + " is invalid"
	}
}
