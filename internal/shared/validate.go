package shared

import (
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phonePattern = regexp.MustCompile(`^\+?1?\d{10,15}$`)
)

// IsValidContact reports whether value looks like an email address or a
// phone number.
func IsValidContact(value string) bool {
	return emailPattern.MatchString(value) || phonePattern.MatchString(value)
}

// NewValidator builds the validator instance used by the managers. It
// registers the custom "contact" rule on top of the built-in tags.
func NewValidator() *validator.Validate {
	v := validator.New()
	// The rule never errors, so RegisterValidation cannot fail here.
	_ = v.RegisterValidation("contact", func(fl validator.FieldLevel) bool {
		return IsValidContact(fl.Field().String())
	})
	return v
}

// ValidationError converts a validator failure into an ErrValidation
// carrying the first offending field.
func ValidationError(err error) error {
	if err == nil {
		return nil
	}
	if fieldErrs, ok := err.(validator.ValidationErrors); ok && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return fmt.Errorf("%w: field %s failed rule %s", ErrValidation, fe.Field(), fe.Tag())
	}
	return fmt.Errorf("%w: %v", ErrValidation, err)
}
