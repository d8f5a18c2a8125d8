package validate

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var phoneRegexp = regexp.MustCompile(`^[0-9]{8}$`)

var v = newValidator()

func newValidator() *validator.Validate {
	val := validator.New(validator.WithRequiredStructEnabled())
	val.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phoneRegexp.MatchString(fl.Field().String())
	})
	return val
}

// Struct validates req against its `validate` tags.
func Struct(req any) error {
	return v.Struct(req)
}

// IsPhone reports whether s is a valid 8-digit subscriber number.
func IsPhone(s string) bool {
	return phoneRegexp.MatchString(s)
}
