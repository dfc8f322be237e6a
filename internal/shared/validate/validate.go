package validate

import "github.com/go-playground/validator/v10"

var v = validator.New(validator.WithRequiredStructEnabled())

// Struct validates the `validate` tags on a payload struct.
func Struct(s any) error {
	return v.Struct(s)
}
