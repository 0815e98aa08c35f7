// Package validator wires go-playground/validator into echo.
package validator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// kenyanPhone mirrors the phone rule used by the M-Pesa flow so form
// validation and the payment flow agree on what a valid number is.
var kenyanPhone = regexp.MustCompile(`^(?:254|\+254|0)?[17]\d{8}$`)

// Validator implements echo.Validator.
type Validator struct {
	validate *validator.Validate
}

// New creates the request validator with the storefront's custom rules.
func New() *Validator {
	validate := validator.New()

	// Registration never fails for a fixed, valid rule set.
	_ = validate.RegisterValidation("mpesa_phone", func(fl validator.FieldLevel) bool {
		return kenyanPhone.MatchString(fl.Field().String())
	})

	return &Validator{validate: validate}
}

// Validate implements echo.Validator.
func (v *Validator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return errors.Wrap(err, "validate request")
	}

	return nil
}
