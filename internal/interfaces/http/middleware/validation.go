package middleware

import (
	"errors"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/paulmaker/office-mgmt/internal/domain/identity"
)

// RegisterValidators installs custom binding validators on gin's
// validator engine. Call once at startup.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("unexpected validator engine")
	}

	// "role" accepts any parseable role name, case-insensitive.
	return v.RegisterValidation("role", func(fl validator.FieldLevel) bool {
		_, err := identity.ParseRole(fl.Field().String())
		return err == nil
	})
}
