// Файл: pkg/customvalidator/validator.go

package customvalidator

import (
	"equipment-panel/pkg/constants"

	"github.com/go-playground/validator/v10"
)

// RegisterCustomValidations регистрирует кастомные правила в переданном валидаторе.
func RegisterCustomValidations(v *validator.Validate) error {
	if err := v.RegisterValidation("role", isKnownRole); err != nil {
		return err
	}
	return nil
}

func isKnownRole(fl validator.FieldLevel) bool {
	return constants.Role(fl.Field().String()).IsValid()
}
