package utils

import (
	"github.com/go-playground/validator/v10"
)

// CustomValidator подключает go-playground/validator к echo (ctx.Validate).
// Правила предметной области регистрируются в pkg/customvalidator.
type CustomValidator struct {
	validator *validator.Validate
}

func NewValidator(v *validator.Validate) *CustomValidator {
	return &CustomValidator{validator: v}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
