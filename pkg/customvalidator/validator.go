// Файл: pkg/customvalidator/validator.go

package customvalidator

import (
	"reflect"
	"regexp"
	"slices"

	"gearguard/pkg/constants"

	"github.com/aarondl/null/v8"
	"github.com/go-playground/validator/v10"
)

var (
	serialNumberRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9\-_/]*$`)
	emailRegex        = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

// RegisterCustomValidations "собирает" все наши кастомные правила валидации
// и регистрирует их в переданном экземпляре валидатора.
func RegisterCustomValidations(v *validator.Validate) error {
	registerNullTypes(v)

	if err := v.RegisterValidation("serial_number", isSerialNumber); err != nil {
		return err
	}
	if err := v.RegisterValidation("equipment_status", isOneOf(constants.EquipmentStatuses)); err != nil {
		return err
	}
	if err := v.RegisterValidation("request_status", isOneOf(constants.RequestStatuses)); err != nil {
		return err
	}
	if err := v.RegisterValidation("priority", isOneOf(constants.Priorities)); err != nil {
		return err
	}
	if err := v.RegisterValidation("email", isGoodEmailFormat); err != nil {
		return err
	}

	return nil
}

// IsSerialNumber используется и вне валидатора, например при импорте из XLSX.
func IsSerialNumber(s string) bool {
	return serialNumberRegex.MatchString(s)
}

func isSerialNumber(fl validator.FieldLevel) bool {
	return IsSerialNumber(fl.Field().String())
}

func isGoodEmailFormat(fl validator.FieldLevel) bool {
	return emailRegex.MatchString(fl.Field().String())
}

func isOneOf(allowed []string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return slices.Contains(allowed, fl.Field().String())
	}
}

// registerNullTypes учит валидатор "смотреть внутрь" типов null.String, null.Float64 и т.д.
func registerNullTypes(v *validator.Validate) {
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if val, ok := field.Interface().(null.String); ok && val.Valid {
			return val.String
		}
		return nil // nil, чтобы сработал `omitempty`
	}, null.String{})

	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if val, ok := field.Interface().(null.Float64); ok && val.Valid {
			return val.Float64
		}
		return nil
	}, null.Float64{})

	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if val, ok := field.Interface().(null.Time); ok && val.Valid {
			return val.Time
		}
		return nil
	}, null.Time{})
}
