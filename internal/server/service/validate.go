package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	serr "github.com/IvanChernomyrdin/go-courses-api/internal/shared/errors"
)

// validate общий для всех сервисов: validator кеширует разобранные структуры.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// в сообщениях нужны имена полей из JSON, а не из Go
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// validateStruct проверяет s и возвращает *serr.ValidationError
// с сообщением на каждое нарушенное правило.
func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", serr.ErrInternal, err)
	}

	messages := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		messages = append(messages, fieldMessage(fe))
	}
	return serr.NewValidationError(messages...)
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("Please provide a value for %q", fe.Field())
	case "email":
		return "Please provide a valid email address"
	default:
		return fmt.Sprintf("Invalid value for %q", fe.Field())
	}
}
