package utils

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"tasktrack/domain/models"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validator shared instance with the domain tags registered
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		_ = validate.RegisterValidation("column", func(fl validator.FieldLevel) bool {
			return models.Column(fl.Field().String()).Valid()
		})
		_ = validate.RegisterValidation("priority", func(fl validator.FieldLevel) bool {
			return models.Priority(fl.Field().String()).Valid()
		})
		_ = validate.RegisterValidation("theme", func(fl validator.FieldLevel) bool {
			return models.Theme(fl.Field().String()).Valid()
		})
		_ = validate.RegisterValidation("icon", func(fl validator.FieldLevel) bool {
			return models.Icon(fl.Field().String()).Valid()
		})
		_ = validate.RegisterValidation("reminder_unit", func(fl validator.FieldLevel) bool {
			return models.ReminderUnit(fl.Field().String()).Valid()
		})
		_ = validate.RegisterValidation("category_color", func(fl validator.FieldLevel) bool {
			_, ok := models.CategoryColorClasses[fl.Field().String()]
			return ok
		})

		// report json names instead of Go field names
		validate.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

func ValidateStruct(s interface{}) error {
	return Validator().Struct(s)
}

type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

// GetValidationErrors flattens validator errors, anything else becomes a single entry
func GetValidationErrors(err error) []ValidationError {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []ValidationError{{Message: err.Error()}}
	}

	out := make([]ValidationError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, ValidationError{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Message: validationMessage(fe),
		})
	}
	return out
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "uuid":
		return fmt.Sprintf("%s must be a valid UUID", fe.Field())
	case "column", "priority", "theme", "icon", "reminder_unit", "category_color":
		return fmt.Sprintf("%s has an unsupported value %v", fe.Field(), fe.Value())
	default:
		return fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag())
	}
}
