package handler

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/younglafire/fruitfarm/internal/domain"
)

// Validator wraps the validator instance
type Validator struct {
	validate *validator.Validate
}

var (
	validate     *Validator
	validateOnce sync.Once
)

// GetValidator returns the shared validator instance
func GetValidator() *Validator {
	validateOnce.Do(func() {
		v := validator.New()
		_ = v.RegisterValidation("fruitlevel", validateFruitLevel)
		validate = &Validator{validate: v}
	})
	return validate
}

// ValidateStruct validates a struct using tags
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.validate.Struct(s)
}

func validateFruitLevel(fl validator.FieldLevel) bool {
	return domain.FruitLevel(fl.Field().Int()).Valid()
}

// FormatValidationError formats validation errors into a field -> message map
// without leaking struct names
func FormatValidationError(err error) map[string]string {
	if err == nil {
		return nil
	}

	errs := make(map[string]string)

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		errs["error"] = "Invalid request format"
		return errs
	}

	for _, e := range validationErrors {
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "required":
			errs[field] = "This field is required"
		case "fruitlevel":
			errs[field] = fmt.Sprintf("Must be a fruit type between %d and %d", domain.MinFruitLevel, domain.MaxFruitLevel)
		case "max":
			errs[field] = fmt.Sprintf("Must be at most %s", e.Param())
		case "min":
			errs[field] = fmt.Sprintf("Must be at least %s", e.Param())
		case "nefield":
			errs[field] = fmt.Sprintf("Must differ from %s", strings.ToLower(e.Param()))
		default:
			errs[field] = "Invalid value"
		}
	}

	return errs
}
