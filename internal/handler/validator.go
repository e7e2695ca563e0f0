package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator wraps the validator instance
type Validator struct {
	validate *validator.Validate
}

// Global validator instance
var validate *Validator

// InitValidator initializes the global validator
func InitValidator() {
	v := validator.New()

	// Register custom validation for weapon kinds and slots
	_ = v.RegisterValidation("kind", validateKind)
	_ = v.RegisterValidation("slot", validateSlot)

	validate = &Validator{validate: v}
}

// GetValidator returns the global validator instance
func GetValidator() *Validator {
	if validate == nil {
		InitValidator()
	}
	return validate
}

// ValidateStruct validates a struct using tags
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.validate.Struct(s)
}

// FormatValidationError formats validation errors into a user-friendly map
// This prevents leaking internal struct names and provides cleaner error messages
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
		case "kind":
			errs[field] = "Invalid weapon kind"
		case "slot":
			errs[field] = "Invalid attachment slot"
		case "max":
			errs[field] = fmt.Sprintf("Must be at most %s characters", e.Param())
		case "min":
			errs[field] = fmt.Sprintf("Must be at least %s characters", e.Param())
		case "gte":
			errs[field] = fmt.Sprintf("Must be at least %s", e.Param())
		default:
			errs[field] = "Invalid value"
		}
	}

	return errs
}

// ValidKinds defines the weapon kinds accepted in requests
var ValidKinds = map[string]bool{
	"rifle":    true,
	"carbine":  true,
	"shotgun":  true,
	"handgun":  true,
	"launcher": true,
}

// ValidSlots defines the attachment slots accepted in requests
var ValidSlots = map[string]bool{
	"sight":       true,
	"barrel":      true,
	"muzzle":      true,
	"underbarrel": true,
	"magazine":    true,
	"accessory":   true,
}

// Custom validation function for weapon kind
func validateKind(fl validator.FieldLevel) bool {
	kind := fl.Field().String()
	// Allow empty if not required (handled by 'required' tag if needed)
	if kind == "" {
		return true
	}
	return ValidKinds[strings.ToLower(kind)]
}

// Custom validation function for attachment slot
func validateSlot(fl validator.FieldLevel) bool {
	slot := fl.Field().String()
	if slot == "" {
		return true
	}
	return ValidSlots[strings.ToLower(slot)]
}
