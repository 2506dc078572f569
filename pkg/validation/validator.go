package validation

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Validate is the global validator instance used by services
var Validate *validator.Validate

func init() {
	Validate = validator.New()
	_ = registerRules(Validate)
}

// RegisterGinValidators installs the custom rules on gin's binding engine so
// request structs can use them in `binding` tags.
func RegisterGinValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected gin validator engine %T", binding.Validator.Engine())
	}
	return registerRules(v)
}

func registerRules(v *validator.Validate) error {
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("register %s rule: %w", tag, err)
		}
	}
	return nil
}

// ValidateStruct validates `validate` tags and returns a *ValidationError on failure
func ValidateStruct(s interface{}) error {
	err := Validate.Struct(s)
	if err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			return NewValidationError(validationErrors)
		}
		return err
	}
	return nil
}

// ValidationError collects field-level messages
type ValidationError struct {
	Errors map[string]string `json:"errors"`
}

// NewValidationError converts validator errors into a ValidationError
func NewValidationError(errs validator.ValidationErrors) *ValidationError {
	ve := &ValidationError{Errors: make(map[string]string, len(errs))}
	for _, fe := range errs {
		ve.AddError(fe.Field(), describe(fe))
	}
	return ve
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Errors))
	for field := range e.Errors {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+e.Errors[field])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// AddError records a message for field
func (e *ValidationError) AddError(field, message string) {
	if e.Errors == nil {
		e.Errors = make(map[string]string)
	}
	e.Errors[field] = message
}

// HasErrors reports whether any field failed
func (e *ValidationError) HasErrors() bool {
	return len(e.Errors) > 0
}

// GetFieldError returns the message recorded for field
func (e *ValidationError) GetFieldError(field string) string {
	return e.Errors[field]
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min", "gte":
		return "must be at least " + fe.Param()
	case "max", "lte":
		return "must be at most " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "oneof":
		return "must be one of " + fe.Param()
	default:
		return "failed " + fe.Tag() + " validation"
	}
}

// ValidateCoordinates validates latitude and longitude
func ValidateCoordinates(latitude, longitude float64) error {
	if latitude < -90.0 || latitude > 90.0 {
		return fmt.Errorf("latitude must be between -90 and 90, got: %f", latitude)
	}
	if longitude < -180.0 || longitude > 180.0 {
		return fmt.Errorf("longitude must be between -180 and 180, got: %f", longitude)
	}
	return nil
}

// ValidateDateRange validates that end is not before start
func ValidateDateRange(start, end time.Time) error {
	if end.Before(start) {
		return &ValidationError{
			Errors: map[string]string{
				"date_range": "End date must be after start date",
			},
		}
	}
	return nil
}
