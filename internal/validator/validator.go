package validator

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var (
	// ClockPattern is the HH:MM format accepted for session times
	ClockPattern = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):([0-5][0-9])$`)
	// DatePattern is the YYYY-MM-DD shape accepted for session days
	DatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// ErrValidation matches any ValidationErrors with errors.Is
var ErrValidation = errors.New("validation failed")

// ValidationError describes one rejected field
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
	Rule    string      `json:"rule,omitempty"`
}

type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}
	if len(ve) == 1 {
		return fmt.Sprintf("validation failed: %s %s", ve[0].Field, ve[0].Message)
	}
	return fmt.Sprintf("validation failed: %d field errors", len(ve))
}

func (ve ValidationErrors) Is(target error) bool {
	return target == ErrValidation
}

// Validator wraps go-playground/validator with the service's field rules
type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report json names so messages match the request body
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = v.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
		return IsClock(fl.Field().String())
	})
	_ = v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		return IsISODate(fl.Field().String())
	})
	_ = v.RegisterValidation("integer", func(fl validator.FieldLevel) bool {
		_, err := strconv.Atoi(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("member_role", func(fl validator.FieldLevel) bool {
		role := fl.Field().String()
		return role == "student" || role == "tutor"
	})

	return &Validator{validate: v}
}

// Validate checks s and returns nil when every rule holds
func (v *Validator) Validate(s interface{}) ValidationErrors {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	return ToValidationErrors(err)
}

// ToValidationErrors converts validator output into ValidationErrors
func ToValidationErrors(err error) ValidationErrors {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return ValidationErrors{{Field: "request", Message: err.Error(), Rule: "invalid"}}
	}

	out := make(ValidationErrors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, ValidationError{
			Field:   fe.Field(),
			Message: messageFor(fe),
			Value:   fe.Value(),
			Rule:    fe.Tag(),
		})
	}
	return out
}

// IsClock reports whether v is a HH:MM time of day
func IsClock(v string) bool {
	return ClockPattern.MatchString(v)
}

// IsISODate reports whether v is YYYY-MM-DD and names a real calendar day
func IsISODate(v string) bool {
	if !DatePattern.MatchString(v) {
		return false
	}
	_, err := time.Parse(time.DateOnly, v)
	return err == nil
}

func messageFor(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required", "notblank":
		return fmt.Sprintf("%s is required and must be a non-empty string", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "clock":
		return fmt.Sprintf("%s must be in the format HH:MM (e.g., 17:22)", field)
	case "isodate":
		return fmt.Sprintf("%s must be a valid date in the format YYYY-MM-DD (e.g., 2025-03-29)", field)
	case "member_role":
		return fmt.Sprintf("%s must be either student or tutor", field)
	case "integer":
		return fmt.Sprintf("%s must be an integer", field)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}
