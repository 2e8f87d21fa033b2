package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	// ErrInvalidRequest matches every *Error via errors.Is.
	ErrInvalidRequest = errors.New("validation: invalid request")
	// ErrConfirmationRequired is returned by destructive operations called without Confirm.
	ErrConfirmationRequired = errors.New("validation: confirmation required for destructive operation")
)

// Error lists the field-level failures of a rejected request.
type Error struct {
	Errors []FieldError `json:"errors"`
}

// FieldError is a single failed rule.
type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
	Value   string `json:"value,omitempty"`
}

func (e *Error) Error() string {
	switch len(e.Errors) {
	case 0:
		return "validation failed"
	case 1:
		return "validation failed: " + e.Errors[0].Message
	default:
		msgs := make([]string, 0, len(e.Errors))
		for _, fe := range e.Errors {
			msgs = append(msgs, fe.Message)
		}
		return fmt.Sprintf("validation failed: %d errors: %s", len(e.Errors), strings.Join(msgs, "; "))
	}
}

// Is reports ErrInvalidRequest as a match.
func (e *Error) Is(target error) bool {
	return target == ErrInvalidRequest
}

// Fields returns the names of the failed fields in order.
func (e *Error) Fields() []string {
	out := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		out = append(out, fe.Field)
	}
	return out
}

func newFieldError(field, rule, message string) *Error {
	return &Error{Errors: []FieldError{{Field: field, Rule: rule, Message: message}}}
}

func fromValidator(errs validator.ValidationErrors) *Error {
	out := &Error{Errors: make([]FieldError, 0, len(errs))}
	for _, fe := range errs {
		out.Errors = append(out.Errors, FieldError{
			Field:   fieldPath(fe),
			Rule:    fe.Tag(),
			Message: message(fe),
			Value:   valueString(fe.Value()),
		})
	}
	return out
}

// fieldPath drops the top-level struct name from the namespace.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func valueString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case []float64:
		return fmt.Sprintf("[%d values]", len(val))
	case map[string]any:
		return ""
	default:
		s := fmt.Sprintf("%v", val)
		if len(s) > 64 {
			s = s[:64] + "..."
		}
		return s
	}
}

func message(fe validator.FieldError) string {
	field := fieldPath(fe)
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, fe.Param())
	case "url":
		return fmt.Sprintf("%s must be a valid URL", field)
	case tagProjectID:
		return fmt.Sprintf("%s must be a valid project UUID", field)
	case tagEmbedding:
		return fmt.Sprintf("%s must be a finite vector of the configured dimension", field)
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}
