// Package validation checks ZeroDB request payloads before they reach the
// network: struct rules from validate tags, project ID and embedding rules,
// and confirmation of destructive calls. It also encodes query strings from
// `query` struct tags.
package validation

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// DefaultEmbeddingDimensions is the vector size the API expects unless configured otherwise.
const DefaultEmbeddingDimensions = 1536

const (
	tagProjectID = "project_id"
	tagEmbedding = "embedding"
)

// Validator wraps go-playground/validator with the ZeroDB rules registered.
// It is safe for concurrent use.
type Validator struct {
	validate   *validator.Validate
	dimensions int
}

// New creates a Validator expecting embeddings of the given dimension.
// A non-positive dimension selects DefaultEmbeddingDimensions.
func New(dimensions int) *Validator {
	if dimensions <= 0 {
		dimensions = DefaultEmbeddingDimensions
	}
	v := &Validator{validate: validator.New(validator.WithRequiredStructEnabled()), dimensions: dimensions}

	v.validate.RegisterTagNameFunc(jsonName)
	// Registration only fails for empty tags or nil funcs.
	_ = v.validate.RegisterValidation(tagProjectID, func(fl validator.FieldLevel) bool {
		return IsProjectID(fl.Field().String())
	})
	_ = v.validate.RegisterValidation(tagEmbedding, func(fl validator.FieldLevel) bool {
		return v.checkEmbedding(fl.Field()) == ""
	})
	return v
}

// Default returns a Validator with DefaultEmbeddingDimensions.
func Default() *Validator {
	return New(DefaultEmbeddingDimensions)
}

// OrDefault returns v, or Default() when v is nil.
func OrDefault(v *Validator) *Validator {
	if v == nil {
		return Default()
	}
	return v
}

// Dimensions reports the configured embedding dimension.
func (v *Validator) Dimensions() int {
	return v.dimensions
}

// Struct validates s against its validate tags.
func (v *Validator) Struct(s any) error {
	if err := v.validate.Struct(s); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return fromValidator(verrs)
		}
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	return nil
}

// ProjectID validates a project identifier.
func (v *Validator) ProjectID(id string) error {
	if !IsProjectID(id) {
		return newFieldError("project_id", tagProjectID,
			fmt.Sprintf("invalid project ID %q: expected a UUID", id))
	}
	return nil
}

// Embedding validates a vector's dimension and values.
func (v *Validator) Embedding(field string, vec []float64) error {
	if msg := v.checkEmbedding(reflect.ValueOf(vec)); msg != "" {
		return newFieldError(field, tagEmbedding, field+": "+msg)
	}
	return nil
}

// Confirm returns ErrConfirmationRequired unless confirm is set.
func Confirm(confirm bool, operation string) error {
	if !confirm {
		return fmt.Errorf("%s: %w", operation, ErrConfirmationRequired)
	}
	return nil
}

// Required rejects a blank identifier before it is placed in a path, where an
// empty segment would address the parent collection instead.
func Required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return newFieldError(field, "required", field+" is required")
	}
	return nil
}

// IsProjectID reports whether id is an RFC 4122 UUID of version 1 to 5.
func IsProjectID(id string) bool {
	if len(id) != 36 {
		return false
	}
	u, err := uuid.Parse(id)
	if err != nil {
		return false
	}
	return u.Version() >= 1 && u.Version() <= 5 && u.Variant() == uuid.RFC4122
}

func (v *Validator) checkEmbedding(field reflect.Value) string {
	if field.Kind() != reflect.Slice {
		return "must be a list of numbers"
	}
	if field.Len() != v.dimensions {
		return fmt.Sprintf("expected %d dimensions, got %d", v.dimensions, field.Len())
	}
	for i := 0; i < field.Len(); i++ {
		el := field.Index(i)
		if !el.CanFloat() {
			return fmt.Sprintf("value at index %d is not a number", i)
		}
		if f := el.Float(); math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Sprintf("value at index %d is not finite", i)
		}
	}
	return ""
}

// jsonName names fields by their `param` or `query` tag, else by their JSON
// name.
func jsonName(fld reflect.StructField) string {
	if p := fld.Tag.Get("param"); p != "" {
		return p
	}
	if q := strings.SplitN(fld.Tag.Get("query"), ",", 2)[0]; q != "" && q != "-" {
		return q
	}
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	switch name {
	case "-":
		return ""
	case "":
		return fld.Name
	default:
		return name
	}
}
