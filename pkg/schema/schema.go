package schema

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ariahq/aria/pkg/apperr"
)

// FieldType declares the native type a field is coerced to
type FieldType string

const (
	String FieldType = "string"
	Int    FieldType = "int"
	Float  FieldType = "float"
	Bool   FieldType = "bool"
)

// Field declares the shape of one payload field
type Field struct {
	Type     FieldType
	Required bool

	// Choices restricts a string field to an enumerated set
	Choices []string
}

// Schema maps field names to their declared shape
type Schema map[string]Field

// Validate checks payload against the schema and returns the normalized
// payload with every declared field coerced to its native type. On failure it
// returns a ValidationError naming every missing, mistyped, or out-of-range
// field, never just the first.
//
// Undeclared payload keys are dropped, so repositories only ever see
// declared, fully validated input.
func (s Schema) Validate(payload map[string]interface{}) (map[string]interface{}, error) {
	normalized := make(map[string]interface{}, len(s))
	fields := make(map[string]string)

	for name, field := range s {
		raw, present := payload[name]
		if !present || raw == nil || raw == "" {
			if field.Required {
				fields[name] = "required field is missing"
			}
			continue
		}

		value, err := coerce(raw, field.Type)
		if err != nil {
			fields[name] = err.Error()
			continue
		}

		if len(field.Choices) > 0 {
			str, _ := value.(string)
			if !contains(field.Choices, str) {
				fields[name] = fmt.Sprintf("must be one of: %s", strings.Join(field.Choices, ", "))
				continue
			}
		}

		normalized[name] = value
	}

	if len(fields) > 0 {
		return nil, &apperr.ValidationError{Fields: fields}
	}
	return normalized, nil
}

// Check appends an ad-hoc predicate to an existing validation result. When ok
// is false the field/message pair is added to err (allocating one if needed);
// otherwise err passes through unchanged.
func Check(err *apperr.ValidationError, ok bool, field, message string) *apperr.ValidationError {
	if ok {
		return err
	}
	if err == nil {
		err = &apperr.ValidationError{Fields: make(map[string]string)}
	}
	err.Fields[field] = message
	return err
}

// AsError converts the accumulating pointer into a plain error return,
// avoiding the typed-nil pitfall.
func AsError(err *apperr.ValidationError) error {
	if err == nil {
		return nil
	}
	return err
}

// coerce converts a raw payload value to the declared type. Form values
// arrive as strings, so numeric and boolean fields accept string encodings;
// JSON numbers arrive as float64, so Int accepts integral floats.
func coerce(raw interface{}, t FieldType) (interface{}, error) {
	switch t {
	case String:
		if str, ok := raw.(string); ok {
			return str, nil
		}
		return nil, fmt.Errorf("must be a string")
	case Int:
		switch v := raw.(type) {
		case int:
			return v, nil
		case int64:
			return int(v), nil
		case float64:
			if v != math.Trunc(v) {
				return nil, fmt.Errorf("must be an integer")
			}
			return int(v), nil
		case string:
			n, err := strconv.Atoi(v)
			if err != nil {
				return nil, fmt.Errorf("must be an integer")
			}
			return n, nil
		}
		return nil, fmt.Errorf("must be an integer")
	case Float:
		switch v := raw.(type) {
		case float64:
			return v, nil
		case int:
			return float64(v), nil
		case string:
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return nil, fmt.Errorf("must be a number")
			}
			return f, nil
		}
		return nil, fmt.Errorf("must be a number")
	case Bool:
		switch v := raw.(type) {
		case bool:
			return v, nil
		case string:
			b, err := strconv.ParseBool(v)
			if err != nil {
				return nil, fmt.Errorf("must be a boolean")
			}
			return b, nil
		}
		return nil, fmt.Errorf("must be a boolean")
	}
	return nil, fmt.Errorf("unknown field type %q", t)
}

func contains(choices []string, value string) bool {
	for _, choice := range choices {
		if choice == value {
			return true
		}
	}
	return false
}
