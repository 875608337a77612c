package form

import (
	"fmt"
	"strconv"

	"github.com/angryss/idpctl/pkg/schema"
)

// ValidationError represents a single advisory validation finding for a
// configuration value.
type ValidationError struct {
	Property string
	Message  string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Property, e.Message)
}

// ValidateConfiguration checks a configuration against its schema and
// returns all findings. This check is advisory on the client; the backend
// enforces the same rules at persistence time.
func ValidateConfiguration(schemas []schema.PropertySchema, cfg Configuration) []ValidationError {
	var errs []ValidationError

	known := make(map[string]schema.PropertySchema, len(schemas))
	for _, prop := range schemas {
		known[prop.PropertyName] = prop
	}

	// Every configuration key must correspond to a schema property.
	for key := range cfg {
		if _, ok := known[key]; !ok {
			errs = append(errs, ValidationError{
				Property: key,
				Message:  "not defined by the property schema",
			})
		}
	}

	for _, prop := range schemas {
		value, present := cfg[prop.PropertyName]

		if prop.Required && isEmptyValue(prop, value, present) {
			errs = append(errs, ValidationError{
				Property: prop.PropertyName,
				Message:  "value is required",
			})
			continue
		}
		if !present || value == nil {
			continue
		}

		switch prop.DataType {
		case schema.DataTypeNumber:
			errs = append(errs, validateNumber(prop, value)...)
		case schema.DataTypeBoolean:
			if _, ok := value.(bool); !ok {
				errs = append(errs, ValidationError{
					Property: prop.PropertyName,
					Message:  "value must be a boolean",
				})
			}
		case schema.DataTypeList:
			errs = append(errs, validateList(prop, value)...)
		}
	}

	return errs
}

func validateNumber(prop schema.PropertySchema, value interface{}) []ValidationError {
	f, ok := numericValue(value)
	if !ok {
		// Intermediate text like "3." never survives to submission.
		return []ValidationError{{
			Property: prop.PropertyName,
			Message:  "value is not a complete number",
		}}
	}

	var errs []ValidationError
	if rules := prop.ValidationRules; rules != nil {
		if rules.Min != nil && f < *rules.Min {
			errs = append(errs, ValidationError{
				Property: prop.PropertyName,
				Message:  fmt.Sprintf("value must be at least %s", strconv.FormatFloat(*rules.Min, 'f', -1, 64)),
			})
		}
		if rules.Max != nil && f > *rules.Max {
			errs = append(errs, ValidationError{
				Property: prop.PropertyName,
				Message:  fmt.Sprintf("value must be at most %s", strconv.FormatFloat(*rules.Max, 'f', -1, 64)),
			})
		}
	}
	return errs
}

func validateList(prop schema.PropertySchema, value interface{}) []ValidationError {
	if !hasAllowedValues(prop) {
		return nil
	}
	s, ok := value.(string)
	if !ok {
		return []ValidationError{{
			Property: prop.PropertyName,
			Message:  "value must be one of the allowed values",
		}}
	}
	for _, av := range prop.ValidationRules.AllowedValues {
		if av.Value == s {
			return nil
		}
	}
	return []ValidationError{{
		Property: prop.PropertyName,
		Message:  fmt.Sprintf("%q is not an allowed value", s),
	}}
}

func numericValue(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	}
	return 0, false
}

// isEmptyValue reports whether a required property is effectively unset.
// An explicit false satisfies a required boolean; nil does not.
func isEmptyValue(prop schema.PropertySchema, value interface{}, present bool) bool {
	if !present || value == nil {
		return true
	}
	if prop.DataType == schema.DataTypeString || prop.DataType == schema.DataTypeList {
		if s, ok := value.(string); ok && s == "" {
			return true
		}
	}
	return false
}
