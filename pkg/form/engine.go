// Package form renders property schemas into form control view-models and
// normalizes user input back into configuration values. It is UI-toolkit
// agnostic: a Control describes what a screen should show, and the engine
// produces a new configuration map on every edit so callers can diff.
package form

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/angryss/idpctl/pkg/schema"
)

// Configuration maps property names to their current values. Values are
// strings, float64s, bools, or nil depending on the property's data type and
// input progress. The engine never mutates a Configuration in place.
type Configuration map[string]interface{}

// Clone returns a shallow copy of the configuration.
func (c Configuration) Clone() Configuration {
	out := make(Configuration, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

// ControlKind identifies the input control rendered for a property.
type ControlKind string

const (
	ControlText     ControlKind = "text"
	ControlNumber   ControlKind = "number"
	ControlCheckbox ControlKind = "checkbox"
	ControlSelect   ControlKind = "select"
)

// Option is one selectable entry of a select control.
type Option struct {
	Value string
	Label string
}

// Control is the view-model for a single property input.
type Control struct {
	Property    string
	Label       string
	Kind        ControlKind
	Required    bool
	Disabled    bool
	Description string

	// Hint carries the formatted min/max bounds for number controls.
	Hint string

	// Text is the display text for text and number controls.
	Text string

	// Checked is the collapsed checked-state for checkbox controls.
	Checked bool

	// Options and Selected apply to select controls.
	Options  []Option
	Selected string

	// Error is the caller-supplied validation message. An empty string
	// means no error element is rendered at all, not an empty one.
	Error string
}

// LabelText returns the label with the required indicator applied.
func (c Control) LabelText() string {
	if c.Required {
		return c.Label + " *"
	}
	return c.Label
}

// RenderOptions adjusts how controls are produced.
type RenderOptions struct {
	// Errors maps property names to validation messages to display.
	Errors map[string]string

	// Disabled renders every control read-only while still showing values.
	Disabled bool
}

// Engine renders schemas into controls and applies edits.
type Engine struct{}

// NewEngine creates a form engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Render produces one control per schema entry, ordered by display order.
func (e *Engine) Render(schemas []schema.PropertySchema, cfg Configuration, opts RenderOptions) []Control {
	ordered := make([]schema.PropertySchema, len(schemas))
	copy(ordered, schemas)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].DisplayOrder < ordered[j].DisplayOrder
	})

	controls := make([]Control, 0, len(ordered))
	for _, prop := range ordered {
		c := Control{
			Property:    prop.PropertyName,
			Label:       prop.DisplayName,
			Required:    prop.Required,
			Disabled:    opts.Disabled,
			Description: prop.Description,
			Error:       opts.Errors[prop.PropertyName],
		}

		value := cfg[prop.PropertyName]

		switch prop.DataType {
		case schema.DataTypeString:
			c.Kind = ControlText
			c.Text = stringText(value)

		case schema.DataTypeNumber:
			c.Kind = ControlNumber
			c.Text = DisplayText(prop, value)
			c.Hint = numberHint(prop.ValidationRules)

		case schema.DataTypeBoolean:
			c.Kind = ControlCheckbox
			c.Checked = checkedState(prop, value)

		case schema.DataTypeList:
			if hasAllowedValues(prop) {
				c.Kind = ControlSelect
				for _, av := range prop.ValidationRules.AllowedValues {
					c.Options = append(c.Options, Option{Value: av.Value, Label: av.Label})
				}
				c.Selected = stringText(value)
			} else {
				// Free text holding a comma-separated representation.
				// Splitting into an array is a backend concern.
				c.Kind = ControlText
				c.Text = stringText(value)
			}
		}

		controls = append(controls, c)
	}

	return controls
}

// SeedDefaults builds the initial configuration for a freshly added
// resource. A declared default wins; otherwise STRING and LIST properties
// start at the empty string and NUMBER/BOOLEAN stay absent so the null and
// tri-state semantics are preserved.
func (e *Engine) SeedDefaults(schemas []schema.PropertySchema) Configuration {
	cfg := make(Configuration, len(schemas))
	for _, prop := range schemas {
		if prop.DefaultValue != nil {
			cfg[prop.PropertyName] = coerceDefault(prop, prop.DefaultValue)
			continue
		}
		switch prop.DataType {
		case schema.DataTypeString, schema.DataTypeList:
			cfg[prop.PropertyName] = ""
		}
	}
	return cfg
}

// checkedState collapses the tri-state boolean value for rendering.
// nil renders per the declared default when one exists; a provided value
// always wins once set, even if it equals the default.
func checkedState(prop schema.PropertySchema, value interface{}) bool {
	if value == nil {
		if b, ok := prop.DefaultValue.(bool); ok {
			return b
		}
		return false
	}
	b, _ := value.(bool)
	return b
}

// numberHint formats the bounds hint for a number control.
func numberHint(rules *schema.ValidationRules) string {
	if rules == nil {
		return ""
	}
	switch {
	case rules.Min != nil && rules.Max != nil:
		return fmt.Sprintf("(%s–%s)", formatNumber(*rules.Min), formatNumber(*rules.Max))
	case rules.Min != nil:
		return fmt.Sprintf("(min: %s)", formatNumber(*rules.Min))
	case rules.Max != nil:
		return fmt.Sprintf("(max: %s)", formatNumber(*rules.Max))
	}
	return ""
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func stringText(value interface{}) string {
	if value == nil {
		return ""
	}
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", value)
}

func hasAllowedValues(prop schema.PropertySchema) bool {
	return prop.ValidationRules != nil && len(prop.ValidationRules.AllowedValues) > 0
}

func coerceDefault(prop schema.PropertySchema, def interface{}) interface{} {
	switch prop.DataType {
	case schema.DataTypeNumber:
		switch v := def.(type) {
		case float64:
			return v
		case int:
			return float64(v)
		case string:
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				return f
			}
		}
	case schema.DataTypeBoolean:
		if b, ok := def.(bool); ok {
			return b
		}
	case schema.DataTypeString, schema.DataTypeList:
		if s, ok := def.(string); ok {
			return s
		}
	}
	return def
}
