package form

import (
	"math"
	"strconv"
	"strings"

	"github.com/angryss/idpctl/pkg/schema"
)

// SetText applies a full replacement of a text-entry control's text and
// returns the resulting configuration. The second return reports whether the
// text was accepted; rejected input (an illegal number keystroke) leaves the
// configuration untouched. The input configuration is never mutated.
func (e *Engine) SetText(cfg Configuration, prop schema.PropertySchema, text string) (Configuration, bool) {
	switch prop.DataType {
	case schema.DataTypeNumber:
		if !legalNumberText(text) {
			return cfg, false
		}
		out := cfg.Clone()
		out[prop.PropertyName] = normalizeNumberText(text)
		return out, true

	case schema.DataTypeString, schema.DataTypeList:
		out := cfg.Clone()
		out[prop.PropertyName] = text
		return out, true
	}

	return cfg, false
}

// Keystroke appends a single character to a text-entry control, deriving the
// current text from the stored value. Illegal characters are rejected at the
// keystroke level so the displayed text never contains them.
func (e *Engine) Keystroke(cfg Configuration, prop schema.PropertySchema, ch rune) (Configuration, bool) {
	current := DisplayText(prop, cfg[prop.PropertyName])
	return e.SetText(cfg, prop, current+string(ch))
}

// SetChecked stores an explicit boolean. Once set, the value wins over any
// declared default, even when it equals the default.
func (e *Engine) SetChecked(cfg Configuration, prop schema.PropertySchema, checked bool) Configuration {
	out := cfg.Clone()
	out[prop.PropertyName] = checked
	return out
}

// SetOption stores the selected option's value for a select control.
func (e *Engine) SetOption(cfg Configuration, prop schema.PropertySchema, value string) Configuration {
	out := cfg.Clone()
	out[prop.PropertyName] = value
	return out
}

// DisplayText renders a stored value back into the control's text.
func DisplayText(prop schema.PropertySchema, value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case bool:
		return strconv.FormatBool(v)
	}
	return ""
}

// legalNumberText reports whether text stays within the numeric input
// alphabet: an optional leading '-', digits, and at most one '.'.
func legalNumberText(text string) bool {
	seenDot := false
	for i, ch := range text {
		switch {
		case ch == '-':
			if i != 0 {
				return false
			}
		case ch == '.':
			if seenDot {
				return false
			}
			seenDot = true
		case ch >= '0' && ch <= '9':
		default:
			return false
		}
	}
	return true
}

// normalizeNumberText converts legal number text to its emitted value:
// nil for an empty field, the parsed number once the text is a complete
// finite number, and the intermediate text itself otherwise (e.g. "-", "3.").
func normalizeNumberText(text string) interface{} {
	if text == "" {
		return nil
	}
	if !numberComplete(text) {
		return text
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return text
	}
	return f
}

// numberComplete reports whether legal number text forms a finished number.
// A trailing '.' or a bare '-' is still in progress.
func numberComplete(text string) bool {
	if strings.HasSuffix(text, ".") {
		return false
	}
	return strings.ContainsAny(text, "0123456789")
}
