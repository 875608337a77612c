package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angryss/idpctl/pkg/schema"
)

func TestSetText_String(t *testing.T) {
	e := NewEngine()
	p := prop("name", schema.DataTypeString)

	cfg, ok := e.SetText(Configuration{}, p, "my-db")
	require.True(t, ok)
	assert.Equal(t, "my-db", cfg["name"])

	// empty string is a legal value distinct from absent
	cfg, ok = e.SetText(cfg, p, "")
	require.True(t, ok)
	v, present := cfg["name"]
	assert.True(t, present)
	assert.Equal(t, "", v)
}

func TestSetText_NumberKeystrokes(t *testing.T) {
	e := NewEngine()
	p := prop("size", schema.DataTypeNumber)

	// keystrokes "1", "2", "3" emit 1, 12, 123 in order
	cfg := Configuration{}
	expected := []float64{1, 12, 123}
	for i, ch := range "123" {
		var ok bool
		cfg, ok = e.Keystroke(cfg, p, ch)
		require.True(t, ok)
		assert.Equal(t, expected[i], cfg["size"])
	}

	// "a" is rejected and the value stays at 123
	next, ok := e.Keystroke(cfg, p, 'a')
	assert.False(t, ok)
	assert.Equal(t, float64(123), next["size"])
}

func TestSetText_NumberAlphabet(t *testing.T) {
	e := NewEngine()
	p := prop("size", schema.DataTypeNumber)

	tests := []struct {
		text     string
		accepted bool
		value    interface{}
	}{
		{"", true, nil},         // clearing emits null
		{"-", true, "-"},        // intermediate text emits itself
		{"3.", true, "3."},      // trailing dot is still in progress
		{"-.", true, "-."},      // still in progress
		{"3.5", true, 3.5},      // complete number emits the parsed value
		{"-42", true, float64(-42)},
		{".5", true, 0.5},
		{"3..", false, nil},     // second dot rejected
		{"3-", false, nil},      // minus only allowed leading
		{"12a", false, nil},     // letters rejected
		{"1 2", false, nil},     // whitespace rejected
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			cfg, ok := e.SetText(Configuration{}, p, tt.text)
			assert.Equal(t, tt.accepted, ok)
			if tt.accepted {
				assert.Equal(t, tt.value, cfg["size"])
			} else {
				_, present := cfg["size"]
				assert.False(t, present, "rejected input must not change the configuration")
			}
		})
	}
}

func TestNumberRoundTrip(t *testing.T) {
	e := NewEngine()
	p := prop("size", schema.DataTypeNumber)

	cfg, ok := e.SetText(Configuration{}, p, "42")
	require.True(t, ok)
	assert.Equal(t, "42", DisplayText(p, cfg["size"]))

	cfg, ok = e.SetText(cfg, p, "")
	require.True(t, ok)
	assert.Nil(t, cfg["size"])
	assert.Equal(t, "", DisplayText(p, cfg["size"]))
}

func TestSetChecked(t *testing.T) {
	e := NewEngine()
	p := prop("public", schema.DataTypeBoolean)
	p.DefaultValue = true

	cfg := e.SetChecked(Configuration{}, p, false)
	assert.Equal(t, false, cfg["public"])

	// the explicit value wins even when it equals the default
	cfg = e.SetChecked(cfg, p, true)
	assert.Equal(t, true, cfg["public"])
}

func TestSetOption(t *testing.T) {
	e := NewEngine()
	p := schema.PropertySchema{
		PropertyName: "tier",
		DisplayName:  "Tier",
		DataType:     schema.DataTypeList,
		ValidationRules: &schema.ValidationRules{
			AllowedValues: []schema.AllowedValue{{Value: "basic", Label: "Basic"}},
		},
	}

	cfg := e.SetOption(Configuration{}, p, "basic")
	assert.Equal(t, "basic", cfg["tier"])
}

func TestEditsNeverMutateInPlace(t *testing.T) {
	e := NewEngine()
	p := prop("name", schema.DataTypeString)

	original := Configuration{"name": "before"}
	edited, ok := e.SetText(original, p, "after")
	require.True(t, ok)

	assert.Equal(t, "before", original["name"], "input configuration must not be mutated")
	assert.Equal(t, "after", edited["name"])
}
