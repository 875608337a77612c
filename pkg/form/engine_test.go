package form

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angryss/idpctl/pkg/schema"
)

func prop(name string, dt schema.DataType) schema.PropertySchema {
	return schema.PropertySchema{
		ID:           uuid.New(),
		PropertyName: name,
		DisplayName:  name,
		DataType:     dt,
	}
}

func floatPtr(f float64) *float64 { return &f }

func TestRender_ControlKinds(t *testing.T) {
	schemas := []schema.PropertySchema{
		prop("name", schema.DataTypeString),
		prop("size", schema.DataTypeNumber),
		prop("public", schema.DataTypeBoolean),
		{
			ID:           uuid.New(),
			PropertyName: "tier",
			DisplayName:  "Tier",
			DataType:     schema.DataTypeList,
			ValidationRules: &schema.ValidationRules{
				AllowedValues: []schema.AllowedValue{
					{Value: "basic", Label: "Basic"},
					{Value: "premium", Label: "Premium"},
				},
			},
		},
		prop("tags", schema.DataTypeList),
	}

	e := NewEngine()
	controls := e.Render(schemas, Configuration{}, RenderOptions{})
	require.Len(t, controls, 5)

	kinds := map[string]ControlKind{}
	for _, c := range controls {
		kinds[c.Property] = c.Kind
	}
	assert.Equal(t, ControlText, kinds["name"])
	assert.Equal(t, ControlNumber, kinds["size"])
	assert.Equal(t, ControlCheckbox, kinds["public"])
	assert.Equal(t, ControlSelect, kinds["tier"])
	// LIST without allowed values renders as free text
	assert.Equal(t, ControlText, kinds["tags"])
}

func TestRender_DisplayOrder(t *testing.T) {
	a := prop("a", schema.DataTypeString)
	a.DisplayOrder = 2
	b := prop("b", schema.DataTypeString)
	b.DisplayOrder = 1

	controls := NewEngine().Render([]schema.PropertySchema{a, b}, Configuration{}, RenderOptions{})
	require.Len(t, controls, 2)
	assert.Equal(t, "b", controls[0].Property)
	assert.Equal(t, "a", controls[1].Property)
}

func TestRender_RequiredIndicator(t *testing.T) {
	p := prop("name", schema.DataTypeString)
	p.Required = true
	p.DisplayName = "Name"

	controls := NewEngine().Render([]schema.PropertySchema{p}, Configuration{}, RenderOptions{})
	require.Len(t, controls, 1)
	assert.True(t, controls[0].Required)
	assert.Equal(t, "Name *", controls[0].LabelText())
}

func TestRender_NumberHints(t *testing.T) {
	tests := []struct {
		name  string
		rules *schema.ValidationRules
		hint  string
	}{
		{"both bounds", &schema.ValidationRules{Min: floatPtr(1), Max: floatPtr(10)}, "(1–10)"},
		{"min only", &schema.ValidationRules{Min: floatPtr(2)}, "(min: 2)"},
		{"max only", &schema.ValidationRules{Max: floatPtr(64)}, "(max: 64)"},
		{"no bounds", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := prop("size", schema.DataTypeNumber)
			p.ValidationRules = tt.rules
			controls := NewEngine().Render([]schema.PropertySchema{p}, Configuration{}, RenderOptions{})
			require.Len(t, controls, 1)
			assert.Equal(t, tt.hint, controls[0].Hint)
		})
	}
}

func TestRender_BooleanTriState(t *testing.T) {
	withDefault := prop("public", schema.DataTypeBoolean)
	withDefault.DefaultValue = true

	e := NewEngine()

	// nil renders per the declared default
	controls := e.Render([]schema.PropertySchema{withDefault}, Configuration{}, RenderOptions{})
	assert.True(t, controls[0].Checked)

	// an explicit false wins over the default
	controls = e.Render([]schema.PropertySchema{withDefault}, Configuration{"public": false}, RenderOptions{})
	assert.False(t, controls[0].Checked)

	// no default: nil renders unchecked
	plain := prop("public", schema.DataTypeBoolean)
	controls = e.Render([]schema.PropertySchema{plain}, Configuration{}, RenderOptions{})
	assert.False(t, controls[0].Checked)
}

func TestRender_SelectOptions(t *testing.T) {
	p := schema.PropertySchema{
		ID:           uuid.New(),
		PropertyName: "tier",
		DisplayName:  "Tier",
		DataType:     schema.DataTypeList,
		ValidationRules: &schema.ValidationRules{
			AllowedValues: []schema.AllowedValue{
				{Value: "basic", Label: "Basic"},
				{Value: "premium", Label: "Premium"},
			},
		},
	}

	controls := NewEngine().Render([]schema.PropertySchema{p}, Configuration{"tier": "premium"}, RenderOptions{})
	require.Len(t, controls, 1)
	require.Len(t, controls[0].Options, 2)
	assert.Equal(t, "Basic", controls[0].Options[0].Label)
	assert.Equal(t, "basic", controls[0].Options[0].Value)
	assert.Equal(t, "premium", controls[0].Selected)
}

func TestRender_ErrorsAndDisabled(t *testing.T) {
	p := prop("name", schema.DataTypeString)

	controls := NewEngine().Render([]schema.PropertySchema{p}, Configuration{"name": "db"}, RenderOptions{
		Errors:   map[string]string{"name": "name is taken"},
		Disabled: true,
	})
	require.Len(t, controls, 1)
	assert.Equal(t, "name is taken", controls[0].Error)
	assert.True(t, controls[0].Disabled)
	// disabled controls still display the current value
	assert.Equal(t, "db", controls[0].Text)

	// absence of an error produces no message
	controls = NewEngine().Render([]schema.PropertySchema{p}, Configuration{}, RenderOptions{})
	assert.Empty(t, controls[0].Error)
}

func TestSeedDefaults(t *testing.T) {
	str := prop("name", schema.DataTypeString)
	num := prop("size", schema.DataTypeNumber)
	boolean := prop("public", schema.DataTypeBoolean)
	boolean.DefaultValue = true
	numWithDefault := prop("replicas", schema.DataTypeNumber)
	numWithDefault.DefaultValue = 3

	cfg := NewEngine().SeedDefaults([]schema.PropertySchema{str, num, boolean, numWithDefault})

	assert.Equal(t, "", cfg["name"])
	_, present := cfg["size"]
	assert.False(t, present, "number without default stays absent")
	assert.Equal(t, true, cfg["public"])
	assert.Equal(t, float64(3), cfg["replicas"])
}

func TestValidateConfiguration(t *testing.T) {
	size := prop("size", schema.DataTypeNumber)
	size.ValidationRules = &schema.ValidationRules{Min: floatPtr(1), Max: floatPtr(10)}
	name := prop("name", schema.DataTypeString)
	name.Required = true
	tier := schema.PropertySchema{
		ID:           uuid.New(),
		PropertyName: "tier",
		DisplayName:  "Tier",
		DataType:     schema.DataTypeList,
		ValidationRules: &schema.ValidationRules{
			AllowedValues: []schema.AllowedValue{{Value: "basic", Label: "Basic"}},
		},
	}
	schemas := []schema.PropertySchema{size, name, tier}

	t.Run("valid", func(t *testing.T) {
		errs := ValidateConfiguration(schemas, Configuration{
			"size": float64(5),
			"name": "db",
			"tier": "basic",
		})
		assert.Empty(t, errs)
	})

	t.Run("violations", func(t *testing.T) {
		errs := ValidateConfiguration(schemas, Configuration{
			"size":    float64(11),
			"tier":    "gold",
			"unknown": "x",
		})
		messages := map[string]string{}
		for _, e := range errs {
			messages[e.Property] = e.Message
		}
		assert.Contains(t, messages["size"], "at most 10")
		assert.Contains(t, messages["name"], "required")
		assert.Contains(t, messages["tier"], "not an allowed value")
		assert.Contains(t, messages["unknown"], "not defined")
	})

	t.Run("intermediate number text fails", func(t *testing.T) {
		errs := ValidateConfiguration([]schema.PropertySchema{size}, Configuration{"size": "3."})
		require.Len(t, errs, 1)
		assert.Contains(t, errs[0].Message, "not a complete number")
	})

	t.Run("explicit false satisfies required boolean", func(t *testing.T) {
		public := prop("public", schema.DataTypeBoolean)
		public.Required = true
		errs := ValidateConfiguration([]schema.PropertySchema{public}, Configuration{"public": false})
		assert.Empty(t, errs)
	})
}
