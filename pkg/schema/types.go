// Package schema defines the per-(resource type, cloud provider) property
// schemas that drive resource configuration forms, and the provider that
// fetches them from the platform API.
package schema

import (
	"github.com/google/uuid"
)

// DataType is the semantic type of a configurable property.
type DataType string

const (
	DataTypeString  DataType = "STRING"
	DataTypeNumber  DataType = "NUMBER"
	DataTypeBoolean DataType = "BOOLEAN"
	DataTypeList    DataType = "LIST"
)

// AllowedValue is one selectable option for a LIST property. The stored
// value is Value; Label is what a form displays.
type AllowedValue struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// ValidationRules constrains a property's values.
type ValidationRules struct {
	Min           *float64       `json:"min,omitempty"`
	Max           *float64       `json:"max,omitempty"`
	AllowedValues []AllowedValue `json:"allowed_values,omitempty"`
}

// PropertySchema describes one configurable property for a specific
// (resource type, cloud provider) pair. Schemas are immutable once fetched
// for a given pair; changing either dimension requires a fresh fetch.
type PropertySchema struct {
	ID              uuid.UUID        `json:"id"`
	PropertyName    string           `json:"property_name"`
	DisplayName     string           `json:"display_name"`
	Description     string           `json:"description,omitempty"`
	DataType        DataType         `json:"data_type"`
	Required        bool             `json:"required"`
	DefaultValue    interface{}      `json:"default_value,omitempty"`
	ValidationRules *ValidationRules `json:"validation_rules,omitempty"`
	DisplayOrder    int              `json:"display_order,omitempty"`
}
