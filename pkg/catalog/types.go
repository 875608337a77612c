// Package catalog defines the read-only platform catalogs (cloud providers,
// resource types, stack types) and the identity resolver that translates
// between stable provider identifiers and their mutable tags.
package catalog

import (
	"github.com/google/uuid"
)

// CloudProvider is a catalog entry for a supported cloud.
// Identity is the ID; the Tag is a short mutable key the backend has
// historically used to address providers and may be renamed at any time.
type CloudProvider struct {
	ID          uuid.UUID `json:"id"`
	Tag         string    `json:"tag"`
	DisplayName string    `json:"display_name"`
}

// ResourceType is a catalog entry for a provisionable infrastructure
// resource (database, orchestrator, bucket, ...).
type ResourceType struct {
	ID          uuid.UUID `json:"id"`
	DisplayName string    `json:"display_name"`
	Category    string    `json:"category"`
}

// StackType describes a deployable application archetype and the resource
// type names its stacks require from a blueprint.
type StackType struct {
	Name                  string   `json:"name"`
	DisplayName           string   `json:"display_name"`
	RequiredResourceTypes []string `json:"required_resource_types,omitempty"`
}
