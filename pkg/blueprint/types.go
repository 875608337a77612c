// Package blueprint defines blueprint draft state and the orchestrator that
// edits it: resources are added, configured and removed against runtime
// fetched property schemas, provider-set changes run through cascade impact
// analysis, and nothing persists until an explicit submit.
package blueprint

import (
	"github.com/google/uuid"

	"github.com/angryss/idpctl/pkg/form"
)

// Resource is one shared infrastructure component declared inside a
// blueprint, configured for a specific cloud provider. A zero ID marks an
// unsaved draft resource. Resources are owned by their parent blueprint and
// are never persisted independently.
type Resource struct {
	ID              uuid.UUID          `json:"id,omitempty"`
	Name            string             `json:"name"`
	ResourceTypeID  uuid.UUID          `json:"resource_type_id"`
	CloudProviderID uuid.UUID          `json:"cloud_provider_id"`
	Configuration   form.Configuration `json:"configuration"`
}

// Blueprint is a named, reusable declaration of shared infrastructure
// resources plus the cloud providers it supports.
//
// Invariant: every resource's CloudProviderID is a member of
// SupportedCloudProviderIDs. The invariant may be transiently violated
// inside an edit session but is never submitted violated; violating it is
// precisely what triggers cascade impact analysis.
type Blueprint struct {
	ID                        uuid.UUID   `json:"id,omitempty"`
	Name                      string      `json:"name"`
	Description               string      `json:"description,omitempty"`
	SupportedCloudProviderIDs []uuid.UUID `json:"supported_cloud_provider_ids"`
	Resources                 []Resource  `json:"resources"`
}

// SupportsProvider reports whether the blueprint's supported set contains
// the given provider.
func (b *Blueprint) SupportsProvider(id uuid.UUID) bool {
	for _, p := range b.SupportedCloudProviderIDs {
		if p == id {
			return true
		}
	}
	return false
}

// Stack is a deployable application instance referencing exactly one
// blueprint for its shared infrastructure. The compatibility of the
// referenced blueprint with the stack's type is a point-in-time check at
// creation or migration, not a continuously enforced invariant.
type Stack struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	StackType   string    `json:"stack_type"`
	CloudName   string    `json:"cloud_name,omitempty"`
	BlueprintID uuid.UUID `json:"blueprint_id"`
}

// Payload is the persistable shape produced by a submit. It carries
// provider identifiers, not tags; translation to tags, where the backend
// requires it, happens inside the persistence collaborator.
type Payload struct {
	Name                      string            `json:"name"`
	Description               string            `json:"description,omitempty"`
	SupportedCloudProviderIDs []uuid.UUID       `json:"supported_cloud_provider_ids"`
	Resources                 []ResourcePayload `json:"resources"`
}

// ResourcePayload is one resource inside a submitted payload.
type ResourcePayload struct {
	Name            string             `json:"name"`
	ResourceTypeID  uuid.UUID          `json:"resource_type_id"`
	CloudProviderID uuid.UUID          `json:"cloud_provider_id"`
	Configuration   form.Configuration `json:"configuration"`
}
