package catalog

import (
	"sync"

	"github.com/google/uuid"

	"github.com/angryss/idpctl/pkg/errors"
)

// IdentityResolver maintains the bidirectional mapping between a cloud
// provider's stable identifier and its mutable tag. The rest of the client
// addresses providers by ID; the backend's persistence layer historically
// addresses them by tag. All translation is centralized here so exactly one
// component changes if the backend's addressing scheme changes.
//
// The resolver is shared across form instances within a session: read-many,
// write-rare. It performs no network calls itself; callers initialize it
// from the provider catalog and must consult Initialized before resolving.
type IdentityResolver struct {
	mu      sync.RWMutex
	idToTag map[uuid.UUID]string
	tagToID map[string]uuid.UUID
}

// NewIdentityResolver creates an empty, uninitialized resolver.
func NewIdentityResolver() *IdentityResolver {
	return &IdentityResolver{}
}

// Initialize builds the id<->tag maps from the provider catalog. It fully
// replaces any prior mappings; there is no merge.
func (r *IdentityResolver) Initialize(providers []CloudProvider) {
	idToTag := make(map[uuid.UUID]string, len(providers))
	tagToID := make(map[string]uuid.UUID, len(providers))
	for _, p := range providers {
		idToTag[p.ID] = p.Tag
		tagToID[p.Tag] = p.ID
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.idToTag = idToTag
	r.tagToID = tagToID
}

// Initialized reports whether Initialize has been called. Callers must not
// assume the resolver is ready before the catalog load completes.
func (r *IdentityResolver) Initialized() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.idToTag != nil
}

// ResolveID returns the stable identifier for a provider tag.
func (r *IdentityResolver) ResolveID(tag string) (uuid.UUID, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.tagToID[tag]
	if !ok {
		return uuid.Nil, errors.NotFoundError("cloud provider tag", tag)
	}
	return id, nil
}

// ResolveTag returns the mutable tag for a provider identifier.
func (r *IdentityResolver) ResolveTag(id uuid.UUID) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tag, ok := r.idToTag[id]
	if !ok {
		return "", errors.NotFoundError("cloud provider id", id.String())
	}
	return tag, nil
}

// Reset clears all mappings, returning the resolver to its uninitialized
// state. Tests use this between cases.
func (r *IdentityResolver) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.idToTag = nil
	r.tagToID = nil
}
