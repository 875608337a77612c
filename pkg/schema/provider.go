package schema

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/angryss/idpctl/pkg/errors"
)

// Source fetches property schemas from the platform API.
type Source interface {
	GetPropertySchema(ctx context.Context, resourceTypeID, cloudProviderID uuid.UUID) ([]PropertySchema, error)
}

// Provider fetches property schemas for a changing (resource type, cloud
// provider) selection. It gives two guarantees on top of the raw Source:
//
//   - a fetch for a pair that is already in flight is joined, not duplicated;
//   - only the most recently issued fetch's result is delivered. A fetch that
//     resolves after a newer one was issued for a different pair returns
//     ErrCodeSuperseded instead of its (now stale) result, guarding against
//     out-of-order network completions overwriting newer selections.
//
// There is no cancellation token; superseding is handled by the sequence
// comparison at resolution time, not by aborting the earlier request.
// Results are not cached: each new selection triggers a fresh fetch.
type Provider struct {
	source Source

	mu         sync.Mutex
	lastIssued uint64
	inflight   map[pairKey]*call
}

type pairKey struct {
	resourceTypeID  uuid.UUID
	cloudProviderID uuid.UUID
}

type call struct {
	seq     uint64
	done    chan struct{}
	schemas []PropertySchema
	err     error
}

// NewProvider creates a schema provider backed by the given source.
func NewProvider(source Source) *Provider {
	return &Provider{
		source:   source,
		inflight: make(map[pairKey]*call),
	}
}

// Fetch retrieves the property schema for a (resource type, cloud provider)
// pair. Transport failures return ErrCodeSchemaFetch and are never retried
// here; the caller decides whether to retry. A result superseded by a newer
// selection returns ErrCodeSuperseded.
func (p *Provider) Fetch(ctx context.Context, resourceTypeID, cloudProviderID uuid.UUID) ([]PropertySchema, error) {
	key := pairKey{resourceTypeID, cloudProviderID}

	p.mu.Lock()
	p.lastIssued++
	seq := p.lastIssued

	if c, ok := p.inflight[key]; ok {
		// Re-selecting the pair already being fetched keeps that fetch
		// current rather than issuing a duplicate.
		c.seq = seq
		p.mu.Unlock()
		<-c.done
		return p.deliver(c, key)
	}

	c := &call{seq: seq, done: make(chan struct{})}
	p.inflight[key] = c
	p.mu.Unlock()

	schemas, err := p.source.GetPropertySchema(ctx, resourceTypeID, cloudProviderID)

	p.mu.Lock()
	delete(p.inflight, key)
	c.schemas = schemas
	c.err = err
	p.mu.Unlock()
	close(c.done)

	return p.deliver(c, key)
}

// deliver applies the latest-issued-wins check at resolution time.
func (p *Provider) deliver(c *call, key pairKey) ([]PropertySchema, error) {
	p.mu.Lock()
	latest := p.lastIssued
	seq := c.seq
	p.mu.Unlock()

	if seq != latest {
		return nil, errors.SupersededError(key.resourceTypeID.String(), key.cloudProviderID.String())
	}
	if c.err != nil {
		return nil, errors.SchemaFetchError(key.resourceTypeID.String(), key.cloudProviderID.String(), c.err)
	}
	return c.schemas, nil
}
