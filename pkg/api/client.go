// Package api implements the platform API client the console core talks
// to: catalog listings, property schema lookups, and blueprint/stack
// persistence. Calls are single-shot with no implicit retry; failures are
// returned to the caller, which decides whether to retry.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/angryss/idpctl/pkg/blueprint"
	"github.com/angryss/idpctl/pkg/catalog"
	"github.com/angryss/idpctl/pkg/errors"
	"github.com/angryss/idpctl/pkg/form"
	"github.com/angryss/idpctl/pkg/schema"
)

// Client talks to the platform API. It satisfies schema.Source and
// blueprint.Persister.
//
// The backend's persistence layer addresses cloud providers by tag, so the
// write path translates the id-addressed payload through the identity
// resolver before it leaves the client. Read responses carry full provider
// objects and need no translation.
type Client struct {
	endpoint string
	apiKey   string
	resolver *catalog.IdentityResolver
	client   *http.Client
}

// NewClient creates a client for the given base URL (e.g.
// "https://idp.internal/api/v1"). The resolver translates provider
// identifiers to tags on writes.
func NewClient(endpoint, apiKey string, resolver *catalog.IdentityResolver) (*Client, error) {
	endpoint = strings.TrimRight(endpoint, "/")
	if endpoint == "" {
		return nil, fmt.Errorf("api endpoint must not be empty")
	}
	return &Client{
		endpoint: endpoint,
		apiKey:   apiKey,
		resolver: resolver,
		client:   &http.Client{Timeout: 30 * time.Second},
	}, nil
}

// ---------------------------------------------------------------------------
// Catalogs
// ---------------------------------------------------------------------------

// ListCloudProviders returns the cloud provider catalog.
func (c *Client) ListCloudProviders(ctx context.Context) ([]catalog.CloudProvider, error) {
	var providers []catalog.CloudProvider
	if err := c.do(ctx, http.MethodGet, "/cloud-providers", nil, nil, &providers); err != nil {
		return nil, err
	}
	return providers, nil
}

// ListResourceTypes returns the resource type catalog.
func (c *Client) ListResourceTypes(ctx context.Context) ([]catalog.ResourceType, error) {
	var types []catalog.ResourceType
	if err := c.do(ctx, http.MethodGet, "/resource-types", nil, nil, &types); err != nil {
		return nil, err
	}
	return types, nil
}

// ListStackTypes returns the stack type catalog, including each type's
// required resource type names.
func (c *Client) ListStackTypes(ctx context.Context) ([]catalog.StackType, error) {
	var types []catalog.StackType
	if err := c.do(ctx, http.MethodGet, "/stack-types", nil, nil, &types); err != nil {
		return nil, err
	}
	return types, nil
}

// GetPropertySchema fetches the property schema for a (resource type,
// cloud provider) pair.
func (c *Client) GetPropertySchema(ctx context.Context, resourceTypeID, cloudProviderID uuid.UUID) ([]schema.PropertySchema, error) {
	query := url.Values{}
	query.Set("resource_type_id", resourceTypeID.String())
	query.Set("cloud_provider_id", cloudProviderID.String())

	var schemas []schema.PropertySchema
	if err := c.do(ctx, http.MethodGet, "/property-schemas", query, nil, &schemas); err != nil {
		return nil, err
	}
	return schemas, nil
}

// ---------------------------------------------------------------------------
// Blueprints
// ---------------------------------------------------------------------------

// ListBlueprints returns all blueprints in listing order.
func (c *Client) ListBlueprints(ctx context.Context) ([]blueprint.Blueprint, error) {
	var dtos []blueprintDTO
	if err := c.do(ctx, http.MethodGet, "/blueprints", nil, nil, &dtos); err != nil {
		return nil, err
	}

	blueprints := make([]blueprint.Blueprint, len(dtos))
	for i, d := range dtos {
		blueprints[i] = d.toModel()
	}
	return blueprints, nil
}

// GetBlueprint fetches one blueprint by id or name.
func (c *Client) GetBlueprint(ctx context.Context, identifier string) (*blueprint.Blueprint, error) {
	path := "/blueprints/" + url.PathEscape(identifier)
	var query url.Values
	if _, err := uuid.Parse(identifier); err != nil {
		path = "/blueprints"
		query = url.Values{}
		query.Set("name", identifier)
	}

	var dto blueprintDTO
	if err := c.do(ctx, http.MethodGet, path, query, nil, &dto); err != nil {
		return nil, err
	}
	bp := dto.toModel()
	return &bp, nil
}

// CreateBlueprint persists a new blueprint.
func (c *Client) CreateBlueprint(ctx context.Context, payload blueprint.Payload) (*blueprint.Blueprint, error) {
	wire, err := c.toWire(payload)
	if err != nil {
		return nil, err
	}

	var dto blueprintDTO
	if err := c.do(ctx, http.MethodPost, "/blueprints", nil, wire, &dto); err != nil {
		return nil, err
	}
	bp := dto.toModel()
	return &bp, nil
}

// UpdateBlueprint persists changes to an existing blueprint.
func (c *Client) UpdateBlueprint(ctx context.Context, id uuid.UUID, payload blueprint.Payload) (*blueprint.Blueprint, error) {
	wire, err := c.toWire(payload)
	if err != nil {
		return nil, err
	}

	var dto blueprintDTO
	if err := c.do(ctx, http.MethodPut, "/blueprints/"+id.String(), nil, wire, &dto); err != nil {
		return nil, err
	}
	bp := dto.toModel()
	return &bp, nil
}

// ---------------------------------------------------------------------------
// Stacks
// ---------------------------------------------------------------------------

// ListStacks returns all stacks.
func (c *Client) ListStacks(ctx context.Context) ([]blueprint.Stack, error) {
	var dtos []stackDTO
	if err := c.do(ctx, http.MethodGet, "/stacks", nil, nil, &dtos); err != nil {
		return nil, err
	}

	stacks := make([]blueprint.Stack, len(dtos))
	for i, d := range dtos {
		stacks[i] = d.toModel()
	}
	return stacks, nil
}

// GetStack fetches one stack by id or name.
func (c *Client) GetStack(ctx context.Context, identifier string) (*blueprint.Stack, error) {
	path := "/stacks/" + url.PathEscape(identifier)
	var query url.Values
	if _, err := uuid.Parse(identifier); err != nil {
		path = "/stacks"
		query = url.Values{}
		query.Set("name", identifier)
	}

	var dto stackDTO
	if err := c.do(ctx, http.MethodGet, path, query, nil, &dto); err != nil {
		return nil, err
	}
	s := dto.toModel()
	return &s, nil
}

// MigrateStack re-points a stack at a different blueprint. The server
// re-validates compatibility; the client-side check is advisory only.
func (c *Client) MigrateStack(ctx context.Context, stackID, blueprintID uuid.UUID) (*blueprint.Stack, error) {
	body := map[string]string{"blueprint_id": blueprintID.String()}

	var dto stackDTO
	if err := c.do(ctx, http.MethodPost, "/stacks/"+stackID.String()+"/migrate", nil, body, &dto); err != nil {
		return nil, err
	}
	s := dto.toModel()
	return &s, nil
}

// ---------------------------------------------------------------------------
// Wire shapes
// ---------------------------------------------------------------------------

// blueprintWire is the write shape: providers addressed by tag, the way the
// backend's persistence layer expects them.
type blueprintWire struct {
	Name           string         `json:"name"`
	Description    string         `json:"description,omitempty"`
	CloudProviders []string       `json:"cloud_providers"`
	Resources      []resourceWire `json:"resources"`
}

type resourceWire struct {
	Name           string                 `json:"name"`
	ResourceTypeID uuid.UUID              `json:"resource_type_id"`
	CloudProvider  string                 `json:"cloud_provider"`
	Configuration  map[string]interface{} `json:"configuration"`
}

func (c *Client) toWire(payload blueprint.Payload) (*blueprintWire, error) {
	wire := &blueprintWire{
		Name:           payload.Name,
		Description:    payload.Description,
		CloudProviders: make([]string, 0, len(payload.SupportedCloudProviderIDs)),
		Resources:      make([]resourceWire, 0, len(payload.Resources)),
	}

	for _, id := range payload.SupportedCloudProviderIDs {
		tag, err := c.resolver.ResolveTag(id)
		if err != nil {
			return nil, err
		}
		wire.CloudProviders = append(wire.CloudProviders, tag)
	}

	for _, r := range payload.Resources {
		tag, err := c.resolver.ResolveTag(r.CloudProviderID)
		if err != nil {
			return nil, err
		}
		wire.Resources = append(wire.Resources, resourceWire{
			Name:           r.Name,
			ResourceTypeID: r.ResourceTypeID,
			CloudProvider:  tag,
			Configuration:  r.Configuration,
		})
	}

	return wire, nil
}

// blueprintDTO is the read shape: responses embed full provider and
// resource type objects.
type blueprintDTO struct {
	ID                      uuid.UUID               `json:"id"`
	Name                    string                  `json:"name"`
	Description             string                  `json:"description,omitempty"`
	SupportedCloudProviders []catalog.CloudProvider `json:"supported_cloud_providers"`
	Resources               []blueprintResourceDTO  `json:"resources"`
}

type blueprintResourceDTO struct {
	ID            uuid.UUID              `json:"id"`
	Name          string                 `json:"name"`
	ResourceType  catalog.ResourceType   `json:"resource_type"`
	CloudProvider catalog.CloudProvider  `json:"cloud_provider"`
	Configuration map[string]interface{} `json:"configuration"`
}

func (d blueprintDTO) toModel() blueprint.Blueprint {
	bp := blueprint.Blueprint{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
	}
	for _, p := range d.SupportedCloudProviders {
		bp.SupportedCloudProviderIDs = append(bp.SupportedCloudProviderIDs, p.ID)
	}
	for _, r := range d.Resources {
		bp.Resources = append(bp.Resources, blueprint.Resource{
			ID:              r.ID,
			Name:            r.Name,
			ResourceTypeID:  r.ResourceType.ID,
			CloudProviderID: r.CloudProvider.ID,
			Configuration:   form.Configuration(r.Configuration),
		})
	}
	return bp
}

type stackDTO struct {
	ID          uuid.UUID     `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	CloudName   string        `json:"cloud_name,omitempty"`
	StackType   string        `json:"stack_type"`
	Blueprint   *blueprintDTO `json:"blueprint,omitempty"`
}

func (d stackDTO) toModel() blueprint.Stack {
	s := blueprint.Stack{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		CloudName:   d.CloudName,
		StackType:   d.StackType,
	}
	if d.Blueprint != nil {
		s.BlueprintID = d.Blueprint.ID
	}
	return s
}

// ---------------------------------------------------------------------------
// Transport
// ---------------------------------------------------------------------------

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	reqURL := c.endpoint + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(errors.ErrCodeRemote, "failed to encode request body", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reader)
	if err != nil {
		return errors.Wrap(errors.ErrCodeRemote, "failed to create request", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return errors.RemoteError(operation(method, path), 0, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return errors.RemoteError(operation(method, path), resp.StatusCode,
			fmt.Errorf("invalid or missing API key"))
	case resp.StatusCode == http.StatusNotFound:
		return errors.NotFoundError("resource", path)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		msg, _ := io.ReadAll(resp.Body)
		return errors.RemoteError(operation(method, path), resp.StatusCode,
			fmt.Errorf("%s", strings.TrimSpace(string(msg))))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrap(errors.ErrCodeRemote, "failed to decode response", err)
	}
	return nil
}

func operation(method, path string) string {
	return method + " " + path
}
