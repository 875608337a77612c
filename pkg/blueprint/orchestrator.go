package blueprint

import (
	"context"
	"strconv"

	"github.com/google/uuid"

	"github.com/angryss/idpctl/pkg/cascade"
	"github.com/angryss/idpctl/pkg/catalog"
	"github.com/angryss/idpctl/pkg/errors"
	"github.com/angryss/idpctl/pkg/form"
	"github.com/angryss/idpctl/pkg/schema"
)

// SchemaFetcher retrieves the property schema for a (resource type, cloud
// provider) pair. *schema.Provider satisfies it.
type SchemaFetcher interface {
	Fetch(ctx context.Context, resourceTypeID, cloudProviderID uuid.UUID) ([]schema.PropertySchema, error)
}

// Persister saves blueprints through the platform API.
type Persister interface {
	CreateBlueprint(ctx context.Context, payload Payload) (*Blueprint, error)
	UpdateBlueprint(ctx context.Context, id uuid.UUID, payload Payload) (*Blueprint, error)
}

// ConfirmPrompt is what a confirmation dialog presents before a destructive
// provider removal: a title and the itemized resources that would be lost.
type ConfirmPrompt struct {
	Title    string
	Affected []cascade.AffectedResource
}

// Confirmer presents a confirmation prompt and returns the user's decision.
type Confirmer interface {
	Confirm(ctx context.Context, prompt ConfirmPrompt) (bool, error)
}

// Options configures an orchestrator.
type Options struct {
	// Schemas fetches property schemas on resource add and provider change.
	Schemas SchemaFetcher

	// Persister saves the draft on submit.
	Persister Persister

	// Confirmer resolves cascade confirmations.
	Confirmer Confirmer

	// Providers is the cloud provider catalog, used to resolve display
	// names for prompts and to reject unknown provider ids.
	Providers []catalog.CloudProvider

	// Existing seeds the draft for an edit session. Nil starts a blank
	// create session.
	Existing *Blueprint
}

// Orchestrator owns the editable draft of one blueprint. All operations are
// client-local until Submit; cancelling an edit session simply discards the
// orchestrator. Operations are not safe for concurrent use; callers
// serialize them the way a UI event loop does.
type Orchestrator struct {
	draft         Blueprint
	schemas       SchemaFetcher
	persister     Persister
	confirmer     Confirmer
	analyzer      *cascade.Analyzer
	engine        *form.Engine
	providerNames map[uuid.UUID]string
}

// NewOrchestrator creates an orchestrator over a new or existing blueprint.
func NewOrchestrator(opts Options) *Orchestrator {
	names := make(map[uuid.UUID]string, len(opts.Providers))
	for _, p := range opts.Providers {
		names[p.ID] = p.DisplayName
	}

	o := &Orchestrator{
		schemas:       opts.Schemas,
		persister:     opts.Persister,
		confirmer:     opts.Confirmer,
		analyzer:      cascade.NewAnalyzer(),
		engine:        form.NewEngine(),
		providerNames: names,
	}
	if opts.Existing != nil {
		o.draft = *opts.Existing
		o.draft.SupportedCloudProviderIDs = append([]uuid.UUID(nil), opts.Existing.SupportedCloudProviderIDs...)
		o.draft.Resources = append([]Resource(nil), opts.Existing.Resources...)
	}
	return o
}

// Draft returns a copy of the current draft state.
func (o *Orchestrator) Draft() Blueprint {
	d := o.draft
	d.SupportedCloudProviderIDs = append([]uuid.UUID(nil), o.draft.SupportedCloudProviderIDs...)
	d.Resources = append([]Resource(nil), o.draft.Resources...)
	return d
}

// SetName updates the draft name.
func (o *Orchestrator) SetName(name string) {
	o.draft.Name = name
}

// SetDescription updates the draft description.
func (o *Orchestrator) SetDescription(description string) {
	o.draft.Description = description
}

// ProposeCloudProviderChange replaces the supported provider set, running
// cascade impact analysis first. When the change would orphan resources, the
// confirmer is consulted; on confirmation the provider set and the orphan
// removal commit together, on rejection the whole proposal is void and the
// draft is untouched. The returned outcome reports which path was taken.
func (o *Orchestrator) ProposeCloudProviderChange(ctx context.Context, newSet []uuid.UUID) (cascade.State, error) {
	for _, id := range newSet {
		if _, ok := o.providerNames[id]; !ok {
			return "", errors.NotFoundError("cloud provider id", id.String())
		}
	}

	resources := make([]cascade.Resource, len(o.draft.Resources))
	for i, r := range o.draft.Resources {
		resources[i] = cascade.Resource{Name: r.Name, CloudProviderID: r.CloudProviderID}
	}

	outcome, err := o.analyzer.Propose(o.draft.SupportedCloudProviderIDs, newSet, resources, func(id uuid.UUID) string {
		return o.providerNames[id]
	})
	if err != nil {
		return "", err
	}

	if outcome.State == cascade.StateApplied {
		o.applyCommit(outcome.Commit)
		return cascade.StateApplied, nil
	}

	confirmed, err := o.confirmer.Confirm(ctx, ConfirmPrompt{
		Title:    "Removing cloud providers will delete dependent resources",
		Affected: outcome.Affected,
	})
	if err != nil {
		// Treat a failed prompt as a rejection; never drop resources
		// without an explicit confirmation.
		_ = o.analyzer.Cancel()
		return cascade.StateCancelled, err
	}
	if !confirmed {
		if err := o.analyzer.Cancel(); err != nil {
			return "", err
		}
		return cascade.StateCancelled, nil
	}

	commit, err := o.analyzer.Confirm()
	if err != nil {
		return "", err
	}
	o.applyCommit(commit)
	return cascade.StateApplied, nil
}

// applyCommit installs a cascade commit: the provider set and the surviving
// resource list change together, with no intermediate state in between.
func (o *Orchestrator) applyCommit(commit *cascade.Commit) {
	kept := make([]Resource, 0, len(commit.Kept))
	for _, i := range commit.Kept {
		kept = append(kept, o.draft.Resources[i])
	}
	o.draft.SupportedCloudProviderIDs = append([]uuid.UUID(nil), commit.Providers...)
	o.draft.Resources = kept
}

// AddResource appends a draft resource for the given type and provider,
// fetching its property schema and seeding the configuration with
// type-appropriate defaults. The returned schema lets the caller render the
// configuration form. A fetch failure leaves the draft unchanged.
func (o *Orchestrator) AddResource(ctx context.Context, name string, resourceTypeID, cloudProviderID uuid.UUID) ([]schema.PropertySchema, error) {
	if !o.draft.SupportsProvider(cloudProviderID) {
		return nil, errors.ValidationError("resource cloud provider is not in the supported set", []string{
			"cloud provider must be one of the blueprint's supported cloud providers",
		})
	}

	schemas, err := o.schemas.Fetch(ctx, resourceTypeID, cloudProviderID)
	if err != nil {
		return nil, err
	}

	o.draft.Resources = append(o.draft.Resources, Resource{
		Name:            name,
		ResourceTypeID:  resourceTypeID,
		CloudProviderID: cloudProviderID,
		Configuration:   o.engine.SeedDefaults(schemas),
	})
	return schemas, nil
}

// UpdateResourceConfiguration replaces a resource's configuration with one
// produced by the form engine.
func (o *Orchestrator) UpdateResourceConfiguration(index int, cfg form.Configuration) error {
	if index < 0 || index >= len(o.draft.Resources) {
		return errors.NotFoundError("resource index", indexKey(index))
	}
	o.draft.Resources[index].Configuration = cfg
	return nil
}

// ChangeResourceCloudProvider moves a resource to a different provider.
// Prior configuration values are cloud-specific, so the configuration is
// reset to empty and a fresh schema is fetched for the new pair. A stale
// (superseded) fetch result is reported as such; the draft keeps the reset
// configuration either way.
func (o *Orchestrator) ChangeResourceCloudProvider(ctx context.Context, index int, newCloudProviderID uuid.UUID) ([]schema.PropertySchema, error) {
	if index < 0 || index >= len(o.draft.Resources) {
		return nil, errors.NotFoundError("resource index", indexKey(index))
	}
	if _, ok := o.providerNames[newCloudProviderID]; !ok {
		return nil, errors.NotFoundError("cloud provider id", newCloudProviderID.String())
	}

	r := &o.draft.Resources[index]
	r.CloudProviderID = newCloudProviderID
	r.Configuration = form.Configuration{}

	return o.schemas.Fetch(ctx, r.ResourceTypeID, newCloudProviderID)
}

// RemoveResource deletes a draft resource.
func (o *Orchestrator) RemoveResource(index int) error {
	if index < 0 || index >= len(o.draft.Resources) {
		return errors.NotFoundError("resource index", indexKey(index))
	}
	o.draft.Resources = append(o.draft.Resources[:index], o.draft.Resources[index+1:]...)
	return nil
}

// Submit validates the draft invariants locally, then persists through the
// platform API. Local validation failures enumerate every violated rule and
// make no network call. A remote failure leaves the draft unchanged so the
// user can amend and resubmit without re-entering data.
func (o *Orchestrator) Submit(ctx context.Context) (*Blueprint, error) {
	var violations []string
	if o.draft.Name == "" {
		violations = append(violations, "blueprint name is required")
	}
	if len(o.draft.SupportedCloudProviderIDs) == 0 {
		violations = append(violations, "no cloud provider selected")
	}
	for _, r := range o.draft.Resources {
		if !o.draft.SupportsProvider(r.CloudProviderID) {
			violations = append(violations, "resource "+r.Name+" uses a cloud provider outside the supported set")
		}
	}
	if len(violations) > 0 {
		return nil, errors.ValidationError("blueprint draft is invalid", violations)
	}

	payload := o.buildPayload()

	var saved *Blueprint
	var err error
	if o.draft.ID == uuid.Nil {
		saved, err = o.persister.CreateBlueprint(ctx, payload)
	} else {
		saved, err = o.persister.UpdateBlueprint(ctx, o.draft.ID, payload)
	}
	if err != nil {
		return nil, err
	}

	o.draft = *saved
	return saved, nil
}

func (o *Orchestrator) buildPayload() Payload {
	resources := make([]ResourcePayload, len(o.draft.Resources))
	for i, r := range o.draft.Resources {
		resources[i] = ResourcePayload{
			Name:            r.Name,
			ResourceTypeID:  r.ResourceTypeID,
			CloudProviderID: r.CloudProviderID,
			Configuration:   r.Configuration,
		}
	}
	return Payload{
		Name:                      o.draft.Name,
		Description:               o.draft.Description,
		SupportedCloudProviderIDs: append([]uuid.UUID(nil), o.draft.SupportedCloudProviderIDs...),
		Resources:                 resources,
	}
}

func indexKey(index int) string {
	return strconv.Itoa(index)
}
