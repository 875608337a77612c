// Package cascade analyzes the downstream impact of removing supported
// cloud providers from a blueprint. Removing a provider orphans every
// resource configured for it, so the analyzer withholds the mutation until
// the caller confirms the itemized loss. It never prompts when there is
// nothing to lose.
package cascade

import (
	"github.com/google/uuid"

	"github.com/angryss/idpctl/pkg/errors"
)

// State is the analyzer's position in the confirmation flow.
type State string

const (
	StateIdle                State = "idle"
	StatePendingConfirmation State = "pending_confirmation"
	StateApplied             State = "applied"
	StateCancelled           State = "cancelled"
)

// Resource is the slice of a blueprint resource the analyzer needs.
type Resource struct {
	Name            string
	CloudProviderID uuid.UUID
}

// AffectedResource identifies one resource that a proposed removal would
// orphan, shaped for display in a confirmation prompt.
type AffectedResource struct {
	Name                     string
	CloudProviderDisplayName string
}

// Commit is the atomic result of an applied proposal: the committed
// provider set and the indexes (into the proposed resource list) of the
// resources that survive. Both are produced together so the caller never
// observes reduced providers with orphans still present, or the reverse.
type Commit struct {
	Providers []uuid.UUID
	Kept      []int
}

// Outcome reports how a proposal was handled.
type Outcome struct {
	State State

	// Affected is populated when State is StatePendingConfirmation.
	Affected []AffectedResource

	// Commit is populated when State is StateApplied (direct application).
	Commit *Commit
}

// Analyzer runs the provider-removal state machine for one blueprint edit
// session. Each Propose starts a fresh evaluation; a pending proposal must
// be resolved through Confirm or Cancel before the next one.
type Analyzer struct {
	state   State
	pending *proposal
}

type proposal struct {
	providers []uuid.UUID
	kept      []int
}

// NewAnalyzer creates an analyzer in the idle state.
func NewAnalyzer() *Analyzer {
	return &Analyzer{state: StateIdle}
}

// State returns the current state.
func (a *Analyzer) State() State {
	return a.state
}

// Propose evaluates replacing the current provider set with the proposed
// one, given the blueprint's current resources. providerName resolves a
// provider id to its display name for the confirmation prompt.
//
// Monotonic growth, or a shrink that strands no resource, applies directly.
// A shrink that would orphan resources moves to StatePendingConfirmation
// and returns the itemized affected list instead of committing.
func (a *Analyzer) Propose(current, proposed []uuid.UUID, resources []Resource, providerName func(uuid.UUID) string) (Outcome, error) {
	if a.state == StatePendingConfirmation {
		return Outcome{}, errors.New(errors.ErrCodeConflict, "a provider change is already awaiting confirmation")
	}

	proposedSet := make(map[uuid.UUID]bool, len(proposed))
	for _, id := range proposed {
		proposedSet[id] = true
	}

	removed := make(map[uuid.UUID]bool)
	for _, id := range current {
		if !proposedSet[id] {
			removed[id] = true
		}
	}

	var affected []AffectedResource
	var kept []int
	for i, r := range resources {
		if removed[r.CloudProviderID] {
			affected = append(affected, AffectedResource{
				Name:                     r.Name,
				CloudProviderDisplayName: providerName(r.CloudProviderID),
			})
		} else {
			kept = append(kept, i)
		}
	}

	if len(removed) == 0 || len(affected) == 0 {
		// Nothing to lose: commit directly, no confirmation prompt.
		a.state = StateApplied
		a.pending = nil
		return Outcome{
			State:  StateApplied,
			Commit: &Commit{Providers: proposed, Kept: kept},
		}, nil
	}

	a.state = StatePendingConfirmation
	a.pending = &proposal{providers: proposed, kept: kept}
	return Outcome{State: StatePendingConfirmation, Affected: affected}, nil
}

// Confirm commits the pending proposal: the provider set and the orphan
// removal take effect together.
func (a *Analyzer) Confirm() (*Commit, error) {
	if a.state != StatePendingConfirmation {
		return nil, errors.New(errors.ErrCodeConflict, "no provider change awaiting confirmation")
	}

	commit := &Commit{Providers: a.pending.providers, Kept: a.pending.kept}
	a.state = StateApplied
	a.pending = nil
	return commit, nil
}

// Cancel discards the pending proposal entirely; the prior provider set and
// the full resource list remain unchanged.
func (a *Analyzer) Cancel() error {
	if a.state != StatePendingConfirmation {
		return errors.New(errors.ErrCodeConflict, "no provider change awaiting confirmation")
	}

	a.state = StateCancelled
	a.pending = nil
	return nil
}
