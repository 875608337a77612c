package cascade

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angryss/idpctl/pkg/errors"
)

var (
	awsID   = uuid.New()
	azureID = uuid.New()
	gcpID   = uuid.New()
)

func providerName(id uuid.UUID) string {
	switch id {
	case awsID:
		return "Amazon Web Services"
	case azureID:
		return "Microsoft Azure"
	case gcpID:
		return "Google Cloud"
	}
	return "unknown"
}

func TestPropose_RemovalWithDependentsAwaitsConfirmation(t *testing.T) {
	// Scenario A: providers {AWS, Azure}, one AWS resource; removing AWS
	// must not commit without confirmation.
	a := NewAnalyzer()

	outcome, err := a.Propose(
		[]uuid.UUID{awsID, azureID},
		[]uuid.UUID{azureID},
		[]Resource{{Name: "orders-db", CloudProviderID: awsID}},
		providerName,
	)
	require.NoError(t, err)

	assert.Equal(t, StatePendingConfirmation, outcome.State)
	require.Len(t, outcome.Affected, 1)
	assert.Equal(t, "orders-db", outcome.Affected[0].Name)
	assert.Equal(t, "Amazon Web Services", outcome.Affected[0].CloudProviderDisplayName)
	assert.Nil(t, outcome.Commit, "nothing commits while pending")
}

func TestCancel_DiscardsWholeProposal(t *testing.T) {
	// Scenario A, cancel path: providers and resources remain untouched.
	a := NewAnalyzer()

	_, err := a.Propose(
		[]uuid.UUID{awsID, azureID},
		[]uuid.UUID{azureID},
		[]Resource{{Name: "orders-db", CloudProviderID: awsID}},
		providerName,
	)
	require.NoError(t, err)

	require.NoError(t, a.Cancel())
	assert.Equal(t, StateCancelled, a.State())

	// The analyzer hands back no commit; the caller keeps its prior state.
	_, err = a.Confirm()
	assert.True(t, errors.Is(err, errors.ErrCodeConflict))
}

func TestConfirm_CommitsProvidersAndRemovesOrphansAtomically(t *testing.T) {
	// Scenario B: on confirm, providers become {Azure} and the AWS
	// resource is dropped in the same commit.
	a := NewAnalyzer()

	_, err := a.Propose(
		[]uuid.UUID{awsID, azureID},
		[]uuid.UUID{azureID},
		[]Resource{
			{Name: "orders-db", CloudProviderID: awsID},
			{Name: "cache", CloudProviderID: azureID},
		},
		providerName,
	)
	require.NoError(t, err)

	commit, err := a.Confirm()
	require.NoError(t, err)
	assert.Equal(t, StateApplied, a.State())

	assert.Equal(t, []uuid.UUID{azureID}, commit.Providers)
	assert.Equal(t, []int{1}, commit.Kept, "only the azure resource survives")
}

func TestPropose_RemovalWithoutDependentsAppliesDirectly(t *testing.T) {
	// Scenario C: removing a provider nothing depends on never prompts.
	a := NewAnalyzer()

	outcome, err := a.Propose(
		[]uuid.UUID{awsID},
		[]uuid.UUID{},
		nil,
		providerName,
	)
	require.NoError(t, err)

	assert.Equal(t, StateApplied, outcome.State)
	require.NotNil(t, outcome.Commit)
	assert.Empty(t, outcome.Commit.Providers)
	assert.Empty(t, outcome.Affected)
}

func TestPropose_GrowthNeverPrompts(t *testing.T) {
	// Invariant: newSet superset of oldSet never reaches PendingConfirmation,
	// even with resources present.
	a := NewAnalyzer()

	outcome, err := a.Propose(
		[]uuid.UUID{awsID},
		[]uuid.UUID{awsID, azureID, gcpID},
		[]Resource{{Name: "orders-db", CloudProviderID: awsID}},
		providerName,
	)
	require.NoError(t, err)

	assert.Equal(t, StateApplied, outcome.State)
	require.NotNil(t, outcome.Commit)
	assert.Equal(t, []int{0}, outcome.Commit.Kept, "all resources survive growth")
}

func TestPropose_ShrinkWithUnrelatedResourcesAppliesDirectly(t *testing.T) {
	a := NewAnalyzer()

	outcome, err := a.Propose(
		[]uuid.UUID{awsID, azureID},
		[]uuid.UUID{azureID},
		[]Resource{{Name: "cache", CloudProviderID: azureID}},
		providerName,
	)
	require.NoError(t, err)

	assert.Equal(t, StateApplied, outcome.State, "no dependent on the removed provider, no prompt")
	assert.Equal(t, []int{0}, outcome.Commit.Kept)
}

func TestPropose_BlockedWhilePending(t *testing.T) {
	a := NewAnalyzer()

	_, err := a.Propose(
		[]uuid.UUID{awsID, azureID},
		[]uuid.UUID{azureID},
		[]Resource{{Name: "orders-db", CloudProviderID: awsID}},
		providerName,
	)
	require.NoError(t, err)

	_, err = a.Propose([]uuid.UUID{awsID}, []uuid.UUID{awsID}, nil, providerName)
	assert.True(t, errors.Is(err, errors.ErrCodeConflict))
}

func TestAnalyzer_FreshEvaluationAfterResolution(t *testing.T) {
	a := NewAnalyzer()

	// Resolve one proposal...
	_, err := a.Propose(
		[]uuid.UUID{awsID, azureID},
		[]uuid.UUID{azureID},
		[]Resource{{Name: "orders-db", CloudProviderID: awsID}},
		providerName,
	)
	require.NoError(t, err)
	require.NoError(t, a.Cancel())

	// ...and the next one evaluates from scratch.
	outcome, err := a.Propose(
		[]uuid.UUID{awsID, azureID},
		[]uuid.UUID{awsID, azureID, gcpID},
		[]Resource{{Name: "orders-db", CloudProviderID: awsID}},
		providerName,
	)
	require.NoError(t, err)
	assert.Equal(t, StateApplied, outcome.State)
}

func TestConfirmAndCancelRequirePending(t *testing.T) {
	a := NewAnalyzer()

	_, err := a.Confirm()
	assert.True(t, errors.Is(err, errors.ErrCodeConflict))
	assert.True(t, errors.Is(a.Cancel(), errors.ErrCodeConflict))
}
