package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestAgreementRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	rec := AgreementRecord{ID: "acme", Name: "Acme", ConfigJSON: `{"id":"acme"}`}
	require.NoError(t, store.SaveAgreement(ctx, rec))

	got, err := store.GetAgreement(ctx, "acme")
	require.NoError(t, err)
	assert.Equal(t, "Acme", got.Name)
	assert.Equal(t, `{"id":"acme"}`, got.ConfigJSON)
	assert.False(t, got.CreatedAt.IsZero(), "created_at is stamped on save")
}

func TestSaveAgreementUpserts(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveAgreement(ctx, AgreementRecord{ID: "acme", Name: "v1", ConfigJSON: `{}`}))
	require.NoError(t, store.SaveAgreement(ctx, AgreementRecord{ID: "acme", Name: "v2", ConfigJSON: `{"x":1}`}))

	got, err := store.GetAgreement(ctx, "acme")
	require.NoError(t, err)
	assert.Equal(t, "v2", got.Name)
	assert.Equal(t, `{"x":1}`, got.ConfigJSON)

	all, err := store.ListAgreements(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestGetAgreementNotFound(t *testing.T) {
	store := newTestStore(t)
	_, err := store.GetAgreement(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteAgreement(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveAgreement(ctx, AgreementRecord{ID: "acme", Name: "Acme", ConfigJSON: `{}`}))
	require.NoError(t, store.DeleteAgreement(ctx, "acme"))
	_, err := store.GetAgreement(ctx, "acme")
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting a missing ID is not an error.
	assert.NoError(t, store.DeleteAgreement(ctx, "acme"))
}

func TestEstimateHistory(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)
	for i, kind := range []string{"compensation", "floor", "compensation"} {
		_, err := store.AppendEstimate(ctx, EstimateRecord{
			Kind:        kind,
			RequestJSON: `{}`,
			ResultJSON:  `{}`,
			CreatedAt:   base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}

	all, err := store.ListEstimates(ctx, "", 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.True(t, all[0].CreatedAt.After(all[2].CreatedAt), "newest first")

	comp, err := store.ListEstimates(ctx, "compensation", 0)
	require.NoError(t, err)
	require.Len(t, comp, 2)
	for _, rec := range comp {
		assert.Equal(t, "compensation", rec.Kind)
	}

	limited, err := store.ListEstimates(ctx, "", 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestReset(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveAgreement(ctx, AgreementRecord{ID: "a", Name: "A", ConfigJSON: `{}`}))
	_, err := store.AppendEstimate(ctx, EstimateRecord{Kind: "compensation", RequestJSON: `{}`, ResultJSON: `{}`})
	require.NoError(t, err)

	require.NoError(t, store.Reset(ctx))

	agreements, err := store.ListAgreements(ctx)
	require.NoError(t, err)
	assert.Empty(t, agreements)
	estimates, err := store.ListEstimates(ctx, "", 0)
	require.NoError(t, err)
	assert.Empty(t, estimates)
}
