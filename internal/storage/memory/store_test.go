package memory

import (
	"context"
	"testing"

	"github.com/bcnelson/mailgun-domain-manager/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_UpsertKeepsID(t *testing.T) {
	store := New()
	ctx := context.Background()

	first := &domain.DomainRecord{Domain: "mg.example.com", APIKey: "key-1", IsPrimary: true}
	require.NoError(t, store.Upsert(ctx, first))
	second := &domain.DomainRecord{Domain: "mg.example.com", APIKey: "key-2", IsPrimary: true}
	require.NoError(t, store.Upsert(ctx, second))

	assert.Equal(t, first.ID, second.ID)
	got, err := store.FindByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "key-2", got.APIKey)
}

func TestStore_ReturnsCopies(t *testing.T) {
	store := New()
	ctx := context.Background()

	require.NoError(t, store.Upsert(ctx, &domain.DomainRecord{Domain: "mg.example.com", APIKey: "key-1", IsPrimary: true}))

	got, err := store.FindByDomain(ctx, "mg.example.com")
	require.NoError(t, err)
	got.APIKey = "mutated"

	again, err := store.FindByDomain(ctx, "mg.example.com")
	require.NoError(t, err)
	assert.Equal(t, "key-1", again.APIKey)
}

func TestStore_MissingAndDelete(t *testing.T) {
	store := New()
	ctx := context.Background()

	_, err := store.FindByDomain(ctx, "missing.example.com")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = store.FindByID(ctx, 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.NoError(t, store.UpdateAPIKey(ctx, "missing.example.com", "k"))
	assert.NoError(t, store.DeleteByDomain(ctx, "missing.example.com"))

	recs, err := store.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, recs)
}
