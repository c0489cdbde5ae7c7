package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/bcnelson/mailgun-domain-manager/internal/domain"
	"github.com/bcnelson/mailgun-domain-manager/internal/service"
	"github.com/bcnelson/mailgun-domain-manager/internal/storage/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedPrimary(t *testing.T, store *memory.Store, name, key string) *domain.DomainRecord {
	t.Helper()
	rec := &domain.DomainRecord{Domain: name, APIKey: key, IsPrimary: true}
	require.NoError(t, store.Upsert(context.Background(), rec))
	return rec
}

func seedLinked(t *testing.T, store *memory.Store, name, ownKey string, primaryID int64) *domain.DomainRecord {
	t.Helper()
	rec := &domain.DomainRecord{Domain: name, APIKey: ownKey, PrimaryDomainID: &primaryID}
	require.NoError(t, store.Upsert(context.Background(), rec))
	return rec
}

func TestResolve_PrimaryUsesOwnKey(t *testing.T) {
	store := memory.New()
	seedPrimary(t, store, "mg.example.com", "key-primary")

	key, err := service.NewResolver(store).Resolve(context.Background(), "mg.example.com")
	require.NoError(t, err)
	assert.Equal(t, "key-primary", key)
}

func TestResolve_LinkedUsesPrimaryKey(t *testing.T) {
	store := memory.New()
	primary := seedPrimary(t, store, "mg.example.com", "key-primary")
	seedLinked(t, store, "news.example.com", "stale-own-key", primary.ID)

	key, err := service.NewResolver(store).Resolve(context.Background(), "news.example.com")
	require.NoError(t, err)
	assert.Equal(t, "key-primary", key, "linked domains must never use their own stored key")
}

func TestResolve_UnknownDomain(t *testing.T) {
	_, err := service.NewResolver(memory.New()).Resolve(context.Background(), "missing.example.com")
	assert.ErrorIs(t, err, domain.ErrDomainNotFound)
}

func TestResolve_DanglingPrimary(t *testing.T) {
	store := memory.New()
	seedLinked(t, store, "news.example.com", "", 99)

	_, err := service.NewResolver(store).Resolve(context.Background(), "news.example.com")
	assert.ErrorIs(t, err, domain.ErrPrimaryDomainNotFound)
}

func TestResolve_PrimaryDeletedLeavesLinkDangling(t *testing.T) {
	store := memory.New()
	ctx := context.Background()
	primary := seedPrimary(t, store, "mg.example.com", "key-primary")
	seedLinked(t, store, "news.example.com", "", primary.ID)

	require.NoError(t, store.DeleteByDomain(ctx, "mg.example.com"))

	_, err := service.NewResolver(store).Resolve(ctx, "news.example.com")
	assert.ErrorIs(t, err, domain.ErrPrimaryDomainNotFound)
}

func TestResolve_LinkedWithoutPrimaryID(t *testing.T) {
	store := memory.New()
	require.NoError(t, store.Upsert(context.Background(), &domain.DomainRecord{Domain: "news.example.com"}))

	_, err := service.NewResolver(store).Resolve(context.Background(), "news.example.com")
	assert.ErrorIs(t, err, domain.ErrPrimaryDomainNotFound)
}

func TestResolve_PrimaryWithoutKey(t *testing.T) {
	store := memory.New()
	seedPrimary(t, store, "mg.example.com", "")

	_, err := service.NewResolver(store).Resolve(context.Background(), "mg.example.com")
	assert.ErrorIs(t, err, domain.ErrNoAPIKey)
}

func TestResolveByID(t *testing.T) {
	store := memory.New()
	primary := seedPrimary(t, store, "mg.example.com", "key-primary")
	linked := seedLinked(t, store, "news.example.com", "", primary.ID)
	resolver := service.NewResolver(store)

	rec, key, err := resolver.ResolveByID(context.Background(), linked.ID)
	require.NoError(t, err)
	assert.Equal(t, "news.example.com", rec.Domain)
	assert.Equal(t, "key-primary", key)

	_, _, err = resolver.ResolveByID(context.Background(), 404)
	assert.ErrorIs(t, err, domain.ErrDomainNotFound)
}

func TestLookupAPIKey_DoesNotFollowLink(t *testing.T) {
	store := memory.New()
	primary := seedPrimary(t, store, "mg.example.com", "key-primary")
	seedLinked(t, store, "news.example.com", "own-key", primary.ID)
	seedLinked(t, store, "bare.example.com", "", primary.ID)
	resolver := service.NewResolver(store)

	key, err := resolver.LookupAPIKey(context.Background(), "news.example.com")
	require.NoError(t, err)
	assert.Equal(t, "own-key", key)

	_, err = resolver.LookupAPIKey(context.Background(), "bare.example.com")
	assert.ErrorIs(t, err, domain.ErrNoAPIKey)

	_, err = resolver.LookupAPIKey(context.Background(), "missing.example.com")
	assert.ErrorIs(t, err, domain.ErrNoAPIKey)
}

type failingStore struct {
	*memory.Store
	err error
}

func (f *failingStore) FindByDomain(ctx context.Context, name string) (*domain.DomainRecord, error) {
	return nil, f.err
}

func TestResolve_StoreErrorPropagates(t *testing.T) {
	storeErr := errors.New("database is locked")
	resolver := service.NewResolver(&failingStore{Store: memory.New(), err: storeErr})

	_, err := resolver.Resolve(context.Background(), "mg.example.com")
	assert.ErrorIs(t, err, storeErr)
	assert.NotErrorIs(t, err, domain.ErrDomainNotFound)
}
