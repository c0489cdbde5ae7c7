package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/bcnelson/mailgun-domain-manager/internal/domain"
	"github.com/bcnelson/mailgun-domain-manager/internal/storage"
)

// Resolver decides which Mailgun API key authorizes calls made on behalf of
// a domain.
type Resolver struct {
	store storage.DomainStore
}

// NewResolver creates a new Resolver.
func NewResolver(store storage.DomainStore) *Resolver {
	return &Resolver{store: store}
}

// Resolve returns the API key for the named domain. A primary domain uses
// its own key; a linked domain uses the key of the record its
// primary_domain_id points at.
func (r *Resolver) Resolve(ctx context.Context, name string) (string, error) {
	rec, err := r.store.FindByDomain(ctx, name)
	if errors.Is(err, domain.ErrNotFound) {
		return "", fmt.Errorf("%w: %s", domain.ErrDomainNotFound, name)
	}
	if err != nil {
		return "", err
	}
	return r.keyFor(ctx, rec)
}

// ResolveByID is Resolve starting from a store identifier. The record is
// returned alongside the key.
func (r *Resolver) ResolveByID(ctx context.Context, id int64) (*domain.DomainRecord, string, error) {
	rec, err := r.store.FindByID(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, "", fmt.Errorf("%w: id %d", domain.ErrDomainNotFound, id)
	}
	if err != nil {
		return nil, "", err
	}
	key, err := r.keyFor(ctx, rec)
	if err != nil {
		return nil, "", err
	}
	return rec, key, nil
}

// LookupAPIKey returns the key stored on the record itself without
// following the primary link. A missing record or an empty key yields
// domain.ErrNoAPIKey.
func (r *Resolver) LookupAPIKey(ctx context.Context, name string) (string, error) {
	rec, err := r.store.FindByDomain(ctx, name)
	if errors.Is(err, domain.ErrNotFound) {
		return "", domain.ErrNoAPIKey
	}
	if err != nil {
		return "", err
	}
	if rec.APIKey == "" {
		return "", domain.ErrNoAPIKey
	}
	return rec.APIKey, nil
}

func (r *Resolver) keyFor(ctx context.Context, rec *domain.DomainRecord) (string, error) {
	owner := rec
	if !rec.IsPrimary {
		if rec.PrimaryDomainID == nil {
			return "", fmt.Errorf("%w: %s has no primary_domain_id", domain.ErrPrimaryDomainNotFound, rec.Domain)
		}
		primary, err := r.store.FindByID(ctx, *rec.PrimaryDomainID)
		if errors.Is(err, domain.ErrNotFound) {
			return "", fmt.Errorf("%w: id %d for %s", domain.ErrPrimaryDomainNotFound, *rec.PrimaryDomainID, rec.Domain)
		}
		if err != nil {
			return "", err
		}
		owner = primary
	}

	if owner.APIKey == "" {
		return "", domain.ErrNoAPIKey
	}
	return owner.APIKey, nil
}
