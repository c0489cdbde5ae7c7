package storage

import (
	"context"

	"github.com/bcnelson/mailgun-domain-manager/internal/domain"
)

// DomainStore defines the interface for the domain record store.
// Implementations must be safe for concurrent use. Every method is a single
// atomic operation against the backing store.
type DomainStore interface {
	// Close closes the storage connection.
	Close() error

	// Ping reports whether the backing store is reachable.
	Ping(ctx context.Context) error

	// FindByDomain returns domain.ErrNotFound when no record has that name.
	FindByDomain(ctx context.Context, name string) (*domain.DomainRecord, error)

	// FindByID returns domain.ErrNotFound when no record has that id.
	FindByID(ctx context.Context, id int64) (*domain.DomainRecord, error)

	// Upsert inserts the record or replaces every mutable field of the
	// record with the same domain. rec.ID is set to the stored id.
	Upsert(ctx context.Context, rec *domain.DomainRecord) error

	// UpdateAPIKey changes only the api_key of an existing domain. Updating
	// a missing domain is not an error.
	UpdateAPIKey(ctx context.Context, name, apiKey string) error

	// DeleteByDomain removes the record. Deleting a missing domain is not an error.
	DeleteByDomain(ctx context.Context, name string) error

	// ListAll returns every record ordered by domain name.
	ListAll(ctx context.Context) ([]*domain.DomainRecord, error)
}
