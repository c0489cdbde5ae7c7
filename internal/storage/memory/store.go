package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/bcnelson/mailgun-domain-manager/internal/domain"
	"github.com/bcnelson/mailgun-domain-manager/internal/storage"
)

// Store is an in-memory implementation of the storage interface for testing.
type Store struct {
	mu sync.RWMutex

	nextID  int64
	domains map[string]*domain.DomainRecord // key: domain name
}

// Ensure Store implements DomainStore.
var _ storage.DomainStore = (*Store)(nil)

// New creates a new in-memory store.
func New() *Store {
	return &Store{
		domains: make(map[string]*domain.DomainRecord),
	}
}

func (s *Store) Close() error                   { return nil }
func (s *Store) Ping(ctx context.Context) error { return nil }

func (s *Store) FindByDomain(ctx context.Context, name string) (*domain.DomainRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.domains[name]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return copyRecord(rec), nil
}

func (s *Store) FindByID(ctx context.Context, id int64) (*domain.DomainRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, rec := range s.domains {
		if rec.ID == id {
			return copyRecord(rec), nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *Store) Upsert(ctx context.Context, rec *domain.DomainRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	stored := copyRecord(rec)
	if existing, ok := s.domains[rec.Domain]; ok {
		stored.ID = existing.ID
		stored.CreatedAt = existing.CreatedAt
	} else {
		s.nextID++
		stored.ID = s.nextID
		stored.CreatedAt = now
	}
	stored.UpdatedAt = now
	s.domains[rec.Domain] = stored

	rec.ID = stored.ID
	rec.CreatedAt = stored.CreatedAt
	rec.UpdatedAt = stored.UpdatedAt
	return nil
}

func (s *Store) UpdateAPIKey(ctx context.Context, name, apiKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec, ok := s.domains[name]; ok {
		rec.APIKey = apiKey
		rec.UpdatedAt = time.Now().UTC()
	}
	return nil
}

func (s *Store) DeleteByDomain(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.domains, name)
	return nil
}

func (s *Store) ListAll(ctx context.Context) ([]*domain.DomainRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	recs := make([]*domain.DomainRecord, 0, len(s.domains))
	for _, rec := range s.domains {
		recs = append(recs, copyRecord(rec))
	}
	sort.Slice(recs, func(i, j int) bool {
		return recs[i].Domain < recs[j].Domain
	})
	return recs, nil
}

func copyRecord(rec *domain.DomainRecord) *domain.DomainRecord {
	c := *rec
	if rec.PrimaryDomainID != nil {
		id := *rec.PrimaryDomainID
		c.PrimaryDomainID = &id
	}
	return &c
}
