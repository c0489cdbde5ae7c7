package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/bcnelson/mailgun-domain-manager/internal/domain"
	"github.com/bcnelson/mailgun-domain-manager/internal/storage"
	"github.com/bcnelson/mailgun-domain-manager/internal/validation"
	"go.uber.org/zap"
)

// DomainService manages domain records.
type DomainService struct {
	store storage.DomainStore
	log   *zap.Logger
}

// NewDomainService creates a new DomainService.
func NewDomainService(store storage.DomainStore, log *zap.Logger) *DomainService {
	return &DomainService{store: store, log: log.Named("domains")}
}

// List returns every domain record ordered by name.
func (s *DomainService) List(ctx context.Context) ([]*domain.DomainRecord, error) {
	return s.store.ListAll(ctx)
}

// Names returns the names of every domain, ordered.
func (s *DomainService) Names(ctx context.Context) ([]string, error) {
	recs, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(recs))
	for i, rec := range recs {
		names[i] = rec.Domain
	}
	return names, nil
}

// Get returns the record for a domain or domain.ErrDomainNotFound.
func (s *DomainService) Get(ctx context.Context, name string) (*domain.DomainRecord, error) {
	rec, err := s.store.FindByDomain(ctx, name)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", domain.ErrDomainNotFound, name)
	}
	return rec, err
}

// Upsert validates the request and creates or fully replaces the record
// with the same domain.
func (s *DomainService) Upsert(ctx context.Context, req *domain.UpsertDomainRequest) (*domain.DomainRecord, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	rec := req.Record()
	if err := s.store.Upsert(ctx, rec); err != nil {
		return nil, err
	}

	fields := []zap.Field{zap.String("domain", rec.Domain), zap.Int64("id", rec.ID), zap.Bool("is_primary", rec.IsPrimary)}
	if rec.PrimaryDomainID != nil {
		fields = append(fields, zap.Int64("primary_domain_id", *rec.PrimaryDomainID))
	}
	s.log.Info("domain upserted", fields...)
	return rec, nil
}

// UpdateAPIKey replaces only the API key of an existing domain.
func (s *DomainService) UpdateAPIKey(ctx context.Context, name, apiKey string) error {
	if name == "" || apiKey == "" {
		return fmt.Errorf("%w: domain and api_key are required", domain.ErrInvalidRequest)
	}
	if err := s.store.UpdateAPIKey(ctx, name, apiKey); err != nil {
		return err
	}
	s.log.Info("api key updated", zap.String("domain", name))
	return nil
}

// Delete removes a domain. Linked records pointing at it are left as they
// are.
func (s *DomainService) Delete(ctx context.Context, name string) error {
	if err := s.store.DeleteByDomain(ctx, name); err != nil {
		return err
	}
	s.log.Info("domain deleted", zap.String("domain", name))
	return nil
}
