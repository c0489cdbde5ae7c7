package service

import (
	"context"
	"fmt"

	"github.com/bcnelson/mailgun-domain-manager/internal/domain"
	"github.com/bcnelson/mailgun-domain-manager/internal/mailgun"
	"go.uber.org/zap"
)

// ProviderService relays read-only Mailgun lookups for a domain.
type ProviderService struct {
	resolver *Resolver
	client   mailgun.API
	log      *zap.Logger
}

// NewProviderService creates a new ProviderService.
func NewProviderService(resolver *Resolver, client mailgun.API, log *zap.Logger) *ProviderService {
	return &ProviderService{resolver: resolver, client: client, log: log.Named("provider")}
}

// Templates lists the Mailgun templates of a domain.
func (s *ProviderService) Templates(ctx context.Context, name string) ([]domain.Template, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: domain is required", domain.ErrInvalidRequest)
	}
	key, err := s.resolver.Resolve(ctx, name)
	if err != nil {
		return nil, err
	}

	templates, err := s.client.ListTemplates(ctx, key, name)
	if err != nil {
		s.log.Warn("listing templates failed", zap.String("domain", name), zap.Error(err))
		return nil, err
	}
	return templates, nil
}

// MailingLists lists the mailing lists visible to the credential of the
// domain with the given id.
func (s *ProviderService) MailingLists(ctx context.Context, domainID int64) ([]domain.MailingList, error) {
	rec, key, err := s.resolver.ResolveByID(ctx, domainID)
	if err != nil {
		return nil, err
	}

	lists, err := s.client.ListMailingLists(ctx, key)
	if err != nil {
		s.log.Warn("listing mailing lists failed", zap.String("domain", rec.Domain), zap.Error(err))
		return nil, err
	}
	return lists, nil
}

// MailingListDetail returns the recipient count of a mailing list.
func (s *ProviderService) MailingListDetail(ctx context.Context, name, mailList string) (*domain.MailingListDetail, error) {
	if name == "" || mailList == "" {
		return nil, fmt.Errorf("%w: domain and mail_list are required", domain.ErrInvalidRequest)
	}
	key, err := s.resolver.Resolve(ctx, name)
	if err != nil {
		return nil, err
	}

	count, err := s.client.MailingListMemberCount(ctx, key, mailList)
	if err != nil {
		s.log.Warn("fetching mailing list members failed",
			zap.String("domain", name), zap.String("mail_list", mailList), zap.Error(err))
		return nil, err
	}
	return &domain.MailingListDetail{MailList: mailList, Recipients: count}, nil
}
