package service

import (
	"context"

	"github.com/bcnelson/mailgun-domain-manager/internal/domain"
	"github.com/bcnelson/mailgun-domain-manager/internal/mailgun"
	"github.com/bcnelson/mailgun-domain-manager/internal/metrics"
	"go.uber.org/zap"
)

// SendService performs single-attempt template sends through Mailgun.
type SendService struct {
	resolver *Resolver
	client   mailgun.API
	log      *zap.Logger
}

// NewSendService creates a new SendService.
func NewSendService(resolver *Resolver, client mailgun.API, log *zap.Logger) *SendService {
	return &SendService{resolver: resolver, client: client, log: log.Named("send")}
}

// SendTest delivers a template to explicit test addresses. Validation
// happens before any store or provider access.
func (s *SendService) SendTest(ctx context.Context, req *domain.TestSendRequest) (result *domain.SendResult, err error) {
	defer func() { metrics.ObserveSend("test", err) }()

	msg, err := ComposeTestMessage(req)
	if err != nil {
		return nil, err
	}
	return s.send(ctx, "test", req.Domain, msg)
}

// SendLive delivers a template to a mailing list, plus the test addresses
// when requested.
func (s *SendService) SendLive(ctx context.Context, req *domain.LiveSendRequest) (result *domain.SendResult, err error) {
	defer func() { metrics.ObserveSend("live", err) }()

	msg, err := ComposeLiveMessage(req)
	if err != nil {
		return nil, err
	}
	return s.send(ctx, "live", req.Domain, msg)
}

func (s *SendService) send(ctx context.Context, kind, name string, msg *domain.Message) (*domain.SendResult, error) {
	key, err := s.resolver.Resolve(ctx, name)
	if err != nil {
		return nil, err
	}

	result, err := s.client.SendMessage(ctx, key, name, msg)
	if err != nil {
		s.log.Warn("send failed",
			zap.String("kind", kind),
			zap.String("domain", name),
			zap.String("template", msg.Template),
			zap.Int("recipients", len(msg.To)),
			zap.Error(err))
		return nil, err
	}

	s.log.Info("send accepted",
		zap.String("kind", kind),
		zap.String("domain", name),
		zap.String("template", msg.Template),
		zap.Int("recipients", len(msg.To)),
		zap.String("message_id", result.ID))
	return result, nil
}
