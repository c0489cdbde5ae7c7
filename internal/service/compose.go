package service

import (
	"fmt"

	"github.com/bcnelson/mailgun-domain-manager/internal/domain"
	"github.com/bcnelson/mailgun-domain-manager/internal/validation"
)

// ComposeTestMessage validates a test send and builds its payload. The
// recipients are the trimmed test addresses in input order.
func ComposeTestMessage(req *domain.TestSendRequest) (*domain.Message, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	to := validation.TrimAddresses(req.TestEmails)
	if len(to) == 0 {
		return nil, fmt.Errorf("%w: test_emails is required", domain.ErrInvalidRequest)
	}

	return &domain.Message{
		From:     req.FromAddress,
		To:       to,
		Subject:  req.Subject,
		Template: req.Template,
		ReplyTo:  req.ReplyTo,
	}, nil
}

// ComposeLiveMessage validates a live send and builds its payload. The
// mailing list is always the first recipient; trimmed test addresses follow
// only when IncludeTestList is set.
func ComposeLiveMessage(req *domain.LiveSendRequest) (*domain.Message, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	to := []string{req.MailList}
	if req.IncludeTestList {
		to = append(to, validation.TrimAddresses(req.TestEmails)...)
	}

	return &domain.Message{
		From:     req.FromAddress,
		To:       to,
		Subject:  req.Subject,
		Template: req.Template,
		ReplyTo:  req.ReplyTo,
	}, nil
}
