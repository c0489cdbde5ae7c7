// Package validation checks request structures before they reach the store
// or the provider, and normalizes comma-separated address lists.
package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bcnelson/mailgun-domain-manager/internal/domain"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Struct validates the `validate` tags of v. Failures are returned as
// ValidationErrors wrapped in domain.ErrInvalidRequest.
func Struct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", domain.ErrInvalidRequest, err)
	}

	var errs ValidationErrors
	for _, fe := range verrs {
		errs.Add(fieldName(fe.Field()), "", tagMessage(fe))
	}
	return fmt.Errorf("%w: %w", domain.ErrInvalidRequest, errs)
}

// SplitAddresses splits a comma-separated address list, trims whitespace
// from each entry and drops empty entries. Order is preserved.
func SplitAddresses(raw string) []string {
	if raw == "" {
		return nil
	}
	return TrimAddresses(strings.Split(raw, ","))
}

// TrimAddresses trims whitespace from each address and drops empty entries.
func TrimAddresses(addrs []string) []string {
	out := make([]string, 0, len(addrs))
	for _, a := range addrs {
		if a = strings.TrimSpace(a); a != "" {
			out = append(out, a)
		}
	}
	return out
}

// fieldName maps Go field names to the form field names callers send.
func fieldName(field string) string {
	switch field {
	case "FromAddress":
		return "from_address"
	case "MailList":
		return "mail_list"
	case "APIKey":
		return "api_key"
	case "PrimaryDomainID":
		return "primary_domain_id"
	case "TestEmails":
		return "test_emails"
	case "ReplyTo":
		return "reply_to"
	default:
		return strings.ToLower(field)
	}
}

func tagMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_if":
		return "is required"
	default:
		return "failed " + fe.Tag() + " check"
	}
}
