package handler

import (
	"net/http"

	"github.com/bcnelson/mailgun-domain-manager/internal/domain"
	"github.com/bcnelson/mailgun-domain-manager/internal/service"
	"github.com/bcnelson/mailgun-domain-manager/internal/validation"
	"go.uber.org/zap"
)

// SendHandler handles test and live send endpoints.
type SendHandler struct {
	sends *service.SendService
	log   *zap.Logger
}

// NewSendHandler creates a new SendHandler.
func NewSendHandler(sends *service.SendService, log *zap.Logger) *SendHandler {
	return &SendHandler{sends: sends, log: log}
}

// SendTest sends a template to the comma-separated test_emails.
func (h *SendHandler) SendTest(w http.ResponseWriter, r *http.Request) {
	req := &domain.TestSendRequest{
		Domain:      formValue(r, "domain"),
		Template:    formValue(r, "template"),
		FromAddress: formValue(r, "from_address"),
		TestEmails:  validation.SplitAddresses(r.FormValue("test_emails")),
		Subject:     formValue(r, "subject"),
		ReplyTo:     formValue(r, "reply_to"),
	}

	if _, err := h.sends.SendTest(r.Context(), req); err != nil {
		handleError(w, h.log, err, "Failed to send email")
		return
	}
	respondJSON(w, http.StatusOK, &domain.StatusResponse{Status: "success", Message: "Test email sent successfully!"})
}

// SendLive sends a template to mail_list, plus test_emails when
// include_test_list is set.
func (h *SendHandler) SendLive(w http.ResponseWriter, r *http.Request) {
	req := &domain.LiveSendRequest{
		Domain:          formValue(r, "domain"),
		Template:        formValue(r, "template"),
		MailList:        formValue(r, "mail_list"),
		FromAddress:     formValue(r, "from_address"),
		IncludeTestList: formBool(r, "include_test_list"),
		TestEmails:      validation.SplitAddresses(r.FormValue("test_emails")),
		Subject:         formValue(r, "subject"),
		ReplyTo:         formValue(r, "reply_to"),
	}

	if _, err := h.sends.SendLive(r.Context(), req); err != nil {
		handleError(w, h.log, err, "Failed to send live email")
		return
	}
	respondJSON(w, http.StatusOK, &domain.StatusResponse{Status: "success", Message: "Live email sent successfully!"})
}
