package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/bcnelson/mailgun-domain-manager/internal/domain"
	"github.com/bcnelson/mailgun-domain-manager/internal/service"
	"go.uber.org/zap"
)

// ProviderHandler relays Mailgun template and mailing list lookups.
type ProviderHandler struct {
	provider *service.ProviderService
	log      *zap.Logger
}

// NewProviderHandler creates a new ProviderHandler.
func NewProviderHandler(provider *service.ProviderService, log *zap.Logger) *ProviderHandler {
	return &ProviderHandler{provider: provider, log: log}
}

// Templates lists the templates of ?domain=.
func (h *ProviderHandler) Templates(w http.ResponseWriter, r *http.Request) {
	templates, err := h.provider.Templates(r.Context(), formValue(r, "domain"))
	if err != nil {
		handleError(w, h.log, err, "Unable to fetch templates")
		return
	}
	respondJSON(w, http.StatusOK, templates)
}

// MailingLists lists the mailing lists available to ?domain_id=.
func (h *ProviderHandler) MailingLists(w http.ResponseWriter, r *http.Request) {
	raw := formValue(r, "domain_id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		handleError(w, h.log, fmt.Errorf("%w: domain_id must be an integer, got %q", domain.ErrInvalidRequest, raw), "")
		return
	}

	lists, err := h.provider.MailingLists(r.Context(), id)
	if err != nil {
		handleError(w, h.log, err, "Unable to fetch mail lists")
		return
	}
	respondJSON(w, http.StatusOK, lists)
}

// MailingListDetail returns the recipient count of ?mail_list= for ?domain=.
func (h *ProviderHandler) MailingListDetail(w http.ResponseWriter, r *http.Request) {
	detail, err := h.provider.MailingListDetail(r.Context(), formValue(r, "domain"), formValue(r, "mail_list"))
	if err != nil {
		handleError(w, h.log, err, "Failed to fetch mail list details")
		return
	}
	respondJSON(w, http.StatusOK, detail)
}
