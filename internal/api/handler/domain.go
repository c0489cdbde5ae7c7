package handler

import (
	"net/http"

	"github.com/bcnelson/mailgun-domain-manager/internal/domain"
	"github.com/bcnelson/mailgun-domain-manager/internal/service"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// DomainHandler handles domain record endpoints.
type DomainHandler struct {
	domains  *service.DomainService
	resolver *service.Resolver
	log      *zap.Logger
}

// NewDomainHandler creates a new DomainHandler.
func NewDomainHandler(domains *service.DomainService, resolver *service.Resolver, log *zap.Logger) *DomainHandler {
	return &DomainHandler{domains: domains, resolver: resolver, log: log}
}

type domainsResponse struct {
	Domains []domain.DomainSummary `json:"domains"`
}

// List lists every domain with its credential fields.
func (h *DomainHandler) List(w http.ResponseWriter, r *http.Request) {
	recs, err := h.domains.List(r.Context())
	if err != nil {
		handleError(w, h.log, err, "")
		return
	}

	resp := domainsResponse{Domains: make([]domain.DomainSummary, len(recs))}
	for i, rec := range recs {
		resp.Domains[i] = rec.Summary()
	}
	respondJSON(w, http.StatusOK, resp)
}

// Upsert creates or replaces a domain record from form fields.
func (h *DomainHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	primaryID, err := formInt64(r, "primary_domain_id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "primary_domain_id must be an integer", "")
		return
	}

	// Without is_primary or a link the record stands alone on its own key.
	isPrimary := formBool(r, "is_primary")
	if _, sent := r.Form["is_primary"]; !sent && primaryID == nil {
		isPrimary = true
	}

	req := &domain.UpsertDomainRequest{
		Domain:          formValue(r, "domain"),
		APIKey:          formValue(r, "api_key"),
		IsPrimary:       isPrimary,
		PrimaryDomainID: primaryID,
	}
	if _, err := h.domains.Upsert(r.Context(), req); err != nil {
		handleError(w, h.log, err, "")
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Details returns the full record of a domain.
func (h *DomainHandler) Details(w http.ResponseWriter, r *http.Request) {
	rec, err := h.domains.Get(r.Context(), formValue(r, "domain"))
	if err != nil {
		handleError(w, h.log, err, "")
		return
	}
	respondJSON(w, http.StatusOK, rec)
}

// APIKey returns the key stored on the domain's own record.
func (h *DomainHandler) APIKey(w http.ResponseWriter, r *http.Request) {
	key, err := h.resolver.LookupAPIKey(r.Context(), formValue(r, "domain"))
	if err != nil {
		handleError(w, h.log, err, "")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"api_key": key})
}

// UpdateAPIKey replaces the API key of the domain in the path.
func (h *DomainHandler) UpdateAPIKey(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "domain")
	if err := h.domains.UpdateAPIKey(r.Context(), name, formValue(r, "api_key")); err != nil {
		handleError(w, h.log, err, "")
		return
	}
	respondJSON(w, http.StatusOK, &domain.StatusResponse{Status: "success", Message: "Domain updated successfully"})
}

// Delete removes the domain in the path. Missing domains still succeed.
func (h *DomainHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.domains.Delete(r.Context(), chi.URLParam(r, "domain")); err != nil {
		handleError(w, h.log, err, "")
		return
	}
	respondJSON(w, http.StatusOK, &domain.StatusResponse{Status: "success"})
}
