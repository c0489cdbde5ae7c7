package api

import (
	"net/http"

	"github.com/bcnelson/mailgun-domain-manager/internal/api/handler"
	"github.com/bcnelson/mailgun-domain-manager/internal/api/middleware"
	"github.com/bcnelson/mailgun-domain-manager/internal/mailgun"
	"github.com/bcnelson/mailgun-domain-manager/internal/metrics"
	"github.com/bcnelson/mailgun-domain-manager/internal/service"
	"github.com/bcnelson/mailgun-domain-manager/internal/storage"
	"github.com/bcnelson/mailgun-domain-manager/internal/web"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Options configures the router.
type Options struct {
	AllowedOrigins []string
}

// NewRouter creates a new HTTP router with all routes configured.
func NewRouter(store storage.DomainStore, client mailgun.API, opts Options, log *zap.Logger) http.Handler {
	resolver := service.NewResolver(store)
	domains := service.NewDomainService(store, log)
	provider := service.NewProviderService(resolver, client, log)
	sends := service.NewSendService(resolver, client, log)

	r := chi.NewRouter()

	// Global middleware
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logging(log))
	r.Use(middleware.CORS(opts.AllowedOrigins))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := store.Ping(r.Context()); err != nil {
			log.Warn("health check failed", zap.Error(err))
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status":"unavailable"}`))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle("/metrics", metrics.Handler())

	// Domain records
	domainHandler := handler.NewDomainHandler(domains, resolver, log)
	r.Get("/get-domains", domainHandler.List)
	r.Post("/add-domain", domainHandler.Upsert)
	r.Get("/get-domain-details", domainHandler.Details)
	r.Get("/get-api-key", domainHandler.APIKey)
	r.Post("/update-domain/{domain}", domainHandler.UpdateAPIKey)
	r.Delete("/delete-domain/{domain}", domainHandler.Delete)

	// Mailgun lookups
	providerHandler := handler.NewProviderHandler(provider, log)
	r.Get("/get-templates", providerHandler.Templates)
	r.Get("/get-mail-lists", providerHandler.MailingLists)
	r.Get("/get-mail-list-details", providerHandler.MailingListDetail)

	// Sends
	sendHandler := handler.NewSendHandler(sends, log)
	r.Post("/send-test-email", sendHandler.SendTest)
	r.Post("/send-live-email", sendHandler.SendLive)

	// Index page and static assets
	r.Mount("/", web.NewRouter(domains, log))

	return r
}
