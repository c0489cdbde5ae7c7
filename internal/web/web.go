package web

import (
	"context"
	"embed"
	"html/template"
	"io/fs"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

//go:embed templates/* static/*
var content embed.FS

// DomainLister supplies the domain names shown on the index page.
type DomainLister interface {
	Names(ctx context.Context) ([]string, error)
}

// Server holds dependencies for web handlers.
type Server struct {
	domains   DomainLister
	templates *template.Template
	log       *zap.Logger
}

// NewRouter creates the admin page router.
func NewRouter(domains DomainLister, log *zap.Logger) http.Handler {
	s := &Server{
		domains: domains,
		log:     log,
	}
	s.templates = parseTemplates()

	r := chi.NewRouter()

	staticFS, _ := fs.Sub(content, "static")
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	r.Get("/", s.handleIndex)

	return r
}

// parseTemplates parses the embedded page templates.
func parseTemplates() *template.Template {
	funcMap := template.FuncMap{
		"join":  strings.Join,
		"lower": strings.ToLower,
	}
	return template.Must(template.New("").Funcs(funcMap).ParseFS(content, "templates/*.html"))
}

// PageData holds data passed to page templates.
type PageData struct {
	Title   string
	Domains []string
	Error   string
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	names, err := s.domains.Names(r.Context())
	if err != nil {
		s.log.Error("list domains for index", zap.Error(err))
		s.renderError(w, "Unable to load domains", http.StatusInternalServerError)
		return
	}

	s.render(w, "index.html", PageData{
		Title:   "Mailgun Domains",
		Domains: names,
	})
}

// render executes a named template.
func (s *Server) render(w http.ResponseWriter, page string, data PageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	if err := s.templates.ExecuteTemplate(w, page, data); err != nil {
		s.log.Error("render template", zap.String("page", page), zap.Error(err))
		http.Error(w, "Template error", http.StatusInternalServerError)
	}
}

// renderError renders an error message.
func (s *Server) renderError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write([]byte(`<div class="flash flash-error">` + template.HTMLEscapeString(message) + `</div>`))
}
