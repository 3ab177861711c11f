package ui

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"time"

	"workgen/domain/core"
	"workgen/domain/insight"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

//go:embed templates/*.html
var embeddedFiles embed.FS

// App is the root HTTP handler: HTML pages on chi with the JSON API mounted
type App struct {
	router    *chi.Mux
	api       *Server
	templates *template.Template
	config    Config
}

// Config holds UI application configuration
type Config struct {
	Port string
}

// NewApp creates the root application around an API server
func NewApp(config Config, api *Server) (*App, error) {
	templates, err := template.ParseFS(embeddedFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	a := &App{
		router:    chi.NewRouter(),
		api:       api,
		templates: templates,
		config:    config,
	}

	a.setupMiddleware()
	a.setupRoutes()

	return a, nil
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	a.router.Get("/", a.handleIndex)
	a.router.Get("/sessions/{sid}/report", a.handleReportPage)

	// gin keeps the full request path, so its routes stay under /api
	a.router.Mount("/api", a.api)
	a.router.Handle("/healthz", a.api)
}

// ServeHTTP implements http.Handler
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.router.ServeHTTP(w, r)
}

// Start serves until ctx is cancelled, then shuts down gracefully
func (a *App) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              ":" + a.config.Port,
		Handler:           a.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Starting WorkGen server on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	log.Printf("Shutting down WorkGen server")
	return srv.Shutdown(shutdownCtx)
}

func (a *App) handleIndex(w http.ResponseWriter, r *http.Request) {
	a.renderTemplate(w, "index.html", map[string]interface{}{
		"Sessions": a.api.services.Sessions.Len(),
	})
}

func (a *App) handleReportPage(w http.ResponseWriter, r *http.Request) {
	id, err := core.ParseSessionID(chi.URLParam(r, "sid"))
	if err != nil {
		http.Error(w, "session id is required", http.StatusBadRequest)
		return
	}

	lines, err := a.api.services.Reports.Lines(r.Context(), id)
	if err != nil {
		if errors.Is(err, core.ErrSessionNotFound) {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}
		log.Printf("[handleReportPage] ERROR: %v", err)
		http.Error(w, "failed to load report", http.StatusInternalServerError)
		return
	}

	a.renderTemplate(w, "report.html", map[string]interface{}{
		"SessionID": id,
		"Count":     len(lines),
		"Body":      template.HTML(renderReportMarkdown(lines)),
	})
}

// renderReportMarkdown renders the report as a numbered Markdown list
func renderReportMarkdown(lines []insight.ReportLine) []byte {
	var md bytes.Buffer
	md.WriteString("# Analysis report\n\n")
	if len(lines) == 0 {
		md.WriteString("_No insights generated yet._\n")
	}
	for _, line := range lines {
		fmt.Fprintf(&md, "%d. %s\n", line.Seq, line.Text)
	}

	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags | html.SkipHTML})
	return markdown.ToHTML(md.Bytes(), p, renderer)
}

// renderTemplate executes a named template into the response
func (a *App) renderTemplate(w http.ResponseWriter, templateName string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := a.templates.ExecuteTemplate(w, templateName, data); err != nil {
		log.Printf("Template error: %v", err)
		http.Error(w, "Template error", http.StatusInternalServerError)
	}
}
