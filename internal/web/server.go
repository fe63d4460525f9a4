// Package web serves the BharatGPT browser interface and its JSON API.
package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/diogo/bharatgpt/internal/chat"
	apierrors "github.com/diogo/bharatgpt/internal/errors"
	"github.com/diogo/bharatgpt/internal/history"
	"github.com/diogo/bharatgpt/internal/logger"
)

//go:embed templates/* static/*
var embeddedFS embed.FS

const (
	// DefaultAddr is the default address the server listens on.
	DefaultAddr = "localhost:8080"

	// ReadTimeout is the maximum duration for reading the entire request.
	ReadTimeout = 15 * time.Second

	// WriteTimeout bounds a response, including a synchronous completion
	// on the JSON API.
	WriteTimeout = 2 * time.Minute

	// IdleTimeout is the maximum amount of time to wait for the next request.
	IdleTimeout = 60 * time.Second

	// ShutdownTimeout is the maximum time to wait for graceful shutdown.
	ShutdownTimeout = 30 * time.Second

	// CleanupInterval is how often idle sessions are expired.
	CleanupInterval = 5 * time.Minute

	// MaxRequestBodySize is the maximum size of POST request bodies (64KB).
	MaxRequestBodySize = 64 * 1024

	// MaxMessageLength is the maximum length of a question (4KB).
	MaxMessageLength = 4 * 1024
)

// Config configures a Server
type Config struct {
	Addr       string
	Model      string
	FontSize   chat.FontSize
	RateLimit  int // questions per minute per session; 0 disables
	Burst      int
	SessionTTL time.Duration
}

// DefaultConfig returns the default server configuration
func DefaultConfig() Config {
	return Config{
		Addr:       DefaultAddr,
		FontSize:   chat.DefaultFontSize,
		RateLimit:  20,
		Burst:      5,
		SessionTTL: time.Hour,
	}
}

// Server provides HTTP serving for the web UI.
type Server struct {
	cfg       Config
	server    *http.Server
	templates *template.Template
	sessions  *SessionManager

	// completions outlive the request that started them
	baseCtx context.Context
}

// NewServer creates a Server whose sessions ask client.
// Returns an error if templates cannot be parsed.
func NewServer(cfg Config, client chat.Completer) (*Server, error) {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = time.Hour
	}

	tmpl, err := template.ParseFS(embeddedFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	s := &Server{
		cfg:       cfg,
		templates: tmpl,
		baseCtx:   context.Background(),
	}
	s.sessions = NewSessionManager(cfg.SessionTTL, cfg.RateLimit, cfg.Burst, func(id string) *chat.Controller {
		return chat.NewController(client, chat.WithFontSize(cfg.FontSize), chat.WithName(id))
	})

	s.server = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  ReadTimeout,
		WriteTimeout: WriteTimeout,
		IdleTimeout:  IdleTimeout,
	}

	return s, nil
}

// Handler returns the routed handler with session handling applied
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.registerRoutes(mux)
	return s.sessions.sessionMiddleware(mux)
}

// Sessions returns the session manager
func (s *Server) Sessions() *SessionManager {
	return s.sessions
}

func (s *Server) registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.Handle("GET /static/", http.FileServer(http.FS(embeddedFS)))

	mux.HandleFunc("POST /ask", s.handleAsk)
	mux.HandleFunc("POST /font/increase", s.handleFont(true))
	mux.HandleFunc("POST /font/decrease", s.handleFont(false))

	mux.HandleFunc("GET /api/messages", s.handleGetMessages)
	mux.HandleFunc("POST /api/messages", s.handlePostMessage)
	mux.HandleFunc("GET /api/export", s.handleExport)

	mux.HandleFunc("GET /healthz", s.handleHealth)
}

// ListenAndServe starts the HTTP server and blocks until the context is
// cancelled, then shuts down and waits for running completions.
func (s *Server) ListenAndServe(ctx context.Context) error {
	s.sessions.StartCleanup(ctx, CleanupInterval)

	errCh := make(chan error, 1)
	go func() {
		logger.InfoCF("web", "Starting web server", map[string]interface{}{
			"addr": "http://" + s.cfg.Addr,
		})
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.InfoC("web", "Shutting down web server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()

		if err := s.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		s.sessions.Wait()

		logger.InfoC("web", "Web server stopped")
		return nil

	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r.Context())

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := s.templates.ExecuteTemplate(w, "index.html", newPageData(sess.Ctrl)); err != nil {
		logger.ErrorCF("web", "Failed to execute template", map[string]interface{}{
			"error": err.Error(),
		})
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// handleAsk starts a completion in the background and redirects to the
// page, which shows the busy indicator until the answer arrives. Blank
// input and input while busy are ignored.
func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r.Context())
	r.Body = http.MaxBytesReader(w, r.Body, MaxRequestBodySize)

	if err := r.ParseForm(); err != nil {
		http.Error(w, "failed to parse form", http.StatusBadRequest)
		return
	}

	question := r.FormValue("q")
	if len(question) > MaxMessageLength {
		http.Error(w, "question too long", http.StatusRequestEntityTooLarge)
		return
	}

	if strings.TrimSpace(question) == "" {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	req, err := sess.Begin(question)
	switch {
	case errors.Is(err, errRateLimited):
		http.Error(w, "Too many questions. Please wait a moment.", http.StatusTooManyRequests)
		return
	case err == nil:
		sess.Ctrl.Start(s.baseCtx, req)
	case !errors.Is(err, apierrors.ErrEmptyInput) && !errors.Is(err, apierrors.ErrBusy):
		logger.ErrorCF("web", "Submit failed", map[string]interface{}{"error": err.Error()})
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleFont(increase bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessionFromContext(r.Context())
		if increase {
			sess.Ctrl.IncreaseFont()
		} else {
			sess.Ctrl.DecreaseFont()
		}

		if wantsJSON(r) {
			writeJSON(w, http.StatusOK, map[string]int{"font_size": int(sess.Ctrl.Font())})
			return
		}
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

func (s *Server) handleGetMessages(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r.Context())
	writeJSON(w, http.StatusOK, newAPIState(sess.Ctrl, s.cfg.Model))
}

type postMessageRequest struct {
	Message string `json:"message"`
}

// handlePostMessage asks synchronously and answers with the assistant
// message. The completion is not cancelled if the client goes away.
func (s *Server) handlePostMessage(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r.Context())
	r.Body = http.MaxBytesReader(w, r.Body, MaxRequestBodySize)

	var req postMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if len(req.Message) > MaxMessageLength {
		writeError(w, http.StatusRequestEntityTooLarge, "message too long")
		return
	}

	accepted, err := sess.Begin(req.Message)
	switch {
	case errors.Is(err, apierrors.ErrEmptyInput):
		writeError(w, http.StatusBadRequest, "message required")
	case errors.Is(err, apierrors.ErrBusy):
		writeError(w, http.StatusConflict, "a question is already being answered")
	case errors.Is(err, errRateLimited):
		writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
	case err != nil:
		writeError(w, http.StatusInternalServerError, "internal error")
	default:
		msg := sess.Ctrl.Run(context.WithoutCancel(r.Context()), accepted)
		writeJSON(w, http.StatusOK, newAPIMessage(msg))
	}
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r.Context())

	f, err := history.ParseExportFormat(r.URL.Query().Get("format"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	transcript := history.NewTranscript(s.cfg.Model, sess.Ctrl.Messages())
	data, err := transcript.Export(f)
	if err != nil {
		logger.ErrorCF("web", "Export failed", map[string]interface{}{"error": err.Error()})
		writeError(w, http.StatusInternalServerError, "export failed")
		return
	}

	w.Header().Set("Content-Type", f.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, transcript.FileName(f)))
	_, _ = w.Write(data)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":   "ok",
		"sessions": s.sessions.Len(),
	})
}

func wantsJSON(r *http.Request) bool {
	return r.Header.Get("Accept") == "application/json"
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.ErrorCF("web", "Failed to encode response", map[string]interface{}{"error": err.Error()})
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"status": "error", "message": message})
}
