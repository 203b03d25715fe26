// Package http serves the liveness endpoints and, when webhook mode is
// enabled, receives Telegram updates over HTTPS.
package http

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	applog "github.com/chasilva1997-jpg/FinBot/internal/log"
)

// UpdateSink receives decoded Telegram updates.
type UpdateSink interface {
	ProcessUpdate(ctx context.Context, update tgbotapi.Update)
}

// Server is a ready-to-run HTTP server. The webhook route is registered
// only when a sink and secret are provided.
type Server struct {
	http.Server
	sink          UpdateSink
	webhookSecret string
	logger        *applog.Logger
}

// NewServer configures routes and returns a ready-to-run http.Server.
func NewServer(addr string, sink UpdateSink, webhookSecret string, logger *applog.Logger) *Server {
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	mux := http.NewServeMux()
	s := &Server{
		Server: http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
		sink:          sink,
		webhookSecret: webhookSecret,
		logger:        logger.WithComponent(applog.ComponentHTTP),
	}

	mux.HandleFunc("/", s.handleHome)
	mux.HandleFunc("/healthz", handleHealth)
	if sink != nil && webhookSecret != "" {
		mux.HandleFunc("/webhook/", s.handleWebhook)
	}
	return s
}

// Run serves until the context is cancelled, then drains with a timeout.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		if err := s.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	s.logger.Info("HTTP server listening", "addr", s.Addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return ctx.Err()
	}
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintln(w, "FinBot está rodando 🚀")
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, `{"status":"ok"}`)
}

// handleWebhook accepts POST /webhook/<secret> with a Telegram update
// payload. A wrong secret gets 404 so the route does not leak.
func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	got := strings.TrimPrefix(r.URL.Path, "/webhook/")
	if subtle.ConstantTimeCompare([]byte(got), []byte(s.webhookSecret)) != 1 {
		s.logger.Warn("Webhook called with wrong secret")
		http.NotFound(w, r)
		return
	}

	var update tgbotapi.Update
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		s.logger.Warn("Cannot decode webhook payload", applog.FieldError, err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	s.sink.ProcessUpdate(r.Context(), update)
	w.WriteHeader(http.StatusOK)
}
