// Package web serves the dashboard document and turns operator form posts
// into dashboard operations.
package web

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/manifest-network/ledgerdash/internal/dashboard"
	"github.com/manifest-network/ledgerdash/internal/models"
)

const (
	DefaultRefreshWait = 2 * time.Second
	defaultListLimit   = 50
	shutdownTimeout    = 5 * time.Second
)

// TransferLister lists journaled transfers, newest first.
type TransferLister interface {
	Recent(ctx context.Context, limit int) ([]models.Transfer, error)
}

type Option func(*Server)

// WithRefreshWait bounds how long POST /refresh waits for the cycle before
// redirecting back to the page.
func WithRefreshWait(d time.Duration) Option {
	return func(s *Server) {
		s.refreshWait = d
	}
}

func WithTransferLister(l TransferLister) Option {
	return func(s *Server) {
		s.transfers = l
	}
}

type Server struct {
	dash        *dashboard.Dashboard
	transfers   TransferLister
	refreshWait time.Duration
	// ctx outlives individual requests and bounds background refreshes.
	ctx context.Context
	mux *http.ServeMux
}

func NewServer(ctx context.Context, dash *dashboard.Dashboard, opts ...Option) *Server {
	s := &Server{
		dash:        dash,
		refreshWait: DefaultRefreshWait,
		ctx:         ctx,
		mux:         http.NewServeMux(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.mux.HandleFunc("GET /{$}", s.handlePage)
	s.mux.HandleFunc("POST /refresh", s.handleRefresh)
	s.mux.HandleFunc("POST /transfer/{index}", s.handleTransfer)
	s.mux.HandleFunc("GET /api/transfers", s.handleTransfers)
	return s
}

func (s *Server) Handler() http.Handler {
	return s.mux
}

// Run serves on addr until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	server := &http.Server{
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Serving dashboard", "addr", ln.Addr().String())
		errCh <- server.Serve(ln)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down dashboard server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := s.dash.Render(r.Context(), &buf); err != nil {
		slog.Error("Failed to render dashboard", "error", err)
		http.Error(w, "failed to render dashboard", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	done := s.dash.Refresh(s.ctx)

	timer := time.NewTimer(s.refreshWait)
	defer timer.Stop()

	select {
	case err := <-done:
		if err != nil {
			slog.Error("Refresh failed", "error", err)
		}
	case <-timer.C:
		slog.Debug("Refresh still in progress, redirecting")
	case <-r.Context().Done():
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleTransfer(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		http.Error(w, "invalid peer index", http.StatusNotFound)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	err = s.dash.SetForm(r.Context(), index, r.PostForm.Get("payee"), r.PostForm.Get("amount"))
	switch {
	case errors.Is(err, dashboard.ErrUnknownPeer):
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	case errors.Is(err, dashboard.ErrUnknownPayee):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case err != nil:
		slog.Error("Failed to fill transfer form", "peer", index+1, "error", err)
		http.Error(w, "failed to fill transfer form", http.StatusInternalServerError)
		return
	}

	if !s.dash.Submit(r.Context(), index, dashboard.NewSubmitEvent()) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleTransfers(w http.ResponseWriter, r *http.Request) {
	if s.transfers == nil {
		http.Error(w, "journal is not configured", http.StatusServiceUnavailable)
		return
	}

	limit := defaultListLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}

	list, err := s.transfers.Recent(r.Context(), limit)
	if err != nil {
		slog.Error("Failed to list transfers", "error", err)
		http.Error(w, "failed to list transfers", http.StatusInternalServerError)
		return
	}
	if list == nil {
		list = []models.Transfer{}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(list); err != nil {
		slog.Error("Failed to encode transfers", "error", err)
	}
}
