// Package api exposes the assistant over HTTP. Each task route is a thin
// adapter: authenticate, decode the input, hand it to the orchestrator, map
// the outcome to a JSON response. No business logic lives here.
package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/shubhamrsharma28/Lawgorythm-Legal-Assistant/auth"
	"github.com/shubhamrsharma28/Lawgorythm-Legal-Assistant/task"
)

// maxRequestBodySize limits JSON POST bodies to prevent DoS.
const maxRequestBodySize = 1 << 20 // 1 MB

// maxMultipartBodySize limits document uploads.
const maxMultipartBodySize = 10 << 20 // 10 MB

// Server routes HTTP requests to the task orchestrator.
type Server struct {
	orch     *task.Orchestrator
	verifier auth.Verifier
	logger   *slog.Logger
}

// NewServer creates a server over the given collaborators.
func NewServer(orch *task.Orchestrator, verifier auth.Verifier, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		orch:     orch,
		verifier: verifier,
		logger:   logger,
	}
}

// Handler builds the full route table. Task routes sit behind bearer-token
// authentication; health and metrics do not.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/", s.handleRoot)
	mux.Handle("/metrics", promhttp.Handler())

	mux.HandleFunc("/fir/explain", s.requireAuth(s.handleFIRExplain))
	mux.HandleFunc("/fir-validator/validate", s.requireAuth(s.jsonTaskHandler(task.FIRValidate, "fir_draft_text")))
	mux.HandleFunc("/arguments/build", s.requireAuth(s.jsonTaskHandler(task.ArgumentBuild, "case_summary")))
	mux.HandleFunc("/cases/find-similar", s.requireAuth(s.jsonTaskHandler(task.CaseRetrieve, "case_summary")))
	mux.HandleFunc("/timeline/generate", s.requireAuth(s.jsonTaskHandler(task.CaseTimeline, "case_summary")))
	mux.HandleFunc("/predict/outcome", s.requireAuth(s.jsonTaskHandler(task.JudgmentPredict, "case_summary")))
	mux.HandleFunc("/chat/", s.requireAuth(s.jsonTaskHandler(task.Chat, "message")))

	return withCORS(mux)
}

// Run serves HTTP until the context is cancelled, then shuts down
// gracefully, draining in-flight requests.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		// Completion calls run up to the LLM timeout; leave headroom.
		WriteTimeout: 150 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("HTTP server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		s.logger.Info("Shutting down HTTP server")
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// handleRoot answers the health probe. The mux routes every unknown path
// here, so anything but exactly "/" is a 404.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeDetail(w, http.StatusNotFound, "Not found.")
		return
	}
	if r.Method != http.MethodGet {
		writeDetail(w, http.StatusMethodNotAllowed, "Method not allowed.")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "ArguMate Backend is Running!"})
}
