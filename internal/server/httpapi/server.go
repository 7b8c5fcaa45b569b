package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/minhtran/taskkeeper/internal/logging"
)

// Router assembles the route table: public auth endpoints, the liveness
// probe, and the task/nlp group behind bearer authentication.
func Router(h *Handler, secretKey []byte) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/", h.handleStatus)

	r.Route("/api", func(r chi.Router) {
		r.Post("/register/request-otp", h.handleRequestOTP)
		r.Post("/register/verify-otp", h.handleVerifyOTP)
		r.Post("/login", h.handleLogin)

		r.Group(func(r chi.Router) {
			r.Use(Authenticate(secretKey))

			r.Get("/tasks", h.handleListTasks)
			r.Post("/tasks", h.handleCreateTask)
			r.Put("/tasks/{id}", h.handleUpdateTask)
			r.Delete("/tasks/{id}", h.handleDeleteTask)

			r.Post("/nlp", h.handleExtractTask)
		})
	})

	return r
}

// Server wraps the HTTP listener with context-driven shutdown.
type Server struct {
	httpServer *http.Server
	logger     logging.Logger
}

func NewServer(addr string, router http.Handler, logger logging.Logger) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:    addr,
			Handler: router,
		},
		logger: logger.With("module", "httpapi"),
	}
}

// Run serves until the context is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		s.logger.Info(ctx, "Starting HTTP server", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return <-errCh
	}
}
