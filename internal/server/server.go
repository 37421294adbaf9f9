// Package server provides the HTTP gateway that drives token authentication.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rgjamkhedkar/passport-token-google/internal/config"
	"github.com/rgjamkhedkar/passport-token-google/internal/logger"
	"github.com/rgjamkhedkar/passport-token-google/internal/middleware"
	"github.com/rgjamkhedkar/passport-token-google/internal/strategy"
	"github.com/rgjamkhedkar/passport-token-google/internal/utils"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	// shutdownTimeout is the maximum time to wait for server shutdown
	shutdownTimeout = 5 * time.Second
)

// Server is the HTTP gateway. It exposes a public health endpoint and an
// identity endpoint guarded by the configured authentication strategy.
type Server struct {
	config   *config.Config
	registry *strategy.Registry
}

type Params struct {
	fx.In

	Config   *config.Config
	Registry *strategy.Registry
}

// NewServer creates the gateway server from its configuration and the
// strategy registry.
func NewServer(params Params) *Server {
	if params.Config == nil {
		logger.Fatal("Config cannot be nil")
	}
	if params.Registry == nil {
		logger.Fatal("Registry cannot be nil")
	}

	return &Server{
		config:   params.Config,
		registry: params.Registry,
	}
}

// Handler builds the gateway's HTTP handler.
func (s *Server) Handler() (http.Handler, error) {
	guard, err := s.registry.Get(s.config.OAuth.Strategy)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealthz)
	mux.Handle("/me", middleware.Authenticate(guard)(http.HandlerFunc(s.handleMe)))

	var handler http.Handler = mux
	handler = middleware.CORSWithOrigins(s.config.Server.AllowOrigins)(handler)
	handler = middleware.Logging(handler)
	handler = middleware.RequestID(handler)
	return handler, nil
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	info, ok := middleware.AuthFromContext(r.Context())
	if !ok {
		utils.WriteError(w, "server_error", "no authentication info in context", http.StatusInternalServerError)
		return
	}
	utils.WriteJSON(w, http.StatusOK, info.User)
}

// Start runs the server until the context is cancelled, then shuts it down
// gracefully.
func (s *Server) Start(ctx context.Context) error {
	handler, err := s.Handler()
	if err != nil {
		return err
	}

	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	server := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	// Channel for server errors
	errChan := make(chan error, 1)

	// Start server in a goroutine
	go func() {
		logger.Info("Starting server",
			zap.String("address", addr),
			zap.Strings("strategies", s.registry.Names()),
		)

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("server error: %w", err)
		}
	}()

	// Wait for context cancellation or server error
	select {
	case <-ctx.Done():
		logger.Info("Shutting down server", zap.Duration("timeout", shutdownTimeout))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}
		return nil

	case err := <-errChan:
		return err
	}
}

// Module provides the gateway server dependencies
var Module = fx.Module("http_server",
	fx.Provide(
		NewServer,
		NewRegistry,
	),
)
