package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"picshare/app/auth"
	"picshare/app/config"
	"picshare/app/events"
	"picshare/app/repositories"
	"picshare/app/routes"
	"picshare/app/uploads"
)

const shutdownTimeout = 10 * time.Second

// Server is the running API: the open store, the optional broker
// connection and the HTTP handler built over them.
type Server struct {
	cfg     *config.Config
	logger  *slog.Logger
	store   *repositories.Repository
	nats    *events.NatsPublisher
	handler http.Handler
}

// NewServer opens the store and the broker (when configured) and builds the
// route table. Callers must Close the server.
func NewServer(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	if cfg.JWTSecret == config.DefaultSecret {
		logger.Warn("using the development JWT secret; set jwt_secret for real deployments")
	}

	store, err := repositories.NewRepository(cfg.DataDir, logger)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	images, err := uploads.NewDiskStore(cfg.UploadDir, cfg.PublicURL)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("upload directory: %w", err)
	}

	s := &Server{cfg: cfg, logger: logger, store: store}

	var publisher events.Publisher = events.Discard{}
	if cfg.NatsURL != "" {
		s.nats, err = events.Connect(cfg.NatsURL)
		if err != nil {
			store.Close()
			return nil, err
		}
		publisher = s.nats
		logger.Info("publishing notification events", "nats", cfg.NatsURL)
	}

	s.handler = routes.SetupRoutes(routes.Deps{
		Store:       store,
		Tokens:      auth.NewTokenService([]byte(cfg.JWTSecret), "picshare", cfg.TokenTTL),
		Images:      images,
		Publisher:   publisher,
		Logger:      logger,
		CORSOrigins: cfg.CORSOrigins,
	})
	return s, nil
}

func (s *Server) Handler() http.Handler {
	return s.handler
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		ErrorLog:          slog.NewLogLogger(s.logger.Handler(), slog.LevelError),
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// ListenAndServe listens on the configured address and serves until ctx ends.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Close releases the broker connection and the store.
func (s *Server) Close() error {
	var errs []error
	if s.nats != nil {
		errs = append(errs, s.nats.Close())
	}
	errs = append(errs, s.store.Close())
	return errors.Join(errs...)
}
