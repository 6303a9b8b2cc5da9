package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"github.com/spf13/cobra"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
	"golang.org/x/sync/errgroup"

	"github.com/mmynk/creaturemap/internal/auth"
	"github.com/mmynk/creaturemap/internal/config"
	"github.com/mmynk/creaturemap/internal/events"
	"github.com/mmynk/creaturemap/internal/location"
	"github.com/mmynk/creaturemap/internal/metrics"
	"github.com/mmynk/creaturemap/internal/middleware"
	"github.com/mmynk/creaturemap/internal/service"
	"github.com/mmynk/creaturemap/internal/storage"
	"github.com/mmynk/creaturemap/internal/storage/sqlite"
	"github.com/mmynk/creaturemap/pkg/api/apiconnect"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the Connect API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return serve(ctx, cfg)
	},
}

func serve(ctx context.Context, cfg *config.Config) error {
	hub := events.NewHub()
	defer hub.Close()

	if cfg.NATS.URL != "" {
		mirror, err := events.ConnectNATS(cfg.NATS.URL, cfg.NATS.SubjectPrefix)
		if err != nil {
			return fmt.Errorf("failed to connect to NATS: %w", err)
		}
		defer mirror.Close()
		mirror.Attach(hub)
		slog.Info("Mirroring changes to NATS", "url", cfg.NATS.URL, "prefix", cfg.NATS.SubjectPrefix)
	}

	// Initialize SQLite storage
	store, err := sqlite.New(cfg.Database.Path, sqlite.WithHub(hub))
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.Database.Path)

	handler, drafts := newHandler(cfg, store)

	g, gctx := errgroup.WithContext(ctx)
	srv := newServer(gctx, fmt.Sprintf(":%d", cfg.Server.Port), handler)

	g.Go(func() error {
		slog.Info("Connect server starting", "address", srv.Addr, "auth", cfg.Auth.Enabled)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return drafts.Run(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// newServer serves handler over HTTP/1.1 and h2c. Request contexts derive
// from ctx, so cancelling it ends open streams and lets Shutdown finish.
func newServer(ctx context.Context, addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr: addr,
		// Wrap with h2c for HTTP/2 without TLS (required for Connect streams)
		Handler:           h2c.NewHandler(handler, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
}

// newHandler mounts every service plus /metrics and /healthz. The returned
// DraftService must be Run to expire idle sessions.
func newHandler(cfg *config.Config, store storage.Store) (http.Handler, *service.DraftService) {
	interceptors := []connect.Interceptor{middleware.LoggingInterceptor()}
	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenDuration)
	if cfg.Auth.Enabled {
		interceptors = append(interceptors, middleware.RequireAuth(jwtManager, service.PublicProcedures...))
	}
	opts := connect.WithInterceptors(interceptors...)

	drafts := service.NewDraftService(store, cfg.Draft.SessionTTL)
	authSvc := service.NewAuthService(auth.NewPasswordAuthenticator(store), jwtManager, store, slog.Default())

	mux := http.NewServeMux()

	// Register Connect services
	mux.Handle(apiconnect.NewCatalogServiceHandler(service.NewCatalogService(store), opts))
	mux.Handle(apiconnect.NewObservationServiceHandler(service.NewObservationService(store), opts))
	mux.Handle(apiconnect.NewDraftServiceHandler(drafts, opts))
	mux.Handle(apiconnect.NewPreferencesServiceHandler(service.NewPreferencesService(store), opts))
	mux.Handle(apiconnect.NewLocationServiceHandler(service.NewLocationService(location.NewTracker(cfg.Location.Interval)), opts))
	if cfg.Auth.Enabled {
		mux.Handle(apiconnect.NewAuthServiceHandler(authSvc, opts))
	}

	mux.Handle("/metrics", metrics.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if _, err := store.ListCategories(r.Context()); err != nil {
			http.Error(w, "storage unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	})

	// Add logging and CORS middleware
	return loggingMiddleware(corsMiddleware(mux)), drafts
}
