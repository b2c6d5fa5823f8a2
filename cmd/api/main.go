package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	zlog "github.com/rs/zerolog/log"

	"github.com/Lelo88/lista-desejos-api/internal/auth"
	"github.com/Lelo88/lista-desejos-api/internal/config"
	"github.com/Lelo88/lista-desejos-api/internal/db"
	"github.com/Lelo88/lista-desejos-api/internal/docs"
	"github.com/Lelo88/lista-desejos-api/internal/health"
	"github.com/Lelo88/lista-desejos-api/internal/httpx"
	"github.com/Lelo88/lista-desejos-api/internal/logger"
	"github.com/Lelo88/lista-desejos-api/internal/metrics"
	"github.com/Lelo88/lista-desejos-api/internal/wishlist"
)

const serviceName = "lista-desejos-api"

// appPool es lo que la app usa del pool de pgx. Permite tests sin DB real.
type appPool interface {
	health.Pinger
	wishlist.Database
	Close()
}

type appDeps struct {
	loadConfig func() (config.Config, error)
	newPool    func(ctx context.Context, opts db.Options) (appPool, error)
	newLogger  func(cfg config.Config) *logger.Logger
	serve      func(ctx context.Context, server *http.Server, shutdownTimeout time.Duration) error
}

// Variables de paquete para poder reemplazarlas en tests.
var (
	loadConfigFn = config.Load
	newPoolFn    = func(ctx context.Context, opts db.Options) (appPool, error) {
		pool, err := db.NewPool(ctx, opts)
		if err != nil {
			return nil, err
		}
		return pool, nil
	}
	newLoggerFn = func(cfg config.Config) *logger.Logger {
		return logger.New(logger.Options{
			ServiceName: serviceName,
			Level:       cfg.LogLevel,
			Format:      cfg.LogFormat,
		})
	}
	serveFn = serveHTTP
	fatalf  = func(err error) {
		zlog.Fatal().Err(err).Msg("api stopped")
	}
)

func main() {
	// Contexto raíz del proceso: se cancela con SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := run(ctx, appDeps{
		loadConfig: loadConfigFn,
		newPool:    newPoolFn,
		newLogger:  newLoggerFn,
		serve:      serveFn,
	})
	if err != nil {
		fatalf(err)
	}
}

func run(ctx context.Context, deps appDeps) error {
	cfg, err := deps.loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := deps.newLogger(cfg)

	pool, err := deps.newPool(ctx, db.Options{URL: cfg.DatabaseURL, MaxConns: cfg.DBMaxConns})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer pool.Close()

	verifier, err := auth.NewVerifier(cfg.JWTSecret, cfg.JWTAudience)
	if err != nil {
		return fmt.Errorf("jwt verifier: %w", err)
	}

	router := buildRouter(routerDeps{
		cfg:      cfg,
		pool:     pool,
		verifier: verifier,
		log:      log,
		metrics:  metrics.NewHTTPMetrics(),
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	log.Info().Str("addr", server.Addr).Str("table", cfg.TableName).Msg("listening")
	if err := deps.serve(ctx, server, cfg.ShutdownTimeout); err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	log.Info().Msg("server stopped")
	return nil
}

// serveHTTP atiende hasta que ctx se cancela y luego hace un shutdown ordenado.
func serveHTTP(ctx context.Context, server *http.Server, shutdownTimeout time.Duration) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

type routerDeps struct {
	cfg      config.Config
	pool     appPool
	verifier auth.TokenVerifier
	log      *logger.Logger
	metrics  *metrics.HTTPMetrics
}

func buildRouter(deps routerDeps) http.Handler {
	r := chi.NewRouter()

	// Middlewares base para trazabilidad y estabilidad.
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logger.Middleware(deps.log))
	r.Use(httpx.EchoRequestID)
	r.Use(middleware.Recoverer)
	r.Use(deps.metrics.Middleware)
	r.Use(middleware.Timeout(deps.cfg.RequestTimeout))

	// Errores de routing se manejan a nivel router.
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httpx.Fail(w, r, http.StatusNotFound, "not_found", "resource not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		httpx.Fail(w, r, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
	})

	health.New(deps.pool).RegisterRoutes(r)
	docs.RegisterRoutes(r)
	r.Method(http.MethodGet, "/metrics", deps.metrics.Handler())

	repository := wishlist.NewRepository(deps.pool, wishlist.RepositoryConfig{
		Table:        deps.cfg.TableName,
		QueryTimeout: deps.cfg.QueryTimeout,
	})
	handler := wishlist.NewHandler(wishlist.NewService(repository))
	wishlist.RegisterRoutes(r, handler, auth.Middleware(deps.verifier))

	return r
}
