package main

import (
	"context"
	"errors"
	"fmt"
	stdlog "log"
	"net"
	"net/http"
	_ "net/http/pprof" //nolint:gosec // localhost-only ${PPROF_PORT}
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	application "grubdash/internal/app"
	"grubdash/internal/handlers/rest/fallback"
	"grubdash/internal/handlers/rest/healthcheck_head"
	"grubdash/internal/handlers/rest/order_delete"
	"grubdash/internal/handlers/rest/order_get"
	"grubdash/internal/handlers/rest/order_post"
	"grubdash/internal/handlers/rest/order_put"
	"grubdash/internal/handlers/rest/orders_get"
	"grubdash/internal/pkg/config"
	"grubdash/internal/pkg/dotenv"
	metrics_system "grubdash/internal/pkg/metrics"
	"grubdash/internal/pkg/middlewares/graceful_shutdown"
	"grubdash/internal/pkg/middlewares/metrics"
	"grubdash/internal/pkg/middlewares/rate_limiter"
	"grubdash/internal/pkg/middlewares/timeout"
	"grubdash/pkg/logger"
	"grubdash/pkg/logger/zap_adapter"
	"grubdash/pkg/token_bucket"
)

func main() {
	zapLogger, err := zap_adapter.NewZapAdapter()
	if err != nil {
		stdlog.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		if err := zapLogger.Sync(); err != nil {
			stdlog.Printf("failed to sync logger: %v", err)
		}
	}()

	var appLogger logger.Logger = zapLogger
	mainLog := appLogger.With()

	mainLog.Info("starting grubdash orders service")

	err = dotenv.Load()
	switch {
	case errors.Is(err, dotenv.ErrNoFile):
		mainLog.Warn("No .env file found, using system environment variables")
	case err != nil:
		mainLog.Error("failed to load .env file", logger.NewField("error", err))
		return
	}

	if err := dotenv.ApplyFlags(os.Args[1:]); err != nil {
		mainLog.Error("flags", logger.NewField("error", err))
		return
	}

	cfg, err := config.Load()
	if err != nil {
		mainLog.Error("load config", logger.NewField("error", err))
		return
	}

	err = run(context.Background(), cfg, appLogger)
	if err != nil {
		mainLog.Error("application failed", logger.NewField("error", err))
		return
	}
}

//nolint:contextcheck // shutdown contexts derive from context.Background() on purpose
func run(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	const (
		shutdownPeriod      = 15 * time.Second
		shutdownHardPeriod  = 3 * time.Second
		readinessDrainDelay = 5 * time.Second
	)

	// https://victoriametrics.com/blog/go-graceful-shutdown/#b-use-basecontext-to-provide-a-global-context-to-all-connections
	var isShuttingDown atomic.Bool

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	runLog := log.With()

	storage, closeStorage, err := application.OpenStorage(ctx, log, cfg)
	if err != nil {
		return err
	}
	defer closeStorage()

	publisher, closePublisher, err := application.OpenPublisher(ctx, log, cfg)
	if err != nil {
		return err
	}
	defer closePublisher()

	businessApp, err := application.InitializeApplication(ctx, log, storage, publisher, cfg)
	if err != nil {
		return fmt.Errorf("business logic: %w", err)
	}

	metrics_system.StartSystemMetricsCollector(ctx)

	// ongoingCtx backs BaseContext and outlives SIGTERM. It is cancelled only
	// after server.Shutdown() so in-flight requests can finish.
	ongoingCtx, stopOngoingGracefully := context.WithCancel(context.Background())
	defer stopOngoingGracefully()

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: initRouter(ongoingCtx, log, &isShuttingDown, businessApp, storage, cfg.Server),
		BaseContext: func(_ net.Listener) context.Context {
			return ongoingCtx
		},

		ReadHeaderTimeout: 5 * time.Second, // Slowloris DoS gosec G112
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		defer close(serverErr)
		runLog.Info("server starting",
			logger.NewField("port", cfg.Server.Port),
			logger.NewField("store", cfg.Orders.Store),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	var pprofServer *http.Server
	var pprofServerErr chan error
	if cfg.Server.PprofEnabled {
		pprofServer = &http.Server{
			Addr:    fmt.Sprintf(":%s", cfg.Server.PprofPort),
			Handler: initPprofRouter(log, &isShuttingDown, storage),
			BaseContext: func(_ net.Listener) context.Context {
				return ongoingCtx
			},

			ReadHeaderTimeout: 5 * time.Second, // Slowloris DoS gosec G112
			ReadTimeout:       60 * time.Second,
			WriteTimeout:      60 * time.Second,
			IdleTimeout:       60 * time.Second,
		}

		pprofServerErr = make(chan error, 1)
		go func() {
			defer close(pprofServerErr)
			runLog.Info("pprof server starting",
				logger.NewField("port", cfg.Server.PprofPort),
			)
			if err := pprofServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				pprofServerErr <- err
			}
		}()
	}

	// a nil pprofServerErr blocks forever, so that case is ignored when pprof is off
	select {
	case <-ctx.Done():
		runLog.Info("Shutdown signal received")
	case err := <-serverErr:
		return fmt.Errorf("server: %w", err)
	case err := <-pprofServerErr:
		return fmt.Errorf("pprof server: %w", err)
	}

	stop()
	isShuttingDown.Store(true)

	time.Sleep(readinessDrainDelay)
	runLog.Info("draining requests")

	// ctx is already cancelled here
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownPeriod)
	defer cancel()

	var shutdownErr error
	err = server.Shutdown(shutdownCtx)
	if pprofServer != nil {
		shutdownErr = pprofServer.Shutdown(shutdownCtx)
		if shutdownErr != nil {
			runLog.Error("pprof server shutdown error", logger.NewField("error", shutdownErr))
		} else {
			runLog.Info("pprof server stopped")
		}
	}

	stopOngoingGracefully()
	if err != nil || shutdownErr != nil {
		runLog.Info("Graceful shutdown timeout, forcing close")
		time.Sleep(shutdownHardPeriod)
	}

	businessApp.BackgroundWorkers.Wait()

	runLog.Info("Server stopped")
	return nil
}

func initRouter(
	ongoingCtx context.Context,
	log logger.Logger,
	isShuttingDown *atomic.Bool,
	app *application.Application,
	storage *application.Storage,
	cfg config.HTTPServer,
) http.Handler {
	router := mux.NewRouter()

	router.NotFoundHandler = fallback.NewNotFound(log)
	router.MethodNotAllowedHandler = fallback.NewMethodNotAllowed(log)

	router.Use(graceful_shutdown.Middleware(isShuttingDown, ongoingCtx))

	router.Use(timeout.Middleware(cfg.RequestTimeout))
	router.Use(metrics.Middleware(log))
	router.Use(rate_limiter.Middleware(log, cfg.RateLimiterBurst, token_bucket.NewTokenBucket(cfg.RateLimiterBurst, float64(cfg.RateLimiterQPS))))
	router.Handle("/metrics", promhttp.Handler())

	router.Handle("/healthcheck", healthcheck_head.New(log, isShuttingDown, storage.Pinger)).Methods(http.MethodHead)

	router.Handle("/orders", orders_get.New(log, app.ServiceOrder)).Methods(http.MethodGet)
	router.Handle("/orders", order_post.New(log, app.ServiceOrder)).Methods(http.MethodPost)
	router.Handle("/orders/{orderId}", order_get.New(log, app.ServiceOrder)).Methods(http.MethodGet)
	router.Handle("/orders/{orderId}", order_put.New(log, app.ServiceOrder)).Methods(http.MethodPut)
	router.Handle("/orders/{orderId}", order_delete.New(log, app.ServiceOrder)).Methods(http.MethodDelete)

	return router
}

func initPprofRouter(log logger.Logger, isShuttingDown *atomic.Bool, storage *application.Storage) http.Handler {
	router := mux.NewRouter()

	router.Handle("/healthcheck", healthcheck_head.New(log, isShuttingDown, storage.Pinger)).Methods(http.MethodHead)
	router.PathPrefix("/debug/pprof/").Handler(http.DefaultServeMux)

	return router
}
