package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/tripsplit/internal/config"
	"github.com/mmynk/tripsplit/internal/metrics"
	"github.com/mmynk/tripsplit/internal/middleware"
	"github.com/mmynk/tripsplit/internal/service"
	"github.com/mmynk/tripsplit/internal/storage"
	"github.com/mmynk/tripsplit/internal/storage/sqlite"
	"github.com/mmynk/tripsplit/pkg/api/apiconnect"
	"github.com/mmynk/tripsplit/pkg/logging"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	logging.SetupWithLevel(logging.ParseLevel(cfg.LogLevel))

	// Initialize SQLite storage
	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           newHandler(cfg, store, m, registry),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Connect server starting", "address", server.Addr, "url", "http://localhost"+server.Addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		slog.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("Graceful shutdown failed", "error", err)
		}
	}
}

// newHandler mounts the Connect services, health check and metrics behind the
// HTTP middleware chain.
func newHandler(cfg *config.Config, store storage.Store, m *metrics.Metrics, gatherer prometheus.Gatherer) http.Handler {
	opts := connect.WithInterceptors(middleware.LoggingInterceptor(), m.Interceptor())

	mux := http.NewServeMux()

	// Register Connect services
	mux.Handle(apiconnect.NewTripServiceHandler(service.NewTripService(store), opts))
	mux.Handle(apiconnect.NewMemberServiceHandler(service.NewMemberService(store), opts))
	mux.Handle(apiconnect.NewActivityServiceHandler(service.NewActivityService(store), opts))
	mux.Handle(apiconnect.NewExpenseServiceHandler(service.NewExpenseService(store), opts))
	mux.Handle(apiconnect.NewSettlementServiceHandler(service.NewSettlementService(store, m), opts))

	mux.HandleFunc("GET /api/health", healthHandler)
	mux.Handle("GET "+cfg.MetricsPath, metrics.Handler(gatherer))

	handler := middleware.RequestID(middleware.RequestLogger(middleware.CORS(cfg.CORSOrigin)(mux)))

	// Wrap with h2c for HTTP/2 without TLS (required for Connect)
	return h2c.NewHandler(handler, &http2.Server{})
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
}
