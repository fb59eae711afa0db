// cmd/case-server/main.go
package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"case-collector/internal/caseform"
	"case-collector/internal/common/config"
	"case-collector/internal/common/logger"
	"case-collector/internal/common/observability"
	"case-collector/pkg/catalog"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New("info", "console")
		bootLog.Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting case server...",
		zap.String("environment", cfg.App.Environment),
		zap.String("address", cfg.Server.Address),
	)

	var obs *observability.Observability
	if cfg.Observability.Enabled {
		obs = observability.New(cfg.Observability.ServiceName)
		defer obs.Shutdown()
	}

	cat := catalog.Default()
	if cfg.Form.CatalogPath != "" {
		cat, err = catalog.LoadCatalog(cfg.Form.CatalogPath)
		if err != nil {
			zapLog.Fatal("catalog load failed", zap.String("path", cfg.Form.CatalogPath), zap.Error(err))
		}
		zapLog.Info("Loaded option catalog", zap.String("path", cfg.Form.CatalogPath), zap.String("version", cat.Version))
	}

	handler, err := caseform.NewHandler(caseform.HandlerOptions{
		AppConfig:     cfg,
		Logger:        log,
		Catalog:       cat,
		Observability: obs,
	})
	if err != nil {
		zapLog.Fatal("failed to create case form handler", zap.Error(err))
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, "healthy")
	})
	router.Get("/ready", func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, "ready")
	})
	router.Handle("/metrics", promhttp.Handler())
	handler.Register(router)

	srv := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  config.GetDuration(cfg.Server.ReadTimeout),
		WriteTimeout: config.GetDuration(cfg.Server.WriteTimeout),
	}

	go func() {
		zapLog.Info("Case server listening", zap.String("address", cfg.Server.Address))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLog.Fatal("case server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Server.ShutdownTimeout))
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error shutting down server", zap.Error(err))
	}

	zapLog.Info("Case server stopped gracefully")
}

func writeStatus(w http.ResponseWriter, status string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status": status,
		"time":   time.Now().Format(time.RFC3339),
	})
}
