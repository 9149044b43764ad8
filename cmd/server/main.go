package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/sakshiv-ermaa/splitwise-app/internal/api"
	"github.com/sakshiv-ermaa/splitwise-app/internal/service"
	"github.com/sakshiv-ermaa/splitwise-app/internal/storage"
	"github.com/sakshiv-ermaa/splitwise-app/internal/storage/memory"
	"github.com/sakshiv-ermaa/splitwise-app/internal/storage/sqlite"
	"github.com/sakshiv-ermaa/splitwise-app/pkg/logging"
)

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func main() {
	// .env is optional; real env vars win either way.
	_ = godotenv.Load()
	logging.Setup()

	addr := ":" + getEnv("PORT", "8080")
	backend := getEnv("STORE_BACKEND", "sqlite")

	var (
		store storage.Store
		err   error
	)
	switch backend {
	case "memory":
		store = memory.New()
		slog.Info("Storage initialized", "backend", backend)
	default:
		dbPath := getEnv("DB_PATH", "./data/splitwise.db")
		store, err = sqlite.New(dbPath)
		if err != nil {
			slog.Error("Failed to initialize storage", "error", err, "database", dbPath)
			os.Exit(1)
		}
		slog.Info("Storage initialized", "backend", "sqlite", "database", dbPath)
	}
	defer store.Close()

	locks := service.NewGroupLocks()
	server := api.New(
		service.NewGroupService(store),
		service.NewLedgerService(store, locks),
		service.NewBalanceService(store, locks),
	)

	// h2c serves HTTP/2 without TLS for clients that want it.
	handler := h2c.NewHandler(server.Handler(), &http2.Server{})

	srv := &http.Server{
		Addr:           addr,
		Handler:        handler,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 16,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		slog.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
		cancel()
	}()

	slog.Info("Server starting", "address", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}

	<-ctx.Done()
	slog.Info("Server stopped gracefully")
}
