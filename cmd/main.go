package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"

	"live-reviews/infrastructure/httpapi"
	"live-reviews/internal"
	"live-reviews/repositories"
	"live-reviews/runtime"
	"live-reviews/runtime/workers"
	"live-reviews/search"
	"live-reviews/services"
	"live-reviews/sink"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run initializes all components, manages the server lifecycle, and
// centralizes error reporting so every deferred cleanup executes before the
// process exits.
func run() error {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	// 2. Database (BadgerDB)
	db, err := badger.Open(badger.DefaultOptions(config.BadgerFilepath).
		WithLoggingLevel(badger.INFO))
	if err != nil {
		return fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		log.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	// 3. Full-text index (Bluge)
	index, err := search.NewIndex(log, config.BlugeFilepath)
	if err != nil {
		return fmt.Errorf("index opening failed: %w", err)
	}
	defer func() {
		log.Info("Closing search index...")
		_ = index.Close()
	}()

	// 4. Supervision & Broadcast core
	sup := workers.NewSupervisor(log, config.RestartInterval)
	registry := runtime.NewRegistry()
	repository := repositories.NewReviewRepository(db, log)

	broadcaster := runtime.NewBroadcaster(log, sup, registry, repository,
		config.BufferSize, config.SinkTimeout, config.MetricInterval)
	broadcaster.Add(sink.NewSearchSink(index, log))

	service := services.NewReviewService(broadcaster, index,
		config.MaxContentLength, config.SearchLimit)

	// 5. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 6. Start the Engine
	broadcaster.Start(ctx)

	if config.DebugPort != nil {
		internal.StartDebugServer(db, *config.DebugPort, "/inspect", nil, func() map[string]any {
			return map[string]any{
				"Sessions": broadcaster.SessionCount(),
				"Time":     time.Now().Format(time.RFC822),
			}
		})
		log.Info("Debug inspector started", "port", *config.DebugPort)
	}

	// 7. HTTP Server Setup
	address := fmt.Sprintf("%s:%d", config.Host, config.Port)
	server := httpapi.NewServer(log, service,
		config.AllowedOrigin, config.ConnectionBufferSize, config.WriteTimeout)
	httpServer := &http.Server{Addr: address, Handler: server.Router()}

	// Use an error channel to capture Serve() issues
	errChan := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "address", address, "at", time.Now().UTC())
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// 8. Wait for Stop or Error
	select {
	case <-ctx.Done():
		log.Info("Shutting down gracefully...")
	case err := <-errChan:
		return err
	}

	// 9. Final Cleanup
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = httpServer.Shutdown(shutdownCtx)
	broadcaster.Stop()
	log.Info("Program stopped cleanly")

	return nil
}
