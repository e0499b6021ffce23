// Package main provides the entry point for the MyScribe HTTP API server.
package main

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/samber/do/v2"

	"github.com/myscribe/myscribe-server/internal/di"
	"github.com/myscribe/myscribe-server/internal/di/providers"
	"github.com/myscribe/myscribe-server/internal/logger"
)

func main() {
	injector := di.NewContainer()

	if err := di.Bootstrap(injector); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to bootstrap server: %v\n", err)
		os.Exit(1)
	}

	log := do.MustInvoke[*logger.Logger](injector)
	serverHandle := do.MustInvoke[*providers.HTTPServerHandle](injector)

	go func() {
		log.Info("HTTP API listening", "addr", serverHandle.Addr)
		if err := serverHandle.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Advertise the API on the local network once it is listening.
	_ = do.MustInvoke[*providers.MDNSServiceHandle](injector)

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	// The DI container shuts providers down in reverse order.
	if err := injector.Shutdown(); err != nil {
		log.Error("Shutdown error", "error", err)
	}

	log.Info("Goodbye")
}
