package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/circuit-repair/internal/api"
	"github.com/vovakirdan/circuit-repair/internal/storage"
)

var (
	flagAPIAddr    string
	flagAPINoStore bool
)

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the HTTP JSON API",
	Long: `Serve level generation and checking over HTTP.

Endpoints:
  GET  /health                  - Liveness
  GET  /presets                 - Difficulty presets
  POST /levels                  - Generate a level: {"difficulty": "hard", "seed": 42}
  POST /levels/check            - Evaluate a level record's initial board
  GET  /results/{difficulty}    - Best results (unless --no-store)

Examples:
  circuit api
  circuit api --addr :9000
  curl -s -X POST localhost:8080/levels -d '{"difficulty":"easy"}'`,
	Args: cobra.NoArgs,
	Run:  runAPI,
}

func init() {
	apiCmd.Flags().StringVar(&flagAPIAddr, "addr", ":8080", "HTTP listen address (host:port)")
	apiCmd.Flags().BoolVar(&flagAPINoStore, "no-store", false, "Do not open the results database")
}

func runAPI(_ *cobra.Command, _ []string) {
	cfg := loadConfig()
	logger := newLogger("circuit-api")

	var store *storage.Store
	if !flagAPINoStore {
		s, err := storage.Open(flagDBPath)
		if err != nil {
			logger.Warn("could not open results database", "error", err)
		} else {
			store = s
			defer store.Close()
		}
	}

	httpServer := &http.Server{
		Addr:         flagAPIAddr,
		Handler:      api.New(cfg, store, logger),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	failed := make(chan error, 1)
	go func() {
		logger.Info("starting HTTP API", "address", flagAPIAddr, "presets", cfg.Presets.Names(), "config", cfg.Source)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			failed <- err
		}
	}()

	select {
	case err := <-failed:
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	case <-stop:
	}

	logger.Info("shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("shutdown", "error", err)
	}
}

// port returns the port part of a listen address, for the connect hint.
func port(addr string) string {
	if _, p, err := net.SplitHostPort(addr); err == nil {
		return p
	}
	return addr
}
