// glinetsim serves a simulated GL.iNet router: the firmware JSON-RPC
// surface on /rpc plus its own Prometheus metrics. It exists so that
// integrations can be developed and load-tested without hardware.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/glinet-go/glinet/internal/config"
	"github.com/glinet-go/glinet/internal/logger"
	"github.com/glinet-go/glinet/internal/sim"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	var (
		showVersion  = flag.Bool("version", false, "Show version information")
		scenarioFile = flag.String("scenario", "", "Path to a TOML scenario overlay")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("glinetsim %s\n", version)
		fmt.Printf("commit: %s\n", commit)
		fmt.Printf("built: %s\n", date)
		os.Exit(0)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if *scenarioFile != "" {
		cfg.Scenario.Path = *scenarioFile
	}

	logger.Init(cfg.Logging.Level)
	logger.Info("Starting glinetsim")

	scenario, err := sim.LoadScenario(cfg.Scenario.Path)
	if err != nil {
		logger.Fatalf("Failed to load scenario: %v", err)
	}
	if cfg.Scenario.Path != "" {
		logger.Infof("Scenario loaded from %s", cfg.Scenario.Path)
	}

	server := sim.New(scenario, sim.Options{
		Logger:      logger.Default,
		Jitter:      cfg.Scenario.Jitter,
		Seed:        cfg.Scenario.Seed,
		MetricsPath: cfg.Server.MetricsPath,
	})

	httpServer := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      server.Handler(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Infof("Listening on %s, RPC at /rpc, metrics at %s", cfg.Server.Addr, cfg.Server.MetricsPath)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-done
	logger.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Server shutdown error: %v", err)
	}
	logger.Info("Server stopped")
}
