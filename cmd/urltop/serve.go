package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/tinytelemetry/urltop/internal/httpserver"
)

// runServe exposes the reports directory over HTTP until interrupted.
func runServe(cfg appConfig) error {
	cleanupLogger := configureRuntimeLogger(cfg.ScriptLog)
	defer cleanupLogger()

	if err := checkDirs(cfg.ReportDir); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	go func() {
		<-sigCh
		fmt.Println("\nShutting down...")
		cancel()
	}()

	srv := httpserver.NewServer(cfg.ServeAddr, cfg.ReportDir)
	fmt.Printf("Serving reports from %s on http://%s\n", cfg.ReportDir, srv.Addr())
	return srv.Run(ctx)
}
