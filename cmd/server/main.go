package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"jobboard/internal/app"
	"jobboard/internal/config"
)

const shutdownGrace = 10 * time.Second

func main() {
	if err := run(); err != nil {
		log.Fatalf("[Server] %v", err)
	}
}

// run serves HTTP until the listener fails or SIGINT/SIGTERM arrives, then
// drains in-flight requests and releases the container.
func run() (err error) {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	addr, err := app.ListenAddr(cfg.App.HTTPPort)
	if err != nil {
		return fmt.Errorf("listen address: %w", err)
	}

	server, release, err := app.Bootstrap(cfg)
	if err != nil {
		return fmt.Errorf("bootstrap: %w", err)
	}
	defer func() {
		err = errors.Join(err, release())
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	served := make(chan error, 1)
	go func() { served <- server.Fiber.Listen(addr) }()
	log.Printf("[Server] %s (%s) listening on %s", cfg.App.AppName, cfg.App.Environment, addr)

	select {
	case listenErr := <-served:
		return listenErr
	case <-ctx.Done():
	}

	log.Printf("[Server] shutting down")
	drainCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	return server.Fiber.ShutdownWithContext(drainCtx)
}
