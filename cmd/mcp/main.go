package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"storylens/internal/config"
	"storylens/internal/mcpserver"
)

// main serves the analysis tools over stdio.
func main() {
	log.SetPrefix("[MCP] ")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := mcpserver.New(cfg).Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("failed to serve MCP: %v", err)
	}
}
