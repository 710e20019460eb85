package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fulltask/tutor-api/internal/config"
	"github.com/fulltask/tutor-api/internal/server"
)

func main() {
	fs := flag.NewFlagSet("tutor-api", flag.ExitOnError)
	configPath := fs.String("config", "", "Optional YAML config file overlaying environment settings")
	host := fs.String("host", "", "Bind host (overrides config)")
	port := fs.Int("port", 0, "Listen port (overrides config)")
	verbose := fs.Bool("verbose", false, "Enable verbose request logging")
	fs.Parse(os.Args[1:])

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	if *host != "" {
		cfg.Host = *host
	}
	if *port != 0 {
		cfg.Port = *port
	}
	if *verbose {
		cfg.Verbose = true
	}

	if cfg.OpenAIKey == "" {
		slog.Warn("OPENAI_API_KEY not set; /api/ask and /api/transcribe will return errors until configured")
	}

	srv := server.New(cfg)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nShutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(ctx)
	}()

	slog.Info("FullTask Tutor API starting", "host", cfg.Host, "port", cfg.Port)
	if err := srv.ListenAndServe(); err != nil && err.Error() != "http: Server closed" {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}
