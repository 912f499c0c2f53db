package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/hawbir/minbar/backend/internal/config"
	"github.com/hawbir/minbar/backend/internal/server"
	"github.com/hawbir/minbar/backend/internal/storage"
)

func main() {
	cfg := config.Load()

	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is not set")
	}

	uploader, err := storage.NewMinIOClient(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize object storage: %v", err)
	}

	bucketCtx, bucketCancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := uploader.EnsureBucket(bucketCtx); err != nil {
		log.Fatalf("Failed to prepare upload bucket: %v", err)
	}
	bucketCancel()

	srv := server.NewServer(cfg, uploader)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Forced shutdown: %v", err)
	}

	log.Println("Server stopped")
}
