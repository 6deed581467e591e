// Package main runs the chess API server with optional persistence
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/VideosHosting/Chess/cmd/chessd/cli"
	"github.com/VideosHosting/Chess/internal/service"
	"github.com/VideosHosting/Chess/internal/storage"
	"github.com/VideosHosting/Chess/internal/transport/http"
)

const (
	gracefulShutdownTimeout = time.Second * 5

	rateLimit    = 10
	rateLimitDev = 20
)

func main() {
	// Database maintenance sub-commands
	if len(os.Args) > 1 && os.Args[1] == "db" {
		if err := cli.Run(os.Args[2:], os.Stdout); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		os.Exit(0)
	}

	var (
		apiHost       = flag.String("api-host", "localhost", "API server host")
		apiPort       = flag.Int("api-port", 8080, "API server port")
		dev           = flag.Bool("dev", false, "Development mode (relaxed rate limits, SQLite WAL)")
		storageDriver = flag.String("storage-driver", storage.DriverSQLite, "Storage backend: sqlite or badger")
		storagePath   = flag.String("storage-path", "", "Database file (sqlite) or directory (badger); disables persistence if empty")
		pidPath       = flag.String("pid", "", "Optional path to write PID file")
		pidLock       = flag.Bool("pid-lock", false, "Lock PID file to allow only one instance (requires -pid)")
	)
	flag.Parse()

	if *pidLock && *pidPath == "" {
		log.Fatal("Error: -pid-lock flag requires the -pid flag to be set")
	}

	if *pidPath != "" {
		pid, err := acquirePIDFile(*pidPath, *pidLock)
		if err != nil {
			log.Fatalf("Failed to manage PID file: %v", err)
		}
		defer pid.Release()
		log.Printf("PID file created at: %s (lock: %v)", *pidPath, *pidLock)
	}

	// 1. Storage (optional)
	var store storage.Store
	if *storagePath != "" {
		log.Printf("Initializing %s storage at: %s", *storageDriver, *storagePath)
		s, err := storage.Open(*storageDriver, *storagePath, *dev)
		if err != nil {
			log.Fatalf("Failed to initialize storage: %v", err)
		}
		if err := s.InitDB(); err != nil {
			s.Close()
			log.Fatalf("Failed to initialize schema: %v", err)
		}
		store = s
	} else {
		log.Printf("Persistent storage disabled (use -storage-path to enable)")
	}

	// 2. Service owns the store from here on
	svc := service.New(store)

	// 3. HTTP transport
	limit := rateLimit
	if *dev {
		limit = rateLimitDev
	}
	app := http.NewFiberApp(svc, http.Config{RequestsPerSecond: limit})

	apiAddr := fmt.Sprintf("%s:%d", *apiHost, *apiPort)

	go func() {
		log.Printf("Chess API Server starting...")
		log.Printf("API Listening on: http://%s", apiAddr)
		log.Printf("Rate Limit: %d requests/second per IP", limit)
		if store != nil {
			log.Printf("Storage: Enabled (%s, %s)", *storageDriver, *storagePath)
		} else {
			log.Printf("Storage: Disabled")
		}
		log.Printf("API Endpoints: http://%s/api/v1/games", apiAddr)
		log.Printf("Health: http://%s/health", apiAddr)

		if err := app.Listen(apiAddr); err != nil {
			log.Printf("API server listen error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
	defer shutdownCancel()

	// Service first so long-polling clients are released before the server drains
	if err := svc.Close(); err != nil {
		log.Printf("Service shutdown error: %v", err)
	}

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
