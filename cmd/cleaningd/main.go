package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ImaiTakashi-biz/Request-metal-cleaning/config"
	"github.com/ImaiTakashi-biz/Request-metal-cleaning/internal/api"
	"github.com/ImaiTakashi-biz/Request-metal-cleaning/internal/db"
	"github.com/ImaiTakashi-biz/Request-metal-cleaning/internal/plan"
	"github.com/ImaiTakashi-biz/Request-metal-cleaning/internal/session"
	"github.com/ImaiTakashi-biz/Request-metal-cleaning/internal/store"
)

func main() {
	logger := log.New(os.Stdout, "cleaningd ", log.LstdFlags)

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatalf("failed to load configuration from %s: %v", configPath, err)
	}
	logger.Printf("configuration loaded successfully from %s", configPath)

	gormDB, err := db.Init(&cfg.Database)
	if err != nil {
		logger.Fatalf("failed to initialize database: %v", err)
	}
	logger.Println("database initialized successfully")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	appStore := store.NewGormStore(gormDB)
	cache := plan.NewCache()
	sess := session.New(appStore, cache, cfg)
	sess.SetStatusFunc(func(msg string) { logger.Println(msg) })
	sess.Start(ctx)
	logger.Println("plan session started")

	router := api.NewRouter(sess, cfg)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		logger.Printf("HTTP server starting on port %d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("HTTP server ListenAndServe: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	<-stop
	logger.Println("Shutdown signal received, stopping services...")

	// Give queued cell edits a chance to reach the store before exit.
	sess.Flush()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatalf("HTTP server Shutdown: %v", err)
	}

	if sqlDB, err := gormDB.DB(); err == nil {
		sqlDB.Close()
	}

	logger.Println("Server gracefully stopped")
}
