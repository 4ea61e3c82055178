// cmd/main.go is the application entry point.
// It wires together all layers and starts the HTTP server.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/evently-app/evently/internal/config"
	"github.com/evently-app/evently/internal/database"
	"github.com/evently-app/evently/internal/handler"
	"github.com/evently-app/evently/internal/repository"
	"github.com/evently-app/evently/internal/service"
	"github.com/gorilla/sessions"
	"github.com/joho/godotenv"
)

func main() {
	ctx := context.Background()

	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	// ── 1. Connect to PostgreSQL and migrate ─────────────────────────────
	pool, err := database.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer pool.Close()

	if err := database.Migrate(cfg.DatabaseURL); err != nil {
		log.Fatalf("migrations: %v", err)
	}
	log.Println("connected to postgres, schema up to date")

	// ── 2. Wire up layers ────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(pool)
	sessionRepo := repository.NewSessionRepository(pool)
	eventRepo := repository.NewEventRepository(pool)
	rsvpRepo := repository.NewRsvpRepository(pool)

	authSvc := service.NewAuthService(userRepo, sessionRepo, cfg.SessionTTL)
	eventSvc := service.NewEventService(eventRepo, rsvpRepo)
	rsvpSvc := service.NewRsvpService(eventRepo, rsvpRepo)

	cookieStore := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	authHandler := handler.NewAuthHandler(authSvc, cookieStore)
	eventHandler := handler.NewEventHandler(eventSvc, rsvpSvc)
	rsvpHandler := handler.NewRsvpHandler(rsvpSvc)

	r := handler.NewRouter(authHandler, eventHandler, rsvpHandler)

	// ── 3. Start server with graceful shutdown ───────────────────────────
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Run in background goroutine so we can listen for shutdown signal.
	go func() {
		log.Printf("server listening on http://localhost:%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Block until SIGINT or SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("graceful shutdown failed: %v", err)
	}
	log.Println("server stopped")
}
