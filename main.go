package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	intconfig "transitlog/internal/config"
	router "transitlog/internal/http"
	"transitlog/internal/repositories"
	"transitlog/internal/services"

	"github.com/gin-gonic/gin"
)

func main() {
	env := intconfig.LoadEnv()
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	ledger := repositories.NewLedgerRepository()

	deps := router.Deps{}
	var archive services.TripArchive
	if env.ArchiveDSN != "" {
		db, err := intconfig.ConnectDB(env.ArchiveDSN)
		if err != nil {
			log.Fatalf("Failed to connect archive database: %v", err)
		}
		defer db.Close()

		repo := &repositories.TripArchiveRepository{DB: db}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		err = repo.EnsureSchema(ctx)
		cancel()
		if err != nil {
			log.Fatalf("Failed to prepare archive schema: %v", err)
		}
		deps.Archive = repo
		archive = repo
	} else {
		log.Println("ARCHIVE_DSN not set, running without MySQL archive")
	}

	deps.Transit = services.NewTransitService(ledger, archive, env.SingleActiveTrip)

	r := router.NewRouter(env, deps)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("Server listening on http://localhost%s", env.AppAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}
	deps.Transit.Close()

	log.Println("Server stopped cleanly.")
}
