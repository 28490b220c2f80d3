package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	config, err := loadConfig(getEnv("CONFIG_PATH", "config.yaml"))
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var database *sql.DB
	if config.Store.Mode == storeModePostgres {
		database, err = setupDatabase(databaseConfigFromEnv())
		if err != nil {
			log.Fatalf("Failed to setup database: %v", err)
		}
		defer database.Close()
	}

	services, err := setupServices(ctx, config, database)
	if err != nil {
		log.Fatalf("Failed to setup services: %v", err)
	}

	go services.ConnManager.Start(ctx)

	if services.OutboxListener != nil {
		go func() {
			if err := services.OutboxListener.Start(ctx); err != nil {
				log.Printf("Outbox listener stopped: %v", err)
			}
		}()
	}

	if services.EventConsumer != nil {
		go func() {
			if err := services.EventConsumer.Start(ctx); err != nil {
				log.Printf("Event consumer stopped: %v", err)
			}
		}()
		defer services.EventConsumer.Stop()
	}

	server := setupServer(config, services)

	go func() {
		log.Printf("Server listening on %s (store=%s)", server.Addr, config.Store.Mode)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown: %v", err)
	}
}
