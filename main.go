package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"sentidash/internal/config"
	"sentidash/internal/container"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load(config.VariantCombined)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appContainer, err := container.New(appConfig)
	if err != nil {
		log.Fatalf("Failed to create application container: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Failed datasets stay in the viewer as placeholders.
	if err := appContainer.Load(ctx); err != nil {
		log.Fatalf("Failed to build dashboards: %v", err)
	}

	log.Printf("Starting combined dashboard viewer on http://localhost%s", appConfig.Addr())
	if err := appContainer.Run(ctx); err != nil {
		log.Fatal(err)
	}
}
