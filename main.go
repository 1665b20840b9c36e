package main

import (
	"context"
	"log"

	"churnboard/internal/config"
	"churnboard/internal/container"
	"churnboard/ui"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	gin.SetMode(appConfig.Server.GinMode)

	appContainer, err := container.New(appConfig)
	if err != nil {
		log.Fatalf("Failed to create application container: %v", err)
	}
	defer appContainer.Shutdown(context.Background())

	if err := appContainer.Init(context.Background()); err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}

	// A failed first load is served as an error page until POST /api/reload succeeds.
	if err := appContainer.Dashboard.Load(context.Background()); err != nil {
		log.Printf("Initial load failed: %v", err)
	}

	server, err := ui.NewServer(appContainer.Dashboard, appContainer.Metrics)
	if err != nil {
		log.Fatalf("Failed to initialize server: %v", err)
	}

	log.Fatal(server.Start(":" + appConfig.Server.Port))
}
