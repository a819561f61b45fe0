package main

import (
	"log"

	"github.com/joho/godotenv"

	"datastory/internal"
	"datastory/internal/config"
	"datastory/ui"
)

func main() {
	// .env is optional; environment variables win either way.
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env")
	}

	cfg := config.Load()
	logger := internal.NewDefaultLogger()

	app, err := ui.NewApp(cfg, logger)
	if err != nil {
		log.Fatalf("Failed to create app: %v", err)
	}

	log.Printf("Starting Data Story on http://localhost:%s", cfg.Server.Port)
	log.Fatal(app.Start())
}
