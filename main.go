package main

import (
	"log"

	"eduplatform_backend/internal/app"
	"eduplatform_backend/internal/config"
	"eduplatform_backend/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	application.Run()
}
