package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/NdopnnoabasiJames/Backend-Template/internal/app"
	"github.com/NdopnnoabasiJames/Backend-Template/internal/config"
)

func main() {
	// Missing .env is fine; the environment may carry everything already.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := app.Run(cfg); err != nil {
		log.Fatalf("app: %v", err)
	}
}
