package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/linkstash/linkstash/internal/app"
)

func main() {
	// Load .env if present; real env vars take precedence.
	_ = godotenv.Load()

	a, err := app.New()
	if err != nil {
		log.Fatalf("❌ linkstash failed to start: %v", err)
	}
	if err := a.Run(); err != nil {
		log.Fatalf("❌ linkstash failed: %v", err)
	}
}
