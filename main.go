package main

import (
	log "github.com/sirupsen/logrus"

	"tv-alert-relay/app"
	"tv-alert-relay/config"
)

func main() {
	// Load config from .env file
	cfg := config.LoadFromEnv()

	// Create and start app
	application := app.New(cfg)
	if err := application.Start(); err != nil {
		log.Fatal(err)
	}
}
