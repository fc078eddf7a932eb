package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/okandemir/studentdesk/internal/pkg/logger"
	"github.com/okandemir/studentdesk/internal/server"
)

func main() {
	// Local development convenience; deployed environments set real env vars.
	_ = godotenv.Load()

	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed")
		os.Exit(1)
	}
}
