// Package main runs the personal-banking record API.
package main

import (
	"github.com/rs/zerolog/log"

	"github.com/go-finbook/finbook/cmd/httpserver"
	"github.com/go-finbook/finbook/internal/middleware"
	"github.com/go-finbook/finbook/pkg/configpkg"
)

func main() {
	config, err := configpkg.Load("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	logger := middleware.CreateLogger(config)

	server := httpserver.New(logger, config)

	logger.Info().Str("address", config.ServerAddress).Msg("FINBOOK API SERVER HAS STARTED")

	err = server.Engine.Run(config.ServerAddress)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot start server")
	}
}
