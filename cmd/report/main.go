package main

import (
	"os"

	"github.com/rs/zerolog/log"

	"github.com/ANIKETSHETTY47/sustainable-resource-dashboard/internal/config"
)

func main() {
	if err := config.Load(); err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}
	config.SetupLogging(config.LogLevel(), config.LogFormat())

	if err := newRootCmd(openRepos, newUploader).Execute(); err != nil {
		os.Exit(1)
	}
}
