package main

import (
	"errors"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errInvalid) {
			log.Error().Err(err).Msg("pipeline-viz")
		}
		os.Exit(1)
	}
}
