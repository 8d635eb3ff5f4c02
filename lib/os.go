package lib

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
)

// HandleInterrupt blocks until the process receives SIGINT or SIGTERM, runs the
// given shutdown hooks and then exits.
func HandleInterrupt(onShutdown ...func()) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	sig := <-c
	for _, f := range onShutdown {
		f()
	}
	log.Fatal().Str("signal", sig.String()).Msg("process interrupted")
}
