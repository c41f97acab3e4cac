package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/peterkuimelis/chipsmult/internal/web"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
)

func main() {
	port := flag.Int("port", 8080, "HTTP port to listen on")
	loadoutsFile := flag.String("loadouts", "loadouts.yaml", "path to loadouts YAML file")
	seed := flag.Uint64("seed", 1, "seed for each table's random source")
	logLevel := flag.String("log-level", "info", "log level (debug, info, warn, error)")
	flag.Parse()

	if lvl, err := zerolog.ParseLevel(*logLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	zlog.Logger = zlog.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	srv, err := web.NewServer(*loadoutsFile, *seed, zlog.Logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", *port)
	zlog.Info().Msgf("chipsmult web UI listening on http://localhost:%d", *port)
	if err := srv.ListenAndServe(addr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
