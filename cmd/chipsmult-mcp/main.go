package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"
	chipsmcp "github.com/peterkuimelis/chipsmult/internal/mcp"
	"github.com/rs/zerolog"
)

func main() {
	loadouts := flag.String("loadouts", "loadouts.yaml", "path to loadouts YAML file")
	seed := flag.Uint64("seed", 1, "seed for new sessions")
	logLevel := flag.String("log-level", "warn", "event log level (debug, info, warn)")
	flag.Parse()

	if lvl, err := zerolog.ParseLevel(*logLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	// stdout carries the MCP protocol
	chipsmcp.SetLoadoutsFile(*loadouts)
	chipsmcp.SetSeed(*seed)
	chipsmcp.SetLogger(zerolog.New(os.Stderr).With().Timestamp().Logger())

	s := server.NewMCPServer("chipsmult", "1.0.0")
	chipsmcp.RegisterTools(s)

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
