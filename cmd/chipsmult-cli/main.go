package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"os/signal"
	"strings"

	"github.com/peterkuimelis/chipsmult/internal/game"
	"github.com/peterkuimelis/chipsmult/internal/log"
	chipsnet "github.com/peterkuimelis/chipsmult/internal/net"
	"github.com/rs/zerolog"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	switch cmd {
	case "eval":
		runEval(os.Args[2:])
	case "serve":
		runServe(os.Args[2:])
	case "play":
		runPlay(os.Args[2:])
	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  chipsmult eval [--loadout N] [--loadouts FILE] [--boss NAME] [--seed S] [-q] CARDS...")
	fmt.Println("  chipsmult serve [--loadout N] [--loadouts FILE] [--port P] [--seed S]")
	fmt.Println("  chipsmult play [--addr ADDR]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  eval    Score one hand and print the event trace")
	fmt.Println("  serve   Host a scoring table over TCP")
	fmt.Println("  play    Connect to a table and play interactively")
	fmt.Println()
	fmt.Println("Cards use compact notation, e.g. 7h 7s:glass Kd:red:foil")
}

func loadLoadout(file string, n int) (game.Loadout, error) {
	if n == 0 {
		return game.Loadout{Name: "blank"}, nil
	}
	return game.LoadoutByNumber(file, n)
}

func runEval(args []string) {
	fs := flag.NewFlagSet("eval", flag.ExitOnError)
	n := fs.Int("loadout", 0, "loadout number (from loadouts.yaml); 0 for an empty table")
	loadoutsFile := fs.String("loadouts", "loadouts.yaml", "path to loadouts file")
	boss := fs.String("boss", "", "boss constraint, overrides the loadout's")
	seed := fs.Uint64("seed", 1, "seed for lucky and glass rolls")
	quiet := fs.Bool("q", false, "print only the result")
	fs.Parse(args)

	if fs.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: no cards given")
		os.Exit(1)
	}
	l, err := loadLoadout(*loadoutsFile, *n)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *boss != "" {
		l.Boss = *boss
	}

	var logger log.EventLogger
	if !*quiet {
		logger = log.NewTextLogger(os.Stdout)
	}
	rng := rand.New(rand.NewPCG(*seed, 0))
	ev, st, err := l.BuildWithRand(logger, rng)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	cards, err := game.ParseCards(strings.Join(fs.Args(), " "))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	res, err := ev.Evaluate(st, cards, rng)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Rejected: %v\n", err)
		os.Exit(2)
	}
	fmt.Printf("%s (level %d): %d chips x %g mult x %g = %d\n",
		res.Category, res.Level.Level, res.Chips, res.Mult, res.Factor, res.Score)
	for _, fx := range res.Effects {
		fmt.Printf("  %s\n", fx)
	}
}

func runServe(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	n := fs.Int("loadout", 1, "loadout number (from loadouts.yaml); 0 for an empty table")
	loadoutsFile := fs.String("loadouts", "loadouts.yaml", "path to loadouts file")
	port := fs.String("port", "9000", "TCP port to listen on")
	seed := fs.Uint64("seed", 1, "seed for each table's random source")
	fs.Parse(args)

	l, err := loadLoadout(*loadoutsFile, *n)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	srv := &chipsnet.Server{
		Loadout: l,
		Port:    *port,
		Seed:    *seed,
		Logger:  zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger(),
	}
	if err := srv.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runPlay(args []string) {
	fs := flag.NewFlagSet("play", flag.ExitOnError)
	addr := fs.String("addr", "localhost:9000", "server address to connect to")
	fs.Parse(args)

	if err := chipsnet.Connect(context.Background(), *addr, os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
