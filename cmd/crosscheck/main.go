package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"

	"chessbox/internal/crosscheck"
)

func main() {
	oracle := flag.String("oracle", "dragontooth", "Move generator to compare against ("+strings.Join(crosscheck.OracleNames(), ", ")+")")
	games := flag.Int("games", 20, "Number of random games to play")
	plies := flag.Int("plies", 200, "Maximum plies per game")
	seed := flag.Int64("seed", 1, "Random seed for move selection")
	verbose := flag.Bool("v", false, "Log one line per game")
	flag.Parse()

	log.SetFlags(0)
	log.SetPrefix("crosscheck: ")

	newOracle, err := crosscheck.Lookup(*oracle)
	if err != nil {
		log.Fatal(err)
	}
	if *games <= 0 || *plies <= 0 {
		fmt.Fprintln(os.Stderr, "-games and -plies must be > 0")
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg := crosscheck.Config{Games: *games, Plies: *plies, Seed: *seed}
	if *verbose {
		cfg.Logger = log.Default()
	}
	rep, err := crosscheck.Run(ctx, cfg, newOracle)
	fmt.Printf("oracle=%s games=%d plies=%d mismatches=%d\n", rep.Oracle, rep.Games, rep.Plies, len(rep.Mismatches))
	for _, m := range rep.Mismatches {
		fmt.Println(m)
		fmt.Println(m.Board)
	}
	if err != nil {
		log.Fatal(err)
	}
	if len(rep.Mismatches) > 0 {
		os.Exit(1)
	}
}
