// cmd/mathematico is the command line front end: play a single round at the
// terminal against bot opponents, or benchmark strategies in the arena.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mathematico/server/internal/arena"
	"github.com/mathematico/server/internal/game"
	"github.com/mathematico/server/internal/players"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "play":
		err = runPlay(os.Args[2:])
	case "bench":
		err = runBench(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `usage: mathematico <command> [flags]

commands:
  play   play one round at the terminal against bot opponents
  bench  benchmark strategies over many rounds

strategies: %s
`, strings.Join(players.Strategies, ", "))
}

func runPlay(args []string) error {
	fs := flag.NewFlagSet("play", flag.ExitOnError)
	bots := fs.String("bots", "simulation", "comma separated bot strategies to play against")
	seed := fs.Int64("seed", 0, "deck seed, 0 means time-seeded")
	trace := fs.Bool("trace", true, "print the game state before each card")
	fs.Parse(args)

	rng := newRand(*seed)
	g := game.NewWithOptions(game.Options{Rand: rng})

	human := players.NewConsole(os.Stdin, os.Stdout)
	if _, err := g.Register(human); err != nil {
		return err
	}

	var names []string
	for _, strategy := range splitList(*bots) {
		bot, err := players.New(strategy, rand.New(rand.NewSource(rng.Int63())))
		if err != nil {
			return err
		}
		if _, err := g.Register(bot); err != nil {
			return err
		}
		names = append(names, strategy)
	}

	scores, err := g.Run(*trace)
	if err != nil {
		return err
	}

	fmt.Printf("\nyou scored %d\n", scores[0])
	for i, name := range names {
		fmt.Printf("%s scored %d\n", name, scores[i+1])
	}
	return nil
}

func runBench(args []string) error {
	fs := flag.NewFlagSet("bench", flag.ExitOnError)
	strategies := fs.String("strategies", "random,simulation", "comma separated strategies to benchmark")
	rounds := fs.Int("rounds", 100, "number of rounds to play")
	seed := fs.Int64("seed", 0, "master seed, 0 means time-seeded")
	fs.Parse(args)

	var entries []arena.Entry
	for _, strategy := range splitList(*strategies) {
		name := strategy
		if _, err := players.New(name, nil); err != nil {
			return err
		}
		entries = append(entries, arena.Entry{
			Name: name,
			New: func(rng *rand.Rand) game.Player {
				p, _ := players.New(name, rng)
				return p
			},
		})
	}

	masterSeed := *seed
	if masterSeed == 0 {
		masterSeed = time.Now().UnixNano()
	}

	logger := logrus.New()
	a := arena.New(entries, masterSeed, logger)

	start := time.Now()
	results, err := a.Run(*rounds)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Printf("%d rounds in %v (seed %d)\n\n", *rounds, elapsed.Round(time.Millisecond), masterSeed)
	fmt.Printf("%-12s %8s %8s %8s %8s\n", "strategy", "total", "min", "max", "mean")
	for _, r := range results {
		fmt.Printf("%-12s %8d %8d %8d %8.1f\n", r.Name, r.Total, r.Min, r.Max, r.Mean)
	}
	return nil
}

func newRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
