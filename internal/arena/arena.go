// Package arena benchmarks player strategies against each other. Every round
// is one fresh game in which each entry fields one player, so all strategies
// face the identical card sequence.
package arena

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/sirupsen/logrus"

	"github.com/mathematico/server/internal/game"
)

// Entry names a strategy and knows how to build a fresh player for a round.
type Entry struct {
	Name string
	New  func(rng *rand.Rand) game.Player
}

// Result aggregates one strategy's scores across all rounds.
type Result struct {
	Name  string
	Total int
	Min   int
	Max   int
	Mean  float64
}

// Arena runs head-to-head rounds for a fixed set of entries.
type Arena struct {
	entries []Entry
	rng     *rand.Rand
	logger  *logrus.Logger
}

// New constructs an arena. The seed drives both the deck shuffles and the
// players' own randomness, so a run is reproducible end to end.
func New(entries []Entry, seed int64, logger *logrus.Logger) *Arena {
	if logger == nil {
		logger = logrus.New()
	}
	return &Arena{
		entries: entries,
		rng:     rand.New(rand.NewSource(seed)),
		logger:  logger,
	}
}

// Run plays rounds games and returns one Result per entry, in entry order.
func (a *Arena) Run(rounds int) ([]Result, error) {
	if len(a.entries) == 0 {
		return nil, fmt.Errorf("arena: no entries")
	}
	if rounds <= 0 {
		return nil, fmt.Errorf("arena: rounds must be positive, got %d", rounds)
	}

	results := make([]Result, len(a.entries))
	for i, e := range a.entries {
		results[i] = Result{Name: e.Name, Min: math.MaxInt, Max: math.MinInt}
	}

	for round := 0; round < rounds; round++ {
		g := game.NewWithOptions(game.Options{
			Rand: rand.New(rand.NewSource(a.rng.Int63())),
		})
		for _, e := range a.entries {
			player := e.New(rand.New(rand.NewSource(a.rng.Int63())))
			if _, err := g.Register(player); err != nil {
				return nil, fmt.Errorf("arena: registering %s: %w", e.Name, err)
			}
		}

		scores, err := g.Run(false)
		if err != nil {
			return nil, fmt.Errorf("arena: round %d: %w", round, err)
		}
		for i, s := range scores {
			r := &results[i]
			r.Total += s
			if s < r.Min {
				r.Min = s
			}
			if s > r.Max {
				r.Max = s
			}
		}

		if rounds >= 20 && (round+1)%(rounds/10) == 0 {
			a.logger.WithFields(logrus.Fields{
				"round":  round + 1,
				"rounds": rounds,
			}).Info("arena progress")
		}
	}

	for i := range results {
		results[i].Mean = float64(results[i].Total) / float64(rounds)
	}
	return results, nil
}
