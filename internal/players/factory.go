package players

import (
	"fmt"
	"math/rand"

	"github.com/mathematico/server/internal/game"
)

// Strategies lists the bot strategy names accepted by New.
var Strategies = []string{"random", "simulation"}

// New builds a bot player by strategy name. The rng may be nil for
// time-seeded play.
func New(strategy string, rng *rand.Rand) (game.Player, error) {
	switch strategy {
	case "random":
		return NewRandom(rng), nil
	case "simulation":
		return NewSimulation(rng), nil
	default:
		return nil, fmt.Errorf("unknown strategy %q", strategy)
	}
}
