// Package players provides ready-made Mathematico player strategies, from a
// uniform-random baseline to a Monte-Carlo simulating bot, plus adapters for
// console and remote (WebSocket) humans.
package players

import (
	"math/rand"
	"time"

	"github.com/mathematico/server/internal/board"
)

// Random places each card on a uniformly chosen empty cell.
type Random struct {
	board *board.Board
	rng   *rand.Rand
}

// NewRandom constructs a random player. A nil rng means time-seeded.
func NewRandom(rng *rand.Rand) *Random {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Random{board: board.New(), rng: rng}
}

func (p *Random) AcceptMove(card int) {
	moves := p.board.PossibleMoves()
	if len(moves) == 0 {
		return
	}
	_ = p.board.MakeMove(moves[p.rng.Intn(len(moves))], card)
}

func (p *Random) Board() *board.Board {
	return p.board
}
