package players

import (
	"math/rand"
	"time"

	"github.com/mathematico/server/internal/board"
	"github.com/mathematico/server/internal/eval"
)

// DefaultMoveTime bounds the rollout budget per move. The original strategy
// runs an equal number of random playouts from every candidate cell and
// keeps the cell with the best mean final score.
const DefaultMoveTime = 250 * time.Millisecond

// Simulation is a depth-one Monte-Carlo player: for each empty cell it
// places the current card there and finishes the board with random cards and
// random placements, repeating until the move budget runs out.
type Simulation struct {
	history  *History
	board    *board.Board
	rng      *rand.Rand
	MoveTime time.Duration
}

// NewSimulation constructs a simulating player. A nil rng means time-seeded.
func NewSimulation(rng *rand.Rand) *Simulation {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Simulation{
		history:  NewHistory(),
		board:    board.New(),
		rng:      rng,
		MoveTime: DefaultMoveTime,
	}
}

// candidate is one possible placement of the current card, accumulating
// rollout results.
type candidate struct {
	pos    board.Pos
	board  *board.Board
	total  int
	visits int
}

func (c *candidate) mean() float64 {
	if c.visits == 0 {
		return 0
	}
	return float64(c.total) / float64(c.visits)
}

func (p *Simulation) AcceptMove(card int) {
	p.history.Observe(card)

	moves := p.board.PossibleMoves()
	if len(moves) == 0 {
		return
	}
	if len(moves) == 1 {
		_ = p.board.MakeMove(moves[0], card)
		return
	}

	candidates := make([]*candidate, len(moves))
	for i, pos := range moves {
		b := p.board.Clone()
		_ = b.MakeMove(pos, card)
		candidates[i] = &candidate{pos: pos, board: b}
	}

	deadline := time.Now().Add(p.MoveTime)
	unseen := p.history.Remaining()
	for time.Now().Before(deadline) {
		for _, c := range candidates {
			c.total += p.rollout(c.board, unseen)
			c.visits++
		}
	}

	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.mean() > best.mean() {
			best = c
		}
	}
	_ = p.board.MakeMove(best.pos, card)
}

// rollout finishes a copy of b with random unseen cards on random cells and
// returns the resulting score.
func (p *Simulation) rollout(b *board.Board, unseen []int) int {
	deck := make([]int, len(unseen))
	copy(deck, unseen)
	p.rng.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})

	sim := b.Clone()
	for _, pos := range sim.PossibleMoves() {
		// Fewer unseen cards than empty cells cannot happen with the
		// standard deck, but guard anyway.
		if len(deck) == 0 {
			return 0
		}
		card := deck[len(deck)-1]
		deck = deck[:len(deck)-1]
		_ = sim.MakeMove(pos, card)
	}
	// Placement order is irrelevant to the score, so filling the empty
	// cells in row-major order with shuffled cards is an unbiased playout.
	score, err := eval.Score(sim)
	if err != nil {
		return 0
	}
	return score
}

func (p *Simulation) Board() *board.Board {
	return p.board
}
