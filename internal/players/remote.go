package players

import (
	"math/rand"
	"time"

	"github.com/mathematico/server/internal/board"
)

// DefaultMoveTimeout is how long a remote client has to answer a placement
// prompt before the seat falls back to a random legal cell, mirroring the
// turn-timer behavior of the game server.
const DefaultMoveTimeout = 30 * time.Second

// PlacementPrompt asks a remote client where to put the current card.
type PlacementPrompt struct {
	Card int `json:"card"`
	Move int `json:"move"`
}

// Remote bridges the orchestrator's synchronous AcceptMove call to an
// asynchronous client. PromptFn pushes the prompt out (over a WebSocket, in
// the server); the client's answer is fed into Moves by the transport's read
// loop. Remote is transport-agnostic and fully testable without a network.
type Remote struct {
	board   *board.Board
	rng     *rand.Rand
	Moves   chan board.Pos
	Timeout time.Duration

	// PromptFn is invoked once per card before waiting for a placement.
	PromptFn func(PlacementPrompt)
}

// NewRemote constructs a remote seat. A nil rng means time-seeded; the rng
// only drives the timeout fallback placement.
func NewRemote(rng *rand.Rand) *Remote {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Remote{
		board:   board.New(),
		rng:     rng,
		Moves:   make(chan board.Pos),
		Timeout: DefaultMoveTimeout,
	}
}

// AcceptMove prompts the client and blocks for an answer. Illegal answers
// are retried until the timeout elapses; on timeout the card goes to a
// random empty cell so the round always terminates.
func (p *Remote) AcceptMove(card int) {
	moves := p.board.PossibleMoves()
	if len(moves) == 0 {
		return
	}

	if p.PromptFn != nil {
		p.PromptFn(PlacementPrompt{Card: card, Move: p.board.OccupiedCells() + 1})
	}

	timeout := time.NewTimer(p.Timeout)
	defer timeout.Stop()
	for {
		select {
		case pos := <-p.Moves:
			if err := p.board.MakeMove(pos, card); err != nil {
				continue
			}
			return
		case <-timeout.C:
			_ = p.board.MakeMove(moves[p.rng.Intn(len(moves))], card)
			return
		}
	}
}

func (p *Remote) Board() *board.Board {
	return p.board
}
