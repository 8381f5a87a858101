// Package game implements the Mathematico round orchestrator: it owns the
// shuffled deck and the player roster, sequences draws, broadcasts each card
// to every player in registration order and collects the final scores.
package game

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mathematico/server/internal/board"
	"github.com/mathematico/server/internal/eval"
)

// ErrGameInProgress is returned by Register once any card has been drawn.
// The roster is frozen by the first draw so every player observes the
// identical card sequence from move 1 onward.
var ErrGameInProgress = errors.New("game is in progress")

// Player is the capability set the orchestrator requires from a participant.
// AcceptMove delivers the current card; the player places it on its private
// board. Board exposes that board for scoring once the round is over.
type Player interface {
	AcceptMove(card int)
	Board() *board.Board
}

// Options configures deck composition and randomness. The zero value uses the
// standard 52-card deck (ranks 1..13, four copies) and a time-seeded source.
type Options struct {
	MaxRank int
	Copies  int

	// Rand drives the one-time shuffle. Supply a seeded source for
	// deterministic rounds; nil means time-seeded.
	Rand *rand.Rand
}

// Game holds the state of a single round. It is not safe for concurrent use;
// the round loop is strictly sequential by design.
type Game struct {
	ID uuid.UUID

	deck        Deck
	players     []Player
	movesPlayed int

	// TraceOut receives the per-move snapshot when Run is called with
	// trace enabled. Defaults to os.Stdout.
	TraceOut io.Writer

	// BroadcastFn, when set, receives an event per draw and one at round
	// end. Used by the server layer to feed spectators and remote clients.
	BroadcastFn func(Event)

	// Evaluate maps a finished board to its score. Defaults to eval.Score;
	// overridable for alternative scoring schemes and tests.
	Evaluate func(*board.Board) (int, error)
}

// New creates a round with a freshly shuffled default deck.
func New() *Game {
	return NewWithOptions(Options{})
}

// NewWithOptions creates a round with the given deck composition and random
// source.
func NewWithOptions(opts Options) *Game {
	if opts.MaxRank <= 0 {
		opts.MaxRank = DefaultMaxRank
	}
	if opts.Copies <= 0 {
		opts.Copies = DefaultCopies
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	id, _ := uuid.NewRandom()
	return &Game{
		ID:       id,
		deck:     NewDeck(opts.MaxRank, opts.Copies, opts.Rand),
		TraceOut: os.Stdout,
		Evaluate: eval.Score,
	}
}

// Register appends p to the roster and returns its zero-based index, which
// is also the index of p's score in the slice returned by Run. Registration
// is only permitted before the first draw.
func (g *Game) Register(p Player) (int, error) {
	if g.movesPlayed != 0 {
		return 0, fmt.Errorf("cannot register player: %w", ErrGameInProgress)
	}
	g.players = append(g.players, p)
	return len(g.players) - 1, nil
}

// Players returns the roster size.
func (g *Game) Players() int {
	return len(g.players)
}

// MovesPlayed returns the number of cards drawn so far, which is also the
// index of the next card to draw.
func (g *Game) MovesPlayed() int {
	return g.movesPlayed
}

// DeckSize returns the total number of cards in the deck.
func (g *Game) DeckSize() int {
	return len(g.deck)
}

// History returns the cards already drawn, oldest first. The undrawn tail of
// the deck is never exposed.
func (g *Game) History() []int {
	h := make([]int, g.movesPlayed)
	copy(h, g.deck[:g.movesPlayed])
	return h
}

// Finished reports whether the round is over: either the boards are full or
// the deck is exhausted, whichever limit is hit first. Both checks are
// required; with a short deck the capacity limit alone would overrun it.
func (g *Game) Finished() bool {
	return g.movesPlayed >= board.Capacity || g.movesPlayed >= len(g.deck)
}

// DrawNext returns the next card and advances the move counter by exactly
// one. Once the round is finished it returns (0, false) and mutates nothing.
func (g *Game) DrawNext() (int, bool) {
	if g.Finished() {
		return 0, false
	}
	card := g.deck.At(g.movesPlayed)
	g.movesPlayed++
	return card, true
}

// Run plays the round to completion: it repeatedly draws, optionally writes
// a snapshot to TraceOut, and hands the card to every player in registration
// order. When the round finishes it scores each player's board and returns
// the scores, where scores[i] belongs to the player registered at index i.
//
// Scoring fails only if a player did not fill its board, which happens when
// the deck is shorter than the board capacity or a player ignored cards.
func (g *Game) Run(trace bool) ([]int, error) {
	for !g.Finished() {
		if trace {
			fmt.Fprintln(g.TraceOut, g)
		}
		card, _ := g.DrawNext()
		if g.BroadcastFn != nil {
			g.BroadcastFn(Event{Type: EventCardDrawn, Card: card, Move: g.movesPlayed})
		}
		for _, p := range g.players {
			p.AcceptMove(card)
		}
	}

	scores := make([]int, len(g.players))
	for i, p := range g.players {
		s, err := g.Evaluate(p.Board())
		if err != nil {
			return nil, fmt.Errorf("scoring player %d: %w", i, err)
		}
		scores[i] = s
	}
	if g.BroadcastFn != nil {
		g.BroadcastFn(Event{Type: EventRoundEnd, Scores: scores})
	}
	return scores, nil
}

// String renders the diagnostic snapshot: moves played so far, the card
// about to be played, the move number and the roster size. Only past and
// current cards are ever shown, never the future deck tail.
func (g *Game) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Moves played:\t%v\n", g.History())
	sb.WriteString("Current card:\t")
	if g.Finished() {
		sb.WriteString("none")
	} else {
		fmt.Fprintf(&sb, "%d", g.deck.At(g.movesPlayed))
	}
	fmt.Fprintf(&sb, "\nMove number:\t%d\n", g.movesPlayed)
	fmt.Fprintf(&sb, "Players:\t%d", len(g.players))
	return sb.String()
}
