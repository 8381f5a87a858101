package game

import (
	"bytes"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mathematico/server/internal/board"
)

// leftmostPlayer places every card on the first empty cell in row-major
// order and records the cards it received.
type leftmostPlayer struct {
	board    *board.Board
	received []int
}

func newLeftmostPlayer() *leftmostPlayer {
	return &leftmostPlayer{board: board.New()}
}

func (p *leftmostPlayer) AcceptMove(card int) {
	p.received = append(p.received, card)
	moves := p.board.PossibleMoves()
	if len(moves) == 0 {
		return
	}
	_ = p.board.MakeMove(moves[0], card)
}

func (p *leftmostPlayer) Board() *board.Board {
	return p.board
}

// rightmostPlayer places every card on the last empty cell in row-major
// order, so the top-left corner is filled by the final move.
type rightmostPlayer struct {
	board *board.Board
}

func (p *rightmostPlayer) AcceptMove(card int) {
	moves := p.board.PossibleMoves()
	if len(moves) == 0 {
		return
	}
	_ = p.board.MakeMove(moves[len(moves)-1], card)
}

func (p *rightmostPlayer) Board() *board.Board {
	return p.board
}

// sumCells scores a board as the plain sum of its placed values, with no
// completeness requirement.
func sumCells(b *board.Board) (int, error) {
	total := 0
	for i := 0; i < board.Size; i++ {
		for _, v := range b.Row(i) {
			total += v
		}
	}
	return total, nil
}

func seededGame(seed int64) *Game {
	return NewWithOptions(Options{Rand: rand.New(rand.NewSource(seed))})
}

func TestDeckComposition(t *testing.T) {
	g := seededGame(1)
	require.Equal(t, 52, g.DeckSize())

	d := NewDeck(DefaultMaxRank, DefaultCopies, rand.New(rand.NewSource(99)))
	counts := make(map[int]int)
	for i := 0; i < len(d); i++ {
		counts[d.At(i)]++
	}
	require.Len(t, counts, 13)
	for rank := 1; rank <= 13; rank++ {
		assert.Equal(t, 4, counts[rank], "rank %d multiplicity", rank)
	}
}

func TestDeckShuffleIsDeterministicPerSeed(t *testing.T) {
	a := NewDeck(DefaultMaxRank, DefaultCopies, rand.New(rand.NewSource(7)))
	b := NewDeck(DefaultMaxRank, DefaultCopies, rand.New(rand.NewSource(7)))
	c := NewDeck(DefaultMaxRank, DefaultCopies, rand.New(rand.NewSource(8)))
	assert.Equal(t, []int(a), []int(b))
	assert.NotEqual(t, []int(a), []int(c))
}

func TestMonotonicCounter(t *testing.T) {
	g := seededGame(2)
	prev := g.MovesPlayed()
	require.Zero(t, prev)
	for {
		_, ok := g.DrawNext()
		if !ok {
			break
		}
		assert.Equal(t, prev+1, g.MovesPlayed())
		prev = g.MovesPlayed()
	}
	assert.Equal(t, board.Capacity, g.MovesPlayed())
}

func TestExhaustionAtBoardCapacity(t *testing.T) {
	g := seededGame(3)
	for i := 0; i < board.Capacity; i++ {
		require.False(t, g.Finished())
		_, ok := g.DrawNext()
		require.True(t, ok)
	}
	assert.True(t, g.Finished(), "52-card deck: capacity is the binding limit")

	// Finished state is terminal and idempotent.
	for i := 0; i < 5; i++ {
		card, ok := g.DrawNext()
		assert.False(t, ok)
		assert.Zero(t, card)
		assert.Equal(t, board.Capacity, g.MovesPlayed())
	}
}

func TestExhaustionAtDeckEnd(t *testing.T) {
	// 2 ranks x 4 copies = 8 cards, well under the 25-cell capacity.
	g := NewWithOptions(Options{
		MaxRank: 2,
		Copies:  4,
		Rand:    rand.New(rand.NewSource(4)),
	})
	require.Equal(t, 8, g.DeckSize())

	draws := 0
	for {
		_, ok := g.DrawNext()
		if !ok {
			break
		}
		draws++
	}
	assert.Equal(t, 8, draws)
	assert.True(t, g.Finished())
	assert.Equal(t, 8, g.MovesPlayed())
}

func TestRegistrationFreeze(t *testing.T) {
	g := seededGame(5)

	idx, err := g.Register(newLeftmostPlayer())
	require.NoError(t, err)
	assert.Equal(t, 0, idx)
	idx, err = g.Register(newLeftmostPlayer())
	require.NoError(t, err)
	assert.Equal(t, 1, idx)

	_, ok := g.DrawNext()
	require.True(t, ok)

	_, err = g.Register(newLeftmostPlayer())
	assert.ErrorIs(t, err, ErrGameInProgress)
	assert.Equal(t, 2, g.Players(), "failed registration must not grow the roster")
}

func TestRunBroadcastsIdenticalSequence(t *testing.T) {
	g := seededGame(6)
	g.Evaluate = sumCells

	p1 := newLeftmostPlayer()
	p2 := newLeftmostPlayer()
	_, err := g.Register(p1)
	require.NoError(t, err)
	_, err = g.Register(p2)
	require.NoError(t, err)

	scores, err := g.Run(false)
	require.NoError(t, err)
	require.Len(t, scores, 2)

	require.Len(t, p1.received, board.Capacity, "52 > 25: exactly capacity draws")
	assert.Equal(t, p1.received, p2.received, "both players see the same cards in the same order")
	assert.Equal(t, p1.received, g.History())

	sum := 0
	for _, c := range p1.received {
		sum += c
	}
	assert.Equal(t, []int{sum, sum}, scores)
}

func TestRunScoreAlignment(t *testing.T) {
	// Players with different placement strategies end up with different
	// boards; each score must belong to the board of the player registered
	// at that index. The evaluator reads the top-left cell so that the
	// score depends on placement, not just on the shared card multiset.
	g := seededGame(7)
	g.Evaluate = func(b *board.Board) (int, error) {
		return b.Cell(board.Pos{Row: 0, Col: 0}), nil
	}

	left := newLeftmostPlayer()
	right := &rightmostPlayer{board: board.New()}
	for i, p := range []Player{left, right} {
		idx, err := g.Register(p)
		require.NoError(t, err)
		require.Equal(t, i, idx)
	}

	scores, err := g.Run(false)
	require.NoError(t, err)
	require.Len(t, scores, 2)

	// Leftmost fills (0,0) with the first card, rightmost with the last.
	assert.Equal(t, left.received[0], scores[0])
	assert.Equal(t, left.received[board.Capacity-1], scores[1])
}

func TestRunNoPlayers(t *testing.T) {
	g := seededGame(8)
	scores, err := g.Run(false)
	require.NoError(t, err)
	assert.Empty(t, scores)
	assert.True(t, g.Finished())
}

func TestRunRealEvaluator(t *testing.T) {
	g := seededGame(9)
	p := newLeftmostPlayer()
	_, err := g.Register(p)
	require.NoError(t, err)

	scores, err := g.Run(false)
	require.NoError(t, err)
	require.Len(t, scores, 1)
	assert.True(t, p.Board().Full())
	assert.GreaterOrEqual(t, scores[0], 0)
}

func TestRunShortDeckCannotScore(t *testing.T) {
	g := NewWithOptions(Options{
		MaxRank: 2,
		Copies:  4,
		Rand:    rand.New(rand.NewSource(10)),
	})
	_, err := g.Register(newLeftmostPlayer())
	require.NoError(t, err)

	_, err = g.Run(false)
	assert.Error(t, err, "an 8-card deck cannot fill a 25-cell board")
}

func TestTraceSnapshot(t *testing.T) {
	g := seededGame(11)
	var buf bytes.Buffer
	g.TraceOut = &buf

	p := newLeftmostPlayer()
	_, err := g.Register(p)
	require.NoError(t, err)

	_, err = g.Run(true)
	require.NoError(t, err)

	out := buf.String()
	assert.Equal(t, board.Capacity, strings.Count(out, "Move number:"), "one snapshot per move")
	assert.Contains(t, out, "Moves played:")
	assert.Contains(t, out, "Current card:")
	assert.Contains(t, out, "Players:\t1")
}

func TestSnapshotHidesFutureCards(t *testing.T) {
	g := seededGame(12)
	_, ok := g.DrawNext()
	require.True(t, ok)
	_, ok = g.DrawNext()
	require.True(t, ok)

	h := g.History()
	require.Len(t, h, 2)
	assert.Equal(t, []int{g.deck[0], g.deck[1]}, h)

	// Mutating the returned history must not touch the deck.
	h[0] = -1
	assert.NotEqual(t, -1, g.deck[0])

	s := g.String()
	assert.Contains(t, s, "Current card:")
	// The snapshot lists exactly the two played cards; the rest of the deck
	// stays hidden. Check that the moves line has two entries.
	firstLine := strings.SplitN(s, "\n", 2)[0]
	assert.Equal(t, 2, len(strings.Fields(strings.Trim(strings.TrimPrefix(firstLine, "Moves played:\t"), "[]"))))
}

func TestFinishedSnapshotShowsNone(t *testing.T) {
	g := seededGame(13)
	for {
		if _, ok := g.DrawNext(); !ok {
			break
		}
	}
	assert.Contains(t, g.String(), "Current card:\tnone")
}

func TestHistoryMatchesDrawOrder(t *testing.T) {
	g := seededGame(14)
	var drawn []int
	for i := 0; i < 10; i++ {
		card, ok := g.DrawNext()
		require.True(t, ok)
		drawn = append(drawn, card)
	}
	assert.Equal(t, drawn, g.History())
}
