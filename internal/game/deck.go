package game

import "math/rand"

// Default deck composition: ranks 1..13, four copies each.
const (
	DefaultMaxRank = 13
	DefaultCopies  = 4
)

// Deck is the full card sequence for one round, shuffled exactly once at
// construction and read-only afterwards. The orchestrator tracks the read
// cursor separately, so already-drawn cards stay available for tracing.
type Deck []int

// NewDeck builds a deck with every rank 1..maxRank repeated copies times and
// applies a single Fisher-Yates shuffle using r.
func NewDeck(maxRank, copies int, r *rand.Rand) Deck {
	d := make(Deck, 0, maxRank*copies)
	for rank := 1; rank <= maxRank; rank++ {
		for c := 0; c < copies; c++ {
			d = append(d, rank)
		}
	}
	for i := len(d) - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		d[i], d[j] = d[j], d[i]
	}
	return d
}

// At returns the card at position i without consuming it.
func (d Deck) At(i int) int {
	return d[i]
}
