package players

import "github.com/mathematico/server/internal/game"

// History tracks the cards drawn so far and how many copies of each rank are
// still unseen. Simulating players embed it to drive their rollouts; its
// Observe method must be called once per drawn card.
type History struct {
	drawn     []int
	remaining map[int]int
}

// NewHistory starts with the full deck population unseen.
func NewHistory() *History {
	remaining := make(map[int]int, game.DefaultMaxRank)
	for rank := 1; rank <= game.DefaultMaxRank; rank++ {
		remaining[rank] = game.DefaultCopies
	}
	return &History{remaining: remaining}
}

// Observe records a drawn card.
func (h *History) Observe(card int) {
	h.drawn = append(h.drawn, card)
	if h.remaining[card] > 0 {
		h.remaining[card]--
	}
}

// Drawn returns the observed cards, oldest first.
func (h *History) Drawn() []int {
	return h.drawn
}

// Remaining expands the unseen ranks into a flat list with multiplicity,
// suitable for shuffling into a rollout deck.
func (h *History) Remaining() []int {
	var cards []int
	for rank := 1; rank <= game.DefaultMaxRank; rank++ {
		for c := 0; c < h.remaining[rank]; c++ {
			cards = append(cards, rank)
		}
	}
	return cards
}
