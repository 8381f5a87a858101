// Package eval scores finished Mathematico boards. Every row, column and
// both main diagonals are scored as independent five-card lines; diagonal
// lines that score at all receive an extra bonus.
package eval

import (
	"errors"
	"sort"

	"github.com/mathematico/server/internal/board"
)

// Line values. The named special cases (four ones, 1-1-1-13-13 full house and
// the 1-10-11-12-13 run) outrank their generic counterparts.
const (
	Pair              = 10
	TwoPairs          = 20
	ThreeOfAKind      = 40
	Straight          = 50
	FullHouse         = 80
	FullHouseOnesKing = 100 // 1 1 1 13 13
	RoyalStraight     = 150 // 1 10 11 12 13
	FourOfAKind       = 160
	FourOnes          = 200

	DiagonalBonus = 10
)

// ErrIncompleteBoard is returned when a board with empty cells is scored.
var ErrIncompleteBoard = errors.New("board must not have empty cells")

// Score computes the total score of a full board.
func Score(b *board.Board) (int, error) {
	if !b.Full() {
		return 0, ErrIncompleteBoard
	}

	total := 0
	for i := 0; i < board.Size; i++ {
		total += ScoreLine(b.Row(i))
		total += ScoreLine(b.Column(i))
	}
	for _, diag := range [][]int{b.Diagonal(), b.AntiDiagonal()} {
		if s := ScoreLine(diag); s != 0 {
			total += s + DiagonalBonus
		}
	}
	return total, nil
}

// ScoreLine scores a single line of five card values, in any order. Lines
// that cannot be drawn from a legal deck (wrong length, five of a kind)
// score zero.
func ScoreLine(line []int) int {
	if len(line) != board.Size {
		return 0
	}
	sorted := make([]int, len(line))
	copy(sorted, line)
	sort.Ints(sorted)

	switch len(runLengths(sorted)) {
	case 5:
		if sorted[0] == 1 && sorted[1] == 10 && sorted[4] == 13 {
			return RoyalStraight
		}
		if sorted[4]-sorted[0] == 4 {
			return Straight
		}
		return 0
	case 4:
		return Pair
	case 3:
		for _, run := range runLengths(sorted) {
			if run.count == 3 {
				return ThreeOfAKind
			}
		}
		return TwoPairs
	case 2:
		runs := runLengths(sorted)
		switch {
		case runs[0].value == 1 && runs[0].count == 4:
			return FourOnes
		case runs[0].value == 1 && runs[0].count == 3 && runs[1].value == 13:
			return FullHouseOnesKing
		case runs[0].count == 4 || runs[1].count == 4:
			return FourOfAKind
		default:
			return FullHouse
		}
	default:
		return 0
	}
}

type run struct {
	value, count int
}

// runLengths encodes a sorted line as (value, count) pairs.
func runLengths(sorted []int) []run {
	var runs []run
	for _, v := range sorted {
		if len(runs) > 0 && runs[len(runs)-1].value == v {
			runs[len(runs)-1].count++
			continue
		}
		runs = append(runs, run{value: v, count: 1})
	}
	return runs
}
