package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmptyBoard(t *testing.T) {
	b := New()
	assert.Equal(t, 0, b.OccupiedCells())
	assert.False(t, b.Full())
	assert.Len(t, b.PossibleMoves(), Capacity)
}

func TestMakeMove(t *testing.T) {
	b := New()
	require.NoError(t, b.MakeMove(Pos{Row: 2, Col: 3}, 7))
	assert.Equal(t, 7, b.Cell(Pos{Row: 2, Col: 3}))
	assert.Equal(t, 1, b.OccupiedCells())
	assert.Len(t, b.PossibleMoves(), Capacity-1)

	err := b.MakeMove(Pos{Row: 2, Col: 3}, 9)
	assert.ErrorIs(t, err, ErrOccupied)
	assert.Equal(t, 7, b.Cell(Pos{Row: 2, Col: 3}), "failed move must not overwrite")

	assert.ErrorIs(t, b.MakeMove(Pos{Row: -1, Col: 0}, 1), ErrOutOfBounds)
	assert.ErrorIs(t, b.MakeMove(Pos{Row: 0, Col: Size}, 1), ErrOutOfBounds)
}

func TestRowColumnDiagonals(t *testing.T) {
	b := New()
	require.NoError(t, b.MakeMove(Pos{Row: 0, Col: 1}, 1))
	require.NoError(t, b.MakeMove(Pos{Row: 0, Col: 2}, 3))
	require.NoError(t, b.MakeMove(Pos{Row: 0, Col: 4}, 13))
	assert.Equal(t, []int{Empty, 1, 3, Empty, 13}, b.Row(0))

	require.NoError(t, b.MakeMove(Pos{Row: 3, Col: 1}, 8))
	assert.Equal(t, []int{1, Empty, Empty, 8, Empty}, b.Column(1))

	require.NoError(t, b.MakeMove(Pos{Row: 2, Col: 2}, 5))
	assert.Equal(t, []int{Empty, Empty, 5, Empty, Empty}, b.Diagonal())

	// (3,1) and (0,4) placed above also lie on the anti-diagonal.
	require.NoError(t, b.MakeMove(Pos{Row: 4, Col: 0}, 11))
	assert.Equal(t, []int{11, 8, 5, Empty, 13}, b.AntiDiagonal())
}

func TestFull(t *testing.T) {
	b := New()
	for _, p := range b.PossibleMoves() {
		require.NoError(t, b.MakeMove(p, 1))
	}
	assert.True(t, b.Full())
	assert.Empty(t, b.PossibleMoves())
}

func TestClone(t *testing.T) {
	b := New()
	require.NoError(t, b.MakeMove(Pos{Row: 1, Col: 1}, 4))
	c := b.Clone()
	require.NoError(t, c.MakeMove(Pos{Row: 0, Col: 0}, 9))

	assert.Equal(t, Empty, b.Cell(Pos{Row: 0, Col: 0}), "clone must not share cells")
	assert.Equal(t, 4, c.Cell(Pos{Row: 1, Col: 1}))
	assert.Equal(t, 1, b.OccupiedCells())
	assert.Equal(t, 2, c.OccupiedCells())
}

func TestString(t *testing.T) {
	b := New()
	blank := "+--+--+--+--+--+\n" +
		"|  |  |  |  |  |\n" +
		"+--+--+--+--+--+\n" +
		"|  |  |  |  |  |\n" +
		"+--+--+--+--+--+\n" +
		"|  |  |  |  |  |\n" +
		"+--+--+--+--+--+\n" +
		"|  |  |  |  |  |\n" +
		"+--+--+--+--+--+\n" +
		"|  |  |  |  |  |\n" +
		"+--+--+--+--+--+\n"
	assert.Equal(t, blank, b.String())

	require.NoError(t, b.MakeMove(Pos{Row: 0, Col: 0}, 1))
	require.NoError(t, b.MakeMove(Pos{Row: 1, Col: 0}, 12))
	withMoves := "+--+--+--+--+--+\n" +
		"| 1|  |  |  |  |\n" +
		"+--+--+--+--+--+\n" +
		"|12|  |  |  |  |\n" +
		"+--+--+--+--+--+\n" +
		"|  |  |  |  |  |\n" +
		"+--+--+--+--+--+\n" +
		"|  |  |  |  |  |\n" +
		"+--+--+--+--+--+\n" +
		"|  |  |  |  |  |\n" +
		"+--+--+--+--+--+\n"
	assert.Equal(t, withMoves, b.String())
}
