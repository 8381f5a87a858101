// Package board implements the 5x5 Mathematico grid a player fills over
// the course of a round.
package board

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// Size is the side length of the grid.
	Size = 5

	// Capacity is the number of cells, i.e. the maximum number of moves a
	// board can accept.
	Capacity = Size * Size

	// Empty marks an unoccupied cell. Card values are always >= 1.
	Empty = 0
)

// ErrOccupied is returned when a move targets a cell that already holds a card.
var ErrOccupied = errors.New("cell is already occupied")

// ErrOutOfBounds is returned when a move targets a cell outside the grid.
var ErrOutOfBounds = errors.New("cell is outside the board")

// Pos addresses a single cell by row and column, both in [0, Size).
type Pos struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (p Pos) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Board holds the placed card values. The zero value is an empty board and
// ready to use.
type Board struct {
	cells    [Size][Size]int
	occupied int
}

// New returns an empty board.
func New() *Board {
	return &Board{}
}

// Cell returns the card at p, or Empty.
func (b *Board) Cell(p Pos) int {
	return b.cells[p.Row][p.Col]
}

// OccupiedCells returns the number of cells holding a card.
func (b *Board) OccupiedCells() int {
	return b.occupied
}

// Full reports whether every cell holds a card.
func (b *Board) Full() bool {
	return b.occupied == Capacity
}

// MakeMove places card at p. The cell must be inside the grid and empty.
func (b *Board) MakeMove(p Pos, card int) error {
	if p.Row < 0 || p.Row >= Size || p.Col < 0 || p.Col >= Size {
		return fmt.Errorf("%w: %s", ErrOutOfBounds, p)
	}
	if b.cells[p.Row][p.Col] != Empty {
		return fmt.Errorf("%w: %s", ErrOccupied, p)
	}
	b.cells[p.Row][p.Col] = card
	b.occupied++
	return nil
}

// PossibleMoves returns every empty cell, in row-major order. The result can
// be passed directly to MakeMove.
func (b *Board) PossibleMoves() []Pos {
	moves := make([]Pos, 0, Capacity-b.occupied)
	for i := 0; i < Size; i++ {
		for j := 0; j < Size; j++ {
			if b.cells[i][j] == Empty {
				moves = append(moves, Pos{Row: i, Col: j})
			}
		}
	}
	return moves
}

// Row returns a copy of the n-th row.
func (b *Board) Row(n int) []int {
	row := make([]int, Size)
	copy(row, b.cells[n][:])
	return row
}

// Column returns a copy of the n-th column.
func (b *Board) Column(n int) []int {
	col := make([]int, Size)
	for i := 0; i < Size; i++ {
		col[i] = b.cells[i][n]
	}
	return col
}

// Diagonal returns the main diagonal, top-left to bottom-right.
func (b *Board) Diagonal() []int {
	d := make([]int, Size)
	for i := 0; i < Size; i++ {
		d[i] = b.cells[i][i]
	}
	return d
}

// AntiDiagonal returns the diagonal from bottom-left to top-right.
func (b *Board) AntiDiagonal() []int {
	d := make([]int, Size)
	for i := 0; i < Size; i++ {
		d[i] = b.cells[Size-i-1][i]
	}
	return d
}

// Clone returns a deep copy, used by simulating players for rollouts.
func (b *Board) Clone() *Board {
	clone := *b
	return &clone
}

// String renders the board as an ASCII grid:
//
//	+--+--+--+--+--+
//	|13|11|10| 1| 3|
//	+--+--+--+--+--+
//	| 5| 6| 1|  | 3|
//	...
func (b *Board) String() string {
	const rule = "+--+--+--+--+--+\n"
	var sb strings.Builder
	sb.WriteString(rule)
	for i := 0; i < Size; i++ {
		sb.WriteByte('|')
		for j := 0; j < Size; j++ {
			if b.cells[i][j] == Empty {
				sb.WriteString("  ")
			} else {
				fmt.Fprintf(&sb, "%2d", b.cells[i][j])
			}
			sb.WriteByte('|')
		}
		sb.WriteByte('\n')
		sb.WriteString(rule)
	}
	return sb.String()
}
