package players

import (
	"bufio"
	"fmt"
	"io"

	"github.com/mathematico/server/internal/board"
)

// Console is an interactive player: it prints the board and the current
// card, then reads row/column coordinates until a legal placement is given.
type Console struct {
	board *board.Board
	in    *bufio.Scanner
	out   io.Writer
}

// NewConsole constructs a console player reading from in and writing to out.
func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{
		board: board.New(),
		in:    bufio.NewScanner(in),
		out:   out,
	}
}

func (p *Console) AcceptMove(card int) {
	fmt.Fprintln(p.out, p.board)
	fmt.Fprintf(p.out, "Next card:\t%d\n", card)

	for {
		pos, err := p.readPos()
		if err != nil {
			if err == io.EOF {
				// Input gone; fall back to the first empty cell so the
				// round can still finish.
				moves := p.board.PossibleMoves()
				if len(moves) > 0 {
					_ = p.board.MakeMove(moves[0], card)
				}
				return
			}
			fmt.Fprintf(p.out, "bad input: %v\n", err)
			continue
		}
		if err := p.board.MakeMove(pos, card); err != nil {
			fmt.Fprintf(p.out, "illegal move: %v\n", err)
			continue
		}
		return
	}
}

func (p *Console) readPos() (board.Pos, error) {
	var pos board.Pos
	fmt.Fprintf(p.out, "Row number [0, %d):\t", board.Size)
	row, err := p.readInt()
	if err != nil {
		return pos, err
	}
	fmt.Fprintf(p.out, "Column number [0, %d):\t", board.Size)
	col, err := p.readInt()
	if err != nil {
		return pos, err
	}
	return board.Pos{Row: row, Col: col}, nil
}

func (p *Console) readInt() (int, error) {
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return 0, err
		}
		return 0, io.EOF
	}
	var n int
	if _, err := fmt.Sscanf(p.in.Text(), "%d", &n); err != nil {
		return 0, err
	}
	return n, nil
}

func (p *Console) Board() *board.Board {
	return p.board
}
