package tictactoe

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
)

const size = 3

// Cell is the state of one square of the board.
type Cell uint8

const (
	Empty Cell = iota
	X
	O
)

// Board is a 3x3 grid stored row-major. It is a value type: assigning or
// passing a Board copies it.
type Board [size][size]Cell

// Move identifies a square by row and column, both in 0..2.
type Move struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// InitialState returns the empty board.
func InitialState() Board {
	return Board{}
}

func (c Cell) String() string {
	switch c {
	case Empty:
		return "."
	case X:
		return "X"
	case O:
		return "O"
	default:
		return "?"
	}
}

// Opponent returns the other mark. Empty has no opponent.
func (c Cell) Opponent() Cell {
	switch c {
	case X:
		return O
	case O:
		return X
	default:
		return Empty
	}
}

func (c Cell) MarshalText() ([]byte, error) {
	switch c {
	case Empty:
		return []byte{}, nil
	case X, O:
		return []byte(c.String()), nil
	default:
		return nil, fmt.Errorf("%w: %d", apperror.ErrInvalidCell, uint8(c))
	}
}

func (c *Cell) UnmarshalText(text []byte) error {
	cell, err := ParseCell(string(text))
	if err != nil {
		return err
	}

	*c = cell

	return nil
}

// ParseCell reads "X" or "O" (case-insensitive); the empty string is an empty cell.
func ParseCell(s string) (Cell, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "":
		return Empty, nil
	case "X":
		return X, nil
	case "O":
		return O, nil
	default:
		return Empty, fmt.Errorf("%w: %q", apperror.ErrInvalidCell, s)
	}
}

func (m Move) String() string {
	return fmt.Sprintf("(%d, %d)", m.Row, m.Col)
}

func (m Move) inRange() bool {
	return m.Row >= 0 && m.Row < size && m.Col >= 0 && m.Col < size
}

// ParseBoard reads nine cells written as X, O and '.', '-' or '_' for empty
// squares. Whitespace and '/' row separators are ignored.
func ParseBoard(s string) (Board, error) {
	var (
		board Board
		n     int
	)

	for _, r := range s {
		if unicode.IsSpace(r) || r == '/' {
			continue
		}

		var cell Cell
		switch unicode.ToUpper(r) {
		case 'X':
			cell = X
		case 'O':
			cell = O
		case '.', '-', '_':
			cell = Empty
		default:
			return Board{}, fmt.Errorf("%w: unexpected %q", apperror.ErrInvalidBoard, r)
		}

		if n >= size*size {
			return Board{}, fmt.Errorf("%w: more than %d cells", apperror.ErrInvalidBoard, size*size)
		}

		board[n/size][n%size] = cell
		n++
	}

	if n != size*size {
		return Board{}, fmt.Errorf("%w: got %d cells, want %d", apperror.ErrInvalidBoard, n, size*size)
	}

	return board, nil
}

// UnmarshalJSON reads the board as nested rows of cells and requires exactly
// three rows of three.
func (b *Board) UnmarshalJSON(data []byte) error {
	var rows [][]Cell
	if err := json.Unmarshal(data, &rows); err != nil {
		return fmt.Errorf("%w: %w", apperror.ErrInvalidBoard, err)
	}

	if len(rows) != size {
		return fmt.Errorf("%w: got %d rows, want %d", apperror.ErrInvalidBoard, len(rows), size)
	}

	var board Board
	for i, row := range rows {
		if len(row) != size {
			return fmt.Errorf("%w: row %d has %d cells, want %d", apperror.ErrInvalidBoard, i, len(row), size)
		}
		copy(board[i][:], row)
	}

	*b = board

	return nil
}

// String renders the board as "XO./.X./..O".
func (b Board) String() string {
	var sb strings.Builder

	for i, row := range b {
		if i > 0 {
			sb.WriteByte('/')
		}
		for _, cell := range row {
			sb.WriteString(cell.String())
		}
	}

	return sb.String()
}

func (b Board) count(c Cell) int {
	n := 0
	for _, row := range b {
		for _, cell := range row {
			if cell == c {
				n++
			}
		}
	}

	return n
}
