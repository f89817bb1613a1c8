package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
)

// lines lists the rows, then the columns, then the main and anti diagonal.
var lines = [8][3]Move{
	{{0, 0}, {0, 1}, {0, 2}},
	{{1, 0}, {1, 1}, {1, 2}},
	{{2, 0}, {2, 1}, {2, 2}},
	{{0, 0}, {1, 0}, {2, 0}},
	{{0, 1}, {1, 1}, {2, 1}},
	{{0, 2}, {1, 2}, {2, 2}},
	{{0, 0}, {1, 1}, {2, 2}},
	{{0, 2}, {1, 1}, {2, 0}},
}

// Outcome summarises a board.
type Outcome uint8

const (
	InProgress Outcome = iota
	XWon
	OWon
	Drawn
)

func (o Outcome) String() string {
	switch o {
	case InProgress:
		return "in_progress"
	case XWon:
		return "x_won"
	case OWon:
		return "o_won"
	case Drawn:
		return "drawn"
	default:
		return fmt.Sprintf("outcome(%d)", uint8(o))
	}
}

func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

func (o *Outcome) UnmarshalText(text []byte) error {
	for _, candidate := range []Outcome{InProgress, XWon, OWon, Drawn} {
		if candidate.String() == string(text) {
			*o = candidate
			return nil
		}
	}

	return fmt.Errorf("unknown outcome %q", text)
}

// Winner returns the mark holding three in a row, or Empty. Lines are checked
// in a fixed order and the first complete one wins.
func Winner(b Board) Cell {
	for _, line := range lines {
		a := b[line[0].Row][line[0].Col]
		if a != Empty && a == b[line[1].Row][line[1].Col] && a == b[line[2].Row][line[2].Col] {
			return a
		}
	}

	return Empty
}

// Terminal reports whether the game on b is over.
func Terminal(b Board) bool {
	if b.count(Empty) == 0 {
		return true
	}

	return Winner(b) != Empty
}

// Utility is +1 when X has won, -1 when O has won and 0 otherwise. It is only
// meaningful for terminal boards, where 0 means a draw.
func Utility(b Board) int {
	switch Winner(b) {
	case X:
		return 1
	case O:
		return -1
	default:
		return 0
	}
}

// OutcomeOf derives the outcome of b.
func OutcomeOf(b Board) Outcome {
	switch Winner(b) {
	case X:
		return XWon
	case O:
		return OWon
	}

	if Terminal(b) {
		return Drawn
	}

	return InProgress
}

// Validate checks that b can be reached by legal play from the empty board.
// None of the other functions call it.
func Validate(b Board) error {
	diff := b.count(X) - b.count(O)
	if diff < 0 || diff > 1 {
		return fmt.Errorf("%w: %d X against %d O", apperror.ErrMalformedBoard, b.count(X), b.count(O))
	}

	xLine, oLine := hasLine(b, X), hasLine(b, O)

	switch {
	case xLine && oLine:
		return fmt.Errorf("%w: both players have three in a row", apperror.ErrMalformedBoard)
	case xLine && diff != 1:
		return fmt.Errorf("%w: O moved after X won", apperror.ErrMalformedBoard)
	case oLine && diff != 0:
		return fmt.Errorf("%w: X moved after O won", apperror.ErrMalformedBoard)
	}

	return nil
}

func hasLine(b Board, mark Cell) bool {
	for _, line := range lines {
		if b[line[0].Row][line[0].Col] == mark &&
			b[line[1].Row][line[1].Col] == mark &&
			b[line[2].Row][line[2].Col] == mark {
			return true
		}
	}

	return false
}
