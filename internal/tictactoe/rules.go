package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
)

// Player returns the mark that moves next. X always opens, so X is to move
// whenever both marks have been placed equally often.
//
// The board is assumed to come from a legal game; other boards still get a
// deterministic answer.
func Player(b Board) Cell {
	if b.count(X) == b.count(O) {
		return X
	}

	return O
}

// Actions returns every empty square of b. Callers must not rely on the order.
func Actions(b Board) []Move {
	moves := make([]Move, 0, size*size)

	for i, row := range b {
		for j, cell := range row {
			if cell == Empty {
				moves = append(moves, Move{Row: i, Col: j})
			}
		}
	}

	return moves
}

// Result returns the board after the player to move marks m. b itself is not
// modified.
func Result(b Board, m Move) (Board, error) {
	if !m.inRange() {
		return b, fmt.Errorf("%w: cell %s is out of range", apperror.ErrInvalidAction, m)
	}

	if b[m.Row][m.Col] != Empty {
		return b, fmt.Errorf("%w: cell %s is occupied", apperror.ErrInvalidAction, m)
	}

	return place(b, m, Player(b)), nil
}

func place(b Board, m Move, mark Cell) Board {
	b[m.Row][m.Col] = mark
	return b
}
