package tictactoe

// verdict is a position value seen from the side to move.
type verdict int8

const (
	loss verdict = -1
	draw verdict = 0
	win  verdict = 1
)

// best is the running choice among the moves examined at one node.
type best struct {
	verdict verdict
	move    Move
	seen    bool
}

// observe records the next examined move. Once a draw is held, a later
// losing move does not replace it; anything else does, so the last drawing
// move is kept, and the last move examined when every move loses.
func (b *best) observe(m Move, v verdict) {
	if b.seen && b.verdict == draw && v == loss {
		return
	}

	b.verdict, b.move, b.seen = v, m, true
}

// sign is +1 for X and -1 for O, matching the sign of Utility.
func sign(mark Cell) int {
	if mark == X {
		return 1
	}

	return -1
}

// search examines the moves of a non-terminal board for the player to move,
// stopping at the first move that wins.
func search(b Board) best {
	mover := Player(b)
	s := sign(mover)

	acc := best{verdict: loss}
	for _, m := range Actions(b) {
		v := verdict(Value(place(b, m, mover)) * s)

		acc.observe(m, v)
		if v == win {
			break
		}
	}

	return acc
}

// Value returns the game-theoretic value of b from X's point of view: +1 if X
// can force a win, -1 if O can, 0 if best play draws.
func Value(b Board) int {
	if Terminal(b) {
		return Utility(b)
	}

	return int(search(b).verdict) * sign(Player(b))
}

// Minimax returns an optimal move for the player to move on b. It returns
// false when b is terminal and there is nothing to play.
func Minimax(b Board) (Move, bool) {
	if Terminal(b) {
		return Move{}, false
	}

	return search(b).move, true
}
