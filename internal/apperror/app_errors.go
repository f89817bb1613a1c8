package apperror

import "errors"

var (
	ErrInvalidAction  = errors.New("invalid action")
	ErrInvalidCell    = errors.New("invalid cell value")
	ErrInvalidBoard   = errors.New("invalid board")
	ErrMalformedBoard = errors.New("board is not reachable through legal play")

	ErrGameFinished = errors.New("game is already finished")
	ErrNotYourTurn  = errors.New("it's not your turn")
	ErrInvalidMark  = errors.New("invalid player mark")
)
