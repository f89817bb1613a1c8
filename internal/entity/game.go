package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"

	PlayerTie = "-"
)

// Game is a human playing against the engine.
type Game struct {
	ID        string          `json:"id"`
	Board     tictactoe.Board `json:"board"`
	Winner    string          `json:"winner"`
	Status    string          `json:"status"`
	Turn      tictactoe.Cell  `json:"player_turn"`
	HumanMark tictactoe.Cell  `json:"human_mark"`
	BotMark   tictactoe.Cell  `json:"bot_mark"`
}

func NewGame(id string, humanMark tictactoe.Cell) (*Game, error) {
	if humanMark != tictactoe.X && humanMark != tictactoe.O {
		return nil, fmt.Errorf("%w: %q", apperror.ErrInvalidMark, humanMark)
	}

	game := &Game{
		ID:        id,
		Board:     tictactoe.InitialState(),
		HumanMark: humanMark,
		BotMark:   humanMark.Opponent(),
	}
	game.UpdateGameState()

	return game, nil
}

// UpdateGameState refreshes status, winner and turn from the board.
func (that *Game) UpdateGameState() {
	if !tictactoe.Terminal(that.Board) {
		that.Status = StatusOngoing
		that.Winner = ""
		that.Turn = tictactoe.Player(that.Board)
		return
	}

	that.Status = StatusFinished
	that.Turn = tictactoe.Empty

	switch winner := tictactoe.Winner(that.Board); winner {
	// one player wins
	case tictactoe.X, tictactoe.O:
		that.Winner = winner.String()
	// tie
	default:
		that.Winner = PlayerTie
	}
}

func (that *Game) MakeTurn(playerMark tictactoe.Cell, move tictactoe.Move) error {
	if that.IsFinished() {
		return apperror.ErrGameFinished
	}

	if tictactoe.Player(that.Board) != playerMark {
		return apperror.ErrNotYourTurn
	}

	board, err := tictactoe.Result(that.Board, move)
	if err != nil {
		return fmt.Errorf("player %s: %w", playerMark, err)
	}

	that.Board = board
	that.UpdateGameState()

	return nil
}

func (that *Game) Outcome() tictactoe.Outcome {
	return tictactoe.OutcomeOf(that.Board)
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Game) IsBotTurn() bool {
	return that.IsOngoing() && that.Turn == that.BotMark
}
