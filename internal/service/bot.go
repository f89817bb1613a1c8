package service

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

var ErrNoAvailableMoves = errors.New("no available moves")

type BotService interface {
	MakeTurn(game *entity.Game) error
}

type botService struct {
	logger *slog.Logger
}

func NewBotService(logger *slog.Logger) BotService {
	return &botService{
		logger: logger.With("component", "bot"),
	}
}

// MakeTurn plays the engine's optimal move for the bot's mark.
func (that *botService) MakeTurn(game *entity.Game) error {
	move, ok := tictactoe.Minimax(game.Board)
	if !ok {
		return ErrNoAvailableMoves
	}

	if err := game.MakeTurn(game.BotMark, move); err != nil {
		return fmt.Errorf("bot failed to make turn: %w", err)
	}

	that.logger.Debug("bot moved", "game_id", game.ID, "mark", game.BotMark.String(), "move", move.String())

	return nil
}
