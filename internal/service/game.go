package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

type GameService interface {
	CreateGame(ctx context.Context, humanMark tictactoe.Cell) (*entity.Game, error)
	GetGameByID(ctx context.Context, id string) (*entity.Game, error)
	MakeTurn(ctx context.Context, gameID string, move tictactoe.Move) (*entity.Game, error)
	DeleteGame(ctx context.Context, gameID string) error
}

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	Update(ctx context.Context, id string, fn func(game *entity.Game) error) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

type gameService struct {
	logger *slog.Logger

	gameRepo   gameRepo
	botService BotService
}

func NewGameService(logger *slog.Logger, gameRepo gameRepo, botService BotService) GameService {
	return &gameService{
		logger:     logger.With("component", "game_service"),
		gameRepo:   gameRepo,
		botService: botService,
	}
}

// CreateGame starts a game for a human playing humanMark. When the bot holds
// X it opens immediately.
func (that *gameService) CreateGame(ctx context.Context, humanMark tictactoe.Cell) (*entity.Game, error) {
	game, err := entity.NewGame(uuid.NewString(), humanMark)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	if game.IsBotTurn() {
		if err = that.botService.MakeTurn(game); err != nil {
			return nil, fmt.Errorf("bot failed to open: %w", err)
		}
	}

	if err = that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to save game: %w", err)
	}

	that.logger.Info("game created", "game_id", game.ID, "human_mark", humanMark.String())

	return game, nil
}

func (that *gameService) GetGameByID(ctx context.Context, id string) (*entity.Game, error) {
	game, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve game from storage: %w", err)
	}

	return game, nil
}

// MakeTurn applies the human's move and, if the game goes on, the bot's reply.
// Both are saved together; a game changed by another request in the meantime
// is left untouched.
func (that *gameService) MakeTurn(ctx context.Context, gameID string, move tictactoe.Move) (*entity.Game, error) {
	game, err := that.gameRepo.Update(ctx, gameID, func(game *entity.Game) error {
		if err := game.MakeTurn(game.HumanMark, move); err != nil {
			return fmt.Errorf("failed to make turn: %w", err)
		}

		if game.IsBotTurn() {
			if err := that.botService.MakeTurn(game); err != nil {
				return fmt.Errorf("bot failed to make turn: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	if game.IsFinished() {
		that.logger.Info("game finished", "game_id", game.ID, "outcome", game.Outcome().String())
	}

	return game, nil
}

func (that *gameService) DeleteGame(ctx context.Context, gameID string) error {
	if err := that.gameRepo.DeleteByID(ctx, gameID); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	return nil
}
