package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/rocketscienceinc/tictactoe-engine/internal/config"
	"github.com/rocketscienceinc/tictactoe-engine/internal/repository"
	"github.com/rocketscienceinc/tictactoe-engine/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-engine/internal/service"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-engine/transport/console"
	"github.com/rocketscienceinc/tictactoe-engine/transport/rest"
)

var ErrAddrNotFound = errors.New("redis host is empty")

// RunApp - runs the application in the configured mode until ctx is canceled
// or the mode finishes on its own.
func RunApp(ctx context.Context, logger *slog.Logger, conf *config.Config) error {
	humanMark, err := tictactoe.ParseCell(conf.HumanMark)
	if err != nil {
		return fmt.Errorf("invalid human mark: %w", err)
	}

	switch conf.Mode {
	case config.ModeConsole:
		return runConsole(ctx, logger, humanMark, os.Stdin, os.Stdout)
	case config.ModeHTTP:
		return runHTTP(ctx, logger, conf, humanMark)
	default:
		return fmt.Errorf("%w: %q", config.ErrUnknownMode, conf.Mode)
	}
}

func runConsole(ctx context.Context, logger *slog.Logger, humanMark tictactoe.Cell, in io.Reader, out io.Writer) error {
	session := console.New(logger, in, out, service.NewBotService(logger), humanMark)

	game, err := session.Run(ctx)
	if errors.Is(err, console.ErrQuit) || errors.Is(err, context.Canceled) {
		return nil
	}

	if err != nil {
		return fmt.Errorf("console session failed: %w", err)
	}

	logger.Info("console game finished", "outcome", game.Outcome().String())

	return nil
}

func runHTTP(ctx context.Context, logger *slog.Logger, conf *config.Config, humanMark tictactoe.Cell) error {
	log := logger.With("component", "app")

	if conf.Redis.Host == "" {
		return ErrAddrNotFound
	}

	redisStorage, err := storage.NewRedisStorage(ctx, conf.Redis.GetRedisAddr())
	if err != nil {
		return fmt.Errorf("could not connect to redis storage: %w", err)
	}

	defer func() {
		if err = redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}()

	gameRepo := repository.NewGameRepository(redisStorage.Connection, conf.GameTTL)
	botService := service.NewBotService(logger)
	gameService := service.NewGameService(logger, gameRepo, botService)
	analysisService := service.NewAnalysisService()

	router := rest.NewRouter(logger, gameService, analysisService, humanMark)

	log.Info("Starting HTTP server", "port", conf.HTTPPort)
	if err = rest.Start(ctx, conf.HTTPPort, router); err != nil {
		return fmt.Errorf("HTTP server error: %w", err)
	}

	log.Info("Application context canceled, shutting down")

	return nil
}
