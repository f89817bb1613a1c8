package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

const gameKeyPrefix = "game:"

var (
	ErrGameNotFound     = errors.New("game not found")
	ErrConcurrentUpdate = errors.New("game was modified concurrently")
)

// GameRepository keeps the current snapshot of each game. Every write
// replaces the previous snapshot and refreshes its expiry.
type GameRepository interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	Update(ctx context.Context, id string, fn func(game *entity.Game) error) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

type dbGame struct {
	client *redis.Client
	ttl    time.Duration
}

// NewGameRepository stores games in Redis. A zero ttl keeps them until deleted.
func NewGameRepository(client *redis.Client, ttl time.Duration) GameRepository {
	return &dbGame{
		client: client,
		ttl:    ttl,
	}
}

func (that *dbGame) CreateOrUpdate(ctx context.Context, game *entity.Game) error {
	gameJSON, err := json.Marshal(game)
	if err != nil {
		return fmt.Errorf("could not marshal game: %w", err)
	}

	if err = that.client.Set(ctx, gameKeyPrefix+game.ID, gameJSON, that.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set game: %w", err)
	}

	return nil
}

func (that *dbGame) GetByID(ctx context.Context, id string) (*entity.Game, error) {
	return getGame(ctx, that.client, id)
}

// Update loads the game, applies fn and writes the result back, all under a
// WATCH on the game key. If another writer touches the game in between,
// nothing is written and ErrConcurrentUpdate is returned. An error from fn
// aborts the update.
func (that *dbGame) Update(ctx context.Context, id string, fn func(game *entity.Game) error) (*entity.Game, error) {
	key := gameKeyPrefix + id

	var game *entity.Game

	err := that.client.Watch(ctx, func(tx *redis.Tx) error {
		var err error

		game, err = getGame(ctx, tx, id)
		if err != nil {
			return err
		}

		if err = fn(game); err != nil {
			return err
		}

		gameJSON, err := json.Marshal(game)
		if err != nil {
			return fmt.Errorf("could not marshal game: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, gameJSON, that.ttl)
			return nil
		})

		return err
	}, key)

	if errors.Is(err, redis.TxFailedErr) {
		return nil, ErrConcurrentUpdate
	}

	if err != nil {
		return nil, err
	}

	return game, nil
}

func getGame(ctx context.Context, client redis.Cmdable, id string) (*entity.Game, error) {
	response, err := client.Get(ctx, gameKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrGameNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	var existingGame entity.Game
	if err = json.Unmarshal(response, &existingGame); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game: %w", err)
	}

	return &existingGame, nil
}

func (that *dbGame) DeleteByID(ctx context.Context, id string) error {
	deleted, err := that.client.Del(ctx, gameKeyPrefix+id).Result()
	if err != nil {
		return fmt.Errorf("failed to delete game by id: %w", err)
	}

	if deleted == 0 {
		return ErrGameNotFound
	}

	return nil
}
