package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/repository"
	"github.com/rocketscienceinc/tictactoe-engine/internal/service"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

// memoryRepo is an in-process stand-in for the Redis repository.
type memoryRepo struct {
	mu    sync.Mutex
	games map[string]entity.Game
}

func (m *memoryRepo) CreateOrUpdate(_ context.Context, game *entity.Game) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.games[game.ID] = *game
	return nil
}

func (m *memoryRepo) GetByID(_ context.Context, id string) (*entity.Game, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	game, ok := m.games[id]
	if !ok {
		return nil, repository.ErrGameNotFound
	}
	return &game, nil
}

func (m *memoryRepo) Update(_ context.Context, id string, fn func(game *entity.Game) error) (*entity.Game, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	game, ok := m.games[id]
	if !ok {
		return nil, repository.ErrGameNotFound
	}
	if err := fn(&game); err != nil {
		return nil, err
	}
	m.games[id] = game
	return &game, nil
}

func (m *memoryRepo) DeleteByID(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.games[id]; !ok {
		return repository.ErrGameNotFound
	}
	delete(m.games, id)
	return nil
}

func newTestServer(t *testing.T) http.Handler {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	repo := &memoryRepo{games: make(map[string]entity.Game)}
	games := service.NewGameService(logger, repo, service.NewBotService(logger))

	return NewRouter(logger, games, service.NewAnalysisService(), tictactoe.X)
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	return rr
}

func decodeGame(t *testing.T, rr *httptest.ResponseRecorder) entity.Game {
	t.Helper()

	var game entity.Game
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &game))

	return game
}

func TestPing(t *testing.T) {
	rr := do(t, newTestServer(t), http.MethodGet, "/ping", "")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "pong", rr.Body.String())
}

func TestGameLifecycle(t *testing.T) {
	h := newTestServer(t)

	// Given: a new game with the default mark
	rr := do(t, h, http.MethodPost, "/api/v1/games", "")
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	created := decodeGame(t, rr)
	assert.Equal(t, tictactoe.X, created.HumanMark)
	assert.Equal(t, entity.StatusOngoing, created.Status)

	// When: the human takes the centre
	rr = do(t, h, http.MethodPost, "/api/v1/games/"+created.ID+"/turns", `{"row":1,"col":1}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	played := decodeGame(t, rr)

	// Then: the bot has answered and it is X's turn again
	assert.Equal(t, tictactoe.X, played.Board[1][1])
	assert.Len(t, tictactoe.Actions(played.Board), 7)
	assert.Equal(t, tictactoe.X, played.Turn)

	// Then: the stored game matches
	rr = do(t, h, http.MethodGet, "/api/v1/games/"+created.ID, "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, played, decodeGame(t, rr))

	// When: the human replays an occupied cell
	rr = do(t, h, http.MethodPost, "/api/v1/games/"+created.ID+"/turns", `{"row":1,"col":1}`)

	// Then: the action is rejected
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)

	// When: the game is deleted
	rr = do(t, h, http.MethodDelete, "/api/v1/games/"+created.ID, "")
	assert.Equal(t, http.StatusNoContent, rr.Code)

	// Then: it is gone
	rr = do(t, h, http.MethodGet, "/api/v1/games/"+created.ID, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestCreateGame(t *testing.T) {
	h := newTestServer(t)

	t.Run("Human picks O and the bot opens", func(t *testing.T) {
		rr := do(t, h, http.MethodPost, "/api/v1/games", `{"human_mark":"O"}`)

		require.Equal(t, http.StatusCreated, rr.Code)
		game := decodeGame(t, rr)
		assert.Equal(t, tictactoe.O, game.HumanMark)
		assert.Len(t, tictactoe.Actions(game.Board), 8)
	})

	t.Run("Invalid mark", func(t *testing.T) {
		rr := do(t, h, http.MethodPost, "/api/v1/games", `{"human_mark":"Z"}`)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Empty mark", func(t *testing.T) {
		rr := do(t, h, http.MethodPost, "/api/v1/games", `{"human_mark":""}`)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestMakeTurn_Errors(t *testing.T) {
	h := newTestServer(t)

	t.Run("Unknown game", func(t *testing.T) {
		rr := do(t, h, http.MethodPost, "/api/v1/games/nope/turns", `{"row":0,"col":0}`)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("Malformed body", func(t *testing.T) {
		rr := do(t, h, http.MethodPost, "/api/v1/games/nope/turns", `{"row":`)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Out of range", func(t *testing.T) {
		created := decodeGame(t, do(t, h, http.MethodPost, "/api/v1/games", ""))

		rr := do(t, h, http.MethodPost, "/api/v1/games/"+created.ID+"/turns", `{"row":3,"col":0}`)

		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	})
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusConflict, statusFor(fmt.Errorf("failed to update game: %w", repository.ErrConcurrentUpdate)))
	assert.Equal(t, http.StatusConflict, statusFor(apperror.ErrNotYourTurn))
	assert.Equal(t, http.StatusBadRequest, statusFor(apperror.ErrInvalidBoard))
	assert.Equal(t, http.StatusNotFound, statusFor(repository.ErrGameNotFound))
	assert.Equal(t, http.StatusInternalServerError, statusFor(io.ErrUnexpectedEOF))
}

func TestAnalyze(t *testing.T) {
	h := newTestServer(t)

	t.Run("Board as nested cells", func(t *testing.T) {
		rr := do(t, h, http.MethodPost, "/api/v1/analysis",
			`{"board":[["X","X",""],["O","O",""],["","",""]]}`)

		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

		var analysis service.Analysis
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &analysis))
		require.NotNil(t, analysis.BestMove)
		assert.Equal(t, tictactoe.Move{Row: 0, Col: 2}, *analysis.BestMove)
		assert.Equal(t, 1, analysis.Value)
		assert.Equal(t, tictactoe.X, analysis.Player)
		assert.Contains(t, rr.Body.String(), `"outcome":"in_progress"`)
	})

	t.Run("Board as compact position", func(t *testing.T) {
		rr := do(t, h, http.MethodPost, "/api/v1/analysis", `{"position":"XOX/XOO/OXX"}`)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"best_move":null`)
		assert.Contains(t, rr.Body.String(), `"outcome":"drawn"`)
	})

	t.Run("Bad position", func(t *testing.T) {
		rr := do(t, h, http.MethodPost, "/api/v1/analysis", `{"position":"XO"}`)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Unreachable board", func(t *testing.T) {
		rr := do(t, h, http.MethodPost, "/api/v1/analysis", `{"position":"OO./.../..."}`)

		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	})

	t.Run("Board that is not 3x3", func(t *testing.T) {
		for _, body := range []string{
			`{"board":[["X"]]}`,
			`{"board":[["X","X","","O"],["O","O"],[]]}`,
			`{"board":[["X","",""],["","O",""],["","",""],["X","X","X"]]}`,
			`{"board":[]}`,
		} {
			rr := do(t, h, http.MethodPost, "/api/v1/analysis", body)

			assert.Equal(t, http.StatusBadRequest, rr.Code, body)
			assert.Contains(t, rr.Body.String(), "invalid board", body)
		}
	})

	t.Run("Missing board", func(t *testing.T) {
		rr := do(t, h, http.MethodPost, "/api/v1/analysis", `{}`)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}
