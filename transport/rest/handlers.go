package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/repository"
	"github.com/rocketscienceinc/tictactoe-engine/internal/service"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

var (
	errBadRequest = errors.New("bad request")
	errEmptyBoard = errors.New("either board or position is required")
)

type gameService interface {
	CreateGame(ctx context.Context, humanMark tictactoe.Cell) (*entity.Game, error)
	GetGameByID(ctx context.Context, id string) (*entity.Game, error)
	MakeTurn(ctx context.Context, gameID string, move tictactoe.Move) (*entity.Game, error)
	DeleteGame(ctx context.Context, gameID string) error
}

type analysisService interface {
	Analyze(board tictactoe.Board) (*service.Analysis, error)
}

type handlers struct {
	logger *slog.Logger

	gameService     gameService
	analysisService analysisService
	defaultMark     tictactoe.Cell
}

type createGameRequest struct {
	HumanMark *tictactoe.Cell `json:"human_mark"`
}

type analysisRequest struct {
	Board    *tictactoe.Board `json:"board"`
	Position string           `json:"position"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (that *handlers) createGame(w http.ResponseWriter, r *http.Request) {
	var req createGameRequest
	// an empty body means the default mark
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		that.writeError(w, fmt.Errorf("%w: %w", errBadRequest, err))
		return
	}

	mark := that.defaultMark
	if req.HumanMark != nil {
		mark = *req.HumanMark
	}

	game, err := that.gameService.CreateGame(r.Context(), mark)
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusCreated, game)
}

func (that *handlers) getGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.gameService.GetGameByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, game)
}

func (that *handlers) makeTurn(w http.ResponseWriter, r *http.Request) {
	var move tictactoe.Move
	if err := json.NewDecoder(r.Body).Decode(&move); err != nil {
		that.writeError(w, fmt.Errorf("%w: %w", errBadRequest, err))
		return
	}

	game, err := that.gameService.MakeTurn(r.Context(), chi.URLParam(r, "id"), move)
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, game)
}

func (that *handlers) deleteGame(w http.ResponseWriter, r *http.Request) {
	if err := that.gameService.DeleteGame(r.Context(), chi.URLParam(r, "id")); err != nil {
		that.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (that *handlers) analyze(w http.ResponseWriter, r *http.Request) {
	var req analysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		that.writeError(w, fmt.Errorf("%w: %w", errBadRequest, err))
		return
	}

	var board tictactoe.Board
	switch {
	case req.Board != nil:
		board = *req.Board
	case req.Position != "":
		parsed, err := tictactoe.ParseBoard(req.Position)
		if err != nil {
			that.writeError(w, err)
			return
		}
		board = parsed
	default:
		that.writeError(w, fmt.Errorf("%w: %w", errBadRequest, errEmptyBoard))
		return
	}

	analysis, err := that.analysisService.Analyze(board)
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, analysis)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, repository.ErrGameNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperror.ErrGameFinished),
		errors.Is(err, apperror.ErrNotYourTurn),
		errors.Is(err, repository.ErrConcurrentUpdate):
		return http.StatusConflict
	case errors.Is(err, apperror.ErrInvalidAction), errors.Is(err, apperror.ErrMalformedBoard):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errBadRequest),
		errors.Is(err, apperror.ErrInvalidBoard),
		errors.Is(err, apperror.ErrInvalidCell),
		errors.Is(err, apperror.ErrInvalidMark):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (that *handlers) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)

	message := err.Error()
	if status == http.StatusInternalServerError {
		that.logger.Error("request failed", "error", err)
		message = http.StatusText(status)
	}

	that.writeJSON(w, status, errorResponse{Error: message})
}

func (that *handlers) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}
