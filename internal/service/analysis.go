package service

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

// Analysis describes a position and the engine's recommendation.
type Analysis struct {
	Board    tictactoe.Board   `json:"board"`
	Player   tictactoe.Cell    `json:"player"`
	Outcome  tictactoe.Outcome `json:"outcome"`
	Terminal bool              `json:"terminal"`
	Value    int               `json:"value"`
	Actions  []tictactoe.Move  `json:"actions"`
	BestMove *tictactoe.Move   `json:"best_move"`
}

type AnalysisService interface {
	Analyze(board tictactoe.Board) (*Analysis, error)
}

type analysisService struct{}

func NewAnalysisService() AnalysisService {
	return &analysisService{}
}

// Analyze rejects boards that legal play cannot produce, then evaluates the
// rest with a full search.
func (that *analysisService) Analyze(board tictactoe.Board) (*Analysis, error) {
	if err := tictactoe.Validate(board); err != nil {
		return nil, fmt.Errorf("failed to analyze board: %w", err)
	}

	analysis := &Analysis{
		Board:    board,
		Outcome:  tictactoe.OutcomeOf(board),
		Terminal: tictactoe.Terminal(board),
		Value:    tictactoe.Value(board),
		Actions:  []tictactoe.Move{},
	}

	if analysis.Terminal {
		return analysis, nil
	}

	analysis.Player = tictactoe.Player(board)
	analysis.Actions = tictactoe.Actions(board)

	if move, ok := tictactoe.Minimax(board); ok {
		analysis.BestMove = &move
	}

	return analysis, nil
}
