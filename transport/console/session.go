package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/muesli/termenv"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

var (
	ErrQuit       = errors.New("player quit")
	errMoveFormat = errors.New("expected two numbers: row col")
)

type botService interface {
	MakeTurn(game *entity.Game) error
}

// Session plays one game between a human on a terminal and the bot.
type Session struct {
	logger *slog.Logger

	in  *bufio.Scanner
	out *termenv.Output

	bot       botService
	humanMark tictactoe.Cell
}

func New(logger *slog.Logger, in io.Reader, out io.Writer, bot botService, humanMark tictactoe.Cell, opts ...termenv.OutputOption) *Session {
	return &Session{
		logger:    logger.With("component", "console"),
		in:        bufio.NewScanner(in),
		out:       termenv.NewOutput(out, opts...),
		bot:       bot,
		humanMark: humanMark,
	}
}

// Run plays until the game ends, the player quits or input runs out. The
// context is checked between turns.
func (that *Session) Run(ctx context.Context) (*entity.Game, error) {
	game, err := entity.NewGame("console", that.humanMark)
	if err != nil {
		return nil, fmt.Errorf("failed to start game: %w", err)
	}

	fmt.Fprintf(that.out, "You play %s. Enter moves as \"row col\" (0-2), or \"quit\".\n", that.mark(that.humanMark))

	for !game.IsFinished() {
		if err = ctx.Err(); err != nil {
			return game, err
		}

		if game.IsBotTurn() {
			if err = that.bot.MakeTurn(game); err != nil {
				return game, fmt.Errorf("bot failed to make turn: %w", err)
			}
			continue
		}

		that.render(game.Board)

		if err = that.humanTurn(game); err != nil {
			return game, err
		}
	}

	that.render(game.Board)
	that.announce(game)

	return game, nil
}

func (that *Session) humanTurn(game *entity.Game) error {
	for {
		fmt.Fprint(that.out, "Your move: ")

		if !that.in.Scan() {
			if err := that.in.Err(); err != nil {
				return fmt.Errorf("failed to read move: %w", err)
			}
			return io.ErrUnexpectedEOF
		}

		line := strings.TrimSpace(that.in.Text())
		if strings.EqualFold(line, "quit") || strings.EqualFold(line, "q") {
			return ErrQuit
		}

		move, err := parseMove(line)
		if err != nil {
			fmt.Fprintln(that.out, that.warn("Invalid input: "+err.Error()))
			continue
		}

		if err = game.MakeTurn(that.humanMark, move); err != nil {
			that.logger.Debug("rejected move", "move", move.String(), "error", err)
			fmt.Fprintln(that.out, that.warn("Cannot play there: "+err.Error()))
			continue
		}

		return nil
	}
}

func parseMove(line string) (tictactoe.Move, error) {
	fields := strings.Fields(strings.ReplaceAll(line, ",", " "))
	if len(fields) != 2 {
		return tictactoe.Move{}, errMoveFormat
	}

	row, err := strconv.Atoi(fields[0])
	if err != nil {
		return tictactoe.Move{}, errMoveFormat
	}

	col, err := strconv.Atoi(fields[1])
	if err != nil {
		return tictactoe.Move{}, errMoveFormat
	}

	return tictactoe.Move{Row: row, Col: col}, nil
}

func (that *Session) render(board tictactoe.Board) {
	var sb strings.Builder

	sb.WriteString("\n   0 1 2\n")
	for i, row := range board {
		sb.WriteString(strconv.Itoa(i))
		sb.WriteString("  ")
		for j, cell := range row {
			if j > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(that.mark(cell))
		}
		sb.WriteByte('\n')
	}

	fmt.Fprintln(that.out, sb.String())
}

func (that *Session) mark(cell tictactoe.Cell) string {
	style := that.out.String(cell.String())

	switch cell {
	case tictactoe.X:
		style = style.Foreground(that.out.Color("1")).Bold()
	case tictactoe.O:
		style = style.Foreground(that.out.Color("4")).Bold()
	default:
		style = style.Faint()
	}

	return style.String()
}

func (that *Session) warn(msg string) string {
	return that.out.String(msg).Foreground(that.out.Color("3")).String()
}

func (that *Session) announce(game *entity.Game) {
	var msg string

	switch game.Winner {
	case that.humanMark.String():
		msg = "You win!"
	case game.BotMark.String():
		msg = "The bot wins."
	default:
		msg = "It's a draw."
	}

	fmt.Fprintln(that.out, that.out.String(msg).Bold())
}
