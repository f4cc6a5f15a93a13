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
	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
)

const (
	gameID = "console"
	prompt = "Enter row and column (1-3), or q to quit: "
)

var errBadInput = errors.New(`enter two numbers between 1 and 3, for example "2 2"`)

// Console plays one game after another against the bot over a line-oriented terminal.
type Console struct {
	logger     *slog.Logger
	controller *tictactoe.GameController
	in         io.Reader
	out        io.Writer
	renderer   *Renderer
}

func New(logger *slog.Logger, controller *tictactoe.GameController, in io.Reader, out *termenv.Output) *Console {
	return &Console{
		logger:     logger.With("component", "console"),
		controller: controller,
		in:         in,
		out:        out,
		renderer:   NewRenderer(out),
	}
}

// Run - reads moves until q, end of input or ctx is done.
func (that *Console) Run(ctx context.Context) error {
	lines := make(chan string)
	readErr := make(chan error, 1)

	go func() {
		scanner := bufio.NewScanner(that.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
		close(lines)
	}()

	game := entity.NewGame(gameID)
	if err := that.botOpens(game, func() error { return that.controller.BotTurn(game) }); err != nil {
		return err
	}

	for {
		that.print(prompt)

		var line string
		var ok bool

		select {
		case <-ctx.Done():
			that.print("\n")
			return nil
		case line, ok = <-lines:
		}

		if !ok {
			that.print("\n")
			if err := <-readErr; err != nil {
				return fmt.Errorf("failed to read input: %w", err)
			}

			return nil
		}

		line = strings.TrimSpace(line)
		if line == "q" || line == "quit" {
			return nil
		}

		move, err := parseMove(line)
		if err != nil {
			that.println(err.Error())
			continue
		}

		if err = that.play(game, move); err != nil {
			return err
		}
	}
}

func (that *Console) play(game *entity.Game, move entity.Move) error {
	if err := that.controller.PlayHuman(game, move); err != nil {
		if errors.Is(err, apperror.ErrInvalidMove) {
			that.println(fmt.Sprintf("Cell %d %d is already taken.", move.Row+1, move.Col+1))
			return nil
		}

		return fmt.Errorf("failed to play move: %w", err)
	}

	if game.IsOngoing() && game.LastBotMove != nil {
		that.println(fmt.Sprintf("AI plays %d %d", game.LastBotMove.Row+1, game.LastBotMove.Col+1))
	}

	that.print(that.renderer.Board(&game.Board))
	that.println(that.renderer.Status(tictactoe.StatusMessage(game)))

	if game.IsOngoing() {
		return nil
	}

	that.logger.Info("game over", "winner", game.Winner)

	return that.botOpens(game, func() error { return that.controller.Reset(game) })
}

// botOpens announces the bot turn, runs open and shows the resulting board.
func (that *Console) botOpens(game *entity.Game, open func() error) error {
	that.println(that.renderer.Status(fmt.Sprintf("AI's turn (%s)", game.BotMark)))

	if err := open(); err != nil {
		return fmt.Errorf("bot failed to open: %w", err)
	}

	that.print(that.renderer.Board(&game.Board))
	that.println(that.renderer.Status(tictactoe.StatusMessage(game)))

	return nil
}

func (that *Console) print(text string) {
	_, _ = io.WriteString(that.out, text)
}

func (that *Console) println(text string) {
	that.print(text + "\n")
}

// parseMove - parses "row col" with 1-based coordinates.
func parseMove(line string) (entity.Move, error) {
	fields := strings.FieldsFunc(line, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t'
	})
	if len(fields) != 2 {
		return entity.Move{}, errBadInput
	}

	row, err := strconv.Atoi(fields[0])
	if err != nil {
		return entity.Move{}, errBadInput
	}

	col, err := strconv.Atoi(fields[1])
	if err != nil {
		return entity.Move{}, errBadInput
	}

	move := entity.Move{Row: row - 1, Col: col - 1}
	if !move.InRange() {
		return entity.Move{}, errBadInput
	}

	return move, nil
}
