package tictactoe

import (
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/minimax"
)

// GameController runs the turn protocol: the bot opens, the human answers, the bot replies.
type GameController struct {
	logger *slog.Logger
}

func NewGameController(logger *slog.Logger) *GameController {
	return &GameController{
		logger: logger.With("component", "game_controller"),
	}
}

// NewGame creates a game and lets the bot play the opening move.
func (that *GameController) NewGame(id string) (*entity.Game, error) {
	game := entity.NewGame(id)

	if err := that.BotTurn(game); err != nil {
		return nil, fmt.Errorf("bot failed to make first turn: %w", err)
	}

	return game, nil
}

// MakeTurn - applies mark at move if it is mark's turn.
func (that *GameController) MakeTurn(game *entity.Game, mark entity.Mark, move entity.Move) error {
	if err := game.MakeTurn(mark, move); err != nil {
		return fmt.Errorf("invalid turn: %w", err)
	}

	return nil
}

// PlayHuman applies the human move and, unless that ended the game, the bot reply.
func (that *GameController) PlayHuman(game *entity.Game, move entity.Move) error {
	if err := that.MakeTurn(game, game.HumanMark, move); err != nil {
		return err
	}

	if game.IsFinished() {
		return nil
	}

	return that.BotTurn(game)
}

// BotTurn - searches and applies the bot move.
func (that *GameController) BotTurn(game *entity.Game) error {
	log := that.logger.With("method", "BotTurn", "gameID", game.ID)

	result, err := minimax.Search(&game.Board, game.BotMark, game.HumanMark)
	if err != nil {
		return fmt.Errorf("failed to search move: %w", err)
	}

	if err = that.MakeTurn(game, game.BotMark, result.Move); err != nil {
		return err
	}

	move := result.Move
	game.LastBotMove = &move

	log.Debug("bot moved", "move", move.String(), "score", result.Score, "nodes", result.Nodes)

	return nil
}

// Reset clears the board and lets the bot open again.
func (that *GameController) Reset(game *entity.Game) error {
	game.Reset()

	if err := that.BotTurn(game); err != nil {
		return fmt.Errorf("bot failed to make first turn: %w", err)
	}

	return nil
}
