package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/pkg"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
)

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

// GameManager - session use cases on top of the game repository and the turn controller.
type GameManager struct {
	logger     *slog.Logger
	gameRepo   gameRepo
	controller *tictactoe.GameController
	locks      *gameLocks
}

func NewGameManager(logger *slog.Logger, gameRepo gameRepo, controller *tictactoe.GameController) *GameManager {
	return &GameManager{
		logger: logger.With("component", "game_manager"),

		gameRepo:   gameRepo,
		controller: controller,
		locks:      newGameLocks(),
	}
}

// CreateGame - starts a session, the bot has already opened when it is returned.
func (that *GameManager) CreateGame(ctx context.Context) (*entity.Game, error) {
	gameID, err := pkg.GenerateGameID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate game id: %w", err)
	}

	game, err := that.controller.NewGame(gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to start game: %w", err)
	}

	if err = that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	that.logger.Info("game created", "method", "CreateGame", "gameID", game.ID)

	return game, nil
}

func (that *GameManager) GetGame(ctx context.Context, gameID string) (*entity.Game, error) {
	game, err := that.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

// MakeTurn - applies the human move and the bot reply. Turns on one game run one at a time.
// A rejected move returns the stored game with the error.
func (that *GameManager) MakeTurn(ctx context.Context, gameID string, move entity.Move) (*entity.Game, error) {
	log := that.logger.With("method", "MakeTurn", "gameID", gameID)

	unlock := that.locks.lock(gameID)
	defer unlock()

	game, err := that.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	before := *game
	if err = that.controller.PlayHuman(game, move); err != nil {
		log.Debug("turn rejected", "move", move.String(), "error", err)
		return &before, fmt.Errorf("failed to make turn: %w", err)
	}

	if err = that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	if game.IsFinished() {
		log.Info("game finished", "winner", game.Winner)
	}

	return game, nil
}

// ResetGame - empties the board and lets the bot open again.
func (that *GameManager) ResetGame(ctx context.Context, gameID string) (*entity.Game, error) {
	unlock := that.locks.lock(gameID)
	defer unlock()

	game, err := that.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	if err = that.controller.Reset(game); err != nil {
		return nil, fmt.Errorf("failed to reset game: %w", err)
	}

	if err = that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	that.logger.Info("game reset", "method", "ResetGame", "gameID", gameID)

	return game, nil
}

func (that *GameManager) DeleteGame(ctx context.Context, gameID string) error {
	unlock := that.locks.lock(gameID)
	defer unlock()

	if err := that.gameRepo.DeleteByID(ctx, gameID); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	that.logger.Info("game deleted", "method", "DeleteGame", "gameID", gameID)

	return nil
}
