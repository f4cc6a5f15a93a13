package tictactoe

import (
	"io"
	"log/slog"
	"testing"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newController() *GameController {
	return NewGameController(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestGameController_NewGame(t *testing.T) {
	// Given: a controller
	controller := newController()

	// When: a new game is created
	game, err := controller.NewGame("123")
	require.NoError(t, err)

	// Then: the bot has opened in the top left corner and the human is to move
	expected := entity.NewGame("123")
	expected.Board = entity.MustParseBoard("O../.../...")
	expected.Turn = entity.PlayerX
	expected.LastBotMove = &entity.Move{Row: 0, Col: 0}

	assert.Equal(t, expected, game)
}

func TestGameController_PlayHuman(t *testing.T) {
	t.Run("Bot replies to the human move", func(t *testing.T) {
		// Given: a fresh game after the bot opening
		controller := newController()
		game, err := controller.NewGame("123")
		require.NoError(t, err)

		// When: the human takes the center
		err = controller.PlayHuman(game, entity.Move{Row: 1, Col: 1})
		require.NoError(t, err)

		// Then: the bot has replied and it is the human's turn again
		assert.Equal(t, 2, game.Board.Count(entity.PlayerO))
		assert.Equal(t, 1, game.Board.Count(entity.PlayerX))
		assert.True(t, game.IsHumanTurn())
		require.NotNil(t, game.LastBotMove)
		assert.Equal(t, entity.PlayerO, game.Board.Cell(*game.LastBotMove))
	})

	t.Run("Bot blocks a threat", func(t *testing.T) {
		// Given: X _ _ / _ O _ / _ _ O with the human to move
		controller := newController()
		game := entity.NewGame("123")
		game.Board = entity.MustParseBoard("X../.O./..O")
		game.Turn = entity.PlayerX

		// When: the human plays (0,1)
		err := controller.PlayHuman(game, entity.Move{Row: 0, Col: 1})
		require.NoError(t, err)

		// Then: the bot answers at (0,2)
		assert.Equal(t, &entity.Move{Row: 0, Col: 2}, game.LastBotMove)
		assert.True(t, game.IsHumanTurn())
	})

	t.Run("Occupied cell is rejected and board unchanged", func(t *testing.T) {
		// Given: a game where the bot holds (0,0)
		controller := newController()
		game, err := controller.NewGame("123")
		require.NoError(t, err)
		before := game.Board

		// When: the human clicks the same cell
		err = controller.PlayHuman(game, entity.Move{Row: 0, Col: 0})

		// Then: ErrInvalidMove is returned
		require.ErrorIs(t, err, apperror.ErrInvalidMove)
		assert.Equal(t, before, game.Board)
		assert.True(t, game.IsHumanTurn())
	})

	t.Run("Human winning move ends the game without bot reply", func(t *testing.T) {
		// Given: a position where the human completes a line
		controller := newController()
		game := entity.NewGame("123")
		game.Board = entity.MustParseBoard("XX./OO./O..")
		game.Turn = entity.PlayerX

		// When: the human plays (0,2)
		err := controller.PlayHuman(game, entity.Move{Row: 0, Col: 2})
		require.NoError(t, err)

		// Then: X wins and the bot did not move
		assert.True(t, game.IsFinished())
		assert.Equal(t, "X", game.Winner)
		assert.Equal(t, 3, game.Board.Count(entity.PlayerO))
	})

	t.Run("Move after the game finished", func(t *testing.T) {
		// Given: a finished game
		controller := newController()
		game := entity.NewGame("123")
		game.Board = entity.MustParseBoard("OOO/XX./...")
		game.UpdateGameState(entity.PlayerO)

		// When: the human tries to move
		err := controller.PlayHuman(game, entity.Move{Row: 2, Col: 2})

		// Then: ErrGameFinished is returned
		assert.ErrorIs(t, err, apperror.ErrGameFinished)
	})

	t.Run("Human out of turn", func(t *testing.T) {
		// Given: a game where the bot is to move
		controller := newController()
		game := entity.NewGame("123")

		// When: the human tries to move
		err := controller.PlayHuman(game, entity.Move{Row: 1, Col: 1})

		// Then: ErrNotYourTurn is returned
		assert.ErrorIs(t, err, apperror.ErrNotYourTurn)
	})
}

func TestGameController_FullGameNeverLost(t *testing.T) {
	// Given: a human that always plays the first free cell
	controller := newController()
	game, err := controller.NewGame("123")
	require.NoError(t, err)

	// When: the game is played to the end
	for game.IsOngoing() {
		free := game.Board.EmptyCells()
		require.NotEmpty(t, free)
		require.NoError(t, controller.PlayHuman(game, free[0]))
	}

	// Then: the bot never loses
	assert.NotEqual(t, "X", game.Winner)
}

func TestGameController_Reset(t *testing.T) {
	// Given: a finished game
	controller := newController()
	game := entity.NewGame("123")
	game.Board = entity.MustParseBoard("OOO/XX./X..")
	game.UpdateGameState(entity.PlayerO)

	// When: the game is reset
	err := controller.Reset(game)
	require.NoError(t, err)

	// Then: the board holds only the bot opening move
	assert.Equal(t, entity.MustParseBoard("O../.../..."), game.Board)
	assert.Empty(t, game.Winner)
	assert.True(t, game.IsHumanTurn())
}

func TestGameController_BotTurnOnFullBoard(t *testing.T) {
	// Given: a full board that is still marked ongoing
	controller := newController()
	game := entity.NewGame("123")
	game.Board = entity.MustParseBoard("XOX/XOO/OXX")

	// When: the bot is asked to move
	err := controller.BotTurn(game)

	// Then: the no move signal surfaces
	assert.ErrorIs(t, err, apperror.ErrNoLegalMove)
}
