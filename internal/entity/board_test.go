package entity

import (
	"encoding/json"
	"testing"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoard_IsFull(t *testing.T) {
	t.Run("Empty board is not full", func(t *testing.T) {
		// Given: an empty board
		var board Board

		// Then: it should not be full
		assert.False(t, board.IsFull())
	})

	t.Run("Board with one empty cell is not full", func(t *testing.T) {
		// Given: a board with a single empty cell
		board := MustParseBoard("XOX/OXO/OX.")

		// Then: it should not be full
		assert.False(t, board.IsFull())
	})

	t.Run("Occupied board is full", func(t *testing.T) {
		// Given: a board without empty cells
		board := MustParseBoard("XOX/XOO/OXX")

		// Then: it should be full
		assert.True(t, board.IsFull())
	})
}

func TestBoard_EmptyCells(t *testing.T) {
	t.Run("Returns all cells of an empty board in row-major order", func(t *testing.T) {
		// Given: an empty board
		var board Board

		// When: listing empty cells
		moves := board.EmptyCells()

		// Then: every coordinate is returned row by row
		require.Len(t, moves, 9)
		for i, move := range moves {
			assert.Equal(t, MoveFromIndex(i), move)
		}
	})

	t.Run("Skips occupied cells", func(t *testing.T) {
		// Given: a partially filled board
		board := MustParseBoard("X.O/.X./O..")

		// When: listing empty cells
		moves := board.EmptyCells()

		// Then: only empty coordinates remain, in row-major order
		assert.Equal(t, []Move{
			{Row: 0, Col: 1},
			{Row: 1, Col: 0},
			{Row: 1, Col: 2},
			{Row: 2, Col: 1},
			{Row: 2, Col: 2},
		}, moves)
	})

	t.Run("Full board has no empty cells", func(t *testing.T) {
		// Given: a full board
		board := MustParseBoard("XOX/XOO/OXX")

		// Then: nothing is returned
		assert.Empty(t, board.EmptyCells())
	})
}

func TestBoard_Winner(t *testing.T) {
	lines := map[string]string{
		"top row":       "XXX/.../...",
		"middle row":    ".../XXX/...",
		"bottom row":    ".../.../XXX",
		"left column":   "X../X../X..",
		"middle column": ".X./.X./.X.",
		"right column":  "..X/..X/..X",
		"main diagonal": "X../.X./..X",
		"anti-diagonal": "..X/.X./X..",
	}

	for name, layout := range lines {
		t.Run("Detects "+name, func(t *testing.T) {
			// Given: a board where X owns the line
			board := MustParseBoard(layout)

			// Then: X wins and O does not
			assert.True(t, board.Winner(PlayerX))
			assert.False(t, board.Winner(PlayerO))
		})
	}

	t.Run("Two in a row is not a win", func(t *testing.T) {
		// Given: X with two cells on the top row
		board := MustParseBoard("XX./OO./...")

		// Then: nobody wins
		assert.False(t, board.Winner(PlayerX))
		assert.False(t, board.Winner(PlayerO))
	})

	t.Run("Empty mark never wins", func(t *testing.T) {
		// Given: an empty board where every line is empty
		var board Board

		// Then: EmptyCell is not a winner
		assert.False(t, board.Winner(EmptyCell))
	})

	t.Run("Placing the third mark completes the top row", func(t *testing.T) {
		// Given: X X _ / O O _ / _ _ _
		board := MustParseBoard("XX./OO./...")

		// When: X plays (0,2)
		err := board.Place(Move{Row: 0, Col: 2}, PlayerX)
		require.NoError(t, err)

		// Then: X wins immediately
		assert.True(t, board.Winner(PlayerX))
	})
}

func TestBoard_Place(t *testing.T) {
	t.Run("Places mark on empty cell", func(t *testing.T) {
		// Given: an empty board
		var board Board

		// When: X plays the center
		err := board.Place(Move{Row: 1, Col: 1}, PlayerX)

		// Then: the center holds X
		require.NoError(t, err)
		assert.Equal(t, PlayerX, board.Cell(Move{Row: 1, Col: 1}))
		assert.Equal(t, 1, board.Count(PlayerX))
	})

	t.Run("Error on occupied cell", func(t *testing.T) {
		// Given: a board with O in the corner
		board := MustParseBoard("O../.../...")
		before := board

		// When: X tries to overwrite it
		err := board.Place(Move{Row: 0, Col: 0}, PlayerX)

		// Then: ErrInvalidMove is returned and the board is unchanged
		require.ErrorIs(t, err, apperror.ErrInvalidMove)
		assert.Equal(t, before, board)
	})

	t.Run("Error on out of range move", func(t *testing.T) {
		// Given: an empty board
		var board Board

		// When: a move outside the grid is placed
		err := board.Place(Move{Row: 3, Col: -1}, PlayerX)

		// Then: ErrInvalidMove is returned
		require.ErrorIs(t, err, apperror.ErrInvalidMove)
		assert.Equal(t, Board{}, board)
	})

	t.Run("Error on empty mark", func(t *testing.T) {
		// Given: an empty board
		var board Board

		// When: EmptyCell is placed
		err := board.Place(Move{Row: 0, Col: 0}, EmptyCell)

		// Then: ErrInvalidMove is returned
		require.ErrorIs(t, err, apperror.ErrInvalidMove)
	})
}

func TestBoard_PlaceClearRoundTrip(t *testing.T) {
	// Given: a mid-game board
	board := MustParseBoard("O.X/.X./..O")
	before := board

	for _, move := range before.EmptyCells() {
		// When: a mark is placed and cleared again
		require.NoError(t, board.Place(move, PlayerX))
		board.Clear(move)

		// Then: the board is restored cell for cell
		assert.Equal(t, before, board, "move %s", move)
	}
}

func TestBoard_Outcome(t *testing.T) {
	t.Run("In progress", func(t *testing.T) {
		board := MustParseBoard("XO./.X./...")

		outcome, mark := board.Outcome()

		assert.Equal(t, InProgress, outcome)
		assert.Equal(t, EmptyCell, mark)
	})

	t.Run("Win", func(t *testing.T) {
		board := MustParseBoard("OOO/XX./X..")

		outcome, mark := board.Outcome()

		assert.Equal(t, Win, outcome)
		assert.Equal(t, PlayerO, mark)
	})

	t.Run("Draw", func(t *testing.T) {
		// Given: a full board without winner
		board := MustParseBoard("XOX/XOO/OXX")

		outcome, mark := board.Outcome()

		// Then: a draw, nobody owns a line
		assert.Equal(t, Draw, outcome)
		assert.Equal(t, EmptyCell, mark)
		assert.True(t, board.IsFull())
		assert.False(t, board.Winner(PlayerX))
		assert.False(t, board.Winner(PlayerO))
	})
}

func TestParseBoard(t *testing.T) {
	t.Run("Accepts compact and slashed layouts", func(t *testing.T) {
		compact, err := ParseBoard("XO__X___O")
		require.NoError(t, err)

		slashed, err := ParseBoard("XO./.X./..O")
		require.NoError(t, err)

		assert.Equal(t, compact, slashed)
		assert.Equal(t, "XO.\n.X.\n..O", slashed.String())
	})

	t.Run("Rejects wrong length", func(t *testing.T) {
		_, err := ParseBoard("XO")

		assert.ErrorIs(t, err, ErrInvalidLayout)
	})

	t.Run("Rejects unknown characters", func(t *testing.T) {
		_, err := ParseBoard("XOZ/.../...")

		assert.ErrorIs(t, err, ErrInvalidLayout)
	})
}

func TestMark_JSON(t *testing.T) {
	// Given: a board with both marks
	board := MustParseBoard("X../.O./...")

	// When: it is encoded
	data, err := json.Marshal(board)
	require.NoError(t, err)

	// Then: marks are plain strings and empty cells are blank
	assert.JSONEq(t, `[["X","",""],["","O",""],["","",""]]`, string(data))

	var decoded Board
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, board, decoded)
}

func TestMark_Opponent(t *testing.T) {
	assert.Equal(t, PlayerO, PlayerX.Opponent())
	assert.Equal(t, PlayerX, PlayerO.Opponent())
	assert.Equal(t, EmptyCell, EmptyCell.Opponent())
}
