package console

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/muesli/termenv"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-minimax/testing/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, input string) string {
	t.Helper()

	var buf bytes.Buffer
	logger := suite.NewLogger()
	out := termenv.NewOutput(&buf, termenv.WithProfile(termenv.Ascii))

	err := New(logger, tictactoe.NewGameController(logger), strings.NewReader(input), out).Run(context.Background())
	require.NoError(t, err)

	return buf.String()
}

func TestConsole_Run(t *testing.T) {
	t.Run("Bot opens and quit exits", func(t *testing.T) {
		// When: the player quits right away
		output := run(t, "q\n")

		// Then: the bot opened in the top left corner
		assert.Contains(t, output, "AI's turn (O)")
		assert.Contains(t, output, "1   O |   |   \n")
		assert.Contains(t, output, "Your turn! (X)")
	})

	t.Run("End of input exits", func(t *testing.T) {
		output := run(t, "")

		assert.Contains(t, output, prompt)
	})

	t.Run("Bad input and occupied cells are reported", func(t *testing.T) {
		// When: the player types garbage, an off board cell and the bot's cell
		output := run(t, "hello\n4 1\n1 1\nq\n")

		// Then: each is rejected without ending the session
		assert.Equal(t, 2, strings.Count(output, errBadInput.Error()))
		assert.Contains(t, output, "Cell 1 1 is already taken.")
	})

	t.Run("Played out game ends in a draw and restarts", func(t *testing.T) {
		// Given: a line of play where the human blocks every threat
		input := "2 2\n1 3\n2 1\n3 2\n"

		// When: the moves are entered
		output := run(t, input)

		// Then: the draw is announced and the bot opens again
		assert.Contains(t, output, "AI plays 1 2")
		assert.Contains(t, output, "AI plays 3 1")
		assert.Contains(t, output, "AI plays 2 3")
		assert.Contains(t, output, "It's a draw!")
		assert.Equal(t, 2, strings.Count(output, "AI's turn (O)"))
		assert.NotContains(t, output, "AI wins!")
	})
}

func TestParseMove(t *testing.T) {
	tests := []struct {
		line    string
		want    entity.Move
		wantErr bool
	}{
		{line: "1 1", want: entity.Move{Row: 0, Col: 0}},
		{line: "3,2", want: entity.Move{Row: 2, Col: 1}},
		{line: "  2\t3 ", want: entity.Move{Row: 1, Col: 2}},
		{line: "0 1", wantErr: true},
		{line: "1", wantErr: true},
		{line: "1 2 3", wantErr: true},
		{line: "a b", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			move, err := parseMove(tt.line)

			if tt.wantErr {
				assert.ErrorIs(t, err, errBadInput)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, move)
		})
	}
}

func TestRenderer_Board(t *testing.T) {
	// Given: a renderer without colors
	renderer := NewRenderer(termenv.NewOutput(&bytes.Buffer{}, termenv.WithProfile(termenv.Ascii)))
	board := entity.MustParseBoard("OX./.X./..O")

	// When: the board is rendered
	got := renderer.Board(&board)

	// Then: marks sit under their labels
	want := "    1   2   3\n" +
		"1   O | X |   \n" +
		"   ---+---+---\n" +
		"2     | X |   \n" +
		"   ---+---+---\n" +
		"3     |   | O \n"
	assert.Equal(t, want, got)
}
