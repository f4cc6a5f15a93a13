package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

// StatusMessage - returns the status line the interactive drivers show for game.
func StatusMessage(game *entity.Game) string {
	if game.IsOngoing() {
		if game.IsBotTurn() {
			return fmt.Sprintf("AI's turn (%s)", game.BotMark)
		}

		return fmt.Sprintf("Your turn! (%s)", game.HumanMark)
	}

	switch game.Winner {
	case game.HumanMark.String():
		return "Congratulations! You win!"
	case game.BotMark.String():
		return "AI wins!"
	default:
		return "It's a draw!"
	}
}

// ResultMessage - returns the text of the game over dialog, empty while the game is ongoing.
func ResultMessage(game *entity.Game) string {
	switch {
	case game.IsOngoing():
		return ""
	case game.Winner == entity.PlayerTie:
		return "It's a draw!"
	default:
		return game.Winner + " wins!"
	}
}
