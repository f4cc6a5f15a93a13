package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"

	PlayerTie = "-"
)

// Game is a single human versus bot session.
type Game struct {
	ID          string `json:"id"`
	Board       Board  `json:"board"`
	Winner      string `json:"winner"`
	Status      string `json:"status"`
	Turn        Mark   `json:"player_turn"`
	HumanMark   Mark   `json:"human_mark"`
	BotMark     Mark   `json:"bot_mark"`
	LastBotMove *Move  `json:"last_bot_move,omitempty"`
}

// NewGame returns an ongoing game on an empty board with the bot to move.
func NewGame(id string) *Game {
	return &Game{
		ID:        id,
		Status:    StatusOngoing,
		Turn:      PlayerO,
		HumanMark: PlayerX,
		BotMark:   PlayerO,
	}
}

func (that *Game) UpdateGameState(lastMark Mark) {
	outcome, winner := that.Board.Outcome()

	switch outcome {
	case Win:
		that.Winner = winner.String()
		that.Status = StatusFinished
		that.Turn = EmptyCell
	case Draw:
		that.Winner = PlayerTie
		that.Status = StatusFinished
		that.Turn = EmptyCell
	default:
		that.Status = StatusOngoing
		that.Turn = lastMark.Opponent()
	}
}

// MakeTurn places mark for the player whose turn it is and updates the game state.
func (that *Game) MakeTurn(mark Mark, move Move) error {
	if that.IsFinished() {
		return apperror.ErrGameFinished
	}

	if that.Turn != mark {
		return apperror.ErrNotYourTurn
	}

	if err := that.Board.Place(move, mark); err != nil {
		return fmt.Errorf("failed to place %s: %w", mark, err)
	}

	that.UpdateGameState(mark)

	return nil
}

// Reset empties the board and hands the first move to the bot.
func (that *Game) Reset() {
	that.Board.Reset()
	that.Winner = ""
	that.Status = StatusOngoing
	that.Turn = that.BotMark
	that.LastBotMove = nil
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Game) IsBotTurn() bool {
	return that.IsOngoing() && that.Turn == that.BotMark
}

func (that *Game) IsHumanTurn() bool {
	return that.IsOngoing() && that.Turn == that.HumanMark
}
