// Package minimax picks the optimal move with a full-depth game tree search.
//
// The search mutates the board it is given while it runs and restores every
// hypothetical placement before returning, so callers must not share the
// board with other goroutines for the duration of a call.
package minimax

import (
	"math"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

const (
	WinScore  = 10
	LossScore = -10
	DrawScore = 0
)

// Result is the outcome of a root search.
type Result struct {
	Move  entity.Move
	Score int
	Nodes int
}

// BestMove returns the optimal move for searching, or apperror.ErrNoLegalMove when the board is full.
// Equal scores keep the first candidate in row-major order.
func BestMove(board *entity.Board, searching, opponent entity.Mark) (entity.Move, error) {
	result, err := Search(board, searching, opponent)
	if err != nil {
		return entity.Move{}, err
	}

	return result.Move, nil
}

// Search is BestMove that also reports the score of the chosen move and how many positions were visited.
func Search(board *entity.Board, searching, opponent entity.Mark) (Result, error) {
	candidates := board.EmptyCells()
	if len(candidates) == 0 {
		return Result{}, apperror.ErrNoLegalMove
	}

	s := searcher{board: board, maximizing: searching, minimizing: opponent}

	best := Result{Score: math.MinInt}
	for _, move := range candidates {
		board[move.Row][move.Col] = searching
		score := s.evaluate(false)
		board.Clear(move)

		if score > best.Score {
			best.Move, best.Score = move, score
		}
	}

	best.Nodes = s.nodes

	return best, nil
}

// Evaluate scores the position for maximizing: +10 if it has a line, -10 if minimizing has one,
// 0 for a draw, otherwise the minimax value with isMaximizingTurn deciding who places next.
func Evaluate(board *entity.Board, maximizing, minimizing entity.Mark, isMaximizingTurn bool) int {
	s := searcher{board: board, maximizing: maximizing, minimizing: minimizing}

	return s.evaluate(isMaximizingTurn)
}

type searcher struct {
	board      *entity.Board
	maximizing entity.Mark
	minimizing entity.Mark
	nodes      int
}

func (that *searcher) evaluate(isMaximizingTurn bool) int {
	that.nodes++

	switch {
	case that.board.Winner(that.maximizing):
		return WinScore
	case that.board.Winner(that.minimizing):
		return LossScore
	case that.board.IsFull():
		return DrawScore
	}

	mark, best := that.minimizing, math.MaxInt
	if isMaximizingTurn {
		mark, best = that.maximizing, math.MinInt
	}

	for _, move := range that.board.EmptyCells() {
		that.board[move.Row][move.Col] = mark
		score := that.evaluate(!isMaximizingTurn)
		that.board.Clear(move)

		if isMaximizingTurn {
			best = max(best, score)
		} else {
			best = min(best, score)
		}
	}

	return best
}
