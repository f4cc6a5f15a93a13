package entity

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
)

const BoardSize = 3

// Mark is the value of a single cell.
type Mark uint8

const (
	EmptyCell Mark = iota
	PlayerX
	PlayerO
)

var (
	ErrUnknownMark   = errors.New("unknown mark")
	ErrInvalidLayout = errors.New("invalid board layout")

	// WinCombos - rows, columns, main diagonal, anti-diagonal as row-major cell indexes.
	WinCombos = [8][3]int{
		{0, 1, 2},
		{3, 4, 5},
		{6, 7, 8},
		{0, 3, 6},
		{1, 4, 7},
		{2, 5, 8},
		{0, 4, 8},
		{2, 4, 6},
	}
)

func (that Mark) String() string {
	switch that {
	case PlayerX:
		return "X"
	case PlayerO:
		return "O"
	default:
		return " "
	}
}

// Opponent returns the other player's mark, EmptyCell stays EmptyCell.
func (that Mark) Opponent() Mark {
	switch that {
	case PlayerX:
		return PlayerO
	case PlayerO:
		return PlayerX
	default:
		return EmptyCell
	}
}

func (that Mark) MarshalText() ([]byte, error) {
	if that == EmptyCell {
		return []byte{}, nil
	}

	return []byte(that.String()), nil
}

func (that *Mark) UnmarshalText(text []byte) error {
	mark, err := ParseMark(string(text))
	if err != nil {
		return err
	}

	*that = mark

	return nil
}

func ParseMark(value string) (Mark, error) {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "":
		return EmptyCell, nil
	case "X":
		return PlayerX, nil
	case "O":
		return PlayerO, nil
	default:
		return EmptyCell, fmt.Errorf("%w: %q", ErrUnknownMark, value)
	}
}

// Move is a (row, column) coordinate on the board.
type Move struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func MoveFromIndex(index int) Move {
	return Move{Row: index / BoardSize, Col: index % BoardSize}
}

// Index returns the row-major cell index of the move.
func (that Move) Index() int {
	return that.Row*BoardSize + that.Col
}

func (that Move) InRange() bool {
	return that.Row >= 0 && that.Row < BoardSize && that.Col >= 0 && that.Col < BoardSize
}

func (that Move) String() string {
	return fmt.Sprintf("(%d, %d)", that.Row, that.Col)
}

type Outcome int

const (
	InProgress Outcome = iota
	Win
	Draw
)

func (that Outcome) String() string {
	switch that {
	case Win:
		return "win"
	case Draw:
		return "draw"
	default:
		return "in progress"
	}
}

// Board is the 3x3 grid.
type Board [BoardSize][BoardSize]Mark

// ParseBoard builds a board from nine row-major characters: X, O, and '.', '_' or ' ' for empty cells.
// Slashes, newlines and tabs are ignored so "XO./.X./..O" is accepted too.
func ParseBoard(layout string) (Board, error) {
	var board Board

	cells := make([]Mark, 0, BoardSize*BoardSize)
	for _, r := range layout {
		switch r {
		case 'X', 'x':
			cells = append(cells, PlayerX)
		case 'O', 'o':
			cells = append(cells, PlayerO)
		case '.', '_', ' ':
			cells = append(cells, EmptyCell)
		case '/', '\n', '\r', '\t':
		default:
			return board, fmt.Errorf("%w: unexpected %q", ErrInvalidLayout, r)
		}
	}

	if len(cells) != BoardSize*BoardSize {
		return board, fmt.Errorf("%w: got %d cells", ErrInvalidLayout, len(cells))
	}

	for i, mark := range cells {
		move := MoveFromIndex(i)
		board[move.Row][move.Col] = mark
	}

	return board, nil
}

// MustParseBoard is ParseBoard for literals known to be valid.
func MustParseBoard(layout string) Board {
	board, err := ParseBoard(layout)
	if err != nil {
		panic(err)
	}

	return board
}

func (that *Board) Cell(move Move) Mark {
	if !move.InRange() {
		return EmptyCell
	}

	return that[move.Row][move.Col]
}

func (that *Board) cellAt(index int) Mark {
	return that[index/BoardSize][index%BoardSize]
}

// IsFull reports whether no cell is empty.
func (that *Board) IsFull() bool {
	for _, row := range that {
		for _, cell := range row {
			if cell == EmptyCell {
				return false
			}
		}
	}

	return true
}

// EmptyCells returns every empty coordinate in row-major order.
func (that *Board) EmptyCells() []Move {
	moves := make([]Move, 0, BoardSize*BoardSize)
	for r, row := range that {
		for c, cell := range row {
			if cell == EmptyCell {
				moves = append(moves, Move{Row: r, Col: c})
			}
		}
	}

	return moves
}

// Winner reports whether mark owns all three cells of any row, column or diagonal.
func (that *Board) Winner(mark Mark) bool {
	if mark == EmptyCell {
		return false
	}

	for _, combo := range WinCombos {
		if that.cellAt(combo[0]) == mark && that.cellAt(combo[1]) == mark && that.cellAt(combo[2]) == mark {
			return true
		}
	}

	return false
}

// Place puts mark on an empty cell. The board is left untouched on error.
func (that *Board) Place(move Move, mark Mark) error {
	if !move.InRange() {
		return fmt.Errorf("%w: cell %s is out of range", apperror.ErrInvalidMove, move)
	}

	if mark != PlayerX && mark != PlayerO {
		return fmt.Errorf("%w: %w", apperror.ErrInvalidMove, ErrUnknownMark)
	}

	if that[move.Row][move.Col] != EmptyCell {
		return fmt.Errorf("%w: cell %s is already occupied", apperror.ErrInvalidMove, move)
	}

	that[move.Row][move.Col] = mark

	return nil
}

// Clear empties a cell, out of range moves are ignored.
func (that *Board) Clear(move Move) {
	if !move.InRange() {
		return
	}

	that[move.Row][move.Col] = EmptyCell
}

func (that *Board) Reset() {
	*that = Board{}
}

func (that *Board) Count(mark Mark) int {
	count := 0
	for _, row := range that {
		for _, cell := range row {
			if cell == mark {
				count++
			}
		}
	}

	return count
}

// Outcome derives the state of the board; the mark is set only for Win.
func (that *Board) Outcome() (Outcome, Mark) {
	for _, mark := range [2]Mark{PlayerX, PlayerO} {
		if that.Winner(mark) {
			return Win, mark
		}
	}

	if that.IsFull() {
		return Draw, EmptyCell
	}

	return InProgress, EmptyCell
}

func (that *Board) String() string {
	var sb strings.Builder
	for r, row := range that {
		if r > 0 {
			sb.WriteByte('\n')
		}

		for _, cell := range row {
			if cell == EmptyCell {
				sb.WriteByte('.')
				continue
			}

			sb.WriteString(cell.String())
		}
	}

	return sb.String()
}
