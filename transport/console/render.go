package console

import (
	"strings"

	"github.com/muesli/termenv"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

const (
	colorX = "#FFFFFF"
	colorO = "#FFA500"
)

// Renderer draws boards and status lines to a terminal output.
type Renderer struct {
	out *termenv.Output
}

func NewRenderer(out *termenv.Output) *Renderer {
	return &Renderer{out: out}
}

// Board - returns the board as a grid with 1-based row and column labels.
func (that *Renderer) Board(board *entity.Board) string {
	var b strings.Builder

	b.WriteString("    1   2   3\n")

	for row := 0; row < entity.BoardSize; row++ {
		b.WriteByte(byte('1' + row))
		b.WriteString("  ")

		for col := 0; col < entity.BoardSize; col++ {
			if col > 0 {
				b.WriteString("|")
			}

			b.WriteString(" ")
			b.WriteString(that.mark(board.Cell(entity.Move{Row: row, Col: col})))
			b.WriteString(" ")
		}

		b.WriteString("\n")

		if row < entity.BoardSize-1 {
			b.WriteString("   ---+---+---\n")
		}
	}

	return b.String()
}

func (that *Renderer) mark(mark entity.Mark) string {
	style := that.out.String(mark.String())

	switch mark {
	case entity.PlayerX:
		return style.Foreground(that.out.Color(colorX)).Bold().String()
	case entity.PlayerO:
		return style.Foreground(that.out.Color(colorO)).Bold().String()
	default:
		return style.String()
	}
}

// Status - returns a highlighted status line.
func (that *Renderer) Status(text string) string {
	return that.out.String(text).Italic().String()
}
