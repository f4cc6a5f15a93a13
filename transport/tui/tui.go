package tui

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
)

const (
	gameID = "tui"

	pageBoard    = "board"
	pageGameOver = "gameover"

	cellWidth  = 7
	cellHeight = 3
)

var (
	colorX = tcell.ColorWhite
	colorO = tcell.ColorOrange
)

// UI is the interactive grid driver. All fields are touched on the tview event goroutine only.
type UI struct {
	logger     *slog.Logger
	controller *tictactoe.GameController
	delay      time.Duration

	app     *tview.Application
	pages   *tview.Pages
	status  *tview.TextView
	buttons [entity.BoardSize][entity.BoardSize]*tview.Button
	focus   entity.Move

	game       *entity.Game
	botPending bool

	// schedule runs fn on the event goroutine once the bot delay has passed.
	schedule func(fn func())
}

func New(logger *slog.Logger, controller *tictactoe.GameController, delay time.Duration) *UI {
	that := &UI{
		logger:     logger.With("component", "tui"),
		controller: controller,
		delay:      delay,
		app:        tview.NewApplication(),
		game:       entity.NewGame(gameID),
	}

	that.schedule = func(fn func()) {
		time.AfterFunc(that.delay, func() {
			that.app.QueueUpdateDraw(fn)
		})
	}

	that.build()

	return that
}

// Run - shows the grid and blocks until the user quits or ctx is done.
func (that *UI) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		that.app.Stop()
	}()

	that.start()

	if err := that.app.SetRoot(that.pages, true).EnableMouse(true).Run(); err != nil {
		return fmt.Errorf("tui failed: %w", err)
	}

	return nil
}

func (that *UI) build() {
	grid := tview.NewGrid().
		SetRows(cellHeight, cellHeight, cellHeight).
		SetColumns(cellWidth, cellWidth, cellWidth).
		SetGap(1, 1)

	for row := 0; row < entity.BoardSize; row++ {
		for col := 0; col < entity.BoardSize; col++ {
			move := entity.Move{Row: row, Col: col}

			button := tview.NewButton(" ").SetSelectedFunc(func() {
				that.focus = move
				that.play(move)
			})

			that.buttons[row][col] = button
			grid.AddItem(button, row, col, 1, 1, 0, 0, row == 0 && col == 0)
		}
	}

	that.status = tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetTextColor(tcell.ColorGreen)

	help := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetText("arrows move, enter plays, q quits")

	layout := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(grid, cellHeight*entity.BoardSize+entity.BoardSize-1, 0, true).
		AddItem(that.status, 1, 0, false).
		AddItem(help, 1, 0, false)

	frame := tview.NewFlex().
		AddItem(nil, 0, 1, false).
		AddItem(layout, cellWidth*entity.BoardSize+entity.BoardSize-1, 0, true).
		AddItem(nil, 0, 1, false)
	frame.SetBorder(true).SetTitle(" Tic-Tac-Toe: Can You Beat the AI? ")

	that.pages = tview.NewPages().AddPage(pageBoard, frame, true, true)

	that.app.SetInputCapture(that.handleKey)
}

func (that *UI) handleKey(event *tcell.EventKey) *tcell.EventKey {
	if name, _ := that.pages.GetFrontPage(); name == pageGameOver {
		return event
	}

	switch event.Key() {
	case tcell.KeyUp:
		that.moveFocus(-1, 0)
	case tcell.KeyDown:
		that.moveFocus(1, 0)
	case tcell.KeyLeft:
		that.moveFocus(0, -1)
	case tcell.KeyRight:
		that.moveFocus(0, 1)
	case tcell.KeyEscape:
		that.app.Stop()
	case tcell.KeyRune:
		if event.Rune() == 'q' {
			that.app.Stop()
			return nil
		}

		return event
	default:
		return event
	}

	return nil
}

func (that *UI) moveFocus(dRow, dCol int) {
	next := entity.Move{Row: that.focus.Row + dRow, Col: that.focus.Col + dCol}
	if !next.InRange() {
		return
	}

	that.focus = next
	that.app.SetFocus(that.buttons[next.Row][next.Col])
}

// start hands the fresh board to the bot.
func (that *UI) start() {
	that.refresh()
	that.scheduleBot()
}

func (that *UI) scheduleBot() {
	that.botPending = true
	that.schedule(that.botMove)
}

func (that *UI) botMove() {
	that.botPending = false

	if !that.game.IsBotTurn() {
		return
	}

	if err := that.controller.BotTurn(that.game); err != nil {
		that.logger.Error("bot turn failed", "error", err)
		return
	}

	that.refresh()
	that.checkGameOver()
}

func (that *UI) play(move entity.Move) {
	if that.botPending || !that.game.IsHumanTurn() {
		return
	}

	if err := that.controller.MakeTurn(that.game, that.game.HumanMark, move); err != nil {
		that.logger.Debug("move rejected", "move", move.String(), "error", err)
		return
	}

	that.refresh()

	if that.checkGameOver() {
		return
	}

	that.scheduleBot()
}

// checkGameOver shows the result dialog if the game has finished.
func (that *UI) checkGameOver() bool {
	if that.game.IsOngoing() {
		return false
	}

	that.logger.Info("game over", "winner", that.game.Winner)

	modal := tview.NewModal().
		SetText("Game Over\n\n" + tictactoe.ResultMessage(that.game)).
		AddButtons([]string{"OK"}).
		SetDoneFunc(func(int, string) {
			that.dismiss()
		})

	that.pages.AddPage(pageGameOver, modal, false, true)
	that.app.SetFocus(modal)

	return true
}

// dismiss closes the result dialog and starts the next game.
func (that *UI) dismiss() {
	that.pages.RemovePage(pageGameOver)
	that.app.SetFocus(that.buttons[that.focus.Row][that.focus.Col])

	that.game.Reset()
	that.start()
}

func (that *UI) refresh() {
	for row := 0; row < entity.BoardSize; row++ {
		for col := 0; col < entity.BoardSize; col++ {
			mark := that.game.Board.Cell(entity.Move{Row: row, Col: col})

			button := that.buttons[row][col]
			button.SetLabel(mark.String())

			switch mark {
			case entity.PlayerX:
				button.SetLabelColor(colorX)
			case entity.PlayerO:
				button.SetLabelColor(colorO)
			}
		}
	}

	that.status.SetText(tictactoe.StatusMessage(that.game))
}
