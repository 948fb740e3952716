package pkg

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/qnkhuat/blockterm/pkg/board"
	"github.com/qnkhuat/blockterm/pkg/event"
	"github.com/qnkhuat/blockterm/pkg/game"
	"github.com/qnkhuat/blockterm/pkg/gui"
	"github.com/qnkhuat/blockterm/pkg/tray"
	"github.com/rivo/tview"
	"go.uber.org/zap"
)

const (
	pageGame = "game"
	pageOver = "over"

	// breakdownTTL is how long the points of a placement stay on screen.
	breakdownTTL = 800 * time.Millisecond
)

type Client struct {
	App     *tview.Application
	Board   *tview.Table
	Tray    *tview.TextView
	Status  *tview.TextView
	Modal   *tview.Modal
	Pages   *tview.Pages
	Session *game.Session
	Clock   *Clock
	Theme   gui.Theme
	Nick    string

	selected    int
	cursorRow   int
	cursorCol   int
	clicked     bool
	showingOver bool
	breakdown   string
	breakdownAt time.Time

	logger *zap.Logger
}

func NewClient(session *game.Session, theme gui.Theme, nick string, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	app := tview.NewApplication()

	boardView := tview.NewTable()
	boardView.SetBorder(true).SetTitle(fmt.Sprintf(" %s ", nick))

	trayView := tview.NewTextView().SetDynamicColors(true)
	trayView.SetBorder(true).SetTitle(" pieces ")

	status := tview.NewTextView().SetDynamicColors(true)

	help := tview.NewTextView().
		SetText("1-3 pick  arrows/hjkl move  enter/click place  r restart  q quit")

	layout := tview.NewGrid().
		SetRows(-1, board.Size+2, 1, -1).
		SetColumns(-1, board.Size*gui.CellWidth+2, 16, 20, -1).
		AddItem(boardView, 1, 1, 1, 1, 0, 0, true).
		AddItem(trayView, 0, 2, 4, 1, 0, 0, false).
		AddItem(status, 1, 3, 1, 1, 0, 0, false).
		AddItem(help, 2, 1, 1, 3, 0, 0, false)

	modal := tview.NewModal()

	pages := tview.NewPages().
		AddPage(pageGame, layout, true, true).
		AddPage(pageOver, modal, false, false)

	cl := &Client{
		App:     app,
		Board:   boardView,
		Tray:    trayView,
		Status:  status,
		Modal:   modal,
		Pages:   pages,
		Session: session,
		Clock:   NewClock(),
		Theme:   theme,
		Nick:    nick,
		logger:  logger,
	}

	modal.AddButtons([]string{string(ActionRestart), string(ActionQuit)}).
		SetDoneFunc(func(buttonIndex int, buttonLabel string) {
			switch Action(buttonLabel) {
			case ActionRestart:
				cl.Restart()
			case ActionQuit:
				cl.App.Stop()
			}
		})

	cl.initTable()
	cl.Clock.Start()
	cl.Render()

	return cl
}

func (cl *Client) initTable() {
	cl.Board.SetSelectable(true, true)
	cl.Board.Select(0, 0)

	cl.Board.SetSelectionChangedFunc(cl.selectionChanged).SetSelectedFunc(func(row, col int) {
		if cl.Move(row, col) {
			cl.Place()
		}
	})

	cl.Board.SetInputCapture(cl.handleKey)
	cl.Board.SetMouseCapture(func(action tview.MouseAction, ev *tcell.EventMouse) (tview.MouseAction, *tcell.EventMouse) {
		if action == tview.MouseLeftClick {
			cl.clicked = true
		}
		return action, ev
	})
}

// selectionChanged places on a mouse click. Clicks that land off the grid
// only clear the pending click.
func (cl *Client) selectionChanged(row, col int) {
	onGrid := cl.Move(row, col)
	if !cl.clicked {
		return
	}
	cl.clicked = false
	if onGrid {
		cl.Place()
	}
}

func (cl *Client) handleKey(ev *tcell.EventKey) *tcell.EventKey {
	if ev.Key() == tcell.KeyEscape {
		cl.App.Stop()
		return nil
	}

	if ev.Key() != tcell.KeyRune {
		return ev
	}

	switch r := ev.Rune(); r {
	case '1', '2', '3':
		cl.Select(int(r - '1'))
		return nil
	case 'r':
		cl.Restart()
		return nil
	case 'q':
		cl.App.Stop()
		return nil
	}

	return ev
}

func (cl *Client) selectedPiece() (tray.Piece, bool) {
	pieces := cl.Session.Tray().Pieces()
	if cl.selected < 0 || cl.selected >= len(pieces) {
		return tray.Piece{}, false
	}
	return pieces[cl.selected], true
}

// Select makes the i-th tray piece the one being placed.
func (cl *Client) Select(i int) bool {
	if i < 0 || i >= cl.Session.Tray().Len() {
		return false
	}

	cl.selected = i
	cl.Render()
	return true
}

// Move puts the cursor, and so the piece origin, on a board cell.
func (cl *Client) Move(row, col int) bool {
	row, col, ok := gui.CellAt(row, col)
	if !ok {
		return false
	}

	cl.cursorRow, cl.cursorCol = row, col
	cl.Render()
	return true
}

// Place drops the selected piece at the cursor.
func (cl *Client) Place() bool {
	piece, ok := cl.selectedPiece()
	if !ok {
		return false
	}

	if !cl.Session.AttemptPlacement(piece.ID, cl.cursorRow, cl.cursorCol) {
		cl.logger.Debug("rejected placement",
			zap.String("shape", piece.Shape.Name()),
			zap.Int("row", cl.cursorRow),
			zap.Int("col", cl.cursorCol))
		return false
	}

	if text := gui.Breakdown(cl.Session.LastUpdate()); text != "" {
		cl.breakdown = text
		cl.breakdownAt = time.Now()
	}

	if n := cl.Session.Tray().Len(); cl.selected >= n {
		cl.selected = n - 1
	}

	if cl.Session.IsOver() {
		cl.showGameOver()
	}

	cl.Render()
	return true
}

func (cl *Client) showGameOver() {
	cl.Clock.Pause()

	cl.Modal.SetText(gameOverText(cl.Session.Snapshot()))
	cl.Pages.ShowPage(pageOver)
	cl.App.SetFocus(cl.Modal)
	cl.showingOver = true
}

func gameOverText(snap game.Snapshot) string {
	text := fmt.Sprintf("%s\n\nScore: %d\nBest: %d", ActionGameOver, snap.Score, snap.Best)
	if snap.NewBest {
		text += fmt.Sprintf("\n%s", ActionNewBest)
	}
	return text
}

// Restart starts a new game. The best score carries over.
func (cl *Client) Restart() {
	cl.Session.Reset()
	cl.Clock.Reset()
	cl.Clock.Start()

	cl.selected = 0
	cl.breakdown = ""

	if cl.showingOver {
		cl.Pages.HidePage(pageOver)
		cl.App.SetFocus(cl.Board)
		cl.showingOver = false
	}

	cl.Render()
}

func (cl *Client) Render() {
	cl.RenderTable()
	cl.RenderTray()
	cl.RenderStatus()
}

func (cl *Client) RenderTable() {
	b := cl.Session.Board()

	var (
		ghost []int
		ok    bool
	)
	if piece, found := cl.selectedPiece(); found && !cl.Session.IsOver() {
		ghost, ok = b.Ghost(piece.Shape, cl.cursorRow, cl.cursorCol)
	}

	kinds := gui.BoardKinds(b.Cells(), ghost, ok)
	for row := 0; row < board.Size; row++ {
		for col := 0; col < board.Size; col++ {
			cursor := row == cl.cursorRow && col == cl.cursorCol
			cl.Board.SetCell(row, col, gui.BoardCell(kinds[board.I(row, col)], row, col, cursor, cl.Theme))
		}
	}
}

func (cl *Client) RenderTray() {
	cl.Tray.SetText(gui.TrayText(cl.Session.Tray().Pieces(), cl.selected, cl.Theme))
}

func (cl *Client) RenderStatus() {
	if cl.breakdown != "" && time.Since(cl.breakdownAt) > breakdownTTL {
		cl.breakdown = ""
	}

	cl.Status.SetText(gui.StatusText(cl.Session.Snapshot(), cl.Clock.String(), cl.breakdown, cl.Theme))
}

// HandleEvents records and logs session events until events is closed.
func (cl *Client) HandleEvents(events <-chan event.Event, rec *event.Recorder) {
	for e := range events {
		if rec != nil {
			if err := rec.Record(e); err != nil {
				cl.logger.Warn("failed to record event", zap.Stringer("type", e.Type()), zap.Error(err))
			}
		}

		switch e := e.(type) {
		case event.LinesClearedEvent:
			cl.logger.Info("lines cleared", zap.Int("lines", e.Lines), zap.Ints("rows", e.Rows), zap.Ints("cols", e.Cols))
		case event.GameOverEvent:
			cl.logger.Info("game over", zap.String("nick", cl.Nick), zap.Int("score", e.Score), zap.Int("best", e.Best))
		case event.ScoreEvent:
			if e.NewBest {
				cl.logger.Info("new best score", zap.String("nick", cl.Nick), zap.Int("best", e.Best))
			}
		}
	}
}

// Run shows the client until the player quits.
func (cl *Client) Run() error {
	done := make(chan struct{})
	defer close(done)

	go cl.Clock.Run(done, func() {
		cl.App.QueueUpdateDraw(cl.RenderStatus)
	})

	return cl.App.SetRoot(cl.Pages, true).EnableMouse(true).Run()
}
