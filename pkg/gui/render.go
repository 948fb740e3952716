package gui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/qnkhuat/blockterm/pkg/board"
	"github.com/qnkhuat/blockterm/pkg/game"
	"github.com/qnkhuat/blockterm/pkg/score"
	"github.com/qnkhuat/blockterm/pkg/shape"
	"github.com/qnkhuat/blockterm/pkg/tray"
	"github.com/rivo/tview"
)

// CellWidth is the number of terminal columns per board cell, so cells look
// square.
const CellWidth = 2

const block = "██"

type CellKind int

const (
	CellEmpty CellKind = iota
	CellFilled
	CellGhost
	CellGhostBlocked
)

// BoardKinds overlays a ghost preview on the occupancy grid. ok tells whether
// the previewed placement is legal.
func BoardKinds(cells []bool, ghost []int, ok bool) []CellKind {
	kinds := make([]CellKind, len(cells))
	for i, filled := range cells {
		if filled {
			kinds[i] = CellFilled
		}
	}

	for _, i := range ghost {
		if ok {
			kinds[i] = CellGhost
		} else {
			kinds[i] = CellGhostBlocked
		}
	}

	return kinds
}

// CellColor returns the background for a board cell.
func (t Theme) CellColor(kind CellKind, row int, col int) tcell.Color {
	switch kind {
	case CellFilled:
		return t.Filled
	case CellGhost:
		return t.Ghost
	case CellGhostBlocked:
		return t.GhostBlocked
	}

	if (row+col)%2 == 0 {
		return t.CellLight
	}
	return t.CellDark
}

// BoardCell builds the table cell for one board square.
func BoardCell(kind CellKind, row int, col int, cursor bool, t Theme) *tview.TableCell {
	text := strings.Repeat(" ", CellWidth)
	if cursor {
		text = "<>"
	}

	return tview.NewTableCell(text).
		SetAlign(tview.AlignCenter).
		SetTextColor(t.Cursor).
		SetBackgroundColor(t.CellColor(kind, row, col))
}

// tag returns a tview color tag for c.
func tag(c tcell.Color) string {
	if c == tcell.ColorDefault {
		return "[-]"
	}
	return fmt.Sprintf("[#%06x]", c.Hex())
}

// PieceRows draws a shape with CellWidth wide blocks.
func PieceRows(s shape.Shape) []string {
	if s.Len() == 0 {
		return nil
	}

	rows := strings.Split(s.Render(), "\n")
	for i, r := range rows {
		r = strings.ReplaceAll(r, " ", strings.Repeat(" ", CellWidth))
		rows[i] = strings.ReplaceAll(r, "X", block)
	}

	return rows
}

// TrayText renders the tray, one numbered piece after another. selected is
// the index of the active piece, or -1.
func TrayText(pieces []tray.Piece, selected int, t Theme) string {
	var b strings.Builder

	for i, p := range pieces {
		color := t.Piece
		if i == selected {
			color = t.PieceActive
		}

		fmt.Fprintf(&b, "%s%d %s\n", tag(t.Label), i+1, p.Shape.Name())
		for _, row := range PieceRows(p.Shape) {
			fmt.Fprintf(&b, "%s  %s\n", tag(color), row)
		}
		b.WriteString("\n")
	}

	return b.String()
}

// Breakdown describes the points of the last placement, e.g.
// "+200 Base • +50 Combo". It is empty when no line was cleared.
func Breakdown(u score.Update) string {
	if u.Lines <= 0 {
		return ""
	}

	text := fmt.Sprintf("+%d Base", u.Base)
	if u.Bonus > 0 {
		text += fmt.Sprintf(" • +%d Combo", u.Bonus)
	}

	return text
}

// StatusText renders score, combo, best score and play time.
func StatusText(snap game.Snapshot, elapsed string, breakdown string, t Theme) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%sSCORE: %d\n", tag(t.Score), snap.Score)
	if snap.Combo >= 2 {
		fmt.Fprintf(&b, "%sCOMBO x%d\n", tag(t.Combo), snap.Combo)
	} else {
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "%sBEST: %d\n", tag(t.Best), snap.Best)
	fmt.Fprintf(&b, "%sTIME: %s\n", tag(t.Label), elapsed)

	if breakdown != "" {
		fmt.Fprintf(&b, "\n%s%s\n", tag(t.Msg), breakdown)
	}

	return b.String()
}

// CellAt maps a table position back to a board cell. Every board cell is one
// table cell, so this only bounds checks.
func CellAt(row int, col int) (int, int, bool) {
	if row < 0 || row >= board.Size || col < 0 || col >= board.Size {
		return 0, 0, false
	}
	return row, col, true
}
