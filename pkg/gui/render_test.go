package gui

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/qnkhuat/blockterm/pkg/board"
	"github.com/qnkhuat/blockterm/pkg/game"
	"github.com/qnkhuat/blockterm/pkg/score"
	"github.com/qnkhuat/blockterm/pkg/shape"
	"github.com/qnkhuat/blockterm/pkg/tray"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoardKinds(t *testing.T) {
	b := board.New()
	b.Fill(board.I(0, 1))

	i2, _ := shape.Lookup("I2")

	ghost, ok := b.Ghost(i2, 0, 2)
	kinds := BoardKinds(b.Cells(), ghost, ok)
	assert.Equal(t, CellFilled, kinds[board.I(0, 1)])
	assert.Equal(t, CellGhost, kinds[board.I(0, 2)])
	assert.Equal(t, CellGhost, kinds[board.I(0, 3)])
	assert.Equal(t, CellEmpty, kinds[board.I(0, 4)])

	ghost, ok = b.Ghost(i2, 0, 0)
	kinds = BoardKinds(b.Cells(), ghost, ok)
	assert.Equal(t, CellGhostBlocked, kinds[board.I(0, 0)])
	assert.Equal(t, CellGhostBlocked, kinds[board.I(0, 1)])
}

func TestCellColor(t *testing.T) {
	th := ThemeBasic

	assert.Equal(t, th.CellLight, th.CellColor(CellEmpty, 0, 0))
	assert.Equal(t, th.CellDark, th.CellColor(CellEmpty, 0, 1))
	assert.Equal(t, th.Filled, th.CellColor(CellFilled, 3, 4))
	assert.Equal(t, th.Ghost, th.CellColor(CellGhost, 3, 4))
	assert.Equal(t, th.GhostBlocked, th.CellColor(CellGhostBlocked, 3, 4))

	cell := BoardCell(CellFilled, 0, 0, true, th)
	assert.Equal(t, "<>", cell.Text)
}

func TestPieceRows(t *testing.T) {
	plus, _ := shape.Lookup("PLUS")
	assert.Equal(t, []string{"  ██", "██████", "  ██"}, PieceRows(plus))

	assert.Nil(t, PieceRows(shape.Shape{}))
}

func TestTrayText(t *testing.T) {
	dot, _ := shape.Lookup("DOT")
	i3, _ := shape.Lookup("I3")
	pieces := []tray.Piece{{ID: "a", Shape: dot}, {ID: "b", Shape: i3}}

	text := TrayText(pieces, 1, ThemeBasic)
	assert.Contains(t, text, "1 DOT")
	assert.Contains(t, text, "2 I3")
	assert.Contains(t, text, tag(ThemeBasic.PieceActive)+"  ██████")
	assert.Contains(t, text, tag(ThemeBasic.Piece)+"  ██\n")
}

func TestBreakdown(t *testing.T) {
	assert.Empty(t, Breakdown(score.Update{}))
	assert.Equal(t, "+100 Base", Breakdown(score.Update{Lines: 1, Base: 100, Combo: 1}))
	assert.Equal(t, "+200 Base • +100 Combo", Breakdown(score.Update{Lines: 2, Base: 200, Bonus: 100, Combo: 2}))
}

func TestStatusText(t *testing.T) {
	snap := game.Snapshot{Score: 450, Combo: 3, Best: 900}
	text := StatusText(snap, "1:05", "+100 Base", ThemeBasic)

	assert.Contains(t, text, "SCORE: 450")
	assert.Contains(t, text, "COMBO x3")
	assert.Contains(t, text, "BEST: 900")
	assert.Contains(t, text, "TIME: 1:05")
	assert.Contains(t, text, "+100 Base")

	snap.Combo = 1
	assert.NotContains(t, StatusText(snap, "0:00", "", ThemeBasic), "COMBO")
}

func TestTag(t *testing.T) {
	assert.Equal(t, "[-]", tag(tcell.ColorDefault))
	assert.Equal(t, "[#ff0000]", tag(tcell.NewHexColor(0xff0000)))
}

func TestThemeHexRoundTrip(t *testing.T) {
	for _, th := range Themes {
		got := th.Hex().Theme()
		assert.Equal(t, th.Hex(), got.Hex(), th.Name)
	}
}

func TestLookupTheme(t *testing.T) {
	th, err := LookupTheme("light", nil)
	require.NoError(t, err)
	assert.Equal(t, ThemeLight, th)

	custom := ThemeBasic.Hex()
	custom.Name = "custom"
	custom.Filled = "#ff0000"

	th, err = LookupTheme("custom", []ThemeHex{custom})
	require.NoError(t, err)
	assert.Equal(t, tcell.NewHexColor(0xff0000), th.Filled)

	_, err = LookupTheme("nope", nil)
	assert.Error(t, err)

	_, err = ImportThemes("basic", nil)
	assert.Error(t, err)
}

func TestCellAt(t *testing.T) {
	row, col, ok := CellAt(3, 4)
	assert.True(t, ok)
	assert.Equal(t, 3, row)
	assert.Equal(t, 4, col)

	_, _, ok = CellAt(board.Size, 0)
	assert.False(t, ok)
}
