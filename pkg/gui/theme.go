package gui

import (
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// Terminal safe color palette is available here
// Themes should be limited to the colors defined in this reference
// https://upload.wikimedia.org/wikipedia/commons/1/15/Xterm_256color_chart.svg

// Theme is used for dynamically coloring the UI
type Theme struct {
	Name         string
	CellDark     tcell.Color
	CellLight    tcell.Color
	Filled       tcell.Color
	Ghost        tcell.Color
	GhostBlocked tcell.Color
	Cursor       tcell.Color
	Piece        tcell.Color
	PieceActive  tcell.Color
	Msg          tcell.Color
	Score        tcell.Color
	Combo        tcell.Color
	Best         tcell.Color
	Label        tcell.Color
}

// ThemeHex is the config form of a Theme
type ThemeHex struct {
	Name         string `yaml:"name"`
	CellDark     string `yaml:"cellDark"`
	CellLight    string `yaml:"cellLight"`
	Filled       string `yaml:"filled"`
	Ghost        string `yaml:"ghost"`
	GhostBlocked string `yaml:"ghostBlocked"`
	Cursor       string `yaml:"cursor"`
	Piece        string `yaml:"piece"`
	PieceActive  string `yaml:"pieceActive"`
	Msg          string `yaml:"msg"`
	Score        string `yaml:"score"`
	Combo        string `yaml:"combo"`
	Best         string `yaml:"best"`
	Label        string `yaml:"label"`
}

// fmtHex returns a one character hex for the ColorDefault
// and otherwise it returns a standard hex. This lets ColorDefault
// survive a round trip through the config instead of turning black
func fmtHex(v int32) string {
	if v == -1 {
		return "#0"
	}
	return fmt.Sprintf("#%06x", v)
}

// Hex converts a Theme to a ThemeHex
func (t Theme) Hex() ThemeHex {
	return ThemeHex{
		Name:         t.Name,
		CellDark:     fmtHex(t.CellDark.Hex()),
		CellLight:    fmtHex(t.CellLight.Hex()),
		Filled:       fmtHex(t.Filled.Hex()),
		Ghost:        fmtHex(t.Ghost.Hex()),
		GhostBlocked: fmtHex(t.GhostBlocked.Hex()),
		Cursor:       fmtHex(t.Cursor.Hex()),
		Piece:        fmtHex(t.Piece.Hex()),
		PieceActive:  fmtHex(t.PieceActive.Hex()),
		Msg:          fmtHex(t.Msg.Hex()),
		Score:        fmtHex(t.Score.Hex()),
		Combo:        fmtHex(t.Combo.Hex()),
		Best:         fmtHex(t.Best.Hex()),
		Label:        fmtHex(t.Label.Hex()),
	}
}

func getColor(hex string) tcell.Color {
	if hex == "#0" {
		return tcell.ColorDefault
	}
	return tcell.GetColor(hex)
}

// Theme converts a ThemeHex to a Theme
func (t ThemeHex) Theme() Theme {
	return Theme{
		Name:         t.Name,
		CellDark:     getColor(t.CellDark),
		CellLight:    getColor(t.CellLight),
		Filled:       getColor(t.Filled),
		Ghost:        getColor(t.Ghost),
		GhostBlocked: getColor(t.GhostBlocked),
		Cursor:       getColor(t.Cursor),
		Piece:        getColor(t.Piece),
		PieceActive:  getColor(t.PieceActive),
		Msg:          getColor(t.Msg),
		Score:        getColor(t.Score),
		Combo:        getColor(t.Combo),
		Best:         getColor(t.Best),
		Label:        getColor(t.Label),
	}
}

// ImportThemes returns a converted Theme from a slice of ThemeHex
// entities if its name matches the want argument
func ImportThemes(want string, themes []ThemeHex) (Theme, error) {
	for _, t := range themes {
		if t.Name == want {
			return t.Theme(), nil
		}
	}

	return Theme{}, errors.New("theme: no theme found")
}

// LookupTheme searches the extra themes first, then the built-in ones.
func LookupTheme(want string, extra []ThemeHex) (Theme, error) {
	if t, err := ImportThemes(want, extra); err == nil {
		return t, nil
	}

	for _, t := range Themes {
		if t.Name == want {
			return t, nil
		}
	}

	return Theme{}, fmt.Errorf("theme: no theme named %q", want)
}

// ThemeBasic is the default theme
var ThemeBasic = Theme{
	Name:         "basic",
	CellDark:     tcell.Color236,
	CellLight:    tcell.Color238,
	Filled:       tcell.Color75,
	Ghost:        tcell.Color114,
	GhostBlocked: tcell.Color167,
	Cursor:       tcell.Color226,
	Piece:        tcell.Color247,
	PieceActive:  tcell.Color214,
	Msg:          tcell.Color160,
	Score:        tcell.ColorDefault,
	Combo:        tcell.Color208,
	Best:         tcell.Color247,
	Label:        tcell.Color247,
}

var ThemeLight = Theme{
	Name:         "light",
	CellDark:     tcell.Color188,
	CellLight:    tcell.Color230,
	Filled:       tcell.Color25,
	Ghost:        tcell.Color151,
	GhostBlocked: tcell.Color218,
	Cursor:       tcell.Color166,
	Piece:        tcell.Color240,
	PieceActive:  tcell.Color25,
	Msg:          tcell.Color160,
	Score:        tcell.Color232,
	Combo:        tcell.Color166,
	Best:         tcell.Color240,
	Label:        tcell.Color240,
}

var Themes = []Theme{ThemeBasic, ThemeLight}
