package board

import (
	"fmt"
	"strings"

	"github.com/qnkhuat/blockterm/pkg/shape"
)

// Size is the width and height of the board.
const Size = 8

// Cells is the number of cells on the board.
const Cells = Size * Size

// I returns the flat index of a cell.
func I(row int, col int) int {
	return row*Size + col
}

// Board is the N×N occupancy grid. The zero value is not usable; call New.
type Board struct {
	cells []bool
}

// Clear describes one clear pass.
type Clear struct {
	// Lines is floor(len(Cells) / Size). When a row and a column are
	// completed together their shared cell is counted once, so this can be
	// lower than len(Rows)+len(Cols).
	Lines int
	Rows  []int
	Cols  []int
	Cells []int
}

func New() *Board {
	return &Board{cells: make([]bool, Cells)}
}

func inBounds(row int, col int) bool {
	return row >= 0 && row < Size && col >= 0 && col < Size
}

// Occupied reports whether a cell is filled. Out of range cells are reported
// as occupied so they never accept a piece.
func (b *Board) Occupied(row int, col int) bool {
	if !inBounds(row, col) {
		return true
	}

	return b.cells[I(row, col)]
}

// CanPlace reports whether every cell of s, anchored at (row, col), is on the
// board and free.
func (b *Board) CanPlace(s shape.Shape, row int, col int) bool {
	if s.Len() == 0 {
		return false
	}

	for _, p := range s.Points() {
		r := row + p.Y
		c := col + p.X

		if !inBounds(r, c) || b.cells[I(r, c)] {
			return false
		}
	}

	return true
}

// Place marks the cells of s as occupied. The caller must have checked
// CanPlace; placing over a filled or off-board cell panics.
func (b *Board) Place(s shape.Shape, row int, col int) []int {
	if !b.CanPlace(s, row, col) {
		panic(fmt.Sprintf("board: cannot place %s %s at (%d, %d)", s.Name(), s, row, col))
	}

	placed := make([]int, 0, s.Len())
	for _, p := range s.Points() {
		index := I(row+p.Y, col+p.X)
		b.cells[index] = true
		placed = append(placed, index)
	}

	return placed
}

// Ghost returns the cells s would cover at (row, col) and whether the
// placement is legal. Cells off the board are left out.
func (b *Board) Ghost(s shape.Shape, row int, col int) ([]int, bool) {
	var cells []int
	for _, p := range s.Points() {
		r := row + p.Y
		c := col + p.X

		if inBounds(r, c) {
			cells = append(cells, I(r, c))
		}
	}

	return cells, b.CanPlace(s, row, col)
}

// FitsAnywhere reports whether s can be placed at any anchor.
func (b *Board) FitsAnywhere(s shape.Shape) bool {
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			if b.CanPlace(s, row, col) {
				return true
			}
		}
	}

	return false
}

func (b *Board) RowFilled(row int) bool {
	for col := 0; col < Size; col++ {
		if !b.cells[I(row, col)] {
			return false
		}
	}

	return true
}

func (b *Board) ColFilled(col int) bool {
	for row := 0; row < Size; row++ {
		if !b.cells[I(row, col)] {
			return false
		}
	}

	return true
}

// ClearCompletedLines empties every full row and column at once.
func (b *Board) ClearCompletedLines() Clear {
	var (
		cl      Clear
		cleared = make(map[int]bool)
	)

	for row := 0; row < Size; row++ {
		if b.RowFilled(row) {
			cl.Rows = append(cl.Rows, row)
			for col := 0; col < Size; col++ {
				cleared[I(row, col)] = true
			}
		}
	}

	for col := 0; col < Size; col++ {
		if b.ColFilled(col) {
			cl.Cols = append(cl.Cols, col)
			for row := 0; row < Size; row++ {
				cleared[I(row, col)] = true
			}
		}
	}

	for index := 0; index < Cells; index++ {
		if cleared[index] {
			b.cells[index] = false
			cl.Cells = append(cl.Cells, index)
		}
	}

	cl.Lines = len(cl.Cells) / Size

	return cl
}

// Fill marks cells as occupied without any checks.
func (b *Board) Fill(cells ...int) {
	for _, index := range cells {
		b.cells[index] = true
	}
}

func (b *Board) Reset() {
	for i := range b.cells {
		b.cells[i] = false
	}
}

// Cells returns a copy of the occupancy grid indexed by I.
func (b *Board) Cells() []bool {
	cells := make([]bool, len(b.cells))
	copy(cells, b.cells)
	return cells
}

func (b *Board) FilledCount() int {
	count := 0
	for _, filled := range b.cells {
		if filled {
			count++
		}
	}

	return count
}

// Render draws the board with # for filled and . for empty, top row first.
func (b *Board) Render() string {
	var sb strings.Builder

	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			if b.cells[I(row, col)] {
				sb.WriteRune('#')
			} else {
				sb.WriteRune('.')
			}
		}

		if row < Size-1 {
			sb.WriteRune('\n')
		}
	}

	return sb.String()
}
