package shape

import (
	"strconv"
	"strings"
)

// Point is a cell offset. X grows to the right (columns), Y grows down (rows).
type Point struct {
	X, Y int
}

func (p Point) String() string {
	var b strings.Builder
	b.WriteRune('(')
	b.WriteString(strconv.Itoa(p.X))
	b.WriteRune(',')
	b.WriteString(strconv.Itoa(p.Y))
	b.WriteRune(')')

	return b.String()
}
