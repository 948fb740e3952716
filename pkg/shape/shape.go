package shape

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"strconv"
	"strings"
)

// Offsets in the same notation netris uses for minos. Y grows downwards.
const (
	Dot  = "(0,0)"
	I2   = "(0,0),(1,0)"
	I3   = "(0,0),(1,0),(2,0)"
	I4   = "(0,0),(1,0),(2,0),(3,0)"
	O2   = "(0,0),(1,0),(0,1),(1,1)"
	T    = "(0,1),(1,0),(1,1),(2,1)"
	L    = "(0,0),(0,1),(0,2),(1,2)"
	J    = "(1,0),(1,1),(1,2),(0,2)"
	S    = "(1,0),(2,0),(0,1),(1,1)"
	Z    = "(0,0),(1,0),(1,1),(2,1)"
	Plus = "(1,0),(0,1),(1,1),(2,1),(1,2)"
)

// Shape is an immutable named set of cell offsets. Offsets are normalised so
// the smallest X and the smallest Y are both 0.
type Shape struct {
	name   string
	points []Point
}

// New builds a shape from raw offsets, normalising them to the origin.
func New(name string, points ...Point) Shape {
	if len(points) == 0 {
		return Shape{name: name}
	}

	minx, miny := points[0].X, points[0].Y
	for _, p := range points[1:] {
		if p.X < minx {
			minx = p.X
		}
		if p.Y < miny {
			miny = p.Y
		}
	}

	origin := make([]Point, len(points))
	for i, p := range points {
		origin[i] = Point{p.X - minx, p.Y - miny}
	}

	return Shape{name: name, points: origin}
}

// Parse reads offsets written as "(0,0),(1,0)".
func Parse(name, s string) (Shape, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Shape{}, errors.New("empty shape")
	}

	var points []Point
	for _, part := range strings.Split(s, "),") {
		part = strings.Trim(strings.TrimSpace(part), "()")

		xy := strings.Split(part, ",")
		if len(xy) != 2 {
			return Shape{}, fmt.Errorf("invalid point %q in shape %s", part, name)
		}

		x, err := strconv.Atoi(strings.TrimSpace(xy[0]))
		if err != nil {
			return Shape{}, fmt.Errorf("invalid x in point %q: %w", part, err)
		}
		y, err := strconv.Atoi(strings.TrimSpace(xy[1]))
		if err != nil {
			return Shape{}, fmt.Errorf("invalid y in point %q: %w", part, err)
		}

		points = append(points, Point{x, y})
	}

	return New(name, points...), nil
}

func mustParse(name, s string) Shape {
	sh, err := Parse(name, s)
	if err != nil {
		panic(err)
	}
	return sh
}

func (s Shape) Name() string { return s.name }

// Points returns a copy of the offsets.
func (s Shape) Points() []Point {
	points := make([]Point, len(s.points))
	copy(points, s.points)
	return points
}

func (s Shape) Len() int { return len(s.points) }

func (s Shape) IsZero() bool { return s.name == "" && len(s.points) == 0 }

// Size returns the width and height of the bounding box.
func (s Shape) Size() (int, int) {
	var x, y int
	for _, p := range s.points {
		if p.X > x {
			x = p.X
		}
		if p.Y > y {
			y = p.Y
		}
	}

	return x + 1, y + 1
}

func (s Shape) HasPoint(p Point) bool {
	for _, sp := range s.points {
		if sp == p {
			return true
		}
	}

	return false
}

// String returns the sorted offsets, e.g. "(0,0),(1,0)".
func (s Shape) String() string {
	points := s.Points()
	sort.Slice(points, func(i, j int) bool {
		return points[i].Y < points[j].Y || (points[i].Y == points[j].Y && points[i].X < points[j].X)
	})

	var b strings.Builder
	for i, p := range points {
		if i > 0 {
			b.WriteRune(',')
		}
		b.WriteString(p.String())
	}

	return b.String()
}

// Render draws the shape with X for filled cells, top row first.
func (s Shape) Render() string {
	var b strings.Builder

	w, h := s.Size()
	for y := 0; y < h; y++ {
		line := make([]rune, w)
		for x := 0; x < w; x++ {
			if s.HasPoint(Point{x, y}) {
				line[x] = 'X'
			} else {
				line[x] = ' '
			}
		}

		b.WriteString(strings.TrimRight(string(line), " "))
		if y < h-1 {
			b.WriteRune('\n')
		}
	}

	return b.String()
}

var catalog = []Shape{
	mustParse("DOT", Dot),
	mustParse("I2", I2),
	mustParse("I3", I3),
	mustParse("I4", I4),
	mustParse("O2", O2),
	mustParse("T", T),
	mustParse("L", L),
	mustParse("J", J),
	mustParse("S", S),
	mustParse("Z", Z),
	mustParse("PLUS", Plus),
}

// Catalog returns every shape a tray can offer.
func Catalog() []Shape {
	shapes := make([]Shape, len(catalog))
	copy(shapes, catalog)
	return shapes
}

// Lookup finds a catalog shape by name.
func Lookup(name string) (Shape, bool) {
	for _, s := range catalog {
		if s.name == name {
			return s, true
		}
	}

	return Shape{}, false
}

// Random picks a catalog shape uniformly.
func Random(rng *rand.Rand) Shape {
	return catalog[rng.Intn(len(catalog))]
}
