package tray

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/google/uuid"
	"github.com/qnkhuat/blockterm/pkg/shape"
)

// Capacity is the number of pieces dealt on every refill.
const Capacity = 3

// Piece is one shape instance offered in the tray.
type Piece struct {
	ID    string
	Shape shape.Shape
}

// Tray holds the pieces currently offered to the player.
type Tray struct {
	pieces []Piece

	randomizer *rand.Rand
	*sync.Mutex
}

// New creates an empty tray drawing shapes from a seeded source.
func New(seed int64) *Tray {
	return &Tray{randomizer: rand.New(rand.NewSource(seed)), Mutex: new(sync.Mutex)}
}

// Refill replaces the tray contents with Capacity random shapes.
func (t *Tray) Refill() {
	t.Lock()
	shapes := make([]shape.Shape, Capacity)
	for i := range shapes {
		shapes[i] = shape.Random(t.randomizer)
	}
	t.Unlock()

	t.Deal(shapes...)
}

// Deal replaces the tray contents with the given shapes, in order.
func (t *Tray) Deal(shapes ...shape.Shape) {
	t.Lock()
	defer t.Unlock()

	t.pieces = make([]Piece, len(shapes))
	for i, s := range shapes {
		t.pieces[i] = Piece{ID: uuid.NewString(), Shape: s}
	}
}

// Remove takes the piece with the given slot ID out of the tray. Removing a
// piece that is not in the tray panics.
func (t *Tray) Remove(id string) {
	t.Lock()
	defer t.Unlock()

	for i, p := range t.pieces {
		if p.ID == id {
			t.pieces = append(t.pieces[:i], t.pieces[i+1:]...)
			return
		}
	}

	panic(fmt.Sprintf("tray: piece %s not in tray", id))
}

// Piece looks up a piece by slot ID.
func (t *Tray) Piece(id string) (Piece, bool) {
	t.Lock()
	defer t.Unlock()

	for _, p := range t.pieces {
		if p.ID == id {
			return p, true
		}
	}

	return Piece{}, false
}

// Pieces returns the pieces in insertion order.
func (t *Tray) Pieces() []Piece {
	t.Lock()
	defer t.Unlock()

	pieces := make([]Piece, len(t.pieces))
	copy(pieces, t.pieces)
	return pieces
}

func (t *Tray) Len() int {
	t.Lock()
	defer t.Unlock()

	return len(t.pieces)
}

func (t *Tray) IsEmpty() bool {
	return t.Len() == 0
}
