// Package store persists the best score. Every backend holds one
// non-negative integer per player key.
package store

import (
	"context"
	"errors"
	"fmt"
)

// ErrNoBest is returned by Load when nothing has been stored yet.
var ErrNoBest = errors.New("store: no best score")

// DefaultKey is used when no player name is known.
const DefaultKey = "bestScore"

type Store interface {
	Load(ctx context.Context) (int, error)
	Save(ctx context.Context, best int) error
}

func checkValue(v int) (int, error) {
	if v < 0 {
		return 0, fmt.Errorf("store: invalid best score %d", v)
	}

	return v, nil
}

// Key builds the per-player key.
func Key(player string) string {
	if player == "" {
		return DefaultKey
	}

	return DefaultKey + ":" + player
}

// Memory keeps the best score in process. Useful for tests and for running
// without persistence.
type Memory struct {
	best  int
	saved bool
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Load(ctx context.Context) (int, error) {
	if !m.saved {
		return 0, ErrNoBest
	}

	return m.best, nil
}

func (m *Memory) Save(ctx context.Context, best int) error {
	if _, err := checkValue(best); err != nil {
		return err
	}

	m.best = best
	m.saved = true
	return nil
}
