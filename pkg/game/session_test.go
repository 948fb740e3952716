package game

import (
	"context"
	"testing"

	"github.com/qnkhuat/blockterm/pkg/board"
	"github.com/qnkhuat/blockterm/pkg/event"
	"github.com/qnkhuat/blockterm/pkg/score"
	"github.com/qnkhuat/blockterm/pkg/shape"
	"github.com/qnkhuat/blockterm/pkg/store"
	"github.com/qnkhuat/blockterm/pkg/tray"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustShape(t testing.TB, name string) shape.Shape {
	t.Helper()

	s, ok := shape.Lookup(name)
	require.True(t, ok, "shape %s", name)
	return s
}

func newSession(t testing.TB, events chan event.Event) *Session {
	t.Helper()

	tracker := score.NewTracker(store.NewMemory(), nil)
	return New(tray.New(1), tracker, events, nil)
}

// checkerboard fills every cell where row+col is even. No row or column is
// full and no two empty cells touch.
func checkerboard(b *board.Board) {
	for row := 0; row < board.Size; row++ {
		for col := 0; col < board.Size; col++ {
			if (row+col)%2 == 0 {
				b.Fill(board.I(row, col))
			}
		}
	}
}

func drain(events chan event.Event) []event.Type {
	var types []event.Type
	for {
		select {
		case e := <-events:
			types = append(types, e.Type())
		default:
			return types
		}
	}
}

func TestNewSessionDealsTray(t *testing.T) {
	s := newSession(t, nil)

	assert.Equal(t, StateActive, s.State())
	assert.Equal(t, tray.Capacity, s.Tray().Len())
	assert.Zero(t, s.Board().FilledCount())
}

func TestInvalidPlacementChangesNothing(t *testing.T) {
	s := newSession(t, nil)
	s.Tray().Deal(mustShape(t, "I2"), mustShape(t, "DOT"))
	s.Board().Fill(board.I(3, 3))

	pieces := s.Tray().Pieces()
	before := s.Snapshot()

	assert.False(t, s.AttemptPlacement("missing", 0, 0), "unknown piece")
	assert.False(t, s.AttemptPlacement(pieces[0].ID, 0, 7), "off the right edge")
	assert.False(t, s.AttemptPlacement(pieces[0].ID, -1, 0), "off the top")
	assert.False(t, s.AttemptPlacement(pieces[0].ID, 3, 2), "overlaps a filled cell")

	assert.Equal(t, before, s.Snapshot())
}

func TestPlacementClearsAndScores(t *testing.T) {
	events := make(chan event.Event, 16)
	s := newSession(t, events)
	s.Tray().Deal(mustShape(t, "DOT"), mustShape(t, "DOT"))

	for col := 0; col < board.Size-1; col++ {
		s.Board().Fill(board.I(0, col))
	}

	id := s.Tray().Pieces()[0].ID
	require.True(t, s.AttemptPlacement(id, 0, 7))

	assert.Zero(t, s.Board().FilledCount(), "row 0 cleared")
	assert.Equal(t, 100, s.Score().Score)
	assert.Equal(t, 1, s.Score().Combo)
	assert.Equal(t, 100, s.LastUpdate().Points())
	assert.Equal(t, 1, s.Tray().Len())

	_, ok := s.Tray().Piece(id)
	assert.False(t, ok, "placed piece leaves the tray")

	assert.Equal(t, []event.Type{event.TypePlacement, event.TypeLinesCleared, event.TypeScore}, drain(events))
}

func TestPlacementWithoutClearResetsCombo(t *testing.T) {
	s := newSession(t, nil)
	s.Tray().Deal(mustShape(t, "DOT"), mustShape(t, "DOT"), mustShape(t, "DOT"))
	for col := 0; col < board.Size-1; col++ {
		s.Board().Fill(board.I(0, col))
	}

	pieces := s.Tray().Pieces()
	require.True(t, s.AttemptPlacement(pieces[0].ID, 0, 7))
	require.Equal(t, 1, s.Score().Combo)

	require.True(t, s.AttemptPlacement(pieces[1].ID, 5, 5))
	assert.Zero(t, s.Score().Combo)
	assert.Equal(t, 100, s.Score().Score)
}

func TestRefillWhenEmpty(t *testing.T) {
	s := newSession(t, nil)
	s.Tray().Deal(mustShape(t, "DOT"))

	old := s.Tray().Pieces()[0].ID
	require.True(t, s.AttemptPlacement(old, 4, 4))

	pieces := s.Tray().Pieces()
	assert.Len(t, pieces, tray.Capacity)
	for _, p := range pieces {
		assert.NotEqual(t, old, p.ID)
	}
	assert.Equal(t, StateActive, s.State())
}

func TestNoRefillWhilePiecesRemain(t *testing.T) {
	s := newSession(t, nil)
	require.Len(t, s.Tray().Pieces(), 3)
	s.Tray().Deal(mustShape(t, "DOT"), mustShape(t, "DOT"), mustShape(t, "DOT"))

	pieces := s.Tray().Pieces()
	require.True(t, s.AttemptPlacement(pieces[0].ID, 0, 0))
	assert.Equal(t, 2, s.Tray().Len())
	require.True(t, s.AttemptPlacement(pieces[1].ID, 2, 2))
	assert.Equal(t, 1, s.Tray().Len())
}

func TestGameOverWhenNothingFits(t *testing.T) {
	events := make(chan event.Event, 16)
	s := newSession(t, events)
	checkerboard(s.Board())
	s.Tray().Deal(mustShape(t, "DOT"), mustShape(t, "I2"))

	require.False(t, s.CheckGameOver(), "the DOT still fits")
	drain(events)

	dot := s.Tray().Pieces()[0].ID
	require.True(t, s.AttemptPlacement(dot, 0, 1))

	assert.Equal(t, StateOver, s.State())
	assert.True(t, s.Snapshot().Over)
	assert.Contains(t, drain(events), event.TypeGameOver)

	i2 := s.Tray().Pieces()[0].ID
	assert.False(t, s.AttemptPlacement(i2, 7, 0), "no placements once over")
}

func TestSingleCellKeepsGameAlive(t *testing.T) {
	s := newSession(t, nil)

	// Everything but (7,7) filled, without clearing lines.
	for index := 0; index < board.Cells-1; index++ {
		s.Board().Fill(index)
	}

	s.Tray().Deal(mustShape(t, "I2"))
	assert.True(t, s.CheckGameOver())

	s = newSession(t, nil)
	for index := 0; index < board.Cells-1; index++ {
		s.Board().Fill(index)
	}

	s.Tray().Deal(mustShape(t, "I2"), mustShape(t, "DOT"))
	assert.False(t, s.CheckGameOver())
	assert.Equal(t, StateActive, s.State())
}

func TestEmptyTrayIsNotTerminal(t *testing.T) {
	s := newSession(t, nil)
	for index := 0; index < board.Cells; index++ {
		s.Board().Fill(index)
	}
	s.Tray().Deal()

	assert.False(t, s.CheckGameOver())
	assert.Equal(t, StateActive, s.State())
}

func TestResetKeepsBest(t *testing.T) {
	events := make(chan event.Event, 16)
	s := newSession(t, events)
	s.Tray().Deal(mustShape(t, "DOT"), mustShape(t, "I2"))
	for col := 0; col < board.Size-1; col++ {
		s.Board().Fill(board.I(0, col))
	}

	require.True(t, s.AttemptPlacement(s.Tray().Pieces()[0].ID, 0, 7))
	require.Equal(t, 100, s.Score().Best)

	checkerboard(s.Board())
	require.True(t, s.CheckGameOver())
	drain(events)

	s.Reset()

	snap := s.Snapshot()
	assert.Equal(t, StateActive, s.State())
	assert.False(t, snap.Over)
	assert.Zero(t, s.Board().FilledCount())
	assert.Len(t, snap.Pieces, tray.Capacity)
	assert.Zero(t, snap.Score)
	assert.Zero(t, snap.Combo)
	assert.Equal(t, 100, snap.Best)
	assert.Equal(t, []event.Type{event.TypeReset}, drain(events))
}

func TestTyingBestIsNotNewBest(t *testing.T) {
	best := store.NewMemory()
	require.NoError(t, best.Save(context.Background(), 100))

	s := New(tray.New(1), score.NewTracker(best, nil), nil, nil)
	s.Tray().Deal(mustShape(t, "DOT"), mustShape(t, "DOT"), mustShape(t, "DOT"))
	for col := 0; col < board.Size-1; col++ {
		s.Board().Fill(board.I(0, col))
		s.Board().Fill(board.I(1, col))
	}

	require.True(t, s.AttemptPlacement(s.Tray().Pieces()[0].ID, 0, 7))
	snap := s.Snapshot()
	require.Equal(t, 100, snap.Score)
	assert.Equal(t, 100, snap.Best)
	assert.False(t, snap.NewBest, "equal to the loaded best")

	require.True(t, s.AttemptPlacement(s.Tray().Pieces()[0].ID, 1, 7))
	snap = s.Snapshot()
	assert.Greater(t, snap.Best, 100)
	assert.True(t, snap.NewBest)

	s.Reset()
	assert.False(t, s.Snapshot().NewBest)
}

func TestFullEventChannelDoesNotBlock(t *testing.T) {
	events := make(chan event.Event, 1)
	s := newSession(t, events)
	s.Tray().Deal(mustShape(t, "DOT"), mustShape(t, "DOT"))
	for col := 0; col < board.Size-1; col++ {
		s.Board().Fill(board.I(0, col))
	}

	require.True(t, s.AttemptPlacement(s.Tray().Pieces()[0].ID, 0, 7))
	assert.Equal(t, []event.Type{event.TypePlacement}, drain(events))
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "Active", StateActive.String())
	assert.Equal(t, "Over", StateOver.String())
}

func BenchmarkAttemptPlacement(b *testing.B) {
	s := newSession(b, nil)
	dot := mustShape(b, "DOT")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if s.IsOver() {
			s.Reset()
		}
		s.Tray().Deal(dot)
		s.AttemptPlacement(s.Tray().Pieces()[0].ID, (i/board.Size)%board.Size, i%board.Size)
	}
}
