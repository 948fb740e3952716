package score

import (
	"context"
	"errors"
	"time"

	"github.com/qnkhuat/blockterm/pkg/store"
	"go.uber.org/zap"
)

const (
	LinePoints  = 100
	ComboPoints = 50

	// ComboLineCap caps the lines that multiply the combo bonus.
	ComboLineCap = 2

	storeTimeout = 2 * time.Second
)

// Update is the outcome of one placement.
type Update struct {
	Lines   int
	Base    int
	Bonus   int
	Combo   int
	Score   int
	Best    int
	NewBest bool
}

// Points returns the total points the placement added.
func (u Update) Points() int {
	return u.Base + u.Bonus
}

// Tracker derives score, combo and best score from line clears.
type Tracker struct {
	Score int
	Combo int
	Best  int

	store  store.Store
	logger *zap.Logger
}

// NewTracker reads the best score from s once. A missing, invalid or
// unreadable value starts the best score at 0.
func NewTracker(s store.Store, logger *zap.Logger) *Tracker {
	if logger == nil {
		logger = zap.NewNop()
	}

	t := &Tracker{store: s, logger: logger}

	if s == nil {
		return t
	}

	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	best, err := s.Load(ctx)
	switch {
	case errors.Is(err, store.ErrNoBest):
	case err != nil:
		logger.Warn("failed to load best score", zap.Error(err))
	default:
		t.Best = best
	}

	return t
}

// Bonus returns the combo bonus for a clear of lines at the given combo.
func Bonus(combo int, lines int) int {
	if combo < 2 || lines <= 0 {
		return 0
	}

	if lines > ComboLineCap {
		lines = ComboLineCap
	}

	return (combo - 1) * ComboPoints * lines
}

// OnLinesCleared applies one placement that cleared lines lines.
func (t *Tracker) OnLinesCleared(lines int) Update {
	u := Update{Lines: lines}

	if lines <= 0 {
		t.Combo = 0

		u.Lines = 0
		u.Score = t.Score
		u.Best = t.Best
		return u
	}

	t.Combo++

	u.Base = lines * LinePoints
	u.Bonus = Bonus(t.Combo, lines)
	t.Score += u.Base + u.Bonus

	if t.Score > t.Best {
		t.Best = t.Score
		u.NewBest = true
		t.persist()
	}

	u.Combo = t.Combo
	u.Score = t.Score
	u.Best = t.Best
	return u
}

func (t *Tracker) persist() {
	if t.store == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	if err := t.store.Save(ctx, t.Best); err != nil {
		t.logger.Warn("failed to save best score", zap.Int("best", t.Best), zap.Error(err))
	}
}

// Reset starts a new session. The best score is kept.
func (t *Tracker) Reset() {
	t.Score = 0
	t.Combo = 0
}
