package game

import (
	"github.com/qnkhuat/blockterm/pkg/board"
	"github.com/qnkhuat/blockterm/pkg/event"
	"github.com/qnkhuat/blockterm/pkg/score"
	"github.com/qnkhuat/blockterm/pkg/tray"
	"go.uber.org/zap"
)

type State int

const (
	StateActive State = iota
	StateOver
)

func (s State) String() string {
	switch s {
	case StateActive:
		return "Active"
	case StateOver:
		return "Over"
	default:
		return "Unknown State"
	}
}

// Snapshot is a read-only copy of the session for renderers.
type Snapshot struct {
	Cells  []bool
	Pieces []tray.Piece
	Score  int
	Combo  int
	Best   int
	Over   bool

	// NewBest is set once this game beat the best it started with.
	NewBest bool
}

// Session owns one game: a board, a tray and a score tracker. It is not safe
// for concurrent use.
type Session struct {
	board   *board.Board
	tray    *tray.Tray
	tracker *score.Tracker
	state   State
	last    score.Update
	newBest bool

	events chan<- event.Event
	logger *zap.Logger
}

// New starts an active session. The tray is refilled if it is empty. events
// may be nil.
func New(t *tray.Tray, tracker *score.Tracker, events chan<- event.Event, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Session{
		board:   board.New(),
		tray:    t,
		tracker: tracker,
		events:  events,
		logger:  logger,
	}

	if s.tray.IsEmpty() {
		s.tray.Refill()
	}

	return s
}

func (s *Session) State() State          { return s.state }
func (s *Session) Board() *board.Board   { return s.board }
func (s *Session) Tray() *tray.Tray      { return s.tray }
func (s *Session) Score() *score.Tracker { return s.tracker }

// LastUpdate returns the score outcome of the most recent placement.
func (s *Session) LastUpdate() score.Update { return s.last }

func (s *Session) IsOver() bool { return s.state == StateOver }

// AttemptPlacement places the tray piece id with its origin at (row, col).
// It returns false and changes nothing when the session is over, the piece is
// not in the tray or the placement is not legal.
func (s *Session) AttemptPlacement(id string, row int, col int) bool {
	if s.state == StateOver {
		return false
	}

	piece, ok := s.tray.Piece(id)
	if !ok {
		s.logger.Debug("unknown piece", zap.String("piece", id))
		return false
	}

	if !s.board.CanPlace(piece.Shape, row, col) {
		return false
	}

	placed := s.board.Place(piece.Shape, row, col)
	s.emit(event.PlacementEvent{
		PieceID: piece.ID,
		Shape:   piece.Shape.Name(),
		Row:     row,
		Col:     col,
		Cells:   placed,
	})

	cleared := s.board.ClearCompletedLines()
	if cleared.Lines > 0 {
		s.emit(event.LinesClearedEvent{
			Lines: cleared.Lines,
			Rows:  cleared.Rows,
			Cols:  cleared.Cols,
			Cells: cleared.Cells,
		})
	}

	s.last = s.tracker.OnLinesCleared(cleared.Lines)
	s.newBest = s.newBest || s.last.NewBest
	if s.last.Points() > 0 {
		s.emit(event.ScoreEvent{
			Base:    s.last.Base,
			Bonus:   s.last.Bonus,
			Combo:   s.last.Combo,
			Score:   s.last.Score,
			Best:    s.last.Best,
			NewBest: s.last.NewBest,
		})
	}

	s.tray.Remove(piece.ID)
	if s.tray.IsEmpty() {
		s.tray.Refill()
	}

	s.logger.Debug("placed",
		zap.String("shape", piece.Shape.Name()),
		zap.Int("row", row),
		zap.Int("col", col),
		zap.Int("lines", cleared.Lines),
		zap.Int("score", s.tracker.Score))

	s.CheckGameOver()
	return true
}

// CheckGameOver moves the session to Over when the tray holds pieces and none
// of them fits anywhere on the board. An empty tray is never terminal.
func (s *Session) CheckGameOver() bool {
	if s.state == StateOver {
		return true
	}

	pieces := s.tray.Pieces()
	if len(pieces) == 0 {
		return false
	}

	for _, p := range pieces {
		if s.board.FitsAnywhere(p.Shape) {
			return false
		}
	}

	s.state = StateOver
	s.logger.Info("game over", zap.Int("score", s.tracker.Score), zap.Int("best", s.tracker.Best))
	s.emit(event.GameOverEvent{Score: s.tracker.Score, Best: s.tracker.Best})

	return true
}

// Reset starts a new game on the same session. The best score is kept.
func (s *Session) Reset() {
	s.board.Reset()
	s.tray.Refill()
	s.tracker.Reset()
	s.last = score.Update{}
	s.newBest = false
	s.state = StateActive

	s.emit(event.ResetEvent{Best: s.tracker.Best})
}

func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		Cells:  s.board.Cells(),
		Pieces: s.tray.Pieces(),
		Score:  s.tracker.Score,
		Combo:  s.tracker.Combo,
		Best:   s.tracker.Best,
		Over:   s.state == StateOver,

		NewBest: s.newBest,
	}
}

// emit never blocks; events are dropped when nobody is listening.
func (s *Session) emit(e event.Event) {
	if s.events == nil {
		return
	}

	select {
	case s.events <- e:
	default:
		s.logger.Debug("event dropped", zap.Stringer("type", e.Type()))
	}
}
