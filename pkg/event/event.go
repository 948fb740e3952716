package event

import (
	"bufio"
	"fmt"
	"io"
	"sync"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Type int

const (
	TypePlacement Type = iota
	TypeLinesCleared
	TypeScore
	TypeGameOver
	TypeReset
)

func (t Type) String() string {
	switch t {
	case TypePlacement:
		return "TypePlacement"
	case TypeLinesCleared:
		return "TypeLinesCleared"
	case TypeScore:
		return "TypeScore"
	case TypeGameOver:
		return "TypeGameOver"
	case TypeReset:
		return "TypeReset"
	default:
		return "Unknown Type"
	}
}

type Event interface {
	Type() Type
}

// Event types

type PlacementEvent struct {
	PieceID string
	Shape   string
	Row     int
	Col     int
	Cells   []int
}

func (e PlacementEvent) Type() Type { return TypePlacement }

type LinesClearedEvent struct {
	Lines int
	Rows  []int
	Cols  []int
	Cells []int
}

func (e LinesClearedEvent) Type() Type { return TypeLinesCleared }

type ScoreEvent struct {
	Base    int
	Bonus   int
	Combo   int
	Score   int
	Best    int
	NewBest bool
}

func (e ScoreEvent) Type() Type { return TypeScore }

type GameOverEvent struct {
	Score int
	Best  int
}

func (e GameOverEvent) Type() Type { return TypeGameOver }

type ResetEvent struct {
	Best int
}

func (e ResetEvent) Type() Type { return TypeReset }

// Transport wraps an encoded event with its type.
type Transport struct {
	Type Type
	Data jsoniter.RawMessage
}

// Encode wraps e in a Transport and marshals it.
func Encode(e Event) ([]byte, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("event: encode %s: %w", e.Type(), err)
	}

	return json.Marshal(Transport{Type: e.Type(), Data: data})
}

// Decode reads a Transport and returns the event it carries.
func Decode(b []byte) (Event, error) {
	var t Transport
	if err := json.Unmarshal(b, &t); err != nil {
		return nil, fmt.Errorf("event: decode transport: %w", err)
	}

	var (
		e   Event
		err error
	)
	switch t.Type {
	case TypePlacement:
		var m PlacementEvent
		err = json.Unmarshal(t.Data, &m)
		e = m
	case TypeLinesCleared:
		var m LinesClearedEvent
		err = json.Unmarshal(t.Data, &m)
		e = m
	case TypeScore:
		var m ScoreEvent
		err = json.Unmarshal(t.Data, &m)
		e = m
	case TypeGameOver:
		var m GameOverEvent
		err = json.Unmarshal(t.Data, &m)
		e = m
	case TypeReset:
		var m ResetEvent
		err = json.Unmarshal(t.Data, &m)
		e = m
	default:
		return nil, fmt.Errorf("event: unknown type %d", t.Type)
	}

	if err != nil {
		return nil, fmt.Errorf("event: decode %s: %w", t.Type, err)
	}

	return e, nil
}

// Recorder writes events as JSON lines.
type Recorder struct {
	w io.Writer
	sync.Mutex
}

func NewRecorder(w io.Writer) *Recorder {
	return &Recorder{w: w}
}

func (r *Recorder) Record(e Event) error {
	b, err := Encode(e)
	if err != nil {
		return err
	}

	r.Lock()
	defer r.Unlock()

	if b[len(b)-1] != '\n' {
		b = append(b, '\n')
	}
	_, err = r.w.Write(b)
	return err
}

// Replay decodes every line written by a Recorder.
func Replay(r io.Reader) ([]Event, error) {
	var events []Event

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if len(scanner.Bytes()) == 0 {
			continue
		}

		e, err := Decode(scanner.Bytes())
		if err != nil {
			return events, err
		}
		events = append(events, e)
	}

	return events, scanner.Err()
}
