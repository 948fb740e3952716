package pkg

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClock(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	cl := NewClock()
	cl.now = func() time.Time { return now }

	assert.Equal(t, "0:00", cl.String())

	cl.Start()
	now = now.Add(65 * time.Second)
	assert.Equal(t, "1:05", cl.String())

	cl.Pause()
	now = now.Add(time.Hour)
	assert.Equal(t, 65*time.Second, cl.Elapsed(), "paused clocks do not advance")

	cl.Start()
	now = now.Add(5 * time.Second)
	assert.Equal(t, 70*time.Second, cl.Elapsed())

	cl.Reset()
	assert.Zero(t, cl.Elapsed())
}

func TestClockRunStops(t *testing.T) {
	done := make(chan struct{})
	finished := make(chan struct{})

	go func() {
		NewClock().Run(done, func() {})
		close(finished)
	}()

	close(done)
	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("Run did not return")
	}
}
