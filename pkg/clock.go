package pkg

import (
	"fmt"
	"sync"
	"time"
)

// Clock counts play time. It only advances while running.
type Clock struct {
	elapsed time.Duration
	started time.Time
	running bool
	now     func() time.Time
	sync.Mutex
}

func NewClock() *Clock {
	return &Clock{now: time.Now}
}

func (cl *Clock) String() string {
	e := cl.Elapsed()
	return fmt.Sprintf("%d:%02d", int(e.Minutes()), int(e.Seconds())%60)
}

func (cl *Clock) Start() {
	cl.Lock()
	defer cl.Unlock()

	if !cl.running {
		cl.started = cl.now()
		cl.running = true
	}
}

func (cl *Clock) Pause() {
	cl.Lock()
	defer cl.Unlock()

	if cl.running {
		cl.elapsed += cl.now().Sub(cl.started)
		cl.running = false
	}
}

func (cl *Clock) Reset() {
	cl.Lock()
	defer cl.Unlock()

	cl.elapsed = 0
	cl.running = false
}

func (cl *Clock) Elapsed() time.Duration {
	cl.Lock()
	defer cl.Unlock()

	if cl.running {
		return cl.elapsed + cl.now().Sub(cl.started)
	}
	return cl.elapsed
}

// Run calls tick every second until done is closed.
func (cl *Clock) Run(done <-chan struct{}, tick func()) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			tick()
		case <-done:
			return
		}
	}
}
