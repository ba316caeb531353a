package player

import (
	"sync"
	"sync/atomic"
	"time"
)

// FallbackClock keeps time for playback without audio. A background goroutine
// advances a shared counter once per frametime, whatever the render loop is
// doing, so a stalled loop snaps back to the right frame on its next resync.
//
// The counter holds the number of frame slots that have begun: it becomes 1
// as soon as the clock starts and reaches length after length-1 further
// intervals. A render loop that is on schedule therefore reads the index of
// the frame it is about to show next.
type FallbackClock struct {
	frametime time.Duration
	length    int

	counter  atomic.Int64
	started  bool
	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

// NewFallbackClock returns a stopped clock with its counter at 0.
func NewFallbackClock(frametime time.Duration, length int) *FallbackClock {
	return &FallbackClock{
		frametime: frametime,
		length:    length,
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}
}

// Start launches the ticking goroutine. It returns after the first slot has
// been counted.
func (c *FallbackClock) Start() {
	c.started = true
	if c.length <= 0 {
		close(c.done)
		return
	}
	c.counter.Store(1)
	go c.run()
}

func (c *FallbackClock) run() {
	defer close(c.done)

	ticker := time.NewTicker(c.frametime)
	defer ticker.Stop()

	for c.counter.Load() < int64(c.length) {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			c.counter.Add(1)
		}
	}
}

// Frame returns the current counter value.
func (c *FallbackClock) Frame() int {
	return int(c.counter.Load())
}

// Done is closed once the clock has counted to length or was stopped.
func (c *FallbackClock) Done() <-chan struct{} {
	return c.done
}

// Stop abandons the goroutine, waits for it to exit and resets the counter to 0.
func (c *FallbackClock) Stop() {
	c.stopOnce.Do(func() { close(c.stop) })
	if c.started {
		<-c.done
	}
	c.counter.Store(0)
}
