package wave

import (
	"sync/atomic"
	"time"
)

// closeWait bounds how long Close blocks on an in-flight delivery.
const closeWait = 3 * time.Second

// Tap is the producer-facing entry into a Buffer. Capture backends call
// Deliver from their own goroutine; after Close returns, deliveries are
// rejected and none are still running, so the owner may tear down
// whatever the render side references.
type Tap struct {
	buf      Buffer
	kick     chan bool
	alive    int32
	inflight int32
}

// NewTap returns a live tap.
func NewTap() *Tap {
	return &Tap{
		kick:  make(chan bool, 1),
		alive: 1,
	}
}

// Buffer exposes the renderer side.
func (t *Tap) Buffer() *Buffer { return &t.buf }

// Kick signals once per fresh delivery. The channel is buffered and never
// blocks the producer.
func (t *Tap) Kick() <-chan bool { return t.kick }

// Deliver publishes a block. Muted or empty deliveries keep the previous
// block so the display freezes instead of collapsing to silence.
func (t *Tap) Deliver(left, right []float64, muted bool) {
	// Register before the liveness check. Doing it the other way round
	// leaves a window where Close sees no in-flight work while this
	// delivery is still about to publish.
	atomic.AddInt32(&t.inflight, 1)
	defer atomic.AddInt32(&t.inflight, -1)

	if atomic.LoadInt32(&t.alive) == 0 {
		return
	}

	if muted || len(left) == 0 {
		return
	}

	t.buf.Publish(left, right)

	select {
	case t.kick <- true:
	default:
	}
}

// Close stops accepting deliveries and waits, with an upper bound, for
// any delivery already registered to finish.
func (t *Tap) Close() {
	if !atomic.CompareAndSwapInt32(&t.alive, 1, 0) {
		return
	}

	deadline := time.Now().Add(closeWait)
	for atomic.LoadInt32(&t.inflight) > 0 {
		if time.Now().After(deadline) {
			return
		}
		time.Sleep(time.Millisecond)
	}
}
