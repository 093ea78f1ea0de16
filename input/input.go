package input

import (
	"context"
	"fmt"
)

// Sample is the amplitude type delivered by all backends.
type Sample = float64

// SessionConfig describes a capture session.
type SessionConfig struct {
	Device     Device
	SampleRate float64
	// SampleSize is the number of frames per delivered block.
	SampleSize int
	// FrameSize is the number of samples per frame (channels), 1 or 2.
	FrameSize int
}

// Device identifies a capture device within its backend.
type Device interface {
	fmt.Stringer
}

// Consumer receives capture blocks on the session's goroutine. left and
// right hold one sample per frame; right is nil for mono sessions. A
// muted delivery carries no samples and marks a capture gap.
type Consumer interface {
	Deliver(left, right []Sample, muted bool)
}

// Session is a live capture stream.
type Session interface {
	// Start blocks, delivering blocks to out until ctx is canceled or
	// the source fails.
	Start(ctx context.Context, out Consumer) error
}
