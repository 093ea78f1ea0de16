// Package wave carries audio sample blocks from a capture producer to the
// render loop. The producer and the renderer run on their own goroutines
// and meet at a single latest-wins slot, so a slow renderer never backs
// up capture and a fast renderer just re-reads the newest block.
package wave

import "sync"

// Block is a snapshot of the most recent samples. Left and Right hold one
// normalized sample per frame. Mono sources duplicate Left into Right so
// consumers never branch on channel count.
type Block struct {
	Left   []float64
	Right  []float64
	Frames int
}

// Buffer is the shared slot between producer and renderer. The zero value
// is ready to use and reads as silence.
type Buffer struct {
	mu    sync.Mutex
	left  []float64
	right []float64
	mono  bool
	seq   uint64
}

// Publish replaces the buffered block. right may be nil for mono input.
// Empty blocks are ignored so stale data survives capture hiccups.
func (b *Buffer) Publish(left, right []float64) {
	if len(left) == 0 {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.left = append(b.left[:0], left...)
	b.mono = len(right) == 0
	if !b.mono {
		b.right = append(b.right[:0], right...)
	}
	b.seq++
}

// Snapshot copies the buffered block into dst, reusing its slices.
func (b *Buffer) Snapshot(dst *Block) {
	b.mu.Lock()
	defer b.mu.Unlock()

	dst.Left = append(dst.Left[:0], b.left...)
	if b.mono {
		dst.Right = append(dst.Right[:0], b.left...)
	} else {
		dst.Right = append(dst.Right[:0], b.right...)
	}
	dst.Frames = len(dst.Left)
}

// Seq returns the publish counter, which tests and pacing logic use to
// detect fresh data.
func (b *Buffer) Seq() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.seq
}
