// Package util carries small helpers with no opinion about the rest of
// the program.
package util

import "math"

// MovingWindow tracks the mean and standard deviation of the most recent
// values in a fixed-size ring. The running sums are rebuilt from the ring
// once per wraparound so floating-point drift never accumulates.
type MovingWindow struct {
	ring []float64
	head int
	size int

	sum   float64
	sqsum float64

	writes int
}

// NewMovingWindow returns a window over the last size values.
func NewMovingWindow(size int) *MovingWindow {
	if size < 1 {
		size = 1
	}
	return &MovingWindow{
		ring: make([]float64, size),
	}
}

// Update pushes a value, evicting the oldest when full, and returns the
// new mean and standard deviation.
func (mw *MovingWindow) Update(value float64) (mean, stddev float64) {
	old := mw.ring[mw.head]
	mw.ring[mw.head] = value
	mw.head = (mw.head + 1) % len(mw.ring)

	if mw.size < len(mw.ring) {
		mw.size++
		mw.sum += value
		mw.sqsum += value * value
	} else {
		mw.sum += value - old
		mw.sqsum += value*value - old*old
	}

	mw.writes++
	if mw.writes >= len(mw.ring) {
		mw.writes = 0
		mw.recompute()
	}

	return mw.Stats()
}

// Drop removes the n oldest values and returns the updated stats.
func (mw *MovingWindow) Drop(n int) (mean, stddev float64) {
	if n > mw.size {
		n = mw.size
	}

	tail := mw.head - mw.size
	for i := 0; i < n; i++ {
		idx := tail + i
		if idx < 0 {
			idx += len(mw.ring)
		}
		v := mw.ring[idx]
		mw.sum -= v
		mw.sqsum -= v * v
		mw.ring[idx] = 0
	}
	mw.size -= n

	return mw.Stats()
}

// Len is the number of held values.
func (mw *MovingWindow) Len() int { return mw.size }

// Cap is the window capacity.
func (mw *MovingWindow) Cap() int { return len(mw.ring) }

// Mean of the held values.
func (mw *MovingWindow) Mean() float64 {
	if mw.size == 0 {
		return 0
	}
	return mw.sum / float64(mw.size)
}

// StdDev of the held values.
func (mw *MovingWindow) StdDev() float64 {
	if mw.size < 2 {
		return 0
	}
	n := float64(mw.size)
	variance := (mw.sqsum - mw.sum*mw.sum/n) / (n - 1)
	if variance < 0 {
		variance = 0
	}
	return math.Sqrt(variance)
}

// Stats returns mean and standard deviation together.
func (mw *MovingWindow) Stats() (mean, stddev float64) {
	return mw.Mean(), mw.StdDev()
}

func (mw *MovingWindow) recompute() {
	mw.sum = 0
	mw.sqsum = 0
	tail := mw.head - mw.size
	for i := 0; i < mw.size; i++ {
		idx := tail + i
		if idx < 0 {
			idx += len(mw.ring)
		}
		v := mw.ring[idx]
		mw.sum += v
		mw.sqsum += v * v
	}
}
