// Package dsp converts raw sample blocks into normalized amplitudes and
// smooths them over time and space.
package dsp

import "math"

// DBFloor is the level reported for effectively silent input.
const DBFloor = -120.0

// silenceLin is the linear magnitude below which input counts as silence.
const silenceLin = 1e-6

// Extractor reduces a stereo sample block to one normalized amplitude in
// [0, 1] per frame. Mono input passes nil for right. Extractors must cope
// with blocks of any length including zero.
type Extractor interface {
	Extract(dst, left, right []float64) []float64
}

// LinearExtractor scales the mean channel magnitude by a fixed gain.
type LinearExtractor struct {
	// Gain multiplies the raw magnitude before clipping.
	Gain float64
}

// Extract implements Extractor.
func (e LinearExtractor) Extract(dst, left, right []float64) []float64 {
	dst = ensureLen(dst, len(left))
	for i := range left {
		m := mean2(left, right, i)
		v := e.Gain * m
		if v > 1 {
			v = 1
		}
		if v < 0 || math.IsNaN(v) {
			v = 0
		}
		dst[i] = v
	}
	return dst
}

// DBExtractor maps the logarithmic level of each frame onto [0, 1]
// between a reaction threshold and a peak reference.
type DBExtractor struct {
	// ReactDB is the level mapped to 0.
	ReactDB float64
	// PeakDB is the level mapped to 1. It is forced above ReactDB.
	PeakDB float64
}

// Extract implements Extractor.
func (e DBExtractor) Extract(dst, left, right []float64) []float64 {
	react := e.ReactDB
	peak := e.PeakDB
	if peak <= react {
		peak = react + 0.1
	}
	span := peak - react

	dst = ensureLen(dst, len(left))
	for i := range left {
		db := AmpToDB(mean2(left, right, i))
		v := (db - react) / span
		if v < 0 || math.IsNaN(v) {
			v = 0
		}
		if v > 1 {
			v = 1
		}
		dst[i] = v
	}
	return dst
}

// AmpToDB converts a linear magnitude to decibels, flooring silence at
// DBFloor.
func AmpToDB(lin float64) float64 {
	if lin <= silenceLin || math.IsNaN(lin) {
		return DBFloor
	}
	db := 20 * math.Log10(lin)
	if db < DBFloor {
		db = DBFloor
	}
	return db
}

// mean2 averages the magnitudes of both channels at frame i, falling back
// to the left channel when right is absent.
func mean2(left, right []float64, i int) float64 {
	l := math.Abs(left[i])
	if i >= len(right) {
		return l
	}
	return 0.5 * (l + math.Abs(right[i]))
}

func ensureLen(dst []float64, n int) []float64 {
	if cap(dst) < n {
		return make([]float64, n)
	}
	return dst[:n]
}
