package dsp

import "math"

// Curve reshapes a normalized amplitude with a power curve. Powers above
// one emphasize loud passages, powers below one lift quiet ones. A power
// at or below zero is treated as the identity.
func Curve(v, power float64) float64 {
	if v < 0 || math.IsNaN(v) {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	if power <= 0 || math.IsNaN(power) {
		return v
	}
	return math.Pow(v, power)
}

// SampleAt reads a normalized amplitude sequence at fractional position
// u in [0, 1] with linear interpolation. Empty input reads as silence.
func SampleAt(wave []float64, u float64) float64 {
	n := len(wave)
	if n == 0 {
		return 0
	}
	if n == 1 {
		return wave[0]
	}

	if u < 0 || math.IsNaN(u) {
		u = 0
	}
	if u > 1 {
		u = 1
	}

	f := u * float64(n-1)
	i := int(f)
	if i >= n-1 {
		return wave[n-1]
	}
	t := f - float64(i)
	return wave[i] + (wave[i+1]-wave[i])*t
}

// SmoothSpace runs a single-pole filter along a sequence to knock down
// bucket-to-bucket jitter. For closed outlines the seam values are
// averaged with their wrapped neighbors so the loop stays continuous.
// alpha is the blend weight of each new sample, clamped to (0, 1].
func SmoothSpace(dst, src []float64, alpha float64, wrap bool) []float64 {
	dst = ensureLen(dst, len(src))
	if len(src) == 0 {
		return dst
	}

	if alpha <= 0 || alpha > 1 || math.IsNaN(alpha) {
		alpha = 0.2
	}

	acc := src[0]
	dst[0] = acc
	for i := 1; i < len(src); i++ {
		acc += (src[i] - acc) * alpha
		dst[i] = acc
	}

	if wrap && len(dst) > 2 {
		last := len(dst) - 1
		seam := 0.5 * (dst[0] + dst[last])
		dst[0] = seam
		dst[last] = seam
	}

	return dst
}
