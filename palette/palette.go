// Package palette provides solid colors and precomputed gradients for the
// drawing pipeline. Colors are plain sRGB; alpha is always opaque.
package palette

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// LUTSize is the resolution of a precomputed gradient.
const LUTSize = 256

// Bins is the number of distinct color batches a gradient is quantized
// into when emitting geometry. Bounding this keeps the number of
// color-state changes per frame small.
const Bins = 64

// RGB is an opaque sRGB color.
type RGB struct {
	R, G, B uint8
}

// Parse parses "#rrggbb" or "rrggbb".
func Parse(s string) (RGB, error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return RGB{}, errors.Errorf("invalid color %q", s)
	}

	var c RGB
	if _, err := fmt.Sscanf(s, "%02x%02x%02x", &c.R, &c.G, &c.B); err != nil {
		return RGB{}, errors.Wrapf(err, "invalid color %q", s)
	}

	return c, nil
}

// Lerp blends two colors. t is clamped to [0, 1].
func Lerp(a, b RGB, t float64) RGB {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}

	return RGB{
		R: uint8(float64(a.R) + (float64(b.R)-float64(a.R))*t),
		G: uint8(float64(a.G) + (float64(b.G)-float64(a.G))*t),
		B: uint8(float64(a.B) + (float64(b.B)-float64(a.B))*t),
	}
}

// Gradient is a precomputed color ramp.
type Gradient struct {
	lut [LUTSize]RGB
}

// NewGradient builds a gradient from evenly spaced stops. With fewer than
// two stops the gradient is a solid fill of the single (or zero) color.
func NewGradient(stops ...RGB) *Gradient {
	g := &Gradient{}

	switch len(stops) {
	case 0:
		return g
	case 1:
		for i := range g.lut {
			g.lut[i] = stops[0]
		}
		return g
	}

	spans := len(stops) - 1
	for i := range g.lut {
		t := float64(i) / float64(LUTSize-1) * float64(spans)
		idx := int(t)
		if idx >= spans {
			idx = spans - 1
		}
		g.lut[i] = Lerp(stops[idx], stops[idx+1], t-float64(idx))
	}

	return g
}

// At returns the gradient color at t in [0, 1]. t outside the range is
// clamped.
func (g *Gradient) At(t float64) RGB {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}

	idx := int(t*float64(LUTSize-1) + 0.5)
	if idx >= LUTSize {
		idx = LUTSize - 1
	}

	return g.lut[idx]
}

// BinColor returns the representative color for quantized bin b of n.
func (g *Gradient) BinColor(b, n int) RGB {
	if n <= 1 {
		return g.At(0)
	}
	return g.At(float64(b) / float64(n-1))
}
