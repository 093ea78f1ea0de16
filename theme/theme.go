// Package theme turns smoothed amplitude data into drawing primitives.
// Every theme consumes the same Frame and emits geometry through a
// Renderer, so display backends only ever see colored primitives.
package theme

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/katvel/shapewave/config"
	"github.com/katvel/shapewave/dsp"
	"github.com/katvel/shapewave/palette"
	"github.com/katvel/shapewave/shape"
)

// Vertex is a point in canvas space, Y growing downward.
type Vertex struct {
	X, Y float64
}

// Renderer consumes colored primitives. Implementations batch per color;
// themes group their emissions to keep color switches rare.
type Renderer interface {
	SetColor(c palette.RGB)

	// Lines draws independent segments from consecutive vertex pairs.
	Lines(pts []Vertex)

	// LineStrip draws a connected polyline.
	LineStrip(pts []Vertex)

	// Triangles draws filled triangles from consecutive vertex triples.
	Triangles(pts []Vertex)
}

// Frame is one render tick's worth of input.
type Frame struct {
	// Wave holds normalized amplitudes in [0, 1], one per audio frame.
	// Fewer than two entries means no usable audio; themes then draw
	// their resting figure.
	Wave []float64

	// DT is the time since the previous frame in seconds, already
	// clamped to a sane range.
	DT float64

	// Width and Height are the canvas extents.
	Width, Height float64

	Cfg *config.Config
}

// Peak returns the loudest amplitude of the frame.
func (f *Frame) Peak() float64 {
	if len(f.Wave) == 0 {
		return 0
	}
	return floats.Max(f.Wave)
}

// Level reads the shaped amplitude at fractional position u.
func (f *Frame) Level(u float64) float64 {
	return dsp.Curve(dsp.SampleAt(f.Wave, u), f.Cfg.CurvePower)
}

// Outline builds the configured figure fitted to the canvas.
func (f *Frame) Outline() *shape.Outline {
	kind, _ := shape.ParseKind(f.Cfg.Shape)
	return shape.New(kind, f.Width, f.Height, shape.Options{
		RadiusFactor: float64(f.Cfg.FrameRadius) / 100,
	})
}

// Theme is one drawing style. Update runs under the pipeline's config
// lock whenever settings change and must run before the first Draw;
// Draw runs once per tick; Reset drops all per-instance motion state.
type Theme interface {
	ID() string
	Update(cfg *config.Config)
	Draw(f *Frame, r Renderer)
	Reset()
}

// Registry holds the available themes. It is a plain value owned by its
// creator rather than package state, so tests and embedders can build
// isolated sets.
type Registry struct {
	themes []Theme
}

// NewRegistry returns a registry with all built-in themes.
func NewRegistry() *Registry {
	reg := &Registry{}
	reg.Register(
		&lineTheme{},
		&orbitTheme{},
		&raysTheme{},
		&frameTheme{},
		&doughnutTheme{},
		&cosmicTheme{},
		newSparkleTheme(),
		newCartoonFrameTheme(),
		&wobbleTheme{},
		&blocksTheme{},
		&lightningTheme{},
	)
	return reg
}

// Register appends themes. Later registrations win ID lookups so
// embedders can shadow built-ins.
func (reg *Registry) Register(ts ...Theme) {
	reg.themes = append(reg.themes, ts...)
}

// IDs lists registered theme IDs in registration order.
func (reg *Registry) IDs() []string {
	out := make([]string, len(reg.themes))
	for i, t := range reg.themes {
		out[i] = t.ID()
	}
	return out
}

// Find resolves an ID, falling back to the first registered theme when
// the ID is unknown. A nil return means the registry is empty.
func (reg *Registry) Find(id string) Theme {
	var found Theme
	for _, t := range reg.themes {
		if t.ID() == id {
			found = t
		}
	}
	if found == nil && len(reg.themes) > 0 {
		found = reg.themes[0]
	}
	return found
}

// sampleOutline fills dst with spatially smoothed amplitudes for n
// points around the outline.
func sampleOutline(dst []float64, f *Frame, n int, closed bool) []float64 {
	if cap(dst) < n {
		dst = make([]float64, n)
	}
	dst = dst[:n]

	denom := n
	if !closed {
		denom = n - 1
	}
	for i := range dst {
		dst[i] = dsp.SampleAt(f.Wave, float64(i)/float64(denom))
	}

	return dsp.SmoothSpace(dst, dst, 0.2, closed)
}

// reach is the maximum outline displacement for a canvas.
func reach(f *Frame) float64 {
	r := f.Width
	if f.Height < r {
		r = f.Height
	}
	r *= 0.22
	if r < 1 {
		r = 1
	}
	return r
}

// gradientFor returns the configured color ramp, or a solid ramp when
// gradients are off.
func gradientFor(cfg *config.Config) *palette.Gradient {
	if cfg.GradientOn {
		return palette.NewGradient(cfg.ColorFG, cfg.ColorAccent)
	}
	return palette.NewGradient(cfg.ColorFG)
}

// binOf quantizes a normalized value into a gradient bin.
func binOf(v float64) int {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	b := int(v * float64(palette.Bins-1))
	if b >= palette.Bins {
		b = palette.Bins - 1
	}
	return b
}

func wrapPhase(p float64) float64 {
	p -= math.Floor(p)
	return p
}
