package theme

import (
	"math"

	"github.com/katvel/shapewave/config"
	"github.com/katvel/shapewave/dsp"
	"github.com/katvel/shapewave/palette"
)

// sparkleTheme orbits a particle field around a wobbling ring. Sparks
// ignite where the audio is loud enough and burn out over their
// lifetime.
type sparkleTheme struct {
	count  int
	power  float64
	fg     palette.RGB
	accent palette.RGB

	sparks Sparks

	smoother dsp.Smoother
	attack   float64
	release  float64

	amps []float64
	ring []Vertex
	dots []Vertex
}

// sparkleRingSegs is the ring resolution; the harmonic wobble needs no
// more than this to look round.
const sparkleRingSegs = 96

func newSparkleTheme() *sparkleTheme {
	return &sparkleTheme{}
}

func (t *sparkleTheme) ID() string { return "sparkle" }

func (t *sparkleTheme) Update(cfg *config.Config) {
	t.count = cfg.SparkCount
	t.power = cfg.CurvePower
	t.fg = cfg.ColorFG
	t.accent = cfg.ColorAccent

	t.sparks.MinLevel = cfg.SparkMinLevel
	t.sparks.Energy = cfg.SparkEnergy
	t.sparks.Ensure(cfg.SparkCount)

	if t.smoother == nil || t.attack != cfg.AttackTime || t.release != cfg.ReleaseTime {
		t.attack = cfg.AttackTime
		t.release = cfg.ReleaseTime
		t.smoother = dsp.NewAttackRelease(dsp.AttackReleaseConfig{
			Attack:  cfg.AttackTime,
			Release: cfg.ReleaseTime,
		})
	}
}

func (t *sparkleTheme) Reset() {
	if t.smoother != nil {
		t.smoother.Reset()
	}
	t.sparks.Reset()
	t.sparks.Ensure(t.count)
}

func (t *sparkleTheme) Draw(f *Frame, r Renderer) {
	if cap(t.amps) < sparkleRingSegs {
		t.amps = make([]float64, sparkleRingSegs)
	}
	t.amps = t.amps[:sparkleRingSegs]
	for i := range t.amps {
		t.amps[i] = dsp.SampleAt(f.Wave, float64(i)/sparkleRingSegs)
	}
	t.amps = dsp.SmoothSpace(t.amps, t.amps, 0.2, true)
	vals := t.smoother.Smooth(t.amps, f.DT)

	cx := f.Width / 2
	cy := f.Height / 2
	base := math.Min(cx, cy)
	ringR := base * 0.5

	// Ring with a harmonic wobble riding on the local level.
	t.ring = t.ring[:0]
	for i := 0; i <= sparkleRingSegs; i++ {
		idx := i % sparkleRingSegs
		v := dsp.Curve(vals[idx], t.power)

		theta := 2*math.Pi*float64(i)/sparkleRingSegs - math.Pi/2
		wob := 1 + 0.12*v*math.Sin(theta*6)
		radius := ringR * wob * (1 + 0.3*v)

		sin, cos := math.Sincos(theta)
		t.ring = append(t.ring, Vertex{cx + cos*radius, cy + sin*radius})
	}
	r.SetColor(t.fg)
	r.LineStrip(t.ring)

	// Orbiting sparks. Each draws as a small cross scaled by its
	// burn intensity.
	t.dots = t.dots[:0]
	t.sparks.Advance(f.DT,
		func(u float64) float64 {
			return dsp.Curve(dsp.SampleAt(vals, u), t.power)
		},
		func(sp *Spark, intensity float64) {
			theta := 2*math.Pi*sp.Pos - math.Pi/2
			radius := ringR * (1.2 + 0.6*sp.Off)
			sin, cos := math.Sincos(theta)
			x := cx + cos*radius
			y := cy + sin*radius

			arm := 0.5 + 2*intensity
			t.dots = append(t.dots,
				Vertex{x - arm, y}, Vertex{x + arm, y},
				Vertex{x, y - arm}, Vertex{x, y + arm},
			)
		})

	if len(t.dots) > 0 {
		r.SetColor(t.accent)
		r.Lines(t.dots)
	}
}
