package theme

import (
	"math"

	"github.com/katvel/shapewave/config"
	"github.com/katvel/shapewave/dsp"
	"github.com/katvel/shapewave/palette"
)

// cosmicTheme rotates a spiral arm field around a pulsing core. Arm
// length follows the local level; the core radius follows the global
// peak.
type cosmicTheme struct {
	arms   int
	power  float64
	speed  float64
	fg     palette.RGB
	accent palette.RGB

	smoother dsp.Smoother
	attack   float64
	release  float64
	phase    float64

	amps []float64
	pts  []Vertex
}

// cosmicArms is the fixed arm count of the spiral field.
const cosmicArms = 5

func (t *cosmicTheme) ID() string { return "cosmic" }

func (t *cosmicTheme) Update(cfg *config.Config) {
	t.arms = cosmicArms
	t.power = cfg.CurvePower
	t.speed = cfg.RotateSpeed
	t.fg = cfg.ColorFG
	t.accent = cfg.ColorAccent

	if t.smoother == nil || t.attack != cfg.AttackTime || t.release != cfg.ReleaseTime {
		t.attack = cfg.AttackTime
		t.release = cfg.ReleaseTime
		t.smoother = dsp.NewAttackRelease(dsp.AttackReleaseConfig{
			Attack:  cfg.AttackTime,
			Release: cfg.ReleaseTime,
		})
	}
}

func (t *cosmicTheme) Reset() {
	if t.smoother != nil {
		t.smoother.Reset()
	}
	t.phase = 0
}

func (t *cosmicTheme) Draw(f *Frame, r Renderer) {
	t.phase = wrapPhase(t.phase + f.DT*t.speed)

	if cap(t.amps) < t.arms {
		t.amps = make([]float64, t.arms)
	}
	t.amps = t.amps[:t.arms]
	for i := range t.amps {
		t.amps[i] = dsp.SampleAt(f.Wave, float64(i)/float64(t.arms))
	}
	vals := t.smoother.Smooth(t.amps, f.DT)

	cx := f.Width / 2
	cy := f.Height / 2
	base := math.Min(cx, cy)

	peak := dsp.Curve(f.Peak(), t.power)

	// Core ring.
	core := base * (0.12 + 0.10*peak)
	t.pts = t.pts[:0]
	const coreSegs = 32
	for i := 0; i <= coreSegs; i++ {
		theta := 2 * math.Pi * float64(i) / coreSegs
		sin, cos := math.Sincos(theta)
		t.pts = append(t.pts, Vertex{cx + cos*core, cy + sin*core})
	}
	r.SetColor(t.accent)
	r.LineStrip(t.pts)

	// Spiral arms. Each arm sweeps outward, its length scaled by its
	// smoothed level.
	const armSteps = 24
	for a := 0; a < t.arms; a++ {
		v := dsp.Curve(vals[a], t.power)
		length := base * (0.3 + 0.65*v)
		start := 2*math.Pi*(float64(a)/float64(t.arms)+t.phase) - math.Pi/2

		t.pts = t.pts[:0]
		for s := 0; s <= armSteps; s++ {
			p := float64(s) / armSteps
			theta := start + p*2.2
			radius := core + p*(length-core)
			sin, cos := math.Sincos(theta)
			t.pts = append(t.pts, Vertex{cx + cos*radius, cy + sin*radius})
		}

		r.SetColor(t.fg)
		r.LineStrip(t.pts)
	}

	// Star bursts past the arm tips on loud passages.
	if peak > 0.75 {
		t.pts = t.pts[:0]
		for a := 0; a < t.arms; a++ {
			theta := 2*math.Pi*(float64(a)/float64(t.arms)+t.phase*1.5) - math.Pi/2
			sin, cos := math.Sincos(theta)
			r0 := base * 0.92
			r1 := base * (0.92 + 0.08*peak)
			t.pts = append(t.pts,
				Vertex{cx + cos*r0, cy + sin*r0},
				Vertex{cx + cos*r1, cy + sin*r1},
			)
		}
		r.SetColor(t.accent)
		r.Lines(t.pts)
	}
}
