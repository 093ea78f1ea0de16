package theme

import (
	"math"

	"github.com/katvel/shapewave/config"
	"github.com/katvel/shapewave/dsp"
	"github.com/katvel/shapewave/palette"
	"github.com/katvel/shapewave/shape"
)

// doughnutTheme fills a slowly rotating ring whose outer edge swells
// with the audio. Strong peaks throw short accent ticks past the rim.
type doughnutTheme struct {
	power  float64
	speed  float64
	fg     palette.RGB
	accent palette.RGB
	grad   *palette.Gradient

	smoother dsp.Smoother
	attack   float64
	release  float64
	phase    float64

	amps  []float64
	strip []Vertex
	fill  []Vertex
	ticks []Vertex
}

func (t *doughnutTheme) ID() string { return "doughnut" }

func (t *doughnutTheme) Update(cfg *config.Config) {
	t.power = cfg.CurvePower
	t.speed = cfg.RotateSpeed
	t.fg = cfg.ColorFG
	t.accent = cfg.ColorAccent
	t.grad = gradientFor(cfg)

	if t.smoother == nil || t.attack != cfg.AttackTime || t.release != cfg.ReleaseTime {
		t.attack = cfg.AttackTime
		t.release = cfg.ReleaseTime
		t.smoother = dsp.NewAttackRelease(dsp.AttackReleaseConfig{
			Attack:  cfg.AttackTime,
			Release: cfg.ReleaseTime,
		})
	}
}

func (t *doughnutTheme) Reset() {
	if t.smoother != nil {
		t.smoother.Reset()
	}
	t.phase = 0
}

func (t *doughnutTheme) Draw(f *Frame, r Renderer) {
	t.phase = wrapPhase(t.phase + f.DT*t.speed)

	n := shape.Segments(float64(f.Cfg.Density))
	t.amps = sampleOutline(t.amps, f, n, true)
	vals := t.smoother.Smooth(t.amps, f.DT)

	cx := f.Width / 2
	cy := f.Height / 2
	base := math.Min(cx, cy)
	inner := base * 0.45
	span := base * 0.45

	t.strip = t.strip[:0]
	t.fill = t.fill[:0]
	t.ticks = t.ticks[:0]

	var prevIn, prevOut Vertex
	for i := 0; i <= n; i++ {
		idx := i % n
		v := dsp.Curve(vals[idx], t.power)

		theta := 2*math.Pi*(float64(i)/float64(n)+t.phase) - math.Pi/2
		sin, cos := math.Sincos(theta)

		in := Vertex{cx + cos*inner, cy + sin*inner}
		out := Vertex{cx + cos*(inner+2+v*span), cy + sin*(inner+2+v*span)}

		t.strip = append(t.strip, out)

		if i > 0 {
			t.fill = append(t.fill,
				prevIn, prevOut, out,
				prevIn, out, in,
			)
		}
		prevIn, prevOut = in, out

		if v > 0.8 && i < n {
			tip := inner + 2 + span*1.15
			t.ticks = append(t.ticks,
				Vertex{cx + cos*(inner+2+v*span+1), cy + sin*(inner+2+v*span+1)},
				Vertex{cx + cos*tip, cy + sin*tip},
			)
		}
	}

	r.SetColor(t.fg)
	r.Triangles(t.fill)

	r.SetColor(t.grad.BinColor(binOf(f.Peak()), palette.Bins))
	r.LineStrip(t.strip)

	if len(t.ticks) > 0 {
		r.SetColor(t.accent)
		r.Lines(t.ticks)
	}
}
