package theme

import (
	"github.com/katvel/shapewave/config"
	"github.com/katvel/shapewave/dsp"
	"github.com/katvel/shapewave/palette"
	"github.com/katvel/shapewave/shape"
)

// lineTheme draws the classic oscilloscope midline. Variants select a
// connected trace ("linear", the default), vertical bars ("bars"), or a
// filled area ("filled").
type lineTheme struct {
	variant   string
	thickness int
	mirror    bool
	power     float64
	grad      *palette.Gradient

	smoother dsp.Smoother
	attack   float64
	release  float64

	amps []float64
	pts  []Vertex
}

func (t *lineTheme) ID() string { return "line" }

func (t *lineTheme) Update(cfg *config.Config) {
	t.variant = cfg.Variant
	t.thickness = cfg.Thickness
	t.mirror = cfg.Mirror
	t.power = cfg.CurvePower
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

func (t *lineTheme) Reset() {
	if t.smoother != nil {
		t.smoother.Reset()
	}
}

func (t *lineTheme) Draw(f *Frame, r Renderer) {
	n := shape.Segments(float64(f.Cfg.Density)) + 1
	t.amps = sampleOutline(t.amps, f, n, false)
	vals := t.smoother.Smooth(t.amps, f.DT)

	switch t.variant {
	case "bars":
		t.drawBars(f, r, vals)
	case "filled":
		t.drawFilled(f, r, vals)
	default:
		t.drawLinear(f, r, vals)
	}
}

func (t *lineTheme) drawLinear(f *Frame, r Renderer, vals []float64) {
	mid := f.Height / 2
	span := f.Height * 0.45

	for pass := 0; pass < 2; pass++ {
		sign := 1.0
		if pass == 1 {
			if !t.mirror {
				break
			}
			sign = -1
		}

		for off := 0; off < t.thickness; off++ {
			t.pts = t.pts[:0]
			dy := float64(off) - float64(t.thickness-1)/2

			for i, v := range vals {
				x := float64(i) / float64(len(vals)-1) * f.Width
				y := mid - sign*dsp.Curve(v, t.power)*span + dy
				t.pts = append(t.pts, Vertex{x, y})
			}

			r.SetColor(t.grad.BinColor(binOf(f.Peak()), palette.Bins))
			r.LineStrip(t.pts)
		}
	}
}

func (t *lineTheme) drawBars(f *Frame, r Renderer, vals []float64) {
	bars := f.Cfg.BarCount
	mid := f.Height / 2
	span := f.Height * 0.45

	for i := 0; i < bars; i++ {
		u := (float64(i) + 0.5) / float64(bars)
		v := dsp.Curve(dsp.SampleAt(vals, u), t.power)
		x := u * f.Width
		h := v * span

		r.SetColor(t.grad.BinColor(binOf(v), palette.Bins))
		if t.mirror {
			r.Lines([]Vertex{{x, mid - h}, {x, mid + h}})
		} else {
			r.Lines([]Vertex{{x, mid}, {x, mid - h}})
		}
	}
}

func (t *lineTheme) drawFilled(f *Frame, r Renderer, vals []float64) {
	mid := f.Height / 2
	span := f.Height * 0.45

	t.pts = t.pts[:0]
	prevX := 0.0
	prevY := mid - dsp.Curve(vals[0], t.power)*span

	for i := 1; i < len(vals); i++ {
		x := float64(i) / float64(len(vals)-1) * f.Width
		y := mid - dsp.Curve(vals[i], t.power)*span

		t.pts = append(t.pts,
			Vertex{prevX, mid}, Vertex{prevX, prevY}, Vertex{x, y},
			Vertex{prevX, mid}, Vertex{x, y}, Vertex{x, mid},
		)

		prevX, prevY = x, y
	}

	r.SetColor(t.grad.BinColor(binOf(f.Peak()), palette.Bins))
	r.Triangles(t.pts)
}
