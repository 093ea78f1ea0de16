package theme

import (
	"github.com/katvel/shapewave/config"
	"github.com/katvel/shapewave/dsp"
	"github.com/katvel/shapewave/palette"
	"github.com/katvel/shapewave/shape"
)

// orbitTheme traces the configured outline, displacing it along the
// outward normals. With silence it settles back onto the resting figure.
type orbitTheme struct {
	thickness int
	power     float64
	grad      *palette.Gradient

	smoother dsp.Smoother
	attack   float64
	release  float64

	amps []float64
	pts  []Vertex
}

func (t *orbitTheme) ID() string { return "orbit" }

func (t *orbitTheme) Update(cfg *config.Config) {
	t.thickness = cfg.Thickness
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

func (t *orbitTheme) Reset() {
	if t.smoother != nil {
		t.smoother.Reset()
	}
}

func (t *orbitTheme) Draw(f *Frame, r Renderer) {
	o := f.Outline()
	closed := o.Closed()

	n := shape.Segments(float64(f.Cfg.Density))
	if !closed {
		n++
	}

	t.amps = sampleOutline(t.amps, f, n, closed)
	vals := t.smoother.Smooth(t.amps, f.DT)
	rc := reach(f)

	denom := n
	if !closed {
		denom = n - 1
	}

	for off := 0; off < t.thickness; off++ {
		scale := 1 - float64(off)*0.015

		t.pts = t.pts[:0]
		for i, v := range vals {
			u := float64(i) / float64(denom)
			pos, normal := o.Sample(u)
			d := dsp.Curve(v, t.power) * rc * scale
			t.pts = append(t.pts, Vertex{pos.X + normal.X*d, pos.Y + normal.Y*d})
		}
		if closed && len(t.pts) > 0 {
			t.pts = append(t.pts, t.pts[0])
		}

		r.SetColor(t.grad.BinColor(binOf(f.Peak()), palette.Bins))
		r.LineStrip(t.pts)
	}
}
