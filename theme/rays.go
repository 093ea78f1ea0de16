package theme

import (
	"github.com/katvel/shapewave/config"
	"github.com/katvel/shapewave/dsp"
	"github.com/katvel/shapewave/palette"
	"github.com/katvel/shapewave/shape"
)

// raysTheme shoots amplitude bars outward from the outline along its
// normals. Mirror adds a shorter inward counterpart per ray.
type raysTheme struct {
	mirror bool
	power  float64
	grad   *palette.Gradient

	smoother dsp.Smoother
	attack   float64
	release  float64

	amps []float64
	pts  []Vertex
}

func (t *raysTheme) ID() string { return "rays" }

func (t *raysTheme) Update(cfg *config.Config) {
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

func (t *raysTheme) Reset() {
	if t.smoother != nil {
		t.smoother.Reset()
	}
}

func (t *raysTheme) Draw(f *Frame, r Renderer) {
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

	// Rays are grouped by gradient bin so each bin flushes as one batch.
	lastBin := -1
	t.pts = t.pts[:0]

	flush := func() {
		if len(t.pts) == 0 {
			return
		}
		r.SetColor(t.grad.BinColor(lastBin, palette.Bins))
		r.Lines(t.pts)
		t.pts = t.pts[:0]
	}

	for i, raw := range vals {
		v := dsp.Curve(raw, t.power)
		bin := binOf(v)
		if bin != lastBin {
			flush()
			lastBin = bin
		}

		u := float64(i) / float64(denom)
		pos, normal := o.Sample(u)
		d := v * rc

		t.pts = append(t.pts,
			Vertex{pos.X, pos.Y},
			Vertex{pos.X + normal.X*d, pos.Y + normal.Y*d},
		)
		if t.mirror {
			t.pts = append(t.pts,
				Vertex{pos.X, pos.Y},
				Vertex{pos.X - normal.X*d*0.5, pos.Y - normal.Y*d*0.5},
			)
		}
	}

	flush()
}
