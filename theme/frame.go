package theme

import (
	"github.com/katvel/shapewave/config"
	"github.com/katvel/shapewave/dsp"
	"github.com/katvel/shapewave/palette"
	"github.com/katvel/shapewave/shape"
)

// frameTheme rings the canvas border with amplitude bars. The bars stand
// on a rounded frame whose corner radius is configurable, regardless of
// the main shape setting.
type frameTheme struct {
	barCount  int
	gapRatio  float64
	thickness int
	radius    float64
	power     float64
	grad      *palette.Gradient

	smoother dsp.Smoother
	attack   float64
	release  float64

	amps []float64
	pts  []Vertex
}

func (t *frameTheme) ID() string { return "frame" }

func (t *frameTheme) Update(cfg *config.Config) {
	t.barCount = cfg.BarCount
	t.gapRatio = cfg.GapRatio
	t.thickness = cfg.Thickness
	t.radius = float64(cfg.FrameRadius) / 100
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

func (t *frameTheme) Reset() {
	if t.smoother != nil {
		t.smoother.Reset()
	}
}

func (t *frameTheme) Draw(f *Frame, r Renderer) {
	// Inset the frame so outward bars stay on the canvas.
	rc := reach(f)
	inset := rc * 1.05
	o := shape.New(shape.KindRoundedFrame, f.Width-2*inset, f.Height-2*inset, shape.Options{
		RadiusFactor: t.radius,
	})

	n := t.barCount
	if cap(t.amps) < n {
		t.amps = make([]float64, n)
	}
	t.amps = t.amps[:n]
	for i := range t.amps {
		t.amps[i] = dsp.SampleAt(f.Wave, float64(i)/float64(n))
	}
	t.amps = dsp.SmoothSpace(t.amps, t.amps, 0.2, true)
	vals := t.smoother.Smooth(t.amps, f.DT)

	// Tangent step between bar strokes, shrunk by the gap ratio.
	barSpan := (1 - t.gapRatio) / float64(n)

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

		// Minimum visible nub keeps the frame readable in silence.
		d := 1 + v*rc

		base := float64(i) / float64(n)
		for s := 0; s < t.thickness; s++ {
			du := barSpan * float64(s) / float64(t.thickness)
			pos, normal := o.Sample(base + du)

			t.pts = append(t.pts,
				Vertex{pos.X + inset, pos.Y + inset},
				Vertex{pos.X + inset + normal.X*d, pos.Y + inset + normal.Y*d},
			)
		}
	}

	flush()
}
