package theme

import (
	"github.com/katvel/shapewave/config"
	"github.com/katvel/shapewave/dsp"
	"github.com/katvel/shapewave/palette"
	"github.com/katvel/shapewave/shape"
)

// cartoonFrameTheme draws bold corner brackets whose thickness reacts to
// the global peak, with sparks running along the frame perimeter.
type cartoonFrameTheme struct {
	thickness int
	power     float64
	fg        palette.RGB
	accent    palette.RGB

	sparks Sparks
	count  int

	smoother dsp.Smoother
	attack   float64
	release  float64

	peak []float64
	pts  []Vertex
	dots []Vertex
}

func newCartoonFrameTheme() *cartoonFrameTheme {
	return &cartoonFrameTheme{}
}

func (t *cartoonFrameTheme) ID() string { return "cartoonframe" }

func (t *cartoonFrameTheme) Update(cfg *config.Config) {
	t.thickness = cfg.Thickness
	t.power = cfg.CurvePower
	t.fg = cfg.ColorFG
	t.accent = cfg.ColorAccent
	t.count = cfg.SparkCount

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

func (t *cartoonFrameTheme) Reset() {
	if t.smoother != nil {
		t.smoother.Reset()
	}
	t.sparks.Reset()
	t.sparks.Ensure(t.count)
}

func (t *cartoonFrameTheme) Draw(f *Frame, r Renderer) {
	if cap(t.peak) < 1 {
		t.peak = make([]float64, 1)
	}
	t.peak = t.peak[:1]
	t.peak[0] = f.Peak()
	peak := dsp.Curve(t.smoother.Smooth(t.peak, f.DT)[0], t.power)

	inset := 2.0
	w := f.Width - 2*inset
	h := f.Height - 2*inset

	// Bracket arm length grows a little with the peak; stroke count
	// grows with it too.
	armX := w * (0.18 + 0.06*peak)
	armY := h * (0.18 + 0.06*peak)
	strokes := t.thickness + int(peak*3)

	t.pts = t.pts[:0]
	for s := 0; s < strokes; s++ {
		d := float64(s)

		corners := [][4]float64{
			// x, y, arm direction
			{inset + d, inset + d, 1, 1},
			{inset + w - d, inset + d, -1, 1},
			{inset + w - d, inset + h - d, -1, -1},
			{inset + d, inset + h - d, 1, -1},
		}

		for _, c := range corners {
			x, y, dx, dy := c[0], c[1], c[2], c[3]
			t.pts = append(t.pts,
				Vertex{x, y}, Vertex{x + dx*armX, y},
				Vertex{x, y}, Vertex{x, y + dy*armY},
			)
		}
	}

	r.SetColor(t.fg)
	r.Lines(t.pts)

	// Sparks run the full perimeter of the inset rectangle.
	o := shape.New(shape.KindRect, w, h, shape.Options{})

	t.dots = t.dots[:0]
	t.sparks.Advance(f.DT,
		f.Level,
		func(sp *Spark, intensity float64) {
			pos, normal := o.Sample(sp.Pos)
			x := pos.X + inset
			y := pos.Y + inset
			tail := 1 + 3*intensity

			t.dots = append(t.dots,
				Vertex{x, y},
				Vertex{x + normal.X*tail, y + normal.Y*tail},
			)
		})

	if len(t.dots) > 0 {
		r.SetColor(t.accent)
		r.Lines(t.dots)
	}
}
