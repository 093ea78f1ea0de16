package theme

import (
	"math"

	"github.com/katvel/shapewave/config"
	"github.com/katvel/shapewave/dsp"
	"github.com/katvel/shapewave/palette"
)

// blocksTheme draws stacked-cell columns. Each column lights a number of
// cells proportional to its level; the bottom row is always lit so the
// meter never goes fully dark.
type blocksTheme struct {
	barCount int
	stacks   int
	gapRatio float64
	flip     bool
	power    float64
	grad     *palette.Gradient

	smoother dsp.Smoother
	attack   float64
	release  float64

	amps []float64
	pts  []Vertex
}

func (t *blocksTheme) ID() string { return "blocks" }

func (t *blocksTheme) Update(cfg *config.Config) {
	t.barCount = cfg.BarCount
	t.stacks = cfg.Stacks
	t.gapRatio = cfg.GapRatio
	t.flip = cfg.FlipSides
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

func (t *blocksTheme) Reset() {
	if t.smoother != nil {
		t.smoother.Reset()
	}
}

func (t *blocksTheme) Draw(f *Frame, r Renderer) {
	n := t.barCount
	if cap(t.amps) < n {
		t.amps = make([]float64, n)
	}
	t.amps = t.amps[:n]
	for i := range t.amps {
		t.amps[i] = dsp.SampleAt(f.Wave, (float64(i)+0.5)/float64(n))
	}
	vals := t.smoother.Smooth(t.amps, f.DT)

	slot := f.Width / float64(n)
	cellW := slot * (1 - t.gapRatio)
	if cellW < 1 {
		cellW = 1
	}

	rows := t.stacks
	usable := f.Height - 2
	if t.flip {
		usable = f.Height/2 - 1
	}
	rowH := usable / float64(rows)
	cellH := rowH * (1 - t.gapRatio)
	if cellH < 1 {
		cellH = 1
	}

	baseY := f.Height - 1
	if t.flip {
		baseY = f.Height / 2
	}

	// Cells batch by row so each row flushes with one gradient color.
	for row := 0; row < rows; row++ {
		t.pts = t.pts[:0]

		for i, raw := range vals {
			v := dsp.Curve(raw, t.power)
			lit := 1 + int(math.Round(v*float64(rows-1)))
			if row >= lit {
				continue
			}

			x0 := (float64(i) + t.gapRatio/2) * slot
			y1 := baseY - float64(row)*rowH
			y0 := y1 - cellH

			t.pts = appendQuad(t.pts, x0, y0, x0+cellW, y1)
			if t.flip {
				top := baseY + float64(row)*rowH
				t.pts = appendQuad(t.pts, x0, top, x0+cellW, top+cellH)
			}
		}

		if len(t.pts) == 0 {
			continue
		}

		r.SetColor(t.grad.BinColor(binOf(float64(row)/float64(rows-1)), palette.Bins))
		r.Triangles(t.pts)
	}
}
