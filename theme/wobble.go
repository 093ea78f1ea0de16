package theme

import (
	"math"

	"github.com/katvel/shapewave/config"
	"github.com/katvel/shapewave/dsp"
	"github.com/katvel/shapewave/palette"
)

// capSegments is the triangle count per semicircular pill cap.
const capSegments = 6

// wobbleTheme draws pill-shaped columns driven by a damped spring, so
// the bars overshoot and bounce instead of tracking the level exactly.
type wobbleTheme struct {
	barCount int
	gapRatio float64
	flip     bool
	power    float64
	grad     *palette.Gradient

	spring    dsp.Smoother
	intensity int

	amps []float64
	pts  []Vertex
}

func (t *wobbleTheme) ID() string { return "wobble" }

func (t *wobbleTheme) Update(cfg *config.Config) {
	t.barCount = cfg.BarCount
	t.gapRatio = cfg.GapRatio
	t.flip = cfg.FlipSides
	t.power = cfg.CurvePower
	t.grad = gradientFor(cfg)

	if t.spring == nil || t.intensity != cfg.WobbleIntensity {
		t.intensity = cfg.WobbleIntensity
		t.spring = dsp.NewSpring(dsp.SpringConfig{Intensity: cfg.WobbleIntensity})
	}
}

func (t *wobbleTheme) Reset() {
	if t.spring != nil {
		t.spring.Reset()
	}
}

func (t *wobbleTheme) Draw(f *Frame, r Renderer) {
	n := t.barCount
	if cap(t.amps) < n {
		t.amps = make([]float64, n)
	}
	t.amps = t.amps[:n]
	for i := range t.amps {
		t.amps[i] = dsp.Curve(dsp.SampleAt(f.Wave, (float64(i)+0.5)/float64(n)), t.power)
	}
	vals := t.spring.Smooth(t.amps, f.DT)

	slot := f.Width / float64(n)
	barW := slot * (1 - t.gapRatio)
	if barW < 1 {
		barW = 1
	}
	radius := barW / 2

	baseY := f.Height - 1
	span := f.Height - 2*radius - 2
	if t.flip {
		baseY = f.Height / 2
		span = f.Height/2 - 2*radius - 1
	}
	if span < 1 {
		span = 1
	}

	lastBin := -1
	t.pts = t.pts[:0]

	flush := func() {
		if len(t.pts) == 0 {
			return
		}
		r.SetColor(t.grad.BinColor(lastBin, palette.Bins))
		r.Triangles(t.pts)
		t.pts = t.pts[:0]
	}

	for i, v := range vals {
		bin := binOf(v)
		if bin != lastBin {
			flush()
			lastBin = bin
		}

		cx := (float64(i)+t.gapRatio/2)*slot + radius

		if t.flip {
			halfH := radius + v*span
			t.pts = appendHalfPill(t.pts, cx, baseY, halfH, barW, -1)
			t.pts = appendHalfPill(t.pts, cx, baseY, halfH, barW, 1)
		} else {
			// Pills never collapse below their cap diameter.
			t.pts = appendPill(t.pts, cx, baseY, 2*radius+v*span, barW)
		}
	}

	flush()
}

// appendQuad appends an axis-aligned rectangle as two triangles.
func appendQuad(pts []Vertex, x0, y0, x1, y1 float64) []Vertex {
	return append(pts,
		Vertex{x0, y0}, Vertex{x1, y0}, Vertex{x1, y1},
		Vertex{x0, y0}, Vertex{x1, y1}, Vertex{x0, y1},
	)
}

// appendPill appends a bar rounded at both ends. The rectangle body spans
// the distance between the two cap centers; at minimum height the body
// vanishes and only the caps remain.
func appendPill(pts []Vertex, cx, yBottom, h, w float64) []Vertex {
	radius := w / 2
	if h < 2*radius {
		h = 2 * radius
	}
	topC := yBottom - h + radius
	botC := yBottom - radius

	if botC > topC {
		pts = appendQuad(pts, cx-radius, topC, cx+radius, botC)
	}
	pts = appendCap(pts, cx, topC, radius, -1)
	return appendCap(pts, cx, botC, radius, 1)
}

// appendHalfPill appends a bar from centerY outward with a single cap at
// the far end. dir is -1 for upward, 1 for downward.
func appendHalfPill(pts []Vertex, cx, centerY, halfH, w, dir float64) []Vertex {
	radius := w / 2
	if halfH < radius {
		halfH = radius
	}
	capC := centerY + dir*(halfH-radius)

	if halfH > radius {
		if dir < 0 {
			pts = appendQuad(pts, cx-radius, capC, cx+radius, centerY)
		} else {
			pts = appendQuad(pts, cx-radius, centerY, cx+radius, capC)
		}
	}
	return appendCap(pts, cx, capC, radius, dir)
}

// appendCap appends a semicircle fan around (cx, cy) opening up for
// dir -1 and down for dir 1.
func appendCap(pts []Vertex, cx, cy, radius, dir float64) []Vertex {
	step := math.Pi / capSegments
	for i := 0; i < capSegments; i++ {
		a0 := step * float64(i)
		a1 := a0 + step
		pts = append(pts,
			Vertex{cx, cy},
			Vertex{cx + math.Cos(a0)*radius, cy + dir*math.Sin(a0)*radius},
			Vertex{cx + math.Cos(a1)*radius, cy + dir*math.Sin(a1)*radius},
		)
	}
	return pts
}
