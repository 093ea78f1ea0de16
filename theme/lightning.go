package theme

import (
	"math"

	"github.com/katvel/shapewave/config"
	"github.com/katvel/shapewave/dsp"
	"github.com/katvel/shapewave/palette"
	"github.com/katvel/shapewave/shape"
)

// boltSteps is the segment count per bolt; more steps, more jags.
const boltSteps = 8

// boltJitter is the maximum lateral sway as a fraction of the distance
// along the bolt.
const boltJitter = 0.35

// lightningTheme strikes jagged bolts outward along the outline normals.
// Bolts only appear where the local level clears the dB threshold, so
// quiet passages leave the canvas dark and transients flash.
type lightningTheme struct {
	bolts   int
	reactDB float64
	peakDB  float64
	core    palette.RGB
	glow    palette.RGB
	thick   int

	lengths []float64
	seeded  bool

	pts []Vertex
}

func (t *lightningTheme) ID() string { return "lightning" }

func (t *lightningTheme) Update(cfg *config.Config) {
	t.bolts = cfg.BarCount
	t.reactDB = cfg.ReactDB
	t.peakDB = cfg.PeakDB
	t.core = cfg.ColorFG
	t.glow = cfg.ColorAccent
	t.thick = cfg.Thickness
	if t.thick < 1 {
		t.thick = 1
	}
}

func (t *lightningTheme) Reset() {
	t.lengths = t.lengths[:0]
	t.seeded = false
}

func (t *lightningTheme) Draw(f *Frame, r Renderer) {
	n := t.bolts
	if n < 8 {
		n = 8
	}
	if len(t.lengths) != n {
		t.lengths = append(t.lengths[:0], make([]float64, n)...)
		t.seeded = false
	}

	o := f.Outline()
	maxLen := reach(f) * 1.5

	// Bolt length chases the thresholded level with a fixed blend, which
	// reads as a strike that flares fast and decays visibly.
	for i := range t.lengths {
		u := float64(i) / float64(n)

		target := 0.0
		a := dsp.SampleAt(f.Wave, u)
		if a >= 1e-6 {
			db := dsp.AmpToDB(a)
			if db > t.reactDB {
				tt := (db - t.reactDB) / (t.peakDB - t.reactDB + 1e-3)
				if tt > 1 {
					tt = 1
				}
				target = tt * maxLen
			}
		}

		if !t.seeded {
			t.lengths[i] = target
		}
		t.lengths[i] += 0.25 * (target - t.lengths[i])
	}
	t.seeded = true

	// Glow underneath, core on top. Different hash salts keep the two
	// passes from tracing identical jags.
	t.strikePass(o, r, t.glow, t.thick+2, 1337, 791)
	t.strikePass(o, r, t.core, t.thick, 3117, 1931)
}

// strikePass draws every live bolt as a jittered polyline, offset along
// its own direction thick times to fake stroke width.
func (t *lightningTheme) strikePass(o *shape.Outline, r Renderer, col palette.RGB, thick int, saltI, saltJ uint32) {
	r.SetColor(col)
	half := float64(thick-1) / 2
	n := len(t.lengths)

	for i, length := range t.lengths {
		if length <= 1 {
			continue
		}

		u := float64(i) / float64(n)
		pos, normal := o.Sample(u)
		tangentX, tangentY := -normal.Y, normal.X
		stepR := length / boltSteps

		for s := 0; s < thick; s++ {
			off := float64(s) - half
			t.pts = t.pts[:0]

			for j := 0; j <= boltSteps; j++ {
				rr := stepR*float64(j) + off
				if rr < 0 {
					rr = 0
				}

				// Jags fade in toward the tip and back off right at it,
				// so the root stays anchored and the tip stays sharp.
				v := float64(j) / boltSteps
				fade := 1 - math.Abs(v-0.7)
				if fade < 0 {
					fade = 0
				}

				h := rand01(uint32(i)*saltI + uint32(j)*saltJ)
				sway := (h - 0.5) * boltJitter * fade * rr

				t.pts = append(t.pts, Vertex{
					X: pos.X + normal.X*rr + tangentX*sway,
					Y: pos.Y + normal.Y*rr + tangentY*sway,
				})
			}

			r.LineStrip(t.pts)
		}
	}
}
