package theme

import (
	"math"
	"testing"

	"github.com/katvel/shapewave/config"
	"github.com/katvel/shapewave/palette"
)

// recordRenderer captures emitted geometry for inspection.
type recordRenderer struct {
	colors []palette.RGB
	verts  []Vertex
}

func (r *recordRenderer) SetColor(c palette.RGB) { r.colors = append(r.colors, c) }
func (r *recordRenderer) Lines(pts []Vertex)     { r.verts = append(r.verts, pts...) }
func (r *recordRenderer) LineStrip(pts []Vertex) { r.verts = append(r.verts, pts...) }
func (r *recordRenderer) Triangles(pts []Vertex) { r.verts = append(r.verts, pts...) }

func testFrame(t *testing.T, wave []float64) (*Frame, *config.Config) {
	t.Helper()
	cfg := config.NewZeroConfig()
	if err := cfg.Sanitize(); err != nil {
		t.Fatal(err)
	}
	return &Frame{
		Wave:   wave,
		DT:     1.0 / 60,
		Width:  160,
		Height: 90,
		Cfg:    &cfg,
	}, &cfg
}

func TestRegistryFind(t *testing.T) {
	reg := NewRegistry()

	if got := reg.Find("wobble"); got == nil || got.ID() != "wobble" {
		t.Errorf("Find(wobble) = %v", got)
	}

	// Unknown IDs fall back to the first registration.
	fallback := reg.Find("nonexistent")
	if fallback == nil || fallback.ID() != reg.IDs()[0] {
		t.Errorf("unknown ID should fall back, got %v", fallback)
	}
}

func TestRegistryShadowing(t *testing.T) {
	reg := NewRegistry()
	custom := &lineTheme{}
	reg.Register(custom)

	if reg.Find("line") != custom {
		t.Error("later registration should win lookups")
	}
}

func TestAllThemesHandleEmptyAudio(t *testing.T) {
	reg := NewRegistry()

	for _, id := range reg.IDs() {
		th := reg.Find(id)
		f, cfg := testFrame(t, nil)
		th.Update(cfg)
		th.Reset()

		rec := &recordRenderer{}
		for tick := 0; tick < 3; tick++ {
			th.Draw(f, rec)
		}

		for _, v := range rec.verts {
			if math.IsNaN(v.X) || math.IsNaN(v.Y) || math.IsInf(v.X, 0) || math.IsInf(v.Y, 0) {
				t.Fatalf("theme %q emitted non-finite vertex with empty audio", id)
			}
		}
	}
}

func TestAllThemesEmitFiniteGeometry(t *testing.T) {
	reg := NewRegistry()

	wave := make([]float64, 256)
	for i := range wave {
		wave[i] = 0.5 + 0.5*math.Sin(float64(i)/8)
	}

	for _, id := range reg.IDs() {
		th := reg.Find(id)
		f, cfg := testFrame(t, wave)
		cfg.GradientOn = true
		cfg.Mirror = true
		cfg.FlipSides = true
		th.Update(cfg)
		th.Reset()

		rec := &recordRenderer{}
		for tick := 0; tick < 5; tick++ {
			th.Draw(f, rec)
		}

		if len(rec.verts) == 0 {
			t.Errorf("theme %q drew nothing for live audio", id)
		}
		for _, v := range rec.verts {
			if math.IsNaN(v.X) || math.IsNaN(v.Y) {
				t.Fatalf("theme %q emitted NaN vertex", id)
			}
		}
	}
}

func TestBlocksBottomRowAlwaysLit(t *testing.T) {
	f, cfg := testFrame(t, make([]float64, 64)) // silence
	th := &blocksTheme{}
	th.Update(cfg)

	rec := &recordRenderer{}
	th.Draw(f, rec)

	// Silence still lights one row: BarCount quads of 6 vertices each.
	want := cfg.BarCount * 6
	if len(rec.verts) != want {
		t.Errorf("silent blocks emitted %d vertices, want %d", len(rec.verts), want)
	}
}

func TestWobblePillsKeepMinimumHeight(t *testing.T) {
	f, cfg := testFrame(t, make([]float64, 64))
	th := &wobbleTheme{}
	th.Update(cfg)

	rec := &recordRenderer{}
	th.Draw(f, rec)

	if len(rec.verts) == 0 {
		t.Fatal("silent wobble should still draw pill caps")
	}

	var minY, maxY = math.Inf(1), math.Inf(-1)
	for _, v := range rec.verts[:6] {
		minY = math.Min(minY, v.Y)
		maxY = math.Max(maxY, v.Y)
	}
	if maxY-minY <= 0 {
		t.Error("pill should never collapse to zero height")
	}
}

func TestWobbleCapsAreRounded(t *testing.T) {
	wave := make([]float64, 64)
	for i := range wave {
		wave[i] = 0.8
	}
	f, cfg := testFrame(t, wave)
	th := &wobbleTheme{}
	th.Update(cfg)

	rec := &recordRenderer{}
	th.Draw(f, rec)

	if len(rec.verts)%3 != 0 {
		t.Fatalf("triangle stream length %d not a multiple of 3", len(rec.verts))
	}

	// Bar bodies are axis-aligned, so every one of their triangles has
	// exactly two distinct X values. The cap fans must break that.
	rounded := 0
	for i := 0; i+2 < len(rec.verts); i += 3 {
		xs := map[float64]bool{
			rec.verts[i].X:   true,
			rec.verts[i+1].X: true,
			rec.verts[i+2].X: true,
		}
		if len(xs) > 2 {
			rounded++
		}
	}
	if rounded == 0 {
		t.Error("wobble bars have no cap fan triangles, only rectangles")
	}
}

// stripRenderer keeps each polyline separate so bolt geometry can be
// inspected strip by strip.
type stripRenderer struct {
	recordRenderer
	strips [][]Vertex
}

func (r *stripRenderer) LineStrip(pts []Vertex) {
	r.strips = append(r.strips, append([]Vertex(nil), pts...))
	r.recordRenderer.LineStrip(pts)
}

func TestLightningGatesOnThreshold(t *testing.T) {
	quiet := make([]float64, 64)
	for i := range quiet {
		quiet[i] = 1e-4 // about -80 dB, below the default threshold
	}
	f, cfg := testFrame(t, quiet)
	th := &lightningTheme{}
	th.Update(cfg)

	rec := &recordRenderer{}
	for tick := 0; tick < 10; tick++ {
		th.Draw(f, rec)
	}
	if len(rec.verts) != 0 {
		t.Errorf("sub-threshold audio struck %d vertices", len(rec.verts))
	}

	loud := make([]float64, 64)
	for i := range loud {
		loud[i] = 0.5
	}
	f.Wave = loud
	for tick := 0; tick < 10; tick++ {
		th.Draw(f, rec)
	}
	if len(rec.verts) == 0 {
		t.Error("loud audio should strike bolts")
	}
}

func TestLightningBoltsAreJagged(t *testing.T) {
	wave := make([]float64, 64)
	for i := range wave {
		wave[i] = 0.6
	}
	f, cfg := testFrame(t, wave)
	cfg.Shape = "circle"
	th := &lightningTheme{}
	th.Update(cfg)

	rec := &stripRenderer{}
	for tick := 0; tick < 10; tick++ {
		th.Draw(f, rec)
	}
	if len(rec.strips) == 0 {
		t.Fatal("no bolts drawn")
	}

	// A bolt must bend somewhere: some interior vertex sits off the
	// straight chord between its endpoints.
	bent := false
	for _, strip := range rec.strips {
		if len(strip) < 3 {
			continue
		}
		a, b := strip[0], strip[len(strip)-1]
		for _, p := range strip[1 : len(strip)-1] {
			cross := (b.X-a.X)*(p.Y-a.Y) - (b.Y-a.Y)*(p.X-a.X)
			if math.Abs(cross) > 1e-6 {
				bent = true
			}
		}
	}
	if !bent {
		t.Error("every bolt is a straight ray, expected jagged polylines")
	}
}

func TestLightningDeterministic(t *testing.T) {
	wave := make([]float64, 64)
	for i := range wave {
		wave[i] = 0.7
	}

	run := func() []Vertex {
		f, cfg := testFrame(t, wave)
		th := &lightningTheme{}
		th.Update(cfg)
		rec := &recordRenderer{}
		for tick := 0; tick < 6; tick++ {
			th.Draw(f, rec)
		}
		return rec.verts
	}

	a, b := run(), run()
	if len(a) != len(b) {
		t.Fatalf("vertex counts diverged: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("vertex %d diverged: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestSparkDeterminism(t *testing.T) {
	run := func() []Spark {
		s := Sparks{MinLevel: 0.1, Energy: 1}
		s.Ensure(16)
		for i := 0; i < 120; i++ {
			s.Advance(1.0/60, func(u float64) float64 { return 0.8 }, func(sp *Spark, _ float64) {})
		}
		return append([]Spark(nil), s.parts...)
	}

	a := run()
	b := run()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("spark %d diverged: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestSparksIgniteAboveGate(t *testing.T) {
	s := Sparks{MinLevel: 0.3, Energy: 1}
	s.Ensure(8)

	emitted := 0
	for i := 0; i < 240; i++ {
		s.Advance(1.0/60, func(u float64) float64 { return 0.9 }, func(sp *Spark, _ float64) { emitted++ })
	}
	if emitted == 0 {
		t.Error("loud input should light sparks")
	}

	s2 := Sparks{MinLevel: 0.3, Energy: 1}
	s2.Ensure(8)
	quiet := 0
	for i := 0; i < 240; i++ {
		s2.Advance(1.0/60, func(u float64) float64 { return 0.0 }, func(sp *Spark, _ float64) { quiet++ })
	}
	if quiet != 0 {
		t.Error("silence should keep sparks idle")
	}
}

func TestSparkIntensityTriangular(t *testing.T) {
	sp := Spark{MaxLife: 2}

	sp.Life = 0.5 // quarter life
	rise := sp.intensity()
	sp.Life = 1 // half life
	peakI := sp.intensity()
	sp.Life = 1.5
	fall := sp.intensity()

	if peakI != 1 {
		t.Errorf("half-life intensity = %v, want 1", peakI)
	}
	if math.Abs(rise-fall) > 1e-12 || rise != 0.5 {
		t.Errorf("ramp not symmetric: %v vs %v", rise, fall)
	}
}

func TestRand01Range(t *testing.T) {
	for seed := uint32(1); seed < 2000; seed++ {
		v := rand01(seed)
		if v < 0 || v >= 1 {
			t.Fatalf("rand01(%d) = %v out of [0,1)", seed, v)
		}
	}
	if rand01(42) != rand01(42) {
		t.Error("rand01 must be deterministic")
	}
}
