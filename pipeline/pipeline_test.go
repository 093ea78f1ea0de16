package pipeline

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/katvel/shapewave/config"
	"github.com/katvel/shapewave/palette"
	"github.com/katvel/shapewave/theme"
	"github.com/katvel/shapewave/wave"
)

type stubDisplay struct {
	flushes int
	clears  int
	verts   []theme.Vertex
}

func (d *stubDisplay) SetColor(palette.RGB)         {}
func (d *stubDisplay) Lines(pts []theme.Vertex)     { d.verts = append(d.verts, pts...) }
func (d *stubDisplay) LineStrip(pts []theme.Vertex) { d.verts = append(d.verts, pts...) }
func (d *stubDisplay) Triangles(pts []theme.Vertex) { d.verts = append(d.verts, pts...) }
func (d *stubDisplay) Bounds() (float64, float64)   { return 120, 60 }
func (d *stubDisplay) Clear()                       { d.clears++; d.verts = d.verts[:0] }
func (d *stubDisplay) Flush() error                 { d.flushes++; return nil }

func newTestPipeline(t *testing.T, buf *wave.Buffer, d Display) *Pipeline {
	t.Helper()
	cfg := config.NewZeroConfig()
	cfg.Style = "orbit"
	cfg.Shape = "circle"

	p, err := New(cfg, theme.NewRegistry(), buf, d)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestTickWithEmptyBufferDrawsRestingFigure(t *testing.T) {
	var buf wave.Buffer
	d := &stubDisplay{}
	p := newTestPipeline(t, &buf, d)

	if err := p.Tick(time.Now()); err != nil {
		t.Fatal(err)
	}
	if d.flushes != 1 || d.clears != 1 {
		t.Errorf("flushes/clears = %d/%d", d.flushes, d.clears)
	}
	if len(d.verts) == 0 {
		t.Fatal("empty audio should still draw the resting outline")
	}
	for _, v := range d.verts {
		if math.IsNaN(v.X) || math.IsNaN(v.Y) {
			t.Fatal("resting figure contains NaN")
		}
	}
}

func TestSilenceThenLoudBlockMovesOutline(t *testing.T) {
	var buf wave.Buffer
	d := &stubDisplay{}
	p := newTestPipeline(t, &buf, d)

	silence := make([]float64, 512)
	buf.Publish(silence, silence)
	now := time.Now()
	if err := p.Tick(now); err != nil {
		t.Fatal(err)
	}
	rest := append([]theme.Vertex(nil), d.verts...)

	loud := make([]float64, 512)
	for i := range loud {
		loud[i] = 0.9
	}
	buf.Publish(loud, loud)

	// Several ticks let the attack smoothing climb.
	for i := 1; i <= 30; i++ {
		now = now.Add(16 * time.Millisecond)
		if err := p.Tick(now); err != nil {
			t.Fatal(err)
		}
	}

	if len(d.verts) != len(rest) {
		return // geometry changed shape entirely, which also counts
	}
	moved := 0.0
	for i := range rest {
		moved += math.Hypot(d.verts[i].X-rest[i].X, d.verts[i].Y-rest[i].Y)
	}
	if moved < 1 {
		t.Errorf("loud audio barely moved the outline: %v", moved)
	}
}

func TestApplyStyleChangeSwapsTheme(t *testing.T) {
	var buf wave.Buffer
	d := &stubDisplay{}
	p := newTestPipeline(t, &buf, d)

	cfg := p.Config()
	cfg.Style = "blocks"
	if err := p.Apply(cfg); err != nil {
		t.Fatal(err)
	}
	if err := p.Tick(time.Now()); err != nil {
		t.Fatal(err)
	}
	if len(d.verts) == 0 {
		t.Error("swapped theme drew nothing")
	}
}

func TestApplyRejectsBadColorButClampsNumbers(t *testing.T) {
	var buf wave.Buffer
	p := newTestPipeline(t, &buf, &stubDisplay{})

	cfg := p.Config()
	cfg.Gain = -99
	cfg.Density = 1 << 20
	if err := p.Apply(cfg); err != nil {
		t.Fatalf("numeric extremes should clamp, not error: %v", err)
	}

	cfg = p.Config()
	cfg.Foreground = "chartreuse"
	if err := p.Apply(cfg); err == nil {
		t.Error("malformed color should be reported")
	}
}

func TestRunPicksUpFrameRateChange(t *testing.T) {
	var buf wave.Buffer
	d := &stubDisplay{}
	p := newTestPipeline(t, &buf, d)

	cfg := p.Config()
	cfg.FrameRate = 10
	if err := p.Apply(cfg); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- p.Run(ctx, nil) }()

	// Let the slow ticker land a frame, then retune to a fast rate.
	time.Sleep(150 * time.Millisecond)
	cfg = p.Config()
	cfg.FrameRate = 240
	if err := p.Apply(cfg); err != nil {
		t.Fatal(err)
	}
	time.Sleep(500 * time.Millisecond)

	cancel()
	<-done

	// At the stale 10 fps cadence the whole run fits about 6 frames.
	if d.flushes < 20 {
		t.Errorf("run kept the old frame rate: %d flushes", d.flushes)
	}
}

func TestAutoGainLiftsQuietAudio(t *testing.T) {
	var buf wave.Buffer
	d := &stubDisplay{}

	cfg := config.NewZeroConfig()
	cfg.Style = "line"
	cfg.AutoGain = true
	p, err := New(cfg, theme.NewRegistry(), &buf, d)
	if err != nil {
		t.Fatal(err)
	}

	quiet := make([]float64, 256)
	for i := range quiet {
		quiet[i] = 0.01 * math.Sin(float64(i)/4)
	}
	buf.Publish(quiet, quiet)

	now := time.Now()
	for i := 0; i < 60; i++ {
		now = now.Add(16 * time.Millisecond)
		if err := p.Tick(now); err != nil {
			t.Fatal(err)
		}
	}

	// With auto gain the 0.01-peak signal should fill a good part of
	// the display rather than hugging the midline.
	mid := 30.0
	maxDev := 0.0
	for _, v := range d.verts {
		if dev := math.Abs(v.Y - mid); dev > maxDev {
			maxDev = dev
		}
	}
	if maxDev < 5 {
		t.Errorf("auto gain left the trace flat: max deviation %v", maxDev)
	}
}
