// Package pipeline drives the render loop: snapshot the newest audio,
// extract amplitudes, and hand the frame to the active theme.
package pipeline

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/katvel/shapewave/config"
	"github.com/katvel/shapewave/dsp"
	"github.com/katvel/shapewave/theme"
	"github.com/katvel/shapewave/util"
	"github.com/katvel/shapewave/wave"
)

// Display is the output surface. It doubles as the theme Renderer and
// owns the canvas extents.
type Display interface {
	theme.Renderer

	// Bounds reports the canvas extents.
	Bounds() (w, h float64)

	// Clear wipes the canvas before a frame.
	Clear()

	// Flush presents the frame.
	Flush() error
}

// autoGainWindowSec is how much peak history the auto gain tracks.
const autoGainWindowSec = 2.0

// Pipeline owns the active theme and its settings. The settings lock is
// separate from the sample buffer's lock, so a config change never
// stalls the capture thread.
type Pipeline struct {
	display Display
	buf     *wave.Buffer
	reg     *theme.Registry

	// mu guards the settings and theme state against concurrent Apply
	// and Tick. The sample buffer has its own lock.
	mu sync.Mutex

	cfg    config.Config
	active theme.Theme
	ext    dsp.Extractor

	window   *util.MovingWindow
	lastTick time.Time

	block   wave.Block
	wavebuf []float64
	frame   theme.Frame
}

// New builds a pipeline. cfg is sanitized; the theme named by its Style
// becomes active.
func New(cfg config.Config, reg *theme.Registry, buf *wave.Buffer, d Display) (*Pipeline, error) {
	if err := cfg.Sanitize(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	p := &Pipeline{
		display: d,
		buf:     buf,
		reg:     reg,
	}
	if err := p.apply(cfg); err != nil {
		return nil, err
	}
	return p, nil
}

// Apply swaps in new settings. The active theme resets only when the
// style actually changes; everything else adjusts in place so motion
// state survives a color or gain tweak.
func (p *Pipeline) Apply(cfg config.Config) error {
	if err := cfg.Sanitize(); err != nil {
		return errors.Wrap(err, "invalid config")
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	return p.apply(cfg)
}

func (p *Pipeline) apply(cfg config.Config) error {
	next := p.reg.Find(cfg.Style)
	if next == nil {
		return errors.New("theme registry is empty")
	}

	if p.active != next {
		if p.active != nil {
			p.active.Reset()
		}
		next.Reset()
		p.active = next
	}

	p.cfg = cfg
	p.active.Update(&p.cfg)
	p.ext = extractorFor(&p.cfg)

	winSize := int(autoGainWindowSec * float64(cfg.FrameRate))
	if p.window == nil || p.window.Cap() != winSize {
		p.window = util.NewMovingWindow(winSize)
	}

	return nil
}

// Config returns a copy of the current settings.
func (p *Pipeline) Config() config.Config {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cfg
}

func extractorFor(cfg *config.Config) dsp.Extractor {
	if cfg.UseDB {
		return dsp.DBExtractor{
			ReactDB: cfg.ReactDB,
			PeakDB:  cfg.PeakDB,
		}
	}
	return dsp.LinearExtractor{Gain: cfg.Gain}
}

// Tick renders one frame at the given time.
func (p *Pipeline) Tick(now time.Time) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var dt float64
	if !p.lastTick.IsZero() {
		dt = dsp.ClampDT(now.Sub(p.lastTick).Seconds())
	}
	p.lastTick = now

	p.buf.Snapshot(&p.block)

	ext := p.ext
	if p.cfg.AutoGain && !p.cfg.UseDB {
		ext = dsp.LinearExtractor{Gain: p.cfg.Gain * p.autoScale()}
	}
	p.wavebuf = ext.Extract(p.wavebuf, p.block.Left, p.block.Right)

	w, h := p.display.Bounds()
	if p.cfg.Width > 0 {
		w = float64(p.cfg.Width)
	}
	if p.cfg.Height > 0 {
		h = float64(p.cfg.Height)
	}

	p.frame = theme.Frame{
		Wave:   p.wavebuf,
		DT:     dt,
		Width:  w,
		Height: h,
		Cfg:    &p.cfg,
	}
	if p.block.Frames < 2 {
		// Too little audio to shape anything; themes draw their
		// resting figure.
		p.frame.Wave = nil
	}

	p.display.Clear()
	p.active.Draw(&p.frame, p.display)
	return p.display.Flush()
}

// autoScale tracks recent block peaks and returns a gain multiplier that
// pins the louder end of the history near full scale.
func (p *Pipeline) autoScale() float64 {
	peak := 0.0
	for _, v := range p.block.Left {
		if a := math.Abs(v); a > peak {
			peak = a
		}
	}
	for _, v := range p.block.Right {
		if a := math.Abs(v); a > peak {
			peak = a
		}
	}

	mean, stddev := p.window.Update(peak)

	scale := mean + 1.5*stddev
	if scale < 0.01 {
		scale = 0.01
	}
	return 1 / scale
}

// Run renders until ctx is done. A kick draws as soon as fresh audio
// lands; the ticker keeps animation alive through silence. Both paths
// are rate-limited to the configured frame rate.
func (p *Pipeline) Run(ctx context.Context, kick <-chan bool) error {
	delay := time.Second / time.Duration(p.Config().FrameRate)

	tick := time.NewTicker(delay)
	defer tick.Stop()

	var lastDraw time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-kick:
		case <-tick.C:
		}

		now := time.Now()
		if now.Sub(lastDraw) < delay/2 {
			continue
		}
		lastDraw = now

		if err := p.Tick(now); err != nil {
			return errors.Wrap(err, "render tick failed")
		}

		// Apply may have retuned the frame rate under us.
		if d := time.Second / time.Duration(p.Config().FrameRate); d != delay {
			delay = d
			tick.Reset(delay)
		}
	}
}
