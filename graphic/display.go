// Package graphic renders colored vertex geometry into the terminal with
// braille cells.
package graphic

import (
	"context"
	"sync"

	termbox "github.com/nsf/termbox-go"
	"github.com/pkg/errors"

	"github.com/katvel/shapewave/palette"
	"github.com/katvel/shapewave/theme"
)

// Display owns the terminal. It implements the pipeline's Display
// surface: themes draw through the Renderer methods and Flush presents
// the finished frame.
type Display struct {
	mu sync.Mutex
	canvas

	restore func()
}

// New returns an uninitialized display. Call Init before drawing.
func New() *Display {
	d := &Display{}
	d.canvas.resize(80, 24)
	return d
}

// Init takes over the terminal.
func (d *Display) Init() error {
	restore, err := normalizeTerminal()
	if err != nil {
		return errors.Wrap(err, "failed to normalize terminal")
	}
	d.restore = restore

	if err := termbox.Init(); err != nil {
		return errors.Wrap(err, "failed to initialize termbox")
	}

	termbox.SetOutputMode(termbox.Output256)
	termbox.HideCursor()

	cols, rows := termbox.Size()
	d.mu.Lock()
	d.canvas.resize(cols, rows)
	d.mu.Unlock()

	return nil
}

// Close restores the terminal.
func (d *Display) Close() error {
	termbox.Close()
	if d.restore != nil {
		d.restore()
	}
	return nil
}

// Start runs the event loop on its own goroutine. The returned context
// is canceled when the user quits or the parent context ends.
func (d *Display) Start(ctx context.Context) context.Context {
	dispCtx, dispCancel := context.WithCancel(ctx)

	go func() {
		<-dispCtx.Done()
		termbox.Interrupt()
	}()

	go eventPoller(dispCancel, d)
	return dispCtx
}

func eventPoller(fn context.CancelFunc, d *Display) {
	defer fn()

	for {
		ev := termbox.PollEvent()

		switch ev.Type {
		case termbox.EventInterrupt:
			return

		case termbox.EventResize:
			d.mu.Lock()
			d.canvas.resize(ev.Width, ev.Height)
			d.mu.Unlock()

		case termbox.EventKey:
			switch {
			case ev.Ch == 'q' || ev.Ch == 'Q':
				return
			case ev.Key == termbox.KeyEsc || ev.Key == termbox.KeyCtrlC:
				return
			}
		}
	}
}

// Bounds reports the drawable dot-space size.
func (d *Display) Bounds() (w, h float64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.canvas.bounds()
}

// SetColor switches the drawing color for subsequent geometry.
func (d *Display) SetColor(c palette.RGB) {
	d.mu.Lock()
	d.fg = attr256(c)
	d.mu.Unlock()
}

// Lines draws independent segments from vertex pairs.
func (d *Display) Lines(pts []theme.Vertex) {
	d.mu.Lock()
	d.canvas.drawLines(pts)
	d.mu.Unlock()
}

// LineStrip draws a connected polyline.
func (d *Display) LineStrip(pts []theme.Vertex) {
	d.mu.Lock()
	d.canvas.drawLineStrip(pts)
	d.mu.Unlock()
}

// Triangles draws filled triangles from vertex triples.
func (d *Display) Triangles(pts []theme.Vertex) {
	d.mu.Lock()
	d.canvas.drawTriangles(pts)
	d.mu.Unlock()
}

// Clear wipes the canvas.
func (d *Display) Clear() {
	d.mu.Lock()
	d.canvas.clear()
	d.mu.Unlock()
}

// Flush writes the canvas to the terminal.
func (d *Display) Flush() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := termbox.Clear(termbox.ColorDefault, termbox.ColorDefault); err != nil {
		return errors.Wrap(err, "failed to clear terminal")
	}

	for row := 0; row < d.rows; row++ {
		base := row * d.cols
		for col := 0; col < d.cols; col++ {
			mask := d.dots[base+col]
			if mask == 0 {
				continue
			}
			termbox.SetCell(col, row, rune(brailleBase|int(mask)), d.colors[base+col], termbox.ColorDefault)
		}
	}

	return errors.Wrap(termbox.Flush(), "failed to flush terminal")
}

// attr256 maps an sRGB color onto the xterm 6x6x6 color cube.
func attr256(c palette.RGB) termbox.Attribute {
	r := cube6(c.R)
	g := cube6(c.G)
	b := cube6(c.B)
	idx := 16 + 36*r + 6*g + b
	return termbox.Attribute(idx + 1)
}

func cube6(v uint8) int {
	if v < 48 {
		return 0
	}
	if v < 114 {
		return 1
	}
	return int(v-35) / 40
}
