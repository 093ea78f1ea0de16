// Package execread reads floating-point audio from the stdout of a
// capture process such as parec or ffmpeg.
package execread

import (
	"context"
	"encoding/binary"
	"io"
	"math"
	"os"
	"os/exec"
	"time"

	"github.com/pkg/errors"

	"github.com/katvel/shapewave/input"
)

// Session streams samples from a command's stdout into a Consumer.
type Session struct {
	argv []string
	cfg  input.SessionConfig

	samples int // frames * channels

	// maligned.
	f32mode bool
}

// NewSession creates a new execread session. It never returns an error.
func NewSession(argv []string, f32mode bool, cfg input.SessionConfig) *Session {
	if len(argv) < 1 {
		panic("argv has no arg0")
	}

	return &Session{
		argv:    argv,
		cfg:     cfg,
		f32mode: f32mode,
		samples: cfg.SampleSize * cfg.FrameSize,
	}
}

// Start runs the command and delivers de-interleaved blocks to out until
// ctx is canceled or the stream ends. When the process stops producing,
// muted deliveries mark the gap so the consumer can hold its last block.
func (s *Session) Start(ctx context.Context, out input.Consumer) error {
	cmd := exec.CommandContext(ctx, s.argv[0], s.argv[1:]...)
	cmd.Stderr = os.Stderr

	o, err := cmd.StdoutPipe()
	if err != nil {
		return errors.Wrap(err, "failed to get stdout pipe")
	}
	defer o.Close()

	// We need o as an *os.File for SetReadDeadline.
	of, ok := o.(*os.File)
	if !ok {
		return errors.New("stdout pipe is not an *os.File (bug)")
	}

	if err := cmd.Start(); err != nil {
		return errors.Wrap(err, "failed to start "+s.argv[0])
	}

	stereo := s.cfg.FrameSize > 1
	left := make([]input.Sample, s.cfg.SampleSize)
	var right []input.Sample
	if stereo {
		right = make([]input.Sample, s.cfg.SampleSize)
	}

	reader := floatReader{
		order: binary.LittleEndian,
		f64:   !s.f32mode,
	}

	bufsz := s.samples
	if !s.f32mode {
		bufsz *= 2
	}

	raw := make([]byte, bufsz*4)

	// The deadline is longer than one block on purpose: ReadFull can
	// block past the nominal block duration when the process discards
	// overflowing audio. Once a read has expired we tighten it so the
	// gap markers come at block rate.
	sampleDuration := time.Duration(
		float64(s.cfg.SampleSize) / s.cfg.SampleRate * float64(time.Second))
	var readExpired bool

	for {
		timeout := sampleDuration
		if !readExpired {
			timeout *= 6
		}
		if err := of.SetReadDeadline(time.Now().Add(timeout)); err != nil {
			return errors.Wrap(err, "failed to set read deadline")
		}

		_, err := io.ReadFull(o, raw)
		if err != nil {
			switch {
			case errors.Is(err, io.EOF):
				return nil
			case errors.Is(err, os.ErrDeadlineExceeded):
				readExpired = true
			default:
				return err
			}
		} else {
			readExpired = false
		}

		if readExpired {
			out.Deliver(nil, nil, true)
		} else {
			reader.reset(raw)
			if stereo {
				for n := 0; n < s.cfg.SampleSize; n++ {
					left[n] = reader.next()
					right[n] = reader.next()
				}
			} else {
				for n := 0; n < s.cfg.SampleSize; n++ {
					left[n] = reader.next()
				}
			}
			out.Deliver(left, right, false)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
	}
}

type floatReader struct {
	order binary.ByteOrder
	buf   []byte
	f64   bool
}

func (f *floatReader) reset(b []byte) {
	f.buf = b
}

func (f *floatReader) next() float64 {
	if f.f64 {
		b := f.buf[:8]
		f.buf = f.buf[8:]
		return math.Float64frombits(f.order.Uint64(b))
	}

	b := f.buf[:4]
	f.buf = f.buf[4:]
	return float64(math.Float32frombits(f.order.Uint32(b)))
}
