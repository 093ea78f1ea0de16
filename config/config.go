// Package config holds the flat settings surface of the renderer and the
// clamping rules that keep every value usable.
package config

import (
	"github.com/pkg/errors"

	"github.com/katvel/shapewave/palette"
	"github.com/katvel/shapewave/shape"
)

// Config is the complete settings surface. Numeric fields out of range
// are clamped by Sanitize rather than rejected, so a stale or hand-edited
// value can never crash the pipeline.
type Config struct {
	// Backend is the capture backend name. Empty picks the platform
	// default.
	Backend string
	// Device is the capture device name. Empty picks the default device.
	Device string
	// SampleRate of capture in Hz.
	SampleRate float64
	// SampleSize is the number of frames per delivered block.
	SampleSize int
	// FrameRate is the render tick rate.
	FrameRate int

	// Width and Height are the canvas size in cells. Zero derives the
	// size from the terminal.
	Width  int
	Height int

	// Shape names the outline figure, Style the drawing theme and
	// Variant a theme sub-mode where the theme has them.
	Shape   string
	Style   string
	Variant string

	// UseDB switches amplitude extraction from the linear gain model to
	// the decibel window model.
	UseDB   bool
	Gain    float64
	ReactDB float64
	PeakDB  float64

	// AutoGain tracks recent peaks and scales the linear model so the
	// display stays lively across quiet and loud material.
	AutoGain bool

	CurvePower  float64
	AttackTime  float64 // seconds
	ReleaseTime float64 // seconds

	// WobbleIntensity in [0, 100] drives the spring themes.
	WobbleIntensity int

	// Density is the outline resolution in percent.
	Density int
	// Thickness is the stroke width in cells.
	Thickness int
	// FrameRadius rounds frame corners, in percent.
	FrameRadius int

	Mirror    bool
	FlipSides bool

	BarCount int
	Stacks   int
	GapRatio float64

	SparkCount    int
	SparkMinLevel float64
	SparkEnergy   float64

	RotateSpeed float64

	// Foreground and Accent are hex colors. GradientOn blends geometry
	// between them.
	Foreground string
	Accent     string
	GradientOn bool

	// Parsed color values, filled by Sanitize.
	ColorFG     palette.RGB
	ColorAccent palette.RGB
}

// NewZeroConfig returns the default settings.
func NewZeroConfig() Config {
	return Config{
		SampleRate:      44100,
		SampleSize:      1024,
		FrameRate:       60,
		Shape:           "line",
		Style:           "line",
		Variant:         "",
		Gain:            1.0,
		ReactDB:         -60,
		PeakDB:          -6,
		CurvePower:      1.0,
		AttackTime:      0.04,
		ReleaseTime:     0.25,
		WobbleIntensity: 50,
		Density:         100,
		Thickness:       1,
		FrameRadius:     35,
		BarCount:        48,
		Stacks:          8,
		GapRatio:        0.25,
		SparkCount:      24,
		SparkMinLevel:   0.05,
		SparkEnergy:     1.0,
		RotateSpeed:     0.2,
		Foreground:      "#5fd7ff",
		Accent:          "#ff5f87",
	}
}

// Sanitize clamps every numeric field into its working range, falls back
// on unknown shape names, and parses the color strings. Only a malformed
// color is reported as an error.
func (cfg *Config) Sanitize() error {
	cfg.SampleRate = clampF(cfg.SampleRate, 4000, 384000)
	cfg.SampleSize = clampI(cfg.SampleSize, 64, 1<<16)
	cfg.FrameRate = clampI(cfg.FrameRate, 10, 240)

	if cfg.Width < 0 {
		cfg.Width = 0
	}
	if cfg.Height < 0 {
		cfg.Height = 0
	}

	if _, err := shape.ParseKind(cfg.Shape); err != nil {
		cfg.Shape = "line"
	}

	cfg.Gain = clampF(cfg.Gain, 0, 64)
	cfg.ReactDB = clampF(cfg.ReactDB, -120, 0)
	cfg.PeakDB = clampF(cfg.PeakDB, -120, 0)
	if cfg.PeakDB <= cfg.ReactDB {
		cfg.PeakDB = cfg.ReactDB + 0.1
	}

	cfg.CurvePower = clampF(cfg.CurvePower, 0, 8)
	cfg.AttackTime = clampF(cfg.AttackTime, 0, 2)
	cfg.ReleaseTime = clampF(cfg.ReleaseTime, 0, 5)
	cfg.WobbleIntensity = clampI(cfg.WobbleIntensity, 0, 100)

	cfg.Density = clampI(cfg.Density, 10, 300)
	cfg.Thickness = clampI(cfg.Thickness, 1, 16)
	cfg.FrameRadius = clampI(cfg.FrameRadius, 0, 100)

	cfg.BarCount = clampI(cfg.BarCount, 2, 512)
	cfg.Stacks = clampI(cfg.Stacks, 2, 64)
	cfg.GapRatio = clampF(cfg.GapRatio, 0, 0.9)

	cfg.SparkCount = clampI(cfg.SparkCount, 1, 256)
	cfg.SparkMinLevel = clampF(cfg.SparkMinLevel, 0, 1)
	cfg.SparkEnergy = clampF(cfg.SparkEnergy, 0.1, 10)

	cfg.RotateSpeed = clampF(cfg.RotateSpeed, -4, 4)

	var err error
	if cfg.ColorFG, err = palette.Parse(cfg.Foreground); err != nil {
		return errors.Wrap(err, "foreground")
	}
	if cfg.ColorAccent, err = palette.Parse(cfg.Accent); err != nil {
		return errors.Wrap(err, "accent")
	}

	return nil
}

func clampF(v, lo, hi float64) float64 {
	if v != v || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampI(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
