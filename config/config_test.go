package config

import "testing"

func TestSanitizeClampsRanges(t *testing.T) {
	cfg := NewZeroConfig()
	cfg.Gain = -3
	cfg.Density = 9999
	cfg.FrameRate = 1
	cfg.WobbleIntensity = 500
	cfg.GapRatio = 2

	if err := cfg.Sanitize(); err != nil {
		t.Fatal(err)
	}

	if cfg.Gain != 0 {
		t.Errorf("Gain = %v", cfg.Gain)
	}
	if cfg.Density != 300 {
		t.Errorf("Density = %v", cfg.Density)
	}
	if cfg.FrameRate != 10 {
		t.Errorf("FrameRate = %v", cfg.FrameRate)
	}
	if cfg.WobbleIntensity != 100 {
		t.Errorf("WobbleIntensity = %v", cfg.WobbleIntensity)
	}
	if cfg.GapRatio != 0.9 {
		t.Errorf("GapRatio = %v", cfg.GapRatio)
	}
}

func TestSanitizeForcesPeakAboveReact(t *testing.T) {
	cfg := NewZeroConfig()
	cfg.ReactDB = -20
	cfg.PeakDB = -40

	if err := cfg.Sanitize(); err != nil {
		t.Fatal(err)
	}
	if cfg.PeakDB <= cfg.ReactDB {
		t.Errorf("PeakDB %v should exceed ReactDB %v", cfg.PeakDB, cfg.ReactDB)
	}
}

func TestSanitizeUnknownShapeFallsBack(t *testing.T) {
	cfg := NewZeroConfig()
	cfg.Shape = "nonagon"

	if err := cfg.Sanitize(); err != nil {
		t.Fatal(err)
	}
	if cfg.Shape != "line" {
		t.Errorf("Shape = %q", cfg.Shape)
	}
}

func TestSanitizeParsesColors(t *testing.T) {
	cfg := NewZeroConfig()
	if err := cfg.Sanitize(); err != nil {
		t.Fatal(err)
	}
	if cfg.ColorFG.B == 0 {
		t.Error("foreground color not parsed")
	}

	cfg.Accent = "notacolor"
	if err := cfg.Sanitize(); err == nil {
		t.Error("expected error for malformed accent color")
	}
}

func TestDefaultsSurviveSanitize(t *testing.T) {
	cfg := NewZeroConfig()
	before := cfg
	if err := cfg.Sanitize(); err != nil {
		t.Fatal(err)
	}
	if cfg.SampleRate != before.SampleRate || cfg.Density != before.Density {
		t.Error("defaults should pass through Sanitize unchanged")
	}
}
