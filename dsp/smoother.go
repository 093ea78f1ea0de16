package dsp

import "math"

// maxDT caps the integration step so a stalled frame clock cannot make a
// smoother overshoot or blow up.
const maxDT = 0.25

// snapTau is the time constant below which smoothing degenerates to a
// direct copy.
const snapTau = 1e-4

// ClampDT sanitizes a frame delta for smoothing.
func ClampDT(dt float64) float64 {
	if dt < 0 || math.IsNaN(dt) {
		return 0
	}
	if dt > maxDT {
		return maxDT
	}
	return dt
}

// Smoother advances per-bucket values toward targets. Implementations own
// their state and resize it to match the target slice, reseeding from the
// targets on the first pass so displays do not sweep up from zero.
type Smoother interface {
	// Smooth moves the internal values toward targets over dt seconds
	// and returns the internal value slice.
	Smooth(targets []float64, dt float64) []float64

	// Reset drops all state. The next Smooth seeds from its targets.
	Reset()
}

// AttackReleaseConfig holds the two time constants in seconds.
type AttackReleaseConfig struct {
	Attack  float64
	Release float64
}

// NewAttackRelease returns a Smoother that rises with the attack time
// constant and falls with the release one.
func NewAttackRelease(cfg AttackReleaseConfig) Smoother {
	return &attackRelease{cfg: cfg}
}

type attackRelease struct {
	cfg    AttackReleaseConfig
	values []float64
	seeded bool
}

func (ar *attackRelease) Smooth(targets []float64, dt float64) []float64 {
	dt = ClampDT(dt)

	if !ar.seeded || len(ar.values) != len(targets) {
		ar.values = append(ar.values[:0], targets...)
		ar.seeded = true
		return ar.values
	}

	for i, target := range targets {
		v := ar.values[i]
		tau := ar.cfg.Release
		if target > v {
			tau = ar.cfg.Attack
		}

		if tau < snapTau {
			ar.values[i] = target
			continue
		}

		alpha := 1 - math.Exp(-dt/tau)
		ar.values[i] = v + (target-v)*alpha
	}

	return ar.values
}

func (ar *attackRelease) Reset() {
	ar.seeded = false
	ar.values = ar.values[:0]
}

// SpringConfig maps a single intensity knob onto stiffness and damping.
type SpringConfig struct {
	// Intensity in [0, 100]. Higher is stiffer and less damped, so the
	// motion gets bouncier.
	Intensity int

	// Min and Max clamp the spring position. A zero pair means [0, 1].
	Min, Max float64
}

// NewSpring returns a Smoother with damped spring dynamics per bucket.
func NewSpring(cfg SpringConfig) Smoother {
	if cfg.Min == 0 && cfg.Max == 0 {
		cfg.Max = 1
	}
	i := float64(clampInt(cfg.Intensity, 0, 100))
	return &spring{
		cfg:       cfg,
		stiffness: 0.10 + i*0.004,
		damping:   0.95 - i*0.004,
	}
}

type spring struct {
	cfg       SpringConfig
	stiffness float64
	damping   float64
	values    []float64
	velocity  []float64
	seeded    bool
}

func (s *spring) Smooth(targets []float64, dt float64) []float64 {
	// The spring integrates in fixed per-frame steps. dt only gates a
	// stalled clock: a zero step leaves the state untouched.
	if ClampDT(dt) == 0 && s.seeded {
		return s.values
	}

	if !s.seeded || len(s.values) != len(targets) {
		s.values = append(s.values[:0], targets...)
		s.velocity = make([]float64, len(targets))
		s.seeded = true
		return s.values
	}

	for i, target := range targets {
		acc := (target - s.values[i]) * s.stiffness
		s.velocity[i] = s.velocity[i]*s.damping + acc
		v := s.values[i] + s.velocity[i]

		if v < s.cfg.Min {
			v = s.cfg.Min
			s.velocity[i] = 0
		}
		if v > s.cfg.Max {
			v = s.cfg.Max
			s.velocity[i] = 0
		}
		s.values[i] = v
	}

	return s.values
}

func (s *spring) Reset() {
	s.seeded = false
	s.values = s.values[:0]
	s.velocity = s.velocity[:0]
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
