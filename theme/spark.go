package theme

// rand01 is a deterministic xorshift hash to [0, 1). Particle motion is
// reproducible for a given seed, which keeps tests stable and spares the
// render loop a PRNG allocation.
func rand01(seed uint32) float64 {
	x := seed
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	return float64(x&0x00FFFFFF) / float64(0x01000000)
}

// Spark is one particle traveling along a normalized path position.
type Spark struct {
	// Pos is the path position in [0, 1).
	Pos float64
	// Off is a stable per-spark offset lane in [0, 1).
	Off float64
	// Life counts up to MaxLife; past it the spark respawns.
	Life    float64
	MaxLife float64
	// Speed is the path speed in cycles per second.
	Speed float64
	// Active marks sparks that have been lit by the audio level.
	Active bool
}

// Sparks animates a field of particles along a closed path. Themes remap
// Pos to their own geometry: an angle for orbiting sparks, an outline
// parameter for perimeter runners.
type Sparks struct {
	// MinLevel gates ignition; below it sparks idle.
	MinLevel float64
	// Energy scales the level-driven aging and travel speed.
	Energy float64

	parts []Spark
	epoch uint32
}

// Ensure sizes the field, seeding any new sparks deterministically.
func (s *Sparks) Ensure(count int) {
	if count < 0 {
		count = 0
	}
	for len(s.parts) < count {
		s.parts = append(s.parts, s.spawn(len(s.parts)))
	}
	s.parts = s.parts[:count]
}

// Reset drops all particles. The next Ensure reseeds the field from the
// same sequence so a settings round-trip reproduces the motion.
func (s *Sparks) Reset() {
	s.parts = s.parts[:0]
	s.epoch = 0
}

func (s *Sparks) spawn(i int) Spark {
	seed := uint32(i)*97 + 17 + s.epoch*131
	return Spark{
		Pos:     rand01(seed),
		Off:     rand01(seed + 31),
		MaxLife: 0.6 + rand01(seed+59)*1.8,
		Speed:   0.02 + rand01(seed+83)*0.08,
	}
}

// Advance ages every spark by dt and invokes emit for each with its
// current intensity in [0, 1]. levelAt reads the audio level at a path
// position; it gates ignition and drives active travel.
func (s *Sparks) Advance(dt float64, levelAt func(u float64) float64, emit func(sp *Spark, intensity float64)) {
	energy := s.Energy
	if energy <= 0 {
		energy = 1
	}

	for i := range s.parts {
		sp := &s.parts[i]
		level := levelAt(sp.Pos)

		if !sp.Active {
			// Idle sparks drift slowly and charge up; they ignite when
			// the local level crosses the gate.
			sp.Pos = wrapPhase(sp.Pos + sp.Speed*dt*0.25)
			sp.Life += dt * 0.6 * energy
			if sp.Life >= sp.MaxLife {
				s.respawn(i)
				continue
			}
			if level >= s.MinLevel {
				sp.Active = true
				sp.Life = 0
			}
			continue
		}

		sp.Life += dt * (0.4 + 2*level) * energy
		if sp.Life >= sp.MaxLife {
			s.respawn(i)
			continue
		}

		sp.Pos = wrapPhase(sp.Pos + sp.Speed*dt*(1+4*level)*energy)

		emit(sp, sp.intensity())
	}
}

// respawn reseeds a slot with fresh deterministic parameters.
func (s *Sparks) respawn(i int) {
	s.epoch++
	s.parts[i] = s.spawn(i)
}

// intensity is a triangular ramp over the lifetime: fade in over the
// first half, fade out over the second.
func (sp *Spark) intensity() float64 {
	if sp.MaxLife <= 0 {
		return 0
	}
	p := sp.Life / sp.MaxLife
	if p < 0.5 {
		return 2 * p
	}
	return 2 * (1 - p)
}
