package sim

import (
	"fmt"
	"math"
	"sync"
	"time"
)

// TerminateFunc receives the final score (floored elapsed seconds) when
// the ship collides. It is invoked exactly once per session, outside the
// session lock, and never if the session never collides.
type TerminateFunc func(finalScore int)

// Option configures a Session at construction.
type Option func(*Session)

// WithParams overrides the default tuning. Participants of a shared-seed
// match must agree on Params.
func WithParams(p Params) Option {
	return func(s *Session) { s.params = p }
}

// WithSource replaces the production random source, letting tests inject
// a scripted sequence.
func WithSource(src Source) Option {
	return func(s *Session) { s.rng = src }
}

// WithSelfDrive makes Start run an internal ticker at the given rate so
// the session advances without an external frame driver (headless runs,
// bots, soak tests). Stop releases the ticker.
func WithSelfDrive(hz int) Option {
	return func(s *Session) { s.tickRate = hz }
}

// Session is one independent simulation instance. Sessions share no
// state; any number may run concurrently as long as each owns its own
// random source, clock and entity collections, which New guarantees.
type Session struct {
	mu sync.Mutex

	params Params
	seed   uint32
	rng    Source
	clock  Clock

	width  float64
	height float64

	ship      Ship
	obstacles []Obstacle
	elapsed   float64
	spawn     spawner
	steer     steering

	running     bool
	terminated  bool
	onTerminate TerminateFunc

	tickRate  int
	stopDrive chan struct{}
	driveDone chan struct{}
}

// New constructs a session for the given field and seed. The ship
// starts alive at the field center with a random heading drawn from the
// source (the first draw of the sequence). Construction fails fast on
// non-positive or non-finite dimensions; nothing is clamped silently.
func New(width, height float64, seed uint32, onTerminate TerminateFunc, opts ...Option) (*Session, error) {
	if err := checkExtent(width, height); err != nil {
		return nil, err
	}

	s := &Session{
		params:      DefaultParams(),
		seed:        seed,
		width:       width,
		height:      height,
		onTerminate: onTerminate,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = NewSource(seed)
	}

	s.ship = Ship{
		Pos:     Vec{X: width / 2, Y: height / 2},
		Heading: s.rng.Next() * 2 * math.Pi,
		Radius:  s.params.ShipRadius,
		Alive:   true,
	}
	s.obstacles = make([]Obstacle, 0, 32)
	return s, nil
}

func checkExtent(width, height float64) error {
	if !(width > 0) || math.IsInf(width, 0) {
		return fmt.Errorf("sim: field width must be a positive finite number, got %v", width)
	}
	if !(height > 0) || math.IsInf(height, 0) {
		return fmt.Errorf("sim: field height must be a positive finite number, got %v", height)
	}
	return nil
}

// Start arms the session so frames are consumed. Idempotent while
// running. With WithSelfDrive it also acquires the internal ticker.
func (s *Session) Start() {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.clock.Reset()
	selfDrive := s.tickRate > 0
	if selfDrive {
		s.stopDrive = make(chan struct{})
		s.driveDone = make(chan struct{})
	}
	stop, done := s.stopDrive, s.driveDone
	s.mu.Unlock()

	if selfDrive {
		go s.drive(stop, done)
	}
}

// Stop disarms the session and releases the ticker if one was acquired.
// This is resource teardown, not a game-rule transition: it is legal in
// either lifecycle state and idempotent.
func (s *Session) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	stop, done := s.stopDrive, s.driveDone
	s.stopDrive, s.driveDone = nil, nil
	s.mu.Unlock()

	if stop != nil {
		close(stop)
		<-done
	}
}

func (s *Session) drive(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	ticker := time.NewTicker(time.Second / time.Duration(s.tickRate))
	defer ticker.Stop()
	for {
		select {
		case now := <-ticker.C:
			s.Frame(now)
		case <-stop:
			return
		}
	}
}

// Frame advances the session by one wall-clock frame. The clock caps
// the delta, so stalled or non-monotonic timestamps are harmless.
// Frames delivered while the session is not started are ignored.
func (s *Session) Frame(now time.Time) {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	dt := s.clock.Tick(now)
	s.stepLocked(dt)
}

// Step advances the session by an explicit delta in seconds. This is
// the deterministic entry point: a fixed sequence of (dt, steering)
// pairs fully determines the resulting trajectories.
func (s *Session) Step(dt float64) {
	s.mu.Lock()
	s.stepLocked(dt)
}

// stepLocked runs one simulation step and releases the lock. The
// termination callback, if it fires, runs after the lock is dropped so
// it may freely call back into the session.
func (s *Session) stepLocked(dt float64) {
	fired := s.step(dt)
	score := int(math.Floor(s.elapsed))
	cb := s.onTerminate
	s.mu.Unlock()

	if fired && cb != nil {
		cb(score)
	}
}

// step is the update loop. Order is fixed and load-bearing for
// determinism: elapsed time, heading (one random draw iff no steering
// override), ship motion and wrap, obstacle motion, spawn check, cull,
// collision. Returns true when this step terminated the session.
func (s *Session) step(dt float64) bool {
	if s.terminated {
		return false
	}

	s.elapsed += dt

	if ov := s.steer.override(); ov != 0 {
		s.ship.Heading += ov * s.params.ManualTurnRate * dt
	} else {
		s.ship.Heading += (s.rng.Next() - 0.5) * 2 * s.params.AutoTurnRate * dt
	}

	s.ship.Pos.X = wrap(s.ship.Pos.X+math.Cos(s.ship.Heading)*s.params.ShipSpeed*dt, s.width)
	s.ship.Pos.Y = wrap(s.ship.Pos.Y+math.Sin(s.ship.Heading)*s.params.ShipSpeed*dt, s.height)

	for i := range s.obstacles {
		s.obstacles[i].Pos.X += s.obstacles[i].Vel.X * dt
		s.obstacles[i].Pos.Y += s.obstacles[i].Vel.Y * dt
	}

	if ob, ok := s.spawn.advance(dt, s.elapsed, s.rng, s.width, s.height, s.params); ok {
		s.obstacles = append(s.obstacles, ob)
	}

	s.cull()

	for i := range s.obstacles {
		if circlesOverlap(s.ship.Pos, s.ship.Radius, s.obstacles[i].Pos, s.obstacles[i].Radius) {
			s.ship.Alive = false
			s.terminated = true
			return true
		}
	}
	return false
}

// cull compacts the obstacle slice in place, dropping anything more
// than the margin outside the field on any side. Pure garbage
// collection; the compaction never runs concurrently with iteration.
func (s *Session) cull() {
	m := s.params.CullMargin
	kept := s.obstacles[:0]
	for _, ob := range s.obstacles {
		if ob.Pos.X < -m || ob.Pos.X > s.width+m || ob.Pos.Y < -m || ob.Pos.Y > s.height+m {
			continue
		}
		kept = append(kept, ob)
	}
	s.obstacles = kept
}

// circlesOverlap reports strict overlap via squared distances; touching
// circles (distance exactly equal to the radius sum) do not collide.
func circlesOverlap(a Vec, ra float64, b Vec, rb float64) bool {
	dx := a.X - b.X
	dy := a.Y - b.Y
	rr := ra + rb
	return dx*dx+dy*dy < rr*rr
}

// wrap translates v by the extent until it lies in [0, extent).
func wrap(v, extent float64) float64 {
	for v < 0 {
		v += extent
	}
	for v >= extent {
		v -= extent
	}
	return v
}

// KeyDown marks a steering key as held.
func (s *Session) KeyDown(k Key) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.steer.keyDown(k)
}

// KeyUp marks a steering key as released.
func (s *Session) KeyUp(k Key) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.steer.keyUp(k)
}

// ReleaseKeys clears all held steering keys.
func (s *Session) ReleaseKeys() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.steer = steering{}
}

// Resize changes the field extent for future wrap, spawn and cull
// computations. Existing entities are never repositioned or rescaled.
// Non-positive dimensions are rejected and the prior extent kept.
func (s *Session) Resize(width, height float64) error {
	if err := checkExtent(width, height); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
	return nil
}

// Seed returns the seed fixed at construction.
func (s *Session) Seed() uint32 {
	return s.seed
}

// Score returns the floored elapsed survival time. After termination it
// is frozen at the final score.
func (s *Session) Score() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int(math.Floor(s.elapsed))
}

// Snapshot copies the visible state for rendering or inspection.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	obstacles := make([]Obstacle, len(s.obstacles))
	copy(obstacles, s.obstacles)
	return Snapshot{
		Ship:      s.ship,
		Obstacles: obstacles,
		Width:     s.width,
		Height:    s.height,
		Elapsed:   s.elapsed,
		Score:     int(math.Floor(s.elapsed)),
		Seed:      s.seed,
		GameOver:  s.terminated,
	}
}
