package sim

import (
	"math"
	"testing"
)

// scriptedSource replays a fixed sequence of draws, wrapping around.
// Used to script exact spawn parameters without the production PRNG.
type scriptedSource struct {
	values []float64
	i      int
}

func (s *scriptedSource) Next() float64 {
	v := s.values[s.i%len(s.values)]
	s.i++
	return v
}

func TestSpawnIntervalFloor(t *testing.T) {
	p := DefaultParams()
	for level := 0; level <= 10; level++ {
		if got := p.SpawnInterval(level); got < 0.3 {
			t.Errorf("SpawnInterval(%d) = %v, below floor 0.3", level, got)
		}
	}
	// Discrete shrink before the floor kicks in.
	if got := p.SpawnInterval(0); got != 1.5 {
		t.Errorf("SpawnInterval(0) = %v, want 1.5", got)
	}
	if got := p.SpawnInterval(2); math.Abs(got-1.2) > 1e-12 {
		t.Errorf("SpawnInterval(2) = %v, want 1.2", got)
	}
	if got := p.SpawnInterval(100); got != 0.3 {
		t.Errorf("SpawnInterval(100) = %v, want 0.3", got)
	}
}

func TestSpeedMultiplierUnbounded(t *testing.T) {
	p := DefaultParams()
	if got := p.SpeedMultiplier(0); got != 1 {
		t.Errorf("SpeedMultiplier(0) = %v, want 1", got)
	}
	if got := p.SpeedMultiplier(4); got != 2 {
		t.Errorf("SpeedMultiplier(4) = %v, want 2", got)
	}
	if got := p.SpeedMultiplier(100); got != 26 {
		t.Errorf("SpeedMultiplier(100) = %v, want 26", got)
	}
}

func TestDifficultyLevel(t *testing.T) {
	p := DefaultParams()
	tests := []struct {
		elapsed float64
		want    int
	}{
		{0, 0},
		{9.99, 0},
		{10, 1},
		{25, 2},
		{100, 10},
	}
	for _, tc := range tests {
		if got := p.Level(tc.elapsed); got != tc.want {
			t.Errorf("Level(%v) = %d, want %d", tc.elapsed, got, tc.want)
		}
	}
}

// The draw order is a cross-client contract: edge, radius, speed
// jitter, offset, spread. Scripting each draw verifies both the order
// and the parameter math.
func TestSpawnObstacleDrawOrder(t *testing.T) {
	p := DefaultParams()
	src := &scriptedSource{values: []float64{
		0.30, // edge: floor(0.30*4) = 1, right edge
		0.50, // radius: 8 + 0.5*14 = 15
		1.0,  // speed jitter: 0.5+0.5 = 1.0 -> full base speed
		0.25, // offset: quarter of the way down the edge
		0.5,  // spread: centered -> exactly inward
	}}

	ob := spawnObstacle(src, 800, 600, p, 1)

	if ob.Pos.X != 800 || ob.Pos.Y != 150 {
		t.Errorf("spawn position = (%v, %v), want (800, 150)", ob.Pos.X, ob.Pos.Y)
	}
	if ob.Radius != 15 {
		t.Errorf("radius = %v, want 15", ob.Radius)
	}
	// Right edge, no spread: velocity points straight left.
	if math.Abs(ob.Vel.X+p.BaseObstacleSpeed) > 1e-9 {
		t.Errorf("Vel.X = %v, want %v", ob.Vel.X, -p.BaseObstacleSpeed)
	}
	if math.Abs(ob.Vel.Y) > 1e-9 {
		t.Errorf("Vel.Y = %v, want ~0", ob.Vel.Y)
	}
}

func TestSpawnObstacleSpeedScalesWithMultiplier(t *testing.T) {
	p := DefaultParams()
	src := &scriptedSource{values: []float64{0, 0, 1.0, 0, 0.5}}
	ob := spawnObstacle(src, 800, 600, p, 2)

	speed := math.Hypot(ob.Vel.X, ob.Vel.Y)
	want := p.BaseObstacleSpeed * 2
	if math.Abs(speed-want) > 1e-9 {
		t.Errorf("speed = %v, want %v", speed, want)
	}
}

func TestSpawnerHonorsInterval(t *testing.T) {
	p := DefaultParams()
	var sp spawner
	rng := NewSource(1)

	spawned := 0
	// 3 simulated seconds at level 0 (interval 1.5s) yields 2 spawns.
	// dt is an exact binary fraction so the accumulator has no drift.
	const dt = 1.0 / 64
	for i := 0; i < 192; i++ {
		if _, ok := sp.advance(dt, float64(i)*dt, rng, 800, 600, p); ok {
			spawned++
		}
	}
	if spawned != 2 {
		t.Errorf("spawned %d obstacles in 3s at level 0, want 2", spawned)
	}
}
