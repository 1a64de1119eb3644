package sim

import "math"

// Field edges, in the order the edge draw selects them.
const (
	edgeTop = iota
	edgeRight
	edgeBottom
	edgeLeft
)

// spawner accumulates simulation time and emits one obstacle whenever
// the current difficulty interval elapses.
type spawner struct {
	accum float64
}

func (sp *spawner) reset() {
	sp.accum = 0
}

// advance adds dt to the accumulator and, if the spawn interval for the
// current difficulty level has elapsed, resets it and spawns.
func (sp *spawner) advance(dt, elapsed float64, rng Source, w, h float64, p Params) (Obstacle, bool) {
	sp.accum += dt
	level := p.Level(elapsed)
	if sp.accum < p.SpawnInterval(level) {
		return Obstacle{}, false
	}
	sp.accum = 0
	return spawnObstacle(rng, w, h, p, p.SpeedMultiplier(level)), true
}

// spawnObstacle creates an obstacle on a random field edge, aimed
// inward with a random angular perturbation.
//
// The random source is consumed in a fixed order that every client must
// preserve: edge, radius, speed jitter, offset along the edge, angular
// spread. Reordering these draws desynchronizes shared-seed matches.
func spawnObstacle(rng Source, w, h float64, p Params, speedMult float64) Obstacle {
	edge := int(rng.Next() * 4)
	radius := p.MinObstacleRadius + rng.Next()*p.ObstacleRadiusRange
	speed := p.BaseObstacleSpeed * speedMult * (0.5 + rng.Next()*0.5)
	offset := rng.Next()
	spread := (rng.Next() - 0.5) * 2 * p.AngleSpread

	var pos Vec
	var inward float64
	switch edge {
	case edgeTop:
		pos = Vec{X: offset * w, Y: 0}
		inward = math.Pi / 2
	case edgeRight:
		pos = Vec{X: w, Y: offset * h}
		inward = math.Pi
	case edgeBottom:
		pos = Vec{X: offset * w, Y: h}
		inward = -math.Pi / 2
	default:
		pos = Vec{X: 0, Y: offset * h}
		inward = 0
	}

	angle := inward + spread
	return Obstacle{
		Pos:    pos,
		Vel:    Vec{X: math.Cos(angle) * speed, Y: math.Sin(angle) * speed},
		Radius: radius,
	}
}
