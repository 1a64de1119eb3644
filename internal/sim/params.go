package sim

// Params holds the tuning constants of the simulation. All participants
// of a shared-seed match must run identical Params or their simulations
// diverge; the defaults below are the reference values.
type Params struct {
	// Ship
	ShipSpeed      float64 // px/s
	ShipRadius     float64 // collision radius, px
	ManualTurnRate float64 // rad/s while a steering key is held
	AutoTurnRate   float64 // rad/s amplitude of the drunken-walk drift

	// Spawning and difficulty
	BaseInterval float64 // s between spawns at level 0
	IntervalStep float64 // s removed from the interval per level
	MinInterval  float64 // s, interval floor
	RampPeriod   float64 // s of survival per difficulty level
	SpeedStep    float64 // speed multiplier gained per level

	// Obstacles
	BaseObstacleSpeed   float64 // px/s before difficulty and jitter
	MinObstacleRadius   float64 // px
	ObstacleRadiusRange float64 // px, uniform range above the minimum
	AngleSpread         float64 // rad, symmetric perturbation of the inward aim
	CullMargin          float64 // px outside the field before removal
}

// DefaultParams returns the reference tuning.
func DefaultParams() Params {
	return Params{
		ShipSpeed:      120,
		ShipRadius:     12,
		ManualTurnRate: 4,
		AutoTurnRate:   1.5,

		BaseInterval: 1.5,
		IntervalStep: 0.15,
		MinInterval:  0.3,
		RampPeriod:   10,
		SpeedStep:    0.25,

		BaseObstacleSpeed:   70,
		MinObstacleRadius:   8,
		ObstacleRadiusRange: 14,
		AngleSpread:         0.6,
		CullMargin:          100,
	}
}

// Level returns the difficulty level after elapsed seconds of survival.
func (p Params) Level(elapsed float64) int {
	if p.RampPeriod <= 0 {
		return 0
	}
	return int(elapsed / p.RampPeriod)
}

// SpawnInterval returns the seconds between spawns at the given level.
// The interval shrinks in discrete steps and never drops below the floor.
func (p Params) SpawnInterval(level int) float64 {
	interval := p.BaseInterval - float64(level)*p.IntervalStep
	if interval < p.MinInterval {
		return p.MinInterval
	}
	return interval
}

// SpeedMultiplier returns the obstacle speed factor at the given level.
// Growth is unbounded, intentionally.
func (p Params) SpeedMultiplier(level int) float64 {
	return 1 + float64(level)*p.SpeedStep
}
