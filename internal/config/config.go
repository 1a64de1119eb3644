// Package config provides YAML-based tuning for the drift simulation
// and difficulty presets. All participants of an online room must run
// the same tuning or their shared-seed simulations diverge, so online
// play always uses the embedded defaults.
package config

import (
	"fmt"

	"github.com/vadimyer/driftfield/internal/sim"
)

// Config is the full driftfield tuning file.
type Config struct {
	Field FieldConfig `yaml:"field"`
	Ship  ShipConfig  `yaml:"ship"`
	Spawn SpawnConfig `yaml:"spawn"`
}

// FieldConfig sets the simulation field extent in field units (px).
type FieldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// ShipConfig tunes the player ship.
type ShipConfig struct {
	Speed          float64 `yaml:"speed"`
	Radius         float64 `yaml:"radius"`
	ManualTurnRate float64 `yaml:"manual_turn_rate"`
	AutoTurnRate   float64 `yaml:"auto_turn_rate"`
}

// SpawnConfig tunes obstacle spawning and the difficulty ramp.
type SpawnConfig struct {
	BaseInterval float64 `yaml:"base_interval"`
	IntervalStep float64 `yaml:"interval_step"`
	MinInterval  float64 `yaml:"min_interval"`
	RampPeriod   float64 `yaml:"ramp_period"`
	SpeedStep    float64 `yaml:"speed_step"`

	ObstacleSpeed float64 `yaml:"obstacle_speed"`
	MinRadius     float64 `yaml:"min_radius"`
	RadiusRange   float64 `yaml:"radius_range"`
	AngleSpread   float64 `yaml:"angle_spread"`
	CullMargin    float64 `yaml:"cull_margin"`
}

// Params converts the tuning into simulation parameters.
func (c Config) Params() sim.Params {
	return sim.Params{
		ShipSpeed:      c.Ship.Speed,
		ShipRadius:     c.Ship.Radius,
		ManualTurnRate: c.Ship.ManualTurnRate,
		AutoTurnRate:   c.Ship.AutoTurnRate,

		BaseInterval: c.Spawn.BaseInterval,
		IntervalStep: c.Spawn.IntervalStep,
		MinInterval:  c.Spawn.MinInterval,
		RampPeriod:   c.Spawn.RampPeriod,
		SpeedStep:    c.Spawn.SpeedStep,

		BaseObstacleSpeed:   c.Spawn.ObstacleSpeed,
		MinObstacleRadius:   c.Spawn.MinRadius,
		ObstacleRadiusRange: c.Spawn.RadiusRange,
		AngleSpread:         c.Spawn.AngleSpread,
		CullMargin:          c.Spawn.CullMargin,
	}
}

// Validate rejects tunings the simulation cannot run with.
func (c Config) Validate() error {
	if c.Field.Width <= 0 || c.Field.Height <= 0 {
		return fmt.Errorf("config: field extent must be positive, got %vx%v", c.Field.Width, c.Field.Height)
	}
	if c.Spawn.MinInterval <= 0 {
		return fmt.Errorf("config: min_interval must be positive, got %v", c.Spawn.MinInterval)
	}
	if c.Spawn.RampPeriod <= 0 {
		return fmt.Errorf("config: ramp_period must be positive, got %v", c.Spawn.RampPeriod)
	}
	if c.Ship.Radius <= 0 || c.Spawn.MinRadius <= 0 {
		return fmt.Errorf("config: radii must be positive")
	}
	return nil
}
