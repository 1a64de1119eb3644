package config

import (
	_ "embed"
)

//go:embed defaults/driftfield.yaml
var defaultYAML []byte

// Default returns the reference tuning. The hardcoded values mirror the
// embedded YAML and back it up should the embed ever fail to parse.
func Default() Config {
	return Config{
		Field: FieldConfig{
			Width:  800,
			Height: 600,
		},
		Ship: ShipConfig{
			Speed:          120,
			Radius:         12,
			ManualTurnRate: 4,
			AutoTurnRate:   1.5,
		},
		Spawn: SpawnConfig{
			BaseInterval:  1.5,
			IntervalStep:  0.15,
			MinInterval:   0.3,
			RampPeriod:    10,
			SpeedStep:     0.25,
			ObstacleSpeed: 70,
			MinRadius:     8,
			RadiusRange:   14,
			AngleSpread:   0.6,
			CullMargin:    100,
		},
	}
}
