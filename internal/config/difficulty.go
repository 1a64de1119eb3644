package config

import "fmt"

// ApplyPreset adjusts the tuning for a named difficulty preset.
// Presets reshape the spawn curve only; the ship always handles the
// same. An empty name leaves the config untouched.
//
//	easy   - slower ramp, sparser spawns
//	normal - the reference tuning
//	hard   - denser spawns, faster ramp
//	fixed  - no progression at all, stays at the base rate
func ApplyPreset(cfg *Config, preset string) error {
	switch preset {
	case "", "normal":
		return nil
	case "easy":
		cfg.Spawn.BaseInterval = 2.0
		cfg.Spawn.SpeedStep = 0.15
		cfg.Spawn.RampPeriod = 15
	case "hard":
		cfg.Spawn.BaseInterval = 1.1
		cfg.Spawn.SpeedStep = 0.35
		cfg.Spawn.RampPeriod = 8
	case "fixed":
		cfg.Spawn.IntervalStep = 0
		cfg.Spawn.SpeedStep = 0
	default:
		return fmt.Errorf("config: unknown difficulty preset %q", preset)
	}
	return nil
}
