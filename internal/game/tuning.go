package game

import (
	"errors"
	"fmt"
)

// Default tuning values
const (
	DefaultStartLives    = 1
	DefaultSpawnInterval = 0.5   // Seconds of empty board before the next puck
	DefaultRampDuration  = 60.0  // Seconds of play to reach max speed
	DefaultMaxSpeedMult  = 3.0
	DefaultMinSpeed      = 260.0 // Background pixels per second
	DefaultSpeedJitter   = 100.0
	DefaultPuckRadius    = 14.0 // Background pixels
	DefaultRotationDeg   = 15.0
	DefaultManPeriod     = 0.5
	DefaultWomanPeriod   = 0.6
)

// Tuning holds the gameplay constants of a session
type Tuning struct {
	StartLives    int     `yaml:"start_lives"`
	SpawnInterval float64 `yaml:"spawn_interval"`
	RampDuration  float64 `yaml:"ramp_duration"`
	MaxSpeedMult  float64 `yaml:"max_speed_mult"`
	MinSpeed      float64 `yaml:"min_speed"`
	SpeedJitter   float64 `yaml:"speed_jitter"`
	PuckRadius    float64 `yaml:"puck_radius"`
	RotationDeg   float64 `yaml:"rotation_deg"`
	ManPeriod     float64 `yaml:"man_period"`
	WomanPeriod   float64 `yaml:"woman_period"`
}

func DefaultTuning() Tuning {
	return Tuning{
		StartLives:    DefaultStartLives,
		SpawnInterval: DefaultSpawnInterval,
		RampDuration:  DefaultRampDuration,
		MaxSpeedMult:  DefaultMaxSpeedMult,
		MinSpeed:      DefaultMinSpeed,
		SpeedJitter:   DefaultSpeedJitter,
		PuckRadius:    DefaultPuckRadius,
		RotationDeg:   DefaultRotationDeg,
		ManPeriod:     DefaultManPeriod,
		WomanPeriod:   DefaultWomanPeriod,
	}
}

var ErrBadTuning = errors.New("invalid tuning")

// Validate rejects values that would break the ramp or spawn math
func (t Tuning) Validate() error {
	if t.StartLives < 1 {
		return fmt.Errorf("%w: start_lives must be at least 1, got %d", ErrBadTuning, t.StartLives)
	}
	if t.RampDuration <= 0 {
		return fmt.Errorf("%w: ramp_duration must be positive, got %v", ErrBadTuning, t.RampDuration)
	}
	if t.MaxSpeedMult < 1 {
		return fmt.Errorf("%w: max_speed_mult must be >= 1, got %v", ErrBadTuning, t.MaxSpeedMult)
	}
	if t.SpawnInterval < 0 || t.MinSpeed <= 0 || t.SpeedJitter < 0 {
		return fmt.Errorf("%w: spawn_interval, min_speed and speed_jitter must not be negative", ErrBadTuning)
	}
	return nil
}
