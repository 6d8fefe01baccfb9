// Package physics implements projectile ballistics, explosions and the
// settling pass that drops worms onto the ground after every turn.
//
// All integration is fixed-timestep explicit Euler, so identical inputs
// always produce identical trajectories.
package physics

import "github.com/vovakirdan/worms-arena/internal/config"

// Params holds the constants the integrator and gravity pass run with.
type Params struct {
	Gravity             float64
	DT                  float64
	MaxSteps            int
	QuickMaxSteps       int
	WindForce           float64
	WormRadius          float64
	FallDamageThreshold float64
	FallDamagePerPixel  float64
}

// NewParams derives physics parameters from the arena configuration.
func NewParams(cfg config.Config) Params {
	return Params{
		Gravity:             cfg.Physics.Gravity,
		DT:                  cfg.Physics.DT(),
		MaxSteps:            cfg.Physics.MaxSteps,
		QuickMaxSteps:       cfg.Physics.QuickMaxSteps,
		WindForce:           cfg.Physics.WindForce,
		WormRadius:          cfg.Worm.Radius,
		FallDamageThreshold: cfg.Worm.FallDamageThreshold,
		FallDamagePerPixel:  cfg.Worm.FallDamagePerPixel,
	}
}

// DefaultParams returns the parameters of the stock configuration.
func DefaultParams() Params {
	return NewParams(config.Default())
}
