package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/arena.yaml
var defaultArenaYAML []byte

// Default returns the stock arena configuration.
func Default() Config {
	return Config{
		Map: MapConfig{
			Width:       1200,
			Height:      600,
			WaterMargin: 20,
		},
		Physics: PhysicsConfig{
			Gravity:       250,
			TickRate:      60,
			MaxSteps:      600,
			QuickMaxSteps: 400,
			WindForce:     80,
		},
		Worm: WormConfig{
			HP:                  100,
			Radius:              8,
			MoveDistance:        60,
			ClimbStep:           4,
			FallDamageThreshold: 40,
			FallDamagePerPixel:  0.8,
		},
		Teams: TeamsConfig{
			Size:   4,
			Colors: []string{"#e74c3c", "#3498db", "#2ecc71", "#f1c40f"},
		},
		Inventory: InventoryConfig{
			Bazooka:     5,
			Grenade:     3,
			Shotgun:     2,
			HealthKits:  2,
			Shields:     1,
			SpeedBoosts: 1,
		},
		Match: MatchConfig{
			MaxTurns:        200,
			TimeLimit:       4 * time.Minute,
			MaxMoveDistance: 120,
			MoveStepSize:    4,
			ItemSpawnChance: 0.3,
			HealAmount:      30,
			ShieldHeal:      20,
		},
		Scheduler: SchedulerConfig{
			Slots:        8,
			Cooldown:     8 * time.Second,
			StartStagger: 1500 * time.Millisecond,
			ListInterval: 2 * time.Second,
			Pacing: PacingConfig{
				MatchIntro:         1500 * time.Millisecond,
				TurnIntro:          600 * time.Millisecond,
				ActionReveal:       200 * time.Millisecond,
				MovementPerFrame:   20 * time.Millisecond,
				MovementMax:        1500 * time.Millisecond,
				ProjectilePerFrame: 15 * time.Millisecond,
				ProjectileMax:      2000 * time.Millisecond,
				Explosion:          400 * time.Millisecond,
				TurnOutro:          1000 * time.Millisecond,
			},
		},
		Server: ServerConfig{
			HTTPAddr:    ":3001",
			SSHAddr:     "",
			DBPath:      "~/.arena/arena.db",
			IdleTimeout: 30 * time.Minute,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultArenaYAML
}
