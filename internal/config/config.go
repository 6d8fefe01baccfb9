// Package config provides YAML-based arena configuration loading.
//
// Every value here is a tunable of the simulation or the server. The
// embedded defaults reproduce the stock arena: a 1200x600 map, two teams
// of four worms, eight parallel match slots.
package config

import "time"

// Config is the full arena configuration.
type Config struct {
	Map       MapConfig       `yaml:"map"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Worm      WormConfig      `yaml:"worm"`
	Teams     TeamsConfig     `yaml:"teams"`
	Inventory InventoryConfig `yaml:"inventory"`
	Match     MatchConfig     `yaml:"match"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
	Server    ServerConfig    `yaml:"server"`
}

// MapConfig defines the battlefield dimensions.
type MapConfig struct {
	Width       int `yaml:"width"`
	Height      int `yaml:"height"`
	WaterMargin int `yaml:"water_margin"` // Rows above the bottom edge that are water
}

// WaterLevel returns the y coordinate of the water line.
func (m MapConfig) WaterLevel() int {
	return m.Height - m.WaterMargin
}

// PhysicsConfig defines the ballistic integrator parameters.
type PhysicsConfig struct {
	Gravity       float64 `yaml:"gravity"`         // pixels/s²
	TickRate      int     `yaml:"tick_rate"`       // integration steps per second
	MaxSteps      int     `yaml:"max_steps"`       // safety cap per projectile
	QuickMaxSteps int     `yaml:"quick_max_steps"` // cap for AI aim probes
	WindForce     float64 `yaml:"wind_force"`      // horizontal accel at wind = 1
}

// DT returns the fixed integration timestep in seconds.
func (p PhysicsConfig) DT() float64 {
	if p.TickRate <= 0 {
		return 1.0 / 60.0
	}
	return 1.0 / float64(p.TickRate)
}

// WormConfig defines worm body and movement parameters.
type WormConfig struct {
	HP                  int     `yaml:"hp"`
	Radius              float64 `yaml:"radius"`
	MoveDistance        float64 `yaml:"move_distance"`         // pixels per "move" action
	ClimbStep           float64 `yaml:"climb_step"`            // max step-up while walking
	FallDamageThreshold float64 `yaml:"fall_damage_threshold"` // fall distance before damage
	FallDamagePerPixel  float64 `yaml:"fall_damage_per_pixel"`
}

// TeamsConfig defines team layout. A match is always two teams.
type TeamsConfig struct {
	Size   int      `yaml:"size"`
	Colors []string `yaml:"colors"`
}

// InventoryConfig defines the starting inventory of every team.
type InventoryConfig struct {
	Bazooka     int `yaml:"bazooka"`
	Grenade     int `yaml:"grenade"`
	Shotgun     int `yaml:"shotgun"`
	HealthKits  int `yaml:"health_kits"`
	Shields     int `yaml:"shields"`
	SpeedBoosts int `yaml:"speed_boosts"`
}

// MatchConfig defines per-match rules.
type MatchConfig struct {
	MaxTurns        int           `yaml:"max_turns"`
	TimeLimit       time.Duration `yaml:"time_limit"`
	MaxMoveDistance float64       `yaml:"max_move_distance"` // moveTo cap per turn
	MoveStepSize    float64       `yaml:"move_step_size"`
	ItemSpawnChance float64       `yaml:"item_spawn_chance"`
	HealAmount      int           `yaml:"heal_amount"`
	ShieldHeal      int           `yaml:"shield_heal"`
}

// SchedulerConfig defines the parallel match loop.
type SchedulerConfig struct {
	Slots        int           `yaml:"slots"`
	Cooldown     time.Duration `yaml:"cooldown"`
	StartStagger time.Duration `yaml:"start_stagger"`
	ListInterval time.Duration `yaml:"list_interval"`
	Pacing       PacingConfig  `yaml:"pacing"`
}

// PacingConfig defines the delays that keep broadcast playback watchable.
type PacingConfig struct {
	MatchIntro         time.Duration `yaml:"match_intro"`
	TurnIntro          time.Duration `yaml:"turn_intro"`
	ActionReveal       time.Duration `yaml:"action_reveal"`
	MovementPerFrame   time.Duration `yaml:"movement_per_frame"`
	MovementMax        time.Duration `yaml:"movement_max"`
	ProjectilePerFrame time.Duration `yaml:"projectile_per_frame"`
	ProjectileMax      time.Duration `yaml:"projectile_max"`
	Explosion          time.Duration `yaml:"explosion"`
	TurnOutro          time.Duration `yaml:"turn_outro"`
}

// ServerConfig defines the network surfaces.
type ServerConfig struct {
	HTTPAddr    string        `yaml:"http_addr"`
	SSHAddr     string        `yaml:"ssh_addr"` // Empty disables the SSH spectator server
	HostKeyPath string        `yaml:"host_key_path"`
	DBPath      string        `yaml:"db_path"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}
