// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	World     WorldConfig     `yaml:"world"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Snake     SnakeConfig     `yaml:"snake"`
	Pellets   PelletConfig    `yaml:"pellets"`
	Autopilot AutopilotConfig `yaml:"autopilot"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// WorldConfig holds the playfield rectangle. Leaving it is fatal.
type WorldConfig struct {
	Width              float64 `yaml:"width"`
	Height             float64 `yaml:"height"`
	HeadBodyCollisions bool    `yaml:"head_body_collisions"` // optional multi-agent head-vs-body kill
}

// PhysicsConfig holds the fixed step and the upstream dt clamp.
type PhysicsConfig struct {
	DT    float64 `yaml:"dt"`
	MaxDT float64 `yaml:"max_dt"`
}

// SnakeConfig is the complete parameter set of one snake. It is passed by value
// into snake.New and the curve functions; nothing in the core reads Cfg().
type SnakeConfig struct {
	InitialLength float64        `yaml:"initial_length"`
	Movement      MovementConfig `yaml:"movement"`
	Steering      SteeringConfig `yaml:"steering"`
	Boost         BoostConfig    `yaml:"boost"`
	Decay         DecayConfig    `yaml:"decay"`
	Spacing       SpacingConfig  `yaml:"spacing"`
	Trail         TrailConfig    `yaml:"trail"`
	Scale         ScaleConfig    `yaml:"scale"`
	Camera        CameraConfig   `yaml:"camera"`
}

// MovementConfig defines the piecewise-linear speed curve.
type MovementConfig struct {
	SpeedMax       float64 `yaml:"speed_max"`
	SpeedMin       float64 `yaml:"speed_min"`
	SpeedMaxLength float64 `yaml:"speed_max_length"` // at or below: SpeedMax
	SpeedMinLength float64 `yaml:"speed_min_length"` // at or above: SpeedMin
}

// SteeringConfig holds turn rate and the length-dependent turn penalty.
type SteeringConfig struct {
	BaseTurnRate    float64 `yaml:"base_turn_rate"` // rad/s
	InputDeadzone   float64 `yaml:"input_deadzone"` // desired-direction magnitude below this is ignored
	FirstThreshold  float64 `yaml:"first_threshold"`
	FirstGain       float64 `yaml:"first_gain"`
	SecondThreshold float64 `yaml:"second_threshold"`
	SecondGain      float64 `yaml:"second_gain"`
	MinFactor       float64 `yaml:"min_factor"`
}

// BoostConfig holds the boost-as-length economy.
type BoostConfig struct {
	MinLength       float64 `yaml:"min_length"`
	CostPerSecond   float64 `yaml:"cost_per_second"`
	SpeedMultiplier float64 `yaml:"speed_multiplier"`
}

// DecayBracket applies Rate (length/s) while length > Above.
type DecayBracket struct {
	Above float64 `yaml:"above"`
	Rate  float64 `yaml:"rate"`
}

// DecayConfig holds passive decay parameters.
type DecayConfig struct {
	Floor    float64        `yaml:"floor"`
	Interval float64        `yaml:"interval"` // banked seconds before a decay step applies
	Brackets []DecayBracket `yaml:"brackets"` // sorted descending by Above after load
}

// SpacingConfig holds the segment spacing regimes.
type SpacingConfig struct {
	BaseGap         float64 `yaml:"base_gap"`
	FirstThreshold  float64 `yaml:"first_threshold"`
	FirstGain       float64 `yaml:"first_gain"`
	SecondThreshold float64 `yaml:"second_threshold"`
	SecondGain      float64 `yaml:"second_gain"`
	TailStart       float64 `yaml:"tail_start"` // fraction of segment count where the tail begins
	TailMultiplier  float64 `yaml:"tail_multiplier"`
}

// TrailConfig holds trail buffer sampling and retention.
type TrailConfig struct {
	MinSampleSpacing float64 `yaml:"min_sample_spacing"`
	RetentionMargin  float64 `yaml:"retention_margin"`
	MaxSamples       int     `yaml:"max_samples"`
	RebaseThreshold  float64 `yaml:"rebase_threshold"`
}

// ScaleConfig holds the visual scale curve and radii.
type ScaleConfig struct {
	HeadRadius     float64 `yaml:"head_radius"`
	BodyRadius     float64 `yaml:"body_radius"`
	MaxScale       float64 `yaml:"max_scale"`
	MaxScaleLength float64 `yaml:"max_scale_length"`
	TaperStep      float64 `yaml:"taper_step"`
	TaperFloor     float64 `yaml:"taper_floor"`
}

// CameraConfig holds the zoom-target curve and follow smoothing.
type CameraConfig struct {
	BaseZoom    float64 `yaml:"base_zoom"`
	MaxZoomOut  float64 `yaml:"max_zoom_out"`
	MinZoom     float64 `yaml:"min_zoom"`
	LengthCap   float64 `yaml:"length_cap"`
	BoostFactor float64 `yaml:"boost_factor"`
	FollowRate  float64 `yaml:"follow_rate"` // 1/s, exponential approach
}

// PelletConfig holds pellet field parameters.
type PelletConfig struct {
	TargetCount  int     `yaml:"target_count"`
	SpawnPerTick int     `yaml:"spawn_per_tick"`
	Radius       float64 `yaml:"radius"`
	BigValue     float64 `yaml:"big_value"`
	BigChance    float64 `yaml:"big_chance"`
	GridCellSize float64 `yaml:"grid_cell_size"`

	DeathDropFraction float64 `yaml:"death_drop_fraction"`
	DeathDropMax      int     `yaml:"death_drop_max"`
}

// AutopilotConfig holds bot steering parameters.
type AutopilotConfig struct {
	Bots           int     `yaml:"bots"`
	SeekRadius     float64 `yaml:"seek_radius"`
	BoundaryBuffer float64 `yaml:"boundary_buffer"`
	WanderScale    float64 `yaml:"wander_scale"`    // noise frequency per second
	BoostThreshold float64 `yaml:"boost_threshold"` // noise value above which bots boost
	BoostMinLength float64 `yaml:"boost_min_length"`
	RespawnDelay   float64 `yaml:"respawn_delay"` // seconds a dead bot stays on the field
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"`
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.computeDerived()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// DefaultSnake returns the snake parameters from the embedded defaults.
func DefaultSnake() SnakeConfig {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
	}
	return cfg.Snake
}

// computeDerived normalizes values that depend on other values.
func (c *Config) computeDerived() {
	if c.Physics.MaxDT <= 0 {
		c.Physics.MaxDT = c.Physics.DT
	}
	c.Snake.normalize()
}

func (s *SnakeConfig) normalize() {
	sort.Slice(s.Decay.Brackets, func(i, j int) bool {
		return s.Decay.Brackets[i].Above > s.Decay.Brackets[j].Above
	})
	if s.Decay.Interval <= 0 {
		s.Decay.Interval = 1
	}
}

// Validate reports configuration values the simulation cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Physics.DT <= 0 {
		errs = append(errs, errors.New("physics.dt must be positive"))
	}
	if c.World.Width <= 0 || c.World.Height <= 0 {
		errs = append(errs, errors.New("world dimensions must be positive"))
	}
	if err := c.Snake.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("snake: %w", err))
	}
	if c.Pellets.GridCellSize <= 0 {
		errs = append(errs, errors.New("pellets.grid_cell_size must be positive"))
	}
	return errors.Join(errs...)
}

// Validate reports snake parameters the core cannot run with.
func (s *SnakeConfig) Validate() error {
	var errs []error
	if s.InitialLength < 1 {
		errs = append(errs, errors.New("initial_length must be at least 1"))
	}
	if s.Spacing.BaseGap <= 0 {
		errs = append(errs, errors.New("spacing.base_gap must be positive"))
	}
	if s.Spacing.SecondThreshold < s.Spacing.FirstThreshold {
		errs = append(errs, errors.New("spacing thresholds out of order"))
	}
	if s.Steering.SecondThreshold < s.Steering.FirstThreshold {
		errs = append(errs, errors.New("steering thresholds out of order"))
	}
	if s.Movement.SpeedMinLength <= s.Movement.SpeedMaxLength {
		errs = append(errs, errors.New("movement.speed_min_length must exceed speed_max_length"))
	}
	if s.Scale.MaxScaleLength <= s.InitialLength {
		errs = append(errs, errors.New("scale.max_scale_length must exceed initial_length"))
	}
	if s.Trail.MaxSamples < 2 {
		errs = append(errs, errors.New("trail.max_samples must be at least 2"))
	}
	if s.Trail.MinSampleSpacing <= 0 {
		errs = append(errs, errors.New("trail.min_sample_spacing must be positive"))
	}
	if s.Boost.MinLength < 1 {
		errs = append(errs, errors.New("boost.min_length must be at least 1"))
	}
	return errors.Join(errs...)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
