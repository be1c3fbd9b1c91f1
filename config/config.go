// Package config provides configuration loading and access for the particle field.
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

// Config holds all configuration parameters.
type Config struct {
	Screen    ScreenConfig         `yaml:"screen"`
	Field     FieldConfig          `yaml:"field"`
	Telemetry TelemetryConfig      `yaml:"telemetry"`
	Variants  map[string]yaml.Node `yaml:"variants"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	TargetFPS int    `yaml:"target_fps"`
	Title     string `yaml:"title"`
}

// FieldConfig is the complete tuning surface of one particle field.
// Every palette and timing variant of the site is a different FieldConfig.
type FieldConfig struct {
	Ambient   AmbientConfig   `yaml:"ambient"`
	Repulsion RepulsionConfig `yaml:"repulsion"`
	Burst     BurstConfig     `yaml:"burst"`
	Ripple    RippleConfig    `yaml:"ripple"`
	Palette   PaletteConfig   `yaml:"palette"`
	Cursor    CursorConfig    `yaml:"cursor"`
}

// AmbientConfig holds the drifting mote population parameters.
type AmbientConfig struct {
	Count          int     `yaml:"count"`
	VelocitySpread float64 `yaml:"velocity_spread"` // vx, vy = (rand-0.5) * spread
	RadiusMin      float64 `yaml:"radius_min"`
	RadiusMax      float64 `yaml:"radius_max"`
	AlphaMin       float64 `yaml:"alpha_min"`
	AlphaMax       float64 `yaml:"alpha_max"`
	Damping        float64 `yaml:"damping"` // velocity multiplier per frame
}

// RepulsionConfig holds pointer repulsion parameters for ambient motes.
type RepulsionConfig struct {
	ThresholdSq float64 `yaml:"threshold_sq"` // px², repulsion applies when d² is below this
	Radius      float64 `yaml:"radius"`       // falloff radius, force = (radius-d)/radius * strength
	Strength    float64 `yaml:"strength"`
}

// BurstConfig holds click burst parameters.
type BurstConfig struct {
	Count       int     `yaml:"count"`
	SpeedMin    float64 `yaml:"speed_min"`
	SpeedMax    float64 `yaml:"speed_max"`
	RadiusMin   float64 `yaml:"radius_min"`
	RadiusMax   float64 `yaml:"radius_max"`
	Alpha       float64 `yaml:"alpha"`
	DecayRate   float64 `yaml:"decay_rate"` // life lost per frame
	Damping     float64 `yaml:"damping"`
	Epsilon     float64 `yaml:"epsilon"`      // removed once life <= epsilon
	AngleJitter float64 `yaml:"angle_jitter"` // radians around the evenly spaced spoke
	// MaxAlive caps live burst particles (0 = unlimited). A nonzero cap
	// overrides the guarantee that each click adds exactly Count particles.
	MaxAlive    int     `yaml:"max_alive"`
}

// RippleConfig holds click ripple parameters.
type RippleConfig struct {
	PerClick     int     `yaml:"per_click"`
	InitialAlpha float64 `yaml:"initial_alpha"`
	Growth       float64 `yaml:"growth"` // px per frame
	Decay        float64 `yaml:"decay"`  // alpha multiplier per frame
	Epsilon      float64 `yaml:"epsilon"`
	MaxRadiusMin float64 `yaml:"max_radius_min"`
	MaxRadiusMax float64 `yaml:"max_radius_max"`
	CapRadius    bool    `yaml:"cap_radius"` // stop growth at the drawn max radius; off by default
	LineWidth    float64 `yaml:"line_width"`
}

// CursorConfig holds the custom cursor follower parameters.
type CursorConfig struct {
	Enabled    bool    `yaml:"enabled"`
	Follow     float64 `yaml:"follow"` // ring lerp factor per frame
	DotRadius  float64 `yaml:"dot_radius"`
	RingRadius float64 `yaml:"ring_radius"`
	RingAlpha  float64 `yaml:"ring_alpha"`
	RingWidth  float64 `yaml:"ring_width"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"` // seconds per stats window
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	DT32      float32 // seconds per frame at the target FPS
	ScreenW32 float32
	ScreenH32 float32
	Variant   string // name of the applied variant, empty for the defaults
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

// Default returns the embedded defaults.
func Default() (*Config, error) {
	return Load("")
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
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.computeDerived(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyVariant overlays the named variant onto the field configuration.
// An empty name is a no-op.
func (c *Config) ApplyVariant(name string) error {
	if name == "" {
		return nil
	}
	node, ok := c.Variants[name]
	if !ok {
		return fmt.Errorf("unknown variant %q (have %v)", name, c.VariantNames())
	}
	if err := node.Decode(&c.Field); err != nil {
		return fmt.Errorf("decoding variant %q: %w", name, err)
	}
	if err := c.computeDerived(); err != nil {
		return err
	}
	if err := c.Validate(); err != nil {
		return fmt.Errorf("variant %q: %w", name, err)
	}
	c.Derived.Variant = name
	return nil
}

// VariantNames returns the configured variant names in sorted order.
func (c *Config) VariantNames() []string {
	names := make([]string, 0, len(c.Variants))
	for name := range c.Variants {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() error {
	if c.Screen.TargetFPS <= 0 {
		c.Screen.TargetFPS = 60
	}
	c.Derived.DT32 = 1 / float32(c.Screen.TargetFPS)
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)

	return c.Field.Palette.resolve()
}

// Validate reports tunings the simulation cannot honour.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	if c.Screen.Width <= 0 || c.Screen.Height <= 0 {
		errs = append(errs, fmt.Errorf("screen size %dx%d must be positive", c.Screen.Width, c.Screen.Height))
	}

	f := &c.Field
	check(f.Ambient.Count >= 0, "ambient.count must be >= 0, got %d", f.Ambient.Count)
	check(f.Ambient.RadiusMin <= f.Ambient.RadiusMax, "ambient radius band inverted")
	check(f.Ambient.AlphaMin <= f.Ambient.AlphaMax, "ambient alpha band inverted")
	check(f.Ambient.AlphaMin > 0 && f.Ambient.AlphaMax <= 1, "ambient alpha band must lie in (0,1], got [%v,%v]", f.Ambient.AlphaMin, f.Ambient.AlphaMax)
	check(f.Ambient.Damping > 0 && f.Ambient.Damping <= 1, "ambient.damping must be in (0,1], got %v", f.Ambient.Damping)

	check(f.Repulsion.Radius > 0, "repulsion.radius must be > 0, got %v", f.Repulsion.Radius)

	check(f.Burst.Count >= 0, "burst.count must be >= 0, got %d", f.Burst.Count)
	check(f.Burst.SpeedMin <= f.Burst.SpeedMax, "burst speed band inverted")
	check(f.Burst.RadiusMin <= f.Burst.RadiusMax, "burst radius band inverted")
	check(f.Burst.Alpha > 0 && f.Burst.Alpha <= 1, "burst.alpha must be in (0,1], got %v", f.Burst.Alpha)
	check(f.Burst.DecayRate > 0, "burst.decay_rate must be > 0, got %v", f.Burst.DecayRate)
	check(f.Burst.Damping > 0 && f.Burst.Damping < 1, "burst.damping must be in (0,1), got %v", f.Burst.Damping)
	check(f.Burst.Epsilon > 0, "burst.epsilon must be > 0, got %v", f.Burst.Epsilon)
	check(f.Burst.MaxAlive >= 0, "burst.max_alive must be >= 0, got %d", f.Burst.MaxAlive)

	check(f.Ripple.PerClick >= 0, "ripple.per_click must be >= 0, got %d", f.Ripple.PerClick)
	check(f.Ripple.InitialAlpha > 0 && f.Ripple.InitialAlpha <= 1, "ripple.initial_alpha must be in (0,1], got %v", f.Ripple.InitialAlpha)
	check(f.Ripple.Growth >= 0, "ripple.growth must be >= 0, got %v", f.Ripple.Growth)
	check(f.Ripple.Decay > 0 && f.Ripple.Decay < 1, "ripple.decay must be in (0,1), got %v", f.Ripple.Decay)
	check(f.Ripple.Epsilon > 0, "ripple.epsilon must be > 0, got %v", f.Ripple.Epsilon)
	check(f.Ripple.MaxRadiusMin <= f.Ripple.MaxRadiusMax, "ripple max radius band inverted")

	check(f.Cursor.RingAlpha >= 0 && f.Cursor.RingAlpha <= 1, "cursor.ring_alpha must be in [0,1], got %v", f.Cursor.RingAlpha)
	check(f.Cursor.Follow > 0 && f.Cursor.Follow <= 1, "cursor.follow must be in (0,1], got %v", f.Cursor.Follow)

	check(c.Telemetry.StatsWindow > 0, "telemetry.stats_window must be > 0, got %v", c.Telemetry.StatsWindow)

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
