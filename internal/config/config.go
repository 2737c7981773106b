// Package config holds the tunable game settings: screen dimensions,
// lives, and the per-level population, speed, and laser parameters.
// Settings can be overridden from a TOML file.
package config

import (
	"fmt"
	"math/rand"
	"os"

	"github.com/BurntSushi/toml"
)

// Range selects integers randrange-style from a 1, 2, or 3 element
// spec: {value}, {start, stop}, or {start, stop, step}, with stop
// excluded. Degenerate specs are normalized rather than rejected: a
// zero step becomes 1, a reversed interval has its step sign flipped,
// and an empty interval yields start. Wrong arity is a programming
// error and panics in Sample.
type Range []int

// Validate reports malformed specs. Degenerate values pass.
func (r Range) Validate() error {
	if len(r) < 1 || len(r) > 3 {
		return fmt.Errorf("range %v must have 1 to 3 elements", []int(r))
	}
	return nil
}

// Sample draws a value from the range using rng.
func (r Range) Sample(rng *rand.Rand) int {
	switch len(r) {
	case 1:
		return r[0]
	case 2:
		return sampleStep(rng, r[0], r[1], 1)
	case 3:
		return sampleStep(rng, r[0], r[1], r[2])
	}
	panic(fmt.Sprintf("config: malformed range %v", []int(r)))
}

func sampleStep(rng *rand.Rand, start, stop, step int) int {
	if step == 0 {
		step = 1
	}
	if start == stop {
		return start
	}
	if (stop > start) != (step > 0) {
		step = -step
	}
	span := stop - start
	if span < 0 {
		span = -span
	}
	inc := step
	if inc < 0 {
		inc = -inc
	}
	n := (span + inc - 1) / inc
	return start + step*rng.Intn(n)
}

// Level holds the settings for a single level.
type Level struct {
	// Cumulative score needed to clear the level.
	PointsGoal int `toml:"points_goal"`

	PlayerLaserFade int `toml:"player_laser_fade"`

	StartingAsteroids int     `toml:"starting_asteroids"`
	AsteroidSpawnRate float64 `toml:"asteroid_spawn_rate"` // spawns per second
	AsteroidSpeed     Range   `toml:"asteroid_speed"`

	StartingEnemies int     `toml:"starting_enemies"`
	EnemySpawnRate  float64 `toml:"enemy_spawn_rate"` // spawns per second
	EnemySpeed      Range   `toml:"enemy_speed"`
	EnemyLaserFade  int     `toml:"enemy_laser_fade"`
	EnemyReload     int     `toml:"enemy_reload"` // frames between shots at spawn
}

// Config holds the whole game's settings.
type Config struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
	Lives  int     `toml:"lives"`

	AsteroidSpin Range `toml:"asteroid_spin"` // degrees per frame

	Levels []Level `toml:"level"`
}

// Default returns the built-in three-level game.
func Default() *Config {
	return &Config{
		Width:        1400,
		Height:       800,
		Lives:        3,
		AsteroidSpin: Range{-5, 6, 2},
		Levels: []Level{
			{
				PointsGoal:        100,
				PlayerLaserFade:   15,
				StartingAsteroids: 10,
				AsteroidSpawnRate: 1,
				AsteroidSpeed:     Range{50, 200},
				EnemySpeed:        Range{50, 100},
				EnemyLaserFade:    255,
				EnemyReload:       10,
			},
			{
				PointsGoal:      200,
				PlayerLaserFade: 15,
				AsteroidSpeed:   Range{50, 200},
				StartingEnemies: 10,
				EnemySpawnRate:  0.5,
				EnemySpeed:      Range{30, 80},
				EnemyLaserFade:  40,
				EnemyReload:     10,
			},
			{
				PointsGoal:        300,
				PlayerLaserFade:   15,
				StartingAsteroids: 10,
				AsteroidSpawnRate: 1,
				AsteroidSpeed:     Range{100, 200},
				StartingEnemies:   5,
				EnemySpawnRate:    0.5,
				EnemySpeed:        Range{80, 130},
				EnemyLaserFade:    40,
				EnemyReload:       10,
			},
		},
	}
}

// Load reads a TOML settings file layered over the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("load config %q: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %q: %w", path, err)
	}
	return cfg, nil
}

// Validate checks structural requirements and clamps tuning values that
// merely fall outside their useful bounds.
func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("screen dimensions %gx%g must be positive", c.Width, c.Height)
	}
	if c.Lives < 1 {
		return fmt.Errorf("lives %d must be at least 1", c.Lives)
	}
	if len(c.Levels) == 0 {
		return fmt.Errorf("at least one level is required")
	}
	if err := c.AsteroidSpin.Validate(); err != nil {
		return fmt.Errorf("asteroid_spin: %w", err)
	}
	for i := range c.Levels {
		lv := &c.Levels[i]
		if err := lv.AsteroidSpeed.Validate(); err != nil {
			return fmt.Errorf("level %d asteroid_speed: %w", i+1, err)
		}
		if err := lv.EnemySpeed.Validate(); err != nil {
			return fmt.Errorf("level %d enemy_speed: %w", i+1, err)
		}
		lv.PlayerLaserFade = clampByte(lv.PlayerLaserFade)
		lv.EnemyLaserFade = clampByte(lv.EnemyLaserFade)
		if lv.EnemyReload < 0 {
			lv.EnemyReload = 0
		}
	}
	return nil
}

func clampByte(v int) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}

// GetEnv returns the value of the environment variable named by the key,
// falling back when the variable is unset.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
