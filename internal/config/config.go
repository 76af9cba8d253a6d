// Package config loads the tabletop scene from a YAML file.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/Garsondee/token-canvas/internal/grid"
	"github.com/Garsondee/token-canvas/internal/token"
)

// Environment variables that override the file.
const (
	EnvLogLevel = "TABLETOP_LOG_LEVEL"
	EnvUser     = "TABLETOP_USER"
	EnvGM       = "TABLETOP_GM"
	EnvAssets   = "TABLETOP_ASSETS"
)

// Config is the top-level tabletop configuration.
type Config struct {
	LogLevel          string         `yaml:"log_level"`
	Assets            string         `yaml:"assets"` // directory token images are resolved against
	DefaultTokenImage string         `yaml:"default_token_image"`
	User              UserConfig     `yaml:"user"`
	Settings          SettingsConfig `yaml:"settings"`
	Grid              GridConfig     `yaml:"grid"`
	Scene             SceneConfig    `yaml:"scene"`
	WorldClock        ClockConfig    `yaml:"world_clock"`
	Tokens            []TokenConfig  `yaml:"tokens"`
}

type UserConfig struct {
	ID   string `yaml:"id"`
	IsGM bool   `yaml:"gm"`
}

type SettingsConfig struct {
	TokenVision      bool `yaml:"token_vision"`
	RulesBasedVision bool `yaml:"rules_based_vision"`
	PartyVision      bool `yaml:"party_vision"`
}

// GridConfig describes the scene grid. Size is pixels per cell, Distance the
// grid units one cell represents.
type GridConfig struct {
	Type      string  `yaml:"type"`      // square | gridless | hex-rows | hex-columns
	Diagonals string  `yaml:"diagonals"` // alternating | equidistant | euclidean
	Size      float64 `yaml:"size"`
	Distance  float64 `yaml:"distance"`
	Units     string  `yaml:"units"`
}

// SceneConfig is the scene canvas, in grid cells.
type SceneConfig struct {
	Name     string  `yaml:"name"`
	Width    int     `yaml:"width"`
	Height   int     `yaml:"height"`
	Darkness float64 `yaml:"darkness"` // 0 lit .. 1 dark
}

// ClockConfig drives the world clock. Rate is world seconds per real second.
type ClockConfig struct {
	Start        string  `yaml:"start"` // HH:MM
	Rate         float64 `yaml:"rate"`
	SyncDarkness bool    `yaml:"sync_darkness"`
}

// TokenConfig is one token placed on the scene. Position and size are in
// grid cells.
type TokenConfig struct {
	ID      string       `yaml:"id"`
	Name    string       `yaml:"name"`
	X       float64      `yaml:"x"`
	Y       float64      `yaml:"y"`
	Width   float64      `yaml:"width"`
	Height  float64      `yaml:"height"`
	Image   string       `yaml:"image"`
	Images  []string     `yaml:"images"` // alternates the viewer can cycle through
	Sight   *bool        `yaml:"sight"`
	Hidden  bool         `yaml:"hidden"`
	Light   LightConfig  `yaml:"light"`
	Effects []string     `yaml:"effects"`
	Actor   *ActorConfig `yaml:"actor"`
}

type LightConfig struct {
	Dim        float64 `yaml:"dim"`
	Bright     float64 `yaml:"bright"`
	Luminosity float64 `yaml:"luminosity"`
}

type ActorConfig struct {
	Kind           string          `yaml:"kind"`
	Owners         []string        `yaml:"owners"`
	LowLightVision bool            `yaml:"low_light_vision"`
	Darkvision     bool            `yaml:"darkvision"`
	HP             *HPConfig       `yaml:"hp"`
	Overrides      OverridesConfig `yaml:"overrides"`
}

type HPConfig struct {
	Value int `yaml:"value"`
	Max   int `yaml:"max"`
}

type OverridesConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Image  string  `yaml:"image"`
}

// Default returns the configuration used for fields the file leaves empty.
func Default() *Config {
	return &Config{
		LogLevel:          "info",
		Assets:            "assets",
		DefaultTokenImage: "icons/mystery-man.png",
		User:              UserConfig{ID: "gm", IsGM: true},
		Settings:          SettingsConfig{TokenVision: true, RulesBasedVision: true},
		Grid: GridConfig{
			Type:      "square",
			Diagonals: "alternating",
			Size:      100,
			Distance:  5,
			Units:     "ft",
		},
		Scene:      SceneConfig{Name: "Untitled", Width: 30, Height: 20},
		WorldClock: ClockConfig{Start: "12:00", Rate: 60},
	}
}

// Load reads a YAML configuration file, applies environment overrides and
// validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes a configuration on top of Default.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, cfg.Validate()
}

// ApplyEnv overrides fields from the TABLETOP_* environment variables.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv(EnvUser); v != "" {
		c.User.ID = v
	}
	if v := os.Getenv(EnvGM); v != "" {
		gm, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvGM, err)
		}
		c.User.IsGM = gm
	}
	if v := os.Getenv(EnvAssets); v != "" {
		c.Assets = v
	}
	return nil
}

func (c *Config) applyDefaults() {
	for i := range c.Tokens {
		tc := &c.Tokens[i]
		if tc.ID == "" {
			tc.ID = uuid.NewString()
		}
		if tc.Name == "" {
			tc.Name = tc.ID
		}
		if tc.Width <= 0 {
			tc.Width = 1
		}
		if tc.Height <= 0 {
			tc.Height = 1
		}
		if tc.Image == "" {
			tc.Image = c.DefaultTokenImage
		}
	}
}

// Validate checks that the configuration describes a usable scene.
func (c *Config) Validate() error {
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	if _, ok := grid.ParseType(c.Grid.Type); !ok {
		return fmt.Errorf("grid.type %q is not one of square, gridless, hex-rows, hex-columns", c.Grid.Type)
	}
	if _, ok := grid.ParseDiagonals(c.Grid.Diagonals); !ok {
		return fmt.Errorf("grid.diagonals %q is not one of alternating, equidistant, euclidean", c.Grid.Diagonals)
	}
	if c.Grid.Size <= 0 {
		return fmt.Errorf("grid.size must be > 0")
	}
	if c.Scene.Width <= 0 || c.Scene.Height <= 0 {
		return fmt.Errorf("scene size must be > 0, got %dx%d", c.Scene.Width, c.Scene.Height)
	}
	if c.Scene.Darkness < 0 || c.Scene.Darkness > 1 {
		return fmt.Errorf("scene.darkness must be within [0, 1], got %v", c.Scene.Darkness)
	}
	if _, err := c.WorldClock.StartSeconds(); err != nil {
		return err
	}
	seen := make(map[string]bool, len(c.Tokens))
	for i, tc := range c.Tokens {
		if seen[tc.ID] {
			return fmt.Errorf("tokens[%d]: duplicate id %q", i, tc.ID)
		}
		seen[tc.ID] = true
		if tc.Actor != nil && tc.Actor.HP != nil && tc.Actor.HP.Value > tc.Actor.HP.Max && tc.Actor.HP.Max > 0 {
			return fmt.Errorf("tokens[%d] %s: hp %d exceeds max %d", i, tc.Name, tc.Actor.HP.Value, tc.Actor.HP.Max)
		}
	}
	return nil
}

// SlogLevel maps LogLevel to a slog level.
func (c *Config) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(c.LogLevel))); err != nil {
		return 0, fmt.Errorf("log_level %q: %w", c.LogLevel, err)
	}
	return lvl, nil
}

// Metrics returns the grid metrics of the scene.
func (c *Config) Metrics() grid.Metrics {
	typ, _ := grid.ParseType(c.Grid.Type)
	diag, _ := grid.ParseDiagonals(c.Grid.Diagonals)
	return grid.Metrics{
		Type:      typ,
		Diagonals: diag,
		Dimensions: &grid.Dimensions{
			Width:    float64(c.Scene.Width) * c.Grid.Size,
			Height:   float64(c.Scene.Height) * c.Grid.Size,
			Size:     c.Grid.Size,
			Distance: c.Grid.Distance,
			Units:    c.Grid.Units,
		},
	}
}

// TokenSettings converts the settings block.
func (c *Config) TokenSettings() token.Settings {
	return token.Settings{
		TokenVision:      c.Settings.TokenVision,
		RulesBasedVision: c.Settings.RulesBasedVision,
		PartyVision:      c.Settings.PartyVision,
	}
}

// TokenUser converts the user block.
func (c *Config) TokenUser() token.User {
	return token.User{ID: c.User.ID, IsGM: c.User.IsGM}
}

// StartSeconds parses Start as seconds after midnight.
func (cc ClockConfig) StartSeconds() (float64, error) {
	var h, m int
	if _, err := fmt.Sscanf(cc.Start, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("world_clock.start %q: want HH:MM", cc.Start)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("world_clock.start %q out of range", cc.Start)
	}
	return float64(h*3600 + m*60), nil
}

// Document builds the token record, converting cells to scene pixels.
func (tc TokenConfig) Document(cellSize float64) token.Document {
	sight := true
	if tc.Sight != nil {
		sight = *tc.Sight
	}
	return token.Document{
		ID:      tc.ID,
		Name:    tc.Name,
		X:       tc.X * cellSize,
		Y:       tc.Y * cellSize,
		Source:  token.DeclaredState{Width: tc.Width, Height: tc.Height, Image: tc.Image},
		Light:   token.Light{Dim: tc.Light.Dim, Bright: tc.Light.Bright, Luminosity: tc.Light.Luminosity},
		Sight:   sight,
		Hidden:  tc.Hidden,
		Effects: append([]string(nil), tc.Effects...),
	}
}

// ToActor builds the token's actor, or nil for tokens without one.
func (tc TokenConfig) ToActor() *token.Actor {
	ac := tc.Actor
	if ac == nil {
		return nil
	}
	a := &token.Actor{
		Kind:   token.Kind(ac.Kind),
		Owners: append([]string(nil), ac.Owners...),
		Senses: token.Senses{LowLightVision: ac.LowLightVision, Darkvision: ac.Darkvision},
		Overrides: token.Overrides{
			Width:  ac.Overrides.Width,
			Height: ac.Overrides.Height,
			Image:  ac.Overrides.Image,
		},
	}
	if ac.HP != nil {
		a.HitPoints = &token.HitPoints{Value: ac.HP.Value, Max: ac.HP.Max}
	}
	return a
}

// ImageCycle returns the declared image followed by the alternates.
func (tc TokenConfig) ImageCycle() []string {
	out := []string{tc.Image}
	for _, img := range tc.Images {
		if img != tc.Image {
			out = append(out, img)
		}
	}
	return out
}
