// Package system runs the tabletop lifecycle: init builds the token layer and
// settings, setup places the scene's tokens and ready opens the table.
package system

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Garsondee/token-canvas/internal/config"
	"github.com/Garsondee/token-canvas/internal/token"
)

// Stage is how far the lifecycle has progressed.
type Stage uint8

const (
	StageNew Stage = iota
	StageInitialized
	StageSetUp
	StageReady
)

func (s Stage) String() string {
	switch s {
	case StageInitialized:
		return "initialized"
	case StageSetUp:
		return "set up"
	case StageReady:
		return "ready"
	}
	return "new"
}

// ErrStage is returned when a lifecycle step runs out of order.
var ErrStage = errors.New("lifecycle step out of order")

// System owns the token layer and the scene-wide collaborators tokens use.
type System struct {
	cfg    *config.Config
	logger *slog.Logger
	stage  Stage

	layer  *token.Layer
	panel  *EffectPanel
	clock  *WorldClock
	images map[string][]string

	perceiver *token.Token
	drawing   []token.Action
}

// Init builds the token layer, the effect panel and the settings.
func Init(cfg *config.Config, host token.Host, logger *slog.Logger) (*System, error) {
	if cfg == nil {
		return nil, fmt.Errorf("init: nil config")
	}
	if logger == nil {
		logger = slog.Default()
	}
	s := &System{
		cfg:    cfg,
		logger: logger.With("component", "system"),
		images: make(map[string][]string),
	}
	s.panel = newEffectPanel(s)
	s.layer = token.NewLayer(host, cfg.Metrics(),
		token.WithSettings(cfg.TokenSettings()),
		token.WithUser(cfg.TokenUser()),
		token.WithLogger(logger.With("component", "token")),
		token.WithFallbackImage(cfg.DefaultTokenImage),
		token.WithEffectPanel(s.panel),
		token.WithLighting(s),
		token.WithReady(s.IsReady),
	)
	s.stage = StageInitialized
	s.logger.Info("initialized", "scene", cfg.Scene.Name, "grid", cfg.Grid.Type, "user", cfg.User.ID, "gm", cfg.User.IsGM)
	return s, nil
}

// Setup builds the world clock and places and draws the configured tokens.
// Drawing continues in the background; see Drawn.
func (s *System) Setup(ctx context.Context) error {
	if s.stage != StageInitialized {
		return fmt.Errorf("setup while %s: %w", s.stage, ErrStage)
	}
	clock, err := NewWorldClock(s.cfg.WorldClock)
	if err != nil {
		return fmt.Errorf("setup: %w", err)
	}
	s.clock = clock

	cell := s.cfg.Grid.Size
	for _, tc := range s.cfg.Tokens {
		t := s.layer.NewToken(tc.Document(cell), tc.ToActor())
		s.layer.Add(t)
		s.images[tc.ID] = tc.ImageCycle()
		s.drawing = append(s.drawing, t.Draw(ctx))
	}
	s.stage = StageSetUp
	s.logger.Info("set up", "tokens", len(s.cfg.Tokens), "clock", clock.String())
	return nil
}

// Ready marks the table open. Control changes refresh the effect panel from
// here on.
func (s *System) Ready() error {
	if s.stage != StageSetUp {
		return fmt.Errorf("ready while %s: %w", s.stage, ErrStage)
	}
	s.stage = StageReady
	s.panel.Refresh()
	s.logger.Info("ready")
	return nil
}

// Drawn blocks until every token placed by Setup has been drawn.
func (s *System) Drawn(ctx context.Context) error {
	for _, a := range s.drawing {
		select {
		case <-a.Done():
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

func (s *System) Stage() Stage { return s.stage }
func (s *System) IsReady() bool { return s.stage == StageReady }
func (s *System) Layer() *token.Layer { return s.layer }
func (s *System) Panel() *EffectPanel { return s.panel }
func (s *System) Clock() *WorldClock { return s.clock }
func (s *System) Config() *config.Config { return s.cfg }
func (s *System) Perceiver() *token.Token { return s.perceiver }
func (s *System) Images(id string) []string { return s.images[id] }

// SetPerceivedLightLevel makes t the token whose senses the scene is lit
// for. A nil token restores the unmodified level.
func (s *System) SetPerceivedLightLevel(t *token.Token) {
	s.perceiver = t
	if t == nil {
		s.logger.Debug("perceived light level reset", "darkness", s.Darkness())
		return
	}
	s.logger.Debug("perceived light level set", "token", t.ID(), "darkness", s.PerceivedDarkness())
}

// Darkness is the scene darkness, following the world clock when synced.
func (s *System) Darkness() float64 {
	if s.clock != nil && s.cfg.WorldClock.SyncDarkness {
		return s.clock.Darkness()
	}
	return s.cfg.Scene.Darkness
}

// PerceivedDarkness is the darkness the perceiving token sees.
func (s *System) PerceivedDarkness() float64 {
	return token.PerceivedDarkness(s.Darkness(), s.perceiver)
}
