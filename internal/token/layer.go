package token

import (
	"context"
	"log/slog"
	"slices"

	"github.com/Garsondee/token-canvas/internal/grid"
)

// Settings are the world settings tokens consult.
type Settings struct {
	TokenVision      bool // token-based vision is enabled for the scene
	RulesBasedVision bool // actor senses (low-light, darkvision) apply
	PartyVision      bool // player-owned tokens share vision with every player
}

// User is the person at this client.
type User struct {
	ID   string
	IsGM bool
}

// EffectPanel lists the effects on the controlled tokens.
type EffectPanel interface {
	Refresh()
}

// Lighting adjusts the scene's light level to what a token perceives.
// A nil token restores the unmodified level.
type Lighting interface {
	SetPerceivedLightLevel(t *Token)
}

type nopPanel struct{}

func (nopPanel) Refresh() {}

type nopLighting struct{}

func (nopLighting) SetPerceivedLightLevel(*Token) {}

// Layer holds the tokens of the active scene.
type Layer struct {
	host     Host
	grid     grid.Metrics
	settings Settings
	user     User
	fallback string
	panel    EffectPanel
	lighting Lighting
	ready    func() bool
	logger   *slog.Logger
	events   *Events

	tokens     []*Token
	controlled []*Token
}

// LayerOption configures a Layer.
type LayerOption func(*Layer)

func WithSettings(s Settings) LayerOption { return func(l *Layer) { l.settings = s } }
func WithUser(u User) LayerOption { return func(l *Layer) { l.user = u } }
func WithLogger(lg *slog.Logger) LayerOption {
	return func(l *Layer) { l.logger = lg }
}

// WithFallbackImage sets the image used when a token image fails to load.
func WithFallbackImage(src string) LayerOption { return func(l *Layer) { l.fallback = src } }

// WithEffectPanel sets the panel refreshed on control changes.
func WithEffectPanel(p EffectPanel) LayerOption { return func(l *Layer) { l.panel = p } }

// WithLighting sets the collaborator told about the perceiving token.
func WithLighting(li Lighting) LayerOption { return func(l *Layer) { l.lighting = li } }

// WithReady sets the check for whether the system has finished starting.
func WithReady(ready func() bool) LayerOption { return func(l *Layer) { l.ready = ready } }

// NewLayer creates an empty token layer drawn through host.
func NewLayer(host Host, m grid.Metrics, opts ...LayerOption) *Layer {
	l := &Layer{
		host:     host,
		grid:     m,
		panel:    nopPanel{},
		lighting: nopLighting{},
		ready:    func() bool { return true },
		logger:   slog.Default(),
		events:   &Events{},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Grid returns the current grid metrics.
func (l *Layer) Grid() grid.Metrics { return l.grid }

// SetGrid replaces the grid metrics, e.g. when the active scene changes.
func (l *Layer) SetGrid(m grid.Metrics) { l.grid = m }

func (l *Layer) Settings() Settings { return l.settings }
func (l *Layer) User() User { return l.user }
func (l *Layer) Events() *Events { return l.events }

func (l *Layer) cellSize() float64 {
	if l.grid.Dimensions == nil {
		return 0
	}
	return l.grid.Dimensions.Size
}

// Add places t on the layer.
func (l *Layer) Add(t *Token) {
	if !slices.Contains(l.tokens, t) {
		l.tokens = append(l.tokens, t)
	}
}

// Remove releases and destroys t. Pending image loads for it become no-ops.
func (l *Layer) Remove(t *Token) {
	if t.controlled {
		t.Release()
	}
	l.tokens = slices.DeleteFunc(l.tokens, func(o *Token) bool { return o == t })
	t.destroy()
}

// Tokens returns the tokens in draw order.
func (l *Layer) Tokens() []*Token { return l.tokens }

// Get finds a token by id.
func (l *Layer) Get(id string) *Token {
	for _, t := range l.tokens {
		if t.doc.ID == id {
			return t
		}
	}
	return nil
}

// At returns the topmost token under the scene point, or nil.
func (l *Layer) At(p grid.Point) *Token {
	for i := len(l.tokens) - 1; i >= 0; i-- {
		if l.tokens[i].Contains(p) {
			return l.tokens[i]
		}
	}
	return nil
}

// Controlled returns the tokens the user controls.
func (l *Layer) Controlled() []*Token { return l.controlled }

// ReleaseAll releases every controlled token.
func (l *Layer) ReleaseAll() {
	for _, t := range slices.Clone(l.controlled) {
		t.Release()
	}
}

// HasLowLightVision reports whether any controlled token sees in dim light.
func (l *Layer) HasLowLightVision() bool {
	return slices.ContainsFunc(l.controlled, (*Token).HasLowLightVision)
}

// HasDarkvision reports whether any controlled token has darkvision.
func (l *Layer) HasDarkvision() bool {
	return slices.ContainsFunc(l.controlled, (*Token).HasDarkvision)
}

// loadTexture loads src, falling back to the default image on failure. It
// returns the identifier actually loaded and a nil texture if nothing could be.
func (l *Layer) loadTexture(ctx context.Context, src string) (string, Texture) {
	tex, err := l.host.LoadTexture(ctx, src)
	if err == nil {
		return src, tex
	}
	l.logger.Debug("token image failed to load", "src", src, "fallback", l.fallback, "error", err)
	if l.fallback == "" || l.fallback == src || ctx.Err() != nil {
		return src, nil
	}
	tex, err = l.host.LoadTexture(ctx, l.fallback)
	if err != nil {
		l.logger.Warn("fallback token image failed to load", "src", l.fallback, "error", err)
		return src, nil
	}
	return l.fallback, tex
}

func (t *Token) destroy() {
	if t.destroyed {
		return
	}
	t.destroyed = true
	if icon := t.visual.Icon; icon != nil {
		t.layer.host.Detach(t, icon)
		t.visual.Icon = nil
	}
}
