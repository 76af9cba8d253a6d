package render

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand"

	"github.com/Garsondee/token-canvas/internal/token"
)

// effectsPerColumn is how many status icons stack along the token's left
// edge before a new column starts.
const effectsPerColumn = 5

// HUD is the overlay drawn under a token: nameplate and hit-point bar.
type HUD struct {
	Name string
	HP   *token.HitPoints // nil hides the bar
}

// BarFraction is the filled share of the hit-point bar in [0,1].
func (h HUD) BarFraction() float64 {
	if h.HP == nil || h.HP.Max <= 0 {
		return 0
	}
	return math.Max(0, math.Min(1, float64(h.HP.Value)/float64(h.HP.Max)))
}

// EffectSlot is a laid out status effect icon, relative to the token origin.
type EffectSlot struct {
	Src        string
	X, Y, Size float64
}

// Canvas is the ebiten side of the token layer. Its Host methods are called
// on the UI thread except LoadTexture and Post.
type Canvas struct {
	loader *Loader
	queue  *Queue
	logger *slog.Logger
	events *EventLog
	rng    *rand.Rand

	sprites map[*token.Token]*token.Icon
	huds    map[*token.Token]HUD
	effects map[*token.Token][]EffectSlot
	texts   []*floatingText
	tick    int
}

// NewCanvas creates a canvas loading textures through loader.
func NewCanvas(loader *Loader, logger *slog.Logger) *Canvas {
	if logger == nil {
		logger = slog.Default()
	}
	return &Canvas{
		loader:  loader,
		queue:   &Queue{},
		logger:  logger,
		events:  NewEventLog(),
		rng:     rand.New(rand.NewSource(1)),
		sprites: make(map[*token.Token]*token.Icon),
		huds:    make(map[*token.Token]HUD),
		effects: make(map[*token.Token][]EffectSlot),
	}
}

func (c *Canvas) Queue() *Queue { return c.queue }
func (c *Canvas) Loader() *Loader { return c.loader }
func (c *Canvas) EventLog() *EventLog { return c.events }

// Update runs posted work and ages floating text. Call once per tick.
func (c *Canvas) Update() {
	c.tick++
	c.queue.Drain()
	c.ageTexts()
}

// LoadTexture implements token.Host.
func (c *Canvas) LoadTexture(ctx context.Context, src string) (token.Texture, error) {
	return c.loader.Load(ctx, src)
}

// Post implements token.Host.
func (c *Canvas) Post(fn func()) { c.queue.Post(fn) }

// Attach implements token.Host.
func (c *Canvas) Attach(t *token.Token, icon *token.Icon) {
	c.sprites[t] = icon
	c.events.Add(c.tick, t.Name(), fmt.Sprintf("icon %s attached", icon.Src))
}

// Detach implements token.Host. Only the sprite currently shown for t is
// removed; the shared texture stays in the loader cache.
func (c *Canvas) Detach(t *token.Token, icon *token.Icon) {
	if c.sprites[t] != icon {
		return
	}
	delete(c.sprites, t)
	if t.Destroyed() {
		delete(c.huds, t)
		delete(c.effects, t)
	}
}

// Sprite returns the icon shown for t.
func (c *Canvas) Sprite(t *token.Token) (*token.Icon, bool) {
	icon, ok := c.sprites[t]
	return icon, ok
}

// DrawHUD implements token.Host.
func (c *Canvas) DrawHUD(t *token.Token) {
	hud := HUD{Name: t.Name()}
	if a := t.Actor(); a != nil && a.HitPoints != nil {
		hp := *a.HitPoints
		hud.HP = &hp
	}
	c.huds[t] = hud
}

// HUD returns the overlay built for t.
func (c *Canvas) HUD(t *token.Token) (HUD, bool) {
	h, ok := c.huds[t]
	return h, ok
}

// Refresh implements token.Host: the icon is fitted inside the token,
// keeping the texture's aspect ratio, and centred.
func (c *Canvas) Refresh(t *token.Token) {
	icon := t.Visual().Icon
	if icon == nil || icon.Texture == nil {
		return
	}
	fitIcon(icon, t.W(), t.H())
}

func fitIcon(icon *token.Icon, w, h float64) {
	b := icon.Texture.Bounds()
	tw, th := float64(b.Dx()), float64(b.Dy())
	if tw == 0 || th == 0 || w <= 0 || h <= 0 {
		return
	}
	aspect := tw / th
	if w/h > aspect {
		icon.Height = h
		icon.Width = h * aspect
	} else {
		icon.Width = w
		icon.Height = w / aspect
	}
	icon.ScaleX = icon.Width / tw
	icon.ScaleY = icon.Height / th
}

// DrawEffects implements token.Host. Icons are a fifth of the token width,
// rounded to an even pixel count, and stacked in columns along the left edge.
func (c *Canvas) DrawEffects(t *token.Token) {
	srcs := t.Effects()
	if len(srcs) == 0 {
		delete(c.effects, t)
		return
	}
	size := math.Round(t.W()/2/effectsPerColumn) * 2
	slots := make([]EffectSlot, len(srcs))
	for i, src := range srcs {
		slots[i] = EffectSlot{
			Src:  src,
			X:    float64(i/effectsPerColumn) * size,
			Y:    float64(i%effectsPerColumn) * size,
			Size: size,
		}
		c.requestTexture(src)
	}
	c.effects[t] = slots
}

// Effects returns the effect layout built for t.
func (c *Canvas) Effects(t *token.Token) []EffectSlot { return c.effects[t] }

// requestTexture warms the loader cache for an overlay image.
func (c *Canvas) requestTexture(src string) {
	if _, ok := c.loader.Cached(src); ok {
		return
	}
	go func() {
		if _, err := c.loader.Load(context.Background(), src); err != nil {
			c.logger.Debug("effect icon failed to load", "src", src, "error", err)
		}
	}()
}

// CreateScrollingText implements token.Host.
func (c *Canvas) CreateScrollingText(t *token.Token, st token.ScrollingText) {
	jx := (c.rng.Float64()*2 - 1) * st.Jitter * t.W()
	jy := (c.rng.Float64()*2 - 1) * st.Jitter * t.H()
	c.texts = append(c.texts, &floatingText{tok: t, spec: st, dx: jx, dy: jy})
	c.events.Add(c.tick, t.Name(), "hp "+st.Text)
}

var _ token.Host = (*Canvas)(nil)
