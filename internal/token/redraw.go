package token

import (
	"context"

	"github.com/Garsondee/token-canvas/internal/grid"
)

// Icon is the sprite that shows a token's image.
type Icon struct {
	Src     string // declared image the icon was drawn for
	Loaded  string // image actually loaded; the fallback when Src failed
	Texture Texture

	// Rendered size in scene pixels and the transform scale that produced it.
	Width, Height  float64
	ScaleX, ScaleY float64
}

func newIcon(src, loaded string, tex Texture) *Icon {
	b := tex.Bounds()
	return &Icon{
		Src:     src,
		Loaded:  loaded,
		Texture: tex,
		Width:   float64(b.Dx()),
		Height:  float64(b.Dy()),
		ScaleX:  1,
		ScaleY:  1,
	}
}

// Ready reports whether the icon has a texture and a resolved transform.
func (i *Icon) Ready() bool {
	return i != nil && i.Texture != nil && i.ScaleX != 0 && i.ScaleY != 0
}

// Aspect is the natural width/height ratio of the texture.
func (i *Icon) Aspect() float64 {
	b := i.Texture.Bounds()
	if b.Dy() == 0 {
		return 0
	}
	return float64(b.Dx()) / float64(b.Dy())
}

// VisualState is what is currently rendered for a token. It is a cache
// derived from the declared state and is only changed by Draw and Redraw.
type VisualState struct {
	Icon    *Icon
	HitArea *grid.Rect // anchored at the token origin
}

// Signals are the reasons a token's visual state is stale.
type Signals struct {
	Size  bool
	Scale bool
	Image bool
}

// Any reports whether any signal is set.
func (s Signals) Any() bool { return s.Size || s.Scale || s.Image }

// Outcome is what a redraw decided to do.
type Outcome uint8

const (
	OutcomeNone      Outcome = iota // nothing to refresh
	OutcomeRefreshed                // hit area and overlays rebuilt in place
	OutcomeSwapping                 // new texture loading; icon swapped when it resolves
)

func (o Outcome) String() string {
	switch o {
	case OutcomeRefreshed:
		return "refreshed"
	case OutcomeSwapping:
		return "swapping"
	}
	return "none"
}

var closedDone = func() chan struct{} {
	c := make(chan struct{})
	close(c)
	return c
}()

// Action reports the result of a redraw decision.
type Action struct {
	Outcome Outcome
	Signals Signals
	done    <-chan struct{}
}

// Done is closed once the rebuild has been applied on the UI thread.
// Synchronous outcomes are closed already.
func (a Action) Done() <-chan struct{} {
	if a.done == nil {
		return closedDone
	}
	return a.done
}

// Draw builds the visual state for the first time: it loads the declared
// image, attaches the icon and lays out overlays once the texture resolves.
func (t *Token) Draw(ctx context.Context) Action {
	if t.destroyed {
		return Action{}
	}
	return Action{Outcome: OutcomeSwapping, done: t.swapIcon(ctx, t.declared.Image)}
}

// Redraw refreshes the token's image and size, usually after an actor
// update or override. Only what changed is rebuilt: the texture is swapped
// only when the image changed, the hit area and overlays always.
func (t *Token) Redraw(ctx context.Context) Action {
	icon := t.visual.Icon
	if icon == nil || t.destroyed {
		return Action{}
	}

	sig := t.staleness(icon)
	if !sig.Any() || t.managesOwnSize() {
		return Action{Signals: sig}
	}

	t.layer.logger.Debug("redrawing token after size or image change",
		"token", t.doc.ID, "size", sig.Size, "scale", sig.Scale, "image", sig.Image)

	if sig.Image && icon.Ready() {
		return Action{Outcome: OutcomeSwapping, Signals: sig, done: t.swapIcon(ctx, t.declared.Image)}
	}
	t.redrawRest()
	return Action{Outcome: OutcomeRefreshed, Signals: sig}
}

// staleness compares the rendered icon against the declared state. Scales
// are compared at one decimal so layout noise does not trigger a rebuild.
func (t *Token) staleness(icon *Icon) Signals {
	w := t.W()
	var s Signals
	s.Size = t.visual.HitArea != nil && t.visual.HitArea.W != w
	if icon.Ready() && w > 0 {
		s.Scale = round1(icon.Width/w) != round1(icon.Aspect())
	}
	s.Image = icon.Src != t.declared.Image
	return s
}

// swapIcon loads src off the UI thread and posts the icon swap back to it.
// The returned channel closes once the swap has run or been dropped.
func (t *Token) swapIcon(ctx context.Context, src string) <-chan struct{} {
	done := make(chan struct{})
	l := t.layer
	go func() {
		loaded, tex := l.loadTexture(ctx, src)
		if tex == nil && ctx.Err() != nil {
			close(done)
			return
		}
		l.host.Post(func() {
			defer close(done)
			t.attachIcon(src, loaded, tex)
		})
	}()
	return done
}

// attachIcon replaces the icon with one built from tex and runs the rest of
// the redraw. A nil texture keeps the old icon.
func (t *Token) attachIcon(src, loaded string, tex Texture) {
	if t.destroyed {
		return
	}
	if tex != nil {
		if old := t.visual.Icon; old != nil {
			t.layer.host.Detach(t, old)
		}
		t.visual.Icon = newIcon(src, loaded, tex)
		t.layer.host.Attach(t, t.visual.Icon)
	}
	t.redrawRest()
}

func (t *Token) redrawRest() {
	h := t.layer.host
	h.DrawHUD(t)
	t.visual.HitArea = &grid.Rect{W: t.W(), H: t.H()}
	if t.visual.Icon.Ready() {
		h.Refresh(t)
		h.DrawEffects(t)
	}
}
