package token

import (
	"math"

	"github.com/Garsondee/token-canvas/internal/grid"
)

// Kind is the category of the actor behind a token.
type Kind string

const (
	KindCharacter Kind = "character"
	KindNPC       Kind = "npc"
	KindHazard    Kind = "hazard"
	KindLoot      Kind = "loot"
	KindFamiliar  Kind = "familiar"
	KindVehicle   Kind = "vehicle" // sizes itself; never auto-redrawn
)

// Senses are the actor's vision traits.
type Senses struct {
	LowLightVision bool
	Darkvision     bool
}

// HitPoints of the actor.
type HitPoints struct {
	Value int
	Max   int
}

// Overrides are actor-driven changes to the token's declared appearance,
// e.g. from an enlarge effect. Zero fields leave the source value alone.
type Overrides struct {
	Width, Height float64
	Image         string
}

// Actor is the part of the backing character record a token reads.
type Actor struct {
	Kind      Kind
	Owners    []string // player user ids
	Senses    Senses
	HitPoints *HitPoints // nil when the actor has no hit points
	Overrides Overrides
}

// HasPlayerOwner reports whether any player owns the actor.
func (a *Actor) HasPlayerOwner() bool { return a != nil && len(a.Owners) > 0 }

// Light is the light a token emits. Radii are in grid distance units.
type Light struct {
	Dim        float64
	Bright     float64
	Luminosity float64 // negative values emit darkness
}

// DeclaredState is the authoritative appearance of a token: size in grid
// cells and the image identifier.
type DeclaredState struct {
	Width, Height float64
	Image         string
}

// Document is the persisted token record.
type Document struct {
	ID      string // empty for unsaved previews
	Name    string
	X, Y    float64 // top-left, scene pixels
	Source  DeclaredState
	Light   Light
	Sight   bool
	Hidden  bool
	Effects []string // status effect icon identifiers
}

// Token is the rendered representation of a Document on a Layer.
type Token struct {
	doc      Document
	declared DeclaredState
	actor    *Actor
	layer    *Layer
	visual   VisualState

	controlled bool
	moving     bool
	destroyed  bool
}

// NewToken creates a token bound to the layer. It is not drawn or added to
// the layer until Add and Draw are called.
func (l *Layer) NewToken(doc Document, actor *Actor) *Token {
	t := &Token{doc: doc, actor: actor, layer: l}
	t.declared = applyOverrides(doc.Source, actor)
	return t
}

func applyOverrides(src DeclaredState, a *Actor) DeclaredState {
	if a == nil {
		return src
	}
	if a.Overrides.Width > 0 {
		src.Width = a.Overrides.Width
	}
	if a.Overrides.Height > 0 {
		src.Height = a.Overrides.Height
	}
	if a.Overrides.Image != "" {
		src.Image = a.Overrides.Image
	}
	return src
}

func (t *Token) ID() string { return t.doc.ID }
func (t *Token) Name() string { return t.doc.Name }
func (t *Token) Document() Document { return t.doc }
func (t *Token) Actor() *Actor { return t.actor }
func (t *Token) Layer() *Layer { return t.layer }
func (t *Token) Declared() DeclaredState { return t.declared }
func (t *Token) Visual() VisualState { return t.visual }
func (t *Token) Effects() []string { return t.doc.Effects }

// IsControlled reports whether the user currently controls this token.
func (t *Token) IsControlled() bool { return t.controlled }

// IsMoving reports whether a movement animation is in progress.
func (t *Token) IsMoving() bool { return t.moving }

// SetMoving is called by the host when a movement animation starts or ends.
func (t *Token) SetMoving(moving bool) { t.moving = moving }

// Destroyed reports whether the token has been removed from its layer.
func (t *Token) Destroyed() bool { return t.destroyed }

// W is the token width in scene pixels.
func (t *Token) W() float64 { return t.declared.Width * t.layer.cellSize() }

// H is the token height in scene pixels.
func (t *Token) H() float64 { return t.declared.Height * t.layer.cellSize() }

// Footprint is the area the token occupies on the scene.
func (t *Token) Footprint() grid.Footprint {
	return grid.Footprint{X: t.doc.X, Y: t.doc.Y, Width: t.W(), Height: t.H()}
}

// Contains reports whether the scene point lies inside the token.
func (t *Token) Contains(p grid.Point) bool {
	f := t.Footprint()
	return p.X >= f.X && p.X < f.X+f.Width && p.Y >= f.Y && p.Y < f.Y+f.Height
}

// DistanceTo measures the grid distance to target, between the nearest
// occupied squares on square grids. NaN when no scene is active.
func (t *Token) DistanceTo(target *Token) float64 {
	return grid.Distance(t.Footprint(), target.Footprint(), t.layer.Grid())
}

// MoveTo repositions the token.
func (t *Token) MoveTo(x, y float64) {
	t.doc.X, t.doc.Y = x, y
}

// SetSource replaces the persisted appearance, as after a document update.
// Call Redraw afterwards to bring the visual state in line.
func (t *Token) SetSource(src DeclaredState) {
	t.doc.Source = src
	t.declared = applyOverrides(src, t.actor)
}

// SetActor replaces the backing actor and re-applies its overrides.
func (t *Token) SetActor(a *Actor) {
	t.actor = a
	t.declared = applyOverrides(t.doc.Source, a)
}

// SetEffects replaces the status effect icons.
func (t *Token) SetEffects(effects []string) {
	t.doc.Effects = effects
}

// Clone copies the token for a drag preview. Unsaved tokens keep their
// actor-overridden size and image; saved ones start from the source values.
func (t *Token) Clone() *Token {
	c := &Token{doc: t.doc, actor: t.actor, layer: t.layer}
	c.doc.Effects = append([]string(nil), t.doc.Effects...)
	c.declared = t.doc.Source
	if c.doc.ID == "" {
		c.declared.Width = t.declared.Width
		c.declared.Height = t.declared.Height
		c.declared.Image = t.declared.Image
	}
	return c
}

func (t *Token) actorKind() Kind {
	if t.actor == nil {
		return ""
	}
	return t.actor.Kind
}

// managesOwnSize reports whether the actor kind sizes its token itself.
func (t *Token) managesOwnSize() bool { return t.actorKind() == KindVehicle }

func round1(v float64) float64 { return math.Round(v*10) / 10 }
