// Package table is the interactive tabletop viewer: camera, selection,
// targeting and the keyboard commands that drive token redraws.
package table

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/atotto/clipboard"

	"github.com/Garsondee/token-canvas/internal/grid"
	"github.com/Garsondee/token-canvas/internal/render"
	"github.com/Garsondee/token-canvas/internal/system"
	"github.com/Garsondee/token-canvas/internal/token"
)

// minTokenSize is the smallest token edge in grid cells.
const minTokenSize = 0.5

// Table holds the viewer state and performs user commands. It never touches
// ebiten input so it can be driven directly.
type Table struct {
	ctx    context.Context
	sys    *system.System
	canvas *render.Canvas
	logger *slog.Logger

	tick    int
	cam     Camera
	hovered *token.Token
	target  *token.Token

	measurement string
	images      map[string]int // token id -> index into its image cycle
	copyText    func(string) error
}

// Option configures a Table.
type Option func(*Table)

// WithClipboard replaces the system clipboard writer.
func WithClipboard(fn func(string) error) Option { return func(t *Table) { t.copyText = fn } }

// NewTable creates the viewer state for a set-up system.
func NewTable(ctx context.Context, sys *system.System, canvas *render.Canvas, logger *slog.Logger, opts ...Option) *Table {
	if logger == nil {
		logger = slog.Default()
	}
	t := &Table{
		ctx:      ctx,
		sys:      sys,
		canvas:   canvas,
		logger:   logger.With("component", "table"),
		images:   make(map[string]int),
		copyText: clipboard.WriteAll,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Table) Camera() *Camera { return &t.cam }
func (t *Table) Hovered() *token.Token { return t.hovered }
func (t *Table) Target() *token.Token { return t.target }
func (t *Table) Measurement() string { return t.measurement }

func (t *Table) layer() *token.Layer { return t.sys.Layer() }

// Tick advances the table by one frame of real time.
func (t *Table) Tick(frame time.Duration) {
	t.tick++
	if clock := t.sys.Clock(); clock != nil {
		clock.Tick(frame)
	}
}

func (t *Table) note(label, msg string) {
	if t.canvas != nil {
		t.canvas.EventLog().Add(t.tick, label, msg)
	}
}

// SelectAt controls the token under p. With additive the token joins the
// current selection; otherwise it replaces it. Clicking empty space releases
// everything.
func (t *Table) SelectAt(p grid.Point, additive bool) *token.Token {
	tok := t.layer().At(p)
	if tok == nil {
		if !additive {
			t.layer().ReleaseAll()
		}
		return nil
	}
	if additive && tok.IsControlled() {
		tok.Release()
		return tok
	}
	tok.Control(!additive)
	t.note(tok.Name(), "controlled")
	t.measure()
	return tok
}

// TargetAt marks the token under p as the measurement target, or clears the
// target on empty space.
func (t *Table) TargetAt(p grid.Point) *token.Token {
	t.target = t.layer().At(p)
	t.measure()
	return t.target
}

// HoverAt moves the hover highlight, emitting hover-out and hover-in.
func (t *Table) HoverAt(p grid.Point) {
	tok := t.layer().At(p)
	if tok == t.hovered {
		return
	}
	if t.hovered != nil && !t.hovered.Destroyed() {
		t.hovered.EmitHoverOut()
	}
	t.hovered = tok
	if tok != nil {
		tok.EmitHoverIn()
	}
}

// measure updates the ruler text from the first controlled token to the
// target.
func (t *Table) measure() {
	controlled := t.layer().Controlled()
	if t.target == nil || len(controlled) == 0 || controlled[0] == t.target {
		t.measurement = ""
		return
	}
	from := controlled[0]
	d := from.DistanceTo(t.target)
	units := ""
	if dims := t.layer().Grid().Dimensions; dims != nil {
		units = dims.Units
	}
	if math.IsNaN(d) {
		t.measurement = fmt.Sprintf("%s -> %s: no scene", from.Name(), t.target.Name())
		return
	}
	t.measurement = fmt.Sprintf("%s -> %s: %g %s", from.Name(), t.target.Name(), d, units)
	t.logger.Debug("measured", "from", from.ID(), "to", t.target.ID(), "distance", d)
}

// CopyMeasurement puts the ruler text on the clipboard.
func (t *Table) CopyMeasurement() error {
	if t.measurement == "" {
		return fmt.Errorf("nothing measured")
	}
	if err := t.copyText(t.measurement); err != nil {
		return fmt.Errorf("copy measurement: %w", err)
	}
	t.note("table", "copied "+t.measurement)
	return nil
}

// each runs fn for every controlled token.
func (t *Table) each(fn func(*token.Token)) {
	for _, tok := range append([]*token.Token(nil), t.layer().Controlled()...) {
		fn(tok)
	}
}

// CycleImages switches every controlled token to its next configured image.
func (t *Table) CycleImages() []token.Action {
	var actions []token.Action
	t.each(func(tok *token.Token) {
		cycle := t.sys.Images(tok.ID())
		if len(cycle) < 2 {
			return
		}
		i := (t.images[tok.ID()] + 1) % len(cycle)
		t.images[tok.ID()] = i
		src := tok.Document().Source
		src.Image = cycle[i]
		tok.SetSource(src)
		actions = append(actions, tok.Redraw(t.ctx))
		t.note(tok.Name(), "image "+cycle[i])
	})
	return actions
}

// Resize grows or shrinks every controlled token by delta cells per side.
func (t *Table) Resize(delta float64) []token.Action {
	var actions []token.Action
	t.each(func(tok *token.Token) {
		src := tok.Document().Source
		src.Width = math.Max(minTokenSize, src.Width+delta)
		src.Height = math.Max(minTokenSize, src.Height+delta)
		tok.SetSource(src)
		actions = append(actions, tok.Redraw(t.ctx))
		t.note(tok.Name(), fmt.Sprintf("size %gx%g", src.Width, src.Height))
	})
	t.measure()
	return actions
}

// ApplyHitPoints changes the hit points of every controlled token by delta,
// clamped to [0, max], and shows the applied change.
func (t *Table) ApplyHitPoints(delta int) {
	t.each(func(tok *token.Token) {
		a := tok.Actor()
		if a == nil || a.HitPoints == nil {
			return
		}
		hp := a.HitPoints
		before := hp.Value
		hp.Value += delta
		if hp.Max > 0 && hp.Value > hp.Max {
			hp.Value = hp.Max
		}
		if hp.Value < 0 {
			hp.Value = 0
		}
		tok.ShowFloatyText(hp.Value - before)
		if t.canvas != nil {
			t.canvas.DrawHUD(tok)
		}
	})
}

// AdvanceClock moves world time forward.
func (t *Table) AdvanceClock(d time.Duration) {
	clock := t.sys.Clock()
	if clock == nil {
		return
	}
	clock.Advance(d)
	t.note("table", "time "+clock.String())
}

// Nudge moves every controlled token by whole cells and snaps it to the grid.
func (t *Table) Nudge(dx, dy int) {
	m := t.layer().Grid()
	if m.Dimensions == nil {
		return
	}
	size := m.Dimensions.Size
	t.each(func(tok *token.Token) {
		fp := tok.Footprint()
		p := m.Snap(grid.Point{X: fp.X + float64(dx)*size + size/2, Y: fp.Y + float64(dy)*size + size/2})
		tok.MoveTo(p.X, p.Y)
	})
	t.measure()
}
