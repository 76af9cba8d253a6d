package table

import (
	"context"
	"errors"
	"image"
	"testing"
	"time"

	"github.com/Garsondee/token-canvas/internal/config"
	"github.com/Garsondee/token-canvas/internal/grid"
	"github.com/Garsondee/token-canvas/internal/render"
	"github.com/Garsondee/token-canvas/internal/system"
	"github.com/Garsondee/token-canvas/internal/token"
)

const testScene = `
user: {id: gm, gm: true}
settings: {token_vision: true, rules_based_vision: true}
scene: {name: Bridge, width: 10, height: 10}
world_clock: {start: "12:00"}
tokens:
  - id: amiri
    name: Amiri
    image: amiri.png
    images: [amiri-rage.png]
    actor: {kind: character, owners: [player-1], hp: {value: 20, max: 30}}
  - id: goblin
    name: Goblin
    x: 3
    image: goblin.png
    light: {dim: 20, bright: 10, luminosity: 0.5}
    actor: {kind: npc, hp: {value: 6, max: 6}}
  - id: ogre
    name: Ogre
    x: 5
    y: 2
    width: 2
    height: 2
    image: ogre.png
`

type tex struct{ w, h int }

func (t tex) Bounds() image.Rectangle { return image.Rect(0, 0, t.w, t.h) }

func decode(path string) (token.Texture, error) {
	switch path {
	case "amiri.png", "amiri-rage.png", "goblin.png", "ogre.png", "icons/mystery-man.png":
		return tex{w: 100, h: 100}, nil
	}
	return nil, errors.New("not found")
}

// testTable is a ready table over an in-memory scene.
type testTable struct {
	*Table
	t      *testing.T
	sys    *system.System
	canvas *render.Canvas
	copied []string
}

type harnessConfig struct {
	scene     string
	clipboard error
}

// harnessOption is a builder applied before the table is constructed.
type harnessOption func(*harnessConfig)

func withScene(yaml string) harnessOption {
	return func(c *harnessConfig) { c.scene = yaml }
}

func withClipboardError(err error) harnessOption {
	return func(c *harnessConfig) { c.clipboard = err }
}

func newTestTable(t *testing.T, opts ...harnessOption) *testTable {
	t.Helper()
	hc := harnessConfig{scene: testScene}
	for _, o := range opts {
		o(&hc)
	}

	cfg, err := config.Parse([]byte(hc.scene))
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	canvas := render.NewCanvas(render.NewLoader("", render.WithDecoder(decode)), nil)
	sys, err := system.Init(cfg, canvas, nil)
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	if err := sys.Setup(context.Background()); err != nil {
		t.Fatalf("setup: %v", err)
	}
	tt := &testTable{t: t, sys: sys, canvas: canvas}
	tt.waitFor(func() bool {
		ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond)
		defer cancel()
		return sys.Drawn(ctx) == nil
	})
	if err := sys.Ready(); err != nil {
		t.Fatalf("ready: %v", err)
	}

	tt.Table = NewTable(context.Background(), sys, canvas, nil, WithClipboard(func(s string) error {
		if hc.clipboard != nil {
			return hc.clipboard
		}
		tt.copied = append(tt.copied, s)
		return nil
	}))
	return tt
}

// waitFor pumps canvas frames until cond holds.
func (tt *testTable) waitFor(cond func() bool) {
	tt.t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		tt.canvas.Update()
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	tt.t.Fatal("condition not reached")
}

// settle pumps frames until every action has completed.
func (tt *testTable) settle(actions []token.Action) {
	tt.t.Helper()
	for _, a := range actions {
		tt.waitFor(func() bool {
			select {
			case <-a.Done():
				return true
			default:
				return false
			}
		})
	}
}

func (tt *testTable) tok(id string) *token.Token {
	tt.t.Helper()
	tok := tt.sys.Layer().Get(id)
	if tok == nil {
		tt.t.Fatalf("no token %q", id)
	}
	return tok
}

// centre is the scene point at the middle of a token.
func (tt *testTable) centre(id string) grid.Point {
	return tt.tok(id).Footprint().Center()
}
