package token_test

import (
	"context"
	"image"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Garsondee/token-canvas/internal/grid"
	"github.com/Garsondee/token-canvas/internal/token"
	mocktoken "github.com/Garsondee/token-canvas/internal/token/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	cellSize      = 100.0
	fallbackImage = "icons/mystery-man.png"
)

// fakeTexture is a texture with fixed natural dimensions.
type fakeTexture struct {
	name string
	w, h int
}

func (f *fakeTexture) Bounds() image.Rectangle { return image.Rect(0, 0, f.w, f.h) }

// testScene wires a token layer to a mock host. Layout calls are counted
// rather than scripted so tests can assert on how much was rebuilt.
type testScene struct {
	t     *testing.T
	ctrl  *gomock.Controller
	host  *mocktoken.MockHost
	layer *token.Layer

	huds     atomic.Int32
	refreshs atomic.Int32
	effects  atomic.Int32
	attached atomic.Int32
}

type sceneConfig struct {
	layerOpts []token.LayerOption
	metrics   grid.Metrics
	deferPost chan func()
}

// sceneOption is a builder applied before the layer is constructed.
type sceneOption func(*sceneConfig)

func withLayerOptions(opts ...token.LayerOption) sceneOption {
	return func(c *sceneConfig) { c.layerOpts = append(c.layerOpts, opts...) }
}

func withMetrics(m grid.Metrics) sceneOption {
	return func(c *sceneConfig) { c.metrics = m }
}

// withDeferredPost captures posted continuations on ch instead of running them.
func withDeferredPost(ch chan func()) sceneOption {
	return func(c *sceneConfig) { c.deferPost = ch }
}

func squareGrid() grid.Metrics {
	return grid.Metrics{
		Type:       grid.Square,
		Diagonals:  grid.DiagonalsAlternating,
		Dimensions: &grid.Dimensions{Width: 3000, Height: 2000, Size: cellSize, Distance: 5, Units: "ft"},
	}
}

func newScene(t *testing.T, opts ...sceneOption) *testScene {
	t.Helper()
	cfg := sceneConfig{metrics: squareGrid()}
	for _, o := range opts {
		o(&cfg)
	}

	ctrl := gomock.NewController(t)
	s := &testScene{t: t, ctrl: ctrl, host: mocktoken.NewMockHost(ctrl)}

	if cfg.deferPost != nil {
		s.host.EXPECT().Post(gomock.Any()).Do(func(fn func()) { cfg.deferPost <- fn }).AnyTimes()
	} else {
		s.host.EXPECT().Post(gomock.Any()).Do(func(fn func()) { fn() }).AnyTimes()
	}
	s.host.EXPECT().DrawHUD(gomock.Any()).Do(func(*token.Token) { s.huds.Add(1) }).AnyTimes()
	s.host.EXPECT().Refresh(gomock.Any()).Do(func(*token.Token) { s.refreshs.Add(1) }).AnyTimes()
	s.host.EXPECT().DrawEffects(gomock.Any()).Do(func(*token.Token) { s.effects.Add(1) }).AnyTimes()
	s.host.EXPECT().Attach(gomock.Any(), gomock.Any()).Do(func(*token.Token, *token.Icon) { s.attached.Add(1) }).AnyTimes()

	layerOpts := append([]token.LayerOption{token.WithFallbackImage(fallbackImage)}, cfg.layerOpts...)
	s.layer = token.NewLayer(s.host, cfg.metrics, layerOpts...)
	return s
}

func (s *testScene) resetCounts() {
	s.huds.Store(0)
	s.refreshs.Store(0)
	s.effects.Store(0)
	s.attached.Store(0)
}

// place adds a token of w×h cells at cell (cx, cy) without drawing it.
func (s *testScene) place(id string, cx, cy, w, h float64, actor *token.Actor) *token.Token {
	tok := s.layer.NewToken(token.Document{
		ID:     id,
		Name:   id,
		X:      cx * cellSize,
		Y:      cy * cellSize,
		Source: token.DeclaredState{Width: w, Height: h, Image: id + ".png"},
		Sight:  true,
	}, actor)
	s.layer.Add(tok)
	return tok
}

// drawn places a token and draws it with a texture of the given size.
func (s *testScene) drawn(id string, texW, texH int, actor *token.Actor) *token.Token {
	s.t.Helper()
	tok := s.place(id, 0, 0, 1, 1, actor)
	tex := &fakeTexture{name: id, w: texW, h: texH}
	s.host.EXPECT().LoadTexture(gomock.Any(), id+".png").Return(tex, nil).Times(1)
	wait(s.t, tok.Draw(context.Background()))
	require.NotNil(s.t, tok.Visual().Icon)
	s.resetCounts()
	return tok
}

func wait(t *testing.T, a token.Action) {
	t.Helper()
	select {
	case <-a.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("redraw did not complete")
	}
}
