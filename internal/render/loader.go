// Package render draws the token layer with ebiten and implements the
// token host: texture loading, icon layout, overlays and floating text.
package render

import (
	"context"
	"fmt"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	_ "golang.org/x/image/webp"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/Garsondee/token-canvas/internal/token"
)

// DecodeFunc turns a file path into a texture.
type DecodeFunc func(path string) (token.Texture, error)

func decodeFile(path string) (token.Texture, error) {
	img, _, err := ebitenutil.NewImageFromFile(path)
	if err != nil {
		return nil, err
	}
	return img, nil
}

// Loader loads token images from an asset directory. Results are cached by
// image identifier and concurrent loads of one image share a single decode.
type Loader struct {
	root   string
	decode DecodeFunc
	logger *slog.Logger

	mu    sync.RWMutex
	cache map[string]token.Texture
	group singleflight.Group
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithDecoder replaces the file decoder.
func WithDecoder(d DecodeFunc) LoaderOption { return func(l *Loader) { l.decode = d } }

// WithLoaderLogger sets the logger.
func WithLoaderLogger(lg *slog.Logger) LoaderOption { return func(l *Loader) { l.logger = lg } }

// NewLoader creates a loader resolving relative identifiers against root.
func NewLoader(root string, opts ...LoaderOption) *Loader {
	l := &Loader{
		root:   root,
		decode: decodeFile,
		logger: slog.Default(),
		cache:  make(map[string]token.Texture),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Resolve maps an image identifier to a file path.
func (l *Loader) Resolve(src string) string {
	if filepath.IsAbs(src) || l.root == "" {
		return filepath.FromSlash(src)
	}
	return filepath.Join(l.root, filepath.FromSlash(src))
}

// Cached returns a texture already loaded for src.
func (l *Loader) Cached(src string) (token.Texture, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	tex, ok := l.cache[src]
	return tex, ok
}

// Load returns the texture for src, decoding it on first use. A cancelled
// context abandons the wait but not a decode other callers share.
func (l *Loader) Load(ctx context.Context, src string) (token.Texture, error) {
	if tex, ok := l.Cached(src); ok {
		return tex, nil
	}
	ch := l.group.DoChan(src, func() (any, error) {
		path := l.Resolve(src)
		tex, err := l.decode(path)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
		l.mu.Lock()
		l.cache[src] = tex
		l.mu.Unlock()
		l.logger.Debug("texture loaded", "src", src, "bounds", tex.Bounds().Size())
		return tex, nil
	})
	select {
	case r := <-ch:
		if r.Err != nil {
			return nil, r.Err
		}
		return r.Val.(token.Texture), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Preload loads srcs with at most limit decodes in flight and returns the
// first error.
func (l *Loader) Preload(ctx context.Context, srcs []string, limit int) error {
	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for _, src := range srcs {
		g.Go(func() error {
			_, err := l.Load(ctx, src)
			return err
		})
	}
	return g.Wait()
}
