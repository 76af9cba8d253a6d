package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/Garsondee/token-canvas/internal/config"
	"github.com/Garsondee/token-canvas/internal/render"
	"github.com/Garsondee/token-canvas/internal/system"
	"github.com/Garsondee/token-canvas/internal/token"
)

// bounds is a texture that only knows its size.
type bounds image.Rectangle

func (b bounds) Bounds() image.Rectangle { return image.Rectangle(b) }

// decodeBounds reads only the image header, so reports run without a GPU.
func decodeBounds(path string) (token.Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return bounds(image.Rect(0, 0, cfg.Width, cfg.Height)), nil
}

type report struct {
	sys    *system.System
	tokens []*token.Token
	units  string
}

func main() {
	var configPath string
	var assets string
	var from string
	var advance time.Duration

	flag.StringVar(&configPath, "config", "", "scene file (YAML)")
	flag.StringVar(&assets, "assets", "", "asset directory, overrides the scene file")
	flag.StringVar(&from, "from", "", "only report distances from this token id")
	flag.DurationVar(&advance, "advance", 0, "advance the world clock before reporting")
	flag.Parse()

	if configPath == "" {
		fmt.Println("error: -config is required")
		return
	}
	_ = godotenv.Load()

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}
	if assets != "" {
		cfg.Assets = assets
	}
	level, _ := cfg.SlogLevel()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	r, err := build(ctx, cfg, render.WithDecoder(decodeBounds), render.WithLoaderLogger(logger))
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}
	if advance > 0 {
		r.sys.Clock().Advance(advance)
	}
	if from != "" && r.sys.Layer().Get(from) == nil {
		fmt.Printf("error: unknown token %q\n", from)
		return
	}
	r.print(os.Stdout, from)
}

// build runs the scene lifecycle on a canvas that is never shown and waits
// for every token to be drawn.
func build(ctx context.Context, cfg *config.Config, opts ...render.LoaderOption) (*report, error) {
	canvas := render.NewCanvas(render.NewLoader(cfg.Assets, opts...), slog.Default())
	sys, err := system.Init(cfg, canvas, slog.Default())
	if err != nil {
		return nil, err
	}
	if err := sys.Setup(ctx); err != nil {
		return nil, err
	}
	for {
		canvas.Update()
		wait, cancel := context.WithTimeout(ctx, 5*time.Millisecond)
		err := sys.Drawn(wait)
		cancel()
		if err == nil {
			break
		}
		if ctx.Err() != nil {
			return nil, fmt.Errorf("drawing tokens: %w", ctx.Err())
		}
		if !errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
	}
	if err := sys.Ready(); err != nil {
		return nil, err
	}
	return &report{sys: sys, tokens: sys.Layer().Tokens(), units: cfg.Grid.Units}, nil
}

// distances is the pairwise distance matrix in token order.
func (r *report) distances() [][]float64 {
	out := make([][]float64, len(r.tokens))
	for i, a := range r.tokens {
		out[i] = make([]float64, len(r.tokens))
		for j, b := range r.tokens {
			if i != j {
				out[i][j] = a.DistanceTo(b)
			}
		}
	}
	return out
}

func formatDistance(d float64, units string) string {
	if math.IsNaN(d) {
		return "n/a"
	}
	if units == "" {
		return fmt.Sprintf("%g", d)
	}
	return fmt.Sprintf("%g %s", d, units)
}

// visionRow summarises what one token sees when controlled.
type visionRow struct {
	name      string
	source    bool
	lowLight  bool
	darkvis   bool
	perceived token.LightLevel
	icon      string
}

func (r *report) vision() []visionRow {
	darkness := r.sys.Darkness()
	rows := make([]visionRow, 0, len(r.tokens))
	for _, t := range r.tokens {
		row := visionRow{
			name:      t.Name(),
			source:    t.IsVisionSource(),
			lowLight:  t.HasLowLightVision(),
			darkvis:   t.HasDarkvision(),
			perceived: token.LevelAt(token.PerceivedDarkness(darkness, t)),
		}
		if icon := t.Visual().Icon; icon != nil {
			row.icon = filepath.Base(icon.Loaded)
		}
		rows = append(rows, row)
	}
	return rows
}

func (r *report) print(w io.Writer, from string) {
	cfg := r.sys.Config()
	darkness := r.sys.Darkness()
	fmt.Fprintf(w, "=== Distance Report ===\n")
	fmt.Fprintf(w, "scene=%s grid=%s diagonals=%s tokens=%d\n", cfg.Scene.Name, cfg.Grid.Type, cfg.Grid.Diagonals, len(r.tokens))
	fmt.Fprintf(w, "clock=%s darkness=%.2f level=%s\n\n", r.sys.Clock(), darkness, token.LevelAt(darkness))

	fmt.Fprintln(w, "--- Distances ---")
	matrix := r.distances()
	for i, a := range r.tokens {
		if from != "" && a.ID() != from {
			continue
		}
		parts := make([]string, 0, len(r.tokens))
		for j, b := range r.tokens {
			if i == j {
				continue
			}
			parts = append(parts, fmt.Sprintf("%s=%s", b.Name(), formatDistance(matrix[i][j], r.units)))
		}
		fmt.Fprintf(w, "  %s: %s\n", a.Name(), strings.Join(parts, "  "))
	}

	fmt.Fprintln(w, "\n--- Vision ---")
	for _, row := range r.vision() {
		fmt.Fprintf(w, "  %s  source=%t low_light=%t darkvision=%t perceives=%s icon=%s\n",
			row.name, row.source, row.lowLight, row.darkvis, row.perceived, row.icon)
	}

	fmt.Fprintln(w, "\n--- Lights ---")
	lit := 0
	for _, t := range r.tokens {
		l := t.EmittedLight()
		if l.Dim == 0 && l.Bright == 0 {
			continue
		}
		lit++
		kind := "light"
		if t.EmitsDarkness() {
			kind = "darkness"
		}
		fmt.Fprintf(w, "  %s  %s dim=%g bright=%g\n", t.Name(), kind, l.Dim, l.Bright)
	}
	if lit == 0 {
		fmt.Fprintln(w, "  none")
	}
}
