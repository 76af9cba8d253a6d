package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/joho/godotenv"

	"github.com/Garsondee/token-canvas/internal/config"
	"github.com/Garsondee/token-canvas/internal/render"
	"github.com/Garsondee/token-canvas/internal/system"
	"github.com/Garsondee/token-canvas/internal/table"
)

func main() {
	var configPath string
	var assets string
	var preload int

	flag.StringVar(&configPath, "config", "", "scene file (YAML); empty starts an untitled scene")
	flag.StringVar(&assets, "assets", "", "asset directory, overrides the scene file")
	flag.IntVar(&preload, "preload", 4, "images decoded in parallel before the table opens")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found")
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if assets != "" {
		cfg.Assets = assets
	}
	level, _ := cfg.SlogLevel()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	ctx := context.Background()
	loader := render.NewLoader(cfg.Assets, render.WithLoaderLogger(logger))
	if err := loader.Preload(ctx, sceneImages(cfg), preload); err != nil {
		logger.Warn("preload incomplete", "error", err)
	}
	canvas := render.NewCanvas(loader, logger)

	sys, err := system.Init(cfg, canvas, logger)
	if err != nil {
		log.Fatal(err)
	}
	if err := sys.Setup(ctx); err != nil {
		log.Fatal(err)
	}
	if err := sys.Ready(); err != nil {
		log.Fatal(err)
	}

	g := table.New(ctx, sys, canvas, logger)
	w, h := g.Size()
	ebiten.SetWindowTitle("Token Canvas - " + cfg.Scene.Name)
	ebiten.SetWindowSize(w, h)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Parse(nil)
	}
	return config.Load(path)
}

// sceneImages lists every image the scene's tokens can show, once each.
func sceneImages(cfg *config.Config) []string {
	seen := map[string]bool{cfg.DefaultTokenImage: true}
	out := []string{cfg.DefaultTokenImage}
	for _, tc := range cfg.Tokens {
		for _, src := range tc.ImageCycle() {
			if !seen[src] {
				seen[src] = true
				out = append(out, src)
			}
		}
		for _, src := range tc.Effects {
			if !seen[src] {
				seen[src] = true
				out = append(out, src)
			}
		}
	}
	return out
}
