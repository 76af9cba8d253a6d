package token

//go:generate mockgen -destination=mock/mock_host.go -package=mocktoken -source=host.go

import (
	"context"
	"image"
)

// Texture is a loaded token image. *ebiten.Image satisfies it.
type Texture interface {
	Bounds() image.Rectangle
}

// Host is the rendering side a token drives. Every method except
// LoadTexture and Post is called on the UI thread.
type Host interface {
	// LoadTexture resolves an image identifier to a texture. It may block
	// and is called off the UI thread.
	LoadTexture(ctx context.Context, src string) (Texture, error)

	// Attach adds icon to the token's display list.
	Attach(t *Token, icon *Icon)
	// Detach removes icon from the display list and releases it.
	Detach(t *Token, icon *Icon)

	// DrawHUD rebuilds the heads-up overlay (nameplate, bars).
	DrawHUD(t *Token)
	// Refresh re-runs icon layout for the token's current size.
	Refresh(t *Token)
	// DrawEffects lays out the token's status effect icons.
	DrawEffects(t *Token)
	// CreateScrollingText shows a floating text above the token.
	CreateScrollingText(t *Token, text ScrollingText)

	// Post schedules fn to run on the UI thread. Safe from any goroutine.
	Post(fn func())
}
