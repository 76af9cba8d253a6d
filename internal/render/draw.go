package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/token-canvas/internal/token"
)

var (
	controlledBorder = color.RGBA{R: 255, G: 150, B: 30, A: 255}
	hoveredBorder    = color.RGBA{R: 255, G: 255, B: 255, A: 160}
	targetBorder     = color.RGBA{R: 230, G: 60, B: 60, A: 255}
	barBack          = color.RGBA{R: 20, G: 20, B: 20, A: 200}
	barFill          = color.RGBA{R: 60, G: 200, B: 80, A: 230}
	barLow           = color.RGBA{R: 220, G: 60, B: 40, A: 230}
	missingEffect    = color.RGBA{R: 90, G: 90, B: 110, A: 200}
)

// DrawOptions carries per-frame view state.
type DrawOptions struct {
	Hovered *token.Token
	Target  *token.Token
	ShowAll bool // GM view: hidden tokens are drawn translucent
}

// Draw renders the layer's tokens into dst. geo maps scene pixels to dst.
func (c *Canvas) Draw(dst *ebiten.Image, layer *token.Layer, geo ebiten.GeoM, opts DrawOptions) {
	for _, t := range layer.Tokens() {
		hidden := t.Document().Hidden
		if hidden && !opts.ShowAll {
			continue
		}
		alpha := float32(1)
		if hidden {
			alpha = 0.5
		}
		c.drawIcon(dst, t, geo, alpha)
		c.drawEffects(dst, t, geo)
		c.drawBorder(dst, t, geo, opts)
		c.drawHUD(dst, t, geo)
	}
	c.drawTexts(dst, geo)
}

func (c *Canvas) drawIcon(dst *ebiten.Image, t *token.Token, geo ebiten.GeoM, alpha float32) {
	icon, ok := c.sprites[t]
	if !ok || !icon.Ready() {
		return
	}
	img, ok := icon.Texture.(*ebiten.Image)
	if !ok {
		return
	}
	fp := t.Footprint()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(icon.ScaleX, icon.ScaleY)
	op.GeoM.Translate(fp.X+(fp.Width-icon.Width)/2, fp.Y+(fp.Height-icon.Height)/2)
	op.GeoM.Concat(geo)
	op.ColorScale.ScaleAlpha(alpha)
	op.Filter = ebiten.FilterLinear
	dst.DrawImage(img, op)
}

func (c *Canvas) drawEffects(dst *ebiten.Image, t *token.Token, geo ebiten.GeoM) {
	fp := t.Footprint()
	for _, slot := range c.effects[t] {
		x, y := geo.Apply(fp.X+slot.X, fp.Y+slot.Y)
		x2, y2 := geo.Apply(fp.X+slot.X+slot.Size, fp.Y+slot.Y+slot.Size)
		tex, ok := c.loader.Cached(slot.Src)
		img, isImage := tex.(*ebiten.Image)
		if !ok || !isImage {
			vector.FillRect(dst, float32(x), float32(y), float32(x2-x), float32(y2-y), missingEffect, false)
			continue
		}
		b := img.Bounds()
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(slot.Size/float64(b.Dx()), slot.Size/float64(b.Dy()))
		op.GeoM.Translate(fp.X+slot.X, fp.Y+slot.Y)
		op.GeoM.Concat(geo)
		op.Filter = ebiten.FilterLinear
		dst.DrawImage(img, op)
	}
}

func (c *Canvas) drawBorder(dst *ebiten.Image, t *token.Token, geo ebiten.GeoM, opts DrawOptions) {
	var col color.RGBA
	switch {
	case t.IsControlled():
		col = controlledBorder
	case t == opts.Target:
		col = targetBorder
	case t == opts.Hovered:
		col = hoveredBorder
	default:
		return
	}
	fp := t.Footprint()
	x, y := geo.Apply(fp.X, fp.Y)
	x2, y2 := geo.Apply(fp.X+fp.Width, fp.Y+fp.Height)
	vector.StrokeRect(dst, float32(x), float32(y), float32(x2-x), float32(y2-y), 2, col, false)
}

// drawHUD draws the hit-point bar along the bottom edge and the nameplate
// under the token, in screen pixels.
func (c *Canvas) drawHUD(dst *ebiten.Image, t *token.Token, geo ebiten.GeoM) {
	hud, ok := c.huds[t]
	if !ok {
		return
	}
	fp := t.Footprint()
	x, y := geo.Apply(fp.X, fp.Y+fp.Height)
	x2, _ := geo.Apply(fp.X+fp.Width, fp.Y+fp.Height)
	w := float32(x2 - x)

	if hud.HP != nil {
		frac := hud.BarFraction()
		fill := barFill
		if frac < 0.34 {
			fill = barLow
		}
		vector.FillRect(dst, float32(x), float32(y)-6, w, 6, barBack, false)
		vector.FillRect(dst, float32(x), float32(y)-6, w*float32(frac), 6, fill, false)
	}
	nameX := int(x) + int(w)/2 - len(hud.Name)*debugGlyphW/2
	ebitenutil.DebugPrintAt(dst, hud.Name, nameX, int(y)+2)
}
