package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/Garsondee/token-canvas/internal/token"
)

// scrollLifetime is how many ticks floating text stays visible (~2 seconds).
const scrollLifetime = 120

// scrollRise is how far floating text drifts upward over its lifetime, in
// scene pixels.
const scrollRise = 60

// debugGlyph is the cell size of ebitenutil's debug font.
const (
	debugGlyphW = 6
	debugGlyphH = 16
)

// floatingText is an active scrolling text above a token.
type floatingText struct {
	tok    *token.Token
	spec   token.ScrollingText
	dx, dy float64 // jitter offset
	age    int
}

// progress is the share of the lifetime already spent.
func (f *floatingText) progress() float64 { return float64(f.age) / scrollLifetime }

// alpha fades the text out over the last 30% of its life.
func (f *floatingText) alpha() float64 {
	p := f.progress()
	if p <= 0.7 {
		return 1
	}
	return max(0, 1-(p-0.7)/0.3)
}

// origin is the scene position of the text centre.
func (f *floatingText) origin() (x, y float64) {
	fp := f.tok.Footprint()
	x = fp.X + fp.Width/2 + f.dx
	switch f.spec.Anchor {
	case token.AnchorTop:
		y = fp.Y
	case token.AnchorBottom:
		y = fp.Y + fp.Height
	default:
		y = fp.Y + fp.Height/2
	}
	return x, y + f.dy - scrollRise*f.progress()
}

func (c *Canvas) ageTexts() {
	kept := c.texts[:0]
	for _, f := range c.texts {
		f.age++
		if f.age < scrollLifetime && !f.tok.Destroyed() {
			kept = append(kept, f)
		}
	}
	clear(c.texts[len(kept):])
	c.texts = kept
}

// ScrollingTexts is the number of texts still on screen.
func (c *Canvas) ScrollingTexts() int { return len(c.texts) }

// drawTexts renders floating text into the scene image. The debug font is
// drawn once into a scratch image and scaled to the requested size; the
// stroke is the same glyphs offset around the fill.
func (c *Canvas) drawTexts(dst *ebiten.Image, geo ebiten.GeoM) {
	for _, f := range c.texts {
		a := f.alpha()
		if a < 0.05 {
			continue
		}
		w, h := len(f.spec.Text)*debugGlyphW, debugGlyphH
		glyphs := ebiten.NewImage(w, h)
		ebitenutil.DebugPrint(glyphs, f.spec.Text)

		scale := f.spec.FontSize / debugGlyphH
		x, y := f.origin()
		x -= float64(w) * scale / 2
		y -= float64(h) * scale

		st := f.spec.StrokeThickness
		for _, off := range [][2]float64{{-st, 0}, {st, 0}, {0, -st}, {0, st}, {-st, -st}, {st, st}, {-st, st}, {st, -st}} {
			drawGlyphs(dst, glyphs, geo, x+off[0]/2, y+off[1]/2, scale, f.spec.Stroke, a)
		}
		drawGlyphs(dst, glyphs, geo, x, y, scale, f.spec.Fill, a)
		glyphs.Deallocate()
	}
}

func drawGlyphs(dst, glyphs *ebiten.Image, geo ebiten.GeoM, x, y, scale float64, col color.RGBA, alpha float64) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	op.GeoM.Concat(geo)
	op.ColorScale.ScaleWithColor(col)
	op.ColorScale.ScaleAlpha(float32(alpha))
	op.Filter = ebiten.FilterLinear
	dst.DrawImage(glyphs, op)
}
