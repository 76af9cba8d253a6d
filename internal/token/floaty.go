package token

import (
	"fmt"
	"image/color"
	"math"
)

// Anchor is where scrolling text starts relative to the token.
type Anchor uint8

const (
	AnchorCenter Anchor = iota
	AnchorTop
	AnchorBottom
)

// ScrollingText describes a floating text shown above a token.
type ScrollingText struct {
	Text            string
	Anchor          Anchor
	Jitter          float64 // random offset as a fraction of the token size
	Fill            color.RGBA
	FontSize        float64
	Stroke          color.RGBA
	StrokeThickness float64
}

var (
	damageFill  = color.RGBA{R: 0xff, A: 0xff}
	healingFill = color.RGBA{G: 0xff, A: 0xff}
)

// ShowFloatyText shows a hit point change above the token. Text size grows
// with the change relative to max hit points, from 16 up to 48.
func (t *Token) ShowFloatyText(quantity int) {
	if quantity == 0 || t.actor == nil || t.actor.HitPoints == nil {
		return
	}
	percent := 1.0
	if hpMax := t.actor.HitPoints.Max; hpMax > 0 {
		percent = math.Min(math.Abs(float64(quantity))/float64(hpMax), 1)
	}
	fill := healingFill
	if quantity < 0 {
		fill = damageFill
	}
	t.layer.host.CreateScrollingText(t, ScrollingText{
		Text:            fmt.Sprintf("%+d", quantity),
		Anchor:          AnchorTop,
		Jitter:          0.25,
		Fill:            fill,
		FontSize:        16 + 32*percent,
		Stroke:          color.RGBA{A: 0xff},
		StrokeThickness: 4,
	})
}
