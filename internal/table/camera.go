package table

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/token-canvas/internal/grid"
)

const (
	zoomMin = 0.25
	zoomMax = 4.0
)

// Camera maps scene pixels into the viewport.
//
//	screen = (world - cam) * zoom + viewport/2 + offset
//	world  = (screen - offset - viewport/2) / zoom + cam
type Camera struct {
	X, Y       float64 // scene position of the viewport centre
	Zoom       float64
	ViewW      float64
	ViewH      float64
	OffX, OffY float64 // viewport origin on screen
}

// GeoM is the scene-to-screen transform.
func (c Camera) GeoM() ebiten.GeoM {
	var m ebiten.GeoM
	m.Translate(-c.X, -c.Y)
	m.Scale(c.Zoom, c.Zoom)
	m.Translate(c.ViewW/2+c.OffX, c.ViewH/2+c.OffY)
	return m
}

// ScreenToWorld inverts GeoM.
func (c Camera) ScreenToWorld(sx, sy float64) grid.Point {
	return grid.Point{
		X: (sx-c.OffX-c.ViewW/2)/c.Zoom + c.X,
		Y: (sy-c.OffY-c.ViewH/2)/c.Zoom + c.Y,
	}
}

// InView reports whether the screen point lies inside the viewport.
func (c Camera) InView(sx, sy float64) bool {
	return sx >= c.OffX && sx < c.OffX+c.ViewW && sy >= c.OffY && sy < c.OffY+c.ViewH
}

// Pan moves the camera by a screen-space distance.
func (c *Camera) Pan(dx, dy float64) {
	c.X += dx / c.Zoom
	c.Y += dy / c.Zoom
}

// ZoomBy multiplies the zoom, clamped to the supported range.
func (c *Camera) ZoomBy(f float64) {
	c.Zoom = math.Max(zoomMin, math.Min(zoomMax, c.Zoom*f))
}

// Clamp keeps the camera centre inside a scene of w×h pixels. A scene
// smaller than the viewport is centred.
func (c *Camera) Clamp(w, h float64) {
	c.X = clampAxis(c.X, w, c.ViewW/2/c.Zoom)
	c.Y = clampAxis(c.Y, h, c.ViewH/2/c.Zoom)
}

func clampAxis(v, size, half float64) float64 {
	if size <= 2*half {
		return size / 2
	}
	return math.Max(half, math.Min(size-half, v))
}
