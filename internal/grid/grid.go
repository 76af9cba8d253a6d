package grid

import "math"

// Type identifies the layout of the active scene grid.
type Type uint8

const (
	Gridless   Type = iota // free placement, no cells
	Square                 // square cells
	HexRows                // pointy-top hexes in offset rows
	HexColumns             // flat-top hexes in offset columns
)

// String returns the config name of the grid type.
func (t Type) String() string {
	switch t {
	case Gridless:
		return "gridless"
	case Square:
		return "square"
	case HexRows:
		return "hex-rows"
	case HexColumns:
		return "hex-columns"
	}
	return "unknown"
}

// ParseType maps a config name to a grid type.
func ParseType(s string) (Type, bool) {
	for t := Gridless; t <= HexColumns; t++ {
		if t.String() == s {
			return t, true
		}
	}
	return Gridless, false
}

// IsHex reports whether the grid uses hexagonal cells.
func (t Type) IsHex() bool { return t == HexRows || t == HexColumns }

// Diagonals selects how diagonal movement is counted on a square grid.
type Diagonals uint8

const (
	DiagonalsAlternating Diagonals = iota // 5-10-5: every second diagonal costs two cells
	DiagonalsEquidistant                  // a diagonal costs one cell (Chebyshev)
	DiagonalsEuclidean                    // straight-line length
)

// String returns the config name of the diagonal rule.
func (d Diagonals) String() string {
	switch d {
	case DiagonalsAlternating:
		return "alternating"
	case DiagonalsEquidistant:
		return "equidistant"
	case DiagonalsEuclidean:
		return "euclidean"
	}
	return "unknown"
}

// ParseDiagonals maps a config name to a diagonal rule.
func ParseDiagonals(s string) (Diagonals, bool) {
	for d := DiagonalsAlternating; d <= DiagonalsEuclidean; d++ {
		if d.String() == s {
			return d, true
		}
	}
	return DiagonalsAlternating, false
}

// Dimensions describes the active scene.
type Dimensions struct {
	Width    float64 // scene width in pixels
	Height   float64 // scene height in pixels
	Size     float64 // cell size in pixels
	Distance float64 // grid distance units per cell (e.g. 5 ft)
	Units    string  // label for Distance, e.g. "ft"
}

// Measurer measures the distance between two points on a non-square grid.
// Results are in grid distance units.
type Measurer interface {
	MeasureDistance(a, b Point) float64
}

// Metrics is the grid configuration queried per measurement.
type Metrics struct {
	Type      Type
	Diagonals Diagonals

	// Dimensions is nil when no scene is active.
	Dimensions *Dimensions

	// Measurer overrides the default measurer for non-square grids.
	Measurer Measurer
}

// unitsPerCell returns the grid distance of one cell, defaulting to 1.
func (m Metrics) unitsPerCell() float64 {
	if m.Dimensions == nil || m.Dimensions.Distance <= 0 {
		return 1
	}
	return m.Dimensions.Distance
}

// measurer returns the configured measurer or the default for the grid type.
func (m Metrics) measurer() Measurer {
	if m.Measurer != nil {
		return m.Measurer
	}
	if m.Type.IsHex() {
		return HexMeasurer{Size: m.Dimensions.Size, Distance: m.unitsPerCell(), Columns: m.Type == HexColumns}
	}
	return EuclideanMeasurer{Size: m.Dimensions.Size, Distance: m.unitsPerCell()}
}

// Snap returns the top-left corner of the square cell containing p.
// On non-square grids p is returned unchanged.
func (m Metrics) Snap(p Point) Point {
	if m.Type != Square || m.Dimensions == nil || m.Dimensions.Size <= 0 {
		return p
	}
	s := m.Dimensions.Size
	return Point{X: math.Floor(p.X/s) * s, Y: math.Floor(p.Y/s) * s}
}

// Point is a position in scene pixels.
type Point struct {
	X, Y float64
}

// Footprint is the axis-aligned area a token occupies, in scene pixels.
type Footprint struct {
	X, Y          float64
	Width, Height float64
}

// Center returns the centre of the footprint.
func (f Footprint) Center() Point {
	return Point{X: f.X + f.Width/2, Y: f.Y + f.Height/2}
}

// Shrink moves every edge inward by half a cell. A one-cell footprint
// collapses to the point at its centre.
func (f Footprint) Shrink(size float64) Rect {
	return Rect{
		X: f.X + size/2,
		Y: f.Y + size/2,
		W: f.Width - size,
		H: f.Height - size,
	}
}

// Rect is an axis-aligned rectangle that may have zero area.
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Right() float64  { return r.X + r.W }
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Gap returns the per-axis separation between r and o. An axis on which the
// rectangles overlap or touch reports zero.
func (r Rect) Gap(o Rect) (dx, dy float64) {
	return axisGap(r.X, r.Right(), o.X, o.Right()), axisGap(r.Y, r.Bottom(), o.Y, o.Bottom())
}

func axisGap(aMin, aMax, bMin, bMax float64) float64 {
	switch {
	case bMin > aMax:
		return bMin - aMax
	case aMin > bMax:
		return aMin - bMax
	}
	return 0
}
