package grid

import "math"

// cellEpsilon absorbs float noise when converting pixel gaps to whole cells.
const cellEpsilon = 1e-9

// Distance measures how far apart two footprints are, in grid distance units.
//
// On a square grid each footprint is shrunk by half a cell per side so that
// the measurement runs between the centres of the nearest occupied squares,
// and the result counts the cells separating them: touching tokens are 0
// apart and two single-cell tokens with one empty square between are 1 apart.
// Non-square grids are handed to the grid's Measurer between footprint centres.
//
// Without an active scene the result is NaN.
func Distance(a, b Footprint, m Metrics) float64 {
	if m.Dimensions == nil || m.Dimensions.Size <= 0 {
		return math.NaN()
	}
	if m.Type != Square {
		return m.measurer().MeasureDistance(a.Center(), b.Center())
	}

	size := m.Dimensions.Size
	dx, dy := a.Shrink(size).Gap(b.Shrink(size))
	gx := math.Max(0, dx/size-1)
	gy := math.Max(0, dy/size-1)
	return diagonalCells(gx, gy, m.Diagonals) * m.unitsPerCell()
}

// diagonalCells combines per-axis cell counts under the diagonal rule.
func diagonalCells(nx, ny float64, rule Diagonals) float64 {
	switch rule {
	case DiagonalsEquidistant:
		return math.Max(nx, ny)
	case DiagonalsEuclidean:
		return math.Hypot(nx, ny)
	}

	// Alternating diagonals operate on whole cells.
	nx = math.Ceil(nx - cellEpsilon)
	ny = math.Ceil(ny - cellEpsilon)
	nDiagonal := math.Min(nx, ny)
	nStraight := math.Abs(nx - ny)
	nDouble := math.Floor(nDiagonal / 2)
	return nDouble*2 + (nDiagonal - nDouble) + nStraight
}

// EuclideanMeasurer measures straight-line distance, used on gridless scenes.
type EuclideanMeasurer struct {
	Size     float64 // pixels per grid unit
	Distance float64 // distance units per grid unit
}

// MeasureDistance implements Measurer.
func (e EuclideanMeasurer) MeasureDistance(a, b Point) float64 {
	if e.Size <= 0 {
		return math.NaN()
	}
	return math.Hypot(b.X-a.X, b.Y-a.Y) / e.Size * e.Distance
}
