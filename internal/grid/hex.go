package grid

import "math"

// HexMeasurer counts hex steps between two points.
//
// Size is the flat-to-flat width of a cell: horizontal for row layouts
// (pointy-top) and vertical for column layouts (flat-top).
type HexMeasurer struct {
	Size     float64
	Distance float64
	Columns  bool
}

// MeasureDistance implements Measurer. Only the offset between a and b is
// converted, so the result does not depend on where the grid origin sits.
func (h HexMeasurer) MeasureDistance(a, b Point) float64 {
	if h.Size <= 0 {
		return math.NaN()
	}
	q, r := h.axial(b.X-a.X, b.Y-a.Y)
	q, r, s := cubeRound(q, r, -q-r)
	return (math.Abs(q) + math.Abs(r) + math.Abs(s)) / 2 * h.Distance
}

// axial converts a pixel offset to fractional axial coordinates.
func (h HexMeasurer) axial(x, y float64) (q, r float64) {
	radius := h.Size / math.Sqrt(3)
	if h.Columns {
		q = (2.0 / 3.0 * x) / radius
		r = (-1.0/3.0*x + math.Sqrt(3)/3.0*y) / radius
		return q, r
	}
	q = (math.Sqrt(3)/3.0*x - 1.0/3.0*y) / radius
	r = (2.0 / 3.0 * y) / radius
	return q, r
}

// cubeRound snaps fractional cube coordinates to the nearest hex, fixing the
// component with the largest rounding error so q+r+s stays zero.
func cubeRound(q, r, s float64) (float64, float64, float64) {
	rq, rr, rs := math.Round(q), math.Round(r), math.Round(s)
	dq, dr, ds := math.Abs(rq-q), math.Abs(rr-r), math.Abs(rs-s)
	switch {
	case dq > dr && dq > ds:
		rq = -rr - rs
	case dr > ds:
		rr = -rq - rs
	default:
		rs = -rq - rr
	}
	return rq, rr, rs
}
