package grid

import (
	"math"
	"testing"
)

const cell = 100.0

func squareMetrics(diag Diagonals) Metrics {
	return Metrics{
		Type:       Square,
		Diagonals:  diag,
		Dimensions: &Dimensions{Width: 4000, Height: 3000, Size: cell, Distance: 1},
	}
}

// tok returns a footprint of w×h cells with its top-left at cell (cx, cy).
func tok(cx, cy, w, h float64) Footprint {
	return Footprint{X: cx * cell, Y: cy * cell, Width: w * cell, Height: h * cell}
}

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestDistance_IdenticalFootprintsAreZero(t *testing.T) {
	m := squareMetrics(DiagonalsAlternating)
	for _, f := range []Footprint{tok(0, 0, 1, 1), tok(3, 4, 2, 2), tok(1, 1, 3, 1)} {
		if d := Distance(f, f, m); d != 0 {
			t.Fatalf("identical footprints %+v: expected 0, got %.3f", f, d)
		}
	}
}

func TestDistance_TouchingFootprintsAreZero(t *testing.T) {
	cases := []struct {
		name string
		a, b Footprint
	}{
		{"side", tok(0, 0, 1, 1), tok(1, 0, 1, 1)},
		{"below", tok(0, 0, 1, 1), tok(0, 1, 1, 1)},
		{"large beside small", tok(0, 0, 2, 2), tok(2, 1, 1, 1)},
		{"corner", tok(0, 0, 1, 1), tok(1, 1, 1, 1)},
	}
	for _, diag := range []Diagonals{DiagonalsAlternating, DiagonalsEquidistant} {
		m := squareMetrics(diag)
		for _, c := range cases {
			if d := Distance(c.a, c.b, m); d != 0 {
				t.Fatalf("%s (%s): expected 0, got %.3f", c.name, diag, d)
			}
		}
	}
}

func TestDistance_OneEmptyCellBetweenIsOne(t *testing.T) {
	m := squareMetrics(DiagonalsAlternating)
	a := tok(0, 0, 1, 1)
	b := tok(2, 0, 1, 1) // centres two cells apart
	if d := Distance(a, b, m); d != 1 {
		t.Fatalf("expected 1 grid unit, got %.3f", d)
	}
}

func TestDistance_ShrinkCollapsesSingleCellToCentre(t *testing.T) {
	r := tok(2, 3, 1, 1).Shrink(cell)
	if r.W != 0 || r.H != 0 {
		t.Fatalf("expected zero-size rect, got %.1fx%.1f", r.W, r.H)
	}
	if r.X != 250 || r.Y != 350 {
		t.Fatalf("expected centre (250,350), got (%.1f,%.1f)", r.X, r.Y)
	}

	big := tok(0, 0, 2, 2).Shrink(cell)
	if big.X != 50 || big.W != cell || big.H != cell {
		t.Fatalf("2x2 should shrink to a 1x1 core, got %+v", big)
	}
}

func TestDistance_LargeTokenMeasuresFromNearestSquare(t *testing.T) {
	m := squareMetrics(DiagonalsAlternating)
	a := tok(0, 0, 2, 2)
	b := tok(3, 0, 1, 1)
	if d := Distance(a, b, m); d != 1 {
		t.Fatalf("expected 1 (one empty column), got %.3f", d)
	}
}

func TestDistance_Symmetric(t *testing.T) {
	fps := []Footprint{
		tok(0, 0, 1, 1), tok(5, 2, 1, 1), tok(3, 7, 2, 2),
		tok(10, 10, 3, 3), tok(1, 9, 1, 2), {X: 37, Y: 410, Width: cell, Height: cell},
	}
	for _, diag := range []Diagonals{DiagonalsAlternating, DiagonalsEquidistant, DiagonalsEuclidean} {
		m := squareMetrics(diag)
		for _, a := range fps {
			for _, b := range fps {
				ab, ba := Distance(a, b, m), Distance(b, a, m)
				if !approx(ab, ba) {
					t.Fatalf("%s: d(a,b)=%.4f d(b,a)=%.4f for %+v %+v", diag, ab, ba, a, b)
				}
			}
		}
	}
}

func TestDistance_DiagonalRules(t *testing.T) {
	a := tok(0, 0, 1, 1)
	b := tok(3, 3, 1, 1) // two empty cells on each axis
	cases := []struct {
		diag Diagonals
		want float64
	}{
		{DiagonalsAlternating, 3},
		{DiagonalsEquidistant, 2},
		{DiagonalsEuclidean, 2 * math.Sqrt2},
	}
	for _, c := range cases {
		if d := Distance(a, b, squareMetrics(c.diag)); !approx(d, c.want) {
			t.Fatalf("%s: expected %.4f, got %.4f", c.diag, c.want, d)
		}
	}
}

func TestDistance_ScaledByGridDistance(t *testing.T) {
	m := squareMetrics(DiagonalsAlternating)
	m.Dimensions.Distance = 5
	if d := Distance(tok(0, 0, 1, 1), tok(3, 3, 1, 1), m); d != 15 {
		t.Fatalf("expected 15 ft, got %.1f", d)
	}
}

func TestDistance_OverlappingIsZero(t *testing.T) {
	m := squareMetrics(DiagonalsEuclidean)
	if d := Distance(tok(0, 0, 3, 3), tok(1, 1, 1, 1), m); d != 0 {
		t.Fatalf("expected 0 for overlap, got %.3f", d)
	}
}

func TestDistance_NoSceneIsNaN(t *testing.T) {
	m := Metrics{Type: Square}
	if d := Distance(tok(0, 0, 1, 1), tok(4, 0, 1, 1), m); !math.IsNaN(d) {
		t.Fatalf("expected NaN without dimensions, got %.3f", d)
	}
	m.Dimensions = &Dimensions{Size: 0}
	if d := Distance(tok(0, 0, 1, 1), tok(4, 0, 1, 1), m); !math.IsNaN(d) {
		t.Fatalf("expected NaN for zero cell size, got %.3f", d)
	}
}

type recordingMeasurer struct {
	a, b  Point
	calls int
}

func (r *recordingMeasurer) MeasureDistance(a, b Point) float64 {
	r.a, r.b = a, b
	r.calls++
	return 42
}

func TestDistance_NonSquareDelegatesToMeasurer(t *testing.T) {
	rec := &recordingMeasurer{}
	m := Metrics{
		Type:       HexRows,
		Dimensions: &Dimensions{Size: cell, Distance: 5},
		Measurer:   rec,
	}
	d := Distance(tok(0, 0, 1, 1), tok(2, 0, 2, 2), m)
	if d != 42 || rec.calls != 1 {
		t.Fatalf("expected one delegated call returning 42, got %.1f after %d calls", d, rec.calls)
	}
	if rec.a != (Point{X: 50, Y: 50}) || rec.b != (Point{X: 300, Y: 100}) {
		t.Fatalf("expected footprint centres, got %+v %+v", rec.a, rec.b)
	}
}

func TestDistance_GridlessIsEuclidean(t *testing.T) {
	m := Metrics{Type: Gridless, Dimensions: &Dimensions{Size: cell, Distance: 5}}
	a := Footprint{X: 0, Y: 0, Width: cell, Height: cell}
	b := Footprint{X: 300, Y: 400, Width: cell, Height: cell}
	if d := Distance(a, b, m); !approx(d, 25) {
		t.Fatalf("expected 25, got %.3f", d)
	}
}

func TestSnap_Square(t *testing.T) {
	m := squareMetrics(DiagonalsAlternating)
	p := m.Snap(Point{X: 251, Y: 99.5})
	if p != (Point{X: 200, Y: 0}) {
		t.Fatalf("expected (200,0), got %+v", p)
	}
	hex := Metrics{Type: HexRows, Dimensions: &Dimensions{Size: cell}}
	if q := hex.Snap(Point{X: 251, Y: 99.5}); q.X != 251 {
		t.Fatalf("non-square grids should not snap, got %+v", q)
	}
}

func TestParseType_RoundTrip(t *testing.T) {
	for _, ty := range []Type{Gridless, Square, HexRows, HexColumns} {
		got, ok := ParseType(ty.String())
		if !ok || got != ty {
			t.Fatalf("ParseType(%q) = %v, %v", ty.String(), got, ok)
		}
	}
	if _, ok := ParseType("octagon"); ok {
		t.Fatal("unknown grid type should not parse")
	}
}
