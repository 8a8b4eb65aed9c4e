package carve

import (
	"math"
	"testing"
)

func TestBuildGrid_PointCountAndHomogeneousRow(t *testing.T) {
	for _, size := range []int{2, 3, 5, 10} {
		grid, err := BuildGrid(size, Range{-1, 1}, Range{0, 2}, Range{-3, -1})
		if err != nil {
			t.Fatalf("size %d: %v", size, err)
		}
		if got, want := grid.Len(), size*size*size; got != want {
			t.Errorf("size %d: %d points, want %d", size, got, want)
		}
		for i := 0; i < grid.Len(); i++ {
			if grid.Points().At(3, i) != 1 {
				t.Fatalf("size %d: homogeneous row at column %d is %g, want 1", size, i, grid.Points().At(3, i))
			}
		}
	}
}

func TestBuildGrid_AxisBoundsExact(t *testing.T) {
	x, y, z := Range{-0.5, 1.5}, Range{2, 4}, Range{-7, 7}
	grid, err := BuildGrid(4, x, y, z)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	minMax := func(row int) (lo, hi float64) {
		lo, hi = math.Inf(1), math.Inf(-1)
		for i := 0; i < grid.Len(); i++ {
			v := grid.Points().At(row, i)
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
		return lo, hi
	}

	if lo, hi := minMax(0); lo != x.Min || hi != x.Max {
		t.Errorf("x bounds [%g, %g], want [%g, %g]", lo, hi, x.Min, x.Max)
	}
	if lo, hi := minMax(1); lo != y.Min || hi != y.Max {
		t.Errorf("y bounds [%g, %g], want [%g, %g]", lo, hi, y.Min, y.Max)
	}
	if lo, hi := minMax(2); lo != z.Min || hi != z.Max {
		t.Errorf("z bounds [%g, %g], want [%g, %g]", lo, hi, z.Min, z.Max)
	}
}

func TestBuildGrid_FlatteningOrder(t *testing.T) {
	// Column n = (a*S+b)*S + c carries (xs[b], ys[a], zs[c]).
	const size = 3
	grid, err := BuildGrid(size, Range{0, 2}, Range{10, 12}, Range{20, 22})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	xs, ys, zs := grid.AxisCoords()

	for a := 0; a < size; a++ {
		for b := 0; b < size; b++ {
			for c := 0; c < size; c++ {
				n := (a*size+b)*size + c
				gx, gy, gz := grid.Point(n)
				if gx != xs[b] || gy != ys[a] || gz != zs[c] {
					t.Fatalf("column %d = (%g, %g, %g), want (%g, %g, %g)",
						n, gx, gy, gz, xs[b], ys[a], zs[c])
				}
			}
		}
	}
}

func TestBuildGrid_AxisCoordsCopied(t *testing.T) {
	grid, err := BuildGrid(2, Range{0, 1}, Range{0, 1}, Range{0, 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	xs, _, _ := grid.AxisCoords()
	xs[0] = 99
	xs2, _, _ := grid.AxisCoords()
	if xs2[0] == 99 {
		t.Error("AxisCoords returned internal slice, want copy")
	}
}

func TestBuildGrid_Errors(t *testing.T) {
	cases := []struct {
		name    string
		size    int
		x, y, z Range
	}{
		{"size one", 1, Range{0, 1}, Range{0, 1}, Range{0, 1}},
		{"size zero", 0, Range{0, 1}, Range{0, 1}, Range{0, 1}},
		{"negative size", -3, Range{0, 1}, Range{0, 1}, Range{0, 1}},
		{"empty x range", 4, Range{1, 1}, Range{0, 1}, Range{0, 1}},
		{"inverted y range", 4, Range{0, 1}, Range{2, 1}, Range{0, 1}},
		{"inverted z range", 4, Range{0, 1}, Range{0, 1}, Range{5, -5}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := BuildGrid(tc.size, tc.x, tc.y, tc.z); err == nil {
				t.Error("expected error")
			}
		})
	}
}
