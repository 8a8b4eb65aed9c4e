package carve

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

// pixelPlanePPM maps (x, y, z, 1) to pixels (x, y) with divisor 1,
// regardless of z.
func pixelPlanePPM() *mat.Dense {
	return mat.NewDense(3, 4, []float64{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 0, 1,
	})
}

func TestProject_PixelPlaneRoundTrip(t *testing.T) {
	grid, err := BuildGrid(3, Range{0, 10}, Range{0, 10}, Range{0, 10})
	if err != nil {
		t.Fatalf("build grid: %v", err)
	}

	pix, err := Project(pixelPlanePPM(), grid)
	if err != nil {
		t.Fatalf("project: %v", err)
	}
	if pix.Len() != grid.Len() {
		t.Fatalf("projected %d points, want %d", pix.Len(), grid.Len())
	}

	for i := 0; i < grid.Len(); i++ {
		x, y, _ := grid.Point(i)
		if pix.Px[i] != math.Round(x) || pix.Py[i] != math.Round(y) {
			t.Fatalf("point %d projected to (%g, %g), want (%g, %g)",
				i, pix.Px[i], pix.Py[i], math.Round(x), math.Round(y))
		}
	}
}

func TestProject_PerspectiveDivision(t *testing.T) {
	grid, err := BuildGrid(2, Range{2, 4}, Range{6, 8}, Range{1, 1000})
	if err != nil {
		t.Fatalf("build grid: %v", err)
	}

	// Divisor equals z, so pixels are (x/z, y/z) rounded.
	ppm := mat.NewDense(3, 4, []float64{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
	})
	pix, err := Project(ppm, grid)
	if err != nil {
		t.Fatalf("project: %v", err)
	}
	for i := 0; i < grid.Len(); i++ {
		x, y, z := grid.Point(i)
		if got, want := pix.Px[i], math.Round(x/z); got != want {
			t.Errorf("point %d px = %g, want %g", i, got, want)
		}
		if got, want := pix.Py[i], math.Round(y/z); got != want {
			t.Errorf("point %d py = %g, want %g", i, got, want)
		}
	}
}

func TestProject_ZeroDivisorPropagates(t *testing.T) {
	grid, err := BuildGrid(2, Range{-1, 1}, Range{-1, 1}, Range{-1, 1})
	if err != nil {
		t.Fatalf("build grid: %v", err)
	}

	// Divisor is z, which is ±1 across this grid except nowhere zero;
	// force zero divisors with a row that is identically 0.
	ppm := mat.NewDense(3, 4, []float64{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 0, 0,
	})
	pix, err := Project(ppm, grid)
	if err != nil {
		t.Fatalf("project: %v", err)
	}
	for i := 0; i < pix.Len(); i++ {
		finiteX := !math.IsInf(pix.Px[i], 0) && !math.IsNaN(pix.Px[i])
		finiteY := !math.IsInf(pix.Py[i], 0) && !math.IsNaN(pix.Py[i])
		if finiteX && finiteY {
			t.Fatalf("point %d finite (%g, %g) despite zero divisor", i, pix.Px[i], pix.Py[i])
		}
		if pix.InFrame(i, 10000, 10000) {
			t.Fatalf("degenerate point %d reported in frame", i)
		}
	}
}

func TestProject_RejectsWrongShape(t *testing.T) {
	grid, err := BuildGrid(2, Range{0, 1}, Range{0, 1}, Range{0, 1})
	if err != nil {
		t.Fatalf("build grid: %v", err)
	}
	if _, err := Project(mat.NewDense(4, 4, nil), grid); err == nil {
		t.Error("expected error for 4x4 projection matrix")
	}
	if _, err := Project(mat.NewDense(3, 3, nil), grid); err == nil {
		t.Error("expected error for 3x3 projection matrix")
	}
}

func TestPixelPoints_InFrameHalfOpen(t *testing.T) {
	pix := &PixelPoints{
		Px: []float64{0, 639, 640, -1, 100},
		Py: []float64{0, 479, 100, 100, 480},
	}
	want := []bool{true, true, false, false, false}
	for i, w := range want {
		if got := pix.InFrame(i, 640, 480); got != w {
			t.Errorf("InFrame(%d) = %v, want %v", i, got, w)
		}
	}
}
