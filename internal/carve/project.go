package carve

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// PixelPoints holds the rounded pixel coordinates of every voxel point
// under one camera, column-aligned with the source VoxelGrid.
//
// Coordinates are kept as float64 rather than int so that degenerate
// projections (perspective divisor of zero) propagate as ±Inf or NaN
// instead of aborting the pass; the in-frame bounds test rejects them.
type PixelPoints struct {
	Px []float64
	Py []float64
}

// Len returns the number of projected points.
func (p *PixelPoints) Len() int { return len(p.Px) }

// InFrame reports whether point i lands inside a W×H image using
// half-open bounds [0, w) × [0, h). NaN and ±Inf coordinates are never
// in frame.
func (p *PixelPoints) InFrame(i, w, h int) bool {
	x, y := p.Px[i], p.Py[i]
	return x >= 0 && x < float64(w) && y >= 0 && y < float64(h)
}

// Project maps every voxel point through a 3×4 perspective projection
// matrix into pixel space: ppm @ points, perspective division by the
// third row, then rounding to the nearest integer.
func Project(ppm mat.Matrix, grid *VoxelGrid) (*PixelPoints, error) {
	r, c := ppm.Dims()
	if r != 3 || c != 4 {
		return nil, fmt.Errorf("carve: projection matrix must be 3x4, got %dx%d", r, c)
	}

	m := grid.Len()
	var proj mat.Dense
	proj.Mul(ppm, grid.Points())

	px := make([]float64, m)
	py := make([]float64, m)
	for j := 0; j < m; j++ {
		w := proj.At(2, j)
		// w == 0 yields ±Inf/NaN; deliberately propagated so one
		// degenerate point cannot invalidate the rest of the pass.
		px[j] = math.Round(proj.At(0, j) / w)
		py[j] = math.Round(proj.At(1, j) / w)
	}
	return &PixelPoints{Px: px, Py: py}, nil
}
