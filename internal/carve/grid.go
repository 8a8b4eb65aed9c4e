package carve

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Range is a closed world-space interval for one grid axis.
type Range struct {
	Min float64
	Max float64
}

// Valid reports whether the range has positive extent.
func (r Range) Valid() bool { return r.Min < r.Max }

// VoxelGrid is a dense lattice of gridSize³ points in homogeneous world
// coordinates, stored as a 4×M matrix with rows x, y, z, 1. The grid is
// immutable once built; the column index is the voxel's identity and is
// preserved across every vote vector and the final aggregate.
type VoxelGrid struct {
	points   *mat.Dense
	gridSize int

	// Scaled per-axis coordinate values, each of length gridSize.
	// Kept for rectilinear re-interpretation by exporters.
	xs, ys, zs []float64
}

// BuildGrid builds the voxel lattice for the given per-axis resolution
// and world-space bounds. gridSize must be at least 2 so each axis has
// spread to rescale.
//
// Flattening order: for axis indices a (y), b (x), c (z) the column is
// n = (a*gridSize+b)*gridSize + c. Exporters that re-interpret the flat
// grid as a rectilinear structure rely on exactly this order.
func BuildGrid(gridSize int, x, y, z Range) (*VoxelGrid, error) {
	if gridSize < 2 {
		return nil, fmt.Errorf("carve: grid size must be >= 2, got %d", gridSize)
	}
	for _, r := range []struct {
		name string
		r    Range
	}{{"x", x}, {"y", y}, {"z", z}} {
		if !r.r.Valid() {
			return nil, fmt.Errorf("carve: invalid %s range [%g, %g]", r.name, r.r.Min, r.r.Max)
		}
	}

	idx := make([]float64, gridSize)
	for i := range idx {
		idx[i] = float64(i)
	}

	xs, err := MinMaxScale(idx, x.Min, x.Max)
	if err != nil {
		return nil, fmt.Errorf("carve: scale x axis: %w", err)
	}
	ys, err := MinMaxScale(idx, y.Min, y.Max)
	if err != nil {
		return nil, fmt.Errorf("carve: scale y axis: %w", err)
	}
	zs, err := MinMaxScale(idx, z.Min, z.Max)
	if err != nil {
		return nil, fmt.Errorf("carve: scale z axis: %w", err)
	}

	m := gridSize * gridSize * gridSize
	points := mat.NewDense(4, m, nil)
	n := 0
	for a := 0; a < gridSize; a++ {
		for b := 0; b < gridSize; b++ {
			for c := 0; c < gridSize; c++ {
				points.Set(0, n, xs[b])
				points.Set(1, n, ys[a])
				points.Set(2, n, zs[c])
				points.Set(3, n, 1)
				n++
			}
		}
	}

	return &VoxelGrid{points: points, gridSize: gridSize, xs: xs, ys: ys, zs: zs}, nil
}

// Len returns the number of voxel points.
func (g *VoxelGrid) Len() int {
	_, m := g.points.Dims()
	return m
}

// GridSize returns the per-axis resolution.
func (g *VoxelGrid) GridSize() int { return g.gridSize }

// Points returns the 4×M homogeneous coordinate matrix as a read-only view.
func (g *VoxelGrid) Points() mat.Matrix { return g.points }

// Point returns the world coordinates of voxel i.
func (g *VoxelGrid) Point(i int) (x, y, z float64) {
	return g.points.At(0, i), g.points.At(1, i), g.points.At(2, i)
}

// AxisCoords returns the scaled coordinate values along each world axis,
// each of length GridSize. The slices are copies.
func (g *VoxelGrid) AxisCoords() (xs, ys, zs []float64) {
	xs = append([]float64(nil), g.xs...)
	ys = append([]float64(nil), g.ys...)
	zs = append([]float64(nil), g.zs...)
	return xs, ys, zs
}
