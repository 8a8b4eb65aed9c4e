package carve

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// ErrLengthMismatch marks ragged vote vectors or an occupancy count
// whose length does not match the grid.
var ErrLengthMismatch = errors.New("carve: length mismatch")

// OccupancyCount is the per-voxel number of views whose silhouette is
// consistent with the voxel. Values lie in [0, number of views].
type OccupancyCount []int

// Aggregate sums per-view vote vectors into one occupancy count per
// voxel. Summation is commutative, so vote order does not matter.
func Aggregate(votes []VoteVector) (OccupancyCount, error) {
	if len(votes) == 0 {
		return nil, fmt.Errorf("carve: no vote vectors to aggregate")
	}
	m := len(votes[0])
	counts := make(OccupancyCount, m)
	for vi, v := range votes {
		if len(v) != m {
			return nil, fmt.Errorf("vote vector %d has length %d, want %d: %w", vi, len(v), m, ErrLengthMismatch)
		}
		for i, b := range v {
			counts[i] += int(b)
		}
	}
	return counts, nil
}

// ReconstructedPoints is the carving result: the surviving voxel
// columns in homogeneous world coordinates plus each point's occupancy
// count, in original grid order.
type ReconstructedPoints struct {
	Points *mat.Dense // 4×K
	Counts []int      // length K
}

// Len returns the number of surviving points.
func (r *ReconstructedPoints) Len() int { return len(r.Counts) }

// Point returns the world coordinates of surviving point i.
func (r *ReconstructedPoints) Point(i int) (x, y, z float64) {
	return r.Points.At(0, i), r.Points.At(1, i), r.Points.At(2, i)
}

// FilterByMinimumOccupancy returns the voxel points whose occupancy
// count is at least minOccupancy, preserving relative order. A
// threshold of 0 keeps the whole grid; a threshold above the view
// count yields an empty result with a non-nil, zero-column matrix
// replaced by nil Points.
func FilterByMinimumOccupancy(grid *VoxelGrid, counts OccupancyCount, minOccupancy int) (*ReconstructedPoints, error) {
	if len(counts) != grid.Len() {
		return nil, fmt.Errorf("occupancy length %d does not match grid size %d: %w", len(counts), grid.Len(), ErrLengthMismatch)
	}

	keep := make([]int, 0, len(counts))
	for i, c := range counts {
		if c >= minOccupancy {
			keep = append(keep, i)
		}
	}

	out := &ReconstructedPoints{Counts: make([]int, len(keep))}
	if len(keep) == 0 {
		return out, nil
	}

	pts := mat.NewDense(4, len(keep), nil)
	for k, i := range keep {
		x, y, z := grid.Point(i)
		pts.Set(0, k, x)
		pts.Set(1, k, y)
		pts.Set(2, k, z)
		pts.Set(3, k, 1)
		out.Counts[k] = counts[i]
	}
	out.Points = pts
	return out, nil
}
