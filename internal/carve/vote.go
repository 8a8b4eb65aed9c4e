package carve

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// VoteVector records, for one view, whether each voxel's projection
// landed on a foreground pixel of that view's silhouette mask.
// Length matches the VoxelGrid; values are 0 or 1.
type VoteVector []uint8

// Vote projects the whole voxel grid into one camera and classifies
// every point against that camera's silhouette mask.
//
// A point votes 1 only when it is in frame (half-open [0,W)×[0,H)) and
// the mask pixel under it is foreground. Out-of-frame points always
// vote 0: a voxel invisible to a camera is counted against in that
// view, not abstained. This conservative policy matches strict
// silhouette consistency and must not be relaxed to abstention.
func Vote(mask *Mask, ppm mat.Matrix, grid *VoxelGrid) (VoteVector, error) {
	if mask == nil {
		return nil, fmt.Errorf("carve: nil mask")
	}

	pix, err := Project(ppm, grid)
	if err != nil {
		return nil, fmt.Errorf("carve: vote projection: %w", err)
	}

	votes := make(VoteVector, grid.Len())
	for i := range votes {
		if !pix.InFrame(i, mask.Width, mask.Height) {
			continue
		}
		if mask.At(int(pix.Px[i]), int(pix.Py[i])) {
			votes[i] = 1
		}
	}
	return votes, nil
}
