// Package carve implements shape-from-silhouette voxel carving.
//
// Responsibilities: voxel grid generation in homogeneous world
// coordinates, projection of grid points into camera pixel space,
// per-view occupancy voting against silhouette masks, and vote
// aggregation into a thresholded point cloud.
// Key types: VoxelGrid, Mask, VoteVector, OccupancyCount, Carver.
//
// Dependency rule: carve owns the geometry and voting only. Image
// decoding, mask derivation, export and visualization live in sibling
// packages and communicate with this one through plain values.
package carve
