// Package viz renders carving results for humans: voxel and carving
// overlays on the source images, an occupancy report as an HTML chart
// page, and a threshold survival plot as PNG.
//
// Presentation only: no carving decisions are made here.
package viz
