// Package export writes carving results to disk: a delimited point
// record file and a VTK XML rectilinear grid for paraview-style
// volume inspection.
package export
