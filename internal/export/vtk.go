package export

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/visualhull/carve/internal/carve"
)

// WriteRectilinearGrid writes the full voxel grid and its per-voxel
// occupancy as a VTK XML rectilinear grid (.vtr), readable by paraview.
//
// Axis remap at this boundary: paraview's axes are assigned as
// world x → grid Y, world y → grid Z, world z → grid X. Combined with
// the carve.VoxelGrid flattening order (world z fastest, then x, then
// y) this makes the flat occupancy array exactly VTK point order
// (grid X fastest, then Y, then Z). The carving core itself knows
// nothing about this convention.
func WriteRectilinearGrid(w io.Writer, grid *carve.VoxelGrid, occupancy carve.OccupancyCount) error {
	if grid == nil {
		return fmt.Errorf("export: nil grid")
	}
	if len(occupancy) != grid.Len() {
		return fmt.Errorf("export: occupancy length %d does not match grid size %d", len(occupancy), grid.Len())
	}

	xs, ys, zs := grid.AxisCoords()
	// Remapped coordinate arrays: see the function comment.
	gridX, gridY, gridZ := zs, xs, ys
	s := grid.GridSize()

	bw := bufio.NewWriter(w)
	extent := fmt.Sprintf("0 %d 0 %d 0 %d", s-1, s-1, s-1)

	fmt.Fprintln(bw, `<?xml version="1.0"?>`)
	fmt.Fprintln(bw, `<VTKFile type="RectilinearGrid" version="0.1" byte_order="LittleEndian">`)
	fmt.Fprintf(bw, "  <RectilinearGrid WholeExtent=\"%s\">\n", extent)
	fmt.Fprintf(bw, "    <Piece Extent=\"%s\">\n", extent)

	fmt.Fprintln(bw, `      <PointData Scalars="occupancy">`)
	fmt.Fprint(bw, `        <DataArray type="Float32" Name="occupancy" format="ascii">`)
	for _, c := range occupancy {
		fmt.Fprintf(bw, " %d", c)
	}
	fmt.Fprintln(bw, `</DataArray>`)
	fmt.Fprintln(bw, `      </PointData>`)

	fmt.Fprintln(bw, `      <Coordinates>`)
	for _, axis := range []struct {
		name   string
		coords []float64
	}{{"X", gridX}, {"Y", gridY}, {"Z", gridZ}} {
		fmt.Fprintf(bw, "        <DataArray type=\"Float32\" Name=\"%s\" format=\"ascii\">", axis.name)
		for _, v := range axis.coords {
			fmt.Fprintf(bw, " %g", v)
		}
		fmt.Fprintln(bw, `</DataArray>`)
	}
	fmt.Fprintln(bw, `      </Coordinates>`)

	fmt.Fprintln(bw, `    </Piece>`)
	fmt.Fprintln(bw, `  </RectilinearGrid>`)
	fmt.Fprintln(bw, `</VTKFile>`)
	return bw.Flush()
}

// WriteRectilinearGridFile writes the .vtr document to path, creating
// parent directories as needed.
func WriteRectilinearGridFile(path string, grid *carve.VoxelGrid, occupancy carve.OccupancyCount) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("export: create output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: create grid file: %w", err)
	}
	defer f.Close()

	if err := WriteRectilinearGrid(f, grid, occupancy); err != nil {
		return fmt.Errorf("export: write grid: %w", err)
	}
	return nil
}
