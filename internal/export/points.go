package export

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/visualhull/carve/internal/carve"
)

// WritePoints writes one "x, y, z, occ" record per reconstructed point.
func WritePoints(w io.Writer, points *carve.ReconstructedPoints) error {
	if points == nil {
		return fmt.Errorf("export: nil point set")
	}

	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintln(bw, "x, y, z, occ"); err != nil {
		return err
	}
	for i := 0; i < points.Len(); i++ {
		x, y, z := points.Point(i)
		if _, err := fmt.Fprintf(bw, "%g, %g, %g, %d\n", x, y, z, points.Counts[i]); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WritePointsFile writes the point records to path, creating parent
// directories as needed.
func WritePointsFile(path string, points *carve.ReconstructedPoints) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("export: create output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: create points file: %w", err)
	}
	defer f.Close()

	if err := WritePoints(f, points); err != nil {
		return fmt.Errorf("export: write points: %w", err)
	}
	return nil
}
