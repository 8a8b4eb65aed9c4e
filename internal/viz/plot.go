package viz

import (
	"fmt"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/visualhull/carve/internal/carve"
)

// SaveSurvivalPlot renders the threshold survival curve as a PNG:
// how many voxels remain at each minimum-occupancy threshold.
func SaveSurvivalPlot(path string, occupancy carve.OccupancyCount, views int) error {
	curve := SurvivalCurve(occupancy, views)

	p := plot.New()
	p.Title.Text = "Voxels surviving by minimum occupancy"
	p.X.Label.Text = "Minimum occupancy"
	p.Y.Label.Text = "Surviving voxels"

	pts := make(plotter.XYs, len(curve))
	for t, n := range curve {
		pts[t] = plotter.XY{X: float64(t), Y: float64(n)}
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("viz: survival line: %w", err)
	}
	line.Width = vg.Points(1)
	p.Add(line)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("viz: create output directory: %w", err)
	}
	if err := p.Save(8*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("viz: save survival plot: %w", err)
	}
	return nil
}
