package viz

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/visualhull/carve/internal/carve"
)

// OccupancyHistogram counts how many voxels carry each occupancy value
// 0..views.
func OccupancyHistogram(occupancy carve.OccupancyCount, views int) []int {
	hist := make([]int, views+1)
	for _, c := range occupancy {
		if c >= 0 && c <= views {
			hist[c]++
		}
	}
	return hist
}

// SurvivalCurve returns, for each threshold 0..views+1, the number of
// voxels whose occupancy meets the threshold. The curve is
// non-increasing; the final entry is always 0 unless counts exceed the
// view count.
func SurvivalCurve(occupancy carve.OccupancyCount, views int) []int {
	curve := make([]int, views+2)
	for _, c := range occupancy {
		for t := 0; t <= c && t < len(curve); t++ {
			curve[t]++
		}
	}
	return curve
}

// WriteOccupancyReport renders an HTML page with an occupancy histogram
// bar chart and a threshold survival line chart.
func WriteOccupancyReport(w io.Writer, occupancy carve.OccupancyCount, views int) error {
	hist := OccupancyHistogram(occupancy, views)
	curve := SurvivalCurve(occupancy, views)

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Voxel occupancy histogram",
			Subtitle: fmt.Sprintf("%d voxels across %d views", len(occupancy), views),
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: "occupancy"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "voxels"}),
	)
	labels := make([]string, len(hist))
	barData := make([]opts.BarData, len(hist))
	for i, n := range hist {
		labels[i] = fmt.Sprintf("%d", i)
		barData[i] = opts.BarData{Value: n}
	}
	bar.SetXAxis(labels).AddSeries("voxels", barData)

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Points surviving by minimum occupancy",
			Subtitle: "threshold sweep from union (0) past intersection (N)",
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: "minimum occupancy"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "surviving points"}),
	)
	thresholds := make([]string, len(curve))
	lineData := make([]opts.LineData, len(curve))
	for t, n := range curve {
		thresholds[t] = fmt.Sprintf("%d", t)
		lineData[t] = opts.LineData{Value: n}
	}
	line.SetXAxis(thresholds).AddSeries("surviving", lineData)

	page := components.NewPage()
	page.AddCharts(bar, line)
	return page.Render(w)
}

// WriteOccupancyReportFile writes the report page to path.
func WriteOccupancyReportFile(path string, occupancy carve.OccupancyCount, views int) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("viz: create output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("viz: create report file: %w", err)
	}
	defer f.Close()

	if err := WriteOccupancyReport(f, occupancy, views); err != nil {
		return fmt.Errorf("viz: render report: %w", err)
	}
	return nil
}
