package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"path/filepath"

	"gocv.io/x/gocv"
	"gonum.org/v1/gonum/mat"

	"github.com/visualhull/carve/internal/carve"
	"github.com/visualhull/carve/internal/config"
	"github.com/visualhull/carve/internal/dataset"
	"github.com/visualhull/carve/internal/export"
	"github.com/visualhull/carve/internal/runstore"
	"github.com/visualhull/carve/internal/silhouette"
	"github.com/visualhull/carve/internal/viz"
)

var (
	imagesDir    = flag.String("images", "data/images", "Directory of calibrated object images")
	matricesFile = flag.String("matrices", "data/cameras.json", "JSON file of 3x4 projection matrices")
	configFile   = flag.String("config", "", "Optional pipeline config JSON (partial overrides allowed)")
	outDir       = flag.String("out", "out", "Output directory")
	gridSize     = flag.Int("grid-size", 0, "Voxel grid resolution per axis (overrides config)")
	minOccupancy = flag.Int("min-occupancy", -1, "Minimum views a voxel must be consistent with (-1 = all views)")
	workers      = flag.Int("workers", 0, "Concurrent voting goroutines (0 = one per CPU)")
	dbPath       = flag.String("db", "", "Optional SQLite database to record the run in")
	overlays     = flag.Bool("overlays", false, "Write per-view carving overlay images")
)

func main() {
	flag.Parse()

	cfg := config.EmptyPipelineConfig()
	if *configFile != "" {
		loaded, err := config.LoadPipelineConfig(*configFile)
		if err != nil {
			log.Fatalf("[carve] config: %v", err)
		}
		cfg = loaded
	}

	size := cfg.GetGridSize()
	if *gridSize > 0 {
		size = *gridSize
	}
	workerCount := cfg.GetWorkers()
	if *workers > 0 {
		workerCount = *workers
	}

	// Load the calibrated views.
	images, err := dataset.LoadImages(*imagesDir)
	if err != nil {
		log.Fatalf("[carve] load images: %v", err)
	}
	defer func() {
		for i := range images {
			images[i].Close()
		}
	}()

	ppms, err := dataset.LoadProjectionMatrices(*matricesFile)
	if err != nil {
		log.Fatalf("[carve] load matrices: %v", err)
	}
	if err := dataset.ValidatePairing(len(images), len(ppms)); err != nil {
		log.Fatalf("[carve] %v", err)
	}
	log.Printf("[carve] loaded %d views from %s", len(images), *imagesDir)

	// Segment the silhouettes.
	top, bottom, left, right := cfg.GetBorders()
	opts := silhouette.Options{
		Borders:    silhouette.Borders{Top: top, Bottom: bottom, Left: left, Right: right},
		BlurKernel: cfg.GetBlurKernel(),
		LABChannel: cfg.GetLABChannel(),
	}
	masks, err := silhouette.ExtractMasks(images, opts)
	if err != nil {
		log.Fatalf("[carve] segment: %v", err)
	}
	if err := dataset.CheckMaskDimensions(images, masks); err != nil {
		log.Fatalf("[carve] %v", err)
	}

	// Resolve the occupancy threshold: unset means strict intersection.
	occupancy := cfg.GetMinOccupancy()
	if *minOccupancy >= 0 {
		occupancy = *minOccupancy
	}
	if occupancy < 0 {
		occupancy = len(images)
	}

	xmin, xmax := cfg.GetXRange()
	ymin, ymax := cfg.GetYRange()
	zmin, zmax := cfg.GetZRange()
	carveCfg := carve.Config{
		GridSize:     size,
		X:            carve.Range{Min: xmin, Max: xmax},
		Y:            carve.Range{Min: ymin, Max: ymax},
		Z:            carve.Range{Min: zmin, Max: zmax},
		MinOccupancy: occupancy,
		Workers:      workerCount,
	}
	carver, err := carve.NewCarver(carveCfg)
	if err != nil {
		log.Fatalf("[carve] %v", err)
	}

	views := make([]carve.View, len(images))
	for i := range images {
		views[i] = carve.View{Mask: masks[i], PPM: ppms[i]}
	}

	res, err := carver.Run(views)
	if err != nil {
		log.Fatalf("[carve] %v", err)
	}

	// Export results.
	pointsFile := filepath.Join(*outDir, "points.txt")
	if err := export.WritePointsFile(pointsFile, res.Points); err != nil {
		log.Fatalf("[carve] %v", err)
	}
	gridFile := filepath.Join(*outDir, "occupancy.vtr")
	if err := export.WriteRectilinearGridFile(gridFile, res.Grid, res.Occupancy); err != nil {
		log.Fatalf("[carve] %v", err)
	}
	reportFile := filepath.Join(*outDir, "occupancy.html")
	if err := viz.WriteOccupancyReportFile(reportFile, res.Occupancy, res.Views); err != nil {
		log.Fatalf("[carve] %v", err)
	}
	plotFile := filepath.Join(*outDir, "survival.png")
	if err := viz.SaveSurvivalPlot(plotFile, res.Occupancy, res.Views); err != nil {
		log.Fatalf("[carve] %v", err)
	}
	log.Printf("[carve] wrote %s, %s, %s, %s", pointsFile, gridFile, reportFile, plotFile)

	if *overlays {
		writeOverlays(images, ppms, res)
	}

	log.Printf("[carve] kept %d of %d voxels across %d views in %s",
		res.Points.Len(), res.Grid.Len(), res.Views, res.Elapsed)

	if *dbPath != "" {
		recordRun(carveCfg, res)
	}
}

func writeOverlays(images []gocv.Mat, ppms []*mat.Dense, res *carve.Result) {
	for i := range images {
		overlay, err := viz.DrawCarvingOverlay(images[i], ppms[i], res.Points)
		if err != nil {
			log.Printf("[carve] overlay view %d: %v", i, err)
			continue
		}
		path := filepath.Join(*outDir, fmt.Sprintf("overlay_%02d.png", i))
		if ok := gocv.IMWrite(path, overlay); !ok {
			log.Printf("[carve] overlay view %d: write %s failed", i, path)
		}
		overlay.Close()
	}
}

func recordRun(cfg carve.Config, res *carve.Result) {
	store, err := runstore.Open(*dbPath)
	if err != nil {
		log.Printf("[carve] run store: %v", err)
		return
	}
	defer store.Close()

	params, _ := json.Marshal(map[string]interface{}{
		"workers": cfg.Workers,
	})
	run := &runstore.Run{
		GridSize:      cfg.GridSize,
		XMin:          cfg.X.Min,
		XMax:          cfg.X.Max,
		YMin:          cfg.Y.Min,
		YMax:          cfg.Y.Max,
		ZMin:          cfg.Z.Min,
		ZMax:          cfg.Z.Max,
		MinOccupancy:  cfg.MinOccupancy,
		Views:         res.Views,
		GridPoints:    res.Grid.Len(),
		CarvedPoints:  res.Points.Len(),
		DurationNanos: res.Elapsed.Nanoseconds(),
		ParamsJSON:    params,
	}
	if err := store.Insert(run); err != nil {
		log.Printf("[carve] record run: %v", err)
		return
	}
	log.Printf("[carve] recorded run %s in %s", run.RunID, *dbPath)
}
