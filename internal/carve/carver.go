package carve

import (
	"fmt"
	"log"
	"runtime"
	"sync"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/visualhull/carve/internal/timeutil"
)

// Config holds the parameters of one carving run.
type Config struct {
	GridSize     int
	X, Y, Z      Range
	MinOccupancy int

	// Workers bounds the number of concurrent per-view voting
	// goroutines. Zero means runtime.NumCPU().
	Workers int
}

// Validate checks the configuration eagerly, before any projection work.
func (c Config) Validate() error {
	if c.GridSize < 2 {
		return fmt.Errorf("carve: grid size must be >= 2, got %d", c.GridSize)
	}
	for _, r := range []struct {
		name string
		r    Range
	}{{"x", c.X}, {"y", c.Y}, {"z", c.Z}} {
		if !r.r.Valid() {
			return fmt.Errorf("carve: invalid %s range [%g, %g]", r.name, r.r.Min, r.r.Max)
		}
	}
	if c.MinOccupancy < 0 {
		return fmt.Errorf("carve: minimum occupancy must be non-negative, got %d", c.MinOccupancy)
	}
	if c.Workers < 0 {
		return fmt.Errorf("carve: worker count must be non-negative, got %d", c.Workers)
	}
	return nil
}

// View pairs one silhouette mask with the projection matrix of the
// camera it was derived from. The pairing is positional: callers must
// keep masks and matrices index-aligned.
type View struct {
	Mask *Mask
	PPM  mat.Matrix
}

// Result is the output of one carving run.
type Result struct {
	Grid      *VoxelGrid
	Occupancy OccupancyCount
	Points    *ReconstructedPoints
	Views     int
	Elapsed   time.Duration
}

// Carver runs the full voxel carving pipeline: build the grid once,
// vote once per view, aggregate, filter.
type Carver struct {
	cfg   Config
	clock timeutil.Clock
}

// NewCarver validates the configuration and returns a Carver.
func NewCarver(cfg Config) (*Carver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Carver{cfg: cfg, clock: timeutil.RealClock{}}, nil
}

// Run carves the volume observed by the given views.
//
// Voting is independent per view: the grid and every mask are
// read-shared across a bounded pool of goroutines, each writing only
// its own vote slot, so the reduction is deterministic regardless of
// scheduling.
func (c *Carver) Run(views []View) (*Result, error) {
	start := c.clock.Now()

	if len(views) == 0 {
		return nil, fmt.Errorf("carve: no views supplied")
	}
	if c.cfg.MinOccupancy > len(views) {
		log.Printf("[carve] minimum occupancy %d exceeds view count %d; result will be empty",
			c.cfg.MinOccupancy, len(views))
	}
	for i, v := range views {
		if v.Mask == nil {
			return nil, fmt.Errorf("carve: view %d has no mask", i)
		}
		if v.PPM == nil {
			return nil, fmt.Errorf("carve: view %d has no projection matrix", i)
		}
		if r, cc := v.PPM.Dims(); r != 3 || cc != 4 {
			return nil, fmt.Errorf("carve: view %d projection matrix is %dx%d, want 3x4", i, r, cc)
		}
	}

	grid, err := BuildGrid(c.cfg.GridSize, c.cfg.X, c.cfg.Y, c.cfg.Z)
	if err != nil {
		return nil, err
	}
	log.Printf("[carve] grid built: %d points (%d^3), %d views", grid.Len(), c.cfg.GridSize, len(views))

	workers := c.cfg.Workers
	if workers == 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(views) {
		workers = len(views)
	}

	votes := make([]VoteVector, len(views))
	errs := make([]error, len(views))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				votes[i], errs[i] = Vote(views[i].Mask, views[i].PPM, grid)
			}
		}()
	}
	for i := range views {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("carve: view %d: %w", i, err)
		}
	}

	occupancy, err := Aggregate(votes)
	if err != nil {
		return nil, err
	}
	points, err := FilterByMinimumOccupancy(grid, occupancy, c.cfg.MinOccupancy)
	if err != nil {
		return nil, err
	}

	elapsed := c.clock.Since(start)
	log.Printf("[carve] carved %d/%d points at min occupancy %d in %s",
		points.Len(), grid.Len(), c.cfg.MinOccupancy, elapsed)

	return &Result{
		Grid:      grid,
		Occupancy: occupancy,
		Points:    points,
		Views:     len(views),
		Elapsed:   elapsed,
	}, nil
}
