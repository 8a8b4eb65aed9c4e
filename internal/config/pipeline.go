package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// PipelineConfig holds tunable parameters for a carving run. Fields are
// pointers so a partial JSON file only overrides what it names; the
// Get* accessors supply defaults for everything else. The defaults
// match the dino turntable dataset.
type PipelineConfig struct {
	// Grid params
	GridSize *int     `json:"grid_size,omitempty"`
	XMin     *float64 `json:"x_min,omitempty"`
	XMax     *float64 `json:"x_max,omitempty"`
	YMin     *float64 `json:"y_min,omitempty"`
	YMax     *float64 `json:"y_max,omitempty"`
	ZMin     *float64 `json:"z_min,omitempty"`
	ZMax     *float64 `json:"z_max,omitempty"`

	// Carving params
	MinOccupancy *int `json:"min_occupancy,omitempty"`
	Workers      *int `json:"workers,omitempty"`

	// Segmentation params
	BorderTop    *int `json:"border_top,omitempty"`
	BorderBottom *int `json:"border_bottom,omitempty"`
	BorderLeft   *int `json:"border_left,omitempty"`
	BorderRight  *int `json:"border_right,omitempty"`
	BlurKernel   *int `json:"blur_kernel,omitempty"`
	LABChannel   *int `json:"lab_channel,omitempty"`
}

// EmptyPipelineConfig returns a PipelineConfig with all fields unset.
func EmptyPipelineConfig() *PipelineConfig {
	return &PipelineConfig{}
}

// LoadPipelineConfig loads a PipelineConfig from a JSON file. Fields
// omitted from the file retain their defaults, so partial configs are
// safe.
func LoadPipelineConfig(path string) (*PipelineConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyPipelineConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks that set values are usable.
func (c *PipelineConfig) Validate() error {
	if c.GridSize != nil && *c.GridSize < 2 {
		return fmt.Errorf("grid_size must be >= 2, got %d", *c.GridSize)
	}
	if c.MinOccupancy != nil && *c.MinOccupancy < 0 {
		return fmt.Errorf("min_occupancy must be non-negative, got %d", *c.MinOccupancy)
	}
	if c.Workers != nil && *c.Workers < 0 {
		return fmt.Errorf("workers must be non-negative, got %d", *c.Workers)
	}
	if c.BlurKernel != nil && (*c.BlurKernel < 1 || *c.BlurKernel%2 == 0) {
		return fmt.Errorf("blur_kernel must be a positive odd number, got %d", *c.BlurKernel)
	}
	if c.LABChannel != nil && (*c.LABChannel < 0 || *c.LABChannel > 2) {
		return fmt.Errorf("lab_channel must be 0, 1 or 2, got %d", *c.LABChannel)
	}
	for _, b := range []*int{c.BorderTop, c.BorderBottom, c.BorderLeft, c.BorderRight} {
		if b != nil && *b < 0 {
			return fmt.Errorf("border sizes must be non-negative, got %d", *b)
		}
	}
	if xmin, xmax := c.GetXRange(); xmin >= xmax {
		return fmt.Errorf("x range [%g, %g] is empty", xmin, xmax)
	}
	if ymin, ymax := c.GetYRange(); ymin >= ymax {
		return fmt.Errorf("y range [%g, %g] is empty", ymin, ymax)
	}
	if zmin, zmax := c.GetZRange(); zmin >= zmax {
		return fmt.Errorf("z range [%g, %g] is empty", zmin, zmax)
	}
	return nil
}

// GetGridSize returns the grid_size value or the default.
func (c *PipelineConfig) GetGridSize() int {
	if c.GridSize == nil {
		return 120
	}
	return *c.GridSize
}

// GetXRange returns the world-space x bounds or the defaults.
func (c *PipelineConfig) GetXRange() (float64, float64) {
	min, max := -0.07, 0.02
	if c.XMin != nil {
		min = *c.XMin
	}
	if c.XMax != nil {
		max = *c.XMax
	}
	return min, max
}

// GetYRange returns the world-space y bounds or the defaults.
func (c *PipelineConfig) GetYRange() (float64, float64) {
	min, max := -0.02, 0.07
	if c.YMin != nil {
		min = *c.YMin
	}
	if c.YMax != nil {
		max = *c.YMax
	}
	return min, max
}

// GetZRange returns the world-space z bounds or the defaults.
func (c *PipelineConfig) GetZRange() (float64, float64) {
	min, max := -0.07, 0.02
	if c.ZMin != nil {
		min = *c.ZMin
	}
	if c.ZMax != nil {
		max = *c.ZMax
	}
	return min, max
}

// GetMinOccupancy returns the min_occupancy value, or -1 meaning
// "all views" (strict intersection) when unset.
func (c *PipelineConfig) GetMinOccupancy() int {
	if c.MinOccupancy == nil {
		return -1
	}
	return *c.MinOccupancy
}

// GetWorkers returns the workers value or 0 (one per CPU).
func (c *PipelineConfig) GetWorkers() int {
	if c.Workers == nil {
		return 0
	}
	return *c.Workers
}

// GetBorders returns the segmentation crop borders or the defaults.
func (c *PipelineConfig) GetBorders() (top, bottom, left, right int) {
	top, bottom, left, right = 5, 0, 0, 30
	if c.BorderTop != nil {
		top = *c.BorderTop
	}
	if c.BorderBottom != nil {
		bottom = *c.BorderBottom
	}
	if c.BorderLeft != nil {
		left = *c.BorderLeft
	}
	if c.BorderRight != nil {
		right = *c.BorderRight
	}
	return top, bottom, left, right
}

// GetBlurKernel returns the blur_kernel value or the default.
func (c *PipelineConfig) GetBlurKernel() int {
	if c.BlurKernel == nil {
		return 21
	}
	return *c.BlurKernel
}

// GetLABChannel returns the lab_channel value or the default B channel.
func (c *PipelineConfig) GetLABChannel() int {
	if c.LABChannel == nil {
		return 2
	}
	return *c.LABChannel
}
