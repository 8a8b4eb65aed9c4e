package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/mat"
)

// matricesFile is the on-disk JSON schema for camera calibration data:
// an ordered list of 3×4 row-major perspective projection matrices,
// one per image in sorted image-file order.
type matricesFile struct {
	Matrices [][][]float64 `json:"matrices"`
}

// LoadProjectionMatrices reads per-view 3×4 projection matrices from a
// JSON file. Matrix order must match the sorted image order; there is
// no intrinsic image-to-matrix key.
func LoadProjectionMatrices(path string) ([]*mat.Dense, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("dataset: matrices file must have .json extension, got %q", ext)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("dataset: read matrices file: %w", err)
	}

	var f matricesFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("dataset: parse matrices JSON: %w", err)
	}
	if len(f.Matrices) == 0 {
		return nil, fmt.Errorf("dataset: %s contains no matrices", cleanPath)
	}

	out := make([]*mat.Dense, len(f.Matrices))
	for i, rows := range f.Matrices {
		if len(rows) != 3 {
			return nil, fmt.Errorf("dataset: matrix %d has %d rows, want 3", i, len(rows))
		}
		flat := make([]float64, 0, 12)
		for r, row := range rows {
			if len(row) != 4 {
				return nil, fmt.Errorf("dataset: matrix %d row %d has %d columns, want 4", i, r, len(row))
			}
			flat = append(flat, row...)
		}
		out[i] = mat.NewDense(3, 4, flat)
	}
	return out, nil
}

// ValidatePairing checks the positional image/matrix invariant before
// any projection work starts.
func ValidatePairing(imageCount, matrixCount int) error {
	if imageCount == 0 {
		return fmt.Errorf("dataset: no images loaded")
	}
	if matrixCount == 0 {
		return fmt.Errorf("dataset: no projection matrices loaded")
	}
	if imageCount != matrixCount {
		return fmt.Errorf("dataset: %d images but %d projection matrices", imageCount, matrixCount)
	}
	return nil
}
