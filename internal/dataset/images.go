package dataset

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gocv.io/x/gocv"

	"github.com/visualhull/carve/internal/carve"
)

// ErrMaskDimensions marks a mask whose pixel dimensions do not match
// its source image.
var ErrMaskDimensions = errors.New("dataset: mask dimensions do not match image")

// ListImageFiles returns the image files in dir sorted by name, which
// fixes the view order the projection matrices are paired against.
func ListImageFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("dataset: read image directory: %w", err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if IsImageFile(name) {
			files = append(files, filepath.Join(dir, name))
		}
	}
	sort.Strings(files)
	return files, nil
}

// IsImageFile reports whether the file name has a supported image extension.
func IsImageFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".jpg", ".jpeg", ".png", ".ppm", ".bmp", ".tif", ".tiff":
		return true
	}
	return false
}

// LoadImages reads every image file in dir (sorted by name) as a BGR mat.
// Callers own the returned mats and must Close them.
func LoadImages(dir string) ([]gocv.Mat, error) {
	files, err := ListImageFiles(dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("dataset: no image files in %s", dir)
	}

	images := make([]gocv.Mat, 0, len(files))
	for _, f := range files {
		img := gocv.IMRead(f, gocv.IMReadColor)
		if img.Empty() {
			for i := range images {
				images[i].Close()
			}
			return nil, fmt.Errorf("dataset: cannot decode image %s", f)
		}
		images = append(images, img)
	}
	return images, nil
}

// CheckMaskDimensions verifies that each derived mask still matches the
// pixel dimensions of its source image. A mismatch is a caller contract
// violation and fails fast rather than silently truncating lookups.
func CheckMaskDimensions(images []gocv.Mat, masks []*carve.Mask) error {
	if len(images) != len(masks) {
		return fmt.Errorf("dataset: %d images but %d masks", len(images), len(masks))
	}
	for i := range images {
		w, h := images[i].Cols(), images[i].Rows()
		if masks[i].Width != w || masks[i].Height != h {
			return fmt.Errorf("mask %d is %dx%d but its image is %dx%d: %w",
				i, masks[i].Width, masks[i].Height, w, h, ErrMaskDimensions)
		}
	}
	return nil
}
