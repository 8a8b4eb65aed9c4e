package viz

import (
	"fmt"
	"image"
	"image/color"

	"gocv.io/x/gocv"
	"gonum.org/v1/gonum/mat"

	"github.com/visualhull/carve/internal/carve"
)

// markerColor is a translucent red dot per projected voxel.
var markerColor = color.RGBA{R: 255, G: 0, B: 0, A: 50}

// DrawGridOverlay returns a BGRA copy of img with every voxel grid
// point of the given camera drawn as a small marker. Useful to verify
// that the configured world-space bounds enclose the object.
func DrawGridOverlay(img gocv.Mat, ppm mat.Matrix, grid *carve.VoxelGrid) (gocv.Mat, error) {
	pix, err := carve.Project(ppm, grid)
	if err != nil {
		return gocv.Mat{}, fmt.Errorf("viz: project grid: %w", err)
	}

	out := gocv.NewMat()
	gocv.CvtColor(img, &out, gocv.ColorBGRToBGRA)
	drawMarkers(&out, pix)
	return out, nil
}

// DrawCarvingOverlay renders the projections of the reconstructed
// points on a black canvas with the dimensions of img.
func DrawCarvingOverlay(img gocv.Mat, ppm mat.Matrix, points *carve.ReconstructedPoints) (gocv.Mat, error) {
	canvas := gocv.NewMatWithSize(img.Rows(), img.Cols(), gocv.MatTypeCV8UC4)

	if points.Len() == 0 {
		return canvas, nil
	}

	r, c := ppm.Dims()
	if r != 3 || c != 4 {
		canvas.Close()
		return gocv.Mat{}, fmt.Errorf("viz: projection matrix must be 3x4, got %dx%d", r, c)
	}

	var proj mat.Dense
	proj.Mul(ppm, points.Points)
	pix := &carve.PixelPoints{
		Px: make([]float64, points.Len()),
		Py: make([]float64, points.Len()),
	}
	for j := 0; j < points.Len(); j++ {
		w := proj.At(2, j)
		pix.Px[j] = proj.At(0, j) / w
		pix.Py[j] = proj.At(1, j) / w
	}
	drawMarkers(&canvas, pix)
	return canvas, nil
}

func drawMarkers(dst *gocv.Mat, pix *carve.PixelPoints) {
	w, h := dst.Cols(), dst.Rows()
	for i := 0; i < pix.Len(); i++ {
		if !pix.InFrame(i, w, h) {
			continue
		}
		gocv.Circle(dst, image.Pt(int(pix.Px[i]), int(pix.Py[i])), 1, markerColor, -1)
	}
}
