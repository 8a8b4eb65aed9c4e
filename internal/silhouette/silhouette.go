package silhouette

import (
	"fmt"
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"github.com/visualhull/carve/internal/carve"
)

// Borders describes how many pixels to strip from each image edge
// before segmentation. Scanned turntable sequences often carry black
// frame borders that would defeat Otsu thresholding.
type Borders struct {
	Top    int
	Bottom int
	Left   int
	Right  int
}

// DefaultBorders matches the dino turntable dataset: a 5px strip on
// top and a 30px strip on the right.
var DefaultBorders = Borders{Top: 5, Right: 30}

// CropBorders returns copies of the images with the border strips
// removed. All images must share the dimensions of the first.
func CropBorders(images []gocv.Mat, b Borders) ([]gocv.Mat, error) {
	if len(images) == 0 {
		return nil, nil
	}
	h, w := images[0].Rows(), images[0].Cols()
	if b.Left+b.Right >= w || b.Top+b.Bottom >= h {
		return nil, fmt.Errorf("silhouette: borders %+v consume the whole %dx%d image", b, w, h)
	}

	rect := image.Rect(b.Left, b.Top, w-b.Right, h-b.Bottom)
	out := make([]gocv.Mat, 0, len(images))
	for i, img := range images {
		if img.Rows() != h || img.Cols() != w {
			closeAll(out)
			return nil, fmt.Errorf("silhouette: image %d is %dx%d, want %dx%d", i, img.Cols(), img.Rows(), w, h)
		}
		region := img.Region(rect)
		out = append(out, region.Clone())
		region.Close()
	}
	return out, nil
}

// RestoreBorders adds the cropped strips back as black pixels so the
// images regain their original dimensions. Masks must be restored this
// way before voting: projection matrices address original pixel
// coordinates.
func RestoreBorders(images []gocv.Mat, b Borders) []gocv.Mat {
	out := make([]gocv.Mat, 0, len(images))
	for _, img := range images {
		dst := gocv.NewMat()
		gocv.CopyMakeBorder(img, &dst, b.Top, b.Bottom, b.Left, b.Right, gocv.BorderConstant, color.RGBA{})
		out = append(out, dst)
	}
	return out
}

// GaussianBlur smooths each image with the given square kernel.
func GaussianBlur(images []gocv.Mat, kernelSize int) []gocv.Mat {
	out := make([]gocv.Mat, 0, len(images))
	for _, img := range images {
		dst := gocv.NewMat()
		gocv.GaussianBlur(img, &dst, image.Pt(kernelSize, kernelSize), 0, 0, gocv.BorderDefault)
		out = append(out, dst)
	}
	return out
}

// ConvertColor converts each image with the given OpenCV conversion code.
func ConvertColor(images []gocv.Mat, code gocv.ColorConversionCode) []gocv.Mat {
	out := make([]gocv.Mat, 0, len(images))
	for _, img := range images {
		dst := gocv.NewMat()
		gocv.CvtColor(img, &dst, code)
		out = append(out, dst)
	}
	return out
}

// Channel extracts one channel from each multi-channel image.
func Channel(images []gocv.Mat, channel int) ([]gocv.Mat, error) {
	out := make([]gocv.Mat, 0, len(images))
	for i, img := range images {
		if channel < 0 || channel >= img.Channels() {
			closeAll(out)
			return nil, fmt.Errorf("silhouette: image %d has %d channels, cannot take channel %d", i, img.Channels(), channel)
		}
		split := gocv.Split(img)
		for c, m := range split {
			if c == channel {
				out = append(out, m)
			} else {
				m.Close()
			}
		}
	}
	return out, nil
}

// OtsuMasks binarizes each single-channel image with Otsu's threshold.
func OtsuMasks(images []gocv.Mat) []gocv.Mat {
	out := make([]gocv.Mat, 0, len(images))
	for _, img := range images {
		dst := gocv.NewMat()
		gocv.Threshold(img, &dst, 0, 255, gocv.ThresholdBinary+gocv.ThresholdOtsu)
		out = append(out, dst)
	}
	return out
}

// Segment applies each mask to its image with a bitwise AND, keeping
// only foreground pixels.
func Segment(images, masks []gocv.Mat) ([]gocv.Mat, error) {
	if len(images) != len(masks) {
		return nil, fmt.Errorf("silhouette: %d images but %d masks", len(images), len(masks))
	}
	out := make([]gocv.Mat, 0, len(images))
	for i := range images {
		dst := gocv.NewMat()
		gocv.BitwiseAndWithMask(images[i], images[i], &dst, masks[i])
		out = append(out, dst)
	}
	return out, nil
}

// ToMask converts an 8-bit single-channel mask mat into a carve.Mask.
// Any non-zero pixel is foreground.
func ToMask(m gocv.Mat) (*carve.Mask, error) {
	if m.Channels() != 1 {
		return nil, fmt.Errorf("silhouette: mask mat has %d channels, want 1", m.Channels())
	}
	mask, err := carve.NewMask(m.Cols(), m.Rows())
	if err != nil {
		return nil, err
	}
	for y := 0; y < m.Rows(); y++ {
		for x := 0; x < m.Cols(); x++ {
			if m.GetUCharAt(y, x) != 0 {
				mask.Set(x, y, true)
			}
		}
	}
	return mask, nil
}

// Options tunes the mask extraction chain.
type Options struct {
	Borders    Borders
	BlurKernel int
	// Channel of the LAB color space used for thresholding. The B
	// channel separates the blue turntable backdrop cleanly.
	LABChannel int
}

// DefaultOptions returns the extraction parameters used for the dino
// turntable sequence.
func DefaultOptions() Options {
	return Options{Borders: DefaultBorders, BlurKernel: 21, LABChannel: 2}
}

// ExtractMasks runs the full segmentation chain on BGR images:
// crop borders, Gaussian blur, BGR→LAB, channel extraction, Otsu
// threshold, restore borders. The result has one carve.Mask per input
// image, each with the original image dimensions.
func ExtractMasks(images []gocv.Mat, opts Options) ([]*carve.Mask, error) {
	if len(images) == 0 {
		return nil, fmt.Errorf("silhouette: no images to segment")
	}

	cropped, err := CropBorders(images, opts.Borders)
	if err != nil {
		return nil, fmt.Errorf("silhouette: crop: %w", err)
	}
	defer closeAll(cropped)

	blurred := GaussianBlur(cropped, opts.BlurKernel)
	defer closeAll(blurred)

	lab := ConvertColor(blurred, gocv.ColorBGRToLab)
	defer closeAll(lab)

	channel, err := Channel(lab, opts.LABChannel)
	if err != nil {
		return nil, fmt.Errorf("silhouette: channel: %w", err)
	}
	defer closeAll(channel)

	thresholded := OtsuMasks(channel)
	defer closeAll(thresholded)

	restored := RestoreBorders(thresholded, opts.Borders)
	defer closeAll(restored)

	masks := make([]*carve.Mask, len(restored))
	for i, m := range restored {
		masks[i], err = ToMask(m)
		if err != nil {
			return nil, fmt.Errorf("silhouette: mask %d: %w", i, err)
		}
	}
	return masks, nil
}

func closeAll(mats []gocv.Mat) {
	for i := range mats {
		mats[i].Close()
	}
}
