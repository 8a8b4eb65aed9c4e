package silhouette

import (
	"testing"

	"gocv.io/x/gocv"
)

func TestToMask_NonZeroIsForeground(t *testing.T) {
	m := gocv.NewMatWithSize(4, 6, gocv.MatTypeCV8UC1)
	defer m.Close()
	m.SetUCharAt(1, 2, 255)
	m.SetUCharAt(3, 5, 1)

	mask, err := ToMask(m)
	if err != nil {
		t.Fatalf("to mask: %v", err)
	}
	if mask.Width != 6 || mask.Height != 4 {
		t.Fatalf("mask is %dx%d, want 6x4", mask.Width, mask.Height)
	}
	if !mask.At(2, 1) || !mask.At(5, 3) {
		t.Error("set pixels not foreground")
	}
	if got := mask.ForegroundCount(); got != 2 {
		t.Errorf("foreground count %d, want 2", got)
	}
}

func TestToMask_RejectsMultiChannel(t *testing.T) {
	m := gocv.NewMatWithSize(4, 4, gocv.MatTypeCV8UC3)
	defer m.Close()
	if _, err := ToMask(m); err == nil {
		t.Error("expected error for 3-channel mat")
	}
}

func TestOtsuMasks_SeparatesTwoLevels(t *testing.T) {
	// Left half dark, right half bright; Otsu must split them.
	img := gocv.NewMatWithSize(10, 10, gocv.MatTypeCV8UC1)
	defer img.Close()
	for y := 0; y < 10; y++ {
		for x := 5; x < 10; x++ {
			img.SetUCharAt(y, x, 200)
		}
	}

	masks := OtsuMasks([]gocv.Mat{img})
	defer closeAll(masks)

	mask, err := ToMask(masks[0])
	if err != nil {
		t.Fatalf("to mask: %v", err)
	}
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			want := x >= 5
			if mask.At(x, y) != want {
				t.Fatalf("pixel (%d, %d) = %v, want %v", x, y, mask.At(x, y), want)
			}
		}
	}
}

func TestCropAndRestoreBorders_RoundTripDimensions(t *testing.T) {
	img := gocv.NewMatWithSize(100, 120, gocv.MatTypeCV8UC1)
	defer img.Close()

	b := Borders{Top: 5, Right: 30}
	cropped, err := CropBorders([]gocv.Mat{img}, b)
	if err != nil {
		t.Fatalf("crop: %v", err)
	}
	defer closeAll(cropped)
	if cropped[0].Rows() != 95 || cropped[0].Cols() != 90 {
		t.Fatalf("cropped to %dx%d, want 90x95", cropped[0].Cols(), cropped[0].Rows())
	}

	restored := RestoreBorders(cropped, b)
	defer closeAll(restored)
	if restored[0].Rows() != 100 || restored[0].Cols() != 120 {
		t.Errorf("restored to %dx%d, want 120x100", restored[0].Cols(), restored[0].Rows())
	}
}

func TestCropBorders_RejectsOversizedBorders(t *testing.T) {
	img := gocv.NewMatWithSize(20, 20, gocv.MatTypeCV8UC1)
	defer img.Close()
	if _, err := CropBorders([]gocv.Mat{img}, Borders{Left: 10, Right: 10}); err == nil {
		t.Error("expected error when borders consume the whole image")
	}
}

func TestCropBorders_RejectsMixedDimensions(t *testing.T) {
	a := gocv.NewMatWithSize(20, 20, gocv.MatTypeCV8UC1)
	defer a.Close()
	b := gocv.NewMatWithSize(30, 30, gocv.MatTypeCV8UC1)
	defer b.Close()
	if _, err := CropBorders([]gocv.Mat{a, b}, Borders{Top: 1}); err == nil {
		t.Error("expected error for mismatched image dimensions")
	}
}

func TestSegment_LengthMismatch(t *testing.T) {
	img := gocv.NewMatWithSize(10, 10, gocv.MatTypeCV8UC3)
	defer img.Close()
	if _, err := Segment([]gocv.Mat{img}, nil); err == nil {
		t.Error("expected error for mismatched image/mask counts")
	}
}
