package ocr

import (
	"image/color"
	"testing"

	"github.com/disintegration/imaging"
)

func TestBinarizeProducesOnlyBlackAndWhite(t *testing.T) {
	img := imaging.New(20, 20, color.NRGBA{128, 128, 128, 255})
	for x := 0; x < 10; x++ {
		img.Set(x, 0, color.NRGBA{10, 10, 10, 255})
	}
	out := Binarize(img, 100)
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			r, g, b, _ := out.At(x, y).RGBA()
			v := uint8(r >> 8)
			if (v != 0 && v != 255) || r != g || g != b {
				t.Fatalf("pixel (%d,%d) not binary: %d", x, y, v)
			}
		}
	}
	if r, _, _, _ := out.At(0, 0).RGBA(); uint8(r>>8) != 0 {
		t.Fatalf("dark pixel must threshold to black")
	}
	if r, _, _, _ := out.At(0, 10).RGBA(); uint8(r>>8) != 255 {
		t.Fatalf("mid-gray above threshold must threshold to white")
	}
}

func TestPreprocessDownscalesWideImages(t *testing.T) {
	img := imaging.New(2400, 1200, color.NRGBA{255, 255, 255, 255})
	out := Preprocess(img)
	if out.Bounds().Dx() != 1200 {
		t.Fatalf("expected width 1200, got %d", out.Bounds().Dx())
	}
	small := imaging.New(600, 400, color.NRGBA{255, 255, 255, 255})
	if got := Preprocess(small).Bounds().Dx(); got != 600 {
		t.Fatalf("small images must not be resized, got width %d", got)
	}
}

func TestHasDigit(t *testing.T) {
	if hasDigit("abc x =") {
		t.Fatalf("no digits expected")
	}
	if !hasDigit("9il") {
		t.Fatalf("digit expected")
	}
}
