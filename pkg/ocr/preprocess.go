package ocr

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// Preprocess applies the base cleanup pass before OCR: grayscale, a contrast
// lift standing in for autocontrast, light sharpening of pen strokes, and a
// downscale of very wide photos so Tesseract sees consistent stroke widths.
func Preprocess(img image.Image) image.Image {
	out := imaging.Grayscale(img)
	out = imaging.AdjustContrast(out, 15)
	out = imaging.Sharpen(out, 0.7)
	if out.Bounds().Dx() > 1200 {
		out = imaging.Resize(out, 1200, 0, imaging.Lanczos)
	}
	return out
}

// Binarize performs a global threshold on top of Preprocess. Handwritten marks
// on ruled paper respond better to a hard threshold than receipts do.
func Binarize(img image.Image, threshold uint8) *image.NRGBA {
	b := img.Bounds()
	out := image.NewNRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bb, _ := img.At(x, y).RGBA()
			gray := uint8((r + g + bb) / 3 >> 8)
			var v uint8 = 255
			if gray <= threshold {
				v = 0
			}
			out.Set(x, y, color.NRGBA{R: v, G: v, B: v, A: 255})
		}
	}
	return out
}
