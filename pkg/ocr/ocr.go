package ocr

import (
	"fmt"
	"image"
	"log"
	"os"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/otiai10/gosseract/v2"
)

// ExtractText runs preprocessing plus Tesseract over a register photo and
// returns the raw multi-line text. Line structure is preserved because the
// ledger engine works row by row.
//
// Two passes run: a base pass over the preprocessed image, and a binarized
// pass restricted to the characters that can appear in register marks and
// totals, appended when the base pass recovers no digits at all (handwritten
// marks often vanish entirely in the unrestricted pass).
func ExtractText(path string) (string, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return "", fmt.Errorf("open image: %w", err)
	}
	prep := Preprocess(img)
	tmp, cleanup, err := saveTemp(prep, "register-*.png")
	if err != nil {
		tmp = path
	} else {
		defer cleanup()
	}

	text, err := runPass(tmp, "")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if !hasDigit(text) {
		bin := Binarize(prep, 210)
		if btmp, bcleanup, berr := saveTemp(bin, "register-bin-*.png"); berr == nil {
			defer bcleanup()
			if extra, perr := runPass(btmp, "0123456789xX=+*/-. gqlLiI|"); perr == nil && strings.TrimSpace(extra) != "" {
				text = text + "\n" + extra
			}
		}
	}
	log.Printf("OCR %s: %d bytes of text", path, len(text))
	return text, nil
}

func runPass(path, whitelist string) (string, error) {
	client := gosseract.NewClient()
	defer client.Close()
	_ = client.SetLanguage("eng")
	if whitelist != "" {
		_ = client.SetWhitelist(whitelist)
	}
	if err := client.SetImage(path); err != nil {
		return "", err
	}
	return client.Text()
}

func saveTemp(img image.Image, pattern string) (string, func(), error) {
	f, err := os.CreateTemp("", pattern)
	if err != nil {
		return "", nil, err
	}
	name := f.Name()
	_ = f.Close()
	if err := imaging.Save(img, name); err != nil {
		_ = os.Remove(name)
		return "", nil, err
	}
	return name, func() { _ = os.Remove(name) }, nil
}

func hasDigit(s string) bool {
	for _, r := range s {
		if r >= '0' && r <= '9' {
			return true
		}
	}
	return false
}
