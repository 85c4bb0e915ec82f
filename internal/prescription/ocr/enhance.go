package ocr

import (
	"bytes"
	"fmt"

	"github.com/disintegration/imaging"
)

// EnhanceForOCR applies a series of image processing operations that make
// prescription text easier to recognize: grayscale for contrast, contrast
// boost, sharpening, and slight brightness and gamma adjustments.
func EnhanceForOCR(image []byte) ([]byte, error) {
	src, err := imaging.Decode(bytes.NewReader(image))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	img := imaging.Grayscale(src)
	img = imaging.AdjustContrast(img, 30)
	img = imaging.Sharpen(img, 1.5)
	img = imaging.AdjustBrightness(img, 10)
	img = imaging.AdjustGamma(img, 1.2)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}
