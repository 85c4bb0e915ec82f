package ocr

import "context"

// TextExtractor turns prescription image bytes into best-effort raw text.
// The image data should NOT be retained after extraction. Implementations
// are external OCR collaborators; an extraction error aborts the current
// request but is never fatal to the service.
type TextExtractor interface {
	Extract(ctx context.Context, image []byte) (string, error)
}
