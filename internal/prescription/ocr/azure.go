package ocr

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/Azure/azure-sdk-for-go/services/cognitiveservices/v3.0/computervision"
	"github.com/Azure/go-autorest/autorest"
)

// AzureExtractor performs OCR through the Azure Computer Vision API
type AzureExtractor struct {
	client  *computervision.BaseClient
	enhance bool
}

// NewAzureExtractor creates an OCR client for the given endpoint and key.
// When enhance is true, images are pre-processed (grayscale, contrast,
// sharpen) before being sent, which noticeably improves recognition of
// printed prescriptions.
func NewAzureExtractor(endpoint, apiKey string, enhance bool) *AzureExtractor {
	client := computervision.New(endpoint)
	client.Authorizer = autorest.NewCognitiveServicesAuthorizer(apiKey)

	return &AzureExtractor{
		client:  &client,
		enhance: enhance,
	}
}

// Extract runs printed-text OCR on the image bytes and returns the
// recognized text, one recognized line per output line.
func (e *AzureExtractor) Extract(ctx context.Context, image []byte) (string, error) {
	if len(image) == 0 {
		return "", fmt.Errorf("empty image data")
	}

	data := image
	if e.enhance {
		enhanced, err := EnhanceForOCR(image)
		if err == nil {
			data = enhanced
		}
		// enhancement is best-effort; fall back to the original bytes
	}

	reader := io.NopCloser(bytes.NewReader(data))
	result, err := e.client.RecognizePrintedTextInStream(
		ctx,
		true, // detect orientation
		reader,
		computervision.OcrLanguages(computervision.En),
	)
	if err != nil {
		return "", fmt.Errorf("failed to extract text: %w", err)
	}

	return assembleText(result), nil
}

// assembleText flattens the OCR result regions into newline-separated text
func assembleText(result computervision.OcrResult) string {
	if result.Regions == nil {
		return ""
	}

	var sb strings.Builder
	for _, region := range *result.Regions {
		if region.Lines == nil {
			continue
		}
		for _, line := range *region.Lines {
			if line.Words == nil {
				continue
			}
			var words []string
			for _, word := range *line.Words {
				if word.Text != nil {
					words = append(words, *word.Text)
				}
			}
			if len(words) > 0 {
				sb.WriteString(strings.Join(words, " "))
				sb.WriteString("\n")
			}
		}
	}
	return sb.String()
}
