package service

import (
	"context"

	"github.com/pharmagenie/pharmagenie-backend/internal/prescription/decision"
	"github.com/pharmagenie/pharmagenie-backend/internal/prescription/domain"
	"github.com/pharmagenie/pharmagenie-backend/internal/prescription/match"
	"github.com/pharmagenie/pharmagenie-backend/internal/prescription/ocr"
	"github.com/pharmagenie/pharmagenie-backend/internal/prescription/textproc"
	"github.com/pharmagenie/pharmagenie-backend/internal/prescription/validate"
	"github.com/pharmagenie/pharmagenie-backend/pkg/errors"
	"github.com/pharmagenie/pharmagenie-backend/pkg/logger"
)

// Analyzer runs the prescription authorization pipeline:
// OCR → normalize → extract → validate → match → decide.
// Each run is sequential and independent; the decision is a pure function
// of the extracted fields.
type Analyzer struct {
	extractor ocr.TextExtractor
	doctors   *validate.DoctorValidator
	dates     *validate.DateChecker
	matcher   *match.Matcher
	log       *logger.Logger
}

// NewAnalyzer creates a new prescription analyzer
func NewAnalyzer(extractor ocr.TextExtractor, doctors *validate.DoctorValidator, dates *validate.DateChecker, matcher *match.Matcher, log *logger.Logger) *Analyzer {
	return &Analyzer{
		extractor: extractor,
		doctors:   doctors,
		dates:     dates,
		matcher:   matcher,
		log:       log.WithComponent("prescription-analyzer"),
	}
}

// Analyze runs the full pipeline on prescription image bytes.
// The returned error is reserved for unrecoverable failures (unreadable
// image, registry or catalog unavailable); validation rejections are
// reported in the Report itself.
func (a *Analyzer) Analyze(ctx context.Context, image []byte) (*domain.Report, error) {
	if len(image) == 0 {
		return nil, errors.Wrap(errors.ErrImageUnreadable, "IMAGE_UNREADABLE", "Image not found", 400)
	}

	raw, err := a.extractor.Extract(ctx, image)
	if err != nil {
		a.log.Warn().Err(err).Msg("OCR extraction failed")
		return nil, errors.Wrap(err, "OCR_FAILED", "text extraction failed", 502)
	}

	return a.AnalyzeText(ctx, raw)
}

// AnalyzeText runs the pipeline on already-extracted raw text. Given
// identical input text the resulting decision is identical.
func (a *Analyzer) AnalyzeText(ctx context.Context, raw string) (*domain.Report, error) {
	cleaned := textproc.Normalize(raw)
	fields := textproc.ExtractFields(cleaned)

	doctorValid, err := a.doctors.Validate(ctx, fields.RegistrationNumber)
	if err != nil {
		return nil, err
	}

	dateValid := a.dates.Valid(fields.Date)

	matched, unmatched, err := a.matcher.Match(ctx, fields.Medicines)
	if err != nil {
		return nil, err
	}

	verdict := decision.Decide(doctorValid, dateValid, unmatched)

	a.log.Info().
		Str("decision", string(verdict)).
		Bool("doctor_valid", doctorValid).
		Bool("date_valid", dateValid).
		Int("extracted", len(fields.Medicines)).
		Int("unmatched", len(unmatched)).
		Msg("prescription analyzed")

	medicines := fields.Medicines
	if medicines == nil {
		medicines = []domain.ExtractedMedicine{}
	}

	return &domain.Report{
		Status:             domain.StatusSuccess,
		DoctorValid:        doctorValid,
		DateValid:          dateValid,
		MatchedMedicines:   matched,
		UnmatchedMedicines: unmatched,
		Decision:           verdict,
		Reason:             verdict.Reason(),
		RegistrationNumber: fields.RegistrationNumber,
		ExtractedMedicines: medicines,
	}, nil
}
