package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pharmagenie/pharmagenie-backend/internal/catalog/repository"
	"github.com/pharmagenie/pharmagenie-backend/internal/prescription/domain"
	"github.com/pharmagenie/pharmagenie-backend/internal/prescription/match"
	"github.com/pharmagenie/pharmagenie-backend/internal/prescription/service"
	"github.com/pharmagenie/pharmagenie-backend/internal/prescription/validate"
	pkgerrors "github.com/pharmagenie/pharmagenie-backend/pkg/errors"
	"github.com/pharmagenie/pharmagenie-backend/pkg/logger"
)

type fakeExtractor struct {
	text string
	err  error
}

func (f *fakeExtractor) Extract(ctx context.Context, image []byte) (string, error) {
	return f.text, f.err
}

func newAnalyzer(t *testing.T, extractor *fakeExtractor) *service.Analyzer {
	t.Helper()

	catalog := repository.NewMemoryCatalog()
	catalog.AddMedicine("Paracetamol", 2.50, 5, 100)
	catalog.AddMedicine("Amoxicillin", 8.90, 5, 50)
	catalog.RegisterDoctor("MH-12345")

	dates := validate.NewDateChecker()
	dates.Now = func() time.Time {
		return time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	}

	return service.NewAnalyzer(
		extractor,
		validate.NewDoctorValidator(catalog),
		dates,
		match.NewMatcher(catalog, match.DefaultThreshold),
		logger.New("test", "test"),
	)
}

const validPrescription = "Dr. Mehta MH-12345\n" +
	"Date: 06/10/2026\n" +
	"Paracetamol 325 mg\n" +
	"Amoxicillin 500 mg"

func TestAnalyzer_Approved(t *testing.T) {
	analyzer := newAnalyzer(t, &fakeExtractor{text: validPrescription})

	report, err := analyzer.Analyze(context.Background(), []byte("image"))
	require.NoError(t, err)

	assert.Equal(t, domain.StatusSuccess, report.Status)
	assert.Equal(t, domain.DecisionApproved, report.Decision)
	assert.Empty(t, report.Reason)
	assert.True(t, report.DoctorValid)
	assert.True(t, report.DateValid)
	assert.Equal(t, "MH-12345", report.RegistrationNumber)
	assert.Equal(t, []string{"Paracetamol", "Amoxicillin"}, report.MatchedMedicines)
	assert.Empty(t, report.UnmatchedMedicines)
	assert.Len(t, report.ExtractedMedicines, 2)
}

func TestAnalyzer_RejectedDoctor(t *testing.T) {
	text := "Dr. Unknown KA-99999\nDate: 06/10/2026\nParacetamol 325 mg"
	analyzer := newAnalyzer(t, &fakeExtractor{text: text})

	report, err := analyzer.Analyze(context.Background(), []byte("image"))
	require.NoError(t, err)

	assert.Equal(t, domain.StatusSuccess, report.Status)
	assert.Equal(t, domain.DecisionRejectedDoctor, report.Decision)
	assert.Equal(t, "Invalid Doctor", report.Reason)
	assert.False(t, report.DoctorValid)
	assert.True(t, report.DateValid)
}

func TestAnalyzer_RejectedDate(t *testing.T) {
	text := "Dr. Mehta MH-12345\nDate: 07/01/2026\nParacetamol 325 mg"
	analyzer := newAnalyzer(t, &fakeExtractor{text: text})

	report, err := analyzer.Analyze(context.Background(), []byte("image"))
	require.NoError(t, err)

	assert.Equal(t, domain.DecisionRejectedDate, report.Decision)
	assert.Equal(t, "Invalid Date", report.Reason)
	assert.True(t, report.DoctorValid)
	assert.False(t, report.DateValid)
}

func TestAnalyzer_RejectedMedicines(t *testing.T) {
	text := "Dr. Mehta MH-12345\nDate: 06/10/2026\nXanthorax 100 mg"
	analyzer := newAnalyzer(t, &fakeExtractor{text: text})

	report, err := analyzer.Analyze(context.Background(), []byte("image"))
	require.NoError(t, err)

	assert.Equal(t, domain.DecisionRejectedMedicines, report.Decision)
	assert.Equal(t, "Unmatched Medicines", report.Reason)
	assert.Equal(t, []string{"Xanthorax"}, report.UnmatchedMedicines)
}

func TestAnalyzer_DoctorRejectionWinsOverAll(t *testing.T) {
	text := "Dr. Unknown KA-99999\nDate: 07/01/2026\nXanthorax 100 mg"
	analyzer := newAnalyzer(t, &fakeExtractor{text: text})

	report, err := analyzer.Analyze(context.Background(), []byte("image"))
	require.NoError(t, err)

	assert.Equal(t, domain.DecisionRejectedDoctor, report.Decision)
	assert.Equal(t, "Invalid Doctor", report.Reason)
}

func TestAnalyzer_OCRTypoStillApproved(t *testing.T) {
	text := "Dr. Mehta MH-12345\nDate: 06/10/2026\nParacetam0l 325 mg"
	analyzer := newAnalyzer(t, &fakeExtractor{text: text})

	report, err := analyzer.Analyze(context.Background(), []byte("image"))
	require.NoError(t, err)

	assert.Equal(t, domain.DecisionApproved, report.Decision)
	assert.Equal(t, []string{"Paracetamol"}, report.MatchedMedicines)
}

func TestAnalyzer_EmptyImage(t *testing.T) {
	analyzer := newAnalyzer(t, &fakeExtractor{text: validPrescription})

	_, err := analyzer.Analyze(context.Background(), nil)
	require.Error(t, err)
	assert.True(t, pkgerrors.Is(err, pkgerrors.ErrImageUnreadable))

	var appErr *pkgerrors.AppError
	require.True(t, pkgerrors.As(err, &appErr))
	assert.Equal(t, "Image not found", appErr.Message)
}

func TestAnalyzer_OCRFailure(t *testing.T) {
	analyzer := newAnalyzer(t, &fakeExtractor{err: errors.New("service timeout")})

	_, err := analyzer.Analyze(context.Background(), []byte("image"))
	require.Error(t, err)

	var appErr *pkgerrors.AppError
	require.True(t, pkgerrors.As(err, &appErr))
	assert.Equal(t, "OCR_FAILED", appErr.Code)
}

func TestAnalyzer_NoFieldsExtracted(t *testing.T) {
	analyzer := newAnalyzer(t, &fakeExtractor{text: "completely illegible scribbles"})

	report, err := analyzer.Analyze(context.Background(), []byte("image"))
	require.NoError(t, err)

	// No registration number fails closed and dominates the verdict
	assert.Equal(t, domain.DecisionRejectedDoctor, report.Decision)
	assert.Empty(t, report.RegistrationNumber)
	assert.NotNil(t, report.MatchedMedicines)
	assert.NotNil(t, report.ExtractedMedicines)
}

func TestAnalyzer_Deterministic(t *testing.T) {
	analyzer := newAnalyzer(t, &fakeExtractor{text: validPrescription})

	first, err := analyzer.AnalyzeText(context.Background(), validPrescription)
	require.NoError(t, err)
	second, err := analyzer.AnalyzeText(context.Background(), validPrescription)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
