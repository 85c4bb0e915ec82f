package handler

import (
	"io"
	"net/http"

	"github.com/pharmagenie/pharmagenie-backend/internal/prescription/domain"
	"github.com/pharmagenie/pharmagenie-backend/internal/prescription/events"
	"github.com/pharmagenie/pharmagenie-backend/internal/prescription/service"
	"github.com/pharmagenie/pharmagenie-backend/pkg/errors"
	"github.com/pharmagenie/pharmagenie-backend/pkg/httputil"
	"github.com/pharmagenie/pharmagenie-backend/pkg/logger"
)

const maxUploadSize = 20 << 20 // 20MB

// Handler handles HTTP requests for prescription analysis
type Handler struct {
	analyzer *service.Analyzer
	events   *events.PrescriptionEventPublisher
	log      *logger.Logger
}

// NewHandler creates a new prescription analysis handler
func NewHandler(analyzer *service.Analyzer, publisher *events.PrescriptionEventPublisher, log *logger.Logger) *Handler {
	return &Handler{
		analyzer: analyzer,
		events:   publisher,
		log:      log,
	}
}

// Analyze handles POST /prescriptions/analyze
// Accepts a multipart form with:
// - file: the prescription image
//
// The response body follows the analysis report contract: status:success
// with the decision payload, or status:error with a message.
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		httputil.Raw(w, http.StatusBadRequest, domain.ErrorReport("file too large or invalid multipart form"))
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		httputil.Raw(w, http.StatusBadRequest, domain.ErrorReport("Image not found"))
		return
	}
	defer file.Close()

	image, err := io.ReadAll(file)
	if err != nil {
		httputil.Raw(w, http.StatusBadRequest, domain.ErrorReport("failed to read uploaded file"))
		return
	}

	report, err := h.analyzer.Analyze(r.Context(), image)
	if err != nil {
		h.log.Error().Err(err).Msg("prescription analysis failed")
		httputil.Raw(w, statusFor(err), domain.ErrorReport(err.Error()))
		return
	}

	h.events.PublishAnalyzed(r.Context(), report)
	httputil.Raw(w, http.StatusOK, report)
}

func statusFor(err error) int {
	var appErr *errors.AppError
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}
