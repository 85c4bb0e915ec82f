package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pharmagenie/pharmagenie-backend/internal/order/domain"
	"github.com/pharmagenie/pharmagenie-backend/internal/order/service"
	"github.com/pharmagenie/pharmagenie-backend/pkg/errors"
	"github.com/pharmagenie/pharmagenie-backend/pkg/httputil"
	"github.com/pharmagenie/pharmagenie-backend/pkg/logger"
)

const maxUploadSize = 20 << 20 // 20MB

// Handler handles HTTP requests for the order workflow
type Handler struct {
	orchestrator *service.Orchestrator
	log          *logger.Logger
}

// NewHandler creates a new order handler
func NewHandler(orchestrator *service.Orchestrator, log *logger.Logger) *Handler {
	return &Handler{
		orchestrator: orchestrator,
		log:          log,
	}
}

type cartItemRequest struct {
	Name     string `json:"name" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,gt=0"`
}

type confirmRequest struct {
	Confirm *bool `json:"confirm" validate:"required"`
}

// Create handles POST /orders
// Accepts a multipart form with:
// - items: JSON array of {name, quantity}
// - prescription: the prescription image
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		httputil.Error(w, errors.BadRequest("file too large or invalid multipart form"))
		return
	}

	var requested []cartItemRequest
	if err := json.Unmarshal([]byte(r.FormValue("items")), &requested); err != nil {
		httputil.Error(w, errors.BadRequest("items must be a JSON array of {name, quantity}"))
		return
	}
	if len(requested) == 0 {
		httputil.Error(w, errors.BadRequest("order must contain at least one item"))
		return
	}
	for _, item := range requested {
		if err := httputil.Validate(item); err != nil {
			httputil.Error(w, err)
			return
		}
	}

	var image []byte
	if file, _, err := r.FormFile("prescription"); err == nil {
		defer file.Close()
		image, err = io.ReadAll(file)
		if err != nil {
			httputil.Error(w, errors.BadRequest("failed to read prescription file"))
			return
		}
	}

	items := make([]domain.CartItem, len(requested))
	for i, item := range requested {
		items[i] = domain.CartItem{Name: item.Name, Quantity: item.Quantity}
	}

	result, err := h.orchestrator.Execute(r.Context(), items, image)
	if err != nil {
		h.log.Error().Err(err).Msg("order workflow failed")
		httputil.Error(w, err)
		return
	}

	httputil.Created(w, result)
}

// Confirm handles POST /orders/{id}/confirm
func (h *Handler) Confirm(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "id")

	var req confirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, errors.BadRequest("invalid request body"))
		return
	}
	if err := httputil.Validate(req); err != nil {
		httputil.Error(w, err)
		return
	}

	result, err := h.orchestrator.Confirm(r.Context(), orderID, *req.Confirm)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, result)
}

// Get handles GET /orders/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "id")

	result, err := h.orchestrator.Get(orderID)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, result)
}

// Routes registers the order routes on the given router
func (h *Handler) Routes(r chi.Router) {
	r.Post("/orders", h.Create)
	r.Post("/orders/{id}/confirm", h.Confirm)
	r.Get("/orders/{id}", h.Get)
}
