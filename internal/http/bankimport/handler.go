package bankimport

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mbertolucci/conciliador/internal/bankimport"
	"github.com/mbertolucci/conciliador/internal/http/httperr"
)

type Handler struct {
	svc *bankimport.Service
}

func NewHandler(svc *bankimport.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/import", h.importMovements)
}

type movementDTO struct {
	ExternalID  string    `json:"external_id"`
	Description string    `json:"description"`
	AmountCents int64     `json:"amount_cents"`
	Date        time.Time `json:"date"`
}

type importRequest struct {
	Movements []movementDTO `json:"movements"`
}

type importResponse struct {
	Imported   int `json:"imported"`
	Duplicates int `json:"duplicates"`
	Errors     int `json:"errors"`
}

// importMovements accepts either a multipart CSV statement upload or a JSON
// movement batch.
func (h *Handler) importMovements(w http.ResponseWriter, r *http.Request) {
	companyID, err := uuid.Parse(chi.URLParam(r, "companyID"))
	if err != nil {
		http.Error(w, "invalid company id", http.StatusBadRequest)
		return
	}

	var movements []bankimport.Movement

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		movements, err = h.readStatement(r)
	} else {
		movements, err = h.readJSON(r)
	}

	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.svc.Import(r.Context(), companyID, movements)
	if err != nil {
		http.Error(w, err.Error(), httperr.Status(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(importResponse{
		Imported:   result.Imported,
		Duplicates: result.Duplicates,
		Errors:     result.Errors,
	}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) readStatement(r *http.Request) ([]bankimport.Movement, error) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		return nil, err
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return bankimport.ParseStatement(file)
}

func (h *Handler) readJSON(r *http.Request) ([]bankimport.Movement, error) {
	var req importRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, err
	}

	movements := make([]bankimport.Movement, len(req.Movements))
	for i, m := range req.Movements {
		movements[i] = bankimport.Movement{
			ExternalID:  m.ExternalID,
			Description: m.Description,
			AmountCents: m.AmountCents,
			Date:        m.Date,
		}
	}

	return movements, nil
}
