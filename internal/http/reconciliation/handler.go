package reconciliation

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mbertolucci/conciliador/internal/http/httperr"
	"github.com/mbertolucci/conciliador/internal/ledger"
	"github.com/mbertolucci/conciliador/internal/matching"
	"github.com/mbertolucci/conciliador/internal/reconciliation"
	"github.com/mbertolucci/conciliador/internal/title"
)

type Handler struct {
	svc *reconciliation.Service
}

func NewHandler(svc *reconciliation.Service) *Handler {
	return &Handler{svc: svc}
}

// Routes registers the company-scoped endpoints.
func (h *Handler) Routes(r chi.Router) {
	r.Route("/reconciliations", func(r chi.Router) {
		r.Post("/", h.reconcile)
		r.Post("/accept", h.accept)
		r.Get("/", h.list)
	})
	r.Get("/unreconciled", h.unreconciled)
}

// GlobalRoutes registers endpoints addressed by reconciliation id alone.
func (h *Handler) GlobalRoutes(r chi.Router) {
	r.Delete("/reconciliations/{id}", h.undo)
}

type reconcileRequest struct {
	TransactionID uuid.UUID `json:"transaction_id"`
	TitleID       uuid.UUID `json:"title_id"`
	Note          string    `json:"note"`
}

func (h *Handler) reconcile(w http.ResponseWriter, r *http.Request) {
	companyID, err := uuid.Parse(chi.URLParam(r, "companyID"))
	if err != nil {
		http.Error(w, "invalid company id", http.StatusBadRequest)
		return
	}

	userID, err := uuid.Parse(r.Header.Get("X-User-ID"))
	if err != nil {
		http.Error(w, "X-User-ID header is required", http.StatusBadRequest)
		return
	}

	var req reconcileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rec, err := h.svc.Reconcile(r.Context(), companyID, userID, req.TransactionID, req.TitleID, req.Note)
	if err != nil {
		http.Error(w, err.Error(), httperr.Status(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(rec)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type acceptRequest struct {
	TransactionID uuid.UUID `json:"transaction_id"`
	TitleID       uuid.UUID `json:"title_id"`
	Note          string    `json:"note"`
}

// accept persists a previously proposed suggestion. The payload carries only
// the pair's ids; everything else is re-validated server side.
func (h *Handler) accept(w http.ResponseWriter, r *http.Request) {
	companyID, err := uuid.Parse(chi.URLParam(r, "companyID"))
	if err != nil {
		http.Error(w, "invalid company id", http.StatusBadRequest)
		return
	}

	userID, err := uuid.Parse(r.Header.Get("X-User-ID"))
	if err != nil {
		http.Error(w, "X-User-ID header is required", http.StatusBadRequest)
		return
	}

	var req acceptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	sug := matching.Suggestion{
		Transaction: &ledger.Transaction{ID: req.TransactionID},
		Title:       &title.Title{ID: req.TitleID},
	}

	rec, err := h.svc.AcceptSuggestion(r.Context(), companyID, userID, sug, req.Note)
	if err != nil {
		http.Error(w, err.Error(), httperr.Status(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(rec)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	companyID, err := uuid.Parse(chi.URLParam(r, "companyID"))
	if err != nil {
		http.Error(w, "invalid company id", http.StatusBadRequest)
		return
	}

	limit := 0
	if s := r.URL.Query().Get("limit"); s != "" {
		if v, err := strconv.Atoi(s); err == nil {
			limit = v
		}
	}

	recs, err := h.svc.List(r.Context(), companyID, limit)
	if err != nil {
		http.Error(w, err.Error(), httperr.Status(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(recs)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) undo(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.Undo(r.Context(), id); err != nil {
		http.Error(w, err.Error(), httperr.Status(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) unreconciled(w http.ResponseWriter, r *http.Request) {
	companyID, err := uuid.Parse(chi.URLParam(r, "companyID"))
	if err != nil {
		http.Error(w, "invalid company id", http.StatusBadRequest)
		return
	}

	pool, err := h.svc.Unreconciled(r.Context(), companyID)
	if err != nil {
		http.Error(w, err.Error(), httperr.Status(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toPoolResponse(pool)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
