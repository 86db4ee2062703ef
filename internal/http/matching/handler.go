package matching

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mbertolucci/conciliador/internal/http/httperr"
	"github.com/mbertolucci/conciliador/internal/matching"
	"github.com/mbertolucci/conciliador/internal/reconciliation"
)

type Handler struct {
	svc *reconciliation.Service
	cfg matching.Config
}

func NewHandler(svc *reconciliation.Service, cfg matching.Config) *Handler {
	return &Handler{svc: svc, cfg: cfg}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/suggestions", h.suggest)
}

type suggestionResponse struct {
	TransactionID  uuid.UUID               `json:"transaction_id"`
	TitleID        uuid.UUID               `json:"title_id"`
	Score          int                     `json:"score"`
	ValueDiffCents int64                   `json:"value_diff_cents"`
	DayDiff        int                     `json:"day_diff"`
	DescSimilarity float64                 `json:"desc_similarity"`
	Classification matching.Classification `json:"classification"`

	TransactionDescription string    `json:"transaction_description"`
	TransactionAmountCents int64     `json:"transaction_amount_cents"`
	TransactionDate        time.Time `json:"transaction_date"`
	TitleCounterparty      string    `json:"title_counterparty"`
	TitleAmountCents       int64     `json:"title_amount_cents"`
	TitleDueDate           time.Time `json:"title_due_date"`
}

func (h *Handler) suggest(w http.ResponseWriter, r *http.Request) {
	companyID, err := uuid.Parse(chi.URLParam(r, "companyID"))
	if err != nil {
		http.Error(w, "invalid company id", http.StatusBadRequest)
		return
	}

	cfg := h.cfg

	q := r.URL.Query()

	if s := q.Get("min_score"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			http.Error(w, fmt.Sprintf("invalid min_score %q", s), http.StatusUnprocessableEntity)
			return
		}

		cfg.MinScore = v
	}

	if s := q.Get("value_tolerance"); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			http.Error(w, fmt.Sprintf("invalid value_tolerance %q", s), http.StatusUnprocessableEntity)
			return
		}

		cfg.ValueTolerance = v
	}

	if s := q.Get("date_tolerance_days"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			http.Error(w, fmt.Sprintf("invalid date_tolerance_days %q", s), http.StatusUnprocessableEntity)
			return
		}

		cfg.DateToleranceDays = v
	}

	suggestions, err := h.svc.Suggestions(r.Context(), companyID, &cfg)
	if err != nil {
		http.Error(w, err.Error(), httperr.Status(err))
		return
	}

	resp := make([]suggestionResponse, len(suggestions))
	for i, s := range suggestions {
		resp[i] = suggestionResponse{
			TransactionID:          s.Transaction.ID,
			TitleID:                s.Title.ID,
			Score:                  s.Score,
			ValueDiffCents:         s.ValueDiffCents,
			DayDiff:                s.DayDiff,
			DescSimilarity:         s.DescSimilarity,
			Classification:         s.Classification,
			TransactionDescription: s.Transaction.Description,
			TransactionAmountCents: s.Transaction.AmountCents,
			TransactionDate:        s.Transaction.Date,
			TitleCounterparty:      s.Title.Counterparty,
			TitleAmountCents:       s.Title.AmountCents,
			TitleDueDate:           s.Title.DueDate,
		}
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
