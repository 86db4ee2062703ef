package matching_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	httpmatching "github.com/mbertolucci/conciliador/internal/http/matching"
	"github.com/mbertolucci/conciliador/internal/ledger"
	"github.com/mbertolucci/conciliador/internal/matching"
	"github.com/mbertolucci/conciliador/internal/reconciliation"
	"github.com/mbertolucci/conciliador/internal/title"
)

type handlerMocks struct {
	txs    *ledger.MockRepository
	titles *title.MockRepository
}

func newTestRouter(t *testing.T) (*chi.Mux, handlerMocks) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	m := handlerMocks{
		txs:    ledger.NewMockRepository(ctrl),
		titles: title.NewMockRepository(ctrl),
	}

	cfg := matching.DefaultConfig()
	suggester := matching.NewSuggester(m.txs, m.titles, cfg)
	svc := reconciliation.NewService(reconciliation.NewMockRepository(ctrl), m.txs, m.titles, suggester)
	h := httpmatching.NewHandler(svc, cfg)

	r := chi.NewRouter()
	r.Route("/api/v1/companies/{companyID}", h.Routes)

	return r, m
}

func TestHandler_Suggest_InvalidOverrides(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{name: "MinScore", query: "min_score=abc"},
		{name: "ValueTolerance", query: "value_tolerance=um"},
		{name: "DateToleranceDays", query: "date_tolerance_days=1.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, _ := newTestRouter(t)

			url := "/api/v1/companies/" + uuid.NewString() + "/suggestions?" + tt.query

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, url, nil))

			assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
			assert.Contains(t, w.Body.String(), "invalid")
		})
	}
}

func TestHandler_Suggest_ValidOverrides(t *testing.T) {
	router, m := newTestRouter(t)

	companyID := uuid.New()

	m.txs.EXPECT().ListUnreconciled(gomock.Any(), companyID).Return(nil, nil)
	m.titles.EXPECT().ListUnreconciled(gomock.Any(), companyID).Return(nil, nil)

	url := "/api/v1/companies/" + companyID.String() + "/suggestions?min_score=80&value_tolerance=0.02&date_tolerance_days=3"

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, url, nil))

	require.Equal(t, http.StatusOK, w.Code)

	var resp []json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp)
}
