package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	importHandler "github.com/mbertolucci/conciliador/internal/http/bankimport"
	matchingHandler "github.com/mbertolucci/conciliador/internal/http/matching"
	reconciliationHandler "github.com/mbertolucci/conciliador/internal/http/reconciliation"
)

func New(
	matchingV1 *matchingHandler.Handler,
	reconciliationV1 *reconciliationHandler.Handler,
	importV1 *importHandler.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-User-ID"},
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/companies/{companyID}", func(r chi.Router) {
			matchingV1.Routes(r)
			reconciliationV1.Routes(r)
			importV1.Routes(r)
		})

		reconciliationV1.GlobalRoutes(r)
	})

	return router
}
