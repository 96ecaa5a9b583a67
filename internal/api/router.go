// internal/api/router.go
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/shriddemon/value-os-platform/internal/api/handler"
)

// NewRouter sets up and returns a new HTTP router.
func NewRouter(creditHandler *handler.CreditHandler, policyHandler *handler.PolicyHandler, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middlewares
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(handler.DefaultTimeout))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/vcredits", func(r chi.Router) {
			r.Post("/definitions", creditHandler.CreateDefinition)
			r.Get("/definitions", creditHandler.ListDefinitions)
			r.Post("/mint", creditHandler.Mint)
			r.Post("/redeem", creditHandler.Redeem)
			r.Post("/exchange", creditHandler.Exchange)
			r.Get("/stats", creditHandler.GetSystemStats)
			r.Post("/issuers", creditHandler.RegisterIssuer)
			r.Get("/issuers", creditHandler.ListIssuers)
			r.Get("/issuers/{issuerID}/stats", creditHandler.GetIssuerStats)
			r.Route("/wallets/{walletID}", func(r chi.Router) {
				r.Get("/balances", creditHandler.GetWalletBalances)
				r.Get("/transactions", creditHandler.GetTransactionHistory)
			})
		})
		r.Post("/policy/evaluate", policyHandler.Evaluate)
	})

	return r
}
