package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterRoutes mounts the HTML pages, the JSON API and the health check on r.
func RegisterRoutes(r *mux.Router, contributionHandler *ContributionHandler, giftHandler *GiftHandler) {
	r.HandleFunc("/health", contributionHandler.Health).Methods(http.MethodGet)

	r.HandleFunc("/", contributionHandler.Index).Methods(http.MethodGet)
	r.HandleFunc("/contribute", contributionHandler.Contribute).Methods(http.MethodPost)
	r.HandleFunc("/payment", contributionHandler.Payment).Methods(http.MethodGet)
	r.HandleFunc("/process_payment", contributionHandler.ProcessPayment).Methods(http.MethodPost)
	r.HandleFunc("/success", contributionHandler.Success).Methods(http.MethodGet)
	r.HandleFunc("/contributions", contributionHandler.Contributions).Methods(http.MethodGet)

	r.HandleFunc("/gift_keyword", giftHandler.GiftKeyword).Methods(http.MethodGet)
	r.HandleFunc("/gift_suggestions", giftHandler.GiftSuggestions).Methods(http.MethodGet, http.MethodPost)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/contributions", contributionHandler.ListContributions).Methods(http.MethodGet)
	api.HandleFunc("/gift-suggestions", giftHandler.GiftSuggestionsJSON).Methods(http.MethodGet)
}
