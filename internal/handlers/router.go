package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func NewRouter(h *Handler) *mux.Router {
	router := mux.NewRouter()
	router.Use(enableCORS)

	router.HandleFunc("/health", h.Health).Methods(http.MethodGet, http.MethodOptions)
	router.HandleFunc("/predict", h.Predict).Methods(http.MethodPost, http.MethodOptions)
	router.HandleFunc("/predict/image", h.PredictFromImage).Methods(http.MethodPost, http.MethodOptions)

	return router
}
