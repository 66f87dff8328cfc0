package server

import (
	"net/http"

	"github.com/gorilla/mux"
)

const validationSimulations = 50000

// Server exposes the pricing engine as a JSON API. All parsing and request
// validation happens here; the engine re-validates on construction.
type Server struct {
	router *mux.Router
	// Monte Carlo trials used for the validation block of
	// /api/calculate-option responses.
	validationSims int
}

// New builds a server with all routes registered.
func New() *Server {
	s := &Server{
		router:         mux.NewRouter(),
		validationSims: validationSimulations,
	}
	s.routes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	s.router.HandleFunc("/api/calculate-option", s.handleCalculateOption).Methods(http.MethodPost)
	s.router.HandleFunc("/api/implied-volatility", s.handleImpliedVolatility).Methods(http.MethodPost)
	s.router.HandleFunc("/api/monte-carlo", s.handleMonteCarlo).Methods(http.MethodPost)
	s.router.HandleFunc("/api/sensitivity-analysis", s.handleSensitivity).Methods(http.MethodPost)
}
