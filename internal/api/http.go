package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/digifasal/agrimarket/internal/api/swagger"
	"github.com/digifasal/agrimarket/internal/seed"
	"github.com/digifasal/agrimarket/internal/storage"
)

// Server holds the HTTP handlers for the marketplace API.
type Server struct {
	st storage.Storage
}

// NewHandler builds the full route table over the given storage backend.
func NewHandler(st storage.Storage) http.Handler {
	s := &Server{st: st}
	mux := http.NewServeMux()

	s.route(mux, "POST /api/users/register", s.handleRegister)
	s.route(mux, "POST /api/users/login", s.handleLogin)
	s.route(mux, "GET /api/users/{id}", s.handleGetUser)
	s.route(mux, "PUT /api/users/{id}", s.handleUpdateUser)
	s.route(mux, "GET /api/users/role/{role}", s.handleGetUsersByRole)

	s.route(mux, "POST /api/products", s.handleCreateProduct)
	s.route(mux, "GET /api/products", s.handleGetProducts)
	s.route(mux, "GET /api/products/{id}", s.handleGetProduct)
	s.route(mux, "PUT /api/products/{id}", s.handleUpdateProduct)
	s.route(mux, "DELETE /api/products/{id}", s.handleDeleteProduct)
	s.route(mux, "GET /api/products/farmer/{farmerId}", s.handleGetProductsByFarmer)

	s.route(mux, "POST /api/services", s.handleCreateService)
	s.route(mux, "GET /api/services", s.handleGetServices)
	s.route(mux, "GET /api/services/{id}", s.handleGetService)
	s.route(mux, "PUT /api/services/{id}", s.handleUpdateService)
	s.route(mux, "DELETE /api/services/{id}", s.handleDeleteService)
	s.route(mux, "GET /api/services/provider/{providerId}", s.handleGetServicesByProvider)

	s.route(mux, "POST /api/orders", s.handleCreateOrder)
	s.route(mux, "GET /api/orders/{id}", s.handleGetOrder)
	s.route(mux, "PUT /api/orders/{id}/status", s.handleUpdateOrderStatus)
	s.route(mux, "GET /api/orders/buyer/{buyerId}", s.handleGetOrdersByBuyer)
	s.route(mux, "GET /api/orders/farmer/{farmerId}", s.handleGetOrdersByFarmer)

	s.route(mux, "POST /api/reviews", s.handleCreateReview)
	s.route(mux, "GET /api/reviews/product/{productId}", s.handleGetProductReviews)
	s.route(mux, "GET /api/reviews/service/{serviceId}", s.handleGetServiceReviews)

	s.route(mux, "POST /api/testimonials", s.handleCreateTestimonial)
	s.route(mux, "GET /api/testimonials", s.handleGetTestimonials)

	s.route(mux, "POST /api/seed", s.handleSeed)

	mux.HandleFunc("GET /healthz", s.handleHealthz)
	mux.HandleFunc("GET /livez", s.handleHealthz)
	mux.HandleFunc("GET /readyz", s.handleReadyz)
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.Handle("/swagger/", http.StripPrefix("/swagger", swagger.Handler()))

	return requestLogger(mux)
}

func (s *Server) route(mux *http.ServeMux, pattern string, h http.HandlerFunc) {
	mux.Handle(pattern, instrument(pattern, h))
}

func (s *Server) handleSeed(w http.ResponseWriter, r *http.Request) {
	if err := seed.Apply(r.Context(), s.st); err != nil {
		s.storageError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"message": "Database seeded successfully"})
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleReadyz(w http.ResponseWriter, r *http.Request) {
	if err := s.st.Ping(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
