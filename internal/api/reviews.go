package api

import (
	"net/http"
	"time"

	"github.com/digifasal/agrimarket/internal/storage"
)

func (s *Server) handleCreateReview(w http.ResponseWriter, r *http.Request) {
	var review storage.Review
	if !decodeBody(w, r, &review) {
		return
	}
	// id and createdAt are assigned by the storage layer
	review.ID = 0
	review.CreatedAt = time.Time{}
	if review.UserID <= 0 {
		writeError(w, http.StatusBadRequest, "User id is required")
		return
	}
	if review.ProductID == nil && review.ServiceID == nil {
		writeError(w, http.StatusBadRequest, "A product id or service id is required")
		return
	}
	if review.Rating < 1 || review.Rating > 5 {
		writeError(w, http.StatusBadRequest, "Rating must be between 1 and 5")
		return
	}
	created, err := s.st.CreateReview(r.Context(), review)
	if err != nil {
		s.storageError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleGetProductReviews(w http.ResponseWriter, r *http.Request) {
	productID, ok := pathID(r, "productId")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid product id")
		return
	}
	reviews, err := s.st.GetReviewsForProduct(r.Context(), productID)
	if err != nil {
		s.storageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reviews)
}

func (s *Server) handleGetServiceReviews(w http.ResponseWriter, r *http.Request) {
	serviceID, ok := pathID(r, "serviceId")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid service id")
		return
	}
	reviews, err := s.st.GetReviewsForService(r.Context(), serviceID)
	if err != nil {
		s.storageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reviews)
}
