package api

import (
	"net/http"
	"time"

	"github.com/digifasal/agrimarket/internal/storage"
)

func (s *Server) handleCreateTestimonial(w http.ResponseWriter, r *http.Request) {
	var tm storage.Testimonial
	if !decodeBody(w, r, &tm) {
		return
	}
	// id and createdAt are assigned by the storage layer
	tm.ID = 0
	tm.CreatedAt = time.Time{}
	if tm.UserID <= 0 || tm.Content == "" {
		writeError(w, http.StatusBadRequest, "User id and content are required")
		return
	}
	if tm.Rating < 1 || tm.Rating > 5 {
		writeError(w, http.StatusBadRequest, "Rating must be between 1 and 5")
		return
	}
	// submissions always start unapproved
	tm.IsApproved = false
	created, err := s.st.CreateTestimonial(r.Context(), tm)
	if err != nil {
		s.storageError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleGetTestimonials(w http.ResponseWriter, r *http.Request) {
	testimonials, err := s.st.GetApprovedTestimonials(r.Context())
	if err != nil {
		s.storageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, testimonials)
}
