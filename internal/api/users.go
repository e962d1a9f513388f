package api

import (
	"net/http"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/digifasal/agrimarket/internal/storage"
)

type registerRequest struct {
	Username     string       `json:"username"`
	Password     string       `json:"password"`
	Email        string       `json:"email"`
	Phone        string       `json:"phone"`
	FullName     string       `json:"fullName"`
	Role         storage.Role `json:"role"`
	Address      string       `json:"address"`
	City         string       `json:"city"`
	State        string       `json:"state"`
	ProfileImage string       `json:"profileImage"`
	Bio          string       `json:"bio"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func validRole(r storage.Role) bool {
	switch r {
	case storage.RoleFarmer, storage.RoleBuyer, storage.RoleServiceProvider:
		return true
	}
	return false
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Username == "" || req.Password == "" || req.Email == "" || req.FullName == "" {
		writeError(w, http.StatusBadRequest, "Username, password, email and full name are required")
		return
	}
	if !validRole(req.Role) {
		writeError(w, http.StatusBadRequest, "Invalid role")
		return
	}

	// advisory pre-checks; the relational backend still enforces uniqueness
	existing, err := s.st.GetUserByUsername(r.Context(), req.Username)
	if err != nil {
		s.storageError(w, err)
		return
	}
	if existing != nil {
		writeError(w, http.StatusBadRequest, "Username already taken")
		return
	}
	existing, err = s.st.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		s.storageError(w, err)
		return
	}
	if existing != nil {
		writeError(w, http.StatusBadRequest, "Email already registered")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.storageError(w, err)
		return
	}

	user, err := s.st.CreateUser(r.Context(), storage.User{
		Username:     req.Username,
		Password:     string(hash),
		Email:        req.Email,
		Phone:        req.Phone,
		FullName:     req.FullName,
		Role:         req.Role,
		Address:      req.Address,
		City:         req.City,
		State:        req.State,
		ProfileImage: req.ProfileImage,
		Bio:          req.Bio,
	})
	if err != nil {
		s.storageError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	user, err := s.st.GetUserByUsername(r.Context(), req.Username)
	if err != nil {
		s.storageError(w, err)
		return
	}
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid user id")
		return
	}
	user, err := s.st.GetUser(r.Context(), id)
	if err != nil {
		s.storageError(w, err)
		return
	}
	if user == nil {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid user id")
		return
	}
	var patch storage.UserPatch
	if !decodeBody(w, r, &patch) {
		return
	}
	if patch.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*patch.Password), bcrypt.DefaultCost)
		if err != nil {
			s.storageError(w, err)
			return
		}
		hashed := string(hash)
		patch.Password = &hashed
	}
	user, err := s.st.UpdateUser(r.Context(), id, patch)
	if err != nil {
		s.storageError(w, err)
		return
	}
	if user == nil {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleGetUsersByRole(w http.ResponseWriter, r *http.Request) {
	role := storage.Role(r.PathValue("role"))
	if role == "all" {
		users, err := s.st.GetUsers(r.Context())
		if err != nil {
			s.storageError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, users)
		return
	}
	if !validRole(role) {
		writeError(w, http.StatusBadRequest, "Invalid role")
		return
	}
	users, err := s.st.GetUsersByRole(r.Context(), role)
	if err != nil {
		s.storageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (s *Server) storageError(w http.ResponseWriter, err error) {
	log.Error().Err(err).Msg("storage operation failed")
	writeError(w, http.StatusInternalServerError, "Internal server error")
}
