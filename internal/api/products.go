package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/digifasal/agrimarket/internal/storage"
)

func validCategory(c storage.ProductCategory) bool {
	switch c {
	case storage.CategoryVegetables, storage.CategoryFruits, storage.CategoryGrains, storage.CategoryOrganic:
		return true
	}
	return false
}

func (s *Server) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	var p storage.Product
	if !decodeBody(w, r, &p) {
		return
	}
	// id and createdAt are assigned by the storage layer
	p.ID = 0
	p.CreatedAt = time.Time{}
	if p.FarmerID <= 0 || p.Title == "" || p.Price == "" || p.Unit == "" || p.Quantity == "" {
		writeError(w, http.StatusBadRequest, "Farmer id, title, price, unit and quantity are required")
		return
	}
	if !validCategory(p.Category) {
		writeError(w, http.StatusBadRequest, "Invalid product category")
		return
	}
	created, err := s.st.CreateProduct(r.Context(), p)
	if err != nil {
		s.storageError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleGetProducts(w http.ResponseWriter, r *http.Request) {
	var q storage.ProductQuery

	if v := r.URL.Query().Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 0 {
			writeError(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		q.Limit = limit
	}
	if v := r.URL.Query().Get("category"); v != "" {
		category := storage.ProductCategory(v)
		if !validCategory(category) {
			writeError(w, http.StatusBadRequest, "Invalid product category")
			return
		}
		q.Category = category
	}
	q.SearchTerm = r.URL.Query().Get("search")

	products, err := s.st.GetProducts(r.Context(), q)
	if err != nil {
		s.storageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (s *Server) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid product id")
		return
	}
	product, err := s.st.GetProduct(r.Context(), id)
	if err != nil {
		s.storageError(w, err)
		return
	}
	if product == nil {
		writeError(w, http.StatusNotFound, "Product not found")
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func (s *Server) handleGetProductsByFarmer(w http.ResponseWriter, r *http.Request) {
	farmerID, ok := pathID(r, "farmerId")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid farmer id")
		return
	}
	products, err := s.st.GetProductsByFarmer(r.Context(), farmerID)
	if err != nil {
		s.storageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (s *Server) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid product id")
		return
	}
	var patch storage.ProductPatch
	if !decodeBody(w, r, &patch) {
		return
	}
	if patch.Category != nil && !validCategory(*patch.Category) {
		writeError(w, http.StatusBadRequest, "Invalid product category")
		return
	}
	product, err := s.st.UpdateProduct(r.Context(), id, patch)
	if err != nil {
		s.storageError(w, err)
		return
	}
	if product == nil {
		writeError(w, http.StatusNotFound, "Product not found")
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func (s *Server) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid product id")
		return
	}
	deleted, err := s.st.DeleteProduct(r.Context(), id)
	if err != nil {
		s.storageError(w, err)
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "Product not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
