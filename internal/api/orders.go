package api

import (
	"net/http"
	"time"

	"github.com/digifasal/agrimarket/internal/storage"
)

func validOrderStatus(s storage.OrderStatus) bool {
	switch s {
	case storage.OrderPending, storage.OrderConfirmed, storage.OrderShipped, storage.OrderDelivered, storage.OrderCancelled:
		return true
	}
	return false
}

type orderStatusRequest struct {
	Status storage.OrderStatus `json:"status"`
}

func (s *Server) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	var o storage.Order
	if !decodeBody(w, r, &o) {
		return
	}
	// id and createdAt are assigned by the storage layer
	o.ID = 0
	o.CreatedAt = time.Time{}
	if o.BuyerID <= 0 || o.FarmerID <= 0 || o.ProductID <= 0 || o.Quantity == "" || o.TotalPrice == "" {
		writeError(w, http.StatusBadRequest, "Buyer id, farmer id, product id, quantity and total price are required")
		return
	}
	if o.Status != "" && !validOrderStatus(o.Status) {
		writeError(w, http.StatusBadRequest, "Invalid order status")
		return
	}
	created, err := s.st.CreateOrder(r.Context(), o)
	if err != nil {
		s.storageError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid order id")
		return
	}
	order, err := s.st.GetOrder(r.Context(), id)
	if err != nil {
		s.storageError(w, err)
		return
	}
	if order == nil {
		writeError(w, http.StatusNotFound, "Order not found")
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (s *Server) handleGetOrdersByBuyer(w http.ResponseWriter, r *http.Request) {
	buyerID, ok := pathID(r, "buyerId")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid buyer id")
		return
	}
	orders, err := s.st.GetOrdersByBuyer(r.Context(), buyerID)
	if err != nil {
		s.storageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (s *Server) handleGetOrdersByFarmer(w http.ResponseWriter, r *http.Request) {
	farmerID, ok := pathID(r, "farmerId")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid farmer id")
		return
	}
	orders, err := s.st.GetOrdersByFarmer(r.Context(), farmerID)
	if err != nil {
		s.storageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (s *Server) handleUpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid order id")
		return
	}
	var req orderStatusRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if !validOrderStatus(req.Status) {
		writeError(w, http.StatusBadRequest, "Invalid order status")
		return
	}
	order, err := s.st.UpdateOrderStatus(r.Context(), id, req.Status)
	if err != nil {
		s.storageError(w, err)
		return
	}
	if order == nil {
		writeError(w, http.StatusNotFound, "Order not found")
		return
	}
	writeJSON(w, http.StatusOK, order)
}
