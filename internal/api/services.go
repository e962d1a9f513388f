package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/digifasal/agrimarket/internal/storage"
)

func validServiceType(t storage.ServiceType) bool {
	switch t {
	case storage.ServiceTransportation, storage.ServiceEquipmentRental, storage.ServiceAdvisory:
		return true
	}
	return false
}

func (s *Server) handleCreateService(w http.ResponseWriter, r *http.Request) {
	var svc storage.Service
	if !decodeBody(w, r, &svc) {
		return
	}
	// id and createdAt are assigned by the storage layer
	svc.ID = 0
	svc.CreatedAt = time.Time{}
	if svc.ProviderID <= 0 || svc.Title == "" || svc.Price == "" || svc.PricingUnit == "" {
		writeError(w, http.StatusBadRequest, "Provider id, title, price and pricing unit are required")
		return
	}
	if !validServiceType(svc.ServiceType) {
		writeError(w, http.StatusBadRequest, "Invalid service type")
		return
	}
	created, err := s.st.CreateService(r.Context(), svc)
	if err != nil {
		s.storageError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleGetServices(w http.ResponseWriter, r *http.Request) {
	var q storage.ServiceQuery

	if v := r.URL.Query().Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 0 {
			writeError(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		q.Limit = limit
	}
	if v := r.URL.Query().Get("type"); v != "" {
		serviceType := storage.ServiceType(v)
		if !validServiceType(serviceType) {
			writeError(w, http.StatusBadRequest, "Invalid service type")
			return
		}
		q.Type = serviceType
	}

	services, err := s.st.GetServices(r.Context(), q)
	if err != nil {
		s.storageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, services)
}

func (s *Server) handleGetService(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid service id")
		return
	}
	service, err := s.st.GetService(r.Context(), id)
	if err != nil {
		s.storageError(w, err)
		return
	}
	if service == nil {
		writeError(w, http.StatusNotFound, "Service not found")
		return
	}
	writeJSON(w, http.StatusOK, service)
}

func (s *Server) handleGetServicesByProvider(w http.ResponseWriter, r *http.Request) {
	providerID, ok := pathID(r, "providerId")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid provider id")
		return
	}
	services, err := s.st.GetServicesByProvider(r.Context(), providerID)
	if err != nil {
		s.storageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, services)
}

func (s *Server) handleUpdateService(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid service id")
		return
	}
	var patch storage.ServicePatch
	if !decodeBody(w, r, &patch) {
		return
	}
	if patch.ServiceType != nil && !validServiceType(*patch.ServiceType) {
		writeError(w, http.StatusBadRequest, "Invalid service type")
		return
	}
	service, err := s.st.UpdateService(r.Context(), id, patch)
	if err != nil {
		s.storageError(w, err)
		return
	}
	if service == nil {
		writeError(w, http.StatusNotFound, "Service not found")
		return
	}
	writeJSON(w, http.StatusOK, service)
}

func (s *Server) handleDeleteService(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid service id")
		return
	}
	deleted, err := s.st.DeleteService(r.Context(), id)
	if err != nil {
		s.storageError(w, err)
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "Service not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
