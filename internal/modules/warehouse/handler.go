package warehouse

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/obelyakova/warehouse-api/internal/apierr"
	"github.com/obelyakova/warehouse-api/internal/modules/product"
)

// Handler exposes warehouse HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r chi.Router, authenticate, requireSeller func(http.Handler) http.Handler) {
	r.Route("/warehouse", func(r chi.Router) {
		r.Use(authenticate)

		r.Get("/", h.listWarehouses)
		r.Get("/{id}", h.getWarehouse)
		r.Get("/{id}/products", h.listAvailableProducts)

		r.Group(func(r chi.Router) {
			r.Use(requireSeller)
			r.Post("/", h.createWarehouse)
			r.Put("/{id}", h.updateWarehouse)
			r.Patch("/{id}", h.updateWarehouse)
			r.Delete("/{id}", h.deleteWarehouse)
		})
	})
}

type warehouseRequest struct {
	Name string `json:"name"`
}

func (h *Handler) createWarehouse(w http.ResponseWriter, r *http.Request) {
	var req warehouseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"detail": err.Error()})
		return
	}
	wh, err := h.service.CreateWarehouse(r.Context(), req.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	respond(w, http.StatusCreated, wh)
}

func (h *Handler) listWarehouses(w http.ResponseWriter, r *http.Request) {
	warehouses, err := h.service.ListWarehouses(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if warehouses == nil {
		warehouses = []*Warehouse{}
	}
	respond(w, http.StatusOK, warehouses)
}

func (h *Handler) getWarehouse(w http.ResponseWriter, r *http.Request) {
	wh, err := h.service.GetWarehouse(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	respond(w, http.StatusOK, wh)
}

func (h *Handler) updateWarehouse(w http.ResponseWriter, r *http.Request) {
	var req warehouseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"detail": err.Error()})
		return
	}
	wh, err := h.service.UpdateWarehouse(r.Context(), chi.URLParam(r, "id"), req.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	respond(w, http.StatusOK, wh)
}

func (h *Handler) deleteWarehouse(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteWarehouse(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listAvailableProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.ListAvailableProducts(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	if products == nil {
		products = []*product.Product{}
	}
	respond(w, http.StatusOK, products)
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, err error) {
	var verr *apierr.ValidationError
	var nf *apierr.NotFoundError
	switch {
	case errors.As(err, &verr):
		respond(w, http.StatusBadRequest, verr.Fields)
	case errors.As(err, &nf):
		respond(w, http.StatusNotFound, map[string]string{"detail": nf.Error()})
	default:
		respond(w, http.StatusInternalServerError, map[string]string{"detail": err.Error()})
	}
}
