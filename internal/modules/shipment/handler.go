package shipment

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/obelyakova/warehouse-api/internal/apierr"
)

// Handler exposes shipment HTTP endpoints. Creating and listing claims is
// buyer-only; a single shipment can be read by any authenticated caller.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r chi.Router, authenticate, requireBuyer func(http.Handler) http.Handler) {
	r.Route("/shipment", func(r chi.Router) {
		r.Use(authenticate)

		r.Get("/{id}", h.getShipment)

		r.Group(func(r chi.Router) {
			r.Use(requireBuyer)
			r.Post("/", h.createShipment)
			r.Get("/", h.listShipments)
		})
	})
}

func (h *Handler) createShipment(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"detail": err.Error()})
		return
	}
	s, err := h.service.CreateShipment(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	respond(w, http.StatusCreated, s)
}

func (h *Handler) listShipments(w http.ResponseWriter, r *http.Request) {
	shipments, err := h.service.ListShipments(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if shipments == nil {
		shipments = []*Shipment{}
	}
	respond(w, http.StatusOK, shipments)
}

func (h *Handler) getShipment(w http.ResponseWriter, r *http.Request) {
	s, err := h.service.GetShipment(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	respond(w, http.StatusOK, s)
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
