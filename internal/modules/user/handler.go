package user

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/obelyakova/warehouse-api/internal/apierr"
	"github.com/obelyakova/warehouse-api/internal/identity"
)

// Handler exposes client HTTP endpoints. Registration and reads are open;
// partial update requires the authenticated account itself.
type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router, authenticate func(http.Handler) http.Handler) {
	r.Route("/clients", func(r chi.Router) {
		r.Post("/", h.register)
		r.Get("/", h.listClients)
		r.Get("/{id}", h.getClient)
		r.With(authenticate).Patch("/{id}", h.updateClient)
	})
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"detail": err.Error()})
		return
	}

	u, err := h.service.Register(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	respond(w, http.StatusCreated, u)
}

func (h *Handler) listClients(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.ListUsers(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if users == nil {
		users = []*User{}
	}
	respond(w, http.StatusOK, users)
}

func (h *Handler) getClient(w http.ResponseWriter, r *http.Request) {
	u, err := h.service.GetUser(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	respond(w, http.StatusOK, u)
}

func (h *Handler) updateClient(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	caller, ok := identity.FromContext(r.Context())
	if !ok {
		writeError(w, apierr.ErrUnauthenticated)
		return
	}
	if caller.UserID.String() != id {
		writeError(w, apierr.ErrForbidden)
		return
	}

	var req UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"detail": err.Error()})
		return
	}

	u, err := h.service.UpdateUser(r.Context(), id, req)
	if err != nil {
		writeError(w, err)
		return
	}
	respond(w, http.StatusOK, u)
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
	case errors.Is(err, apierr.ErrUnauthenticated):
		respond(w, http.StatusUnauthorized, map[string]string{"detail": err.Error()})
	case errors.Is(err, apierr.ErrForbidden):
		respond(w, http.StatusForbidden, map[string]string{"detail": err.Error()})
	default:
		respond(w, http.StatusInternalServerError, map[string]string{"detail": err.Error()})
	}
}
