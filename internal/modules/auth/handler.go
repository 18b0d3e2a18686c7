package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/obelyakova/warehouse-api/internal/apierr"
	"github.com/obelyakova/warehouse-api/internal/identity"
)

// Handler exposes token issuance and logout.
type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router, authenticate func(http.Handler) http.Handler) {
	// Path kept as-is for compatibility with existing clients.
	r.Post("/api-token-aut", h.obtainToken)
	r.With(authenticate).Post("/logout", h.logout)
}

func (h *Handler) obtainToken(w http.ResponseWriter, r *http.Request) {
	type request struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"detail": err.Error()})
		return
	}

	token, err := h.service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]string{"token": token})
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	id, ok := identity.FromContext(r.Context())
	if !ok {
		writeError(w, apierr.ErrUnauthenticated)
		return
	}
	if err := h.service.Logout(r.Context(), id.SessionID); err != nil {
		writeError(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]string{"detail": "Successfully logged out."})
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, err error) {
	var verr *apierr.ValidationError
	switch {
	case errors.As(err, &verr):
		respond(w, http.StatusBadRequest, verr.Fields)
	case errors.Is(err, apierr.ErrUnauthenticated):
		respond(w, http.StatusUnauthorized, map[string]string{"detail": err.Error()})
	default:
		respond(w, http.StatusInternalServerError, map[string]string{"detail": err.Error()})
	}
}
