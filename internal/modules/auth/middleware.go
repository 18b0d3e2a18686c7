package auth

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/obelyakova/warehouse-api/internal/apierr"
	"github.com/obelyakova/warehouse-api/internal/identity"
)

// Middleware gates routes on the caller's token and role.
type Middleware struct {
	service Service
}

func NewMiddleware(service Service) *Middleware {
	return &Middleware{service: service}
}

// Authenticate resolves the Bearer token into an identity and stores it in
// the request context. Missing, invalid, or revoked tokens get a 401.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token := strings.TrimPrefix(header, "Bearer ")
		if token == "" || token == header {
			deny(w, http.StatusUnauthorized, apierr.ErrUnauthenticated.Error())
			return
		}

		id, err := m.service.Verify(r.Context(), token)
		if err != nil {
			deny(w, http.StatusUnauthorized, apierr.ErrUnauthenticated.Error())
			return
		}

		next.ServeHTTP(w, r.WithContext(identity.NewContext(r.Context(), *id)))
	})
}

// RequireSeller passes only authenticated sellers. Chain after Authenticate.
func (m *Middleware) RequireSeller(next http.Handler) http.Handler {
	return requireRole(identity.Seller, next)
}

// RequireBuyer passes only authenticated buyers. Chain after Authenticate.
func (m *Middleware) RequireBuyer(next http.Handler) http.Handler {
	return requireRole(identity.Buyer, next)
}

func requireRole(role identity.Role, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := identity.FromContext(r.Context())
		if !ok {
			deny(w, http.StatusUnauthorized, apierr.ErrUnauthenticated.Error())
			return
		}
		if id.Role != role {
			deny(w, http.StatusForbidden, apierr.ErrForbidden.Error())
			return
		}
		next.ServeHTTP(w, r)
	})
}

func deny(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"detail": detail})
}
