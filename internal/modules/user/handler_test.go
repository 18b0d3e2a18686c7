package user_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obelyakova/warehouse-api/internal/identity"
	"github.com/obelyakova/warehouse-api/internal/modules/user"
)

// passthroughAuth stands in for the real token middleware: tests inject the
// identity directly into the request context.
func passthroughAuth(next http.Handler) http.Handler {
	return next
}

func newRouter(svc user.Service) *chi.Mux {
	router := chi.NewRouter()
	user.NewHandler(svc).RegisterRoutes(router, passthroughAuth)
	return router
}

func TestRegisterEndpoint(t *testing.T) {
	router := newRouter(user.NewService(&fakeRepo{}))

	body := `{"username":"alice","email":"alice@example.com","password":"hunter22","group":"seller"}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/clients", strings.NewReader(body)))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"username":"alice"`)
	assert.Contains(t, rec.Body.String(), `"group":"seller"`)
	assert.NotContains(t, rec.Body.String(), "hunter22")
}

func TestRegisterEndpointValidation(t *testing.T) {
	router := newRouter(user.NewService(&fakeRepo{}))

	body := `{"username":"alice","email":"alice@example.com","password":"123","group":"seller"}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/clients", strings.NewReader(body)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "password")
}

func TestListClients(t *testing.T) {
	svc := user.NewService(&fakeRepo{})
	_, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)
	router := newRouter(svc)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/clients", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"alice"`)
}

func TestUpdateClientSelf(t *testing.T) {
	svc := user.NewService(&fakeRepo{})
	u, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)
	router := newRouter(svc)

	req := httptest.NewRequest(http.MethodPatch, "/clients/"+u.ID.String(),
		strings.NewReader(`{"email":"fresh@example.com"}`))
	req = req.WithContext(identity.NewContext(req.Context(), identity.Identity{
		UserID: u.ID,
		Role:   identity.Seller,
	}))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "fresh@example.com")
}

func TestUpdateClientOtherAccountForbidden(t *testing.T) {
	svc := user.NewService(&fakeRepo{})
	u, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	other := validRegistration()
	other.Username = "bob"
	other.Email = "bob@example.com"
	stranger, err := svc.Register(context.Background(), other)
	require.NoError(t, err)

	router := newRouter(svc)

	req := httptest.NewRequest(http.MethodPatch, "/clients/"+u.ID.String(),
		strings.NewReader(`{"email":"stolen@example.com"}`))
	req = req.WithContext(identity.NewContext(req.Context(), identity.Identity{
		UserID: stranger.ID,
		Role:   identity.Buyer,
	}))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}
