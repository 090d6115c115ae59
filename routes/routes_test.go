package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	config "github.com/momin096/MediCamp-server/config"
)

func setupTestEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	SetupRoutes(r, &config.Config{DBName: "MediCamp", JWTSecret: "test-secret"})
	return r
}

func TestLiveness(t *testing.T) {
	r := setupTestEngine()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if w.Body.String() != "MediCamp server is running" {
		t.Errorf("unexpected liveness body: %s", w.Body.String())
	}
}

// Every gated route must reject an unauthenticated caller before any store
// access happens.
func TestProtectedRoutesRequireToken(t *testing.T) {
	r := setupTestEngine()

	cases := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/profile/a@x.com"},
		{http.MethodGet, "/users/role/a@x.com"},
		{http.MethodPost, "/camps"},
		{http.MethodPatch, "/camps/000000000000000000000000"},
		{http.MethodDelete, "/camps/000000000000000000000000"},
		{http.MethodPost, "/registrations"},
		{http.MethodGet, "/registered-camps"},
		{http.MethodDelete, "/delete-registered-camp/000000000000000000000000"},
		{http.MethodPatch, "/change-status/000000000000000000000000"},
		{http.MethodPatch, "/registered-camps/payment/000000000000000000000000"},
		{http.MethodPost, "/create-payment-intent"},
		{http.MethodPost, "/payments"},
		{http.MethodGet, "/payment-history"},
	}

	for _, tc := range cases {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s %s without a token: got %d, want 401", tc.method, tc.path, w.Code)
		}
	}
}
