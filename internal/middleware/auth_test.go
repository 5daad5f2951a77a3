package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukydev/fleet-rental/internal/auth"
	"github.com/ukydev/fleet-rental/internal/metrics"
	"github.com/ukydev/fleet-rental/internal/models"
)

func newAuthService(t *testing.T) *auth.Service {
	t.Helper()
	svc, err := auth.NewService("test-secret", time.Hour)
	require.NoError(t, err)
	return svc
}

func tokenFor(t *testing.T, svc *auth.Service, user models.User) string {
	t.Helper()
	token, err := svc.GenerateToken(user)
	require.NoError(t, err)
	return token
}

func admin() *models.Administrator {
	return &models.Administrator{UserBase: models.UserBase{Mail: "root@fleet.test"}}
}

func client() *models.Client {
	return &models.Client{UserBase: models.UserBase{Mail: "jean@fleet.test"}}
}

// serve runs the chain and reports whether the final handler ran.
func serve(h func(http.Handler) http.Handler, req *http.Request) (*httptest.ResponseRecorder, bool) {
	called := false
	w := httptest.NewRecorder()
	h(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true })).ServeHTTP(w, req)
	return w, called
}

func TestAuthMiddleware_Authenticate(t *testing.T) {
	authService := newAuthService(t)
	m := metrics.New(prometheus.NewRegistry(), "test")
	middleware := NewAuthMiddleware(authService, m)

	t.Run("valid token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/cars", nil)
		req.Header.Set("Authorization", "Bearer "+tokenFor(t, authService, client()))
		w := httptest.NewRecorder()

		handlerCalled := false
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			handlerCalled = true
			claims, ok := GetUserFromContext(r.Context())
			assert.True(t, ok)
			assert.Equal(t, "jean@fleet.test", claims.Mail)
			assert.Equal(t, models.RoleClient, claims.Role)
		})

		middleware.Authenticate(handler).ServeHTTP(w, req)
		assert.True(t, handlerCalled)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing authorization header", func(t *testing.T) {
		w, called := serve(middleware.Authenticate, httptest.NewRequest("GET", "/api/cars", nil))
		assert.False(t, called)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, 1.0, testutil.ToFloat64(m.AuthFailures.WithLabelValues("missing_header")))
	})

	t.Run("invalid token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/cars", nil)
		req.Header.Set("Authorization", "Bearer invalid-token")

		w, called := serve(middleware.Authenticate, req)
		assert.False(t, called)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("skip auth path", func(t *testing.T) {
		w, called := serve(middleware.Authenticate, httptest.NewRequest("POST", "/api/auth/login", nil))
		assert.True(t, called)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestAuthMiddleware_RequireRole(t *testing.T) {
	authService := newAuthService(t)
	middleware := NewAuthMiddleware(authService, nil)
	chain := func(next http.Handler) http.Handler {
		return middleware.Authenticate(middleware.RequireRole(models.RoleAdmin)(next))
	}

	t.Run("admin accessing admin endpoint", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/administrators", nil)
		req.Header.Set("Authorization", "Bearer "+tokenFor(t, authService, admin()))

		w, called := serve(chain, req)
		assert.True(t, called)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("client accessing admin endpoint", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/administrators", nil)
		req.Header.Set("Authorization", "Bearer "+tokenFor(t, authService, client()))

		w, called := serve(chain, req)
		assert.False(t, called)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("no claims", func(t *testing.T) {
		w, called := serve(middleware.RequireRole(models.RoleAdmin), httptest.NewRequest("GET", "/api/administrators", nil))
		assert.False(t, called)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestAuthMiddleware_ReadWrite(t *testing.T) {
	authService := newAuthService(t)
	middleware := NewAuthMiddleware(authService, nil)
	chain := func(next http.Handler) http.Handler {
		return middleware.Authenticate(middleware.ReadWrite(models.ActionViewFleet, models.ActionManageFleet)(next))
	}

	tests := []struct {
		name   string
		method string
		user   models.User
		want   int
	}{
		{"client reads fleet", http.MethodGet, client(), http.StatusOK},
		{"client cannot add vehicle", http.MethodPost, client(), http.StatusForbidden},
		{"client cannot delete vehicle", http.MethodDelete, client(), http.StatusForbidden},
		{"admin adds vehicle", http.MethodPost, admin(), http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/api/cars", nil)
			req.Header.Set("Authorization", "Bearer "+tokenFor(t, authService, tt.user))

			w, called := serve(chain, req)
			assert.Equal(t, tt.want, w.Code)
			assert.Equal(t, tt.want == http.StatusOK, called)
		})
	}
}

func TestGetUserFromContext(t *testing.T) {
	claims := &models.Claims{Mail: "root@fleet.test", Role: models.RoleAdmin}

	ctx := context.WithValue(context.Background(), UserContextKey, claims)

	retrievedClaims, ok := GetUserFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, claims.Mail, retrievedClaims.Mail)
	assert.Equal(t, claims.Role, retrievedClaims.Role)

	_, ok = GetUserFromContext(context.Background())
	assert.False(t, ok)
}
