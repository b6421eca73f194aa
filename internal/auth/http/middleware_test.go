package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/assettrack/internal/auth/domain"
	"github.com/allisson/assettrack/internal/httputil"
)

// mockIdentityUseCase is a mock implementation of IdentityUseCase for testing.
type mockIdentityUseCase struct {
	mock.Mock
}

func (m *mockIdentityUseCase) Resolve(ctx context.Context, token string) (*authDomain.Identity, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.Identity), args.Error(1)
}

func (m *mockIdentityUseCase) FetchProfile(ctx context.Context, token string) (*authDomain.Identity, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.Identity), args.Error(1)
}

func (m *mockIdentityUseCase) Invalidate(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

// mockBusinessMetrics is a mock implementation of metrics.BusinessMetrics for testing.
type mockBusinessMetrics struct {
	mock.Mock
}

func (m *mockBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	m.Called(ctx, domain, operation, status)
}

func (m *mockBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	m.Called(ctx, domain, operation, duration, status)
}

// TestMain sets Gin to test mode for all tests in this package.
func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// createTestLogger creates a test logger that discards output.
func createTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testIdentity(role authDomain.Role) *authDomain.Identity {
	return &authDomain.Identity{
		ID:          "42",
		Username:    "alice",
		Role:        role,
		Permissions: []authDomain.Permission{authDomain.ReadPermission},
	}
}

// withIdentity injects identity into the request context like AuthenticationMiddleware does.
func withIdentity(identity *authDomain.Identity) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request = c.Request.WithContext(authDomain.WithIdentity(c.Request.Context(), identity))
		c.Next()
	}
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) httputil.ErrorResponse {
	t.Helper()
	var response httputil.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return response
}

func TestAuthenticationMiddleware_Success(t *testing.T) {
	mockIdentityUC := &mockIdentityUseCase{}
	identity := testIdentity(authDomain.RoleManager)

	mockIdentityUC.On("Resolve", mock.Anything, "test-token").Return(identity, nil).Once()

	router := gin.New()
	router.Use(AuthenticationMiddleware(mockIdentityUC, createTestLogger()))
	router.GET("/api/devices/", func(c *gin.Context) {
		retrieved, ok := authDomain.IdentityFromContext(c.Request.Context())
		require.True(t, ok, "identity should be in context")
		assert.Equal(t, "alice", retrieved.Username)
		c.JSON(http.StatusOK, gin.H{"message": "success"})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/devices/", nil)
	req.Header.Set("Authorization", "Bearer test-token")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockIdentityUC.AssertExpectations(t)
}

func TestAuthenticationMiddleware_MissingCredential(t *testing.T) {
	mockIdentityUC := &mockIdentityUseCase{}

	router := gin.New()
	router.Use(AuthenticationMiddleware(mockIdentityUC, createTestLogger()))
	router.GET("/api/devices/", func(c *gin.Context) {
		t.Fatal("handler should not be called")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/devices/", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	response := decodeError(t, w)
	assert.Equal(t, "unauthorized", response.Error)
	assert.Equal(t, authDomain.CodeMissingCredential, response.Code)
	mockIdentityUC.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything)
}

func TestAuthenticationMiddleware_ErrorKinds(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		statusCode int
		code       string
	}{
		{"Rejected", authDomain.ErrTokenRejected, http.StatusUnauthorized, authDomain.CodeTokenRejected},
		{
			"Unavailable",
			authDomain.ErrAuthorityUnavailable,
			http.StatusServiceUnavailable,
			authDomain.CodeAuthorityUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockIdentityUC := &mockIdentityUseCase{}
			mockIdentityUC.On("Resolve", mock.Anything, "tok").Return(nil, tt.err).Once()

			router := gin.New()
			router.Use(AuthenticationMiddleware(mockIdentityUC, createTestLogger()))
			router.GET("/api/devices/", func(c *gin.Context) {
				t.Fatal("handler should not be called")
			})

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/devices/", nil)
			req.Header.Set("Authorization", "Bearer tok")
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.statusCode, w.Code)
			assert.Equal(t, tt.code, decodeError(t, w).Code)
			mockIdentityUC.AssertExpectations(t)
		})
	}
}

func TestAuthenticationMiddleware_BypassPaths(t *testing.T) {
	paths := []string{"/health", "/api/health/", "/api/schema/", "/admin/login/", "/static/app.js"}

	for _, path := range paths {
		t.Run(path, func(t *testing.T) {
			mockIdentityUC := &mockIdentityUseCase{}

			router := gin.New()
			router.Use(AuthenticationMiddleware(mockIdentityUC, createTestLogger()))
			router.GET(path, func(c *gin.Context) {
				_, ok := authDomain.IdentityFromContext(c.Request.Context())
				assert.False(t, ok)
				c.Status(http.StatusOK)
			})

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))

			assert.Equal(t, http.StatusOK, w.Code)
			mockIdentityUC.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything)
		})
	}
}

func TestIsBypassPath(t *testing.T) {
	assert.True(t, IsBypassPath("/health"))
	assert.True(t, IsBypassPath("/ready"))
	assert.True(t, IsBypassPath("/api/schema/redoc/"))
	assert.True(t, IsBypassPath("/admin/app_rttm/device/"))
	assert.True(t, IsBypassPath("/"))
	assert.False(t, IsBypassPath("/api/devices/"))
	assert.False(t, IsBypassPath("/api/schema/other/"))
	assert.False(t, IsBypassPath("/api/healthz"))
	assert.False(t, IsBypassPath("/api/health"))
	assert.True(t, IsBypassPath("/api/health/"))
}

func TestAuthorizationMiddleware(t *testing.T) {
	table := authDomain.DefaultRoleTable()

	tests := []struct {
		name       string
		role       authDomain.Role
		method     string
		path       string
		statusCode int
		decision   string
	}{
		{"Allowed", authDomain.RoleTechnician, http.MethodPost, "/api/repair-requests/", http.StatusOK, "allowed"},
		{"Denied", authDomain.RoleManager, http.MethodGet, "/api/repair-requests/", http.StatusForbidden, "denied"},
		{"DeniedWrite", authDomain.RoleUser, http.MethodPost, "/api/devices/", http.StatusForbidden, "denied"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockMetrics := &mockBusinessMetrics{}
			mockMetrics.On("RecordOperation", mock.Anything, "auth", "authorize", tt.decision).Return().Once()

			router := gin.New()
			router.Use(withIdentity(testIdentity(tt.role)))
			router.Use(AuthorizationMiddleware(
				authDomain.NewRoleBasedAuthorizer(table),
				mockMetrics,
				createTestLogger(),
			))
			router.Handle(tt.method, tt.path, func(c *gin.Context) {
				c.Status(http.StatusOK)
			})

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))

			assert.Equal(t, tt.statusCode, w.Code)
			if tt.statusCode == http.StatusForbidden {
				response := decodeError(t, w)
				assert.Equal(t, "forbidden", response.Error)
				assert.Equal(t, authDomain.CodeForbidden, response.Code)
			}
			mockMetrics.AssertExpectations(t)
		})
	}
}

func TestAuthorizationMiddleware_NoIdentity(t *testing.T) {
	mockMetrics := &mockBusinessMetrics{}

	router := gin.New()
	router.Use(AuthorizationMiddleware(
		authDomain.NewRoleBasedAuthorizer(authDomain.DefaultRoleTable()),
		mockMetrics,
		createTestLogger(),
	))
	router.GET("/api/devices/", func(c *gin.Context) {
		t.Fatal("handler should not be called")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/devices/", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	mockMetrics.AssertNotCalled(t, "RecordOperation", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAuthenticationAndAuthorization_IdentityScopedToRequest(t *testing.T) {
	mockIdentityUC := &mockIdentityUseCase{}
	mockIdentityUC.On("Resolve", mock.Anything, "admin-token").Return(testIdentity(authDomain.RoleAdmin), nil)
	mockIdentityUC.On("Resolve", mock.Anything, "user-token").Return(testIdentity(authDomain.RoleUser), nil)

	mockMetrics := &mockBusinessMetrics{}
	mockMetrics.On("RecordOperation", mock.Anything, "auth", "authorize", mock.Anything).Return()

	router := gin.New()
	router.Use(AuthenticationMiddleware(mockIdentityUC, createTestLogger()))
	router.Use(AuthorizationMiddleware(
		authDomain.NewRoleBasedAuthorizer(authDomain.DefaultRoleTable()),
		mockMetrics,
		createTestLogger(),
	))
	router.DELETE("/api/devices/:id", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	send := func(token string) int {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/api/devices/1", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusNoContent, send("admin-token"))
	assert.Equal(t, http.StatusForbidden, send("user-token"))
	assert.Equal(t, http.StatusNoContent, send("admin-token"))
}

func TestAuthorizationMiddleware_ReadOnlySession(t *testing.T) {
	mockMetrics := &mockBusinessMetrics{}
	mockMetrics.On("RecordOperation", mock.Anything, "auth", "authorize", mock.Anything).Return()

	send := func(role authDomain.Role) int {
		router := gin.New()
		router.Use(withIdentity(testIdentity(role)))
		router.Use(AuthorizationMiddleware(
			authDomain.NewReadOnlyAuthorizer(authDomain.DefaultRoleTable()),
			mockMetrics,
			createTestLogger(),
		))
		router.GET("/api/auth/me", func(c *gin.Context) { c.Status(http.StatusOK) })

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/auth/me", nil))
		return w.Code
	}

	assert.Equal(t, http.StatusOK, send(authDomain.RoleUser))
	assert.Equal(t, http.StatusOK, send(authDomain.RoleAdmin))
	assert.Equal(t, http.StatusForbidden, send(authDomain.Role("guest")))
}
