package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/assettrack/internal/auth/domain"
	"github.com/allisson/assettrack/internal/auth/http/dto"
)

func setupSessionRouter(mockIdentityUC *mockIdentityUseCase, identity *authDomain.Identity) *gin.Engine {
	handler := NewSessionHandler(mockIdentityUC, authDomain.DefaultRoleTable(), createTestLogger())

	router := gin.New()
	if identity != nil {
		router.Use(withIdentity(identity))
	}
	router.GET("/api/auth/me", handler.MeHandler)
	router.GET("/api/auth/profile", handler.ProfileHandler)
	router.POST("/api/auth/logout", handler.LogoutHandler)
	router.GET("/api/auth/roles", handler.RolesHandler)
	return router
}

func TestSessionHandler_Me(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		router := setupSessionRouter(&mockIdentityUseCase{}, testIdentity(authDomain.RoleUser))

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/auth/me", nil))

		require.Equal(t, http.StatusOK, w.Code)
		var response dto.IdentityResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "alice", response.Username)
		assert.Equal(t, "user", response.Role)
		assert.Equal(t, []string{"GET", "HEAD", "OPTIONS"}, response.AllowedMethods)
	})

	t.Run("Error_NoIdentity", func(t *testing.T) {
		router := setupSessionRouter(&mockIdentityUseCase{}, nil)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/auth/me", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestSessionHandler_Profile(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockIdentityUC := &mockIdentityUseCase{}
		profile := &authDomain.Identity{ID: "42", Username: "alice", Email: "a@example.com", Role: authDomain.RoleManager}
		mockIdentityUC.On("FetchProfile", mock.Anything, "tok").Return(profile, nil).Once()
		router := setupSessionRouter(mockIdentityUC, testIdentity(authDomain.RoleManager))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/auth/profile", nil)
		req.Header.Set("Authorization", "Bearer tok")
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var response dto.IdentityResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "a@example.com", response.Email)
		mockIdentityUC.AssertExpectations(t)
	})

	t.Run("Error_Unavailable", func(t *testing.T) {
		mockIdentityUC := &mockIdentityUseCase{}
		mockIdentityUC.On("FetchProfile", mock.Anything, "tok").Return(nil, authDomain.ErrAuthorityUnavailable).Once()
		router := setupSessionRouter(mockIdentityUC, testIdentity(authDomain.RoleManager))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/auth/profile", nil)
		req.Header.Set("Authorization", "Bearer tok")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Equal(t, authDomain.CodeAuthorityUnavailable, decodeError(t, w).Code)
	})
}

func TestSessionHandler_Logout(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockIdentityUC := &mockIdentityUseCase{}
		mockIdentityUC.On("Invalidate", mock.Anything, "tok").Return(nil).Once()
		router := setupSessionRouter(mockIdentityUC, testIdentity(authDomain.RoleUser))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
		req.Header.Set("Authorization", "Bearer tok")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"message": "logged out"}`, w.Body.String())
		mockIdentityUC.AssertExpectations(t)
	})

	t.Run("Error_MissingCredential", func(t *testing.T) {
		mockIdentityUC := &mockIdentityUseCase{}
		mockIdentityUC.On("Invalidate", mock.Anything, "").Return(authDomain.ErrMissingCredential).Once()
		router := setupSessionRouter(mockIdentityUC, nil)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Error_Internal", func(t *testing.T) {
		mockIdentityUC := &mockIdentityUseCase{}
		mockIdentityUC.On("Invalidate", mock.Anything, "tok").Return(errors.New("cache down")).Once()
		router := setupSessionRouter(mockIdentityUC, nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
		req.Header.Set("Authorization", "Bearer tok")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestSessionHandler_Roles(t *testing.T) {
	router := setupSessionRouter(&mockIdentityUseCase{}, testIdentity(authDomain.RoleAdmin))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/auth/roles", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var response dto.RoleTableResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Len(t, response.Data, 6)
}
