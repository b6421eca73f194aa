package http

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOrigins(t *testing.T) {
	tests := []struct {
		raw      string
		expected []string
	}{
		{"", nil},
		{" , ,", nil},
		{"https://inventory.example.com", []string{"https://inventory.example.com"}},
		{
			" https://inventory.example.com , https://admin.example.com,",
			[]string{"https://inventory.example.com", "https://admin.example.com"},
		},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, parseOrigins(tt.raw), tt.raw)
	}
}

func TestCreateCORSMiddleware(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	assert.Nil(t, createCORSMiddleware(false, "https://inventory.example.com", logger))
	assert.Nil(t, createCORSMiddleware(true, "", logger))
	assert.Nil(t, createCORSMiddleware(true, " , ", logger))
	assert.NotNil(t, createCORSMiddleware(true, "https://inventory.example.com", logger))
}

func newCORSRouter(t *testing.T) *gin.Engine {
	t.Helper()
	middleware := createCORSMiddleware(
		true,
		"https://inventory.example.com",
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
	require.NotNil(t, middleware)

	router := gin.New()
	router.Use(middleware)
	router.POST("/api/devices/:id/move", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func TestCORS_Preflight(t *testing.T) {
	router := newCORSRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/api/devices/1/move", nil)
	req.Header.Set("Origin", "https://inventory.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Authorization, Content-Type")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://inventory.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestCORS_UnknownOriginRejected(t *testing.T) {
	router := newCORSRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/devices/1/move", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_SimpleRequest(t *testing.T) {
	router := newCORSRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/devices/1/move", nil)
	req.Header.Set("Origin", "https://inventory.example.com")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://inventory.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Expose-Headers"), "X-Request-Id")
}
