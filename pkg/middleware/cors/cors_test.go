package cors

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func performRequest(origins []string, method, origin string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(New(origins))
	r.GET("/api/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.OPTIONS("/api/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(method, "/api/health", nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	r.ServeHTTP(rec, req)
	return rec
}

func TestConfiguredOriginGetsCredentials(t *testing.T) {
	rec := performRequest([]string{"https://admin.smknusantara.sch.id/"}, http.MethodGet, "https://admin.smknusantara.sch.id")
	assert.Equal(t, "https://admin.smknusantara.sch.id", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
}

func TestUnknownOriginGetsNoGrant(t *testing.T) {
	rec := performRequest([]string{"https://admin.smknusantara.sch.id"}, http.MethodGet, "https://evil.example.com")
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Credentials"))
}

func TestWildcardNeverGrantsCredentials(t *testing.T) {
	rec := performRequest(nil, http.MethodGet, "https://anywhere.example.com")
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Credentials"))
}

func TestPreflightShortCircuits(t *testing.T) {
	rec := performRequest([]string{"https://admin.smknusantara.sch.id"}, http.MethodOptions, "https://admin.smknusantara.sch.id")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Access-Control-Allow-Methods"))
}
