package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newAPIKeyRouter(key, env string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(APIKey(key, env))
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	return r
}

func TestAPIKeyAllowsWhenUnconfiguredInDev(t *testing.T) {
	r := newAPIKeyRouter("", "dev")

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
}

func TestAPIKeyRejectsUnconfiguredInProduction(t *testing.T) {
	r := newAPIKeyRouter("", "production")

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestAPIKeyMatch(t *testing.T) {
	r := newAPIKeyRouter("sekrit", "production")

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Api-Key", "sekrit")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 with valid key, got %d", resp.Code)
	}

	reqBad := httptest.NewRequest(http.MethodGet, "/ping", nil)
	reqBad.Header.Set("X-Api-Key", "wrong")
	respBad := httptest.NewRecorder()
	r.ServeHTTP(respBad, reqBad)
	if respBad.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with invalid key, got %d", respBad.Code)
	}
}
