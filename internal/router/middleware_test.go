package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/yfdecor/storefront/internal/config"

	"github.com/gin-gonic/gin"
)

func newMiddlewareEngine(middleware gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(middleware)
	engine.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	return engine
}

func TestRequestIDGeneratedWhenMissing(t *testing.T) {
	engine := newMiddlewareEngine(RequestIDMiddleware())

	recorder := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	engine.ServeHTTP(recorder, req)

	if recorder.Header().Get("X-Request-ID") == "" {
		t.Fatalf("expected generated request id header")
	}
}

func TestRequestIDPreservedWhenProvided(t *testing.T) {
	engine := newMiddlewareEngine(RequestIDMiddleware())

	recorder := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", "req-abc")
	engine.ServeHTTP(recorder, req)

	if got := recorder.Header().Get("X-Request-ID"); got != "req-abc" {
		t.Fatalf("expected preserved request id, got %q", got)
	}
}

func TestCORSPreflightShortCircuits(t *testing.T) {
	engine := newMiddlewareEngine(CORSMiddleware(config.CORSConfig{
		AllowedOrigins: []string{"https://shop.example.com"},
		MaxAge:         600,
	}))

	recorder := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/ping", nil)
	req.Header.Set("Origin", "https://shop.example.com")
	engine.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusNoContent {
		t.Fatalf("expected 204 for preflight, got %d", recorder.Code)
	}
	if got := recorder.Header().Get("Access-Control-Allow-Origin"); got != "https://shop.example.com" {
		t.Fatalf("unexpected allow-origin: %q", got)
	}
	if recorder.Header().Get("Access-Control-Max-Age") != "600" {
		t.Fatalf("expected max-age header")
	}
}

func TestCORSRejectsUnknownOrigin(t *testing.T) {
	engine := newMiddlewareEngine(CORSMiddleware(config.CORSConfig{
		AllowedOrigins: []string{"https://shop.example.com"},
	}))

	recorder := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	engine.ServeHTTP(recorder, req)

	if got := recorder.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("unexpected allow-origin for unknown origin: %q", got)
	}
}

func TestCORSWildcardWithCredentialsEchoesOrigin(t *testing.T) {
	engine := newMiddlewareEngine(CORSMiddleware(config.CORSConfig{
		AllowedOrigins:   []string{"*"},
		AllowCredentials: true,
	}))

	recorder := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "https://shop.example.com")
	engine.ServeHTTP(recorder, req)

	if got := recorder.Header().Get("Access-Control-Allow-Origin"); got != "https://shop.example.com" {
		t.Fatalf("wildcard with credentials must echo origin, got %q", got)
	}
	if recorder.Header().Get("Access-Control-Allow-Credentials") != "true" {
		t.Fatalf("expected credentials header")
	}
}
