package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func newLimitedRouter(perMinute int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/ping", PerClient(perMinute), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	return router
}

func ping(router *gin.Engine, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	if remoteAddr != "" {
		req.RemoteAddr = remoteAddr
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestPerClientAllowsWithinLimit(t *testing.T) {
	router := newLimitedRouter(5)

	for i := 0; i < 5; i++ {
		rec := ping(router, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want %d", i+1, rec.Code, http.StatusOK)
		}
	}
}

func TestPerClientBlocksOverLimit(t *testing.T) {
	router := newLimitedRouter(5)

	for i := 0; i < 5; i++ {
		ping(router, "")
	}

	rec := ping(router, "")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusTooManyRequests)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("Retry-After header not set on 429 response")
	}
	if got := rec.Body.String(); got != `{"error":"Rate limit exceeded"}` {
		t.Errorf("body = %s", got)
	}
}

func TestPerClientSeparatesClients(t *testing.T) {
	router := newLimitedRouter(5)

	for i := 0; i < 6; i++ {
		ping(router, "10.0.0.1:1111")
	}

	rec := ping(router, "10.0.0.2:2222")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d for an unrelated client", rec.Code, http.StatusOK)
	}
}

func TestWindowDoesNotRefillMidWindow(t *testing.T) {
	registry := NewRegistry(5)
	base := time.Now()
	current := base
	registry.now = func() time.Time { return current }

	for i := 0; i < 5; i++ {
		if ok, _ := registry.Take("10.0.0.1"); !ok {
			t.Fatalf("request %d: denied within limit", i+1)
		}
	}

	// 固定ウィンドウなので、途中経過時間では回復しない
	current = base.Add(13 * time.Second)
	ok, retryAfter := registry.Take("10.0.0.1")
	if ok {
		t.Fatal("expected 6th request within the window to be denied")
	}
	if retryAfter != 47*time.Second {
		t.Errorf("retryAfter = %v, want %v", retryAfter, 47*time.Second)
	}

	current = base.Add(59 * time.Second)
	if ok, _ := registry.Take("10.0.0.1"); ok {
		t.Fatal("expected request at 59s to be denied")
	}

	// ウィンドウが折り返すとカウンターはリセットされる
	current = base.Add(window)
	if ok, _ := registry.Take("10.0.0.1"); !ok {
		t.Fatal("expected request after window rollover to be allowed")
	}
}

func TestRegistryCountsPerKey(t *testing.T) {
	registry := NewRegistry(1)

	if ok, _ := registry.Take("a"); !ok {
		t.Fatal("first take for key a denied")
	}
	if ok, _ := registry.Take("a"); ok {
		t.Fatal("second take for key a allowed over limit")
	}
	if ok, _ := registry.Take("b"); !ok {
		t.Fatal("take for unrelated key b denied")
	}
}
