package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRateLimiter(t *testing.T) {
	t.Run("allows up to the limit then blocks", func(t *testing.T) {
		limiter := NewRateLimiter(3, time.Minute)
		for i := 0; i < 3; i++ {
			assert.True(t, limiter.Allow("till-1"), "request %d", i+1)
		}
		assert.False(t, limiter.Allow("till-1"))
	})

	t.Run("keys are independent", func(t *testing.T) {
		limiter := NewRateLimiter(2, time.Minute)
		limiter.Allow("till-a")
		limiter.Allow("till-a")
		assert.False(t, limiter.Allow("till-a"))
		assert.True(t, limiter.Allow("till-b"))
	})

	t.Run("window elapse refills the bucket", func(t *testing.T) {
		limiter := NewRateLimiter(2, 50*time.Millisecond)
		limiter.Allow("till-2")
		limiter.Allow("till-2")
		assert.False(t, limiter.Allow("till-2"))

		time.Sleep(60 * time.Millisecond)
		assert.True(t, limiter.Allow("till-2"))
	})

	t.Run("remaining tracks consumption", func(t *testing.T) {
		limiter := NewRateLimiter(5, time.Minute)
		assert.Equal(t, 5, limiter.Remaining("fresh"))

		limiter.Allow("fresh")
		limiter.Allow("fresh")
		assert.Equal(t, 3, limiter.Remaining("fresh"))
	})

	t.Run("concurrent callers never exceed the limit", func(t *testing.T) {
		limiter := NewRateLimiter(100, time.Minute)
		var wg sync.WaitGroup
		var mu sync.Mutex
		allowed := 0

		for i := 0; i < 150; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if limiter.Allow("shared") {
					mu.Lock()
					allowed++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()
		assert.Equal(t, 100, allowed)
	})
}

func limitedRouter(mw gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(mw)
	router.POST("/hit", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})
	return router
}

func hit(router *gin.Engine, remoteAddr string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", "/hit", nil)
	if remoteAddr != "" {
		req.RemoteAddr = remoteAddr
	}
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRateLimitMiddleware(t *testing.T) {
	t.Run("429 with error code once exhausted", func(t *testing.T) {
		router := limitedRouter(RateLimit(NewRateLimiter(2, time.Minute)))
		assert.Equal(t, http.StatusOK, hit(router, "", nil).Code)
		assert.Equal(t, http.StatusOK, hit(router, "", nil).Code)

		w := hit(router, "", nil)
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Contains(t, w.Body.String(), "RATE_LIMIT_EXCEEDED")
	})

	t.Run("rate limit headers on allowed requests", func(t *testing.T) {
		router := limitedRouter(RateLimit(NewRateLimiter(5, time.Minute)))
		w := hit(router, "", nil)

		assert.Equal(t, "5", w.Header().Get("X-RateLimit-Limit"))
		assert.Equal(t, "4", w.Header().Get("X-RateLimit-Remaining"))
	})

	t.Run("sites get separate buckets", func(t *testing.T) {
		router := limitedRouter(RateLimit(NewRateLimiter(1, time.Minute)))
		bamako := map[string]string{"X-Site-ID": "site-bamako"}
		kayes := map[string]string{"X-Site-ID": "site-kayes"}

		assert.Equal(t, http.StatusOK, hit(router, "", bamako).Code)
		assert.Equal(t, http.StatusTooManyRequests, hit(router, "", bamako).Code)
		assert.Equal(t, http.StatusOK, hit(router, "", kayes).Code)
	})
}

func TestRateLimitByKey(t *testing.T) {
	byUser := func(c *gin.Context) string { return c.GetHeader("X-User-ID") }
	router := limitedRouter(RateLimitByKey(NewRateLimiter(1, time.Minute), byUser))

	amadou := map[string]string{"X-User-ID": "amadou"}
	assert.Equal(t, http.StatusOK, hit(router, "", amadou).Code)
	assert.Equal(t, http.StatusTooManyRequests, hit(router, "", amadou).Code)
	assert.Equal(t, http.StatusOK, hit(router, "", map[string]string{"X-User-ID": "fatou"}).Code)
}

func TestAuthRateLimit(t *testing.T) {
	t.Run("blocks with auth error code and Retry-After", func(t *testing.T) {
		router := limitedRouter(AuthRateLimit(NewRateLimiter(2, time.Minute)))
		addr := "192.168.1.100:12345"

		assert.Equal(t, http.StatusOK, hit(router, addr, nil).Code)
		assert.Equal(t, http.StatusOK, hit(router, addr, nil).Code)

		w := hit(router, addr, nil)
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Contains(t, w.Body.String(), "AUTH_RATE_LIMIT_EXCEEDED")
		assert.Contains(t, w.Body.String(), "Too many authentication attempts")
		assert.Equal(t, "60", w.Header().Get("Retry-After"))
	})

	t.Run("per-IP isolation", func(t *testing.T) {
		router := limitedRouter(AuthRateLimit(NewRateLimiter(1, time.Minute)))

		assert.Equal(t, http.StatusOK, hit(router, "10.0.0.1:1000", nil).Code)
		assert.Equal(t, http.StatusTooManyRequests, hit(router, "10.0.0.1:1000", nil).Code)
		assert.Equal(t, http.StatusOK, hit(router, "10.0.0.2:1000", nil).Code)
	})

	t.Run("auth prefix keeps buckets apart from the global limiter", func(t *testing.T) {
		shared := NewRateLimiter(1, time.Minute)
		authRouter := limitedRouter(AuthRateLimit(shared))
		apiRouter := limitedRouter(RateLimit(shared))
		addr := "10.0.0.9:1000"

		assert.Equal(t, http.StatusOK, hit(authRouter, addr, nil).Code)
		assert.Equal(t, http.StatusTooManyRequests, hit(authRouter, addr, nil).Code)
		// The plain limiter still has its own budget for the same IP
		assert.Equal(t, http.StatusOK, hit(apiRouter, addr, nil).Code)
	})
}
