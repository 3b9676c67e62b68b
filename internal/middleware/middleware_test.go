package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/JonnyWalker81/lifedash/internal/repository"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	goleak.VerifyTestMain(m)
}

func newRouter(mw ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(mw...)
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"request_id": c.GetString("request_id")})
	})
	return r
}

func serve(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequestID(t *testing.T) {
	r := newRouter(RequestID())

	w := serve(r, httptest.NewRequest(http.MethodGet, "/ping", nil))
	generated := w.Header().Get(RequestIDHeader)
	assert.NotEmpty(t, generated)
	assert.Contains(t, w.Body.String(), generated)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = serve(r, req)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func TestAuth(t *testing.T) {
	tests := []struct {
		name   string
		token  string
		header string
		want   int
	}{
		{name: "disabled", token: "", header: "", want: http.StatusOK},
		{name: "missing header", token: "s3cret", header: "", want: http.StatusUnauthorized},
		{name: "wrong scheme", token: "s3cret", header: "Basic s3cret", want: http.StatusUnauthorized},
		{name: "wrong token", token: "s3cret", header: "Bearer nope", want: http.StatusUnauthorized},
		{name: "valid", token: "s3cret", header: "Bearer s3cret", want: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRouter(RequestID(), Auth(tt.token))
			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			w := serve(r, req)
			assert.Equal(t, tt.want, w.Code)
			if tt.want == http.StatusUnauthorized {
				assert.Equal(t, "application/problem+json", w.Header().Get("Content-Type"))
				assert.Contains(t, w.Body.String(), `"action":"authenticate"`)
			}
		})
	}
}

func TestCORS(t *testing.T) {
	r := newRouter(CORS([]string{"https://dash.example.com", "https://*.lifedash.pages.dev"}))

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "https://preview.lifedash.pages.dev")
	w := serve(r, req)
	assert.Equal(t, "https://preview.lifedash.pages.dev", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/ping", nil)
	req.Header.Set("Origin", "https://dash.example.com")
	w = serve(r, req)
	assert.Equal(t, http.StatusNoContent, w.Code)

	req = httptest.NewRequest(http.MethodOptions, "/ping", nil)
	req.Header.Set("Origin", "https://evil.example.org")
	w = serve(r, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = serve(newRouter(CORS(nil)), httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestSecurityHeaders(t *testing.T) {
	w := serve(newRouter(SecurityHeaders(false)), httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Empty(t, w.Header().Get("Strict-Transport-Security"))

	w = serve(newRouter(SecurityHeaders(true)), httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.NotEmpty(t, w.Header().Get("Strict-Transport-Security"))
}

func TestRateLimit(t *testing.T) {
	limiter := NewRateLimiter(2, time.Minute, "test")
	defer limiter.Close()

	r := gin.New()
	r.Use(RequestID(), MutatingOnly(RateLimit(limiter)))
	r.POST("/signals", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/signals", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 2; i++ {
		w := serve(r, httptest.NewRequest(http.MethodPost, "/signals", nil))
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := serve(r, httptest.NewRequest(http.MethodPost, "/signals", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))
	assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))

	// reads are not limited
	w = serve(r, httptest.NewRequest(http.MethodGet, "/signals", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestIdempotency(t *testing.T) {
	calls := 0
	r := gin.New()
	r.Use(Idempotency(repository.NewIdempotencyRepository(time.Hour)))
	r.POST("/inbox", func(c *gin.Context) {
		calls++
		c.JSON(http.StatusCreated, gin.H{"call": calls})
	})
	r.POST("/todos", func(c *gin.Context) {
		calls++
		c.JSON(http.StatusCreated, gin.H{"call": calls})
	})
	r.POST("/fails", func(c *gin.Context) {
		calls++
		c.Status(http.StatusBadRequest)
	})

	post := func(path, key string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, path, nil)
		if key != "" {
			req.Header.Set(IdempotencyKeyHeader, key)
		}
		return serve(r, req)
	}

	first := post("/inbox", "k1")
	require.Equal(t, http.StatusCreated, first.Code)

	replay := post("/inbox", "k1")
	assert.Equal(t, http.StatusCreated, replay.Code)
	assert.Equal(t, "true", replay.Header().Get("X-Idempotency-Replayed"))
	assert.JSONEq(t, first.Body.String(), replay.Body.String())
	assert.Equal(t, 1, calls)

	// same key on another route is a different request
	other := post("/todos", "k1")
	assert.Empty(t, other.Header().Get("X-Idempotency-Replayed"))
	assert.Equal(t, 2, calls)

	// no key, no caching
	post("/inbox", "")
	assert.Equal(t, 3, calls)

	// failures are not cached
	post("/fails", "k2")
	post("/fails", "k2")
	assert.Equal(t, 5, calls)
}
