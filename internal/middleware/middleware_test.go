package middleware

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"dailypay-backend/internal/auth"
	appErrors "dailypay-backend/pkg/errors"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newEngine(development bool, mw ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(Recovery(development), RequestIDMiddleware(), ErrorHandler(development))
	r.Use(mw...)
	return r
}

func serve(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	tokens := auth.NewTokenIssuer("secret")
	accountID := uuid.New()
	token, _, err := tokens.Issue(accountID, auth.RoleSeller, time.Hour)
	require.NoError(t, err)

	r := newEngine(false, AuthMiddleware(tokens, "token"))
	r.GET("/me", func(c *gin.Context) {
		c.String(http.StatusOK, MustIdentity(c).AccountID.String())
	})

	t.Run("bearer header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := serve(r, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, accountID.String(), w.Body.String())
	})

	t.Run("cookie fallback", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.AddCookie(&http.Cookie{Name: "token", Value: token})
		assert.Equal(t, http.StatusOK, serve(r, req).Code)
	})

	t.Run("missing", func(t *testing.T) {
		w := serve(r, httptest.NewRequest(http.MethodGet, "/me", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"error":"Not authorized"}`, w.Body.String())
	})

	t.Run("tampered", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token+"x")
		assert.Equal(t, http.StatusUnauthorized, serve(r, req).Code)
	})

	t.Run("wrong scheme", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Basic "+token)
		assert.Equal(t, http.StatusUnauthorized, serve(r, req).Code)
	})
}

func TestRoleMiddleware(t *testing.T) {
	tokens := auth.NewTokenIssuer("secret")
	r := newEngine(false, AuthMiddleware(tokens, ""), SellerOnly())
	r.GET("/shop", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	for role, want := range map[auth.Role]int{
		auth.RoleSeller: http.StatusNoContent,
		auth.RoleUser:   http.StatusForbidden,
		auth.RoleAdmin:  http.StatusForbidden,
	} {
		token, _, err := tokens.Issue(uuid.New(), role, time.Hour)
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodGet, "/shop", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		assert.Equal(t, want, serve(r, req).Code, role)
	}
}

func TestAdminSecretMiddleware(t *testing.T) {
	echo := func(c *gin.Context) {
		body, _ := io.ReadAll(c.Request.Body)
		c.String(http.StatusOK, string(body))
	}

	t.Run("unset secret answers 503", func(t *testing.T) {
		r := newEngine(false, AdminSecretMiddleware(""))
		r.GET("/admin", echo)

		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set(AdminSecretHeader, "anything")
		w := serve(r, req)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.JSONEq(t, `{"error":"Server configuration error: Admin secret missing."}`, w.Body.String())
	})

	r := newEngine(false, AdminSecretMiddleware("hunter2"))
	r.GET("/admin", echo)
	r.PUT("/admin", echo)

	t.Run("header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set(AdminSecretHeader, "hunter2")
		assert.Equal(t, http.StatusOK, serve(r, req).Code)
	})

	t.Run("query", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin?adminSecret=hunter2", nil)
		assert.Equal(t, http.StatusOK, serve(r, req).Code)
	})

	t.Run("json body is restored for the handler", func(t *testing.T) {
		payload := `{"adminSecret":"hunter2","role":"admin"}`
		req := httptest.NewRequest(http.MethodPut, "/admin", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		w := serve(r, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, payload, w.Body.String())
	})

	t.Run("large json body reaches the handler whole", func(t *testing.T) {
		payload := `{"adminSecret":"hunter2","note":"` + strings.Repeat("x", 2<<20) + `"}` + "\n" + strings.Repeat(" ", 4096)
		req := httptest.NewRequest(http.MethodPut, "/admin", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		w := serve(r, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, len(payload), w.Body.Len())
		assert.Equal(t, payload, w.Body.String())
	})

	t.Run("header wins over query", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin?adminSecret=hunter2", nil)
		req.Header.Set(AdminSecretHeader, "wrong")
		assert.Equal(t, http.StatusUnauthorized, serve(r, req).Code)
	})

	t.Run("missing", func(t *testing.T) {
		w := serve(r, httptest.NewRequest(http.MethodGet, "/admin", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"error":"Not authorized: Invalid Admin Secret"}`, w.Body.String())
	})
}

func TestErrorHandler(t *testing.T) {
	cause := errors.New("pq: relation does not exist")

	for _, tc := range []struct {
		name        string
		development bool
		err         error
		wantStatus  int
		wantBody    string
	}{
		{"app error", false, appErrors.NotFound("Product not found"), http.StatusNotFound, `{"error":"Product not found"}`},
		{"hidden in production", false, cause, http.StatusInternalServerError, `{"error":"Internal server error"}`},
		{"shown in development", true, cause, http.StatusInternalServerError, `{"error":"pq: relation does not exist"}`},
	} {
		t.Run(tc.name, func(t *testing.T) {
			r := newEngine(tc.development)
			r.GET("/x", func(c *gin.Context) { c.Error(tc.err) })

			w := serve(r, httptest.NewRequest(http.MethodGet, "/x", nil))
			assert.Equal(t, tc.wantStatus, w.Code)
			assert.JSONEq(t, tc.wantBody, w.Body.String())
		})
	}
}

func TestRecovery(t *testing.T) {
	r := newEngine(false)
	r.GET("/boom", func(*gin.Context) { panic("kaboom") })

	w := serve(r, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Internal server error"}`, w.Body.String())

	dev := newEngine(true)
	dev.GET("/boom", func(*gin.Context) { panic("kaboom") })
	w = serve(dev, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), `"error":"kaboom"`)
	assert.Contains(t, w.Body.String(), `"stack"`)
}

func TestRateLimitMiddleware(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	r := newEngine(false, RateLimitMiddleware(NewRateLimiter(ctx, 0.001, 2)))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	codes := make([]int, 3)
	for i := range codes {
		codes[i] = serve(r, httptest.NewRequest(http.MethodGet, "/x", nil)).Code
	}
	assert.Equal(t, []int{http.StatusNoContent, http.StatusNoContent, http.StatusTooManyRequests}, codes)
}

func TestRedisLimiter(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	limiter := NewRedisLimiter(client, time.Minute, 2)
	limiter.now = func() time.Time { return now }
	ctx := context.Background()

	assert.True(t, limiter.Allow(ctx, "1.2.3.4"))
	assert.True(t, limiter.Allow(ctx, "1.2.3.4"))
	assert.False(t, limiter.Allow(ctx, "1.2.3.4"))
	assert.True(t, limiter.Allow(ctx, "5.6.7.8"), "keys are independent")

	now = now.Add(61 * time.Second)
	assert.True(t, limiter.Allow(ctx, "1.2.3.4"), "window slid past earlier hits")

	mr.Close()
	assert.True(t, limiter.Allow(ctx, "1.2.3.4"), "fails open without redis")
}

func TestRequestIDMiddleware(t *testing.T) {
	r := newEngine(false)
	r.GET("/x", func(c *gin.Context) { c.String(http.StatusOK, GetRequestID(c)) })

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w := serve(r, req)
	assert.Equal(t, "abc-123", w.Body.String())
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(RequestIDHeader, "has space")
	w = serve(r, req)
	_, err := uuid.Parse(w.Body.String())
	assert.NoError(t, err, "malformed ids are replaced")
}

func TestRequestSizeLimitMiddleware(t *testing.T) {
	r := newEngine(false, RequestSizeLimitMiddleware(8))
	r.POST("/x", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := serve(r, httptest.NewRequest(http.MethodPost, "/x", strings.NewReader("0123456789")))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)

	w = serve(r, httptest.NewRequest(http.MethodPost, "/x", strings.NewReader("0123")))
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestMetrics(t *testing.T) {
	m := NewMetrics()
	r := newEngine(false, m.Middleware())
	r.GET("/items/:id", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.GET("/metrics", m.Handler())

	serve(r, httptest.NewRequest(http.MethodGet, "/items/1", nil))
	serve(r, httptest.NewRequest(http.MethodGet, "/items/2", nil))

	w := serve(r, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `dailypay_http_requests_total{method="GET",route="/items/:id",status="200"} 2`)
}

func TestSecurityHeaders(t *testing.T) {
	r := newEngine(false, SecurityHeadersMiddleware(true))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := serve(r, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Contains(t, w.Header().Get("Content-Security-Policy"), "default-src 'self'")
	assert.NotEmpty(t, w.Header().Get("Strict-Transport-Security"))
}
