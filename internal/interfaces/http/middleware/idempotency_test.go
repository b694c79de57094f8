package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	redisv9 "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"bazaar.backend/internal/interfaces/http/middleware"
	"bazaar.backend/pkg/jwt"
	redispkg "bazaar.backend/pkg/redis"
)

func setupMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	redispkg.SetClient(redisv9.NewClient(&redisv9.Options{Addr: mr.Addr()}))
	return mr
}

func idempotentRouter(svc *jwt.JWTService, handler gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.POST("/submit", middleware.AuthMiddleware(svc), middleware.IdempotencyMiddleware(), handler)
	return r
}

func bearerToken(t *testing.T, svc *jwt.JWTService) string {
	t.Helper()
	pair, err := svc.GenerateTokenPair(uuid.New(), "seller@example.com", []string{"SELLER"})
	require.NoError(t, err)
	return "Bearer " + pair.AccessToken
}

func TestIdempotencyMiddleware_ReplaysResponse(t *testing.T) {
	setupMiniredis(t)
	svc := newTestJWTService()

	calls := 0
	r := idempotentRouter(svc, func(c *gin.Context) {
		calls++
		c.JSON(http.StatusCreated, gin.H{"id": "listing-1"})
	})
	token := bearerToken(t, svc)

	do := func() *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/submit", nil)
		req.Header.Set("Authorization", token)
		req.Header.Set(middleware.IdempotencyHeader, "key-1")
		r.ServeHTTP(w, req)
		return w
	}

	first := do()
	require.Equal(t, http.StatusCreated, first.Code)
	require.Equal(t, 1, calls)

	second := do()
	require.Equal(t, 1, calls, "handler must not run twice")
	require.Equal(t, "true", second.Header().Get("X-Idempotency-Hit"))
	require.JSONEq(t, first.Body.String(), second.Body.String())
}

func TestIdempotencyMiddleware_NoHeaderPassesThrough(t *testing.T) {
	setupMiniredis(t)
	svc := newTestJWTService()

	calls := 0
	r := idempotentRouter(svc, func(c *gin.Context) {
		calls++
		c.JSON(http.StatusCreated, gin.H{"id": "listing-1"})
	})
	token := bearerToken(t, svc)

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/submit", nil)
		req.Header.Set("Authorization", token)
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusCreated, w.Code)
	}
	require.Equal(t, 2, calls)
}

func TestIdempotencyMiddleware_InProgressConflict(t *testing.T) {
	mr := setupMiniredis(t)
	svc := newTestJWTService()
	token := bearerToken(t, svc)

	r := idempotentRouter(svc, func(c *gin.Context) {
		c.JSON(http.StatusCreated, gin.H{"id": "x"})
	})

	// another request holds the lock
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/submit", nil)
	req.Header.Set("Authorization", token)
	req.Header.Set(middleware.IdempotencyHeader, "key-busy")

	// derive the storage key from a first pass, then flip its value
	r.ServeHTTP(w, req)
	keys := mr.Keys()
	require.Len(t, keys, 1)
	mr.Set(keys[0], "processing")

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/submit", nil)
	req.Header.Set("Authorization", token)
	req.Header.Set(middleware.IdempotencyHeader, "key-busy")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestIdempotencyMiddleware_FailureAllowsRetry(t *testing.T) {
	setupMiniredis(t)
	svc := newTestJWTService()
	token := bearerToken(t, svc)

	calls := 0
	r := idempotentRouter(svc, func(c *gin.Context) {
		calls++
		if calls == 1 {
			c.JSON(http.StatusBadGateway, gin.H{"message": "upstream down"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"id": "listing-1"})
	})

	do := func() *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/submit", nil)
		req.Header.Set("Authorization", token)
		req.Header.Set(middleware.IdempotencyHeader, "key-retry")
		r.ServeHTTP(w, req)
		return w
	}

	require.Equal(t, http.StatusBadGateway, do().Code)
	// the failed attempt released the key, so the retry reaches the handler
	require.Equal(t, http.StatusCreated, do().Code)
	require.Equal(t, 2, calls)
}

func TestIdempotencyMiddleware_ScopedPerUser(t *testing.T) {
	setupMiniredis(t)
	svc := newTestJWTService()

	calls := 0
	r := idempotentRouter(svc, func(c *gin.Context) {
		calls++
		c.JSON(http.StatusCreated, gin.H{"n": calls})
	})

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/submit", nil)
		req.Header.Set("Authorization", bearerToken(t, svc)) // fresh user each time
		req.Header.Set(middleware.IdempotencyHeader, "shared-key")
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusCreated, w.Code)
	}
	require.Equal(t, 2, calls, "same key from different users must not collide")
}

func TestIdempotencyMiddleware_RedisDownPassesThrough(t *testing.T) {
	mr := setupMiniredis(t)
	mr.Close()
	svc := newTestJWTService()

	calls := 0
	r := idempotentRouter(svc, func(c *gin.Context) {
		calls++
		c.JSON(http.StatusCreated, gin.H{"id": "x"})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/submit", nil)
	req.Header.Set("Authorization", bearerToken(t, svc))
	req.Header.Set(middleware.IdempotencyHeader, "key-1")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	require.Equal(t, 1, calls)
}
