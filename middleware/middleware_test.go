package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(r *gin.Engine, remoteAddr string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = remoteAddr
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequestID_GeneratesAndStoresLogger(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(zap.NewNop()))
	r.GET("/", func(c *gin.Context) {
		l, ok := c.Get(LoggerKey)
		require.True(t, ok)
		assert.IsType(t, &zap.Logger{}, l)
		c.Status(http.StatusOK)
	})

	w := serve(r, "10.0.0.1:1234", nil)
	require.Equal(t, http.StatusOK, w.Code)
	_, err := uuid.Parse(w.Header().Get(RequestIDHeader))
	assert.NoError(t, err)
}

func TestRequestID_ReusesValidIncomingID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(zap.NewNop()))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	id := uuid.NewString()
	w := serve(r, "10.0.0.1:1234", http.Header{RequestIDHeader: {id}})
	assert.Equal(t, id, w.Header().Get(RequestIDHeader))

	w = serve(r, "10.0.0.1:1234", http.Header{RequestIDHeader: {"<script>"}})
	assert.NotEqual(t, "<script>", w.Header().Get(RequestIDHeader))
}

func TestLogger_LevelFollowsStatus(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	r := gin.New()
	r.Use(RequestID(zap.New(core)), Logger(zap.NewNop()))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })
	r.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	for _, path := range []string{"/ok", "/missing", "/boom"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		r.ServeHTTP(httptest.NewRecorder(), req)
	}

	entries := logs.FilterMessage("request").All()
	require.Len(t, entries, 3)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[2].Level)
	assert.Equal(t, int64(http.StatusNotFound), entries[1].ContextMap()["status"])
	assert.Contains(t, entries[0].ContextMap(), "request_id")
}

func TestRecovery_PanicBecomesServerError(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	r := gin.New()
	r.Use(Recovery(zap.New(core)))
	r.GET("/", func(c *gin.Context) { panic("boom") })

	w := serve(r, "10.0.0.1:1234", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"message":"Server Error"}`, w.Body.String())
	assert.Equal(t, 1, logs.FilterMessage("unhandled panic").Len())
}

func TestRateLimiter_PerIP(t *testing.T) {
	r := gin.New()
	r.Use(NewRateLimiter(2).Middleware(zap.NewNop()))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, serve(r, "10.0.0.1:1000", nil).Code)
	assert.Equal(t, http.StatusOK, serve(r, "10.0.0.1:1001", nil).Code)

	w := serve(r, "10.0.0.1:1002", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.JSONEq(t, `{"message":"Too Many Attempts."}`, w.Body.String())

	assert.Equal(t, http.StatusOK, serve(r, "10.0.0.2:1000", nil).Code)
}

func TestRateLimiter_SweepsIdleClients(t *testing.T) {
	now := time.Now()
	limiter := NewRateLimiter(1)
	limiter.now = func() time.Time { return now }
	limiter.lastSweep = now

	r := gin.New()
	r.Use(limiter.Middleware(zap.NewNop()))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 1; i <= 3; i++ {
		assert.Equal(t, http.StatusOK, serve(r, fmt.Sprintf("10.0.0.%d:1000", i), nil).Code)
	}
	assert.Equal(t, 3, limiter.size())
	assert.Equal(t, http.StatusTooManyRequests, serve(r, "10.0.0.1:1000", nil).Code)

	// 10.0.0.1 comes back once its bucket has refilled
	now = now.Add(limiterIdleTTL / 2)
	assert.Equal(t, http.StatusOK, serve(r, "10.0.0.1:1000", nil).Code)
	assert.Equal(t, 3, limiter.size())

	now = now.Add(limiterIdleTTL * 2 / 3)
	assert.Equal(t, http.StatusOK, serve(r, "10.0.0.9:1000", nil).Code)
	assert.Equal(t, 2, limiter.size())
	assert.Contains(t, limiter.visitors, "10.0.0.1")
	assert.NotContains(t, limiter.visitors, "10.0.0.2")
}
