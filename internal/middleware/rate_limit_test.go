package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimitDisabledPassesThrough(t *testing.T) {
	logger := zerolog.Nop()
	rl := NewRateLimitMiddleware(newTestServer(&logger))
	require.Nil(t, rl.limiter)

	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	called := false
	err := rl.Limit()(func(c echo.Context) error {
		called = true
		return nil
	})(c)

	require.NoError(t, err)
	assert.True(t, called)
	assert.Empty(t, c.Response().Header().Get(RateLimitLimitHeader))
}

func TestFixedWindowKey(t *testing.T) {
	fw := &fixedWindow{window: time.Minute}

	start := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, fw.key("10.0.0.1", start), fw.key("10.0.0.1", start.Add(59*time.Second)))
	assert.NotEqual(t, fw.key("10.0.0.1", start), fw.key("10.0.0.1", start.Add(time.Minute)))
	assert.NotEqual(t, fw.key("10.0.0.1", start), fw.key("10.0.0.2", start))
	assert.Equal(t, "ratelimit:10.0.0.1:1714557600", fw.key("10.0.0.1", start))
}

func TestRateLimitFailsOpenWhenRedisIsDown(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })

	logger := zerolog.Nop()
	rl := &RateLimitMiddleware{
		server:  newTestServer(&logger),
		limiter: &fixedWindow{client: client, limit: 1, window: time.Minute},
	}

	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/api/v1/muebles", nil), httptest.NewRecorder())
	called := false
	err := rl.Limit()(func(c echo.Context) error {
		called = true
		return nil
	})(c)

	require.NoError(t, err)
	assert.True(t, called)
	assert.Empty(t, c.Response().Header().Get(RateLimitRemainingHeader))
}
