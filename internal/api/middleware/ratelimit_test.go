package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-TattooStudio/pkg/logger"
)

type fakeLimiter struct {
	budget int
	keys   []string
	err    error
}

func (f *fakeLimiter) Allow(ctx context.Context, key string) (*LimitResult, error) {
	f.keys = append(f.keys, key)
	if f.err != nil {
		return nil, f.err
	}
	if f.budget <= 0 {
		return &LimitResult{Allowed: false, RetryAfter: 1500 * time.Millisecond}, nil
	}
	f.budget--
	return &LimitResult{Allowed: true, Remaining: int64(f.budget)}, nil
}

var testSettings = RateLimitSettings{Capacity: 2, RefillTokens: 1, RefillInterval: time.Second, Prefix: "rl"}

func serve(h http.Handler, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/webhooks/email", nil)
	req.RemoteAddr = remoteAddr
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRateLimit_BlocksWhenBucketEmpty(t *testing.T) {
	limiter := &fakeLimiter{budget: 2}
	h := RateLimit(limiter, testSettings, logger.NewNop())(okHandler(t, nil))

	assert.Equal(t, http.StatusNoContent, serve(h, "10.0.0.1:5000").Code)
	second := serve(h, "10.0.0.1:5001")
	assert.Equal(t, http.StatusNoContent, second.Code)
	assert.Equal(t, "0", second.Header().Get("X-RateLimit-Remaining"))

	blocked := serve(h, "10.0.0.1:5002")
	assert.Equal(t, http.StatusTooManyRequests, blocked.Code)
	assert.Equal(t, "2", blocked.Header().Get("Retry-After"))
	assert.Equal(t, "rl:ip:10.0.0.1:route:POST unmatched", limiter.keys[0])
}

func TestRateLimit_PassThrough(t *testing.T) {
	t.Run("nil limiter", func(t *testing.T) {
		h := RateLimit(nil, testSettings, logger.NewNop())(okHandler(t, nil))
		assert.Equal(t, http.StatusNoContent, serve(h, "10.0.0.1:1").Code)
	})

	t.Run("limiter error", func(t *testing.T) {
		h := RateLimit(&fakeLimiter{err: errors.New("redis down")}, testSettings, logger.NewNop())(okHandler(t, nil))
		assert.Equal(t, http.StatusNoContent, serve(h, "10.0.0.1:1").Code)
	})

	t.Run("unreachable redis", func(t *testing.T) {
		client := redis.NewClient(&redis.Options{
			Addr:        "127.0.0.1:1",
			DialTimeout: 200 * time.Millisecond,
			MaxRetries:  -1,
		})
		defer client.Close()

		h := RateLimit(NewRedisLimiter(client, testSettings), testSettings, logger.NewNop())(okHandler(t, nil))
		assert.Equal(t, http.StatusNoContent, serve(h, "10.0.0.1:1").Code)
	})
}

func TestClientIP(t *testing.T) {
	trusted, invalid := parseProxies([]string{"10.0.0.0/8", "172.18.0.2", "not-an-ip"})
	assert.Equal(t, []string{"not-an-ip"}, invalid)

	cases := []struct {
		name    string
		remote  string
		headers map[string]string
		want    string
	}{
		{"direct", "192.168.1.5:4242", nil, "192.168.1.5"},
		{"untrusted peer ignores forwarded", "192.168.1.5:4242", map[string]string{"X-Forwarded-For": "203.0.113.7"}, "192.168.1.5"},
		{"untrusted peer ignores real ip", "192.168.1.5:4242", map[string]string{"X-Real-IP": "203.0.113.7"}, "192.168.1.5"},
		{"trusted proxy", "10.1.2.3:80", map[string]string{"X-Forwarded-For": "203.0.113.7"}, "203.0.113.7"},
		{"spoofed left hop skipped", "10.1.2.3:80", map[string]string{"X-Forwarded-For": "1.1.1.1, 203.0.113.7, 10.0.0.9"}, "203.0.113.7"},
		{"single trusted ip", "172.18.0.2:80", map[string]string{"X-Real-IP": "198.51.100.4"}, "198.51.100.4"},
		{"trusted proxy without headers", "10.1.2.3:80", nil, "10.1.2.3"},
		{"garbage forwarded", "10.1.2.3:80", map[string]string{"X-Forwarded-For": "nonsense"}, "10.1.2.3"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tc.remote
			for k, v := range tc.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tc.want, clientIP(req, trusted))
		})
	}
}

func TestRateLimit_RotatingForwardedForSharesBucket(t *testing.T) {
	limiter := &fakeLimiter{budget: 1}
	h := RateLimit(limiter, testSettings, logger.NewNop())(okHandler(t, nil))

	for _, fwd := range []string{"203.0.113.1", "203.0.113.2"} {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/webhooks/email", nil)
		req.RemoteAddr = "198.51.100.9:5000"
		req.Header.Set("X-Forwarded-For", fwd)
		h.ServeHTTP(httptest.NewRecorder(), req)
	}

	assert.Len(t, limiter.keys, 2)
	assert.Equal(t, limiter.keys[0], limiter.keys[1])
	assert.Contains(t, limiter.keys[0], "ip:198.51.100.9:")
}
