package middleware

import (
	"context"
	"fmt"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-TattooStudio/internal/api/handlers"
)

const msgTooManyRequests = "слишком много запросов, повторите позже"

// LimitResult решение token bucket
type LimitResult struct {
	Allowed    bool
	Remaining  int64
	RetryAfter time.Duration
}

// RateLimitSettings параметры token bucket
type RateLimitSettings struct {
	Capacity       int
	RefillTokens   int
	RefillInterval time.Duration
	Prefix         string
	TrustedProxies []string // IP или CIDR прокси, которым разрешено передавать X-Forwarded-For
}

// tokenBucketScript атомарно пополняет и расходует бакет.
// Возвращает {allowed, remaining, retry_after_ms}.
var tokenBucketScript = redis.NewScript(`
local key = KEYS[1]
local now_ms = tonumber(ARGV[1])
local capacity = tonumber(ARGV[2])
local refill_tokens = tonumber(ARGV[3])
local interval_ms = tonumber(ARGV[4])
local ttl_seconds = tonumber(ARGV[5])

local state = redis.call('HMGET', key, 'tokens', 'last_refill_ms')
local tokens = tonumber(state[1])
local last_refill = tonumber(state[2])

if tokens == nil or last_refill == nil then
	tokens = capacity
	last_refill = now_ms
end

local elapsed = math.max(0, now_ms - last_refill)
local intervals = math.floor(elapsed / interval_ms)
if intervals > 0 then
	tokens = math.min(capacity, tokens + intervals * refill_tokens)
	last_refill = last_refill + intervals * interval_ms
end

local allowed = 0
local retry_after_ms = 0
if tokens > 0 then
	allowed = 1
	tokens = tokens - 1
else
	retry_after_ms = math.max(0, interval_ms - (now_ms - last_refill))
end

redis.call('HSET', key, 'tokens', tokens, 'last_refill_ms', last_refill)
redis.call('EXPIRE', key, ttl_seconds)

return {allowed, tokens, retry_after_ms}
`)

// RedisLimiter token bucket в Redis, общий для всех экземпляров сервиса
type RedisLimiter struct {
	client   redis.Scripter
	settings RateLimitSettings
	now      func() time.Time
}

// NewRedisLimiter создает лимитер поверх клиента Redis
func NewRedisLimiter(client redis.Scripter, settings RateLimitSettings) *RedisLimiter {
	return &RedisLimiter{client: client, settings: settings, now: time.Now}
}

// Allow расходует один токен из бакета key
func (l *RedisLimiter) Allow(ctx context.Context, key string) (*LimitResult, error) {
	interval := l.settings.RefillInterval.Milliseconds()
	if interval <= 0 {
		interval = 1000
	}
	// Бакет живет, пока не наполнится заново
	ttl := int64(math.Ceil(float64(l.settings.Capacity)/float64(max(l.settings.RefillTokens, 1)))) * interval / 1000
	if ttl < 1 {
		ttl = 1
	}

	vals, err := tokenBucketScript.Run(ctx, l.client, []string{key},
		l.now().UnixMilli(),
		l.settings.Capacity,
		l.settings.RefillTokens,
		interval,
		ttl,
	).Int64Slice()
	if err != nil {
		return nil, fmt.Errorf("ratelimit: run script: %w", err)
	}
	if len(vals) != 3 {
		return nil, fmt.Errorf("ratelimit: unexpected script result %v", vals)
	}

	return &LimitResult{
		Allowed:    vals[0] == 1,
		Remaining:  vals[1],
		RetryAfter: time.Duration(vals[2]) * time.Millisecond,
	}, nil
}

// RateLimit ограничивает частоту запросов по IP клиента и маршруту.
// При limiter == nil или ошибке Redis запрос пропускается.
// Заголовкам X-Forwarded-For и X-Real-IP верим только от доверенных прокси.
func RateLimit(limiter Limiter, settings RateLimitSettings, logger Logger) func(http.Handler) http.Handler {
	trusted, invalid := parseProxies(settings.TrustedProxies)
	for _, entry := range invalid {
		logger.Warn("RateLimit: ignoring invalid trusted proxy %q", entry)
	}

	return func(next http.Handler) http.Handler {
		if limiter == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := strings.Join([]string{settings.Prefix, "ip", clientIP(r, trusted), "route", r.Method + " " + routeTemplate(r)}, ":")

			res, err := limiter.Allow(r.Context(), key)
			if err != nil {
				logger.Warn("RateLimit: limiter unavailable for key=%s, passing through: %v", key, err)
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(settings.Capacity))
			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(res.Remaining, 10))

			if !res.Allowed {
				secs := int(math.Ceil(res.RetryAfter.Seconds()))
				w.Header().Set("Retry-After", strconv.Itoa(secs))
				logger.Warn("RateLimit: blocked key=%s retry_after=%ds", key, secs)
				handlers.RespondError(w, http.StatusTooManyRequests, msgTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// proxySet сети доверенных прокси
type proxySet []*net.IPNet

// parseProxies разбирает IP и CIDR; нераспознанные записи возвращаются вторым значением
func parseProxies(entries []string) (proxySet, []string) {
	var (
		set     proxySet
		invalid []string
	)
	for _, raw := range entries {
		entry := strings.TrimSpace(raw)
		if entry == "" {
			continue
		}
		if _, network, err := net.ParseCIDR(entry); err == nil {
			set = append(set, network)
			continue
		}
		ip := net.ParseIP(entry)
		if ip == nil {
			invalid = append(invalid, raw)
			continue
		}
		bits := 8 * net.IPv6len
		if v4 := ip.To4(); v4 != nil {
			ip, bits = v4, 8*net.IPv4len
		}
		set = append(set, &net.IPNet{IP: ip, Mask: net.CIDRMask(bits, bits)})
	}
	return set, invalid
}

func (p proxySet) contains(ip net.IP) bool {
	for _, network := range p {
		if network.Contains(ip) {
			return true
		}
	}
	return false
}

// clientIP адрес клиента. Без доверенного прокси перед нами это всегда адрес соединения,
// иначе первый справа адрес X-Forwarded-For, не принадлежащий доверенным прокси.
func clientIP(r *http.Request, trusted proxySet) string {
	peer := remoteHost(r)
	peerIP := net.ParseIP(peer)
	if peerIP == nil || !trusted.contains(peerIP) {
		return peer
	}

	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		hops := strings.Split(fwd, ",")
		for i := len(hops) - 1; i >= 0; i-- {
			hop := net.ParseIP(strings.TrimSpace(hops[i]))
			if hop == nil {
				break
			}
			if !trusted.contains(hop) {
				return hop.String()
			}
		}
	}
	if realIP := net.ParseIP(strings.TrimSpace(r.Header.Get("X-Real-IP"))); realIP != nil {
		return realIP.String()
	}
	return peer
}

func remoteHost(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		if r.RemoteAddr == "" {
			return "unknown"
		}
		return r.RemoteAddr
	}
	return host
}
