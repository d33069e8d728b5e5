package middleware

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TattooStudio/internal/domain"
)

// TokenParser проверяет bearer-токен и возвращает сотрудника
type TokenParser interface {
	ParseToken(raw string) (*domain.Principal, error)
}

// HTTPMetrics получатель метрик HTTP запросов
type HTTPMetrics interface {
	ObserveHTTPRequest(method, route string, status int, duration time.Duration)
}

// Limiter token bucket по ключу
type Limiter interface {
	Allow(ctx context.Context, key string) (*LimitResult, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
