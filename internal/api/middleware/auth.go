package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-TattooStudio/internal/api/handlers"
	"github.com/m04kA/SMC-TattooStudio/internal/domain"
)

const (
	msgMissingToken = "требуется авторизация"
	msgInvalidToken = "недействительный или просроченный токен"
	msgForbidden    = "доступ запрещен"
)

type contextKey string

const principalKey contextKey = "principal"

// Auth проверяет заголовок Authorization: Bearer <token> и кладет сотрудника в контекст
func Auth(parser TokenParser, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			raw, ok := bearerToken(header)
			if !ok {
				logger.Warn("Auth: missing bearer token: %s %s", r.Method, r.URL.Path)
				handlers.RespondUnauthorized(w, msgMissingToken)
				return
			}

			principal, err := parser.ParseToken(raw)
			if err != nil {
				logger.Warn("Auth: rejected token: %s %s: %v", r.Method, r.URL.Path, err)
				handlers.RespondUnauthorized(w, msgInvalidToken)
				return
			}

			ctx := WithPrincipal(r.Context(), principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequirePermission пропускает запрос, только если у сотрудника есть право p.
// Администратор имеет все права.
func RequirePermission(p domain.Permission, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := GetPrincipal(r.Context())
			if !ok {
				handlers.RespondUnauthorized(w, msgMissingToken)
				return
			}

			if !principal.Can(p) {
				logger.Warn("RequirePermission: staff=%s role=%s lacks permission=%s for %s %s",
					principal.StaffID, principal.Role, p, r.Method, r.URL.Path)
				handlers.RespondForbidden(w, msgForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// GetPrincipal извлекает авторизованного сотрудника из контекста
func GetPrincipal(ctx context.Context) (*domain.Principal, bool) {
	principal, ok := ctx.Value(principalKey).(*domain.Principal)
	return principal, ok && principal != nil
}

// GetUserID извлекает ID сотрудника из контекста
func GetUserID(ctx context.Context) (uuid.UUID, bool) {
	principal, ok := GetPrincipal(ctx)
	if !ok {
		return uuid.Nil, false
	}
	return principal.StaffID, true
}

// WithPrincipal кладет сотрудника в контекст
func WithPrincipal(ctx context.Context, principal *domain.Principal) context.Context {
	return context.WithValue(ctx, principalKey, principal)
}

func bearerToken(header string) (string, bool) {
	const prefix = "bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}
