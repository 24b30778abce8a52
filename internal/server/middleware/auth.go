// Package middleware содержит HTTP middleware сервера.
package middleware

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/IvanChernomyrdin/go-courses-api/internal/server/models"
	serr "github.com/IvanChernomyrdin/go-courses-api/internal/shared/errors"
	"github.com/IvanChernomyrdin/go-courses-api/internal/shared/logger"
)

// ctxKey используется как тип ключа для хранения значений в context.Context.
// Отдельный тип предотвращает коллизии ключей между пакетами.
type ctxKey string

// userKey — ключ контекста, под которым хранится аутентифицированный пользователь.
const userKey ctxKey = "user"

// ErrorWriter отдаёт клиенту ошибку в общем формате ответа.
type ErrorWriter func(w http.ResponseWriter, r *http.Request, err error)

// Authenticator проверяет пару email/пароль.
type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (models.User, error)
}

// UserFromContext извлекает аутентифицированного пользователя из контекста.
//
// Возвращает false, если запрос не прошёл через BasicAuth.
func UserFromContext(ctx context.Context) (models.User, bool) {
	u, ok := ctx.Value(userKey).(models.User)
	return u, ok
}

// WithUser кладёт пользователя в контекст.
func WithUser(ctx context.Context, u models.User) context.Context {
	return context.WithValue(ctx, userKey, u)
}

// BasicAuth возвращает middleware для аутентификации по заголовку
// Authorization: Basic base64(emailAddress:password).
//
// При отсутствии заголовка, неизвестном email или неверном пароле отвечает
// 401 Access Denied, причина пишется в лог. Ошибки хранилища отдаются
// через writeErr как есть (обычно 500).
func BasicAuth(auth Authenticator, log *logger.HTTPLogger, writeErr ErrorWriter) func(http.Handler) http.Handler {
	if log == nil {
		log = logger.Nop()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			email, password, ok := r.BasicAuth()
			if !ok {
				log.Warn("authentication failed",
					zap.String("reason", "auth header not found"),
					zap.String("request_id", RequestIDFromContext(r.Context())),
				)
				writeErr(w, r, serr.ErrAccessDenied)
				return
			}

			user, err := auth.Authenticate(r.Context(), email, password)
			if err != nil {
				if errors.Is(err, serr.ErrInvalidCredentials) {
					log.Warn("authentication failed",
						zap.String("reason", err.Error()),
						zap.String("request_id", RequestIDFromContext(r.Context())),
					)
					writeErr(w, r, serr.ErrAccessDenied)
					return
				}
				writeErr(w, r, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}
