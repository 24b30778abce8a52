package middleware

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"

	serr "github.com/IvanChernomyrdin/go-courses-api/internal/shared/errors"
	"github.com/IvanChernomyrdin/go-courses-api/internal/shared/logger"
)

// Recoverer перехватывает панику обработчика и отвечает 500 в общем формате.
//
// http.ErrAbortHandler пробрасывается дальше: это штатный способ оборвать ответ.
func Recoverer(log *logger.HTTPLogger, writeErr ErrorWriter) func(http.Handler) http.Handler {
	if log == nil {
		log = logger.Nop()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				log.Error("panic recovered",
					zap.Any("panic", rec),
					zap.String("method", r.Method),
					zap.String("uri", r.RequestURI),
					zap.String("request_id", RequestIDFromContext(r.Context())),
					zap.Stack("stack"),
				)
				writeErr(w, r, fmt.Errorf("%w: panic: %v", serr.ErrInternal, rec))
			}()

			next.ServeHTTP(w, r)
		})
	}
}
