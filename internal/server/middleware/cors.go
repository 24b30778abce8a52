package middleware

import (
	"net/http"

	"github.com/rs/cors"

	"github.com/IvanChernomyrdin/go-courses-api/internal/server/config"
)

// CORS разрешает кросс-доменные запросы к API по настройкам из конфига.
func CORS(cfg config.CORSConfig) func(http.Handler) http.Handler {
	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", RequestIDHeader},
		ExposedHeaders:   []string{"Location", RequestIDHeader},
		AllowCredentials: cfg.AllowCredentials,
		Debug:            cfg.Debug,
	})
	return c.Handler
}

// BodyLimit ограничивает размер тела запроса. n <= 0 — без ограничения.
func BodyLimit(n int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if n <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, n)
			}
			next.ServeHTTP(w, r)
		})
	}
}
