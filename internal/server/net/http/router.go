// Package http реализует маршрутизацию HTTP-слоя сервера courses API.
//
// Пакет отвечает за:
//   - регистрацию HTTP-маршрутов и настройку роутера (chi);
//   - цепочку общих middleware (request id, логирование, recover, CORS);
//   - подключение Basic-аутентификации к изменяющим маршрутам.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/IvanChernomyrdin/go-courses-api/internal/server/api"
	"github.com/IvanChernomyrdin/go-courses-api/internal/server/config"
	"github.com/IvanChernomyrdin/go-courses-api/internal/server/middleware"
)

// Options — настройки роутера, не относящиеся к обработчикам.
type Options struct {
	CORS         config.CORSConfig
	MaxBodyBytes int64
}

// NewRouter создаёт и настраивает HTTP-роутер сервера.
//
// Публичные маршруты: GET /, GET /api/courses, GET /api/courses/{id},
// POST /api/users и диагностика. Остальные требуют Basic-аутентификации.
func NewRouter(h *api.Handler, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	// логирование всех запросов
	r.Use(middleware.LoggerMiddleware(h.Log))
	r.Use(middleware.Recoverer(h.Log, h.WriteError))
	r.Use(middleware.CORS(opts.CORS))
	r.Use(middleware.BodyLimit(opts.MaxBodyBytes))

	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)

	auth := middleware.BasicAuth(h.Svc.Users, h.Log, h.WriteError)

	// добавляем swagger
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	r.Get("/", h.Welcome)

	r.Route("/api", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			r.With(auth).Get("/", h.CurrentUser)
			r.Post("/", h.RegisterUser)
		})

		r.Route("/courses", func(r chi.Router) {
			r.Get("/", h.ListCourses)
			r.With(auth).Post("/", h.CreateCourse)
			// статический сегмент chi матчит раньше {id}
			r.With(auth).Get("/upload-url", h.UploadURL)
			r.Get("/{id}", h.GetCourse)
			r.With(auth).Put("/{id}", h.UpdateCourse)
			r.With(auth).Delete("/{id}", h.DeleteCourse)
		})

		r.Get("/error/{status_code}", h.SimulateError)
		r.Get("/sleep", h.Sleep)
	})

	return r
}
