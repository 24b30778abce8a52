// Package service содержит бизнес-логику приложения (courses API).
// Это прослойка между HTTP-обработчиками (api) и хранилищем данных (repository).
package service

import (
	"context"
	"time"

	"github.com/IvanChernomyrdin/go-courses-api/internal/server/config"
	"github.com/IvanChernomyrdin/go-courses-api/internal/server/crypto"
	"github.com/IvanChernomyrdin/go-courses-api/internal/server/models"
	"github.com/IvanChernomyrdin/go-courses-api/internal/server/workload"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks

// Repositories — набор интерфейсов, которые сервисный слой ожидает от слоя repository.
type Repositories struct {
	Users   UsersRepo
	Courses CoursesRepo
}

// Services — агрегатор всех сервисов приложения.
type Services struct {
	Users       *UsersService
	Courses     *CoursesService
	Uploads     *UploadsService
	Diagnostics *DiagnosticsService
	Seeder      *Seeder
}

// NewServices собирает все сервисы приложения.
//
// storage может быть nil, если выдача ссылок на загрузку не нужна (например в CLI).
func NewServices(repos Repositories, storage ObjectStorage, pool *workload.Pool, cfg *config.Config) *Services {
	hasher := crypto.NewHasher(cfg.Password.Hasher, crypto.Argon2Params{
		Time:      cfg.Password.Argon2.Time,
		MemoryKiB: cfg.Password.Argon2.MemoryKiB,
		Threads:   cfg.Password.Argon2.Threads,
		KeyLen:    cfg.Password.Argon2.KeyLen,
		SaltLen:   cfg.Password.Argon2.SaltLen,
	}, cfg.Password.Bcrypt.Cost)

	seeder := NewSeeder(repos.Users, repos.Courses, workload.NewCourseGenerator(0))

	return &Services{
		Users:       NewUsersService(repos.Users, hasher),
		Courses:     NewCoursesService(repos.Courses),
		Uploads:     NewUploadsService(storage, cfg.Storage.KeyPrefix, cfg.Storage.UploadURLTTL),
		Diagnostics: NewDiagnosticsService(pool, seeder, cfg.Workload),
		Seeder:      seeder,
	}
}

// UsersRepo — репозиторий пользователей (регистрация, Basic-аутентификация, генерация курсов).
type UsersRepo interface {
	Create(ctx context.Context, u *models.User) (int64, error)
	GetByEmail(ctx context.Context, email string) (models.User, error)
	ListIDs(ctx context.Context) ([]int64, error)
}

// CoursesRepo — репозиторий курсов.
type CoursesRepo interface {
	List(ctx context.Context) ([]models.CourseWithOwner, error)
	GetWithOwner(ctx context.Context, id int64) (models.CourseWithOwner, error)
	Get(ctx context.Context, id int64) (models.Course, error)
	Create(ctx context.Context, c models.Course) (int64, error)
	Update(ctx context.Context, c models.Course) error
	Delete(ctx context.Context, id int64) error
	BulkCreate(ctx context.Context, courses []models.Course) (int, error)
}

// ObjectStorage — объектное хранилище, которое умеет подписывать ссылки на загрузку.
type ObjectStorage interface {
	// PresignPut возвращает подписанный URL для PUT-загрузки объекта key.
	PresignPut(ctx context.Context, key, contentType string, ttl time.Duration) (string, error)
	// ObjectURL возвращает публичный адрес объекта после загрузки.
	ObjectURL(key string) string
}
