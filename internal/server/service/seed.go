package service

import (
	"context"

	"github.com/IvanChernomyrdin/go-courses-api/internal/server/workload"
	serr "github.com/IvanChernomyrdin/go-courses-api/internal/shared/errors"
)

// Seeder вставляет синтетические курсы со случайными владельцами.
// Используется задачей tasks=2 в /api/sleep и командой seed.
type Seeder struct {
	users   UsersRepo
	courses CoursesRepo
	gen     *workload.CourseGenerator
}

func NewSeeder(users UsersRepo, courses CoursesRepo, gen *workload.CourseGenerator) *Seeder {
	return &Seeder{users: users, courses: courses, gen: gen}
}

// SeedCourses вставляет n курсов одной транзакцией.
//
// Если пользователей нет, возвращает serr.ErrNoUsers и ничего не вставляет.
func (s *Seeder) SeedCourses(ctx context.Context, n int) (int, error) {
	ids, err := s.users.ListIDs(ctx)
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, serr.ErrNoUsers
	}
	if n <= 0 {
		return 0, nil
	}
	return s.courses.BulkCreate(ctx, s.gen.Generate(n, ids))
}
