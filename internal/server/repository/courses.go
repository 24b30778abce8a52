package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/IvanChernomyrdin/go-courses-api/internal/server/models"
	serr "github.com/IvanChernomyrdin/go-courses-api/internal/shared/errors"
)

// CoursesRepository реализует доступ к таблице courses.
type CoursesRepository struct {
	db *sql.DB
}

// NewCoursesRepository создаёт новый экземпляр CoursesRepository.
func NewCoursesRepository(db *sql.DB) *CoursesRepository {
	return &CoursesRepository{db: db}
}

const selectCourseWithOwner = `
	SELECT c.id, c.title, c.description, c.estimated_time, c.materials_needed, c.image_url, c.user_id,
	       u.id, u.first_name, u.last_name, u.email_address
	FROM courses c
	JOIN users u ON u.id = c.user_id`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCourseWithOwner(row rowScanner) (models.CourseWithOwner, error) {
	var (
		c                          models.CourseWithOwner
		estimated, materials, image sql.NullString
	)
	err := row.Scan(
		&c.ID, &c.Title, &c.Description, &estimated, &materials, &image, &c.UserID,
		&c.User.ID, &c.User.FirstName, &c.User.LastName, &c.User.EmailAddress,
	)
	if err != nil {
		return models.CourseWithOwner{}, err
	}
	c.EstimatedTime = nullToPtr(estimated)
	c.MaterialsNeeded = nullToPtr(materials)
	c.ImageURL = nullToPtr(image)
	return c, nil
}

// List возвращает все курсы вместе с владельцами, упорядоченные по id.
func (r *CoursesRepository) List(ctx context.Context) ([]models.CourseWithOwner, error) {
	rows, err := r.db.QueryContext(ctx, selectCourseWithOwner+` ORDER BY c.id`)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	courses := make([]models.CourseWithOwner, 0)
	for rows.Next() {
		c, err := scanCourseWithOwner(rows)
		if err != nil {
			return nil, mapError(err)
		}
		courses = append(courses, c)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}
	return courses, nil
}

// GetWithOwner возвращает курс с владельцем. Нет курса — ErrNotFound.
func (r *CoursesRepository) GetWithOwner(ctx context.Context, id int64) (models.CourseWithOwner, error) {
	c, err := scanCourseWithOwner(r.db.QueryRowContext(ctx, selectCourseWithOwner+` WHERE c.id=$1`, id))
	if err != nil {
		return models.CourseWithOwner{}, mapError(err)
	}
	return c, nil
}

// Get возвращает курс без данных владельца. Нет курса — ErrNotFound.
func (r *CoursesRepository) Get(ctx context.Context, id int64) (models.Course, error) {
	var (
		c                          models.Course
		estimated, materials, image sql.NullString
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, title, description, estimated_time, materials_needed, image_url, user_id, created_at, updated_at
		 FROM courses WHERE id=$1`,
		id,
	).Scan(&c.ID, &c.Title, &c.Description, &estimated, &materials, &image, &c.UserID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return models.Course{}, mapError(err)
	}
	c.EstimatedTime = nullToPtr(estimated)
	c.MaterialsNeeded = nullToPtr(materials)
	c.ImageURL = nullToPtr(image)
	return c, nil
}

const insertCourse = `
	INSERT INTO courses (title, description, estimated_time, materials_needed, image_url, user_id)
	VALUES ($1,$2,$3,$4,$5,$6)
	RETURNING id`

// Create сохраняет курс и возвращает его id.
//
// Ошибки:
//   - ErrInvalidInput — владелец не существует или нарушено ограничение таблицы
//   - ErrInternal — ошибка базы данных
func (r *CoursesRepository) Create(ctx context.Context, c models.Course) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, insertCourse,
		c.Title, c.Description, c.EstimatedTime, c.MaterialsNeeded, c.ImageURL, c.UserID,
	).Scan(&id)
	if err != nil {
		return 0, mapError(err)
	}
	return id, nil
}

// Update перезаписывает редактируемые поля курса. Владелец не меняется.
//
// Если курса нет, возвращает ErrNotFound.
func (r *CoursesRepository) Update(ctx context.Context, c models.Course) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE courses
		 SET title=$2, description=$3, estimated_time=$4, materials_needed=$5, image_url=$6, updated_at=now()
		 WHERE id=$1`,
		c.ID, c.Title, c.Description, c.EstimatedTime, c.MaterialsNeeded, c.ImageURL,
	)
	if err != nil {
		return mapError(err)
	}
	return expectAffected(res)
}

// Delete удаляет курс. Если курса нет, возвращает ErrNotFound.
func (r *CoursesRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM courses WHERE id=$1`, id)
	if err != nil {
		return mapError(err)
	}
	return expectAffected(res)
}

// BulkCreate вставляет курсы одной транзакцией через подготовленный запрос.
//
// При любой ошибке транзакция откатывается и ни один курс не сохраняется.
// Возвращает число вставленных строк.
func (r *CoursesRepository) BulkCreate(ctx context.Context, courses []models.Course) (n int, err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, mapError(err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO courses (title, description, estimated_time, materials_needed, image_url, user_id)
		 VALUES ($1,$2,$3,$4,$5,$6)`)
	if err != nil {
		return 0, mapError(err)
	}
	defer stmt.Close()

	for i, c := range courses {
		if _, err = stmt.ExecContext(ctx, c.Title, c.Description, c.EstimatedTime, c.MaterialsNeeded, c.ImageURL, c.UserID); err != nil {
			return 0, fmt.Errorf("course #%d: %w", i, mapError(err))
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, mapError(err)
	}
	return len(courses), nil
}

func expectAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return mapError(err)
	}
	if n == 0 {
		return serr.ErrNotFound
	}
	return nil
}

func nullToPtr(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}
