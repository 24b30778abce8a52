package service

import (
	"context"
	"errors"
	"strings"

	"github.com/IvanChernomyrdin/go-courses-api/internal/server/models"
	svcmodels "github.com/IvanChernomyrdin/go-courses-api/internal/server/service/models"
	serr "github.com/IvanChernomyrdin/go-courses-api/internal/shared/errors"
)

// CoursesService реализует CRUD курсов и проверку владельца.
type CoursesService struct {
	courses CoursesRepo
}

func NewCoursesService(courses CoursesRepo) *CoursesService {
	return &CoursesService{courses: courses}
}

type courseFields struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
}

// List возвращает все курсы с владельцами.
func (s *CoursesService) List(ctx context.Context) ([]models.CourseWithOwner, error) {
	return s.courses.List(ctx)
}

// Get возвращает курс с владельцем или serr.ErrCourseNotFound.
func (s *CoursesService) Get(ctx context.Context, id int64) (models.CourseWithOwner, error) {
	c, err := s.courses.GetWithOwner(ctx, id)
	if err != nil {
		return models.CourseWithOwner{}, notFoundAsCourse(err)
	}
	return c, nil
}

// Create создаёт курс, владельцем становится ownerID. userId из тела игнорируется.
func (s *CoursesService) Create(ctx context.Context, ownerID int64, in svcmodels.CourseInput) (int64, error) {
	c := models.Course{UserID: ownerID}
	applyInput(&c, in)

	if err := validateCourse(c); err != nil {
		return 0, err
	}
	return s.courses.Create(ctx, c)
}

// Update применяет переданные поля к курсу id.
//
// Порядок проверок: курс существует (404), callerID — владелец (403),
// итоговые значения валидны (400).
func (s *CoursesService) Update(ctx context.Context, callerID, id int64, in svcmodels.CourseInput) error {
	c, err := s.ownedCourse(ctx, callerID, id)
	if err != nil {
		return err
	}

	applyInput(&c, in)
	if err := validateCourse(c); err != nil {
		return err
	}
	return notFoundAsCourse(s.courses.Update(ctx, c))
}

// Delete удаляет курс id, если callerID — его владелец.
func (s *CoursesService) Delete(ctx context.Context, callerID, id int64) error {
	if _, err := s.ownedCourse(ctx, callerID, id); err != nil {
		return err
	}
	return notFoundAsCourse(s.courses.Delete(ctx, id))
}

func (s *CoursesService) ownedCourse(ctx context.Context, callerID, id int64) (models.Course, error) {
	c, err := s.courses.Get(ctx, id)
	if err != nil {
		return models.Course{}, notFoundAsCourse(err)
	}
	if !c.IsOwnedBy(callerID) {
		return models.Course{}, serr.ErrNotCourseOwner
	}
	return c, nil
}

// applyInput переносит в c только переданные поля.
func applyInput(c *models.Course, in svcmodels.CourseInput) {
	if in.Title != nil {
		c.Title = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		c.Description = strings.TrimSpace(*in.Description)
	}
	if in.EstimatedTime != nil {
		c.EstimatedTime = in.EstimatedTime
	}
	if in.MaterialsNeeded != nil {
		c.MaterialsNeeded = in.MaterialsNeeded
	}
	if in.ImageURL != nil {
		c.ImageURL = in.ImageURL
	}
}

func validateCourse(c models.Course) error {
	return validateStruct(courseFields{Title: c.Title, Description: c.Description})
}

func notFoundAsCourse(err error) error {
	if errors.Is(err, serr.ErrNotFound) {
		return serr.ErrCourseNotFound
	}
	return err
}
