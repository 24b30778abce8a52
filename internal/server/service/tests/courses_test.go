package tests

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/IvanChernomyrdin/go-courses-api/internal/server/models"
	"github.com/IvanChernomyrdin/go-courses-api/internal/server/service"
	"github.com/IvanChernomyrdin/go-courses-api/internal/server/service/mocks"
	svcmodels "github.com/IvanChernomyrdin/go-courses-api/internal/server/service/models"
	"github.com/IvanChernomyrdin/go-courses-api/internal/shared/utils"
	serr "github.com/IvanChernomyrdin/go-courses-api/internal/shared/errors"
)

func newCoursesService(t *testing.T) (*service.CoursesService, *mocks.MockCoursesRepo) {
	t.Helper()

	ctrl := gomock.NewController(t)
	courses := mocks.NewMockCoursesRepo(ctrl)
	return service.NewCoursesService(courses), courses
}

func storedCourse() models.Course {
	return models.Course{
		ID:            7,
		Title:         "Build a Basic Bookcase",
		Description:   "High-end furniture projects",
		EstimatedTime: utils.StrPtr("12 hours"),
		UserID:        1,
	}
}

func TestCoursesService_Get_NotFound(t *testing.T) {
	ctx := context.Background()
	svc, courses := newCoursesService(t)

	courses.EXPECT().GetWithOwner(ctx, int64(99)).Return(models.CourseWithOwner{}, serr.ErrNotFound)

	_, err := svc.Get(ctx, 99)
	require.ErrorIs(t, err, serr.ErrCourseNotFound)
	require.Equal(t, 404, serr.StatusOf(err))
}

// владелец берётся из аутентификации, а не из тела
func TestCoursesService_Create_OwnerFromCaller(t *testing.T) {
	ctx := context.Background()
	svc, courses := newCoursesService(t)

	courses.EXPECT().
		Create(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, c models.Course) (int64, error) {
			require.Equal(t, int64(1), c.UserID)
			require.Equal(t, "New Course", c.Title)
			return 12, nil
		})

	id, err := svc.Create(ctx, 1, svcmodels.CourseInput{
		Title:       utils.StrPtr("  New Course "),
		Description: utils.StrPtr("Desc"),
		UserID:      utils.Ptr(int64(2)),
	})
	require.NoError(t, err)
	require.Equal(t, int64(12), id)
}

func TestCoursesService_Create_Validation(t *testing.T) {
	svc, _ := newCoursesService(t)

	_, err := svc.Create(context.Background(), 1, svcmodels.CourseInput{Title: utils.StrPtr("")})

	var vErr *serr.ValidationError
	require.True(t, errors.As(err, &vErr))
	require.Equal(t, []string{
		`Please provide a value for "title"`,
		`Please provide a value for "description"`,
	}, vErr.Messages)
}

// частичное изменение: непереданные поля сохраняются
func TestCoursesService_Update_Owner(t *testing.T) {
	ctx := context.Background()
	svc, courses := newCoursesService(t)

	courses.EXPECT().Get(ctx, int64(7)).Return(storedCourse(), nil)
	courses.EXPECT().
		Update(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, c models.Course) error {
			require.Equal(t, "Updated", c.Title)
			require.Equal(t, "High-end furniture projects", c.Description)
			require.Equal(t, "12 hours", *c.EstimatedTime)
			require.Equal(t, int64(1), c.UserID)
			return nil
		})

	err := svc.Update(ctx, 1, 7, svcmodels.CourseInput{
		Title:  utils.StrPtr("Updated"),
		UserID: utils.Ptr(int64(2)),
	})
	require.NoError(t, err)
}

func TestCoursesService_Update_NotOwner(t *testing.T) {
	ctx := context.Background()
	svc, courses := newCoursesService(t)

	courses.EXPECT().Get(ctx, int64(7)).Return(storedCourse(), nil)

	err := svc.Update(ctx, 2, 7, svcmodels.CourseInput{Title: utils.StrPtr("Hijack")})
	require.ErrorIs(t, err, serr.ErrNotCourseOwner)
	require.Equal(t, 403, serr.StatusOf(err))
}

func TestCoursesService_Update_NotFound(t *testing.T) {
	ctx := context.Background()
	svc, courses := newCoursesService(t)

	courses.EXPECT().Get(ctx, int64(7)).Return(models.Course{}, serr.ErrNotFound)

	err := svc.Update(ctx, 1, 7, svcmodels.CourseInput{})
	require.Equal(t, 404, serr.StatusOf(err))
}

// пустой title в теле — ошибка валидации, а не «не передано»
func TestCoursesService_Update_EmptyTitle(t *testing.T) {
	ctx := context.Background()
	svc, courses := newCoursesService(t)

	courses.EXPECT().Get(ctx, int64(7)).Return(storedCourse(), nil)

	err := svc.Update(ctx, 1, 7, svcmodels.CourseInput{Title: utils.StrPtr(" ")})

	var vErr *serr.ValidationError
	require.True(t, errors.As(err, &vErr))
	require.Equal(t, []string{`Please provide a value for "title"`}, vErr.Messages)
}

func TestCoursesService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("owner", func(t *testing.T) {
		svc, courses := newCoursesService(t)
		courses.EXPECT().Get(ctx, int64(7)).Return(storedCourse(), nil)
		courses.EXPECT().Delete(ctx, int64(7)).Return(nil)

		require.NoError(t, svc.Delete(ctx, 1, 7))
	})

	t.Run("not owner", func(t *testing.T) {
		svc, courses := newCoursesService(t)
		courses.EXPECT().Get(ctx, int64(7)).Return(storedCourse(), nil)

		require.ErrorIs(t, svc.Delete(ctx, 2, 7), serr.ErrNotCourseOwner)
	})

	// курс удалили между Get и Delete
	t.Run("gone", func(t *testing.T) {
		svc, courses := newCoursesService(t)
		courses.EXPECT().Get(ctx, int64(7)).Return(storedCourse(), nil)
		courses.EXPECT().Delete(ctx, int64(7)).Return(serr.ErrNotFound)

		require.ErrorIs(t, svc.Delete(ctx, 1, 7), serr.ErrCourseNotFound)
	})
}
