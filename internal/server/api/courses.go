package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/IvanChernomyrdin/go-courses-api/internal/server/models"
	svcmodels "github.com/IvanChernomyrdin/go-courses-api/internal/server/service/models"
	serr "github.com/IvanChernomyrdin/go-courses-api/internal/shared/errors"
)

// courseID читает {id} из пути. Нечисловой id трактуется как отсутствующий курс.
func courseID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, serr.ErrCourseNotFound
	}
	return id, nil
}

// ListCourses возвращает все курсы с владельцами.
//
// @Summary      List courses
// @Tags         courses
// @Produce      json
// @Success      200 {array}  models.CourseWithOwner
// @Failure      500 {object} ErrorResponse
// @Router       /api/courses [get]
func (h *Handler) ListCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := h.Svc.Courses.List(r.Context())
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, courses)
}

// GetCourse возвращает курс по id.
//
// @Summary      Get course
// @Tags         courses
// @Produce      json
// @Param        id   path      int  true  "Course ID"
// @Success      200 {object} models.CourseWithOwner
// @Failure      404 {object} ErrorResponse "Course not found"
// @Router       /api/courses/{id} [get]
func (h *Handler) GetCourse(w http.ResponseWriter, r *http.Request) {
	id, err := courseID(r)
	if err != nil {
		h.WriteError(w, r, err)
		return
	}

	var course models.CourseWithOwner
	if course, err = h.Svc.Courses.Get(r.Context(), id); err != nil {
		h.WriteError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, course)
}

// CreateCourse создаёт курс от имени аутентифицированного пользователя.
//
// @Summary      Create course
// @Tags         courses
// @Accept       json
// @Security     BasicAuth
// @Param        request body svcmodels.CourseInput true "Course"
// @Success      201 "Location: /api/courses/{id}"
// @Failure      400 {object} ValidationErrorResponse
// @Failure      401 {object} ErrorResponse "Access Denied"
// @Router       /api/courses [post]
func (h *Handler) CreateCourse(w http.ResponseWriter, r *http.Request) {
	ownerID, err := currentUserID(r)
	if err != nil {
		h.WriteError(w, r, err)
		return
	}

	var in svcmodels.CourseInput
	if err := decodeJSON(r, &in); err != nil {
		h.WriteError(w, r, err)
		return
	}

	id, err := h.Svc.Courses.Create(r.Context(), ownerID, in)
	if err != nil {
		h.WriteError(w, r, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/courses/%d", id))
	w.WriteHeader(http.StatusCreated)
}

// UpdateCourse меняет переданные поля курса. Только для владельца.
//
// @Summary      Update course
// @Tags         courses
// @Accept       json
// @Security     BasicAuth
// @Param        id      path int                   true "Course ID"
// @Param        request body svcmodels.CourseInput true "Fields to change"
// @Success      204
// @Failure      400 {object} ValidationErrorResponse
// @Failure      401 {object} ErrorResponse "Access Denied"
// @Failure      403 {object} ErrorResponse "Not the owner"
// @Failure      404 {object} ErrorResponse "Course not found"
// @Router       /api/courses/{id} [put]
func (h *Handler) UpdateCourse(w http.ResponseWriter, r *http.Request) {
	callerID, err := currentUserID(r)
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	id, err := courseID(r)
	if err != nil {
		h.WriteError(w, r, err)
		return
	}

	var in svcmodels.CourseInput
	if err := decodeJSON(r, &in); err != nil {
		h.WriteError(w, r, err)
		return
	}

	if err := h.Svc.Courses.Update(r.Context(), callerID, id, in); err != nil {
		h.WriteError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteCourse удаляет курс. Только для владельца.
//
// @Summary      Delete course
// @Tags         courses
// @Security     BasicAuth
// @Param        id path int true "Course ID"
// @Success      204
// @Failure      401 {object} ErrorResponse "Access Denied"
// @Failure      403 {object} ErrorResponse "Not the owner"
// @Failure      404 {object} ErrorResponse "Course not found"
// @Router       /api/courses/{id} [delete]
func (h *Handler) DeleteCourse(w http.ResponseWriter, r *http.Request) {
	callerID, err := currentUserID(r)
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	id, err := courseID(r)
	if err != nil {
		h.WriteError(w, r, err)
		return
	}

	if err := h.Svc.Courses.Delete(r.Context(), callerID, id); err != nil {
		h.WriteError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
