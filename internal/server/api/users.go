package api

import (
	"net/http"

	"github.com/IvanChernomyrdin/go-courses-api/internal/server/middleware"
	svcmodels "github.com/IvanChernomyrdin/go-courses-api/internal/server/service/models"
	serr "github.com/IvanChernomyrdin/go-courses-api/internal/shared/errors"
)

// CurrentUser возвращает аутентифицированного пользователя.
//
// @Summary      Current user
// @Tags         users
// @Produce      json
// @Security     BasicAuth
// @Success      200 {object} models.UserSummary
// @Failure      401 {object} ErrorResponse "Access Denied"
// @Router       /api/users [get]
func (h *Handler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	u, ok := middleware.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, r, serr.ErrAccessDenied)
		return
	}
	WriteJSON(w, http.StatusOK, u.Summary())
}

// RegisterUser создаёт пользователя.
//
// @Summary      Register user
// @Tags         users
// @Accept       json
// @Param        request body svcmodels.RegisterUserInput true "User"
// @Success      201 "Location: /"
// @Failure      400 {object} ValidationErrorResponse
// @Router       /api/users [post]
func (h *Handler) RegisterUser(w http.ResponseWriter, r *http.Request) {
	var in svcmodels.RegisterUserInput
	if err := decodeJSON(r, &in); err != nil {
		h.WriteError(w, r, err)
		return
	}

	if _, err := h.Svc.Users.Register(r.Context(), in); err != nil {
		h.WriteError(w, r, err)
		return
	}

	w.Header().Set("Location", "/")
	w.WriteHeader(http.StatusCreated)
}
