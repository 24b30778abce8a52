package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/IvanChernomyrdin/go-courses-api/internal/server/middleware"
	serr "github.com/IvanChernomyrdin/go-courses-api/internal/shared/errors"
)

// ErrorResponse стандартный формат ошибки API.
type ErrorResponse struct {
	Message string   `json:"message"`
	Error   struct{} `json:"error"`
}

// ValidationErrorResponse — ответ 400 с нарушенными правилами валидации.
type ValidationErrorResponse struct {
	Errors []string `json:"errors"`
}

// ErrBodyTooLarge — тело запроса больше server.max_body_bytes.
var ErrBodyTooLarge = &serr.HTTPError{Status: http.StatusRequestEntityTooLarge, Message: "Request body too large", Kind: serr.ErrInvalidInput}

// WriteError отдаёт ошибку клиенту.
//
// *serr.ValidationError превращается в {"errors":[...]}, всё остальное —
// в {"message": ..., "error": {}} со статусом из serr.StatusOf.
// Для 5xx клиент видит только общее сообщение, причина уходит в лог.
func (h *Handler) WriteError(w http.ResponseWriter, r *http.Request, err error) {
	// клиент ушёл, отвечать некому
	if errors.Is(err, context.Canceled) {
		h.Log.Info("request cancelled by client",
			zap.String("uri", r.RequestURI),
			zap.String("request_id", middleware.RequestIDFromContext(r.Context())),
		)
		return
	}

	var vErr *serr.ValidationError
	if errors.As(err, &vErr) {
		WriteJSON(w, http.StatusBadRequest, ValidationErrorResponse{Errors: vErr.Messages})
		return
	}

	status := serr.StatusOf(err)
	if status >= http.StatusInternalServerError {
		fields := []zap.Field{
			zap.Error(err),
			zap.String("method", r.Method),
			zap.String("uri", r.RequestURI),
			zap.String("request_id", middleware.RequestIDFromContext(r.Context())),
		}
		if h.GlobalErrorLogging {
			fields = append(fields, zap.Stack("stack"))
		}
		h.Log.Error("global error handler", fields...)
	}

	WriteJSON(w, status, ErrorResponse{Message: serr.PublicMessage(err)})
}

// NotFound — ответ для неизвестных маршрутов.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusNotFound, MessageResponse{Message: serr.ErrRouteNotFound.Message})
}

// MethodNotAllowed — маршрут есть, но метод не поддерживается.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	h.WriteError(w, r, serr.NewHTTPError(http.StatusMethodNotAllowed, "Method Not Allowed"))
}

// decodeJSON читает тело запроса в v.
func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return ErrBodyTooLarge
		}
		return fmt.Errorf("%w: %v", serr.ErrBadJSON, err)
	}
	return nil
}

// currentUserID возвращает id пользователя, прошедшего BasicAuth.
func currentUserID(r *http.Request) (int64, error) {
	u, ok := middleware.UserFromContext(r.Context())
	if !ok {
		return 0, serr.ErrAccessDenied
	}
	return u.ID, nil
}
