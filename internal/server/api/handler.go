// Package api реализует HTTP-слой сервера courses API.
//
// Пакет отвечает за:
//   - обработку входящих запросов и формирование ответов (JSON, статусы);
//   - маппинг доменных ошибок (service/repository) в HTTP-коды и сообщения;
//   - единый формат ответа с ошибкой.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/IvanChernomyrdin/go-courses-api/internal/server/service"
	"github.com/IvanChernomyrdin/go-courses-api/internal/shared/logger"
)

const (
	JsonContentType string = "application/json"
	ContentType     string = "Content-Type"
)

// Handler агрегирует зависимости HTTP-слоя и предоставляет методы-хендлеры.
//
// Handler содержит:
//   - Svc: сервисный слой (бизнес-логика);
//   - Log: логгер для записи событий и ошибок;
//   - GlobalErrorLogging: писать ли стек для 5xx ошибок.
type Handler struct {
	Svc                *service.Services
	Log                *logger.HTTPLogger
	GlobalErrorLogging bool
}

// NewHandler создаёт экземпляр Handler с переданными зависимостями.
func NewHandler(svc *service.Services, log *logger.HTTPLogger, globalErrorLogging bool) *Handler {
	if log == nil {
		log = logger.Nop()
	}
	return &Handler{
		Svc:                svc,
		Log:                log,
		GlobalErrorLogging: globalErrorLogging,
	}
}

// MessageResponse — ответ с одним сообщением.
type MessageResponse struct {
	Message string `json:"message"`
}

// WriteJSON пишет v как JSON с указанным статусом.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set(ContentType, JsonContentType)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Welcome — корневой маршрут.
//
// @Summary      Welcome message
// @Tags         root
// @Produce      json
// @Success      200 {object} MessageResponse
// @Router       / [get]
func (h *Handler) Welcome(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, MessageResponse{Message: "Welcome to the REST API project!"})
}
