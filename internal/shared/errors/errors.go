// Package errors содержит общие доменные ошибки приложения
// и утилиты для error wrapping.
//
// Эти ошибки используются в service и repository слоях
// и маппятся на HTTP-статусы в api слое через StatusOf.
package errors

import (
	"errors"
	"net/http"
	"strings"
)

var (
	// Входные данные невалидны (пустые поля, неправильный формат и т.п.)
	ErrInvalidInput = errors.New("invalid input")
	// Неверные учётные данные
	ErrInvalidCredentials = errors.New("invalid credentials")
	// Получена непредвиденная ошибка
	ErrInternal = errors.New("internal error")
	// Полученные JSON данные с ошибками
	ErrBadJSON = errors.New("bad json")
	// Неавторизован
	ErrUnauthorized = errors.New("unauthorized")
	// Нет прав на ресурс (например курс принадлежит другому пользователю)
	ErrForbidden = errors.New("forbidden")
	// Ресурс уже существует (например email уже занят)
	ErrAlreadyExists = errors.New("already exists")
	// Ресурс не найден
	ErrNotFound = errors.New("not found")
	// конфликт (к примеру нарушение внешнего ключа)
	ErrConflict = errors.New("conflict")
	// ожидаемая ошибка
	ErrExpectedError = errors.New("expected error")
)

// только для курсов и диагностики
var (
	ErrCourseNotFound = &HTTPError{Status: http.StatusNotFound, Message: "Course not found", Kind: ErrNotFound}
	ErrNotCourseOwner = &HTTPError{Status: http.StatusForbidden, Message: "You are not authorized to change this course.", Kind: ErrForbidden}
	ErrAccessDenied   = &HTTPError{Status: http.StatusUnauthorized, Message: "Access Denied", Kind: ErrUnauthorized}
	ErrRouteNotFound  = &HTTPError{Status: http.StatusNotFound, Message: "Route Not Found", Kind: ErrNotFound}
	ErrNoUsers        = &HTTPError{Status: http.StatusConflict, Message: "No users found. Please create users before adding courses.", Kind: ErrConflict}
)

// HTTPError — ошибка с заранее известным HTTP-статусом и сообщением для клиента.
//
// Kind позволяет сопоставлять ошибку с сентинелами через errors.Is:
//
//	errors.Is(ErrCourseNotFound, ErrNotFound) == true
type HTTPError struct {
	Status  int
	Message string
	Kind    error
}

// NewHTTPError создаёт HTTPError без привязки к сентинелу.
func NewHTTPError(status int, message string) *HTTPError {
	return &HTTPError{Status: status, Message: message}
}

func (e *HTTPError) Error() string { return e.Message }

func (e *HTTPError) Unwrap() error { return e.Kind }

// ValidationError — набор нарушенных правил валидации, по одному сообщению на правило.
type ValidationError struct {
	Messages []string
}

// NewValidationError создаёт ValidationError из списка сообщений.
func NewValidationError(messages ...string) *ValidationError {
	return &ValidationError{Messages: messages}
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Messages, "; ")
}

// Is позволяет проверять ValidationError как ErrInvalidInput.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// StatusOf возвращает HTTP-статус для ошибки.
//
// HTTPError отдаёт свой статус, сентинелы маппятся по таблице,
// всё остальное считается внутренней ошибкой (500).
func StatusOf(err error) int {
	if err == nil {
		return http.StatusOK
	}

	var httpErr *HTTPError
	if errors.As(err, &httpErr) && httpErr.Status != 0 {
		return httpErr.Status
	}

	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return http.StatusBadRequest
	}

	switch {
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrBadJSON):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized), errors.Is(err, ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrAlreadyExists), errors.Is(err, ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage возвращает сообщение, которое безопасно показать клиенту.
//
// Для 5xx и неизвестных ошибок детали не раскрываются.
func PublicMessage(err error) string {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Message
	}
	if StatusOf(err) >= http.StatusInternalServerError {
		return ErrInternal.Error()
	}
	return err.Error()
}
