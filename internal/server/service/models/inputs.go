// Package models содержит входные и выходные структуры сервисного слоя.
package models

// CourseInput — тело запроса на создание или изменение курса.
//
// nil-поле означает «не передано»: при изменении такое поле сохраняет старое значение.
// UserID принимается, но игнорируется: владелец курса не меняется.
type CourseInput struct {
	Title           *string `json:"title"`
	Description     *string `json:"description"`
	EstimatedTime   *string `json:"estimatedTime"`
	MaterialsNeeded *string `json:"materialsNeeded"`
	ImageURL        *string `json:"imageUrl"`
	UserID          *int64  `json:"userId"`
}

// RegisterUserInput — тело запроса на регистрацию пользователя.
type RegisterUserInput struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	EmailAddress string `json:"emailAddress"`
	Password     string `json:"password"`
}

// UploadURL — ответ на запрос ссылки для загрузки изображения курса.
type UploadURL struct {
	UploadURL string `json:"uploadUrl"`
	FileURL   string `json:"fileUrl"`
}

// SleepResult — ответ диагностического эндпоинта /api/sleep.
type SleepResult struct {
	Message string `json:"message"`
}
