package models

import "time"

// Course — курс, принадлежащий пользователю UserID.
type Course struct {
	ID              int64     `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	EstimatedTime   *string   `json:"estimatedTime"`
	MaterialsNeeded *string   `json:"materialsNeeded"`
	ImageURL        *string   `json:"imageUrl"`
	UserID          int64     `json:"userId"`
	CreatedAt       time.Time `json:"-"`
	UpdatedAt       time.Time `json:"-"`
}

// CourseWithOwner — курс вместе с кратким описанием владельца.
//
// Используется в:
//
//	GET /api/courses
//	GET /api/courses/{id}
type CourseWithOwner struct {
	Course
	User UserSummary `json:"User"`
}

// IsOwnedBy сообщает, принадлежит ли курс пользователю userID.
func (c Course) IsOwnedBy(userID int64) bool {
	return c.UserID == userID
}
