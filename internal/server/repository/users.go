package repository

import (
	"context"
	"database/sql"

	"github.com/IvanChernomyrdin/go-courses-api/internal/server/models"
)

// UsersRepository хранит учётные записи пользователей (PostgreSQL).
type UsersRepository struct {
	db *sql.DB
}

func NewUsersRepository(db *sql.DB) *UsersRepository {
	return &UsersRepository{db: db}
}

// Create сохраняет пользователя и возвращает его id.
//
// Ошибки:
//   - ErrAlreadyExists — email уже занят
//   - ErrInternal — ошибка базы данных
func (r *UsersRepository) Create(ctx context.Context, u *models.User) (int64, error) {
	var id int64

	err := r.db.QueryRowContext(ctx,
		`INSERT INTO users (first_name, last_name, email_address, password)
		 VALUES ($1,$2,$3,$4)
		 RETURNING id, created_at, updated_at`,
		u.FirstName, u.LastName, u.EmailAddress, u.PasswordHash,
	).Scan(&id, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return 0, mapError(err)
	}

	u.ID = id
	return id, nil
}

// GetByEmail ищет пользователя по email. Нет пользователя — ErrNotFound.
func (r *UsersRepository) GetByEmail(ctx context.Context, email string) (models.User, error) {
	var u models.User

	err := r.db.QueryRowContext(ctx,
		`SELECT id, first_name, last_name, email_address, password, created_at, updated_at
		 FROM users WHERE email_address=$1`,
		email,
	).Scan(&u.ID, &u.FirstName, &u.LastName, &u.EmailAddress, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return models.User{}, mapError(err)
	}

	return u, nil
}

// ListIDs возвращает id всех пользователей. Используется генератором курсов.
func (r *UsersRepository) ListIDs(ctx context.Context) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id FROM users ORDER BY id`)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, mapError(err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}
	return ids, nil
}
