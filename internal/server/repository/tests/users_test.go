package tests

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgconn"

	"github.com/IvanChernomyrdin/go-courses-api/internal/server/models"
	"github.com/IvanChernomyrdin/go-courses-api/internal/server/repository"
	serr "github.com/IvanChernomyrdin/go-courses-api/internal/shared/errors"
)

// Успех
func TestUsersRepository_Create_OK(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := repository.NewUsersRepository(db)
	now := time.Now()

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("Joe", "Smith", "joe@smith.com", "hash").
		WillReturnRows(
			sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(5), now, now),
		)

	u := &models.User{FirstName: "Joe", LastName: "Smith", EmailAddress: "joe@smith.com", PasswordHash: "hash"}
	got, err := repo.Create(context.Background(), u)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 5 || u.ID != 5 {
		t.Fatalf("expected id 5, got %v (user.ID=%v)", got, u.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

// Такой пользователь уже есть
func TestUsersRepository_Create_AlreadyExists(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := repository.NewUsersRepository(db)

	mock.ExpectQuery(`INSERT INTO users`).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err := repo.Create(context.Background(), &models.User{EmailAddress: "joe@smith.com"})
	if !errors.Is(err, serr.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

// Ошибка сервера
func TestUsersRepository_Create_InternalError(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := repository.NewUsersRepository(db)

	mock.ExpectQuery(`INSERT INTO users`).
		WillReturnError(sql.ErrConnDone)

	_, err := repo.Create(context.Background(), &models.User{})
	if !errors.Is(err, serr.ErrInternal) {
		t.Fatalf("expected ErrInternal, got %v", err)
	}
}

// поиск по email
func TestUsersRepository_GetByEmail_OK(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := repository.NewUsersRepository(db)
	now := time.Now()

	mock.ExpectQuery(`SELECT id, first_name, last_name, email_address, password`).
		WithArgs("joe@smith.com").
		WillReturnRows(
			sqlmock.NewRows([]string{"id", "first_name", "last_name", "email_address", "password", "created_at", "updated_at"}).
				AddRow(int64(1), "Joe", "Smith", "joe@smith.com", "hash", now, now),
		)

	u, err := repo.GetByEmail(context.Background(), "joe@smith.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.ID != 1 || u.PasswordHash != "hash" || u.FirstName != "Joe" {
		t.Fatalf("unexpected result: %+v", u)
	}
}

// не найден по email
func TestUsersRepository_GetByEmail_NotFound(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := repository.NewUsersRepository(db)

	mock.ExpectQuery(`SELECT id, first_name`).
		WithArgs("nobody@mail.com").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByEmail(context.Background(), "nobody@mail.com")
	if !errors.Is(err, serr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUsersRepository_ListIDs(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := repository.NewUsersRepository(db)

	mock.ExpectQuery(`SELECT id FROM users`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)).AddRow(int64(4)))

	ids, err := repo.ListIDs(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ids) != 2 || ids[0] != 1 || ids[1] != 4 {
		t.Fatalf("unexpected ids: %v", ids)
	}
}

// пустая таблица — пустой срез без ошибки
func TestUsersRepository_ListIDs_Empty(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := repository.NewUsersRepository(db)

	mock.ExpectQuery(`SELECT id FROM users`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	ids, err := repo.ListIDs(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ids) != 0 {
		t.Fatalf("expected no ids, got %v", ids)
	}
}
