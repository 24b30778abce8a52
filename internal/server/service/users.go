package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/IvanChernomyrdin/go-courses-api/internal/server/crypto"
	"github.com/IvanChernomyrdin/go-courses-api/internal/server/models"
	svcmodels "github.com/IvanChernomyrdin/go-courses-api/internal/server/service/models"
	serr "github.com/IvanChernomyrdin/go-courses-api/internal/shared/errors"
)

// ErrEmailTaken возвращается при регистрации на уже занятый email.
var ErrEmailTaken = serr.NewValidationError("The email you entered already exists")

// PasswordHasher хэширует пароль перед сохранением.
type PasswordHasher interface {
	Hash(password string) (string, error)
}

// UsersService реализует регистрацию и аутентификацию пользователей.
type UsersService struct {
	users  UsersRepo
	hasher PasswordHasher
}

func NewUsersService(users UsersRepo, hasher PasswordHasher) *UsersService {
	return &UsersService{users: users, hasher: hasher}
}

type registerFields struct {
	FirstName    string `json:"firstName" validate:"required"`
	LastName     string `json:"lastName" validate:"required"`
	EmailAddress string `json:"emailAddress" validate:"required,email"`
	Password     string `json:"password" validate:"required"`
}

// Register проверяет данные, хэширует пароль и сохраняет пользователя.
//
// Возвращает:
//   - id пользователя
//   - *serr.ValidationError при некорректных данных или занятом email
func (s *UsersService) Register(ctx context.Context, in svcmodels.RegisterUserInput) (int64, error) {
	fields := registerFields{
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		EmailAddress: strings.TrimSpace(in.EmailAddress),
		Password:     in.Password,
	}
	if err := validateStruct(fields); err != nil {
		return 0, err
	}

	hash, err := s.hasher.Hash(fields.Password)
	if err != nil {
		return 0, fmt.Errorf("%w: hash password: %v", serr.ErrInternal, err)
	}

	u := &models.User{
		FirstName:    fields.FirstName,
		LastName:     fields.LastName,
		EmailAddress: fields.EmailAddress,
		PasswordHash: hash,
	}
	id, err := s.users.Create(ctx, u)
	if err != nil {
		if errors.Is(err, serr.ErrAlreadyExists) {
			return 0, ErrEmailTaken
		}
		return 0, err
	}
	return id, nil
}

// Authenticate проверяет пару email/пароль.
//
// Неизвестный email и неверный пароль возвращают ErrInvalidCredentials,
// обёрнутую с причиной (для логов). Ошибки хранилища пробрасываются как есть.
func (s *UsersService) Authenticate(ctx context.Context, email, password string) (models.User, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			return models.User{}, fmt.Errorf("%w: user not found for email %q", serr.ErrInvalidCredentials, email)
		}
		return models.User{}, err
	}

	ok, err := crypto.VerifyPassword(password, u.PasswordHash)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: verify password for %q: %v", serr.ErrInvalidCredentials, email, err)
	}
	if !ok {
		return models.User{}, fmt.Errorf("%w: authentication failure for %q", serr.ErrInvalidCredentials, email)
	}
	return u, nil
}
