package tests

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/IvanChernomyrdin/go-courses-api/internal/server/crypto"
	"github.com/IvanChernomyrdin/go-courses-api/internal/server/models"
	"github.com/IvanChernomyrdin/go-courses-api/internal/server/service"
	"github.com/IvanChernomyrdin/go-courses-api/internal/server/service/mocks"
	svcmodels "github.com/IvanChernomyrdin/go-courses-api/internal/server/service/models"
	serr "github.com/IvanChernomyrdin/go-courses-api/internal/shared/errors"
)

// создаём сервис с быстрым bcrypt
func newUsersService(t *testing.T) (*service.UsersService, *mocks.MockUsersRepo) {
	t.Helper()

	ctrl := gomock.NewController(t)
	users := mocks.NewMockUsersRepo(ctrl)

	svc := service.NewUsersService(users, crypto.NewHasher("bcrypt", crypto.Argon2Params{}, 4))
	return svc, users
}

func validInput() svcmodels.RegisterUserInput {
	return svcmodels.RegisterUserInput{
		FirstName:    "Joe",
		LastName:     "Smith",
		EmailAddress: "joe@smith.com",
		Password:     "joepassword",
	}
}

// Успех: пароль сохраняется хэшем
func TestUsersService_Register_OK(t *testing.T) {
	ctx := context.Background()
	svc, users := newUsersService(t)

	users.EXPECT().
		Create(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, u *models.User) (int64, error) {
			require.Equal(t, "joe@smith.com", u.EmailAddress)
			require.NotEqual(t, "joepassword", u.PasswordHash)

			ok, err := crypto.VerifyPassword("joepassword", u.PasswordHash)
			require.NoError(t, err)
			require.True(t, ok)
			return 3, nil
		})

	id, err := svc.Register(ctx, validInput())
	require.NoError(t, err)
	require.Equal(t, int64(3), id)
}

// пустое тело: по сообщению на каждое поле
func TestUsersService_Register_Validation(t *testing.T) {
	svc, _ := newUsersService(t)

	_, err := svc.Register(context.Background(), svcmodels.RegisterUserInput{})

	var vErr *serr.ValidationError
	require.True(t, errors.As(err, &vErr))
	require.Equal(t, []string{
		`Please provide a value for "firstName"`,
		`Please provide a value for "lastName"`,
		`Please provide a value for "emailAddress"`,
		`Please provide a value for "password"`,
	}, vErr.Messages)
	require.Equal(t, 400, serr.StatusOf(err))
}

func TestUsersService_Register_InvalidEmail(t *testing.T) {
	svc, _ := newUsersService(t)

	in := validInput()
	in.EmailAddress = "not-an-email"

	_, err := svc.Register(context.Background(), in)

	var vErr *serr.ValidationError
	require.True(t, errors.As(err, &vErr))
	require.Equal(t, []string{"Please provide a valid email address"}, vErr.Messages)
}

// email занят
func TestUsersService_Register_EmailTaken(t *testing.T) {
	ctx := context.Background()
	svc, users := newUsersService(t)

	users.EXPECT().Create(ctx, gomock.Any()).Return(int64(0), serr.ErrAlreadyExists)

	_, err := svc.Register(ctx, validInput())

	var vErr *serr.ValidationError
	require.True(t, errors.As(err, &vErr))
	require.Equal(t, []string{"The email you entered already exists"}, vErr.Messages)
}

func TestUsersService_Authenticate(t *testing.T) {
	ctx := context.Background()
	svc, users := newUsersService(t)

	hash, err := crypto.HashPasswordBcrypt("joepassword", 4)
	require.NoError(t, err)
	stored := models.User{ID: 1, EmailAddress: "joe@smith.com", PasswordHash: hash}

	t.Run("ok", func(t *testing.T) {
		users.EXPECT().GetByEmail(ctx, "joe@smith.com").Return(stored, nil)

		u, err := svc.Authenticate(ctx, "joe@smith.com", "joepassword")
		require.NoError(t, err)
		require.Equal(t, int64(1), u.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		users.EXPECT().GetByEmail(ctx, "joe@smith.com").Return(stored, nil)

		_, err := svc.Authenticate(ctx, "joe@smith.com", "wrong")
		require.ErrorIs(t, err, serr.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		users.EXPECT().GetByEmail(ctx, "nobody@mail.com").Return(models.User{}, serr.ErrNotFound)

		_, err := svc.Authenticate(ctx, "nobody@mail.com", "x")
		require.ErrorIs(t, err, serr.ErrInvalidCredentials)
	})

	t.Run("db error", func(t *testing.T) {
		users.EXPECT().GetByEmail(ctx, "joe@smith.com").Return(models.User{}, serr.ErrInternal)

		_, err := svc.Authenticate(ctx, "joe@smith.com", "joepassword")
		require.ErrorIs(t, err, serr.ErrInternal)
		require.NotErrorIs(t, err, serr.ErrInvalidCredentials)
	})
}
