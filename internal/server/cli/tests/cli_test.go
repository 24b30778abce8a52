package tests

import (
	"bytes"
	"context"
	"database/sql"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/IvanChernomyrdin/go-courses-api/internal/server/cli"
	"github.com/IvanChernomyrdin/go-courses-api/internal/server/config"
	"github.com/IvanChernomyrdin/go-courses-api/internal/shared/logger"
)

// stubEnv подменяет загрузку конфига и подключение к базе на sqlmock
func stubEnv(t *testing.T) sqlmock.Sqlmock {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	origLoad, origOpen, origMigrate, origRead := cli.LoadConfig, cli.OpenDB, cli.RunMigrations, cli.ReadPassword
	t.Cleanup(func() {
		cli.LoadConfig, cli.OpenDB, cli.RunMigrations, cli.ReadPassword = origLoad, origOpen, origMigrate, origRead
	})

	logDir := t.TempDir()
	cli.LoadConfig = func(path string) (*config.Config, error) {
		cfg := &config.Config{}
		config.ApplyDefaults(cfg)
		cfg.Password.Hasher = "bcrypt"
		cfg.Password.Bcrypt.Cost = 4
		cfg.Log.Dir = logDir
		return cfg, nil
	}
	cli.OpenDB = func(ctx context.Context, cfg config.DBConfig) (*sql.DB, error) {
		return db, nil
	}
	return mock
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	cmd := cli.NewRootCmd("1.0.0", "2026-10-16")
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--env-file", "does-not-exist.env"}, args...))

	err := cmd.Execute()
	return out.String(), err
}

func TestVersionCmd(t *testing.T) {
	cmd := cli.NewVersionCmd("1.2.3", "2026-01-16")

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())
	require.Contains(t, out.String(), "version=1.2.3")
	require.Contains(t, out.String(), "build_date=2026-01-16")
}

// version работает без конфига
func TestRoot_VersionSkipsConfig(t *testing.T) {
	orig := cli.LoadConfig
	t.Cleanup(func() { cli.LoadConfig = orig })
	cli.LoadConfig = func(string) (*config.Config, error) {
		t.Fatal("config must not be loaded for version")
		return nil, nil
	}

	out, err := run(t, "", "version")
	require.NoError(t, err)
	require.Contains(t, out, "version=1.0.0")
}

func TestSeedCmd_OK(t *testing.T) {
	mock := stubEnv(t)

	mock.ExpectQuery(`SELECT id FROM users`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)).AddRow(int64(2)))
	mock.ExpectBegin()
	prep := mock.ExpectPrepare(`INSERT INTO courses`)
	for i := 0; i < 3; i++ {
		prep.ExpectExec().WillReturnResult(sqlmock.NewResult(0, 1))
	}
	mock.ExpectCommit()

	out, err := run(t, "", "seed", "--count", "3")
	require.NoError(t, err)
	require.Contains(t, out, "3 dummy courses inserted successfully!")
	require.NoError(t, mock.ExpectationsWereMet())
}

// без пользователей команда завершается ошибкой
func TestSeedCmd_NoUsers(t *testing.T) {
	mock := stubEnv(t)

	mock.ExpectQuery(`SELECT id FROM users`).WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := run(t, "", "seed")
	require.Error(t, err)
	require.Contains(t, err.Error(), "No users found")
}

func TestMigrateCmd(t *testing.T) {
	stubEnv(t)

	var gotPath string
	cli.RunMigrations = func(db *sql.DB, source string, log *logger.HTTPLogger) error {
		gotPath = source
		return nil
	}

	out, err := run(t, "", "migrate")
	require.NoError(t, err)
	require.Equal(t, "file://migrations/postgres", gotPath)
	require.Contains(t, out, "migrations applied")
}

func TestUserCreateCmd_PasswordFromStdin(t *testing.T) {
	mock := stubEnv(t)

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("Joe", "Smith", "joe@smith.com", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(9), time.Now(), time.Now()))

	out, err := run(t, "joepassword\n",
		"user", "create",
		"--email", "joe@smith.com",
		"--first-name", "Joe",
		"--last-name", "Smith",
		"--password-stdin",
	)
	require.NoError(t, err)
	require.Contains(t, out, "user 9 created")
}

func TestUserCreateCmd_Validation(t *testing.T) {
	stubEnv(t)
	cli.ReadPassword = func(*cobra.Command, bool) (string, error) { return "pw", nil }

	_, err := run(t, "", "user", "create", "--email", "not-an-email")
	require.Error(t, err)
	require.Contains(t, err.Error(), `Please provide a value for "firstName"`)
	require.Contains(t, err.Error(), "Please provide a valid email address")
}
