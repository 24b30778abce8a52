package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/IvanChernomyrdin/go-courses-api/internal/server/crypto"
	"github.com/IvanChernomyrdin/go-courses-api/internal/server/repository"
	"github.com/IvanChernomyrdin/go-courses-api/internal/server/service"
	svcmodels "github.com/IvanChernomyrdin/go-courses-api/internal/server/service/models"
	serr "github.com/IvanChernomyrdin/go-courses-api/internal/shared/errors"
)

// NewUserCmd создаёт группу команд управления пользователями.
func NewUserCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Управление пользователями",
	}
	cmd.AddCommand(NewUserCreateCmd(app))
	return cmd
}

// NewUserCreateCmd создаёт пользователя напрямую в базе, минуя HTTP.
//
// Пароль читается из stdin (--password-stdin) или запрашивается без эха.
//
// Пример использования:
//
//	coursesapi user create --email joe@smith.com --first-name Joe --last-name Smith
func NewUserCreateCmd(app *App) *cobra.Command {
	var (
		in        svcmodels.RegisterUserInput
		fromStdin bool
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Создать пользователя",
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := ReadPassword(cmd, fromStdin)
			if err != nil {
				return err
			}
			in.Password = password

			db, err := OpenDB(cmd.Context(), app.Cfg.DB)
			if err != nil {
				return err
			}
			defer db.Close()

			p := app.Cfg.Password
			hasher := crypto.NewHasher(p.Hasher, crypto.Argon2Params{
				Time:      p.Argon2.Time,
				MemoryKiB: p.Argon2.MemoryKiB,
				Threads:   p.Argon2.Threads,
				KeyLen:    p.Argon2.KeyLen,
				SaltLen:   p.Argon2.SaltLen,
			}, p.Bcrypt.Cost)

			users := service.NewUsersService(repository.NewUsersRepository(db), hasher)

			id, err := users.Register(cmd.Context(), in)
			if err != nil {
				var vErr *serr.ValidationError
				if errors.As(err, &vErr) {
					return errors.New(strings.Join(vErr.Messages, "\n"))
				}
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "user %d created\n", id)
			return nil
		},
	}

	cmd.Flags().StringVar(&in.EmailAddress, "email", "", "email address")
	cmd.Flags().StringVar(&in.FirstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&in.LastName, "last-name", "", "last name")
	cmd.Flags().BoolVar(&fromStdin, "password-stdin", false, "read password from stdin")
	cmd.MarkFlagRequired("email")

	return cmd
}

func readPassword(cmd *cobra.Command, fromStdin bool) (string, error) {
	if fromStdin {
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read password from stdin: %w", err)
		}
		pw := bytes.TrimRight(b, "\r\n")
		if len(pw) == 0 {
			return "", errors.New("empty password on stdin")
		}
		return string(pw), nil
	}

	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", errors.New("stdin is not a terminal; use --password-stdin")
	}

	fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
	pwBytes, err := term.ReadPassword(fd)
	fmt.Fprintln(cmd.ErrOrStderr())
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}

	pw := strings.TrimSpace(string(pwBytes))
	if pw == "" {
		return "", errors.New("empty password")
	}
	return pw, nil
}
