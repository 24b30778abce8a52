// Package cli реализует командный интерфейс серверного приложения coursesapi.
//
// Пакет отвечает за:
//   - загрузку .env и конфигурации сервера;
//   - запуск HTTP-сервера с graceful shutdown (команда serve, она же по умолчанию);
//   - служебные команды: migrate, seed, user create, version.
//
// Точка входа пакета — функция Execute.
package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/IvanChernomyrdin/go-courses-api/internal/server/config"
	"github.com/IvanChernomyrdin/go-courses-api/internal/shared/logger"
)

// App содержит состояние CLI-приложения, разделяемое между командами.
type App struct {
	// ConfigPath — путь к yaml-конфигу сервера.
	ConfigPath string
	// EnvFile — файл с переменными окружения (.env), может отсутствовать.
	EnvFile string

	// Cfg и Log заполняются в PersistentPreRunE.
	Cfg *config.Config
	Log *logger.HTTPLogger
}

// NewRootCmd создаёт root-команду CLI и регистрирует подкоманды.
//
// Без подкоманды запускается HTTP-сервер.
func NewRootCmd(buildVersion, buildDate string) *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:   "coursesapi",
		Short: "Courses REST API: сервер курсов и пользователей",
		Long: `Courses REST API.

Команды:
  serve        Запустить HTTP-сервер (по умолчанию)
  migrate      Применить миграции базы данных
  seed         Добавить фейковые курсы существующим пользователям
  user create  Создать пользователя
  version      Версия и дата сборки

Примеры:
  coursesapi --config ./configs/server.yaml
  coursesapi seed --count 1000
  echo secret | coursesapi user create --email joe@smith.com --first-name Joe --last-name Smith --password-stdin
`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// version не должна требовать конфиг и базу
			if cmd.Name() == "version" {
				return nil
			}
			return app.load()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), app, cmd.OutOrStdout())
		},
	}

	cmd.SetOut(os.Stdout)
	cmd.SetErr(os.Stderr)

	cmd.PersistentFlags().StringVar(&app.ConfigPath, "config", "./configs/server.yaml", "path to server config")
	cmd.PersistentFlags().StringVar(&app.EnvFile, "env-file", ".env", "path to .env file")

	cmd.AddCommand(NewServeCmd(app))
	cmd.AddCommand(NewMigrateCmd(app))
	cmd.AddCommand(NewSeedCmd(app))
	cmd.AddCommand(NewUserCmd(app))
	cmd.AddCommand(NewVersionCmd(buildVersion, buildDate))

	return cmd
}

// load загружает .env, конфиг и создаёт логгер.
func (app *App) load() error {
	envErr := godotenv.Load(app.EnvFile)

	cfg, err := LoadConfig(app.ConfigPath)
	if err != nil {
		return err
	}
	app.Cfg = cfg
	app.Log = logger.New(logger.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Dir:    cfg.Log.Dir,
		Stderr: cfg.Log.Stderr,
	})

	if envErr != nil {
		app.Log.Sugar().Debugf("no .env file loaded: %v", envErr)
	}
	return nil
}

// Execute запускает обработку CLI-команд.
//
// При ошибке выполнения команды сообщение выводится в stderr, после чего процесс
// завершается с кодом 1 (os.Exit(1)).
func Execute(buildVersion, buildDate string) {
	if err := NewRootCmd(buildVersion, buildDate).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
