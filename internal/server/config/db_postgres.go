// Package config содержит инициализацию подключения к базе данных сервера.
//
// Пакет выполняет:
//   - открытие соединения с PostgreSQL (через драйвер pgx);
//   - проверку доступности базы (Ping);
//   - запуск миграций (golang-migrate) при старте сервера.
//
// Подключение не хранится в глобальной переменной: OpenDB возвращает *sql.DB,
// которым владеет вызывающий код (команды serve/seed/migrate).
package config

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"

	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v4/stdlib"

	"github.com/IvanChernomyrdin/go-courses-api/internal/shared/logger"
)

// OpenDB открывает подключение к базе данных по DSN, настраивает пул
// и проверяет доступность базы.
func OpenDB(ctx context.Context, cfg DBConfig) (*sql.DB, error) {
	db, err := sql.Open("pgx", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	return db, nil
}

// Migrate применяет миграции из каталога source (например file://migrations/postgres).
//
// Если миграции уже применены, ошибка migrate.ErrNoChange не считается ошибкой.
func Migrate(db *sql.DB, source string, log *logger.HTTPLogger) error {
	sugar := log.Sugar()

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		sugar.Errorf("error creating migration driver: %v", err)
		return err
	}

	// создаём миграции с выбранным драйвером
	m, err := migrate.NewWithDatabaseInstance(source, "postgres", driver)
	if err != nil {
		sugar.Errorf("error creating migrations: %v", err)
		return err
	}

	err = m.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		sugar.Errorf("error applying migrations: %v", err)
		return err
	}

	sugar.Info("migrations applied successfully")
	return nil
}
