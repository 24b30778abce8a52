// Package repository содержит реализации слоя доступа к данным (Repository layer).
//
// Репозитории инкапсулируют работу с БД и не содержат бизнес-логики.
// Все ошибки приводятся к доменным ошибкам из internal/shared/errors.
package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgconn"

	serr "github.com/IvanChernomyrdin/go-courses-api/internal/shared/errors"
)

// коды ошибок PostgreSQL, которые переводятся в доменные
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

// mapError переводит ошибку драйвера в доменную.
//
// Неизвестные ошибки оборачиваются в ErrInternal, исходная причина
// сохраняется в тексте для логов.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return serr.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return serr.ErrAlreadyExists
		case pgForeignKeyViolation, pgCheckViolation:
			return fmt.Errorf("%w: %s", serr.ErrInvalidInput, pgErr.ConstraintName)
		}
	}
	return fmt.Errorf("%w: %v", serr.ErrInternal, err)
}
