package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/orders-api/internal/domain"
)

// dataAccessErr envuelve err como domain.ErrDataAccess conservando la causa.
// Si es un error de PostgreSQL se agrega el SQLSTATE para el log.
func dataAccessErr(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return fmt.Errorf("%w: %s [%s]: %w", domain.ErrDataAccess, op, pgErr.Code, err)
	}
	return fmt.Errorf("%w: %s: %w", domain.ErrDataAccess, op, err)
}

// isUndefinedColumn verifica si un error es una columna inexistente (42703).
func isUndefinedColumn(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "42703"
}
