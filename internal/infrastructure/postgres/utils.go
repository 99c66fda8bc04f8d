package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/Repuestos-api/internal/domain"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// isForeignKeyViolation detecta 23503 (la fila referenciada no existe).
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}

// isContention detecta esperas de bloqueo agotadas, conflictos de serialización,
// deadlocks y statement_timeout: el llamador puede reintentar la operación completa.
func isContention(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	switch pgErr.Code {
	case "55P03", // lock_not_available
		"40001", // serialization_failure
		"40P01", // deadlock_detected
		"57014": // query_canceled
		return true
	}
	return false
}

// mapContention traduce los errores de contención a domain.ErrContention sin perder el original.
func mapContention(err error) error {
	if err == nil || errors.Is(err, domain.ErrContention) || !isContention(err) {
		return err
	}
	return fmt.Errorf("%w: %w", domain.ErrContention, err)
}

// mapWriteError convierte las violaciones de integridad en errores de dominio.
func mapWriteError(op string, err error) error {
	switch {
	case isUniqueViolation(err):
		return fmt.Errorf("%s: %w", op, domain.ErrDuplicate)
	case isForeignKeyViolation(err):
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// validID evita enviar a la BD identificadores que no son UUID (22P02); se tratan como inexistentes.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
