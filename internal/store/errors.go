package store

import (
	"errors"
	"fmt"
	"strings"

	gomysql "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ErrUniquenessConflict is returned when a write collides with a unique
// constraint or a concurrent transaction. The operation can be retried.
var ErrUniquenessConflict = errors.New("uniqueness conflict")

const (
	pgUniqueViolation      = "23505"
	pgSerializationFailure = "40001"
	mysqlDuplicateEntry    = 1062
	mysqlDeadlock          = 1213
)

// classify maps driver-level unique violations and serialization failures
// onto ErrUniquenessConflict. Other errors pass through unchanged.
func classify(err error) error {
	if err == nil || errors.Is(err, ErrUniquenessConflict) {
		return err
	}
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %v", ErrUniquenessConflict, err)
	}
	return err
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation || pgErr.Code == pgSerializationFailure
	}

	var myErr *gomysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == mysqlDuplicateEntry || myErr.Number == mysqlDeadlock
	}

	// sqlite reports constraint failures as plain text
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
