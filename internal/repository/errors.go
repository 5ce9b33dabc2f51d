package repository

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// IsNotFound - signals that the error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// IsDuplicate - signals that the error is a duplicate key violation.
func IsDuplicate(err error) bool {
	var pgerr *pgconn.PgError
	return errors.As(err, &pgerr) && pgerr.Code == "23505"
}

// IsTransient reports whether the error is worth retrying on the write path:
// connection failures and serialization/deadlock conflicts.
func IsTransient(err error) bool {
	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) {
		switch pgerr.Code {
		case "40001", "40P01": // serialization_failure, deadlock_detected
			return true
		}
		// class 08 - connection exceptions
		return len(pgerr.Code) >= 2 && pgerr.Code[:2] == "08"
	}
	return pgconn.SafeToRetry(err)
}
