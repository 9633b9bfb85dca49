package repository

import (
	"errors"

	"github.com/lib/pq"

	"lodge/shared/constant"
)

// IsUniqueViolation reports whether err wraps a Postgres unique constraint violation.
func IsUniqueViolation(err error) bool {
	return isPqErrorCode(err, constant.PqErrorCodeUniqueViolation)
}

// IsForeignKeyViolation reports whether err wraps a Postgres foreign key violation.
func IsForeignKeyViolation(err error) bool {
	return isPqErrorCode(err, constant.PqErrorCodeFkViolation)
}

// IsCheckViolation reports whether err wraps a Postgres check constraint violation.
func IsCheckViolation(err error) bool {
	return isPqErrorCode(err, constant.PqErrorCodeCheckViolation)
}

func isPqErrorCode(err error, code string) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == code
	}

	return false
}
