// internal/adapter/storage/errors.go

package storage

import (
	"errors"
	"strings"

	"github.com/jackc/pgconn"
)

// isUniqueViolation reports whether err is a unique-key conflict from either backend
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
