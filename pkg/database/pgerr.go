package database

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Unique-constraint names referenced by repositories when mapping
// 23505 violations to domain errors.
const (
	ConstraintUsersEmail         = "users_email_key"
	ConstraintSocietiesRegNumber = "societies_registration_number_key"
)

// IsUniqueViolation reports whether err is a PostgreSQL unique-constraint
// violation. When constraint is non-empty, the violated constraint must
// match it.
func IsUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23505" {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}
