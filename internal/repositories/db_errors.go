package repositories

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// isUniqueViolation checks if the error corresponds to a Postgres unique
// constraint failure. This drives the single slug-collision retry on insert
// instead of surfacing a generic 500 error.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
