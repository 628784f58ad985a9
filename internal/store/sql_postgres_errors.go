package store

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrorClassification is what a repository needs to know about a failed
// statement: whether it hit the email uniqueness constraint, whether the
// database was only briefly unavailable, or neither.
type ErrorClassification int

const (
	Unclassified ErrorClassification = iota

	// Transient failures (lost connection, deadlock, serialization
	// conflict, server starting up) may succeed on a later request.
	Transient

	// UniqueConflict means a unique constraint rejected the write.
	UniqueConflict
)

// PostgresErrorClassifier implements [ErrorClassificator] for errors
// returned through the pgx driver.
type PostgresErrorClassifier struct{}

func NewPostgresErrorClassifier() *PostgresErrorClassifier {
	return &PostgresErrorClassifier{}
}

// Classify implements [ErrorClassificator]. Errors that do not wrap a
// *pgconn.PgError are [Unclassified].
func (c *PostgresErrorClassifier) Classify(err error) ErrorClassification {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return Unclassified
	}

	return classifyPgCode(pgErr.Code)
}

// classifyPgCode maps SQLSTATE codes, see
// https://www.postgresql.org/docs/current/errcodes-appendix.html.
func classifyPgCode(code string) ErrorClassification {
	switch code {
	case pgerrcode.UniqueViolation:
		return UniqueConflict

	case pgerrcode.ConnectionException,
		pgerrcode.ConnectionDoesNotExist,
		pgerrcode.ConnectionFailure,
		pgerrcode.TransactionRollback,
		pgerrcode.SerializationFailure,
		pgerrcode.DeadlockDetected,
		pgerrcode.CannotConnectNow:
		return Transient
	}

	return Unclassified
}
