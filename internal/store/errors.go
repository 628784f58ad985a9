package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrAccountAlreadyExists is returned when an insert or an email change
	// collides with the unique email constraint.
	ErrAccountAlreadyExists = errors.New("account with this email already exists")

	// ErrNoAccountWasFound is returned when a query expected to match one
	// account produces an empty result set.
	ErrNoAccountWasFound = errors.New("no account was found")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a query against the
	// database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrTemporarilyUnavailable wraps failures the driver classifies as
	// [Transient]. The statement did not take effect.
	ErrTemporarilyUnavailable = errors.New("database temporarily unavailable")

	// ErrUnsupportedDriver is returned by NewStorages for an unknown
	// database driver name.
	ErrUnsupportedDriver = errors.New("unsupported database driver")

	// ErrNilDB is returned when a nil database handle is passed where a
	// connection is required.
	ErrNilDB = errors.New("db is nil")
)
