package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/student-portal/internal/logger"
	"github.com/MKhiriev/student-portal/models"
)

// accountRepository is the database/sql implementation of [AccountRepository].
// The same code serves PostgreSQL and SQLite; dialect differences are
// confined to the [DB] it was built with.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type accountRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewAccountRepository constructs an [AccountRepository] backed by the
// provided database connection and logger.
func NewAccountRepository(db *DB, logger *logger.Logger) AccountRepository {
	logger.Debug().Msg("creating account repository")
	return &accountRepository{
		db:     db,
		logger: logger,
	}
}

// CreateAccount persists a new account and returns it as stored.
//
// The insert relies on the unique email constraint rather than a prior
// lookup, so two concurrent signups for the same email cannot both succeed:
// the loser gets [ErrAccountAlreadyExists].
func (r *accountRepository) CreateAccount(ctx context.Context, account models.Account) (models.Account, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createAccount,
		account.AccountID,
		account.Email,
		account.PasswordHash,
		account.Name,
		account.Phone,
		account.Age,
		account.Gender,
		account.Institution,
		account.Skills.OrEmpty(),
		account.Interests.OrEmpty(),
		account.CompletedCourses.OrEmpty(),
		account.CreatedAt,
		account.UpdatedAt,
	)

	created, err := scanAccount(row)
	if err != nil {
		log.Err(err).Str("func", "*accountRepository.CreateAccount").Msg("error inserting account")
		return models.Account{}, r.translate(err)
	}

	return created, nil
}

// FindAccountByEmail looks an account up by its normalized email.
// Returns [ErrNoAccountWasFound] when no account has that email.
func (r *accountRepository) FindAccountByEmail(ctx context.Context, email string) (models.Account, error) {
	log := logger.FromContext(ctx)

	account, err := scanAccount(r.db.QueryRowContext(ctx, findAccountByEmail, email))
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Err(err).Str("func", "*accountRepository.FindAccountByEmail").Msg("error selecting account")
		}
		return models.Account{}, r.translate(err)
	}

	return account, nil
}

// FindAccountByID looks an account up by its identifier.
// Returns [ErrNoAccountWasFound] when no account has that identifier.
func (r *accountRepository) FindAccountByID(ctx context.Context, accountID string) (models.Account, error) {
	log := logger.FromContext(ctx)

	account, err := scanAccount(r.db.QueryRowContext(ctx, findAccountByID, accountID))
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Err(err).Str("func", "*accountRepository.FindAccountByID").Msg("error selecting account")
		}
		return models.Account{}, r.translate(err)
	}

	return account, nil
}

// UpdateProfile applies the non-nil fields of update to the account and
// stamps updated_at. The updated row is returned.
//
// Changing the email to one already used by another account yields
// [ErrAccountAlreadyExists]; an unknown accountID yields [ErrNoAccountWasFound].
func (r *accountRepository) UpdateProfile(ctx context.Context, accountID string, update models.ProfileUpdate, updatedAt time.Time) (models.Account, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.buildUpdateQuery(accountID, update, updatedAt)
	if err != nil {
		log.Err(err).Str("func", "*accountRepository.UpdateProfile").Msg("error building update query")
		return models.Account{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	account, err := scanAccount(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Err(err).Str("func", "*accountRepository.UpdateProfile").Msg("error updating account")
		}
		return models.Account{}, r.translate(err)
	}

	return account, nil
}

// UpdatePasswordHash replaces the stored password hash of the account.
func (r *accountRepository) UpdatePasswordHash(ctx context.Context, accountID, passwordHash string, updatedAt time.Time) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, updatePasswordHash, passwordHash, updatedAt, accountID)
	if err != nil {
		log.Err(err).Str("func", "*accountRepository.UpdatePasswordHash").Msg("error updating password hash")
		return r.translate(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		log.Err(err).Str("func", "*accountRepository.UpdatePasswordHash").Msg("error reading affected rows")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		return ErrNoAccountWasFound
	}

	return nil
}

// buildUpdateQuery builds the partial UPDATE for a profile change. Only the
// columns whose field in update is non-nil are set.
func (r *accountRepository) buildUpdateQuery(accountID string, update models.ProfileUpdate, updatedAt time.Time) (string, []any, error) {
	qb := sq.Update(models.Account{}.TableName()).
		PlaceholderFormat(r.db.placeholder)

	if update.Name != nil {
		qb = qb.Set("name", *update.Name)
	}
	if update.Email != nil {
		qb = qb.Set("email", *update.Email)
	}
	if update.Phone != nil {
		qb = qb.Set("phone", *update.Phone)
	}
	if update.Age != nil {
		qb = qb.Set("age", int(*update.Age))
	}
	if update.Gender != nil {
		qb = qb.Set("gender", *update.Gender)
	}
	if update.Institution != nil {
		qb = qb.Set("institution", *update.Institution)
	}
	if update.Skills != nil {
		qb = qb.Set("skills", update.Skills.OrEmpty())
	}
	if update.Interests != nil {
		qb = qb.Set("interests", update.Interests.OrEmpty())
	}
	if update.CompletedCourses != nil {
		qb = qb.Set("completed_courses", update.CompletedCourses.OrEmpty())
	}

	return qb.
		Set("updated_at", updatedAt).
		Where(sq.Eq{"account_id": accountID}).
		Suffix("RETURNING " + accountColumns).
		ToSql()
}

// translate maps driver errors onto the package sentinel errors.
func (r *accountRepository) translate(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNoAccountWasFound
	}
	switch r.db.errorClassificator.Classify(err) {
	case UniqueConflict:
		return ErrAccountAlreadyExists
	case Transient:
		return fmt.Errorf("%w: %w", ErrTemporarilyUnavailable, err)
	default:
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (models.Account, error) {
	var a models.Account
	err := row.Scan(
		&a.AccountID,
		&a.Email,
		&a.PasswordHash,
		&a.Name,
		&a.Phone,
		&a.Age,
		&a.Gender,
		&a.Institution,
		&a.Skills,
		&a.Interests,
		&a.CompletedCourses,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return models.Account{}, err
	}

	return a, nil
}
