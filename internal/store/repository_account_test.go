package store

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/student-portal/internal/logger"
	"github.com/MKhiriev/student-portal/models"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var accountColumnNames = []string{
	"account_id", "email", "password_hash", "name", "phone", "age", "gender", "institution",
	"skills", "interests", "completed_courses", "created_at", "updated_at",
}

func newTestAccountRepo(t *testing.T) (*accountRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	l := logger.Nop()
	repo := &accountRepository{
		db: &DB{
			DB:                 db,
			driver:             DriverPostgres,
			placeholder:        sq.Dollar,
			errorClassificator: NewPostgresErrorClassifier(),
			logger:             l,
		},
		logger: l,
	}
	return repo, mock
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

func testAccount(now time.Time) models.Account {
	return models.Account{
		AccountID:        "0190a0b0-0000-7000-8000-000000000001",
		Email:            "ada@example.com",
		PasswordHash:     "$2a$10$hash",
		Name:             "Ada",
		Phone:            "+100",
		Age:              21,
		Gender:           "female",
		Institution:      "MIT",
		Skills:           models.StringList{"go"},
		Interests:        models.StringList{},
		CompletedCourses: models.StringList{"cs101"},
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

func accountRow(a models.Account) *sqlmock.Rows {
	skills, _ := a.Skills.Value()
	interests, _ := a.Interests.Value()
	courses, _ := a.CompletedCourses.Value()

	return sqlmock.NewRows(accountColumnNames).AddRow(
		a.AccountID, a.Email, a.PasswordHash, a.Name, a.Phone, a.Age, a.Gender, a.Institution,
		skills, interests, courses, a.CreatedAt, a.UpdatedAt,
	)
}

func TestCreateAccount_Success(t *testing.T) {
	repo, mock := newTestAccountRepo(t)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	account := testAccount(now)

	mock.ExpectQuery("INSERT INTO accounts").
		WithArgs(account.AccountID, account.Email, account.PasswordHash, account.Name, account.Phone,
			account.Age, account.Gender, account.Institution,
			[]byte(`["go"]`), []byte(`[]`), []byte(`["cs101"]`), now, now).
		WillReturnRows(accountRow(account))

	created, err := repo.CreateAccount(context.Background(), account)
	require.NoError(t, err)
	assert.Equal(t, account, created)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateAccount_NilListsStoredAsEmpty(t *testing.T) {
	repo, mock := newTestAccountRepo(t)
	now := time.Now().UTC()
	account := testAccount(now)
	account.Skills, account.Interests, account.CompletedCourses = nil, nil, nil

	args := make([]driver.Value, 0, 13)
	for range 8 {
		args = append(args, sqlmock.AnyArg())
	}
	args = append(args, []byte(`[]`), []byte(`[]`), []byte(`[]`), sqlmock.AnyArg(), sqlmock.AnyArg())

	mock.ExpectQuery("INSERT INTO accounts").
		WithArgs(args...).
		WillReturnRows(accountRow(account))

	created, err := repo.CreateAccount(context.Background(), account)
	require.NoError(t, err)
	assert.NotNil(t, created.Skills)
	assert.Empty(t, created.Skills)
}

func TestCreateAccount_UniqueViolation(t *testing.T) {
	repo, mock := newTestAccountRepo(t)

	mock.ExpectQuery("INSERT INTO accounts").
		WillReturnError(pgError(pgerrcode.UniqueViolation))

	_, err := repo.CreateAccount(context.Background(), testAccount(time.Now()))
	assert.ErrorIs(t, err, ErrAccountAlreadyExists)
}

func TestCreateAccount_DBError(t *testing.T) {
	repo, mock := newTestAccountRepo(t)

	mock.ExpectQuery("INSERT INTO accounts").
		WillReturnError(errors.New("connection reset"))

	_, err := repo.CreateAccount(context.Background(), testAccount(time.Now()))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExecutingQuery)
	assert.NotErrorIs(t, err, ErrAccountAlreadyExists)
}

func TestFindAccountByID_TransientFailure(t *testing.T) {
	repo, mock := newTestAccountRepo(t)

	mock.ExpectQuery("SELECT .* FROM accounts").
		WillReturnError(pgError(pgerrcode.SerializationFailure))

	_, err := repo.FindAccountByID(context.Background(), "acc-1")
	assert.ErrorIs(t, err, ErrTemporarilyUnavailable)
	assert.NotErrorIs(t, err, ErrExecutingQuery)
}

func TestFindAccountByEmail(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	account := testAccount(now)

	tests := []struct {
		name    string
		setup   func(mock sqlmock.Sqlmock)
		want    models.Account
		wantErr error
	}{
		{
			name: "found",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT (.+) FROM accounts WHERE email = ").
					WithArgs(account.Email).
					WillReturnRows(accountRow(account))
			},
			want: account,
		},
		{
			name: "not found",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT (.+) FROM accounts WHERE email = ").
					WithArgs(account.Email).
					WillReturnError(sql.ErrNoRows)
			},
			wantErr: ErrNoAccountWasFound,
		},
		{
			name: "empty result set",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT (.+) FROM accounts WHERE email = ").
					WithArgs(account.Email).
					WillReturnRows(sqlmock.NewRows(accountColumnNames))
			},
			wantErr: ErrNoAccountWasFound,
		},
		{
			name: "db failure",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT (.+) FROM accounts WHERE email = ").
					WithArgs(account.Email).
					WillReturnError(pgError(pgerrcode.UndefinedTable))
			},
			wantErr: ErrExecutingQuery,
		},
		{
			name: "connection lost",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT (.+) FROM accounts WHERE email = ").
					WithArgs(account.Email).
					WillReturnError(pgError(pgerrcode.ConnectionFailure))
			},
			wantErr: ErrTemporarilyUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newTestAccountRepo(t)
			tt.setup(mock)

			got, err := repo.FindAccountByEmail(context.Background(), account.Email)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFindAccountByID_NotFound(t *testing.T) {
	repo, mock := newTestAccountRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM accounts WHERE account_id = ").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(accountColumnNames))

	_, err := repo.FindAccountByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNoAccountWasFound)
}

func TestFindAccountByID_BadListColumn(t *testing.T) {
	repo, mock := newTestAccountRepo(t)
	now := time.Now().UTC()

	mock.ExpectQuery("SELECT (.+) FROM accounts WHERE account_id = ").
		WithArgs("id").
		WillReturnRows(sqlmock.NewRows(accountColumnNames).AddRow(
			"id", "a@b.c", "h", "", "", 0, "", "", []byte(`{not json`), []byte(`[]`), []byte(`[]`), now, now))

	_, err := repo.FindAccountByID(context.Background(), "id")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoAccountWasFound)
}

func TestUpdateProfile_OnlySetFieldsAreWritten(t *testing.T) {
	repo, mock := newTestAccountRepo(t)
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	account := testAccount(now)
	name := "Ada L."
	account.Name = name

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE accounts SET name = $1, updated_at = $2 WHERE account_id = $3 RETURNING")).
		WithArgs(name, now, account.AccountID).
		WillReturnRows(accountRow(account))

	got, err := repo.UpdateProfile(context.Background(), account.AccountID, models.ProfileUpdate{Name: &name}, now)
	require.NoError(t, err)
	assert.Equal(t, name, got.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateProfile_Lists(t *testing.T) {
	repo, mock := newTestAccountRepo(t)
	now := time.Now().UTC()
	account := testAccount(now)
	skills := models.StringList{"go", "sql"}
	var interests models.StringList

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE accounts SET skills = $1, interests = $2, updated_at = $3 WHERE account_id = $4")).
		WithArgs([]byte(`["go","sql"]`), []byte(`[]`), now, account.AccountID).
		WillReturnRows(accountRow(account))

	_, err := repo.UpdateProfile(context.Background(), account.AccountID,
		models.ProfileUpdate{Skills: &skills, Interests: &interests}, now)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateProfile_EmailTaken(t *testing.T) {
	repo, mock := newTestAccountRepo(t)
	email := "taken@example.com"

	mock.ExpectQuery("UPDATE accounts SET email").
		WillReturnError(pgError(pgerrcode.UniqueViolation))

	_, err := repo.UpdateProfile(context.Background(), "id", models.ProfileUpdate{Email: &email}, time.Now())
	assert.ErrorIs(t, err, ErrAccountAlreadyExists)
}

func TestUpdateProfile_UnknownAccount(t *testing.T) {
	repo, mock := newTestAccountRepo(t)
	phone := "+1"

	mock.ExpectQuery("UPDATE accounts SET phone").
		WillReturnRows(sqlmock.NewRows(accountColumnNames))

	_, err := repo.UpdateProfile(context.Background(), "missing", models.ProfileUpdate{Phone: &phone}, time.Now())
	assert.ErrorIs(t, err, ErrNoAccountWasFound)
}

func TestUpdatePasswordHash(t *testing.T) {
	now := time.Now().UTC()

	tests := []struct {
		name    string
		result  func(e *sqlmock.ExpectedExec)
		wantErr error
	}{
		{
			name:   "updated",
			result: func(e *sqlmock.ExpectedExec) { e.WillReturnResult(sqlmock.NewResult(0, 1)) },
		},
		{
			name:    "unknown account",
			result:  func(e *sqlmock.ExpectedExec) { e.WillReturnResult(sqlmock.NewResult(0, 0)) },
			wantErr: ErrNoAccountWasFound,
		},
		{
			name:    "db failure",
			result:  func(e *sqlmock.ExpectedExec) { e.WillReturnError(errors.New("boom")) },
			wantErr: ErrExecutingQuery,
		},
		{
			name:    "rows affected failure",
			result:  func(e *sqlmock.ExpectedExec) { e.WillReturnResult(sqlmock.NewErrorResult(errors.New("boom"))) },
			wantErr: ErrExecutingQuery,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newTestAccountRepo(t)
			tt.result(mock.ExpectExec("UPDATE accounts SET password_hash").WithArgs("new-hash", now, "id"))

			err := repo.UpdatePasswordHash(context.Background(), "id", "new-hash", now)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}
