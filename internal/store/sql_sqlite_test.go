package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MKhiriev/student-portal/internal/config"
	"github.com/MKhiriev/student-portal/internal/logger"
	"github.com/MKhiriev/student-portal/models"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLiteStorages(t *testing.T) *Storages {
	t.Helper()

	s, err := NewStorages(context.Background(), config.DB{Driver: DriverSQLite, DSN: ":memory:"}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	return s
}

func TestNewStorages_UnsupportedDriver(t *testing.T) {
	_, err := NewStorages(context.Background(), config.DB{Driver: "mysql", DSN: "x"}, logger.Nop())
	assert.ErrorIs(t, err, ErrUnsupportedDriver)
}

func TestSQLiteAccountRepository_Lifecycle(t *testing.T) {
	repo := newSQLiteStorages(t).AccountRepository
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	account := testAccount(now)
	created, err := repo.CreateAccount(ctx, account)
	require.NoError(t, err)
	assert.Equal(t, account.AccountID, created.AccountID)
	assert.Equal(t, account.Skills, created.Skills)
	assert.True(t, now.Equal(created.CreatedAt))

	byEmail, err := repo.FindAccountByEmail(ctx, account.Email)
	require.NoError(t, err)
	assert.Equal(t, account.AccountID, byEmail.AccountID)
	assert.Equal(t, account.PasswordHash, byEmail.PasswordHash)

	later := now.Add(time.Minute)
	age := models.Age(22)
	courses := models.StringList{"cs101", "cs102"}
	updated, err := repo.UpdateProfile(ctx, account.AccountID,
		models.ProfileUpdate{Age: &age, CompletedCourses: &courses}, later)
	require.NoError(t, err)
	assert.Equal(t, 22, updated.Age)
	assert.Equal(t, courses, updated.CompletedCourses)
	assert.Equal(t, account.Name, updated.Name)
	assert.True(t, later.Equal(updated.UpdatedAt))
	assert.True(t, now.Equal(updated.CreatedAt))

	require.NoError(t, repo.UpdatePasswordHash(ctx, account.AccountID, "other-hash", later))
	byID, err := repo.FindAccountByID(ctx, account.AccountID)
	require.NoError(t, err)
	assert.Equal(t, "other-hash", byID.PasswordHash)
}

func TestSQLiteAccountRepository_DuplicateEmail(t *testing.T) {
	repo := newSQLiteStorages(t).AccountRepository
	ctx := context.Background()
	now := time.Now().UTC()

	first := testAccount(now)
	_, err := repo.CreateAccount(ctx, first)
	require.NoError(t, err)

	second := testAccount(now)
	second.AccountID = "0190a0b0-0000-7000-8000-000000000002"
	_, err = repo.CreateAccount(ctx, second)
	assert.ErrorIs(t, err, ErrAccountAlreadyExists)

	second.Email = "grace@example.com"
	_, err = repo.CreateAccount(ctx, second)
	require.NoError(t, err)

	taken := first.Email
	_, err = repo.UpdateProfile(ctx, second.AccountID, models.ProfileUpdate{Email: &taken}, now)
	assert.ErrorIs(t, err, ErrAccountAlreadyExists)
}

func TestSQLiteAccountRepository_NotFound(t *testing.T) {
	repo := newSQLiteStorages(t).AccountRepository
	ctx := context.Background()
	name := "x"

	_, err := repo.FindAccountByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, ErrNoAccountWasFound)

	_, err = repo.FindAccountByID(ctx, "nobody")
	assert.ErrorIs(t, err, ErrNoAccountWasFound)

	_, err = repo.UpdateProfile(ctx, "nobody", models.ProfileUpdate{Name: &name}, time.Now())
	assert.ErrorIs(t, err, ErrNoAccountWasFound)

	err = repo.UpdatePasswordHash(ctx, "nobody", "h", time.Now())
	assert.ErrorIs(t, err, ErrNoAccountWasFound)
}

func TestSQLiteErrorClassifier_Classify(t *testing.T) {
	c := NewSQLiteErrorClassifier()

	assert.Equal(t, UniqueConflict, c.Classify(sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique}))
	assert.Equal(t, UniqueConflict, c.Classify(sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintPrimaryKey}))
	assert.Equal(t, Unclassified, c.Classify(sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintNotNull}))
	assert.Equal(t, Transient, c.Classify(sqlite3.Error{Code: sqlite3.ErrBusy}))
	assert.Equal(t, Transient, c.Classify(sqlite3.Error{Code: sqlite3.ErrLocked}))
	assert.Equal(t, Unclassified, c.Classify(errors.New("boom")))
	assert.Equal(t, Unclassified, c.Classify(nil))
}
