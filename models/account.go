package models

import (
	"strings"
	"time"
)

// Account is the durable identity record of a portal member.
//
// PasswordHash only ever holds the output of the password hasher; it is
// excluded from JSON and from [AccountView], so handlers that serialize an
// Account by mistake still do not leak it.
type Account struct {
	// AccountID is the opaque identifier assigned at signup. Immutable.
	AccountID string

	// Email is the public identifier of the account. It is unique across
	// all accounts and always stored in its normalized form (see NormalizeEmail).
	Email string

	// PasswordHash is the salted one-way hash of the account secret.
	PasswordHash string `json:"-"`

	Name        string
	Phone       string
	Age         int
	Gender      string
	Institution string

	// Skills, Interests and CompletedCourses feed the recommendation engine.
	// They are never nil once the account has been persisted.
	Skills           StringList
	Interests        StringList
	CompletedCourses StringList

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the name of the database table
// associated with the Account model.
func (a Account) TableName() string {
	return "accounts"
}

// View returns the redacted representation of the account: every field
// except the password hash.
func (a Account) View() AccountView {
	return AccountView{
		AccountID:        a.AccountID,
		Email:            a.Email,
		Name:             a.Name,
		Phone:            a.Phone,
		Age:              a.Age,
		Gender:           a.Gender,
		Institution:      a.Institution,
		Skills:           a.Skills.OrEmpty(),
		Interests:        a.Interests.OrEmpty(),
		CompletedCourses: a.CompletedCourses.OrEmpty(),
		CreatedAt:        a.CreatedAt,
		UpdatedAt:        a.UpdatedAt,
	}
}

// AccountView is the redacted account representation returned to clients
// and handed to collaborators that only need non-secret profile fields.
type AccountView struct {
	AccountID        string     `json:"_id"`
	Name             string     `json:"name"`
	Email            string     `json:"email"`
	Phone            string     `json:"phone"`
	Age              int        `json:"age"`
	Gender           string     `json:"gender"`
	Institution      string     `json:"institution"`
	Skills           StringList `json:"skills"`
	Interests        StringList `json:"interests"`
	CompletedCourses StringList `json:"completedCourses"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

// ProfileUpdate represents a partial update of the non-secret profile
// fields of an account. Only non-nil fields are updated; the account
// identifier and the password hash can't be changed through it.
type ProfileUpdate struct {
	Name             *string     `json:"name,omitempty"`
	Email            *string     `json:"email,omitempty"`
	Phone            *string     `json:"phone,omitempty"`
	Age              *Age        `json:"age,omitempty"`
	Gender           *string     `json:"gender,omitempty"`
	Institution      *string     `json:"institution,omitempty"`
	Skills           *StringList `json:"skills,omitempty"`
	Interests        *StringList `json:"interests,omitempty"`
	CompletedCourses *StringList `json:"completedCourses,omitempty"`
}

// IsEmpty reports whether the update carries no field at all.
func (u ProfileUpdate) IsEmpty() bool {
	return u.Name == nil && u.Email == nil && u.Phone == nil && u.Age == nil &&
		u.Gender == nil && u.Institution == nil && u.Skills == nil &&
		u.Interests == nil && u.CompletedCourses == nil
}

// NormalizeEmail returns the canonical form of an email address used for
// storage and lookups. Emails are compared case-insensitively.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
