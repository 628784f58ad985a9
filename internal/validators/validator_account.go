package validators

import (
	"context"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/MKhiriev/student-portal/models"
)

const (
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldName            = "name"
	FieldPhone           = "phone"
	FieldAge             = "age"
	FieldGender          = "gender"
	FieldInstitution     = "institution"
	FieldCurrentPassword = "currentPassword"
	FieldNewPassword     = "newPassword"
)

// Password bounds in bytes. bcrypt refuses anything longer than 72 bytes.
const (
	MinPasswordLength = 6
	MaxPasswordLength = 72
)

const (
	maxEmailLength = 254
	maxTextLength  = 200
	maxAge         = 150
)

var (
	emailRules    = []validation.Rule{validation.Required, validation.Length(3, maxEmailLength), is.Email}
	passwordRules = []validation.Rule{validation.Required, validation.Length(MinPasswordLength, MaxPasswordLength)}
	textRules     = []validation.Rule{validation.Length(0, maxTextLength)}
	ageRules      = []validation.Rule{validation.Min(0), validation.Max(maxAge)}
)

// AccountValidator checks account requests before they reach the account
// service. Passing field names restricts validation to those fields.
type AccountValidator struct{}

func NewAccountValidator() Validator {
	return &AccountValidator{}
}

func (v *AccountValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.SignupRequest:
		return v.validateSignup(value, fields...)
	case *models.SignupRequest:
		return v.validateSignup(*value, fields...)

	case models.LoginRequest:
		return v.validateLogin(value, fields...)
	case *models.LoginRequest:
		return v.validateLogin(*value, fields...)

	case models.ProfileUpdate:
		return v.validateProfileUpdate(value, fields...)
	case *models.ProfileUpdate:
		return v.validateProfileUpdate(*value, fields...)

	case models.PasswordResetRequest:
		return v.validatePasswordReset(value, fields...)
	case *models.PasswordResetRequest:
		return v.validatePasswordReset(*value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *AccountValidator) validateSignup(r models.SignupRequest, fields ...string) error {
	rules := map[string]*validation.FieldRules{
		FieldEmail:       validation.Field(&r.Email, emailRules...),
		FieldPassword:    validation.Field(&r.Password, passwordRules...),
		FieldName:        validation.Field(&r.Name, validation.Required, validation.Length(1, maxTextLength)),
		FieldPhone:       validation.Field(&r.Phone, textRules...),
		FieldAge:         validation.Field(&r.Age, ageRules...),
		FieldGender:      validation.Field(&r.Gender, textRules...),
		FieldInstitution: validation.Field(&r.Institution, textRules...),
	}

	return validateFields(&r, rules, fields)
}

func (v *AccountValidator) validateLogin(r models.LoginRequest, fields ...string) error {
	// only presence is checked: a malformed email simply fails to log in
	rules := map[string]*validation.FieldRules{
		FieldEmail:    validation.Field(&r.Email, validation.Required),
		FieldPassword: validation.Field(&r.Password, validation.Required),
	}

	return validateFields(&r, rules, fields)
}

func (v *AccountValidator) validateProfileUpdate(u models.ProfileUpdate, fields ...string) error {
	if u.IsEmpty() {
		return fmt.Errorf("%w: %w", ErrInvalidAccountData, ErrNoFieldsToUpdate)
	}

	rules := map[string]*validation.FieldRules{
		FieldEmail:       validation.Field(&u.Email, validation.NilOrNotEmpty, validation.Length(3, maxEmailLength), is.Email),
		FieldName:        validation.Field(&u.Name, validation.NilOrNotEmpty, validation.Length(1, maxTextLength)),
		FieldPhone:       validation.Field(&u.Phone, textRules...),
		FieldAge:         validation.Field(&u.Age, ageRules...),
		FieldGender:      validation.Field(&u.Gender, textRules...),
		FieldInstitution: validation.Field(&u.Institution, textRules...),
	}

	return validateFields(&u, rules, fields)
}

func (v *AccountValidator) validatePasswordReset(r models.PasswordResetRequest, fields ...string) error {
	rules := map[string]*validation.FieldRules{
		FieldCurrentPassword: validation.Field(&r.CurrentPassword, validation.Required),
		FieldNewPassword: validation.Field(&r.NewPassword,
			validation.Required,
			validation.Length(MinPasswordLength, MaxPasswordLength),
			validation.By(differsFrom(r.CurrentPassword)),
		),
	}

	return validateFields(&r, rules, fields)
}

// validateFields runs the rules named in fields, or all of them when fields
// is empty, against structPtr.
func validateFields(structPtr any, rules map[string]*validation.FieldRules, fields []string) error {
	selected := make([]*validation.FieldRules, 0, len(rules))
	if len(fields) == 0 {
		for _, r := range rules {
			selected = append(selected, r)
		}
	} else {
		for _, f := range fields {
			r, ok := rules[f]
			if !ok {
				return fmt.Errorf("%w: %s", ErrUnknownField, f)
			}
			selected = append(selected, r)
		}
	}

	if err := validation.ValidateStruct(structPtr, selected...); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidAccountData, err)
	}

	return nil
}

func differsFrom(current string) validation.RuleFunc {
	return func(value any) error {
		s, _ := value.(string)
		if s != "" && s == current {
			return ErrSamePassword
		}
		return nil
	}
}
