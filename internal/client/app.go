package client

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/MKhiriev/student-portal/internal/adapter"
	"github.com/MKhiriev/student-portal/internal/logger"
	"github.com/MKhiriev/student-portal/models"
)

// Usage lists the supported subcommands.
const Usage = `usage: portal [-a address] [-token token] [-timeout 10s] <command> [flags]

commands:
  signup          -name -email -password [-phone -age -gender -institution -skills -interests -courses]
  login           -email -password
  profile         -id
  update          -id [-name -email -phone -age -gender -institution -skills -interests -courses]
  reset-password  -id -current -new
  dashboard
  version
`

type App struct {
	portal adapter.PortalAdapter
	out    io.Writer

	logger *logger.Logger
}

// NewApp builds a client that talks to the server through portal and
// prints results to out.
func NewApp(portal adapter.PortalAdapter, out io.Writer, logger *logger.Logger) (*App, error) {
	if portal == nil {
		return nil, ErrNilAdapter
	}

	return &App{portal: portal, out: out, logger: logger}, nil
}

func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return ErrNoCommand
	}

	command, args := args[0], args[1:]
	a.logger.Debug().Str("command", command).Msg("running command")

	switch command {
	case "signup":
		return a.signup(ctx, args)
	case "login":
		return a.login(ctx, args)
	case "profile":
		return a.profile(ctx, args)
	case "update":
		return a.update(ctx, args)
	case "reset-password":
		return a.resetPassword(ctx, args)
	case "dashboard":
		return a.dashboard(ctx)
	case "version":
		return a.version(ctx)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCommand, command)
	}
}

func (a *App) signup(ctx context.Context, args []string) error {
	fs := newFlagSet("signup")

	var req models.SignupRequest
	var skills, interests, courses string
	var age int
	fs.StringVar(&req.Name, "name", "", "Full name")
	fs.StringVar(&req.Email, "email", "", "Email")
	fs.StringVar(&req.Password, "password", "", "Password")
	fs.StringVar(&req.Phone, "phone", "", "Phone")
	fs.IntVar(&age, "age", 0, "Age")
	fs.StringVar(&req.Gender, "gender", "", "Gender")
	fs.StringVar(&req.Institution, "institution", "", "Institution")
	fs.StringVar(&skills, "skills", "", "Skills, comma separated")
	fs.StringVar(&interests, "interests", "", "Interests, comma separated")
	fs.StringVar(&courses, "courses", "", "Completed courses, comma separated")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := required(map[string]string{"email": req.Email, "password": req.Password}); err != nil {
		return err
	}

	req.Age = models.Age(age)
	req.Skills = splitList(skills)
	req.Interests = splitList(interests)
	req.CompletedCourses = splitList(courses)

	account, err := a.portal.Signup(ctx, req)
	if err != nil {
		return fmt.Errorf("signup: %w", err)
	}

	return a.print(models.AuthResponse{Token: a.portal.Token(), User: account})
}

func (a *App) login(ctx context.Context, args []string) error {
	fs := newFlagSet("login")

	var req models.LoginRequest
	fs.StringVar(&req.Email, "email", "", "Email")
	fs.StringVar(&req.Password, "password", "", "Password")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := required(map[string]string{"email": req.Email, "password": req.Password}); err != nil {
		return err
	}

	account, err := a.portal.Login(ctx, req)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}

	return a.print(models.AuthResponse{Token: a.portal.Token(), User: account})
}

func (a *App) profile(ctx context.Context, args []string) error {
	fs := newFlagSet("profile")

	var accountID string
	fs.StringVar(&accountID, "id", "", "Account id")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := required(map[string]string{"id": accountID}); err != nil {
		return err
	}

	account, err := a.portal.GetProfile(ctx, accountID)
	if err != nil {
		return fmt.Errorf("get profile: %w", err)
	}

	return a.print(account)
}

// update sends only the fields whose flags were given on the command line.
func (a *App) update(ctx context.Context, args []string) error {
	fs := newFlagSet("update")

	var accountID string
	var name, email, phone, gender, institution, skills, interests, courses string
	var age int
	fs.StringVar(&accountID, "id", "", "Account id")
	fs.StringVar(&name, "name", "", "Full name")
	fs.StringVar(&email, "email", "", "Email")
	fs.StringVar(&phone, "phone", "", "Phone")
	fs.IntVar(&age, "age", 0, "Age")
	fs.StringVar(&gender, "gender", "", "Gender")
	fs.StringVar(&institution, "institution", "", "Institution")
	fs.StringVar(&skills, "skills", "", "Skills, comma separated")
	fs.StringVar(&interests, "interests", "", "Interests, comma separated")
	fs.StringVar(&courses, "courses", "", "Completed courses, comma separated")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := required(map[string]string{"id": accountID}); err != nil {
		return err
	}

	var update models.ProfileUpdate
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "name":
			update.Name = &name
		case "email":
			update.Email = &email
		case "phone":
			update.Phone = &phone
		case "age":
			v := models.Age(age)
			update.Age = &v
		case "gender":
			update.Gender = &gender
		case "institution":
			update.Institution = &institution
		case "skills":
			list := splitList(skills)
			update.Skills = &list
		case "interests":
			list := splitList(interests)
			update.Interests = &list
		case "courses":
			list := splitList(courses)
			update.CompletedCourses = &list
		}
	})

	account, err := a.portal.UpdateProfile(ctx, accountID, update)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}

	return a.print(account)
}

func (a *App) resetPassword(ctx context.Context, args []string) error {
	fs := newFlagSet("reset-password")

	var accountID string
	var req models.PasswordResetRequest
	fs.StringVar(&accountID, "id", "", "Account id")
	fs.StringVar(&req.CurrentPassword, "current", "", "Current password")
	fs.StringVar(&req.NewPassword, "new", "", "New password")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := required(map[string]string{"id": accountID, "current": req.CurrentPassword, "new": req.NewPassword}); err != nil {
		return err
	}

	if err := a.portal.ResetPassword(ctx, accountID, req); err != nil {
		return fmt.Errorf("reset password: %w", err)
	}

	return a.print(models.MessageResponse{Msg: "Password updated successfully"})
}

func (a *App) dashboard(ctx context.Context) error {
	dashboard, err := a.portal.Dashboard(ctx)
	if err != nil {
		return fmt.Errorf("dashboard: %w", err)
	}

	return a.print(dashboard)
}

func (a *App) version(ctx context.Context) error {
	version, err := a.portal.Version(ctx)
	if err != nil {
		return fmt.Errorf("version: %w", err)
	}

	_, err = fmt.Fprintln(a.out, version)
	return err
}

func (a *App) print(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

// required reports every empty value, sorted by flag name.
func required(values map[string]string) error {
	var missing []string
	for name, value := range values {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, "-"+name)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	slices.Sort(missing)
	return fmt.Errorf("%w: %s", ErrMissingArgument, strings.Join(missing, ", "))
}

func splitList(raw string) models.StringList {
	if strings.TrimSpace(raw) == "" {
		return models.StringList{}
	}

	parts := strings.Split(raw, ",")
	list := make(models.StringList, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			list = append(list, p)
		}
	}
	return list
}
