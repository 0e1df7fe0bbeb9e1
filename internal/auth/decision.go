package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/crucial707/course-api/internal/models"
	"github.com/crucial707/course-api/internal/repo"
)

// Outcome tags a Decision.
type Outcome int

const (
	Authenticated Outcome = iota
	AuthFailed
	Forbidden
)

func (o Outcome) String() string {
	switch o {
	case Authenticated:
		return "authenticated"
	case AuthFailed:
		return "auth_failed"
	case Forbidden:
		return "forbidden"
	}
	return "unknown"
}

// Decision is the result of checking one request's credentials.
// User is set only when Outcome is Authenticated.
type Decision struct {
	Outcome Outcome
	User    *models.User
	Reason  string
}

func authenticated(u *models.User) Decision { return Decision{Outcome: Authenticated, User: u} }

func authFailed(format string, args ...any) Decision {
	return Decision{Outcome: AuthFailed, Reason: fmt.Sprintf(format, args...)}
}

func forbidden(format string, args ...any) Decision {
	return Decision{Outcome: Forbidden, Reason: fmt.Sprintf(format, args...)}
}

// Credentials are the parsed Basic-auth pair. A nil *Credentials means the
// header was missing or malformed.
type Credentials struct {
	Email    string
	Password string
}

type UserLookup interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

type CourseLookup interface {
	GetByID(ctx context.Context, id int) (*models.Course, error)
}

// Authenticator decides whether a request may proceed.
type Authenticator struct {
	Users   UserLookup
	Courses CourseLookup
}

func NewAuthenticator(users UserLookup, courses CourseLookup) *Authenticator {
	return &Authenticator{Users: users, Courses: courses}
}

// Decide checks creds and, when courseID is non-nil, that the user owns the course.
// A course that does not exist does not fail the decision; the handler reports it as not found.
// Lookup errors other than not-found are returned as err.
func (a *Authenticator) Decide(ctx context.Context, creds *Credentials, courseID *int) (Decision, error) {
	if creds == nil {
		return authFailed("Auth header not found"), nil
	}

	user, err := a.Users.GetByEmail(ctx, creds.Email)
	if errors.Is(err, repo.ErrNotFound) {
		return authFailed("User: %s not found", creds.Email), nil
	}
	if err != nil {
		return Decision{}, fmt.Errorf("lookup user: %w", err)
	}

	if !CheckPassword(user.PasswordHash, creds.Password) {
		return authFailed("Authentication failure for username: %s", user.EmailAddress), nil
	}

	if courseID == nil {
		return authenticated(user), nil
	}

	course, err := a.Courses.GetByID(ctx, *courseID)
	if errors.Is(err, repo.ErrNotFound) {
		return authenticated(user), nil
	}
	if err != nil {
		return Decision{}, fmt.Errorf("lookup course: %w", err)
	}
	if course.UserID != user.ID {
		return forbidden("User: %s not authorized", creds.Email), nil
	}
	return authenticated(user), nil
}
