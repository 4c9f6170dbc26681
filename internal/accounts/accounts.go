// Package accounts implements demo login and registration on top of the
// catalog's user resource. Passwords are compared in plaintext; there is no
// security model here.
package accounts

import (
	"context"
	"net/url"
	"strings"

	"course-catalog/internal/apierr"
	"course-catalog/internal/catalog"
	"course-catalog/internal/domain"
	"course-catalog/internal/httpx"
	"course-catalog/internal/logger"
	"course-catalog/internal/query"
)

// Directory is the slice of the catalog service accounts needs.
type Directory interface {
	Ping(ctx context.Context) catalog.PingResult
	Users(ctx context.Context, f query.UserFilter) (catalog.Result[[]domain.User], error)
	CreateUser(ctx context.Context, in domain.User) (catalog.Result[domain.User], error)
}

// Outcome is what login and registration report. Errors are user-facing
// strings, never Go errors.
type Outcome struct {
	OK    bool         `json:"ok"`
	Error string       `json:"error,omitempty"`
	User  *domain.User `json:"user,omitempty"`
}

type RegisterInput struct {
	Name      string   `json:"name"`
	Email     string   `json:"email"`
	Password  string   `json:"password"`
	Interests []string `json:"interests"`
	Bio       string   `json:"bio"`
	Avatar    string   `json:"avatar"`
}

const (
	msgRequired     = "Email and password are required"
	msgInvalid      = "Invalid credentials"
	msgEmailTaken   = "Email already registered"
	msgRouteMissing = `API route not found. Ensure db.json has "users", "courses", "enrollments".`
)

type Service struct {
	dir Directory
	log *logger.Logger
}

func New(dir Directory, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{dir: dir, log: log.With("component", "accounts")}
}

// Login finds the user by normalized email and compares the password.
func (s *Service) Login(ctx context.Context, email, password string) Outcome {
	em := domain.NormalizeEmail(email)
	pw := strings.TrimSpace(password)
	if em == "" || pw == "" {
		return Outcome{Error: msgRequired}
	}

	s.ping(ctx)

	found, err := s.lookup(ctx, em)
	if err != nil {
		s.log.Error("login failed", "email", em, "error", err)
		return Outcome{Error: Explain(err)}
	}
	if len(found) == 0 || found[0].Password != pw {
		return Outcome{Error: msgInvalid}
	}
	u := found[0]
	return Outcome{OK: true, User: &u}
}

// Register creates a user unless the normalized email is already taken.
func (s *Service) Register(ctx context.Context, in RegisterInput) Outcome {
	em := domain.NormalizeEmail(in.Email)
	pw := strings.TrimSpace(in.Password)
	if em == "" || pw == "" {
		return Outcome{Error: msgRequired}
	}

	s.ping(ctx)

	found, err := s.lookup(ctx, em)
	if err != nil {
		s.log.Error("register lookup failed", "email", em, "error", err)
		return Outcome{Error: Explain(err)}
	}
	if len(found) > 0 {
		return Outcome{Error: msgEmailTaken}
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		name, _, _ = strings.Cut(em, "@")
	}
	avatar := in.Avatar
	if avatar == "" {
		seed := in.Name
		if seed == "" {
			seed = em
		}
		avatar = "https://api.dicebear.com/9.x/initials/svg?seed=" + strings.ReplaceAll(url.QueryEscape(seed), "+", "%20")
	}
	interests := in.Interests
	if interests == nil {
		interests = []string{}
	}

	res, err := s.dir.CreateUser(ctx, domain.User{
		Name:      name,
		Email:     em,
		Password:  pw,
		Interests: interests,
		Bio:       strings.TrimSpace(in.Bio),
		Avatar:    avatar,
	})
	if err != nil {
		s.log.Error("register failed", "email", em, "error", err)
		return Outcome{Error: Explain(err)}
	}
	s.log.Info("user registered", "id", res.Data.ID, "source", res.Source)
	u := res.Data
	return Outcome{OK: true, User: &u}
}

// lookup tries the server-side email filter first, then scans the full list
// for servers that ignore the filter or store mixed-case emails.
func (s *Service) lookup(ctx context.Context, em string) ([]domain.User, error) {
	res, err := s.dir.Users(ctx, query.UserFilter{Email: em})
	if err != nil {
		return nil, err
	}
	if hits := query.Users(res.Data, query.UserFilter{Email: em}); len(hits) > 0 {
		return hits, nil
	}
	all, err := s.dir.Users(ctx, query.UserFilter{})
	if err != nil {
		return nil, err
	}
	return query.Users(all.Data, query.UserFilter{Email: em}), nil
}

// ping is informational only.
func (s *Service) ping(ctx context.Context) {
	if p := s.dir.Ping(ctx); !p.OK {
		s.log.Debug("api ping", "ok", p.OK, "status", p.Status, "error", p.Error)
	}
}

// Explain turns a backend error into the message shown to the user.
func Explain(err error) string {
	switch {
	case err == nil:
		return ""
	case httpx.IsNetworkError(err):
		return "Network unreachable."
	case apierr.IsConflict(err):
		return msgEmailTaken
	case apierr.IsNotFound(err):
		return msgRouteMissing
	}
	return apierr.Describe(err)
}
