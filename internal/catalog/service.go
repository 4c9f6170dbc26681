package catalog

import (
	"context"
	"encoding/json"
	"fmt"

	"course-catalog/internal/apierr"
	"course-catalog/internal/domain"
	"course-catalog/internal/httpx"
	"course-catalog/internal/localdb"
	"course-catalog/internal/logger"
	"course-catalog/internal/query"
)

// Remote is the API surface the service needs. *remote.Client satisfies it.
type Remote interface {
	Ping(ctx context.Context) error
	ListCourses(ctx context.Context, q string) ([]domain.Course, error)
	SearchCourses(ctx context.Context, p query.Params) (domain.CoursePage, error)
	GetCourse(ctx context.Context, id string) (domain.Course, error)
	CreateCourse(ctx context.Context, payload map[string]any) (domain.Course, error)
	UpdateCourse(ctx context.Context, id string, patch map[string]any) (domain.Course, error)
	DeleteCourse(ctx context.Context, id string) (domain.Course, error)
	Users(ctx context.Context, f query.UserFilter) ([]domain.User, error)
	CreateUser(ctx context.Context, payload map[string]any) (domain.User, error)
	Enrollments(ctx context.Context, f query.EnrollmentFilter) ([]domain.Enrollment, error)
	CreateEnrollment(ctx context.Context, payload map[string]any) (domain.Enrollment, error)
	UpdateEnrollment(ctx context.Context, id string, patch map[string]any) (domain.Enrollment, error)
	Categories(ctx context.Context) ([]string, error)
}

type Service struct {
	remote Remote
	local  *localdb.DB
	disp   *Dispatcher
	log    *logger.Logger
}

func NewService(r Remote, local *localdb.DB, d *Dispatcher, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	if d == nil {
		d = NewDispatcher(0, false, log)
	}
	return &Service{remote: r, local: local, disp: d, log: log.With("component", "catalog")}
}

// Local exposes the local backend for maintenance commands.
func (s *Service) Local() *localdb.DB { return s.local }

const unreachableMsg = "API not reachable, using local mock DB."

// PingResult reports whether the remote API answered.
type PingResult struct {
	OK     bool   `json:"ok"`
	Status int    `json:"status,omitempty"`
	Error  string `json:"error,omitempty"`
}

// Ping never falls back; it only reports reachability.
func (s *Service) Ping(ctx context.Context) PingResult {
	if s.disp.Offline() {
		return PingResult{OK: false, Error: unreachableMsg}
	}
	rctx, cancel := s.disp.RemoteContext(ctx)
	defer cancel()

	err := s.remote.Ping(rctx)
	switch {
	case err == nil:
		return PingResult{OK: true, Status: 200}
	case httpx.IsNetworkError(err):
		return PingResult{OK: false, Error: unreachableMsg}
	default:
		return PingResult{OK: false, Status: apierr.Status(err), Error: err.Error()}
	}
}

// payload converts v to the JSON object sent on create. The id is always
// assigned by the backend.
func payload(v any) (map[string]any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	delete(m, "id")
	return m, nil
}

// merge applies a shallow patch: each key in patch replaces the whole field.
// The id never changes.
func merge[T any](row T, patch map[string]any) (T, error) {
	var zero T
	b, err := json.Marshal(row)
	if err != nil {
		return zero, err
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return zero, err
	}
	for k, v := range patch {
		if k == "id" {
			continue
		}
		m[k] = v
	}

	b, err = json.Marshal(m)
	if err != nil {
		return zero, apierr.Validation("invalid patch: %v", err)
	}
	var out T
	if err := json.Unmarshal(b, &out); err != nil {
		return zero, apierr.Validation("invalid patch: %v", err)
	}
	return out, nil
}

func wrapLocal(op string, err error) error {
	if err == nil {
		return nil
	}
	if apierr.Status(err) != 0 {
		return err
	}
	return fmt.Errorf("catalog: local %s: %w", op, err)
}
