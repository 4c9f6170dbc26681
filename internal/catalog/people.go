package catalog

import (
	"context"
	"encoding/json"
	"math"

	"course-catalog/internal/apierr"
	"course-catalog/internal/domain"
	"course-catalog/internal/httpx"
	"course-catalog/internal/query"
)

func isNetwork(err error) bool { return httpx.IsNetworkError(err) }

// Users lists users, optionally narrowed to one normalized email.
func (s *Service) Users(ctx context.Context, f query.UserFilter) (Result[[]domain.User], error) {
	return Attempt(ctx, s.disp, "list users",
		func(ctx context.Context) ([]domain.User, error) {
			return s.remote.Users(ctx, f)
		},
		func(ctx context.Context) ([]domain.User, error) {
			var out []domain.User
			err := s.local.View(ctx, func(db *domain.Database) error {
				out = query.Users(db.Users, f)
				return nil
			})
			return out, wrapLocal("list users", err)
		},
	)
}

// CreateUser stores the email normalized. A second user with the same
// normalized email is a conflict.
func (s *Service) CreateUser(ctx context.Context, in domain.User) (Result[domain.User], error) {
	in.Email = domain.NormalizeEmail(in.Email)
	if in.Email == "" {
		return Result[domain.User]{}, apierr.Validation("email is required")
	}
	if in.Interests == nil {
		in.Interests = []string{}
	}

	return Attempt(ctx, s.disp, "create user",
		func(ctx context.Context) (domain.User, error) {
			body, err := payload(in)
			if err != nil {
				return domain.User{}, err
			}
			return s.remote.CreateUser(ctx, body)
		},
		func(ctx context.Context) (domain.User, error) {
			var out domain.User
			err := s.local.Update(ctx, func(db *domain.Database) error {
				if len(query.Users(db.Users, query.UserFilter{Email: in.Email})) > 0 {
					return apierr.Conflict("email %s already exists", in.Email)
				}
				out = in.Clone()
				out.ID = db.NextID(domain.EntityUsers)
				db.Users = append(db.Users, out)
				db.NormalizeCounters()
				return nil
			})
			return out, wrapLocal("create user", err)
		},
	)
}

func (s *Service) Enrollments(ctx context.Context, f query.EnrollmentFilter) (Result[[]domain.Enrollment], error) {
	return Attempt(ctx, s.disp, "list enrollments",
		func(ctx context.Context) ([]domain.Enrollment, error) {
			return s.remote.Enrollments(ctx, f)
		},
		func(ctx context.Context) ([]domain.Enrollment, error) {
			var out []domain.Enrollment
			err := s.local.View(ctx, func(db *domain.Database) error {
				out = query.Enrollments(db.Enrollments, f)
				return nil
			})
			return out, wrapLocal("list enrollments", err)
		},
	)
}

// CreateEnrollment is idempotent on (UserID, CourseID): an existing row is
// returned unchanged.
func (s *Service) CreateEnrollment(ctx context.Context, in domain.Enrollment) (Result[domain.Enrollment], error) {
	if in.UserID <= 0 || in.CourseID <= 0 {
		return Result[domain.Enrollment]{}, apierr.Validation("userId and courseId are required")
	}
	if !domain.ValidProgress(in.Progress) {
		return Result[domain.Enrollment]{}, apierr.Validation("progress must be between 0 and 100, got %d", in.Progress)
	}

	return Attempt(ctx, s.disp, "create enrollment",
		func(ctx context.Context) (domain.Enrollment, error) {
			body, err := payload(in)
			if err != nil {
				return domain.Enrollment{}, err
			}
			return s.remote.CreateEnrollment(ctx, body)
		},
		func(ctx context.Context) (domain.Enrollment, error) {
			var out domain.Enrollment
			err := s.local.Update(ctx, func(db *domain.Database) error {
				if e, ok := query.FindEnrollment(db.Enrollments, in.UserID, in.CourseID); ok {
					out = e
					return nil
				}
				out = in
				out.ID = db.NextID(domain.EntityEnrollments)
				db.Enrollments = append(db.Enrollments, out)
				db.NormalizeCounters()
				return nil
			})
			return out, wrapLocal("create enrollment", err)
		},
	)
}

// UpdateEnrollment applies a shallow patch by id.
func (s *Service) UpdateEnrollment(ctx context.Context, id string, patch map[string]any) (Result[domain.Enrollment], error) {
	if v, ok := patch["progress"]; ok {
		p, ok := progressValue(v)
		if !ok || !domain.ValidProgress(p) {
			return Result[domain.Enrollment]{}, apierr.Validation("progress must be an integer between 0 and 100, got %v", v)
		}
	}

	return Attempt(ctx, s.disp, "update enrollment",
		func(ctx context.Context) (domain.Enrollment, error) {
			return s.remote.UpdateEnrollment(ctx, id, patch)
		},
		func(ctx context.Context) (domain.Enrollment, error) {
			var out domain.Enrollment
			err := s.local.Update(ctx, func(db *domain.Database) error {
				i := -1
				for j, e := range db.Enrollments {
					if e.MatchesID(id) {
						i = j
						break
					}
				}
				if i < 0 {
					return apierr.NotFound("enrollment %s not found", id)
				}
				merged, err := merge(db.Enrollments[i], patch)
				if err != nil {
					return err
				}
				if other, ok := query.FindEnrollment(db.Enrollments, merged.UserID, merged.CourseID); ok && other.ID != merged.ID {
					return apierr.Conflict("user %d is already enrolled in course %d (enrollment %d)", merged.UserID, merged.CourseID, other.ID)
				}
				db.Enrollments[i] = merged
				out = merged
				return nil
			})
			return out, wrapLocal("update enrollment", err)
		},
	)
}

// Enroll looks for an existing enrollment before creating one.
func (s *Service) Enroll(ctx context.Context, userID, courseID int) (Result[domain.Enrollment], error) {
	found, err := s.Enrollments(ctx, query.EnrollmentFilter{UserID: userID, CourseID: courseID})
	if err != nil {
		return Result[domain.Enrollment]{}, err
	}
	if len(found.Data) > 0 {
		return Result[domain.Enrollment]{Data: found.Data[0], Status: found.Status, Source: found.Source}, nil
	}
	return s.CreateEnrollment(ctx, domain.Enrollment{UserID: userID, CourseID: courseID, Progress: 0})
}

func progressValue(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}
		return int(n), true
	case json.Number:
		i, err := n.Int64()
		return int(i), err == nil
	default:
		return 0, false
	}
}
