package catalog

import (
	"context"
	"encoding/json"
	"math"
	"slices"

	"course-catalog/internal/apierr"
	"course-catalog/internal/domain"
	"course-catalog/internal/query"
)

// ListCourses returns every course matching q, newest first.
func (s *Service) ListCourses(ctx context.Context, q string) (Result[[]domain.Course], error) {
	return Attempt(ctx, s.disp, "list courses",
		func(ctx context.Context) ([]domain.Course, error) {
			return s.remote.ListCourses(ctx, q)
		},
		func(ctx context.Context) ([]domain.Course, error) {
			var out []domain.Course
			err := s.local.View(ctx, func(db *domain.Database) error {
				out = query.List(db.Courses, q)
				return nil
			})
			return out, wrapLocal("list courses", err)
		},
	)
}

// SearchCourses filters, sorts and paginates.
func (s *Service) SearchCourses(ctx context.Context, p query.Params) (Result[domain.CoursePage], error) {
	return Attempt(ctx, s.disp, "search courses",
		func(ctx context.Context) (domain.CoursePage, error) {
			return s.remote.SearchCourses(ctx, p)
		},
		func(ctx context.Context) (domain.CoursePage, error) {
			var out domain.CoursePage
			err := s.local.View(ctx, func(db *domain.Database) error {
				out = query.Search(db.Courses, p)
				return nil
			})
			return out, wrapLocal("search courses", err)
		},
	)
}

// GetCourse returns the course, or nil Data when the local store has no such
// id. The remote path reports a missing course as a 404 error instead.
func (s *Service) GetCourse(ctx context.Context, id string) (Result[*domain.Course], error) {
	return Attempt(ctx, s.disp, "get course",
		func(ctx context.Context) (*domain.Course, error) {
			c, err := s.remote.GetCourse(ctx, id)
			if err != nil {
				return nil, err
			}
			return &c, nil
		},
		func(ctx context.Context) (*domain.Course, error) {
			var out *domain.Course
			err := s.local.View(ctx, func(db *domain.Database) error {
				if c, ok := query.Find(db.Courses, id); ok {
					out = &c
				}
				return nil
			})
			return out, wrapLocal("get course", err)
		},
	)
}

// withCourseDefaults fills the fields a new course gets when the caller
// leaves them empty.
func (s *Service) withCourseDefaults(c domain.Course) domain.Course {
	if c.Syllabus == nil {
		c.Syllabus = []domain.Lesson{}
	}
	if c.Badges == nil {
		c.Badges = []string{}
	}
	if c.Tags == nil {
		c.Tags = []string{}
	}
	if c.Language == "" {
		c.Language = "en"
	}
	if c.PublishedAt.IsZero() {
		c.PublishedAt = s.local.Now().UTC()
	}
	return c
}

func (s *Service) CreateCourse(ctx context.Context, in domain.Course) (Result[domain.Course], error) {
	if in.Price < 0 {
		return Result[domain.Course]{}, apierr.Validation("price must not be negative")
	}
	if in.Rating < 0 || in.Rating > 5 {
		return Result[domain.Course]{}, apierr.Validation("rating must be between 0 and 5")
	}
	in = s.withCourseDefaults(in)

	return Attempt(ctx, s.disp, "create course",
		func(ctx context.Context) (domain.Course, error) {
			body, err := payload(in)
			if err != nil {
				return domain.Course{}, err
			}
			return s.remote.CreateCourse(ctx, body)
		},
		func(ctx context.Context) (domain.Course, error) {
			var out domain.Course
			err := s.local.Update(ctx, func(db *domain.Database) error {
				out = in.Clone()
				out.ID = db.NextID(domain.EntityCourses)
				db.Courses = append(db.Courses, out)
				db.NormalizeCounters()
				return nil
			})
			return out, wrapLocal("create course", err)
		},
	)
}

// UpdateCourse applies a shallow patch: each given field replaces the stored
// one wholesale.
func (s *Service) UpdateCourse(ctx context.Context, id string, patch map[string]any) (Result[domain.Course], error) {
	if err := validateCoursePatch(patch); err != nil {
		return Result[domain.Course]{}, err
	}

	return Attempt(ctx, s.disp, "update course",
		func(ctx context.Context) (domain.Course, error) {
			return s.remote.UpdateCourse(ctx, id, patch)
		},
		func(ctx context.Context) (domain.Course, error) {
			var out domain.Course
			err := s.local.Update(ctx, func(db *domain.Database) error {
				i := query.Index(db.Courses, id)
				if i < 0 {
					return apierr.NotFound("course %s not found", id)
				}
				merged, err := merge(db.Courses[i], patch)
				if err != nil {
					return err
				}
				db.Courses[i] = merged
				out = merged
				return nil
			})
			return out, wrapLocal("update course", err)
		},
	)
}

// DeleteCourse removes the course and returns it.
func (s *Service) DeleteCourse(ctx context.Context, id string) (Result[domain.Course], error) {
	return Attempt(ctx, s.disp, "delete course",
		func(ctx context.Context) (domain.Course, error) {
			return s.remote.DeleteCourse(ctx, id)
		},
		func(ctx context.Context) (domain.Course, error) {
			var out domain.Course
			err := s.local.Update(ctx, func(db *domain.Database) error {
				i := query.Index(db.Courses, id)
				if i < 0 {
					return apierr.NotFound("course %s not found", id)
				}
				out = db.Courses[i]
				db.Courses = slices.Delete(db.Courses, i, i+1)
				return nil
			})
			return out, wrapLocal("delete course", err)
		},
	)
}

// Categories lists distinct category names. Remote deployments without a
// categories resource get them derived from the course list.
func (s *Service) Categories(ctx context.Context) (Result[[]string], error) {
	return Attempt(ctx, s.disp, "categories",
		func(ctx context.Context) ([]string, error) {
			cats, err := s.remote.Categories(ctx)
			if err == nil {
				return cats, nil
			}
			if isNetwork(err) {
				return nil, err
			}
			s.log.Debug("categories resource unavailable, deriving from courses", "error", err)
			courses, err := s.remote.ListCourses(ctx, "")
			if err != nil {
				return nil, err
			}
			return query.Categories(courses), nil
		},
		func(ctx context.Context) ([]string, error) {
			var out []string
			err := s.local.View(ctx, func(db *domain.Database) error {
				out = query.Categories(db.Courses)
				return nil
			})
			return out, wrapLocal("categories", err)
		},
	)
}

// validateCoursePatch holds a patch to the same bounds CreateCourse enforces.
func validateCoursePatch(patch map[string]any) error {
	if v, ok := patch["price"]; ok {
		n, ok := numberValue(v)
		if !ok || n < 0 {
			return apierr.Validation("price must be a non-negative number, got %v", v)
		}
	}
	if v, ok := patch["rating"]; ok {
		n, ok := numberValue(v)
		if !ok || n < 0 || n > 5 {
			return apierr.Validation("rating must be a number between 0 and 5, got %v", v)
		}
	}
	return nil
}

func numberValue(v any) (float64, bool) {
	var n float64
	switch x := v.(type) {
	case float64:
		n = x
	case float32:
		n = float64(x)
	case int:
		n = float64(x)
	case int64:
		n = float64(x)
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return 0, false
		}
		n = f
	default:
		return 0, false
	}
	return n, !math.IsNaN(n) && !math.IsInf(n, 0)
}
