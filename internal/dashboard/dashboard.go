// Package dashboard assembles a learner's enrolled courses and progress.
package dashboard

import (
	"context"
	"errors"
	"math"
	"strconv"

	"course-catalog/internal/apierr"
	"course-catalog/internal/catalog"
	"course-catalog/internal/concurrency"
	"course-catalog/internal/domain"
	"course-catalog/internal/logger"
	"course-catalog/internal/query"
)

// Catalog is the part of the catalog service the dashboard reads.
type Catalog interface {
	Enrollments(ctx context.Context, f query.EnrollmentFilter) (catalog.Result[[]domain.Enrollment], error)
	GetCourse(ctx context.Context, id string) (catalog.Result[*domain.Course], error)
	UpdateEnrollment(ctx context.Context, id string, patch map[string]any) (catalog.Result[domain.Enrollment], error)
}

// Row is one enrollment joined with its course.
type Row struct {
	domain.Enrollment
	Course domain.Course `json:"course"`
}

type View struct {
	UserID  int   `json:"userId"`
	Rows    []Row `json:"rows"`
	Overall int   `json:"overall"`
}

type Service struct {
	cat  Catalog
	opts concurrency.ParallelOptions
	log  *logger.Logger
}

func New(cat Catalog, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{cat: cat, opts: concurrency.ParallelOptions{MaxWorkers: 4}, log: log.With("component", "dashboard")}
}

// Load returns the user's enrollments with their courses. Enrollments whose
// course no longer exists are dropped.
func (s *Service) Load(ctx context.Context, userID int) (View, error) {
	enr, err := s.cat.Enrollments(ctx, query.EnrollmentFilter{UserID: userID})
	if err != nil {
		return View{}, err
	}

	courses, errs := concurrency.ProcessParallel(ctx, enr.Data, s.opts,
		func(ctx context.Context, _ int, e domain.Enrollment) (*domain.Course, error) {
			res, err := s.cat.GetCourse(ctx, strconv.Itoa(e.CourseID))
			if apierr.IsNotFound(err) {
				return nil, nil
			}
			if err != nil {
				return nil, err
			}
			return res.Data, nil
		})
	if err := ctx.Err(); err != nil {
		return View{}, err
	}
	if len(errs) > 0 {
		return View{}, errors.Join(errs...)
	}

	v := View{UserID: userID, Rows: []Row{}}
	for i, e := range enr.Data {
		c := courses[i]
		if c == nil {
			s.log.Debug("dropping enrollment for missing course", "enrollment", e.ID, "course", e.CourseID)
			continue
		}
		v.Rows = append(v.Rows, Row{Enrollment: e, Course: *c})
	}
	v.Overall = Overall(v.Rows)
	return v, nil
}

// Overall is the rounded mean progress, 0 with no rows.
func Overall(rows []Row) int {
	if len(rows) == 0 {
		return 0
	}
	sum := 0
	for _, r := range rows {
		sum += r.Progress
	}
	return int(math.Round(float64(sum) / float64(len(rows))))
}

// SetProgress records progress for one enrollment.
func (s *Service) SetProgress(ctx context.Context, enrollmentID, progress int) (domain.Enrollment, error) {
	res, err := s.cat.UpdateEnrollment(ctx, strconv.Itoa(enrollmentID), map[string]any{"progress": progress})
	if err != nil {
		return domain.Enrollment{}, err
	}
	return res.Data, nil
}
