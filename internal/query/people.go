package query

import (
	"net/url"
	"slices"
	"strconv"
	"strings"

	"course-catalog/internal/domain"
)

// UserFilter narrows a user lookup. Email is compared after normalization.
type UserFilter struct {
	Email string
}

func (f UserFilter) Empty() bool { return strings.TrimSpace(f.Email) == "" }

func (f UserFilter) Values() url.Values {
	v := url.Values{}
	if !f.Empty() {
		v.Set("email", domain.NormalizeEmail(f.Email))
	}
	return v
}

// Users applies f. With no filter the input is returned as a copy.
func Users(users []domain.User, f UserFilter) []domain.User {
	if f.Empty() {
		return slices.Clone(users)
	}
	em := domain.NormalizeEmail(f.Email)
	out := []domain.User{}
	for _, u := range users {
		if domain.NormalizeEmail(u.Email) == em {
			out = append(out, u)
		}
	}
	return out
}

// EnrollmentFilter narrows an enrollment lookup. Zero ids are unset; set
// fields are AND-combined.
type EnrollmentFilter struct {
	UserID   int
	CourseID int
}

func (f EnrollmentFilter) Values() url.Values {
	v := url.Values{}
	if f.UserID != 0 {
		v.Set("userId", strconv.Itoa(f.UserID))
	}
	if f.CourseID != 0 {
		v.Set("courseId", strconv.Itoa(f.CourseID))
	}
	return v
}

func Enrollments(rows []domain.Enrollment, f EnrollmentFilter) []domain.Enrollment {
	out := []domain.Enrollment{}
	for _, e := range rows {
		if f.UserID != 0 && e.UserID != f.UserID {
			continue
		}
		if f.CourseID != 0 && e.CourseID != f.CourseID {
			continue
		}
		out = append(out, e)
	}
	return out
}

// FindEnrollment returns the row for a (user, course) pair.
func FindEnrollment(rows []domain.Enrollment, userID, courseID int) (domain.Enrollment, bool) {
	for _, e := range rows {
		if e.UserID == userID && e.CourseID == courseID {
			return e, true
		}
	}
	return domain.Enrollment{}, false
}
