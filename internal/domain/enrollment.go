package domain

import (
	"strconv"
	"strings"
)

// Enrollment links a user to a course and tracks progress (0-100).
// There is at most one enrollment per (UserID, CourseID).
type Enrollment struct {
	ID       int `json:"id"`
	UserID   int `json:"userId"`
	CourseID int `json:"courseId"`
	Progress int `json:"progress"`
}

func (e Enrollment) MatchesID(id string) bool {
	return strconv.Itoa(e.ID) == strings.TrimSpace(id)
}

// ValidProgress reports whether p is a percentage.
func ValidProgress(p int) bool {
	return p >= 0 && p <= 100
}
