package domain

import (
	"slices"
	"strconv"
	"strings"
	"time"
)

// Level is the difficulty band of a course.
type Level string

const (
	LevelBeginner     Level = "Beginner"
	LevelIntermediate Level = "Intermediate"
	LevelAdvanced     Level = "Advanced"
)

// Lesson is one syllabus entry.
type Lesson struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type Instructor struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// Course is the canonical representation of a catalog course.
// The JSON shape is shared by the remote API and the local snapshot.
type Course struct {
	ID          int        `json:"id"`
	Title       string     `json:"title"`
	Category    string     `json:"category"`
	Level       Level      `json:"level"`
	Price       float64    `json:"price"` // 0 means free
	Rating      float64    `json:"rating"`
	Lessons     int        `json:"lessons"`
	Duration    string     `json:"duration"`
	Thumbnail   string     `json:"thumbnail"`
	Description string     `json:"description"`
	Syllabus    []Lesson   `json:"syllabus"`
	Instructor  Instructor `json:"instructor"`
	Tags        []string   `json:"tags"`
	Badges      []string   `json:"badges"`
	Language    string     `json:"language"`
	PublishedAt time.Time  `json:"publishedAt"`
}

// IsFree reports whether the course has no price.
func (c Course) IsFree() bool {
	return c.Price == 0
}

// MatchesID compares ids the way they arrive from path segments.
func (c Course) MatchesID(id string) bool {
	return strconv.Itoa(c.ID) == strings.TrimSpace(id)
}

// Clone returns a copy that shares no slices with c.
func (c Course) Clone() Course {
	out := c
	out.Syllabus = slices.Clone(c.Syllabus)
	out.Tags = slices.Clone(c.Tags)
	out.Badges = slices.Clone(c.Badges)
	return out
}

// CoursePage is one page of a filtered, sorted course listing.
// Total counts the filtered set before pagination.
type CoursePage struct {
	Items    []Course `json:"items"`
	Total    int      `json:"total"`
	Page     int      `json:"page"`
	PageSize int      `json:"pageSize"`
}
