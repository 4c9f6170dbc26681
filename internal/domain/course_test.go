package domain

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestCourseMatchesID(t *testing.T) {
	c := Course{ID: 12}

	testCases := []struct {
		input    string
		expected bool
	}{
		{"12", true},
		{" 12 ", true},
		{"012", false},
		{"1", false},
		{"", false},
	}

	for _, tc := range testCases {
		if got := c.MatchesID(tc.input); got != tc.expected {
			t.Errorf("MatchesID(%q) = %v, want %v", tc.input, got, tc.expected)
		}
	}
}

func TestCourseCloneDoesNotShareSlices(t *testing.T) {
	course := Course{
		ID:       1,
		Title:    "Test Course",
		Tags:     []string{"go", "testing"},
		Badges:   []string{},
		Syllabus: []Lesson{{Title: "Intro", Content: "Setup"}},
	}

	clone := course.Clone()
	clone.Tags[0] = "changed"
	clone.Syllabus[0].Title = "changed"

	if course.Tags[0] != "go" {
		t.Errorf("Expected original tag to be 'go', got '%s'", course.Tags[0])
	}
	if course.Syllabus[0].Title != "Intro" {
		t.Errorf("Expected original lesson title to be 'Intro', got '%s'", course.Syllabus[0].Title)
	}
	if clone.Badges == nil {
		t.Error("Expected empty badges to stay non-nil after clone")
	}
}

func TestCourseJSONFieldNames(t *testing.T) {
	course := Course{
		ID:          3,
		Title:       "Test Course",
		Level:       LevelBeginner,
		PublishedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	b, err := json.Marshal(course)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	for _, key := range []string{`"publishedAt":"2024-01-02T03:04:05Z"`, `"level":"Beginner"`, `"instructor":{`} {
		if !strings.Contains(string(b), key) {
			t.Errorf("Expected JSON to contain %s, got %s", key, b)
		}
	}
}

func TestCourseIsFree(t *testing.T) {
	if !(Course{Price: 0}).IsFree() {
		t.Error("Expected price 0 to be free")
	}
	if (Course{Price: 1999}).IsFree() {
		t.Error("Expected price 1999 to not be free")
	}
}
