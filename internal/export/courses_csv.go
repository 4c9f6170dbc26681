package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"course-catalog/internal/domain"
)

// Keep header order EXACT; downstream sheets address columns by position.
var courseHeader = []string{
	"COURSE_ID",
	"COURSE_TITLE",
	"CATEGORY",
	"LEVEL",
	"PRICE",
	"RATING",
	"LESSONS",
	"DURATION",
	"LANGUAGE",
	"INSTRUCTOR",
	"TAGS",
	"BADGES",
	"IMAGE_URL",
	"COURSE_DESCRIPTION",
	"PUBLISHED_TS",
}

// WriteCoursesCSV writes one row per course after the header.
func WriteCoursesCSV(w io.Writer, courses []domain.Course) error {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true

	if err := cw.Write(courseHeader); err != nil {
		return err
	}
	for _, c := range courses {
		if err := cw.Write(courseRow(c)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCoursesCSVFile creates the parent directory if needed and writes
// the CSV to path.
func WriteCoursesCSVFile(path string, courses []domain.Course) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("export: mkdir %s: %w", dir, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: create csv: %w", err)
	}
	if err := WriteCoursesCSV(f, courses); err != nil {
		f.Close()
		return fmt.Errorf("export: write csv: %w", err)
	}
	return f.Close()
}

func courseRow(c domain.Course) []string {
	published := ""
	if !c.PublishedAt.IsZero() {
		published = c.PublishedAt.UTC().Format(time.RFC3339)
	}

	return []string{
		strconv.Itoa(c.ID),
		oneLine(c.Title),
		oneLine(c.Category),
		string(c.Level),
		floatToString(c.Price),
		floatToString(c.Rating),
		strconv.Itoa(c.Lessons),
		oneLine(c.Duration),
		oneLine(c.Language),
		oneLine(c.Instructor.Name),
		strings.Join(cleanStrings(c.Tags), " | "),
		strings.Join(cleanStrings(c.Badges), " | "),
		strings.TrimSpace(c.Thumbnail),
		oneLine(c.Description),
		published,
	}
}

func floatToString(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// oneLine flattens line breaks so every record stays on one physical line.
func oneLine(s string) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	return strings.TrimSpace(s)
}

func cleanStrings(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = oneLine(s)
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}
