// Package query runs the catalog's filter, sort, search and pagination rules
// against in-memory rows, and translates the same requests into remote API
// parameters.
package query

import (
	"cmp"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"course-catalog/internal/domain"
)

// Collation is the locale used for title and category ordering.
var Collation = language.English

// MatchesText reports whether q is a case-insensitive substring of the
// title, the category or any tag. An empty q matches everything.
func MatchesText(c domain.Course, q string) bool {
	q = strings.ToLower(q)
	if q == "" {
		return true
	}
	if strings.Contains(strings.ToLower(c.Title), q) || strings.Contains(strings.ToLower(c.Category), q) {
		return true
	}
	for _, t := range c.Tags {
		if strings.Contains(strings.ToLower(t), q) {
			return true
		}
	}
	return false
}

// Filter keeps the courses that satisfy every set filter in p, in their
// original order.
func Filter(courses []domain.Course, p Params) []domain.Course {
	out := make([]domain.Course, 0, len(courses))
	for _, c := range courses {
		if !MatchesText(c, p.Q) {
			continue
		}
		if p.Category != "" && !strings.EqualFold(c.Category, p.Category) {
			continue
		}
		if p.Level != "" && !strings.EqualFold(string(c.Level), p.Level) {
			continue
		}
		if p.PriceMin != nil && c.Price < *p.PriceMin {
			continue
		}
		if p.PriceMax != nil && c.Price > *p.PriceMax {
			continue
		}
		out = append(out, c)
	}
	return out
}

// Sort orders courses in place by key and direction. Equal keys keep their
// relative order.
func Sort(courses []domain.Course, key, dir string) {
	var less func(a, b domain.Course) int
	switch key {
	case SortPrice:
		less = func(a, b domain.Course) int { return cmp.Compare(a.Price, b.Price) }
	case SortRating:
		less = func(a, b domain.Course) int { return cmp.Compare(a.Rating, b.Rating) }
	case SortLessons:
		less = func(a, b domain.Course) int { return cmp.Compare(a.Lessons, b.Lessons) }
	case SortTitle:
		col := collate.New(Collation)
		less = func(a, b domain.Course) int { return col.CompareString(a.Title, b.Title) }
	default:
		less = func(a, b domain.Course) int { return a.PublishedAt.Compare(b.PublishedAt) }
	}
	if dir != DirAsc {
		asc := less
		less = func(a, b domain.Course) int { return -asc(a, b) }
	}
	slices.SortStableFunc(courses, less)
}

// List is the legacy listing: free-text filter, newest first.
func List(courses []domain.Course, q string) []domain.Course {
	out := Filter(courses, Params{Q: q})
	Sort(out, SortNewest, DirDesc)
	return out
}

// Search filters, sorts and paginates. Total counts the filtered set.
func Search(courses []domain.Course, p Params) domain.CoursePage {
	p = p.Normalized()
	list := Filter(courses, p)
	Sort(list, p.SortBy, p.SortDir)

	total := len(list)
	// page and size come from callers unbounded; compare by division so
	// neither product nor sum can overflow
	start := total
	if p.Page-1 <= total/p.PageSize {
		start = (p.Page - 1) * p.PageSize
	}
	end := start + min(p.PageSize, total-start)
	return domain.CoursePage{
		Items:    slices.Clone(list[start:end]),
		Total:    total,
		Page:     p.Page,
		PageSize: p.PageSize,
	}
}

// Find returns the course whose id matches, comparing as strings.
func Find(courses []domain.Course, id string) (domain.Course, bool) {
	i := Index(courses, id)
	if i < 0 {
		return domain.Course{}, false
	}
	return courses[i], true
}

// Index is Find's position, or -1.
func Index(courses []domain.Course, id string) int {
	return slices.IndexFunc(courses, func(c domain.Course) bool { return c.MatchesID(id) })
}

// Categories returns the distinct category names in collation order.
func Categories(courses []domain.Course) []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, c := range courses {
		if seen[c.Category] {
			continue
		}
		seen[c.Category] = true
		out = append(out, c.Category)
	}
	collate.New(Collation).SortStrings(out)
	return out
}
