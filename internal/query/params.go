package query

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Sort keys accepted by Search.
const (
	SortNewest  = "newest"
	SortRating  = "rating"
	SortPrice   = "price"
	SortLessons = "lessons"
	SortTitle   = "title"
)

const (
	DirAsc  = "asc"
	DirDesc = "desc"
)

const DefaultPageSize = 12

// remote field per sort key
var sortFields = map[string]string{
	SortNewest:  "publishedAt",
	SortRating:  "rating",
	SortPrice:   "price",
	SortLessons: "lessons",
	SortTitle:   "title",
}

// Params is the course filter surface shared by both backends.
// Zero values mean "not set".
type Params struct {
	Q        string   `json:"q,omitempty"`
	Category string   `json:"category,omitempty"`
	Level    string   `json:"level,omitempty"`
	PriceMin *float64 `json:"priceMin,omitempty"`
	PriceMax *float64 `json:"priceMax,omitempty"`
	SortBy   string   `json:"sortBy,omitempty"`
	SortDir  string   `json:"sortDir,omitempty"`
	Page     int      `json:"page,omitempty"`
	PageSize int      `json:"pageSize,omitempty"`
}

// Normalized returns p with defaults applied: newest/desc, page 1, page
// size 12. Unknown sort keys fall back to newest, anything but "asc" is desc.
func (p Params) Normalized() Params {
	p.SortBy = strings.ToLower(strings.TrimSpace(p.SortBy))
	if _, ok := sortFields[p.SortBy]; !ok {
		p.SortBy = SortNewest
	}
	if strings.EqualFold(strings.TrimSpace(p.SortDir), DirAsc) {
		p.SortDir = DirAsc
	} else {
		p.SortDir = DirDesc
	}
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
	return p
}

// RemoteParams translates a search into the json-server style query the
// remote API understands.
func RemoteParams(p Params) url.Values {
	p = p.Normalized()
	v := url.Values{}
	if p.Q != "" {
		v.Set("q", p.Q)
	}
	if p.Category != "" {
		v.Set("category", p.Category)
	}
	if p.Level != "" {
		v.Set("level", p.Level)
	}
	if p.PriceMin != nil {
		v.Set("price_gte", formatFloat(*p.PriceMin))
	}
	if p.PriceMax != nil {
		v.Set("price_lte", formatFloat(*p.PriceMax))
	}
	v.Set("_page", strconv.Itoa(p.Page))
	v.Set("_limit", strconv.Itoa(p.PageSize))
	v.Set("_sort", sortFields[p.SortBy])
	v.Set("_order", p.SortDir)
	return v
}

// ParseValues reads a Params from query values. Both spellings are
// accepted: price_gte|priceMin, price_lte|priceMax, _sort|sortBy,
// _order|sortDir, _page|page, _limit|pageSize. _sort may name either a sort
// key or the underlying field.
func ParseValues(v url.Values) (Params, error) {
	p := Params{
		Q:        strings.TrimSpace(v.Get("q")),
		Category: strings.TrimSpace(v.Get("category")),
		Level:    strings.TrimSpace(v.Get("level")),
		SortBy:   sortKey(first(v, "sortBy", "_sort")),
		SortDir:  strings.ToLower(first(v, "sortDir", "_order")),
	}

	var err error
	if p.PriceMin, err = parseFloat(v, "priceMin", "price_gte"); err != nil {
		return Params{}, err
	}
	if p.PriceMax, err = parseFloat(v, "priceMax", "price_lte"); err != nil {
		return Params{}, err
	}
	if p.Page, err = parseInt(v, "page", "_page"); err != nil {
		return Params{}, err
	}
	if p.PageSize, err = parseInt(v, "pageSize", "_limit"); err != nil {
		return Params{}, err
	}
	return p, nil
}

func sortKey(s string) string {
	s = strings.TrimSpace(s)
	for key, field := range sortFields {
		if strings.EqualFold(s, key) || strings.EqualFold(s, field) {
			return key
		}
	}
	return s
}

func first(v url.Values, keys ...string) string {
	for _, k := range keys {
		if s := strings.TrimSpace(v.Get(k)); s != "" {
			return s
		}
	}
	return ""
}

func parseFloat(v url.Values, keys ...string) (*float64, error) {
	s := first(v, keys...)
	if s == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("query: %s: invalid number %q", keys[0], s)
	}
	return &f, nil
}

func parseInt(v url.Values, keys ...string) (int, error) {
	s := first(v, keys...)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("query: %s: invalid integer %q", keys[0], s)
	}
	return n, nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Float is a convenience for building price bounds.
func Float(f float64) *float64 { return &f }
