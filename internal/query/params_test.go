package query

import (
	"net/url"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseValues_BothSpellings(t *testing.T) {
	camel, err := ParseValues(url.Values{
		"q":        {" react "},
		"category": {"Development"},
		"priceMin": {"0"},
		"priceMax": {"1500"},
		"sortBy":   {"price"},
		"sortDir":  {"ASC"},
		"page":     {"2"},
		"pageSize": {"5"},
	})
	if err != nil {
		t.Fatalf("camelCase: %v", err)
	}

	server, err := ParseValues(url.Values{
		"q":         {"react"},
		"category":  {"Development"},
		"price_gte": {"0"},
		"price_lte": {"1500"},
		"_sort":     {"price"},
		"_order":    {"asc"},
		"_page":     {"2"},
		"_limit":    {"5"},
	})
	if err != nil {
		t.Fatalf("server spelling: %v", err)
	}

	if diff := cmp.Diff(camel, server); diff != "" {
		t.Errorf("spellings disagree (-camel +server):\n%s", diff)
	}
	if camel.Q != "react" {
		t.Errorf("Expected trimmed q, got %q", camel.Q)
	}
	if camel.PriceMin == nil || *camel.PriceMin != 0 {
		t.Errorf("Expected priceMin 0, got %v", camel.PriceMin)
	}
	if camel.PriceMax == nil || *camel.PriceMax != 1500 {
		t.Errorf("Expected priceMax 1500, got %v", camel.PriceMax)
	}
	if camel.SortDir != "asc" {
		t.Errorf("Expected sortDir asc, got %q", camel.SortDir)
	}
}

func TestParseValues_SortField(t *testing.T) {
	p, err := ParseValues(url.Values{"_sort": {"publishedAt"}})
	if err != nil {
		t.Fatal(err)
	}
	if p.SortBy != SortNewest {
		t.Errorf("Expected sortBy %q, got %q", SortNewest, p.SortBy)
	}
}

func TestParseValues_Empty(t *testing.T) {
	p, err := ParseValues(url.Values{})
	if err != nil {
		t.Fatal(err)
	}
	if p.PriceMin != nil || p.PriceMax != nil {
		t.Errorf("Expected no price bounds, got %v %v", p.PriceMin, p.PriceMax)
	}

	want := Params{SortBy: SortNewest, SortDir: DirDesc, Page: 1, PageSize: 12}
	if diff := cmp.Diff(want, p.Normalized()); diff != "" {
		t.Errorf("normalized mismatch (-want +got):\n%s", diff)
	}
}

func TestParseValues_Invalid(t *testing.T) {
	tests := []struct {
		values url.Values
		field  string
	}{
		{url.Values{"priceMin": {"cheap"}}, "priceMin"},
		{url.Values{"_limit": {"ten"}}, "pageSize"},
	}
	for _, tt := range tests {
		_, err := ParseValues(tt.values)
		if err == nil || !strings.Contains(err.Error(), tt.field) {
			t.Errorf("Expected an error naming %s, got %v", tt.field, err)
		}
	}
}

func TestRemoteParams(t *testing.T) {
	tests := []struct {
		name string
		p    Params
		want string
	}{
		{
			name: "defaults",
			p:    Params{},
			want: "_limit=12&_order=desc&_page=1&_sort=publishedAt",
		},
		{
			name: "full",
			p: Params{
				Q: "js", Category: "Development", Level: "Beginner",
				PriceMin: Float(0), PriceMax: Float(19.5),
				SortBy: "title", SortDir: "asc", Page: 3, PageSize: 6,
			},
			want: "_limit=6&_order=asc&_page=3&_sort=title&category=Development&level=Beginner&price_gte=0&price_lte=19.5&q=js",
		},
		{
			name: "unknown sort",
			p:    Params{SortBy: "hype", SortDir: "sideways"},
			want: "_limit=12&_order=desc&_page=1&_sort=publishedAt",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RemoteParams(tt.p).Encode(); got != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, got)
			}
		})
	}
}
