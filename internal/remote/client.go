// Package remote talks to the catalog REST API (json-server style resources:
// courses, users, enrollments, categories).
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"course-catalog/internal/config"
	"course-catalog/internal/domain"
	"course-catalog/internal/httpx"
	"course-catalog/internal/query"
)

const (
	contentTypeJSON = "application/json"
	acceptJSON      = contentTypeJSON

	headerTotalCount = "X-Total-Count"
	headerRequestID  = "X-Request-Id"
)

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	tr := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        50,
		MaxIdleConnsPerHost: 50,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}
	return &Client{
		BaseURL: config.NormalizeBaseURL(baseURL),
		HTTP: &http.Client{
			Timeout:   timeout,
			Transport: tr,
		},
	}
}

// Do sends one JSON request to path (relative to BaseURL). body, when not
// nil, is marshalled as the request body; out, when not nil, receives the
// decoded response.
func (c *Client) Do(ctx context.Context, method, path string, params url.Values, body, out any) (http.Header, error) {
	var payload []byte
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("remote: encode %s %s: %w", method, path, err)
		}
		payload = b
	}

	u := c.BaseURL + strings.TrimLeft(path, "/")
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	return httpx.DoJSON(ctx, c.HTTP, func(ctx context.Context) (*http.Request, error) {
		var rd io.Reader
		if payload != nil {
			rd = bytes.NewReader(payload)
		}
		r, err := http.NewRequestWithContext(ctx, method, u, rd)
		if err != nil {
			return nil, err
		}
		if payload != nil {
			r.Header.Set("Content-Type", contentTypeJSON)
		}
		r.Header.Set("Accept", acceptJSON)
		r.Header.Set(headerRequestID, uuid.NewString())
		return r, nil
	}, out)
}

func resource(entity, id string) string {
	return entity + "/" + url.PathEscape(strings.TrimSpace(id))
}

// Ping checks that the API answers at all.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.Do(ctx, http.MethodGet, domain.EntityUsers, nil, nil, nil)
	return err
}

// ListCourses returns all courses matching q, newest first.
func (c *Client) ListCourses(ctx context.Context, q string) ([]domain.Course, error) {
	params := url.Values{"_sort": {"publishedAt"}, "_order": {query.DirDesc}}
	if q = strings.TrimSpace(q); q != "" {
		params.Set("q", q)
	}
	var out []domain.Course
	if _, err := c.Do(ctx, http.MethodGet, domain.EntityCourses, params, nil, &out); err != nil {
		return nil, fmt.Errorf("remote: list courses: %w", err)
	}
	return nonNil(out), nil
}

// SearchCourses runs a paginated search server-side. The total comes from
// X-Total-Count, or the page length when the header is missing.
func (c *Client) SearchCourses(ctx context.Context, p query.Params) (domain.CoursePage, error) {
	p = p.Normalized()
	var items []domain.Course
	h, err := c.Do(ctx, http.MethodGet, domain.EntityCourses, query.RemoteParams(p), nil, &items)
	if err != nil {
		return domain.CoursePage{}, fmt.Errorf("remote: search courses: %w", err)
	}
	items = nonNil(items)
	total := len(items)
	if n, err := strconv.Atoi(strings.TrimSpace(h.Get(headerTotalCount))); err == nil && n > 0 {
		total = n
	}
	return domain.CoursePage{Items: items, Total: total, Page: p.Page, PageSize: p.PageSize}, nil
}

func (c *Client) GetCourse(ctx context.Context, id string) (domain.Course, error) {
	var out domain.Course
	if _, err := c.Do(ctx, http.MethodGet, resource(domain.EntityCourses, id), nil, nil, &out); err != nil {
		return domain.Course{}, fmt.Errorf("remote: get course %s: %w", id, err)
	}
	return out, nil
}

func (c *Client) CreateCourse(ctx context.Context, payload map[string]any) (domain.Course, error) {
	var out domain.Course
	if _, err := c.Do(ctx, http.MethodPost, domain.EntityCourses, nil, payload, &out); err != nil {
		return domain.Course{}, fmt.Errorf("remote: create course: %w", err)
	}
	return out, nil
}

func (c *Client) UpdateCourse(ctx context.Context, id string, patch map[string]any) (domain.Course, error) {
	var out domain.Course
	if _, err := c.Do(ctx, http.MethodPatch, resource(domain.EntityCourses, id), nil, patch, &out); err != nil {
		return domain.Course{}, fmt.Errorf("remote: update course %s: %w", id, err)
	}
	return out, nil
}

func (c *Client) DeleteCourse(ctx context.Context, id string) (domain.Course, error) {
	var out domain.Course
	if _, err := c.Do(ctx, http.MethodDelete, resource(domain.EntityCourses, id), nil, nil, &out); err != nil {
		return domain.Course{}, fmt.Errorf("remote: delete course %s: %w", id, err)
	}
	return out, nil
}

func (c *Client) Users(ctx context.Context, f query.UserFilter) ([]domain.User, error) {
	var out []domain.User
	if _, err := c.Do(ctx, http.MethodGet, domain.EntityUsers, f.Values(), nil, &out); err != nil {
		return nil, fmt.Errorf("remote: list users: %w", err)
	}
	return nonNil(out), nil
}

func (c *Client) CreateUser(ctx context.Context, payload map[string]any) (domain.User, error) {
	var out domain.User
	if _, err := c.Do(ctx, http.MethodPost, domain.EntityUsers, nil, payload, &out); err != nil {
		return domain.User{}, fmt.Errorf("remote: create user: %w", err)
	}
	return out, nil
}

func (c *Client) Enrollments(ctx context.Context, f query.EnrollmentFilter) ([]domain.Enrollment, error) {
	var out []domain.Enrollment
	if _, err := c.Do(ctx, http.MethodGet, domain.EntityEnrollments, f.Values(), nil, &out); err != nil {
		return nil, fmt.Errorf("remote: list enrollments: %w", err)
	}
	return nonNil(out), nil
}

func (c *Client) CreateEnrollment(ctx context.Context, payload map[string]any) (domain.Enrollment, error) {
	var out domain.Enrollment
	if _, err := c.Do(ctx, http.MethodPost, domain.EntityEnrollments, nil, payload, &out); err != nil {
		return domain.Enrollment{}, fmt.Errorf("remote: create enrollment: %w", err)
	}
	return out, nil
}

func (c *Client) UpdateEnrollment(ctx context.Context, id string, patch map[string]any) (domain.Enrollment, error) {
	var out domain.Enrollment
	if _, err := c.Do(ctx, http.MethodPatch, resource(domain.EntityEnrollments, id), nil, patch, &out); err != nil {
		return domain.Enrollment{}, fmt.Errorf("remote: update enrollment %s: %w", id, err)
	}
	return out, nil
}

// Categories reads the dedicated categories resource, which not every
// deployment has.
func (c *Client) Categories(ctx context.Context) ([]string, error) {
	var out []string
	if _, err := c.Do(ctx, http.MethodGet, "categories", nil, nil, &out); err != nil {
		return nil, fmt.Errorf("remote: list categories: %w", err)
	}
	return nonNil(out), nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
