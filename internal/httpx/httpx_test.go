package httpx

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"
)

const (
	exampleURL      = "https://example.com"
	expectedNoError = "Expected no error, got %v"
)

// Mock HTTP RoundTripper for testing
type mockRoundTripper struct {
	responses []*http.Response
	errors    []error
	index     int
	mux       sync.Mutex
}

func (m *mockRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	m.mux.Lock()
	defer m.mux.Unlock()

	if m.index >= len(m.responses) {
		return nil, errors.New("no more responses")
	}

	resp := m.responses[m.index]
	err := m.errors[m.index]
	m.index++
	return resp, err
}

func newMockClient(responses []*http.Response, errs []error) *http.Client {
	for i := len(errs); i < len(responses); i++ {
		errs = append(errs, nil)
	}
	return &http.Client{Transport: &mockRoundTripper{responses: responses, errors: errs}}
}

func newMockResponse(statusCode int, body string, headers map[string]string) *http.Response {
	header := http.Header{}
	for k, v := range headers {
		header.Set(k, v)
	}
	return &http.Response{
		StatusCode: statusCode,
		Body:       io.NopCloser(bytes.NewBufferString(body)),
		Header:     header,
	}
}

func getRequest(ctx context.Context) (*http.Request, error) {
	return http.NewRequestWithContext(ctx, http.MethodGet, exampleURL, nil)
}

// errReader fails mid-body.
type errReader struct{}

func (errReader) Read([]byte) (int, error) { return 0, errors.New("connection reset by peer") }
func (errReader) Close() error             { return nil }

func TestSnippet(t *testing.T) {
	testCases := []struct {
		input    string
		max      int
		expected string
	}{
		{"short text", 100, "short text"},
		{"", 100, ""},
		{"  trimmed  ", 100, "trimmed"},
		{"long text that should be truncated", 10, "long text …"},
	}

	for _, tc := range testCases {
		result := snippet([]byte(tc.input), tc.max)
		if result != tc.expected {
			t.Errorf("snippet(%q, %d) = %q, want %q", tc.input, tc.max, result, tc.expected)
		}
	}
}

func TestHTTPError(t *testing.T) {
	err := &HTTPError{
		Method:     "GET",
		URL:        exampleURL,
		StatusCode: 404,
		Body:       []byte("Not Found"),
	}

	expected := "http error: GET https://example.com status=404 body=Not Found"
	if err.Error() != expected {
		t.Errorf("HTTPError.Error() = %q, want %q", err.Error(), expected)
	}
}

func TestDoSuccess(t *testing.T) {
	client := newMockClient([]*http.Response{newMockResponse(200, `{"success": true}`, nil)}, nil)

	resp, body, err := Do(context.Background(), client, getRequest)
	if err != nil {
		t.Fatalf(expectedNoError, err)
	}
	if resp.StatusCode != 200 {
		t.Errorf("Expected status code 200, got %d", resp.StatusCode)
	}
	if string(body) != `{"success": true}` {
		t.Errorf("Expected body %q, got %q", `{"success": true}`, string(body))
	}
}

func TestDoBuildReqError(t *testing.T) {
	client := newMockClient(nil, nil)

	_, _, err := Do(context.Background(), client, func(ctx context.Context) (*http.Request, error) {
		return nil, errors.New("request build error")
	})

	if err == nil || !strings.Contains(err.Error(), "request build error") {
		t.Errorf("Expected request build error, got %v", err)
	}
	if IsNetworkError(err) {
		t.Error("Expected a build error to not be classified as network error")
	}
}

func TestDoTransportErrorIsNetworkClass(t *testing.T) {
	client := newMockClient([]*http.Response{nil}, []error{errors.New("dial tcp 127.0.0.1:4000: connect: connection refused")})

	_, _, err := Do(context.Background(), client, getRequest)

	if !IsNetworkError(err) {
		t.Fatalf("Expected network error, got %T %v", err, err)
	}
	var ne *NetworkError
	errors.As(err, &ne)
	if ne.Op != "GET https://example.com" {
		t.Errorf("Expected op 'GET https://example.com', got %q", ne.Op)
	}
	if ne.Timeout() {
		t.Error("Expected refused connection to not be a timeout")
	}
}

func TestDoBodyReadErrorIsNetworkClass(t *testing.T) {
	resp := &http.Response{StatusCode: 200, Body: errReader{}, Header: http.Header{}}
	client := newMockClient([]*http.Response{resp}, nil)

	_, _, err := Do(context.Background(), client, getRequest)
	if !IsNetworkError(err) {
		t.Errorf("Expected network error, got %v", err)
	}
}

func TestDoNon2xxIsApplicationClass(t *testing.T) {
	client := newMockClient([]*http.Response{
		newMockResponse(404, `{}`, map[string]string{"X-Test": "1"}),
	}, nil)

	resp, body, err := Do(context.Background(), client, getRequest)

	var herr *HTTPError
	if !errors.As(err, &herr) {
		t.Fatalf("Expected *HTTPError, got %T %v", err, err)
	}
	if IsNetworkError(err) {
		t.Error("Expected HTTP error to not be classified as network error")
	}
	if herr.StatusCode != 404 || herr.Header.Get("X-Test") != "1" {
		t.Errorf("Unexpected HTTPError contents: %+v", herr)
	}
	if resp == nil || string(body) != "{}" {
		t.Errorf("Expected response and body to be returned alongside the error")
	}
}

func TestDoNoRetryOn5xx(t *testing.T) {
	client := newMockClient([]*http.Response{
		newMockResponse(503, `{"error": "unavailable"}`, nil),
		newMockResponse(200, `{"success": true}`, nil),
	}, nil)

	_, _, err := Do(context.Background(), client, getRequest)

	var herr *HTTPError
	if !errors.As(err, &herr) || herr.StatusCode != 503 {
		t.Errorf("Expected the first 503 to be returned without retry, got %v", err)
	}
}

func TestDoTimeoutIsNetworkClass(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, _, err := Do(ctx, server.Client(), func(ctx context.Context) (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodGet, server.URL, nil)
	})

	var ne *NetworkError
	if !errors.As(err, &ne) {
		t.Fatalf("Expected network error, got %v", err)
	}
	if !ne.Timeout() {
		t.Errorf("Expected timeout classification, got %v", ne.Err)
	}
}

func TestDoJSON(t *testing.T) {
	client := newMockClient([]*http.Response{
		newMockResponse(200, `{"name": "test"}`, map[string]string{"X-Total-Count": "13"}),
	}, nil)

	var out struct {
		Name string `json:"name"`
	}
	header, err := DoJSON(context.Background(), client, getRequest, &out)
	if err != nil {
		t.Fatalf(expectedNoError, err)
	}
	if out.Name != "test" {
		t.Errorf("Expected name 'test', got %q", out.Name)
	}
	if header.Get("X-Total-Count") != "13" {
		t.Errorf("Expected X-Total-Count header to be returned, got %q", header.Get("X-Total-Count"))
	}
}

func TestDoJSONEmptyBody(t *testing.T) {
	client := newMockClient([]*http.Response{newMockResponse(200, ``, nil)}, nil)

	var out map[string]any
	if _, err := DoJSON(context.Background(), client, getRequest, &out); err != nil {
		t.Errorf(expectedNoError, err)
	}
}

func TestDoJSONInvalidJSON(t *testing.T) {
	client := newMockClient([]*http.Response{newMockResponse(200, `{invalid json}`, nil)}, nil)

	var out map[string]any
	_, err := DoJSON(context.Background(), client, getRequest, &out)
	if err == nil || !strings.Contains(err.Error(), "json parse error") {
		t.Errorf("Expected JSON parse error, got %v", err)
	}
}
