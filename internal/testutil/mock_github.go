// Package testutil provides testing utilities for the issue board.
package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"time"
)

// SearchPath is the path the mock serves search results on.
const SearchPath = "/search/issues"

// MockResponse defines the behavior for a mock endpoint response.
type MockResponse struct {
	StatusCode int
	Body       string
	Headers    map[string]string
	Delay      time.Duration
}

// MockGitHub is a configurable mock of the search API.
type MockGitHub struct {
	server   *httptest.Server
	mu       sync.RWMutex
	handlers map[string]http.HandlerFunc

	requestCount int
	lastRequest  *http.Request
}

// NewMockGitHub starts a mock API server. Unconfigured paths answer 404.
func NewMockGitHub() *MockGitHub {
	mock := &MockGitHub{
		handlers: make(map[string]http.HandlerFunc),
	}

	mock.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mock.mu.Lock()
		mock.requestCount++
		mock.lastRequest = r.Clone(r.Context())
		handler, exists := mock.handlers[r.URL.Path]
		mock.mu.Unlock()

		if exists {
			handler(w, r)
			return
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message": "Not Found"}`))
	}))

	return mock
}

// URL returns the mock server URL.
func (m *MockGitHub) URL() string {
	return m.server.URL
}

// Close shuts down the mock server.
func (m *MockGitHub) Close() {
	m.server.Close()
}

// Reset clears request tracking.
func (m *MockGitHub) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestCount = 0
	m.lastRequest = nil
}

// SetHandler sets a custom handler for a specific path.
func (m *MockGitHub) SetHandler(path string, handler http.HandlerFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[path] = handler
}

// SetResponse configures a canned response for a path.
func (m *MockGitHub) SetResponse(path string, resp MockResponse) {
	m.SetHandler(path, func(w http.ResponseWriter, r *http.Request) {
		if resp.Delay > 0 {
			time.Sleep(resp.Delay)
		}
		for key, value := range resp.Headers {
			w.Header().Set(key, value)
		}
		w.WriteHeader(resp.StatusCode)
		if resp.Body != "" {
			w.Write([]byte(resp.Body))
		}
	})
}

// SetSearchResponse configures the search endpoint.
func (m *MockGitHub) SetSearchResponse(resp MockResponse) {
	m.SetResponse(SearchPath, resp)
}

// RequestCount returns the number of requests served.
func (m *MockGitHub) RequestCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.requestCount
}

// LastRequest returns a copy of the most recent request, or nil.
func (m *MockGitHub) LastRequest() *http.Request {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastRequest
}

// Issue is a search item fixture.
type Issue struct {
	ID        int64
	Number    int
	Title     string
	State     string
	Assignee  string // login, empty for unassigned
	Milestone string // title, empty for none
	UpdatedAt time.Time
}

// SearchBody renders issues as a search response body.
func SearchBody(issues ...Issue) string {
	type user struct {
		Login   string `json:"login"`
		HTMLURL string `json:"html_url"`
	}
	type milestone struct {
		Title string `json:"title"`
	}
	type item struct {
		ID        int64      `json:"id"`
		Number    int        `json:"number"`
		HTMLURL   string     `json:"html_url"`
		Title     string     `json:"title"`
		State     string     `json:"state"`
		Assignee  *user      `json:"assignee"`
		Milestone *milestone `json:"milestone"`
		UpdatedAt string     `json:"updated_at"`
	}

	items := make([]item, 0, len(issues))
	for _, is := range issues {
		it := item{
			ID:        is.ID,
			Number:    is.Number,
			HTMLURL:   fmt.Sprintf("https://github.com/antergos/repo/issues/%d", is.Number),
			Title:     is.Title,
			State:     is.State,
			UpdatedAt: is.UpdatedAt.UTC().Format(time.RFC3339),
		}
		if it.State == "" {
			it.State = "open"
		}
		if is.Assignee != "" {
			it.Assignee = &user{Login: is.Assignee, HTMLURL: "https://github.com/" + is.Assignee}
		}
		if is.Milestone != "" {
			it.Milestone = &milestone{Title: is.Milestone}
		}
		items = append(items, it)
	}

	body, err := json.Marshal(map[string]any{
		"total_count":        len(items),
		"incomplete_results": false,
		"items":              items,
	})
	if err != nil {
		panic(err)
	}
	return string(body)
}

// NewSearchResponse creates a 200 OK search response with rate limit headers.
func NewSearchResponse(issues ...Issue) MockResponse {
	return MockResponse{
		StatusCode: http.StatusOK,
		Body:       SearchBody(issues...),
		Headers:    searchHeaders(9),
	}
}

// NewRateLimitedResponse creates the 403 the API sends once the window is spent.
func NewRateLimitedResponse() MockResponse {
	return MockResponse{
		StatusCode: http.StatusForbidden,
		Body:       `{"message": "API rate limit exceeded"}`,
		Headers:    searchHeaders(0),
	}
}

// NewServerErrorResponse creates a 500 Internal Server Error response.
func NewServerErrorResponse() MockResponse {
	return MockResponse{
		StatusCode: http.StatusInternalServerError,
		Body:       `{"message": "Server Error"}`,
		Headers: map[string]string{
			"Content-Type": "application/json; charset=utf-8",
		},
	}
}

// NewMalformedResponse creates a 200 OK response whose body is not JSON.
func NewMalformedResponse() MockResponse {
	return MockResponse{
		StatusCode: http.StatusOK,
		Body:       `{"items": [`,
		Headers: map[string]string{
			"Content-Type": "application/json; charset=utf-8",
		},
	}
}

func searchHeaders(remaining int) map[string]string {
	return map[string]string{
		"Content-Type":          "application/json; charset=utf-8",
		"X-RateLimit-Limit":     "10",
		"X-RateLimit-Remaining": strconv.Itoa(remaining),
		"X-RateLimit-Reset":     strconv.FormatInt(time.Now().Add(time.Minute).Unix(), 10),
		"X-RateLimit-Resource":  "search",
	}
}
