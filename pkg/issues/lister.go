package issues

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/Sternrassler/issue-board/pkg/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
)

// SearchPath is the issue search endpoint below the API root.
const SearchPath = "/search/issues"

// Prometheus metrics for issue listing.
var (
	fetchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "issue_list_fetches_total",
		Help: "Total issue list fetches by outcome",
	}, []string{"outcome"})

	listedItems = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "issue_list_items",
		Help: "Number of issues returned by the last successful fetch",
	})
)

// Errors returned by Fetch.
var (
	ErrUnexpectedStatus = errors.New("unexpected response status")
	ErrDecode           = errors.New("decode search response")
)

// StatusError is returned for any non-200 search response.
type StatusError struct {
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%v: %s", ErrUnexpectedStatus, e.Status)
}

func (e *StatusError) Unwrap() error {
	return ErrUnexpectedStatus
}

// Searcher issues GET requests against the API root.
// *client.Client satisfies it.
type Searcher interface {
	Get(ctx context.Context, path string, query url.Values) (*http.Response, error)
}

// Renderer displays summaries, e.g. by appending table rows.
type Renderer interface {
	Render(ctx context.Context, summaries []Summary) error
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(ctx context.Context, summaries []Summary) error

// Render calls f.
func (f RendererFunc) Render(ctx context.Context, summaries []Summary) error {
	return f(ctx, summaries)
}

// Config selects which issues are listed.
type Config struct {
	Owner string `yaml:"owner"`
	State string `yaml:"state"`
	Sort  string `yaml:"sort"`
	Order string `yaml:"order"`
}

// DefaultConfig lists the open issues of the antergos account, oldest first.
func DefaultConfig() Config {
	return Config{
		Owner: "antergos",
		State: "open",
		Sort:  "created",
		Order: "asc",
	}
}

// Validate reports missing query fields.
func (c Config) Validate() error {
	if c.Owner == "" {
		return fmt.Errorf("owner is required")
	}
	if c.State == "" {
		return fmt.Errorf("state is required")
	}
	return nil
}

// Query builds the search query parameters.
func (c Config) Query() url.Values {
	q := url.Values{}
	q.Set("q", "user:"+c.Owner+" state:"+c.State)
	if c.Sort != "" {
		q.Set("sort", c.Sort)
	}
	if c.Order != "" {
		q.Set("order", c.Order)
	}
	return q
}

// searchResponse is the wire shape of a search result page.
type searchResponse struct {
	TotalCount        int          `json:"total_count"`
	IncompleteResults bool         `json:"incomplete_results"`
	Items             []searchItem `json:"items"`
}

type searchItem struct {
	ID        int64      `json:"id"`
	HTMLURL   string     `json:"html_url"`
	Title     string     `json:"title"`
	State     string     `json:"state"`
	Assignee  *Assignee  `json:"assignee"`
	Milestone *Milestone `json:"milestone"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (it searchItem) summary() Summary {
	return Summary{
		ID:        it.ID,
		Title:     it.Title,
		State:     it.State,
		Assignee:  it.Assignee,
		Milestone: it.Milestone,
		UpdatedAt: it.UpdatedAt,
		URL:       it.HTMLURL,
	}
}

// Lister fetches and renders the issue list.
type Lister struct {
	searcher Searcher
	config   Config
	logger   zerolog.Logger
}

// Option customizes a Lister.
type Option func(*Lister)

// WithLogger replaces the component logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(l *Lister) {
		l.logger = logger
	}
}

// NewLister creates a lister over searcher.
func NewLister(searcher Searcher, cfg Config, opts ...Option) (*Lister, error) {
	if searcher == nil {
		return nil, fmt.Errorf("searcher is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	l := &Lister{
		searcher: searcher,
		config:   cfg,
		logger:   logging.NewLogger("issue-lister"),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// Config returns the query configuration.
func (l *Lister) Config() Config {
	return l.config
}

// Fetch issues the search request and decodes the result.
// For a non-200 or undecodable response the error comes with a Result
// carrying the status; for a transport error the Result is nil.
func (l *Lister) Fetch(ctx context.Context) (*Result, error) {
	resp, err := l.searcher.Get(ctx, SearchPath, l.config.Query())
	if err != nil {
		return nil, fmt.Errorf("search issues: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		return &Result{Outcome: OutcomeOther, StatusCode: resp.StatusCode},
			&StatusError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return &Result{Outcome: OutcomeOther, StatusCode: resp.StatusCode},
			fmt.Errorf("%w: %v", ErrDecode, err)
	}

	summaries := make([]Summary, 0, len(body.Items))
	for _, item := range body.Items {
		summaries = append(summaries, item.summary())
	}

	return &Result{
		Outcome:    OutcomeSuccess,
		StatusCode: resp.StatusCode,
		Summaries:  summaries,
		Count:      len(summaries),
		TotalCount: body.TotalCount,
		Incomplete: body.IncompleteResults,
	}, nil
}

// List fetches the issues and hands them to r.
// Failures are logged and swallowed: nothing is rendered and the returned
// Result carries OutcomeOther. An empty list renders nothing and is not Ready.
func (l *Lister) List(ctx context.Context, r Renderer) Result {
	start := time.Now()

	res, err := l.Fetch(ctx)
	if err != nil {
		fetchesTotal.WithLabelValues(string(OutcomeOther)).Inc()
		l.logger.Warn().
			Err(err).
			Dur("duration", time.Since(start)).
			Msg("Issue fetch failed - nothing rendered")
		if res == nil {
			return Result{Outcome: OutcomeOther}
		}
		return *res
	}

	fetchesTotal.WithLabelValues(string(OutcomeSuccess)).Inc()
	listedItems.Set(float64(res.Count))

	if res.Count == 0 {
		l.logger.Info().
			Str("owner", l.config.Owner).
			Dur("duration", time.Since(start)).
			Msg("No issues found")
		return *res
	}

	if err := r.Render(ctx, res.Summaries); err != nil {
		l.logger.Warn().Err(err).Int("count", res.Count).Msg("Render failed")
		return *res
	}

	res.Ready = true
	l.logger.Info().
		Str("owner", l.config.Owner).
		Int("count", res.Count).
		Int("total_count", res.TotalCount).
		Dur("duration", time.Since(start)).
		Msg("Issues rendered")

	return *res
}

// ListAsync runs List in the background.
// The channel delivers exactly one Result and is then closed.
func (l *Lister) ListAsync(ctx context.Context, r Renderer) <-chan Result {
	done := make(chan Result, 1)
	go func() {
		defer close(done)
		done <- l.List(ctx, r)
	}()
	return done
}
