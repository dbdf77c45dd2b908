// Package ratelimit tracks the search API rate limit and gates requests.
// It reads the X-RateLimit-Remaining and X-RateLimit-Reset headers so that
// every process sharing a Redis instance stops issuing requests once the
// window is spent, instead of collecting 403 responses.
package ratelimit

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// Response headers carrying rate limit state.
const (
	HeaderLimit     = "X-RateLimit-Limit"
	HeaderRemaining = "X-RateLimit-Remaining"
	HeaderReset     = "X-RateLimit-Reset"
	HeaderResource  = "X-RateLimit-Resource"
)

// ResourceSearch is the rate limit bucket of the search endpoints.
const ResourceSearch = "search"

// LowThreshold marks the window as unhealthy when Remaining drops below it.
// The search bucket only allows 10 (anonymous) or 30 (token) requests a minute.
const LowThreshold = 3

// ErrMissingReset is returned when Remaining is present without a reset time.
var ErrMissingReset = errors.New("X-RateLimit-Reset header missing")

// State is the rate limit window of one resource bucket.
type State struct {
	// Resource is the bucket name, e.g. "search".
	Resource string `json:"resource"`

	// Limit is the number of requests allowed per window.
	Limit int `json:"limit"`

	// Remaining is the number of requests left in the current window.
	Remaining int `json:"remaining"`

	// ResetAt is when the window resets.
	ResetAt time.Time `json:"reset_at"`

	// LastUpdate is when this state was last refreshed from headers.
	LastUpdate time.Time `json:"last_update"`

	// IsHealthy is true while Remaining >= LowThreshold.
	IsHealthy bool `json:"is_healthy"`
}

// IsStale returns true if the state is older than maxAge.
func (s *State) IsStale(maxAge time.Duration) bool {
	return time.Since(s.LastUpdate) > maxAge
}

// NeedsBlock returns true while the window is spent and has not reset yet.
func (s *State) NeedsBlock() bool {
	return s.Remaining <= 0 && s.TimeUntilReset() > 0
}

// IsLow returns true when few requests are left but some still are.
func (s *State) IsLow() bool {
	return s.Remaining > 0 && s.Remaining < LowThreshold
}

// TimeUntilReset returns the duration until the window resets, or 0.
func (s *State) TimeUntilReset() time.Duration {
	d := time.Until(s.ResetAt)
	if d < 0 {
		return 0
	}
	return d
}

// UpdateHealth recomputes IsHealthy from Remaining.
func (s *State) UpdateHealth() {
	s.IsHealthy = s.Remaining >= LowThreshold
}

// ParseHeaders extracts rate limit state from response headers.
// The bool result is false when the response carries no rate limit headers.
func ParseHeaders(headers http.Header) (*State, bool, error) {
	remainStr := headers.Get(HeaderRemaining)
	if remainStr == "" {
		return nil, false, nil
	}

	remaining, err := strconv.Atoi(remainStr)
	if err != nil {
		return nil, false, fmt.Errorf("parse %s header: %w", HeaderRemaining, err)
	}

	resetStr := headers.Get(HeaderReset)
	if resetStr == "" {
		return nil, false, ErrMissingReset
	}
	resetEpoch, err := strconv.ParseInt(resetStr, 10, 64)
	if err != nil {
		return nil, false, fmt.Errorf("parse %s header: %w", HeaderReset, err)
	}

	limit := 0
	if limitStr := headers.Get(HeaderLimit); limitStr != "" {
		if limit, err = strconv.Atoi(limitStr); err != nil {
			return nil, false, fmt.Errorf("parse %s header: %w", HeaderLimit, err)
		}
	}

	resource := headers.Get(HeaderResource)
	if resource == "" {
		resource = ResourceSearch
	}

	state := &State{
		Resource:   resource,
		Limit:      limit,
		Remaining:  remaining,
		ResetAt:    time.Unix(resetEpoch, 0),
		LastUpdate: time.Now(),
	}
	state.UpdateHealth()

	return state, true, nil
}
