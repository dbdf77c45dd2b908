package ratelimit

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Prometheus metrics for rate limit tracking.
var (
	rateLimitRemaining = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "github_rate_limit_remaining",
		Help: "Requests remaining in the current rate limit window by resource",
	}, []string{"resource"})

	rateLimitBlocksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "github_rate_limit_blocks_total",
		Help: "Total number of requests blocked because the rate limit window was spent",
	}, []string{"resource"})
)

// Tracker stores the rate limit window of one resource in Redis and gates requests.
type Tracker struct {
	redis    *redis.Client
	resource string
	logger   zerolog.Logger
}

// NewTracker creates a tracker for resource (ResourceSearch when empty).
func NewTracker(redisClient *redis.Client, resource string, logger zerolog.Logger) *Tracker {
	if resource == "" {
		resource = ResourceSearch
	}
	return &Tracker{
		redis:    redisClient,
		resource: resource,
		logger:   logger.With().Str("resource", resource).Logger(),
	}
}

// Resource returns the bucket this tracker gates.
func (t *Tracker) Resource() string {
	return t.resource
}

// Key returns the Redis key of field for resource.
func Key(resource, field string) string {
	return "github:rate_limit:" + resource + ":" + field
}

// GetState reads the current window from Redis.
// With nothing stored yet it returns an open window.
func (t *Tracker) GetState(ctx context.Context) (*State, error) {
	values, err := t.redis.MGet(ctx,
		Key(t.resource, "limit"),
		Key(t.resource, "remaining"),
		Key(t.resource, "reset"),
		Key(t.resource, "last_update"),
	).Result()
	if err != nil {
		return nil, fmt.Errorf("get rate limit state: %w", err)
	}

	if values[1] == nil || values[2] == nil {
		t.logger.Debug().Msg("No rate limit state in Redis, assuming open window")
		return &State{
			Resource:   t.resource,
			Remaining:  LowThreshold,
			ResetAt:    time.Now(),
			LastUpdate: time.Now(),
			IsHealthy:  true,
		}, nil
	}

	fields := make([]int64, len(values))
	for i, v := range values {
		if v == nil {
			continue
		}
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("rate limit field %d: unexpected type %T", i, v)
		}
		if fields[i], err = strconv.ParseInt(s, 10, 64); err != nil {
			return nil, fmt.Errorf("parse rate limit field %d: %w", i, err)
		}
	}

	state := &State{
		Resource:   t.resource,
		Limit:      int(fields[0]),
		Remaining:  int(fields[1]),
		ResetAt:    time.Unix(fields[2], 0),
		LastUpdate: time.Unix(fields[3], 0),
	}
	state.UpdateHealth()

	return state, nil
}

// UpdateFromHeaders stores the window advertised by a response.
// Responses without rate limit headers, or for another resource, are ignored.
func (t *Tracker) UpdateFromHeaders(ctx context.Context, headers http.Header) error {
	state, ok, err := ParseHeaders(headers)
	if err != nil {
		return err
	}
	if !ok || state.Resource != t.resource {
		return nil
	}

	// Keys expire with the window so a stale block never outlives it.
	ttl := state.TimeUntilReset() + time.Minute

	pipe := t.redis.TxPipeline()
	pipe.Set(ctx, Key(t.resource, "limit"), state.Limit, ttl)
	pipe.Set(ctx, Key(t.resource, "remaining"), state.Remaining, ttl)
	pipe.Set(ctx, Key(t.resource, "reset"), state.ResetAt.Unix(), ttl)
	pipe.Set(ctx, Key(t.resource, "last_update"), state.LastUpdate.Unix(), ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("store rate limit state in redis: %w", err)
	}

	rateLimitRemaining.WithLabelValues(t.resource).Set(float64(state.Remaining))

	switch {
	case state.Remaining <= 0:
		t.logger.Warn().
			Time("reset_at", state.ResetAt).
			Msg("Rate limit window spent - requests will be blocked until reset")
	case state.IsLow():
		t.logger.Warn().
			Int("remaining", state.Remaining).
			Time("reset_at", state.ResetAt).
			Msg("Rate limit window low")
	default:
		t.logger.Debug().
			Int("remaining", state.Remaining).
			Int("limit", state.Limit).
			Msg("Rate limit state updated")
	}

	return nil
}

// ShouldAllowRequest reports whether a request may be sent now.
func (t *Tracker) ShouldAllowRequest(ctx context.Context) (bool, error) {
	state, err := t.GetState(ctx)
	if err != nil {
		return false, err
	}

	if state.NeedsBlock() {
		t.logger.Error().
			Dur("wait_duration", state.TimeUntilReset()).
			Msg("Rate limit window spent - blocking request")
		rateLimitBlocksTotal.WithLabelValues(t.resource).Inc()
		return false, nil
	}

	return true, nil
}
