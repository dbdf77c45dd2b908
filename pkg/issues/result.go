package issues

// Outcome is the terminal state of one fetch.
type Outcome string

const (
	// OutcomeSuccess is a 200 response that decoded.
	OutcomeSuccess Outcome = "success"

	// OutcomeOther is every other completion: transport error, non-200, bad JSON.
	OutcomeOther Outcome = "other"
)

// Result describes one completed fetch.
type Result struct {
	Outcome    Outcome
	StatusCode int

	// Summaries are in response order.
	Summaries []Summary

	// Count is len(Summaries).
	Count int

	// TotalCount is the number of matches the API reports, which may exceed Count.
	TotalCount int

	// Incomplete is set when the API timed out before finding every match.
	Incomplete bool

	// Ready is set once at least one issue was rendered.
	Ready bool
}

// Succeeded reports whether the fetch completed with a decoded 200.
func (r Result) Succeeded() bool {
	return r.Outcome == OutcomeSuccess
}
