package analysis

import "math"

// AggregateResult is the single merged payload returned to the caller once
// every requested tool reached a terminal state.
type AggregateResult struct {
	// OverallScore is the arithmetic mean of succeeded tool scores, rounded
	// to one decimal. Nil when zero tools succeeded: "analysis unavailable"
	// must never read as a zero score.
	OverallScore *float64 `json:"overall_score"`
	// Outcomes holds one entry per requested tool, in requested order.
	Outcomes []ToolOutcome `json:"outcomes"`

	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
	TimedOut  int `json:"timed_out"`
	Skipped   int `json:"skipped"`

	Mode Mode `json:"mode"`

	// HasPartialFailure is true when at least one requested tool did not
	// succeed, so callers can surface a degraded-results warning.
	HasPartialFailure bool `json:"has_partial_failure"`
}

// buildAggregate folds per-tool outcomes into the final result. Outcomes
// are assumed to already be in requested order.
func buildAggregate(mode Mode, outcomes []ToolOutcome) *AggregateResult {
	result := &AggregateResult{
		Outcomes: outcomes,
		Mode:     mode,
	}

	var sum float64
	for _, outcome := range outcomes {
		switch outcome.Status {
		case StatusSucceeded:
			result.Succeeded++
			sum += outcome.Output.Score
		case StatusFailed:
			result.Failed++
		case StatusTimedOut:
			result.TimedOut++
		case StatusSkipped:
			result.Skipped++
		}
	}

	if result.Succeeded > 0 {
		overall := RoundScore(sum / float64(result.Succeeded))
		result.OverallScore = &overall
	}
	result.HasPartialFailure = result.Succeeded < len(outcomes)
	return result
}

// SuccessfulTools returns the IDs of tools that succeeded, in requested
// order.
func (r *AggregateResult) SuccessfulTools() []string {
	var ids []string
	for _, outcome := range r.Outcomes {
		if outcome.Status == StatusSucceeded {
			ids = append(ids, outcome.ToolID)
		}
	}
	return ids
}

// FailedTools returns the IDs of tools that failed or timed out, in
// requested order. Skipped tools are not included; they never ran.
func (r *AggregateResult) FailedTools() []string {
	var ids []string
	for _, outcome := range r.Outcomes {
		if outcome.Status == StatusFailed || outcome.Status == StatusTimedOut {
			ids = append(ids, outcome.ToolID)
		}
	}
	return ids
}

// Insights concatenates every succeeded tool's insights in requested order,
// so the merged list is deterministic regardless of completion order.
func (r *AggregateResult) Insights() []string {
	var insights []string
	for _, outcome := range r.Outcomes {
		if outcome.Status == StatusSucceeded {
			insights = append(insights, outcome.Output.Insights...)
		}
	}
	return insights
}

// Recommendations concatenates every succeeded tool's recommendations in
// requested order.
func (r *AggregateResult) Recommendations() []string {
	var recs []string
	for _, outcome := range r.Outcomes {
		if outcome.Status == StatusSucceeded {
			recs = append(recs, outcome.Output.Recommendations...)
		}
	}
	return recs
}

// RoundScore rounds a score to the one-decimal precision used by every
// tool, so the aggregate mean matches individual tool scores exactly.
func RoundScore(score float64) float64 {
	return math.Round(score*10) / 10
}
