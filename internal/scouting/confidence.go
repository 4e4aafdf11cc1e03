package scouting

import "github.com/maxviazov/tactical-scout-service/internal/model"

// EstimateConfidence grades how much match evidence backs r.
// The step function is intentionally coarse; clients depend on the exact breakpoints.
func EstimateConfidence(r *model.ScoutingReport) *model.Confidence {
	if r == nil {
		return nil
	}
	n := max(0, r.MatchesAnalyzed)
	c := &model.Confidence{MatchesAnalyzed: n}

	switch {
	case r.LimitedDataMode || n == 0:
		c.Score, c.Label = 25, model.ConfidenceLow
	case n <= 1:
		c.Score, c.Label = 20, model.ConfidenceLow
	case n <= 2:
		c.Score, c.Label = 40, model.ConfidenceLow
	case n <= 3:
		c.Score, c.Label = 55, model.ConfidenceMedium
	case n <= 4:
		c.Score, c.Label = 70, model.ConfidenceMedium
	case n <= 5:
		c.Score, c.Label = 80, model.ConfidenceHigh
	case n <= 9:
		c.Score, c.Label = 85, model.ConfidenceHigh
	default:
		c.Score, c.Label = min(98, 75+n), model.ConfidenceHigh
	}
	return c
}
