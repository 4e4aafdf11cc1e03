package scouting

import (
	"fmt"
	"sort"

	"github.com/maxviazov/tactical-scout-service/internal/model"
)

const (
	maxStrategyBullets = 3
	maxBullets         = 6
)

// InsightFallback is the summary used when a report yields nothing actionable.
const InsightFallback = "Not enough scouting detail to build a game plan yet. Ask the coach assistant for a tailored plan."

// GenerateInsight builds the "how to win" summary for r.
func GenerateInsight(r *model.ScoutingReport) *model.Insight {
	if r == nil {
		return nil
	}
	bullets := make([]string, 0, maxBullets)

	for _, s := range RankStrategies(r.CounterStrategies, maxStrategyBullets) {
		text := s.Description
		if text == "" {
			text = s.Title
		}
		bullets = append(bullets, text)
	}

	if weak, ok := WeakestStrength(r.Strengths); ok {
		bullets = append(bullets, fmt.Sprintf(
			"Exploit %s's weaker %s (%d/100) by steering the game toward it.",
			r.TeamName, weak.Area, weak.Rating))
	}

	if ban, ok := TopRisk(r.DraftRisks, isBan); ok {
		bullets = append(bullets, fmt.Sprintf(
			"Ban %s (%s, priority %d): %s.", ban.Champion, ban.Role, ban.Priority, ban.Notes))
	}

	if len(bullets) < maxBullets {
		if pick, ok := TopRisk(r.DraftRisks, isPickOrFlex); ok {
			bullets = append(bullets, fmt.Sprintf(
				"Prepare an answer for %s on %s (priority %d): %s.", pick.Champion, pick.Role, pick.Priority, pick.Notes))
		}
	}

	if len(bullets) == 0 {
		return &model.Insight{Summary: InsightFallback, Bullets: bullets}
	}
	return &model.Insight{
		Summary: fmt.Sprintf("How to beat %s: focus on these angles.", r.TeamName),
		Bullets: bullets,
	}
}

// RankStrategies returns up to limit strategies ordered by effectiveness, ties kept in report order.
func RankStrategies(in []model.CounterStrategy, limit int) []model.CounterStrategy {
	ranked := append([]model.CounterStrategy(nil), in...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Effectiveness.Weight() > ranked[j].Effectiveness.Weight()
	})
	if limit >= 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// WeakestStrength returns the first lowest-rated strength.
func WeakestStrength(in []model.TeamStrength) (model.TeamStrength, bool) {
	if len(in) == 0 {
		return model.TeamStrength{}, false
	}
	weak := in[0]
	for _, s := range in[1:] {
		if s.Rating < weak.Rating {
			weak = s
		}
	}
	return weak, true
}

// TopRisk returns the first highest-priority risk accepted by keep.
func TopRisk(in []model.DraftRisk, keep func(model.DraftRisk) bool) (model.DraftRisk, bool) {
	var (
		top   model.DraftRisk
		found bool
	)
	for _, r := range in {
		if !keep(r) {
			continue
		}
		if !found || r.Priority > top.Priority {
			top, found = r, true
		}
	}
	return top, found
}

func isBan(r model.DraftRisk) bool { return r.Threat == model.ThreatBan }

func isPickOrFlex(r model.DraftRisk) bool {
	return r.Threat == model.ThreatPick || r.Threat == model.ThreatFlex
}
