// Package scouting turns raw backend analysis into the normalized scouting view model
// and derives confidence and "how to win" insights from it.
// All functions here are pure; the only injected dependency is the mapper's clock.
package scouting

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/maxviazov/tactical-scout-service/internal/model"
)

const (
	maxChampionPool     = 5
	maxRisksPerPlayer   = 2
	maxDraftRisks       = 8
	riskPriorityBase    = 50
	riskPriorityPerGame = 10
	riskPriorityCap     = 95
	titleMaxRunes       = 50
	defaultWinRate      = 50
	fallbackStrength    = "Analysis"
	highEffectiveness   = 70.0
	mediumEffectiveness = 50.0
)

// Mapper converts backend payloads into scouting reports.
type Mapper struct {
	now func() time.Time
}

// Option customizes a Mapper.
type Option func(*Mapper)

// WithClock overrides the time source used for LastUpdated.
func WithClock(now func() time.Time) Option {
	return func(m *Mapper) {
		if now != nil {
			m.now = now
		}
	}
}

func NewMapper(opts ...Option) *Mapper {
	m := &Mapper{now: time.Now}
	for _, o := range opts {
		o(m)
	}
	return m
}

// Map builds a report from raw. It never fails: anything missing degrades to defaults.
func (m *Mapper) Map(raw *model.BackendPayload, requestedTeam string) model.ScoutingReport {
	if raw == nil {
		raw = &model.BackendPayload{}
	}

	name := requestedTeam
	if raw.Team != nil && strings.TrimSpace(raw.Team.Name) != "" {
		name = raw.Team.Name
	}
	matches := 0
	if raw.MatchesAnalyzed.Valid && raw.MatchesAnalyzed.Value > 0 {
		matches = raw.MatchesAnalyzed.Value
	}

	var avgMinutes *float64
	if raw.TeamStrategy != nil && raw.TeamStrategy.AverageGameLength != nil {
		avgMinutes = raw.TeamStrategy.AverageGameLength.AverageMinutes.Ptr()
	}

	var comps []model.Composition
	if raw.TeamCompositions != nil {
		comps = raw.TeamCompositions.Compositions
	}
	record, winRate := teamRecord(comps, matches)

	var tendencies model.PlayerList
	if raw.PlayerTendencies != nil {
		tendencies = raw.PlayerTendencies.Players
	}
	players := mapPlayers(tendencies)

	var strategies []model.BackendStrategy
	if raw.CounterStrategies != nil {
		strategies = raw.CounterStrategies.Strategies
	}

	return model.ScoutingReport{
		TeamName:          name,
		Record:            record,
		WinRate:           winRate,
		AvgGameTime:       FormatGameTime(avgMinutes),
		Players:           players,
		RecentMatches:     []model.RecentMatch{},
		Strengths:         mapStrengths(raw.TeamStrategy),
		CounterStrategies: mapStrategies(strategies),
		DraftRisks:        draftRisks(tendencies, players),
		LastUpdated:       m.now().UTC().Format(time.RFC3339),
		LimitedDataMode:   raw.MockDataUsed.Value,
		MatchesAnalyzed:   matches,
	}
}

// FormatGameTime renders fractional minutes as "M:SS"; nil or NaN yields the placeholder.
func FormatGameTime(minutes *float64) string {
	if minutes == nil || math.IsNaN(*minutes) || math.IsInf(*minutes, 0) {
		return model.Placeholder
	}
	v := math.Max(0, *minutes)
	whole := math.Floor(v)
	secs := int(math.Round((v - whole) * 60))
	mins := int(whole)
	if secs == 60 {
		mins++
		secs = 0
	}
	return fmt.Sprintf("%d:%02d", mins, secs)
}

func teamRecord(comps []model.Composition, matches int) (model.Record, int) {
	games, wins := 0, 0
	for _, c := range comps {
		games += c.Games.Value
		wins += c.Wins.Value
	}

	var rec model.Record
	if games > 0 {
		rec = model.Record{Wins: wins, Losses: max(0, games-wins)}
	} else {
		w := matches / 2
		rec = model.Record{Wins: w, Losses: max(0, matches-w)}
	}

	switch {
	case games > 0:
		return rec, clampPercent(math.Round(100 * float64(wins) / float64(games)))
	case len(comps) > 0 && comps[0].WinRate.Valid:
		return rec, clampPercent(math.Round(comps[0].WinRate.Value))
	}
	return rec, defaultWinRate
}

func mapPlayers(list model.PlayerList) []model.PlayerStat {
	out := make([]model.PlayerStat, 0, len(list))
	for i, p := range list {
		pool := make([]string, 0, maxChampionPool)
		for _, cg := range p.MostPlayed {
			if len(pool) == maxChampionPool {
				break
			}
			pool = append(pool, cg.Champion)
		}
		if len(pool) == 0 {
			pool = append(pool, model.Placeholder)
		}

		wr := 0
		if p.MatchupWinrate != nil && p.MatchupWinrate.Overall.Valid {
			wr = clampPercent(math.Round(p.MatchupWinrate.Overall.Value))
		}

		out = append(out, model.PlayerStat{
			Name:         p.DisplayName(),
			Role:         model.Roles[i%len(model.Roles)],
			KDA:          model.Placeholder,
			WinRate:      wr,
			Tendency:     tendencyOf(p),
			ChampionPool: pool,
		})
	}
	return out
}

func tendencyOf(p model.PlayerTendency) model.Tendency {
	if p.EarlyDeathFrequency != nil && p.EarlyDeathFrequency.Classification == "high" {
		return model.TendencyAggressive
	}
	if p.PerformanceVariance != nil && p.PerformanceVariance.Classification == "low" {
		return model.TendencyDefensive
	}
	return model.TendencyBalanced
}

func mapStrengths(ts *model.TeamStrategy) []model.TeamStrength {
	var out []model.TeamStrength
	if ts != nil {
		metrics := []struct {
			area   string
			metric *model.Metric
		}{
			{"Early Game", ts.EarlyAggression},
			{"Objective Control", ts.ObjectiveContestRate},
			{"Risk Volatility", ts.RiskVolatility},
		}
		for _, mt := range metrics {
			if mt.metric == nil || !mt.metric.Score.Valid {
				continue
			}
			out = append(out, model.TeamStrength{
				Area:   mt.area,
				Rating: clampPercent(math.Round(mt.metric.Score.Value)),
				Trend:  trendOf(mt.metric.Classification),
			})
		}
	}
	if len(out) == 0 {
		out = []model.TeamStrength{{Area: fallbackStrength, Rating: defaultWinRate, Trend: model.TrendStable}}
	}
	return out
}

func trendOf(classification string) model.Trend {
	switch classification {
	case "high":
		return model.TrendUp
	case "low":
		return model.TrendDown
	}
	return model.TrendStable
}

func mapStrategies(in []model.BackendStrategy) []model.CounterStrategy {
	out := make([]model.CounterStrategy, 0, len(in))
	for i, s := range in {
		out = append(out, model.CounterStrategy{
			ID:            fmt.Sprintf("cs-%d", i+1),
			Title:         truncateTitle(s.StrategyText),
			Description:   s.StrategyText,
			Effectiveness: effectivenessOf(s.ConfidenceScore.Ptr()),
			Phase:         model.PhaseMid,
		})
	}
	return out
}

func truncateTitle(text string) string {
	r := []rune(text)
	if len(r) <= titleMaxRunes {
		return text
	}
	return string(r[:titleMaxRunes]) + "…"
}

func effectivenessOf(score *float64) model.Effectiveness {
	switch {
	case score == nil || math.IsNaN(*score):
		return model.EffectivenessMedium
	case *score >= highEffectiveness:
		return model.EffectivenessHigh
	case *score >= mediumEffectiveness:
		return model.EffectivenessMedium
	}
	return model.EffectivenessLow
}

// draftRisks expects players to be the result of mapPlayers(list), index-aligned.
func draftRisks(list model.PlayerList, players []model.PlayerStat) []model.DraftRisk {
	var out []model.DraftRisk
	for i, p := range list {
		n := min(maxRisksPerPlayer, len(p.MostPlayed))
		for _, cg := range p.MostPlayed[:n] {
			out = append(out, model.DraftRisk{
				Champion: cg.Champion,
				Role:     players[i].Role,
				Threat:   model.ThreatPick,
				Priority: RiskPriority(cg.Games),
				Notes:    fmt.Sprintf("%s – %d games", players[i].Name, cg.Games),
			})
		}
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].Priority > out[b].Priority })
	if len(out) > maxDraftRisks {
		out = out[:maxDraftRisks]
	}
	if out == nil {
		out = []model.DraftRisk{}
	}
	return out
}

// RiskPriority scores a most-played champion: 50 + 10 per game, capped at 95.
func RiskPriority(games int) int {
	return max(0, min(riskPriorityCap, riskPriorityBase+games*riskPriorityPerGame))
}

func clampPercent(v float64) int {
	if math.IsNaN(v) {
		return 0
	}
	return int(math.Max(0, math.Min(100, v)))
}
