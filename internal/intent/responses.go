package intent

import (
	"fmt"
	"sort"
	"strings"

	"github.com/maxviazov/tactical-scout-service/internal/model"
	"github.com/maxviazov/tactical-scout-service/internal/scouting"
)

const (
	maxBans          = 5
	maxCounters      = 5
	maxWinStrategies = 2
	maxEarlyRisks    = 3
	maxTargets       = 3
	targetWinRate    = 55
)

// PredefinedResponse answers id from r. It always returns a non-empty string.
func PredefinedResponse(id ID, r *model.ScoutingReport) string {
	if r == nil {
		return fmt.Sprintf("No scouting data is loaded yet, so I can't answer about %s. Generate a report for an opponent first.", id.Label())
	}
	switch id {
	case BestBanStrategy:
		return banResponse(r)
	case CounterComp:
		return counterResponse(r)
	case WinConditions:
		return winResponse(r)
	case EarlyGamePlan:
		return earlyResponse(r)
	case WeakPlayerTargeting:
		return weakPlayerResponse(r)
	}
	return fmt.Sprintf("I don't have a prepared answer for %q. Try asking about %s.", id.Label(), topicList())
}

// Suggestion is shown when a question matches no intent.
func Suggestion() string {
	return fmt.Sprintf("I can answer questions about %s.", topicList())
}

func topicList() string {
	labels := make([]string, 0, len(table))
	for _, e := range table {
		labels = append(labels, e.id.Label())
	}
	return strings.Join(labels, ", ")
}

func banResponse(r *model.ScoutingReport) string {
	ranked := append([]model.DraftRisk(nil), r.DraftRisks...)
	sort.SliceStable(ranked, func(i, j int) bool {
		bi, bj := ranked[i].Threat == model.ThreatBan, ranked[j].Threat == model.ThreatBan
		if bi != bj {
			return bi
		}
		return ranked[i].Priority > ranked[j].Priority
	})
	if len(ranked) == 0 {
		return fmt.Sprintf("There is no draft risk data for %s yet, so I can't rank bans. Refresh the scouting report with more matches.", r.TeamName)
	}
	if len(ranked) > maxBans {
		ranked = ranked[:maxBans]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Recommended bans against %s:", r.TeamName)
	for i, d := range ranked {
		fmt.Fprintf(&b, "\n%d. %s (%s, priority %d)", i+1, d.Champion, d.Role, d.Priority)
		if d.Notes != "" {
			fmt.Fprintf(&b, ": %s", d.Notes)
		}
	}
	return b.String()
}

func counterResponse(r *model.ScoutingReport) string {
	var picked []model.CounterStrategy
	for _, s := range scouting.RankStrategies(r.CounterStrategies, -1) {
		if s.Effectiveness != model.EffectivenessHigh && s.Effectiveness != model.EffectivenessMedium {
			continue
		}
		picked = append(picked, s)
		if len(picked) == maxCounters {
			break
		}
	}
	if len(picked) == 0 {
		return fmt.Sprintf("No high or medium confidence counter strategies are available for %s yet.", r.TeamName)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "How to counter %s's compositions:", r.TeamName)
	for _, s := range picked {
		fmt.Fprintf(&b, "\n- [%s] %s", s.Effectiveness, strategyText(s))
	}
	return b.String()
}

func winResponse(r *model.ScoutingReport) string {
	var lines []string
	n := 0
	for _, s := range r.CounterStrategies {
		if s.Effectiveness != model.EffectivenessHigh {
			continue
		}
		lines = append(lines, "- "+strategyText(s))
		if n++; n == maxWinStrategies {
			break
		}
	}
	if weak, ok := scouting.WeakestStrength(r.Strengths); ok {
		lines = append(lines, fmt.Sprintf("- Attack their weakest area: %s (%d/100).", weak.Area, weak.Rating))
	}
	if ban, ok := scouting.TopRisk(r.DraftRisks, func(d model.DraftRisk) bool { return d.Threat == model.ThreatBan }); ok {
		lines = append(lines, fmt.Sprintf("- Deny %s in draft (priority %d).", ban.Champion, ban.Priority))
	}
	if len(lines) == 0 {
		return fmt.Sprintf("The report for %s has no strategies or strengths to build win conditions from yet.", r.TeamName)
	}
	return fmt.Sprintf("Win conditions against %s:\n%s", r.TeamName, strings.Join(lines, "\n"))
}

func earlyResponse(r *model.ScoutingReport) string {
	var lines []string
	for _, s := range r.CounterStrategies {
		if s.Phase == model.PhaseEarly {
			lines = append(lines, "- "+strategyText(s))
		}
	}

	var risks []model.DraftRisk
	for _, d := range r.DraftRisks {
		if d.Threat == model.ThreatPick || d.Threat == model.ThreatFlex {
			risks = append(risks, d)
		}
	}
	sort.SliceStable(risks, func(i, j int) bool { return risks[i].Priority > risks[j].Priority })
	if len(risks) > maxEarlyRisks {
		risks = risks[:maxEarlyRisks]
	}
	for _, d := range risks {
		lines = append(lines, fmt.Sprintf("- Expect %s on %s (priority %d).", d.Champion, d.Role, d.Priority))
	}

	for _, s := range r.Strengths {
		if strings.Contains(strings.ToLower(s.Area), "early") {
			lines = append(lines, fmt.Sprintf("- Their %s rating is %d/100, trending %s.", s.Area, s.Rating, s.Trend))
			break
		}
	}
	if len(lines) == 0 {
		return fmt.Sprintf("There is no early game data for %s yet. Ask again once a fuller report is loaded.", r.TeamName)
	}
	return fmt.Sprintf("Early game plan against %s:\n%s", r.TeamName, strings.Join(lines, "\n"))
}

func weakPlayerResponse(r *model.ScoutingReport) string {
	if len(r.Players) == 0 {
		return fmt.Sprintf("No player data is available for %s, so I can't point out a weak link.", r.TeamName)
	}
	players := append([]model.PlayerStat(nil), r.Players...)
	sort.SliceStable(players, func(i, j int) bool { return players[i].WinRate < players[j].WinRate })

	var b strings.Builder
	fmt.Fprintf(&b, "Players on %s by win rate (lowest first):", r.TeamName)
	targets := 0
	for _, p := range players {
		mark := ""
		if targets < maxTargets && p.WinRate < targetWinRate {
			mark = " <- target"
			targets++
		}
		fmt.Fprintf(&b, "\n- %s (%s, %d%% WR, %s)%s", p.Name, p.Role, p.WinRate, p.Tendency, mark)
	}
	if targets == 0 {
		fmt.Fprintf(&b, "\nNobody is below %d%%; there is no obvious weak link to camp.", targetWinRate)
	}
	return b.String()
}

func strategyText(s model.CounterStrategy) string {
	if s.Description != "" {
		return s.Description
	}
	if s.Title != "" {
		return s.Title
	}
	return model.Placeholder
}
