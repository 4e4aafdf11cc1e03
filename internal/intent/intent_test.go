package intent_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/maxviazov/tactical-scout-service/internal/intent"
	"github.com/maxviazov/tactical-scout-service/internal/model"
)

func TestMatch(t *testing.T) {
	cases := []struct {
		question string
		want     intent.ID
		ok       bool
	}{
		{"  Best BAN   strategy", intent.BestBanStrategy, true},
		{"what should we ban?", intent.BestBanStrategy, true},
		{"How do we COUNTER their comp", intent.CounterComp, true},
		{"what's our win condition", intent.WinConditions, true},
		{"how to win   this series", intent.WinConditions, true},
		{"should we invade at level 1", intent.EarlyGamePlan, true},
		{"Who is their weakest player", intent.WeakPlayerTargeting, true},
		{"ban or counter?", intent.BestBanStrategy, true},
		{"tell me a joke", "", false},
		{"   ", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.question, func(t *testing.T) {
			got, ok := intent.Match(tc.question)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "best ban strategy", intent.Normalize("\tBest  BAN\n strategy "))
}

func TestAll_Order(t *testing.T) {
	assert.Equal(t, []intent.ID{
		intent.BestBanStrategy, intent.CounterComp, intent.WinConditions,
		intent.EarlyGamePlan, intent.WeakPlayerTargeting,
	}, intent.All())
}

func fullReport() *model.ScoutingReport {
	return &model.ScoutingReport{
		TeamName: "T1",
		Players: []model.PlayerStat{
			{Name: "Zeus", Role: model.RoleTop, WinRate: 70, Tendency: model.TendencyAggressive},
			{Name: "Oner", Role: model.RoleJungle, WinRate: 40, Tendency: model.TendencyBalanced},
			{Name: "Faker", Role: model.RoleMid, WinRate: 52, Tendency: model.TendencyDefensive},
			{Name: "Gumayusi", Role: model.RoleADC, WinRate: 54, Tendency: model.TendencyBalanced},
			{Name: "Keria", Role: model.RoleSupport, WinRate: 50, Tendency: model.TendencyBalanced},
		},
		Strengths: []model.TeamStrength{
			{Area: "Early Game", Rating: 81, Trend: model.TrendUp},
			{Area: "Objective Control", Rating: 44, Trend: model.TrendDown},
		},
		CounterStrategies: []model.CounterStrategy{
			{ID: "cs-1", Title: "Lane swap", Effectiveness: model.EffectivenessLow, Phase: model.PhaseMid},
			{ID: "cs-2", Title: "Punish invades", Description: "Ward their raptors at 1:30", Effectiveness: model.EffectivenessHigh, Phase: model.PhaseEarly},
			{ID: "cs-3", Title: "Stall to 30", Effectiveness: model.EffectivenessMedium, Phase: model.PhaseLate},
		},
		DraftRisks: []model.DraftRisk{
			{Champion: "Azir", Role: model.RoleMid, Threat: model.ThreatPick, Priority: 90, Notes: "Faker – 4 games"},
			{Champion: "Lee Sin", Role: model.RoleJungle, Threat: model.ThreatFlex, Priority: 70},
			{Champion: "Rell", Role: model.RoleSupport, Threat: model.ThreatBan, Priority: 60},
		},
	}
}

func TestPredefinedResponse_NilReport(t *testing.T) {
	for _, id := range intent.All() {
		got := intent.PredefinedResponse(id, nil)
		assert.Contains(t, got, id.Label())
		assert.NotContains(t, got, "_")
	}
}

func TestPredefinedResponse_EmptyReportNeverBlank(t *testing.T) {
	for _, id := range append(intent.All(), "unknown_intent") {
		got := intent.PredefinedResponse(id, &model.ScoutingReport{TeamName: "G2"})
		assert.NotEmpty(t, got, id)
	}
}

func TestPredefinedResponse_Bans(t *testing.T) {
	got := intent.PredefinedResponse(intent.BestBanStrategy, fullReport())
	lines := strings.Split(got, "\n")
	assert.Len(t, lines, 4)
	assert.Contains(t, lines[1], "Rell", "ban-type risks rank first")
	assert.Contains(t, lines[2], "Azir")
	assert.Contains(t, lines[3], "Lee Sin")
}

func TestPredefinedResponse_Counters(t *testing.T) {
	got := intent.PredefinedResponse(intent.CounterComp, fullReport())
	assert.Contains(t, got, "[high] Ward their raptors at 1:30")
	assert.Contains(t, got, "[medium] Stall to 30")
	assert.NotContains(t, got, "Lane swap")
	assert.Less(t, strings.Index(got, "[high]"), strings.Index(got, "[medium]"))
}

func TestPredefinedResponse_WinConditions(t *testing.T) {
	got := intent.PredefinedResponse(intent.WinConditions, fullReport())
	assert.Contains(t, got, "Ward their raptors")
	assert.Contains(t, got, "Objective Control (44/100)")
	assert.Contains(t, got, "Deny Rell")
}

func TestPredefinedResponse_EarlyGame(t *testing.T) {
	got := intent.PredefinedResponse(intent.EarlyGamePlan, fullReport())
	assert.Contains(t, got, "Ward their raptors")
	assert.Contains(t, got, "Expect Azir")
	assert.Contains(t, got, "Expect Lee Sin")
	assert.NotContains(t, got, "Expect Rell")
	assert.Contains(t, got, "Early Game rating is 81/100")
}

func TestPredefinedResponse_WeakPlayers(t *testing.T) {
	got := intent.PredefinedResponse(intent.WeakPlayerTargeting, fullReport())
	lines := strings.Split(got, "\n")
	assert.Len(t, lines, 6)
	assert.Contains(t, lines[1], "Oner")
	assert.Equal(t, 3, strings.Count(got, "<- target"))
	assert.NotContains(t, lines[4], "<- target", "fourth-lowest is not highlighted")
	assert.Contains(t, lines[5], "Zeus")
}

func TestPredefinedResponse_NoWeakLink(t *testing.T) {
	r := &model.ScoutingReport{TeamName: "GEN", Players: []model.PlayerStat{{Name: "Chovy", WinRate: 80}}}
	got := intent.PredefinedResponse(intent.WeakPlayerTargeting, r)
	assert.NotContains(t, got, "<- target")
	assert.Contains(t, got, "no obvious weak link")
}

func TestSuggestion_ListsTopics(t *testing.T) {
	s := intent.Suggestion()
	for _, id := range intent.All() {
		assert.Contains(t, s, id.Label())
	}
}
