// Package intent recognizes common coaching questions and answers them from a
// scouting report without calling any model.
package intent

import "strings"

// ID names a recognized question category.
type ID string

const (
	BestBanStrategy     ID = "best_ban_strategy"
	CounterComp         ID = "counter_comp"
	WinConditions       ID = "win_conditions"
	EarlyGamePlan       ID = "early_game_plan"
	WeakPlayerTargeting ID = "weak_player_targeting"
)

// Label renders the id for humans ("best ban strategy").
func (id ID) Label() string { return strings.ReplaceAll(string(id), "_", " ") }

type entry struct {
	id       ID
	keywords []string
}

// table is scanned in order; the first intent with a matching keyword wins.
var table = []entry{
	{BestBanStrategy, []string{"ban", "bans", "banning", "what to ban"}},
	{CounterComp, []string{"counter", "comp", "composition", "draft against"}},
	{WinConditions, []string{"win condition", "how to win", "how do we win", "beat them", "win con"}},
	{EarlyGamePlan, []string{"early game", "early", "level 1", "invade", "first 15"}},
	{WeakPlayerTargeting, []string{"weak player", "weakest", "target", "focus", "who to target"}},
}

// All returns the supported intents in match order.
func All() []ID {
	out := make([]ID, len(table))
	for i, e := range table {
		out[i] = e.id
	}
	return out
}

// Match returns the first intent whose keyword occurs in question.
// Matching ignores case and runs of whitespace.
func Match(question string) (ID, bool) {
	q := Normalize(question)
	if q == "" {
		return "", false
	}
	for _, e := range table {
		for _, kw := range e.keywords {
			if strings.Contains(q, kw) {
				return e.id, true
			}
		}
	}
	return "", false
}

// Normalize lower-cases s, trims it and collapses inner whitespace to single spaces.
func Normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
