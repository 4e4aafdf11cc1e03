// Package model contains the scouting view model and wire DTOs used across layers.
// I keep it lean and focused on data shapes; the only behavior is closed-set validation.
package model

// Placeholder is rendered wherever a value cannot be derived from backend data.
const Placeholder = "—"

// Role is one of the five canonical League of Legends positions.
type Role string

const (
	RoleTop     Role = "Top"
	RoleJungle  Role = "Jungle"
	RoleMid     Role = "Mid"
	RoleADC     Role = "ADC"
	RoleSupport Role = "Support"
)

// Roles is the canonical role order used for positional assignment.
var Roles = [...]Role{RoleTop, RoleJungle, RoleMid, RoleADC, RoleSupport}

func (r Role) Valid() bool {
	switch r {
	case RoleTop, RoleJungle, RoleMid, RoleADC, RoleSupport:
		return true
	}
	return false
}

// Tendency summarizes a player's risk profile.
type Tendency string

const (
	TendencyAggressive Tendency = "aggressive"
	TendencyDefensive  Tendency = "defensive"
	TendencyBalanced   Tendency = "balanced"
)

func (t Tendency) Valid() bool {
	switch t {
	case TendencyAggressive, TendencyDefensive, TendencyBalanced:
		return true
	}
	return false
}

// Trend is the direction a team strength is moving in.
type Trend string

const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendStable Trend = "stable"
)

func (t Trend) Valid() bool {
	switch t {
	case TrendUp, TrendDown, TrendStable:
		return true
	}
	return false
}

// Effectiveness grades a counter strategy.
type Effectiveness string

const (
	EffectivenessHigh   Effectiveness = "high"
	EffectivenessMedium Effectiveness = "medium"
	EffectivenessLow    Effectiveness = "low"
)

func (e Effectiveness) Valid() bool {
	switch e {
	case EffectivenessHigh, EffectivenessMedium, EffectivenessLow:
		return true
	}
	return false
}

// Weight orders effectiveness values: high=3, medium=2, low=1, unknown=0.
func (e Effectiveness) Weight() int {
	switch e {
	case EffectivenessHigh:
		return 3
	case EffectivenessMedium:
		return 2
	case EffectivenessLow:
		return 1
	}
	return 0
}

// Phase is the game phase a strategy targets.
type Phase string

const (
	PhaseEarly Phase = "early"
	PhaseMid   Phase = "mid"
	PhaseLate  Phase = "late"
)

func (p Phase) Valid() bool {
	switch p {
	case PhaseEarly, PhaseMid, PhaseLate:
		return true
	}
	return false
}

// Threat classifies how a draft risk should be answered.
type Threat string

const (
	ThreatBan  Threat = "ban"
	ThreatPick Threat = "pick"
	ThreatFlex Threat = "flex"
)

func (t Threat) Valid() bool {
	switch t {
	case ThreatBan, ThreatPick, ThreatFlex:
		return true
	}
	return false
}

// ConfidenceLabel buckets a confidence score.
type ConfidenceLabel string

const (
	ConfidenceLow    ConfidenceLabel = "low"
	ConfidenceMedium ConfidenceLabel = "medium"
	ConfidenceHigh   ConfidenceLabel = "high"
)

// Record is a team's win/loss tally over the analyzed sample.
type Record struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
}

// PlayerStat is one opponent player as displayed on the scouting board.
type PlayerStat struct {
	Name         string   `json:"name"`
	Role         Role     `json:"role"`
	KDA          string   `json:"kda"`
	WinRate      int      `json:"winRate"`
	Tendency     Tendency `json:"tendency"`
	ChampionPool []string `json:"championPool"`
}

// RecentMatch is a single past result.
type RecentMatch struct {
	Result   string `json:"result"` // W or L
	Opponent string `json:"opponent"`
	Score    string `json:"score"`
	Duration string `json:"duration"`
}

// TeamStrength is a rated area of the opponent's play.
type TeamStrength struct {
	Area   string `json:"area"`
	Rating int    `json:"rating"`
	Trend  Trend  `json:"trend"`
}

// CounterStrategy is a recommended plan against the opponent.
type CounterStrategy struct {
	ID            string        `json:"id"`
	Title         string        `json:"title"`
	Description   string        `json:"description"`
	Effectiveness Effectiveness `json:"effectiveness"`
	Phase         Phase         `json:"phase"`
}

// DraftRisk is a champion the opponent is likely to pick or that should be denied.
type DraftRisk struct {
	Champion string `json:"champion"`
	Role     Role   `json:"role"`
	Threat   Threat `json:"threat"`
	Priority int    `json:"priority"`
	Notes    string `json:"notes"`
}

// ScoutingReport is the normalized view model for one opponent team.
// It is built once per backend response and never mutated afterwards.
type ScoutingReport struct {
	TeamName          string            `json:"teamName"`
	TeamLogo          string            `json:"teamLogo,omitempty"`
	Record            Record            `json:"record"`
	WinRate           int               `json:"winRate"`
	AvgGameTime       string            `json:"avgGameTime"`
	Players           []PlayerStat      `json:"players"`
	RecentMatches     []RecentMatch     `json:"recentMatches"`
	Strengths         []TeamStrength    `json:"strengths"`
	CounterStrategies []CounterStrategy `json:"counterStrategies"`
	DraftRisks        []DraftRisk       `json:"draftRisks"`
	LastUpdated       string            `json:"lastUpdated"`
	LimitedDataMode   bool              `json:"limitedDataMode,omitempty"`
	MatchesAnalyzed   int               `json:"matchesAnalyzed,omitempty"`
}

// Confidence expresses how much match evidence backs a report.
type Confidence struct {
	Score           int             `json:"score"`
	Label           ConfidenceLabel `json:"label"`
	MatchesAnalyzed int             `json:"matchesAnalyzed"`
}

// Insight is the "how to win" summary derived from a report.
type Insight struct {
	Summary string   `json:"summary"`
	Bullets []string `json:"bullets"`
}
