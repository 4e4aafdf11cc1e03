package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// BackendPayload is the body returned by POST /generate-scouting-report.
// Every field may be absent; scalar leaves are Maybe so absence is distinguishable from zero.
type BackendPayload struct {
	Team              *TeamInfo          `json:"team"`
	MatchesAnalyzed   Maybe[int]         `json:"matches_analyzed"`
	MockDataUsed      Maybe[bool]        `json:"mock_data_used"`
	TeamStrategy      *TeamStrategy      `json:"team_strategy"`
	PlayerTendencies  *PlayerTendencies  `json:"player_tendencies"`
	TeamCompositions  *TeamCompositions  `json:"team_compositions"`
	CounterStrategies *CounterStrategies `json:"counter_strategies"`
}

type TeamInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Metric is a scored, classified team-strategy signal.
type Metric struct {
	Score          Maybe[float64] `json:"score"`
	Classification string         `json:"classification"`
}

type GameLength struct {
	AverageSeconds Maybe[float64] `json:"average_seconds"`
	AverageMinutes Maybe[float64] `json:"average_minutes"`
	Classification string         `json:"classification"`
}

type TeamStrategy struct {
	EarlyAggression      *Metric     `json:"early_aggression"`
	ObjectiveContestRate *Metric     `json:"objective_contest_rate"`
	AverageGameLength    *GameLength `json:"average_game_length"`
	RiskVolatility       *Metric     `json:"risk_volatility"`
	MatchesAnalyzed      Maybe[int]  `json:"matches_analyzed"`
}

type ChampionGames struct {
	Champion string `json:"champion"`
	Games    int    `json:"games"`
}

type EarlyDeathFrequency struct {
	Rate           Maybe[float64] `json:"rate"`
	Classification string         `json:"classification"`
}

type PerformanceVariance struct {
	Variance       Maybe[float64] `json:"variance"`
	StdDev         Maybe[float64] `json:"std_dev"`
	Classification string         `json:"classification"`
}

type MatchupWinrate struct {
	Overall Maybe[float64] `json:"overall"`
	Wins    Maybe[int]     `json:"wins"`
	Games   Maybe[int]     `json:"games"`
}

// PlayerTendency is one per-player record of the tendency analysis.
type PlayerTendency struct {
	Key                 string               `json:"-"`
	PlayerID            string               `json:"player_id"`
	PlayerName          string               `json:"player_name"`
	MostPlayed          []ChampionGames      `json:"most_played_champions"`
	EarlyDeathFrequency *EarlyDeathFrequency `json:"early_death_frequency"`
	PerformanceVariance *PerformanceVariance `json:"performance_variance"`
	MatchupWinrate      *MatchupWinrate      `json:"matchup_winrate"`
}

// DisplayName prefers the nickname, then the id, then the object key.
func (p PlayerTendency) DisplayName() string {
	switch {
	case p.PlayerName != "":
		return p.PlayerName
	case p.PlayerID != "":
		return p.PlayerID
	}
	return p.Key
}

// PlayerList keeps tendency records in the order the backend emitted them.
type PlayerList []PlayerTendency

// UnmarshalJSON accepts either an object keyed by player id (order preserved) or an array.
// Any other value reads as no players.
func (l *PlayerList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*l = nil
		return nil
	}
	if data[0] == '[' {
		var items []PlayerTendency
		if err := DecodeBackend(data, &items); err != nil {
			return err
		}
		*l = items
		return nil
	}
	if data[0] != '{' {
		*l = nil
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("players: expected object, got %v", tok)
	}
	var out PlayerList
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := keyTok.(string)
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		var p PlayerTendency
		if !bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			if err := DecodeBackend(raw, &p); err != nil {
				return fmt.Errorf("players[%s]: %w", key, err)
			}
		}
		p.Key = key
		out = append(out, p)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*l = out
	return nil
}

type PlayerTendencies struct {
	Players         PlayerList `json:"players"`
	MatchesAnalyzed Maybe[int] `json:"matches_analyzed"`
}

type Composition struct {
	Composition    []string       `json:"composition"`
	Games          Maybe[int]     `json:"games"`
	Wins           Maybe[int]     `json:"wins"`
	WinRate        Maybe[float64] `json:"win_rate"`
	Classification string         `json:"classification"`
}

type TeamCompositions struct {
	Compositions    []Composition `json:"compositions"`
	MatchesAnalyzed Maybe[int]    `json:"matches_analyzed"`
}

type BackendStrategy struct {
	StrategyText    string          `json:"strategy_text"`
	SupportingData  json.RawMessage `json:"supporting_data,omitempty"`
	ConfidenceScore Maybe[float64]  `json:"confidence_score"`
}

type CounterStrategies struct {
	Strategies []BackendStrategy `json:"strategies"`
}

// DraftAnalysis is the body returned by POST /draft-risk-analysis, passed through to clients.
type DraftAnalysis struct {
	Synergy           *ScoredClassification `json:"synergy,omitempty"`
	DamageComposition *ScoredClassification `json:"damage_composition,omitempty"`
	RoleCoverage      *RoleCoverage         `json:"role_coverage,omitempty"`
	RiskAlerts        []RiskAlert           `json:"risk_alerts,omitempty"`
	Picks             []DraftPick           `json:"picks,omitempty"`
}

type ScoredClassification struct {
	Score          float64        `json:"score"`
	Classification string         `json:"classification"`
	Details        map[string]any `json:"details,omitempty"`
}

type RoleCoverage struct {
	Status         string         `json:"status"`
	MissingRoles   []string       `json:"missing_roles"`
	DuplicateRoles []string       `json:"duplicate_roles"`
	RolesPresent   map[string]int `json:"roles_present"`
}

type RiskAlert struct {
	Severity string `json:"severity"`
	Type     string `json:"type"`
	Message  string `json:"message"`
}

type DraftPick struct {
	Champion   string   `json:"champion"`
	Role       string   `json:"role"`
	DamageType string   `json:"damage_type"`
	Tags       []string `json:"tags"`
}

// ChatReply is the body returned by POST /coach-chat.
type ChatReply struct {
	Response string  `json:"response"`
	Provider string  `json:"provider"`
	Error    *string `json:"error"`
}
