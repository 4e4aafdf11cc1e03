package service

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	maxTeamNameRunes = 100
	minMatchLimit    = 1
	maxMatchLimit    = 50
	maxQuestionRunes = 2000
	maxDraftPicks    = 20
)

// DefaultBoard is used when a caller does not identify its board.
const DefaultBoard = "default"

func validateTeamName(name string) (string, []FieldError) {
	name = strings.TrimSpace(name)
	switch n := utf8.RuneCountInString(name); {
	case n == 0:
		return name, []FieldError{{Field: "team_name", Message: "must not be empty"}}
	case n > maxTeamNameRunes:
		return name, []FieldError{{Field: "team_name", Message: "length must be at most 100"}}
	}
	return name, nil
}

func validateMatchLimit(limit, fallback int) (int, []FieldError) {
	if limit == 0 {
		limit = fallback
	}
	if limit < minMatchLimit || limit > maxMatchLimit {
		return limit, []FieldError{{Field: "match_limit", Message: "must be between 1 and 50"}}
	}
	return limit, nil
}

// SplitDraft breaks free text on whitespace, commas and semicolons.
func SplitDraft(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return unicode.IsSpace(r) || r == ',' || r == ';'
	})
}

func cleanPicks(picks []string) []string {
	out := make([]string, 0, len(picks))
	for _, p := range picks {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
