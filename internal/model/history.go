package model

import "time"

// ReportSnapshot is one stored scouting result; snapshots are append-only.
type ReportSnapshot struct {
	ID         int64          `json:"id"`
	TeamName   string         `json:"team_name"`
	Report     ScoutingReport `json:"report"`
	Confidence Confidence     `json:"confidence"`
	CreatedAt  time.Time      `json:"created_at"`
}

// ChatRole tells who authored a transcript entry.
type ChatRole string

const (
	ChatRoleCoach     ChatRole = "coach"
	ChatRoleAssistant ChatRole = "assistant"
)

// ChatMessage is one transcript entry of a chat session.
type ChatMessage struct {
	SessionID string    `json:"session_id"`
	Seq       int       `json:"seq"`
	Role      ChatRole  `json:"role"`
	Content   string    `json:"content"`
	Intent    string    `json:"intent,omitempty"`
	Provider  string    `json:"provider,omitempty"`
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
