package models

import (
	"time"
)

// Match status values. Transitions only ever move forward:
// SCHEDULED → LIVE → COMPLETED. A match created without a future
// start time is born LIVE. A COMPLETED match is immutable.
const (
	MatchStatusScheduled = "SCHEDULED"
	MatchStatusLive      = "LIVE"
	MatchStatusCompleted = "COMPLETED"
)

// Match is one scheduled or live contest between two participants.
type Match struct {
	ID           string  `gorm:"primaryKey;type:uuid" json:"id"`
	TournamentID *string `gorm:"index" json:"tournament_id,omitempty"` // nil = quick match
	LocationID   string  `gorm:"index;not null" json:"location_id"`
	PlayArea     string  `gorm:"not null" json:"play_area"` // court/table within the location
	SportCode    string  `gorm:"not null" json:"sport_code"`
	PartsCount   int     `gorm:"not null" json:"parts_count"`

	Status    string     `gorm:"type:varchar(16);not null;default:'SCHEDULED';index" json:"status"`
	StartTime time.Time  `json:"start_time"`
	EndTime   *time.Time `json:"end_time,omitempty"`

	OfficialUserID       string `json:"official_user_id,omitempty"`
	ServingParticipantID string `gorm:"not null" json:"serving_participant_id"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Relationships — exclusively owned, never shared across matches
	Participants []MatchParticipant `json:"participants,omitempty" gorm:"foreignKey:MatchID;constraint:OnDelete:CASCADE"`
	Parts        []MatchPart        `json:"parts,omitempty" gorm:"foreignKey:MatchID;constraint:OnDelete:CASCADE"`
	Events       []MatchEvent       `json:"events,omitempty" gorm:"foreignKey:MatchID;constraint:OnDelete:CASCADE"`
	Location     *Location          `json:"location,omitempty" gorm:"foreignKey:LocationID"`
}

// MatchParticipant binds a participant identity to a match slot.
// Position 1 = P1 / side A, position 2 = P2 / side B; scoring logic
// only ever sees the position, never the raw identity.
type MatchParticipant struct {
	ID            string    `gorm:"primaryKey;type:uuid" json:"id"`
	MatchID       string    `gorm:"index;not null;uniqueIndex:idx_match_position,priority:1" json:"match_id"`
	ParticipantID string    `gorm:"index;not null" json:"participant_id"`
	Position      int       `gorm:"not null;uniqueIndex:idx_match_position,priority:2" json:"position"`
	CreatedAt     time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// MatchPart is one game/set within a match. Parts are pre-created
// 1..PartsCount at match creation with zero scores; a part that has
// recorded a winner is closed and never touched again. Version backs
// the optimistic write guard on concurrent score submissions.
type MatchPart struct {
	ID                  string  `gorm:"primaryKey;type:uuid" json:"id"`
	MatchID             string  `gorm:"index;not null;uniqueIndex:idx_match_part_number,priority:1" json:"match_id"`
	PartNumber          int     `gorm:"not null;uniqueIndex:idx_match_part_number,priority:2" json:"part_number"`
	P1Score             int     `gorm:"not null;default:0" json:"p1_score"`
	P2Score             int     `gorm:"not null;default:0" json:"p2_score"`
	WinnerParticipantID *string `json:"winner_participant_id,omitempty"`
	Version             int     `gorm:"not null;default:0" json:"-"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// MatchEvent is one accepted scoring action. Append-only: rows are
// written in the same transaction as the part update they caused and
// are never modified afterwards.
type MatchEvent struct {
	ID      string `gorm:"primaryKey;type:uuid" json:"id"`
	MatchID string `gorm:"index;not null" json:"match_id"`
	Type    string `gorm:"not null" json:"type"`
	Payload string `gorm:"type:text" json:"payload"` // raw JSON as submitted

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime;index"`
}
