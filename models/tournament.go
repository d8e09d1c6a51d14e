package models

import (
	"time"
)

// Tournament lifecycle statuses
const (
	TournamentStatusDraft     = "DRAFT"
	TournamentStatusPublished = "PUBLISHED"
	TournamentStatusOngoing   = "ONGOING"
	TournamentStatusCompleted = "COMPLETED"
)

// Tournament is the registry entry the match engine consults for
// rules and participant eligibility. Its own lifecycle is plain
// persistence — the interesting state machine lives on Match.
type Tournament struct {
	ID             string     `gorm:"primaryKey;type:uuid" json:"id"`
	Name           string     `gorm:"not null" json:"name"`
	Slug           string     `gorm:"index" json:"slug"`
	SportCode      string     `gorm:"not null" json:"sport_code"`
	TournamentType string     `json:"tournament_type,omitempty"` // e.g. LEAGUE, KNOCKOUT
	Status         string     `gorm:"type:varchar(16);default:'DRAFT'" json:"status"`
	StartDate      time.Time  `gorm:"not null" json:"start_date"`
	EndDate        *time.Time `json:"end_date,omitempty"`
	LocationID     *string    `gorm:"index" json:"location_id,omitempty"`
	ScheduleType   string     `gorm:"default:'MANUAL'" json:"schedule_type"`
	IsPublic       bool       `gorm:"default:false" json:"is_public"`
	EntryFee       float64    `gorm:"default:0" json:"entry_fee"`
	PublicJoinCode string     `gorm:"index" json:"public_join_code,omitempty"`
	CreatedAt      time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt      time.Time  `json:"updated_at" gorm:"autoUpdateTime"`

	Rules        *TournamentRules        `json:"rules,omitempty" gorm:"foreignKey:TournamentID;constraint:OnDelete:CASCADE"`
	Participants []TournamentParticipant `json:"participants,omitempty" gorm:"foreignKey:TournamentID;constraint:OnDelete:CASCADE"`
	Photos       []TournamentPhoto       `json:"photos,omitempty" gorm:"foreignKey:TournamentID;constraint:OnDelete:CASCADE"`
	Matches      []Match                 `json:"matches,omitempty" gorm:"foreignKey:TournamentID"`
}

// TournamentRules configures how matches inside the tournament run.
// PartsPerMatch and GameType are the fields the match engine enforces
// at match creation; the rest drives scheduling.
type TournamentRules struct {
	ID           string `gorm:"primaryKey;type:uuid" json:"id"`
	TournamentID string `gorm:"uniqueIndex;not null" json:"tournament_id"`

	PartsPerMatch int    `gorm:"not null" json:"parts_per_match"`
	GameType      string `gorm:"not null" json:"game_type"` // sport code, e.g. BADMINTON

	PlayAreas                int    `json:"play_areas"`
	MatchesPerPlayAreaPerDay int    `json:"matches_per_play_area_per_day"`
	ReportingTimeMinutes     int    `json:"reporting_time_minutes"`
	DaysOfWeek               string `gorm:"type:text" json:"days_of_week"` // comma-separated, e.g. "SAT,SUN"

	GroupsCount   *int `json:"groups_count,omitempty"`
	TeamsPerGroup *int `json:"teams_per_group,omitempty"`

	EnableQuarterFinal bool `gorm:"default:false" json:"enable_quarter_final"`
	EnableSemiFinal    bool `gorm:"default:false" json:"enable_semi_final"`
	EnableFinal        bool `gorm:"default:true" json:"enable_final"`

	ExtraConfig string    `gorm:"type:text" json:"extra_config,omitempty"` // raw JSON blob
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// Participant types
const (
	ParticipantTypePlayer = "PLAYER"
	ParticipantTypeTeam   = "TEAM"
)

// TournamentParticipant registers a player or team in a tournament.
// Match creation checks registration + the eliminated flag.
type TournamentParticipant struct {
	ID           string  `gorm:"primaryKey;type:uuid" json:"id"`
	TournamentID string  `gorm:"index;not null" json:"tournament_id"`
	PlayerID     *string `gorm:"index" json:"player_id,omitempty"`
	TeamID       *string `gorm:"index" json:"team_id,omitempty"`
	Seed         *int    `json:"seed,omitempty"`
	Eliminated   bool    `gorm:"default:false" json:"eliminated"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

type TournamentPhoto struct {
	ID           string    `gorm:"primaryKey;type:uuid" json:"id"`
	TournamentID string    `gorm:"index;not null" json:"tournament_id"`
	URL          string    `json:"url"`
	SortOrder    int       `json:"sort_order" gorm:"column:sort_order;default:0"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime"`
}
