package services

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"competition-service/apperr"
	"competition-service/models"
)

// ParticipantService handles tournament registration: who is in a
// tournament and under which seed. Simple persistence — eligibility
// enforcement at match time lives in MatchService.
type ParticipantService struct {
	DB *gorm.DB
}

func NewParticipantService(db *gorm.DB) *ParticipantService {
	return &ParticipantService{DB: db}
}

type AddParticipantInput struct {
	ParticipantType string  `json:"participantType"` // PLAYER or TEAM
	PlayerID        *string `json:"playerId"`
	TeamID          *string `json:"teamId"`
	Seed            *int    `json:"seed"`
}

// AddParticipant registers a player or team, refusing duplicates.
func (s *ParticipantService) AddParticipant(tournamentID string, in AddParticipantInput) (*models.TournamentParticipant, error) {
	var tournament models.Tournament
	if err := s.DB.First(&tournament, "id = ?", tournamentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound(apperr.CodeTournamentNotFound, "tournament %s not found", tournamentID)
		}
		return nil, storeFailure("load tournament", err)
	}

	switch in.ParticipantType {
	case models.ParticipantTypePlayer:
		if in.PlayerID == nil || *in.PlayerID == "" {
			return nil, apperr.Invalid(apperr.CodePlayerIDRequired, "playerId is required for PLAYER participation")
		}
		in.TeamID = nil
	case models.ParticipantTypeTeam:
		if in.TeamID == nil || *in.TeamID == "" {
			return nil, apperr.Invalid(apperr.CodeTeamIDRequired, "teamId is required for TEAM participation")
		}
		in.PlayerID = nil
	default:
		return nil, apperr.Invalid(apperr.CodePlayerIDRequired, "participantType must be PLAYER or TEAM")
	}

	dup := s.DB.Model(&models.TournamentParticipant{}).Where("tournament_id = ?", tournamentID)
	if in.PlayerID != nil {
		dup = dup.Where("player_id = ?", *in.PlayerID)
	} else {
		dup = dup.Where("team_id = ?", *in.TeamID)
	}
	var count int64
	if err := dup.Count(&count).Error; err != nil {
		return nil, storeFailure("check duplicate participant", err)
	}
	if count > 0 {
		return nil, apperr.Conflict(apperr.CodeAlreadyJoined, "participant already registered in tournament")
	}

	participant := models.TournamentParticipant{
		ID:           uuid.NewString(),
		TournamentID: tournamentID,
		PlayerID:     in.PlayerID,
		TeamID:       in.TeamID,
		Seed:         in.Seed,
	}
	if err := s.DB.Create(&participant).Error; err != nil {
		return nil, storeFailure("create participant", err)
	}
	return &participant, nil
}

// ListParticipants returns a tournament's participants by seed.
func (s *ParticipantService) ListParticipants(tournamentID string) ([]models.TournamentParticipant, error) {
	var participants []models.TournamentParticipant
	err := s.DB.Where("tournament_id = ?", tournamentID).Order("seed ASC").Find(&participants).Error
	if err != nil {
		return nil, storeFailure("list participants", err)
	}
	return participants, nil
}

// RemoveParticipant unregisters one participant by id.
func (s *ParticipantService) RemoveParticipant(participantID string) error {
	var existing models.TournamentParticipant
	if err := s.DB.First(&existing, "id = ?", participantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound(apperr.CodeParticipantNotFound, "participant %s not found", participantID)
		}
		return storeFailure("load participant", err)
	}
	if err := s.DB.Delete(&models.TournamentParticipant{}, "id = ?", participantID).Error; err != nil {
		return storeFailure("remove participant", err)
	}
	return nil
}

type JoinByCodeInput struct {
	JoinCode string  `json:"joinCode"`
	PlayerID *string `json:"playerId"`
	TeamID   *string `json:"teamId"`
}

// JoinByCode self-registers into a public tournament via its join
// code, enforcing the game-type participant shape from the rules.
func (s *ParticipantService) JoinByCode(in JoinByCodeInput) (*models.TournamentParticipant, error) {
	var participant models.TournamentParticipant

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var tournament models.Tournament
		err := tx.Preload("Rules").Where("public_join_code = ?", in.JoinCode).First(&tournament).Error
		if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && !tournament.IsPublic) {
			return apperr.NotFound(apperr.CodePrivateTournament, "no public tournament for this code")
		}
		if err != nil {
			return storeFailure("load tournament by code", err)
		}
		if !tournament.StartDate.After(time.Now()) {
			return apperr.Conflict(apperr.CodeTournamentStarted, "tournament already started")
		}

		dup := tx.Model(&models.TournamentParticipant{}).Where("tournament_id = ?", tournament.ID)
		switch {
		case in.PlayerID != nil && in.TeamID != nil:
			dup = dup.Where("player_id = ? OR team_id = ?", *in.PlayerID, *in.TeamID)
		case in.PlayerID != nil:
			dup = dup.Where("player_id = ?", *in.PlayerID)
		case in.TeamID != nil:
			dup = dup.Where("team_id = ?", *in.TeamID)
		default:
			return apperr.Invalid(apperr.CodePlayerIDRequired, "playerId or teamId is required")
		}
		var count int64
		if err := dup.Count(&count).Error; err != nil {
			return storeFailure("check duplicate participant", err)
		}
		if count > 0 {
			return apperr.Conflict(apperr.CodeAlreadyJoined, "already joined this tournament")
		}

		if tournament.Rules != nil {
			if tournament.Rules.GameType == "SINGLES" && in.PlayerID == nil {
				return apperr.Invalid(apperr.CodeSinglesNeedsPlayer, "singles tournaments take individual players")
			}
			if tournament.Rules.GameType == "DOUBLES" && in.TeamID == nil {
				return apperr.Invalid(apperr.CodeDoublesNeedsTeam, "doubles tournaments take teams")
			}
		}

		participant = models.TournamentParticipant{
			ID:           uuid.NewString(),
			TournamentID: tournament.ID,
			PlayerID:     in.PlayerID,
			TeamID:       in.TeamID,
		}
		if err := tx.Create(&participant).Error; err != nil {
			return storeFailure("create participant", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("🎟️  Participant %s joined tournament %s by code", participant.ID, participant.TournamentID)
	return &participant, nil
}

// JoinTournament registers a player into a PUBLISHED tournament by id.
func (s *ParticipantService) JoinTournament(tournamentID, playerID string) (*models.TournamentParticipant, error) {
	if playerID == "" {
		return nil, apperr.Invalid(apperr.CodePlayerIDRequired, "playerId is required")
	}

	var tournament models.Tournament
	if err := s.DB.First(&tournament, "id = ?", tournamentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound(apperr.CodeTournamentNotFound, "tournament %s not found", tournamentID)
		}
		return nil, storeFailure("load tournament", err)
	}
	if tournament.Status != models.TournamentStatusPublished {
		return nil, apperr.Conflict(apperr.CodeTournamentNotOpen, "tournament is %s", tournament.Status)
	}

	var count int64
	err := s.DB.Model(&models.TournamentParticipant{}).
		Where("tournament_id = ? AND player_id = ?", tournamentID, playerID).
		Count(&count).Error
	if err != nil {
		return nil, storeFailure("check duplicate participant", err)
	}
	if count > 0 {
		return nil, apperr.Conflict(apperr.CodeAlreadyJoined, "already joined this tournament")
	}

	participant := models.TournamentParticipant{
		ID:           uuid.NewString(),
		TournamentID: tournamentID,
		PlayerID:     &playerID,
	}
	if err := s.DB.Create(&participant).Error; err != nil {
		return nil, storeFailure("create participant", err)
	}
	return &participant, nil
}

// SearchPlayers queries the locally mirrored player profiles.
func (s *ParticipantService) SearchPlayers(query string, limit int) ([]models.PlayerProfile, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	db := s.DB.Model(&models.PlayerProfile{}).Limit(limit)
	if query != "" {
		term := "%" + strings.ToLower(strings.TrimSpace(query)) + "%"
		db = db.Where("LOWER(username) LIKE ? OR LOWER(email) LIKE ?", term, term)
	}

	var players []models.PlayerProfile
	if err := db.Find(&players).Error; err != nil {
		return nil, storeFailure("search players", err)
	}
	return players, nil
}
