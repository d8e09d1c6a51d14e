package services

import (
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"

	"competition-service/apperr"
	"competition-service/models"
	"competition-service/utils"
)

// TournamentService is plain persistence: the registry of
// tournaments, their rules and photos that the match engine consults.
type TournamentService struct {
	DB *gorm.DB
}

func NewTournamentService(db *gorm.DB) *TournamentService {
	return &TournamentService{DB: db}
}

// RulesInput mirrors the rules block accepted on tournament creation
// and on the rules upsert endpoint.
type RulesInput struct {
	PlayAreas                int      `json:"playAreas"`
	MatchesPerPlayAreaPerDay int      `json:"matchesPerPlayAreaPerDay"`
	ReportingTimeMinutes     int      `json:"reportingTimeMinutes"`
	PartsPerMatch            int      `json:"partsPerMatch"`
	GameType                 string   `json:"gameType"`
	DaysOfWeek               []string `json:"daysOfWeek"`
	GroupsCount              *int     `json:"groupsCount"`
	TeamsPerGroup            *int     `json:"teamsPerGroup"`
	EnableQuarterFinal       bool     `json:"enableQuarterFinal"`
	EnableSemiFinal          bool     `json:"enableSemiFinal"`
	EnableFinal              bool     `json:"enableFinal"`
	ExtraConfig              string   `json:"extraConfig"`
}

type CreateTournamentInput struct {
	Name           string      `json:"name"`
	SportCode      string      `json:"sportCode"`
	TournamentType string      `json:"tournamentType"`
	StartDate      time.Time   `json:"startDate"`
	EndDate        *time.Time  `json:"endDate"`
	LocationID     *string     `json:"locationId"`
	ScheduleType   string      `json:"scheduleType"`
	IsPublic       bool        `json:"isPublic"`
	EntryFee       float64     `json:"entryFee"`
	Rules          *RulesInput `json:"rules"`
}

func validateRules(r *RulesInput) error {
	if r.PlayAreas < 1 {
		return apperr.Invalid(apperr.CodeInvalidPlayAreas, "rules.playAreas must be at least 1")
	}
	if r.PartsPerMatch < 1 {
		return apperr.Invalid(apperr.CodeInvalidPartsPerMatch, "rules.partsPerMatch must be at least 1")
	}
	if len(r.DaysOfWeek) == 0 {
		return apperr.Invalid(apperr.CodeDaysOfWeekRequired, "rules.daysOfWeek must name at least one day")
	}
	return nil
}

func rulesFromInput(tournamentID string, r *RulesInput) models.TournamentRules {
	return models.TournamentRules{
		ID:                       uuid.NewString(),
		TournamentID:             tournamentID,
		PlayAreas:                r.PlayAreas,
		MatchesPerPlayAreaPerDay: r.MatchesPerPlayAreaPerDay,
		ReportingTimeMinutes:     r.ReportingTimeMinutes,
		PartsPerMatch:            r.PartsPerMatch,
		GameType:                 r.GameType,
		DaysOfWeek:               utils.JoinDays(r.DaysOfWeek),
		GroupsCount:              r.GroupsCount,
		TeamsPerGroup:            r.TeamsPerGroup,
		EnableQuarterFinal:       r.EnableQuarterFinal,
		EnableSemiFinal:          r.EnableSemiFinal,
		EnableFinal:              r.EnableFinal,
		ExtraConfig:              r.ExtraConfig,
	}
}

// CreateTournament creates a tournament and, when supplied, its rules
// in one transaction. Public tournaments get a join code.
func (s *TournamentService) CreateTournament(in CreateTournamentInput) (*models.Tournament, error) {
	if in.EndDate != nil && in.EndDate.Before(in.StartDate) {
		return nil, apperr.Invalid(apperr.CodeInvalidDateRange, "endDate is before startDate")
	}
	if in.Rules != nil {
		if err := validateRules(in.Rules); err != nil {
			return nil, err
		}
	}

	scheduleType := in.ScheduleType
	if scheduleType == "" {
		scheduleType = "MANUAL"
	}

	tournament := models.Tournament{
		ID:             uuid.NewString(),
		Name:           in.Name,
		Slug:           slug.Make(in.Name),
		SportCode:      in.SportCode,
		TournamentType: in.TournamentType,
		Status:         models.TournamentStatusDraft,
		StartDate:      in.StartDate,
		EndDate:        in.EndDate,
		LocationID:     in.LocationID,
		ScheduleType:   scheduleType,
		IsPublic:       in.IsPublic,
		EntryFee:       in.EntryFee,
	}
	if in.IsPublic {
		tournament.PublicJoinCode = utils.GenerateJoinCode()
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&tournament).Error; err != nil {
			return storeFailure("create tournament", err)
		}
		if in.Rules != nil {
			rules := rulesFromInput(tournament.ID, in.Rules)
			if err := tx.Create(&rules).Error; err != nil {
				return storeFailure("create tournament rules", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("🏆 Tournament %s (%s) created", tournament.ID, tournament.Name)
	return s.GetTournament(tournament.ID)
}

func (s *TournamentService) ListTournaments() ([]models.Tournament, error) {
	var tournaments []models.Tournament
	err := s.DB.Preload("Rules").Order("created_at DESC").Find(&tournaments).Error
	if err != nil {
		return nil, storeFailure("list tournaments", err)
	}
	return tournaments, nil
}

func (s *TournamentService) GetTournament(id string) (*models.Tournament, error) {
	var tournament models.Tournament
	err := s.DB.
		Preload("Rules").
		Preload("Participants").
		Preload("Photos").
		First(&tournament, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound(apperr.CodeTournamentNotFound, "tournament %s not found", id)
		}
		return nil, storeFailure("load tournament", err)
	}
	return &tournament, nil
}

type UpdateTournamentInput struct {
	Name         *string    `json:"name"`
	StartDate    *time.Time `json:"startDate"`
	EndDate      *time.Time `json:"endDate"`
	Status       *string    `json:"status"`
	IsPublic     *bool      `json:"isPublic"`
	EntryFee     *float64   `json:"entryFee"`
	ScheduleType *string    `json:"scheduleType"`
}

// UpdateTournament applies partial updates. Tournaments that are
// ONGOING or COMPLETED are locked.
func (s *TournamentService) UpdateTournament(id string, in UpdateTournamentInput) (*models.Tournament, error) {
	existing, err := s.GetTournament(id)
	if err != nil {
		return nil, err
	}
	if existing.Status == models.TournamentStatusOngoing || existing.Status == models.TournamentStatusCompleted {
		return nil, apperr.Conflict(apperr.CodeTournamentLocked, "tournament is %s", existing.Status)
	}
	if in.StartDate != nil && in.EndDate != nil && in.EndDate.Before(*in.StartDate) {
		return nil, apperr.Invalid(apperr.CodeInvalidDateRange, "endDate is before startDate")
	}

	updates := map[string]any{}
	if in.Name != nil {
		updates["name"] = *in.Name
		updates["slug"] = slug.Make(*in.Name)
	}
	if in.StartDate != nil {
		updates["start_date"] = *in.StartDate
	}
	if in.EndDate != nil {
		updates["end_date"] = *in.EndDate
	}
	if in.Status != nil {
		updates["status"] = *in.Status
	}
	if in.IsPublic != nil {
		updates["is_public"] = *in.IsPublic
	}
	if in.EntryFee != nil {
		updates["entry_fee"] = *in.EntryFee
	}
	if in.ScheduleType != nil {
		updates["schedule_type"] = *in.ScheduleType
	}

	if len(updates) > 0 {
		if err := s.DB.Model(&models.Tournament{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return nil, storeFailure("update tournament", err)
		}
	}
	return s.GetTournament(id)
}

// DeleteTournament removes a tournament. Only drafts may go; once
// published there is history hanging off it.
func (s *TournamentService) DeleteTournament(id string) error {
	existing, err := s.GetTournament(id)
	if err != nil {
		return err
	}
	if existing.Status != models.TournamentStatusDraft {
		return apperr.Conflict(apperr.CodeTournamentUndeletable, "only DRAFT tournaments can be deleted")
	}
	if err := s.DB.Delete(&models.Tournament{}, "id = ?", id).Error; err != nil {
		return storeFailure("delete tournament", err)
	}
	log.Printf("🗑️  Tournament %s deleted", id)
	return nil
}

// UpsertRules creates or replaces the rules of a tournament.
func (s *TournamentService) UpsertRules(tournamentID string, in RulesInput) (*models.TournamentRules, error) {
	if _, err := s.GetTournament(tournamentID); err != nil {
		return nil, err
	}
	if err := validateRules(&in); err != nil {
		return nil, err
	}

	var existing models.TournamentRules
	err := s.DB.Where("tournament_id = ?", tournamentID).First(&existing).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		rules := rulesFromInput(tournamentID, &in)
		if err := s.DB.Create(&rules).Error; err != nil {
			return nil, storeFailure("create tournament rules", err)
		}
		return &rules, nil
	case err != nil:
		return nil, storeFailure("load tournament rules", err)
	}

	rules := rulesFromInput(tournamentID, &in)
	rules.ID = existing.ID
	rules.CreatedAt = existing.CreatedAt
	if err := s.DB.Save(&rules).Error; err != nil {
		return nil, storeFailure("update tournament rules", err)
	}
	return &rules, nil
}

// AddPhoto stores an uploaded photo URL against the tournament.
func (s *TournamentService) AddPhoto(tournamentID, url string, sortOrder int) (*models.TournamentPhoto, error) {
	if _, err := s.GetTournament(tournamentID); err != nil {
		return nil, err
	}
	photo := models.TournamentPhoto{
		ID:           uuid.NewString(),
		TournamentID: tournamentID,
		URL:          url,
		SortOrder:    sortOrder,
	}
	if err := s.DB.Create(&photo).Error; err != nil {
		return nil, storeFailure("create tournament photo", err)
	}
	return &photo, nil
}
