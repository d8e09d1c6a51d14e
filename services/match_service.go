package services

import (
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"competition-service/apperr"
	"competition-service/engines"
	"competition-service/models"
)

// maxEventRetries bounds the reload-and-reapply loop when two score
// submissions for the same match race on the active part.
const maxEventRetries = 3

var errVersionConflict = errors.New("match part version conflict")

// MatchService owns the match state machine: create → start →
// record events → end. Scoring itself is delegated to the engine
// registry; this service only orchestrates loads, engine invocation
// and transactional persistence.
type MatchService struct {
	DB      *gorm.DB
	Engines *engines.Registry
}

func NewMatchService(db *gorm.DB, registry *engines.Registry) *MatchService {
	return &MatchService{DB: db, Engines: registry}
}

// CreateMatchInput carries everything needed to set up a match.
// PartsCount 0 means "use the default": tournament rules for
// tournament matches, the sport engine's default for quick matches.
type CreateMatchInput struct {
	TournamentID         *string
	LocationID           string
	PlayArea             string
	SportCode            string
	PartsCount           int
	StartTime            *time.Time
	OfficialUserID       string
	ParticipantIDs       []string
	ServingParticipantID string
}

// CreateMatch validates the input, applies tournament rules when a
// tournament is referenced, and creates the match together with its
// two participant slots and pre-created parts in one transaction.
// Nothing is persisted when any check fails.
func (s *MatchService) CreateMatch(in CreateMatchInput) (*models.Match, error) {
	if in.LocationID == "" {
		return nil, apperr.Invalid(apperr.CodeLocationRequired, "locationId is required")
	}
	if in.PlayArea == "" {
		return nil, apperr.Invalid(apperr.CodePlayAreaRequired, "playArea is required")
	}
	if in.SportCode == "" {
		return nil, apperr.Invalid(apperr.CodeGameTypeRequired, "sportCode is required")
	}
	if len(in.ParticipantIDs) != 2 || in.ParticipantIDs[0] == in.ParticipantIDs[1] {
		return nil, apperr.Invalid(apperr.CodeTwoParticipantsNeeded, "a match needs exactly two distinct participants")
	}
	if in.ServingParticipantID != in.ParticipantIDs[0] && in.ServingParticipantID != in.ParticipantIDs[1] {
		return nil, apperr.Invalid(apperr.CodeInvalidServingPlayer, "servingParticipantId must be one of the match participants")
	}

	engine, err := s.Engines.Resolve(in.SportCode)
	if err != nil {
		return nil, err
	}

	status := models.MatchStatusLive
	startTime := time.Now()
	if in.StartTime != nil {
		status = models.MatchStatusScheduled
		startTime = *in.StartTime
	}

	match := models.Match{
		ID:                   uuid.NewString(),
		TournamentID:         in.TournamentID,
		LocationID:           in.LocationID,
		PlayArea:             in.PlayArea,
		SportCode:            in.SportCode,
		Status:               status,
		StartTime:            startTime,
		OfficialUserID:       in.OfficialUserID,
		ServingParticipantID: in.ServingParticipantID,
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		partsCount := in.PartsCount

		if in.TournamentID != nil {
			var rules models.TournamentRules
			if err := tx.Where("tournament_id = ?", *in.TournamentID).First(&rules).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperr.NotFound(apperr.CodeRulesNotFound, "tournament %s has no rules configured", *in.TournamentID)
				}
				return storeFailure("load tournament rules", err)
			}

			if partsCount == 0 {
				partsCount = rules.PartsPerMatch
			}
			if partsCount > rules.PartsPerMatch {
				return apperr.Conflict(apperr.CodePartsExceedRules, "tournament allows at most %d parts per match", rules.PartsPerMatch)
			}
			if rules.GameType != in.SportCode {
				return apperr.Invalid(apperr.CodeGameTypeMismatch, "tournament is configured for %s", rules.GameType)
			}

			var eligible int64
			err := tx.Model(&models.TournamentParticipant{}).
				Where("id IN ? AND tournament_id = ? AND eliminated = ?", in.ParticipantIDs, *in.TournamentID, false).
				Count(&eligible).Error
			if err != nil {
				return storeFailure("check participant eligibility", err)
			}
			if eligible != 2 {
				return apperr.Invalid(apperr.CodeIneligibleParticipant, "both participants must be registered and not eliminated")
			}
		} else if partsCount == 0 {
			partsCount = engine.DefaultParts()
		}

		match.PartsCount = partsCount
		if err := tx.Create(&match).Error; err != nil {
			return storeFailure("create match", err)
		}

		for idx, participantID := range in.ParticipantIDs {
			mp := models.MatchParticipant{
				ID:            uuid.NewString(),
				MatchID:       match.ID,
				ParticipantID: participantID,
				Position:      idx + 1, // 1 = P1 / side A, 2 = P2 / side B
			}
			if err := tx.Create(&mp).Error; err != nil {
				return storeFailure("create match participant", err)
			}
		}

		for n := 1; n <= partsCount; n++ {
			part := models.MatchPart{
				ID:         uuid.NewString(),
				MatchID:    match.ID,
				PartNumber: n,
			}
			if err := tx.Create(&part).Error; err != nil {
				return storeFailure("create match part", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("🏸 Match %s created (%s, %d parts, status=%s)", match.ID, match.SportCode, match.PartsCount, match.Status)
	return s.loadMatch(match.ID, nil)
}

// StartMatch transitions a SCHEDULED match to LIVE and stamps the
// actual start time. Re-starting a LIVE or COMPLETED match is refused.
func (s *MatchService) StartMatch(matchID string) (*models.Match, error) {
	var match models.Match
	if err := s.DB.First(&match, "id = ?", matchID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound(apperr.CodeMatchNotFound, "match %s not found", matchID)
		}
		return nil, storeFailure("load match", err)
	}

	if match.Status != models.MatchStatusScheduled {
		return nil, apperr.Conflict(apperr.CodeMatchAlreadyStarted, "match is %s", match.Status)
	}

	updates := map[string]any{
		"status":     models.MatchStatusLive,
		"start_time": time.Now(),
	}
	if err := s.DB.Model(&match).Updates(updates).Error; err != nil {
		return nil, storeFailure("start match", err)
	}

	log.Printf("▶️  Match %s is LIVE", matchID)
	return s.loadMatch(matchID, nil)
}

// RecordEventResult is what one accepted scoring event produces: the
// persisted state of the part it touched and completion hints for the
// caller. MatchComplete never flips the match status by itself — an
// official confirms completion through EndMatch.
type RecordEventResult struct {
	Part          models.MatchPart `json:"part"`
	PartComplete  bool             `json:"part_complete"`
	MatchComplete bool             `json:"match_complete"`
}

// RecordEvent applies one scoring event to a live match. The part
// update and the event-log append commit as a single transaction; an
// optimistic version check on the part detects concurrent submissions
// and triggers a bounded reload-and-reapply before giving up with
// SCORE_CONFLICT.
func (s *MatchService) RecordEvent(matchID, eventType string, payload map[string]any) (*RecordEventResult, error) {
	scorer, _ := payload["scoringParticipantId"].(string)
	if scorer == "" {
		return nil, apperr.Invalid(apperr.CodeScorerRequired, "payload.scoringParticipantId is required")
	}

	rawPayload, err := json.Marshal(payload)
	if err != nil {
		return nil, apperr.Invalid(apperr.CodeScorerRequired, "payload is not serializable")
	}

	for attempt := 0; attempt < maxEventRetries; attempt++ {
		match, err := s.loadMatch(matchID, nil)
		if err != nil {
			return nil, err
		}
		if match.Status != models.MatchStatusLive {
			return nil, apperr.Conflict(apperr.CodeMatchNotLive, "match is %s", match.Status)
		}

		position := 0
		for _, mp := range match.Participants {
			if mp.ParticipantID == scorer {
				position = mp.Position
				break
			}
		}
		if position == 0 {
			return nil, apperr.Invalid(apperr.CodeParticipantNotInMatch, "participant %s is not part of this match", scorer)
		}

		engine, err := s.Engines.Resolve(match.SportCode)
		if err != nil {
			return nil, err
		}

		result, err := engine.ApplyEvent(match, eventType, engines.EventPayload{
			ParticipantID: scorer,
			Position:      position,
		})
		if err != nil {
			return nil, err
		}

		err = s.DB.Transaction(func(tx *gorm.DB) error {
			// Version guard: a concurrent writer that committed since
			// our load leaves RowsAffected at zero and forces a rerun
			// from a fresh snapshot. Part update and event append
			// stand or fall together.
			res := tx.Model(&models.MatchPart{}).
				Where("id = ? AND version = ?", result.Part.ID, result.Part.Version).
				Updates(map[string]any{
					"p1_score":              result.Part.P1Score,
					"p2_score":              result.Part.P2Score,
					"winner_participant_id": result.Part.WinnerParticipantID,
					"version":               result.Part.Version + 1,
				})
			if res.Error != nil {
				return storeFailure("update match part", res.Error)
			}
			if res.RowsAffected == 0 {
				return errVersionConflict
			}

			event := models.MatchEvent{
				ID:      uuid.NewString(),
				MatchID: matchID,
				Type:    eventType,
				Payload: string(rawPayload),
			}
			if err := tx.Create(&event).Error; err != nil {
				return storeFailure("append match event", err)
			}
			return nil
		})
		if errors.Is(err, errVersionConflict) {
			log.Printf("🔁 Match %s part %d: concurrent score write, retrying (%d/%d)", matchID, result.Part.PartNumber, attempt+1, maxEventRetries)
			continue
		}
		if err != nil {
			return nil, err
		}

		result.Part.Version++
		return &RecordEventResult{
			Part:          result.Part,
			PartComplete:  result.PartComplete,
			MatchComplete: matchDecided(match, result.Part),
		}, nil
	}

	return nil, apperr.Conflict(apperr.CodeScoreConflict, "could not apply event after %d attempts, resubmit", maxEventRetries)
}

// matchDecided reports whether, with updated applied, one side has
// taken a majority of the configured parts or no open part remains.
func matchDecided(match *models.Match, updated models.MatchPart) bool {
	wins := make(map[string]int)
	open := 0
	for _, p := range match.Parts {
		if p.ID == updated.ID {
			p = updated
		}
		if p.WinnerParticipantID == nil {
			open++
			continue
		}
		wins[*p.WinnerParticipantID]++
	}

	needed := match.PartsCount/2 + 1
	for _, w := range wins {
		if w >= needed {
			return true
		}
	}
	return open == 0
}

// EndMatch transitions a LIVE match to COMPLETED. It deliberately
// does not check that a winner was decided — completion is an
// explicit confirmation by the official running the match.
func (s *MatchService) EndMatch(matchID string) (*models.Match, error) {
	match, err := s.loadMatch(matchID, nil)
	if err != nil {
		return nil, err
	}
	if match.Status != models.MatchStatusLive {
		return nil, apperr.Conflict(apperr.CodeMatchNotLive, "match is %s", match.Status)
	}

	now := time.Now()
	updates := map[string]any{
		"status":   models.MatchStatusCompleted,
		"end_time": now,
	}
	if err := s.DB.Model(&models.Match{}).Where("id = ?", matchID).Updates(updates).Error; err != nil {
		return nil, storeFailure("end match", err)
	}

	log.Printf("🏁 Match %s COMPLETED", matchID)
	return s.loadMatch(matchID, nil)
}

// LiveState is the read-only projection served to scoreboards.
type LiveState struct {
	MatchID              string             `json:"match_id"`
	Status               string             `json:"status"`
	ServingParticipantID string             `json:"serving_participant_id"`
	Parts                []models.MatchPart `json:"parts"`
	ActivePartNumber     int                `json:"active_part_number,omitempty"` // 0 when none open
}

// GetLiveState returns current parts, scores and status of a match.
func (s *MatchService) GetLiveState(matchID string) (*LiveState, error) {
	match, err := s.loadMatch(matchID, nil)
	if err != nil {
		return nil, err
	}

	state := &LiveState{
		MatchID:              match.ID,
		Status:               match.Status,
		ServingParticipantID: match.ServingParticipantID,
		Parts:                match.Parts,
	}
	for _, p := range match.Parts {
		if p.WinnerParticipantID == nil {
			state.ActivePartNumber = p.PartNumber
			break
		}
	}
	return state, nil
}

// GetMatch returns one match with participants and location. When
// tournamentID is set the match must belong to that tournament.
func (s *MatchService) GetMatch(matchID string, tournamentID *string) (*models.Match, error) {
	return s.loadMatch(matchID, tournamentID)
}

// ListMatches returns matches newest-first, optionally scoped to one
// tournament.
func (s *MatchService) ListMatches(tournamentID *string) ([]models.Match, error) {
	q := s.DB.Preload("Participants").Order("start_time DESC")
	if tournamentID != nil {
		q = q.Where("tournament_id = ?", *tournamentID)
	}

	var matches []models.Match
	if err := q.Find(&matches).Error; err != nil {
		return nil, storeFailure("list matches", err)
	}
	return matches, nil
}

// loadMatch fetches a match with parts (in play order), participants
// and location, mapping absence to MATCH_NOT_FOUND.
func (s *MatchService) loadMatch(matchID string, tournamentID *string) (*models.Match, error) {
	q := s.DB.
		Preload("Parts", func(db *gorm.DB) *gorm.DB {
			return db.Order("part_number ASC")
		}).
		Preload("Participants").
		Preload("Location")
	if tournamentID != nil {
		q = q.Where("tournament_id = ?", *tournamentID)
	}

	var match models.Match
	if err := q.First(&match, "id = ?", matchID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound(apperr.CodeMatchNotFound, "match %s not found", matchID)
		}
		return nil, storeFailure("load match", err)
	}
	return &match, nil
}

// storeFailure hides raw store errors behind a retryable
// STORE_UNAVAILABLE failure; details go to the log only.
func storeFailure(op string, err error) error {
	log.Printf("❌ [STORE] %s failed: %v", op, err)
	return apperr.Unavailable(apperr.CodeStoreUnavailable, "storage operation failed")
}
