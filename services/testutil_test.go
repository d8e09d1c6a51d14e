package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"competition-service/engines"
	"competition-service/models"
)

// newTestDB opens a private in-memory database with the full schema.
// Connections are capped at one so concurrent test traffic serializes
// at the pool instead of tripping SQLite busy errors.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Location{},
		&models.Tournament{},
		&models.TournamentRules{},
		&models.TournamentParticipant{},
		&models.TournamentPhoto{},
		&models.Match{},
		&models.MatchParticipant{},
		&models.MatchPart{},
		&models.MatchEvent{},
		&models.PlayerProfile{},
	))
	return db
}

func newMatchService(t *testing.T) *MatchService {
	t.Helper()
	return NewMatchService(newTestDB(t), engines.Default())
}

func seedLocation(t *testing.T, db *gorm.DB) models.Location {
	t.Helper()
	location := models.Location{ID: uuid.NewString(), Name: "City Arena", City: "Pune", PlayAreas: 4, IsActive: true}
	require.NoError(t, db.Create(&location).Error)
	return location
}

// seedTournament creates a published tournament with rules and two
// registered (non-eliminated) participants, returning the tournament
// and the participant row ids used as match participant references.
func seedTournament(t *testing.T, db *gorm.DB, gameType string, partsPerMatch int) (models.Tournament, []string) {
	t.Helper()

	tournament := models.Tournament{
		ID:        uuid.NewString(),
		Name:      "Monsoon Open",
		SportCode: gameType,
		Status:    models.TournamentStatusPublished,
		StartDate: time.Now().Add(24 * time.Hour),
	}
	require.NoError(t, db.Create(&tournament).Error)

	rules := models.TournamentRules{
		ID:            uuid.NewString(),
		TournamentID:  tournament.ID,
		PartsPerMatch: partsPerMatch,
		GameType:      gameType,
		PlayAreas:     2,
		DaysOfWeek:    "SAT,SUN",
	}
	require.NoError(t, db.Create(&rules).Error)

	ids := make([]string, 0, 2)
	for _, player := range []string{"alice", "bob"} {
		p := player
		participant := models.TournamentParticipant{
			ID:           uuid.NewString(),
			TournamentID: tournament.ID,
			PlayerID:     &p,
		}
		require.NoError(t, db.Create(&participant).Error)
		ids = append(ids, participant.ID)
	}
	return tournament, ids
}

// quickMatchInput is a valid instant-start quick match for alice/bob.
func quickMatchInput(locationID string) CreateMatchInput {
	return CreateMatchInput{
		LocationID:           locationID,
		PlayArea:             "Court 1",
		SportCode:            engines.SportBadminton,
		ParticipantIDs:       []string{"alice", "bob"},
		ServingParticipantID: "alice",
	}
}

// pumpPoints submits n POINT events for one participant.
func pumpPoints(t *testing.T, svc *MatchService, matchID, participantID string, n int) *RecordEventResult {
	t.Helper()
	var last *RecordEventResult
	for i := 0; i < n; i++ {
		result, err := svc.RecordEvent(matchID, engines.EventPoint, map[string]any{
			"scoringParticipantId": participantID,
		})
		require.NoError(t, err)
		last = result
	}
	return last
}
