package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"competition-service/apperr"
	"competition-service/models"
)

func TestAddParticipantRejectsDuplicates(t *testing.T) {
	db := newTestDB(t)
	svc := NewParticipantService(db)
	tournament, _ := seedTournament(t, db, "BADMINTON", 3)

	carol := "carol"
	first, err := svc.AddParticipant(tournament.ID, AddParticipantInput{
		ParticipantType: models.ParticipantTypePlayer,
		PlayerID:        &carol,
	})
	require.NoError(t, err)
	assert.Equal(t, tournament.ID, first.TournamentID)

	_, err = svc.AddParticipant(tournament.ID, AddParticipantInput{
		ParticipantType: models.ParticipantTypePlayer,
		PlayerID:        &carol,
	})
	assert.Equal(t, apperr.CodeAlreadyJoined, apperr.CodeOf(err))
}

func TestAddParticipantShapeChecks(t *testing.T) {
	db := newTestDB(t)
	svc := NewParticipantService(db)
	tournament, _ := seedTournament(t, db, "BADMINTON", 3)

	_, err := svc.AddParticipant(tournament.ID, AddParticipantInput{ParticipantType: models.ParticipantTypePlayer})
	assert.Equal(t, apperr.CodePlayerIDRequired, apperr.CodeOf(err))

	_, err = svc.AddParticipant(tournament.ID, AddParticipantInput{ParticipantType: models.ParticipantTypeTeam})
	assert.Equal(t, apperr.CodeTeamIDRequired, apperr.CodeOf(err))

	carol := "carol"
	_, err = svc.AddParticipant("missing", AddParticipantInput{ParticipantType: models.ParticipantTypePlayer, PlayerID: &carol})
	assert.Equal(t, apperr.CodeTournamentNotFound, apperr.CodeOf(err))
}

func TestRemoveParticipant(t *testing.T) {
	db := newTestDB(t)
	svc := NewParticipantService(db)
	_, participantIDs := seedTournament(t, db, "BADMINTON", 3)

	require.NoError(t, svc.RemoveParticipant(participantIDs[0]))
	err := svc.RemoveParticipant(participantIDs[0])
	assert.Equal(t, apperr.CodeParticipantNotFound, apperr.CodeOf(err))
}

func seedPublicTournament(t *testing.T, db *gorm.DB, gameType string, startsIn time.Duration) models.Tournament {
	t.Helper()
	tournament := models.Tournament{
		ID:             uuid.NewString(),
		Name:           "Open Court Night",
		SportCode:      "BADMINTON",
		Status:         models.TournamentStatusPublished,
		StartDate:      time.Now().Add(startsIn),
		IsPublic:       true,
		PublicJoinCode: "JOINCODE",
	}
	require.NoError(t, db.Create(&tournament).Error)

	rules := models.TournamentRules{
		ID:            uuid.NewString(),
		TournamentID:  tournament.ID,
		PartsPerMatch: 3,
		GameType:      gameType,
		PlayAreas:     1,
		DaysOfWeek:    "FRI",
	}
	require.NoError(t, db.Create(&rules).Error)
	return tournament
}

func TestJoinByCode(t *testing.T) {
	db := newTestDB(t)
	svc := NewParticipantService(db)
	tournament := seedPublicTournament(t, db, "SINGLES", 24*time.Hour)

	dave := "dave"
	participant, err := svc.JoinByCode(JoinByCodeInput{JoinCode: "JOINCODE", PlayerID: &dave})
	require.NoError(t, err)
	assert.Equal(t, tournament.ID, participant.TournamentID)

	_, err = svc.JoinByCode(JoinByCodeInput{JoinCode: "JOINCODE", PlayerID: &dave})
	assert.Equal(t, apperr.CodeAlreadyJoined, apperr.CodeOf(err))

	team := "team-9"
	_, err = svc.JoinByCode(JoinByCodeInput{JoinCode: "JOINCODE", TeamID: &team})
	assert.Equal(t, apperr.CodeSinglesNeedsPlayer, apperr.CodeOf(err))

	_, err = svc.JoinByCode(JoinByCodeInput{JoinCode: "NOPE", PlayerID: &dave})
	assert.Equal(t, apperr.CodePrivateTournament, apperr.CodeOf(err))
}

func TestJoinByCodeAfterStart(t *testing.T) {
	db := newTestDB(t)
	svc := NewParticipantService(db)
	seedPublicTournament(t, db, "SINGLES", -time.Hour)

	dave := "dave"
	_, err := svc.JoinByCode(JoinByCodeInput{JoinCode: "JOINCODE", PlayerID: &dave})
	assert.Equal(t, apperr.CodeTournamentStarted, apperr.CodeOf(err))
}

func TestJoinPublishedTournamentByID(t *testing.T) {
	db := newTestDB(t)
	svc := NewParticipantService(db)
	tournament, _ := seedTournament(t, db, "BADMINTON", 3)

	participant, err := svc.JoinTournament(tournament.ID, "erin")
	require.NoError(t, err)
	require.NotNil(t, participant.PlayerID)
	assert.Equal(t, "erin", *participant.PlayerID)

	_, err = svc.JoinTournament(tournament.ID, "erin")
	assert.Equal(t, apperr.CodeAlreadyJoined, apperr.CodeOf(err))

	require.NoError(t, db.Model(&models.Tournament{}).
		Where("id = ?", tournament.ID).Update("status", models.TournamentStatusDraft).Error)
	_, err = svc.JoinTournament(tournament.ID, "frank")
	assert.Equal(t, apperr.CodeTournamentNotOpen, apperr.CodeOf(err))

	_, err = svc.JoinTournament(tournament.ID, "")
	assert.Equal(t, apperr.CodePlayerIDRequired, apperr.CodeOf(err))
}

func TestSearchPlayers(t *testing.T) {
	db := newTestDB(t)
	svc := NewParticipantService(db)

	for _, username := range []string{"smasher_sam", "drop_shot_dana", "netplay_nina"} {
		profile := models.PlayerProfile{
			ID:             uuid.NewString(),
			ExternalUserID: uuid.NewString(),
			Username:       username,
		}
		require.NoError(t, db.Create(&profile).Error)
	}

	hits, err := svc.SearchPlayers("dana", 10)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "drop_shot_dana", hits[0].Username)

	all, err := svc.SearchPlayers("", 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
