package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"competition-service/engines"
	"competition-service/models"
	"competition-service/services"
)

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
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

	app := fiber.New()
	SetupMatchRoutes(app, services.NewMatchService(db, engines.Default()))
	SetupLocationRoutes(app, services.NewLocationService(db))
	return app, db
}

func jsonRequest(method, path string, body any) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "official-1")
	return req
}

func decodeEnvelope(t *testing.T, resp *http.Response) (envelope, map[string]any) {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var env envelope
	require.NoError(t, json.Unmarshal(raw, &env))

	data, _ := env.Data.(map[string]any)
	return env, data
}

// Full quick-match flow over HTTP: create → 21 points for side A →
// part decided, match still LIVE → end → COMPLETED.
func TestQuickMatchFlow(t *testing.T) {
	app, db := newTestApp(t)

	location := models.Location{ID: uuid.NewString(), Name: "Hall B", IsActive: true}
	require.NoError(t, db.Create(&location).Error)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/matches", fiber.Map{
		"locationId":           location.ID,
		"playArea":             "Court 2",
		"gameType":             "BADMINTON",
		"participantIds":       []string{"alice", "bob"},
		"servingParticipantId": "alice",
	}), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	env, match := decodeEnvelope(t, resp)
	assert.True(t, env.Success)
	assert.Equal(t, "LIVE", match["status"])
	assert.Len(t, match["parts"], 3)
	matchID := match["id"].(string)

	var lastEvent map[string]any
	for i := 0; i < 21; i++ {
		resp, err := app.Test(jsonRequest(http.MethodPost, "/matches/"+matchID+"/events", fiber.Map{
			"type":    "POINT",
			"payload": fiber.Map{"scoringParticipantId": "alice"},
		}), -1)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		_, lastEvent = decodeEnvelope(t, resp)
	}

	part := lastEvent["part"].(map[string]any)
	assert.EqualValues(t, 21, part["p1_score"])
	assert.EqualValues(t, 0, part["p2_score"])
	assert.Equal(t, "alice", part["winner_participant_id"])
	assert.Equal(t, true, lastEvent["part_complete"])
	assert.Equal(t, false, lastEvent["match_complete"])

	resp, err = app.Test(jsonRequest(http.MethodGet, "/matches/"+matchID+"/live", nil), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	_, live := decodeEnvelope(t, resp)
	assert.Equal(t, "LIVE", live["status"])
	assert.EqualValues(t, 2, live["active_part_number"])

	resp, err = app.Test(jsonRequest(http.MethodPost, "/matches/"+matchID+"/end", nil), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	_, ended := decodeEnvelope(t, resp)
	assert.Equal(t, "COMPLETED", ended["status"])
	assert.NotNil(t, ended["end_time"])
}

func TestMatchEndpointErrorMapping(t *testing.T) {
	app, db := newTestApp(t)

	t.Run("unknown match is 404", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(http.MethodGet, "/matches/nope/live", nil), -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		env, _ := decodeEnvelope(t, resp)
		assert.False(t, env.Success)
		assert.Equal(t, "MATCH_NOT_FOUND", env.Message)
	})

	t.Run("bad input is 400", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(http.MethodPost, "/matches", fiber.Map{
			"locationId":           "loc",
			"playArea":             "Court 1",
			"gameType":             "BADMINTON",
			"participantIds":       []string{"only-one"},
			"servingParticipantId": "only-one",
		}), -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		env, _ := decodeEnvelope(t, resp)
		assert.Equal(t, "MATCH_REQUIRES_2_PARTICIPANTS", env.Message)
	})

	t.Run("event on completed match is 409", func(t *testing.T) {
		location := models.Location{ID: uuid.NewString(), Name: "Hall C", IsActive: true}
		require.NoError(t, db.Create(&location).Error)

		resp, err := app.Test(jsonRequest(http.MethodPost, "/matches", fiber.Map{
			"locationId":           location.ID,
			"playArea":             "Court 1",
			"gameType":             "BADMINTON",
			"participantIds":       []string{"alice", "bob"},
			"servingParticipantId": "bob",
		}), -1)
		require.NoError(t, err)
		_, match := decodeEnvelope(t, resp)
		matchID := match["id"].(string)

		resp, err = app.Test(jsonRequest(http.MethodPost, "/matches/"+matchID+"/end", nil), -1)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		resp, err = app.Test(jsonRequest(http.MethodPost, "/matches/"+matchID+"/events", fiber.Map{
			"type":    "POINT",
			"payload": fiber.Map{"scoringParticipantId": "alice"},
		}), -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusConflict, resp.StatusCode)

		env, _ := decodeEnvelope(t, resp)
		assert.Equal(t, "MATCH_NOT_LIVE", env.Message)
	})

	t.Run("mutation without user context is 401", func(t *testing.T) {
		req := jsonRequest(http.MethodPost, "/matches/any/start", nil)
		req.Header.Del("X-User-ID")
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}
