package engines

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"competition-service/apperr"
	"competition-service/models"
)

func strPtr(s string) *string { return &s }

// matchWithParts builds a minimal LIVE badminton match snapshot.
func matchWithParts(parts ...models.MatchPart) *models.Match {
	return &models.Match{
		ID:        "m1",
		SportCode: SportBadminton,
		Status:    models.MatchStatusLive,
		Parts:     parts,
		Participants: []models.MatchParticipant{
			{MatchID: "m1", ParticipantID: "alice", Position: 1},
			{MatchID: "m1", ParticipantID: "bob", Position: 2},
		},
	}
}

func TestBadmintonPointIncrementsScoringSide(t *testing.T) {
	engine := NewBadmintonEngine()
	match := matchWithParts(models.MatchPart{ID: "p1", PartNumber: 1, P1Score: 3, P2Score: 7})

	res, err := engine.ApplyEvent(match, EventPoint, EventPayload{ParticipantID: "bob", Position: 2})

	require.NoError(t, err)
	assert.Equal(t, 3, res.Part.P1Score)
	assert.Equal(t, 8, res.Part.P2Score)
	assert.Nil(t, res.Part.WinnerParticipantID)
	assert.False(t, res.PartComplete)

	// snapshot must not be mutated
	assert.Equal(t, 7, match.Parts[0].P2Score)
}

func TestBadmintonWinAtTwentyOneWithTwoPointLead(t *testing.T) {
	engine := NewBadmintonEngine()
	match := matchWithParts(models.MatchPart{ID: "p1", PartNumber: 1, P1Score: 20, P2Score: 19})

	res, err := engine.ApplyEvent(match, EventPoint, EventPayload{ParticipantID: "alice", Position: 1})

	require.NoError(t, err)
	assert.Equal(t, 21, res.Part.P1Score)
	assert.Equal(t, 19, res.Part.P2Score)
	require.NotNil(t, res.Part.WinnerParticipantID)
	assert.Equal(t, "alice", *res.Part.WinnerParticipantID)
	assert.True(t, res.PartComplete)
}

func TestBadmintonDeuceContinuesWithoutTwoPointLead(t *testing.T) {
	engine := NewBadmintonEngine()
	match := matchWithParts(models.MatchPart{ID: "p1", PartNumber: 1, P1Score: 20, P2Score: 20})

	res, err := engine.ApplyEvent(match, EventPoint, EventPayload{ParticipantID: "alice", Position: 1})

	require.NoError(t, err)
	assert.Equal(t, 21, res.Part.P1Score)
	assert.Equal(t, 20, res.Part.P2Score)
	assert.Nil(t, res.Part.WinnerParticipantID)
	assert.False(t, res.PartComplete)
}

func TestBadmintonNoHardCap(t *testing.T) {
	engine := NewBadmintonEngine()
	match := matchWithParts(models.MatchPart{ID: "p1", PartNumber: 1, P1Score: 29, P2Score: 29})

	res, err := engine.ApplyEvent(match, EventPoint, EventPayload{ParticipantID: "bob", Position: 2})

	require.NoError(t, err)
	assert.Nil(t, res.Part.WinnerParticipantID)
}

func TestBadmintonPicksEarliestOpenPart(t *testing.T) {
	engine := NewBadmintonEngine()
	match := matchWithParts(
		models.MatchPart{ID: "p1", PartNumber: 1, P1Score: 21, P2Score: 12, WinnerParticipantID: strPtr("alice")},
		models.MatchPart{ID: "p2", PartNumber: 2, P1Score: 5, P2Score: 5},
		models.MatchPart{ID: "p3", PartNumber: 3},
	)

	res, err := engine.ApplyEvent(match, EventPoint, EventPayload{ParticipantID: "alice", Position: 1})

	require.NoError(t, err)
	assert.Equal(t, "p2", res.Part.ID)
	assert.Equal(t, 6, res.Part.P1Score)
}

func TestBadmintonNoActivePart(t *testing.T) {
	engine := NewBadmintonEngine()
	match := matchWithParts(
		models.MatchPart{ID: "p1", PartNumber: 1, P1Score: 21, P2Score: 12, WinnerParticipantID: strPtr("alice")},
	)

	_, err := engine.ApplyEvent(match, EventPoint, EventPayload{ParticipantID: "bob", Position: 2})

	require.Error(t, err)
	assert.Equal(t, apperr.CodeNoActivePart, apperr.CodeOf(err))
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestBadmintonRejectsUnknownEventType(t *testing.T) {
	engine := NewBadmintonEngine()
	match := matchWithParts(models.MatchPart{ID: "p1", PartNumber: 1})

	_, err := engine.ApplyEvent(match, "SMASH", EventPayload{ParticipantID: "alice", Position: 1})

	require.Error(t, err)
	assert.Equal(t, apperr.CodeUnsupportedEvent, apperr.CodeOf(err))
}

func TestBadmintonRejectsInvalidPosition(t *testing.T) {
	engine := NewBadmintonEngine()
	match := matchWithParts(models.MatchPart{ID: "p1", PartNumber: 1})

	for _, pos := range []int{0, 3, -1} {
		_, err := engine.ApplyEvent(match, EventPoint, EventPayload{ParticipantID: "alice", Position: pos})
		require.Error(t, err)
		assert.Equal(t, apperr.CodeInvalidPosition, apperr.CodeOf(err))
	}
}
