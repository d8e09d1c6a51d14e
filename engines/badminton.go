package engines

import (
	"competition-service/apperr"
	"competition-service/models"
)

// SportBadminton is the reference sport code.
const SportBadminton = "BADMINTON"

// Badminton scoring constants: a part (game) is won at 21 points with
// a two-point lead. Deuce continues indefinitely — there is no hard
// cap. These are engine-local; other sports define their own.
const (
	badmintonWinTarget    = 21
	badmintonWinMargin    = 2
	badmintonDefaultParts = 3
)

// BadmintonEngine scores singles/doubles badminton on rally points.
type BadmintonEngine struct{}

func NewBadmintonEngine() *BadmintonEngine {
	return &BadmintonEngine{}
}

func (e *BadmintonEngine) SportCode() string { return SportBadminton }

func (e *BadmintonEngine) DefaultParts() int { return badmintonDefaultParts }

func (e *BadmintonEngine) ApplyEvent(match *models.Match, eventType string, payload EventPayload) (*Result, error) {
	if eventType != EventPoint {
		return nil, apperr.Invalid(apperr.CodeUnsupportedEvent, "badminton does not support event type %q", eventType)
	}
	if payload.Position != 1 && payload.Position != 2 {
		return nil, apperr.Invalid(apperr.CodeInvalidPosition, "position must be 1 or 2, got %d", payload.Position)
	}

	part, ok := activePart(match)
	if !ok {
		return nil, apperr.Conflict(apperr.CodeNoActivePart, "all %d parts are decided", len(match.Parts))
	}

	switch payload.Position {
	case 1:
		part.P1Score++
	case 2:
		part.P2Score++
	}

	diff := part.P1Score - part.P2Score
	if diff < 0 {
		diff = -diff
	}
	max := part.P1Score
	if part.P2Score > max {
		max = part.P2Score
	}

	result := &Result{Part: part}
	if max >= badmintonWinTarget && diff >= badmintonWinMargin {
		winner := payload.ParticipantID
		result.Part.WinnerParticipantID = &winner
		result.PartComplete = true
	}
	return result, nil
}
