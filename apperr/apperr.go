// Package apperr defines the closed set of domain failure codes the
// service returns. Every rule violation travels as an *Error carrying
// a stable machine-readable code plus a kind; HTTP handlers map the
// kind to a status and never expose raw store errors.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a failure for transport mapping and retry policy.
type Kind int

const (
	KindNotFound    Kind = iota + 1 // entity absent → 404
	KindInvalid                     // bad input → 400
	KindConflict                    // operation invalid for current state → 409
	KindUnavailable                 // store/registry unreachable → 503, retryable
)

// Stable failure codes. These are part of the API contract: clients
// branch on them, so renaming one is a breaking change.
const (
	CodeMatchNotFound         = "MATCH_NOT_FOUND"
	CodeMatchNotLive          = "MATCH_NOT_LIVE"
	CodeMatchAlreadyStarted   = "MATCH_ALREADY_STARTED"
	CodeNoActivePart          = "NO_ACTIVE_PART"
	CodeUnsupportedEvent      = "UNSUPPORTED_EVENT"
	CodeUnsupportedSport      = "UNSUPPORTED_SPORT"
	CodeInvalidPosition       = "INVALID_POSITION"
	CodeScoreConflict         = "SCORE_CONFLICT"
	CodeScorerRequired        = "SCORING_PARTICIPANT_REQUIRED"
	CodeParticipantNotInMatch = "PARTICIPANT_NOT_IN_MATCH"

	CodeLocationRequired      = "LOCATION_REQUIRED"
	CodePlayAreaRequired      = "PLAY_AREA_REQUIRED"
	CodeGameTypeRequired      = "GAME_TYPE_REQUIRED"
	CodeTwoParticipantsNeeded = "MATCH_REQUIRES_2_PARTICIPANTS"
	CodeInvalidServingPlayer  = "INVALID_SERVING_PARTICIPANT"
	CodeRulesNotFound         = "TOURNAMENT_RULES_NOT_FOUND"
	CodePartsExceedRules      = "PARTS_EXCEED_TOURNAMENT_RULES"
	CodeGameTypeMismatch      = "GAME_TYPE_MISMATCH_WITH_TOURNAMENT"
	CodeIneligibleParticipant = "INVALID_OR_ELIMINATED_PARTICIPANT"

	CodeTournamentNotFound    = "TOURNAMENT_NOT_FOUND"
	CodeTournamentLocked      = "TOURNAMENT_LOCKED"
	CodeTournamentNotOpen     = "TOURNAMENT_NOT_OPEN"
	CodeTournamentStarted     = "TOURNAMENT_ALREADY_STARTED"
	CodeTournamentUndeletable = "TOURNAMENT_CANNOT_BE_DELETED"
	CodeInvalidDateRange      = "INVALID_DATE_RANGE"
	CodeInvalidPlayAreas      = "INVALID_PLAY_AREAS"
	CodeInvalidPartsPerMatch  = "INVALID_PARTS_PER_MATCH"
	CodeDaysOfWeekRequired    = "DAYS_OF_WEEK_REQUIRED"
	CodeAlreadyJoined         = "ALREADY_JOINED"
	CodePrivateTournament     = "INVALID_OR_PRIVATE_TOURNAMENT"
	CodeSinglesNeedsPlayer    = "SINGLES_REQUIRES_PLAYER"
	CodeDoublesNeedsTeam      = "DOUBLES_REQUIRES_TEAM"
	CodePlayerIDRequired      = "PLAYER_ID_REQUIRED"
	CodeTeamIDRequired        = "TEAM_ID_REQUIRED"
	CodeParticipantNotFound   = "PARTICIPANT_NOT_FOUND"

	CodeLocationNotFound = "LOCATION_NOT_FOUND"

	CodeInvalidBody = "INVALID_REQUEST_BODY"

	CodeStoreUnavailable = "STORE_UNAVAILABLE"
)

// Error is a typed domain failure.
type Error struct {
	Code    string
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Code
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// New builds a domain failure with the given kind and code.
func New(kind Kind, code, format string, args ...any) *Error {
	return &Error{Code: code, Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func NotFound(code, format string, args ...any) *Error {
	return New(KindNotFound, code, format, args...)
}

func Invalid(code, format string, args ...any) *Error {
	return New(KindInvalid, code, format, args...)
}

func Conflict(code, format string, args ...any) *Error {
	return New(KindConflict, code, format, args...)
}

func Unavailable(code, format string, args ...any) *Error {
	return New(KindUnavailable, code, format, args...)
}

// CodeOf returns the stable code of err, or "" for untyped errors.
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// KindOf returns the kind of err, or 0 for untyped errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// Retryable reports whether a caller may usefully retry the request.
// Only upstream unavailability qualifies; every other kind is a
// terminal answer for that request.
func Retryable(err error) bool {
	return KindOf(err) == KindUnavailable
}
