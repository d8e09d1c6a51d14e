// Package engines holds the per-sport scoring strategies. An engine
// is a pure function over a loaded match snapshot: it never touches
// the database, so adding a sport means implementing ScoringEngine
// and registering it in main — nothing in the lifecycle service or
// the registry changes.
package engines

import (
	"competition-service/models"
)

// Event types understood by the engines shipped today.
const EventPoint = "POINT"

// EventPayload is what an engine sees of a scoring submission. The
// lifecycle service resolves the raw participant identity to a match
// position before invoking the engine, so engines never deal with
// identity lookup.
type EventPayload struct {
	ParticipantID string
	Position      int // 1 or 2
}

// Result is the computed next state for one event. Part is a copy of
// the active part with the event applied; the caller owns persisting
// it together with the event log append.
type Result struct {
	Part         models.MatchPart
	PartComplete bool // the part just recorded a winner
}

// ScoringEngine applies one scoring event to a match snapshot.
type ScoringEngine interface {
	// SportCode identifies the sport this engine scores, e.g. "BADMINTON".
	SportCode() string

	// DefaultParts is the parts count used for quick matches that
	// don't specify one.
	DefaultParts() int

	// ApplyEvent computes the next state of the active part. It must
	// not mutate match and must not perform I/O. Fails with
	// NO_ACTIVE_PART when every part already has a winner,
	// UNSUPPORTED_EVENT for event types the sport doesn't know, and
	// INVALID_POSITION for positions outside {1,2}.
	ApplyEvent(match *models.Match, eventType string, payload EventPayload) (*Result, error)
}

// activePart returns a copy of the single part without a winner, or
// false when the match has none left. Parts are scanned in part-number
// order so the earliest open part is always the active one.
func activePart(match *models.Match) (models.MatchPart, bool) {
	var active *models.MatchPart
	for i := range match.Parts {
		p := &match.Parts[i]
		if p.WinnerParticipantID != nil {
			continue
		}
		if active == nil || p.PartNumber < active.PartNumber {
			active = p
		}
	}
	if active == nil {
		return models.MatchPart{}, false
	}
	return *active, true
}
