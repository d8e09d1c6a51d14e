package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"competition-service/apperr"
	"competition-service/middleware"
	"competition-service/services"
)

// SetupMatchRoutes wires the match lifecycle endpoints, both at the
// top level and nested under a tournament. Reads are open to any
// gateway-forwarded request; lifecycle mutations need a user context.
func SetupMatchRoutes(app *fiber.App, matches *services.MatchService) {
	h := &matchHandler{matches: matches}

	app.Get("/matches", h.list)
	app.Get("/matches/:id/live", h.live)
	app.Get("/matches/:id", h.get)
	app.Get("/tournaments/:tournamentId/matches", h.list)
	app.Get("/tournaments/:tournamentId/matches/:id", h.get)

	userCtx := middleware.UserContextMiddleware()
	app.Post("/matches", userCtx, h.create)
	app.Post("/tournaments/:tournamentId/matches", userCtx, h.create)
	app.Post("/matches/:id/start", userCtx, h.start)
	app.Post("/matches/:id/events", userCtx, h.recordEvent)
	app.Post("/matches/:id/end", userCtx, h.end)
}

type matchHandler struct {
	matches *services.MatchService
}

type createMatchRequest struct {
	TournamentID         *string  `json:"tournamentId"`
	LocationID           string   `json:"locationId"`
	PlayArea             string   `json:"playArea"`
	GameType             string   `json:"gameType"`
	PartsCount           int      `json:"partsCount"`
	StartTime            string   `json:"startTime"`
	OfficialUserID       string   `json:"officialUserId"`
	ParticipantIDs       []string `json:"participantIds"`
	ServingParticipantID string   `json:"servingParticipantId"`
}

func (h *matchHandler) create(c *fiber.Ctx) error {
	var req createMatchRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, apperr.Invalid(apperr.CodeInvalidBody, "malformed request body"))
	}

	in := services.CreateMatchInput{
		TournamentID:         req.TournamentID,
		LocationID:           req.LocationID,
		PlayArea:             req.PlayArea,
		SportCode:            req.GameType,
		PartsCount:           req.PartsCount,
		OfficialUserID:       req.OfficialUserID,
		ParticipantIDs:       req.ParticipantIDs,
		ServingParticipantID: req.ServingParticipantID,
	}

	// nested route wins over a tournamentId in the body
	if tid := c.Params("tournamentId"); tid != "" {
		in.TournamentID = &tid
	}

	if req.StartTime != "" {
		startTime, err := time.Parse(time.RFC3339, req.StartTime)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(envelope{
				Success: false,
				Message: "invalid startTime (use RFC3339)",
			})
		}
		in.StartTime = &startTime
	}

	match, err := h.matches.CreateMatch(in)
	if err != nil {
		return respondError(c, err)
	}
	return respondCreated(c, "Match created", match)
}

func (h *matchHandler) list(c *fiber.Ctx) error {
	var tournamentID *string
	if tid := c.Params("tournamentId"); tid != "" {
		tournamentID = &tid
	} else if tid := c.Query("tournamentId"); tid != "" {
		tournamentID = &tid
	}

	matches, err := h.matches.ListMatches(tournamentID)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "", matches)
}

func (h *matchHandler) get(c *fiber.Ctx) error {
	var tournamentID *string
	if tid := c.Params("tournamentId"); tid != "" {
		tournamentID = &tid
	}

	match, err := h.matches.GetMatch(c.Params("id"), tournamentID)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "", match)
}

func (h *matchHandler) start(c *fiber.Ctx) error {
	match, err := h.matches.StartMatch(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "Match started", match)
}

type recordEventRequest struct {
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload"`
}

func (h *matchHandler) recordEvent(c *fiber.Ctx) error {
	var req recordEventRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, apperr.Invalid(apperr.CodeInvalidBody, "malformed request body"))
	}

	result, err := h.matches.RecordEvent(c.Params("id"), req.Type, req.Payload)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "Event recorded", result)
}

func (h *matchHandler) live(c *fiber.Ctx) error {
	state, err := h.matches.GetLiveState(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "", state)
}

func (h *matchHandler) end(c *fiber.Ctx) error {
	match, err := h.matches.EndMatch(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "Match completed", match)
}
