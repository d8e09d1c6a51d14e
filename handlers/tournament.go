package handlers

import (
	"path/filepath"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"competition-service/apperr"
	"competition-service/middleware"
	"competition-service/services"
	"competition-service/utils"
)

// SetupTournamentRoutes wires tournament registry CRUD, rules,
// participant registration and photo upload.
func SetupTournamentRoutes(app *fiber.App, tournaments *services.TournamentService, participants *services.ParticipantService, uploadsEnabled bool) {
	h := &tournamentHandler{
		tournaments:    tournaments,
		participants:   participants,
		uploadsEnabled: uploadsEnabled,
	}

	app.Get("/tournaments", h.list)
	app.Get("/tournaments/:id/participants", h.listParticipants)
	app.Get("/tournaments/:id", h.get)
	app.Get("/players/search", h.searchPlayers)

	userCtx := middleware.UserContextMiddleware()
	app.Post("/tournaments", userCtx, h.create)
	app.Put("/tournaments/:id", userCtx, h.update)
	app.Delete("/tournaments/:id", userCtx, h.delete)
	app.Put("/tournaments/:id/rules", userCtx, h.upsertRules)
	app.Post("/tournaments/:id/photos", userCtx, h.uploadPhoto)
	app.Post("/tournaments/join", userCtx, h.joinByCode)
	app.Post("/tournaments/:id/join", userCtx, h.join)
	app.Post("/tournaments/:id/participants", userCtx, h.addParticipant)
	app.Delete("/participants/:id", userCtx, h.removeParticipant)
}

type tournamentHandler struct {
	tournaments    *services.TournamentService
	participants   *services.ParticipantService
	uploadsEnabled bool
}

func (h *tournamentHandler) create(c *fiber.Ctx) error {
	var req services.CreateTournamentInput
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, apperr.Invalid(apperr.CodeInvalidBody, "malformed request body"))
	}
	if req.Name == "" || req.SportCode == "" {
		return c.Status(fiber.StatusBadRequest).JSON(envelope{Success: false, Message: "name and sportCode are required"})
	}

	tournament, err := h.tournaments.CreateTournament(req)
	if err != nil {
		return respondError(c, err)
	}
	return respondCreated(c, "Tournament created", tournament)
}

func (h *tournamentHandler) list(c *fiber.Ctx) error {
	tournaments, err := h.tournaments.ListTournaments()
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "", tournaments)
}

func (h *tournamentHandler) get(c *fiber.Ctx) error {
	tournament, err := h.tournaments.GetTournament(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "", tournament)
}

func (h *tournamentHandler) update(c *fiber.Ctx) error {
	var req services.UpdateTournamentInput
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, apperr.Invalid(apperr.CodeInvalidBody, "malformed request body"))
	}

	tournament, err := h.tournaments.UpdateTournament(c.Params("id"), req)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "Tournament updated", tournament)
}

func (h *tournamentHandler) delete(c *fiber.Ctx) error {
	if err := h.tournaments.DeleteTournament(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "Tournament deleted", nil)
}

func (h *tournamentHandler) upsertRules(c *fiber.Ctx) error {
	var req services.RulesInput
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, apperr.Invalid(apperr.CodeInvalidBody, "malformed request body"))
	}

	rules, err := h.tournaments.UpsertRules(c.Params("id"), req)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "Rules saved", rules)
}

func (h *tournamentHandler) uploadPhoto(c *fiber.Ctx) error {
	if !h.uploadsEnabled {
		return c.Status(fiber.StatusServiceUnavailable).JSON(envelope{Success: false, Message: "object storage not configured"})
	}

	photo, err := c.FormFile("photo")
	if err != nil || photo.Size == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(envelope{Success: false, Message: "photo file is required"})
	}

	ext := filepath.Ext(photo.Filename)
	if ext == "" {
		ext = ".jpg"
	}
	key := "tournaments/photos/" + uuid.NewString() + ext
	url, err := utils.UploadFile(photo, key)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(envelope{Success: false, Message: "failed to upload photo"})
	}

	sortOrder, _ := strconv.Atoi(c.FormValue("sort_order", "0"))
	saved, err := h.tournaments.AddPhoto(c.Params("id"), url, sortOrder)
	if err != nil {
		return respondError(c, err)
	}
	return respondCreated(c, "Photo uploaded", saved)
}

func (h *tournamentHandler) addParticipant(c *fiber.Ctx) error {
	var req services.AddParticipantInput
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, apperr.Invalid(apperr.CodeInvalidBody, "malformed request body"))
	}

	participant, err := h.participants.AddParticipant(c.Params("id"), req)
	if err != nil {
		return respondError(c, err)
	}
	return respondCreated(c, "Participant registered", participant)
}

func (h *tournamentHandler) listParticipants(c *fiber.Ctx) error {
	list, err := h.participants.ListParticipants(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "", list)
}

func (h *tournamentHandler) removeParticipant(c *fiber.Ctx) error {
	if err := h.participants.RemoveParticipant(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "Participant removed", nil)
}

func (h *tournamentHandler) joinByCode(c *fiber.Ctx) error {
	var req services.JoinByCodeInput
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, apperr.Invalid(apperr.CodeInvalidBody, "malformed request body"))
	}

	participant, err := h.participants.JoinByCode(req)
	if err != nil {
		return respondError(c, err)
	}
	return respondCreated(c, "Joined tournament", participant)
}

func (h *tournamentHandler) join(c *fiber.Ctx) error {
	var req struct {
		PlayerID string `json:"playerId"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, apperr.Invalid(apperr.CodeInvalidBody, "malformed request body"))
	}
	if req.PlayerID == "" {
		// fall back to the authenticated user
		if uid, ok := c.Locals("user_id").(string); ok {
			req.PlayerID = uid
		}
	}

	participant, err := h.participants.JoinTournament(c.Params("id"), req.PlayerID)
	if err != nil {
		return respondError(c, err)
	}
	return respondCreated(c, "Joined tournament", participant)
}

func (h *tournamentHandler) searchPlayers(c *fiber.Ctx) error {
	limit, err := strconv.Atoi(c.Query("limit", "50"))
	if err != nil {
		limit = 50
	}

	players, err := h.participants.SearchPlayers(c.Query("q", ""), limit)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "", players)
}
