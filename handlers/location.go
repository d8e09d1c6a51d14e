package handlers

import (
	"github.com/gofiber/fiber/v2"

	"competition-service/apperr"
	"competition-service/middleware"
	"competition-service/services"
)

// SetupLocationRoutes wires venue CRUD.
func SetupLocationRoutes(app *fiber.App, locations *services.LocationService) {
	h := &locationHandler{locations: locations}

	app.Get("/locations", h.list)
	app.Get("/locations/:id", h.get)

	userCtx := middleware.UserContextMiddleware()
	app.Post("/locations", userCtx, h.create)
	app.Put("/locations/:id", userCtx, h.update)
	app.Delete("/locations/:id", userCtx, h.delete)
}

type locationHandler struct {
	locations *services.LocationService
}

func (h *locationHandler) create(c *fiber.Ctx) error {
	var req services.LocationInput
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, apperr.Invalid(apperr.CodeInvalidBody, "malformed request body"))
	}

	location, err := h.locations.CreateLocation(req)
	if err != nil {
		return respondError(c, err)
	}
	return respondCreated(c, "Location created", location)
}

func (h *locationHandler) list(c *fiber.Ctx) error {
	locations, err := h.locations.ListLocations(c.Query("city", ""))
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "", locations)
}

func (h *locationHandler) get(c *fiber.Ctx) error {
	location, err := h.locations.GetLocation(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "", location)
}

func (h *locationHandler) update(c *fiber.Ctx) error {
	var req services.LocationInput
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, apperr.Invalid(apperr.CodeInvalidBody, "malformed request body"))
	}

	location, err := h.locations.UpdateLocation(c.Params("id"), req)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "Location updated", location)
}

func (h *locationHandler) delete(c *fiber.Ctx) error {
	if err := h.locations.DeleteLocation(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "Location deactivated", nil)
}
