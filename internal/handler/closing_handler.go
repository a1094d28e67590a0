package handler

import (
	"errors"

	"github.com/sr-oliveiraa/smartcaixa/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ClosingHandler struct {
	service service.ClosingService
}

func NewClosingHandler(s service.ClosingService) *ClosingHandler {
	return &ClosingHandler{service: s}
}

// CloseRegister performs the end-of-shift cash closing
// POST /api/v1/closings
func (h *ClosingHandler) CloseRegister(c *fiber.Ctx) error {
	var req service.CloseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	userID, err := getUserUUID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	closing, err := h.service.CloseRegister(userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidTimeRange):
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, service.ErrMissingShiftOpen):
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, service.ErrShiftAlreadyClosed):
			return c.Status(409).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(201).JSON(fiber.Map{"message": "Caixa fechado", "data": closing})
}

func (h *ClosingHandler) GetClosing(c *fiber.Ctx) error {
	closingID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid closing ID"})
	}

	closing, err := h.service.GetByID(closingID)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Fechamento nao encontrado"})
	}
	return c.JSON(closing)
}

// GetClosings lists every closing, or one operator's with ?user=<id>
// GET /api/v1/closings
func (h *ClosingHandler) GetClosings(c *fiber.Ctx) error {
	if raw := c.Query("user"); raw != "" {
		userID, err := parseUUID(raw)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid user ID"})
		}
		closings, err := h.service.ListByUser(userID)
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
		}
		return c.JSON(closings)
	}

	closings, err := h.service.List()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(closings)
}

// AppendNotesRequest carries extra free text for an existing closing
type AppendNotesRequest struct {
	Notes string `json:"observacoes"`
}

// AppendNotes adds text to a closing; totals never change after the close
// PATCH /api/v1/closings/:id/notes
func (h *ClosingHandler) AppendNotes(c *fiber.Ctx) error {
	closingID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid closing ID"})
	}

	var req AppendNotesRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if req.Notes == "" {
		return c.Status(400).JSON(fiber.Map{"error": "observacoes is required"})
	}

	closing, err := h.service.AppendNotes(closingID, req.Notes, getUserID(c))
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Fechamento nao encontrado"})
	}
	return c.JSON(fiber.Map{"message": "Observacoes adicionadas", "data": closing})
}
