package handler

import (
	"errors"

	"github.com/sr-oliveiraa/smartcaixa/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ShiftHandler struct {
	service service.ShiftService
}

func NewShiftHandler(s service.ShiftService) *ShiftHandler {
	return &ShiftHandler{service: s}
}

// GetCurrentShift returns the operator's open shift, 404 when none is open
// GET /api/v1/shifts/current
func (h *ShiftHandler) GetCurrentShift(c *fiber.Ctx) error {
	userID, err := getUserUUID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	shift, err := h.service.Current(userID)
	if err != nil {
		if errors.Is(err, service.ErrMissingShiftOpen) {
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(shift)
}

// GetShiftHistory lists the operator's past shifts, newest first
// GET /api/v1/shifts
func (h *ShiftHandler) GetShiftHistory(c *fiber.Ctx) error {
	userID, err := getUserUUID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	shifts, err := h.service.History(userID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(shifts)
}
