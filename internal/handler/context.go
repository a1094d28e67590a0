package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Helpers to read operator info set by the auth middleware

func getUserID(c *fiber.Ctx) string {
	userID := c.Locals("user_id")
	if userID == nil {
		return "system"
	}
	return userID.(string)
}

func getUserName(c *fiber.Ctx) string {
	userName := c.Locals("user_name")
	if userName == nil {
		return "Unknown"
	}
	return userName.(string)
}

func getUserUUID(c *fiber.Ctx) (uuid.UUID, error) {
	return uuid.Parse(getUserID(c))
}

func parseUUID(id string) (uuid.UUID, error) {
	return uuid.Parse(id)
}
