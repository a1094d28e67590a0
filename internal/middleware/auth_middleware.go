package middleware

import (
	"strings"

	"github.com/sr-oliveiraa/smartcaixa/internal/repository"
	"github.com/sr-oliveiraa/smartcaixa/internal/service"
	"github.com/sr-oliveiraa/smartcaixa/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// RequireAuth validates the JWT and sets operator info in the request context
func RequireAuth(userRepo repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(401).JSON(fiber.Map{"error": "Missing authorization token"})
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid authorization format. Use: Bearer <token>"})
		}

		claims, err := jwt.ValidateToken(parts[1])
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid or expired token"})
		}

		// The token must still map to an active operator
		user, err := userRepo.FindByID(claims.UserID)
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "User not found"})
		}
		if !user.IsActive {
			return c.Status(401).JSON(fiber.Map{"error": "User account is inactive"})
		}

		c.Locals("user_id", claims.UserID.String())
		c.Locals("user_name", claims.Username)
		c.Locals("is_admin", claims.IsAdmin)

		return c.Next()
	}
}

// RequireAdmin guards the operator-management routes
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		isAdmin, ok := c.Locals("is_admin").(bool)
		if !ok || !isAdmin {
			return c.Status(403).JSON(fiber.Map{"error": "Forbidden: requires admin access"})
		}
		return c.Next()
	}
}

// RequireOpenShift blocks the POS routes once the operator's shift is closed
// or was never opened. The screen must log in again to open a fresh shift.
func RequireOpenShift(shiftService service.ShiftService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := uuid.Parse(c.Locals("user_id").(string))
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid user ID"})
		}

		shift, err := shiftService.Current(userID)
		if err != nil {
			return c.Status(403).JSON(fiber.Map{"error": "Turno encerrado ou inexistente, faca login novamente"})
		}

		c.Locals("shift_id", shift.ID.String())
		return c.Next()
	}
}
