package handler

import (
	"errors"

	"github.com/sr-oliveiraa/smartcaixa/internal/service"

	"github.com/gofiber/fiber/v2"
)

type CheckoutHandler struct {
	service service.CheckoutService
}

func NewCheckoutHandler(s service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{service: s}
}

// FinalizeSale runs the checkout for the cart on screen
// POST /api/v1/checkout
func (h *CheckoutHandler) FinalizeSale(c *fiber.Ctx) error {
	var req service.CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"status": "error", "message": "Invalid JSON"})
	}

	receipt, err := h.service.FinalizeSale(&req, getUserID(c), getUserName(c))
	if err != nil {
		return c.Status(checkoutStatus(err)).JSON(fiber.Map{"status": "error", "message": err.Error()})
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "Compra finalizada com sucesso!",
		"data":    receipt,
	})
}

// checkoutStatus maps business rejections to 400; anything else is a commit
// failure and reports as 500
func checkoutStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrEmptyCart),
		errors.Is(err, service.ErrInvalidCart),
		errors.Is(err, service.ErrInsufficientPayment),
		errors.Is(err, service.ErrInsufficientStock),
		errors.Is(err, service.ErrInvalidPaymentMethod),
		errors.Is(err, service.ErrProductNotFound):
		return 400
	}
	return 500
}

// GetTransactions lists the sales history with a period filter
// GET /api/v1/transactions?filtro=hoje|semana|mes|todas&page=1
func (h *CheckoutHandler) GetTransactions(c *fiber.Ctx) error {
	filter := c.Query("filtro", "hoje")
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 200)

	result, err := h.service.ListTransactions(filter, page, limit)
	if err != nil {
		if errors.Is(err, service.ErrInvalidPeriodFilter) {
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}

	return c.JSON(result)
}

// GetDailySales returns revenue per day for charts
// GET /api/v1/transactions/daily?days=7
func (h *CheckoutHandler) GetDailySales(c *fiber.Ctx) error {
	days := c.QueryInt("days", 7)
	if days <= 0 {
		days = 7
	}

	data, err := h.service.GetDailySales(days)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch daily sales"})
	}

	return c.JSON(fiber.Map{"period": days, "data": data})
}

func (h *CheckoutHandler) GetTransaction(c *fiber.Ctx) error {
	txID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid transaction ID"})
	}

	transaction, err := h.service.GetTransactionByID(txID)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Transacao nao encontrada"})
	}
	return c.JSON(transaction)
}
