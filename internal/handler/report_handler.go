package handler

import (
	"github.com/sr-oliveiraa/smartcaixa/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ReportHandler struct {
	service service.ReportService
}

func NewReportHandler(s service.ReportService) *ReportHandler {
	return &ReportHandler{service: s}
}

// TransactionsReport renders the period's sales as a printable PDF
// GET /api/v1/reports/transactions?filtro=hoje
func (h *ReportHandler) TransactionsReport(c *fiber.Ctx) error {
	filter := c.Query("filtro", "todas")

	pdf, err := h.service.TransactionsReport(filter)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="relatorio_vendas.pdf"`)
	return c.Send(pdf)
}

// ClosingReport renders one cash-closing as a printable PDF
// GET /api/v1/closings/:id/pdf
func (h *ReportHandler) ClosingReport(c *fiber.Ctx) error {
	closingID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid closing ID"})
	}

	pdf, err := h.service.ClosingReport(closingID)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Fechamento nao encontrado"})
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="fechamento_caixa.pdf"`)
	return c.Send(pdf)
}
