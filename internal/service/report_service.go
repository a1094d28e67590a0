package service

import (
	"bytes"
	"fmt"
	"time"

	"github.com/sr-oliveiraa/smartcaixa/internal/repository"

	"github.com/go-pdf/fpdf"
	"github.com/google/uuid"
)

const reportDateLayout = "02/01/2006 15:04"

// ReportService renders printable register documents
type ReportService interface {
	TransactionsReport(filter string) ([]byte, error)
	ClosingReport(id uuid.UUID) ([]byte, error)
}

type reportService struct {
	txRepo      repository.TransactionRepository
	closingRepo repository.ClosingRepository
}

func NewReportService(tRepo repository.TransactionRepository, cRepo repository.ClosingRepository) ReportService {
	return &reportService{
		txRepo:      tRepo,
		closingRepo: cRepo,
	}
}

// TransactionsReport lists every sale in the period, one line per
// transaction with its items indented below
func (s *reportService) TransactionsReport(filter string) ([]byte, error) {
	start, err := PeriodStart(filter, time.Now())
	if err != nil {
		return nil, err
	}

	transactions, _, err := s.txRepo.FindByPeriod(start, 1, 200)
	if err != nil {
		return nil, err
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 10, "Relatorio de Vendas", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 11)

	var total float64
	for _, t := range transactions {
		pdf.CellFormat(0, 8,
			fmt.Sprintf("%s - R$ %.2f - %s", t.Date.Format(reportDateLayout), t.Total, t.PaymentMethod),
			"", 1, "", false, 0, "")
		for _, item := range t.Items {
			name := item.ProductID.String()
			if item.Product != nil {
				name = item.Product.Name
			}
			pdf.SetX(20)
			pdf.CellFormat(0, 6,
				fmt.Sprintf("%s - %d x R$ %.2f = R$ %.2f", name, item.Quantity, item.UnitPrice, float64(item.Quantity)*item.UnitPrice),
				"", 1, "", false, 0, "")
		}
		total += t.Total
	}

	pdf.Ln(4)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, fmt.Sprintf("Total do periodo: R$ %.2f", total), "", 1, "", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ClosingReport renders one cash-closing as a printable summary
func (s *reportService) ClosingReport(id uuid.UUID) ([]byte, error) {
	closing, err := s.closingRepo.FindByID(id)
	if err != nil {
		return nil, ErrClosingNotFound
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 10, "Fechamento de Caixa", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 11)

	operator := closing.UserID.String()
	if closing.User != nil {
		operator = closing.User.Username
	}

	lines := []string{
		fmt.Sprintf("Operador: %s", operator),
		fmt.Sprintf("Abertura: %s", closing.OpenedAt.Format(reportDateLayout)),
		fmt.Sprintf("Fechamento: %s", closing.ClosedAt.Format(reportDateLayout)),
		fmt.Sprintf("Fundo de caixa: R$ %.2f", closing.CashFloat),
		"",
		fmt.Sprintf("Total PIX: R$ %.2f", closing.TotalPix),
		fmt.Sprintf("Total Debito: R$ %.2f", closing.TotalDebit),
		fmt.Sprintf("Total Credito: R$ %.2f", closing.TotalCredit),
		fmt.Sprintf("Total Dinheiro: R$ %.2f", closing.TotalCash),
		"",
		fmt.Sprintf("Total de vendas: R$ %.2f", closing.TotalSales),
		fmt.Sprintf("Saldo final: R$ %.2f", closing.FinalBalance),
	}
	for _, line := range lines {
		pdf.CellFormat(0, 8, line, "", 1, "", false, 0, "")
	}

	if closing.Notes != "" {
		pdf.Ln(4)
		pdf.SetFont("Arial", "I", 10)
		pdf.MultiCell(0, 6, "Observacoes: "+closing.Notes, "", "", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
