package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sr-oliveiraa/smartcaixa/internal/model"
	"github.com/sr-oliveiraa/smartcaixa/internal/repository"
	"github.com/sr-oliveiraa/smartcaixa/internal/ws"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Error definitions
var (
	ErrInvalidTimeRange = errors.New("data de abertura invalida, use o formato YYYY-MM-DDTHH:MM")
	ErrClosingNotFound  = errors.New("fechamento nao encontrado")
)

// aberturaLayout matches the datetime-local value the POS screen submits
const aberturaLayout = "2006-01-02T15:04"

type CloseRequest struct {
	// Abertura optionally overrides the shift's recorded opening time.
	// Empty means "use the shift".
	Abertura  string  `json:"abertura"`
	CashFloat float64 `json:"fundo_caixa" validate:"gte=0"`
	Notes     string  `json:"observacoes"`
}

// MethodTotals carries the per-method sums of one closing window
type MethodTotals struct {
	Pix    float64
	Debit  float64
	Credit float64
	Cash   float64
}

// TotalSales sums every payment method
func (t MethodTotals) TotalSales() float64 {
	return t.Pix + t.Debit + t.Credit + t.Cash
}

// FinalBalance reconciles the drawer: opening float plus everything sold
func FinalBalance(cashFloat float64, t MethodTotals) float64 {
	return cashFloat + t.TotalSales()
}

// ClosingService aggregates a shift's ledger into the cash-closing report.
// The aggregation always recomputes from the full transaction table scoped by
// the window, so backdated sales inside the window are never missed.
type ClosingService interface {
	CloseRegister(userID uuid.UUID, req *CloseRequest) (*model.CashClosing, error)
	GetByID(id uuid.UUID) (*model.CashClosing, error)
	List() ([]model.CashClosing, error)
	ListByUser(userID uuid.UUID) ([]model.CashClosing, error)
	AppendNotes(id uuid.UUID, notes, userID string) (*model.CashClosing, error)
}

type closingService struct {
	txRepo      repository.TransactionRepository
	closingRepo repository.ClosingRepository
	shiftRepo   repository.ShiftRepository
	db          TxRunner
	wsHub       *ws.Hub

	// allowRepeat permits closing an already-closed shift again, producing a
	// second independent record over the overlapping window
	allowRepeat bool
}

func NewClosingService(tRepo repository.TransactionRepository, cRepo repository.ClosingRepository, sRepo repository.ShiftRepository, db TxRunner, hub *ws.Hub, allowRepeat bool) ClosingService {
	return &closingService{
		txRepo:      tRepo,
		closingRepo: cRepo,
		shiftRepo:   sRepo,
		db:          db,
		wsHub:       hub,
		allowRepeat: allowRepeat,
	}
}

// ParseAbertura validates the opening timestamp string from the POS screen
func ParseAbertura(value string, loc *time.Location) (time.Time, error) {
	parsed, err := time.ParseInLocation(aberturaLayout, value, loc)
	if err != nil {
		return time.Time{}, ErrInvalidTimeRange
	}
	return parsed, nil
}

// CloseRegister runs the cash-closing: resolves the shift window, sums each
// payment method over it, persists the CashClosing, and transitions the shift
// to closed. The persist and the transition share one DB transaction.
func (s *closingService) CloseRegister(userID uuid.UUID, req *CloseRequest) (*model.CashClosing, error) {
	shift, err := s.resolveShift(userID)
	if err != nil {
		return nil, err
	}

	openedAt := shift.OpenedAt
	if req.Abertura != "" {
		openedAt, err = ParseAbertura(req.Abertura, time.Now().Location())
		if err != nil {
			return nil, err
		}
	}

	closedAt := time.Now()
	if openedAt.After(closedAt) {
		return nil, ErrInvalidTimeRange
	}
	if req.CashFloat < 0 {
		return nil, fmt.Errorf("fundo de caixa nao pode ser negativo")
	}

	closing := &model.CashClosing{
		ShiftID:   shift.ID,
		OpenedAt:  openedAt,
		ClosedAt:  closedAt,
		CashFloat: req.CashFloat,
		Notes:     req.Notes,
		UserID:    userID,
	}
	closing.CreatedBy = userID.String()
	closing.UpdatedBy = userID.String()

	err = s.db.Transaction(func(tx *gorm.DB) error {
		totals, err := s.sumWindow(tx, openedAt, closedAt)
		if err != nil {
			return err
		}

		closing.TotalPix = totals.Pix
		closing.TotalDebit = totals.Debit
		closing.TotalCredit = totals.Credit
		closing.TotalCash = totals.Cash
		closing.TotalSales = totals.TotalSales()
		closing.FinalBalance = FinalBalance(req.CashFloat, totals)

		if err := s.closingRepo.Create(tx, closing); err != nil {
			return err
		}

		if shift.IsOpen() {
			return s.shiftRepo.SetStatus(tx, shift.ID, model.ShiftClosed, closedAt, userID.String())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	go func() {
		payload := map[string]interface{}{
			"type":    "register_update",
			"action":  "register_closed",
			"closing": closing,
			"message": fmt.Sprintf("Caixa fechado: vendas R$ %.2f, saldo final R$ %.2f", closing.TotalSales, closing.FinalBalance),
		}
		msg, _ := json.Marshal(payload)
		s.wsHub.Broadcast <- msg
	}()

	return closing, nil
}

// resolveShift finds the shift being closed. Normally the open one; with
// allowRepeat, the latest shift can be re-closed for a corrected report.
func (s *closingService) resolveShift(userID uuid.UUID) (*model.Shift, error) {
	shift, err := s.shiftRepo.FindOpenByUser(userID)
	if err == nil {
		return shift, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	shifts, err := s.shiftRepo.FindByUser(userID)
	if err != nil || len(shifts) == 0 {
		return nil, ErrMissingShiftOpen
	}
	if !s.allowRepeat {
		return nil, ErrShiftAlreadyClosed
	}
	return &shifts[0], nil
}

func (s *closingService) sumWindow(tx *gorm.DB, start, end time.Time) (MethodTotals, error) {
	var totals MethodTotals
	for _, method := range model.PaymentMethods {
		sum, err := s.txRepo.SumByMethod(tx, method, start, end)
		if err != nil {
			return MethodTotals{}, err
		}
		switch method {
		case model.PaymentPix:
			totals.Pix = sum
		case model.PaymentDebit:
			totals.Debit = sum
		case model.PaymentCredit:
			totals.Credit = sum
		case model.PaymentCash:
			totals.Cash = sum
		}
	}
	return totals, nil
}

func (s *closingService) GetByID(id uuid.UUID) (*model.CashClosing, error) {
	closing, err := s.closingRepo.FindByID(id)
	if err != nil {
		return nil, ErrClosingNotFound
	}
	return closing, nil
}

func (s *closingService) List() ([]model.CashClosing, error) {
	return s.closingRepo.FindAll()
}

func (s *closingService) ListByUser(userID uuid.UUID) ([]model.CashClosing, error) {
	return s.closingRepo.FindByUser(userID)
}

// AppendNotes adds free text to a closed report. Totals stay frozen.
func (s *closingService) AppendNotes(id uuid.UUID, notes, userID string) (*model.CashClosing, error) {
	if _, err := s.closingRepo.FindByID(id); err != nil {
		return nil, ErrClosingNotFound
	}
	if err := s.closingRepo.AppendNotes(id, notes, userID); err != nil {
		return nil, err
	}
	return s.closingRepo.FindByID(id)
}
