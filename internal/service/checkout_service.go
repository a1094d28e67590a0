package service

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sr-oliveiraa/smartcaixa/internal/model"
	"github.com/sr-oliveiraa/smartcaixa/internal/repository"
	"github.com/sr-oliveiraa/smartcaixa/internal/ws"
	"github.com/sr-oliveiraa/smartcaixa/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Error definitions
var (
	ErrEmptyCart            = errors.New("carrinho vazio")
	ErrInvalidCart          = errors.New("carrinho invalido")
	ErrInsufficientPayment  = errors.New("valor recebido insuficiente")
	ErrInsufficientStock    = errors.New("estoque insuficiente")
	ErrInvalidPaymentMethod = errors.New("metodo de pagamento invalido")
	ErrProductNotFound      = errors.New("produto nao encontrado")
	ErrInvalidPeriodFilter  = errors.New("filtro de periodo invalido")
	ErrTransactionNotFound  = errors.New("transacao nao encontrada")
)

// TxRunner runs a function inside one database transaction. *gorm.DB
// satisfies it; tests substitute an in-memory runner.
type TxRunner interface {
	Transaction(fc func(tx *gorm.DB) error, opts ...*sql.TxOptions) error
}

// CartLine is one typed cart entry, validated at the boundary before any
// stock is touched.
type CartLine struct {
	ProductID uuid.UUID `json:"id" validate:"uuid_required"`
	UnitPrice float64   `json:"preco" validate:"gte=0"`
	Quantity  int       `json:"quantidade" validate:"required,gt=0"`
}

type CheckoutRequest struct {
	Cart           []CartLine          `json:"carrinho" validate:"dive"`
	PaymentMethod  model.PaymentMethod `json:"pagamento" validate:"required"`
	AmountReceived float64             `json:"valor_recebido"`
	PrintReceipt   bool                `json:"imprimir_nota"`
}

// Receipt is returned to the POS screen after a committed sale
type Receipt struct {
	TransactionID uuid.UUID           `json:"transacao_id"`
	Date          time.Time           `json:"data"`
	Total         float64             `json:"total"`
	Change        float64             `json:"troco"`
	PaymentMethod model.PaymentMethod `json:"pagamento"`
}

// TransactionPage is one page of the sales history listing
type TransactionPage struct {
	Transactions []model.Transaction `json:"transacoes"`
	Filter       string              `json:"filtro"`
	Page         int                 `json:"pagina"`
	Limit        int                 `json:"limite"`
	TotalCount   int64               `json:"total_transacoes"`
	PageTotal    float64             `json:"total"` // Sum of the listed page's values
}

type CheckoutService interface {
	FinalizeSale(req *CheckoutRequest, userID, userName string) (*Receipt, error)
	ListTransactions(filter string, page, limit int) (*TransactionPage, error)
	GetTransactionByID(id uuid.UUID) (*model.Transaction, error)
	GetDailySales(days int) ([]repository.DailySales, error)
}

type checkoutService struct {
	productRepo repository.ProductRepository
	txRepo      repository.TransactionRepository
	db          TxRunner
	wsHub       *ws.Hub
}

func NewCheckoutService(pRepo repository.ProductRepository, tRepo repository.TransactionRepository, db TxRunner, hub *ws.Hub) CheckoutService {
	return &checkoutService{
		productRepo: pRepo,
		txRepo:      tRepo,
		db:          db,
		wsHub:       hub,
	}
}

// CartTotal sums preco * quantidade over the cart
func CartTotal(cart []CartLine) float64 {
	var total float64
	for _, line := range cart {
		total += line.UnitPrice * float64(line.Quantity)
	}
	return total
}

// ChangeDue computes the change for a cash sale. Only dinheiro validates the
// amount received against the total; other methods settle externally and
// never produce change.
func ChangeDue(method model.PaymentMethod, total, received float64) (float64, error) {
	if method != model.PaymentCash {
		return 0, nil
	}
	change := received - total
	if change < 0 {
		return 0, ErrInsufficientPayment
	}
	return change, nil
}

// ValidateCheckout runs the boundary checks that need no database access
func ValidateCheckout(req *CheckoutRequest) error {
	if len(req.Cart) == 0 {
		return ErrEmptyCart
	}
	if !req.PaymentMethod.Valid() {
		return fmt.Errorf("%w: %s", ErrInvalidPaymentMethod, req.PaymentMethod)
	}
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return fmt.Errorf("%w: campo '%s' falhou na regra '%s'", ErrInvalidCart, firstErr.Field, firstErr.Tag)
	}
	return nil
}

// FinalizeSale commits one sale: cash sufficiency first, then per-line stock
// re-read under FOR UPDATE, decrement, and one Transaction with its items.
// Everything runs inside a single DB transaction, so a failed line rolls back
// every stock change with it.
func (s *checkoutService) FinalizeSale(req *CheckoutRequest, userID, userName string) (*Receipt, error) {
	if err := ValidateCheckout(req); err != nil {
		return nil, err
	}

	total := CartTotal(req.Cart)
	change, err := ChangeDue(req.PaymentMethod, total, req.AmountReceived)
	if err != nil {
		return nil, err
	}

	transaction := &model.Transaction{
		Date:          time.Now(),
		Total:         total,
		PaymentMethod: req.PaymentMethod,
	}
	transaction.CreatedBy = userID
	transaction.UpdatedBy = userID
	transaction.CreatedByUserID = &userID

	type stockChange struct {
		Name     string `json:"nome"`
		Barcode  string `json:"codigo_barras"`
		NewStock int    `json:"estoque"`
	}
	var changes []stockChange

	err = s.db.Transaction(func(tx *gorm.DB) error {
		for _, line := range req.Cart {
			// Lock the row so concurrent checkouts of the same product
			// serialize on the read-decrement-check sequence
			product, err := s.productRepo.FindByIDForUpdate(tx, line.ProductID)
			if err != nil {
				return fmt.Errorf("%w: %s", ErrProductNotFound, line.ProductID)
			}

			newStock := product.Stock - line.Quantity
			if newStock < 0 {
				return fmt.Errorf("%w para %s", ErrInsufficientStock, product.Name)
			}

			if err := s.productRepo.UpdateStock(tx, product.ID, newStock, userID); err != nil {
				return err
			}

			// Snapshot the price charged, not the catalog price
			transaction.Items = append(transaction.Items, model.TransactionItem{
				ProductID: product.ID,
				Quantity:  line.Quantity,
				UnitPrice: line.UnitPrice,
			})
			changes = append(changes, stockChange{Name: product.Name, Barcode: product.Barcode, NewStock: newStock})
		}

		return s.txRepo.Create(tx, transaction)
	})
	if err != nil {
		return nil, err
	}

	// Broadcast only after the commit; a rolled-back sale must not reach the screens
	go func() {
		payload := map[string]interface{}{
			"type":   "stock_update",
			"action": "sale_completed",
			"sale": map[string]interface{}{
				"id":        transaction.ID,
				"total":     total,
				"pagamento": req.PaymentMethod,
				"produtos":  changes,
			},
			"user":    map[string]interface{}{"id": userID, "name": userName},
			"message": fmt.Sprintf("%s registrou venda de R$ %.2f (%s)", userName, total, req.PaymentMethod),
		}
		msg, _ := json.Marshal(payload)
		s.wsHub.Broadcast <- msg
	}()

	return &Receipt{
		TransactionID: transaction.ID,
		Date:          transaction.Date,
		Total:         total,
		Change:        change,
		PaymentMethod: req.PaymentMethod,
	}, nil
}

// PeriodStart resolves a listing filter to its window start. "semana" starts
// on Monday, matching the register's weekly report.
func PeriodStart(filter string, now time.Time) (time.Time, error) {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch filter {
	case "hoje":
		return midnight, nil
	case "semana":
		weekday := int(now.Weekday())
		if weekday == 0 {
			weekday = 7 // Sunday belongs to the week that started the prior Monday
		}
		return midnight.AddDate(0, 0, -(weekday - 1)), nil
	case "mes":
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()), nil
	case "todas":
		return time.Time{}, nil
	}
	return time.Time{}, fmt.Errorf("%w: %s", ErrInvalidPeriodFilter, filter)
}

func (s *checkoutService) ListTransactions(filter string, page, limit int) (*TransactionPage, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 || limit > 200 {
		limit = 200
	}

	start, err := PeriodStart(filter, time.Now())
	if err != nil {
		return nil, err
	}

	transactions, count, err := s.txRepo.FindByPeriod(start, page, limit)
	if err != nil {
		return nil, err
	}

	var pageTotal float64
	for _, t := range transactions {
		pageTotal += t.Total
	}

	return &TransactionPage{
		Transactions: transactions,
		Filter:       filter,
		Page:         page,
		Limit:        limit,
		TotalCount:   count,
		PageTotal:    pageTotal,
	}, nil
}

func (s *checkoutService) GetTransactionByID(id uuid.UUID) (*model.Transaction, error) {
	transaction, err := s.txRepo.FindByID(id)
	if err != nil {
		return nil, ErrTransactionNotFound
	}
	return transaction, nil
}

// GetDailySales feeds the revenue-per-day chart on the manager screen
func (s *checkoutService) GetDailySales(days int) ([]repository.DailySales, error) {
	end := time.Now()
	start := end.AddDate(0, 0, -days)
	return s.txRepo.SalesByDay(start, end)
}
