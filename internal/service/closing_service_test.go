package service

import (
	"database/sql"
	"testing"
	"time"

	"github.com/sr-oliveiraa/smartcaixa/internal/model"
	"github.com/sr-oliveiraa/smartcaixa/internal/repository"
	"github.com/sr-oliveiraa/smartcaixa/internal/ws"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// passthroughTx runs the callback without a real database transaction
type passthroughTx struct{}

func (passthroughTx) Transaction(fc func(tx *gorm.DB) error, _ ...*sql.TxOptions) error {
	return fc(nil)
}

// cannedTxRepo answers SumByMethod from a fixed table and records the window
// it was asked to aggregate
type cannedTxRepo struct {
	sums       map[model.PaymentMethod]float64
	windowFrom time.Time
	windowTo   time.Time
}

func (r *cannedTxRepo) Create(*gorm.DB, *model.Transaction) error { return nil }

func (r *cannedTxRepo) FindByID(uuid.UUID) (*model.Transaction, error) {
	return nil, gorm.ErrRecordNotFound
}

func (r *cannedTxRepo) FindByPeriod(time.Time, int, int) ([]model.Transaction, int64, error) {
	return nil, 0, nil
}

func (r *cannedTxRepo) SumByMethod(_ *gorm.DB, method model.PaymentMethod, start, end time.Time) (float64, error) {
	r.windowFrom = start
	r.windowTo = end
	return r.sums[method], nil
}

func (r *cannedTxRepo) SalesByDay(time.Time, time.Time) ([]repository.DailySales, error) {
	return nil, nil
}

type fakeClosingRepo struct {
	closings []*model.CashClosing
}

func (f *fakeClosingRepo) Create(_ *gorm.DB, closing *model.CashClosing) error {
	closing.ID = uuid.New()
	f.closings = append(f.closings, closing)
	return nil
}

func (f *fakeClosingRepo) FindByID(id uuid.UUID) (*model.CashClosing, error) {
	for _, c := range f.closings {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeClosingRepo) FindAll() ([]model.CashClosing, error) {
	out := make([]model.CashClosing, 0, len(f.closings))
	for _, c := range f.closings {
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeClosingRepo) FindByUser(userID uuid.UUID) ([]model.CashClosing, error) {
	var out []model.CashClosing
	for _, c := range f.closings {
		if c.UserID == userID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeClosingRepo) AppendNotes(id uuid.UUID, notes, updatedBy string) error {
	for _, c := range f.closings {
		if c.ID == id {
			if c.Notes == "" {
				c.Notes = notes
			} else {
				c.Notes += "\n" + notes
			}
			c.UpdatedBy = updatedBy
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func newClosingFixture(shiftRepo *fakeShiftRepo, sums map[model.PaymentMethod]float64, allowRepeat bool) (ClosingService, *fakeClosingRepo, *cannedTxRepo) {
	txRepo := &cannedTxRepo{sums: sums}
	closingRepo := &fakeClosingRepo{}
	hub := ws.NewHub()
	go hub.Run()
	svc := NewClosingService(txRepo, closingRepo, shiftRepo, passthroughTx{}, hub, allowRepeat)
	return svc, closingRepo, txRepo
}

func TestMethodTotalsTotalSales(t *testing.T) {
	totals := MethodTotals{Pix: 50, Debit: 30, Credit: 0, Cash: 20}
	assert.Equal(t, 100.0, totals.TotalSales())

	// A window with no sales at all closes at zero, not an error
	assert.Equal(t, 0.0, MethodTotals{}.TotalSales())
}

func TestFinalBalance(t *testing.T) {
	totals := MethodTotals{Pix: 50, Debit: 30, Credit: 0, Cash: 20}
	assert.Equal(t, 200.0, FinalBalance(100, totals))

	// Empty drawer: final balance equals the opening float
	assert.Equal(t, 100.0, FinalBalance(100, MethodTotals{}))
}

func TestParseAbertura(t *testing.T) {
	parsed, err := ParseAbertura("2025-06-18T08:00", time.Local)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 18, 8, 0, 0, 0, time.Local), parsed)

	_, err = ParseAbertura("18/06/2025 08:00", time.Local)
	assert.ErrorIs(t, err, ErrInvalidTimeRange)

	_, err = ParseAbertura("", time.Local)
	assert.ErrorIs(t, err, ErrInvalidTimeRange)
}

func TestCloseRegisterAggregatesShiftWindow(t *testing.T) {
	shiftRepo := &fakeShiftRepo{}
	userID := uuid.New()
	openedAt := time.Now().Add(-8 * time.Hour)
	require.NoError(t, shiftRepo.Create(&model.Shift{UserID: userID, OpenedAt: openedAt, Status: model.ShiftOpen}))

	svc, closingRepo, txRepo := newClosingFixture(shiftRepo, map[model.PaymentMethod]float64{
		model.PaymentPix:   50,
		model.PaymentDebit: 30,
		model.PaymentCash:  20,
	}, false)

	closing, err := svc.CloseRegister(userID, &CloseRequest{CashFloat: 100, Notes: "sem divergencias"})
	require.NoError(t, err)

	assert.Equal(t, 50.0, closing.TotalPix)
	assert.Equal(t, 30.0, closing.TotalDebit)
	assert.Equal(t, 0.0, closing.TotalCredit)
	assert.Equal(t, 20.0, closing.TotalCash)
	assert.Equal(t, 100.0, closing.TotalSales)
	assert.Equal(t, 200.0, closing.FinalBalance)

	// The aggregation window starts at the shift opening
	assert.Equal(t, openedAt, txRepo.windowFrom)
	assert.False(t, txRepo.windowTo.Before(txRepo.windowFrom))

	// The closing persisted and the shift transitioned in the same flow
	require.Len(t, closingRepo.closings, 1)
	assert.Equal(t, shiftRepo.shifts[0].ID, closing.ShiftID)
	assert.Equal(t, model.ShiftClosed, shiftRepo.shifts[0].Status)
}

func TestCloseRegisterWithoutShift(t *testing.T) {
	svc, closingRepo, _ := newClosingFixture(&fakeShiftRepo{}, nil, false)

	_, err := svc.CloseRegister(uuid.New(), &CloseRequest{CashFloat: 100})
	assert.ErrorIs(t, err, ErrMissingShiftOpen)
	assert.Empty(t, closingRepo.closings)
}

func TestCloseRegisterBlocksRepeatByDefault(t *testing.T) {
	shiftRepo := &fakeShiftRepo{}
	userID := uuid.New()
	require.NoError(t, shiftRepo.Create(&model.Shift{UserID: userID, OpenedAt: time.Now().Add(-time.Hour), Status: model.ShiftClosed}))

	svc, closingRepo, _ := newClosingFixture(shiftRepo, nil, false)

	_, err := svc.CloseRegister(userID, &CloseRequest{CashFloat: 100})
	assert.ErrorIs(t, err, ErrShiftAlreadyClosed)
	assert.Empty(t, closingRepo.closings)
}

func TestCloseRegisterRepeatWhenAllowed(t *testing.T) {
	shiftRepo := &fakeShiftRepo{}
	userID := uuid.New()
	require.NoError(t, shiftRepo.Create(&model.Shift{UserID: userID, OpenedAt: time.Now().Add(-time.Hour), Status: model.ShiftClosed}))

	svc, closingRepo, _ := newClosingFixture(shiftRepo, map[model.PaymentMethod]float64{model.PaymentCash: 10}, true)

	closing, err := svc.CloseRegister(userID, &CloseRequest{CashFloat: 50})
	require.NoError(t, err)
	assert.Equal(t, 60.0, closing.FinalBalance)
	assert.Len(t, closingRepo.closings, 1)
}

func TestListByUserFiltersClosings(t *testing.T) {
	svc, closingRepo, _ := newClosingFixture(&fakeShiftRepo{}, nil, false)

	mine := uuid.New()
	other := uuid.New()
	require.NoError(t, closingRepo.Create(nil, &model.CashClosing{UserID: mine}))
	require.NoError(t, closingRepo.Create(nil, &model.CashClosing{UserID: other}))

	closings, err := svc.ListByUser(mine)
	require.NoError(t, err)
	require.Len(t, closings, 1)
	assert.Equal(t, mine, closings[0].UserID)
}
