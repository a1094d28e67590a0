package service

import (
	"testing"
	"time"

	"github.com/sr-oliveiraa/smartcaixa/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeShiftRepo is an in-memory ShiftRepository for state-machine tests
type fakeShiftRepo struct {
	shifts []*model.Shift
}

func (f *fakeShiftRepo) Create(shift *model.Shift) error {
	shift.ID = uuid.New()
	f.shifts = append(f.shifts, shift)
	return nil
}

func (f *fakeShiftRepo) FindByID(id uuid.UUID) (*model.Shift, error) {
	for _, s := range f.shifts {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeShiftRepo) FindOpenByUser(userID uuid.UUID) (*model.Shift, error) {
	for _, s := range f.shifts {
		if s.UserID == userID && s.Status == model.ShiftOpen {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeShiftRepo) FindByUser(userID uuid.UUID) ([]model.Shift, error) {
	var out []model.Shift
	for i := len(f.shifts) - 1; i >= 0; i-- {
		if f.shifts[i].UserID == userID {
			out = append(out, *f.shifts[i])
		}
	}
	return out, nil
}

func (f *fakeShiftRepo) SetStatus(tx *gorm.DB, id uuid.UUID, status model.ShiftStatus, closedAt time.Time, updatedBy string) error {
	for _, s := range f.shifts {
		if s.ID == id {
			s.Status = status
			s.ClosedAt = &closedAt
			s.UpdatedBy = updatedBy
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func TestEnsureOpenCreatesShift(t *testing.T) {
	repo := &fakeShiftRepo{}
	svc := NewShiftService(repo)
	userID := uuid.New()

	shift, err := svc.EnsureOpen(userID)
	require.NoError(t, err)
	assert.Equal(t, model.ShiftOpen, shift.Status)
	assert.Equal(t, userID, shift.UserID)
	assert.False(t, shift.OpenedAt.IsZero())
	assert.Len(t, repo.shifts, 1)
}

func TestEnsureOpenReusesOpenShift(t *testing.T) {
	repo := &fakeShiftRepo{}
	svc := NewShiftService(repo)
	userID := uuid.New()

	first, err := svc.EnsureOpen(userID)
	require.NoError(t, err)

	// A reconnect mid-shift must not open a second shift
	second, err := svc.EnsureOpen(userID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, repo.shifts, 1)
}

func TestEnsureOpenAfterCloseOpensFreshShift(t *testing.T) {
	repo := &fakeShiftRepo{}
	svc := NewShiftService(repo)
	userID := uuid.New()

	first, err := svc.EnsureOpen(userID)
	require.NoError(t, err)
	require.NoError(t, repo.SetStatus(nil, first.ID, model.ShiftClosed, time.Now(), userID.String()))

	// Closed never reopens; next login gets a new shift
	second, err := svc.EnsureOpen(userID)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, model.ShiftOpen, second.Status)
}

func TestCurrentWithoutShift(t *testing.T) {
	svc := NewShiftService(&fakeShiftRepo{})

	_, err := svc.Current(uuid.New())
	assert.ErrorIs(t, err, ErrMissingShiftOpen)
}

func TestAbandonDiscardsOpenShift(t *testing.T) {
	repo := &fakeShiftRepo{}
	svc := NewShiftService(repo)
	userID := uuid.New()

	_, err := svc.EnsureOpen(userID)
	require.NoError(t, err)

	require.NoError(t, svc.Abandon(userID))
	assert.Equal(t, model.ShiftAbandoned, repo.shifts[0].Status)
	assert.NotNil(t, repo.shifts[0].ClosedAt)

	// The abandoned shift no longer counts as open
	_, err = svc.Current(userID)
	assert.ErrorIs(t, err, ErrMissingShiftOpen)
}

func TestAbandonWithoutShiftIsNoOp(t *testing.T) {
	svc := NewShiftService(&fakeShiftRepo{})
	assert.NoError(t, svc.Abandon(uuid.New()))
}
