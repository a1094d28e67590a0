package service

import (
	"errors"
	"time"

	"github.com/sr-oliveiraa/smartcaixa/internal/model"
	"github.com/sr-oliveiraa/smartcaixa/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Error definitions
var (
	ErrMissingShiftOpen   = errors.New("nenhum turno aberto para este operador")
	ErrShiftAlreadyClosed = errors.New("turno ja encerrado, faca login novamente")
	ErrShiftNotFound      = errors.New("turno nao encontrado")
)

// ShiftService drives the register session state machine:
// no shift -> open (login), open -> closed (cash-closing) or abandoned
// (logout). A closed shift never reopens; the next login opens a fresh one.
type ShiftService interface {
	EnsureOpen(userID uuid.UUID) (*model.Shift, error)
	Current(userID uuid.UUID) (*model.Shift, error)
	Abandon(userID uuid.UUID) error
	History(userID uuid.UUID) ([]model.Shift, error)
}

type shiftService struct {
	shiftRepo repository.ShiftRepository
}

func NewShiftService(shiftRepo repository.ShiftRepository) ShiftService {
	return &shiftService{shiftRepo: shiftRepo}
}

// EnsureOpen returns the user's open shift, creating one when none exists.
// Called at login; reconnecting mid-shift keeps the same shift.
func (s *shiftService) EnsureOpen(userID uuid.UUID) (*model.Shift, error) {
	shift, err := s.shiftRepo.FindOpenByUser(userID)
	if err == nil {
		return shift, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	shift = &model.Shift{
		UserID:   userID,
		OpenedAt: time.Now(),
		Status:   model.ShiftOpen,
	}
	shift.CreatedBy = userID.String()
	shift.UpdatedBy = userID.String()

	if err := s.shiftRepo.Create(shift); err != nil {
		return nil, err
	}
	return shift, nil
}

// Current returns the open shift or ErrMissingShiftOpen
func (s *shiftService) Current(userID uuid.UUID) (*model.Shift, error) {
	shift, err := s.shiftRepo.FindOpenByUser(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMissingShiftOpen
		}
		return nil, err
	}
	return shift, nil
}

// Abandon discards the open shift without a closing record. Logout path;
// a no-op when nothing is open.
func (s *shiftService) Abandon(userID uuid.UUID) error {
	shift, err := s.shiftRepo.FindOpenByUser(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	return s.shiftRepo.SetStatus(nil, shift.ID, model.ShiftAbandoned, time.Now(), userID.String())
}

func (s *shiftService) History(userID uuid.UUID) ([]model.Shift, error) {
	return s.shiftRepo.FindByUser(userID)
}
