package repository

import (
	"time"

	"github.com/sr-oliveiraa/smartcaixa/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ShiftRepository interface {
	Create(shift *model.Shift) error
	FindByID(id uuid.UUID) (*model.Shift, error)
	FindOpenByUser(userID uuid.UUID) (*model.Shift, error)
	FindByUser(userID uuid.UUID) ([]model.Shift, error)
	SetStatus(tx *gorm.DB, id uuid.UUID, status model.ShiftStatus, closedAt time.Time, updatedBy string) error
}

type shiftRepo struct {
	db *gorm.DB
}

func NewShiftRepo(db *gorm.DB) ShiftRepository {
	return &shiftRepo{db}
}

func (r *shiftRepo) Create(shift *model.Shift) error {
	return r.db.Create(shift).Error
}

func (r *shiftRepo) FindByID(id uuid.UUID) (*model.Shift, error) {
	var shift model.Shift
	err := r.db.Preload("User").First(&shift, "id = ?", id).Error
	return &shift, err
}

// FindOpenByUser returns the user's current open shift, gorm.ErrRecordNotFound
// when there is none. At most one open shift per user exists.
func (r *shiftRepo) FindOpenByUser(userID uuid.UUID) (*model.Shift, error) {
	var shift model.Shift
	err := r.db.
		Where("user_id = ? AND status = ?", userID, model.ShiftOpen).
		Order("opened_at DESC").
		First(&shift).Error
	if err != nil {
		return nil, err
	}
	return &shift, nil
}

func (r *shiftRepo) FindByUser(userID uuid.UUID) ([]model.Shift, error) {
	var shifts []model.Shift
	err := r.db.
		Where("user_id = ?", userID).
		Order("opened_at DESC").
		Find(&shifts).Error
	return shifts, err
}

// SetStatus transitions a shift. Takes tx so the close transition can commit
// together with its CashClosing row.
func (r *shiftRepo) SetStatus(tx *gorm.DB, id uuid.UUID, status model.ShiftStatus, closedAt time.Time, updatedBy string) error {
	if tx == nil {
		tx = r.db
	}
	return tx.Model(&model.Shift{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"closed_at":  closedAt,
			"updated_by": updatedBy,
		}).Error
}
