package repository

import (
	"github.com/sr-oliveiraa/smartcaixa/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClosingRepository interface {
	Create(tx *gorm.DB, closing *model.CashClosing) error
	FindByID(id uuid.UUID) (*model.CashClosing, error)
	FindAll() ([]model.CashClosing, error)
	FindByUser(userID uuid.UUID) ([]model.CashClosing, error)
	AppendNotes(id uuid.UUID, notes, updatedBy string) error
}

type closingRepo struct {
	db *gorm.DB
}

func NewClosingRepo(db *gorm.DB) ClosingRepository {
	return &closingRepo{db}
}

// Create takes tx so the closing row commits atomically with the shift
// transition that produced it
func (r *closingRepo) Create(tx *gorm.DB, closing *model.CashClosing) error {
	if tx == nil {
		tx = r.db
	}
	return tx.Create(closing).Error
}

func (r *closingRepo) FindByID(id uuid.UUID) (*model.CashClosing, error) {
	var closing model.CashClosing
	err := r.db.Preload("User").Preload("Shift").First(&closing, "id = ?", id).Error
	return &closing, err
}

func (r *closingRepo) FindAll() ([]model.CashClosing, error) {
	var closings []model.CashClosing
	err := r.db.Preload("User").Order("closed_at DESC").Find(&closings).Error
	return closings, err
}

func (r *closingRepo) FindByUser(userID uuid.UUID) ([]model.CashClosing, error) {
	var closings []model.CashClosing
	err := r.db.
		Where("user_id = ?", userID).
		Order("closed_at DESC").
		Find(&closings).Error
	return closings, err
}

// AppendNotes adds text to an existing closing. Totals stay frozen; notes are
// the only mutable field after creation.
func (r *closingRepo) AppendNotes(id uuid.UUID, notes, updatedBy string) error {
	return r.db.Model(&model.CashClosing{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"notes":      gorm.Expr("CASE WHEN notes = '' THEN ? ELSE notes || E'\n' || ? END", notes, notes),
			"updated_by": updatedBy,
		}).Error
}
