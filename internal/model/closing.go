package model

import (
	"time"

	"github.com/google/uuid"
)

// CashClosing is the end-of-shift register report ("fechamento de caixa").
// One row per closed shift; totals are frozen at close time, only Notes may
// grow afterwards.
type CashClosing struct {
	BaseModel
	ShiftID uuid.UUID `gorm:"type:uuid;not null;index" json:"shift_id"`
	Shift   *Shift    `json:"shift,omitempty"`

	OpenedAt time.Time `gorm:"not null" json:"abertura"`
	ClosedAt time.Time `gorm:"not null" json:"fechamento"`

	CashFloat float64 `gorm:"not null;default:0" json:"fundo_caixa"`

	TotalPix    float64 `gorm:"not null;default:0" json:"total_pix"`
	TotalDebit  float64 `gorm:"not null;default:0" json:"total_debito"`
	TotalCredit float64 `gorm:"not null;default:0" json:"total_credito"`
	TotalCash   float64 `gorm:"not null;default:0" json:"total_dinheiro"`

	TotalSales   float64 `gorm:"not null;default:0" json:"total_vendas"`
	FinalBalance float64 `gorm:"not null;default:0" json:"saldo_final"`

	Notes string `gorm:"type:text;default:''" json:"observacoes"`

	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"usuario_id"`
	User   *User     `gorm:"foreignKey:UserID" json:"usuario,omitempty"`
}

// TotalFor returns the frozen total recorded for one payment method
func (c *CashClosing) TotalFor(method PaymentMethod) float64 {
	switch method {
	case PaymentPix:
		return c.TotalPix
	case PaymentDebit:
		return c.TotalDebit
	case PaymentCredit:
		return c.TotalCredit
	case PaymentCash:
		return c.TotalCash
	}
	return 0
}
