package model

import (
	"time"

	"github.com/google/uuid"
)

type ShiftStatus string

const (
	ShiftOpen      ShiftStatus = "open"
	ShiftClosed    ShiftStatus = "closed"    // Closed by a cash-closing
	ShiftAbandoned ShiftStatus = "abandoned" // Discarded at logout without closing
)

// Shift is one register session for a user. Opened at login, closed by the
// cash-closing (or abandoned at logout). A closed shift never reopens.
type Shift struct {
	BaseModel
	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id" validate:"uuid_required"`
	User   *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`

	OpenedAt time.Time   `gorm:"not null" json:"abertura"`
	ClosedAt *time.Time  `json:"fechamento,omitempty"`
	Status   ShiftStatus `gorm:"type:varchar(10);not null;default:'open';index" json:"status"`
}

// IsOpen reports whether the shift still accepts sales and closing
func (s *Shift) IsOpen() bool {
	return s.Status == ShiftOpen
}

// TableName specifies the table name for GORM
func (Shift) TableName() string {
	return "shifts"
}
