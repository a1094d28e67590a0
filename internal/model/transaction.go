package model

import (
	"time"

	"github.com/google/uuid"
)

type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "dinheiro"
	PaymentPix    PaymentMethod = "pix"
	PaymentDebit  PaymentMethod = "debito"
	PaymentCredit PaymentMethod = "credito"
)

// PaymentMethods lists every accepted method, in closing-report order
var PaymentMethods = []PaymentMethod{PaymentPix, PaymentDebit, PaymentCredit, PaymentCash}

// Valid reports whether m is one of the accepted payment methods
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentPix, PaymentDebit, PaymentCredit:
		return true
	}
	return false
}

// Transaction is one committed sale. Immutable after checkout.
type Transaction struct {
	BaseModel
	Date          time.Time     `gorm:"not null;index" json:"data"`
	Total         float64       `gorm:"not null" json:"valor"`
	PaymentMethod PaymentMethod `gorm:"type:varchar(20);not null;index" json:"metodo_pagamento" validate:"required"`

	Items []TransactionItem `json:"itens,omitempty"`

	// User tracking
	CreatedByUserID *string `gorm:"type:varchar(255)" json:"created_by_user_id,omitempty"`
	CreatedByUser   *User   `gorm:"foreignKey:CreatedByUserID;references:ID" json:"created_by_user,omitempty"`
}

// TransactionItem snapshots one cart line: quantity and the unit price charged
// at sale time, not the product's live price.
type TransactionItem struct {
	BaseModel
	TransactionID uuid.UUID `gorm:"type:uuid;not null;index" json:"transacao_id"`
	ProductID     uuid.UUID `gorm:"type:uuid;not null" json:"produto_id"`
	Product       *Product  `json:"produto,omitempty"`
	Quantity      int       `gorm:"not null" json:"quantidade"`
	UnitPrice     float64   `gorm:"not null" json:"preco"`
}
