package model

import "github.com/google/uuid"

type Product struct {
	BaseModel
	Name        string  `gorm:"type:varchar(100);not null" json:"nome" validate:"required"`
	Description string  `gorm:"type:varchar(200)" json:"descricao"`
	Barcode     string  `gorm:"type:varchar(100);uniqueIndex;not null" json:"codigo_barras" validate:"required"`
	Price       float64 `gorm:"not null" json:"preco" validate:"gte=0"`
	Stock       int     `gorm:"not null;default:0" json:"estoque" validate:"gte=0"`
	Image       string  `gorm:"type:varchar(255)" json:"imagem"` // Path only, storage handled elsewhere

	CategoryID uuid.UUID `gorm:"type:uuid;not null;index" json:"categoria_id" validate:"uuid_required"`
	Category   *Category `json:"categoria,omitempty" validate:"-"`
}
