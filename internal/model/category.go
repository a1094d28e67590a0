package model

type Category struct {
	BaseModel
	Name string `gorm:"type:varchar(50);not null" json:"nome" validate:"required"`

	// Relation: a category groups many products
	Products []Product `json:"produtos,omitempty"`
}
