package repository

import (
	"github.com/sr-oliveiraa/smartcaixa/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductRepository interface {
	Create(product *model.Product) error
	FindAll() ([]model.Product, error)
	FindByID(id uuid.UUID) (*model.Product, error)
	FindByBarcode(barcode string) (*model.Product, error)
	Search(query string) ([]model.Product, error)
	Update(product *model.Product) error
	FindByIDForUpdate(tx *gorm.DB, id uuid.UUID) (*model.Product, error)
	UpdateStock(tx *gorm.DB, id uuid.UUID, newStock int, updatedBy string) error
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) Create(product *model.Product) error {
	return r.db.Create(product).Error
}

func (r *productRepo) FindAll() ([]model.Product, error) {
	var products []model.Product
	err := r.db.Preload("Category").Order("name ASC").Find(&products).Error
	return products, err
}

func (r *productRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := r.db.Preload("Category").First(&product, "id = ?", id).Error
	return &product, err
}

func (r *productRepo) FindByBarcode(barcode string) (*model.Product, error) {
	var product model.Product
	err := r.db.First(&product, "barcode = ?", barcode).Error
	return &product, err
}

// Search matches name or barcode by substring, case-insensitive
func (r *productRepo) Search(query string) ([]model.Product, error) {
	var products []model.Product
	pattern := "%" + query + "%"
	err := r.db.
		Where("name ILIKE ? OR barcode ILIKE ?", pattern, pattern).
		Order("name ASC").
		Find(&products).Error
	return products, err
}

func (r *productRepo) Update(product *model.Product) error {
	return r.db.Save(product).Error
}

// FindByIDForUpdate reads a product under FOR UPDATE so the caller's
// transaction holds the row lock until commit
func (r *productRepo) FindByIDForUpdate(tx *gorm.DB, id uuid.UUID) (*model.Product, error) {
	if tx == nil {
		tx = r.db
	}
	var product model.Product
	err := tx.Set("gorm:query_option", "FOR UPDATE").First(&product, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// UpdateStock takes *gorm.DB (tx) so it can run inside a checkout transaction
func (r *productRepo) UpdateStock(tx *gorm.DB, id uuid.UUID, newStock int, updatedBy string) error {
	return tx.Model(&model.Product{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"stock":      newStock,
			"updated_by": updatedBy,
		}).Error
}
