package service

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sr-oliveiraa/smartcaixa/internal/model"
	"github.com/sr-oliveiraa/smartcaixa/internal/repository"
	"github.com/sr-oliveiraa/smartcaixa/internal/ws"
	"github.com/sr-oliveiraa/smartcaixa/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Error definitions
var (
	ErrBarcodeExists    = errors.New("codigo de barras ja cadastrado")
	ErrCategoryNotFound = errors.New("categoria nao encontrada")
	ErrCatalogConflict  = errors.New("falha ao gravar alteracao no catalogo")
)

// UpdateProductRequest carries a partial edit: only non-nil fields change,
// matching the edit form that submits whatever the operator touched.
type UpdateProductRequest struct {
	Name        *string    `json:"nome"`
	Description *string    `json:"descricao"`
	Barcode     *string    `json:"codigo_barras"`
	Price       *float64   `json:"preco"`
	Stock       *int       `json:"estoque"`
	Image       *string    `json:"imagem"`
	CategoryID  *uuid.UUID `json:"categoria_id"`
}

type CatalogService interface {
	CreateCategory(category *model.Category, userID string) error
	GetAllCategories() ([]model.Category, error)
	CreateProduct(req *model.Product, userID, userName string) error
	UpdateProduct(id uuid.UUID, req *UpdateProductRequest, userID, userName string) (*model.Product, error)
	GetAllProducts() ([]model.Product, error)
	SearchProducts(query string) ([]model.Product, error)
}

type catalogService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	db           *gorm.DB
	wsHub        *ws.Hub
}

func NewCatalogService(pRepo repository.ProductRepository, cRepo repository.CategoryRepository, db *gorm.DB, hub *ws.Hub) CatalogService {
	return &catalogService{
		productRepo:  pRepo,
		categoryRepo: cRepo,
		db:           db,
		wsHub:        hub,
	}
}

func (s *catalogService) CreateCategory(category *model.Category, userID string) error {
	if errs := validator.ValidateStruct(category); len(errs) > 0 {
		firstErr := errs[0]
		return fmt.Errorf("dados invalidos: campo '%s' falhou na regra '%s'", firstErr.Field, firstErr.Tag)
	}

	category.CreatedBy = userID
	category.UpdatedBy = userID
	return s.categoryRepo.Create(category)
}

func (s *catalogService) GetAllCategories() ([]model.Category, error) {
	return s.categoryRepo.FindAll()
}

func (s *catalogService) CreateProduct(req *model.Product, userID, userName string) error {
	// 1. Struct validation
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return fmt.Errorf("dados invalidos: campo '%s' falhou na regra '%s'", firstErr.Field, firstErr.Tag)
	}

	// 2. Barcode must be unique across the catalog
	existing, _ := s.productRepo.FindByBarcode(req.Barcode)
	if existing != nil && existing.ID != uuid.Nil {
		return ErrBarcodeExists
	}

	// 3. Category must exist
	if _, err := s.categoryRepo.FindByID(req.CategoryID); err != nil {
		return ErrCategoryNotFound
	}

	req.CreatedBy = userID
	req.UpdatedBy = userID

	if err := s.productRepo.Create(req); err != nil {
		return err
	}

	go s.broadcastProduct("product_created", req, userID, userName,
		fmt.Sprintf("%s cadastrou o produto '%s'", userName, req.Name))

	return nil
}

// UpdateProduct applies a partial edit under a row lock so a concurrent
// checkout never sees a half-applied product.
func (s *catalogService) UpdateProduct(id uuid.UUID, req *UpdateProductRequest, userID, userName string) (*model.Product, error) {
	var updated *model.Product

	err := s.db.Transaction(func(tx *gorm.DB) error {
		locked, err := s.productRepo.FindByIDForUpdate(tx, id)
		if err != nil {
			return ErrProductNotFound
		}
		existing := *locked

		if req.Name != nil {
			existing.Name = *req.Name
		}
		if req.Description != nil {
			existing.Description = *req.Description
		}
		if req.Barcode != nil && *req.Barcode != existing.Barcode {
			other, _ := s.productRepo.FindByBarcode(*req.Barcode)
			if other != nil && other.ID != uuid.Nil && other.ID != existing.ID {
				return ErrBarcodeExists
			}
			existing.Barcode = *req.Barcode
		}
		if req.Price != nil {
			existing.Price = *req.Price
		}
		if req.Stock != nil {
			if *req.Stock < 0 {
				return fmt.Errorf("estoque nao pode ser negativo")
			}
			existing.Stock = *req.Stock
		}
		if req.Image != nil {
			existing.Image = *req.Image
		}
		if req.CategoryID != nil {
			if _, err := s.categoryRepo.FindByID(*req.CategoryID); err != nil {
				return ErrCategoryNotFound
			}
			existing.CategoryID = *req.CategoryID
		}
		existing.UpdatedBy = userID

		if err := tx.Save(&existing).Error; err != nil {
			// Surfaced generically; the request layer reports failure without crashing
			return fmt.Errorf("%w: %v", ErrCatalogConflict, err)
		}

		updated = &existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	go s.broadcastProduct("product_updated", updated, userID, userName,
		fmt.Sprintf("%s atualizou o produto '%s'", userName, updated.Name))

	return updated, nil
}

func (s *catalogService) GetAllProducts() ([]model.Product, error) {
	return s.productRepo.FindAll()
}

func (s *catalogService) SearchProducts(query string) ([]model.Product, error) {
	return s.productRepo.Search(query)
}

func (s *catalogService) broadcastProduct(action string, product *model.Product, userID, userName, message string) {
	payload := map[string]interface{}{
		"type":   "stock_update",
		"action": action,
		"product": map[string]interface{}{
			"id":            product.ID,
			"nome":          product.Name,
			"codigo_barras": product.Barcode,
			"preco":         product.Price,
			"estoque":       product.Stock,
		},
		"user":    map[string]interface{}{"id": userID, "name": userName},
		"message": message,
	}
	msg, _ := json.Marshal(payload)
	s.wsHub.Broadcast <- msg
}
