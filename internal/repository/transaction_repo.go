package repository

import (
	"time"

	"github.com/sr-oliveiraa/smartcaixa/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TransactionRepository interface {
	Create(tx *gorm.DB, transaction *model.Transaction) error
	FindByID(id uuid.UUID) (*model.Transaction, error)
	FindByPeriod(start time.Time, page, limit int) ([]model.Transaction, int64, error)
	SumByMethod(tx *gorm.DB, method model.PaymentMethod, start, end time.Time) (float64, error)
	SalesByDay(start, end time.Time) ([]DailySales, error)
}

// DailySales is one point of the per-day revenue chart
type DailySales struct {
	Date  string  `json:"date"`
	Total float64 `json:"total"`
	Count int     `json:"count"`
}

type transactionRepo struct {
	db *gorm.DB
}

func NewTransactionRepo(db *gorm.DB) TransactionRepository {
	return &transactionRepo{db}
}

// Create takes tx so the sale row and its items commit atomically with the
// stock decrements that produced them
func (r *transactionRepo) Create(tx *gorm.DB, transaction *model.Transaction) error {
	if tx == nil {
		tx = r.db
	}
	return tx.Create(transaction).Error
}

func (r *transactionRepo) FindByID(id uuid.UUID) (*model.Transaction, error) {
	var transaction model.Transaction
	err := r.db.
		Preload("Items").
		Preload("Items.Product").
		Preload("CreatedByUser").
		First(&transaction, "id = ?", id).Error
	return &transaction, err
}

// FindByPeriod lists transactions from start onwards, newest first, paginated.
// The second return is the total row count for the period (for pagination).
func (r *transactionRepo) FindByPeriod(start time.Time, page, limit int) ([]model.Transaction, int64, error) {
	var transactions []model.Transaction
	var count int64

	base := r.db.Model(&model.Transaction{}).Where("date >= ?", start)
	if err := base.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.
		Preload("Items").
		Preload("Items.Product").
		Where("date >= ?", start).
		Order("date DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&transactions).Error

	return transactions, count, err
}

// SumByMethod totals committed sales for one payment method inside the shift
// window. An empty window yields 0, never an error. Takes tx so the closing
// can aggregate and persist in one unit of work.
func (r *transactionRepo) SumByMethod(tx *gorm.DB, method model.PaymentMethod, start, end time.Time) (float64, error) {
	if tx == nil {
		tx = r.db
	}

	var total float64
	err := tx.Model(&model.Transaction{}).
		Where("payment_method = ? AND date >= ? AND date <= ?", method, start, end).
		Select("COALESCE(SUM(total), 0)").
		Scan(&total).Error
	return total, err
}

func (r *transactionRepo) SalesByDay(start, end time.Time) ([]DailySales, error) {
	var results []DailySales

	rows, err := r.db.Model(&model.Transaction{}).
		Select(`DATE(date) as date, COALESCE(SUM(total), 0) as total, COUNT(*) as count`).
		Where("date BETWEEN ? AND ?", start, end).
		Group("DATE(date)").
		Order("date ASC").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var data DailySales
		if err := rows.Scan(&data.Date, &data.Total, &data.Count); err != nil {
			return nil, err
		}
		results = append(results, data)
	}

	return results, nil
}
