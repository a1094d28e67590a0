// Command seed loads demo catalog data for a development database.
package main

import (
	"log"

	"github.com/sr-oliveiraa/smartcaixa/internal/model"
	"github.com/sr-oliveiraa/smartcaixa/pkg/database"

	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, relying on system env")
	}

	// 2. Setup Database
	db := database.ConnectDB()
	db.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Product{},
		&model.Transaction{},
		&model.TransactionItem{},
		&model.Shift{},
		&model.CashClosing{},
	)

	// 3. Demo operator
	operator := &model.User{
		Username:    "caixa",
		AccessLevel: "operador",
		IsActive:    true,
	}
	operator.CreatedBy = "seed"
	operator.UpdatedBy = "seed"
	if err := operator.SetPassword("caixa123"); err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}
	createIfMissing(db, &model.User{}, "username = ?", operator.Username, operator)

	// 4. Demo categories and products
	bebidas := &model.Category{Name: "Bebidas"}
	bebidas.CreatedBy = "seed"
	createIfMissing(db, &model.Category{}, "name = ?", bebidas.Name, bebidas)

	lanches := &model.Category{Name: "Lanches"}
	lanches.CreatedBy = "seed"
	createIfMissing(db, &model.Category{}, "name = ?", lanches.Name, lanches)

	db.First(bebidas, "name = ?", "Bebidas")
	db.First(lanches, "name = ?", "Lanches")

	products := []model.Product{
		{Name: "Refrigerante Lata", Barcode: "7891000100103", Price: 6.50, Stock: 48, CategoryID: bebidas.ID},
		{Name: "Agua Mineral 500ml", Barcode: "7891000100203", Price: 3.00, Stock: 60, CategoryID: bebidas.ID},
		{Name: "Suco de Laranja 300ml", Barcode: "7891000100303", Price: 8.00, Stock: 24, CategoryID: bebidas.ID},
		{Name: "Salgado Assado", Barcode: "7891000200104", Price: 7.50, Stock: 30, CategoryID: lanches.ID},
		{Name: "Sanduiche Natural", Barcode: "7891000200204", Price: 12.00, Stock: 15, CategoryID: lanches.ID},
	}
	for i := range products {
		products[i].CreatedBy = "seed"
		products[i].UpdatedBy = "seed"
		createIfMissing(db, &model.Product{}, "barcode = ?", products[i].Barcode, &products[i])
	}

	log.Println("Seed finished: demo operator 'caixa' and sample catalog ready")
}

func createIfMissing(db *gorm.DB, existing interface{}, query, arg string, value interface{}) {
	if err := db.Where(query, arg).First(existing).Error; err == nil {
		return
	}
	if err := db.Create(value).Error; err != nil {
		log.Printf("Warning: failed to seed %T (%s): %v", value, arg, err)
	}
}
