package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/sr-oliveiraa/smartcaixa/internal/handler"
	"github.com/sr-oliveiraa/smartcaixa/internal/middleware"
	"github.com/sr-oliveiraa/smartcaixa/internal/model"
	"github.com/sr-oliveiraa/smartcaixa/internal/repository"
	"github.com/sr-oliveiraa/smartcaixa/internal/service"
	"github.com/sr-oliveiraa/smartcaixa/internal/ws"
	"github.com/sr-oliveiraa/smartcaixa/pkg/database"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
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

	// 3. Seed default admin user
	seedAdmin(db)

	// 4. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 5. Dependency Injection (Wiring Layers)
	productRepo := repository.NewProductRepo(db)
	categoryRepo := repository.NewCategoryRepo(db)
	txRepo := repository.NewTransactionRepo(db)
	shiftRepo := repository.NewShiftRepo(db)
	closingRepo := repository.NewClosingRepo(db)
	userRepo := repository.NewUserRepo(db)

	shiftService := service.NewShiftService(shiftRepo)
	authService := service.NewAuthService(userRepo, shiftService)
	catalogService := service.NewCatalogService(productRepo, categoryRepo, db, wsHub)
	checkoutService := service.NewCheckoutService(productRepo, txRepo, db, wsHub)
	closingService := service.NewClosingService(txRepo, closingRepo, shiftRepo, db, wsHub,
		os.Getenv("CLOSING_ALLOW_REPEAT") == "true")
	reportService := service.NewReportService(txRepo, closingRepo)
	userService := service.NewUserService(userRepo)

	authHandler := handler.NewAuthHandler(authService)
	catalogHandler := handler.NewCatalogHandler(catalogService)
	checkoutHandler := handler.NewCheckoutHandler(checkoutService)
	closingHandler := handler.NewClosingHandler(closingService)
	reportHandler := handler.NewReportHandler(reportService)
	shiftHandler := handler.NewShiftHandler(shiftService)
	userHandler := handler.NewUserHandler(userService)

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "SmartCaixa PDV v1.0",
	})

	// Middleware
	app.Use(logger.New())  // Request logging
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 7. Routes
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/logout", middleware.RequireAuth(userRepo), authHandler.Logout)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", middleware.RequireAuth(userRepo))

	// Catalog Routes
	protected.Get("/categories", catalogHandler.GetCategories)
	protected.Post("/categories", catalogHandler.CreateCategory)
	protected.Get("/products", catalogHandler.GetProducts)
	protected.Get("/products/search", catalogHandler.SearchProducts)
	protected.Post("/products", catalogHandler.CreateProduct)
	protected.Put("/products/:id", catalogHandler.UpdateProduct)

	// POS Routes (blocked once the shift is closed)
	pos := protected.Group("", middleware.RequireOpenShift(shiftService))
	pos.Post("/checkout", checkoutHandler.FinalizeSale)
	pos.Post("/closings", closingHandler.CloseRegister)

	// Sales history & reports
	protected.Get("/transactions", checkoutHandler.GetTransactions)
	protected.Get("/transactions/daily", checkoutHandler.GetDailySales)
	protected.Get("/transactions/:id", checkoutHandler.GetTransaction)
	protected.Get("/reports/transactions", reportHandler.TransactionsReport)

	// Closings
	protected.Get("/closings", closingHandler.GetClosings)
	protected.Get("/closings/:id", closingHandler.GetClosing)
	protected.Get("/closings/:id/pdf", reportHandler.ClosingReport)
	protected.Patch("/closings/:id/notes", closingHandler.AppendNotes)

	// Shifts
	protected.Get("/shifts", shiftHandler.GetShiftHistory)
	protected.Get("/shifts/current", shiftHandler.GetCurrentShift)

	// User Management (admin only)
	admin := protected.Group("/users", middleware.RequireAdmin())
	admin.Get("/", userHandler.GetUsers)
	admin.Post("/", userHandler.CreateUser)
	admin.Delete("/:id", userHandler.DeleteUser)

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 8. Graceful Shutdown
	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		if err := app.Listen(":" + port); err != nil {
			log.Panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}

// seedAdmin creates the default admin operator if none exists
func seedAdmin(db *gorm.DB) {
	userRepo := repository.NewUserRepo(db)

	if _, err := userRepo.FindByUsername("admin"); err == nil {
		return
	}

	admin := &model.User{
		Username:    "admin",
		AccessLevel: "gerente",
		IsAdmin:     true,
		IsActive:    true,
	}
	admin.CreatedBy = "system"
	admin.UpdatedBy = "system"

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
	}
	if err := admin.SetPassword(password); err != nil {
		log.Printf("Warning: Failed to hash admin password: %v", err)
		return
	}

	if err := userRepo.Create(admin); err != nil {
		log.Printf("Warning: Failed to create admin user: %v", err)
	} else {
		log.Println("Admin user created: admin")
	}
}
