package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/shopims/shopims-backend/internal/handler"
	"github.com/shopims/shopims-backend/internal/middleware"
	"github.com/shopims/shopims-backend/internal/model"
	"github.com/shopims/shopims-backend/internal/repository"
	"github.com/shopims/shopims-backend/internal/service"
	"github.com/shopims/shopims-backend/internal/ws"
	"github.com/shopims/shopims-backend/pkg/database"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	db := database.ConnectDB()
	db.AutoMigrate(
		&model.User{},
		&model.Supplier{},
		&model.Product{},
		&model.Customer{},
		&model.Purchase{},
		&model.Sale{},
		&model.SaleItem{},
		&model.StockAdjustment{},
		&model.Share{},
		&model.TotalProfit{},
		&model.MonthlyReport{},
	)

	seedAdmin(db)

	wsHub := ws.NewHub()
	go wsHub.Run()

	// Wiring
	userRepo := repository.NewUserRepo(db)
	supplierRepo := repository.NewSupplierRepo(db)
	productRepo := repository.NewProductRepo(db)
	customerRepo := repository.NewCustomerRepo(db)
	purchaseRepo := repository.NewPurchaseRepo(db)
	saleRepo := repository.NewSaleRepo(db)
	adjustmentRepo := repository.NewAdjustmentRepo(db)
	shareRepo := repository.NewShareRepo(db)
	reportRepo := repository.NewReportRepo(db)

	authService := service.NewAuthService(userRepo)
	userService := service.NewUserService(userRepo)
	catalogService := service.NewCatalogService(productRepo, supplierRepo, customerRepo, wsHub)
	purchaseService := service.NewPurchaseService(purchaseRepo, productRepo, db, wsHub)
	saleService := service.NewSaleService(saleRepo, productRepo, db, wsHub)
	stockService := service.NewStockService(adjustmentRepo, productRepo, db, wsHub)
	shareService := service.NewShareService(shareRepo)
	reportService := service.NewReportService(purchaseRepo, saleRepo, productRepo, shareRepo, reportRepo)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	catalogHandler := handler.NewCatalogHandler(catalogService)
	purchaseHandler := handler.NewPurchaseHandler(purchaseService)
	saleHandler := handler.NewSaleHandler(saleService)
	stockHandler := handler.NewStockHandler(stockService)
	shareHandler := handler.NewShareHandler(shareService)
	reportHandler := handler.NewReportHandler(reportService)

	app := fiber.New(fiber.Config{
		AppName: "Shop IMS Backend v1.0",
	})

	app.Use(logger.New())
	app.Use(recover.New())
	app.Use(cors.New())

	api := app.Group("/api/v1")

	// Public routes
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)

	// Protected routes
	protected := api.Group("", middleware.RequireAuth(userRepo))

	protected.Get("/products", catalogHandler.GetProducts)
	protected.Get("/products/:id", catalogHandler.GetProduct)
	protected.Post("/products", middleware.RequireRole(model.RoleAdmin), catalogHandler.CreateProduct)
	protected.Put("/products/:id", middleware.RequireRole(model.RoleAdmin), catalogHandler.UpdateProduct)

	protected.Get("/suppliers", catalogHandler.GetSuppliers)
	protected.Post("/suppliers", middleware.RequireRole(model.RoleAdmin), catalogHandler.CreateSupplier)

	protected.Get("/customers", catalogHandler.GetCustomers)
	protected.Post("/customers", catalogHandler.CreateCustomer)

	protected.Get("/purchases", purchaseHandler.GetPurchases)
	protected.Get("/purchases/:id", purchaseHandler.GetPurchase)
	protected.Post("/purchases", purchaseHandler.CreatePurchase)
	protected.Put("/purchases/:id", purchaseHandler.UpdatePurchase)

	protected.Get("/sales", saleHandler.GetSales)
	protected.Get("/sales/:id", saleHandler.GetSale)
	protected.Post("/sales", saleHandler.CreateSale)

	protected.Get("/stock-adjustments", stockHandler.GetAdjustments)
	protected.Post("/stock-adjustments", stockHandler.CreateAdjustment)

	protected.Get("/shares", middleware.RequireRole(model.RoleAdmin), shareHandler.GetShares)
	protected.Post("/shares", middleware.RequireRole(model.RoleAdmin), shareHandler.CreateShare)

	protected.Get("/reports/daily", reportHandler.GetDailyReport)
	protected.Get("/reports/monthly", reportHandler.GetMonthlyReport)
	protected.Get("/reports/monthly/all", reportHandler.GetMonthlyReports)
	protected.Post("/reports/monthly/generate", reportHandler.GenerateMonthlyReport)
	protected.Get("/reports/export", reportHandler.ExportReports)

	protected.Get("/users", middleware.RequireRole(model.RoleAdmin), userHandler.GetUsers)
	protected.Post("/users", middleware.RequireRole(model.RoleAdmin), userHandler.CreateUser)
	protected.Put("/users/:id", middleware.RequireRole(model.RoleAdmin), userHandler.UpdateUser)
	protected.Delete("/users/:id", middleware.RequireRole(model.RoleAdmin), userHandler.DeactivateUser)

	// WebSocket stream of stock updates for the admin console
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
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

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

// seedAdmin creates the default admin account on first start.
func seedAdmin(db *gorm.DB) {
	userRepo := repository.NewUserRepo(db)

	if _, err := userRepo.FindByEmail("admin@example.com"); err == nil {
		return
	}

	admin := &model.User{
		Email:    "admin@example.com",
		FullName: "Shop Administrator",
		Role:     model.RoleAdmin,
		IsActive: true,
	}
	admin.CreatedBy = "system"
	admin.UpdatedBy = "system"

	if err := admin.SetPassword("admin123"); err != nil {
		log.Printf("Warning: Failed to hash admin password: %v", err)
		return
	}
	if err := userRepo.Create(admin); err != nil {
		log.Printf("Warning: Failed to create admin user: %v", err)
		return
	}
	log.Println("Admin user created: admin@example.com / admin123")
}
