package FiberConfig

import (
	"fmt"
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"gorm.io/gorm"

	"Inventaris/Controllers"
	"Inventaris/middleware"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	// Initialize handlers
	authController := Controllers.NewAuthController(db)
	itemController := Controllers.NewItemController(db)
	transactionController := Controllers.NewTransactionController(db)
	reportController := Controllers.NewReportController(db)

	// API group
	api := app.Group("/api")

	// Auth routes — login is the only unprotected endpoint
	auth := api.Group("/auth")
	auth.Post("/login", authController.Login)
	auth.Get("/me", middleware.Verify(1), authController.CurrentUser)
	auth.Post("/logout", middleware.Verify(1), authController.Logout)

	// Item routes
	items := api.Group("/items", middleware.Verify(1))
	items.Get("/", itemController.GetItems)
	items.Post("/", itemController.CreateItem)
	items.Get("/:id/stock", itemController.GetItemStock)
	items.Put("/:id", itemController.UpdateItem)
	items.Delete("/:id", itemController.DeleteItem)

	// Transaction routes
	transactions := api.Group("/transactions", middleware.Verify(1))
	transactions.Get("/", transactionController.GetTransactions)
	transactions.Post("/", transactionController.CreateTransaction)
	transactions.Delete("/:id", transactionController.DeleteTransaction)

	// Report routes — exports live next to the views they mirror
	reports := api.Group("/reports", middleware.Verify(1))
	reports.Get("/stock", reportController.GetStockReport)
	reports.Get("/stock/export", reportController.ExportStock)
	reports.Get("/transactions", reportController.GetTransactionReport)
	reports.Get("/transactions/export", reportController.ExportTransactions)

	app.Get("/api/stats/summary", middleware.Verify(1), reportController.Summary)
}

func FiberConfig(db *gorm.DB) {
	fmt.Println("Server Up...")
	app := fiber.New()
	app.Use(middleware.RequestLogger())
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestCompression,
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "*",
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With",
		AllowCredentials: true,
		MaxAge:           300,
	}))

	SetupRoutes(app, db)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3001"
	}
	log.Fatal(app.Listen(":" + port))
}
