package main

import (
	"errors"
	"log"
	"os"
	"time"

	"github.com/greendeeroper444/razon-clinic-sub000/controllers"
	"github.com/greendeeroper444/razon-clinic-sub000/models"
	"github.com/greendeeroper444/razon-clinic-sub000/routes"
	"github.com/greendeeroper444/razon-clinic-sub000/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env when present; deployments set the environment directly
	_ = godotenv.Load()

	db, err := models.InitDB()
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.InventoryItem{}); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: errorHandler,
	})

	// Middleware
	app.Use(logger.New())

	corsOrigins := os.Getenv("CORS_ORIGINS")
	if corsOrigins == "" {
		corsOrigins = "http://localhost:3000,http://127.0.0.1:3000"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		AllowCredentials: true,
	}))

	// Controllers and routes
	authController := controllers.NewAuthController(db)
	inventoryController := controllers.NewInventoryController(db)

	routes.SetupAuthRoutes(app, authController)
	routes.SetupInventoryRoutes(app, inventoryController)

	// Health check endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "ok",
			"message":   "Clinic inventory backend is running",
			"timestamp": time.Now().Unix(),
		})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}

	log.Printf("Server starting on port %s", port)
	log.Fatal(app.Listen(":" + port))
}

// errorHandler maps the domain error taxonomy to HTTP statuses and the
// uniform JSON envelope. Every error response carries success=false so
// callers can always tell failure from success.
func errorHandler(c *fiber.Ctx, err error) error {
	var validationErr *services.ValidationError
	if errors.As(err, &validationErr) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Validation failed",
			"errors":  validationErr.Errors,
		})
	}

	switch {
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": err.Error(),
		})
	case errors.Is(err, services.ErrInvalidID),
		errors.Is(err, services.ErrInsufficientStock),
		errors.Is(err, services.ErrInvalidOperation):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": err.Error(),
		})
	}

	if e, ok := err.(*fiber.Error); ok {
		return c.Status(e.Code).JSON(fiber.Map{
			"success": false,
			"message": e.Message,
		})
	}

	// Store or other unexpected failure
	log.Printf("Internal error: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"success": false,
		"message": "Internal server error",
	})
}
