package main

import (
	"time"

	"github.com/greendeeroper444/razon-clinic-sub000/controllers"
	"github.com/greendeeroper444/razon-clinic-sub000/models"
	"github.com/greendeeroper444/razon-clinic-sub000/routes"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB creates an in-memory test database
func setupTestDB() *gorm.DB {
	db, _ := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	db.AutoMigrate(&models.User{}, &models.InventoryItem{})
	return db
}

// newTestApp builds a Fiber app with the real error handler and routes
func newTestApp(db *gorm.DB) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: errorHandler,
	})

	routes.SetupAuthRoutes(app, controllers.NewAuthController(db))
	routes.SetupInventoryRoutes(app, controllers.NewInventoryController(db))

	return app
}

// seedItem inserts an inventory item directly into the store
func seedItem(db *gorm.DB, name, category string, price float64, stock, used int, expiry time.Time) models.InventoryItem {
	item := models.InventoryItem{
		ItemName:        name,
		Category:        category,
		Price:           price,
		QuantityInStock: stock,
		QuantityUsed:    used,
		ExpiryDate:      expiry,
	}
	db.Create(&item)
	return item
}

// generateTestJWT signs a token for the given staff account with the
// development secret
func generateTestJWT(userID uint) string {
	secretKey := "razon-clinic-secret-key-change-in-production"
	claims := jwt.MapClaims{
		"user_id": userID,
		"email":   "staff@test.com",
		"exp":     time.Now().Add(time.Hour * 24).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, _ := token.SignedString([]byte(secretKey))
	return tokenString
}
