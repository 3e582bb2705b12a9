package routes

import (
	"github.com/greendeeroper444/razon-clinic-sub000/controllers"

	"github.com/gofiber/fiber/v2"
)

// SetupAuthRoutes wires the staff authentication endpoints
func SetupAuthRoutes(app *fiber.App, authController *controllers.AuthController) {
	auth := app.Group("/api/auth")

	auth.Post("/register", authController.Register)
	auth.Post("/login", authController.Login)
}
