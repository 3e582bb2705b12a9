package routes

import (
	"github.com/greendeeroper444/razon-clinic-sub000/controllers"
	"github.com/greendeeroper444/razon-clinic-sub000/utils"

	"github.com/gofiber/fiber/v2"
)

// SetupInventoryRoutes wires the inventory endpoints. Every route requires
// a bearer token issued by the auth module.
func SetupInventoryRoutes(app *fiber.App, inventoryController *controllers.InventoryController) {
	auth := utils.AuthMiddleware

	// Collection operations
	app.Post("/addInventoryItem", auth, inventoryController.AddInventoryItem)
	app.Get("/getInventoryItems", auth, inventoryController.GetInventoryItems)

	// Reporting queries
	app.Get("/getLowStockItems", auth, inventoryController.GetLowStockItems)
	app.Get("/getExpiredItems", auth, inventoryController.GetExpiredItems)
	app.Get("/getExpiringItems", auth, inventoryController.GetExpiringItems)
	app.Get("/getInventoryStats", auth, inventoryController.GetInventoryStats)

	// Single-item operations
	app.Get("/getInventoryItem/:id", auth, inventoryController.GetInventoryItem)
	app.Put("/updateInventoryItem/:id", auth, inventoryController.UpdateInventoryItem)
	app.Delete("/deleteInventoryItem/:id", auth, inventoryController.DeleteInventoryItem)
	app.Patch("/updateStock/:id", auth, inventoryController.UpdateStock)
}
