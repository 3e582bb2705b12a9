package controllers

import (
	"github.com/greendeeroper444/razon-clinic-sub000/services"
	"github.com/greendeeroper444/razon-clinic-sub000/validators"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Response is the uniform envelope every inventory endpoint returns
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// InventoryController translates HTTP requests into inventory service
// calls. It holds no business logic; every error is returned as-is and
// handled by the centralized error handler.
type InventoryController struct {
	service *services.InventoryService
}

// NewInventoryController creates a new InventoryController
func NewInventoryController(db *gorm.DB) *InventoryController {
	return &InventoryController{service: services.NewInventoryService(db)}
}

// AddInventoryItem handles POST /addInventoryItem
func (ic *InventoryController) AddInventoryItem(c *fiber.Ctx) error {
	var req validators.InventoryItemRequest
	if err := c.BodyParser(&req); err != nil {
		return services.NewValidationError(services.FieldError{Field: "body", Message: "invalid JSON payload"})
	}

	input, err := validators.ValidateItem(&req, false)
	if err != nil {
		return err
	}

	item, err := ic.service.Create(input)
	if err != nil {
		return err
	}

	return c.Status(201).JSON(Response{
		Success: true,
		Message: "Inventory item added successfully",
		Data:    item,
	})
}

// GetInventoryItems handles GET /getInventoryItems
func (ic *InventoryController) GetInventoryItems(c *fiber.Ctx) error {
	query, err := validators.ValidateListQuery(validators.ListQueryParams{
		Search:          c.Query("search"),
		Category:        c.Query("category"),
		ItemName:        c.Query("itemName"),
		SortBy:          c.Query("sortBy"),
		SortOrder:       c.Query("sortOrder"),
		Page:            c.Query("page"),
		Limit:           c.Query("limit"),
		IncludeArchived: c.Query("includeArchived"),
	})
	if err != nil {
		return err
	}

	result, err := ic.service.List(query)
	if err != nil {
		return err
	}

	return c.JSON(Response{
		Success: true,
		Message: "Inventory items retrieved successfully",
		Data:    result,
	})
}

// GetInventoryItem handles GET /getInventoryItem/:id
func (ic *InventoryController) GetInventoryItem(c *fiber.Ctx) error {
	item, err := ic.service.GetByID(c.Params("id"))
	if err != nil {
		return err
	}

	return c.JSON(Response{
		Success: true,
		Message: "Inventory item retrieved successfully",
		Data:    item,
	})
}

// UpdateInventoryItem handles PUT /updateInventoryItem/:id
func (ic *InventoryController) UpdateInventoryItem(c *fiber.Ctx) error {
	var req validators.InventoryItemRequest
	if err := c.BodyParser(&req); err != nil {
		return services.NewValidationError(services.FieldError{Field: "body", Message: "invalid JSON payload"})
	}

	patch, err := validators.ValidateItem(&req, true)
	if err != nil {
		return err
	}

	item, err := ic.service.Update(c.Params("id"), patch)
	if err != nil {
		return err
	}

	return c.JSON(Response{
		Success: true,
		Message: "Inventory item updated successfully",
		Data:    item,
	})
}

// DeleteInventoryItem handles DELETE /deleteInventoryItem/:id
func (ic *InventoryController) DeleteInventoryItem(c *fiber.Ctx) error {
	item, err := ic.service.Delete(c.Params("id"))
	if err != nil {
		return err
	}

	return c.JSON(Response{
		Success: true,
		Message: "Inventory item deleted successfully",
		Data:    item,
	})
}

// GetLowStockItems handles GET /getLowStockItems
func (ic *InventoryController) GetLowStockItems(c *fiber.Ctx) error {
	threshold, err := validators.ValidateThreshold(c.Query("threshold"))
	if err != nil {
		return err
	}

	items, err := ic.service.GetLowStockItems(threshold)
	if err != nil {
		return err
	}

	return c.JSON(Response{
		Success: true,
		Message: "Low stock items retrieved successfully",
		Data:    items,
	})
}

// GetExpiredItems handles GET /getExpiredItems
func (ic *InventoryController) GetExpiredItems(c *fiber.Ctx) error {
	items, err := ic.service.GetExpiredItems()
	if err != nil {
		return err
	}

	return c.JSON(Response{
		Success: true,
		Message: "Expired items retrieved successfully",
		Data:    items,
	})
}

// GetExpiringItems handles GET /getExpiringItems
func (ic *InventoryController) GetExpiringItems(c *fiber.Ctx) error {
	days, err := validators.ValidateDays(c.Query("days"))
	if err != nil {
		return err
	}

	items, err := ic.service.GetExpiringItems(days)
	if err != nil {
		return err
	}

	return c.JSON(Response{
		Success: true,
		Message: "Expiring items retrieved successfully",
		Data:    items,
	})
}

// UpdateStock handles PATCH /updateStock/:id
func (ic *InventoryController) UpdateStock(c *fiber.Ctx) error {
	var req validators.StockUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return services.NewValidationError(services.FieldError{Field: "body", Message: "invalid JSON payload"})
	}

	quantity, operation, err := validators.ValidateStockUpdate(&req)
	if err != nil {
		return err
	}

	item, err := ic.service.UpdateStock(c.Params("id"), quantity, operation)
	if err != nil {
		return err
	}

	return c.JSON(Response{
		Success: true,
		Message: "Stock updated successfully",
		Data:    item,
	})
}

// GetInventoryStats handles GET /getInventoryStats
func (ic *InventoryController) GetInventoryStats(c *fiber.Ctx) error {
	stats, err := ic.service.GetInventoryStats()
	if err != nil {
		return err
	}

	return c.JSON(Response{
		Success: true,
		Message: "Inventory stats retrieved successfully",
		Data:    stats,
	})
}
