package main

import (
	"testing"
	"time"

	"github.com/greendeeroper444/razon-clinic-sub000/models"

	"github.com/stretchr/testify/assert"
)

func TestUpdateStock(t *testing.T) {
	db := setupTestDB()
	app := newTestApp(db)

	seedItem(db, "Amoxicillin", models.CategoryMedicalSupply, 50, 100, 0, time.Now().AddDate(1, 0, 0))

	t.Run("Use decrements stock and increments usage", func(t *testing.T) {
		payload := map[string]interface{}{
			"quantityUsed": 30,
			"operation":    "use",
		}

		resp, err := app.Test(authedRequest("PATCH", "/updateStock/1", payload))
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		result := decodeResponse(t, resp)
		data := result["data"].(map[string]interface{})
		assert.Equal(t, float64(70), data["quantityInStock"])
		assert.Equal(t, float64(30), data["quantityUsed"])
		assert.Equal(t, float64(40), data["quantityRemaining"])
	})

	t.Run("Use beyond stock fails and leaves state unchanged", func(t *testing.T) {
		payload := map[string]interface{}{
			"quantityUsed": 80,
			"operation":    "use",
		}

		resp, err := app.Test(authedRequest("PATCH", "/updateStock/1", payload))
		assert.NoError(t, err)
		assert.Equal(t, 400, resp.StatusCode)

		result := decodeResponse(t, resp)
		assert.Equal(t, false, result["success"])

		var item models.InventoryItem
		db.First(&item, 1)
		assert.Equal(t, 70, item.QuantityInStock)
		assert.Equal(t, 30, item.QuantityUsed)
	})

	t.Run("Restock replenishes stock without undoing usage", func(t *testing.T) {
		payload := map[string]interface{}{
			"quantityUsed": 30,
			"operation":    "restock",
		}

		resp, err := app.Test(authedRequest("PATCH", "/updateStock/1", payload))
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		result := decodeResponse(t, resp)
		data := result["data"].(map[string]interface{})
		assert.Equal(t, float64(100), data["quantityInStock"])
		assert.Equal(t, float64(30), data["quantityUsed"])
	})

	t.Run("Unknown operation", func(t *testing.T) {
		payload := map[string]interface{}{
			"quantityUsed": 10,
			"operation":    "transfer",
		}

		resp, err := app.Test(authedRequest("PATCH", "/updateStock/1", payload))
		assert.NoError(t, err)
		assert.Equal(t, 400, resp.StatusCode)
	})

	t.Run("Non-positive delta", func(t *testing.T) {
		for _, qty := range []int{0, -5} {
			payload := map[string]interface{}{
				"quantityUsed": qty,
				"operation":    "use",
			}

			resp, err := app.Test(authedRequest("PATCH", "/updateStock/1", payload))
			assert.NoError(t, err)
			assert.Equal(t, 400, resp.StatusCode)
		}
	})

	t.Run("Unknown id", func(t *testing.T) {
		payload := map[string]interface{}{
			"quantityUsed": 10,
			"operation":    "use",
		}

		resp, err := app.Test(authedRequest("PATCH", "/updateStock/99", payload))
		assert.NoError(t, err)
		assert.Equal(t, 404, resp.StatusCode)
	})
}

func TestGetLowStockItems(t *testing.T) {
	db := setupTestDB()
	app := newTestApp(db)

	expiry := time.Now().AddDate(1, 0, 0)
	seedItem(db, "Gloves", models.CategoryMedicalSupply, 2, 5, 0, expiry)
	seedItem(db, "Amoxicillin", models.CategoryMedicalSupply, 50, 70, 0, expiry)
	seedItem(db, "Syringes", models.CategoryMedicalSupply, 2, 200, 0, expiry)

	t.Run("Custom threshold, most depleted first", func(t *testing.T) {
		resp, err := app.Test(authedRequest("GET", "/getLowStockItems?threshold=75", nil))
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		result := decodeResponse(t, resp)
		items := result["data"].([]interface{})
		assert.Len(t, items, 2)
		assert.Equal(t, "Gloves", items[0].(map[string]interface{})["itemName"])
		assert.Equal(t, "Amoxicillin", items[1].(map[string]interface{})["itemName"])
	})

	t.Run("Default threshold", func(t *testing.T) {
		resp, err := app.Test(authedRequest("GET", "/getLowStockItems", nil))
		assert.NoError(t, err)

		result := decodeResponse(t, resp)
		items := result["data"].([]interface{})
		assert.Len(t, items, 1)
	})

	t.Run("Threshold out of range", func(t *testing.T) {
		resp, err := app.Test(authedRequest("GET", "/getLowStockItems?threshold=2000", nil))
		assert.NoError(t, err)
		assert.Equal(t, 400, resp.StatusCode)
	})
}

func TestExpiryQueries(t *testing.T) {
	db := setupTestDB()
	app := newTestApp(db)

	now := time.Now()
	seedItem(db, "Expired vaccine", models.CategoryVaccine, 80, 10, 0, now.AddDate(0, 0, -2))
	seedItem(db, "Expiring soon", models.CategoryMedicalSupply, 10, 30, 0, now.AddDate(0, 0, 10))
	seedItem(db, "Long shelf life", models.CategoryMedicalSupply, 10, 30, 0, now.AddDate(0, 0, 100))

	t.Run("Expired items, most overdue first", func(t *testing.T) {
		resp, err := app.Test(authedRequest("GET", "/getExpiredItems", nil))
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		result := decodeResponse(t, resp)
		items := result["data"].([]interface{})
		assert.Len(t, items, 1)
		assert.Equal(t, "Expired vaccine", items[0].(map[string]interface{})["itemName"])
	})

	t.Run("Expiring within default window", func(t *testing.T) {
		resp, err := app.Test(authedRequest("GET", "/getExpiringItems", nil))
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		result := decodeResponse(t, resp)
		items := result["data"].([]interface{})
		assert.Len(t, items, 1)
		assert.Equal(t, "Expiring soon", items[0].(map[string]interface{})["itemName"])
	})

	t.Run("Wider window picks up later expiries", func(t *testing.T) {
		resp, err := app.Test(authedRequest("GET", "/getExpiringItems?days=120", nil))
		assert.NoError(t, err)

		result := decodeResponse(t, resp)
		items := result["data"].([]interface{})
		assert.Len(t, items, 2)
	})

	t.Run("Days out of range", func(t *testing.T) {
		resp, err := app.Test(authedRequest("GET", "/getExpiringItems?days=400", nil))
		assert.NoError(t, err)
		assert.Equal(t, 400, resp.StatusCode)
	})
}

func TestGetInventoryStats(t *testing.T) {
	t.Run("Empty collection", func(t *testing.T) {
		db := setupTestDB()
		app := newTestApp(db)

		resp, err := app.Test(authedRequest("GET", "/getInventoryStats", nil))
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		result := decodeResponse(t, resp)
		data := result["data"].(map[string]interface{})
		assert.Equal(t, float64(0), data["totalItems"])
		assert.Equal(t, float64(0), data["lowStockCount"])
		assert.Equal(t, float64(0), data["expiredCount"])
		assert.Equal(t, float64(0), data["expiringCount"])
		assert.Equal(t, float64(0), data["totalInventoryValue"])
	})

	t.Run("Aggregates over the collection", func(t *testing.T) {
		db := setupTestDB()
		app := newTestApp(db)

		now := time.Now()
		seedItem(db, "Gloves", models.CategoryMedicalSupply, 2, 5, 0, now.AddDate(1, 0, 0))
		seedItem(db, "Expired vaccine", models.CategoryVaccine, 80, 10, 0, now.AddDate(0, 0, -2))
		seedItem(db, "Expiring soon", models.CategoryMedicalSupply, 10, 30, 0, now.AddDate(0, 0, 10))

		resp, err := app.Test(authedRequest("GET", "/getInventoryStats", nil))
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		result := decodeResponse(t, resp)
		data := result["data"].(map[string]interface{})
		assert.Equal(t, float64(3), data["totalItems"])
		assert.Equal(t, float64(1), data["lowStockCount"])
		assert.Equal(t, float64(1), data["expiredCount"])
		assert.Equal(t, float64(1), data["expiringCount"])
		// 2*5 + 80*10 + 10*30
		assert.Equal(t, float64(1110), data["totalInventoryValue"])
	})
}
