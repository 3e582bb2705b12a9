package services

import (
	"strconv"
	"strings"
	"time"

	"github.com/greendeeroper444/razon-clinic-sub000/models"

	"gorm.io/gorm"
)

// Stock adjustment operations
const (
	OperationUse     = "use"
	OperationRestock = "restock"
)

// Defaults for the reporting queries
const (
	DefaultLowStockThreshold = 10
	DefaultExpiringDays      = 30
)

// sortColumns maps the exposed sortable field names to their columns
var sortColumns = map[string]string{
	"createdAt":       "created_at",
	"itemName":        "item_name",
	"category":        "category",
	"price":           "price",
	"quantityInStock": "quantity_in_stock",
	"quantityUsed":    "quantity_used",
	"expiryDate":      "expiry_date",
}

// SortableField reports whether field may be used as a sort key
func SortableField(field string) bool {
	_, ok := sortColumns[field]
	return ok
}

// ItemInput carries the fields of a create or update request. Pointers
// distinguish an absent field from its zero value, so the same type serves
// full creates and partial updates. Store-managed fields (id, timestamps)
// have no counterpart here and can never be set by a caller.
type ItemInput struct {
	ItemName        *string
	Category        *string
	Price           *float64
	QuantityInStock *int
	QuantityUsed    *int
	ExpiryDate      *time.Time
	IsArchived      *bool
}

// ListQuery holds the validated filters for a list request
type ListQuery struct {
	Search          string
	Category        string
	ItemName        string
	SortBy          string
	SortOrder       string
	Page            int
	Limit           int
	IncludeArchived bool
}

// Pagination describes the window of results a list call returned. With no
// limit supplied the same shape is returned with IsUnlimited set and the
// paging fields collapsed to a single page holding everything.
type Pagination struct {
	CurrentPage    int    `json:"currentPage"`
	TotalPages     int    `json:"totalPages"`
	TotalItems     int64  `json:"totalItems"`
	ItemsPerPage   int64  `json:"itemsPerPage"`
	HasNextPage    bool   `json:"hasNextPage"`
	HasPrevPage    bool   `json:"hasPrevPage"`
	StartIndex     int64  `json:"startIndex"`
	EndIndex       int64  `json:"endIndex"`
	NextPage       *int   `json:"nextPage"`
	PrevPage       *int   `json:"prevPage"`
	RemainingItems int64  `json:"remainingItems"`
	SearchTerm     string `json:"searchTerm"`
	IsUnlimited    bool   `json:"isUnlimited"`
}

// ListResult pairs a page of items with its pagination descriptor
type ListResult struct {
	InventoryItems []models.InventoryItem `json:"inventoryItems"`
	Pagination     Pagination             `json:"pagination"`
}

// InventoryStats aggregates the collection-wide counters
type InventoryStats struct {
	TotalItems          int64   `json:"totalItems"`
	LowStockCount       int64   `json:"lowStockCount"`
	ExpiredCount        int64   `json:"expiredCount"`
	ExpiringCount       int64   `json:"expiringCount"`
	TotalInventoryValue float64 `json:"totalInventoryValue"`
}

// InventoryService implements the inventory business rules over the store
type InventoryService struct {
	db *gorm.DB
}

// NewInventoryService creates a new inventory service
func NewInventoryService(db *gorm.DB) *InventoryService {
	return &InventoryService{db: db}
}

// ParseItemID checks that raw is a syntactically valid item identifier.
// The empty string and the literal "undefined" are rejected up front so a
// broken client never costs a store round-trip.
func ParseItemID(raw string) (uint, error) {
	if raw == "" || raw == "undefined" {
		return 0, ErrInvalidID
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, ErrInvalidID
	}
	return uint(id), nil
}

// Create inserts a new inventory item. Required fields are re-checked here
// even though the HTTP validator already did, as a safety net for callers
// that do not come through the HTTP layer.
func (s *InventoryService) Create(input ItemInput) (*models.InventoryItem, error) {
	var errs []FieldError
	if input.ItemName == nil || strings.TrimSpace(*input.ItemName) == "" {
		errs = append(errs, FieldError{Field: "itemName", Message: "itemName is required"})
	}
	if input.Category == nil || *input.Category == "" {
		errs = append(errs, FieldError{Field: "category", Message: "category is required"})
	} else if !models.ValidCategory(*input.Category) {
		errs = append(errs, FieldError{Field: "category", Message: "category must be 'Vaccine' or 'Medical Supply'"})
	}
	if input.Price == nil {
		errs = append(errs, FieldError{Field: "price", Message: "price is required"})
	} else if *input.Price < 0 {
		errs = append(errs, FieldError{Field: "price", Message: "price cannot be negative"})
	}
	if input.QuantityInStock == nil {
		errs = append(errs, FieldError{Field: "quantityInStock", Message: "quantityInStock is required"})
	} else if *input.QuantityInStock < 0 {
		errs = append(errs, FieldError{Field: "quantityInStock", Message: "quantityInStock cannot be negative"})
	}
	if input.QuantityUsed != nil && *input.QuantityUsed < 0 {
		errs = append(errs, FieldError{Field: "quantityUsed", Message: "quantityUsed cannot be negative"})
	}
	if input.ExpiryDate == nil || input.ExpiryDate.IsZero() {
		errs = append(errs, FieldError{Field: "expiryDate", Message: "expiryDate is required"})
	}
	if len(errs) > 0 {
		return nil, NewValidationError(errs...)
	}

	item := models.InventoryItem{
		ItemName:        strings.TrimSpace(*input.ItemName),
		Category:        *input.Category,
		Price:           *input.Price,
		QuantityInStock: *input.QuantityInStock,
		ExpiryDate:      *input.ExpiryDate,
	}
	if input.QuantityUsed != nil {
		item.QuantityUsed = *input.QuantityUsed
	}
	if input.IsArchived != nil {
		item.IsArchived = *input.IsArchived
	}

	if err := s.db.Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// List returns inventory items matching the query. A positive limit yields
// one page with a full pagination descriptor; no limit yields the entire
// matching set marked as unlimited. Both behaviors are relied on by
// callers (paginated tables vs. dropdown population).
func (s *InventoryService) List(q ListQuery) (*ListResult, error) {
	query := s.db.Model(&models.InventoryItem{})
	if !q.IncludeArchived {
		query = query.Where("is_archived = ?", false)
	}

	// Free-text search narrows by name OR category; an explicit category or
	// itemName filter always constrains on top of it
	if q.Search != "" {
		pattern := "%" + strings.ToLower(q.Search) + "%"
		query = query.Where("(LOWER(item_name) LIKE ? OR LOWER(category) LIKE ?)", pattern, pattern)
	}
	if q.Category != "" {
		query = query.Where("category = ?", q.Category)
	}
	if q.ItemName != "" {
		query = query.Where("LOWER(item_name) LIKE ?", "%"+strings.ToLower(q.ItemName)+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	column, ok := sortColumns[q.SortBy]
	if !ok {
		column = "created_at"
	}
	direction := "DESC"
	if q.SortOrder == "asc" {
		direction = "ASC"
	}
	query = query.Order(column + " " + direction)

	var items []models.InventoryItem

	if q.Limit > 0 {
		page := q.Page
		if page < 1 {
			page = 1
		}
		offset := (page - 1) * q.Limit
		if err := query.Limit(q.Limit).Offset(offset).Find(&items).Error; err != nil {
			return nil, err
		}
		return &ListResult{
			InventoryItems: items,
			Pagination:     pagePagination(page, q.Limit, total, len(items), q.Search),
		}, nil
	}

	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return &ListResult{
		InventoryItems: items,
		Pagination:     unlimitedPagination(total, q.Search),
	}, nil
}

// pagePagination builds the descriptor for one bounded page
func pagePagination(page, limit int, total int64, count int, search string) Pagination {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	offset := int64(page-1) * int64(limit)
	// A page past the end is an empty page; keep the window inside the set
	if offset > total {
		offset = total
	}

	p := Pagination{
		CurrentPage:  page,
		TotalPages:   totalPages,
		TotalItems:   total,
		ItemsPerPage: int64(limit),
		HasNextPage:  page < totalPages,
		HasPrevPage:  page > 1 && total > 0,
		StartIndex:   offset,
		EndIndex:     offset + int64(count),
		SearchTerm:   search,
	}
	if p.HasNextPage {
		next := page + 1
		p.NextPage = &next
	}
	if p.HasPrevPage {
		prev := page - 1
		p.PrevPage = &prev
	}
	if remaining := total - p.EndIndex; remaining > 0 {
		p.RemainingItems = remaining
	}
	return p
}

// unlimitedPagination collapses the descriptor to one page holding everything
func unlimitedPagination(total int64, search string) Pagination {
	return Pagination{
		CurrentPage:  1,
		TotalPages:   1,
		TotalItems:   total,
		ItemsPerPage: total,
		StartIndex:   0,
		EndIndex:     total,
		SearchTerm:   search,
		IsUnlimited:  true,
	}
}

// GetByID fetches one item by its identifier
func (s *InventoryService) GetByID(rawID string) (*models.InventoryItem, error) {
	id, err := ParseItemID(rawID)
	if err != nil {
		return nil, err
	}

	var item models.InventoryItem
	if err := s.db.First(&item, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// Update applies a partial patch to an existing item. Store-managed fields
// cannot appear in the patch (see ItemInput), so clients can never override
// the id or timestamps.
func (s *InventoryService) Update(rawID string, patch ItemInput) (*models.InventoryItem, error) {
	id, err := ParseItemID(rawID)
	if err != nil {
		return nil, err
	}

	var item models.InventoryItem
	if err := s.db.First(&item, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var errs []FieldError
	if patch.ItemName != nil {
		name := strings.TrimSpace(*patch.ItemName)
		if name == "" {
			errs = append(errs, FieldError{Field: "itemName", Message: "itemName cannot be empty"})
		} else {
			item.ItemName = name
		}
	}
	if patch.Category != nil {
		if !models.ValidCategory(*patch.Category) {
			errs = append(errs, FieldError{Field: "category", Message: "category must be 'Vaccine' or 'Medical Supply'"})
		} else {
			item.Category = *patch.Category
		}
	}
	if patch.Price != nil {
		if *patch.Price < 0 {
			errs = append(errs, FieldError{Field: "price", Message: "price cannot be negative"})
		} else {
			item.Price = *patch.Price
		}
	}
	if patch.QuantityInStock != nil {
		if *patch.QuantityInStock < 0 {
			errs = append(errs, FieldError{Field: "quantityInStock", Message: "quantityInStock cannot be negative"})
		} else {
			item.QuantityInStock = *patch.QuantityInStock
		}
	}
	if patch.QuantityUsed != nil {
		if *patch.QuantityUsed < 0 {
			errs = append(errs, FieldError{Field: "quantityUsed", Message: "quantityUsed cannot be negative"})
		} else {
			item.QuantityUsed = *patch.QuantityUsed
		}
	}
	if patch.ExpiryDate != nil {
		item.ExpiryDate = *patch.ExpiryDate
	}
	if patch.IsArchived != nil {
		item.IsArchived = *patch.IsArchived
	}
	if len(errs) > 0 {
		return nil, NewValidationError(errs...)
	}

	if err := s.db.Save(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// Delete removes an item permanently and returns the removed document, the
// caller's last chance to show what was deleted
func (s *InventoryService) Delete(rawID string) (*models.InventoryItem, error) {
	id, err := ParseItemID(rawID)
	if err != nil {
		return nil, err
	}

	var item models.InventoryItem
	if err := s.db.First(&item, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := s.db.Delete(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// GetLowStockItems returns items with stock below threshold, most depleted
// first. Archived items are skipped.
func (s *InventoryService) GetLowStockItems(threshold int) ([]models.InventoryItem, error) {
	var items []models.InventoryItem
	err := s.db.
		Where("is_archived = ? AND quantity_in_stock < ?", false, threshold).
		Order("quantity_in_stock ASC").
		Find(&items).Error
	return items, err
}

// GetExpiredItems returns items past their expiry date, most overdue first
func (s *InventoryService) GetExpiredItems() ([]models.InventoryItem, error) {
	var items []models.InventoryItem
	err := s.db.
		Where("is_archived = ? AND expiry_date < ?", false, time.Now()).
		Order("expiry_date ASC").
		Find(&items).Error
	return items, err
}

// GetExpiringItems returns items expiring within the next days days,
// soonest first
func (s *InventoryService) GetExpiringItems(days int) ([]models.InventoryItem, error) {
	now := time.Now()
	until := now.AddDate(0, 0, days)

	var items []models.InventoryItem
	err := s.db.
		Where("is_archived = ? AND expiry_date >= ? AND expiry_date <= ?", false, now, until).
		Order("expiry_date ASC").
		Find(&items).Error
	return items, err
}

// UpdateStock adjusts an item's stock level. A "use" decrements stock and
// increments the usage counter; a "restock" only replenishes stock. The
// adjustment is a single conditional store-side update, so two concurrent
// "use" calls can never both pass the sufficiency check against stale data.
func (s *InventoryService) UpdateStock(rawID string, quantity int, operation string) (*models.InventoryItem, error) {
	id, err := ParseItemID(rawID)
	if err != nil {
		return nil, err
	}
	if quantity <= 0 {
		return nil, NewValidationError(FieldError{Field: "quantityUsed", Message: "quantityUsed must be a positive integer"})
	}

	switch operation {
	case OperationUse:
		res := s.db.Model(&models.InventoryItem{}).
			Where("id = ? AND quantity_in_stock >= ?", id, quantity).
			Updates(map[string]interface{}{
				"quantity_in_stock": gorm.Expr("quantity_in_stock - ?", quantity),
				"quantity_used":     gorm.Expr("quantity_used + ?", quantity),
				"updated_at":        time.Now(),
			})
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			// Either the item is missing or the stock was insufficient
			var count int64
			if err := s.db.Model(&models.InventoryItem{}).Where("id = ?", id).Count(&count).Error; err != nil {
				return nil, err
			}
			if count == 0 {
				return nil, ErrNotFound
			}
			return nil, ErrInsufficientStock
		}
	case OperationRestock:
		res := s.db.Model(&models.InventoryItem{}).
			Where("id = ?", id).
			Updates(map[string]interface{}{
				"quantity_in_stock": gorm.Expr("quantity_in_stock + ?", quantity),
				"updated_at":        time.Now(),
			})
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, ErrNotFound
		}
	default:
		return nil, ErrInvalidOperation
	}

	var item models.InventoryItem
	if err := s.db.First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// GetInventoryStats aggregates the collection-wide counters used by the
// dashboard. All values are 0 on an empty collection.
func (s *InventoryService) GetInventoryStats() (*InventoryStats, error) {
	stats := &InventoryStats{}
	active := func() *gorm.DB {
		return s.db.Model(&models.InventoryItem{}).Where("is_archived = ?", false)
	}

	if err := active().Count(&stats.TotalItems).Error; err != nil {
		return nil, err
	}
	if err := active().Where("quantity_in_stock < ?", DefaultLowStockThreshold).Count(&stats.LowStockCount).Error; err != nil {
		return nil, err
	}
	now := time.Now()
	if err := active().Where("expiry_date < ?", now).Count(&stats.ExpiredCount).Error; err != nil {
		return nil, err
	}
	until := now.AddDate(0, 0, DefaultExpiringDays)
	if err := active().Where("expiry_date >= ? AND expiry_date <= ?", now, until).Count(&stats.ExpiringCount).Error; err != nil {
		return nil, err
	}
	if err := active().Select("COALESCE(SUM(price * quantity_in_stock), 0)").Scan(&stats.TotalInventoryValue).Error; err != nil {
		return nil, err
	}
	return stats, nil
}
