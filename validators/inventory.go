package validators

import (
	"strconv"
	"strings"
	"time"

	"github.com/greendeeroper444/razon-clinic-sub000/models"
	"github.com/greendeeroper444/razon-clinic-sub000/services"
)

// Accepted wire formats for expiryDate
var expiryDateLayouts = []string{time.RFC3339, "2006-01-02"}

// InventoryItemRequest is the wire payload for create and update requests.
// Pointer fields distinguish absent from zero so partial updates work.
type InventoryItemRequest struct {
	ItemName        *string  `json:"itemName"`
	Category        *string  `json:"category"`
	Price           *float64 `json:"price"`
	QuantityInStock *int     `json:"quantityInStock"`
	QuantityUsed    *int     `json:"quantityUsed"`
	ExpiryDate      *string  `json:"expiryDate"`
	IsArchived      *bool    `json:"isArchived"`
}

// StockUpdateRequest is the wire payload for a stock adjustment
type StockUpdateRequest struct {
	QuantityUsed *int    `json:"quantityUsed"`
	Operation    *string `json:"operation"`
}

// ListQueryParams holds the raw query-string values of a list request
type ListQueryParams struct {
	Search          string
	Category        string
	ItemName        string
	SortBy          string
	SortOrder       string
	Page            string
	Limit           string
	IncludeArchived string
}

// ValidateItem checks a create or update payload and converts it to a
// service input. With partial set, absent fields are allowed; present
// fields are always validated in full.
func ValidateItem(req *InventoryItemRequest, partial bool) (services.ItemInput, error) {
	var (
		input services.ItemInput
		errs  []services.FieldError
	)

	if req.ItemName == nil {
		if !partial {
			errs = append(errs, services.FieldError{Field: "itemName", Message: "itemName is required"})
		}
	} else {
		name := strings.TrimSpace(*req.ItemName)
		if len([]rune(name)) < 2 || len([]rune(name)) > 100 {
			errs = append(errs, services.FieldError{Field: "itemName", Message: "itemName must be between 2 and 100 characters"})
		} else {
			input.ItemName = &name
		}
	}

	if req.Category == nil {
		if !partial {
			errs = append(errs, services.FieldError{Field: "category", Message: "category is required"})
		}
	} else if !models.ValidCategory(*req.Category) {
		errs = append(errs, services.FieldError{Field: "category", Message: "category must be 'Vaccine' or 'Medical Supply'"})
	} else {
		input.Category = req.Category
	}

	if req.Price == nil {
		if !partial {
			errs = append(errs, services.FieldError{Field: "price", Message: "price is required"})
		}
	} else if *req.Price < 0 {
		errs = append(errs, services.FieldError{Field: "price", Message: "price must be a non-negative number"})
	} else {
		input.Price = req.Price
	}

	if req.QuantityInStock == nil {
		if !partial {
			errs = append(errs, services.FieldError{Field: "quantityInStock", Message: "quantityInStock is required"})
		}
	} else if *req.QuantityInStock < 0 {
		errs = append(errs, services.FieldError{Field: "quantityInStock", Message: "quantityInStock must be a non-negative integer"})
	} else {
		input.QuantityInStock = req.QuantityInStock
	}

	if req.QuantityUsed != nil {
		if *req.QuantityUsed < 0 {
			errs = append(errs, services.FieldError{Field: "quantityUsed", Message: "quantityUsed must be a non-negative integer"})
		} else {
			input.QuantityUsed = req.QuantityUsed
		}
	}

	if req.ExpiryDate == nil {
		if !partial {
			errs = append(errs, services.FieldError{Field: "expiryDate", Message: "expiryDate is required"})
		}
	} else if expiry, ok := parseExpiryDate(*req.ExpiryDate); !ok {
		errs = append(errs, services.FieldError{Field: "expiryDate", Message: "expiryDate must be a valid date"})
	} else if expiry.Before(time.Now().AddDate(-10, 0, 0)) {
		// Soft sanity bound: an expiry more than 10 calendar years in the
		// past is almost certainly a typo, while legitimate historical
		// records stay accepted
		errs = append(errs, services.FieldError{Field: "expiryDate", Message: "expiryDate cannot be more than 10 years in the past"})
	} else {
		input.ExpiryDate = &expiry
	}

	input.IsArchived = req.IsArchived

	if len(errs) > 0 {
		return services.ItemInput{}, services.NewValidationError(errs...)
	}
	return input, nil
}

func parseExpiryDate(raw string) (time.Time, bool) {
	for _, layout := range expiryDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ValidateListQuery checks the list filters against the sortable-field
// allow-list and the category enum
func ValidateListQuery(p ListQueryParams) (services.ListQuery, error) {
	var errs []services.FieldError

	q := services.ListQuery{
		Search:   p.Search,
		Category: p.Category,
		ItemName: p.ItemName,
	}

	if p.Category != "" && !models.ValidCategory(p.Category) {
		errs = append(errs, services.FieldError{Field: "category", Message: "category must be 'Vaccine' or 'Medical Supply'"})
	}

	if p.SortBy != "" {
		if !services.SortableField(p.SortBy) {
			errs = append(errs, services.FieldError{Field: "sortBy", Message: "sortBy is not a sortable field"})
		} else {
			q.SortBy = p.SortBy
		}
	}

	if p.SortOrder != "" {
		if p.SortOrder != "asc" && p.SortOrder != "desc" {
			errs = append(errs, services.FieldError{Field: "sortOrder", Message: "sortOrder must be 'asc' or 'desc'"})
		} else {
			q.SortOrder = p.SortOrder
		}
	}

	if p.Page != "" {
		page, err := strconv.Atoi(p.Page)
		if err != nil || page < 1 {
			errs = append(errs, services.FieldError{Field: "page", Message: "page must be a positive integer"})
		} else {
			q.Page = page
		}
	}

	// Absent limit means unlimited retrieval
	if p.Limit != "" {
		limit, err := strconv.Atoi(p.Limit)
		if err != nil || limit < 1 {
			errs = append(errs, services.FieldError{Field: "limit", Message: "limit must be a positive integer"})
		} else {
			q.Limit = limit
		}
	}

	q.IncludeArchived = p.IncludeArchived == "true"

	if len(errs) > 0 {
		return services.ListQuery{}, services.NewValidationError(errs...)
	}
	return q, nil
}

// ValidateStockUpdate checks a stock adjustment payload
func ValidateStockUpdate(req *StockUpdateRequest) (int, string, error) {
	var errs []services.FieldError

	if req.QuantityUsed == nil {
		errs = append(errs, services.FieldError{Field: "quantityUsed", Message: "quantityUsed is required"})
	} else if *req.QuantityUsed <= 0 {
		errs = append(errs, services.FieldError{Field: "quantityUsed", Message: "quantityUsed must be a positive integer"})
	}

	if req.Operation == nil {
		errs = append(errs, services.FieldError{Field: "operation", Message: "operation is required"})
	} else if *req.Operation != services.OperationUse && *req.Operation != services.OperationRestock {
		errs = append(errs, services.FieldError{Field: "operation", Message: "operation must be 'use' or 'restock'"})
	}

	if len(errs) > 0 {
		return 0, "", services.NewValidationError(errs...)
	}
	return *req.QuantityUsed, *req.Operation, nil
}

// ValidateThreshold parses the low-stock threshold query parameter
func ValidateThreshold(raw string) (int, error) {
	if raw == "" {
		return services.DefaultLowStockThreshold, nil
	}
	threshold, err := strconv.Atoi(raw)
	if err != nil || threshold < 0 || threshold > 1000 {
		return 0, services.NewValidationError(services.FieldError{Field: "threshold", Message: "threshold must be an integer between 0 and 1000"})
	}
	return threshold, nil
}

// ValidateDays parses the expiring-window query parameter
func ValidateDays(raw string) (int, error) {
	if raw == "" {
		return services.DefaultExpiringDays, nil
	}
	days, err := strconv.Atoi(raw)
	if err != nil || days < 1 || days > 365 {
		return 0, services.NewValidationError(services.FieldError{Field: "days", Message: "days must be an integer between 1 and 365"})
	}
	return days, nil
}
