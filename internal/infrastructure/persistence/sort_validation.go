package persistence

import (
	"strings"

	"github.com/shop/backend/internal/domain/shared"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	if strings.ToUpper(strings.TrimSpace(orderDir)) == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// orderClause builds the ORDER BY for filter. A missing or unknown field
// falls back to defaultOrder, the entity's natural ordering. id is appended
// as a tie-breaker so pages stay stable.
func orderClause(filter shared.Filter, allowedFields map[string]bool, defaultOrder string) string {
	field := ValidateSortField(filter.OrderBy, allowedFields, "")
	if field == "" {
		return defaultOrder + ", id ASC"
	}
	return field + " " + ValidateSortOrder(filter.OrderDir) + ", id ASC"
}

// CategorySortFields contains allowed sort fields for categories
var CategorySortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"slug":       true,
}

// TagSortFields contains allowed sort fields for tags
var TagSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"slug":       true,
}

// ProductSortFields contains allowed sort fields for products
var ProductSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"name":         true,
	"slug":         true,
	"price":        true,
	"status":       true,
	"published_at": true,
}

// ProductTagSortFields contains allowed sort fields for product-tag links
var ProductTagSortFields = map[string]bool{
	"id":       true,
	"added_at": true,
	"weight":   true,
}
