package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
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

// TransferSortFields contains allowed sort fields for commission transfers
var TransferSortFields = map[string]bool{
	"id":              true,
	"created_at":      true,
	"updated_at":      true,
	"transfer_number": true,
	"gross_amount":    true,
	"net_amount":      true,
	"status":          true,
	"transfer_date":   true,
}

// TenantSortFields contains allowed sort fields for tenants
var TenantSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"code":       true,
	"name":       true,
	"status":     true,
}

// CommissionEntrySortFields contains allowed sort fields for commission entries
var CommissionEntrySortFields = map[string]bool{
	"id":         true,
	"earned_at":  true,
	"amount":     true,
	"created_at": true,
}

// orderClause builds a safe ORDER BY clause from user-supplied sort params
func orderClause(orderBy, orderDir string, allowedFields map[string]bool, defaultField string) string {
	field := ValidateSortField(orderBy, allowedFields, defaultField)
	dir := ValidateSortOrder(orderDir)
	return field + " " + dir
}
