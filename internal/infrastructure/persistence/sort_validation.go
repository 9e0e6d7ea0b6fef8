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

// Common allowed sort fields for entities with base fields
// These are the common fields present in most entities

// CommonSortFields contains fields common to most entities
var CommonSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
}

// UserSortFields contains allowed sort fields for users
var UserSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"username":      true,
	"email":         true,
	"first_name":    true,
	"last_name":     true,
	"is_active":     true,
	"is_site_admin": true,
	"last_login_at": true,
}

// SiteSortFields contains allowed sort fields for site configurations
var SiteSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"status":     true,
	"plan_code":  true,
	"currency":   true,
	"tax_rate":   true,
}

// ProductSortFields contains allowed sort fields for products
var ProductSortFields = map[string]bool{
	"id":              true,
	"created_at":      true,
	"updated_at":      true,
	"cug":             true,
	"name":            true,
	"category_id":     true,
	"brand_id":        true,
	"selling_price":   true,
	"purchase_price":  true,
	"quantity":        true,
	"alert_threshold": true,
	"is_active":       true,
}

// CategorySortFields contains allowed sort fields for categories
var CategorySortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"parent_id":  true,
	"sort_order": true,
}

// BrandSortFields contains allowed sort fields for brands
var BrandSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
}

// BarcodeSortFields contains allowed sort fields for barcodes
var BarcodeSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"ean":        true,
	"product_id": true,
	"is_primary": true,
}

// TransactionSortFields contains allowed sort fields for stock transactions
var TransactionSortFields = map[string]bool{
	"id":               true,
	"created_at":       true,
	"updated_at":       true,
	"type":             true,
	"product_id":       true,
	"quantity":         true,
	"unit_price":       true,
	"transaction_date": true,
}

// SaleSortFields contains allowed sort fields for sales
var SaleSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"reference":      true,
	"status":         true,
	"payment_method": true,
	"customer_name":  true,
	"total":          true,
	"completed_at":   true,
}

// OrderSortFields contains allowed sort fields for supplier orders
var OrderSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"reference":    true,
	"type":         true,
	"status":       true,
	"counterparty": true,
	"total":        true,
}

// SubscriptionSortFields contains allowed sort fields for subscriptions
var SubscriptionSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"plan_code":  true,
	"status":     true,
	"starts_at":  true,
	"ends_at":    true,
}

// PlanSortFields contains allowed sort fields for subscription plans
var PlanSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"code":          true,
	"name":          true,
	"max_products":  true,
	"monthly_price": true,
	"is_active":     true,
}

// ActivitySortFields contains allowed sort fields for activity log entries
var ActivitySortFields = map[string]bool{
	"id":          true,
	"created_at":  true,
	"occurred_at": true,
	"action":      true,
	"entity_type": true,
	"entity_id":   true,
	"actor_id":    true,
}

// NotificationSortFields contains allowed sort fields for notifications
var NotificationSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"level":      true,
	"title":      true,
	"read_at":    true,
}
