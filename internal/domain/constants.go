package domain

// Order Statuses
const (
	OrderStatusPending    = "pending"
	OrderStatusPaid       = "paid"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// Product Categories
const (
	CategoryMedicine  = "medicine"
	CategoryCosmetics = "cosmetics"
	CategoryFood      = "food"
	CategoryPerfumes  = "perfumes"
)

// List Exports for API
var OrderStatuses = []string{
	OrderStatusPending,
	OrderStatusPaid,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

var ProductCategories = []string{
	CategoryMedicine,
	CategoryCosmetics,
	CategoryFood,
	CategoryPerfumes,
}

func IsValidOrderStatus(s string) bool {
	return contains(OrderStatuses, s)
}

func IsValidCategory(s string) bool {
	return contains(ProductCategories, s)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
