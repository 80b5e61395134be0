package v1

import (
	"net/http"

	"zeecrown-admin/internal/domain"
	"zeecrown-admin/pkg/utils"
)

type enumsResponse struct {
	OrderStatuses     []string `json:"orderStatuses"`
	ProductCategories []string `json:"productCategories"`
}

// GET /admin/config/enums
// Static lists the dashboard uses for its filter and status dropdowns.
func GetEnums(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "private, max-age=3600")
	utils.WriteJSON(w, http.StatusOK, enumsResponse{
		OrderStatuses:     domain.OrderStatuses,
		ProductCategories: domain.ProductCategories,
	})
}
