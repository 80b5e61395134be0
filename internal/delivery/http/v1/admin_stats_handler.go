package v1

import (
	"net/http"

	"zeecrown-admin/pkg/utils"
)

type AdminStatsHandler struct {
	statsUC statsService
}

func NewAdminStatsHandler(uc statsService) *AdminStatsHandler {
	return &AdminStatsHandler{statsUC: uc}
}

// GET /admin/dashboard
func (h *AdminStatsHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.statsUC.GetDashboard(r.Context())
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]any{
		"totalRevenue":  money(stats.TotalRevenue),
		"orderCount":    stats.OrderCount,
		"productCount":  stats.ProductCount,
		"customerCount": stats.CustomerCount,
		"recentOrders":  newOrderDTOs(stats.RecentOrders),
	})
}
