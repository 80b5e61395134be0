package v1

import (
	"net/http"

	"zeecrown-admin/internal/domain"
	"zeecrown-admin/internal/pricing"
	"zeecrown-admin/pkg/utils"
)

type AdminOrderHandler struct {
	orderUC orderService
}

func NewAdminOrderHandler(uc orderService) *AdminOrderHandler {
	return &AdminOrderHandler{orderUC: uc}
}

type totalsResponse struct {
	Subtotal         string `json:"subtotal"`
	ShippingCharge   string `json:"shippingCharge"`
	Total            string `json:"total"`
	ShippingFailOpen bool   `json:"shippingFailOpen,omitempty"`
}

func newTotalsResponse(t pricing.Totals) totalsResponse {
	return totalsResponse{
		Subtotal:         money(t.Subtotal),
		ShippingCharge:   money(t.ShippingCharge),
		Total:            money(t.Total),
		ShippingFailOpen: t.ShippingFailOpen,
	}
}

func (h *AdminOrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	page, limit, offset := pageParams(r)
	filter := domain.OrderFilter{
		Status: r.URL.Query().Get("status"),
		Limit:  limit,
		Offset: offset,
	}

	orders, total, err := h.orderUC.ListOrders(r.Context(), filter)
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]any{
		"data":       newOrderDTOs(orders),
		"pagination": domain.NewPagination(page, limit, total),
	})
}

func (h *AdminOrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.orderUC.GetOrder(r.Context(), r.PathValue("id"))
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, newOrderDTO(order))
}

type updateStatusReq struct {
	Status string `json:"status"`
}

func (h *AdminOrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusReq
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	order, err := h.orderUC.UpdateOrderStatus(r.Context(), r.PathValue("id"), req.Status)
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, newOrderDTO(order))
}

func (h *AdminOrderHandler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	if err := h.orderUC.DeleteOrder(r.Context(), r.PathValue("id")); err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

type quoteReq struct {
	Items []pricing.LineItem `json:"items"`
}

// Quote prices a prospective order: {"items":[{"quantity":2,"unitPrice":"150.00"}]}.
func (h *AdminOrderHandler) Quote(w http.ResponseWriter, r *http.Request) {
	var req quoteReq
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	totals, err := h.orderUC.Quote(r.Context(), req.Items)
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, newTotalsResponse(totals))
}

// GetTotals recomputes a stored order's totals and shows them next to the stored total_price.
func (h *AdminOrderHandler) GetTotals(w http.ResponseWriter, r *http.Request) {
	order, totals, err := h.orderUC.OrderTotals(r.Context(), r.PathValue("id"))
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]any{
		"orderId":     order.ID,
		"storedTotal": money(order.TotalPrice),
		"computed":    newTotalsResponse(totals),
		"matches":     order.TotalPrice.Equal(totals.Total),
	})
}
